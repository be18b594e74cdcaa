package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/canonical/bugit-v2/internal/archive"
	"github.com/canonical/bugit-v2/internal/core"
	"github.com/canonical/bugit-v2/internal/styles"
)

var listReportsFlags struct {
	limit int
	json  bool
}

var listReportsCmd = &cobra.Command{
	Use:   "list-reports",
	Short: "List the bug reports previously filed from this device",
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, err := archive.NewManager(core.ArchiveFile(), core.SchemaMarkerFile())
		if err != nil {
			return fmt.Errorf("failed to open the report archive: %w", err)
		}

		entries, err := manager.Recent(listReportsFlags.limit)
		if err != nil {
			return err
		}

		if listReportsFlags.json {
			content, err := json.Marshal(entries)
			if err != nil {
				return err
			}
			fmt.Println(string(content))
			return nil
		}

		if len(entries) == 0 {
			fmt.Println(styles.MUTED("No reports have been filed from this device"))
			return nil
		}

		for i, entry := range entries {
			fmt.Printf("%s: %s\n", styles.KEY("Ticket"), styles.VALUE(entry.TicketKey))
			fmt.Printf("%s: %s\n", styles.KEY("Title"), styles.VALUE(entry.Title))
			fmt.Printf("%s: %s (%s)\n",
				styles.KEY("Tracker"), styles.VALUE(entry.Tracker), entry.Project)
			fmt.Printf("%s: %s\n", styles.KEY("Severity"), styles.VALUE(entry.Severity))
			if entry.Tags != "" {
				fmt.Printf("%s: %s\n",
					styles.KEY("Tags"), styles.VALUE(strings.ReplaceAll(entry.Tags, ",", ", ")))
			}
			fmt.Printf("%s: %s\n",
				styles.KEY("Filed"), styles.VALUE(humanize.Time(entry.CreatedAt)))
			if i != len(entries)-1 {
				fmt.Println()
			}
		}
		return nil
	},
}

func init() {
	listReportsCmd.Flags().IntVar(&listReportsFlags.limit, "limit", 10,
		"Maximum number of reports to show, newest first")
	listReportsCmd.Flags().BoolVar(&listReportsFlags.json, "json", false,
		"Print in JSON format")
	rootCmd.AddCommand(listReportsCmd)
}
