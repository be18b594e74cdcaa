package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/canonical/bugit-v2/internal/core"
	"github.com/canonical/bugit-v2/internal/dut"
	"github.com/canonical/bugit-v2/internal/styles"
)

var dutInfoCmd = &cobra.Command{
	Use:   "dut-info",
	Short: "Manage saved DUT info like CID, SKU and platform tags",
}

var dutInfoSetFlags struct {
	cid          string
	sku          string
	project      string
	jiraAssignee string
	lpAssignee   string
	platformTags []string
	tags         []string
}

var dutInfoSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Persist DUT info so bugit can reuse it in bug reports",
	Long: `Persist DUT info like CID, SKU and platform tags to let bugit reuse it
in bug reports and info collectors. This has LOWER precedence than the
cli arguments to the main program.`,
	PreRunE: entryCheck,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := &dut.Info{
			CID:          dutInfoSetFlags.cid,
			SKU:          dutInfoSetFlags.sku,
			Project:      dutInfoSetFlags.project,
			JiraAssignee: dutInfoSetFlags.jiraAssignee,
			LPAssignee:   dutInfoSetFlags.lpAssignee,
			PlatformTags: dutInfoSetFlags.platformTags,
			Tags:         dutInfoSetFlags.tags,
		}
		return dut.Save(core.DutInfoFile(), info)
	},
}

var dutInfoShowJSON bool

var dutInfoShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show what's currently saved",
	RunE: func(cmd *cobra.Command, args []string) error {
		info, err := dut.Load(core.DutInfoFile())
		if err != nil {
			return err
		}
		if info == nil {
			return nil
		}

		if dutInfoShowJSON {
			content, err := json.Marshal(info)
			if err != nil {
				return err
			}
			fmt.Println(string(content))
			return nil
		}

		for _, field := range info.Fields() {
			fmt.Printf("%s: %s\n", styles.KEY(field.Name), styles.VALUE(field.Value))
		}
		return nil
	},
}

var dutInfoClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clears all existing info",
	RunE: func(cmd *cobra.Command, args []string) error {
		return dut.Clear(core.DutInfoFile())
	},
}

var checkCommandsCmd = &cobra.Command{
	Use:    "check-commands",
	Short:  "Report which external tools bugit can find on PATH",
	Hidden: true,
	Run: func(cmd *cobra.Command, args []string) {
		found := dut.CheckCommands()
		ok := 0
		for _, name := range dut.RequiredCommands {
			path := found[name]
			if path == "" {
				fmt.Printf("%s: %s\n", styles.KEY(name), styles.ERROR("not found"))
				continue
			}
			fmt.Printf("%s: %s\n", styles.KEY(name), styles.VALUE(path))
			ok++
		}
		fmt.Println()
		fmt.Printf("exists: %d/%d\n", ok, len(dut.RequiredCommands))
	},
}

func init() {
	flags := dutInfoSetCmd.Flags()
	flags.StringVarP(&dutInfoSetFlags.cid, "cid", "c", "",
		"Canonical ID (CID) of the device under test")
	flags.StringVarP(&dutInfoSetFlags.sku, "sku", "k", "",
		"Stock Keeping Unit (SKU) string of the device under test")
	flags.StringVarP(&dutInfoSetFlags.project, "project", "p", "",
		"Project name (case sensitive) like STELLA, SOMERVILLE")
	flags.StringVar(&dutInfoSetFlags.jiraAssignee, "jira-assignee", "",
		"Assignee ID, for Jira it's the assignee's email")
	flags.StringVar(&dutInfoSetFlags.lpAssignee, "lp-assignee", "",
		`Assignee ID, for Launchpad it's the LP ID without the "lp:" part`)
	flags.StringSliceVar(&dutInfoSetFlags.platformTags, "platform-tags", nil,
		`Platform tags, appear under "Components" on Jira`)
	flags.StringSliceVar(&dutInfoSetFlags.tags, "tags", nil,
		"Additional tags on Jira")

	dutInfoShowCmd.Flags().BoolVar(&dutInfoShowJSON, "json", false, "Print in JSON format")

	dutInfoCmd.AddCommand(dutInfoSetCmd, dutInfoShowCmd, dutInfoClearCmd)
	rootCmd.AddCommand(dutInfoCmd, checkCommandsCmd)
}
