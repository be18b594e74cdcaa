package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/canonical/bugit-v2/internal/checkbox"
	"github.com/canonical/bugit-v2/internal/styles"
)

var listSessionsJSON bool

var listSessionsCmd = &cobra.Command{
	Use:   "list-sessions",
	Short: "List the valid Checkbox sessions on this device",
	Long:  "Print the info in a human-friendly format. Pipe the output to 'cat' to remove colors.",
	RunE: func(cmd *cobra.Command, args []string) error {
		dirs := checkbox.ValidSessions(checkbox.DefaultSessionRoot)
		if len(dirs) == 0 {
			fmt.Println(styles.ERROR("No sessions were found on this device"))
			return nil
		}

		type sessionInfo struct {
			SessionPath string `json:"session_path"`
			TestPlan    string `json:"test_plan"`
		}

		var sessions []sessionInfo
		for _, dir := range dirs {
			session, err := checkbox.OpenSession(dir)
			if err != nil {
				fmt.Fprintln(os.Stderr, styles.LOG(err.Error()))
				continue
			}
			sessions = append(sessions, sessionInfo{
				SessionPath: session.Path,
				TestPlan:    session.TestplanID,
			})
		}

		if listSessionsJSON {
			content, err := json.Marshal(sessions)
			if err != nil {
				return err
			}
			fmt.Println(string(content))
			return nil
		}

		for i, session := range sessions {
			fmt.Printf("%s: %s\n",
				styles.KEY("Session directory"), styles.VALUE(session.SessionPath))
			fmt.Printf("%s: %s\n",
				styles.KEY("Test Plan"), styles.VALUE(session.TestPlan))
			if i != len(sessions)-1 {
				fmt.Println()
			}
		}
		return nil
	},
}

func init() {
	listSessionsCmd.Flags().BoolVar(&listSessionsJSON, "json", false, "Print in JSON format")
	rootCmd.AddCommand(listSessionsCmd)
}
