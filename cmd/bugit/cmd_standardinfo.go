package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/canonical/bugit-v2/internal/dut"
	"github.com/canonical/bugit-v2/internal/styles"
)

var dumpStandardInfoCmd = &cobra.Command{
	Use:   "dump-standard-info",
	Short: `Generate the "Additional Information" section of a bug report`,
}

var dumpStandardInfoJSONCmd = &cobra.Command{
	Use:     "json",
	Short:   "Print the info in JSON format",
	PreRunE: entryCheck,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := dut.StandardInfo(cmd.Context(), getLogger())

		// the original consumers expect a flat object
		flat := make(map[string]string, len(info))
		for _, kv := range info {
			flat[kv.Key] = kv.Value
		}
		content, err := json.Marshal(flat)
		if err != nil {
			return err
		}
		fmt.Println(string(content))
		return nil
	},
}

var dumpStandardInfoPrettyCmd = &cobra.Command{
	Use:     "pretty",
	Short:   "Print the info in a human-friendly format",
	PreRunE: entryCheck,
	Run: func(cmd *cobra.Command, args []string) {
		for _, kv := range dut.StandardInfo(cmd.Context(), getLogger()) {
			fmt.Printf("%s: %s\n", styles.KEY(kv.Key), styles.VALUE(kv.Value))
		}
	},
}

func init() {
	dumpStandardInfoCmd.AddCommand(dumpStandardInfoJSONCmd, dumpStandardInfoPrettyCmd)
	rootCmd.AddCommand(dumpStandardInfoCmd)
}
