package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/canonical/bugit-v2/internal/archive"
	"github.com/canonical/bugit-v2/internal/checkbox"
	"github.com/canonical/bugit-v2/internal/core"
	"github.com/canonical/bugit-v2/internal/dut"
	"github.com/canonical/bugit-v2/internal/styles"
	"github.com/canonical/bugit-v2/internal/submit"
	"github.com/canonical/bugit-v2/internal/tui"
	"github.com/canonical/bugit-v2/internal/visual"
)

var reportFlags struct {
	cid          string
	sku          string
	project      string
	assignee     string
	platformTags []string
	tags         []string
}

func addReportFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&reportFlags.cid, "cid", "c", "",
		`Canonical ID (CID) of the device under test, pre-fills the "CID" field`)
	flags.StringVarP(&reportFlags.sku, "sku", "k", "",
		`Stock Keeping Unit (SKU) string of the device under test`)
	flags.StringVarP(&reportFlags.project, "project", "p", "",
		"Project name (case sensitive) like STELLA, SOMERVILLE")
	flags.StringVarP(&reportFlags.assignee, "assignee", "a", "",
		`Assignee ID: email for Jira, LP ID without the "lp:" part for Launchpad`)
	flags.StringSliceVar(&reportFlags.platformTags, "platform-tags", nil,
		`Platform tags, appear under "Components" on Jira`)
	flags.StringSliceVar(&reportFlags.tags, "tags", nil,
		"Additional tags on the tracker")
}

var jiraCmd = &cobra.Command{
	Use:     "jira",
	Short:   "Submit a bug to Jira",
	PreRunE: entryCheck,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReport("jira")
	},
}

var lpCmd = &cobra.Command{
	Use:     "lp",
	Short:   "Submit a bug to Launchpad",
	PreRunE: entryCheck,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReport("lp")
	},
}

func init() {
	addReportFlags(jiraCmd)
	addReportFlags(lpCmd)
	rootCmd.AddCommand(jiraCmd, lpCmd)
}

func validateReportFlags(tracker string) error {
	if reportFlags.cid != "" && !dut.ValidCID(reportFlags.cid) {
		return fmt.Errorf(
			"invalid CID %q: CID should look like 202408-12345 (6 digits, dash, then 5 digits)",
			reportFlags.cid)
	}
	if !dut.ValidAssignee(reportFlags.assignee) {
		return errors.New(`assignee should not start with "lp:"`)
	}
	return nil
}

func runReport(tracker string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("the report editor needs an interactive terminal")
	}
	if err := validateReportFlags(tracker); err != nil {
		return err
	}

	logger := getLogger()
	defer logger.Sync()
	logger.Info("-------- new bugit session --------",
		zap.String("tracker", tracker), zap.Any("args", os.Args))

	ctx := context.Background()

	// the saved DUT info has lower precedence than the CLI flags
	prefill := dut.Info{}
	if saved, err := dut.Load(core.DutInfoFile()); err == nil && saved != nil {
		prefill = *saved
	} else if err != nil {
		logger.Warn("ignoring saved dut info", zap.Error(err))
	}
	prefill.Merge(&dut.Info{
		CID:          reportFlags.cid,
		SKU:          reportFlags.sku,
		Project:      reportFlags.project,
		PlatformTags: reportFlags.platformTags,
		Tags:         reportFlags.tags,
		JiraAssignee: pick(tracker == "jira", reportFlags.assignee),
		LPAssignee:   pick(tracker == "lp", reportFlags.assignee),
	})
	prefill.Normalize()

	if version, err := checkbox.Version(ctx); err == nil {
		if ok, err := checkbox.Supported(version); err == nil && !ok {
			fmt.Fprintln(os.Stderr, styles.LOG(
				"checkbox "+version+" is older than bugit supports; session data may not load"))
		}
	}

	visualConfig, err := visual.LoadConfig(core.VisualConfigFile())
	if err != nil {
		logger.Warn("falling back to default theme", zap.Error(err))
		visualConfig = visual.DefaultConfig()
	}
	palette, _ := visual.Theme(visualConfig.Theme)

	archiveManager, err := archive.NewManager(core.ArchiveFile(), core.SchemaMarkerFile())
	if err != nil {
		logger.Warn("report archive unavailable", zap.Error(err))
		archiveManager = nil
	}

	submitter, err := submit.ForTracker(tracker, logger)
	if err != nil {
		return err
	}

	return tui.Run(ctx, tui.Options{
		Tracker:   tracker,
		Logger:    logger,
		Prefill:   prefill,
		Archive:   archiveManager,
		Palette:   palette,
		Submitter: submitter,
	})
}

func pick(cond bool, value string) string {
	if cond {
		return value
	}
	return ""
}
