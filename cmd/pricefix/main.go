// Package main provides the CLI entry point for pricefix.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/UNO-SOFT/zlog/v2"
	"github.com/spf13/cobra"
	"github.com/ukaji3/pricefix-go/pkg/pricefix"
)

var verbose zlog.VerboseVar

var (
	configPath   string
	sheetName    string
	factor       float64
	createBackup bool
	replaceChart bool
	strict       bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pricefix [input.xlsx]",
		Short: "Adjust the prices of a workbook and chart them",
		Long: `pricefix multiplies the prices in column C of a sheet by an adjustment
factor, writes the results to column D, adds a bar chart of column D at G2
and saves the workbook in place.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}

	defaults := pricefix.DefaultOptions()
	flags := rootCmd.Flags()
	flags.StringVarP(&configPath, "config", "c", "", "TOML config file")
	flags.StringVarP(&sheetName, "sheet", "s", "", "Sheet to process (default: active sheet)")
	flags.Float64VarP(&factor, "factor", "f", defaults.AdjustmentFactor, "Adjustment factor applied to every price")
	flags.BoolVar(&createBackup, "backup", defaults.CreateBackup, "Copy the workbook to <input>.backup before changing it")
	flags.BoolVar(&replaceChart, "replace-chart", defaults.ReplaceChart, "Remove the chart left at G2 by a previous run")
	flags.BoolVar(&strict, "strict", false, "Exit with status 1 when processing fails")

	gfs := flag.NewFlagSet("pricefix", flag.ContinueOnError)
	gfs.Var(&verbose, "v", "logging verbosity")
	flags.AddGoFlagSet(gfs)

	return rootCmd
}

func run(cmd *cobra.Command, args []string) error {
	logger := zlog.NewLogger(zlog.MaybeConsoleHandler(&verbose, os.Stderr)).SLog()

	opts, err := loadOptions(cmd, args)
	if err != nil {
		logger.Error("configuration", "error", err)
		if strict {
			return err
		}
		return nil
	}

	if err := pricefix.Run(opts, logger); err != nil && strict {
		return err
	}
	return nil
}

// loadOptions layers defaults, the config file, explicitly set flags and the
// positional file name, in that order.
func loadOptions(cmd *cobra.Command, args []string) (pricefix.Options, error) {
	opts := pricefix.DefaultOptions()
	if configPath != "" {
		var err error
		if opts, err = pricefix.LoadOptions(configPath); err != nil {
			return opts, fmt.Errorf("load config: %w", err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("sheet") {
		opts.SheetName = sheetName
	}
	if flags.Changed("factor") {
		opts.AdjustmentFactor = factor
	}
	if flags.Changed("backup") {
		opts.CreateBackup = createBackup
	}
	if flags.Changed("replace-chart") {
		opts.ReplaceChart = replaceChart
	}
	if len(args) > 0 {
		opts.Filename = args[0]
	}

	return opts, opts.Validate()
}
