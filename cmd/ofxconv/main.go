package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/k0kubun/pp/v3"
	"github.com/spf13/cobra"
	"github.com/subosito/gotenv"

	"github.com/yurifrl/ofxconv/pkg/config"
	"github.com/yurifrl/ofxconv/pkg/runner"
)

var (
	cfgFile     string
	accountName string
	fromMonth   string
	toMonth     string
	debug       bool
)

var rootCmd = &cobra.Command{
	Use:   "ofxconv",
	Short: "Convert bank statement exports to OFX",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert the statements of one account (or all) to OFX files",
	RunE: func(cmd *cobra.Command, _ []string) error {
		logger := newLogger()

		cfg, err := config.Build(cfgFile, cmd.Flags())
		if err != nil {
			return err
		}

		from, err := parseMonth(fromMonth)
		if err != nil {
			return fmt.Errorf("invalid --from: %w", err)
		}
		to, err := parseMonth(toMonth)
		if err != nil {
			return fmt.Errorf("invalid --to: %w", err)
		}

		names := []string{accountName}
		if accountName == "all" {
			names = cfg.Names()
		}

		for _, name := range names {
			acct, err := cfg.Account(name)
			if err != nil {
				return err
			}
			if debug {
				pp.Println(acct)
			}

			run, err := runner.New(acct, logger)
			if err != nil {
				return err
			}
			outputs, err := run.Run(from, to)
			if err != nil {
				return err
			}
			logger.Info("account done", "account", name, "files", len(outputs))
		}
		return nil
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Build(cfgFile, nil)
		if err != nil {
			return err
		}
		out, err := cfg.YAML()
		if err != nil {
			return err
		}
		fmt.Print(string(out))
		return nil
	},
}

func newLogger() *log.Logger {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "ofxconv",
		Level:           level,
	})
}

// parseMonth reads an optional YYYY-MM bound.
func parseMonth(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01", raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Config file (default is settings.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging and config dumps")

	convertCmd.Flags().StringVar(&accountName, "account", "", "Account name from the config, or 'all'")
	convertCmd.Flags().StringVar(&fromMonth, "from", "", "Earliest statement month to convert (YYYY-MM)")
	convertCmd.Flags().StringVar(&toMonth, "to", "", "Latest statement month to convert (YYYY-MM)")
	_ = convertCmd.MarkFlagRequired("account")

	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	_ = gotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
