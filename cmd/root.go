package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"jsmin/internal/config"
	"jsmin/internal/logger"
	"jsmin/internal/ui"
)

// Version is set by ldflags during build
var Version = "dev"

var (
	quietFlag     bool
	logLevelFlag  string
	logFormatFlag string

	settings *config.Settings
	log      *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:           "jsmin",
	Short:         "JavaScript minifier",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		ui.SetQuiet(quietFlag)

		var err error
		settings, err = config.LoadSettings()
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("log-level") {
			settings.LogLevel = logLevelFlag
		}
		if cmd.Flags().Changed("log-format") {
			settings.LogFormat = logFormatFlag
		}

		level, err := logger.ParseLevel(settings.LogLevel)
		if err != nil {
			return err
		}
		format := logger.Format(settings.LogFormat)
		if format != logger.FormatText && format != logger.FormatJSON {
			return fmt.Errorf("invalid log format %q: must be %q or %q", format, logger.FormatText, logger.FormatJSON)
		}

		log = logger.New(
			logger.WithLevel(level),
			logger.WithFormat(format),
			logger.WithAttr(slog.String("cmd", cmd.Name())),
		)
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		ui.PrintError("%v", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Long = ui.Divider() + "\n" + ui.Banner() + "\n" + ui.VersionLine(Version) + "\n\n" + ui.Divider() + "\n\n  Strips comments and whitespace from JavaScript files"

	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "Only print errors and warnings")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "info", "Log level: debug, info, warn, or error")
	rootCmd.PersistentFlags().StringVar(&logFormatFlag, "log-format", "text", "Log format: text or json")

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("jsmin %s\n", Version)
	},
}
