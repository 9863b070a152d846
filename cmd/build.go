package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"jsmin/internal/builder"
	"jsmin/internal/config"
	"jsmin/internal/ui"
	"jsmin/internal/version"
)

var (
	buildForce   bool
	buildJobs    int
	buildOnError string
	buildReport  string
)

var buildCmd = &cobra.Command{
	Use:   "build [dir]",
	Short: "Minify every script in a project",
	Long:  "Minify every script matched by the project's include patterns, writing each next to its source or under out_dir",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ui.PrintHeader(Version)

		b, err := newBuilder(cmd, args)
		if err != nil {
			ui.PrintError("%v", err)
			os.Exit(1)
		}

		if err := runBuild(cmd.Context(), b); err != nil {
			ui.PrintError("Build failed: %v", err)
			os.Exit(1)
		}
	},
}

// newBuilder resolves the project directory, loads its config and applies
// environment and flag overrides in that order.
func newBuilder(cmd *cobra.Command, args []string) (*builder.Builder, error) {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", dir, err)
	}

	cfg, err := config.Load(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Path() != "" {
		log.Debug("loaded config", "path", cfg.Path())
	}

	force := buildForce
	if settings != nil {
		settings.Apply(cfg)
		force = force || settings.Force
	}

	flags := cmd.Flags()
	if flags.Changed("jobs") {
		cfg.Jobs = buildJobs
	}
	if flags.Changed("on-error") {
		cfg.OnError = buildOnError
	}
	if flags.Changed("report") {
		cfg.Report = buildReport
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts := []builder.Option{
		builder.WithLogger(log),
		builder.WithForce(force),
	}
	if v, err := version.FromGit(cmd.Context(), dir); err == nil {
		opts = append(opts, builder.WithVersion(v.String()))
	} else {
		log.Debug("no version recorded", "error", err)
	}

	return builder.New(dir, cfg, opts...), nil
}

func runBuild(ctx context.Context, b *builder.Builder) error {
	if ctx == nil {
		ctx = context.Background()
	}

	report, err := b.Build(ctx)
	if report != nil {
		printReport(report)
	}
	if err != nil {
		return err
	}

	if b.Config.Report != "" {
		ui.PrintInfo("Report written to %s", b.Config.Report)
	}
	ui.PrintSuccess("Build complete!")
	return nil
}

func printReport(report *builder.Report) {
	for _, f := range report.Files {
		switch f.Status {
		case builder.StatusCopied:
			ui.PrintWarning("%s copied unminified: %s", f.Source, f.Error)
		case builder.StatusSkipped:
			ui.PrintWarning("%s skipped: %s", f.Source, f.Error)
		case builder.StatusMinified:
			ui.PrintInfo("%s → %s", f.Source, f.Target)
		}
	}

	ui.Println()
	ui.Println(ui.Header("Summary"))
	ui.PrintKeyValue("Run", report.RunID)
	if report.Version != "" {
		ui.PrintKeyValue("Version", report.Version)
	}
	ui.PrintKeyValue("Minified", strconv.Itoa(report.Count(builder.StatusMinified)))
	ui.PrintKeyValue("Up to date", strconv.Itoa(report.Count(builder.StatusFresh)))
	if n := report.Count(builder.StatusCopied); n > 0 {
		ui.PrintKeyValue("Copied", strconv.Itoa(n))
	}
	if n := report.Count(builder.StatusSkipped); n > 0 {
		ui.PrintKeyValue("Skipped", strconv.Itoa(n))
	}
	if n := report.Count(builder.StatusFailed); n > 0 {
		ui.PrintKeyValue("Failed", strconv.Itoa(n))
	}
	ui.PrintKeyValue("Saved", ui.FormatBytes(report.Saved()))
	ui.PrintKeyValue("Duration", report.Duration.Round(time.Millisecond).String())
	ui.Println()
}

func init() {
	buildCmd.Flags().BoolVarP(&buildForce, "force", "f", false, "Rebuild targets that are already up to date")
	buildCmd.Flags().IntVarP(&buildJobs, "jobs", "j", 0, "Number of files minified in parallel")
	buildCmd.Flags().StringVar(&buildOnError, "on-error", config.OnErrorCopy, "What to do when a file cannot be minified: fail, copy, or skip")
	buildCmd.Flags().StringVar(&buildReport, "report", "", "Write a JSON build report to this path")
	rootCmd.AddCommand(buildCmd)
}
