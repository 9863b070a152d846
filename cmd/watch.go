package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"jsmin/internal/builder"
	"jsmin/internal/config"
	"jsmin/internal/ui"
)

var watchInterval time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Watch for changes and rebuild",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ui.PrintHeader(Version)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		b, err := newBuilder(cmd, args)
		if err != nil {
			ui.PrintError("%v", err)
			os.Exit(1)
		}

		interval := b.Config.WatchInterval()
		if cmd.Flags().Changed("interval") && watchInterval > 0 {
			interval = watchInterval
		}

		if err := runBuild(ctx, b); err != nil {
			ui.PrintError("Build failed: %v", err)
		}

		b.Force = false

		ui.PrintInfo("Watching %s for changes (every %s)...", b.Root, interval)
		ui.PrintInfo("Press Ctrl+C to stop")
		ui.Println()

		watch(ctx, cmd, args, b, interval)
		ui.Println()
		ui.PrintInfo("Stopped watching")
	},
}

// watch polls for modified sources until ctx is done. A change is only acted
// on once nothing has been modified for a full interval, so editors that save
// in several steps trigger a single build.
func watch(ctx context.Context, cmd *cobra.Command, args []string, b *builder.Builder, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastMod := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		changed, newMod, err := b.Changed(lastMod)
		if err != nil {
			log.Warn("failed to check for changes", "error", err)
			continue
		}
		if !changed || time.Since(newMod) < interval {
			continue
		}
		lastMod = time.Now()

		// The config file may have been edited, so reload it for every build.
		if b.Config.Path() != "" {
			nb, err := newBuilder(cmd, args)
			if err != nil {
				ui.PrintError("%v", err)
				continue
			}
			nb.Force = false
			b = nb
		}

		ui.Println()
		ui.PrintInfo("Changes detected, rebuilding...")
		ui.Println()

		if err := runBuild(ctx, b); err != nil && ctx.Err() == nil {
			ui.PrintError("Build failed: %v", err)
		}

		ui.Println()
		ui.PrintInfo("Watching for changes...")
	}
}

func init() {
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 0, "Polling interval (defaults to watch.interval from the config)")
	watchCmd.Flags().BoolVarP(&buildForce, "force", "f", false, "Rebuild every file on the first pass")
	watchCmd.Flags().IntVarP(&buildJobs, "jobs", "j", 0, "Number of files minified in parallel")
	watchCmd.Flags().StringVar(&buildOnError, "on-error", config.OnErrorCopy, "What to do when a file cannot be minified: fail, copy, or skip")
	rootCmd.AddCommand(watchCmd)
}
