package cmd

import (
	"bytes"
	"errors"
	"io"
	"os"

	"github.com/spf13/cobra"

	"jsmin/internal/builder"
	"jsmin/internal/minifier"
	"jsmin/internal/ui"
)

var minifyOutput string

var minifyCmd = &cobra.Command{
	Use:   "minify [file|-]",
	Short: "Minify a single script",
	Long:  "Minify a single script from a file or stdin and write it to stdout or to --output",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ui.SetOutput(os.Stderr)

		name := "-"
		if len(args) == 1 {
			name = args[0]
		}

		var in io.Reader = os.Stdin
		if name != "-" {
			f, err := os.Open(name)
			if err != nil {
				ui.PrintError("Failed to open %s: %v", name, err)
				os.Exit(1)
			}
			defer f.Close()
			in = f
		}

		if err := minifyTo(in, minifyOutput); err != nil {
			var syntaxErr *minifier.SyntaxError
			if errors.As(err, &syntaxErr) {
				ui.PrintError("%s: %v", name, syntaxErr)
			} else {
				ui.PrintError("Failed to minify %s: %v", name, err)
			}
			os.Exit(1)
		}
		log.Debug("minified", "input", name, "output", minifyOutput)
	},
}

// minifyTo streams r to stdout, or to output when it is set. A file output is
// only replaced when minification succeeds.
func minifyTo(r io.Reader, output string) error {
	if output == "" || output == "-" {
		return minifier.MinifyStream(r, os.Stdout)
	}

	var buf bytes.Buffer
	if err := minifier.MinifyStream(r, &buf); err != nil {
		return err
	}

	perm := os.FileMode(0644)
	if info, err := os.Stat(output); err == nil {
		perm = info.Mode().Perm()
	}
	return builder.WriteFileAtomic(output, buf.Bytes(), perm)
}

func init() {
	minifyCmd.Flags().StringVarP(&minifyOutput, "output", "o", "", "Write to this file instead of stdout")
	rootCmd.AddCommand(minifyCmd)
}
