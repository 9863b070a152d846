package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"jsmin/internal/builder"
	"jsmin/internal/ui"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate a shell completion script for jsmin on stdout.

Run 'jsmin completion install' to set up bash, zsh, or fish automatically:
  bash  ~/.bash_completion.d/jsmin, sourced from ~/.bashrc
  zsh   ~/.zsh/completions/_jsmin, added to fpath in ~/.zshrc
  fish  ~/.config/fish/completions/jsmin.fish

PowerShell has no installer:
  PS> jsmin completion powershell | Out-String | Invoke-Expression
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	Run: func(cmd *cobra.Command, args []string) {
		switch args[0] {
		case "bash":
			rootCmd.GenBashCompletion(os.Stdout)
		case "zsh":
			rootCmd.GenZshCompletion(os.Stdout)
		case "fish":
			rootCmd.GenFishCompletion(os.Stdout, true)
		case "powershell":
			rootCmd.GenPowerShellCompletionWithDesc(os.Stdout)
		}
	},
}

var completionInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Install shell completion for your current shell",
	Run: func(cmd *cobra.Command, args []string) {
		shell := detectShell()
		if shell == "" {
			ui.PrintError("Could not detect shell. Please use 'jsmin completion [bash|zsh|fish|powershell]' manually")
			os.Exit(1)
		}

		home, err := os.UserHomeDir()
		if err != nil {
			ui.PrintError("Could not find home directory: %v", err)
			os.Exit(1)
		}

		target, ok := completionTargets(home)[shell]
		if !ok {
			ui.PrintError("Auto-install not supported for %s. Please use 'jsmin completion %s' manually", shell, shell)
			os.Exit(1)
		}

		var script bytes.Buffer
		switch shell {
		case "zsh":
			err = rootCmd.GenZshCompletion(&script)
		case "bash":
			err = rootCmd.GenBashCompletion(&script)
		case "fish":
			err = rootCmd.GenFishCompletion(&script, true)
		}
		if err == nil {
			err = builder.WriteFileAtomic(target.file, script.Bytes(), 0644)
		}
		if err != nil {
			ui.PrintError("Failed to write completion file: %v", err)
			os.Exit(1)
		}
		ui.PrintSuccess("Installed completion script to %s", target.file)

		// Fish loads everything in its completions dir on its own.
		if target.rcFile == "" {
			ui.PrintInfo("Restart your shell to load completions")
			return
		}

		if err := appendOnce(target.rcFile, target.sourceLine); err != nil {
			ui.PrintWarning("Could not update %s: %v", target.rcFile, err)
			ui.PrintInfo("Please add manually: %s", target.sourceLine)
		}

		ui.Println()
		ui.PrintInfo("Restart your shell or run: source %s", target.rcFile)
	},
}

type completionTarget struct {
	file       string
	rcFile     string
	sourceLine string
}

func completionTargets(home string) map[string]completionTarget {
	zshDir := filepath.Join(home, ".zsh", "completions")
	bashFile := filepath.Join(home, ".bash_completion.d", "jsmin")
	return map[string]completionTarget{
		"zsh": {
			file:       filepath.Join(zshDir, "_jsmin"),
			rcFile:     filepath.Join(home, ".zshrc"),
			sourceLine: fmt.Sprintf("\nfpath=(%s $fpath)\nautoload -Uz compinit && compinit\n", zshDir),
		},
		"bash": {
			file:       bashFile,
			rcFile:     filepath.Join(home, ".bashrc"),
			sourceLine: fmt.Sprintf("\n[ -f %s ] && source %s\n", bashFile, bashFile),
		},
		"fish": {
			file: filepath.Join(home, ".config", "fish", "completions", "jsmin.fish"),
		},
	}
}

// appendOnce adds line to rcFile unless the file already mentions jsmin.
func appendOnce(rcFile, line string) error {
	content, _ := os.ReadFile(rcFile)
	if strings.Contains(string(content), "jsmin") {
		return nil
	}

	f, err := os.OpenFile(rcFile, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(line); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	ui.PrintSuccess("Updated %s", rcFile)
	return nil
}

func detectShell() string {
	shell := os.Getenv("SHELL")
	if strings.Contains(shell, "zsh") {
		return "zsh"
	}
	if strings.Contains(shell, "bash") {
		return "bash"
	}
	if strings.Contains(shell, "fish") {
		return "fish"
	}
	return ""
}

func init() {
	completionCmd.AddCommand(completionInstallCmd)
	rootCmd.AddCommand(completionCmd)
}
