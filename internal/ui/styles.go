package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Colors
	Primary   = lipgloss.Color("#7C3AED") // Purple
	Secondary = lipgloss.Color("#3B82F6") // Blue
	Success   = lipgloss.Color("#10B981") // Green
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Error     = lipgloss.Color("#EF4444") // Red
	Muted     = lipgloss.Color("#6B7280") // Gray

	// Styles
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Secondary).
			MarginBottom(1)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(Warning)

	MutedStyle = lipgloss.NewStyle().
			Foreground(Muted)

	InfoStyle = lipgloss.NewStyle().
			Foreground(Secondary)

	KeyStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true).
			Width(14)

	ValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E5E7EB"))
)

var (
	out   io.Writer = os.Stdout
	quiet bool
)

// SetOutput redirects everything except errors. The minify command uses it to
// keep stdout free for the minified script.
func SetOutput(w io.Writer) {
	out = w
}

// SetQuiet suppresses all output except errors and warnings.
func SetQuiet(q bool) {
	quiet = q
}

// Quiet reports whether informational output is suppressed.
func Quiet() bool {
	return quiet
}

// Banner prints the jsmin banner
func Banner() string {
	banner := `
   █ █▀▀ █▀▄▀█ ▀█▀ █▀▀▄
 ▄ █ ▀▀█ █ ▀ █  █  █  █
 ▀▀  ▀▀▀ ▀   ▀ ▀▀▀ ▀  ▀`
	return TitleStyle.Render(banner)
}

// Header prints a section header
func Header(text string) string {
	return TitleStyle.Render("▸ " + text)
}

// VersionLine renders the version shown under the banner.
func VersionLine(version string) string {
	return ValueStyle.Render(" Version: " + version)
}

// Println writes a plain line unless quiet.
func Println(a ...any) {
	if quiet {
		return
	}
	fmt.Fprintln(out, a...)
}

// PrintSuccess prints a success message
func PrintSuccess(format string, args ...any) {
	Println(SuccessStyle.Render("✓ " + fmt.Sprintf(format, args...)))
}

// PrintInfo prints an info message
func PrintInfo(format string, args ...any) {
	Println(InfoStyle.Render("• " + fmt.Sprintf(format, args...)))
}

// PrintError prints an error message to stderr, even when quiet.
func PrintError(format string, args ...any) {
	fmt.Fprintln(os.Stderr, ErrorStyle.Render("✗ "+fmt.Sprintf(format, args...)))
}

// PrintWarning prints a warning message to stderr, even when quiet.
func PrintWarning(format string, args ...any) {
	fmt.Fprintln(os.Stderr, WarningStyle.Render("⚠ "+fmt.Sprintf(format, args...)))
}

// PrintKeyValue prints a key-value pair
func PrintKeyValue(key, value string) {
	Println(" ", KeyStyle.Render(key+":"), ValueStyle.Render(value))
}

// Divider prints a divider line
func Divider() string {
	return MutedStyle.Render("─────────────────────────────────────────")
}

// PrintHeader prints the standard header
func PrintHeader(version string) {
	Println()
	Println(Divider())
	Println(Banner())
	Println(VersionLine(version))
	Println()
	Println(Divider())
	Println()
}

// FormatBytes renders n with a binary unit suffix.
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit && n > -unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for abs := n / unit; abs >= unit || abs <= -unit; abs /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
