package cmd

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	verbose bool
	noColor bool
)

var rootCmd = &cobra.Command{
	Use:   "typepack",
	Short: "Type-reflection packer for a structurally-typed surface language",
	Long: `typepack extracts static type information from class, interface, and
function declarations and packs it into a compact, self-describing textual
form suitable for embedding back into emitted program text and decoding
again at runtime.

This is a standalone CLI around the transform pipeline a host compiler
plugin would normally drive per-file: a minimal bundled parser stands in
for the host compiler's own parsing, just far enough to exercise the
extractor, resolver, and decorator end to end.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colorized diagnostic output")
}

// colorEnabled decides whether diagnostic output should be colorized: never
// when --no-color is set, otherwise only when stderr is actually a
// terminal.
func colorEnabled() bool {
	if noColor {
		return false
	}
	return isatty.IsTerminal(os.Stderr.Fd())
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
