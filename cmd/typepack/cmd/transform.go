package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/zgunz42/deepkit-framework/internal/extract"
	"github.com/zgunz42/deepkit-framework/internal/hostfs"
	"github.com/zgunz42/deepkit-framework/internal/oracle"
	"github.com/zgunz42/deepkit-framework/internal/surfaceparse"
	pipeline "github.com/zgunz42/deepkit-framework/internal/transform"
)

var (
	reflectionMode string
	configFile     string
	noConfig       bool
)

var transformCmd = &cobra.Command{
	Use:   "transform [file]",
	Short: "Run the full extraction pass over one source file and print the result",
	Long: `transform parses a single surface-language source file with a small
bundled recursive-descent parser (a stand-in for the host compiler's own
parsing — see the surfaceparse package), extracts type information from
every class and function declaration it finds, and prints each
declaration's reconstructed text followed by its installed __type.

Examples:
  # Transform a file using the default reflection-mode resolution
  typepack transform model.ts

  # Force reflection on regardless of any reflection.json
  typepack transform model.ts --mode always`,
	Args: cobra.ExactArgs(1),
	RunE: runTransform,
}

func init() {
	rootCmd.AddCommand(transformCmd)
	transformCmd.Flags().StringVar(&reflectionMode, "mode", "", "override the reflection mode (never|default|always)")
	transformCmd.Flags().StringVar(&configFile, "config", "reflection.json", "configuration file name to look for in ancestor directories")
	transformCmd.Flags().BoolVar(&noConfig, "no-config", false, "skip hierarchical configuration lookup entirely")
}

func runTransform(_ *cobra.Command, args []string) error {
	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", path, err)
	}

	file := surfaceparse.Parse(path, string(data))
	if verbose {
		for _, n := range file.Notes {
			fmt.Fprintln(os.Stderr, n.Format(colorEnabled()))
		}
	}

	registry := extract.NewRegistry()
	unit := file.ToUnit()
	registry.Put(unit)

	host := hostfs.New(registry)

	var probe oracle.ConfigProbe
	if !noConfig {
		probe = oracle.NewDirProbe(configFile)
	}

	p := pipeline.New(host, probe)
	if reflectionMode != "" {
		mode, ok := oracle.ParseMode(reflectionMode)
		if !ok {
			return fmt.Errorf("unrecognized --mode %q", reflectionMode)
		}
		p.Oracle.SetSessionOverride(mode)
	}

	dir := filepath.Dir(path)

	for _, c := range file.Classes {
		skeleton := surfaceparse.RenderClassSkeleton(c)
		out := p.TransformClass(unit, dir, c, skeleton)
		fmt.Println(out)
		fmt.Println()
	}

	for _, fn := range file.Functions {
		skeleton := surfaceparse.RenderFunctionSkeleton(fn)
		fmt.Println(skeleton)
		if stmt, ok := p.TransformFunction(unit, dir, fn); ok {
			fmt.Println(stmt)
		}
		fmt.Println()
	}

	for _, n := range p.Notes {
		fmt.Fprintln(os.Stderr, n.Format(colorEnabled()))
	}

	if len(host.Marks) > 0 && verbose {
		fmt.Fprintf(os.Stderr, "synthesized %d cross-file import(s):\n", len(host.Marks))
		for _, m := range host.Marks {
			fmt.Fprintf(os.Stderr, "  %s (%s)\n", m.Name, m.ID)
		}
	}

	return nil
}
