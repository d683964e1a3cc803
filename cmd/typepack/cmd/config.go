package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zgunz42/deepkit-framework/internal/oracle"
)

var configCmdConfigFile string

var configCmd = &cobra.Command{
	Use:   "config [dir]",
	Short: "Print the resolved reflection mode for a directory",
	Long: `config exercises the Reflection-Mode Oracle's hierarchical configuration
lookup standalone, without running any extraction: it walks up from dir
looking for a configuration file and reports the mode that would apply to
a declaration with no doc-comment tag and no session override.`,
	Args: cobra.ExactArgs(1),
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.Flags().StringVar(&configCmdConfigFile, "config", "reflection.json", "configuration file name to look for in ancestor directories")
}

func runConfig(_ *cobra.Command, args []string) error {
	dir := args[0]
	probe := oracle.NewDirProbe(configCmdConfigFile)
	o := oracle.New(probe)
	mode := o.Resolve(nil, dir)
	fmt.Println(mode)
	return nil
}
