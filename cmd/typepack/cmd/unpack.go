package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zgunz42/deepkit-framework/internal/pack"
)

var unpackCmd = &cobra.Command{
	Use:   "unpack [packed-code]",
	Short: "Decode a textual Packed code string back into its opcode sequence",
	Long: `unpack reverses pack: given the chunked base-36 code string a Packed
value's scalar form carries, it prints the decoded opcode sequence one
value per line.

Example:
  typepack unpack 000000002akh`,
	Args: cobra.ExactArgs(1),
	RunE: runUnpack,
}

func init() {
	rootCmd.AddCommand(unpackCmd)
}

func runUnpack(_ *cobra.Command, args []string) error {
	ops, err := pack.DecodeOps(args[0])
	if err != nil {
		return err
	}
	for _, op := range ops {
		fmt.Printf("%d (%s)\n", op, op)
	}
	return nil
}
