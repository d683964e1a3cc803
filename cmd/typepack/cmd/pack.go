package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/zgunz42/deepkit-framework/internal/opcode"
	"github.com/zgunz42/deepkit-framework/internal/pack"
)

var packCmd = &cobra.Command{
	Use:   "pack [opcode...]",
	Short: "Pack a raw opcode sequence into its textual Packed form",
	Long: `pack takes a sequence of small integer opcodes (see internal/opcode for
the numbering) and renders the Packed textual form the decorator would
splice into program text, exercising the codec directly — mirroring
compile --disassemble's direct-codec-access spirit, but for the packer
instead of the bytecode compiler.

Example:
  # OpString(1) OpAny(8) OpFunction(26): a function with one string
  # parameter and no return annotation
  typepack pack 1 8 26`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPack,
}

func init() {
	rootCmd.AddCommand(packCmd)
}

func runPack(_ *cobra.Command, args []string) error {
	ops := make([]opcode.OpCode, 0, len(args))
	for _, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			return fmt.Errorf("invalid opcode %q: %w", a, err)
		}
		ops = append(ops, opcode.OpCode(n))
	}

	p := pack.Pack(ops, nil)
	fmt.Println(p.Code)
	return nil
}
