package main

import (
	"fmt"
	"os"

	"github.com/zgunz42/deepkit-framework/cmd/typepack/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
