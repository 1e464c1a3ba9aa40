// Package main provides the entry point for the MIPS-lite simulator.
//
// For the full CLI, use: go run ./cmd/mlite
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("mlite - MIPS-lite ISA simulator")
	fmt.Println("")
	fmt.Println("Usage: mlite [options] <image.txt>")
	fmt.Println("")
	fmt.Println("Options:")
	fmt.Println("  -mode        functional (FS), no-forward (NF), or with-forward (WF)")
	fmt.Println("  -trace       Print pipeline events while simulating")
	fmt.Println("  -max-cycles  Cycle ceiling for timing modes")
	fmt.Println("  -v           Verbose output")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/mlite' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/mlite' instead.")
	}
}
