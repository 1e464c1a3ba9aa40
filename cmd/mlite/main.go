// Package main provides the entry point for mlite, a MIPS-lite ISA
// simulator with a functional mode and a 5-stage pipeline timing mode.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/ajainPSU/ECE486-Project/emu"
	"github.com/ajainPSU/ECE486-Project/loader"
	"github.com/ajainPSU/ECE486-Project/timing/pipeline"
)

var (
	mode = flag.String("mode", "functional",
		"Simulation mode: functional (FS), no-forward (NF), or with-forward (WF)")
	trace     = flag.Bool("trace", false, "Print pipeline events while simulating")
	maxCycles = flag.Uint64("max-cycles", pipeline.DefaultMaxCycles,
		"Cycle ceiling for timing modes, 0 for no limit")
	verbose = flag.Bool("v", false, "Verbose output")
)

func main() {
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: mlite [options] <image.txt>\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	imagePath := flag.Arg(0)

	img, err := loader.Load(imagePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading image: %v\n", err)
		os.Exit(1)
	}

	if *verbose {
		fmt.Printf("Loaded: %s\n", imagePath)
		fmt.Printf("Words: %d\n", len(img.Words))
	}

	emulator := emu.NewEmulator()
	emulator.LoadProgram(img.Words)

	switch *mode {
	case "functional", "FS":
		runFunctional(emulator, imagePath)
	case "no-forward", "pipeline-no-forward", "NF":
		runTiming(emulator, imagePath, false)
	case "with-forward", "pipeline-with-forward", "WF":
		runTiming(emulator, imagePath, true)
	default:
		fmt.Fprintf(os.Stderr,
			"Unknown mode %q: want functional (FS), no-forward (NF), or with-forward (WF)\n",
			*mode)
		os.Exit(1)
	}
}

// runFunctional executes the image instruction by instruction with no
// timing model.
func runFunctional(emulator *emu.Emulator, imagePath string) {
	result, err := emulator.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	report := Report{
		ImagePath: imagePath,
		Mode:      "functional",
		FinalPC:   result.FinalPC,
		Halted:    result.Halted,
	}
	report.Print(os.Stdout, emulator)
}

// runTiming executes the image on the 5-stage pipeline, with or
// without operand forwarding.
func runTiming(emulator *emu.Emulator, imagePath string, forwarding bool) {
	opts := []pipeline.PipelineOption{
		pipeline.WithMaxCycles(*maxCycles),
	}
	modeName := "pipeline, no forwarding"
	if forwarding {
		opts = append(opts, pipeline.WithForwarding())
		modeName = "pipeline, with forwarding"
	}
	if *trace {
		opts = append(opts, pipeline.WithTracer(pipeline.NewWriterTracer(os.Stderr)))
	}

	pipe := pipeline.NewPipeline(emulator, opts...)
	result, err := pipe.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	report := Report{
		ImagePath: imagePath,
		Mode:      modeName,
		FinalPC:   result.FinalPC,
		Halted:    result.Halted,
		Stats:     &result.Stats,
	}
	report.Print(os.Stdout, emulator)
}
