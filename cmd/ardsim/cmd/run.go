package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ardsim/engine/pkg/engine"
	"github.com/spf13/cobra"
)

var (
	maxLoopIterations int
	syncMode          bool
	setDigital        []string
	setAnalog         []string
)

var runCmd = &cobra.Command{
	Use:   "run <compact-ast-file>",
	Short: "Run a Compact AST sketch and emit its command stream",
	Long: `Execute a pre-parsed Arduino sketch and print its command stream as
JSON Lines, one command per line.

Examples:
  # Run a sketch, reading bytes from stdin
  ardsim run - < sketch.ast

  # Run with a 50-iteration loop() cap and a pre-seeded analog reading
  ardsim run --sync --max-loop-iterations 50 --set-analog 14=512 sketch.ast

  # Run synchronously, resolving external reads against the mock source
  # instead of suspending for host responses
  ardsim run --sync sketch.ast`,
	Args: cobra.ExactArgs(1),
	RunE: runSketch,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().IntVar(&maxLoopIterations, "max-loop-iterations", 3, "cap on loop() iterations (0 runs zero iterations)")
	runCmd.Flags().BoolVar(&syncMode, "sync", false, "resolve external reads against the mock source instead of suspending")
	runCmd.Flags().StringArrayVar(&setDigital, "set-digital", nil, "pre-seed digitalRead(pin), repeatable: pin=value")
	runCmd.Flags().StringArrayVar(&setAnalog, "set-analog", nil, "pre-seed analogRead(pin), repeatable: pin=value")
}

func runSketch(_ *cobra.Command, args []string) error {
	path := args[0]

	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	e, err := engine.New(
		engine.WithMaxLoopIterations(maxLoopIterations),
		engine.WithSyncMode(syncMode),
	)
	if err != nil {
		return fmt.Errorf("failed to create engine: %w", err)
	}

	if err := applyOverrides(setDigital, e.SetDigitalValue); err != nil {
		return err
	}
	if err := applyOverrides(setAnalog, e.SetAnalogValue); err != nil {
		return err
	}

	program, err := e.Load(data)
	if err != nil {
		return fmt.Errorf("failed to load sketch: %w", err)
	}

	e.Start(program)

	fmt.Print(e.CommandStream())
	return nil
}

func applyOverrides(specs []string, set func(pin, val int32)) error {
	for _, spec := range specs {
		pin, val, ok := strings.Cut(spec, "=")
		if !ok {
			return fmt.Errorf("invalid override %q, expected pin=value", spec)
		}
		p, err := strconv.ParseInt(strings.TrimSpace(pin), 10, 32)
		if err != nil {
			return fmt.Errorf("invalid pin in override %q: %w", spec, err)
		}
		v, err := strconv.ParseInt(strings.TrimSpace(val), 10, 32)
		if err != nil {
			return fmt.Errorf("invalid value in override %q: %w", spec, err)
		}
		set(int32(p), int32(v))
	}
	return nil
}
