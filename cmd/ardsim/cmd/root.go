package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "ardsim",
	Short: "Arduino sketch simulator",
	Long: `ardsim runs a pre-parsed Arduino C++ sketch and emits a JSON Lines
command stream describing every pin write, timing call, Serial interaction,
and control-flow decision the sketch makes.

Input is the Compact AST binary format, not raw source text: ardsim
interprets sketches that have already been lexed and parsed elsewhere. The
simulator never touches real hardware. With --sync, pin reads and timing
calls come from a deterministic mock source unless overridden; without it,
the run stops at the first such read, which becomes a request for the host.`,
	Version: Version,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
