package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"skc/internal/prof"
	"skc/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "skc [flags] file.ld",
	Short: "Lambda calculus to SK combinator compiler",
	Long: `skc checks a lambda calculus source file, curries its abstractions and
translates every statement into a tree of S and K combinators.`,
	Args:              cobra.ArbitraryArgs,
	RunE:              runRoot,
	PersistentPreRunE: startProfiling,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

// errFailed marks a run whose diagnostics were already printed.
var errFailed = errors.New("compilation failed")

func init() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(compileCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "", "colorize output (auto|on|off), default from skc.toml")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 0, "maximum number of diagnostics to show, default from skc.toml")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().String("config", "", "path to skc.toml, default is the nearest one above the source")
	rootCmd.PersistentFlags().String("cpuprofile", "", "write a CPU profile to this file")
	rootCmd.PersistentFlags().String("memprofile", "", "write a heap profile to this file on exit")
	rootCmd.PersistentFlags().String("trace", "", "write a runtime trace to this file")
}

func main() {
	err := rootCmd.ExecuteContext(context.Background())
	if perr := profiling.Stop(); perr != nil {
		fmt.Fprintf(os.Stderr, "skc: %v\n", perr)
	}
	if err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintf(os.Stderr, "skc: %v\n", err)
		}
		os.Exit(1)
	}
}

// runRoot keeps the bare "skc file.ld" form: compile, then print the tree
// and the forest.
func runRoot(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		_ = cmd.Usage()
		return fmt.Errorf("expected exactly one source file, got %d", len(args))
	}
	return compile(cmd, args[0], compileFlags{})
}

var profiling *prof.Session

func startProfiling(cmd *cobra.Command, _ []string) error {
	flags := cmd.Root().PersistentFlags()
	var p prof.Paths
	p.CPU, _ = flags.GetString("cpuprofile")
	p.Mem, _ = flags.GetString("memprofile")
	p.Trace, _ = flags.GetString("trace")
	if p.Empty() {
		return nil
	}
	s, err := prof.Start(p)
	if err != nil {
		return err
	}
	profiling = s
	return nil
}
