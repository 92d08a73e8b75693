package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"skc/internal/diag"
	"skc/internal/driver"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] file.ld...",
	Short: "Scope check one or more source files",
	Long: `Check parses and scope checks every file in parallel, one arena per file,
and reports the diagnostics in argument order.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().IntP("jobs", "j", 0, "number of files checked at once (0 = GOMAXPROCS)")
	checkCmd.Flags().Bool("convert", false, "also run the combinator conversion")
	checkCmd.Flags().Bool("short", false, "print diagnostics one per line as \"severity CODE path:line:col message\"")
}

func runCheck(cmd *cobra.Command, args []string) error {
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	convert, err := cmd.Flags().GetBool("convert")
	if err != nil {
		return fmt.Errorf("failed to get convert flag: %w", err)
	}
	short, err := cmd.Flags().GetBool("short")
	if err != nil {
		return fmt.Errorf("failed to get short flag: %w", err)
	}
	s, err := loadSettings(cmd, args[0])
	if err != nil {
		return err
	}
	stop := driver.StageCheck
	if convert {
		stop = driver.StageConvert
	}

	fs, results, err := driver.CheckFiles(cmd.Context(), args, s.options(stop), jobs)
	if err != nil {
		return err
	}
	defer func() {
		for _, r := range results {
			if r.Result != nil {
				_ = r.Result.Close()
			}
		}
	}()

	all := diag.NewBag(0)
	for _, r := range results {
		all.Merge(r.Bag)
	}
	all.Sort()
	if short {
		if out := diag.FormatShort(all.Items(), fs); out != "" {
			fmt.Fprintln(os.Stderr, out)
		}
	} else {
		s.printDiagnostics(all, fs)
	}

	out := cmd.OutOrStdout()
	failed := 0
	for _, r := range results {
		switch {
		case r.Err != nil:
			failed++
			fmt.Fprintf(os.Stderr, "%s: %v\n", diag.IOLoadFileError.Tag(), r.Err)
		case !r.Result.OK():
			failed++
		case !s.quiet:
			fmt.Fprintf(out, "%s: ok (%d statements)\n", r.Path, r.Result.Tree.Count(r.Result.Program))
		}
		s.printTimings(os.Stderr, r.Result)
	}
	if failed > 0 {
		if !s.quiet {
			fmt.Fprintf(os.Stderr, "%d of %d files failed\n", failed, len(results))
		}
		return errFailed
	}
	return nil
}
