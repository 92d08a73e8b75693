package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"skc/internal/bracket"
	"skc/internal/diagfmt"
	"skc/internal/driver"
	"skc/internal/emit"
)

var compileCmd = &cobra.Command{
	Use:   "compile [flags] file.ld",
	Short: "Compile a source file to SK combinators",
	Long: `Compile checks the file, curries every abstraction, prints the syntax tree
and the combinator forest, and optionally writes a binary artifact.`,
	Args: cobra.ExactArgs(1),
	RunE: runCompile,
}

type compileFlags struct {
	emit     string
	compress string
	stats    bool
	tree     bool
	noAST    bool
}

func init() {
	compileCmd.Flags().StringP("emit", "o", "", "write the compiled forest to this .skb file")
	compileCmd.Flags().String("compress", "none", "artifact compression (none|lz4|zstd)")
	compileCmd.Flags().Bool("stats", false, "print the arena occupancy panel")
	compileCmd.Flags().Bool("tree", false, "print the forest as trees instead of inline terms")
	compileCmd.Flags().Bool("no-ast", false, "do not print the curried syntax tree")
}

func runCompile(cmd *cobra.Command, args []string) error {
	var f compileFlags
	var err error
	if f.emit, err = cmd.Flags().GetString("emit"); err != nil {
		return fmt.Errorf("failed to get emit flag: %w", err)
	}
	if f.compress, err = cmd.Flags().GetString("compress"); err != nil {
		return fmt.Errorf("failed to get compress flag: %w", err)
	}
	if f.stats, err = cmd.Flags().GetBool("stats"); err != nil {
		return fmt.Errorf("failed to get stats flag: %w", err)
	}
	if f.tree, err = cmd.Flags().GetBool("tree"); err != nil {
		return fmt.Errorf("failed to get tree flag: %w", err)
	}
	if f.noAST, err = cmd.Flags().GetBool("no-ast"); err != nil {
		return fmt.Errorf("failed to get no-ast flag: %w", err)
	}
	return compile(cmd, args[0], f)
}

func compile(cmd *cobra.Command, path string, f compileFlags) error {
	if err := driver.ValidatePath(path); err != nil {
		return err
	}
	codec, err := emit.ParseCodec(f.compress)
	if err != nil {
		return fmt.Errorf("--compress %q: %w", f.compress, err)
	}
	s, err := loadSettings(cmd, path)
	if err != nil {
		return err
	}

	res, err := driver.Compile(cmd.Context(), path, s.options(driver.StageConvert))
	if res == nil {
		return err
	}
	defer func() { _ = res.Close() }()

	s.printDiagnostics(res.Bag, res.FileSet)
	if err != nil {
		if errors.Is(err, bracket.ErrUnreachable) {
			return errFailed
		}
		return err
	}
	if !res.OK() {
		return errFailed
	}

	out := cmd.OutOrStdout()
	treeOpts := diagfmt.TreeOpts{Color: s.color}
	if !s.quiet {
		fmt.Fprintln(out, "Successfully checked AST")
		if !f.noAST {
			diagfmt.FormatAST(out, res.Tree, res.Program, treeOpts)
		}
	}
	if f.tree {
		diagfmt.FormatForestTree(out, res.Forest, treeOpts)
	} else {
		diagfmt.FormatForest(out, res.Forest, treeOpts)
	}

	if f.emit != "" {
		art, err := emit.Build(res.Forest, res.File.Path)
		if err != nil {
			return err
		}
		if err := emit.WriteFile(f.emit, art, codec); err != nil {
			return ioError(err)
		}
		s.logger.Info("artifact written", "path", f.emit, "nodes", len(art.Nodes), "codec", codec.String())
	}
	if f.stats {
		fmt.Fprintln(out, diagfmt.ArenaPanel(res.File.Path, res.Arena.Stats()))
	}
	s.printTimings(os.Stderr, res)
	return nil
}
