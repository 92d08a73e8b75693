package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"skc/internal/emit"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect file.skb",
	Short: "Print the forest stored in a compiled artifact",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().Bool("nodes", false, "also dump the flattened node table")
}

func runInspect(cmd *cobra.Command, args []string) error {
	nodes, err := cmd.Flags().GetBool("nodes")
	if err != nil {
		return fmt.Errorf("failed to get nodes flag: %w", err)
	}
	art, err := emit.ReadFile(args[0])
	if err != nil {
		return ioError(err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "source: %s\nschema: %d\nnodes:  %d\nroots:  %d\n", art.Source, art.Schema, len(art.Nodes), len(art.Roots))
	for i, r := range art.Roots {
		fmt.Fprintf(out, "%s = %s\n", r.Name, art.Format(i))
	}
	if nodes {
		for i, n := range art.Nodes {
			fmt.Fprintf(out, "%4d: kind=%d a=%d b=%d %s\n", i, n.Kind, n.A, n.B, n.Name)
		}
	}
	return nil
}
