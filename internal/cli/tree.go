package cli

import (
	"fmt"
	"io"

	"github.com/gdscaffold/gdscaffold/internal/scenetree"
	"github.com/spf13/cobra"
)

var (
	treeManifest string
	treeOrder    bool
)

func init() {
	treeCmd.Flags().StringVarP(&treeManifest, "manifest", "m", "", "Manifest file (default: search upward for gdscaffold.yaml)")
	treeCmd.Flags().BoolVar(&treeOrder, "order", false, "List descriptors in the order they are written")
	rootCmd.AddCommand(treeCmd)
}

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Print the scene tree and its descriptor paths",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, _, err := loadManifest(treeManifest)
		if err != nil {
			return err
		}
		t, err := m.Tree()
		if err != nil {
			return fmt.Errorf("building scene tree: %w", err)
		}

		out := cmd.OutOrStdout()
		if treeOrder {
			for i, n := range t.PostOrder() {
				fmt.Fprintf(out, "%d. %s\n", i+1, n.ResPath())
			}
			return nil
		}
		printTree(out, t.Root, "", true, true)
		return nil
	},
}

// printTree draws n and its children with box-drawing connectors.
func printTree(w io.Writer, n *scenetree.Node, prefix string, last, root bool) {
	label := fmt.Sprintf("%s (%s) -> %s", n.Name, n.Kind.GodotType(), n.ResPath())

	childPrefix := prefix
	switch {
	case root:
		fmt.Fprintln(w, label)
	case last:
		fmt.Fprintf(w, "%s└── %s\n", prefix, label)
		childPrefix += "    "
	default:
		fmt.Fprintf(w, "%s├── %s\n", prefix, label)
		childPrefix += "│   "
	}

	for i, c := range n.Children {
		printTree(w, c, childPrefix, i == len(n.Children)-1, false)
	}
}

