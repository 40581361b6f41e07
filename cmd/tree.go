package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"s3fetch/internal/tree"
	"s3fetch/pkg/utils"
)

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Draw the bucket's directory hierarchy with aggregated sizes",
	Long: `Draw the bucket (or a prefix) as a directory tree. Every folder line
shows the number of files in its subtree and their total size.`,
	Example: `  # Tree of the whole bucket
  s3fetch tree

  # Tree of one subtree, plain ASCII glyphs
  s3fetch tree --prefix SDC3/ --ascii`,
	RunE: runTree,
}

func runTree(cmd *cobra.Command, args []string) error {
	prefixFlag, _ := cmd.Flags().GetString("prefix")
	prefix := utils.NormalizePrefix(prefixFlag)
	asciiMode, _ := cmd.Flags().GetBool("ascii")

	client := newClient(cmd)
	ctx, cancel := operationContext(cmd)
	defer cancel()

	root, err := tree.Build(prefix, client.Objects(ctx, prefix))
	if err != nil {
		utils.PrintErrorWithHints("build tree", err)
		return err
	}

	label := bucketLabel(cmd)
	if prefix != "" {
		label += "/" + prefix
	}
	tree.Render(cmd.OutOrStdout(), root, strings.TrimRight(label, "/"), asciiMode)
	return nil
}

func init() {
	treeCmd.Flags().StringP("prefix", "p", "", "Prefix to scope the tree (e.g. 'SDC3/')")
	treeCmd.Flags().Bool("ascii", false, "Use ASCII characters instead of Unicode box-drawing")
	treeCmd.Flags().Int("timeout", 0, "Timeout in seconds for the operation (0 = none)")
}
