package cmd

import (
	"github.com/spf13/cobra"

	"s3fetch/internal/models"
	"s3fetch/pkg/utils"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Recursively list all objects in the bucket",
	Long: `Recursively list every object in the bucket, optionally scoped to a
prefix, printing one "size  key" line per object followed by totals.

With --top, only the top-level view is shown: the bucket's "subfolders"
(common prefixes) and its root-level files.`,
	Example: `  # List the whole bucket
  s3fetch list

  # List one subtree
  s3fetch list --prefix SDC3/

  # Top-level folders and root files only
  s3fetch list --top`,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	prefixFlag, _ := cmd.Flags().GetString("prefix")
	prefix := utils.NormalizePrefix(prefixFlag)
	top, _ := cmd.Flags().GetBool("top")

	client := newClient(cmd)
	ctx, cancel := operationContext(cmd)
	defer cancel()

	if top {
		folders, rootFiles, err := client.ListTopLevel(ctx)
		if err != nil {
			utils.PrintErrorWithHints("list top level", err)
			return err
		}
		cmd.Printf("Top-level folders in %s:\n", client.BaseURL())
		for _, f := range folders {
			cmd.Printf("  %s\n", f)
		}
		cmd.Printf("Root files:\n")
		for _, f := range rootFiles {
			cmd.Printf("  %s\n", f)
		}
		return nil
	}

	scope := prefix
	if scope == "" {
		scope = "/"
	}
	cmd.Printf("Listing all objects under '%s' from %s ...\n\n", scope, client.BaseURL())

	var summary models.ListSummary
	for entry, err := range client.Objects(ctx, prefix) {
		if err != nil {
			utils.PrintErrorWithHints("list recursively", err)
			return err
		}
		cmd.Printf("%12d  %s\n", entry.Size, entry.Key)
		summary.Count++
		if entry.Size > 0 {
			summary.TotalBytes += entry.Size
		}
	}

	cmd.Printf("\nTotal objects: %d | Total size: %s\n", summary.Count, utils.FormatBytes(summary.TotalBytes))
	return nil
}

func init() {
	listCmd.Flags().StringP("prefix", "p", "", "Prefix to scope the listing (e.g. 'SDC3/')")
	listCmd.Flags().Bool("top", false, "Show only top-level folders and root files")
	listCmd.Flags().Int("timeout", 0, "Timeout in seconds for the operation (0 = none)")
}
