package cmd

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"s3fetch/internal/downloader"
	"s3fetch/pkg/utils"
)

var downloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Download the whole bucket or a prefix to local disk",
	Long: `Download objects to a local directory, preserving the full remote key
as the local path. Files that already exist with a matching size are
skipped, so an interrupted run can simply be restarted.

One of --all or --prefix must be given.`,
	Example: `  # Mirror the entire bucket
  s3fetch download --all

  # Download one subtree to a specific destination
  s3fetch download --prefix SDC3/ --dest /data/sdc3`,
	RunE: runDownload,
}

func runDownload(cmd *cobra.Command, args []string) error {
	all, _ := cmd.Flags().GetBool("all")
	prefixFlag, _ := cmd.Flags().GetString("prefix")
	dest, _ := cmd.Flags().GetString("dest")

	if !all && !cmd.Flags().Changed("prefix") {
		cmd.Println("No action selected. Use --all to download the entire bucket or --prefix to download a subtree.")
		return ErrNoAction
	}

	scope := ""
	if !all {
		scope = utils.NormalizePrefix(prefixFlag)
	}

	if err := os.MkdirAll(dest, 0o755); err != nil {
		utils.PrintErrorWithHints("create destination directory", err)
		return err
	}

	client := newClient(cmd)
	ctx, cancel := operationContext(cmd)
	defer cancel()

	label := scope
	if label == "" {
		label = "(entire bucket)"
	}
	cmd.Printf("\nDownloading '%s' from %s -> %s ...\n", label, client.BaseURL(), dest)

	start := time.Now()
	report, err := downloader.Run(ctx, client, scope, dest, cmd.OutOrStdout())
	if err != nil {
		utils.PrintErrorWithHints("download", err)
		return err
	}

	cmd.Printf("\nDone. Total: %d, downloaded: %d, skipped: %d  (elapsed %.1fs)\n",
		report.Total, report.Downloaded, report.Skipped, time.Since(start).Seconds())
	return nil
}

func init() {
	downloadCmd.Flags().Bool("all", false, "Download the entire bucket (recursive)")
	downloadCmd.Flags().StringP("prefix", "p", "", "Prefix to download (e.g. 'SDC3/')")
	downloadCmd.Flags().StringP("dest", "d", "./download", "Local destination directory")
	downloadCmd.Flags().Int("timeout", 0, "Timeout in seconds for the operation (0 = none)")
}
