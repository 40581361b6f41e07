package cmd

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"s3fetch/config"
	"s3fetch/internal/s3client"
)

var cfg *config.Config

// ErrNoAction marks an invocation that selected nothing to do. The
// caller maps it to exit code 1, operation failures to 2.
var ErrNoAction = errors.New("no action selected")

var rootCmd = &cobra.Command{
	Use:   "s3fetch",
	Short: "List, visualize and download public S3 buckets without credentials",
	Long: `s3fetch talks to an S3-compatible object store over unsigned anonymous
HTTP. It can recursively list a bucket, draw its directory hierarchy with
aggregated file counts and sizes, or mirror it (or a prefix) to local disk.
Configuration is loaded from a .env file or environment variables.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if isVerbose(cmd) {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		} else {
			zerolog.SetGlobalLevel(zerolog.WarnLevel)
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.Println("No action selected. Use the list, tree or download subcommand.")
		_ = cmd.Usage()
		return ErrNoAction
	},
}

func Execute(config *config.Config) error {
	cfg = config
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(treeCmd)
	rootCmd.AddCommand(downloadCmd)

	rootCmd.PersistentFlags().String("endpoint", "", "Override endpoint URL from config")
	rootCmd.PersistentFlags().StringP("bucket", "b", "", "Override bucket name from config")
	rootCmd.PersistentFlags().String("tenant", "", "Override tenant from config (empty config value disables the tenant prefix)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
}

// effectiveConfig merges persistent flag overrides over the loaded
// configuration.
func effectiveConfig(cmd *cobra.Command) *config.Config {
	merged := *cfg
	if v, _ := cmd.Flags().GetString("endpoint"); v != "" {
		merged.Endpoint = v
	}
	if v, _ := cmd.Flags().GetString("bucket"); v != "" {
		merged.BucketName = v
	}
	if cmd.Flags().Changed("tenant") {
		merged.Tenant, _ = cmd.Flags().GetString("tenant")
	}
	return &merged
}

func newClient(cmd *cobra.Command) *s3client.Client {
	return s3client.New(effectiveConfig(cmd))
}

// bucketLabel is the tenant-qualified bucket name used in headings.
func bucketLabel(cmd *cobra.Command) string {
	c := effectiveConfig(cmd)
	if c.Tenant != "" {
		return c.Tenant + ":" + c.BucketName
	}
	return c.BucketName
}

func isVerbose(cmd *cobra.Command) bool {
	verbose, _ := cmd.Flags().GetBool("verbose")
	return verbose
}

// operationContext honors the command's --timeout flag; zero means no
// deadline beyond the platform default.
func operationContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	timeout, _ := cmd.Flags().GetInt("timeout")
	if timeout > 0 {
		return context.WithTimeout(context.Background(), time.Duration(timeout)*time.Second)
	}
	return context.WithCancel(context.Background())
}
