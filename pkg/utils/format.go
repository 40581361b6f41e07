package utils

import (
	"fmt"
	"os"
	"strings"
)

var byteUnits = []string{"B", "KB", "MB", "GB", "TB"}

// FormatBytes renders a byte count on a 1024 scale with two decimals,
// using the largest unit where the value is still >= 1. Values past TB
// stay in TB.
func FormatBytes(n int64) string {
	f := float64(n)
	i := 0
	for f >= 1024 && i < len(byteUnits)-1 {
		f /= 1024.0
		i++
	}
	return fmt.Sprintf("%.2f %s", f, byteUnits[i])
}

// NormalizePrefix strips a leading slash and guarantees a trailing one,
// so "SDC3" and "/SDC3/" both scope the same subtree. Empty stays empty.
func NormalizePrefix(p string) string {
	p = strings.TrimLeft(p, "/")
	if p != "" && !strings.HasSuffix(p, "/") {
		p += "/"
	}
	return p
}

// PrintErrorWithHints writes a failure diagnostic plus static
// troubleshooting hints for anonymous bucket access to stderr.
func PrintErrorWithHints(action string, err error) {
	fmt.Fprintf(os.Stderr, "Failed to %s: %v\n", action, err)
	fmt.Fprintln(os.Stderr, "Hints:")
	fmt.Fprintln(os.Stderr, "  - Ensure --tenant is correct.")
	fmt.Fprintln(os.Stderr, "  - Anonymous listing requires s3:ListBucket (403 if disabled).")
	fmt.Fprintln(os.Stderr, "  - To scope the operation to known paths, pass --prefix.")
}
