// Package downloader mirrors a bucket prefix to local disk, one object
// at a time, skipping files that already exist with a matching size.
package downloader

import (
	"context"
	"fmt"
	"io"
	"iter"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"s3fetch/internal/models"
)

const copyChunkSize = 1 << 20

// ObjectStore is the slice of the listing client the downloader needs.
type ObjectStore interface {
	Objects(ctx context.Context, prefix string) iter.Seq2[models.ObjectEntry, error]
	FetchObject(ctx context.Context, key string) (io.ReadCloser, error)
}

// DownloadError wraps the first object failure; the pass stops there.
type DownloadError struct {
	Key string
	Err error
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("download %s: %v", e.Key, e.Err)
}

func (e *DownloadError) Unwrap() error { return e.Err }

// Run walks every object under prefix and fetches it into dest,
// preserving the full key as the local path. Progress lines go to out.
// A failed stream may leave a truncated file behind; the size check
// re-fetches it on the next run.
func Run(ctx context.Context, store ObjectStore, prefix, dest string, out io.Writer) (*models.DownloadReport, error) {
	report := &models.DownloadReport{}
	for entry, err := range store.Objects(ctx, prefix) {
		if err != nil {
			return nil, err
		}
		report.Total++
		localPath := filepath.Join(dest, filepath.FromSlash(entry.Key))
		if existsWithSize(localPath, entry.Size) {
			report.Skipped++
			fmt.Fprintf(out, "[skip] %s  (exists, size matches)\n", entry.Key)
			continue
		}
		if err := fetchObject(ctx, store, entry.Key, localPath); err != nil {
			return nil, &DownloadError{Key: entry.Key, Err: err}
		}
		report.Downloaded++
		fmt.Fprintf(out, "[get ] %s  ->  %s\n", entry.Key, localPath)
		log.Debug().Str("key", entry.Key).Int64("size", entry.Size).Msg("fetched object")
	}
	return report, nil
}

// existsWithSize is a best-effort skip check: size must be known and
// the local byte length must match exactly. Stat errors count as "not
// there" and trigger a fetch.
func existsWithSize(localPath string, size int64) bool {
	if size < 0 {
		return false
	}
	info, err := os.Stat(localPath)
	if err != nil || info.IsDir() {
		return false
	}
	return info.Size() == size
}

func fetchObject(ctx context.Context, store ObjectStore, key, localPath string) error {
	if dir := filepath.Dir(localPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	body, err := store.FetchObject(ctx, key)
	if err != nil {
		return err
	}
	defer body.Close()

	f, err := os.Create(localPath)
	if err != nil {
		return err
	}
	_, copyErr := io.CopyBuffer(f, body, make([]byte, copyChunkSize))
	closeErr := f.Close()
	if copyErr != nil {
		return copyErr
	}
	return closeErr
}
