package downloader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"s3fetch/config"
	"s3fetch/internal/s3client"
)

// fakeBucket serves an S3-style listing plus object GETs from memory.
type fakeBucket struct {
	objects map[string]string
	order   []string
	sizes   map[string]int64 // listing-size overrides; -1 omits <Size>
	fail    map[string]bool  // keys whose GET returns 500
}

func (b *fakeBucket) handler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("list-type") == "2" {
		prefix := r.URL.Query().Get("prefix")
		var sb strings.Builder
		sb.WriteString("<ListBucketResult><IsTruncated>false</IsTruncated>")
		for _, key := range b.order {
			if prefix != "" && !strings.HasPrefix(key, prefix) {
				continue
			}
			size := int64(len(b.objects[key]))
			if s, ok := b.sizes[key]; ok {
				size = s
			}
			if size < 0 {
				fmt.Fprintf(&sb, "<Contents><Key>%s</Key></Contents>", key)
			} else {
				fmt.Fprintf(&sb, "<Contents><Key>%s</Key><Size>%d</Size></Contents>", key, size)
			}
		}
		sb.WriteString("</ListBucketResult>")
		fmt.Fprint(w, sb.String())
		return
	}

	key := strings.TrimPrefix(r.URL.Path, "/bucket/")
	if b.fail[key] {
		http.Error(w, "InternalError", http.StatusInternalServerError)
		return
	}
	content, ok := b.objects[key]
	if !ok {
		http.Error(w, "NoSuchKey", http.StatusNotFound)
		return
	}
	fmt.Fprint(w, content)
}

func (b *fakeBucket) start(t *testing.T) *s3client.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(b.handler))
	t.Cleanup(srv.Close)
	return s3client.New(&config.Config{Endpoint: srv.URL, BucketName: "bucket"})
}

func TestRunDownloadsAll(t *testing.T) {
	bucket := &fakeBucket{
		objects: map[string]string{
			"SDC3/images/frame.fits": "fits-bytes",
			"SDC3/catalog.csv":       "id,ra,dec",
			"readme.txt":             "hello",
		},
		order: []string{"SDC3/images/frame.fits", "SDC3/catalog.csv", "readme.txt"},
	}
	client := bucket.start(t)
	dest := t.TempDir()

	var out strings.Builder
	report, err := Run(context.Background(), client, "", dest, &out)
	require.NoError(t, err)

	require.Equal(t, 3, report.Total)
	require.Equal(t, 3, report.Downloaded)
	require.Equal(t, 0, report.Skipped)

	// Local layout mirrors the full remote key.
	data, err := os.ReadFile(filepath.Join(dest, "SDC3", "images", "frame.fits"))
	require.NoError(t, err)
	require.Equal(t, "fits-bytes", string(data))

	require.Equal(t, 3, strings.Count(out.String(), "[get ]"))
}

func TestRunIdempotent(t *testing.T) {
	bucket := &fakeBucket{
		objects: map[string]string{
			"a/1.dat": "one",
			"a/2.dat": "two!",
		},
		order: []string{"a/1.dat", "a/2.dat"},
	}
	client := bucket.start(t)
	dest := t.TempDir()

	first, err := Run(context.Background(), client, "", dest, io.Discard)
	require.NoError(t, err)
	require.Equal(t, 2, first.Downloaded)

	var out strings.Builder
	second, err := Run(context.Background(), client, "", dest, &out)
	require.NoError(t, err)

	require.Equal(t, 0, second.Downloaded)
	require.Equal(t, second.Total, second.Skipped)
	require.Equal(t, 2, strings.Count(out.String(), "[skip]"))
}

func TestRunSkipPolicy(t *testing.T) {
	content := strings.Repeat("x", 100)

	t.Run("matching size skips", func(t *testing.T) {
		bucket := &fakeBucket{
			objects: map[string]string{"f.bin": content},
			order:   []string{"f.bin"},
		}
		client := bucket.start(t)
		dest := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dest, "f.bin"), []byte(content), 0o644))

		report, err := Run(context.Background(), client, "", dest, io.Discard)
		require.NoError(t, err)
		require.Equal(t, 1, report.Skipped)
		require.Equal(t, 0, report.Downloaded)
	})

	t.Run("size mismatch refetches", func(t *testing.T) {
		bucket := &fakeBucket{
			objects: map[string]string{"f.bin": content + "!"}, // remote is 101 bytes
			order:   []string{"f.bin"},
		}
		client := bucket.start(t)
		dest := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dest, "f.bin"), []byte(content), 0o644))

		report, err := Run(context.Background(), client, "", dest, io.Discard)
		require.NoError(t, err)
		require.Equal(t, 1, report.Downloaded)

		data, err := os.ReadFile(filepath.Join(dest, "f.bin"))
		require.NoError(t, err)
		require.Len(t, data, 101)
	})

	t.Run("unknown remote size refetches", func(t *testing.T) {
		bucket := &fakeBucket{
			objects: map[string]string{"f.bin": content},
			order:   []string{"f.bin"},
			sizes:   map[string]int64{"f.bin": -1},
		}
		client := bucket.start(t)
		dest := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dest, "f.bin"), []byte(content), 0o644))

		report, err := Run(context.Background(), client, "", dest, io.Discard)
		require.NoError(t, err)
		require.Equal(t, 1, report.Downloaded)
	})
}

func TestRunScopedPrefixKeepsFullKey(t *testing.T) {
	bucket := &fakeBucket{
		objects: map[string]string{
			"SDC3/a.txt": "in scope",
			"other/b":    "out of scope",
		},
		order: []string{"SDC3/a.txt", "other/b"},
	}
	client := bucket.start(t)
	dest := t.TempDir()

	report, err := Run(context.Background(), client, "SDC3/", dest, io.Discard)
	require.NoError(t, err)
	require.Equal(t, 1, report.Total)

	// The prefix is not stripped from local paths.
	_, err = os.Stat(filepath.Join(dest, "SDC3", "a.txt"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dest, "other", "b"))
	require.True(t, os.IsNotExist(err))
}

func TestRunStopsOnFirstFailure(t *testing.T) {
	bucket := &fakeBucket{
		objects: map[string]string{
			"a.txt": "first",
			"b.txt": "second",
			"c.txt": "third",
		},
		order: []string{"a.txt", "b.txt", "c.txt"},
		fail:  map[string]bool{"b.txt": true},
	}
	client := bucket.start(t)
	dest := t.TempDir()

	_, err := Run(context.Background(), client, "", dest, io.Discard)

	var dlErr *DownloadError
	require.ErrorAs(t, err, &dlErr)
	require.Equal(t, "b.txt", dlErr.Key)

	var protoErr *s3client.ProtocolError
	require.ErrorAs(t, err, &protoErr)

	// Progress before the failure stays on disk; nothing after it ran.
	_, err = os.Stat(filepath.Join(dest, "a.txt"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dest, "c.txt"))
	require.True(t, os.IsNotExist(err))
}
