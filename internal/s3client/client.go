// Package s3client talks to an S3-compatible object store over plain
// unsigned HTTP: path-style ListObjectsV2 and anonymous object GETs.
// No SDK, no signing.
package s3client

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"iter"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"s3fetch/config"
	"s3fetch/internal/models"
)

const defaultMaxKeys = 1000

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(cfg *config.Config) *Client {
	return &Client{
		baseURL:    BucketBaseURL(cfg.Endpoint, cfg.Tenant, cfg.BucketName),
		httpClient: http.DefaultClient,
	}
}

// BucketBaseURL builds the path-style bucket URL. RGW multi-tenant
// deployments address the bucket as tenant:bucket; the colon must stay
// unescaped in the path.
func BucketBaseURL(endpoint, tenant, bucket string) string {
	tb := bucket
	if tenant != "" {
		tb = tenant + ":" + bucket
	}
	return strings.TrimRight(endpoint, "/") + "/" + encodeKey(tb)
}

// BaseURL returns the bucket base URL the client was built with.
func (c *Client) BaseURL() string { return c.baseURL }

// listBucketResult is the ListObjectsV2 response body. encoding/xml
// matches on local element names, so namespaced and namespace-free
// responses decode identically.
type listBucketResult struct {
	XMLName        xml.Name     `xml:"ListBucketResult"`
	Contents       []listEntry  `xml:"Contents"`
	CommonPrefixes []listPrefix `xml:"CommonPrefixes"`
	IsTruncated    string       `xml:"IsTruncated"`
	NextToken      string       `xml:"NextContinuationToken"`
}

type listEntry struct {
	Key  string `xml:"Key"`
	Size *int64 `xml:"Size"`
}

type listPrefix struct {
	Prefix string `xml:"Prefix"`
}

// ListPage issues one anonymous ListObjectsV2 request. delimiter and
// token may be empty; maxKeys <= 0 falls back to the server default
// page size.
func (c *Client) ListPage(ctx context.Context, prefix, delimiter, token string, maxKeys int) (*models.ListingPage, error) {
	if maxKeys <= 0 {
		maxKeys = defaultMaxKeys
	}
	params := url.Values{}
	params.Set("list-type", "2")
	params.Set("max-keys", strconv.Itoa(maxKeys))
	if prefix != "" {
		params.Set("prefix", prefix)
	}
	if delimiter != "" {
		params.Set("delimiter", delimiter)
	}
	if token != "" {
		params.Set("continuation-token", token)
	}
	reqURL := c.baseURL + "?" + params.Encode()

	log.Debug().Str("url", reqURL).Msg("listing page")

	body, err := c.get(ctx, reqURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, &TransportError{URL: reqURL, Err: err}
	}

	var result listBucketResult
	if err := xml.Unmarshal(data, &result); err != nil {
		return nil, &ParseError{URL: reqURL, Err: err}
	}

	page := &models.ListingPage{
		IsTruncated: strings.EqualFold(strings.TrimSpace(result.IsTruncated), "true"),
		NextToken:   result.NextToken,
	}
	for _, entry := range result.Contents {
		if entry.Key == "" {
			continue
		}
		size := int64(-1)
		if entry.Size != nil {
			size = *entry.Size
		}
		page.Entries = append(page.Entries, models.ObjectEntry{Key: entry.Key, Size: size})
	}
	for _, cp := range result.CommonPrefixes {
		if cp.Prefix != "" {
			page.CommonPrefixes = append(page.CommonPrefixes, cp.Prefix)
		}
	}
	return page, nil
}

// Objects walks the full listing under prefix, one page at a time,
// yielding entries in server order. The sequence is single-pass: ranging
// over it again re-issues the pagination walk from the first page.
func (c *Client) Objects(ctx context.Context, prefix string) iter.Seq2[models.ObjectEntry, error] {
	return func(yield func(models.ObjectEntry, error) bool) {
		token := ""
		for {
			page, err := c.ListPage(ctx, prefix, "", token, 0)
			if err != nil {
				yield(models.ObjectEntry{}, err)
				return
			}
			for _, entry := range page.Entries {
				if !yield(entry, nil) {
					return
				}
			}
			if !page.IsTruncated {
				return
			}
			token = page.NextToken
		}
	}
}

// ListTopLevel returns the bucket's top-level "subfolders" and root
// files, both sorted, from a single delimiter="/" page.
func (c *Client) ListTopLevel(ctx context.Context) (folders, rootFiles []string, err error) {
	page, err := c.ListPage(ctx, "", "/", "", 0)
	if err != nil {
		return nil, nil, err
	}
	folders = append(folders, page.CommonPrefixes...)
	sort.Strings(folders)
	for _, entry := range page.Entries {
		if !strings.Contains(entry.Key, "/") {
			rootFiles = append(rootFiles, entry.Key)
		}
	}
	sort.Strings(rootFiles)
	return folders, rootFiles, nil
}

// FetchObject GETs one object and returns its body stream. The caller
// must close it.
func (c *Client) FetchObject(ctx context.Context, key string) (io.ReadCloser, error) {
	return c.get(ctx, c.baseURL+"/"+encodeKey(key))
}

func (c *Client) get(ctx context.Context, reqURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &TransportError{URL: reqURL, Err: err}
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{URL: reqURL, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 8<<10))
		resp.Body.Close()
		return nil, &ProtocolError{
			URL:        reqURL,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(body),
		}
	}
	return resp.Body, nil
}

// encodeKey percent-encodes a key for use in the request path, keeping
// '/', ':' and '+' unescaped.
func encodeKey(key string) string {
	var b strings.Builder
	b.Grow(len(key))
	for i := 0; i < len(key); i++ {
		c := key[i]
		if isUnreservedOrSafe(c) {
			b.WriteByte(c)
		} else {
			fmt.Fprintf(&b, "%%%02X", c)
		}
	}
	return b.String()
}

func isUnreservedOrSafe(c byte) bool {
	switch {
	case 'A' <= c && c <= 'Z', 'a' <= c && c <= 'z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '~', '/', ':', '+':
		return true
	}
	return false
}
