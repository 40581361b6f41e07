package models

// ObjectEntry is one object from a bucket listing. Size is -1 when the
// server omitted it.
type ObjectEntry struct {
	Key  string `json:"key"`
	Size int64  `json:"size"`
}

// ListingPage is a single ListObjectsV2 response.
type ListingPage struct {
	Entries        []ObjectEntry
	CommonPrefixes []string
	IsTruncated    bool
	NextToken      string
}

// ListSummary totals one recursive listing pass. TotalBytes counts only
// objects with a known positive size.
type ListSummary struct {
	Count      int   `json:"count"`
	TotalBytes int64 `json:"total_bytes"`
}
