package models

// DownloadReport summarizes one download pass over a prefix.
type DownloadReport struct {
	Downloaded int `json:"downloaded"`
	Skipped    int `json:"skipped"`
	Total      int `json:"total"`
}
