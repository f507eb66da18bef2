package model

// Episode is one chapter file as it will appear in the feed. Title
// and Summary are stored XML-escaped, all other string fields are
// structurally safe (URL-encoded or derived from fixed tables).
type Episode struct {
	Filename      string
	Title         string
	ChapterNumber int
	FileURL       string
	GUID          string
	PubDate       ItunesTime
	Length        int64
	Duration      string
	MimeType      string
	Summary       string
}

// SummaryList holds raw summaries where index i belongs to the i-th
// episode after sorting by chapter number, not to chapter i.
type SummaryList []string
