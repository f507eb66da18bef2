package model

const (
	Language    = "en-us"
	Category    = "Education"
	Explicit    = "false"
	PodcastType = "serial"
	EpisodeType = "full"
)

// Feed is the channel aggregate handed to the renderer. Channel
// fields are raw text and escaped while rendering, episodes carry
// already escaped titles and summaries.
type Feed struct {
	Title       string
	Link        string
	Language    string
	Author      string
	Subtitle    string
	Description string
	OwnerName   string
	OwnerEmail  string
	Image       string
	Category    string
	Explicit    string
	Type        string
	Markdown    bool
	Episodes    []Episode
}

// NewFeed returns the channel for c with episodes in the order given.
func NewFeed(c *Config, episodes []Episode) *Feed {
	return &Feed{
		Title:       c.PodcastTitle,
		Link:        c.PodcastLink,
		Language:    Language,
		Author:      c.Author,
		Subtitle:    c.PodcastSubtitle,
		Description: c.PodcastDescription,
		OwnerName:   c.Author,
		OwnerEmail:  c.OwnerEmail,
		Image:       c.CoverArtURL,
		Category:    Category,
		Explicit:    Explicit,
		Type:        PodcastType,
		Markdown:    c.Markdown,
		Episodes:    episodes,
	}
}
