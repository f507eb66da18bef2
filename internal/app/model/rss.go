package model

import "encoding/xml"

// Rss mirrors the rendered feed document closely enough to verify it
// with encoding/xml. Namespaced elements are matched on their local
// name.
type Rss struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel RssChannel `xml:"channel"`
}

type RssChannel struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Language    string `xml:"language"`
	Author      string `xml:"author"`
	Subtitle    string `xml:"subtitle"`
	Description string `xml:"description"`
	Owner       struct {
		Name  string `xml:"name"`
		Email string `xml:"email"`
	} `xml:"owner"`
	Image struct {
		Href string `xml:"href,attr"`
	} `xml:"image"`
	Category struct {
		Text string `xml:"text,attr"`
	} `xml:"category"`
	Explicit string    `xml:"explicit"`
	Type     string    `xml:"type"`
	Items    []RssItem `xml:"item"`
}

type RssItem struct {
	Title   string `xml:"title"`
	PubDate string `xml:"pubDate"`
	Guid    struct {
		Text        string `xml:",chardata"`
		IsPermaLink string `xml:"isPermaLink,attr"`
	} `xml:"guid"`
	Enclosure struct {
		URL    string `xml:"url,attr"`
		Length int64  `xml:"length,attr"`
		Type   string `xml:"type,attr"`
	} `xml:"enclosure"`
	Duration    string `xml:"duration"`
	Summary     string `xml:"summary"`
	Description string `xml:"description"`
	Encoded     string `xml:"encoded"`
	Episode     int    `xml:"episode"`
	EpisodeType string `xml:"episodeType"`
}
