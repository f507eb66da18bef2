// episodes builds model.Episode values from chapter files and merges
// externally supplied summaries into them. All functions return new
// slices and leave their input untouched.
package episodes

import (
	"cmp"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/sa6mwa/chapterpod/internal/app/model"
	"github.com/sa6mwa/chapterpod/internal/app/naming"
	"github.com/sa6mwa/chapterpod/internal/app/xmltext"
)

var mimeTypes = map[string]string{
	".mp3": "audio/mpeg",
	".m4a": "audio/x-m4a",
	".mp4": "audio/x-m4a",
}

// MimeType returns the enclosure type for a file extension such as
// ".mp3" (case-insensitive). Unknown extensions give
// application/octet-stream.
func MimeType(ext string) string {
	if t, ok := mimeTypes[strings.ToLower(ext)]; ok {
		return t
	}
	return "application/octet-stream"
}

// Build returns the episode for the file described by info. seconds
// is the extracted stream duration, invalid values are rendered as
// 00:00:00.
func Build(info fs.FileInfo, parsed naming.Parsed, baseURL string, seconds float64) model.Episode {
	name := info.Name()
	fileURL := baseURL + EncodeURIComponent(name)
	return model.Episode{
		Filename:      name,
		Title:         xmltext.Escape(parsed.Title),
		ChapterNumber: parsed.Number,
		FileURL:       fileURL,
		GUID:          fileURL,
		PubDate:       model.ItunesTime{Time: info.ModTime().UTC()},
		Length:        info.Size(),
		Duration:      model.FormatDuration(seconds),
		MimeType:      MimeType(filepath.Ext(name)),
	}
}

// BuildFile stats path and calls Build.
func BuildFile(path string, parsed naming.Parsed, baseURL string, seconds float64) (model.Episode, error) {
	info, err := os.Stat(path)
	if err != nil {
		return model.Episode{}, err
	}
	if info.IsDir() {
		return model.Episode{}, fmt.Errorf("%s is a directory", path)
	}
	return Build(info, parsed, baseURL, seconds), nil
}

// Sort returns episodes ordered by chapter number. Episodes sharing a
// chapter number keep their relative order.
func Sort(episodes []model.Episode) []model.Episode {
	sorted := slices.Clone(episodes)
	slices.SortStableFunc(sorted, func(a, b model.Episode) int {
		return cmp.Compare(a.ChapterNumber, b.ChapterNumber)
	})
	return sorted
}

// Merge assigns summaries by position: episodes[i] gets summaries[i]
// (escaped) when that exists and is not empty, otherwise the generic
// "Chapter <N>: <title>." summary. Extra summaries are ignored.
// episodes must already be sorted.
func Merge(episodes []model.Episode, summaries model.SummaryList) []model.Episode {
	merged := slices.Clone(episodes)
	for i := range merged {
		var summary string
		if i < len(summaries) {
			summary = xmltext.Escape(summaries[i])
		}
		if summary == "" {
			summary = Generic(merged[i])
		}
		merged[i].Summary = summary
	}
	return merged
}

// Generic is the fallback summary for e. e.Title is already escaped.
func Generic(e model.Episode) string {
	return fmt.Sprintf("Chapter %d: %s.", e.ChapterNumber, e.Title)
}
