// naming turns audio filenames into chapter numbers and titles. The
// default Convention is Chapter, matching names like
// Chapter_3_The_Long_Road.mp3. Downstream code only sees a Parsed
// value or an error wrapping ErrUnparseable, so additional
// conventions can be added without touching it.
package naming

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	ErrUnparseable error = errors.New("unparseable filename")
)

// Parsed is the result of a successful Parse.
type Parsed struct {
	Number int
	Title  string
}

type Convention interface {
	// Parse extracts chapter number and title from a bare filename
	// (no directory). Returns an error wrapping ErrUnparseable if the
	// name does not follow the convention.
	Parse(filename string) (Parsed, error)
	// Expected describes the convention for log messages.
	Expected() string
}

var chapterPattern = regexp.MustCompile(`^Chapter_(\d+)_(.+)\.\w+$`)

// Chapter is the Chapter_<N>_<Title>.<ext> convention.
type Chapter struct{}

func (Chapter) Expected() string {
	return "Chapter_#_Title.ext"
}

func (Chapter) Parse(filename string) (Parsed, error) {
	m := chapterPattern.FindStringSubmatch(filename)
	if m == nil {
		return Parsed{}, fmt.Errorf("%w: %q does not match %s", ErrUnparseable, filename, Chapter{}.Expected())
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return Parsed{}, fmt.Errorf("%w: chapter number in %q: %v", ErrUnparseable, filename, err)
	}
	return Parsed{
		Number: n,
		Title:  strings.ReplaceAll(m[2], "_", " "),
	}, nil
}

// Filename returns the Chapter convention filename for number and
// title. Spaces become underscores and ext gets a leading dot if it
// is missing.
func Filename(number int, title, ext string) string {
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return fmt.Sprintf("Chapter_%d_%s%s", number, strings.ReplaceAll(title, " ", "_"), ext)
}

// Default returns the convention used when none is configured.
func Default() Convention {
	return Chapter{}
}

