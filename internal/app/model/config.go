package model

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

var (
	ErrMissingField error = errors.New("required configuration field is missing or empty")
)

const (
	DefaultSummaryFile  = "summary.json"
	DefaultProbeTimeout = 2 * time.Minute
	DefaultFFprobe      = "ffprobe"
)

// Config is the podcast settings file (config.json, config.yaml or
// config.toml). The first nine fields are required, the rest are
// optional with defaults applied by ApplyDefaults.
type Config struct {
	ChaptersDirectory  string `json:"chaptersDirectory" yaml:"chaptersDirectory" toml:"chaptersDirectory"`
	FileExtension      string `json:"fileExtension" yaml:"fileExtension" toml:"fileExtension"`
	AudioBaseURL       string `json:"audioBaseURL" yaml:"audioBaseURL" toml:"audioBaseURL"`
	PodcastTitle       string `json:"podcastTitle" yaml:"podcastTitle" toml:"podcastTitle"`
	PodcastLink        string `json:"podcastLink" yaml:"podcastLink" toml:"podcastLink"`
	Author             string `json:"author" yaml:"author" toml:"author"`
	PodcastDescription string `json:"podcastDescription" yaml:"podcastDescription" toml:"podcastDescription"`
	CoverArtURL        string `json:"coverArtURL" yaml:"coverArtURL" toml:"coverArtURL"`
	OutputFile         string `json:"outputFile" yaml:"outputFile" toml:"outputFile"`

	// Defaults to PodcastTitle.
	PodcastSubtitle string `json:"podcastSubtitle,omitempty" yaml:"podcastSubtitle,omitempty" toml:"podcastSubtitle,omitempty"`
	OwnerEmail      string `json:"ownerEmail,omitempty" yaml:"ownerEmail,omitempty" toml:"ownerEmail,omitempty"`
	// Relative paths are resolved against the directory of the
	// configuration file by the configurator.
	SummaryFile string `json:"summaryFile,omitempty" yaml:"summaryFile,omitempty" toml:"summaryFile,omitempty"`
	// Markdown adds a content:encoded element with each summary
	// rendered as HTML.
	Markdown     bool          `json:"markdown,omitempty" yaml:"markdown,omitempty" toml:"markdown,omitempty"`
	ProbeTimeout string        `json:"probeTimeout,omitempty" yaml:"probeTimeout,omitempty" toml:"probeTimeout,omitempty"`
	FFprobe      string        `json:"ffprobe,omitempty" yaml:"ffprobe,omitempty" toml:"ffprobe,omitempty"`
	Publish      PublishConfig `json:"publish,omitempty" yaml:"publish,omitempty" toml:"publish,omitempty"`
}

// ApplyDefaults fills in optional fields and normalizes the file
// extension to lower case with a leading dot.
func (c *Config) ApplyDefaults() {
	ext := strings.ToLower(strings.TrimSpace(c.FileExtension))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	c.FileExtension = ext
	if strings.TrimSpace(c.PodcastSubtitle) == "" {
		c.PodcastSubtitle = c.PodcastTitle
	}
	if strings.TrimSpace(c.SummaryFile) == "" {
		c.SummaryFile = DefaultSummaryFile
	}
	if strings.TrimSpace(c.ProbeTimeout) == "" {
		c.ProbeTimeout = DefaultProbeTimeout.String()
	}
	if strings.TrimSpace(c.FFprobe) == "" {
		c.FFprobe = DefaultFFprobe
	}
}

// Validate returns an error wrapping ErrMissingField naming every
// required field that is empty, or an error if ProbeTimeout does not
// parse.
func (c *Config) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"chaptersDirectory", c.ChaptersDirectory},
		{"fileExtension", c.FileExtension},
		{"audioBaseURL", c.AudioBaseURL},
		{"podcastTitle", c.PodcastTitle},
		{"podcastLink", c.PodcastLink},
		{"author", c.Author},
		{"podcastDescription", c.PodcastDescription},
		{"coverArtURL", c.CoverArtURL},
		{"outputFile", c.OutputFile},
	}
	var missing []string
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			missing = append(missing, r.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingField, strings.Join(missing, ", "))
	}
	if c.FileExtension == "." {
		return fmt.Errorf("%w: fileExtension must be more than a dot", ErrMissingField)
	}
	if _, err := c.ProbeTimeoutDuration(); err != nil {
		return err
	}
	return nil
}

// ProbeTimeoutDuration parses ProbeTimeout, an empty value gives
// DefaultProbeTimeout.
func (c *Config) ProbeTimeoutDuration() (time.Duration, error) {
	if strings.TrimSpace(c.ProbeTimeout) == "" {
		return DefaultProbeTimeout, nil
	}
	d, err := time.ParseDuration(c.ProbeTimeout)
	if err != nil {
		return 0, fmt.Errorf("probeTimeout: %w", err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("probeTimeout must be positive, not %s", c.ProbeTimeout)
	}
	return d, nil
}

func (c *Config) ChaptersDirectoryExpanded() string {
	return resolvetilde(c.ChaptersDirectory)
}

func (c *Config) OutputFileExpanded() string {
	return resolvetilde(c.OutputFile)
}

// resolvetilde returns path where initial tilde (~) is replaced by
// os.UserHomeDir().
func resolvetilde(path string) string {
	if strings.HasPrefix(path, "~/") {
		dirname, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(dirname, path[2:])
	}
	return path
}
