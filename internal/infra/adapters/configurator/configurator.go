// configurator is an adapter for loading the podcast configuration
// and the optional summary list. It implements the
// ports.ForConfiguring interface. Configuration can be JSON, YAML or
// TOML, chosen by file extension.
package configurator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
	"github.com/sa6mwa/chapterpod/internal/app/model"
	"github.com/sa6mwa/chapterpod/internal/app/ports"
	"github.com/sa6mwa/chapterpod/internal/infra/adapters/logger"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnsupportedFormat error = errors.New("unsupported configuration file format")
)

const DefaultConfigFile = "config.json"

// Searched for under the XDG config directories when DefaultConfigFile
// is not in the working directory.
var xdgConfigFiles = []string{
	"chapterpod/config.json",
	"chapterpod/config.yaml",
	"chapterpod/config.yml",
	"chapterpod/config.toml",
}

// configurator.New returns a local file-based configurator that
// satisfies the ports.ForConfiguring port interface. An empty
// configFile means DefaultConfigFile. A non-empty summaryFile
// overrides the summaryFile property of the configuration.
func New(configFile, summaryFile string) ports.ForConfiguring {
	return &forConfiguring{
		configFile:  configFile,
		summaryFile: summaryFile,
	}
}

// Implements the ports.ForConfiguring interface.
type forConfiguring struct {
	configFile  string
	summaryFile string
}

func (c *forConfiguring) Load(ctx context.Context) (*model.Config, error) {
	l := logger.FromContext(ctx)
	path, err := c.resolve()
	if err != nil {
		return nil, err
	}
	l.Debug("Loading configuration", "file", path)

	var config model.Config
	if err := decodeFile(path, &config); err != nil {
		return nil, fmt.Errorf("unable to parse %s: %w", path, err)
	}
	config.ApplyDefaults()
	if c.summaryFile != "" {
		config.SummaryFile = c.summaryFile
	} else if !filepath.IsAbs(config.SummaryFile) {
		config.SummaryFile = filepath.Join(filepath.Dir(path), config.SummaryFile)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &config, nil
}

// LoadSummaries reads config.SummaryFile as a JSON (or YAML if the
// extension says so) array. Entries that are not strings become empty
// summaries and fall back to the generic one.
func (c *forConfiguring) LoadSummaries(ctx context.Context, config *model.Config) (model.SummaryList, error) {
	if config == nil {
		return nil, errors.New("received nil pointer config")
	}
	b, err := os.ReadFile(config.SummaryFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var raw []any
	switch strings.ToLower(filepath.Ext(config.SummaryFile)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &raw)
	default:
		err = json.Unmarshal(b, &raw)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to parse %s: %w", config.SummaryFile, err)
	}
	summaries := make(model.SummaryList, len(raw))
	for i, v := range raw {
		if s, ok := v.(string); ok {
			summaries[i] = s
		}
	}
	return summaries, nil
}

// resolve returns the configuration file to read. Only the default
// file name falls back to the XDG search.
func (c *forConfiguring) resolve() (string, error) {
	if c.configFile != "" && c.configFile != DefaultConfigFile {
		return c.configFile, nil
	}
	if _, err := os.Stat(DefaultConfigFile); err == nil {
		return DefaultConfigFile, nil
	}
	for _, rel := range xdgConfigFiles {
		if p, err := xdg.SearchConfigFile(rel); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("unable to find %s in the working directory or under %s: %w", DefaultConfigFile, filepath.Join(xdg.ConfigHome, "chapterpod"), fs.ErrNotExist)
}

func decodeFile(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return json.NewDecoder(f).Decode(v)
	case ".yaml", ".yml":
		return yaml.NewDecoder(f).Decode(v)
	case ".toml":
		return toml.NewDecoder(f).Decode(v)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}
