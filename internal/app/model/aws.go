package model

import (
	"path"
	"strings"
)

// This is only for the configuration, not implementing AWS handler logic.

type PublishConfig struct {
	Profile string `json:"profile,omitempty" yaml:"profile,omitempty" toml:"profile,omitempty"`
	Region  string `json:"region,omitempty" yaml:"region,omitempty" toml:"region,omitempty"`
	Bucket  string `json:"bucket,omitempty" yaml:"bucket,omitempty" toml:"bucket,omitempty"`
	// Key defaults to the base name of the output file.
	Key string `json:"key,omitempty" yaml:"key,omitempty" toml:"key,omitempty"`
	// StorageClass can be STANDARD, REDUCED_REDUNDANCY, STANDARD_IA,
	// ONEZONE_IA, INTELLIGENT_TIERING, GLACIER, DEEP_ARCHIVE or
	// GLACIER_IR. STANDARD if empty.
	StorageClass string `json:"storageClass,omitempty" yaml:"storageClass,omitempty" toml:"storageClass,omitempty"`
}

func (p *PublishConfig) Enabled() bool {
	return strings.TrimSpace(p.Bucket) != ""
}

func (p *PublishConfig) GetStorageClass() string {
	if strings.TrimSpace(p.StorageClass) == "" {
		return "STANDARD"
	}
	return strings.ToUpper(p.StorageClass)
}

func (p *PublishConfig) GetKey(outputFile string) string {
	if strings.TrimSpace(p.Key) != "" {
		return p.Key
	}
	return path.Base(outputFile)
}
