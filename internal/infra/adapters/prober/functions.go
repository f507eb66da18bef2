package prober

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/alessio/shellescape"
	mp4lib "github.com/alfg/mp4"
	"github.com/gabriel-vasile/mimetype"
	"github.com/sa6mwa/mp3duration"
)

func GetFileContentType(filename string) (contentType string, err error) {
	mimetype.SetLimit(1024 * 1024)
	mimeType, err := mimetype.DetectFile(filename)
	if err != nil {
		return "", err
	}
	return mimeType.String(), nil
}

// Mp3Duration returns the duration of an mp3 in seconds.
func Mp3Duration(filename string) (float64, error) {
	di, err := mp3duration.ReadFile(filename)
	if err != nil {
		return 0, err
	}
	return di.TimeDuration.Seconds(), nil
}

// Mp4Duration returns the duration of an mp4 (m4a, m4b) in seconds
// from the Moov Mvhd box.
func Mp4Duration(filename string) (float64, error) {
	f, err := os.Open(filename)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return 0, err
	}
	m, err := mp4lib.OpenFromReader(f, info.Size())
	if err != nil {
		return 0, err
	}
	if m == nil || m.Moov == nil || m.Moov.Mvhd == nil {
		return 0, fmt.Errorf("%s does not contain a Moov Mvhd box (maybe not an mp4?)", filename)
	}
	timescale := m.Moov.Mvhd.Timescale
	if timescale == 0 {
		timescale = 1000
	}
	return float64(m.Moov.Mvhd.Duration) / float64(timescale), nil
}

type FFprobeJSON struct {
	Format struct {
		Filename   string `json:"filename"`
		FormatName string `json:"format_name"`
		Duration   string `json:"duration"`
		Size       string `json:"size"`
	} `json:"format"`
}

// FFprobe runs ffprobe on filename and returns an FFprobeJSON with
// format filled in or returns error if something failed. Full command
// executed via shell (probably /bin/sh) and shellCommandOption (-c):
//
//	ffprobe -v error -show_format -print_format json filename
func FFprobe(ctx context.Context, ffprobe, filename string) (*FFprobeJSON, error) {
	ffprobeCmd := fmt.Sprintf("%s -v error -show_format -print_format json %s", shellescape.Quote(ffprobe), shellescape.Quote(filename))
	cmd := exec.CommandContext(ctx, shell, shellCommandOption, ffprobeCmd)
	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%w: %s", err, msg)
		}
		return nil, err
	}
	var result FFprobeJSON
	if err := json.NewDecoder(&out).Decode(&result); err != nil {
		return nil, err
	}
	return &result, nil
}

// FFprobeDuration returns the format duration reported by ffprobe in
// seconds.
func FFprobeDuration(ctx context.Context, ffprobe, filename string) (float64, error) {
	result, err := FFprobe(ctx, ffprobe, filename)
	if err != nil {
		return 0, err
	}
	return parseFFprobeDuration(result.Format.Duration)
}

func parseFFprobeDuration(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "N/A" {
		return 0, fmt.Errorf("ffprobe reported no duration")
	}
	return strconv.ParseFloat(s, 64)
}
