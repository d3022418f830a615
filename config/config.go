// Package config holds the service settings. Values come from built-in
// defaults, then an optional JSON file, then PBN_* environment variables.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/setanarut/paintbynumbers/utils"
)

// EnvPrefix is prepended to the upper-cased JSON key of every setting,
// e.g. PBN_DEFAULT_NUM_COLORS.
const EnvPrefix = "PBN_"

var ErrInvalidSettings = errors.New("config: invalid settings")

type Settings struct {
	ListenAddr string `json:"listen_addr"`

	// Print layout: US Letter at 300 DPI.
	LetterWidthPx  int `json:"letter_width_px"`
	LetterHeightPx int `json:"letter_height_px"`

	DefaultMaxWidth  int    `json:"default_max_width"`
	DefaultNumColors int    `json:"default_num_colors"`
	MinRegionSize    int    `json:"min_region_size"`
	MergePasses      int    `json:"merge_passes"`
	PaletteMethod    string `json:"palette_method"`

	MinColors int `json:"min_colors"`
	MaxColors int `json:"max_colors"`

	MinWidth int `json:"min_width"`
	MaxWidth int `json:"max_width"`

	MinRegionSizeLimit int `json:"min_region_size_limit"`
	MaxRegionSizeLimit int `json:"max_region_size_limit"`

	MaxUploadBytes int64 `json:"max_upload_bytes"`
}

func Default() *Settings {
	return &Settings{
		ListenAddr:         ":8080",
		LetterWidthPx:      2550,
		LetterHeightPx:     3300,
		DefaultMaxWidth:    2550,
		DefaultNumColors:   10,
		MinRegionSize:      300,
		MergePasses:        1,
		PaletteMethod:      utils.PaletteMethodKMeans.String(),
		MinColors:          3,
		MaxColors:          16,
		MinWidth:           400,
		MaxWidth:           4000,
		MinRegionSizeLimit: 50,
		MaxRegionSizeLimit: 5000,
		MaxUploadBytes:     15 * 1024 * 1024,
	}
}

// Load returns defaults overlaid with the JSON file at path (skipped when
// path is empty) and then with the environment.
func Load(path string) (*Settings, error) {
	s := Default()
	if path != "" {
		if err := s.mergeFile(path); err != nil {
			return nil, err
		}
	}
	if err := s.mergeEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Settings) mergeFile(path string) error {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return fmt.Errorf("config file must have .json extension, got %q", ext)
	}
	info, err := os.Stat(cleanPath)
	if err != nil {
		return fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024
	if info.Size() > maxFileSize {
		return fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxFileSize)
	}
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	// Keys missing from the file keep their current values.
	if err := json.Unmarshal(data, s); err != nil {
		return fmt.Errorf("failed to parse config JSON: %w", err)
	}
	return nil
}

type lookupFunc func(key string) (string, bool)

func (s *Settings) mergeEnv(lookup lookupFunc) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(EnvPrefix + key); ok {
			*dst = v
		}
	}
	var firstErr error
	integer := func(key string, dst *int) {
		v, ok := lookup(EnvPrefix + key)
		if !ok {
			return
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("%w: %s%s=%q is not an integer", ErrInvalidSettings, EnvPrefix, key, v)
			}
			return
		}
		*dst = n
	}

	str("LISTEN_ADDR", &s.ListenAddr)
	integer("LETTER_WIDTH_PX", &s.LetterWidthPx)
	integer("LETTER_HEIGHT_PX", &s.LetterHeightPx)
	integer("DEFAULT_MAX_WIDTH", &s.DefaultMaxWidth)
	integer("DEFAULT_NUM_COLORS", &s.DefaultNumColors)
	integer("MIN_REGION_SIZE", &s.MinRegionSize)
	integer("MERGE_PASSES", &s.MergePasses)
	str("PALETTE_METHOD", &s.PaletteMethod)
	integer("MIN_COLORS", &s.MinColors)
	integer("MAX_COLORS", &s.MaxColors)
	integer("MIN_WIDTH", &s.MinWidth)
	integer("MAX_WIDTH", &s.MaxWidth)
	integer("MIN_REGION_SIZE_LIMIT", &s.MinRegionSizeLimit)
	integer("MAX_REGION_SIZE_LIMIT", &s.MaxRegionSizeLimit)
	if v, ok := lookup(EnvPrefix + "MAX_UPLOAD_BYTES"); ok {
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil && firstErr == nil {
			firstErr = fmt.Errorf("%w: %sMAX_UPLOAD_BYTES=%q is not an integer", ErrInvalidSettings, EnvPrefix, v)
		} else if err == nil {
			s.MaxUploadBytes = n
		}
	}
	return firstErr
}

// Validate checks that every range is non-empty and every default lies
// inside its range.
func (s *Settings) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}
	check(s.MinColors > 0 && s.MinColors <= s.MaxColors, "colors range [%d, %d]", s.MinColors, s.MaxColors)
	check(s.MinWidth > 0 && s.MinWidth <= s.MaxWidth, "width range [%d, %d]", s.MinWidth, s.MaxWidth)
	check(s.MinRegionSizeLimit >= 0 && s.MinRegionSizeLimit <= s.MaxRegionSizeLimit,
		"region size range [%d, %d]", s.MinRegionSizeLimit, s.MaxRegionSizeLimit)
	check(s.DefaultNumColors >= s.MinColors && s.DefaultNumColors <= s.MaxColors,
		"default_num_colors %d outside [%d, %d]", s.DefaultNumColors, s.MinColors, s.MaxColors)
	check(s.DefaultMaxWidth >= s.MinWidth && s.DefaultMaxWidth <= s.MaxWidth,
		"default_max_width %d outside [%d, %d]", s.DefaultMaxWidth, s.MinWidth, s.MaxWidth)
	check(s.MinRegionSize >= 0, "min_region_size %d is negative", s.MinRegionSize)
	check(s.MergePasses >= 1, "merge_passes %d must be at least 1", s.MergePasses)
	check(s.MaxUploadBytes > 0, "max_upload_bytes %d must be positive", s.MaxUploadBytes)
	check(s.LetterWidthPx > 0 && s.LetterHeightPx > 0, "letter size %dx%d", s.LetterWidthPx, s.LetterHeightPx)
	check(s.ListenAddr != "", "listen_addr is empty")
	if _, err := utils.ParsePaletteMethod(s.PaletteMethod); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidSettings, errors.Join(errs...))
	}
	return nil
}

// Method returns the parsed palette method; Validate guarantees it parses.
func (s *Settings) Method() utils.PaletteMethod {
	m, _ := utils.ParsePaletteMethod(s.PaletteMethod)
	return m
}
