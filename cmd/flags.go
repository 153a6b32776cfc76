package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bnema/petcare-cli/internal/application"
)

const dateLayout = "2006-01-02"

// parseTime accepts a calendar date or a full RFC3339 timestamp. Empty input
// yields the zero time.
func parseTime(flag, raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(dateLayout, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("--%s: expected YYYY-MM-DD or RFC3339, got %q", flag, raw)
	}
	return t, nil
}

func parseOptionalTime(flag, raw string) (*time.Time, error) {
	t, err := parseTime(flag, raw)
	if err != nil || t.IsZero() {
		return nil, err
	}
	return &t, nil
}

// openUpload opens path for a multipart upload. The caller closes the file.
func openUpload(path string, fields map[string]string) (application.Upload, *os.File, error) {
	file, err := os.Open(path)
	if err != nil {
		return application.Upload{}, nil, fmt.Errorf("open upload: %w", err)
	}

	return application.Upload{
		FileName: filepath.Base(path),
		Content:  file,
		Fields:   fields,
	}, file, nil
}

// parsePairs turns repeated key=value flags into a map.
func parsePairs(flag string, pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("--%s: expected key=value, got %q", flag, pair)
		}
		out[strings.TrimSpace(key)] = value
	}
	return out, nil
}
