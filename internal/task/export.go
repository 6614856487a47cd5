package task

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/natefinch/atomic"
	"gopkg.in/yaml.v3"
)

// ExportFormat selects the encoding of an export file.
type ExportFormat string

const (
	FormatJSON ExportFormat = "json"
	FormatYAML ExportFormat = "yaml"
)

// ParseExportFormat accepts json or yaml (yml is an alias).
func ParseExportFormat(s string) (ExportFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("invalid export format %q (want json or yaml)", s)
	}
}

// ExportFileName is the dated name of an export file.
func ExportFileName(now time.Time, format ExportFormat) string {
	return fmt.Sprintf("taskify-export-%s.%s", now.UTC().Format(DateLayout), format)
}

// EncodeSnapshot converts a JSON snapshot into the requested format. YAML keeps
// the JSON field names.
func EncodeSnapshot(snapshot []byte, format ExportFormat) ([]byte, error) {
	if format != FormatYAML {
		return snapshot, nil
	}
	var doc []map[string]any
	if err := json.Unmarshal(snapshot, &doc); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if doc == nil {
		doc = []map[string]any{}
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	return buf.Bytes(), nil
}

// Export writes the store's snapshot into dir and returns the file path. The
// file is replaced atomically; the store is not modified.
func Export(s *Store, dir string, format ExportFormat, now time.Time) (string, error) {
	snapshot, err := s.ExportSnapshot()
	if err != nil {
		return "", err
	}
	data, err := EncodeSnapshot(snapshot, format)
	if err != nil {
		return "", err
	}
	if format == FormatJSON {
		data = append(data, '\n')
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}
	path := filepath.Join(dir, ExportFileName(now, format))
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("write export %s: %w", path, err)
	}
	return path, nil
}
