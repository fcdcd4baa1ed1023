package cache

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/ZaguanLabs/linguachain"
)

// FormatVersion is written to every export.
const FormatVersion = "2"

// ExportFormat represents the JSON structure for cache export/import.
type ExportFormat struct {
	Version    string            `json:"version"`
	ExportedAt string            `json:"exported_at"`
	Entries    []ExportEntry     `json:"entries"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// ExportEntry is one cached translation. Result holds the cached
// linguachain.Result JSON.
type ExportEntry struct {
	Key    string          `json:"key"`
	Result json.RawMessage `json:"result"`
}

// Exporter writes cache snapshots.
type Exporter struct {
	cache Snapshotter
}

// NewExporter creates an exporter. It fails for caches that cannot list
// their contents.
func NewExporter(cache TranslationCache) (*Exporter, error) {
	s, ok := cache.(Snapshotter)
	if !ok {
		return nil, &linguachain.CacheError{Message: fmt.Sprintf("cache type %T does not support export", cache)}
	}
	return &Exporter{cache: s}, nil
}

// Export writes the cache contents as indented JSON, sorted by key. Entries
// that are not valid translation results are left out.
func (e *Exporter) Export(w io.Writer, metadata map[string]string) (int, error) {
	data, err := e.cache.Entries()
	if err != nil {
		return 0, &linguachain.CacheError{Message: "list entries", Cause: err}
	}

	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	entries := make([]ExportEntry, 0, len(keys))
	for _, k := range keys {
		if !validResult(data[k]) {
			continue
		}
		entries = append(entries, ExportEntry{Key: k, Result: json.RawMessage(data[k])})
	}

	export := ExportFormat{
		Version:    FormatVersion,
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Entries:    entries,
		Metadata:   metadata,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(export); err != nil {
		return 0, fmt.Errorf("encoding JSON: %w", err)
	}

	return len(entries), nil
}

// ExportToFile exports the cache to a file.
// The path is provided by the caller and is intentionally user-controlled.
func (e *Exporter) ExportToFile(path string, metadata map[string]string) (int, error) {
	f, err := os.Create(path) // #nosec G304 - path is intentionally user-provided
	if err != nil {
		return 0, fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	return e.Export(f, metadata)
}

// Importer loads snapshots written by Exporter.
type Importer struct {
	cache TranslationCache
}

// NewImporter creates a new cache importer.
func NewImporter(cache TranslationCache) *Importer {
	return &Importer{cache: cache}
}

// ImportResult contains statistics about the import operation.
type ImportResult struct {
	Version  string
	Metadata map[string]string
	Imported int
	Skipped  int // entries with a blank key or an unusable result
	Failed   int // entries the cache refused
}

// Import reads a snapshot and stores its entries.
func (i *Importer) Import(r io.Reader) (*ImportResult, error) {
	var export ExportFormat
	if err := json.NewDecoder(r).Decode(&export); err != nil {
		return nil, fmt.Errorf("decoding JSON: %w", err)
	}
	if export.Version != FormatVersion {
		return nil, fmt.Errorf("unsupported export version %q", export.Version)
	}

	result := &ImportResult{
		Version:  export.Version,
		Metadata: export.Metadata,
	}

	for _, entry := range export.Entries {
		var compact bytes.Buffer
		if err := json.Compact(&compact, entry.Result); err != nil {
			result.Skipped++
			continue
		}
		value := compact.String()
		if strings.TrimSpace(entry.Key) == "" || !validResult(value) {
			result.Skipped++
			continue
		}
		if err := i.cache.Set(entry.Key, value); err != nil {
			result.Failed++
			continue
		}
		result.Imported++
	}

	return result, nil
}

// ImportFromFile imports cache entries from a file.
// The path is provided by the caller and is intentionally user-controlled.
func (i *Importer) ImportFromFile(path string) (*ImportResult, error) {
	f, err := os.Open(path) // #nosec G304 - path is intentionally user-provided
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return i.Import(f)
}

// validResult reports whether value decodes to a result with text.
func validResult(value string) bool {
	var r linguachain.Result
	if err := json.Unmarshal([]byte(value), &r); err != nil {
		return false
	}
	return strings.TrimSpace(r.TranslatedText) != ""
}
