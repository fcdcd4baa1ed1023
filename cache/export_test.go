package cache

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const (
	holaResult = `{"translatedText":"Hola","provider":"google"}`
	haloResult  = `{"translatedText":"హలో","pronunciation":"halo","provider":"google"}`
)

func TestExporter_Export(t *testing.T) {
	c := NewMemoryCache(time.Hour, 0)
	c.Set("h2:te", haloResult)
	c.Set("h1:es", holaResult)
	c.Set("junk:es", "not a result")

	exporter, err := NewExporter(c)
	if err != nil {
		t.Fatalf("NewExporter() error = %v", err)
	}

	var buf bytes.Buffer
	n, err := exporter.Export(&buf, map[string]string{"source": "test"})
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if n != 2 {
		t.Errorf("exported %d entries, want 2", n)
	}

	var export ExportFormat
	if err := json.Unmarshal(buf.Bytes(), &export); err != nil {
		t.Fatalf("Failed to parse export: %v", err)
	}

	if export.Version != FormatVersion {
		t.Errorf("Version = %q, want %q", export.Version, FormatVersion)
	}
	if len(export.Entries) != 2 || export.Entries[0].Key != "h1:es" || export.Entries[1].Key != "h2:te" {
		t.Errorf("Entries = %+v, want sorted valid entries", export.Entries)
	}
	if export.Metadata["source"] != "test" {
		t.Errorf("Metadata = %v", export.Metadata)
	}
}

// plainCache cannot list its contents.
type plainCache struct{}

func (plainCache) Get(string) (string, bool) { return "", false }
func (plainCache) Set(string, string) error  { return nil }

func TestNewExporter_Unsupported(t *testing.T) {
	if _, err := NewExporter(plainCache{}); err == nil {
		t.Error("NewExporter should reject caches without Entries")
	}
}

func TestImporter_Import(t *testing.T) {
	jsonData := `{
		"version": "2",
		"exported_at": "2024-01-01T00:00:00Z",
		"entries": [
			{"key": "h1:es", "result": {"translatedText":"Hola"}},
			{"key": "h2:te", "result": {"translatedText":"హలో","pronunciation":"halo"}},
			{"key": "h3:fr", "result": {"translatedText":"  "}},
			{"key": "", "result": {"translatedText":"x"}}
		],
		"metadata": {"source": "test"}
	}`

	c := NewMemoryCache(time.Hour, 0)
	result, err := NewImporter(c).Import(strings.NewReader(jsonData))
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	if result.Imported != 2 || result.Skipped != 2 || result.Failed != 0 {
		t.Errorf("result = %+v, want 2 imported and 2 skipped", result)
	}
	if result.Metadata["source"] != "test" {
		t.Errorf("Metadata = %v", result.Metadata)
	}

	val, ok := c.Get("h2:te")
	if !ok || !strings.Contains(val, "halo") {
		t.Errorf("Get(h2:te) = (%q, %v)", val, ok)
	}
}

func TestImporter_WrongVersion(t *testing.T) {
	c := NewMemoryCache(0, 0)
	_, err := NewImporter(c).Import(strings.NewReader(`{"version":"1.0","entries":[]}`))
	if err == nil {
		t.Error("Import should reject other format versions")
	}
}

func TestImporter_InvalidJSON(t *testing.T) {
	c := NewMemoryCache(0, 0)
	if _, err := NewImporter(c).Import(strings.NewReader("not json")); err == nil {
		t.Error("Import should fail for invalid JSON")
	}
}

// failingCache refuses every write.
type failingCache struct{ plainCache }

func (failingCache) Set(string, string) error { return errors.New("read only") }

func TestImporter_CountsFailures(t *testing.T) {
	data := `{"version":"2","entries":[{"key":"k","result":{"translatedText":"x"}}]}`
	result, err := NewImporter(failingCache{}).Import(strings.NewReader(data))
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if result.Failed != 1 || result.Imported != 0 {
		t.Errorf("result = %+v, want 1 failed", result)
	}
}

func TestExportImportFile(t *testing.T) {
	src := NewMemoryCache(0, 0)
	src.Set("h1:es", holaResult)
	src.Set("h2:te", haloResult)

	path := filepath.Join(t.TempDir(), "cache.json")
	exporter, _ := NewExporter(src)
	if _, err := exporter.ExportToFile(path, nil); err != nil {
		t.Fatalf("ExportToFile failed: %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("export file missing: %v", err)
	}

	dst := NewMemoryCache(0, 0)
	result, err := NewImporter(dst).ImportFromFile(path)
	if err != nil {
		t.Fatalf("ImportFromFile failed: %v", err)
	}
	if result.Imported != 2 {
		t.Errorf("Imported = %d, want 2", result.Imported)
	}

	want, _ := src.Entries()
	got, _ := dst.Entries()
	for k, v := range want {
		var a, b map[string]interface{}
		_ = json.Unmarshal([]byte(v), &a)
		_ = json.Unmarshal([]byte(got[k]), &b)
		if a["translatedText"] != b["translatedText"] || a["pronunciation"] != b["pronunciation"] {
			t.Errorf("entry %s = %s, want %s", k, got[k], v)
		}
	}
}

func TestImportFromFile_Missing(t *testing.T) {
	c := NewMemoryCache(0, 0)
	if _, err := NewImporter(c).ImportFromFile(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("ImportFromFile should fail for a missing file")
	}
}
