package export

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/klauspost/compress/gzip"

	"cbx/internal/errors"
	"cbx/internal/loader"
	"cbx/internal/logging"
	"cbx/internal/session"
)

func newTestExporter(t *testing.T, loaded bool) (*Exporter, *session.Cache) {
	t.Helper()
	cache := session.New(time.Hour)
	if loaded {
		cache.Put(&loader.Context{
			ProjectPath: "/proj/demo",
			Text:        "blob",
			Files: []loader.FileRef{
				{Path: "main.go", Language: "go", Tokens: 120, Score: 2.34},
				{Path: "util.go", Language: "go", Tokens: 80, Score: 1.56},
			},
			TotalTokens: 200,
			GeneratedAt: time.Now(),
		})
	}
	return New(cache, logging.NewDiscardLogger()), cache
}

func TestExportEmptyCache(t *testing.T) {
	e, _ := newTestExporter(t, false)

	_, err := e.Export(Options{Destination: filepath.Join(t.TempDir(), "out.md")})
	if !errors.IsCode(err, errors.NoContext) {
		t.Errorf("error = %v, want NO_CONTEXT", err)
	}
}

func TestExportWithoutAnalyses(t *testing.T) {
	e, _ := newTestExporter(t, true)
	dest := filepath.Join(t.TempDir(), "session.md")

	written, err := e.Export(Options{Destination: dest})
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if written != dest {
		t.Errorf("written path = %q, want %q", written, dest)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	doc := string(data)

	for _, want := range []string{
		"---\n",
		"project: /proj/demo",
		"## Ranked files",
		"| 1 | main.go | go | 120 | 2.34 |",
		"No analyses recorded.",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %q", want)
		}
	}
}

func TestExportIncludesAnalyses(t *testing.T) {
	e, cache := newTestExporter(t, true)
	cache.Remember("search", "where is the loader", "in internal/loader")

	dest := filepath.Join(t.TempDir(), "session.md")
	if _, err := e.Export(Options{Destination: dest}); err != nil {
		t.Fatal(err)
	}

	data, _ := os.ReadFile(dest)
	doc := string(data)
	if !strings.Contains(doc, "**Query:** where is the loader") {
		t.Error("analysis query missing from document")
	}
	if !strings.Contains(doc, "in internal/loader") {
		t.Error("analysis response missing from document")
	}
}

func TestExportUnwritableDestination(t *testing.T) {
	e, _ := newTestExporter(t, true)

	_, err := e.Export(Options{Destination: filepath.Join(t.TempDir(), "missing", "deep", "out.md")})
	if !errors.IsCode(err, errors.WriteError) {
		t.Errorf("error = %v, want WRITE_ERROR", err)
	}
}

func TestExportGzip(t *testing.T) {
	e, _ := newTestExporter(t, true)
	dest := filepath.Join(t.TempDir(), "session.md")

	written, err := e.Export(Options{Destination: dest, Compress: true})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(written, ".gz") {
		t.Errorf("compressed export should get .gz suffix, got %q", written)
	}

	data, err := os.ReadFile(written)
	if err != nil {
		t.Fatal(err)
	}
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not valid gzip: %v", err)
	}
	doc, err := io.ReadAll(zr)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(doc), "## Ranked files") {
		t.Error("decompressed document missing file section")
	}
}
