package tui

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/KaramelBytes/pricebook-cli/internal/layout"
)

type fakeSource struct {
	names   []string
	rows    map[string][][]string
	regPath string
	loads   int
}

func (f *fakeSource) Datasets() ([]string, error) { return f.names, nil }

func (f *fakeSource) LoadDataset(name string) (layout.Result, error) {
	f.loads++
	rows, ok := f.rows[name]
	if !ok {
		return layout.Result{}, errors.New("no such dataset")
	}
	return layout.Compute(rows, layout.DefaultPolicy()), nil
}

func (f *fakeSource) SearchDataset(name, query string) (layout.Result, error) {
	rows, ok := f.rows[name]
	if !ok {
		return layout.Result{}, errors.New("no such dataset")
	}
	return layout.Filter(rows, query, layout.DefaultPolicy()), nil
}

func (f *fakeSource) RegistryPath() string { return f.regPath }

func newTestBrowser(t *testing.T) (*Browser, *fakeSource) {
	t.Helper()
	src := &fakeSource{
		names: []string{"prices", "stale"},
		rows: map[string][][]string{
			"prices": {{"Widget", "1.00"}, {"Gadget", "2.50"}, {"Widget Pro", "9.99"}},
		},
	}
	b, err := New(src, NewZoom(8, 26, 2, 14), log.New(io.Discard))
	if err != nil {
		t.Fatalf("new browser: %v", err)
	}
	return b, src
}

func cellText(b *Browser, row, col int) string {
	return strings.TrimSpace(b.table.GetCell(row, col).Text)
}

func TestBrowserSelectLoadsDataset(t *testing.T) {
	b, _ := newTestBrowser(t)
	b.selector.SetText("prices")
	b.selectDataset()
	if got := b.table.GetRowCount(); got != 3 {
		t.Fatalf("expected 3 rows, got %d", got)
	}
	if cellText(b, 1, 0) != "2" || cellText(b, 1, 1) != "Gadget" {
		t.Fatalf("unexpected row 1: %q %q", cellText(b, 1, 0), cellText(b, 1, 1))
	}
}

func TestBrowserSearchKeepsSourceRowNumbers(t *testing.T) {
	b, _ := newTestBrowser(t)
	b.selector.SetText("prices")
	b.search.SetText("widget")
	b.runSearch()
	if got := b.table.GetRowCount(); got != 2 {
		t.Fatalf("expected 2 rows, got %d", got)
	}
	if cellText(b, 1, 0) != "3" || cellText(b, 1, 1) != "Widget Pro" {
		t.Fatalf("unexpected second match: %q %q", cellText(b, 1, 0), cellText(b, 1, 1))
	}
}

func TestBrowserLoadErrorClearsTable(t *testing.T) {
	b, _ := newTestBrowser(t)
	b.selector.SetText("prices")
	b.selectDataset()
	b.selector.SetText("stale")
	b.selectDataset()
	if got := b.table.GetRowCount(); got != 0 {
		t.Fatalf("table should be cleared after a failed load, has %d rows", got)
	}
	if !strings.Contains(b.status.GetText(true), "no such dataset") {
		t.Fatalf("status should report the failure: %q", b.status.GetText(true))
	}
}

func TestBrowserUnknownNameSkipsLoad(t *testing.T) {
	b, src := newTestBrowser(t)
	b.selector.SetText("prices")
	b.selectDataset()
	b.selector.SetText("Prices")
	b.selectDataset()
	if src.loads != 1 {
		t.Fatalf("unknown name should not reach the loader, loads=%d", src.loads)
	}
	if got := b.table.GetRowCount(); got != 0 {
		t.Fatalf("table should be cleared for an unknown name, has %d rows", got)
	}
	if !strings.Contains(b.status.GetText(true), "unknown price list") {
		t.Fatalf("status should name the problem: %q", b.status.GetText(true))
	}
}

func TestBrowserSearchOnlyDefersLoad(t *testing.T) {
	b, src := newTestBrowser(t)
	b.searchOnly.SetChecked(true)
	b.selector.SetText("prices")
	b.selectDataset()
	if src.loads != 0 || b.table.GetRowCount() != 0 {
		t.Fatalf("search-only mode should not load on selection")
	}
	b.runSearch()
	if b.table.GetRowCount() != 3 {
		t.Fatalf("empty search should show the whole dataset")
	}
}

func TestBrowserZoomChangesCellWidth(t *testing.T) {
	b, _ := newTestBrowser(t)
	b.selector.SetText("prices")
	b.selectDataset()
	before := len(b.table.GetCell(0, 1).Text)
	b.zoomIn()
	after := len(b.table.GetCell(0, 1).Text)
	if after != before+2 {
		t.Fatalf("expected cell to widen by one zoom step, %d -> %d", before, after)
	}
}

func TestWatchFileSeesAppend(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "reg.txt")
	changed := make(chan struct{}, 8)
	stop, err := watchFile(p, func() { changed <- struct{}{} }, nil)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	defer stop()
	if err := os.WriteFile(p, []byte("\nprices"), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification")
	}
}
