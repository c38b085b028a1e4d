package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

// runCmd executes the root command with args and stdin, returning stdout.
func runCmd(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	// Reset sticky flags that may persist Changed state across invocations
	for _, name := range []string{"yes", "no"} {
		if fl := importCmd.Flags().Lookup(name); fl != nil {
			_ = fl.Value.Set("false")
			fl.Changed = false
		}
	}
	if fl := rootCmd.PersistentFlags().Lookup("data-dir"); fl != nil {
		_ = fl.Value.Set("")
		fl.Changed = false
	}
	showFormat, searchFormat = "table", "table"
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, stdin string, args ...string) string {
	t.Helper()
	out, err := runCmd(t, stdin, args...)
	if err != nil {
		t.Fatalf("command %v failed: %v", args, err)
	}
	return out
}

func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	oldHome := os.Getenv("HOME")
	t.Cleanup(func() { os.Setenv("HOME", oldHome) })
	os.Setenv("HOME", home)
	return home
}

func TestCLI_ImportListShowSearch(t *testing.T) {
	home := isolateHome(t)
	src := filepath.Join(home, "hardware.csv")
	if err := os.WriteFile(src, []byte("Bolt M6;0.10\nNut M6;0.05\nWasher M8;0.02\n"), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	out := mustRun(t, "", "import", src)
	if !strings.Contains(out, "✓ Imported hardware") {
		t.Fatalf("unexpected import output: %q", out)
	}

	out = mustRun(t, "", "list")
	if !strings.Contains(out, "- hardware") {
		t.Fatalf("list missing dataset: %q", out)
	}

	out = mustRun(t, "", "show", "hardware", "--format", "cells")
	if !strings.Contains(out, "1\t0\t1\tNut M6\n") {
		t.Fatalf("show missing cell tuple: %q", out)
	}

	out = mustRun(t, "", "search", "hardware", "m6", "--format", "tsv")
	if out != "Bolt M6\t0.10\nNut M6\t0.05\n" {
		t.Fatalf("unexpected search output: %q", out)
	}

	out = mustRun(t, "", "search", "hardware", "m6")
	if !strings.Contains(out, "Bolt M6") || strings.Contains(out, "Washer") {
		t.Fatalf("unexpected table output: %q", out)
	}

	out = mustRun(t, "", "search", "hardware", "titanium")
	if !strings.Contains(out, "(no matching rows)") {
		t.Fatalf("expected no matches: %q", out)
	}
}

func TestCLI_ShowMissingDatasetFails(t *testing.T) {
	isolateHome(t)
	if _, err := runCmd(t, "", "show", "nothing"); err == nil {
		t.Fatal("expected error for unknown dataset")
	}
}

func TestCLI_ImportConflictPrompt(t *testing.T) {
	home := isolateHome(t)
	src := filepath.Join(home, "stock.xlsx")
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", "Bolts"); err != nil {
		t.Fatal(err)
	}
	if _, err := f.NewSheet("Nuts"); err != nil {
		t.Fatal(err)
	}
	if err := f.SetCellValue("Bolts", "A1", "M6"); err != nil {
		t.Fatal(err)
	}
	if err := f.SetCellValue("Nuts", "A1", "M6"); err != nil {
		t.Fatal(err)
	}
	if err := f.SaveAs(src); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	f.Close()

	out := mustRun(t, "", "import", src)
	if strings.Count(out, "✓ Imported") != 2 {
		t.Fatalf("expected two sheets imported: %q", out)
	}

	// Overwrite the first sheet, decline the second.
	out = mustRun(t, "y\nn\n", "import", src)
	if !strings.Contains(out, "✓ Overwrote Bolts_stock") || !strings.Contains(out, "⚠ Skipped Nuts_stock") {
		t.Fatalf("unexpected conflict output: %q", out)
	}

	out = mustRun(t, "", "import", "--no", src)
	if strings.Count(out, "⚠ Skipped") != 2 {
		t.Fatalf("--no should skip both sheets: %q", out)
	}

	out = mustRun(t, "", "list")
	if strings.Count(out, "- ") != 2 {
		t.Fatalf("registry should hold exactly two names: %q", out)
	}
}

func TestCLI_ConfigSetSpanWidth(t *testing.T) {
	isolateHome(t)
	mustRun(t, "", "config", "set", "span_width", "6")
	out := mustRun(t, "", "config", "show")
	if !strings.Contains(out, "span_width: 6") {
		t.Fatalf("config not persisted: %q", out)
	}
	if _, err := runCmd(t, "", "config", "set", "zoom_default", "99"); err == nil {
		t.Fatal("expected validation error for zoom_default outside bounds")
	}
}

func TestCLI_ConfigSetIgnoresDataDirFlag(t *testing.T) {
	home := isolateHome(t)
	other := filepath.Join(home, "elsewhere")
	mustRun(t, "", "--data-dir", other, "config", "set", "zoom_max", "30")

	b, err := os.ReadFile(filepath.Join(home, ".pricebook", "config.yaml"))
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	if strings.Contains(string(b), "data_dir") {
		t.Fatalf("data_dir should not be persisted:\n%s", b)
	}
	if !strings.Contains(string(b), "zoom_max: 30") {
		t.Fatalf("zoom_max not persisted:\n%s", b)
	}

	out := mustRun(t, "", "config", "show")
	if !strings.Contains(out, "data_dir: "+filepath.Join(home, ".pricebook", "data")) {
		t.Fatalf("expected default data dir after flag-free run: %q", out)
	}
}
