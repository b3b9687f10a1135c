package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadSymbolsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "symbols.txt")
	content := "aapl\n# comment\n\nMSFT\n  googl  \n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write symbols file: %v", err)
	}

	symbols, err := loadSymbolsFile(path)
	if err != nil {
		t.Fatalf("loadSymbolsFile: %v", err)
	}

	want := []string{"AAPL", "MSFT", "GOOGL"}
	if len(symbols) != len(want) {
		t.Fatalf("expected %d symbols, got %v", len(want), symbols)
	}
	for i, s := range want {
		if symbols[i] != s {
			t.Errorf("symbol %d: got %s, want %s", i, symbols[i], s)
		}
	}
}

func TestLoadSymbolsFileEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.txt")
	if err := os.WriteFile(path, []byte("# only comments\n"), 0644); err != nil {
		t.Fatalf("write symbols file: %v", err)
	}

	if _, err := loadSymbolsFile(path); err == nil {
		t.Error("expected error for file without symbols")
	}
}
