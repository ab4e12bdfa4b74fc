package prefs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadColumns_MissingFileMeansAllVisible(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	if cols := LoadColumns(""); len(cols) != 0 {
		t.Fatalf("LoadColumns = %#v, want empty mapping", cols)
	}
}

func TestLoadColumns_CorruptFileMeansAllVisible(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "columns_v1.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if cols := LoadColumns(path); len(cols) != 0 {
		t.Fatalf("LoadColumns = %#v, want empty mapping for corrupt storage", cols)
	}
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "nested", "columns_v1.json")

	want := map[string]bool{"phone": false, "name": true}
	if err := SaveColumns(path, want); err != nil {
		t.Fatalf("SaveColumns: %v", err)
	}

	got := LoadColumns(path)
	if len(got) != len(want) || got["phone"] || !got["name"] {
		t.Fatalf("LoadColumns = %#v, want %#v", got, want)
	}
}

func TestLoadColumns_DefaultPathUsesHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".config", "kartei")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "columns_v1.json"), []byte(`{"street":false}`), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cols := LoadColumns("")
	if v, ok := cols["street"]; !ok || v {
		t.Fatalf("LoadColumns = %#v, want street hidden", cols)
	}
}
