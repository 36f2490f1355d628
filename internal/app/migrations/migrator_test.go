package migrations

import (
	"io/fs"
	"testing"
	"testing/fstest"
)

func TestVersion(t *testing.T) {
	tests := map[string]string{
		"001_init.sql":        "001",
		"sql/002_ratings.sql": "002",
		"003.sql":             "003",
	}
	for in, want := range tests {
		if got := Version(in); got != want {
			t.Fatalf("Version(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPendingOrdersSQLFiles(t *testing.T) {
	fsys := fstest.MapFS{
		"010_late.sql":  {Data: []byte("SELECT 1;")},
		"002_mid.sql":   {Data: []byte("SELECT 1;")},
		"001_first.sql": {Data: []byte("SELECT 1;")},
		"README.md":     {Data: []byte("notes")},
	}
	got, err := Pending(fsys)
	if err != nil {
		t.Fatalf("Pending: %v", err)
	}
	want := []string{"001_first.sql", "002_mid.sql", "010_late.sql"}
	if len(got) != len(want) {
		t.Fatalf("Pending = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Pending = %v, want %v", got, want)
		}
	}
}

func TestEmbeddedSchema(t *testing.T) {
	files, err := Pending(Files())
	if err != nil {
		t.Fatalf("Pending: %v", err)
	}
	if len(files) == 0 || files[0] != "001_init.sql" {
		t.Fatalf("embedded migrations = %v", files)
	}
	body, err := fs.ReadFile(Files(), files[0])
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(body) == 0 {
		t.Fatal("empty schema")
	}
}
