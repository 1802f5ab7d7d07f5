package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

// TestDefaultCatalog verifies the embedded catalog loads and is usable.
func TestDefaultCatalog(t *testing.T) {
	ix, err := Default()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ix.Len() == 0 {
		t.Fatal("embedded catalog is empty")
	}
	if _, ok := ix.LookupNormalized("squat"); !ok {
		t.Error("embedded catalog has no squat entry")
	}
}

// TestNewEmpty verifies an empty catalog is rejected at build time.
func TestNewEmpty(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Fatal("expected error for empty catalog")
	}
}

// TestNewUnnamedEntry verifies entries without names are rejected.
func TestNewUnnamedEntry(t *testing.T) {
	_, err := New([]Entry{{Name: "Squat"}, {Name: ""}})
	if err == nil {
		t.Fatal("expected error for unnamed entry")
	}
}

// TestLoadFile verifies YAML catalog loading from disk.
func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	yaml := `
- name: Squat
  categories: [squat]
- name: Deadlift
  categories: [deadlift, hinge]
`
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	ix, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ix.Len() != 2 {
		t.Errorf("Len() = %d, want 2", ix.Len())
	}
	if ix.Entry(0).Name != "Squat" {
		t.Errorf("entry 0 = %q, want Squat", ix.Entry(0).Name)
	}
}

// TestLoadMissingFile verifies a missing catalog file is a clear error.
func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/catalog.yaml"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

// TestByCategory verifies category filtering preserves insertion order.
func TestByCategory(t *testing.T) {
	ix, err := New([]Entry{
		{Name: "Squat", Categories: []string{"squat"}},
		{Name: "Deadlift", Categories: []string{"hinge"}},
		{Name: "Front Squat", Categories: []string{"squat"}},
	})
	if err != nil {
		t.Fatal(err)
	}

	got := ix.ByCategory("squat")
	if len(got) != 2 {
		t.Fatalf("ByCategory(squat) = %d entries, want 2", len(got))
	}
	if got[0].Name != "Squat" || got[1].Name != "Front Squat" {
		t.Errorf("ByCategory order = %q, %q; want Squat, Front Squat", got[0].Name, got[1].Name)
	}
}

// TestNormalizedCollisionFirstWins verifies the first entry claims a
// normalized form when two entries collide.
func TestNormalizedCollisionFirstWins(t *testing.T) {
	ix, err := New([]Entry{
		{Name: "Push Up"},
		{Name: "push-up"},
	})
	if err != nil {
		t.Fatal(err)
	}
	e, ok := ix.LookupNormalized("push up")
	if !ok {
		t.Fatal("LookupNormalized(push up) missed")
	}
	if e.Name != "Push Up" {
		t.Errorf("collision winner = %q, want %q", e.Name, "Push Up")
	}
}
