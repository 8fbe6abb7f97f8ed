package document

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/mirrorplan/mirrorplan/internal/recommend"
	"github.com/mirrorplan/mirrorplan/internal/strategy"
	"github.com/mirrorplan/mirrorplan/internal/testutil"
)

func fixedClock(ts ...time.Time) func() time.Time {
	i := 0
	return func() time.Time {
		t := ts[i]
		if i < len(ts)-1 {
			i++
		}
		return t
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "configs"))
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store.now = fixedClock(created)

	doc := &Document{
		Name:         "warehouse",
		DataStrategy: strategy.Hybrid,
		Comment:      "nightly copy",
		Answers: recommend.Answers{
			{Step: recommend.StepGoal, Value: "schemas-data"},
			{Step: recommend.StepDetail, Value: "yes"},
			{Step: recommend.StepCharacteristics, Value: "mixed"},
		},
		Reasoning: []string{"a", "b"},
	}
	if err := store.Save(doc); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Load("warehouse")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(doc, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveKeepsCreatedAt(t *testing.T) {
	store := NewStore(t.TempDir())
	first := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	second := first.Add(24 * time.Hour)
	store.now = fixedClock(first, second)

	if err := store.Save(&Document{Name: "lake", DataStrategy: strategy.Dump}); err != nil {
		t.Fatal(err)
	}
	doc := &Document{Name: "lake", DataStrategy: strategy.SQL}
	if err := store.Save(doc); err != nil {
		t.Fatal(err)
	}

	got, err := store.Load("lake")
	if err != nil {
		t.Fatal(err)
	}
	if !got.CreatedAt.Equal(first) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, first)
	}
	if !got.UpdatedAt.Equal(second) {
		t.Errorf("UpdatedAt = %v, want %v", got.UpdatedAt, second)
	}
	if got.DataStrategy != strategy.SQL {
		t.Errorf("DataStrategy = %s, want SQL", got.DataStrategy)
	}
}

func TestLoadFixture(t *testing.T) {
	dir := testutil.TempProject(t, testutil.HybridDocument("warehouse"))
	store := NewStore(dir)

	got, err := store.Load("warehouse")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.DataStrategy != strategy.Hybrid {
		t.Errorf("DataStrategy = %s", got.DataStrategy)
	}
	if v, _ := got.Answers.Get(recommend.StepDetail); v != "yes" {
		t.Errorf("DETAIL answer = %q, want yes", v)
	}
}

func TestMissingAndInvalidNames(t *testing.T) {
	store := NewStore(t.TempDir())

	if _, err := store.Load("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load missing: err = %v, want ErrNotFound", err)
	}
	if err := store.Delete("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete missing: err = %v, want ErrNotFound", err)
	}

	for _, name := range []string{"", "../escape", ".hidden", "a/b", "with space"} {
		if err := store.Save(&Document{Name: name}); !errors.Is(err, ErrInvalidName) {
			t.Errorf("Save(%q): err = %v, want ErrInvalidName", name, err)
		}
	}
}

func TestListAndDelete(t *testing.T) {
	dir := testutil.TempProject(t, testutil.Merge(
		testutil.HybridDocument("zeta"),
		testutil.HybridDocument("alpha"),
		map[string]string{"notes.txt": "ignored", "sub/inner.yaml": "ignored"},
	))
	store := NewStore(dir)

	names, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"alpha", "zeta"}, names); diff != "" {
		t.Errorf("List mismatch (-want +got):\n%s", diff)
	}

	if err := store.Delete("alpha"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "alpha.yaml")); !os.IsNotExist(err) {
		t.Errorf("alpha.yaml still present: %v", err)
	}
}

func TestListMissingDirectory(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "absent"))
	names, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 0 {
		t.Errorf("List = %v, want empty", names)
	}
}

func TestFromResult(t *testing.T) {
	c := recommend.New()
	if _, err := FromResult("x", c.Snapshot(), ""); err == nil {
		t.Error("FromResult accepted an unresolved session")
	}

	if err := c.Answer("storage-migration"); err != nil {
		t.Fatal(err)
	}
	doc, err := FromResult("move", c.Snapshot(), "bucket move")
	if err != nil {
		t.Fatalf("FromResult: %v", err)
	}
	if doc.DataStrategy != strategy.StorageMigration || doc.Comment != "bucket move" || len(doc.Answers) != 1 {
		t.Errorf("FromResult = %+v", doc)
	}
}
