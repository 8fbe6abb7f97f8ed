package session

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "state", "history.db"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRecordAndGetSession(t *testing.T) {
	store := newTestStore(t)

	sess := &Session{
		Goal:     "schemas-data",
		Outcome:  OutcomeConfirmed,
		Strategy: "HYBRID",
		Answers: []Answer{
			{Step: "GOAL", Value: "schemas-data"},
			{Step: "DETAIL", Value: "yes"},
			{Step: "CHARACTERISTICS", Value: "mixed"},
		},
		Reasoning: []string{"one", "two", "three"},
	}
	if err := store.Record(sess); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if sess.ID == "" {
		t.Fatal("Record did not assign an ID")
	}
	if sess.CreatedAt.IsZero() {
		t.Fatal("Record did not set CreatedAt")
	}

	got, err := store.GetSession(sess.ID)
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if got == nil {
		t.Fatal("GetSession returned nil for a recorded session")
	}
	if diff := cmp.Diff(sess.Answers, got.Answers); diff != "" {
		t.Errorf("answers mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(sess.Reasoning, got.Reasoning); diff != "" {
		t.Errorf("reasoning mismatch (-want +got):\n%s", diff)
	}
	if got.Strategy != "HYBRID" || got.Outcome != OutcomeConfirmed || got.Goal != "schemas-data" {
		t.Errorf("GetSession = %+v", got)
	}
}

func TestGetSessionMissing(t *testing.T) {
	store := newTestStore(t)
	got, err := store.GetSession("does-not-exist")
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if got != nil {
		t.Errorf("GetSession = %+v, want nil", got)
	}
}

func TestRecordFailedSessionWithoutStrategy(t *testing.T) {
	store := newTestStore(t)
	sess := &Session{
		Goal:      "schemas-data",
		Outcome:   OutcomeFailed,
		Answers:   []Answer{{Step: "GOAL", Value: "schemas-data"}, {Step: "DETAIL", Value: "no"}},
		Reasoning: []string{"set up intermediate storage", "use SCHEMA_ONLY"},
	}
	if err := store.Record(sess); err != nil {
		t.Fatalf("Record: %v", err)
	}
	got, err := store.GetSession(sess.ID)
	if err != nil || got == nil {
		t.Fatalf("GetSession = %v, %v", got, err)
	}
	if got.Strategy != "" || got.Outcome != OutcomeFailed {
		t.Errorf("GetSession = %+v", got)
	}
}

func TestListSessionsNewestFirst(t *testing.T) {
	store := newTestStore(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, goal := range []string{"schemas-only", "extract-schemas", "shared-storage"} {
		sess := &Session{
			Goal:      goal,
			Outcome:   OutcomeConfirmed,
			Strategy:  "X",
			Answers:   []Answer{{Step: "GOAL", Value: goal}},
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}
		if err := store.Record(sess); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	sums, err := store.ListSessions(2)
	if err != nil {
		t.Fatalf("ListSessions: %v", err)
	}
	if len(sums) != 2 {
		t.Fatalf("ListSessions returned %d, want 2", len(sums))
	}
	if sums[0].Goal != "shared-storage" || sums[1].Goal != "extract-schemas" {
		t.Errorf("order = %s, %s", sums[0].Goal, sums[1].Goal)
	}
	if sums[0].Answers != 1 {
		t.Errorf("Answers = %d, want 1", sums[0].Answers)
	}
}
