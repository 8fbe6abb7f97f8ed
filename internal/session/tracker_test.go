package session

import (
	"bytes"
	"testing"

	"github.com/mirrorplan/mirrorplan/internal/log"
	"github.com/mirrorplan/mirrorplan/internal/recommend"
)

func TestTrackerLogsSessionEvents(t *testing.T) {
	logger, err := log.NewLogger(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	var warn bytes.Buffer
	tr := NewTracker(logger, &warn)

	c := recommend.New(recommend.WithObserver(tr.Observe))
	for _, v := range []string{"schemas-data", "no"} {
		if err := c.Answer(v); err != nil {
			t.Fatal(err)
		}
	}
	if err := c.Back(); err != nil {
		t.Fatal(err)
	}
	c.Restart()

	events, err := logger.ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		log.EventSessionStarted,
		log.EventAnswerRecorded,
		log.EventAnswerRecorded,
		log.EventRecommendationFailed,
		log.EventStepBack,
		log.EventSessionRestarted,
	}
	if len(events) != len(want) {
		t.Fatalf("got %d events, want %d: %+v", len(events), len(want), events)
	}
	for i, ev := range events {
		if ev.Event != want[i] {
			t.Errorf("event %d = %q, want %q", i, ev.Event, want[i])
		}
		if ev.SessionID != tr.ID {
			t.Errorf("event %d session = %q, want %q", i, ev.SessionID, tr.ID)
		}
	}
	if events[2].Step != "DETAIL" || events[2].Value != "no" {
		t.Errorf("answer event = %+v", events[2])
	}
	if len(events[3].Reasoning) != 2 {
		t.Errorf("failure event reasoning = %v", events[3].Reasoning)
	}
	if warn.Len() != 0 {
		t.Errorf("unexpected warnings: %s", warn.String())
	}
}

func TestTrackerFinish(t *testing.T) {
	tr := NewTracker(nil, nil)

	c := recommend.New()
	if tr.Finish(c.Snapshot()) != nil {
		t.Error("Finish returned a record for a non-terminal snapshot")
	}

	if err := c.Answer("read-only-test"); err != nil {
		t.Fatal(err)
	}
	rec := tr.Finish(c.Snapshot())
	if rec == nil {
		t.Fatal("Finish returned nil at CONFIRMATION")
	}
	if rec.ID != tr.ID || rec.Outcome != OutcomeConfirmed || rec.Strategy != "LINKED" || rec.Goal != "read-only-test" {
		t.Errorf("Finish = %+v", rec)
	}
	if len(rec.Answers) != 1 || rec.Answers[0].Step != "GOAL" {
		t.Errorf("Finish answers = %+v", rec.Answers)
	}
}
