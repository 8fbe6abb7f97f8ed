package session

import (
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/mirrorplan/mirrorplan/internal/log"
	"github.com/mirrorplan/mirrorplan/internal/recommend"
)

// Tracker writes the events of one running session to the event log. Its
// Observe method is meant to be passed to recommend.WithObserver.
type Tracker struct {
	ID     string
	logger *log.Logger
	warn   io.Writer
}

// NewTracker returns a Tracker with a fresh session ID. logger may be nil to
// disable logging; log write failures are reported to warn.
func NewTracker(logger *log.Logger, warn io.Writer) *Tracker {
	if warn == nil {
		warn = io.Discard
	}
	return &Tracker{
		ID:     uuid.New().String(),
		logger: logger,
		warn:   warn,
	}
}

// Observe logs one controller state change.
func (t *Tracker) Observe(ch recommend.Change) {
	switch ch.Op {
	case recommend.OpStart:
		t.append(log.LogEvent{Event: log.EventSessionStarted, Step: string(ch.Snapshot.Step)})
	case recommend.OpRestart:
		t.append(log.LogEvent{Event: log.EventSessionRestarted, Step: string(ch.From)})
	case recommend.OpBack:
		t.append(log.LogEvent{
			Event: log.EventStepBack,
			Step:  string(ch.Snapshot.Step),
			Data:  map[string]interface{}{"from": string(ch.From)},
		})
	case recommend.OpAnswer:
		t.append(log.LogEvent{Event: log.EventAnswerRecorded, Step: string(ch.From), Value: ch.Value})
		if ch.Snapshot.Failed() {
			t.append(log.LogEvent{
				Event:     log.EventRecommendationFailed,
				Step:      string(ch.From),
				Value:     ch.Value,
				Reasoning: ch.Snapshot.Reasoning,
			})
		}
	}
}

// Confirmed logs the confirmation of a resolved strategy.
func (t *Tracker) Confirmed(id string, reasoning []string) {
	t.append(log.LogEvent{Event: log.EventStrategyConfirmed, Strategy: id, Reasoning: reasoning})
}

// Finish builds the history record for a terminal snapshot. It returns nil
// when the snapshot is not at a terminal step.
func (t *Tracker) Finish(snap recommend.Snapshot) *Session {
	var outcome string
	switch {
	case snap.Resolved():
		outcome = OutcomeConfirmed
	case snap.Failed():
		outcome = OutcomeFailed
	default:
		return nil
	}

	answers := make([]Answer, 0, len(snap.Answers))
	for _, a := range snap.Answers {
		answers = append(answers, Answer{Step: string(a.Step), Value: a.Value})
	}
	return &Session{
		ID:        t.ID,
		Goal:      string(snap.Goal),
		Outcome:   outcome,
		Strategy:  string(snap.Strategy),
		Answers:   answers,
		Reasoning: append([]string(nil), snap.Reasoning...),
	}
}

func (t *Tracker) append(ev log.LogEvent) {
	ev.SessionID = t.ID
	if err := t.logger.Append(ev); err != nil {
		fmt.Fprintf(t.warn, "Warning: failed to log %s: %v\n", ev.Event, err)
	}
}
