package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mirrorplan/mirrorplan/internal/recommend"
	"github.com/mirrorplan/mirrorplan/internal/strategy"
)

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
)

// press feeds msgs through Update and returns the final model and the last
// command.
func press(t *testing.T, m WizardModel, msgs ...tea.Msg) (WizardModel, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(WizardModel)
	}
	return m, cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestWizardNumberKeysReachConfirmation(t *testing.T) {
	m := NewWizardModel(recommend.New())

	// schemas-data, yes, mixed
	m, _ = press(t, m, keyRunes("1"), keyRunes("1"), keyRunes("1"))
	snap := m.Snapshot()
	if snap.Step != recommend.StepConfirmation || snap.Strategy != strategy.Hybrid {
		t.Fatalf("snapshot = %+v", snap)
	}

	m, cmd := press(t, m, keyEnter)
	if !m.Confirmed() {
		t.Error("enter at CONFIRMATION did not confirm")
	}
	if !isQuit(cmd) {
		t.Error("confirming did not quit")
	}
}

func TestWizardArrowSelection(t *testing.T) {
	m := NewWizardModel(recommend.New())

	m, _ = press(t, m, keyDown, keyDown, keyDown, keyUp, keyEnter)
	// Third GOAL option.
	if got := m.Snapshot().Goal; got != recommend.GoalIceberg {
		t.Fatalf("goal = %q, want %q", got, recommend.GoalIceberg)
	}
	if m.selected != 0 {
		t.Errorf("selection not reset after answering: %d", m.selected)
	}

	m, _ = press(t, m, keyUp, keyUp)
	if m.selected != 0 {
		t.Errorf("selection moved above the first option: %d", m.selected)
	}
}

func TestWizardBackRestoresSelection(t *testing.T) {
	m := NewWizardModel(recommend.New())
	m, _ = press(t, m, keyRunes("1"), keyRunes("2"))
	if m.Snapshot().Strategy != strategy.SQL {
		t.Fatalf("snapshot = %+v", m.Snapshot())
	}

	m, _ = press(t, m, keyRunes("b"))
	if m.Snapshot().Step != recommend.StepDetail {
		t.Fatalf("step = %s, want DETAIL", m.Snapshot().Step)
	}
	if m.selected != 1 {
		t.Errorf("selected = %d, want the previous answer at 1", m.selected)
	}
	if len(m.Snapshot().Reasoning) != 0 {
		t.Errorf("reasoning survived Back: %v", m.Snapshot().Reasoning)
	}
}

func TestWizardBackAtGoalShowsError(t *testing.T) {
	m := NewWizardModel(recommend.New())
	m, _ = press(t, m, keyRunes("b"))
	if m.err == nil {
		t.Fatal("Back at GOAL did not surface an error")
	}
	if !strings.Contains(m.View(), "nothing to go back to") {
		t.Error("view does not show the Back error")
	}

	m, _ = press(t, m, keyRunes("1"))
	if m.err != nil {
		t.Errorf("error not cleared after a valid answer: %v", m.err)
	}
}

func TestWizardErrorStep(t *testing.T) {
	m := NewWizardModel(recommend.New())
	m, _ = press(t, m, keyRunes("1"), keyRunes("3"))
	if m.Snapshot().Step != recommend.StepError {
		t.Fatalf("step = %s, want ERROR", m.Snapshot().Step)
	}

	m, cmd := press(t, m, keyEnter)
	if m.Confirmed() || cmd != nil {
		t.Error("enter at ERROR should do nothing")
	}
	view := m.View()
	for _, want := range []string{"No strategy fits", "SCHEMA_ONLY", "distcp"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	m, _ = press(t, m, keyRunes("r"))
	if snap := m.Snapshot(); snap.Step != recommend.StepGoal || len(snap.Answers) != 0 {
		t.Errorf("restart left %+v", snap)
	}
}

func TestWizardQuit(t *testing.T) {
	m := NewWizardModel(recommend.New())
	m, cmd := press(t, m, keyRunes("q"))
	if !isQuit(cmd) {
		t.Error("q did not quit")
	}
	if m.Confirmed() {
		t.Error("quitting confirmed a strategy")
	}
	if m.View() != "" {
		t.Error("view not cleared after quitting")
	}
}

func TestWizardOutOfRangeNumber(t *testing.T) {
	m := NewWizardModel(recommend.New())
	m, _ = press(t, m, keyRunes("9"))
	if m.Snapshot().Step != recommend.StepGoal {
		t.Errorf("out-of-range option changed step to %s", m.Snapshot().Step)
	}
}

func TestWizardViewShowsQuestion(t *testing.T) {
	m := NewWizardModel(recommend.New())
	view := m.View()
	q, _ := recommend.QuestionFor(recommend.StepGoal, recommend.NoGoal)
	if !strings.Contains(view, q.Text) {
		t.Errorf("view missing question text %q", q.Text)
	}
	for _, opt := range q.Options {
		if !strings.Contains(view, opt.Label) {
			t.Errorf("view missing option %q", opt.Label)
		}
	}
}
