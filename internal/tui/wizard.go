package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mirrorplan/mirrorplan/internal/recommend"
	"github.com/mirrorplan/mirrorplan/internal/strategy"
)

// maxWizardWidth is the maximum width for the wizard box.
const maxWizardWidth = 90

// trail is the step sequence shown at the top of the wizard.
var trail = []recommend.Step{recommend.StepGoal, recommend.StepDetail, recommend.StepCharacteristics}

// WizardModel walks the operator through the questionnaire.
type WizardModel struct {
	ctrl      *recommend.Controller
	keys      KeyMap
	help      help.Model
	selected  int
	err       error
	confirmed bool
	quitting  bool
	width     int
	height    int
}

// NewWizardModel returns a wizard driving ctrl.
func NewWizardModel(ctrl *recommend.Controller) WizardModel {
	return WizardModel{
		ctrl:  ctrl,
		keys:  DefaultKeyMap,
		help:  help.New(),
		width: maxWizardWidth + 4,
	}
}

// Confirmed reports whether the operator accepted the recommendation.
func (m WizardModel) Confirmed() bool {
	return m.confirmed
}

// Snapshot returns the controller state.
func (m WizardModel) Snapshot() recommend.Snapshot {
	return m.ctrl.Snapshot()
}

// Init returns the initial command for the wizard.
func (m WizardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the wizard.
func (m WizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m WizardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Restart):
		m.ctrl.Restart()
		m.selected = 0
		m.err = nil
		return m, nil

	case key.Matches(msg, m.keys.Back):
		before := m.ctrl.Snapshot()
		if err := m.ctrl.Back(); err != nil {
			m.err = err
			return m, nil
		}
		m.err = nil
		m.selected = m.indexOf(before.Answers)
		return m, nil
	}

	switch m.ctrl.Step() {
	case recommend.StepConfirmation:
		if key.Matches(msg, m.keys.Enter) {
			if _, _, err := m.ctrl.Confirm(); err != nil {
				m.err = err
				return m, nil
			}
			m.confirmed = true
			return m, tea.Quit
		}
		return m, nil
	case recommend.StepError:
		return m, nil
	}

	q, ok := m.ctrl.Question()
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
	case key.Matches(msg, m.keys.Down):
		if m.selected < len(q.Options)-1 {
			m.selected++
		}
	case key.Matches(msg, m.keys.Enter):
		return m.answer(q, m.selected)
	default:
		// Number keys answer directly.
		s := msg.String()
		if len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
			return m.answer(q, int(s[0]-'1'))
		}
	}
	return m, nil
}

func (m WizardModel) answer(q recommend.Question, idx int) (tea.Model, tea.Cmd) {
	if idx < 0 || idx >= len(q.Options) {
		return m, nil
	}
	if err := m.ctrl.Answer(q.Options[idx].Token); err != nil {
		m.err = err
		return m, nil
	}
	m.err = nil
	m.selected = 0
	return m, nil
}

// indexOf returns the option index of the answer recorded for the current
// step in answers, or 0.
func (m WizardModel) indexOf(answers recommend.Answers) int {
	q, ok := m.ctrl.Question()
	if !ok {
		return 0
	}
	if v, ok := answers.Get(q.Step); ok {
		for i, opt := range q.Options {
			if opt.Token == v {
				return i
			}
		}
	}
	return 0
}

// View renders the wizard.
func (m WizardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("Migration strategy wizard"))
	b.WriteString("\n")
	b.WriteString(m.renderTrail())
	b.WriteString("\n\n")

	snap := m.ctrl.Snapshot()
	switch snap.Step {
	case recommend.StepConfirmation:
		m.renderConfirmation(&b, snap)
	case recommend.StepError:
		m.renderError(&b, snap)
	default:
		m.renderQuestion(&b)
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(ErrorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	boxWidth := maxWizardWidth
	if m.width-4 < boxWidth {
		boxWidth = m.width - 4
	}
	return BoxStyle.Width(boxWidth).Render(b.String())
}

func (m WizardModel) renderTrail() string {
	snap := m.ctrl.Snapshot()
	parts := make([]string, 0, len(trail)+1)
	for _, step := range trail {
		var mark string
		switch {
		case step == snap.Step:
			mark = StepCurrent
		case hasAnswer(snap.Answers, step):
			mark = StepDone
		default:
			mark = StepPending
		}
		parts = append(parts, mark+" "+strings.ToLower(string(step)))
	}
	switch snap.Step {
	case recommend.StepConfirmation:
		parts = append(parts, StepDone+" result")
	case recommend.StepError:
		parts = append(parts, StepFailed+" result")
	}
	return strings.Join(parts, DimStyle.Render("  ·  "))
}

func (m WizardModel) renderQuestion(b *strings.Builder) {
	q, ok := m.ctrl.Question()
	if !ok {
		return
	}
	b.WriteString(QuestionStyle.Render(q.Text))
	b.WriteString("\n\n")

	for i, opt := range q.Options {
		isSelected := i == m.selected

		var line strings.Builder
		if isSelected {
			line.WriteString("❯ ")
		} else {
			line.WriteString("  ")
		}
		line.WriteString(fmt.Sprintf("%d. ", i+1))
		if isSelected {
			line.WriteString(SelectedStyle.Render(opt.Label))
		} else {
			line.WriteString(NormalStyle.Render(opt.Label))
		}
		b.WriteString(line.String())
		b.WriteString("\n")

		if opt.Description != "" && isSelected {
			b.WriteString("     ")
			b.WriteString(DimStyle.Render(opt.Description))
			b.WriteString("\n")
		}
	}
}

func (m WizardModel) renderConfirmation(b *strings.Builder, snap recommend.Snapshot) {
	d := strategy.Describe(snap.Strategy)
	b.WriteString(SuccessStyle.Render("Recommended: " + d.Title()))
	b.WriteString("\n\n")
	writeSection(b, "Why", snap.Reasoning)
	writeSection(b, "Features", d.Features)
	writeSection(b, "Requirements", d.Requirements)
	b.WriteString(QuestionStyle.Render("Press enter to use this strategy."))
	b.WriteString("\n")
}

func (m WizardModel) renderError(b *strings.Builder, snap recommend.Snapshot) {
	b.WriteString(ErrorStyle.Render("No strategy fits these answers."))
	b.WriteString("\n\n")
	writeSection(b, "What to do next", snap.Reasoning)
}

func writeSection(b *strings.Builder, title string, lines []string) {
	b.WriteString(QuestionStyle.Render(title))
	b.WriteString("\n")
	for _, l := range lines {
		b.WriteString("  • ")
		b.WriteString(NormalStyle.Render(l))
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func hasAnswer(answers recommend.Answers, step recommend.Step) bool {
	_, ok := answers.Get(step)
	return ok
}
