package recommend

import (
	"github.com/mirrorplan/mirrorplan/internal/strategy"
)

// Op names a controller operation that changed session state.
type Op string

const (
	OpStart   Op = "start"
	OpAnswer  Op = "answer"
	OpBack    Op = "back"
	OpRestart Op = "restart"
)

// Snapshot is a read-only copy of the session state.
type Snapshot struct {
	Step      Step
	Goal      Goal
	Answers   Answers
	Reasoning []string
	Strategy  strategy.ID // empty unless Step is CONFIRMATION
}

// Resolved reports whether the session settled on a strategy.
func (s Snapshot) Resolved() bool {
	return s.Step == StepConfirmation
}

// Failed reports whether the session ended in the ERROR step.
func (s Snapshot) Failed() bool {
	return s.Step == StepError
}

// Change is passed to an Observer after every state change.
type Change struct {
	Op       Op
	From     Step   // step the operation was applied at
	Value    string // the answered token for OpAnswer
	Snapshot Snapshot
}

// Observer receives state changes. It runs synchronously inside the
// operation that caused the change.
type Observer func(Change)

// Option configures a Controller.
type Option func(*Controller)

// WithObserver registers fn to receive every state change.
func WithObserver(fn Observer) Option {
	return func(c *Controller) {
		c.observer = fn
	}
}

// session is the state owned by a Controller.
type session struct {
	step      Step
	answers   Answers
	reasoning []string
	resolved  strategy.ID
}

func (s session) clone() session {
	s.answers = s.answers.Clone()
	s.reasoning = append([]string(nil), s.reasoning...)
	return s
}

// Controller walks one operator through the questionnaire. It is not safe for
// concurrent use; give each session its own Controller.
type Controller struct {
	state    session
	history  []session // state before each accepted answer, oldest first
	observer Observer
}

// New returns a started Controller positioned at GOAL.
func New(opts ...Option) *Controller {
	c := &Controller{}
	for _, opt := range opts {
		opt(c)
	}
	c.reset()
	c.notify(OpStart, StepGoal, "")
	return c
}

// Start positions the controller at GOAL with no answers. On a controller
// that has not been answered yet it changes nothing. Mid-session it behaves
// as Restart and is reported to the observer as OpRestart.
func (c *Controller) Start() {
	from := c.state.step
	op := OpStart
	if from != StepGoal || len(c.history) > 0 {
		op = OpRestart
	}
	c.reset()
	c.notify(op, from, "")
}

// Restart abandons the current answers and returns to GOAL. It always
// succeeds.
func (c *Controller) Restart() {
	from := c.state.step
	c.reset()
	c.notify(OpRestart, from, "")
}

func (c *Controller) reset() {
	c.state = session{step: StepGoal}
	c.history = nil
}

// Step returns the current step.
func (c *Controller) Step() Step {
	return c.state.step
}

// Goal returns the recorded GOAL answer, or NoGoal.
func (c *Controller) Goal() Goal {
	return c.state.answers.Goal()
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	s := c.state.clone()
	return Snapshot{
		Step:      s.step,
		Goal:      s.answers.Goal(),
		Answers:   s.answers,
		Reasoning: s.reasoning,
		Strategy:  s.resolved,
	}
}

// Question returns the question for the current step. It reports false at
// terminal steps.
func (c *Controller) Question() (Question, bool) {
	return QuestionFor(c.state.step, contextFor(c.state.step, c.state.answers))
}

// Answer records value for the current step and applies the matching rule.
// value must be one of ValidTokens for the current step and goal context.
func (c *Controller) Answer(value string) error {
	step := c.state.step
	goal := contextFor(step, c.state.answers)

	if step.Terminal() {
		return &TransitionError{Op: "answer", Step: step, Goal: goal, Value: value, Reason: "step is terminal"}
	}
	if !contains(ValidTokens(step, goal), value) {
		return &TransitionError{Op: "answer", Step: step, Goal: goal, Value: value, Reason: "not a valid answer for this step"}
	}

	answers := c.state.answers.With(step, value)
	out, err := Resolve(step, answers)
	if err != nil {
		return err
	}

	prev := c.state.clone()
	next := c.state.clone()
	next.answers = answers

	switch out.Kind {
	case OutcomeAdvance:
		next.step = out.Next
	case OutcomeResolve:
		next.reasoning = append(next.reasoning, out.Reasoning...)
		next.resolved = out.Strategy
		next.step = StepConfirmation
	case OutcomeFail:
		next.reasoning = append(next.reasoning, out.Reasoning...)
		next.step = StepError
	default:
		return &TransitionError{Op: "answer", Step: step, Goal: goal, Value: value, Reason: "unknown outcome " + out.Kind.String()}
	}

	c.history = append(c.history, prev)
	c.state = next
	c.notify(OpAnswer, step, value)
	return nil
}

// AnswerAt is Answer for callers that name the step they are answering. It
// rejects answers for any step other than the current one.
func (c *Controller) AnswerAt(step Step, value string) error {
	if step != c.state.step {
		return &TransitionError{
			Op:     "answer",
			Step:   c.state.step,
			Goal:   contextFor(c.state.step, c.state.answers),
			Value:  value,
			Reason: "expected an answer for " + string(c.state.step) + ", got " + string(step),
		}
	}
	return c.Answer(value)
}

// Back undoes the most recent answer, including any resolution it produced.
// It is rejected at GOAL.
func (c *Controller) Back() error {
	if c.state.step == StepGoal || len(c.history) == 0 {
		return &TransitionError{Op: "back", Step: c.state.step, Goal: c.Goal(), Reason: "nothing to go back to"}
	}
	from := c.state.step
	last := len(c.history) - 1
	c.state = c.history[last]
	c.history = c.history[:last]
	c.notify(OpBack, from, "")
	return nil
}

// Confirm returns the resolved strategy and its reasoning. It is only valid
// at CONFIRMATION and does not change state.
func (c *Controller) Confirm() (strategy.ID, []string, error) {
	if c.state.step != StepConfirmation {
		return "", nil, &TransitionError{Op: "confirm", Step: c.state.step, Goal: c.Goal(), Reason: "no strategy has been resolved"}
	}
	return c.state.resolved, append([]string(nil), c.state.reasoning...), nil
}

func (c *Controller) notify(op Op, from Step, value string) {
	if c.observer == nil {
		return
	}
	c.observer(Change{Op: op, From: from, Value: value, Snapshot: c.Snapshot()})
}

func contains(tokens []string, v string) bool {
	for _, t := range tokens {
		if t == v {
			return true
		}
	}
	return false
}
