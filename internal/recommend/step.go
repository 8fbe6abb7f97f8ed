// Package recommend implements the guided questionnaire that resolves an
// operator's answers to a single migration strategy.
//
// The flow is a small state machine. A Controller owns the session state and
// routes every answer through Resolve, a pure lookup over the rule table in
// rules.go. Steps DETAIL and CHARACTERISTICS are re-entrant: what they ask and
// which tokens they accept depend on the GOAL answer already recorded.
package recommend

// Step is a position in the questionnaire.
type Step string

// Questionnaire steps. ERROR and CONFIRMATION are terminal.
const (
	StepGoal            Step = "GOAL"
	StepDetail          Step = "DETAIL"
	StepCharacteristics Step = "CHARACTERISTICS"
	StepError           Step = "ERROR"
	StepConfirmation    Step = "CONFIRMATION"
)

// Terminal reports whether no further answers are accepted at s.
func (s Step) Terminal() bool {
	return s == StepError || s == StepConfirmation
}

// Answerable reports whether s is a question step.
func (s Step) Answerable() bool {
	switch s {
	case StepGoal, StepDetail, StepCharacteristics:
		return true
	}
	return false
}

// Goal is the GOAL answer that gives re-entrant steps their meaning.
type Goal string

// Goal tokens.
const (
	NoGoal            Goal = ""
	GoalSchemasData   Goal = "schemas-data"
	GoalSchemasOnly   Goal = "schemas-only"
	GoalIceberg       Goal = "iceberg-conversion"
	GoalStorage       Goal = "storage-migration"
	GoalReadOnlyTest  Goal = "read-only-test"
	GoalSharedStorage Goal = "shared-storage"
	GoalExtract       Goal = "extract-schemas"
)

// DETAIL tokens for the schemas-data goal.
const (
	SharedYes          = "yes"
	SharedIntermediate = "intermediate"
	SharedNo           = "no"
)

// DETAIL tokens for the iceberg-conversion goal.
const (
	IcebergSameCluster      = "same-cluster"
	IcebergDifferentCluster = "different-cluster"
)

// CHARACTERISTICS tokens.
const (
	TablesMixed           = "mixed"
	TablesSmallPartitions = "small-partitions"
	TablesLargePartitions = "large-partitions"
)

// Answer is one recorded (step, value) pair.
type Answer struct {
	Step  Step   `yaml:"step" json:"step"`
	Value string `yaml:"value" json:"value"`
}

// Answers keeps answers in the order they were given. A step appears at most
// once; answering it again replaces the value in place.
type Answers []Answer

// Get returns the value recorded for step.
func (a Answers) Get(step Step) (string, bool) {
	for _, ans := range a {
		if ans.Step == step {
			return ans.Value, true
		}
	}
	return "", false
}

// Goal returns the recorded GOAL answer, or NoGoal.
func (a Answers) Goal() Goal {
	v, _ := a.Get(StepGoal)
	return Goal(v)
}

// With returns a copy of a with step set to value.
func (a Answers) With(step Step, value string) Answers {
	out := a.Clone()
	for i := range out {
		if out[i].Step == step {
			out[i].Value = value
			return out
		}
	}
	return append(out, Answer{Step: step, Value: value})
}

// Clone returns an independent copy.
func (a Answers) Clone() Answers {
	if a == nil {
		return nil
	}
	out := make(Answers, len(a))
	copy(out, a)
	return out
}

// contextFor returns the goal context a step is evaluated in. GOAL itself has
// no context.
func contextFor(step Step, answers Answers) Goal {
	if step == StepGoal {
		return NoGoal
	}
	return answers.Goal()
}
