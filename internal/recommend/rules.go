package recommend

import (
	"fmt"

	"github.com/mirrorplan/mirrorplan/internal/strategy"
)

// OutcomeKind tags the variant held by an Outcome.
type OutcomeKind int

const (
	OutcomeAdvance OutcomeKind = iota + 1 // move to another question
	OutcomeResolve                        // settle on a strategy
	OutcomeFail                           // no strategy fits
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeAdvance:
		return "advance"
	case OutcomeResolve:
		return "resolve"
	case OutcomeFail:
		return "fail"
	default:
		return fmt.Sprintf("OutcomeKind(%d)", int(k))
	}
}

// Outcome is the result of applying one answer. Next is set for
// OutcomeAdvance, Strategy for OutcomeResolve, and Reasoning for both
// OutcomeResolve and OutcomeFail.
type Outcome struct {
	Kind      OutcomeKind
	Next      Step
	Strategy  strategy.ID
	Reasoning []string
}

// Advance moves the questionnaire to next.
func Advance(next Step) Outcome {
	return Outcome{Kind: OutcomeAdvance, Next: next}
}

// Recommend settles on id with the given reasoning.
func Recommend(id strategy.ID, reasoning []string) Outcome {
	return Outcome{Kind: OutcomeResolve, Strategy: id, Reasoning: reasoning}
}

// Fail ends the questionnaire without a strategy.
func Fail(reasoning []string) Outcome {
	return Outcome{Kind: OutcomeFail, Reasoning: reasoning}
}

// Rule is one row of the decision table.
type Rule struct {
	Step    Step
	Goal    Goal
	Token   string
	Outcome Outcome
}

type ruleKey struct {
	step  Step
	goal  Goal
	token string
}

// rulesTable is the whole questionnaire. Row order is also option order.
var rulesTable = buildRules()

var rulesIndex = indexRules(rulesTable)

func buildRules() []Rule {
	rules := []Rule{
		// GOAL
		{Step: StepGoal, Token: string(GoalSchemasData), Outcome: Advance(StepDetail)},
		{Step: StepGoal, Token: string(GoalSchemasOnly), Outcome: Recommend(strategy.SchemaOnly, goalReasoning[GoalSchemasOnly])},
		{Step: StepGoal, Token: string(GoalIceberg), Outcome: Advance(StepDetail)},
		{Step: StepGoal, Token: string(GoalStorage), Outcome: Recommend(strategy.StorageMigration, goalReasoning[GoalStorage])},
		{Step: StepGoal, Token: string(GoalReadOnlyTest), Outcome: Recommend(strategy.Linked, goalReasoning[GoalReadOnlyTest])},
		{Step: StepGoal, Token: string(GoalSharedStorage), Outcome: Recommend(strategy.Common, goalReasoning[GoalSharedStorage])},
		{Step: StepGoal, Token: string(GoalExtract), Outcome: Recommend(strategy.Dump, goalReasoning[GoalExtract])},

		// DETAIL: can the clusters reach shared storage?
		{Step: StepDetail, Goal: GoalSchemasData, Token: SharedYes, Outcome: Advance(StepCharacteristics)},
		{Step: StepDetail, Goal: GoalSchemasData, Token: SharedIntermediate, Outcome: Recommend(strategy.SQL, intermediateReasoning)},
		{Step: StepDetail, Goal: GoalSchemasData, Token: SharedNo, Outcome: Fail(noSharedStorageRemediation)},

		// DETAIL: where do the Iceberg tables land?
		{Step: StepDetail, Goal: GoalIceberg, Token: IcebergSameCluster, Outcome: Recommend(strategy.StorageMigration, icebergSameClusterReasoning)},
		{Step: StepDetail, Goal: GoalIceberg, Token: IcebergDifferentCluster, Outcome: Advance(StepCharacteristics)},
	}

	// CHARACTERISTICS is shared by both goals that reach it.
	for _, goal := range []Goal{GoalSchemasData, GoalIceberg} {
		rules = append(rules,
			Rule{Step: StepCharacteristics, Goal: goal, Token: TablesMixed, Outcome: Recommend(strategy.Hybrid, characteristicsTrail(TablesMixed))},
			Rule{Step: StepCharacteristics, Goal: goal, Token: TablesSmallPartitions, Outcome: Recommend(strategy.ExportImport, characteristicsTrail(TablesSmallPartitions))},
			Rule{Step: StepCharacteristics, Goal: goal, Token: TablesLargePartitions, Outcome: Recommend(strategy.SQL, characteristicsTrail(TablesLargePartitions))},
		)
	}
	return rules
}

func indexRules(rules []Rule) map[ruleKey]Outcome {
	idx := make(map[ruleKey]Outcome, len(rules))
	for _, r := range rules {
		k := ruleKey{step: r.Step, goal: r.Goal, token: r.Token}
		if _, dup := idx[k]; dup {
			panic(fmt.Sprintf("recommend: duplicate rule %s/%q/%q", r.Step, r.Goal, r.Token))
		}
		idx[k] = r.Outcome
	}
	return idx
}

// Rules returns a copy of the decision table.
func Rules() []Rule {
	out := make([]Rule, len(rulesTable))
	for i, r := range rulesTable {
		r.Outcome = cloneOutcome(r.Outcome)
		out[i] = r
	}
	return out
}

// ValidTokens returns the tokens accepted at step in the goal context, in
// display order. It returns nil when the step has no rules in that context.
func ValidTokens(step Step, goal Goal) []string {
	if step == StepGoal {
		goal = NoGoal
	}
	var tokens []string
	for _, r := range rulesTable {
		if r.Step == step && r.Goal == goal {
			tokens = append(tokens, r.Token)
		}
	}
	return tokens
}

// Resolve applies the answer recorded for step. It is pure: the same step and
// answers always give the same outcome. Combinations missing from the table
// return an error wrapping ErrInvalidTransition.
func Resolve(step Step, answers Answers) (Outcome, error) {
	token, ok := answers.Get(step)
	goal := contextFor(step, answers)
	if !ok {
		return Outcome{}, &TransitionError{Op: "resolve", Step: step, Goal: goal, Reason: "no answer recorded for step"}
	}
	out, ok := rulesIndex[ruleKey{step: step, goal: goal, token: token}]
	if !ok {
		return Outcome{}, &TransitionError{Op: "resolve", Step: step, Goal: goal, Value: token, Reason: "no rule for answer"}
	}
	return cloneOutcome(out), nil
}

func cloneOutcome(o Outcome) Outcome {
	if o.Reasoning != nil {
		o.Reasoning = append([]string(nil), o.Reasoning...)
	}
	return o
}
