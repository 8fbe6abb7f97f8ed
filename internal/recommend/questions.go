package recommend

// Choice is one selectable answer to a Question.
type Choice struct {
	Token       string
	Label       string
	Description string
}

// Question is the presentation of an answerable step in a goal context.
type Question struct {
	Step    Step
	Goal    Goal
	Text    string
	Options []Choice
}

type questionKey struct {
	step Step
	goal Goal
}

var questionText = map[questionKey]string{
	{StepGoal, NoGoal}:                     "What do you want to accomplish?",
	{StepDetail, GoalSchemasData}:          "Can the target cluster access the source cluster's storage?",
	{StepDetail, GoalIceberg}:              "Where will the converted Iceberg tables live?",
	{StepCharacteristics, GoalSchemasData}: "What best describes the tables you are migrating?",
	{StepCharacteristics, GoalIceberg}:     "What best describes the tables you are migrating?",
}

type optionCopy struct {
	label       string
	description string
}

// optionText is keyed by step and token. Tokens do not repeat across goal
// contexts of the same step.
var optionText = map[Step]map[string]optionCopy{
	StepGoal: {
		string(GoalSchemasData):   {"Migrate schemas and data", "Copy table definitions and their data to the target cluster"},
		string(GoalSchemasOnly):   {"Migrate schemas only", "Data is moved by another tool"},
		string(GoalIceberg):       {"Convert tables to Iceberg", "Rewrite Hive tables as Iceberg tables"},
		string(GoalStorage):       {"Move data to new storage", "Relocate tables on the same cluster"},
		string(GoalReadOnlyTest):  {"Test read-only on the target", "Point target tables at source data without copying"},
		string(GoalSharedStorage): {"Clusters share storage", "Both clusters see the same storage namespace"},
		string(GoalExtract):       {"Extract schemas", "Write DDL out for review without changing anything"},
	},
	StepDetail: {
		SharedYes:               {"Yes, there is shared storage access", ""},
		SharedIntermediate:      {"No, but we have intermediate storage", "A location both clusters can read and write"},
		SharedNo:                {"No, and there is no intermediate storage", ""},
		IcebergSameCluster:      {"On the same cluster", ""},
		IcebergDifferentCluster: {"On a different cluster", ""},
	},
	StepCharacteristics: {
		TablesMixed:           {"A mix of small and large partition counts", ""},
		TablesSmallPartitions: {"Mostly tables with few partitions", ""},
		TablesLargePartitions: {"Mostly tables with many partitions", ""},
	},
}

// QuestionFor returns the question shown at step for goal. It reports false
// for terminal steps and for goal contexts the step does not have.
func QuestionFor(step Step, goal Goal) (Question, bool) {
	if step == StepGoal {
		goal = NoGoal
	}
	text, ok := questionText[questionKey{step, goal}]
	if !ok {
		return Question{}, false
	}

	tokens := ValidTokens(step, goal)
	opts := make([]Choice, 0, len(tokens))
	for _, tok := range tokens {
		c, ok := optionText[step][tok]
		if !ok {
			c = optionCopy{label: tok}
		}
		opts = append(opts, Choice{Token: tok, Label: c.label, Description: c.description})
	}

	return Question{Step: step, Goal: goal, Text: text, Options: opts}, true
}
