package recommend

// Reasoning copy. Outcomes reference these slices; Resolve hands out copies.

var goalReasoning = map[Goal][]string{
	GoalSchemasOnly: {
		"You only need table definitions on the target cluster",
		"Data will be moved separately, for example with distcp",
	},
	GoalStorage: {
		"Data is moving to new storage on the same cluster",
		"Table and partition locations will be rewritten to the new storage",
	},
	GoalReadOnlyTest: {
		"You want to test workloads on the target cluster without copying data",
		"Target tables will read the source data in place",
	},
	GoalSharedStorage: {
		"Both clusters already share the same storage",
		"Only metadata needs to be migrated",
	},
	GoalExtract: {
		"You want schema definitions without changing either cluster",
		"DDL will be written out for review",
	},
}

var intermediateReasoning = []string{
	"You need to migrate both schemas and data",
	"The clusters cannot reach each other's storage directly",
	"SQL can stage the data through intermediate storage",
}

var icebergSameClusterReasoning = []string{
	"You are converting tables to Iceberg",
	"The converted tables stay on the same cluster",
	"Storage migration converts tables while moving them in place",
}

// characteristicsPreamble opens every CHARACTERISTICS resolution. The
// iceberg-conversion path reuses it unchanged.
var characteristicsPreamble = []string{
	"You need to migrate both schemas and data",
	"The clusters have shared storage access",
}

var characteristicsReasoning = map[string]string{
	TablesMixed:           "Your tables mix partition counts, so HYBRID picks EXPORT_IMPORT or SQL per table",
	TablesSmallPartitions: "EXPORT_IMPORT is efficient for tables with few partitions",
	TablesLargePartitions: "SQL handles tables with many partitions efficiently",
}

// noSharedStorageRemediation is the only failure reasoning. It has exactly two
// entries.
var noSharedStorageRemediation = []string{
	"Set up intermediate storage that both clusters can access, then choose the intermediate storage option",
	"Or use SCHEMA_ONLY and move the data manually with distcp",
}

func characteristicsTrail(token string) []string {
	out := make([]string, 0, len(characteristicsPreamble)+1)
	out = append(out, characteristicsPreamble...)
	return append(out, characteristicsReasoning[token])
}
