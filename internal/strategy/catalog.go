// Package strategy holds the fixed catalog of migration strategies.
package strategy

// ID identifies a migration strategy in the catalog.
type ID string

// Catalog strategy identifiers.
const (
	SchemaOnly       ID = "SCHEMA_ONLY"
	StorageMigration ID = "STORAGE_MIGRATION"
	Linked           ID = "LINKED"
	Common           ID = "COMMON"
	Dump             ID = "DUMP"
	SQL              ID = "SQL"
	ExportImport     ID = "EXPORT_IMPORT"
	Hybrid           ID = "HYBRID"
)

// Descriptor is the static, display-oriented description of a strategy.
type Descriptor struct {
	ID           ID       `yaml:"id" json:"id"`
	Emoji        string   `yaml:"emoji" json:"emoji"`
	Label        string   `yaml:"label" json:"label"`
	Features     []string `yaml:"features" json:"features"`
	Requirements []string `yaml:"requirements" json:"requirements"`
}

// Title returns the emoji and label joined for headings.
func (d Descriptor) Title() string {
	if d.Emoji == "" {
		return d.Label
	}
	return d.Emoji + " " + d.Label
}

// unknownLabel is shown for ids that are not in the catalog.
const unknownLabel = "Unknown strategy"

// order is the display order of the catalog.
var order = []ID{SchemaOnly, StorageMigration, Linked, Common, Dump, SQL, ExportImport, Hybrid}

var catalog = map[ID]Descriptor{
	SchemaOnly: {
		ID:    SchemaOnly,
		Emoji: "📋",
		Label: "Schema Only",
		Features: []string{
			"Migrates database and table definitions only",
			"Adjusts table locations for the target namespace",
			"Leaves data movement to an external tool such as distcp",
		},
		Requirements: []string{
			"Metastore access on both clusters",
			"A separate plan for moving the data",
		},
	},
	StorageMigration: {
		ID:    StorageMigration,
		Emoji: "🚚",
		Label: "Storage Migration",
		Features: []string{
			"Moves table data to a new storage location on the same cluster",
			"Rewrites table and partition locations",
			"Can convert tables to Iceberg during the move",
		},
		Requirements: []string{
			"Target storage reachable from the cluster",
			"Write access to the target location",
		},
	},
	Linked: {
		ID:    Linked,
		Emoji: "🔗",
		Label: "Linked",
		Features: []string{
			"Creates tables on the target that read source data in place",
			"Copies no data",
			"Useful for validating workloads before cut-over",
		},
		Requirements: []string{
			"Target cluster can read the source cluster's storage",
			"Source data stays unchanged while testing",
		},
	},
	Common: {
		ID:    Common,
		Emoji: "🤝",
		Label: "Common Storage",
		Features: []string{
			"Both clusters use the same storage",
			"Migrates metadata only",
			"Data is never copied or moved",
		},
		Requirements: []string{
			"Both clusters mount the same storage namespace",
			"Compatible metastore versions",
		},
	},
	Dump: {
		ID:    Dump,
		Emoji: "📤",
		Label: "Dump",
		Features: []string{
			"Extracts DDL for the selected databases",
			"Produces SQL scripts for review",
			"Makes no changes to either cluster",
		},
		Requirements: []string{
			"Read access to the source metastore",
		},
	},
	SQL: {
		ID:    SQL,
		Emoji: "🧮",
		Label: "SQL",
		Features: []string{
			"Moves data with INSERT ... SELECT on the target engine",
			"Handles tables with many partitions",
			"Can stage data through intermediate storage",
		},
		Requirements: []string{
			"Target can reach source storage or a shared intermediate location",
			"Enough compute on the target cluster for the copy",
		},
	},
	ExportImport: {
		ID:    ExportImport,
		Emoji: "📦",
		Label: "Export/Import",
		Features: []string{
			"Uses EXPORT and IMPORT to carry metadata and data together",
			"Keeps partition metadata intact",
			"Works best for tables with few partitions",
		},
		Requirements: []string{
			"Storage both clusters can access for the export files",
			"Partition counts under the export limit",
		},
	},
	Hybrid: {
		ID:    Hybrid,
		Emoji: "🔀",
		Label: "Hybrid",
		Features: []string{
			"Chooses EXPORT_IMPORT or SQL for each table",
			"Decides by partition count against a configured limit",
			"Handles mixed table shapes in a single run",
		},
		Requirements: []string{
			"Shared storage access between the clusters",
			"Partition limit thresholds configured",
		},
	},
}

// Describe returns the descriptor for id. Ids outside the catalog get a
// placeholder descriptor with empty feature and requirement lists.
func Describe(id ID) Descriptor {
	d, ok := catalog[id]
	if !ok {
		return Descriptor{
			ID:           id,
			Emoji:        "❓",
			Label:        unknownLabel,
			Features:     []string{},
			Requirements: []string{},
		}
	}
	return clone(d)
}

// Known reports whether id is in the catalog.
func Known(id ID) bool {
	_, ok := catalog[id]
	return ok
}

// All returns every descriptor in display order.
func All() []Descriptor {
	out := make([]Descriptor, 0, len(order))
	for _, id := range order {
		out = append(out, clone(catalog[id]))
	}
	return out
}

// IDs returns the catalog ids in display order.
func IDs() []ID {
	ids := make([]ID, len(order))
	copy(ids, order)
	return ids
}

// clone copies the slices so callers cannot mutate catalog data.
func clone(d Descriptor) Descriptor {
	d.Features = append([]string(nil), d.Features...)
	d.Requirements = append([]string(nil), d.Requirements...)
	return d
}
