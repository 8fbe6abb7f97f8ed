// Command mirrorplan recommends a data strategy for migrating Hive tables
// between clusters.
package main

import (
	"github.com/joho/godotenv"

	"github.com/mirrorplan/mirrorplan/internal/cli"
)

func main() {
	// MIRRORPLAN_* overrides may come from a local .env; a missing file is fine.
	_ = godotenv.Load()

	cli.Execute()
}
