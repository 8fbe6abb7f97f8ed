// init.go implements the "mirrorplan init" command.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mirrorplan/mirrorplan/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize mirrorplan in the current project",
	Long: `Create the .mirrorplan/ directory with a default config.yaml and
the directory saved configurations are written to.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

var forceFlag bool

func init() {
	initCmd.Flags().BoolVar(&forceFlag, "force", false, "Overwrite an existing config.yaml")
}

func runInit(cmd *cobra.Command, args []string) error {
	root, err := projectRoot()
	if err != nil {
		return err
	}
	return initProject(root, forceFlag, cmd.OutOrStdout())
}

func initProject(root string, force bool, out io.Writer) error {
	cfgPath := filepath.Join(root, config.Dir, "config.yaml")
	if _, err := os.Stat(cfgPath); err == nil && !force {
		return fmt.Errorf("%s already exists; use --force to overwrite", cfgPath)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("checking config: %w", err)
	}

	cfg := config.DefaultConfig()
	if err := config.WriteConfig(root, cfg); err != nil {
		return err
	}
	if err := os.MkdirAll(config.Resolve(root, cfg.Documents.Dir), 0755); err != nil {
		return fmt.Errorf("creating documents directory: %w", err)
	}

	// Keep the history database and event log out of version control.
	if err := ensureGitignore(root); err != nil {
		fmt.Fprintf(out, "Warning: failed to update .gitignore: %v\n", err)
	}

	fmt.Fprintf(out, "Initialized %s\n", filepath.Join(root, config.Dir))
	fmt.Fprintln(out, "Next: mirrorplan recommend")
	return nil
}

var gitignoreEntries = []string{
	".mirrorplan/history.db",
	".mirrorplan/log.jsonl",
}

// ensureGitignore appends missing state entries to .gitignore.
func ensureGitignore(root string) error {
	path := filepath.Join(root, ".gitignore")
	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	existing := make(map[string]bool)
	for _, line := range strings.Split(string(data), "\n") {
		existing[strings.TrimSpace(line)] = true
	}

	var missing []string
	for _, entry := range gitignoreEntries {
		if !existing[entry] {
			missing = append(missing, entry)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	prefix := ""
	if len(data) > 0 && !strings.HasSuffix(string(data), "\n") {
		prefix = "\n"
	}
	_, err = f.WriteString(prefix + strings.Join(missing, "\n") + "\n")
	return err
}
