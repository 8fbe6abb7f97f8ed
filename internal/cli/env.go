// env.go opens the project state shared by the commands: configuration,
// event log, history database and document store.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mirrorplan/mirrorplan/internal/config"
	"github.com/mirrorplan/mirrorplan/internal/document"
	"github.com/mirrorplan/mirrorplan/internal/log"
	"github.com/mirrorplan/mirrorplan/internal/recommend"
	"github.com/mirrorplan/mirrorplan/internal/session"
)

type env struct {
	root    string
	cfg     *config.Config
	logger  *log.Logger    // nil when logging is off
	history *session.Store // nil when history is off
	docs    *document.Store
	stderr  io.Writer
}

// projectRoot returns the --dir flag, or the working directory.
func projectRoot() (string, error) {
	if projectDir != "" {
		return filepath.Abs(projectDir)
	}
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}
	return dir, nil
}

// openEnv loads configuration for root and opens the stores it enables.
// Log and history failures are reported as warnings; the commands still run.
func openEnv(root string, stderr io.Writer) (*env, error) {
	cfg, err := config.Load(root)
	if err != nil {
		return nil, err
	}

	e := &env{
		root:   root,
		cfg:    cfg,
		docs:   document.NewStore(config.Resolve(root, cfg.Documents.Dir)),
		stderr: stderr,
	}

	if cfg.Log.Enabled {
		logger, err := log.NewLogger(filepath.Join(root, config.Dir))
		if err != nil {
			fmt.Fprintf(stderr, "Warning: event log disabled: %v\n", err)
		} else {
			e.logger = logger
		}
	}

	if cfg.History.Enabled {
		store, err := session.NewStore(config.Resolve(root, cfg.History.Path))
		if err != nil {
			fmt.Fprintf(stderr, "Warning: history disabled: %v\n", err)
		} else {
			e.history = store
		}
	}

	return e, nil
}

// Close releases the history database.
func (e *env) Close() error {
	if e.history == nil {
		return nil
	}
	return e.history.Close()
}

// newSession returns a controller whose changes are logged by a fresh
// tracker.
func (e *env) newSession() (*recommend.Controller, *session.Tracker) {
	tracker := session.NewTracker(e.logger, e.stderr)
	return recommend.New(recommend.WithObserver(tracker.Observe)), tracker
}

// record stores the outcome of a terminal session in history.
func (e *env) record(tracker *session.Tracker, snap recommend.Snapshot) {
	if e.history == nil {
		return
	}
	rec := tracker.Finish(snap)
	if rec == nil {
		return
	}
	if err := e.history.Record(rec); err != nil {
		fmt.Fprintf(e.stderr, "Warning: failed to record history: %v\n", err)
	}
}

// logEvent appends ev, reporting failures as warnings.
func (e *env) logEvent(ev log.LogEvent) {
	if err := e.logger.Append(ev); err != nil {
		fmt.Fprintf(e.stderr, "Warning: failed to log %s: %v\n", ev.Event, err)
	}
}

// format returns override when set, else the configured format.
func (e *env) format(override string) string {
	if override != "" {
		return override
	}
	return e.cfg.Output.Format
}
