// recommend.go implements the "mirrorplan recommend" command.
package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mirrorplan/mirrorplan/internal/document"
	"github.com/mirrorplan/mirrorplan/internal/log"
	"github.com/mirrorplan/mirrorplan/internal/recommend"
	"github.com/mirrorplan/mirrorplan/internal/render"
	"github.com/mirrorplan/mirrorplan/internal/session"
)

// errNoStrategy is returned after printing remediation for an ERROR outcome.
var errNoStrategy = errors.New("no migration strategy fits the given answers")

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend a data migration strategy",
	Long: `Ask a few questions about the migration and recommend a strategy.

Answers can be given up front with --answer, one per step, for example:
  mirrorplan recommend --answer goal=schemas-data --answer detail=yes --answer characteristics=mixed

Without --answer the questions are asked interactively.`,
	Args: cobra.NoArgs,
	RunE: runRecommend,
}

type recommendOptions struct {
	answers []string
	save    string
	format  string
	comment string
}

var recommendOpts recommendOptions

func init() {
	recommendCmd.Flags().StringArrayVar(&recommendOpts.answers, "answer", nil, "Answer a step non-interactively (step=value, repeatable)")
	recommendCmd.Flags().StringVar(&recommendOpts.save, "save", "", "Save the confirmed strategy as a named configuration")
	recommendCmd.Flags().StringVar(&recommendOpts.format, "format", "", "Output format: text, markdown or yaml")
	recommendCmd.Flags().StringVar(&recommendOpts.comment, "comment", "", "Comment stored with --save")
}

func runRecommend(cmd *cobra.Command, args []string) error {
	root, err := projectRoot()
	if err != nil {
		return err
	}
	e, err := openEnv(root, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer e.Close()

	return e.recommend(cmd.InOrStdin(), cmd.OutOrStdout(), recommendOpts)
}

func (e *env) recommend(in io.Reader, out io.Writer, opts recommendOptions) error {
	if err := render.CheckFormat(e.format(opts.format)); err != nil {
		return err
	}
	if opts.save != "" {
		if err := document.ValidateName(opts.save); err != nil {
			return err
		}
	}

	ctrl, tracker := e.newSession()
	if len(opts.answers) > 0 {
		if err := applyAnswers(ctrl, opts.answers); err != nil {
			return err
		}
		if !ctrl.Step().Terminal() {
			return fmt.Errorf("answers stop at %s; add --answer %s=VALUE", ctrl.Step(), strings.ToLower(string(ctrl.Step())))
		}
	} else if err := promptLoop(in, out, ctrl); err != nil {
		return err
	}

	return e.conclude(out, ctrl, tracker, opts)
}

// conclude prints the outcome of a terminal session, records it and saves
// the document when asked.
func (e *env) conclude(out io.Writer, ctrl *recommend.Controller, tracker *session.Tracker, opts recommendOptions) error {
	snap := ctrl.Snapshot()
	result, err := render.FromSnapshot(snap)
	if err != nil {
		return err
	}
	if snap.Resolved() {
		id, reasoning, err := ctrl.Confirm()
		if err != nil {
			return err
		}
		tracker.Confirmed(string(id), reasoning)
	}
	e.record(tracker, snap)

	if err := render.Write(out, e.format(opts.format), result); err != nil {
		return err
	}
	if result.Failed {
		return errNoStrategy
	}

	if opts.save != "" {
		doc, err := document.FromResult(opts.save, snap, opts.comment)
		if err != nil {
			return err
		}
		if err := e.docs.Save(doc); err != nil {
			return err
		}
		e.logEvent(log.LogEvent{
			Event:     log.EventConfigSaved,
			SessionID: tracker.ID,
			Strategy:  string(doc.DataStrategy),
			Document:  doc.Name,
		})
		fmt.Fprintf(e.stderr, "Saved configuration %q to %s\n", doc.Name, e.docs.Dir())
	}
	return nil
}
