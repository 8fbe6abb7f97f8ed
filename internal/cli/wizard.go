// wizard.go runs the interactive wizard and handles its result.
package cli

import (
	"fmt"
	"io"

	"github.com/mirrorplan/mirrorplan/internal/tui"
)

func (e *env) wizard(out io.Writer) error {
	ctrl, tracker := e.newSession()

	final, err := tui.Run(tui.NewWizardModel(ctrl))
	if err != nil {
		return fmt.Errorf("running wizard: %w", err)
	}
	m, ok := final.(tui.WizardModel)
	if !ok || !m.Confirmed() {
		// Quit before confirming; failed sessions are still kept in history.
		if ctrl.Snapshot().Failed() {
			e.record(tracker, ctrl.Snapshot())
		}
		return nil
	}

	return e.conclude(out, ctrl, tracker, recommendOptions{})
}
