// history.go implements the "mirrorplan history" command.
package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history [ID]",
	Short: "Show past recommendations",
	Long: `List finished recommendation sessions, newest first, or show the
answers and reasoning of one session by id.`,
	Args: cobra.MaximumNArgs(1),
	RunE: withEnv(func(e *env, cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			return e.showHistory(cmd.OutOrStdout(), args[0])
		}
		return e.listHistory(cmd.OutOrStdout(), historyLimit)
	}),
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum number of sessions to list (at least 1)")
}

func (e *env) listHistory(out io.Writer, limit int) error {
	if e.history == nil {
		return fmt.Errorf("history is disabled; set history.enabled in .mirrorplan/config.yaml")
	}
	if limit < 1 {
		return fmt.Errorf("--limit must be at least 1, got %d", limit)
	}
	sums, err := e.history.ListSessions(limit)
	if err != nil {
		return err
	}
	if len(sums) == 0 {
		fmt.Fprintln(out, "No recommendations recorded yet.")
		return nil
	}
	for _, s := range sums {
		strat := s.Strategy
		if strat == "" {
			strat = "-"
		}
		fmt.Fprintf(out, "%s  %s  %-9s  %-18s %s\n",
			s.CreatedAt.Local().Format("2006-01-02 15:04"), s.ID, s.Outcome, strat, s.Goal)
	}
	return nil
}

func (e *env) showHistory(out io.Writer, id string) error {
	if e.history == nil {
		return fmt.Errorf("history is disabled; set history.enabled in .mirrorplan/config.yaml")
	}
	sess, err := e.history.GetSession(id)
	if err != nil {
		return err
	}
	if sess == nil {
		return fmt.Errorf("no session with id %s", id)
	}

	fmt.Fprintf(out, "Session:  %s\n", sess.ID)
	fmt.Fprintf(out, "Recorded: %s\n", sess.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(out, "Outcome:  %s\n", sess.Outcome)
	if sess.Strategy != "" {
		fmt.Fprintf(out, "Strategy: %s\n", sess.Strategy)
	}
	fmt.Fprintln(out, "Answers:")
	for _, a := range sess.Answers {
		fmt.Fprintf(out, "  %-16s %s\n", a.Step, a.Value)
	}
	fmt.Fprintln(out, "Reasoning:")
	for _, r := range sess.Reasoning {
		fmt.Fprintf(out, "  - %s\n", r)
	}
	return nil
}
