// prompt.go runs the questionnaire as a numbered prompt loop on plain
// terminals and parses --answer flags.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mirrorplan/mirrorplan/internal/recommend"
	"github.com/mirrorplan/mirrorplan/internal/strategy"
)

// errAbandoned is returned when the operator quits before confirming.
var errAbandoned = errors.New("questionnaire abandoned")

// promptLoop asks questions on out and reads answers from in until the
// operator accepts a strategy, or quits at ERROR. It returns errAbandoned
// when input ends or the operator quits elsewhere.
func promptLoop(in io.Reader, out io.Writer, ctrl *recommend.Controller) error {
	reader := bufio.NewReader(in)

	for {
		switch ctrl.Step() {
		case recommend.StepConfirmation:
			d := strategy.Describe(ctrl.Snapshot().Strategy)
			fmt.Fprintf(out, "\nRecommended strategy: %s\n", d.Title())
			fmt.Fprint(out, "  [enter] accept  [b] back  [r] restart  [q] quit\n  > ")
		case recommend.StepError:
			fmt.Fprintln(out, "\nNo strategy fits these answers.")
			fmt.Fprint(out, "  [b] back  [r] restart  [q] quit\n  > ")
		default:
			q, ok := ctrl.Question()
			if !ok {
				return fmt.Errorf("no question for step %s", ctrl.Step())
			}
			printQuestion(out, q)
		}

		line, err := reader.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return errAbandoned
		}
		line = strings.ToLower(strings.TrimSpace(line))

		switch line {
		case "q", "quit":
			if ctrl.Step() == recommend.StepError {
				return nil
			}
			return errAbandoned
		case "b", "back":
			if err := ctrl.Back(); err != nil {
				fmt.Fprintf(out, "  %v\n", err)
			}
			continue
		case "r", "restart":
			ctrl.Restart()
			continue
		}

		switch ctrl.Step() {
		case recommend.StepConfirmation:
			if line == "" || line == "y" || line == "yes" {
				return nil
			}
			fmt.Fprintf(out, "  Unrecognized choice %q\n", line)
		case recommend.StepError:
			if line == "" {
				return nil
			}
			fmt.Fprintf(out, "  Unrecognized choice %q\n", line)
		default:
			q, _ := ctrl.Question()
			token, ok := pickOption(q, line)
			if !ok {
				fmt.Fprintf(out, "  Unrecognized choice %q\n", line)
				continue
			}
			if err := ctrl.Answer(token); err != nil {
				fmt.Fprintf(out, "  %v\n", err)
			}
		}
	}
}

func printQuestion(out io.Writer, q recommend.Question) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, q.Text)
	for i, opt := range q.Options {
		fmt.Fprintf(out, "  [%d] %s\n", i+1, opt.Label)
		if opt.Description != "" {
			fmt.Fprintf(out, "      %s\n", opt.Description)
		}
	}
	if q.Step != recommend.StepGoal {
		fmt.Fprint(out, "  [b] back  [r] restart\n")
	}
	fmt.Fprint(out, "  > ")
}

// pickOption accepts an option number or a token.
func pickOption(q recommend.Question, input string) (string, bool) {
	if n, err := strconv.Atoi(input); err == nil {
		if n >= 1 && n <= len(q.Options) {
			return q.Options[n-1].Token, true
		}
		return "", false
	}
	for _, opt := range q.Options {
		if opt.Token == input {
			return opt.Token, true
		}
	}
	return "", false
}

// parseAnswer splits a step=value flag. Step names are case-insensitive.
func parseAnswer(s string) (recommend.Step, string, error) {
	name, value, ok := strings.Cut(s, "=")
	if !ok {
		return "", "", fmt.Errorf("answer %q: expected step=value", s)
	}
	step := recommend.Step(strings.ToUpper(strings.TrimSpace(name)))
	if !step.Answerable() {
		return "", "", fmt.Errorf("answer %q: unknown step %q", s, name)
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return "", "", fmt.Errorf("answer %q: empty value", s)
	}
	return step, value, nil
}

// applyAnswers feeds step=value flags to ctrl in order.
func applyAnswers(ctrl *recommend.Controller, flags []string) error {
	for _, f := range flags {
		step, value, err := parseAnswer(f)
		if err != nil {
			return err
		}
		if err := ctrl.AnswerAt(step, value); err != nil {
			return err
		}
	}
	return nil
}
