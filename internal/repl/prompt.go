package repl

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/notexe/reminders/internal/ui"
)

var selectedResultStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("114")).
	Bold(true)

// confirm asks a yes/no question. Cancelling counts as "no".
func (r *REPL) confirm(question string) (bool, error) {
	idx, err := r.choose(question, []string{"Yes", "No"}, 1)
	if errors.Is(err, ui.ErrCancelled) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return idx == 0, nil
}

// chooseWithSelector runs the interactive selector. Readline holds the
// terminal, so it is closed for the duration and recreated afterwards.
func (r *REPL) chooseWithSelector(question string, options []string, def int) (int, error) {
	fmt.Fprintln(r.out)
	r.rl.Close()

	selector := ui.NewSelector(question, options, def, r.config.UI.ColoredOutput)
	idx, err := selector.Run()

	if newRl, rlErr := setupReadline(); rlErr == nil {
		r.rl = newRl
	}

	if err != nil {
		return 0, err
	}

	answer := "> " + options[idx]
	if r.config.UI.ColoredOutput {
		answer = selectedResultStyle.Render(answer)
	}
	fmt.Fprintln(r.out, answer)
	return idx, nil
}
