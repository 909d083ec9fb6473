package repl

import (
	"fmt"
)

func (r *REPL) display(s string) {
	fmt.Fprintln(r.out, s)
	fmt.Fprintln(r.out)
}

func (r *REPL) displayError(err error) {
	r.display(r.formatter.FormatError(err))
}

func (r *REPL) displayWelcome() {
	fmt.Fprint(r.out, r.formatter.FormatWelcome(r.session.Path(), r.session.Store().Len()))
}

func (r *REPL) displayHelp() {
	fmt.Fprint(r.out, r.formatter.FormatHelp())
}

func (r *REPL) displayInfo(msg string) {
	r.display(r.formatter.FormatInfo(msg))
}

func (r *REPL) displaySystem(msg string) {
	r.display(r.formatter.FormatSystem(msg))
}

func (r *REPL) displaySuccess(msg string) {
	r.display(r.formatter.FormatSuccess(msg))
}
