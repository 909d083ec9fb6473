package repl

import (
	"fmt"

	"github.com/notexe/reminders/internal/reminder"
	"github.com/notexe/reminders/internal/ui"
)

// Width used when rendering details in /show.
const detailsWidth = 80

// handleAdd parses "<task> | [due] | [priority] | [details]". An empty due
// date means now.
func (r *REPL) handleAdd(args string) error {
	if args == "" {
		return fmt.Errorf("usage: /add <task> | [due] | [priority] | [details]")
	}

	f := splitFields(args, 4)
	due := f[1]
	if due == "" {
		due = r.now().Format(reminder.TimeLayout)
	}

	added, err := r.session.Store().Create(f[0], due, f[2], f[3])
	if err != nil {
		return err
	}

	r.displaySuccess(fmt.Sprintf("Reminder '%s' added.", added.Task))
	return nil
}

// handleEdit parses "<id> [task] | [due] | [priority] | [details]". Empty
// fields keep the current value.
func (r *REPL) handleEdit(args string) error {
	id, rest := splitID(args)
	if id == "" || rest == "" {
		return fmt.Errorf("usage: /edit <id> [task] | [due] | [priority] | [details]")
	}

	store := r.session.Store()
	current, err := store.Resolve(id)
	if err != nil {
		return err
	}

	f := splitFields(rest, 4)
	fallback := []string{
		current.Task,
		current.DueAt.Format(reminder.TimeLayout),
		current.Priority.String(),
		current.Details,
	}
	for i := range f {
		if f[i] == "" {
			f[i] = fallback[i]
		}
	}

	updated, err := store.Update(current.ID, f[0], f[1], f[2], f[3])
	if err != nil {
		return err
	}

	r.displaySuccess(fmt.Sprintf("Reminder '%s' updated.", updated.Task))
	return nil
}

func (r *REPL) handleDone(args string) error {
	if args == "" {
		return fmt.Errorf("usage: /done <id>")
	}

	store := r.session.Store()
	current, err := store.Resolve(args)
	if err != nil {
		return err
	}

	toggled, err := store.ToggleCompleted(current.ID)
	if err != nil {
		return err
	}

	if toggled.Completed {
		r.displaySuccess(fmt.Sprintf("Reminder '%s' marked as completed.", toggled.Task))
	} else {
		r.displaySuccess(fmt.Sprintf("Reminder '%s' marked as pending.", toggled.Task))
	}
	return nil
}

// handlePriority picks a new priority for a reminder from a menu.
func (r *REPL) handlePriority(args string) error {
	if args == "" {
		return fmt.Errorf("usage: /priority <id>")
	}

	store := r.session.Store()
	current, err := store.Resolve(args)
	if err != nil {
		return err
	}

	priorities := reminder.Priorities()
	options := make([]string, len(priorities))
	def := 0
	for i, p := range priorities {
		options[i] = p.String()
		if p == current.Priority {
			def = i
		}
	}

	idx, err := r.choose(fmt.Sprintf("Priority for '%s'", current.Task), options, def)
	if err != nil {
		return err
	}

	updated, err := store.Update(current.ID,
		current.Task,
		current.DueAt.Format(reminder.TimeLayout),
		options[idx],
		current.Details,
	)
	if err != nil {
		return err
	}

	r.displaySuccess(fmt.Sprintf("Reminder '%s' set to %s priority.", updated.Task, updated.Priority))
	return nil
}

func (r *REPL) handleDelete(args string) error {
	if args == "" {
		return fmt.Errorf("usage: /rm <id>")
	}

	store := r.session.Store()
	current, err := store.Resolve(args)
	if err != nil {
		return err
	}

	ok, err := r.confirm(fmt.Sprintf("Delete reminder '%s'?", current.Task))
	if err != nil || !ok {
		return err
	}

	if err := store.Delete(current.ID); err != nil {
		return err
	}

	r.displaySuccess(fmt.Sprintf("Reminder '%s' deleted.", current.Task))
	return nil
}

func (r *REPL) handleClear() error {
	store := r.session.Store()
	if store.Len() == 0 {
		r.displayInfo("No reminders to delete.")
		return nil
	}

	ok, err := r.confirm(fmt.Sprintf("Delete ALL %d reminders?", store.Len()))
	if err != nil || !ok {
		return err
	}

	store.Clear()
	r.displaySuccess("All reminders deleted.")
	return nil
}

func (r *REPL) handleList(args string) error {
	now := r.now()
	records, err := reminder.Filter(r.session.Store().List(), args, now)
	if err != nil {
		return err
	}

	r.display(r.formatter.FormatList(records, now, ui.ListOptions{
		ShowCreated: r.config.UI.ShowCreated,
	}))
	return nil
}

func (r *REPL) handleShow(args string) error {
	if args == "" {
		return fmt.Errorf("usage: /show <id>")
	}

	rec, err := r.session.Store().Resolve(args)
	if err != nil {
		return err
	}

	details := rec.Details
	if r.config.UI.RenderDetails && r.formatter.Colored() {
		details = ui.RenderMarkdown(details, detailsWidth)
	}

	r.display(r.formatter.FormatRecord(rec, r.now(), details))
	return nil
}

func (r *REPL) handleNew() error {
	if r.session.Store().Len() > 0 {
		ok, err := r.confirm("Clear all current reminders and start a new list? Unsaved changes will be lost.")
		if err != nil || !ok {
			return err
		}
	}

	r.session.New()
	r.displaySystem(fmt.Sprintf("New reminder list started (%s).", r.session.Path()))
	return nil
}

func (r *REPL) handleOpen(args string) error {
	if args == "" {
		return fmt.Errorf("usage: /open <path>")
	}

	if err := r.session.Open(args); err != nil {
		return err
	}

	r.displaySystem(fmt.Sprintf("Loaded %d reminders from %s.", r.session.Store().Len(), r.session.Path()))
	return nil
}

// handleSave writes to path, or to the current file when path is empty.
func (r *REPL) handleSave(path string) error {
	var err error
	if path == "" {
		err = r.session.Save()
	} else {
		err = r.session.SaveAs(path)
	}
	if err != nil {
		return err
	}

	r.displaySuccess(fmt.Sprintf("Reminders saved to %s.", r.session.Path()))
	return nil
}
