package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/notexe/reminders/internal/reminder"
)

var (
	// Modern color palette
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")). // Coral red
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("222")) // Warm yellow

	SystemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("183")). // Soft purple
			Italic(true)

	HeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("81")).
			Bold(true)

	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("114")). // Green
			Bold(true)

	// Row styles
	CompletedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")). // Gray
			Italic(true)

	OverdueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")) // Coral red

	HighPriorityStyle = lipgloss.NewStyle().
				Bold(true)

	LowPriorityStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("242")) // Dark gray

	LabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	ValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))
)

const maxTaskWidth = 40

type Formatter struct {
	colored bool
}

func NewFormatter(colored bool) *Formatter {
	return &Formatter{colored: colored}
}

func (f *Formatter) Colored() bool {
	return f.colored
}

func (f *Formatter) FormatError(err error) string {
	prefix := "Error: "
	if f.colored {
		prefix = ErrorStyle.Render("Error: ")
	}
	return prefix + err.Error()
}

func (f *Formatter) FormatInfo(info string) string {
	if f.colored {
		return InfoStyle.Render(info)
	}
	return info
}

func (f *Formatter) FormatSystem(msg string) string {
	if f.colored {
		return SystemStyle.Render(msg)
	}
	return msg
}

func (f *Formatter) FormatSuccess(msg string) string {
	if f.colored {
		return SuccessStyle.Render(msg)
	}
	return msg
}

// ListOptions controls optional columns in FormatList.
type ListOptions struct {
	ShowCreated bool
}

// FormatList renders records as a table in the order given. Overdue is
// computed against now for every call.
func (f *Formatter) FormatList(records []reminder.Record, now time.Time, opts ListOptions) string {
	if len(records) == 0 {
		return f.FormatInfo("No reminders.")
	}

	taskWidth := len("Task")
	for _, r := range records {
		taskWidth = max(taskWidth, lipgloss.Width(truncate(r.Task, maxTaskWidth)))
	}

	header := []string{"   ", padRight("ID", 8), padRight("Task", taskWidth), padRight("Due", len(reminder.TimeLayout)), padRight("Priority", 8)}
	if opts.ShowCreated {
		header = append(header, "Created")
	}

	var lines []string
	headerLine := strings.TrimRight(strings.Join(header, "  "), " ")
	if f.colored {
		headerLine = HeaderStyle.Render(headerLine)
	}
	lines = append(lines, headerLine)

	for _, r := range records {
		overdue := r.Overdue(now)
		cols := []string{
			f.statusMark(r, overdue),
			r.ShortID(),
			padRight(truncate(r.Task, maxTaskWidth), taskWidth),
			r.DueAt.Format(reminder.TimeLayout),
			padRight(r.Priority.String(), 8),
		}
		if opts.ShowCreated {
			cols = append(cols, r.CreatedAt)
		}
		line := strings.TrimRight(strings.Join(cols, "  "), " ")
		lines = append(lines, f.styleRow(line, r, overdue))
	}

	return strings.Join(lines, "\n")
}

func (f *Formatter) statusMark(r reminder.Record, overdue bool) string {
	switch {
	case r.Completed:
		return "[X]"
	case overdue:
		return "[!]"
	default:
		return "[ ]"
	}
}

// styleRow applies the completed, overdue and priority styles to a row.
func (f *Formatter) styleRow(line string, r reminder.Record, overdue bool) string {
	if !f.colored {
		return line
	}

	style := lipgloss.NewStyle()
	switch r.Priority {
	case reminder.PriorityHigh:
		style = style.Inherit(HighPriorityStyle)
	case reminder.PriorityLow:
		style = style.Inherit(LowPriorityStyle)
	}
	if r.Completed {
		style = CompletedStyle.Inherit(style)
	} else if overdue {
		style = OverdueStyle.Inherit(style)
	}
	return style.Render(line)
}

// FormatRecord renders the detail view of one reminder. details is shown
// as given, so callers may pass pre-rendered markdown.
func (f *Formatter) FormatRecord(r reminder.Record, now time.Time, details string) string {
	status := "Pending"
	switch {
	case r.Completed:
		status = "Completed"
	case r.Overdue(now):
		status = "Overdue"
	}

	field := func(label, value string) string {
		if f.colored {
			return LabelStyle.Render(padRight(label+":", 10)) + " " + ValueStyle.Render(value)
		}
		return padRight(label+":", 10) + " " + value
	}

	title := r.Task
	if f.colored {
		title = HeaderStyle.Render(title)
	}

	lines := []string{
		title,
		field("ID", r.ID.String()),
		field("Due", r.DueAt.Format(reminder.TimeLayout)),
		field("Priority", r.Priority.String()),
		field("Status", status),
		field("Created", r.CreatedAt),
	}
	if r.Substituted {
		lines = append(lines, field("Note", fmt.Sprintf("due date %q could not be read; using load time", r.DueRaw)))
	}
	if details != "" {
		lines = append(lines, "", details)
	}

	return strings.Join(lines, "\n")
}

func (f *Formatter) FormatWelcome(path string, count int) string {
	title := "Reminders"
	fileLine := fmt.Sprintf("File: %s (%d reminders)", path, count)
	helpLine := "Type /help for commands"

	if !f.colored {
		return strings.Join([]string{"", title, fileLine, helpLine, ""}, "\n")
	}

	borderStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("62"))
	subtitleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245"))

	box := borderStyle.
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(0, 1).
		Render(strings.Join([]string{
			HeaderStyle.Render(title),
			LabelStyle.Render("File: ") + SuccessStyle.Render(path) + LabelStyle.Render(fmt.Sprintf(" (%d reminders)", count)),
			"",
			subtitleStyle.Render(helpLine),
		}, "\n"))

	return "\n" + box + "\n"
}

func (f *Formatter) FormatHelp() string {
	commands := []struct {
		section string
		cmd     string
		desc    string
	}{
		{"Reminders", "/add <task> | [due] | [priority] | [details]", "Add a reminder (due defaults to now)"},
		{"Reminders", "/edit <id> [task] | [due] | [priority] | [details]", "Edit; empty fields keep their value"},
		{"Reminders", "/done <id>", "Toggle completed"},
		{"Reminders", "/priority <id>", "Pick a new priority"},
		{"Reminders", "/rm <id>", "Delete a reminder"},
		{"Reminders", "/clear", "Delete all reminders"},
		{"View", "/list [pending|completed|overdue]", "List reminders"},
		{"View", "/show <id>", "Show one reminder with details"},
		{"View", "/now", "Print the current time in due-date format"},
		{"File", "/new", "Start a new list"},
		{"File", "/open <path>", "Load reminders from a file"},
		{"File", "/save", "Save to the current file"},
		{"File", "/saveas <path>", "Save to a new file"},
		{"General", "/about", "About this program"},
		{"General", "/help", "Show this help"},
		{"General", "/quit", "Exit"},
	}

	width := 0
	for _, c := range commands {
		width = max(width, len(c.cmd))
	}

	lines := []string{""}
	section := ""
	for _, c := range commands {
		if c.section != section {
			if section != "" {
				lines = append(lines, "")
			}
			section = c.section
			if f.colored {
				lines = append(lines, HeaderStyle.Render(section))
			} else {
				lines = append(lines, section+":")
			}
		}
		cmd := padRight(c.cmd, width)
		if f.colored {
			lines = append(lines, "  "+SuccessStyle.UnsetBold().Render(cmd)+"  "+ValueStyle.Render(c.desc))
		} else {
			lines = append(lines, "  "+cmd+"  "+c.desc)
		}
	}

	tips := []string{
		"",
		"IDs may be shortened to any unique prefix.",
		"Due dates use YYYY-MM-DD HH:MM.",
		"Ctrl+C or Ctrl+D to exit",
		"",
	}
	for _, tip := range tips {
		if f.colored && tip != "" {
			tip = DimStyle.Render("  " + tip)
		} else if tip != "" {
			tip = "  " + tip
		}
		lines = append(lines, tip)
	}

	return strings.Join(lines, "\n")
}

func (f *Formatter) FormatAbout() string {
	lines := []string{
		"Reminders",
		"",
		"Add, edit, complete and delete reminders with a due date and",
		"priority. Open reminders come first, then by due date, then by",
		"priority. Lists are saved as JSON, or SQLite for .db files.",
	}
	if f.colored {
		lines[0] = HeaderStyle.Render(lines[0])
	}
	return strings.Join(lines, "\n")
}

func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-1]) + "…"
}
