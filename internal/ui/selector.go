package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// ErrCancelled is returned when the user aborts a selection with Ctrl+C.
var ErrCancelled = errors.New("cancelled")

var (
	menuCursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	menuSelectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("114")).Bold(true)
	menuOptionStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	menuQuestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("81")).Bold(true)
	menuHintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true)
)

const menuHint = "[up/down] move  [enter] select  [1-9] pick"

// Selector is an arrow-key menu that returns one option.
type Selector struct {
	question string
	options  []string
	selected int
	colored  bool
}

// NewSelector creates a selector with the cursor on option def.
func NewSelector(question string, options []string, def int, colored bool) *Selector {
	if def < 0 || def >= len(options) {
		def = 0
	}
	return &Selector{
		question: question,
		options:  options,
		selected: def,
		colored:  colored,
	}
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Confirm asks a yes/no question. The cursor starts on "No".
func Confirm(question string, colored bool) (bool, error) {
	idx, err := NewSelector(question, []string{"Yes", "No"}, 1, colored).Run()
	if err != nil {
		return false, err
	}
	return idx == 0, nil
}

type keyAction int

const (
	keyNone keyAction = iota
	keyUp
	keyDown
	keyAccept
	keyCancel
	keyPick
)

// Run displays the menu and returns the chosen index. Without a terminal
// on stdin it falls back to reading a line.
func (s *Selector) Run() (int, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return s.runLine(os.Stdin)
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return s.runLine(os.Stdin)
	}
	fmt.Print("\033[?25l") // hide cursor
	defer func() {
		term.Restore(fd, oldState)
		fmt.Print("\033[?25h")
	}()

	lines := s.render()
	reader := bufio.NewReader(os.Stdin)
	for {
		action, picked, err := s.readKey(reader)
		if err != nil {
			s.erase(lines)
			return 0, err
		}

		switch action {
		case keyUp:
			s.selected = (s.selected + len(s.options) - 1) % len(s.options)
		case keyDown:
			s.selected = (s.selected + 1) % len(s.options)
		case keyPick:
			s.selected = picked
			fallthrough
		case keyAccept:
			s.erase(lines)
			return s.selected, nil
		case keyCancel:
			s.erase(lines)
			return 0, ErrCancelled
		default:
			continue
		}

		s.erase(lines)
		lines = s.render()
	}
}

func (s *Selector) readKey(r *bufio.Reader) (keyAction, int, error) {
	b, err := r.ReadByte()
	if err != nil {
		return keyNone, 0, err
	}

	switch b {
	case '\r', '\n':
		return keyAccept, 0, nil
	case 3: // Ctrl+C
		return keyCancel, 0, nil
	case 'k':
		return keyUp, 0, nil
	case 'j':
		return keyDown, 0, nil
	case 27: // ESC [ A / ESC [ B
		if next, _ := r.ReadByte(); next != '[' {
			return keyNone, 0, nil
		}
		switch dir, _ := r.ReadByte(); dir {
		case 'A':
			return keyUp, 0, nil
		case 'B':
			return keyDown, 0, nil
		}
		return keyNone, 0, nil
	}

	if idx, ok := s.pick(b); ok {
		return keyPick, idx, nil
	}
	return keyNone, 0, nil
}

// pick maps a digit key or the first letter of an option to its index.
func (s *Selector) pick(b byte) (int, bool) {
	if b >= '1' && b <= '9' {
		idx := int(b - '1')
		return idx, idx < len(s.options)
	}
	for i, opt := range s.options {
		if opt != "" && strings.EqualFold(opt[:1], string(b)) {
			return i, true
		}
	}
	return 0, false
}

func (s *Selector) style(st lipgloss.Style, text string) string {
	if !s.colored {
		return text
	}
	return st.Render(text)
}

// render draws the menu and returns the number of lines written.
func (s *Selector) render() int {
	var sb strings.Builder
	sb.WriteString(s.style(menuQuestionStyle, s.question) + "\r\n")
	sb.WriteString(s.style(menuHintStyle, menuHint) + "\r\n\r\n")

	for i, opt := range s.options {
		if i == s.selected {
			sb.WriteString(s.style(menuCursorStyle, "> ") + s.style(menuSelectedStyle, opt))
		} else {
			sb.WriteString("  " + s.style(menuOptionStyle, opt))
		}
		sb.WriteString("\r\n")
	}

	fmt.Print(sb.String())
	return len(s.options) + 3
}

func (s *Selector) erase(lines int) {
	fmt.Print(strings.Repeat("\033[A\033[2K", lines) + "\r")
}

// runLine prints numbered options and reads one line from r. Anything
// unrecognised keeps the default.
func (s *Selector) runLine(r io.Reader) (int, error) {
	fmt.Println(s.question)
	for i, opt := range s.options {
		fmt.Printf("  [%d] %s\n", i+1, opt)
	}
	fmt.Printf("Choice [%d]: ", s.selected+1)

	input, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && input == "" {
		return 0, ErrCancelled
	}

	if input = strings.TrimSpace(input); input != "" {
		if idx, ok := s.pick(input[0]); ok {
			return idx, nil
		}
	}
	return s.selected, nil
}
