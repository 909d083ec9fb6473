package repl

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/chzyer/readline"
	"github.com/notexe/reminders/internal/config"
	"github.com/notexe/reminders/internal/reminder"
	"github.com/notexe/reminders/internal/ui"
)

type REPL struct {
	session   *reminder.Session
	config    *config.Config
	rl        *readline.Instance
	formatter *ui.Formatter
	out       io.Writer
	now       func() time.Time

	// choose presents options and returns the picked index. Replaced in
	// tests.
	choose func(question string, options []string, def int) (int, error)
}

func NewREPL(session *reminder.Session, cfg *config.Config) (*REPL, error) {
	rl, err := setupReadline()
	if err != nil {
		return nil, fmt.Errorf("failed to setup readline: %w", err)
	}

	r := newREPL(session, cfg, os.Stdout)
	r.rl = rl
	r.choose = r.chooseWithSelector
	return r, nil
}

func newREPL(session *reminder.Session, cfg *config.Config, out io.Writer) *REPL {
	return &REPL{
		session:   session,
		config:    cfg,
		formatter: ui.NewFormatter(cfg.UI.ColoredOutput),
		out:       out,
		now:       time.Now,
	}
}

func (r *REPL) Start(ctx context.Context) error {
	defer r.rl.Close()

	r.displayWelcome()

	for {
		if ctx.Err() != nil {
			return nil
		}

		input, err := r.readInput()
		if err != nil {
			if isEOF(err) {
				fmt.Fprintln(r.out, "\nGoodbye!")
				return nil
			}
			return fmt.Errorf("failed to read input: %w", err)
		}

		if input == "" {
			continue
		}

		if r.execute(input) {
			return nil
		}
	}
}

func (r *REPL) Stop() {
	if r.rl != nil {
		r.rl.Close()
	}
}

// execute runs one input line and reports whether the shell should exit.
func (r *REPL) execute(input string) bool {
	isCommand, command, args := r.parseCommand(input)
	if !isCommand {
		r.displayError(fmt.Errorf("commands start with / (type /help for available commands)"))
		return false
	}

	if err := r.handleCommand(command, args); err != nil {
		r.displayError(err)
	}

	return command == "/quit" || command == "/exit" || command == "/q"
}

func (r *REPL) handleCommand(command, args string) error {
	switch command {
	case "/add", "/a":
		return r.handleAdd(args)
	case "/edit", "/e":
		return r.handleEdit(args)
	case "/done", "/d":
		return r.handleDone(args)
	case "/priority", "/p":
		return r.handlePriority(args)
	case "/rm", "/delete":
		return r.handleDelete(args)
	case "/clear":
		return r.handleClear()
	case "/list", "/ls", "/l":
		return r.handleList(args)
	case "/show", "/s":
		return r.handleShow(args)
	case "/now":
		r.displayInfo(r.now().Format(reminder.TimeLayout))
		return nil
	case "/new":
		return r.handleNew()
	case "/open", "/o":
		return r.handleOpen(args)
	case "/save":
		return r.handleSave("")
	case "/saveas":
		if args == "" {
			return fmt.Errorf("usage: /saveas <path>")
		}
		return r.handleSave(args)
	case "/about":
		r.displayInfo(r.formatter.FormatAbout())
		return nil
	case "/help", "/h":
		r.displayHelp()
		return nil
	case "/quit", "/exit", "/q":
		fmt.Fprintln(r.out, "\nGoodbye!")
		return nil
	default:
		return fmt.Errorf("unknown command: %s (type /help for available commands)", command)
	}
}
