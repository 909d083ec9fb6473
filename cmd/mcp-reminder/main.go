// Command mcp-reminder provides an MCP server for reminder management.
//
// The server loads the configured reminder file on start and exposes tools
// for adding, listing, editing, completing and deleting reminders, and for
// opening and saving reminder files.
//
// Usage:
//
//	./mcp-reminder          # Start MCP server (stdio)
//	./mcp-reminder --help   # Show help
//
// Environment:
//
//	REMINDERS_STORAGE_DATA_FILE  Reminder file (default: reminders_data.json)
//	REMINDERS_STORAGE_BACKEND    auto, json or sqlite
//	REMINDERS_MCP_AUTOSAVE       Save after every change (default: true)
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/notexe/reminders/internal/config"
	"github.com/notexe/reminders/internal/reminder"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--help", "-h":
			printHelp()
			return
		}
	}

	// stdout carries the protocol.
	log.SetOutput(os.Stderr)

	cfg, err := config.Load(config.GetDefaultConfigPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	session, err := reminder.NewSession(reminder.NewStore(), cfg.Storage.DataFile, cfg.Storage.Backend)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create session: %v\n", err)
		os.Exit(1)
	}

	if err := session.LoadDefault(); err != nil {
		log.Printf("[mcp-reminder] Failed to load %s: %v", cfg.Storage.DataFile, err)
	}

	s := reminder.NewServer(session, cfg.MCP.Autosave)

	if err := server.ServeStdio(s.MCPServer()); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println(`MCP Reminder Server - Reminder management via MCP protocol

USAGE:
    mcp-reminder          Start MCP server (communicates via stdio)
    mcp-reminder --help   Show this help

CONFIGURATION:
    ~/.reminders/config.yaml, overridden by REMINDERS_* environment variables:

    REMINDERS_STORAGE_DATA_FILE  Reminder file loaded on start and saved to
                                 Default: reminders_data.json
    REMINDERS_STORAGE_BACKEND    auto (by extension), json or sqlite
    REMINDERS_MCP_AUTOSAVE       Save after every change (default: true)

TOOLS:
    add_reminder      Add a reminder (task, due_date, priority, details)
    list_reminders    List reminders (optional status: pending, completed, overdue)
    get_reminder      Show one reminder by ID or ID prefix
    update_reminder   Update task, due_date, priority or details
    toggle_reminder   Toggle a reminder between pending and completed
    delete_reminder   Delete a reminder
    clear_reminders   Delete all reminders
    open_reminders    Load reminders from a file
    save_reminders    Save reminders (optional path)
    new_reminders     Start an empty list

MCP CLIENT CONFIGURATION:
    {
      "mcpServers": {
        "reminder": {
          "command": "/path/to/mcp-reminder",
          "args": []
        }
      }
    }`)
}
