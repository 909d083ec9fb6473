package reminder

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	serverName    = "reminder"
	serverVersion = "1.0.0"
)

// Server is the MCP server for reminder management.
type Server struct {
	mcpServer *server.MCPServer
	session   *Session
	autosave  bool
	now       func() time.Time

	// Tool calls may be dispatched concurrently; Store is not safe for that.
	mu sync.Mutex
}

// NewServer creates a new Reminder MCP server backed by the given session.
// With autosave set, every successful mutation is written to the session
// path.
func NewServer(session *Session, autosave bool) *Server {
	s := &Server{
		session:  session,
		autosave: autosave,
		now:      time.Now,
	}

	s.mcpServer = server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(false),
	)

	s.registerTools()
	return s
}

// MCPServer returns the underlying MCP server for serving.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

func (s *Server) registerTools() {
	// add_reminder
	s.mcpServer.AddTool(
		mcp.NewTool("add_reminder",
			mcp.WithDescription("Add a new reminder with a task, due date, optional priority and details"),
			mcp.WithString("task", mcp.Required(), mcp.Description("What to do")),
			mcp.WithString("due_date", mcp.Required(), mcp.Description("Due date as YYYY-MM-DD HH:MM (e.g. 2025-01-15 09:00)")),
			mcp.WithString("priority", mcp.Description("Priority: High, Medium, Low (default: Medium)")),
			mcp.WithString("details", mcp.Description("Optional details")),
		),
		s.handleAddReminder,
	)

	// list_reminders
	s.mcpServer.AddTool(
		mcp.NewTool("list_reminders",
			mcp.WithDescription("List reminders in order: open first, then by due date, then by priority"),
			mcp.WithString("status", mcp.Description("Filter: pending, completed, overdue, or empty for all")),
		),
		s.handleListReminders,
	)

	// get_reminder
	s.mcpServer.AddTool(
		mcp.NewTool("get_reminder",
			mcp.WithDescription("Show a single reminder"),
			mcp.WithString("id", mcp.Required(), mcp.Description("Reminder ID or a unique prefix of it")),
		),
		s.handleGetReminder,
	)

	// update_reminder
	s.mcpServer.AddTool(
		mcp.NewTool("update_reminder",
			mcp.WithDescription("Update a reminder's fields; omitted fields keep their current value"),
			mcp.WithString("id", mcp.Required(), mcp.Description("Reminder ID or a unique prefix of it")),
			mcp.WithString("task", mcp.Description("New task")),
			mcp.WithString("due_date", mcp.Description("New due date as YYYY-MM-DD HH:MM")),
			mcp.WithString("priority", mcp.Description("New priority: High, Medium, Low")),
			mcp.WithString("details", mcp.Description("New details")),
		),
		s.handleUpdateReminder,
	)

	// toggle_reminder
	s.mcpServer.AddTool(
		mcp.NewTool("toggle_reminder",
			mcp.WithDescription("Mark a reminder completed, or pending again if it was completed"),
			mcp.WithString("id", mcp.Required(), mcp.Description("Reminder ID or a unique prefix of it")),
		),
		s.handleToggleReminder,
	)

	// delete_reminder
	s.mcpServer.AddTool(
		mcp.NewTool("delete_reminder",
			mcp.WithDescription("Delete a reminder permanently"),
			mcp.WithString("id", mcp.Required(), mcp.Description("Reminder ID or a unique prefix of it")),
		),
		s.handleDeleteReminder,
	)

	// clear_reminders
	s.mcpServer.AddTool(
		mcp.NewTool("clear_reminders",
			mcp.WithDescription("Delete all reminders"),
		),
		s.handleClearReminders,
	)

	// open_reminders
	s.mcpServer.AddTool(
		mcp.NewTool("open_reminders",
			mcp.WithDescription("Load reminders from a file, replacing the current list"),
			mcp.WithString("path", mcp.Required(), mcp.Description("Path to a .json or .db reminders file")),
		),
		s.handleOpenReminders,
	)

	// save_reminders
	s.mcpServer.AddTool(
		mcp.NewTool("save_reminders",
			mcp.WithDescription("Save reminders to the current file, or to a new path"),
			mcp.WithString("path", mcp.Description("Save to this path and use it from now on")),
		),
		s.handleSaveReminders,
	)

	// new_reminders
	s.mcpServer.AddTool(
		mcp.NewTool("new_reminders",
			mcp.WithDescription("Start a new empty list saved to the default file"),
		),
		s.handleNewReminders,
	)
}

// recordView is the JSON shape returned to MCP clients.
type recordView struct {
	ID        string `json:"id"`
	Task      string `json:"task"`
	DueDate   string `json:"due_date"`
	Priority  string `json:"priority"`
	Details   string `json:"details,omitempty"`
	Completed bool   `json:"completed"`
	Overdue   bool   `json:"overdue"`
	CreatedAt string `json:"created_at"`
	// Set when the stored due date could not be parsed.
	UnparsedDueDate string `json:"unparsed_due_date,omitempty"`
}

func newRecordView(r Record, now time.Time) recordView {
	return recordView{
		ID:              r.ID.String(),
		Task:            r.Task,
		DueDate:         r.DueAt.Format(TimeLayout),
		Priority:        r.Priority.String(),
		Details:         r.Details,
		Completed:       r.Completed,
		Overdue:         r.Overdue(now),
		CreatedAt:       r.CreatedAt,
		UnparsedDueDate: r.DueRaw,
	}
}

func (s *Server) recordResult(r Record) *mcp.CallToolResult {
	output, _ := json.MarshalIndent(newRecordView(r, s.now()), "", "  ")
	return mcp.NewToolResultText(string(output))
}

// persist saves after a mutation when autosave is on. The mutation itself
// has already succeeded, so a save failure is reported but not undone.
func (s *Server) persist(result *mcp.CallToolResult) *mcp.CallToolResult {
	if !s.autosave {
		return result
	}
	if err := s.session.Save(); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("change applied but failed to save: %v", err))
	}
	return result
}

func (s *Server) handleAddReminder(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	added, err := s.session.Store().Create(
		req.GetString("task", ""),
		req.GetString("due_date", ""),
		req.GetString("priority", ""),
		req.GetString("details", ""),
	)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to add reminder: %v", err)), nil
	}

	return s.persist(s.recordResult(added)), nil
}

func (s *Server) handleListReminders(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	records, err := Filter(s.session.Store().List(), req.GetString("status", ""), now)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list reminders: %v", err)), nil
	}

	views := make([]recordView, 0, len(records))
	for _, r := range records {
		views = append(views, newRecordView(r, now))
	}

	if len(views) == 0 {
		return mcp.NewToolResultText("No reminders found."), nil
	}

	output, _ := json.MarshalIndent(views, "", "  ")
	return mcp.NewToolResultText(string(output)), nil
}

func (s *Server) handleGetReminder(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, err := s.session.Store().Resolve(req.GetString("id", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to get reminder: %v", err)), nil
	}
	return s.recordResult(r), nil
}

func (s *Server) handleUpdateReminder(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	store := s.session.Store()
	current, err := store.Resolve(req.GetString("id", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to update reminder: %v", err)), nil
	}

	updated, err := store.Update(current.ID,
		req.GetString("task", current.Task),
		req.GetString("due_date", current.DueAt.Format(TimeLayout)),
		req.GetString("priority", current.Priority.String()),
		req.GetString("details", current.Details),
	)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to update reminder: %v", err)), nil
	}

	return s.persist(s.recordResult(updated)), nil
}

func (s *Server) handleToggleReminder(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	store := s.session.Store()
	current, err := store.Resolve(req.GetString("id", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to toggle reminder: %v", err)), nil
	}

	toggled, err := store.ToggleCompleted(current.ID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to toggle reminder: %v", err)), nil
	}

	action := "marked as pending"
	if toggled.Completed {
		action = "completed"
	}
	return s.persist(mcp.NewToolResultText(fmt.Sprintf("Reminder '%s' %s.", toggled.Task, action))), nil
}

func (s *Server) handleDeleteReminder(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	store := s.session.Store()
	current, err := store.Resolve(req.GetString("id", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to delete reminder: %v", err)), nil
	}

	if err := store.Delete(current.ID); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to delete reminder: %v", err)), nil
	}

	return s.persist(mcp.NewToolResultText(fmt.Sprintf("Reminder '%s' deleted.", current.Task))), nil
}

func (s *Server) handleClearReminders(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session.Store().Clear()
	return s.persist(mcp.NewToolResultText("All reminders deleted.")), nil
}

func (s *Server) handleOpenReminders(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := req.GetString("path", "")
	if path == "" {
		return mcp.NewToolResultError("path is required"), nil
	}

	if err := s.session.Open(path); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load reminders: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Loaded %d reminders from %s.", s.session.Store().Len(), path)), nil
}

func (s *Server) handleSaveReminders(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := req.GetString("path", s.session.Path())
	if err := s.session.SaveAs(path); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to save reminders: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Reminders saved to %s.", s.session.Path())), nil
}

func (s *Server) handleNewReminders(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session.New()
	return mcp.NewToolResultText(fmt.Sprintf("New reminder list started (%s).", s.session.Path())), nil
}
