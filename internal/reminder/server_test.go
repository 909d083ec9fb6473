package reminder

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, autosave bool) (*Server, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultFilename)
	s := NewServer(newTestSession(t, path, BackendAuto), autosave)
	s.now = func() time.Time { return testNow }
	return s, path
}

func call(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func addViaTool(t *testing.T, s *Server, task, due, priority string) recordView {
	t.Helper()
	res, err := s.handleAddReminder(context.Background(), call(map[string]any{
		"task": task, "due_date": due, "priority": priority,
	}))
	require.NoError(t, err)
	require.False(t, res.IsError, resultText(t, res))

	var view recordView
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &view))
	return view
}

func listViaTool(t *testing.T, s *Server, status string) []recordView {
	t.Helper()
	res, err := s.handleListReminders(context.Background(), call(map[string]any{"status": status}))
	require.NoError(t, err)
	require.False(t, res.IsError, resultText(t, res))

	text := resultText(t, res)
	if text == "No reminders found." {
		return nil
	}
	var views []recordView
	require.NoError(t, json.Unmarshal([]byte(text), &views))
	return views
}

func viewTasks(views []recordView) []string {
	out := make([]string, len(views))
	for i, v := range views {
		out[i] = v.Task
	}
	return out
}

func TestServerAddAndList(t *testing.T) {
	s, path := newTestServer(t, true)

	added := addViaTool(t, s, "Call dentist", "2025-01-01 09:00", "Low")
	assert.Equal(t, "Low", added.Priority)
	assert.True(t, added.Overdue)
	addViaTool(t, s, "Buy milk", "2025-01-01 09:00", "High")
	addViaTool(t, s, "Plan trip", "2030-01-01 09:00", "")

	views := listViaTool(t, s, "")
	assert.Equal(t, []string{"Buy milk", "Call dentist", "Plan trip"}, viewTasks(views))
	assert.Equal(t, "Medium", views[2].Priority)
	assert.False(t, views[2].Overdue)

	overdue := listViaTool(t, s, "overdue")
	assert.Equal(t, []string{"Buy milk", "Call dentist"}, viewTasks(overdue))

	// autosave wrote the file
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	records, err := Decode(data, testNow)
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestServerAddValidation(t *testing.T) {
	s, path := newTestServer(t, true)

	res, err := s.handleAddReminder(context.Background(), call(map[string]any{
		"task": "Buy milk", "due_date": "tomorrow",
	}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "due")

	assert.Empty(t, listViaTool(t, s, ""))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestServerUpdateKeepsOmittedFields(t *testing.T) {
	s, _ := newTestServer(t, false)
	added := addViaTool(t, s, "Buy milk", "2025-01-01 09:00", "High")

	res, err := s.handleUpdateReminder(context.Background(), call(map[string]any{
		"id": added.ID[:8], "details": "oat",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError, resultText(t, res))

	var view recordView
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &view))
	assert.Equal(t, added.ID, view.ID)
	assert.Equal(t, "Buy milk", view.Task)
	assert.Equal(t, "2025-01-01 09:00", view.DueDate)
	assert.Equal(t, "High", view.Priority)
	assert.Equal(t, "oat", view.Details)
	assert.Equal(t, added.CreatedAt, view.CreatedAt)

	res, err = s.handleUpdateReminder(context.Background(), call(map[string]any{
		"id": added.ID, "task": "   ",
	}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Equal(t, "Buy milk", listViaTool(t, s, "")[0].Task)
}

func TestServerToggleAndFilter(t *testing.T) {
	s, _ := newTestServer(t, false)
	first := addViaTool(t, s, "Earliest", "2025-01-01 08:00", "High")
	addViaTool(t, s, "Later", "2025-02-01 08:00", "Low")

	res, err := s.handleToggleReminder(context.Background(), call(map[string]any{"id": first.ID}))
	require.NoError(t, err)
	assert.Equal(t, "Reminder 'Earliest' completed.", resultText(t, res))

	assert.Equal(t, []string{"Later", "Earliest"}, viewTasks(listViaTool(t, s, "")))
	assert.Equal(t, []string{"Earliest"}, viewTasks(listViaTool(t, s, "completed")))
	assert.Equal(t, []string{"Later"}, viewTasks(listViaTool(t, s, "pending")))

	res, err = s.handleListReminders(context.Background(), call(map[string]any{"status": "someday"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestServerDeleteTwice(t *testing.T) {
	s, _ := newTestServer(t, false)
	added := addViaTool(t, s, "Buy milk", "2025-01-01 09:00", "High")

	res, err := s.handleDeleteReminder(context.Background(), call(map[string]any{"id": added.ID}))
	require.NoError(t, err)
	assert.False(t, res.IsError)

	res, err = s.handleDeleteReminder(context.Background(), call(map[string]any{"id": added.ID}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestServerSaveOpenNew(t *testing.T) {
	s, defaultPath := newTestServer(t, false)
	addViaTool(t, s, "Buy milk", "2025-01-01 09:00", "High")

	other := filepath.Join(filepath.Dir(defaultPath), "other.db")
	res, err := s.handleSaveReminders(context.Background(), call(map[string]any{"path": other}))
	require.NoError(t, err)
	require.False(t, res.IsError, resultText(t, res))
	assert.Equal(t, other, s.session.Path())

	res, err = s.handleNewReminders(context.Background(), call(nil))
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Empty(t, listViaTool(t, s, ""))
	assert.Equal(t, defaultPath, s.session.Path())

	res, err = s.handleOpenReminders(context.Background(), call(map[string]any{"path": other}))
	require.NoError(t, err)
	require.False(t, res.IsError, resultText(t, res))
	assert.Equal(t, []string{"Buy milk"}, viewTasks(listViaTool(t, s, "")))

	res, err = s.handleClearReminders(context.Background(), call(nil))
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Empty(t, listViaTool(t, s, ""))
}
