package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/stickies/pkg/core"
)

// run executes the CLI against a project directory and returns stdout.
func run(t *testing.T, root, stdin string, args ...string) (string, error) {
	t.Helper()

	// Flag variables are package globals and survive between runs.
	verbose, dir, adapter, layoutName = false, "", "", ""
	addTitle, addText, editTitle, editText = "", "", "", ""
	listJSON, deleteYes = false, false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append([]string{"--dir", root}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func listNotes(t *testing.T, root string, args ...string) []core.Note {
	t.Helper()
	out, err := run(t, root, "", append(args, "list", "--json")...)
	require.NoError(t, err)
	var notes []core.Note
	require.NoError(t, json.Unmarshal([]byte(out), &notes))
	return notes
}

func TestRecordsWorkflow(t *testing.T) {
	root := t.TempDir()

	out, err := run(t, root, "", "add", "--title", " Groceries ", "--text", "milk, eggs")
	require.NoError(t, err)
	assert.Contains(t, out, "Note added:")

	_, err = run(t, root, "", "add", "--title", "Work", "--text", "report")
	require.NoError(t, err)

	out, err = run(t, root, "", "add")
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing to add")

	data, err := os.ReadFile(filepath.Join(root, ".stickies", "notes.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Groceries"`)

	notes := listNotes(t, root)
	require.Len(t, notes, 2)
	assert.Equal(t, "Work", notes[0].Title, "newest first")
	groceries := strconv.FormatInt(notes[1].ID, 10)

	out, err = run(t, root, "", "search", "MILK")
	require.NoError(t, err)
	assert.Contains(t, out, "Groceries")
	assert.NotContains(t, out, "Work")

	_, err = run(t, root, "", "edit", groceries, "--text", "bread")
	require.NoError(t, err)
	notes = listNotes(t, root)
	assert.Equal(t, "Groceries", notes[1].Title)
	assert.Equal(t, "bread", notes[1].Text)

	out, err = run(t, root, "n\n", "delete", groceries)
	require.NoError(t, err)
	assert.Contains(t, out, core.DeletePrompt)
	assert.Contains(t, out, "Cancelled")
	assert.Len(t, listNotes(t, root), 2)

	out, err = run(t, root, "y\n", "delete", groceries)
	require.NoError(t, err)
	assert.Contains(t, out, "Note deleted")
	assert.Len(t, listNotes(t, root), 1)

	_, err = run(t, root, "", "delete", "--yes", "1")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestFreeformWorkflow(t *testing.T) {
	root := t.TempDir()

	notes := listNotes(t, root, "--layout", "freeform")
	require.Len(t, notes, 1, "fresh freeform store starts with one blank note")

	_, err := run(t, root, "", "--layout", "freeform", "new")
	require.NoError(t, err)
	_, err = run(t, root, "", "--layout", "freeform", "edit", "1", "--text", "buy milk")
	require.NoError(t, err)

	out, err := run(t, root, "", "--layout", "freeform", "list")
	require.NoError(t, err)
	assert.Equal(t, "0: \"\"\n1: \"buy milk\"\n", out)

	out, err = run(t, root, "", "--layout", "freeform", "search", "milk")
	require.NoError(t, err)
	assert.Equal(t, "1: \"buy milk\"\n", out)

	_, err = run(t, root, "", "--layout", "freeform", "delete", "0")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(root, ".stickies", "stickyNotes.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `["buy milk"]`, string(data))
}

func TestNewRejectedForRecords(t *testing.T) {
	_, err := run(t, t.TempDir(), "", "new")
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, err := run(t, t.TempDir(), "", "version")
	require.NoError(t, err)
	assert.Equal(t, "stickies version 0.1.0\n", out)
}
