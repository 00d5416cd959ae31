package commands_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flow-dev/flow/internal/catalog"
	"github.com/flow-dev/flow/internal/config"
	"github.com/flow-dev/flow/internal/ledger"
	"github.com/flow-dev/flow/internal/model"
	"github.com/flow-dev/flow/internal/runlog"
)

const weekNote = `17 Jan
Travel ₹200
Lunch ₹500
lent to Rahul ₹1000
Social ₹300
`

func initRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	out, err := runFlow(t, "init", dir, "--name", "personal")
	require.NoError(t, err, out)
	return dir
}

func writeNote(t *testing.T, dir, name, text string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	return path
}

func readSaved(t *testing.T, dir string) []ledger.StoredRecord {
	t.Helper()
	cfg, err := config.Load(filepath.Join(dir, config.FileName))
	require.NoError(t, err)
	stored, err := ledger.NewService(dir, catalog.FromConfig(cfg)).ReadAll()
	require.NoError(t, err)
	return stored
}

func TestProcess_PrintsRecords(t *testing.T) {
	dir := initRepo(t)
	note := writeNote(t, dir, "week3.txt", weekNote)

	out, err := runFlow(t, "process", note, "--repo", dir)
	require.NoError(t, err, out)

	assert.Contains(t, out, "4 recognized")
	assert.Contains(t, out, "Travel")
	assert.Contains(t, out, "₹200")
	assert.Contains(t, out, "General")
	assert.Contains(t, out, "Lent")
	assert.Contains(t, out, "Rahul")

	// Dry run: nothing saved.
	assert.Empty(t, readSaved(t, dir))
}

func TestProcess_Stdin(t *testing.T) {
	dir := initRepo(t)

	out, err := runFlowStdin(t, "Travel ₹200\n", "process", "--repo", dir)
	require.NoError(t, err, out)
	assert.Contains(t, out, "1 recognized")
}

func TestProcess_ReportsUnrecognized(t *testing.T) {
	dir := initRepo(t)
	note := writeNote(t, dir, "odd.txt", "Food ₹99999999999999999999\nTravel ₹50\n")

	out, err := runFlow(t, "process", note, "--repo", dir)
	require.NoError(t, err, out)

	assert.Contains(t, out, "1 recognized")
	assert.Contains(t, out, "1 lines were not understood")
	assert.Contains(t, out, "! Food ₹99999999999999999999")
}

func TestProcess_SaveIsIdempotent(t *testing.T) {
	dir := initRepo(t)
	note := writeNote(t, dir, "week3.txt", weekNote)

	out, err := runFlow(t, "process", note, "--repo", dir, "--save")
	require.NoError(t, err, out)
	assert.Contains(t, out, "saved 4 new records (0 duplicates skipped)")

	saved := readSaved(t, dir)
	require.Len(t, saved, 4)
	assert.Equal(t, model.CategoryTravel, saved[0].Category)
	assert.Equal(t, model.CategoryLent, saved[2].Category)
	assert.Equal(t, "Rahul", saved[2].Counterparty)

	// Saving the same note again changes nothing.
	out, err = runFlow(t, "process", note, "--repo", dir, "--save")
	require.NoError(t, err, out)
	assert.Contains(t, out, "saved 0 new records (4 duplicates skipped)")
	assert.Len(t, readSaved(t, dir), 4)
}

func TestProcess_SaveCommitsSnapshot(t *testing.T) {
	dir := initRepo(t)
	note := writeNote(t, dir, "week3.txt", weekNote)

	out, err := runFlow(t, "process", note, "--repo", dir, "--save")
	require.NoError(t, err, out)
	assert.Contains(t, out, "committed ")

	log := exec.Command("git", "log", "--format=%s", "-1")
	log.Dir = dir
	logOut, err := log.Output()
	require.NoError(t, err)
	assert.Contains(t, string(logOut), "notes: save "+time.Now().Format("2006-01"))
}

func TestProcess_SaveWritesRunLog(t *testing.T) {
	dir := initRepo(t)
	note := writeNote(t, dir, "week3.txt", weekNote)

	out, err := runFlow(t, "process", note, "--repo", dir, "--save")
	require.NoError(t, err, out)

	entries, err := runlog.Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "week3.txt", entries[0].Source)
	assert.Equal(t, 4, entries[0].Recognized)
	assert.Equal(t, 4, entries[0].Added)
	assert.NotEmpty(t, entries[0].CommitHash)
}

func TestProcess_MissingNoteFile(t *testing.T) {
	dir := initRepo(t)
	out, err := runFlow(t, "process", filepath.Join(dir, "missing.txt"), "--repo", dir)
	require.Error(t, err)
	assert.Contains(t, out, "reading note")
}

func TestSummary(t *testing.T) {
	dir := initRepo(t)
	note := writeNote(t, dir, "mixed.txt", "Money In : Sow ₹2000\nlent to Sow ₹500\nTravel ₹200\n")

	out, err := runFlow(t, "process", note, "--repo", dir, "--save")
	require.NoError(t, err, out)

	out, err = runFlow(t, "summary", "--repo", dir)
	require.NoError(t, err, out)

	assert.Contains(t, out, "Money In")
	assert.Contains(t, out, "Travel")
	// Gross income 2000 adjusts to 1500 once the settled 500 is netted out.
	assert.Contains(t, out, "₹2000")
	assert.Contains(t, out, "₹1500")
	assert.Contains(t, out, "net")
	assert.Contains(t, out, "₹1300")
}

func TestSummary_Empty(t *testing.T) {
	dir := initRepo(t)
	out, err := runFlow(t, "summary", "--repo", dir)
	require.NoError(t, err, out)
	assert.Contains(t, out, "no saved records")
}

func TestSummary_MonthFilter(t *testing.T) {
	dir := initRepo(t)
	note := writeNote(t, dir, "week3.txt", weekNote)
	out, err := runFlow(t, "process", note, "--repo", dir, "--save")
	require.NoError(t, err, out)

	out, err = runFlow(t, "summary", "--repo", dir, "--month", time.Now().Format("2006-01"))
	require.NoError(t, err, out)
	assert.Contains(t, out, "Travel")

	out, err = runFlow(t, "summary", "--repo", dir, "--month", "2020-01")
	require.NoError(t, err, out)
	assert.Contains(t, out, "no saved records")

	out, err = runFlow(t, "summary", "--repo", dir, "--month", "January")
	require.Error(t, err)
	assert.Contains(t, out, "invalid month")
}

func TestDebts(t *testing.T) {
	dir := initRepo(t)
	note := writeNote(t, dir, "mixed.txt", "Money In : Sow ₹2000\nlent to Sow ₹500\n")

	out, err := runFlow(t, "process", note, "--repo", dir, "--save")
	require.NoError(t, err, out)

	out, err = runFlow(t, "debts", "--repo", dir)
	require.NoError(t, err, out)

	assert.Contains(t, out, "Sow")
	assert.Contains(t, out, "₹500")
	assert.Contains(t, out, "₹2000")
	assert.Contains(t, out, "over-repaid ₹1500")
	assert.Contains(t, out, "100% recovered")
}

func TestDebts_NoLending(t *testing.T) {
	dir := initRepo(t)
	out, err := runFlow(t, "debts", "--repo", dir)
	require.NoError(t, err, out)
	assert.Contains(t, out, "no lending records")
}
