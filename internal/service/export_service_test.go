package service

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"pitchplan/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type exportFixture struct {
	userRepo       *fakeUserRepo
	completionRepo *fakeCompletionRepo
	noteRepo       *fakeNoteRepo
	fileStorage    *fakeFileStorage
	svc            ExportService
}

func newExportFixture() *exportFixture {
	f := &exportFixture{
		userRepo:       newFakeUserRepo(),
		completionRepo: newFakeCompletionRepo(),
		noteRepo:       newFakeNoteRepo(),
		fileStorage:    newFakeFileStorage(),
	}
	f.svc = NewExportService(f.userRepo, f.completionRepo, f.noteRepo, f.fileStorage)
	return f
}

func TestCompletionsCSV(t *testing.T) {
	f := newExportFixture()
	ctx := context.Background()

	athlete := &domain.User{Name: "Ava Smith", Email: "ava@example.com", Role: domain.RoleAthlete}
	athleteID, err := f.userRepo.Create(ctx, athlete)
	require.NoError(t, err)

	require.NoError(t, f.completionRepo.Upsert(ctx, athleteID, "2024-01-01", domain.SectionWorkout, true))
	require.NoError(t, f.completionRepo.Upsert(ctx, athleteID, "2024-01-02", domain.SectionMobility, false))

	out, err := f.svc.CompletionsCSV(ctx)
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"user_name", "email", "date", "section", "completed"}, records[0])
	// newest date first
	assert.Equal(t, []string{"Ava Smith", "ava@example.com", "2024-01-02", "mobility", "0"}, records[1])
	assert.Equal(t, []string{"Ava Smith", "ava@example.com", "2024-01-01", "workout", "1"}, records[2])
}

func TestNotesCSVQuoting(t *testing.T) {
	f := newExportFixture()
	ctx := context.Background()

	athlete := &domain.User{Name: "Ava Smith", Email: "ava@example.com", Role: domain.RoleAthlete}
	athleteID, err := f.userRepo.Create(ctx, athlete)
	require.NoError(t, err)

	require.NoError(t, f.noteRepo.Upsert(ctx, athleteID, "2024-01-01", `felt "great", no soreness`))

	out, err := f.svc.NotesCSV(ctx)
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"user_name", "email", "date", "note"}, records[0])
	assert.Equal(t, `felt "great", no soreness`, records[1][3])
}

func TestBackupToStorage(t *testing.T) {
	f := newExportFixture()
	ctx := context.Background()

	athlete := &domain.User{Name: "Ava", Email: "ava@example.com", Role: domain.RoleAthlete}
	athleteID, err := f.userRepo.Create(ctx, athlete)
	require.NoError(t, err)
	require.NoError(t, f.completionRepo.Upsert(ctx, athleteID, "2024-01-01", domain.SectionWorkout, true))
	require.NoError(t, f.noteRepo.Upsert(ctx, athleteID, "2024-01-01", "solid"))

	url, err := f.svc.BackupToStorage(ctx, mustParse(t, "2024-01-05"))
	require.NoError(t, err)
	assert.Contains(t, url, "backups/")

	require.Len(t, f.fileStorage.objects, 1)
	for key, body := range f.fileStorage.objects {
		assert.True(t, strings.HasPrefix(key, "backups/20240105T000000-"))
		assert.True(t, strings.HasSuffix(key, ".json"))
		assert.Equal(t, "application/json", f.fileStorage.types[key])

		var snapshot Snapshot
		require.NoError(t, json.Unmarshal(body, &snapshot))
		require.Len(t, snapshot.Completions, 1)
		assert.True(t, snapshot.Completions[0].Completed)
		require.Len(t, snapshot.Notes, 1)
		assert.Equal(t, "solid", snapshot.Notes[0].Note)
	}
}
