package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"time"

	"pitchplan/internal/domain"
	"pitchplan/internal/repository"
	"pitchplan/internal/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Snapshot is the backup document uploaded to object storage: the full
// completion and note ledgers at one point in time.
type Snapshot struct {
	TakenAt     time.Time           `json:"takenAt"`
	Completions []domain.Completion `json:"completions"`
	Notes       []domain.DailyNote  `json:"notes"`
}

// --- Service Interface ---
type ExportService interface {
	// CompletionsCSV renders the completion ledger as CSV with athlete context.
	CompletionsCSV(ctx context.Context) ([]byte, error)
	// NotesCSV renders the note ledger as CSV with athlete context.
	NotesCSV(ctx context.Context) ([]byte, error)
	// BackupToStorage uploads a JSON snapshot of the ledgers to object
	// storage and returns a presigned download URL.
	BackupToStorage(ctx context.Context, now time.Time) (string, error)
}

// --- Service Implementation ---

// exportService implements the ExportService interface.
type exportService struct {
	userRepo       repository.UserRepository
	completionRepo repository.CompletionRepository
	noteRepo       repository.NoteRepository
	fileStorage    storage.FileStorage
}

// NewExportService creates a new instance of exportService.
func NewExportService(
	userRepo repository.UserRepository,
	completionRepo repository.CompletionRepository,
	noteRepo repository.NoteRepository,
	fileStorage storage.FileStorage,
) ExportService {
	return &exportService{
		userRepo:       userRepo,
		completionRepo: completionRepo,
		noteRepo:       noteRepo,
		fileStorage:    fileStorage,
	}
}

// CompletionsCSV writes one row per completion record, newest date first.
func (s *exportService) CompletionsCSV(ctx context.Context) ([]byte, error) {
	completions, err := s.completionRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.userIndex(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"user_name", "email", "date", "section", "completed"}); err != nil {
		return nil, err
	}
	for _, c := range completions {
		completed := "0"
		if c.Completed {
			completed = "1"
		}
		name, email := users[c.AthleteID].Name, users[c.AthleteID].Email
		row := []string{name, email, c.Date, string(c.Section), completed}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// NotesCSV writes one row per daily note, newest date first.
func (s *exportService) NotesCSV(ctx context.Context) ([]byte, error) {
	notes, err := s.noteRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.userIndex(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"user_name", "email", "date", "note"}); err != nil {
		return nil, err
	}
	for _, n := range notes {
		name, email := users[n.AthleteID].Name, users[n.AthleteID].Email
		if err := w.Write([]string{name, email, n.Date, n.Note}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BackupToStorage marshals the ledgers into one JSON snapshot, uploads it
// under a unique key, and hands back a presigned download link.
func (s *exportService) BackupToStorage(ctx context.Context, now time.Time) (string, error) {
	completions, err := s.completionRepo.List(ctx)
	if err != nil {
		return "", err
	}
	notes, err := s.noteRepo.List(ctx)
	if err != nil {
		return "", err
	}

	snapshot := Snapshot{
		TakenAt:     now.UTC(),
		Completions: completions,
		Notes:       notes,
	}
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return "", err
	}

	objectKey := fmt.Sprintf("backups/%s-%s.json", now.UTC().Format("20060102T150405"), uuid.NewString())
	if err := s.fileStorage.PutObject(ctx, objectKey, "application/json", payload); err != nil {
		return "", err
	}

	return s.fileStorage.GeneratePresignedDownloadURL(ctx, objectKey, storage.DefaultPresignedURLExpiry)
}

// userIndex loads all users keyed by ID for joining names into exports.
func (s *exportService) userIndex(ctx context.Context) (map[primitive.ObjectID]domain.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	index := make(map[primitive.ObjectID]domain.User, len(users))
	for _, u := range users {
		index[u.ID] = u
	}
	return index, nil
}
