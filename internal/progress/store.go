// Package progress owns the RootDocument persisted in slot learnify_data_v1.
// Every mutation is one read-modify-write of the whole document executed as
// a single kv.Repository.Update, so terminals sharing a database cannot
// clobber each other's writes. Storage failures are logged and swallowed:
// callers carry on as if the write succeeded.
package progress

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dmitrijs2005/learnify/internal/common"
	"github.com/dmitrijs2005/learnify/internal/logging"
	"github.com/dmitrijs2005/learnify/internal/models"
	"github.com/dmitrijs2005/learnify/internal/storage/kv"
)

// nowFunc is a seam for tests.
var nowFunc = time.Now

// now matches the millisecond precision of the browser's ISO timestamps.
func now() time.Time {
	return nowFunc().UTC().Truncate(time.Millisecond)
}

// Store owns the progress document kept in the learnify_data_v1 slot. Every
// mutation is a single read-modify-write of the whole document.
type Store struct {
	repo kv.Repository
	log  logging.Logger
	mu   sync.Mutex
}

// NewStore returns a Store persisting through repo.
func NewStore(repo kv.Repository, log logging.Logger) *Store {
	return &Store{repo: repo, log: log}
}

func (s *Store) decode(ctx context.Context, raw []byte) *models.RootDocument {
	doc, err := models.DecodeRootDocument(raw)
	if err != nil {
		s.log.Warn(ctx, "malformed progress document, starting empty", "slot", common.SlotProgress, "error", err)
	}
	return doc
}

// Load returns the persisted document, or a fresh one when the slot is
// missing, unreadable or malformed.
func (s *Store) Load(ctx context.Context) *models.RootDocument {
	raw, err := s.repo.Get(ctx, common.SlotProgress)
	if err != nil {
		s.log.Error(ctx, "failed to load progress document", "error", err)
		return models.NewRootDocument()
	}
	return s.decode(ctx, raw)
}

// Save persists doc as a whole.
func (s *Store) Save(ctx context.Context, doc *models.RootDocument) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := doc.Encode()
	if err == nil {
		err = s.repo.Set(ctx, common.SlotProgress, b)
	}
	if err != nil {
		s.log.Error(ctx, "failed to save progress document", "error", err)
	}
}

// errUnchanged aborts an update that has nothing to write.
var errUnchanged = errors.New("unchanged")

// mutate applies fn to the current document inside one storage transaction.
// fn reports whether the document changed; unchanged documents are not
// written back.
func (s *Store) mutate(ctx context.Context, op string, fn func(doc *models.RootDocument) bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.repo.Update(ctx, common.SlotProgress, func(current []byte) ([]byte, error) {
		doc := s.decode(ctx, current)
		if !fn(doc) {
			return nil, errUnchanged
		}
		return doc.Encode()
	})
	if err != nil && !errors.Is(err, errUnchanged) {
		s.log.Error(ctx, "failed to save progress document", "op", op, "error", err)
		return
	}
	s.log.Debug(ctx, "progress updated", "op", op, "changed", err == nil)
}

// MarkTutorialComplete adds tutorialID to the user's completion set.
func (s *Store) MarkTutorialComplete(ctx context.Context, username, tutorialID string) {
	s.mutate(ctx, "complete", func(doc *models.RootDocument) bool {
		_, existed := doc.Lookup(username)
		added := doc.EnsureUser(username).Complete(tutorialID)
		return added || !existed
	})
}

// SetTranscript stores the user's notes for one tutorial, replacing any
// earlier text.
func (s *Store) SetTranscript(ctx context.Context, username, tutorialID, text string) {
	s.mutate(ctx, "set_transcript", func(doc *models.RootDocument) bool {
		doc.EnsureUser(username).Transcripts[tutorialID] = text
		return true
	})
}

// ClearTranscript removes the user's notes for one tutorial.
func (s *Store) ClearTranscript(ctx context.Context, username, tutorialID string) {
	s.mutate(ctx, "clear_transcript", func(doc *models.RootDocument) bool {
		delete(doc.EnsureUser(username).Transcripts, tutorialID)
		return true
	})
}

// RecordQuizResult replaces the user's quiz result with a fresh snapshot.
func (s *Store) RecordQuizResult(ctx context.Context, username string, score, total int) {
	taken := now()
	s.mutate(ctx, "record_quiz", func(doc *models.RootDocument) bool {
		doc.EnsureUser(username).QuizResult = &models.QuizResult{
			Score:   score,
			Total:   total,
			TakenAt: taken,
		}
		return true
	})
}

// ClearQuizResult marks the quiz result absent. Unknown users are left
// alone.
func (s *Store) ClearQuizResult(ctx context.Context, username string) {
	s.mutate(ctx, "clear_quiz", func(doc *models.RootDocument) bool {
		u, ok := doc.Lookup(username)
		if !ok {
			return false
		}
		u.QuizResult = nil
		return true
	})
}

// AppendMessage prepends a contact message to the global log and to the
// user's own log. Each copy gets its own timestamp capture.
func (s *Store) AppendMessage(ctx context.Context, username, name, email, message string) {
	s.mutate(ctx, "append_message", func(doc *models.RootDocument) bool {
		u := doc.EnsureUser(username)

		global := models.GlobalMessage{
			User:    username,
			Message: models.Message{Name: name, Email: email, Message: message, At: now()},
		}
		doc.Messages = append([]models.GlobalMessage{global}, doc.Messages...)

		own := models.Message{Name: name, Email: email, Message: message, At: now()}
		u.Messages = append([]models.Message{own}, u.Messages...)
		return true
	})
}

// ResetAll deletes the whole document.
func (s *Store) ResetAll(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Delete(ctx, common.SlotProgress); err != nil {
		s.log.Error(ctx, "failed to reset progress", "error", err)
		return
	}
	s.log.Info(ctx, "all progress cleared")
}

// User returns a copy of the user's progress; unknown users get empty
// progress.
func (s *Store) User(ctx context.Context, username string) models.UserProgress {
	u, ok := s.Load(ctx).Lookup(username)
	if !ok {
		return models.NewUserProgress().Clone()
	}
	return u.Clone()
}
