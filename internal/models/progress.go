package models

import (
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/dmitrijs2005/learnify/internal/common"
)

// QuizResult is a snapshot of the latest finished quiz. It is replaced as a
// whole, never merged.
type QuizResult struct {
	Score   int       `json:"score"`
	Total   int       `json:"total"`
	TakenAt time.Time `json:"takenAt"`
}

// Message is a contact form submission as stored in a user's own log.
type Message struct {
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// GlobalMessage is the copy of a Message kept in the global log.
type GlobalMessage struct {
	User string `json:"user"`
	Message
}

// TimeLayout is the timestamp format of the slot documents, the one
// JavaScript's Date.toISOString produces: UTC with exactly three fractional
// digits. Decoding accepts any RFC 3339 time.
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

func (q QuizResult) MarshalJSON() ([]byte, error) {
	type plain QuizResult
	return json.Marshal(struct {
		plain
		TakenAt string `json:"takenAt"`
	}{plain(q), formatTime(q.TakenAt)})
}

type messageJSON struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
	At      string `json:"at"`
}

func newMessageJSON(m Message) messageJSON {
	return messageJSON{Name: m.Name, Email: m.Email, Message: m.Message, At: formatTime(m.At)}
}

func (m Message) MarshalJSON() ([]byte, error) {
	return json.Marshal(newMessageJSON(m))
}

// MarshalJSON is needed so the promoted Message.MarshalJSON does not drop
// User.
func (g GlobalMessage) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		User string `json:"user"`
		messageJSON
	}{g.User, newMessageJSON(g.Message)})
}

// UserProgress is everything recorded for one username.
type UserProgress struct {
	// CompletedTutorials is kept in insertion order without duplicates.
	CompletedTutorials []string `json:"completedTutorials"`
	// QuizResult is nil when no quiz was taken or the result was cleared.
	QuizResult  *QuizResult       `json:"quizResult"`
	Transcripts map[string]string `json:"transcripts"`
	// Messages are newest first.
	Messages []Message `json:"messages"`
}

// NewUserProgress returns empty progress with initialised collections.
func NewUserProgress() *UserProgress {
	return &UserProgress{
		CompletedTutorials: []string{},
		Transcripts:        map[string]string{},
		Messages:           []Message{},
	}
}

func (u *UserProgress) HasQuizResult() bool {
	return u.QuizResult != nil
}

func (u *UserProgress) IsCompleted(tutorialID string) bool {
	return slices.Contains(u.CompletedTutorials, tutorialID)
}

// Complete adds tutorialID to the completion set. It reports whether the set
// changed.
func (u *UserProgress) Complete(tutorialID string) bool {
	if u.IsCompleted(tutorialID) {
		return false
	}
	u.CompletedTutorials = append(u.CompletedTutorials, tutorialID)
	return true
}

// Clone returns a deep copy.
func (u *UserProgress) Clone() UserProgress {
	out := UserProgress{
		CompletedTutorials: slices.Clone(u.CompletedTutorials),
		Transcripts:        make(map[string]string, len(u.Transcripts)),
		Messages:           slices.Clone(u.Messages),
	}
	if out.CompletedTutorials == nil {
		out.CompletedTutorials = []string{}
	}
	if out.Messages == nil {
		out.Messages = []Message{}
	}
	for k, v := range u.Transcripts {
		out.Transcripts[k] = v
	}
	if u.QuizResult != nil {
		qr := *u.QuizResult
		out.QuizResult = &qr
	}
	return out
}

func (u *UserProgress) normalize() {
	if u.CompletedTutorials == nil {
		u.CompletedTutorials = []string{}
	}
	if u.Transcripts == nil {
		u.Transcripts = map[string]string{}
	}
	if u.Messages == nil {
		u.Messages = []Message{}
	}
}

// RootDocument is the single persisted document holding every user's
// progress and the global message log (newest first).
type RootDocument struct {
	Users    map[string]*UserProgress `json:"users"`
	Messages []GlobalMessage          `json:"messages"`
}

// NewRootDocument returns the empty document {"users":{},"messages":[]}.
func NewRootDocument() *RootDocument {
	return &RootDocument{
		Users:    map[string]*UserProgress{},
		Messages: []GlobalMessage{},
	}
}

// EnsureUser returns the progress of username, inserting empty progress
// first when the entry is absent.
func (d *RootDocument) EnsureUser(username string) *UserProgress {
	if d.Users == nil {
		d.Users = map[string]*UserProgress{}
	}
	u, ok := d.Users[username]
	if !ok || u == nil {
		u = NewUserProgress()
		d.Users[username] = u
	}
	return u
}

// Lookup returns the progress of username without creating it.
func (d *RootDocument) Lookup(username string) (*UserProgress, bool) {
	u, ok := d.Users[username]
	return u, ok && u != nil
}

func (d *RootDocument) normalize() {
	if d.Users == nil {
		d.Users = map[string]*UserProgress{}
	}
	if d.Messages == nil {
		d.Messages = []GlobalMessage{}
	}
	for name, u := range d.Users {
		if u == nil {
			d.Users[name] = NewUserProgress()
			continue
		}
		u.normalize()
	}
}

// DecodeRootDocument parses the learnify_data_v1 slot. A missing slot yields
// a fresh document; malformed content yields a fresh document and
// common.ErrorMalformedData.
func DecodeRootDocument(raw []byte) (*RootDocument, error) {
	if raw == nil {
		return NewRootDocument(), nil
	}

	doc := &RootDocument{}
	if err := json.Unmarshal(raw, doc); err != nil {
		return NewRootDocument(), fmt.Errorf("%w: %v", common.ErrorMalformedData, err)
	}
	doc.normalize()
	return doc, nil
}

// Encode normalizes d and serializes it in the slot format.
func (d *RootDocument) Encode() ([]byte, error) {
	d.normalize()
	return json.Marshal(d)
}
