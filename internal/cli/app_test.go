package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/learnify/internal/catalog"
	"github.com/dmitrijs2005/learnify/internal/common"
	"github.com/dmitrijs2005/learnify/internal/config"
	"github.com/dmitrijs2005/learnify/internal/logging"
	"github.com/dmitrijs2005/learnify/internal/models"
	"github.com/dmitrijs2005/learnify/internal/storage/kv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runScript drives a fresh App over repo with the given input lines and
// returns everything it printed.
func runScript(t *testing.T, repo kv.Repository, lines ...string) string {
	t.Helper()
	stubTerminal(t, false, nil, nil)

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.QuizFeedbackDelay = time.Millisecond

	var out bytes.Buffer
	app, err := NewApp(cfg, repo, logging.Nop(), strings.NewReader(strings.Join(lines, "\n")+"\n"), &out)
	require.NoError(t, err)

	app.Run(context.Background())
	return out.String()
}

func loadDoc(t *testing.T, repo kv.Repository) *models.RootDocument {
	t.Helper()
	raw, err := repo.Get(context.Background(), common.SlotProgress)
	require.NoError(t, err)
	doc, err := models.DecodeRootDocument(raw)
	require.NoError(t, err)
	return doc
}

func TestApp_RegisterLoginAndComplete(t *testing.T) {
	repo := kv.NewMemoryRepository()

	out := runScript(t, repo,
		"whoami",
		"register", "bob", "pw1",
		"register", "bob", "other",
		"register", "", "x",
		"login", "bob", "wrong",
		"login", "bob", "pw1",
		"whoami",
		"watch t2",
		"complete",
		"complete",
		"tutorials",
		"exit",
	)

	assert.Contains(t, out, "Browsing as guest")
	assert.Contains(t, out, "Registration successful! You can now log in.")
	assert.Contains(t, out, "Username already exists!")
	assert.Contains(t, out, "Please enter username and password.")
	assert.Contains(t, out, "Invalid username or password.")
	assert.Contains(t, out, "Welcome back, bob!")
	assert.Contains(t, out, "Logged in as bob")
	assert.Contains(t, out, "learnify (bob)> ")
	assert.Contains(t, out, "Python Full Course")
	assert.Contains(t, out, "Tutorials completed: 1/5 (20%)")

	doc := loadDoc(t, repo)
	require.Equal(t, []string{"t2"}, doc.Users["bob"].CompletedTutorials)

	cur, _ := repo.Get(context.Background(), common.SlotCurrentUser)
	require.Equal(t, "bob", string(cur))
}

func TestApp_SessionSurvivesRestartAndLogout(t *testing.T) {
	repo := kv.NewMemoryRepository()
	runScript(t, repo, "register", "amy", "pw", "login", "amy", "pw", "exit")

	out := runScript(t, repo, "whoami", "logout", "whoami", "exit")
	assert.Contains(t, out, "Logged in as amy")
	assert.Contains(t, out, "Logged out.")
	assert.Contains(t, out, "learnify (guest)> ")
}

func TestApp_Transcripts(t *testing.T) {
	repo := kv.NewMemoryRepository()

	out := runScript(t, repo,
		"watch 3",
		"savetranscript", "first line", "", "second line", ".",
		"transcript",
		"cleartranscript", "n",
		"cleartranscript", "y",
		"transcript",
		"exit",
	)

	assert.Contains(t, out, "Transcript saved locally.")
	assert.Contains(t, out, "first line\n\nsecond line")
	assert.Contains(t, out, "Transcript cleared.")
	assert.Contains(t, out, "(empty)")

	doc := loadDoc(t, repo)
	require.Empty(t, doc.Users[common.GuestUser].Transcripts)
}

func quizAnswers(correct int) []string {
	var lines []string
	for i, q := range catalog.Quiz() {
		opt := q.Correct
		if i >= correct {
			opt = (q.Correct + 1) % len(q.Options)
		}
		lines = append(lines, fmt.Sprint(opt+1))
	}
	return lines
}

func TestApp_QuizSevenOutOfTen(t *testing.T) {
	repo := kv.NewMemoryRepository()

	lines := []string{"quiz", "9", "abc"}
	lines = append(lines, quizAnswers(7)...)
	lines = append(lines, "exit")
	out := runScript(t, repo, lines...)

	assert.Contains(t, out, "No quiz taken yet")
	assert.Contains(t, out, "Please answer with an option number.")
	assert.Contains(t, out, "✅ Correct")
	assert.Contains(t, out, "❌ Incorrect")
	assert.Contains(t, out, "Your score: 7/10")
	assert.Contains(t, out, "Last score: 7/10 (70%)")

	qr := loadDoc(t, repo).Users[common.GuestUser].QuizResult
	require.NotNil(t, qr)
	require.Equal(t, 7, qr.Score)
	require.Equal(t, 10, qr.Total)
}

func TestApp_QuizLeaveResumeAndReset(t *testing.T) {
	repo := kv.NewMemoryRepository()
	answers := quizAnswers(10)

	lines := []string{"quiz", answers[0], "q", "quiz"}
	lines = append(lines, answers[1:]...)
	lines = append(lines, "quizreset", "y", "exit")
	out := runScript(t, repo, lines...)

	assert.Contains(t, out, "Resuming quiz at question 2")
	assert.Contains(t, out, "Your score: 10/10")
	assert.Contains(t, out, "Quiz result cleared for user: guest")

	require.Nil(t, loadDoc(t, repo).Users[common.GuestUser].QuizResult)
}

func TestApp_ContactAdminExportReset(t *testing.T) {
	repo := kv.NewMemoryRepository()
	path := filepath.Join(t.TempDir(), "admin.xlsx")

	out := runScript(t, repo,
		"contact", "Bob", "b@x.com", "hi", ".",
		"complete t1",
		"admin",
		"export "+path,
		"adminreset", "y",
		"exit",
	)

	assert.Contains(t, out, "Message saved locally (demo).")
	assert.Contains(t, out, "HTML Basics — Page Structure")
	assert.Contains(t, out, "b@x.com")
	assert.Contains(t, out, "Exported admin tables to "+path)
	assert.Contains(t, out, "All Learnify data cleared.")

	_, err := os.Stat(path)
	require.NoError(t, err)

	raw, _ := repo.Get(context.Background(), common.SlotProgress)
	require.Nil(t, raw)
}

func TestApp_ContactRecordsBothLogs(t *testing.T) {
	repo := kv.NewMemoryRepository()
	runScript(t, repo,
		"register", "bob", "pw", "login", "bob", "pw",
		"contact", "Bob", "b@x.com", "hi", ".",
		"exit",
	)

	doc := loadDoc(t, repo)
	require.Len(t, doc.Messages, 1)
	require.Equal(t, "bob", doc.Messages[0].User)
	own := doc.Users["bob"].Messages
	require.Len(t, own, 1)
	require.Equal(t, models.Message{Name: "Bob", Email: "b@x.com", Message: "hi", At: own[0].At}, own[0])
}

func TestApp_ContactAbortedByEOFSavesNothing(t *testing.T) {
	repo := kv.NewMemoryRepository()
	out := runScript(t, repo, "contact", "Bob", "b@x.com", "half a message")

	assert.NotContains(t, out, "Message saved locally (demo).")
	assert.Contains(t, out, ErrInputAborted.Error())

	raw, _ := repo.Get(context.Background(), common.SlotProgress)
	require.Nil(t, raw)
}

func TestNewApp_UnknownScheme(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.PasswordScheme = "rot13"

	_, err := NewApp(cfg, kv.NewMemoryRepository(), logging.Nop(), strings.NewReader(""), &bytes.Buffer{})
	require.Error(t, err)
}
