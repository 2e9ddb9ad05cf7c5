package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/learnify/internal/catalog"
	"github.com/dmitrijs2005/learnify/internal/common"
	"github.com/dmitrijs2005/learnify/internal/config"
	"github.com/dmitrijs2005/learnify/internal/credentials"
	"github.com/dmitrijs2005/learnify/internal/logging"
	"github.com/dmitrijs2005/learnify/internal/progress"
	"github.com/dmitrijs2005/learnify/internal/quiz"
	"github.com/dmitrijs2005/learnify/internal/session"
	"github.com/dmitrijs2005/learnify/internal/storage/kv"
)

type App struct {
	creds    *credentials.Store
	session  *session.Store
	progress *progress.Store
	log      logging.Logger

	tutorials []catalog.Tutorial
	questions []catalog.Question
	delay     time.Duration
	loc       *time.Location

	reader *bufio.Reader
	out    io.Writer

	// activeTutorial is the tutorial opened with watch.
	activeTutorial string

	engine     *quiz.Engine
	engineUser string
}

// NewApp wires the stores over repo. Input is read from in and all output
// goes to out.
func NewApp(cfg *config.Config, repo kv.Repository, log logging.Logger, in io.Reader, out io.Writer) (*App, error) {
	scheme, err := credentials.SchemeByName(cfg.PasswordScheme)
	if err != nil {
		return nil, err
	}

	tutorials := catalog.Tutorials()
	return &App{
		creds:          credentials.NewStore(repo, scheme, log),
		session:        session.NewStore(repo),
		progress:       progress.NewStore(repo, log),
		log:            log,
		tutorials:      tutorials,
		questions:      catalog.Quiz(),
		delay:          cfg.QuizFeedbackDelay,
		loc:            time.Local,
		reader:         bufio.NewReader(in),
		out:            out,
		activeTutorial: tutorials[0].ID,
	}, nil
}

// Run prints a greeting and serves commands until exit or end of input.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to Learnify (type 'help' for commands)")
	runREPL(ctx, a, func() string { return a.currentUser(ctx) }, a.reader, a.out)
}

// currentUser resolves the session pointer. Storage errors fall back to the
// guest identity.
func (a *App) currentUser(ctx context.Context) string {
	user, err := a.session.Current(ctx)
	if err != nil {
		a.log.Error(ctx, "failed to read session", "error", err)
	}
	return user
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) confirm(question string) bool {
	return Confirm(a.reader, question, a.out)
}

// quizEngine returns the engine of the current user, replacing it when
// somebody else logged in.
func (a *App) quizEngine(ctx context.Context) (*quiz.Engine, string) {
	user := a.currentUser(ctx)
	if a.engine == nil || a.engineUser != user {
		a.engine = quiz.NewEngine(a.questions, a.progress, user, a.delay, a.log)
		a.engineUser = user
	}
	return a.engine, user
}

func (a *App) isGuest(ctx context.Context) bool {
	return a.currentUser(ctx) == common.GuestUser
}
