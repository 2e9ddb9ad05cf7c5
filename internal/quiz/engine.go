// Package quiz runs the quiz flow: a sequential pass over the question bank
// with a short feedback pause after every answer and a persisted snapshot of
// the final score.
package quiz

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dmitrijs2005/learnify/internal/catalog"
	"github.com/dmitrijs2005/learnify/internal/logging"
)

// DefaultFeedbackDelay is how long the answer feedback stays on screen.
const DefaultFeedbackDelay = 900 * time.Millisecond

var (
	ErrInProgress       = errors.New("quiz already in progress")
	ErrBusy             = errors.New("answer already registered for this question")
	ErrNotAwaiting      = errors.New("no question is awaiting an answer")
	ErrOptionOutOfRange = errors.New("option out of range")
)

// State is the phase of a quiz pass.
type State int

const (
	Idle State = iota
	AwaitingAnswer
	ShowingFeedback
	Finished
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case AwaitingAnswer:
		return "awaiting_answer"
	case ShowingFeedback:
		return "showing_feedback"
	case Finished:
		return "finished"
	default:
		return "unknown"
	}
}

// ResultRecorder persists quiz outcomes. progress.Store implements it.
type ResultRecorder interface {
	RecordQuizResult(ctx context.Context, username string, score, total int)
	ClearQuizResult(ctx context.Context, username string)
}

type stopper interface {
	Stop() bool
}

// afterFunc is a seam for tests.
var afterFunc = func(d time.Duration, f func()) stopper {
	return time.AfterFunc(d, f)
}

// Feedback describes a registered answer. Done is closed once the engine
// has moved past the feedback state, either by the timer or by Reset.
type Feedback struct {
	Index     int
	Chosen    int
	Correct   int
	IsCorrect bool
	Done      <-chan struct{}
}

// Engine runs quiz passes for one user. It is safe for concurrent use; the
// feedback timer advances it from its own goroutine.
type Engine struct {
	questions []catalog.Question
	recorder  ResultRecorder
	username  string
	delay     time.Duration
	log       logging.Logger

	// persistMu orders recorder calls so a Reset cannot be overtaken by a
	// result write from the pass it abandoned. Taken before mu.
	persistMu sync.Mutex

	mu     sync.Mutex
	state  State
	index  int
	score  int
	chosen int
	gen    uint64
	timer  stopper
	done   chan struct{}
}

// NewEngine builds an engine for username. A non-positive delay selects
// DefaultFeedbackDelay.
func NewEngine(questions []catalog.Question, recorder ResultRecorder, username string, delay time.Duration, log logging.Logger) *Engine {
	if delay <= 0 {
		delay = DefaultFeedbackDelay
	}
	return &Engine{
		questions: questions,
		recorder:  recorder,
		username:  username,
		delay:     delay,
		log:       log.With("component", "quiz", "username", username),
		chosen:    -1,
	}
}

// Start begins a new pass from the first question with a zero score. It is
// valid from Idle and Finished.
func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == AwaitingAnswer || e.state == ShowingFeedback {
		return ErrInProgress
	}
	e.state = AwaitingAnswer
	e.index = 0
	e.score = 0
	e.chosen = -1
	if len(e.questions) == 0 {
		e.state = Finished
	}
	return nil
}

// Select registers option for the current question. Only the first
// selection per question counts; later ones get ErrBusy until the feedback
// pause ends.
func (e *Engine) Select(ctx context.Context, option int) (Feedback, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.state {
	case AwaitingAnswer:
	case ShowingFeedback:
		return Feedback{}, ErrBusy
	default:
		return Feedback{}, ErrNotAwaiting
	}

	q := e.questions[e.index]
	if option < 0 || option >= len(q.Options) {
		return Feedback{}, ErrOptionOutOfRange
	}

	isCorrect := option == q.Correct
	if isCorrect {
		e.score++
	}
	e.state = ShowingFeedback
	e.chosen = option
	e.done = make(chan struct{})
	e.gen++

	gen := e.gen
	bg := context.WithoutCancel(ctx)
	e.timer = afterFunc(e.delay, func() { e.advance(bg, gen) })

	return Feedback{
		Index:     e.index,
		Chosen:    option,
		Correct:   q.Correct,
		IsCorrect: isCorrect,
		Done:      e.done,
	}, nil
}

// advance is the delayed transition out of ShowingFeedback. Stale timers
// (from before a Reset) are ignored.
func (e *Engine) advance(ctx context.Context, gen uint64) {
	e.persistMu.Lock()
	defer e.persistMu.Unlock()

	e.mu.Lock()
	if gen != e.gen || e.state != ShowingFeedback {
		e.mu.Unlock()
		return
	}

	e.timer = nil
	e.chosen = -1
	e.index++
	finished := e.index >= len(e.questions)
	if finished {
		e.state = Finished
	} else {
		e.state = AwaitingAnswer
	}
	score, total := e.score, len(e.questions)
	done := e.done
	e.done = nil
	e.mu.Unlock()

	if finished {
		e.log.Info(ctx, "quiz finished", "score", score, "total", total)
		e.recorder.RecordQuizResult(ctx, e.username, score, total)
	}
	close(done)
}

// Reset abandons the current pass, clears the persisted result and returns
// to Idle. It is valid in every state.
func (e *Engine) Reset(ctx context.Context) {
	e.persistMu.Lock()
	defer e.persistMu.Unlock()

	e.mu.Lock()
	e.gen++
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	if e.done != nil {
		close(e.done)
		e.done = nil
	}
	e.state = Idle
	e.index = 0
	e.score = 0
	e.chosen = -1
	e.mu.Unlock()

	e.recorder.ClearQuizResult(ctx, e.username)
	e.log.Info(ctx, "quiz result cleared")
}

// View is a render-ready snapshot of the engine.
type View struct {
	State   State
	Index   int
	Total   int
	Prompt  string
	Options []string
	Score   int
	// Chosen and Correct are -1 outside ShowingFeedback.
	Chosen  int
	Correct int
}

// Snapshot returns the current state for rendering.
func (e *Engine) Snapshot() View {
	e.mu.Lock()
	defer e.mu.Unlock()

	v := View{
		State:   e.state,
		Index:   e.index,
		Total:   len(e.questions),
		Score:   e.score,
		Chosen:  -1,
		Correct: -1,
	}
	if e.state == AwaitingAnswer || e.state == ShowingFeedback {
		q := e.questions[e.index]
		v.Prompt = q.Prompt
		v.Options = append([]string(nil), q.Options[:]...)
		if e.state == ShowingFeedback {
			v.Chosen = e.chosen
			v.Correct = q.Correct
		}
	}
	return v
}
