package cli

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/learnify/internal/quiz"
	"github.com/dmitrijs2005/learnify/internal/views"
)

func (a *App) printQuizSummary(ctx context.Context, user string) {
	v := views.QuizSummary(a.progress.User(ctx, user), len(a.questions))
	a.println(v.Label())
}

// Quiz starts the quiz, or resumes an unfinished one, and asks questions
// until the end. Typing q leaves the quiz where it is; r resets it.
func (a *App) Quiz(ctx context.Context) error {
	engine, user := a.quizEngine(ctx)
	a.printQuizSummary(ctx, user)

	if err := engine.Start(); err != nil {
		if !errors.Is(err, quiz.ErrInProgress) {
			return err
		}
		a.printf("Resuming quiz at question %d\n", engine.Snapshot().Index+1)
	}

	for {
		v := engine.Snapshot()
		if v.State == quiz.Finished {
			a.println("Quiz Completed")
			a.printf("Your score: %d/%d\n", v.Score, v.Total)
			a.printQuizSummary(ctx, user)
			a.println("Type 'quiz' to retry or 'tutorials' to go back.")
			return nil
		}
		if v.State != quiz.AwaitingAnswer {
			return nil
		}

		a.println()
		a.println(v.Prompt)
		for i, o := range v.Options {
			a.printf("  %d) %s\n", i+1, o)
		}
		a.printf("Question %d/%d\n", v.Index+1, v.Total)

		answer, err := getSimpleText(a.reader, "Your answer (1-4, q to leave, r to reset)", a.out)
		if err != nil {
			return err
		}

		switch strings.ToLower(answer) {
		case "q":
			return nil
		case "r":
			return a.QuizReset(ctx)
		}

		n, err := strconv.Atoi(answer)
		if err != nil {
			a.println("Please answer with an option number.")
			continue
		}

		fb, err := engine.Select(ctx, n-1)
		if err != nil {
			if errors.Is(err, quiz.ErrOptionOutOfRange) {
				a.println("Please answer with an option number.")
				continue
			}
			return err
		}

		if fb.IsCorrect {
			a.println("✅ Correct")
		} else {
			a.printf("❌ Incorrect (correct answer: %s)\n", v.Options[fb.Correct])
		}

		select {
		case <-fb.Done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// QuizReset clears the user's persisted quiz result after confirmation.
func (a *App) QuizReset(ctx context.Context) error {
	if !a.confirm("Reset your quiz result?") {
		return nil
	}
	engine, user := a.quizEngine(ctx)
	engine.Reset(ctx)
	a.printf("Quiz result cleared for user: %s\n", user)
	a.printQuizSummary(ctx, user)
	return nil
}
