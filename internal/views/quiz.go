package views

import (
	"fmt"

	"github.com/dmitrijs2005/learnify/internal/models"
)

type QuizSummaryView struct {
	Taken   bool
	Score   int
	Total   int
	Percent int
}

func (q QuizSummaryView) Label() string {
	if !q.Taken {
		return "No quiz taken yet"
	}
	return fmt.Sprintf("Last score: %d/%d (%d%%)", q.Score, q.Total, q.Percent)
}

// QuizSummary describes the user's last quiz against the current bank size.
func QuizSummary(p models.UserProgress, total int) QuizSummaryView {
	if !p.HasQuizResult() {
		return QuizSummaryView{Total: total}
	}
	s := p.QuizResult.Score
	return QuizSummaryView{
		Taken:   true,
		Score:   s,
		Total:   total,
		Percent: percent(s, total),
	}
}
