package service

import (
	"time"

	"millionaire_backend/internal/model"
)

// GameQuestionView is the player-facing shape of the current round. It
// never carries the correct answer key.
type GameQuestionView struct {
	Level          int               `json:"level"`
	Text           string            `json:"text"`
	Variants       map[string]string `json:"variants"`
	Helps          model.HelpResults `json:"helps"`
	AvailableHelps []model.HelpType  `json:"availableHelps"`
}

type GameView struct {
	ID            uint              `json:"id"`
	Status        model.GameStatus  `json:"status"`
	CurrentLevel  int               `json:"currentLevel"`
	PreviousLevel int               `json:"previousLevel"`
	Prize         int64             `json:"prize"`
	CreatedAt     time.Time         `json:"createdAt"`
	FinishedAt    *time.Time        `json:"finishedAt,omitempty"`
	Question      *GameQuestionView `json:"question,omitempty"`
}

// View renders a game for the API. The current question is included only
// while the game is in progress.
func (s *GameService) View(game *model.Game) GameView {
	view := GameView{
		ID:            game.ID,
		Status:        game.Status(s.Rules()),
		CurrentLevel:  game.CurrentLevel,
		PreviousLevel: game.PreviousLevel(),
		Prize:         game.Prize,
		CreatedAt:     game.CreatedAt,
		FinishedAt:    game.FinishedAt,
	}

	if view.Status != model.StatusInProgress {
		return view
	}
	if gq := game.CurrentGameQuestion(); gq != nil {
		view.Question = NewGameQuestionView(gq)
	}
	return view
}

func NewGameQuestionView(gq *model.GameQuestion) *GameQuestionView {
	helps := gq.HelpResults()

	available := make([]model.HelpType, 0, len(model.HelpTypes))
	for _, t := range model.HelpTypes {
		if !helps.Has(t) {
			available = append(available, t)
		}
	}

	return &GameQuestionView{
		Level:          gq.Level(),
		Text:           gq.Text(),
		Variants:       gq.Variants(),
		Helps:          helps,
		AvailableHelps: available,
	}
}
