package service

import (
	"time"

	"millionaire_backend/internal/model"
	"millionaire_backend/internal/repository"
)

type UserService struct {
	UserRepo *repository.UserRepository
	GameRepo *repository.GameRepository
}

type GameSummary struct {
	ID           uint             `json:"id"`
	Status       model.GameStatus `json:"status"`
	CurrentLevel int              `json:"currentLevel"`
	Prize        int64            `json:"prize"`
	CreatedAt    time.Time        `json:"createdAt"`
	FinishedAt   *time.Time       `json:"finishedAt,omitempty"`
}

type Profile struct {
	User  *model.User   `json:"user"`
	Games []GameSummary `json:"games"`
}

func NewUserService(userRepo *repository.UserRepository, gameRepo *repository.GameRepository) *UserService {
	return &UserService{UserRepo: userRepo, GameRepo: gameRepo}
}

// Profile returns the user with their full game history, newest first.
func (s *UserService) Profile(userID uint, rules model.GameRules) (*Profile, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	games, err := s.GameRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	summaries := make([]GameSummary, 0, len(games))
	for i := range games {
		g := &games[i]
		summaries = append(summaries, GameSummary{
			ID:           g.ID,
			Status:       g.Status(rules),
			CurrentLevel: g.CurrentLevel,
			Prize:        g.Prize,
			CreatedAt:    g.CreatedAt,
			FinishedAt:   g.FinishedAt,
		})
	}

	return &Profile{User: user, Games: summaries}, nil
}
