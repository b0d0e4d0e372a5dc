package service

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"millionaire_backend/internal/config"
	"millionaire_backend/internal/model"
	"millionaire_backend/internal/repository"
	"millionaire_backend/internal/util"
	"millionaire_backend/pkg/logger"
	"millionaire_backend/pkg/monitoring"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// QuestionStore supplies bank questions per level. Satisfied by
// repository.QuestionRepository; tests substitute an in-memory store.
type QuestionStore interface {
	QuestionsAtLevel(level int) ([]model.Question, error)
}

type GameService struct {
	GameRepo  *repository.GameRepository
	UserRepo  *repository.UserRepository
	Questions QuestionStore
	Cfg       *config.Config
	Redis     *redis.Client
	DB        *gorm.DB

	// Injected for deterministic tests.
	rng    *rand.Rand
	randMu sync.Mutex
	now    func() time.Time
}

func NewGameService(gameRepo *repository.GameRepository, userRepo *repository.UserRepository, questions QuestionStore, cfg *config.Config, rdb *redis.Client, db *gorm.DB) *GameService {
	return &GameService{
		GameRepo:  gameRepo,
		UserRepo:  userRepo,
		Questions: questions,
		Cfg:       cfg,
		Redis:     rdb,
		DB:        db,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		now:       time.Now,
	}
}

// Rules builds the game rules from configuration.
func (s *GameService) Rules() model.GameRules {
	return model.GameRules{
		TimeLimit: s.Cfg.Game.TimeLimit(),
		Prizes: model.PrizeTable{
			Amounts:   s.Cfg.Game.Prizes,
			Fireproof: s.Cfg.Game.FireproofLevels,
		},
	}
}

// CreateGameForUser assembles a fresh 15-question run for the user, one
// random unused question per level. A user plays at most one game at a
// time: if an unfinished game exists, it is returned with
// util.ErrGameInProgress.
func (s *GameService) CreateGameForUser(userID uint) (*model.Game, error) {
	if s.Redis != nil {
		ctx := context.Background()
		lockKey := fmt.Sprintf("lock:game:create:%d", userID)
		ok, err := s.Redis.SetNX(ctx, lockKey, model.GenerateUUID(), 10*time.Second).Result()
		if err != nil {
			logger.Log.Warn("game create lock unavailable", zap.Error(err))
		} else if !ok {
			return nil, util.ErrGameInProgress
		} else {
			defer s.Redis.Del(ctx, lockKey)
		}
	}

	existing, err := s.GameRepo.FindInProgressByUser(userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, util.ErrGameInProgress
	}

	questions, err := s.pickQuestions()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrGameCreation, err)
	}

	game := &model.Game{UserID: userID}
	game.CreatedAt = s.now()

	s.randMu.Lock()
	for _, q := range questions {
		gq := model.NewGameQuestion(q, s.rng)
		game.GameQuestions = append(game.GameQuestions, gq)
	}
	s.randMu.Unlock()

	if err := s.GameRepo.Create(game); err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrGameCreation, err)
	}

	logger.Log.Info("game created",
		zap.Uint("user_id", userID),
		zap.Uint("game_id", game.ID))
	return game, nil
}

// pickQuestions selects one question per level uniformly at random.
// Uniqueness is enforced within this single build only; separate games may
// reuse questions freely.
func (s *GameService) pickQuestions() ([]model.Question, error) {
	picked := make([]model.Question, 0, model.LevelCount)
	used := make(map[uint]bool, model.LevelCount)

	for level := model.MinLevel; level <= model.MaxLevel; level++ {
		pool, err := s.Questions.QuestionsAtLevel(level)
		if err != nil {
			return nil, err
		}

		candidates := make([]model.Question, 0, len(pool))
		for _, q := range pool {
			if !used[q.ID] {
				candidates = append(candidates, q)
			}
		}
		if len(candidates) == 0 {
			return nil, fmt.Errorf("level %d: %w", level, model.ErrNotEnoughQuestions)
		}

		s.randMu.Lock()
		q := candidates[s.rng.Intn(len(candidates))]
		s.randMu.Unlock()

		used[q.ID] = true
		picked = append(picked, q)
	}

	return picked, nil
}

// FindForUser loads a game owned by the user.
func (s *GameService) FindForUser(gameID, userID uint) (*model.Game, error) {
	game, err := s.GameRepo.FindByIDForUser(gameID, userID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrGameNotFound
	}
	if err != nil {
		return nil, err
	}
	return game, nil
}

// AnswerResult reports the outcome of one answer submission.
type AnswerResult struct {
	Correct          bool             `json:"correct"`
	Status           model.GameStatus `json:"status"`
	CurrentLevel     int              `json:"currentLevel"`
	Prize            int64            `json:"prize"`
	Finished         bool             `json:"finished"`
	CorrectAnswerKey string           `json:"correctAnswerKey,omitempty"`
}

// Answer submits a key against the game's current question and persists
// the resulting transition.
func (s *GameService) Answer(gameID, userID uint, key string) (*AnswerResult, error) {
	game, err := s.FindForUser(gameID, userID)
	if err != nil {
		return nil, err
	}
	if game.Finished() {
		return nil, util.ErrGameFinished
	}

	gq := game.CurrentGameQuestion()
	correct, err := game.AnswerCurrentQuestion(key, s.Rules(), s.now())
	if err != nil {
		return nil, err
	}

	if err := s.persistGame(game); err != nil {
		return nil, err
	}

	result := &AnswerResult{
		Correct:      correct,
		Status:       game.Status(s.Rules()),
		CurrentLevel: game.CurrentLevel,
		Prize:        game.Prize,
		Finished:     game.Finished(),
	}
	// A lost round reveals the answer the player missed.
	if !correct && gq != nil {
		result.CorrectAnswerKey = gq.CorrectAnswerKey()
	}
	return result, nil
}

// TakeMoney cashes out the user's current game.
func (s *GameService) TakeMoney(gameID, userID uint) (*model.Game, error) {
	game, err := s.FindForUser(gameID, userID)
	if err != nil {
		return nil, err
	}

	wasFinished := game.Finished()
	opErr := game.TakeMoney(s.Rules(), s.now())

	// Persist even a rejected cash-out when it expired the game.
	if !wasFinished && game.Finished() {
		if err := s.persistGame(game); err != nil {
			return nil, err
		}
	}
	if opErr != nil {
		return nil, opErr
	}
	return game, nil
}

// UseHelp applies one help type to the current question. Each type works
// once per question; a repeated request reports false.
func (s *GameService) UseHelp(gameID, userID uint, helpType model.HelpType) (bool, *model.GameQuestion, error) {
	if !helpType.Valid() {
		return false, nil, util.ErrUnknownHelpType
	}

	game, err := s.FindForUser(gameID, userID)
	if err != nil {
		return false, nil, err
	}
	if game.Finished() {
		return false, nil, util.ErrGameFinished
	}

	s.randMu.Lock()
	used, err := game.UseHelp(helpType, s.rng)
	s.randMu.Unlock()
	if err != nil {
		return false, nil, err
	}

	gq := game.CurrentGameQuestion()
	if used {
		if err := s.GameRepo.SaveQuestion(gq); err != nil {
			return false, nil, err
		}
		monitoring.HelpsUsed.WithLabelValues(string(helpType)).Inc()
	}
	return used, gq, nil
}

// SweepExpiredGames finishes abandoned in-progress games that ran out the
// clock, so profiles and balances settle without player interaction.
func (s *GameService) SweepExpiredGames() (int, error) {
	rules := s.Rules()
	cutoff := s.now().Add(-rules.TimeLimit)

	games, err := s.GameRepo.FindExpiredInProgress(cutoff)
	if err != nil {
		return 0, err
	}

	swept := 0
	for i := range games {
		game := &games[i]
		if !game.TimeOut(rules, s.now()) {
			continue
		}
		if err := s.persistGame(game); err != nil {
			return swept, err
		}
		swept++
	}
	return swept, nil
}

// persistGame saves the game's transition; a terminal game also credits
// the prize to the user's balance in the same transaction.
func (s *GameService) persistGame(game *model.Game) error {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.GameRepo.Save(tx, game); err != nil {
			return err
		}
		if game.Finished() && game.Prize > 0 {
			return s.UserRepo.AddBalance(tx, game.UserID, game.Prize)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if game.Finished() {
		status := game.Status(s.Rules())
		monitoring.GamesFinished.WithLabelValues(string(status)).Inc()
		logger.Log.Info("game finished",
			zap.Uint("game_id", game.ID),
			zap.Uint("user_id", game.UserID),
			zap.String("status", string(status)),
			zap.Int64("prize", game.Prize))
	}
	return nil
}
