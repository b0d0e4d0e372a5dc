package repository

import (
	"errors"
	"time"

	"millionaire_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GameRepository struct {
	DB *gorm.DB
}

func NewGameRepository(db *gorm.DB) *GameRepository {
	return &GameRepository{DB: db}
}

// Create persists a game together with its 15 game questions.
func (r *GameRepository) Create(game *model.Game) error {
	return r.DB.Create(game).Error
}

// preload loads the question sequence in level order with bank questions
// attached; the game mechanics rely on that ordering.
func (r *GameRepository) preload(db *gorm.DB) *gorm.DB {
	return db.Preload("GameQuestions", func(db *gorm.DB) *gorm.DB {
		return db.Order("game_questions.id ASC")
	}).Preload("GameQuestions.Question")
}

func (r *GameRepository) FindByIDForUser(id, userID uint) (*model.Game, error) {
	var game model.Game
	err := r.preload(r.DB).Where("user_id = ?", userID).First(&game, id).Error
	if err != nil {
		return nil, err
	}
	return &game, nil
}

// FindInProgressByUser returns the user's unfinished game, nil if none.
func (r *GameRepository) FindInProgressByUser(userID uint) (*model.Game, error) {
	var game model.Game
	err := r.preload(r.DB).
		Where("user_id = ? AND finished_at IS NULL", userID).
		First(&game).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &game, nil
}

func (r *GameRepository) ListByUser(userID uint) ([]model.Game, error) {
	var games []model.Game
	err := r.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&games).Error
	return games, err
}

// FindExpiredInProgress lists unfinished games created before the cutoff,
// for the background timeout sweep.
func (r *GameRepository) FindExpiredInProgress(cutoff time.Time) ([]model.Game, error) {
	var games []model.Game
	err := r.DB.Where("finished_at IS NULL AND created_at < ?", cutoff).
		Find(&games).Error
	return games, err
}

// Save writes the game's own columns, leaving the question rows alone.
func (r *GameRepository) Save(tx *gorm.DB, game *model.Game) error {
	if tx == nil {
		tx = r.DB
	}
	return tx.Omit(clause.Associations).Save(game).Error
}

// SaveQuestion persists one round's mutated help results.
func (r *GameRepository) SaveQuestion(gq *model.GameQuestion) error {
	return r.DB.Omit(clause.Associations).Save(gq).Error
}
