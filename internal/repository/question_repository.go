package repository

import (
	"millionaire_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) Create(question *model.Question) error {
	return r.DB.Create(question).Error
}

func (r *QuestionRepository) CreateBatch(questions []model.Question) error {
	if len(questions) == 0 {
		return nil
	}
	return r.DB.Create(&questions).Error
}

func (r *QuestionRepository) FindByID(id uint) (*model.Question, error) {
	var q model.Question
	if err := r.DB.First(&q, id).Error; err != nil {
		return nil, err
	}
	return &q, nil
}

// QuestionsAtLevel returns every bank question at one difficulty level.
func (r *QuestionRepository) QuestionsAtLevel(level int) ([]model.Question, error) {
	var questions []model.Question
	err := r.DB.Where("level = ?", level).Find(&questions).Error
	return questions, err
}

func (r *QuestionRepository) List(level *int, page, limit int) ([]model.Question, int64, error) {
	query := r.DB.Model(&model.Question{})
	if level != nil {
		query = query.Where("level = ?", *level)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var questions []model.Question
	err := query.Order("level ASC, id ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&questions).Error
	return questions, total, err
}

// CountByLevel reports how many questions exist per level, for checking
// whether the bank can still assemble a full game.
func (r *QuestionRepository) CountByLevel() (map[int]int64, error) {
	type row struct {
		Level int
		Count int64
	}
	var rows []row
	err := r.DB.Model(&model.Question{}).
		Select("level, COUNT(*) AS count").
		Group("level").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[int]int64, len(rows))
	for _, rw := range rows {
		counts[rw.Level] = rw.Count
	}
	return counts, nil
}
