package service

import (
	"fmt"

	"millionaire_backend/internal/model"
	"millionaire_backend/internal/repository"
)

type QuestionService struct {
	QuestionRepo *repository.QuestionRepository
}

func NewQuestionService(questionRepo *repository.QuestionRepository) *QuestionService {
	return &QuestionService{QuestionRepo: questionRepo}
}

// QuestionRequest is one bank entry for creation or import. Answer1 is
// the correct answer; shuffling only happens per game.
type QuestionRequest struct {
	Level   int    `json:"level" yaml:"level"`
	Text    string `json:"text" binding:"required" yaml:"text"`
	Answer1 string `json:"answer1" binding:"required" yaml:"answer1"`
	Answer2 string `json:"answer2" binding:"required" yaml:"answer2"`
	Answer3 string `json:"answer3" binding:"required" yaml:"answer3"`
	Answer4 string `json:"answer4" binding:"required" yaml:"answer4"`
}

func (r QuestionRequest) validate() error {
	if r.Level < model.MinLevel {
		return fmt.Errorf("level must be non-negative, got %d", r.Level)
	}
	if r.Text == "" {
		return fmt.Errorf("question text required")
	}
	for i, answer := range []string{r.Answer1, r.Answer2, r.Answer3, r.Answer4} {
		if answer == "" {
			return fmt.Errorf("answer%d required", i+1)
		}
	}
	return nil
}

func (r QuestionRequest) toModel() model.Question {
	return model.Question{
		Level:   r.Level,
		Text:    r.Text,
		Answer1: r.Answer1,
		Answer2: r.Answer2,
		Answer3: r.Answer3,
		Answer4: r.Answer4,
	}
}

func (s *QuestionService) CreateQuestion(req QuestionRequest) (*model.Question, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	question := req.toModel()
	if err := s.QuestionRepo.Create(&question); err != nil {
		return nil, err
	}
	return &question, nil
}

// Import inserts a batch of questions, validating every entry first so a
// bad file loads nothing.
func (s *QuestionService) Import(reqs []QuestionRequest) (int, error) {
	questions := make([]model.Question, 0, len(reqs))
	for i, req := range reqs {
		if err := req.validate(); err != nil {
			return 0, fmt.Errorf("entry %d: %w", i, err)
		}
		questions = append(questions, req.toModel())
	}
	if err := s.QuestionRepo.CreateBatch(questions); err != nil {
		return 0, err
	}
	return len(questions), nil
}

func (s *QuestionService) List(level *int, page, limit int) ([]model.Question, int64, error) {
	return s.QuestionRepo.List(level, page, limit)
}

// LevelCoverage reports per-level question counts plus the levels that
// still block game creation.
func (s *QuestionService) LevelCoverage() (map[int]int64, []int, error) {
	counts, err := s.QuestionRepo.CountByLevel()
	if err != nil {
		return nil, nil, err
	}

	var missing []int
	for level := model.MinLevel; level <= model.MaxLevel; level++ {
		if counts[level] == 0 {
			missing = append(missing, level)
		}
	}
	return counts, missing, nil
}
