package service

import (
	"testing"

	"millionaire_backend/internal/model"
	"millionaire_backend/internal/repository"
)

func validRequest(level int) QuestionRequest {
	return QuestionRequest{
		Level:   level,
		Text:    "capital of France?",
		Answer1: "Paris",
		Answer2: "Lyon",
		Answer3: "Marseille",
		Answer4: "Nice",
	}
}

func TestCreateQuestionValidation(t *testing.T) {
	s := newTestService(t)
	qs := NewQuestionService(repository.NewQuestionRepository(s.DB))

	question, err := qs.CreateQuestion(validRequest(3))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if question.ID == 0 {
		t.Fatal("created question has no id")
	}

	bad := validRequest(3)
	bad.Answer2 = ""
	if _, err := qs.CreateQuestion(bad); err == nil {
		t.Fatal("missing answer accepted")
	}

	bad = validRequest(-1)
	if _, err := qs.CreateQuestion(bad); err == nil {
		t.Fatal("negative level accepted")
	}
}

func TestImportAllOrNothing(t *testing.T) {
	s := newTestService(t)
	qs := NewQuestionService(repository.NewQuestionRepository(s.DB))

	broken := validRequest(1)
	broken.Text = ""
	if _, err := qs.Import([]QuestionRequest{validRequest(0), broken}); err == nil {
		t.Fatal("import accepted a broken entry")
	}

	var count int64
	s.DB.Model(&model.Question{}).Count(&count)
	if count != 0 {
		t.Fatalf("partial import left %d questions behind", count)
	}

	imported, err := qs.Import([]QuestionRequest{validRequest(0), validRequest(1), validRequest(1)})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if imported != 3 {
		t.Fatalf("imported %d, want 3", imported)
	}
}

func TestLevelCoverage(t *testing.T) {
	s := newTestService(t)
	qs := NewQuestionService(repository.NewQuestionRepository(s.DB))

	if _, err := qs.Import([]QuestionRequest{validRequest(0), validRequest(0), validRequest(5)}); err != nil {
		t.Fatalf("import: %v", err)
	}

	counts, missing, err := qs.LevelCoverage()
	if err != nil {
		t.Fatalf("coverage: %v", err)
	}
	if counts[0] != 2 || counts[5] != 1 {
		t.Fatalf("counts = %v", counts)
	}
	// Everything except levels 0 and 5 still blocks game creation.
	if len(missing) != model.LevelCount-2 {
		t.Fatalf("missing %d levels, want %d", len(missing), model.LevelCount-2)
	}
	for _, level := range missing {
		if level == 0 || level == 5 {
			t.Fatalf("level %d reported missing despite having questions", level)
		}
	}
}
