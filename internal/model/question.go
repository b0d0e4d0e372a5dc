package model

// Levels of the question ladder. A game always runs MinLevel..MaxLevel.
const (
	MinLevel   = 0
	MaxLevel   = 14
	LevelCount = MaxLevel - MinLevel + 1
)

// Question is an immutable bank entry. Answers are positional: Answer1 is
// the correct one at rest, the per-game shuffle lives in GameQuestion.
// swagger:model Question
type Question struct {
	BaseModel
	Level   int    `gorm:"index;not null" json:"level"`
	Text    string `gorm:"type:text;not null" json:"text"`
	Answer1 string `gorm:"size:255;not null" json:"-"`
	Answer2 string `gorm:"size:255;not null" json:"-"`
	Answer3 string `gorm:"size:255;not null" json:"-"`
	Answer4 string `gorm:"size:255;not null" json:"-"`
}

func (Question) TableName() string {
	return "questions"
}

// answer returns the text stored in slot 1..4.
func (q *Question) answer(slot int) string {
	switch slot {
	case 1:
		return q.Answer1
	case 2:
		return q.Answer2
	case 3:
		return q.Answer3
	case 4:
		return q.Answer4
	}
	return ""
}
