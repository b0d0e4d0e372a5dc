package model

import (
	"math/rand"

	"gorm.io/datatypes"
)

// AnswerKeys are the public answer keys in presentation order.
var AnswerKeys = []string{"a", "b", "c", "d"}

// GameQuestion is one round of a game: a reference to a bank question plus
// a random, immutable mapping of the keys a..d onto the question's answer
// slots 1..4. Slot 1 holds the correct answer, so the key mapped to 1 wins.
// Only the help results mutate after construction.
// swagger:model GameQuestion
type GameQuestion struct {
	BaseModel
	GameID     uint `gorm:"index;not null" json:"-"`
	QuestionID uint `gorm:"not null" json:"-"`

	// Permutation of the slots 1..4 keyed by answer letter.
	A int `gorm:"not null" json:"-"`
	B int `gorm:"not null" json:"-"`
	C int `gorm:"not null" json:"-"`
	D int `gorm:"not null" json:"-"`

	Helps datatypes.JSONType[HelpResults] `json:"helps"`

	Question Question `json:"-"`
}

func (GameQuestion) TableName() string {
	return "game_questions"
}

// NewGameQuestion snapshots a bank question with a fresh random bijection
// between keys and answer slots.
func NewGameQuestion(q Question, rng *rand.Rand) GameQuestion {
	perm := rng.Perm(4)
	return GameQuestion{
		QuestionID: q.ID,
		Question:   q,
		A:          perm[0] + 1,
		B:          perm[1] + 1,
		C:          perm[2] + 1,
		D:          perm[3] + 1,
	}
}

func (gq *GameQuestion) Text() string {
	return gq.Question.Text
}

func (gq *GameQuestion) Level() int {
	return gq.Question.Level
}

// slot returns the answer slot bound to a key, or 0 for an unknown key.
func (gq *GameQuestion) slot(key string) int {
	switch key {
	case "a":
		return gq.A
	case "b":
		return gq.B
	case "c":
		return gq.C
	case "d":
		return gq.D
	}
	return 0
}

// Variants maps each answer key to its answer text.
func (gq *GameQuestion) Variants() map[string]string {
	variants := make(map[string]string, len(AnswerKeys))
	for _, key := range AnswerKeys {
		variants[key] = gq.Question.answer(gq.slot(key))
	}
	return variants
}

// CorrectAnswerKey returns the key bound to slot 1.
func (gq *GameQuestion) CorrectAnswerKey() string {
	for _, key := range AnswerKeys {
		if gq.slot(key) == 1 {
			return key
		}
	}
	return ""
}

// IsCorrect reports whether the submitted key hits the correct answer.
// Keys outside a..d are a caller error.
func (gq *GameQuestion) IsCorrect(key string) (bool, error) {
	slot := gq.slot(key)
	if slot == 0 {
		return false, ErrInvalidKey
	}
	return slot == 1, nil
}

// HelpResults returns the helps used on this question so far.
func (gq *GameQuestion) HelpResults() HelpResults {
	return gq.Helps.Data()
}

func (gq *GameQuestion) HasHelp(t HelpType) bool {
	return gq.HelpResults().Has(t)
}

// AddAudienceHelp draws a fresh audience poll. A repeated call overwrites
// the previous draw, single use is enforced at the game level.
func (gq *GameQuestion) AddAudienceHelp(rng *rand.Rand) {
	helps := gq.HelpResults()
	helps.AudienceHelp = audienceDistribution(gq.CorrectAnswerKey(), rng)
	gq.Helps = datatypes.NewJSONType(helps)
}

// AddFriendCall records a friend's hint for this question.
func (gq *GameQuestion) AddFriendCall(rng *rand.Rand) {
	helps := gq.HelpResults()
	helps.FriendCall = friendCallHint(gq.CorrectAnswerKey(), rng)
	gq.Helps = datatypes.NewJSONType(helps)
}

// AddFiftyFifty eliminates two wrong keys, keeping the correct one and a
// random wrong one.
func (gq *GameQuestion) AddFiftyFifty(rng *rand.Rand) {
	helps := gq.HelpResults()
	helps.FiftyFifty = fiftyFiftyKeys(gq.CorrectAnswerKey(), rng)
	gq.Helps = datatypes.NewJSONType(helps)
}
