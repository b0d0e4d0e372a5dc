package model

import (
	"math/rand"
	"time"
)

type GameStatus string

const (
	StatusInProgress GameStatus = "in_progress"
	StatusWon        GameStatus = "won"
	StatusFail       GameStatus = "fail"
	StatusTimeout    GameStatus = "timeout"
	StatusMoney      GameStatus = "money"
)

// GameRules parameterizes a run: the wall-clock limit measured from game
// creation and the prize ladder.
type GameRules struct {
	TimeLimit time.Duration
	Prizes    PrizeTable
}

// Game is one full run of the ladder for one user. CurrentLevel is one
// past the last correctly answered level; once FinishedAt is set, the game
// never mutates again. Status is always derived, never stored.
// swagger:model Game
type Game struct {
	BaseModel
	UserID       uint       `gorm:"index;not null" json:"userId"`
	CurrentLevel int        `gorm:"default:0" json:"currentLevel"`
	IsFailed     bool       `gorm:"default:false" json:"-"`
	Prize        int64      `gorm:"default:0" json:"prize"`
	FinishedAt   *time.Time `json:"finishedAt,omitempty"`

	// Ordered by level, assembled once at creation.
	GameQuestions []GameQuestion `gorm:"foreignKey:GameID" json:"-"`
}

func (Game) TableName() string {
	return "games"
}

func (g *Game) Finished() bool {
	return g.FinishedAt != nil
}

// PreviousLevel is the last correctly answered level, -1 before the first
// correct answer.
func (g *Game) PreviousLevel() int {
	return g.CurrentLevel - 1
}

// CurrentGameQuestion returns the question for the current level, nil once
// the game is won.
func (g *Game) CurrentGameQuestion() *GameQuestion {
	if g.CurrentLevel < 0 || g.CurrentLevel >= len(g.GameQuestions) {
		return nil
	}
	return &g.GameQuestions[g.CurrentLevel]
}

// PreviousGameQuestion returns the question for the previous level, nil at
// level 0.
func (g *Game) PreviousGameQuestion() *GameQuestion {
	prev := g.PreviousLevel()
	if prev < 0 || prev >= len(g.GameQuestions) {
		return nil
	}
	return &g.GameQuestions[prev]
}

// Expired reports whether the time limit has run out for a game that is
// still in progress. The limit counts from creation and no activity
// resets it.
func (g *Game) Expired(rules GameRules, now time.Time) bool {
	return now.Sub(g.CreatedAt) > rules.TimeLimit
}

// Status derives the game state. Precedence matters: a failed answer is
// always a fail regardless of elapsed time, and a game finished as won or
// money never turns into a timeout afterwards; the timeout branch is only
// reachable through the transition in AnswerCurrentQuestion/TakeMoney.
func (g *Game) Status(rules GameRules) GameStatus {
	switch {
	case g.IsFailed:
		return StatusFail
	case !g.Finished():
		return StatusInProgress
	case g.FinishedAt.Sub(g.CreatedAt) > rules.TimeLimit:
		return StatusTimeout
	case g.CurrentLevel > MaxLevel:
		return StatusWon
	default:
		return StatusMoney
	}
}

func (g *Game) finish(now time.Time, prize int64) {
	finishedAt := now
	g.FinishedAt = &finishedAt
	g.Prize = prize
}

// TimeOut finishes an expired in-progress game with the fallback prize.
// Reports whether the transition fired.
func (g *Game) TimeOut(rules GameRules, now time.Time) bool {
	if g.Finished() || !g.Expired(rules, now) {
		return false
	}
	g.finish(now, rules.Prizes.Fallback(g.PreviousLevel()))
	return true
}

// AnswerCurrentQuestion evaluates a submitted key against the current
// question and advances the run. It returns false without mutating
// anything on a finished game; an expired game finishes by timeout first.
// A wrong key fails the game with the fallback prize; the winning answer
// on the last level finishes the game with the top prize.
func (g *Game) AnswerCurrentQuestion(key string, rules GameRules, now time.Time) (bool, error) {
	if g.Finished() {
		return false, nil
	}
	if g.TimeOut(rules, now) {
		return false, nil
	}

	gq := g.CurrentGameQuestion()
	if gq == nil {
		return false, ErrInvalidOperation
	}

	correct, err := gq.IsCorrect(key)
	if err != nil {
		return false, err
	}

	if !correct {
		g.IsFailed = true
		g.finish(now, rules.Prizes.Fallback(g.PreviousLevel()))
		return false, nil
	}

	g.CurrentLevel++
	if g.CurrentLevel > MaxLevel {
		g.finish(now, rules.Prizes.Full(MaxLevel))
	}
	return true, nil
}

// TakeMoney cashes out the full amount for the last completed level.
// Cashing out on a finished game or with no correct answer yet is a caller
// error; an expired game finishes by timeout and the cash-out is rejected.
func (g *Game) TakeMoney(rules GameRules, now time.Time) error {
	if g.Finished() {
		return ErrInvalidOperation
	}
	if g.TimeOut(rules, now) {
		return ErrInvalidOperation
	}
	if g.PreviousLevel() < MinLevel {
		return ErrInvalidOperation
	}
	g.finish(now, rules.Prizes.Full(g.PreviousLevel()))
	return nil
}

// UseHelp applies a help to the current question. Each help type works at
// most once per question: a repeated request returns false with no side
// effects, as does any request on a finished game.
func (g *Game) UseHelp(t HelpType, rng *rand.Rand) (bool, error) {
	if !t.Valid() {
		return false, ErrInvalidOperation
	}
	if g.Finished() {
		return false, nil
	}
	gq := g.CurrentGameQuestion()
	if gq == nil {
		return false, nil
	}
	if gq.HasHelp(t) {
		return false, nil
	}

	switch t {
	case AudienceHelp:
		gq.AddAudienceHelp(rng)
	case FriendCall:
		gq.AddFriendCall(rng)
	case FiftyFifty:
		gq.AddFiftyFifty(rng)
	}
	return true, nil
}
