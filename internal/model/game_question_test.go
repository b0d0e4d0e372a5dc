package model

import (
	"errors"
	"math/rand"
	"strings"
	"testing"
)

func testQuestion(level int) Question {
	q := Question{
		Level:   level,
		Text:    "test question",
		Answer1: "right",
		Answer2: "wrong one",
		Answer3: "wrong two",
		Answer4: "wrong three",
	}
	q.ID = uint(level + 1)
	return q
}

func TestVariantsBijection(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 50; i++ {
		gq := NewGameQuestion(testQuestion(0), rng)
		variants := gq.Variants()

		if len(variants) != 4 {
			t.Fatalf("expected 4 variants, got %d", len(variants))
		}

		seen := map[string]bool{}
		for _, key := range AnswerKeys {
			text, ok := variants[key]
			if !ok {
				t.Fatalf("variant for key %q missing", key)
			}
			if seen[text] {
				t.Fatalf("answer text %q mapped twice", text)
			}
			seen[text] = true
		}
	}
}

func TestCorrectAnswerKey(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	q := testQuestion(3)

	for i := 0; i < 50; i++ {
		gq := NewGameQuestion(q, rng)

		key := gq.CorrectAnswerKey()
		if gq.Variants()[key] != q.Answer1 {
			t.Fatalf("correct key %q maps to %q, want %q", key, gq.Variants()[key], q.Answer1)
		}

		correct, err := gq.IsCorrect(key)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !correct {
			t.Fatalf("correct key %q reported as wrong", key)
		}

		for _, wrong := range wrongKeys(key) {
			correct, err := gq.IsCorrect(wrong)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if correct {
				t.Fatalf("wrong key %q reported as correct", wrong)
			}
		}
	}
}

func TestIsCorrectInvalidKey(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	gq := NewGameQuestion(testQuestion(0), rng)

	for _, key := range []string{"", "e", "A", "ab"} {
		if _, err := gq.IsCorrect(key); !errors.Is(err, ErrInvalidKey) {
			t.Errorf("IsCorrect(%q): expected ErrInvalidKey, got %v", key, err)
		}
	}
}

func TestDelegates(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	q := testQuestion(9)
	gq := NewGameQuestion(q, rng)

	if gq.Text() != q.Text {
		t.Errorf("Text() = %q, want %q", gq.Text(), q.Text)
	}
	if gq.Level() != q.Level {
		t.Errorf("Level() = %d, want %d", gq.Level(), q.Level)
	}
}

func TestAudienceHelp(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	gq := NewGameQuestion(testQuestion(0), rng)

	if gq.HasHelp(AudienceHelp) {
		t.Fatal("fresh question should have no audience help")
	}

	gq.AddAudienceHelp(rng)

	if !gq.HasHelp(AudienceHelp) {
		t.Fatal("audience help not recorded")
	}

	dist := gq.HelpResults().AudienceHelp
	if len(dist) != 4 {
		t.Fatalf("expected shares for 4 keys, got %d", len(dist))
	}

	total := 0
	for _, key := range AnswerKeys {
		share, ok := dist[key]
		if !ok {
			t.Fatalf("no share for key %q", key)
		}
		if share < 0 {
			t.Fatalf("negative share %d for key %q", share, key)
		}
		total += share
	}
	if total != 100 {
		t.Fatalf("shares sum to %d, want 100", total)
	}
}

func TestAudienceDistributionCorrectShare(t *testing.T) {
	rng := rand.New(rand.NewSource(11))

	for i := 0; i < 200; i++ {
		dist := audienceDistribution("c", rng)
		if dist["c"] < 40 || dist["c"] > 74 {
			t.Fatalf("correct share %d%% outside 40-74%%", dist["c"])
		}
		total := 0
		for _, share := range dist {
			total += share
		}
		if total != 100 {
			t.Fatalf("shares sum to %d, want 100", total)
		}
	}
}

func TestFiftyFifty(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	gq := NewGameQuestion(testQuestion(0), rng)

	gq.AddFiftyFifty(rng)

	kept := gq.HelpResults().FiftyFifty
	if len(kept) != 2 {
		t.Fatalf("expected 2 remaining keys, got %d", len(kept))
	}
	if kept[0] != gq.CorrectAnswerKey() {
		t.Fatalf("first remaining key %q is not the correct key %q", kept[0], gq.CorrectAnswerKey())
	}
	if kept[1] == gq.CorrectAnswerKey() {
		t.Fatal("second remaining key must be a wrong key")
	}
}

func TestFriendCall(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	gq := NewGameQuestion(testQuestion(0), rng)

	gq.AddFriendCall(rng)

	hint := gq.HelpResults().FriendCall
	if hint == "" {
		t.Fatal("friend call hint is empty")
	}

	mentionsKey := false
	for _, key := range AnswerKeys {
		if strings.HasSuffix(hint, strings.ToUpper(key)) {
			mentionsKey = true
		}
	}
	if !mentionsKey {
		t.Fatalf("hint %q names no answer key", hint)
	}
}

func TestFriendCallBiasedTowardCorrect(t *testing.T) {
	rng := rand.New(rand.NewSource(13))

	correctHits := 0
	const draws = 500
	for i := 0; i < draws; i++ {
		hint := friendCallHint("b", rng)
		if strings.HasSuffix(hint, "B") {
			correctHits++
		}
	}
	// Expected hit rate is 80%; anything clearly above chance will do.
	if correctHits < draws/2 {
		t.Fatalf("friend named the correct key only %d/%d times", correctHits, draws)
	}
	if correctHits == draws {
		t.Fatal("friend is never wrong, hint should be fallible")
	}
}

func TestHelpResultsAccumulate(t *testing.T) {
	rng := rand.New(rand.NewSource(17))
	gq := NewGameQuestion(testQuestion(0), rng)

	for _, helpType := range HelpTypes {
		if gq.HasHelp(helpType) {
			t.Fatalf("help %q present before use", helpType)
		}
	}

	gq.AddAudienceHelp(rng)
	gq.AddFriendCall(rng)
	gq.AddFiftyFifty(rng)

	for _, helpType := range HelpTypes {
		if !gq.HasHelp(helpType) {
			t.Fatalf("help %q missing after use", helpType)
		}
	}
}
