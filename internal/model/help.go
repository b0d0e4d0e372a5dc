package model

import (
	"fmt"
	"math/rand"
	"strings"
)

type HelpType string

const (
	AudienceHelp HelpType = "audience_help"
	FriendCall   HelpType = "friend_call"
	FiftyFifty   HelpType = "fifty_fifty"
)

// HelpTypes lists every supported help in a fixed order.
var HelpTypes = []HelpType{AudienceHelp, FriendCall, FiftyFifty}

func (t HelpType) Valid() bool {
	switch t {
	case AudienceHelp, FriendCall, FiftyFifty:
		return true
	}
	return false
}

// HelpResults records which helps were used on one game question and what
// they produced. A zero field means the help has not been used yet.
// swagger:model HelpResults
type HelpResults struct {
	AudienceHelp map[string]int `json:"audience_help,omitempty"`
	FriendCall   string         `json:"friend_call,omitempty"`
	FiftyFifty   []string       `json:"fifty_fifty,omitempty"`
}

func (h HelpResults) Has(t HelpType) bool {
	switch t {
	case AudienceHelp:
		return h.AudienceHelp != nil
	case FriendCall:
		return h.FriendCall != ""
	case FiftyFifty:
		return h.FiftyFifty != nil
	}
	return false
}

// audienceDistribution simulates an audience poll over the four answer
// keys. The correct key always draws a leading 40-74%, the remainder is
// split at random among the other three. Shares are non-negative and sum
// to exactly 100.
func audienceDistribution(correctKey string, rng *rand.Rand) map[string]int {
	dist := make(map[string]int, len(AnswerKeys))

	correctShare := 40 + rng.Intn(35)
	dist[correctKey] = correctShare

	remaining := 100 - correctShare
	wrong := wrongKeys(correctKey)
	for i, key := range wrong {
		if i == len(wrong)-1 {
			dist[key] = remaining
			break
		}
		share := rng.Intn(remaining + 1)
		dist[key] = share
		remaining -= share
	}

	return dist
}

// friendCallHint names a candidate key. The friend is knowledgeable but
// fallible: the named key is the correct one only most of the time.
func friendCallHint(correctKey string, rng *rand.Rand) string {
	key := correctKey
	if rng.Intn(100) >= 80 {
		wrong := wrongKeys(correctKey)
		key = wrong[rng.Intn(len(wrong))]
	}
	return fmt.Sprintf("Your friend thinks the answer is %s", strings.ToUpper(key))
}

// fiftyFiftyKeys keeps the correct key plus one random wrong key, correct
// key first.
func fiftyFiftyKeys(correctKey string, rng *rand.Rand) []string {
	wrong := wrongKeys(correctKey)
	return []string{correctKey, wrong[rng.Intn(len(wrong))]}
}

func wrongKeys(correctKey string) []string {
	keys := make([]string, 0, len(AnswerKeys)-1)
	for _, key := range AnswerKeys {
		if key != correctKey {
			keys = append(keys, key)
		}
	}
	return keys
}
