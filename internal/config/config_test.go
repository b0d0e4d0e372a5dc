package config

import (
	"testing"
	"time"
)

func validGameConfig() GameConfig {
	return GameConfig{
		TimeLimitMinutes: 35,
		Prizes: []int64{
			100, 200, 300, 500, 1000,
			2000, 4000, 8000, 16000, 32000,
			64000, 125000, 250000, 500000, 1000000,
		},
		FireproofLevels: []int{4, 9},
	}
}

func TestGameConfigValidate(t *testing.T) {
	if err := validGameConfig().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*GameConfig)
	}{
		{"empty prizes", func(g *GameConfig) { g.Prizes = nil }},
		{"ladder shorter than the 15 levels", func(g *GameConfig) { g.Prizes = g.Prizes[:5] }},
		{"ladder longer than the 15 levels", func(g *GameConfig) { g.Prizes = append(g.Prizes, 2000000) }},
		{"non-ascending prizes", func(g *GameConfig) { g.Prizes[5] = g.Prizes[4] }},
		{"descending prizes", func(g *GameConfig) { g.Prizes[1] = 50 }},
		{"negative fireproof level", func(g *GameConfig) { g.FireproofLevels = []int{-1} }},
		{"fireproof level beyond ladder", func(g *GameConfig) { g.FireproofLevels = []int{15} }},
		{"zero time limit", func(g *GameConfig) { g.TimeLimitMinutes = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := validGameConfig()
			tc.mutate(&g)
			if err := g.Validate(); err == nil {
				t.Fatal("invalid config accepted")
			}
		})
	}
}

func TestGameConfigTimeLimit(t *testing.T) {
	g := validGameConfig()
	if got := g.TimeLimit(); got != 35*time.Minute {
		t.Fatalf("TimeLimit() = %v, want 35m", got)
	}
}
