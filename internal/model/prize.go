package model

// PrizeTable is the ascending ladder of prize amounts indexed by level,
// plus the fireproof milestones whose amounts survive a failure.
type PrizeTable struct {
	Amounts   []int64
	Fireproof []int
}

// Full returns the tier amount for a completed level, 0 when no level has
// been completed yet.
func (p PrizeTable) Full(level int) int64 {
	if level < 0 || level >= len(p.Amounts) {
		return 0
	}
	return p.Amounts[level]
}

// Fallback returns the highest fireproof amount at or below the given
// level, 0 when no milestone has been passed.
func (p PrizeTable) Fallback(level int) int64 {
	best := -1
	for _, milestone := range p.Fireproof {
		if milestone <= level && milestone > best {
			best = milestone
		}
	}
	return p.Full(best)
}
