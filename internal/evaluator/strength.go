package evaluator

// NormalizeStrength maps a 7-card HandRank to a strength in [0,1] and a
// human-readable category. It is the single source of truth for this
// mapping; showdown resolution in internal/game calls through here for
// its category labels rather than keeping its own copy.
//
// Strength bands one per category, with position inside a band set by
// the category's own tiebreaker score relative to its worst/best case.
func NormalizeStrength(hr HandRank) (float64, string) {
	band, ok := strengthBands[hr.Type()]
	if !ok {
		return 0, "Unknown"
	}
	tiebreak := float64(int(hr) & 0xFFFFF)
	// Within a category, a *smaller* raw tiebreak is stronger (every
	// category reverse-encodes its ranks), so position is inverted
	// against the 0xFFFFF ceiling.
	frac := 1 - tiebreak/0xFFFFF
	strength := band.low + frac*(band.high-band.low)
	return strength, hr.String()
}

type strengthBand struct {
	low, high float64
}

// Bands are ordered by category strength; each occupies an equal tenth
// of [0,1], HighCard weakest through RoyalFlush strongest.
var strengthBands = map[int]strengthBand{
	HighCardType:      {0.00, 0.10},
	OnePairType:       {0.10, 0.25},
	TwoPairType:       {0.25, 0.40},
	ThreeOfAKindType:  {0.40, 0.55},
	StraightType:      {0.55, 0.68},
	FlushType:         {0.68, 0.80},
	FullHouseType:     {0.80, 0.92},
	FourOfAKindType:   {0.92, 0.97},
	StraightFlushType: {0.97, 0.995},
	RoyalFlushType:    {0.995, 1.00},
}
