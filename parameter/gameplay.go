package parameter

// Play Field Geometry (percent of field)
const (
	// Deadline is the vertical threshold; reaching it while unresolved is a miss
	Deadline = 95.0

	// SpawnMinX and SpawnMaxX bound the horizontal spawn position to avoid edge clipping
	SpawnMinX = 5.0
	SpawnMaxX = 95.0
)

// Word Visual Variance
const (
	ScaleMin    = 0.8
	ScaleMax    = 1.2
	RotationMax = 5.0 // degrees, symmetric around 0
)

// Special Words
const (
	// MultiplierDoubleChance is the probability a multiplier word is 2x rather than 3x
	MultiplierDoubleChance = 0.7
)

// Life & Score
const (
	LifeMax = 100

	// PowerUpLife is life restored by a power-up word, capped at LifeMax
	PowerUpLife = 20

	// BombDamage is life lost by a bomb word (ignored in zen)
	BombDamage = 15

	// FreezeBonusSeconds is countdown time added by a freeze word
	FreezeBonusSeconds = 15

	// MultiplierPoints is the score per multiplier unit
	MultiplierPoints = 10

	// LengthBonusDivisor grants one point per this many characters of a completed word
	LengthBonusDivisor = 3
)

// BasePoints is the score for a completed word per difficulty
var BasePoints = map[Difficulty]int{
	DifficultyEasy:   5,
	DifficultyMedium: 10,
	DifficultyHard:   15,
	DifficultyExpert: 20,
	DifficultyZen:    2,
}

// MissDamage is life lost per missed word per difficulty
var MissDamage = map[Difficulty]int{
	DifficultyEasy:   5,
	DifficultyMedium: 8,
	DifficultyHard:   12,
	DifficultyExpert: 15,
	DifficultyZen:    0,
}

// TimeLimitSeconds is the session countdown per difficulty; zen has none
var TimeLimitSeconds = map[Difficulty]int{
	DifficultyEasy:   180,
	DifficultyMedium: 120,
	DifficultyHard:   90,
	DifficultyExpert: 60,
}
