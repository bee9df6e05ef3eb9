package engine

import (
	"math/rand"
	"time"

	"github.com/lixenwraith/word-rain/content"
	"github.com/lixenwraith/word-rain/parameter"
)

// Factory builds new falling words for the active category and difficulty
type Factory struct {
	rng      *rand.Rand
	category content.Category
	custom   []string
	settings parameter.Settings
}

// NewFactory creates a factory; custom is used only for the custom category
func NewFactory(rng *rand.Rand, category content.Category, custom []string, settings parameter.Settings) *Factory {
	return &Factory{
		rng:      rng,
		category: category,
		custom:   custom,
		settings: settings,
	}
}

// Create returns a fully initialized falling word at the top of the field
func (f *Factory) Create(id uint64, now time.Time) *Word {
	text := content.RandomWord(f.rng, f.category, f.custom)

	w := &Word{
		ID:        id,
		Text:      text,
		X:         f.uniform(parameter.SpawnMinX, parameter.SpawnMaxX),
		Y:         0,
		Speed:     f.uniform(f.settings.MinSpeed, f.settings.MaxSpeed),
		Scale:     f.uniform(parameter.ScaleMin, parameter.ScaleMax),
		Rotation:  f.uniform(-parameter.RotationMax, parameter.RotationMax),
		Completed: "",
		Remaining: text,
		State:     StateFalling,
		CreatedAt: now,
	}

	if f.rng.Float64() < f.settings.SpecialWordRate {
		w.Effect = Effects[f.rng.Intn(len(Effects))]
		if w.Effect == EffectMultiplier {
			w.Multiplier = 3
			if f.rng.Float64() < parameter.MultiplierDoubleChance {
				w.Multiplier = 2
			}
		}
	}

	if w.Effect != EffectNone {
		w.Color = EffectColors[w.Effect]
	} else if palette := content.Palette[f.category]; len(palette) > 0 {
		w.Color = palette[f.rng.Intn(len(palette))]
	}

	return w
}

func (f *Factory) uniform(lo, hi float64) float64 {
	return lo + f.rng.Float64()*(hi-lo)
}
