package engine

import "time"

// Registry is the authoritative set of live words plus the typing cursor
// Owned by Engine; every access happens under the engine lock
type Registry struct {
	words    []*Word // creation order
	typed    string
	targetID uint64
	nextID   uint64
}

// NewRegistry creates an empty registry; the first id handed out is 1
func NewRegistry() *Registry {
	return &Registry{}
}

// NextID reserves the next word id; ids survive Reset and are never reused
func (r *Registry) NextID() uint64 {
	r.nextID++
	return r.nextID
}

// Add inserts a freshly created word
func (r *Registry) Add(w *Word) {
	r.words = append(r.words, w)
}

// Get returns the word with id, or nil
func (r *Registry) Get(id uint64) *Word {
	if id == 0 {
		return nil
	}
	for _, w := range r.words {
		if w.ID == id {
			return w
		}
	}
	return nil
}

// Words returns the live backing slice in creation order
func (r *Registry) Words() []*Word {
	return r.words
}

// Len returns the number of words held, resolved ones included
func (r *Registry) Len() int {
	return len(r.words)
}

// Typed returns the current keystroke buffer
func (r *Registry) Typed() string {
	return r.typed
}

// TargetID returns the targeted word id, 0 when none
func (r *Registry) TargetID() uint64 {
	return r.targetID
}

// Target returns the targeted word, or nil
func (r *Registry) Target() *Word {
	w := r.Get(r.targetID)
	if w == nil || w.State != StateTargeted {
		return nil
	}
	return w
}

// clearInput drops the buffer and the target pointer without touching words
func (r *Registry) clearInput() {
	r.typed = ""
	r.targetID = 0
}

// BestMatch returns the eligible word for a candidate buffer
// Eligible: falling, or the current target, with text starting with candidate (case-insensitive)
// Preference: largest Y, then oldest id
func (r *Registry) BestMatch(candidate string) *Word {
	var best *Word
	for _, w := range r.words {
		if !w.live() || !hasPrefixFold(w.Text, candidate) {
			continue
		}
		if best == nil || w.Y > best.Y || (w.Y == best.Y && w.ID < best.ID) {
			best = w
		}
	}
	return best
}

// Reset clears words, buffer and target; the id sequence continues
func (r *Registry) Reset() {
	r.words = nil
	r.clearInput()
}

// Prune removes resolved words whose grace period has elapsed, returns count removed
func (r *Registry) Prune(now time.Time, grace time.Duration) int {
	kept := r.words[:0]
	removed := 0
	for _, w := range r.words {
		if w.State.Terminal() && now.Sub(w.ResolvedAt) >= grace {
			removed++
			continue
		}
		kept = append(kept, w)
	}
	// Release pointers held past the new length
	for i := len(kept); i < len(r.words); i++ {
		r.words[i] = nil
	}
	r.words = kept
	return removed
}

// LiveCount returns the number of falling or targeted words
func (r *Registry) LiveCount() int {
	n := 0
	for _, w := range r.words {
		if w.live() {
			n++
		}
	}
	return n
}
