package engine

// Snapshot is a consistent copy of the engine read model
type Snapshot struct {
	Words    []Word // creation order, resolved words included until pruned
	Typed    string
	TargetID uint64 // 0 when no word is targeted
	Streak   int

	Settings Settings
	Running  bool
	Paused   bool
}

// Snapshot copies the current state under the engine lock
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	words := make([]Word, len(e.registry.words))
	for i, w := range e.registry.words {
		words[i] = *w
	}
	return Snapshot{
		Words:    words,
		Typed:    e.registry.typed,
		TargetID: e.registry.targetID,
		Streak:   e.streak,
		Settings: e.settings.clone(),
		Running:  e.running,
		Paused:   e.paused,
	}
}

// Word returns the word with id, if present
func (s Snapshot) Word(id uint64) (Word, bool) {
	for _, w := range s.Words {
		if w.ID == id {
			return w, true
		}
	}
	return Word{}, false
}

// Target returns the targeted word, if any
func (s Snapshot) Target() (Word, bool) {
	if s.TargetID == 0 {
		return Word{}, false
	}
	return s.Word(s.TargetID)
}
