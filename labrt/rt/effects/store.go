package effects

// EffectID identifies an effect variant. It keys the catalog, the control
// tables and the runtime phases owned by the effect.
type EffectID string

// PhaseKey names one accumulated runtime value owned by an effect.
type PhaseKey struct {
	Effect EffectID
	Name   string
}

// Store holds per-session runtime phases. It is created empty, advanced every
// frame and never persisted. Keys left behind by a previously active effect are
// kept and simply ignored by other effects.
type Store struct {
	phases map[PhaseKey]float64
}

func NewStore() *Store {
	return &Store{phases: make(map[PhaseKey]float64)}
}

// Phase returns the value for key, or zero when absent.
func (s *Store) Phase(key PhaseKey) float64 {
	if s == nil || s.phases == nil {
		return 0
	}
	return s.phases[key]
}

// Has reports whether key has been written.
func (s *Store) Has(key PhaseKey) bool {
	if s == nil || s.phases == nil {
		return false
	}
	_, ok := s.phases[key]
	return ok
}

func (s *Store) Set(key PhaseKey, v float64) {
	if s.phases == nil {
		s.phases = make(map[PhaseKey]float64)
	}
	s.phases[key] = v
}

// Advance adds delta to the phase at key, starting from zero when absent.
func (s *Store) Advance(key PhaseKey, delta float64) float64 {
	v := s.Phase(key) + delta
	s.Set(key, v)
	return v
}

func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.phases)
}

// Reset drops every phase, including those of inactive effects.
func (s *Store) Reset() {
	s.phases = make(map[PhaseKey]float64)
}
