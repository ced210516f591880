package effects

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStoreDefaults(t *testing.T) {
	var nilStore *Store
	key := PhaseKey{EffectSineTransition, PhaseSine}

	assert.Equal(t, 0.0, nilStore.Phase(key))
	assert.False(t, nilStore.Has(key))
	assert.Equal(t, 0, nilStore.Len())

	s := &Store{}
	assert.Equal(t, 1.5, s.Advance(key, 1.5))
	assert.True(t, s.Has(key))

	s.Reset()
	assert.Equal(t, 0, s.Len())
}
