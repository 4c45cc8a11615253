package criterion

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/clustergo/particle"
)

func TestDistance(t *testing.T) {
	t.Run("invalid cutoff", func(t *testing.T) {
		_, err := NewDistance(particle.OpenBox(), 0)
		assert.ErrorIs(t, err, ErrInvalidCutoff)
	})

	t.Run("within cutoff", func(t *testing.T) {
		crit, err := NewDistance(particle.OpenBox(), 1.5)
		require.NoError(t, err)

		a := particle.Particle{ID: 1, Pos: particle.Vec3{0, 0, 0}}
		b := particle.Particle{ID: 2, Pos: particle.Vec3{1, 0, 0}}

		ok, err := crit.Decide(a, b)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("beyond cutoff", func(t *testing.T) {
		crit, err := NewDistance(particle.OpenBox(), 1.5)
		require.NoError(t, err)

		a := particle.Particle{ID: 1, Pos: particle.Vec3{0, 0, 0}}
		b := particle.Particle{ID: 2, Pos: particle.Vec3{2, 0, 0}}

		ok, err := crit.Decide(a, b)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("minimum image convention", func(t *testing.T) {
		crit, err := NewDistance(particle.NewBox(10, 10, 10), 1.5)
		require.NoError(t, err)

		// Across the periodic boundary the particles are only 1 apart.
		a := particle.Particle{ID: 1, Pos: particle.Vec3{0.5, 0, 0}}
		b := particle.Particle{ID: 2, Pos: particle.Vec3{9.5, 0, 0}}

		ok, err := crit.Decide(a, b)
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestBond(t *testing.T) {
	crit := NewBond(3)

	a := particle.Particle{ID: 1, Bonds: []particle.Bond{{Type: 3, Partner: 2}}}
	b := particle.Particle{ID: 2}
	c := particle.Particle{ID: 3}

	t.Run("bond stored on first particle", func(t *testing.T) {
		ok, err := crit.Decide(a, b)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("bond stored on second particle", func(t *testing.T) {
		ok, err := crit.Decide(b, a)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("no bond", func(t *testing.T) {
		ok, err := crit.Decide(a, c)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("wrong bond type", func(t *testing.T) {
		other := NewBond(4)
		ok, err := other.Decide(a, b)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestEnergy(t *testing.T) {
	t.Run("nil energy func", func(t *testing.T) {
		_, err := NewEnergy(nil, 1)
		assert.ErrorIs(t, err, ErrNilEnergyFunc)
	})

	t.Run("threshold", func(t *testing.T) {
		// Pair energy inversely proportional to distance.
		crit, err := NewEnergy(func(a, b particle.Particle) (float64, error) {
			return 1 / a.Pos.Sub(b.Pos).Norm(), nil
		}, 0.5)
		require.NoError(t, err)

		near := particle.Particle{ID: 1, Pos: particle.Vec3{0, 0, 0}}
		mid := particle.Particle{ID: 2, Pos: particle.Vec3{2, 0, 0}}
		far := particle.Particle{ID: 3, Pos: particle.Vec3{4, 0, 0}}

		ok, err := crit.Decide(near, mid)
		require.NoError(t, err)
		assert.True(t, ok) // energy 0.5 >= cutoff

		ok, err = crit.Decide(near, far)
		require.NoError(t, err)
		assert.False(t, ok) // energy 0.25 < cutoff
	})

	t.Run("error propagation", func(t *testing.T) {
		cause := errors.New("potential table missing")
		crit, err := NewEnergy(func(a, b particle.Particle) (float64, error) {
			return 0, cause
		}, 1)
		require.NoError(t, err)

		_, err = crit.Decide(particle.Particle{ID: 1}, particle.Particle{ID: 2})
		assert.ErrorIs(t, err, cause)
	})
}

func TestFunc(t *testing.T) {
	crit := Func(func(a, b particle.Particle) (bool, error) {
		return a.Type == b.Type, nil
	})

	ok, err := crit.Decide(particle.Particle{ID: 1, Type: 5}, particle.Particle{ID: 2, Type: 5})
	require.NoError(t, err)
	assert.True(t, ok)

	assert.Equal(t, "func", crit.Name())
}
