package bookingref

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("no entropy") }

func TestGenerate_Format(t *testing.T) {
	clock := func() time.Time { return time.Date(2025, 9, 3, 23, 59, 0, 0, time.UTC) }
	g := NewGenerator(WithClock(clock))

	ref, err := g.Generate()
	require.NoError(t, err)

	assert.True(t, IsValid(ref), ref)
	assert.Equal(t, "BK-20250903-", ref[:12])
}

func TestGenerate_DeterministicWithFixedRandom(t *testing.T) {
	clock := func() time.Time { return time.Date(2025, 1, 2, 9, 0, 0, 0, time.UTC) }
	seed := bytes.Repeat([]byte{0xab}, 16)

	a, err := NewGenerator(WithClock(clock), WithRandom(bytes.NewReader(seed))).Generate()
	require.NoError(t, err)
	b, err := NewGenerator(WithClock(clock), WithRandom(bytes.NewReader(seed))).Generate()
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Equal(t, "BK-20250102-ABABAB", a)
}

func TestGenerate_Unique(t *testing.T) {
	g := NewGenerator()
	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		ref, err := g.Generate()
		require.NoError(t, err)
		seen[ref] = struct{}{}
	}
	assert.Len(t, seen, 50)
}

func TestGenerate_RandomError(t *testing.T) {
	_, err := NewGenerator(WithRandom(failingReader{})).Generate()
	assert.Error(t, err)
}

func TestIsValidAndNormalize(t *testing.T) {
	assert.True(t, IsValid(Normalize("  bk-20250903-0a1b2c ")))
	assert.False(t, IsValid("BK-2025093-0A1B2C"))
	assert.False(t, IsValid("XX-20250903-0A1B2C"))
	assert.False(t, IsValid("BK-20250903-0A1B2G"))
}
