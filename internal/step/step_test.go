package step

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKind_StringRoundTrip(t *testing.T) {
	for _, k := range Kinds() {
		t.Run(k.String(), func(t *testing.T) {
			parsed, err := ParseKind(k.String())
			require.NoError(t, err)
			assert.Equal(t, k, parsed)
			assert.True(t, k.Valid())
		})
	}
}

func TestKind_Invalid(t *testing.T) {
	assert.False(t, Kind(0).Valid())
	assert.False(t, Kind(99).Valid())
	assert.Equal(t, "kind(99)", Kind(99).String())

	_, err := ParseKind("shuffle")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestKind_Positional(t *testing.T) {
	assert.True(t, KindCompare.Positional())
	assert.True(t, KindSwap.Positional())
	assert.True(t, KindOverwrite.Positional())
	assert.False(t, KindComplete.Positional())
	assert.False(t, KindDone.Positional())
}

func TestConstructors(t *testing.T) {
	c := Compare[int](1, 2, "c")
	assert.Equal(t, Step[int]{Kind: KindCompare, I: 1, J: 2, Description: "c"}, c)

	s := Swap[int](3, 4, "s")
	assert.Equal(t, KindSwap, s.Kind)
	assert.Equal(t, 3, s.I)
	assert.Equal(t, 4, s.J)

	o := Overwrite(5, 42, "o")
	assert.Equal(t, KindOverwrite, o.Kind)
	assert.Equal(t, 5, o.I)
	assert.Equal(t, NoIndex, o.J)
	assert.Equal(t, 42, o.Value)

	for _, terminal := range []Step[int]{Complete[int]("x"), Done[int]("y")} {
		assert.Equal(t, NoIndex, terminal.I)
		assert.Equal(t, NoIndex, terminal.J)
		assert.Zero(t, terminal.Value)
	}
}

func TestStep_String(t *testing.T) {
	assert.Equal(t, "compare(0, 1)", Compare[int](0, 1, "").String())
	assert.Equal(t, "swap(2, 3)", Swap[int](2, 3, "").String())
	assert.Equal(t, "overwrite(4, 9)", Overwrite(4, 9, "").String())
	assert.Equal(t, "done", Done[int]("").String())
}

func TestMetrics_Record(t *testing.T) {
	var m Metrics
	for _, k := range []Kind{KindCompare, KindCompare, KindSwap, KindOverwrite, KindComplete, KindDone} {
		m.Record(k)
	}
	assert.Equal(t, Metrics{Comparisons: 2, Swaps: 1, Writes: 1}, m)
	assert.Equal(t, int64(4), m.Total())
}

func TestTally(t *testing.T) {
	steps := []Step[int]{
		Compare[int](0, 1, ""),
		Swap[int](0, 1, ""),
		Compare[int](1, 2, ""),
		Overwrite(2, 7, ""),
		Done[int](""),
	}
	assert.Equal(t, Metrics{Comparisons: 2, Swaps: 1, Writes: 1}, Tally(steps))
}
