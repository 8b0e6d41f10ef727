package sim

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureSink records every frame state it is offered.
type captureSink struct {
	frames []FrameState
}

func (cs *captureSink) Frame(fs *FrameState) error {
	cs.frames = append(cs.frames, *fs)
	return nil
}

// failingSink errors on the frame with the given index.
type failingSink struct {
	failAt int
	seen   int
}

var errSinkBroken = errors.New("sink broken")

func (fs *failingSink) Frame(*FrameState) error {
	defer func() { fs.seen++ }()
	if fs.seen == fs.failAt {
		return errSinkBroken
	}
	return nil
}

func TestSimulator_OneFramePerEvent(t *testing.T) {
	s, err := NewSimulator(naiveCfg(2, 2, 2))
	require.NoError(t, err)

	sink := &captureSink{}
	totals, err := s.Run(sink)
	require.NoError(t, err)

	want := 2 * 2 * (3*2 + 1)
	require.Len(t, sink.frames, want)
	for i, fr := range sink.frames {
		assert.Equal(t, i, fr.Index)
	}
	// every event is exactly one memory access
	assert.Equal(t, want, totals.Mem)
}

func TestSimulator_FirstFrameState(t *testing.T) {
	s, err := NewSimulator(NewConfig(2, 2, 2, VariantNaive, 0, 0, 0, "baseline"))
	require.NoError(t, err)

	sink := &captureSink{}
	_, err = s.Run(sink)
	require.NoError(t, err)

	first := sink.frames[0]
	assert.Equal(t, read(MatrixA, 0, 0, LevelNone, true), first.Event)
	assert.Equal(t, "baseline", first.Title)
	assert.False(t, first.WithL1)

	// only A has been touched at this point
	require.True(t, first.A.HasLast)
	assert.Equal(t, Cell{Row: 0, Col: 0}, first.A.Last)
	assert.False(t, first.B.HasLast)
	assert.False(t, first.C.HasLast)
	assert.Len(t, first.A.Resident, 1)
	assert.Empty(t, first.B.Resident)
	assert.Equal(t, 1, first.Totals.Mem)
}

func TestSimulator_GridDimensions(t *testing.T) {
	s, err := NewSimulator(Config{M: 3, N: 5, K: 4, Variant: VariantNaive})
	require.NoError(t, err)
	sink := &captureSink{}
	_, err = s.Run(sink)
	require.NoError(t, err)

	last := sink.frames[len(sink.frames)-1]
	assert.Equal(t, 3, last.A.Rows)
	assert.Equal(t, 4, last.A.Cols)
	assert.Equal(t, 4, last.B.Rows)
	assert.Equal(t, 5, last.B.Cols)
	assert.Equal(t, 3, last.C.Rows)
	assert.Equal(t, 5, last.C.Cols)
}

func TestSimulator_TransposedDrawsBStorageLayout(t *testing.T) {
	s, err := NewSimulator(Config{M: 3, N: 5, K: 4, Variant: VariantTransposed})
	require.NoError(t, err)
	sink := &captureSink{}
	_, err = s.Run(sink)
	require.NoError(t, err)

	// B is K×N logically but drawn in its transposed N×K storage layout
	last := sink.frames[len(sink.frames)-1]
	assert.Equal(t, 5, last.B.Rows)
	assert.Equal(t, 4, last.B.Cols)
}

func TestSimulator_BlockResidency(t *testing.T) {
	s, err := NewSimulator(Config{M: 4, N: 4, K: 4, Variant: VariantBlocked1, Block1: 2})
	require.NoError(t, err)
	sink := &captureSink{}
	_, err = s.Run(sink)
	require.NoError(t, err)

	first := sink.frames[0]
	require.Len(t, first.A.Blocks, 1)
	assert.Equal(t, BlockResidency{
		Level: LevelL2Block,
		Block: Block{Row0: 0, Col0: 0, Rows: 2, Cols: 2},
	}, first.A.Blocks[0])

	// unblocked variants report no residency
	sNaive, err := NewSimulator(naiveCfg(2, 2, 2))
	require.NoError(t, err)
	naiveSink := &captureSink{}
	_, err = sNaive.Run(naiveSink)
	require.NoError(t, err)
	assert.Empty(t, naiveSink.frames[0].A.Blocks)
}

func TestSimulator_TwoLevelResidency(t *testing.T) {
	s, err := NewSimulator(Config{M: 8, N: 8, K: 8, Variant: VariantBlocked2, Block1: 2, Block2: 4})
	require.NoError(t, err)
	sink := &captureSink{}
	_, err = s.Run(sink)
	require.NoError(t, err)

	first := sink.frames[0]
	require.Len(t, first.A.Blocks, 2)
	assert.Equal(t, LevelL2Block, first.A.Blocks[0].Level)
	assert.Equal(t, Block{Row0: 0, Col0: 0, Rows: 4, Cols: 4}, first.A.Blocks[0].Block)
	assert.Equal(t, LevelL1Block, first.A.Blocks[1].Level)
	assert.Equal(t, Block{Row0: 0, Col0: 0, Rows: 2, Cols: 2}, first.A.Blocks[1].Block)
}

func TestSimulator_SinkErrorAbortsRun(t *testing.T) {
	s, err := NewSimulator(naiveCfg(2, 2, 2))
	require.NoError(t, err)

	_, err = s.Run(&failingSink{failAt: 3})
	require.Error(t, err)
	assert.ErrorIs(t, err, errSinkBroken)
	assert.Contains(t, err.Error(), "frame 3")
}

func TestSimulator_RunStatsMatchesSinkRun(t *testing.T) {
	cfg := Config{M: 4, N: 4, K: 4, Variant: VariantBlocked1, Block1: 2, L1: 1}

	s1, err := NewSimulator(cfg)
	require.NoError(t, err)
	statsOnly := s1.RunStats()

	s2, err := NewSimulator(cfg)
	require.NoError(t, err)
	withSink, err := s2.Run(&captureSink{})
	require.NoError(t, err)

	assert.Equal(t, statsOnly, withSink)
	assert.Positive(t, statsOnly.CacheHits())
}

func TestSimulator_TransposeImprovesBLocality(t *testing.T) {
	// the whole point of the animation: transposing B turns its strided
	// column walk into line-friendly row walks. K=12 makes the naive column
	// walk touch more lines than the cache holds, so it thrashes.
	run := func(v Variant) Totals {
		s, err := NewSimulator(Config{M: 12, N: 12, K: 12, Variant: v})
		require.NoError(t, err)
		return s.RunStats()
	}
	naive := run(VariantNaive)
	transposed := run(VariantTransposed)
	assert.Greater(t, transposed.CacheHits(), naive.CacheHits())
}

func TestSimulator_RejectsInvalidConfig(t *testing.T) {
	_, err := NewSimulator(Config{M: 2, N: 2, K: 2, Variant: VariantBlocked1})
	assert.ErrorIs(t, err, ErrBadBlockSize)
}
