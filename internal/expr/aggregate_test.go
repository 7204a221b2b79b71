package expr

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMatrix(t *testing.T) *Matrix {
	t.Helper()
	return Normalize(parseTable(t, "Geneid\tChr\tStart\tEnd\tStrand\tLength\tWT_1\tWT_2\tMut_1\n"+
		"g1\tchr1\t1\t1000\t+\t1000\t10\t20\t5\n"+
		"g2\tchr1\t1\t1000\t+\t1000\t1\t1\t1\n"))
}

func TestSummarize_MeanAndPopulationStdDev(t *testing.T) {
	m := testMatrix(t)

	s, err := m.Summarize("g1", "WT")
	require.NoError(t, err)

	gi, _ := m.GeneIndex("g1")
	a, b := m.Values[gi][0], m.Values[gi][1]
	mean := (a + b) / 2
	sd := math.Sqrt(((a-mean)*(a-mean) + (b-mean)*(b-mean)) / 2)

	assert.InDelta(t, mean, s.Mean, 1e-9)
	assert.InDelta(t, sd, s.StdDev, 1e-9)
	assert.InDelta(t, 15.0, s.MeanRawCount, 1e-9)
	assert.Equal(t, 2, s.SampleCount)
}

func TestSummarize_Range(t *testing.T) {
	m := testMatrix(t)

	s, err := m.Summarize("g1", "WT")
	require.NoError(t, err)

	assert.InDelta(t, math.Max(0, s.Mean-s.StdDev), s.RangeLow, 1e-9)
	assert.InDelta(t, s.Mean+s.StdDev, s.RangeHigh, 1e-9)
	assert.GreaterOrEqual(t, s.RangeLow, 0.0)
}

func TestSummarize_SingleReplicate(t *testing.T) {
	m := testMatrix(t)

	s, err := m.Summarize("g1", "Mut")
	require.NoError(t, err)

	gi, _ := m.GeneIndex("g1")
	assert.InDelta(t, m.Values[gi][2], s.Mean, 1e-9)
	assert.Equal(t, 0.0, s.StdDev)
	assert.InDelta(t, 5.0, s.MeanRawCount, 1e-9)
	assert.Equal(t, 1, s.SampleCount)
}

func TestSummarize_EmptySelectionYieldsZeros(t *testing.T) {
	m := testMatrix(t)

	s, err := m.Summarize("g1", "DoesNotExist")
	require.NoError(t, err)

	assert.Equal(t, 0.0, s.Mean)
	assert.Equal(t, 0.0, s.StdDev)
	assert.Equal(t, 0.0, s.RangeLow)
	assert.Equal(t, 0.0, s.RangeHigh)
	assert.Equal(t, 0.0, s.MeanRawCount)
	assert.Equal(t, 0, s.SampleCount)
}

func TestSummarize_UnknownGene(t *testing.T) {
	m := testMatrix(t)

	_, err := m.Summarize("nope", "WT")
	assert.Error(t, err)
}

func TestSummarizeAll_ConditionOrder(t *testing.T) {
	m := testMatrix(t)

	summaries, err := m.SummarizeAll("g1")
	require.NoError(t, err)

	require.Len(t, summaries, 2)
	assert.Equal(t, "Mut", summaries[0].Condition)
	assert.Equal(t, "WT", summaries[1].Condition)
}

func TestSummarize_PrefixSelection(t *testing.T) {
	// A condition name that is a prefix of another also selects the
	// longer condition's samples; selection is by label prefix.
	m := Normalize(parseTable(t, "Geneid\tChr\tStart\tEnd\tStrand\tLength\tS1_1\tS10_1\n"+
		"g1\tchr1\t1\t1000\t+\t1000\t4\t8\n"))

	s, err := m.Summarize("g1", "S1")
	require.NoError(t, err)
	assert.Equal(t, 2, s.SampleCount)

	s, err = m.Summarize("g1", "S10")
	require.NoError(t, err)
	assert.Equal(t, 1, s.SampleCount)
}

func TestMeanStdDev(t *testing.T) {
	mean, sd := meanStdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	assert.InDelta(t, 5.0, mean, 1e-9)
	assert.InDelta(t, 2.0, sd, 1e-9)

	mean, sd = meanStdDev(nil)
	assert.Equal(t, 0.0, mean)
	assert.Equal(t, 0.0, sd)
}
