package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rnalab/tpmview/internal/expr"
	"github.com/rnalab/tpmview/internal/gff"
)

func TestTabWriter(t *testing.T) {
	var buf bytes.Buffer
	tw := NewTabWriter(&buf)

	require.NoError(t, tw.WriteHeader())
	require.NoError(t, tw.Write("g1",
		gff.Entry{Product: "thr operon leader peptide", GeneName: "thrL", Biotype: "gene"},
		expr.Summary{
			Condition:    "WT",
			Mean:         3.25,
			StdDev:       0.5,
			RangeLow:     2.75,
			RangeHigh:    3.75,
			MeanRawCount: 11,
			SampleCount:  2,
		}))
	require.NoError(t, tw.Flush())

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)

	assert.True(t, strings.HasPrefix(lines[0], "#Gene\tName\tProduct\t"))
	assert.Equal(t, "g1\tthrL\tthr operon leader peptide\tgene\tWT\t3.25\t0.5\t2.75\t3.75\t11\t2", lines[1])
}

func TestTabWriter_MissingAnnotationFields(t *testing.T) {
	var buf bytes.Buffer
	tw := NewTabWriter(&buf)

	require.NoError(t, tw.Write("g2", gff.Entry{}, expr.Summary{Condition: "Mut"}))
	require.NoError(t, tw.Flush())

	fields := strings.Split(strings.TrimRight(buf.String(), "\n"), "\t")
	assert.Equal(t, "-", fields[1])
	assert.Equal(t, "-", fields[2])
	assert.Equal(t, "-", fields[3])
	assert.Equal(t, "0", fields[5])
}

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, "3.25", formatFloat(3.25))
	assert.Equal(t, "0", formatFloat(0))
	assert.Equal(t, "19.9316", formatFloat(19.93157))
	assert.Equal(t, "2", formatFloat(2.0))
}
