package expr

import (
	"fmt"
	"math"
)

// Summary holds per-condition statistics for one gene: arithmetic
// mean and population standard deviation of the normalized values of
// the condition's replicate samples, the display range derived from
// them, and the mean of the raw counts. SampleCount records how many
// replicate columns matched; 0 distinguishes "no matching samples"
// from a genuine zero measurement.
type Summary struct {
	Condition    string  `json:"condition"`
	Mean         float64 `json:"mean"`
	StdDev       float64 `json:"std_dev"`
	RangeLow     float64 `json:"range_low"`
	RangeHigh    float64 `json:"range_high"`
	MeanRawCount float64 `json:"mean_raw_count"`
	SampleCount  int     `json:"sample_count"`
}

// Summarize computes the summary for one gene and condition. Samples
// are selected by condition-name prefix on the sample label. An empty
// selection yields zeros rather than an error; only an unknown gene
// ID fails.
func (m *Matrix) Summarize(geneID, condition string) (Summary, error) {
	gi, ok := m.geneIndex[geneID]
	if !ok {
		return Summary{}, fmt.Errorf("unknown gene %q", geneID)
	}
	return m.summarizeRow(gi, condition), nil
}

// SummarizeAll computes one summary per condition, in condition
// order, for the given gene.
func (m *Matrix) SummarizeAll(geneID string) ([]Summary, error) {
	gi, ok := m.geneIndex[geneID]
	if !ok {
		return nil, fmt.Errorf("unknown gene %q", geneID)
	}

	summaries := make([]Summary, len(m.Conditions))
	for i, cond := range m.Conditions {
		summaries[i] = m.summarizeRow(gi, cond)
	}
	return summaries, nil
}

func (m *Matrix) summarizeRow(gi int, condition string) Summary {
	var norm, raw []float64
	for si, label := range m.Samples {
		if hasConditionPrefix(label, condition) {
			norm = append(norm, m.Values[gi][si])
			raw = append(raw, m.Raw[gi][si])
		}
	}

	mean, sd := meanStdDev(norm)
	rawMean, _ := meanStdDev(raw)

	return Summary{
		Condition:    condition,
		Mean:         mean,
		StdDev:       sd,
		RangeLow:     math.Max(0, mean-sd),
		RangeHigh:    mean + sd,
		MeanRawCount: rawMean,
		SampleCount:  len(norm),
	}
}

// hasConditionPrefix reports whether a sample label belongs to a
// condition. Labels are matched by prefix, so the label itself and
// any "<condition>_<replicate>" form both match.
func hasConditionPrefix(label, condition string) bool {
	return len(label) >= len(condition) && label[:len(condition)] == condition
}

// meanStdDev returns the arithmetic mean and population standard
// deviation (divide by n, not n-1) of vs. An empty input uses a
// denominator of 1 and yields zeros, never NaN.
func meanStdDev(vs []float64) (mean, sd float64) {
	n := float64(len(vs))
	if n == 0 {
		n = 1
	}

	var sum float64
	for _, v := range vs {
		sum += v
	}
	mean = sum / n

	var sq float64
	for _, v := range vs {
		d := v - mean
		sq += d * d
	}
	sd = math.Sqrt(sq / n)

	return mean, sd
}
