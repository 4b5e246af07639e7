package decompose

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
)

// Series is a numeric sequence that may hold NaN at undefined positions.
// It encodes non-finite values as JSON null and decodes null back to NaN.
type Series []float64

// NaNSeries returns a series of length n with every position set to NaN.
func NaNSeries(n int) Series {
	s := make(Series, n)
	for i := range s {
		s[i] = math.NaN()
	}
	return s
}

// Defined reports how many positions hold a finite value.
func (s Series) Defined() int {
	count := 0
	for _, v := range s {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			count++
		}
	}
	return count
}

func (s Series) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("null"), nil
	}

	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, v := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			buf.WriteString("null")
			continue
		}
		buf.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

func (s *Series) UnmarshalJSON(data []byte) error {
	var raw []*float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		*s = nil
		return nil
	}

	out := make(Series, len(raw))
	for i, v := range raw {
		if v == nil {
			out[i] = math.NaN()
			continue
		}
		out[i] = *v
	}
	*s = out
	return nil
}
