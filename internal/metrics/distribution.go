package metrics

import (
	"math"
	"slices"
)

// Distribution summarises a set of duration samples in seconds.
type Distribution struct {
	samples []float64 // kept sorted
}

// NewDistribution creates a distribution from samples.
func NewDistribution(seconds []int) *Distribution {
	d := &Distribution{samples: make([]float64, 0, len(seconds))}
	for _, s := range seconds {
		d.samples = append(d.samples, float64(s))
	}
	slices.Sort(d.samples)
	return d
}

// Record adds a sample.
func (d *Distribution) Record(seconds int) {
	v := float64(seconds)
	i, _ := slices.BinarySearch(d.samples, v)
	d.samples = slices.Insert(d.samples, i, v)
}

// Mean returns the average sample.
func (d *Distribution) Mean() float64 {
	if len(d.samples) == 0 {
		return 0
	}

	var sum float64
	for _, v := range d.samples {
		sum += v
	}
	return sum / float64(len(d.samples))
}

// Percentile returns the value at the given percentile (0-100).
// For example, Percentile(90) returns p90.
func (d *Distribution) Percentile(p float64) float64 {
	if len(d.samples) == 0 {
		return 0
	}
	p = min(max(p, 0), 100)

	index := (p / 100.0) * float64(len(d.samples)-1)
	lower := int(math.Floor(index))
	upper := int(math.Ceil(index))

	if lower == upper {
		return d.samples[lower]
	}

	// Linear interpolation between lower and upper
	fraction := index - float64(lower)
	return d.samples[lower]*(1-fraction) + d.samples[upper]*fraction
}

// Median returns p50.
func (d *Distribution) Median() float64 {
	return d.Percentile(50)
}

// Min returns the smallest sample.
func (d *Distribution) Min() float64 {
	if len(d.samples) == 0 {
		return 0
	}
	return d.samples[0]
}

// Max returns the largest sample.
func (d *Distribution) Max() float64 {
	if len(d.samples) == 0 {
		return 0
	}
	return d.samples[len(d.samples)-1]
}

// Count returns the number of samples.
func (d *Distribution) Count() int {
	return len(d.samples)
}
