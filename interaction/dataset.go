package interaction

import "slices"

// DataPoint is a single labelled bar.
type DataPoint struct {
	Label string
	Value float64
}

// Dataset is an ordered sequence of points. The order defines both the bar
// order and the mapping from touch position to point. A Dataset is never
// mutated after construction, so it may be shared between goroutines.
type Dataset struct {
	points []DataPoint
}

// NewDataset copies points into a new dataset.
func NewDataset(points ...DataPoint) Dataset {
	return Dataset{points: slices.Clone(points)}
}

// FromValues builds an unlabelled dataset.
func FromValues(values ...float64) Dataset {
	points := make([]DataPoint, len(values))
	for i, v := range values {
		points[i].Value = v
	}
	return Dataset{points: points}
}

func (d Dataset) Len() int {
	return len(d.points)
}

func (d Dataset) Point(i int) DataPoint {
	return d.points[i]
}

// Points returns a copy of the dataset's points.
func (d Dataset) Points() []DataPoint {
	return slices.Clone(d.points)
}

func (d Dataset) Values() []float64 {
	out := make([]float64, len(d.points))
	for i, p := range d.points {
		out[i] = p.Value
	}
	return out
}

func (d Dataset) Labels() []string {
	out := make([]string, len(d.points))
	for i, p := range d.points {
		out[i] = p.Label
	}
	return out
}

// MaxValue returns the largest value in the dataset, floored at zero. An
// empty dataset has a MaxValue of zero.
func (d Dataset) MaxValue() float64 {
	var m float64
	for _, p := range d.points {
		m = max(m, p.Value)
	}
	return m
}

// LabelsProvided reports whether any point carries a non-empty label.
func (d Dataset) LabelsProvided() bool {
	for _, p := range d.points {
		if p.Label != "" {
			return true
		}
	}
	return false
}

// Append returns a new dataset with p added at the end. The receiver is left
// untouched.
func (d Dataset) Append(p DataPoint) Dataset {
	points := make([]DataPoint, len(d.points), len(d.points)+1)
	copy(points, d.points)
	return Dataset{points: append(points, p)}
}
