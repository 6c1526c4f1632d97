package overlap

import (
	"fmt"
	"math"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/imgeval/mask"
)

// ClassOverlap holds the pixel counts of one class.
type ClassOverlap struct {
	Class        int
	Intersection uint64
	Union        uint64
}

// Defined reports whether the class occurs in either grid.
func (c ClassOverlap) Defined() bool {
	return c.Union > 0
}

// IoU returns intersection/union, or ok=false for an undefined class.
func (c ClassOverlap) IoU() (iou float64, ok bool) {
	if c.Union == 0 {
		return 0, false
	}
	return float64(c.Intersection) / float64(c.Union), true
}

// Result is a mean IoU together with its per-class breakdown.
type Result struct {
	// Value is the mean over defined classes. Zero when Defined is false.
	Value float64
	// Defined is false when no class has a non-empty union.
	Defined bool
	// DefinedClasses counts the classes that contributed to Value.
	DefinedClasses int
	Classes        []ClassOverlap
}

// Float64 returns Value, or NaN when the result is undefined.
func (r Result) Float64() float64 {
	if !r.Defined {
		return math.NaN()
	}
	return r.Value
}

// Accumulator pools per-class counts over one or more sample pairs.
// Pooling counts equals computing IoU over the concatenated batch.
// The zero value is not usable; use NewAccumulator.
type Accumulator struct {
	numClasses   int
	intersection []uint64
	union        []uint64
	samples      int
}

// NewAccumulator creates an accumulator for classes [0, numClasses).
func NewAccumulator(numClasses int) (*Accumulator, error) {
	if numClasses < 0 {
		return nil, fmt.Errorf("overlap: negative class count %d", numClasses)
	}
	return &Accumulator{
		numClasses:   numClasses,
		intersection: make([]uint64, numClasses),
		union:        make([]uint64, numClasses),
	}, nil
}

// Add folds one predicted/true grid pair into the counts.
// Labels outside [0, numClasses) belong to no class.
func (a *Accumulator) Add(pred, truth mask.LabelGrid) error {
	if err := pred.Validate(); err != nil {
		return err
	}
	if err := truth.Validate(); err != nil {
		return err
	}
	if !pred.SameShape(truth) {
		return fmt.Errorf("%w: predicted %dx%d, true %dx%d", mask.ErrShapeMismatch, pred.Height, pred.Width, truth.Height, truth.Width)
	}
	if uint64(pred.Len()) > math.MaxUint32 {
		return fmt.Errorf("overlap: grid of %d pixels exceeds bitmap range", pred.Len())
	}

	predSets := classSets(pred.Labels, a.numClasses)
	trueSets := classSets(truth.Labels, a.numClasses)

	for c := 0; c < a.numClasses; c++ {
		p, t := predSets[c], trueSets[c]
		switch {
		case p == nil && t == nil:
			continue
		case p == nil:
			a.union[c] += t.GetCardinality()
		case t == nil:
			a.union[c] += p.GetCardinality()
		default:
			a.intersection[c] += p.AndCardinality(t)
			a.union[c] += p.OrCardinality(t)
		}
	}

	a.samples++
	return nil
}

// Samples returns the number of pairs added so far.
func (a *Accumulator) Samples() int {
	return a.samples
}

// Classes returns the pooled per-class counts.
func (a *Accumulator) Classes() []ClassOverlap {
	out := make([]ClassOverlap, a.numClasses)
	for c := range out {
		out[c] = ClassOverlap{
			Class:        c,
			Intersection: a.intersection[c],
			Union:        a.union[c],
		}
	}
	return out
}

// Result computes the mean IoU over defined classes.
func (a *Accumulator) Result() Result {
	classes := a.Classes()
	res := Result{Classes: classes}

	var sum float64
	for _, c := range classes {
		iou, ok := c.IoU()
		if !ok {
			continue
		}
		sum += iou
		res.DefinedClasses++
	}

	if res.DefinedClasses > 0 {
		res.Defined = true
		res.Value = sum / float64(res.DefinedClasses)
	}

	return res
}

// MeanIoU computes mean IoU of a single predicted/true pair over
// classes [0, numClasses).
func MeanIoU(pred, truth mask.LabelGrid, numClasses int) (Result, error) {
	acc, err := NewAccumulator(numClasses)
	if err != nil {
		return Result{}, err
	}
	if err := acc.Add(pred, truth); err != nil {
		return Result{}, err
	}
	return acc.Result(), nil
}

// classSets indexes pixel positions by label. Entries stay nil for classes
// that never occur.
func classSets(labels []int, numClasses int) []*roaring.Bitmap {
	sets := make([]*roaring.Bitmap, numClasses)
	for i, l := range labels {
		if l < 0 || l >= numClasses {
			continue
		}
		if sets[l] == nil {
			sets[l] = roaring.New()
		}
		sets[l].Add(uint32(i))
	}
	return sets
}
