package ranking

import (
	"sort"

	"github.com/hupe1980/imgeval/mask"
)

// Epsilon keeps precision and recall finite for classes without predictions
// or positives.
const Epsilon = 1e-8

// CurvePoint is one rank position of a precision-recall curve.
type CurvePoint struct {
	Precision float64
	Recall    float64
	Threshold float64
}

// Sample pairs a ground-truth grid with the predicted class scores.
type Sample struct {
	Truth  mask.LabelGrid
	Scores mask.ProbabilityGrid
}

// ClassCurve ranks items by descending score and returns the cumulative
// precision and recall after each item. Ties keep input order.
func ClassCurve(positive []bool, scores []float64) []CurvePoint {
	n := len(scores)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	var total float64
	for _, p := range positive {
		if p {
			total++
		}
	}

	curve := make([]CurvePoint, n)
	var tp, fp float64
	for k, idx := range order {
		if positive[idx] {
			tp++
		} else {
			fp++
		}
		curve[k] = CurvePoint{
			Precision: tp / (tp + fp + Epsilon),
			Recall:    tp / (total + Epsilon),
			Threshold: scores[idx],
		}
	}
	return curve
}

// BlendedCurve builds the class-averaged precision-recall curve of one sample.
// Position k of the result is the mean of position k over all class curves.
func BlendedCurve(s Sample) ([]CurvePoint, error) {
	if err := mask.CheckPair(s.Truth, s.Scores); err != nil {
		return nil, err
	}

	n := s.Truth.Len()
	classes := s.Scores.Classes
	if n == 0 || classes == 0 {
		return nil, nil
	}

	blended := make([]CurvePoint, n)
	positive := make([]bool, n)

	for c := 0; c < classes; c++ {
		for i, l := range s.Truth.Labels {
			positive[i] = l == c
		}
		for k, p := range ClassCurve(positive, s.Scores.Plane(c)) {
			blended[k].Precision += p.Precision
			blended[k].Recall += p.Recall
			blended[k].Threshold += p.Threshold
		}
	}

	inv := 1 / float64(classes)
	for k := range blended {
		blended[k].Precision *= inv
		blended[k].Recall *= inv
		blended[k].Threshold *= inv
	}

	return blended, nil
}

// Trapezoid integrates precision over recall along the curve.
// Curves with fewer than two points have zero area.
func Trapezoid(curve []CurvePoint) float64 {
	var area float64
	for k := 1; k < len(curve); k++ {
		dr := curve[k].Recall - curve[k-1].Recall
		area += dr * (curve[k].Precision + curve[k-1].Precision) / 2
	}
	return area
}

// SampleAP returns the area under the blended curve of one sample.
func SampleAP(s Sample) (float64, error) {
	curve, err := BlendedCurve(s)
	if err != nil {
		return 0, err
	}
	return Trapezoid(curve), nil
}

// AveragePrecision returns the mean of SampleAP over all samples, or 0 when
// samples is empty.
func AveragePrecision(samples []Sample) (float64, error) {
	if len(samples) == 0 {
		return 0, nil
	}

	var sum float64
	for _, s := range samples {
		ap, err := SampleAP(s)
		if err != nil {
			return 0, err
		}
		sum += ap
	}

	return sum / float64(len(samples)), nil
}
