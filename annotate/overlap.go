package annotate

import (
	"sort"

	"github.com/revelaction/annotext/sentence"
)

// Span is a half-open character offset range [Begin, End).
type Span struct {
	Begin int
	End   int
}

func (s Span) Len() int {
	return s.End - s.Begin
}

// Jaccard returns the size of the intersection of a and b over the size of
// their union. It is 1 for identical ranges, 0 for touching ranges and
// negative for ranges with a gap between them. An empty union scores 0.
func Jaccard(a, b Span) float64 {
	inter := min(a.End, b.End) - max(a.Begin, b.Begin)
	union := max(a.End, b.End) - min(a.Begin, b.Begin)
	if union <= 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// Intersection returns the number of shared offsets of a and b, or the
// negative gap between them.
func Intersection(a, b Span) float64 {
	return float64(min(a.End, b.End) - max(a.Begin, b.Begin))
}

var metrics = map[OverlapMetric]func(a, b Span) float64{
	MetricJaccard:      Jaccard,
	MetricIntersection: Intersection,
}

// bestOverlap returns the mention whose offset range scores highest against
// target. Ties go to the leftmost start, then the shortest range, then the
// earliest mention in the slice.
func bestOverlap(mentions []*sentence.Mention, target Span, score func(a, b Span) float64) *sentence.Mention {
	type candidate struct {
		m     *sentence.Mention
		span  Span
		score float64
	}

	cands := make([]candidate, len(mentions))
	for i, m := range mentions {
		begin, end := m.Range()
		sp := Span{Begin: begin, End: end}
		cands[i] = candidate{m: m, span: sp, score: score(sp, target)}
	}

	sort.SliceStable(cands, func(i, j int) bool {
		a, b := cands[i], cands[j]
		if a.score != b.score {
			return a.score > b.score
		}
		if a.span.Begin != b.span.Begin {
			return a.span.Begin < b.span.Begin
		}
		return a.span.Len() < b.span.Len()
	})

	if len(cands) == 0 {
		return nil
	}
	return cands[0].m
}
