package terra

import "github.com/tntn-go/tntn/quadedge"

// Candidate is a per-triangle worst-sample record, spec §3: the pixel
// (X, Y) with the largest interpolation error inside some scanned
// triangle, the error itself, and the scan-generation Token that must
// still match the pixel's current token when the candidate is popped.
type Candidate struct {
	X, Y       int
	Z          float64
	Importance float64
	Token      int
	Hint       quadedge.Edge // a half-edge on the triangle that produced this candidate
}

// Consider updates c in place if diff is strictly greater than the
// best importance seen so far, keeping the first-seen pixel on exact
// ties (spec §4.3's "ties between scanned pixels inside one triangle
// keep the first seen").
func (c *Candidate) Consider(x, y int, z, diff float64) {
	if diff > c.Importance {
		c.X, c.Y, c.Z, c.Importance = x, y, z, diff
	}
}

// CandidateHeap is a container/heap max-heap ordered by Importance,
// with ties broken in favor of the higher (more recent) Token, per spec
// §5(ii): "insertion order among ties is resolved by token".
type CandidateHeap []*Candidate

func (h CandidateHeap) Len() int { return len(h) }

func (h CandidateHeap) Less(i, j int) bool {
	if h[i].Importance != h[j].Importance {
		return h[i].Importance > h[j].Importance
	}
	return h[i].Token > h[j].Token
}

func (h CandidateHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *CandidateHeap) Push(x any) {
	*h = append(*h, x.(*Candidate))
}

func (h *CandidateHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}
