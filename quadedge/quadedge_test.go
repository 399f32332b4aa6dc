package quadedge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRotFourTimesIsIdentity(t *testing.T) {
	g := NewGraph(4)
	e := g.MakeEdge()
	assert.Equal(t, e, e.Rot().Rot().Rot().Rot())
}

func TestSymInvolution(t *testing.T) {
	g := NewGraph(4)
	e := g.MakeEdge()
	assert.Equal(t, e, e.Sym().Sym())
}

func TestMakeEdgeIsolated(t *testing.T) {
	g := NewGraph(4)
	e := g.MakeEdge()
	assert.Equal(t, e, g.Onext(e))
	assert.Equal(t, e.Sym(), g.Onext(e.Sym()))
}

// TestSpliceFormsTriangle builds a triangle a-b-c using MakeEdge,
// Splice, and Connect directly, then checks Lnext cycles through
// exactly three edges around the left face.
func TestSpliceFormsTriangle(t *testing.T) {
	g := NewGraph(16)

	e1 := g.MakeEdge()
	g.SetOrg(e1, 0)
	g.SetDest(e1, 1)

	e2 := g.MakeEdge()
	g.Splice(e1.Sym(), e2)
	g.SetOrg(e2, 1)
	g.SetDest(e2, 2)

	e3 := g.Connect(e2, e1)
	assert.Equal(t, g.Org(e3), g.Dest(e2))
	assert.Equal(t, g.Dest(e3), g.Org(e1))

	count := 0
	start := e1
	cur := start
	for {
		cur = g.Lnext(cur)
		count++
		if cur == start || count > 10 {
			break
		}
	}
	assert.Equal(t, 3, count)
}

func TestSwapRoundTrips(t *testing.T) {
	g := NewGraph(16)
	e1 := g.MakeEdge()
	g.SetOrg(e1, 0)
	g.SetDest(e1, 1)
	e2 := g.MakeEdge()
	g.Splice(e1.Sym(), e2)
	g.SetOrg(e2, 1)
	g.SetDest(e2, 2)
	e3 := g.Connect(e2, e1)

	orgBefore, destBefore := g.Org(e3), g.Dest(e3)
	g.Swap(e3)
	g.Swap(e3)
	assert.Equal(t, orgBefore, g.Org(e3))
	assert.Equal(t, destBefore, g.Dest(e3))
}
