package delaunaymesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"seehuhn.de/go/geom/vec"
)

func square() *Mesh {
	return New(
		vec.Vec2{X: 0, Y: 0},
		vec.Vec2{X: 10, Y: 0},
		vec.Vec2{X: 10, Y: 10},
		vec.Vec2{X: 0, Y: 10},
	)
}

func TestNewHasTwoFaces(t *testing.T) {
	m := square()
	count := 0
	m.Walk(func(id int32) bool {
		count++
		return true
	})
	assert.Equal(t, 2, count)
}

func TestInsertPointOnDiagonalReplacesBothFaces(t *testing.T) {
	m := square()
	_, inserted := m.Insert(vec.Vec2{X: 5, Y: 5})
	assert.True(t, inserted)

	count := 0
	m.Walk(func(id int32) bool {
		count++
		return true
	})
	// (5,5) lies on the interior diagonal shared by both seed triangles:
	// both are replaced by the four-triangle spoke fan around it.
	assert.Equal(t, 4, count)
}

func TestInsertCoincidentPointIsNoop(t *testing.T) {
	m := square()
	before := 0
	m.Walk(func(id int32) bool { before++; return true })

	_, inserted := m.Insert(vec.Vec2{X: 0, Y: 0})
	assert.False(t, inserted)

	after := 0
	m.Walk(func(id int32) bool { after++; return true })
	assert.Equal(t, before, after)
}

func TestLocateFindsOriginVertex(t *testing.T) {
	m := square()
	e := m.Locate(vec.Vec2{X: 0, Y: 0}, m.hint)
	org := m.Point(m.graph.Org(e))
	dest := m.Point(m.graph.Dest(e))
	hit := org == (vec.Vec2{X: 0, Y: 0}) || dest == (vec.Vec2{X: 0, Y: 0})
	assert.True(t, hit)
}

func TestInsertBorderEdgePointSplitsSingleFace(t *testing.T) {
	m := square()
	// (5, 0) lies exactly on the bottom boundary edge a-b, not inside
	// either triangle.
	_, inserted := m.Insert(vec.Vec2{X: 5, Y: 0})
	require.True(t, inserted)

	count := 0
	m.Walk(func(id int32) bool {
		a, b, c, _ := m.Face(id)
		require.NotEqual(t, a, b)
		require.NotEqual(t, b, c)
		require.NotEqual(t, a, c)
		count++
		return true
	})
	// the boundary edge touches only one triangle (a, b, c), so
	// splitting it replaces that one face with two, for a net gain of
	// one face -- unlike an interior-edge split, which touches two
	// faces and replaces both.
	assert.Equal(t, 3, count)
}

func TestInsertManyPointsIncludingBorderStaysConsistent(t *testing.T) {
	m := square()
	pts := []vec.Vec2{
		{X: 5, Y: 0}, {X: 10, Y: 5}, {X: 5, Y: 10}, {X: 0, Y: 5},
		{X: 5, Y: 5}, {X: 2, Y: 8}, {X: 8, Y: 2},
	}
	for _, p := range pts {
		m.Insert(p)
	}

	faceCount := 0
	m.Walk(func(id int32) bool {
		a, b, c, _ := m.Face(id)
		require.NotEqual(t, a, b)
		require.NotEqual(t, b, c)
		require.NotEqual(t, a, c)
		faceCount++
		return true
	})
	assert.Greater(t, faceCount, 2)
}

func TestInsertManyPointsStaysConsistent(t *testing.T) {
	m := square()
	pts := []vec.Vec2{
		{X: 1, Y: 1}, {X: 9, Y: 1}, {X: 9, Y: 9}, {X: 1, Y: 9},
		{X: 5, Y: 5}, {X: 3, Y: 7}, {X: 7, Y: 3},
	}
	for _, p := range pts {
		m.Insert(p)
	}

	faceCount := 0
	m.Walk(func(id int32) bool {
		a, b, c, _ := m.Face(id)
		require.NotEqual(t, a, b)
		require.NotEqual(t, b, c)
		faceCount++
		return true
	})
	assert.Greater(t, faceCount, 2)
}
