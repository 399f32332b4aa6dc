package geomutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"seehuhn.de/go/geom/vec"
)

func TestTriArea(t *testing.T) {
	ccw := TriArea(vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 1, Y: 0}, vec.Vec2{X: 0, Y: 1})
	assert.Greater(t, ccw, 0.0)

	cw := TriArea(vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 0, Y: 1}, vec.Vec2{X: 1, Y: 0})
	assert.Less(t, cw, 0.0)
}

func TestInCircle(t *testing.T) {
	a := vec.Vec2{X: -1, Y: 0}
	b := vec.Vec2{X: 1, Y: 0}
	c := vec.Vec2{X: 0, Y: 1}

	inside := vec.Vec2{X: 0, Y: 0.1}
	assert.True(t, InCircle(a, b, c, inside))

	outside := vec.Vec2{X: 0, Y: 10}
	assert.False(t, InCircle(a, b, c, outside))
}

func TestFitPlane(t *testing.T) {
	p, ok := FitPlane(0, 0, 0, 1, 0, 2, 0, 1, 3)
	assert.True(t, ok)
	assert.InDelta(t, 2.0, p.Eval(1, 0), 1e-9)
	assert.InDelta(t, 3.0, p.Eval(0, 1), 1e-9)

	_, ok = FitPlane(0, 0, 0, 1, 0, 0, 2, 0, 0)
	assert.False(t, ok)
}

func TestClipTriangleBottom(t *testing.T) {
	a := Point3{X: 0.2, Y: -0.1, Z: 1}
	b := Point3{X: 0.8, Y: -0.1, Z: 1}
	c := Point3{X: 0.5, Y: 0.5, Z: 1}

	line := ClipLine{OX: 0, OY: 0, DX: 1, DY: 0}
	result := ClipTriangle(a, b, c, line)
	assert.Len(t, result, 1)

	var area float64
	for _, tri := range result {
		area += 0.5 * ((tri[1].X-tri[0].X)*(tri[2].Y-tri[0].Y) - (tri[1].Y-tri[0].Y)*(tri[2].X-tri[0].X))
	}
	assert.Greater(t, area, 0.0)
}

func TestZoomRangeClamp(t *testing.T) {
	r := ZoomRange{Min: -5, Max: 100}.Clamp(2, 18)
	assert.Equal(t, ZoomRange{Min: 2, Max: 18}, r)

	r2 := ZoomRange{Min: 5, Max: 10}.Clamp(2, 18)
	assert.Equal(t, ZoomRange{Min: 5, Max: 10}, r2)
}
