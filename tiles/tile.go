package tiles

import (
	"bytes"
	"math"

	"github.com/tntn-go/tntn/geomutil"
	"github.com/tntn-go/tntn/mesh"
	"github.com/tntn-go/tntn/meshio"
	"github.com/tntn-go/tntn/qmesh"
)

// boxIntersects reports whether two axis-aligned xy boxes overlap, per
// original_source TileMaker.cpp's triangle_could_be_in_tile.
func boxIntersects(aMinX, aMinY, aMaxX, aMaxY, bMinX, bMinY, bMaxX, bMaxY float64) bool {
	return aMinX <= bMaxX && aMaxX >= bMinX && aMinY <= bMaxY && aMaxY >= bMinY
}

func triangleBox(t mesh.Triangle) (minX, minY, maxX, maxY float64) {
	minX = math.Min(t.A.X, math.Min(t.B.X, t.C.X))
	minY = math.Min(t.A.Y, math.Min(t.B.Y, t.C.Y))
	maxX = math.Max(t.A.X, math.Max(t.B.X, t.C.X))
	maxY = math.Max(t.A.Y, math.Max(t.B.Y, t.C.Y))
	return
}

func toUnitSquare(v mesh.Vertex, minX, minY, width, height float64) geomutil.Point3 {
	return geomutil.Point3{X: (v.X - minX) / width, Y: (v.Y - minY) / height, Z: v.Z}
}

func fromUnitSquare(p geomutil.Point3, minX, minY, width, height float64) mesh.Vertex {
	return mesh.Vertex{X: minX + p.X*width, Y: minY + p.Y*height, Z: p.Z}
}

// clipTile filters triangles to tile (tx, ty, zoom)'s quarter-tile
// buffered bounds, clips them to the tile's exact footprint, and
// rescales xy to the unit square for the clip and back to Mercator
// meters afterward, leaving z as real elevation throughout. Grounded on
// original_source TileMaker.cpp's dumpTile. ok is false for a tile with
// no geometry, which the caller silently skips per spec §4.6.
func (p *Pyramid) clipTile(tx, ty, zoom int, triangles []mesh.Triangle) (tileMesh *mesh.Mesh, bounds qmesh.Bounds, ok bool) {
	minX, minY, maxX, maxY := p.Mercator.TileBounds(tx, ty, zoom)
	width, height := maxX-minX, maxY-minY
	if width <= 0 || height <= 0 {
		return nil, qmesh.Bounds{}, false
	}

	bufX, bufY := width/4, height/4
	bufMinX, bufMinY := minX-bufX, minY-bufY
	bufMaxX, bufMaxY := maxX+bufX, maxY+bufY

	var candidates []mesh.Triangle
	for _, t := range triangles {
		tMinX, tMinY, tMaxX, tMaxY := triangleBox(t)
		if boxIntersects(tMinX, tMinY, tMaxX, tMaxY, bufMinX, bufMinY, bufMaxX, bufMaxY) {
			candidates = append(candidates, t)
		}
	}
	if len(candidates) == 0 {
		return nil, qmesh.Bounds{}, false
	}

	zMin, zMax := math.Inf(1), math.Inf(-1)
	for _, t := range candidates {
		for _, v := range [3]mesh.Vertex{t.A, t.B, t.C} {
			zMin = math.Min(zMin, v.Z)
			zMax = math.Max(zMax, v.Z)
		}
	}
	if zMin > zMax {
		zMin, zMax = 0, 0
	}

	lines := geomutil.UnitSquareClipLines()
	var clipped []mesh.Triangle
	for _, t := range candidates {
		pa := toUnitSquare(t.A, minX, minY, width, height)
		pb := toUnitSquare(t.B, minX, minY, width, height)
		pc := toUnitSquare(t.C, minX, minY, width, height)
		for _, poly := range geomutil.ClipTrianglePolygon(pa, pb, pc, lines) {
			clipped = append(clipped, mesh.Triangle{
				A: fromUnitSquare(poly[0], minX, minY, width, height),
				B: fromUnitSquare(poly[1], minX, minY, width, height),
				C: fromUnitSquare(poly[2], minX, minY, width, height),
			})
		}
	}
	if len(clipped) == 0 {
		return nil, qmesh.Bounds{}, false
	}

	return &mesh.Mesh{Triangles: clipped}, qmesh.Bounds{MinX: minX, MinY: minY, MinZ: zMin, MaxX: maxX, MaxY: maxY, MaxZ: zMax}, true
}

// encodeTile clips triangles to the tile's footprint and encodes the
// result in quantized-mesh wire format using the tile's own xy extent
// and the filtered triangles' real z-range as dequantization bounds.
func (p *Pyramid) encodeTile(tx, ty, zoom int, triangles []mesh.Triangle) (data []byte, ok bool, err error) {
	tileMesh, bounds, ok := p.clipTile(tx, ty, zoom, triangles)
	if !ok {
		return nil, false, nil
	}
	data, err = qmesh.Encode(tileMesh, qmesh.EncodeOptions{Bounds: bounds, Project: p.Project})
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// encodeTileOBJ clips triangles to the tile's footprint as encodeTile
// does, but writes the result as Wavefront OBJ text instead of
// quantized-mesh, for --output-format obj.
func (p *Pyramid) encodeTileOBJ(tx, ty, zoom int, triangles []mesh.Triangle) (data []byte, ok bool, err error) {
	tileMesh, _, ok := p.clipTile(tx, ty, zoom, triangles)
	if !ok {
		return nil, false, nil
	}
	var buf bytes.Buffer
	if err := meshio.WriteOBJ(&buf, tileMesh); err != nil {
		return nil, false, err
	}
	return buf.Bytes(), true, nil
}
