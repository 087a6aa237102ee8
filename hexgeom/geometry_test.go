package hexgeom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-9

func assertPoint(t *testing.T, exp, got Point) {
	t.Helper()
	assert.InDelta(t, exp.X, got.X, 1e-6, "x of %v", got)
	assert.InDelta(t, exp.Y, got.Y, 1e-6, "y of %v", got)
}

func TestBackGeometry(t *testing.T) {
	for _, size := range []float64{1, 14, 50, 100, 333.3} {
		for _, lw := range []float64{0, AutoLineWidth(size), size / 5} {
			g := ComputeBack(size, lw)
			require.Len(t, g.Back, 7)
			require.Len(t, g.Edges, 6)
			assert.Equal(t, g.Back[0], g.Back[6], "closed polygon")

			for i, e := range g.Edges {
				assertPoint(t, g.Back[i+1].Sub(g.Back[i]), e)
				// regular hexagon: all sides have the circumradius length
				assert.InDelta(t, g.OuterRadius, math.Hypot(e.X, e.Y), 1e-9)
			}
			assert.InDelta(t, size/2-lw/2, g.OuterRadius, tol)

			// horizontally spans the inset width, vertically centered
			assert.InDelta(t, lw/2, g.Back[5].X, tol)
			assert.InDelta(t, size-lw/2, g.Back[2].X, tol)
			assert.InDelta(t, size/2, g.Back[2].Y, tol)
			assert.InDelta(t, size/2, (g.Back[0].Y+g.Back[3].Y)/2, tol)
		}
	}
}

func TestAutoLineWidth(t *testing.T) {
	assert.InDelta(t, 7.142857, AutoLineWidth(100), 1e-6)
}

func TestFrontPathEmpty(t *testing.T) {
	g := ComputeBack(100, 7)
	assert.Empty(t, g.FrontPath(math.Pi/2, 0))
	assert.Empty(t, g.FrontPath(math.Pi/2, -0.3))
	assert.Empty(t, g.FrontPath(math.Pi/2, math.NaN()))
	assert.Empty(t, g.Front(math.Pi/2, 0))
}

func TestFrontPathNonEmpty(t *testing.T) {
	g := ComputeBack(100, 7)
	for i := 1; i <= 100; i++ {
		v := float64(i) / 100
		for _, a := range []float64{0, 0.3, math.Pi / 2, math.Pi, 5} {
			pts := g.FrontPath(a, v)
			assert.GreaterOrEqual(t, len(pts), 2, "value %f, angle %f", v, a)
			assert.LessOrEqual(t, len(pts), 8)
		}
	}
}

func TestFrontPathHalf(t *testing.T) {
	size := 100.
	g := ComputeBack(size, AutoLineWidth(size))

	assert.InDelta(t, 30, StartDegrees(math.Pi/2), tol)
	sector, coef := Sector(StartDegrees(math.Pi / 2))
	assert.Equal(t, 1, sector)
	assert.InDelta(t, 0.5, coef, tol)

	pts := g.FrontPath(math.Pi/2, 0.5)
	require.Len(t, pts, 5)
	// from the middle of the top edge to the middle of the bottom edge
	assertPoint(t, g.Back[0].Add(g.Edges[0].Mul(0.5)), pts[0])
	assertPoint(t, g.Back[1], pts[1])
	assertPoint(t, g.Back[2], pts[2])
	assertPoint(t, g.Back[3], pts[3])
	assertPoint(t, g.Back[3].Add(g.Edges[3].Mul(0.5)), pts[4])
}

func TestFrontPathSingleSector(t *testing.T) {
	g := ComputeBack(100, 7)
	// starts at 1/4 of the top edge and covers 1/12 of the perimeter
	startAngle := (60 + 15) * math.Pi / 180
	pts := g.FrontPath(startAngle, 1./12)
	require.Len(t, pts, 2)
	assertPoint(t, g.Back[0].Add(g.Edges[0].Mul(0.25)), pts[0])
	assertPoint(t, g.Back[0].Add(g.Edges[0].Mul(0.75)), pts[1])
}

func TestFrontPathWrapsInSameSector(t *testing.T) {
	g := ComputeBack(100, 7)
	startAngle := math.Pi / 2 // middle of sector 1
	pts := g.FrontPath(startAngle, 0.95)
	// begin, 6 vertices, end in the begin sector
	require.Len(t, pts, 8)
	assertPoint(t, g.Back[0].Add(g.Edges[0].Mul(0.5)), pts[0])
	assertPoint(t, g.Back[0], pts[6])
	assertPoint(t, g.Back[0].Add(g.Edges[0].Mul(0.2)), pts[7])
}

func TestFrontPathVertexBoundaries(t *testing.T) {
	g := ComputeBack(120, 10)
	startAngle := math.Pi / 3 // vertex 0
	for k := 1; k <= 6; k++ {
		pts := g.FrontPath(startAngle, float64(k)/6)
		require.Len(t, pts, k+1, "k=%d", k)
		for i, pt := range pts {
			assertPoint(t, g.Back[i], pt)
		}
	}

	// from the middle of a sector, k/6 ends in the middle of another one
	for k := 1; k <= 6; k++ {
		pts := g.FrontPath(math.Pi/2, float64(k)/6)
		end := pts[len(pts)-1]
		s := k % 6
		assertPoint(t, g.Back[s].Add(g.Edges[s].Mul(0.5)), end)
	}
}

func TestFrontPathFull(t *testing.T) {
	g := ComputeBack(100, 7)

	pts := g.FrontPath(math.Pi/3, 1)
	require.Len(t, pts, 7)
	for i := range pts {
		assertPoint(t, g.Back[i], pts[i])
	}

	pts = g.FrontPath(math.Pi/2, 1)
	require.Len(t, pts, 8)
	assertPoint(t, pts[0], pts[7])
	for i := 1; i < 7; i++ {
		assertPoint(t, g.Back[i%6], pts[i])
	}

	// clamped
	assert.Equal(t, g.FrontPath(math.Pi/2, 1), g.FrontPath(math.Pi/2, 1.7))
}

func TestStartAngleWrapAround(t *testing.T) {
	g := ComputeBack(100, 7)
	deg := math.Pi / 180
	for _, v := range []float64{0.1, 0.45, 0.9, 1} {
		exp := g.FrontPath(10*deg, v)
		for _, a := range []float64{370 * deg, -350 * deg, 730 * deg} {
			got := g.FrontPath(a, v)
			require.Len(t, got, len(exp))
			for i := range exp {
				assertPoint(t, exp[i], got[i])
			}
		}
	}
	// exact multiple of 360 after the shift
	assert.InDelta(t, 0, StartDegrees(420*deg), 1e-6)
	sector, _ := Sector(StartDegrees(420 * deg))
	assert.Equal(t, 1, sector)
}

func TestFrontPathIdempotent(t *testing.T) {
	g1 := ComputeBack(80, 6)
	g2 := ComputeBack(80, 6)
	assert.Equal(t, g1, g2)
	assert.Equal(t, g1.FrontPath(1.2, 0.37), g2.FrontPath(1.2, 0.37))
}

func TestInset(t *testing.T) {
	size, lw := 100., 10.
	g := ComputeBack(size, lw)
	in := g.Inset()
	assert.InDelta(t, g.OuterRadius-lw/2, in.OuterRadius, tol)
	// same center
	c := g.Back[0].Add(g.Back[3]).Mul(0.5)
	ci := in.Back[0].Add(in.Back[3]).Mul(0.5)
	assertPoint(t, c, ci)
	assert.Equal(t, in.Back[0], in.Back[6])
}

func TestInsetThickBorder(t *testing.T) {
	for _, lw := range []float64{50, 70, 99} {
		g := ComputeBack(100, lw)
		in := g.Inset()
		assert.Equal(t, 0., in.OuterRadius, lw)
		c := g.Back[0].Add(g.Back[3]).Mul(0.5)
		for _, p := range in.Back {
			assertPoint(t, c, p)
		}
		for _, e := range in.Edges {
			assert.Equal(t, Point{}, e)
		}
	}
}
