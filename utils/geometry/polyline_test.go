package geometry_test

import (
	"math"
	"testing"

	"github.com/paulmach/orb/planar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/lanemarking/utils/geometry"
)

func straight(length float64) *geometry.Polyline {
	return geometry.MustNewPolyline([]geometry.Point{{X: 0, Y: 0}, {X: length, Y: 0}})
}

// (0,0) -> (10,0) -> (10,10)
func elbow() *geometry.Polyline {
	return geometry.MustNewPolyline([]geometry.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}})
}

func assertPoint(t *testing.T, want, got geometry.Point) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-9, "x of %v", got)
	assert.InDelta(t, want.Y, got.Y, 1e-9, "y of %v", got)
}

func TestNewPolylineDropsDuplicates(t *testing.T) {
	pl, err := geometry.NewPolyline([]geometry.Point{{X: 0, Y: 0}, {X: 0, Y: 0}, {X: 3, Y: 4}})
	require.NoError(t, err)
	assert.Len(t, pl.Points(), 2)
	assert.InDelta(t, 5, pl.Length(), 1e-12)

	_, err = geometry.NewPolyline([]geometry.Point{{X: 1, Y: 1}, {X: 1, Y: 1}})
	assert.ErrorIs(t, err, geometry.ErrTooFewPoints)
	_, err = geometry.NewPolyline(nil)
	assert.ErrorIs(t, err, geometry.ErrTooFewPoints)
}

func TestDistAlong(t *testing.T) {
	pl := elbow()
	assert.InDelta(t, 20, pl.Length(), 1e-12)

	pt, angle := pl.DistAlong(0)
	assertPoint(t, geometry.Point{X: 0, Y: 0}, pt)
	assert.True(t, angle.ApproxEq(0))

	pt, angle = pl.DistAlong(4)
	assertPoint(t, geometry.Point{X: 4, Y: 0}, pt)
	assert.True(t, angle.ApproxEq(0))

	pt, angle = pl.DistAlong(15)
	assertPoint(t, geometry.Point{X: 10, Y: 5}, pt)
	assert.InDelta(t, 90, angle.Degrees(), 1e-9)

	pt, _ = pl.DistAlong(20)
	assertPoint(t, geometry.Point{X: 10, Y: 10}, pt)

	_, _, ok := pl.SafeDistAlong(20.5)
	assert.False(t, ok)
	_, _, ok = pl.SafeDistAlong(-1)
	assert.False(t, ok)
	assert.Panics(t, func() { pl.DistAlong(21) })
}

func TestPerpLine(t *testing.T) {
	base := geometry.NewLine(geometry.Point{X: 2, Y: 3}, geometry.Point{X: 7, Y: 3})
	perp := geometry.PerpLine(base, 4)

	assert.InDelta(t, 4, perp.Length(), 1e-9)
	// 以Pt1为中点
	mid := geometry.Blend(perp.Pt1, perp.Pt2, 0.5)
	assertPoint(t, base.Pt1, mid)
	// 先右后左：屏幕坐标系下右侧为y+
	assertPoint(t, geometry.Point{X: 2, Y: 5}, perp.Pt1)
	assertPoint(t, geometry.Point{X: 2, Y: 1}, perp.Pt2)

	// 与原线段的长度无关
	longer := geometry.PerpLine(geometry.NewLine(base.Pt1, geometry.Point{X: 100, Y: 3}), 4)
	assertPoint(t, perp.Pt1, longer.Pt1)
	assertPoint(t, perp.Pt2, longer.Pt2)
}

func TestShift(t *testing.T) {
	left := straight(10).ShiftLeft(1)
	assertPoint(t, geometry.Point{X: 0, Y: -1}, left.FirstPt())
	assertPoint(t, geometry.Point{X: 10, Y: -1}, left.LastPt())

	right := elbow().ShiftRight(1)
	require.Len(t, right.Points(), 3)
	assertPoint(t, geometry.Point{X: 0, Y: 1}, right.Points()[0])
	assertPoint(t, geometry.Point{X: 9, Y: 1}, right.Points()[1])
	assertPoint(t, geometry.Point{X: 9, Y: 10}, right.Points()[2])

	// 共线的折点不产生交点
	collinear := geometry.MustNewPolyline([]geometry.Point{{X: 0, Y: 0}, {X: 5, Y: 0}, {X: 10, Y: 0}})
	shifted := collinear.ShiftRight(2)
	assert.InDelta(t, 10, shifted.Length(), 1e-9)
	assertPoint(t, geometry.Point{X: 5, Y: 2}, shifted.Points()[1])
}

func TestSlice(t *testing.T) {
	pl := elbow()
	sliced := pl.Slice(5, 15)
	require.Len(t, sliced.Points(), 3)
	assertPoint(t, geometry.Point{X: 5, Y: 0}, sliced.FirstPt())
	assertPoint(t, geometry.Point{X: 10, Y: 0}, sliced.Points()[1])
	assertPoint(t, geometry.Point{X: 10, Y: 5}, sliced.LastPt())
	assert.InDelta(t, 10, sliced.Length(), 1e-9)

	_, ok := pl.TrySlice(15, 5)
	assert.False(t, ok)
	_, ok = pl.TrySlice(5, 25)
	assert.False(t, ok)
	_, ok = pl.TrySlice(5, 5)
	assert.False(t, ok)
	assert.Panics(t, func() { pl.Slice(15, 5) })

	whole, ok := pl.TrySlice(0, pl.Length())
	require.True(t, ok)
	assert.True(t, whole.ApproxEq(pl))
}

func TestMakePolygonsArea(t *testing.T) {
	for _, length := range []float64{1, 7.3, 20, 123.4} {
		polygon := straight(length).MakePolygons(2.5)
		assert.InDelta(t, length*2.5, polygon.Area(), 1e-6)
		assert.InDelta(t, 2*length+2*2.5, planar.Length(polygon.Ring()), 1e-6)
	}
	// 斜线同样成立
	diagonal := geometry.MustNewPolyline([]geometry.Point{{X: 1, Y: 1}, {X: 4, Y: 5}})
	assert.InDelta(t, 5*0.5, diagonal.MakePolygons(0.5).Area(), 1e-9)

	bound := straight(10).MakePolygons(2).Bound()
	assert.InDelta(t, -1, bound.Min.Y(), 1e-9)
	assert.InDelta(t, 1, bound.Max.Y(), 1e-9)
}

func TestDashedPolygons(t *testing.T) {
	pl := straight(10)
	var dashes []geometry.Polygon
	for p := range pl.DashedPolygons(0.25, 1, 1.5) {
		dashes = append(dashes, p)
	}
	// 起点0, 2.5, 5, 7.5
	require.Len(t, dashes, 4)
	for i, dash := range dashes {
		assert.InDelta(t, 0.25, dash.Area(), 1e-9)
		bound := dash.Bound()
		assert.InDelta(t, 2.5*float64(i), bound.Min.X(), 1e-9)
		assert.InDelta(t, 2.5*float64(i)+1, bound.Max.X(), 1e-9)
	}

	// 惰性：提前退出
	n := 0
	for range pl.DashedPolygons(0.25, 1, 1.5) {
		n++
		break
	}
	assert.Equal(t, 1, n)

	// 不足一个虚线块
	short := straight(0.9)
	cnt := 0
	for range short.DashedPolygons(0.25, 1, 1.5) {
		cnt++
	}
	assert.Zero(t, cnt)
}

func TestAngle(t *testing.T) {
	a := geometry.Angle(0)
	assert.InDelta(t, 270, a.RotateDegs(270).Degrees(), 1e-9)
	assert.InDelta(t, 180, a.Opposite().Degrees(), 1e-9)
	assert.True(t, geometry.Angle(-math.Pi/2).ApproxEq(a.RotateDegs(270)))

	pt := geometry.Point{X: 1, Y: 1}.ProjectAway(2, geometry.Angle(math.Pi/2))
	assertPoint(t, geometry.Point{X: 1, Y: 3}, pt)
}
