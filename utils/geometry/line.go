package geometry

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

// Line 有向线段Pt1->Pt2
type Line struct {
	Pt1 Point
	Pt2 Point
}

// NewLine 创建线段
func NewLine(pt1, pt2 Point) Line {
	return Line{Pt1: pt1, Pt2: pt2}
}

func (l Line) String() string {
	return fmt.Sprintf("Line{%v -> %v}", l.Pt1, l.Pt2)
}

// Length 线段长度
func (l Line) Length() float64 {
	return l.Pt1.DistTo(l.Pt2)
}

// Angle 线段方向
func (l Line) Angle() Angle {
	return AngleBetween(l.Pt1, l.Pt2)
}

// ShiftRight 整体向右平移width
func (l Line) ShiftRight(width float64) Line {
	angle := l.Angle().RotateDegs(90)
	return Line{
		Pt1: l.Pt1.ProjectAway(width, angle),
		Pt2: l.Pt2.ProjectAway(width, angle),
	}
}

// ShiftLeft 整体向左平移width
func (l Line) ShiftLeft(width float64) Line {
	angle := l.Angle().RotateDegs(-90)
	return Line{
		Pt1: l.Pt1.ProjectAway(width, angle),
		Pt2: l.Pt2.ProjectAway(width, angle),
	}
}

// ToOrb 转换为两点的orb.LineString
func (l Line) ToOrb() orb.LineString {
	return orb.LineString{l.Pt1.ToOrb(), l.Pt2.ToOrb()}
}

// PerpLine 以l.Pt1为中点、垂直于l、长度为length的线段
// 由l向右、向左各平移length/2后取两者的Pt1连接而成
// 注意：总是在Pt1处构造，与l的长度无关
func PerpLine(l Line, length float64) Line {
	pt1 := l.ShiftRight(length / 2).Pt1
	pt2 := l.ShiftLeft(length / 2).Pt1
	return NewLine(pt1, pt2)
}

// intersectInfinite 求两条直线（无限延长）的交点，平行时返回false
func intersectInfinite(a, b Line) (Point, bool) {
	d1x, d1y := a.Pt2.X-a.Pt1.X, a.Pt2.Y-a.Pt1.Y
	d2x, d2y := b.Pt2.X-b.Pt1.X, b.Pt2.Y-b.Pt1.Y
	cross := d1x*d2y - d1y*d2x
	if math.Abs(cross) < epsilon*math.Hypot(d1x, d1y)*math.Hypot(d2x, d2y) {
		return Point{}, false
	}
	t := ((b.Pt1.X-a.Pt1.X)*d2y - (b.Pt1.Y-a.Pt1.Y)*d2x) / cross
	return Point{X: a.Pt1.X + t*d1x, Y: a.Pt1.Y + t*d1y}, true
}
