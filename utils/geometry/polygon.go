package geometry

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/samber/lo"
)

// Polygon 简单多边形，Points为按顺序排列的顶点（首尾不重复）
type Polygon struct {
	Points []Point
}

// Ring 转换为闭合的orb.Ring
func (p Polygon) Ring() orb.Ring {
	ring := lo.Map(p.Points, func(pt Point, _ int) orb.Point {
		return pt.ToOrb()
	})
	if len(ring) > 0 {
		ring = append(ring, ring[0])
	}
	return ring
}

// ToOrb 转换为orb.Polygon
func (p Polygon) ToOrb() orb.Polygon {
	return orb.Polygon{p.Ring()}
}

// Area 面积（不区分顶点方向）
func (p Polygon) Area() float64 {
	return math.Abs(planar.Area(p.ToOrb()))
}

// Bound 外接矩形
func (p Polygon) Bound() orb.Bound {
	return p.Ring().Bound()
}
