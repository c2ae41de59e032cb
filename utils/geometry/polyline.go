package geometry

import (
	"iter"
	"math"
	"sort"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

var ErrTooFewPoints = errors.New("polyline needs at least 2 distinct points")

// Polyline 折线
// 构造后不可变，预先计算每个折点对应的累计长度与每一段的方向
type Polyline struct {
	pts        []Point
	lengths    []float64 // 折点对应的累计长度，lengths[0]=0
	directions []Angle   // 每一段的方向，len(directions)=len(pts)-1
}

// NewPolyline 由折点创建折线
// 功能：去除相邻的重复点后计算累计长度与分段方向
// 返回：去重后不足2个点时返回ErrTooFewPoints
func NewPolyline(pts []Point) (*Polyline, error) {
	deduped := make([]Point, 0, len(pts))
	for _, pt := range pts {
		if len(deduped) > 0 && deduped[len(deduped)-1].ApproxEq(pt) {
			continue
		}
		deduped = append(deduped, pt)
	}
	if len(deduped) < 2 {
		return nil, errors.Wrapf(ErrTooFewPoints, "got %d", len(deduped))
	}
	pl := &Polyline{
		pts:        deduped,
		lengths:    make([]float64, len(deduped)),
		directions: make([]Angle, len(deduped)-1),
	}
	for i := 1; i < len(deduped); i++ {
		pl.lengths[i] = pl.lengths[i-1] + deduped[i-1].DistTo(deduped[i])
		pl.directions[i-1] = AngleBetween(deduped[i-1], deduped[i])
	}
	return pl, nil
}

// MustNewPolyline 同NewPolyline，失败时panic（仅用于调用方已保证输入合法的场合）
func MustNewPolyline(pts []Point) *Polyline {
	pl, err := NewPolyline(pts)
	if err != nil {
		log.Panicf("bad polyline %v: %v", pts, err)
	}
	return pl
}

// Points 折点
func (pl *Polyline) Points() []Point {
	return pl.pts
}

// Length 总长度
func (pl *Polyline) Length() float64 {
	return pl.lengths[len(pl.lengths)-1]
}

// FirstPt 起点
func (pl *Polyline) FirstPt() Point {
	return pl.pts[0]
}

// LastPt 终点
func (pl *Polyline) LastPt() Point {
	return pl.pts[len(pl.pts)-1]
}

// Lines 拆分为线段
func (pl *Polyline) Lines() []Line {
	lines := make([]Line, len(pl.pts)-1)
	for i := range lines {
		lines[i] = NewLine(pl.pts[i], pl.pts[i+1])
	}
	return lines
}

// SafeDistAlong 根据弧长s计算折线上的点与切向方向
// 功能：s超出[0, Length()]时返回ok=false
func (pl *Polyline) SafeDistAlong(s float64) (pt Point, angle Angle, ok bool) {
	length := pl.Length()
	if s < -epsilon || s > length+epsilon {
		return Point{}, 0, false
	}
	s = lo.Clamp(s, 0, length)
	i := sort.SearchFloat64s(pl.lengths, s)
	if i == 0 {
		return pl.pts[0], pl.directions[0], true
	}
	sHigh, sLow := pl.lengths[i], pl.lengths[i-1]
	k := (s - sLow) / (sHigh - sLow)
	return Blend(pl.pts[i-1], pl.pts[i], k), pl.directions[i-1], true
}

// DistAlong 同SafeDistAlong，s超出范围视为调用方的错误，直接panic
func (pl *Polyline) DistAlong(s float64) (Point, Angle) {
	pt, angle, ok := pl.SafeDistAlong(s)
	if !ok {
		log.Panicf("dist along %v out of range [0, %v]", s, pl.Length())
	}
	return pt, angle
}

// ShiftRight 向右平移width，折点处取相邻平移段所在直线的交点（斜接）
func (pl *Polyline) ShiftRight(width float64) *Polyline {
	return pl.shift(func(l Line) Line { return l.ShiftRight(width) })
}

// ShiftLeft 向左平移width
func (pl *Polyline) ShiftLeft(width float64) *Polyline {
	return pl.shift(func(l Line) Line { return l.ShiftLeft(width) })
}

func (pl *Polyline) shift(shiftLine func(Line) Line) *Polyline {
	shifted := lo.Map(pl.Lines(), func(l Line, _ int) Line {
		return shiftLine(l)
	})
	pts := make([]Point, 0, len(pl.pts))
	pts = append(pts, shifted[0].Pt1)
	for i := 1; i < len(shifted); i++ {
		if pt, ok := intersectInfinite(shifted[i-1], shifted[i]); ok {
			pts = append(pts, pt)
		} else {
			// 共线
			pts = append(pts, shifted[i-1].Pt2)
		}
	}
	pts = append(pts, shifted[len(shifted)-1].Pt2)
	if mitered, err := NewPolyline(pts); err == nil {
		return mitered
	}
	// 斜接点退化（急转弯）时直接使用各平移段的端点
	log.Debugf("degenerate miter when shifting %d points, fall back to blind shift", len(pl.pts))
	blind := make([]Point, 0, 2*len(shifted))
	for _, l := range shifted {
		blind = append(blind, l.Pt1, l.Pt2)
	}
	return MustNewPolyline(blind)
}

// TrySlice 截取弧长区间[start, end]内的子折线
// 功能：区间非法（start>=end、start<0或end超出总长）时返回ok=false
func (pl *Polyline) TrySlice(start, end float64) (*Polyline, bool) {
	length := pl.Length()
	if start < -epsilon || end > length+epsilon || end-start < epsilon {
		return nil, false
	}
	start = lo.Clamp(start, 0, length)
	end = lo.Clamp(end, 0, length)
	first, _ := pl.DistAlong(start)
	last, _ := pl.DistAlong(end)
	pts := []Point{first}
	for i, s := range pl.lengths {
		if s > start && s < end {
			pts = append(pts, pl.pts[i])
		}
	}
	pts = append(pts, last)
	sliced, err := NewPolyline(pts)
	if err != nil {
		return nil, false
	}
	return sliced, true
}

// Slice 同TrySlice，区间非法视为调用方违反约定，直接panic
func (pl *Polyline) Slice(start, end float64) *Polyline {
	sliced, ok := pl.TrySlice(start, end)
	if !ok {
		log.Panicf("bad slice [%v, %v] of polyline with length %v", start, end, pl.Length())
	}
	return sliced
}

// MakePolygons 将折线挤出为宽度为thickness的多边形
// 左右边界分别为向左、向右平移thickness/2的折线
func (pl *Polyline) MakePolygons(thickness float64) Polygon {
	left := pl.ShiftLeft(thickness / 2).Points()
	right := pl.ShiftRight(thickness / 2).Points()
	ring := make([]Point, 0, len(left)+len(right))
	ring = append(ring, left...)
	for i := len(right) - 1; i >= 0; i-- {
		ring = append(ring, right[i])
	}
	return Polygon{Points: ring}
}

// DashedPolygons 模拟虚线的一组矩形
// 功能：从起点开始每隔dashLen+separation放置一段长dashLen、宽width的虚线块
// 说明：惰性生成，只产生完整的虚线块，下一块会触及终点时停止
func (pl *Polyline) DashedPolygons(width, dashLen, separation float64) iter.Seq[Polygon] {
	total := pl.Length()
	return func(yield func(Polygon) bool) {
		if dashLen <= 0 || separation < 0 {
			return
		}
		for start := 0.0; start+dashLen < total; start += dashLen + separation {
			if !yield(pl.Slice(start, start+dashLen).MakePolygons(width)) {
				return
			}
		}
	}
}

// ToOrb 转换为orb.LineString
func (pl *Polyline) ToOrb() orb.LineString {
	return lo.Map(pl.pts, func(pt Point, _ int) orb.Point {
		return pt.ToOrb()
	})
}

// ApproxEq 两条折线的折点是否在容差内一一重合
func (pl *Polyline) ApproxEq(other *Polyline) bool {
	if len(pl.pts) != len(other.pts) {
		return false
	}
	for i := range pl.pts {
		if math.Abs(pl.pts[i].X-other.pts[i].X) > 1e-6 || math.Abs(pl.pts[i].Y-other.pts[i].Y) > 1e-6 {
			return false
		}
	}
	return true
}
