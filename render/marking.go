package render

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/tsinghua-fib-lab/lanemarking/utils/colors"
	"github.com/tsinghua-fib-lab/lanemarking/utils/geometry"
)

// MarkingKind 标线图元的类别
type MarkingKind uint8

const (
	MarkingLine         MarkingKind = iota // 单条线段
	MarkingPolygon                         // 单个填充多边形
	MarkingLineGroup                       // 一组同样式的线段
	MarkingPolygonGroup                    // 一组同颜色的填充多边形
	MarkingArrow                           // 填充的底座多边形 + 箭头线段
)

func (k MarkingKind) String() string {
	switch k {
	case MarkingLine:
		return "line"
	case MarkingPolygon:
		return "polygon"
	case MarkingLineGroup:
		return "line_group"
	case MarkingPolygonGroup:
		return "polygon_group"
	case MarkingArrow:
		return "arrow"
	default:
		return fmt.Sprintf("MarkingKind(%d)", uint8(k))
	}
}

// Marking 已定位的标线图元
// 功能：纯数据，按Kind携带预先计算好的线段/多边形，以及语义配色键与默认颜色
// 说明：创建后不可修改；绘制由外部渲染器完成
type Marking struct {
	Kind         MarkingKind
	ColorKey     string       // 语义配色键，由外部配色方案映射为实际颜色
	DefaultColor colors.Color // 配色方案未配置该键时使用的颜色
	Thickness    float64      // 线宽（线段与箭头），多边形为0
	RoundCap     bool         // 线段端点是否为圆头

	Lines    []geometry.Line    // MarkingLine/MarkingLineGroup的线段，MarkingArrow的箭头
	Polygons []geometry.Polygon // MarkingPolygon/MarkingPolygonGroup的多边形，MarkingArrow的底座
}

func newLineMarking(key string, def colors.Color, thickness float64, line geometry.Line) Marking {
	return Marking{
		Kind:         MarkingLine,
		ColorKey:     key,
		DefaultColor: def,
		Thickness:    thickness,
		Lines:        []geometry.Line{line},
	}
}

func newLineGroupMarking(key string, def colors.Color, thickness float64, lines []geometry.Line) Marking {
	return Marking{
		Kind:         MarkingLineGroup,
		ColorKey:     key,
		DefaultColor: def,
		Thickness:    thickness,
		Lines:        lines,
	}
}

func newPolygonGroupMarking(key string, def colors.Color, polygons []geometry.Polygon) Marking {
	return Marking{
		Kind:         MarkingPolygonGroup,
		ColorKey:     key,
		DefaultColor: def,
		Polygons:     polygons,
	}
}

func newArrowMarking(key string, def colors.Color, thickness float64, base geometry.Polygon, arrow geometry.Line) Marking {
	return Marking{
		Kind:         MarkingArrow,
		ColorKey:     key,
		DefaultColor: def,
		Thickness:    thickness,
		Lines:        []geometry.Line{arrow},
		Polygons:     []geometry.Polygon{base},
	}
}

// Color 根据配色方案解析实际颜色
func (m *Marking) Color(scheme *colors.Scheme) colors.Color {
	return scheme.Get(m.ColorKey, m.DefaultColor)
}

// Bound 外接矩形（不含线宽）
func (m *Marking) Bound() orb.Bound {
	var pts orb.MultiPoint
	for _, l := range m.Lines {
		pts = append(pts, l.Pt1.ToOrb(), l.Pt2.ToOrb())
	}
	for _, p := range m.Polygons {
		pts = append(pts, p.Ring()...)
	}
	return pts.Bound()
}
