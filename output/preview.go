package output

import (
	"io"
	"math"

	"github.com/gogpu/gg"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"github.com/tsinghua-fib-lab/lanemarking/render"
	"github.com/tsinghua-fib-lab/lanemarking/utils/colors"
	"github.com/tsinghua-fib-lab/lanemarking/utils/geometry"
)

const (
	maxPreviewSide = 16384 // 预览图单边最大像素数

	arrowHeadLength = 0.5 // 箭头三角形的长度（米）
	arrowHeadWidth  = 0.5
)

var backgroundColor = colors.Grey(0.6)

// PreviewOptions 预览图参数
type PreviewOptions struct {
	Scale        float64 // 每米像素数
	Margin       float64 // 边距（像素）
	ShowMarkings bool    // 是否绘制标线，false时只绘制车道面
}

// previewer 世界坐标到像素坐标的变换，y轴方向与图像一致
type previewer struct {
	dc     *gg.Context
	origin orb.Point
	opts   PreviewOptions
}

func (p *previewer) px(pt geometry.Point) (float64, float64) {
	return (pt.X-p.origin.X())*p.opts.Scale + p.opts.Margin, (pt.Y-p.origin.Y())*p.opts.Scale + p.opts.Margin
}

func (p *previewer) fillPolygon(poly geometry.Polygon, c colors.Color) error {
	if len(poly.Points) < 3 {
		return nil
	}
	p.dc.SetRGBA(c.R, c.G, c.B, c.A)
	for i, pt := range poly.Points {
		x, y := p.px(pt)
		if i == 0 {
			p.dc.MoveTo(x, y)
		} else {
			p.dc.LineTo(x, y)
		}
	}
	p.dc.ClosePath()
	return p.dc.Fill()
}

func (p *previewer) strokeLine(l geometry.Line, c colors.Color, thickness float64, roundCap bool) error {
	p.dc.SetRGBA(c.R, c.G, c.B, c.A)
	p.dc.SetLineWidth(thickness * p.opts.Scale)
	if roundCap {
		p.dc.SetLineCap(gg.LineCapRound)
	} else {
		p.dc.SetLineCap(gg.LineCapButt)
	}
	x1, y1 := p.px(l.Pt1)
	x2, y2 := p.px(l.Pt2)
	p.dc.MoveTo(x1, y1)
	p.dc.LineTo(x2, y2)
	return p.dc.Stroke()
}

// arrowHead 箭头末端的三角形
func arrowHead(l geometry.Line) geometry.Polygon {
	back := l.Pt2.ProjectAway(arrowHeadLength, l.Angle().Opposite())
	base := geometry.PerpLine(geometry.NewLine(back, l.Pt2), arrowHeadWidth)
	return geometry.Polygon{Points: []geometry.Point{l.Pt2, base.Pt1, base.Pt2}}
}

func (p *previewer) drawMarking(m *render.Marking, scheme *colors.Scheme) error {
	c := m.Color(scheme)
	for _, poly := range m.Polygons {
		if err := p.fillPolygon(poly, c); err != nil {
			return err
		}
	}
	for _, l := range m.Lines {
		if err := p.strokeLine(l, c, m.Thickness, m.RoundCap); err != nil {
			return err
		}
		if m.Kind == render.MarkingArrow {
			if err := p.fillPolygon(arrowHead(l), c); err != nil {
				return err
			}
		}
	}
	return nil
}

// drawLane 绘制一条车道：先车道面，再在其上绘制标线
func (p *previewer) drawLane(v *render.LaneVisual, scheme *colors.Scheme) error {
	if err := p.fillPolygon(v.Polygon, v.BodyColor(scheme)); err != nil {
		return errors.Wrapf(err, "preview: lane %d", v.ID)
	}
	if !p.opts.ShowMarkings {
		return nil
	}
	for i := range v.Markings {
		if err := p.drawMarking(&v.Markings[i], scheme); err != nil {
			return errors.Wrapf(err, "preview: lane %d marking %d", v.ID, i)
		}
	}
	return nil
}

// bound 全部车道面与标线的外接矩形
func bound(visuals []*render.LaneVisual) orb.Bound {
	b := visuals[0].Bound()
	for _, v := range visuals {
		b = b.Union(v.Bound())
		for i := range v.Markings {
			b = b.Union(v.Markings[i].Bound())
		}
	}
	return b
}

// Preview 绘制预览图
// 功能：按传入顺序逐车道绘制车道面及其标线，层级高的车道整体覆盖层级低的车道
// 参数：visuals-车道绘制数据（应已按绘制层级排序，见Scene.Sorted），scheme-配色方案，opts-预览图参数
// 返回：绘制完成的画布，调用方负责Close；无车道或图像过大时返回error
func Preview(visuals []*render.LaneVisual, scheme *colors.Scheme, opts PreviewOptions) (*gg.Context, error) {
	if len(visuals) == 0 {
		return nil, errors.New("preview: no lanes to draw")
	}
	if opts.Scale <= 0 {
		return nil, errors.Errorf("preview: bad scale %v", opts.Scale)
	}
	b := bound(visuals)
	width := int(math.Ceil((b.Max.X()-b.Min.X())*opts.Scale + 2*opts.Margin))
	height := int(math.Ceil((b.Max.Y()-b.Min.Y())*opts.Scale + 2*opts.Margin))
	if width > maxPreviewSide || height > maxPreviewSide {
		return nil, errors.Errorf("preview: image %dx%d too large, lower the scale", width, height)
	}
	width, height = max(width, 1), max(height, 1)

	p := &previewer{
		dc:     gg.NewContext(width, height),
		origin: b.Min,
		opts:   opts,
	}
	p.dc.ClearWithColor(backgroundColor)
	for _, v := range visuals {
		if err := p.drawLane(v, scheme); err != nil {
			p.dc.Close()
			return nil, err
		}
	}
	log.Debugf("preview: %d lanes, %dx%d px", len(visuals), width, height)
	return p.dc, nil
}

// EncodePNG 绘制预览图并以PNG格式写入w
func EncodePNG(w io.Writer, visuals []*render.LaneVisual, scheme *colors.Scheme, opts PreviewOptions) error {
	dc, err := Preview(visuals, scheme, opts)
	if err != nil {
		return err
	}
	defer dc.Close()
	return errors.Wrap(dc.EncodePNG(w), "encode png")
}

// RenderPNG 绘制预览图并保存为PNG文件
func RenderPNG(path string, visuals []*render.LaneVisual, scheme *colors.Scheme, opts PreviewOptions) error {
	dc, err := Preview(visuals, scheme, opts)
	if err != nil {
		return err
	}
	defer dc.Close()
	if err := dc.SavePNG(path); err != nil {
		return errors.Wrapf(err, "save png %s", path)
	}
	log.Infof("preview written to %s (%dx%d)", path, dc.Width(), dc.Height())
	return nil
}
