// 场景的外部输出：GeoJSON导出与PNG预览图
package output

import (
	"os"

	geojson "github.com/paulmach/go.geojson"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/lanemarking/render"
	"github.com/tsinghua-fib-lab/lanemarking/utils/colors"
	"github.com/tsinghua-fib-lab/lanemarking/utils/geometry"
)

// 车道面要素的kind属性
const KindLaneBody = "lane_body"

func coords(pts []orb.Point) [][]float64 {
	return lo.Map(pts, func(p orb.Point, _ int) []float64 {
		return []float64{p.X(), p.Y()}
	})
}

func lineCoords(l geometry.Line) [][]float64 {
	return coords(l.ToOrb())
}

func polygonCoords(p geometry.Polygon) [][][]float64 {
	return [][][]float64{coords(p.Ring())}
}

// ToGeoJSON 将车道绘制数据转换为GeoJSON要素集合
// 功能：每条车道输出一个车道面多边形要素，每个标线图元输出一个要素
// 参数：visuals-车道绘制数据（按绘制顺序），scheme-配色方案
// 返回：要素集合；属性包括lane_id、kind、color_key、color、thickness、z_order，标线另有index（在该车道标线中的顺序）
// 说明：线段类标线为MultiLineString，多边形类为MultiPolygon，箭头为底座多边形与箭头线段组成的GeometryCollection
func ToGeoJSON(visuals []*render.LaneVisual, scheme *colors.Scheme) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, v := range visuals {
		body := geojson.NewPolygonFeature(polygonCoords(v.Polygon))
		body.SetProperty("lane_id", v.ID)
		body.SetProperty("lane_type", v.Type.String())
		body.SetProperty("kind", KindLaneBody)
		body.SetProperty("color_key", v.BodyColorKey())
		body.SetProperty("color", colors.Hex(v.BodyColor(scheme)))
		body.SetProperty("z_order", v.ZOrder)
		fc.AddFeature(body)

		for i := range v.Markings {
			m := &v.Markings[i]
			f := markingFeature(m)
			f.SetProperty("lane_id", v.ID)
			f.SetProperty("kind", m.Kind.String())
			f.SetProperty("index", i)
			f.SetProperty("color_key", m.ColorKey)
			f.SetProperty("color", colors.Hex(m.Color(scheme)))
			f.SetProperty("thickness", m.Thickness)
			f.SetProperty("z_order", v.ZOrder)
			if m.RoundCap {
				f.SetProperty("round_cap", true)
			}
			fc.AddFeature(f)
		}
	}
	return fc
}

func markingFeature(m *render.Marking) *geojson.Feature {
	switch m.Kind {
	case render.MarkingLine:
		return geojson.NewLineStringFeature(lineCoords(m.Lines[0]))
	case render.MarkingLineGroup:
		return geojson.NewMultiLineStringFeature(lo.Map(m.Lines, func(l geometry.Line, _ int) [][]float64 {
			return lineCoords(l)
		})...)
	case render.MarkingPolygon:
		return geojson.NewPolygonFeature(polygonCoords(m.Polygons[0]))
	case render.MarkingPolygonGroup:
		return geojson.NewMultiPolygonFeature(lo.Map(m.Polygons, func(p geometry.Polygon, _ int) [][][]float64 {
			return polygonCoords(p)
		})...)
	case render.MarkingArrow:
		return geojson.NewCollectionFeature(
			geojson.NewPolygonGeometry(polygonCoords(m.Polygons[0])),
			geojson.NewLineStringGeometry(lineCoords(m.Lines[0])),
		)
	default:
		log.Panicf("unknown marking kind %v", m.Kind)
		return nil
	}
}

// WriteGeoJSON 将车道绘制数据导出为GeoJSON文件
func WriteGeoJSON(path string, visuals []*render.LaneVisual, scheme *colors.Scheme) error {
	fc := ToGeoJSON(visuals, scheme)
	data, err := fc.MarshalJSON()
	if err != nil {
		return errors.Wrap(err, "marshal geojson")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "write geojson %s", path)
	}
	log.Infof("geojson written to %s: %d features", path, len(fc.Features))
	return nil
}
