package output_test

import (
	"bytes"
	"encoding/json"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/lanemarking/entity"
	"github.com/tsinghua-fib-lab/lanemarking/output"
	"github.com/tsinghua-fib-lab/lanemarking/render"
	"github.com/tsinghua-fib-lab/lanemarking/utils/colors"
	"github.com/tsinghua-fib-lab/lanemarking/utils/geometry"
)

// 沿x轴长10米的行车道，带一条中心线与一个转向箭头
func testVisuals() []*render.LaneVisual {
	line := geometry.MustNewPolyline([]geometry.Point{{X: 0, Y: 0}, {X: 10, Y: 0}})
	base := line.Slice(3, 5)
	return []*render.LaneVisual{{
		ID:      7,
		Type:    entity.LaneTypeDriving,
		Polygon: line.MakePolygons(entity.LaneThickness),
		Markings: []render.Marking{
			{
				Kind:         render.MarkingLineGroup,
				ColorKey:     render.KeyRoadCenterLine,
				DefaultColor: colors.Yellow,
				Thickness:    render.BigArrowThickness,
				RoundCap:     true,
				Lines:        line.Lines(),
			},
			{
				Kind:         render.MarkingArrow,
				ColorKey:     render.KeyTurnRestrictions,
				DefaultColor: colors.White,
				Thickness:    0.05,
				Lines:        []geometry.Line{geometry.NewLine(base.LastPt(), geometry.Point{X: 6.25, Y: 0})},
				Polygons:     []geometry.Polygon{base.MakePolygons(0.1)},
			},
		},
		ZOrder: 2,
	}}
}

func TestToGeoJSON(t *testing.T) {
	scheme, err := colors.NewScheme(map[string]string{render.KeyRoadCenterLine: "#ff8800"})
	require.NoError(t, err)

	fc := output.ToGeoJSON(testVisuals(), scheme)
	require.Len(t, fc.Features, 3)

	body := fc.Features[0]
	assert.True(t, body.Geometry.IsPolygon())
	assert.Equal(t, output.KindLaneBody, body.Properties["kind"])
	assert.Equal(t, "driving lane", body.Properties["color_key"])
	assert.Equal(t, "#000000", body.Properties["color"])
	// 闭合环：4个顶点 + 回到起点
	assert.Len(t, body.Geometry.Polygon[0], 5)

	center := fc.Features[1]
	assert.True(t, center.Geometry.IsMultiLineString())
	assert.Equal(t, "line_group", center.Properties["kind"])
	assert.Equal(t, "#ff8800", center.Properties["color"])
	assert.Equal(t, true, center.Properties["round_cap"])
	assert.Equal(t, 0, center.Properties["index"])

	arrow := fc.Features[2]
	assert.True(t, arrow.Geometry.IsCollection())
	assert.Len(t, arrow.Geometry.Geometries, 2)
	assert.Equal(t, "arrow", arrow.Properties["kind"])
	assert.Equal(t, "#ffffff", arrow.Properties["color"])

	data, err := fc.MarshalJSON()
	require.NoError(t, err)
	var decoded struct {
		Features []struct {
			Properties map[string]any `json:"properties"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded.Features, 3)
	for _, f := range decoded.Features {
		assert.Equal(t, float64(7), f.Properties["lane_id"])
		assert.Equal(t, float64(2), f.Properties["z_order"])
	}
}

func TestWriteGeoJSON(t *testing.T) {
	scheme, err := colors.NewScheme(nil)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "markings.geojson")
	require.NoError(t, output.WriteGeoJSON(path, testVisuals(), scheme))

	err = output.WriteGeoJSON(filepath.Join(t.TempDir(), "missing", "x.geojson"), testVisuals(), scheme)
	assert.Error(t, err)
}

func TestPreviewSize(t *testing.T) {
	scheme, err := colors.NewScheme(nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	opts := output.PreviewOptions{Scale: 10, Margin: 5, ShowMarkings: true}
	require.NoError(t, output.EncodePNG(&buf, testVisuals(), scheme, opts))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	// x: [0, 10]，y: [-1.25, 1.25]
	assert.Equal(t, 110, img.Bounds().Dx())
	assert.Equal(t, 35, img.Bounds().Dy())
}

func TestPreviewErrors(t *testing.T) {
	scheme, err := colors.NewScheme(nil)
	require.NoError(t, err)

	_, err = output.Preview(nil, scheme, output.PreviewOptions{Scale: 10})
	assert.Error(t, err)
	_, err = output.Preview(testVisuals(), scheme, output.PreviewOptions{Scale: 0})
	assert.Error(t, err)
	_, err = output.Preview(testVisuals(), scheme, output.PreviewOptions{Scale: 1e4})
	assert.Error(t, err)
}

func TestRenderPNG(t *testing.T) {
	scheme, err := colors.NewScheme(nil)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "preview.png")
	require.NoError(t, output.RenderPNG(path, testVisuals(), scheme, output.PreviewOptions{Scale: 4, Margin: 2}))
	assert.FileExists(t, path)
}

// 高架车道（z=1）跨过地面车道（z=0）时，地面车道的标线不应画在高架车道面之上
func TestPreviewLayering(t *testing.T) {
	scheme, err := colors.NewScheme(nil)
	require.NoError(t, err)

	ground := geometry.MustNewPolyline([]geometry.Point{{X: 0, Y: 0}, {X: 20, Y: 0}})
	dash := geometry.MustNewPolyline([]geometry.Point{{X: 8, Y: 0}, {X: 12, Y: 0}})
	overpass := geometry.MustNewPolyline([]geometry.Point{{X: 10, Y: -5}, {X: 10, Y: 5}})
	visuals := []*render.LaneVisual{
		{
			ID:      1,
			Type:    entity.LaneTypeDriving,
			Polygon: ground.MakePolygons(entity.LaneThickness),
			Markings: []render.Marking{{
				Kind:         render.MarkingPolygonGroup,
				ColorKey:     render.KeyDashedLaneLine,
				DefaultColor: colors.White,
				Polygons:     []geometry.Polygon{dash.MakePolygons(1)},
			}},
		},
		{
			ID:      2,
			Type:    entity.LaneTypeDriving,
			Polygon: overpass.MakePolygons(entity.LaneThickness),
			ZOrder:  1,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, output.EncodePNG(&buf, visuals, scheme, output.PreviewOptions{Scale: 10, ShowMarkings: true}))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	// 原点为(0, -5)，世界坐标(10, 0)对应像素(100, 50)
	r, g, b, _ := img.At(100, 50).RGBA()
	assert.Zero(t, r>>8, "overpass body must cover the dash")
	assert.Zero(t, g>>8)
	assert.Zero(t, b>>8)
	// 高架车道之外仍可见虚线
	r, _, _, _ = img.At(85, 50).RGBA()
	assert.Equal(t, uint32(255), r>>8)
}
