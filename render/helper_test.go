package render_test

import (
	"math"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/lanemarking/entity"
	"github.com/tsinghua-fib-lab/lanemarking/render"
	"github.com/tsinghua-fib-lab/lanemarking/task"
	"github.com/tsinghua-fib-lab/lanemarking/utils/config"
	"github.com/tsinghua-fib-lab/lanemarking/utils/geometry"
	"github.com/tsinghua-fib-lab/lanemarking/utils/input"
	"github.com/tsinghua-fib-lab/lanemarking/utils/randengine"
)

// 沿x轴方向的水平线
func hline(x0, x1, y float64) [][]float64 {
	return [][]float64{{x0, y}, {x1, y}}
}

func toXY(pts []geometry.Point) [][]float64 {
	return lo.Map(pts, func(p geometry.Point, _ int) []float64 {
		return []float64{p.X, p.Y}
	})
}

// 路口100前的道路1（正向车道10、11，反向车道12）与路口另一侧的道路2（车道20、21）
// 道路1的车道终点为停车让行路口100，priority为其中的优先车道
func intersectionMap(priority ...int32) *input.Map {
	return &input.Map{
		Lanes: []input.Lane{
			{ID: 10, Type: "driving", CenterLine: hline(0, 20, 1.25), Road: 1, DstJunction: 100},
			{ID: 11, Type: "driving", CenterLine: hline(0, 20, 3.75), Road: 1, DstJunction: 100},
			{ID: 12, Type: "driving", CenterLine: hline(20, 0, -1.25), Road: 1, DstJunction: 200},
			{ID: 20, Type: "driving", CenterLine: hline(24, 44, 1.25), Road: 2, DstJunction: 200},
			{ID: 21, Type: "driving", CenterLine: hline(24, 44, 3.75), Road: 2, DstJunction: 200},
		},
		Roads: []input.Road{
			{ID: 1, CenterLine: hline(0, 20, 0), ForwardLanes: []int32{10, 11}, BackwardLanes: []int32{12}},
			{ID: 2, CenterLine: hline(24, 44, 0), ForwardLanes: []int32{20, 21}, ZOrder: -1},
		},
		Junctions: []input.Junction{
			{ID: 100, Type: "stop_sign", PriorityLanes: priority},
			{ID: 200, Type: "border"},
		},
		Turns: []input.Turn{
			{Src: 11, Dst: 21},
			{Src: 11, Dst: 20},
			{Src: 11, Dst: 21},
			{Src: 10, Dst: 20},
		},
	}
}

// 单条道路，车道依次排在正向，均以停车让行路口1为终点
func singleRoadMap(lanes ...input.Lane) *input.Map {
	m := &input.Map{
		Roads:     []input.Road{{ID: 1, CenterLine: hline(0, 100, 0)}},
		Junctions: []input.Junction{{ID: 1, Type: "stop_sign"}},
	}
	for i, l := range lanes {
		l.Road = 1
		l.DstJunction = 1
		if l.CenterLine == nil {
			l.CenterLine = hline(0, 20, (float64(i)+0.5)*entity.LaneThickness)
		}
		m.Lanes = append(m.Lanes, l)
		m.Roads[0].ForwardLanes = append(m.Roads[0].ForwardLanes, l.ID)
	}
	return m
}

var laneTypeNames = []string{"driving", "bus", "parking", "sidewalk", "biking"}

// randomMap 随机生成若干条互不相连的弯曲道路，车道类型、路口类型、优先车道与转向均随机
func randomMap(e *randengine.Engine, numRoads int) *input.Map {
	m := &input.Map{}
	nextLaneID := int32(1)
	for r := 1; r <= numRoads; r++ {
		roadID := int32(r)
		junctionID := 1000 + roadID
		start := geometry.Point{X: e.Uniform(0, 1000), Y: e.Uniform(0, 1000)}
		center := geometry.MustNewPolyline(e.Walk(start, geometry.Angle(e.Uniform(0, 2*math.Pi)), 1+e.Intn(4), 5, 10, 15))

		road := input.Road{ID: roadID, CenterLine: toXY(center.Points()), ZOrder: e.Intn(3) - 1}
		junction := input.Junction{
			ID:   junctionID,
			Type: []string{"stop_sign", "traffic_signal", "border"}[e.DiscreteDistribution([]float64{2, 1, 1})],
		}
		nf, nb := e.Intn(4), e.Intn(3)
		if nf+nb == 0 {
			nf = 1
		}
		addLane := func(pts []geometry.Point) int32 {
			id := nextLaneID
			nextLaneID++
			m.Lanes = append(m.Lanes, input.Lane{
				ID:          id,
				Type:        laneTypeNames[e.DiscreteDistribution([]float64{4, 1, 1, 1, 1})],
				CenterLine:  toXY(pts),
				Road:        roadID,
				DstJunction: junctionID,
			})
			if e.PTrue(0.3) {
				junction.PriorityLanes = append(junction.PriorityLanes, id)
			}
			return id
		}
		for i := range nf {
			pts := center.ShiftRight((float64(i) + 0.5) * entity.LaneThickness).Points()
			road.ForwardLanes = append(road.ForwardLanes, addLane(pts))
		}
		for i := range nb {
			pts := center.ShiftLeft((float64(i) + 0.5) * entity.LaneThickness).Points()
			road.BackwardLanes = append(road.BackwardLanes, addLane(lo.Reverse(pts)))
		}
		m.Roads = append(m.Roads, road)
		m.Junctions = append(m.Junctions, junction)
	}
	for _, l := range m.Lanes {
		for range e.Intn(3) {
			m.Turns = append(m.Turns, input.Turn{Src: l.ID, Dst: int32(1 + e.Intn(len(m.Lanes)))})
		}
	}
	return m
}

// newMap 校验并构建地图，返回可供标线生成使用的任务上下文
func newMap(t *testing.T, m *input.Map) *task.Context {
	t.Helper()
	require.NoError(t, input.Validate(m))
	ctx, err := task.NewContextFromMap(m, config.Config{})
	require.NoError(t, err)
	require.NoError(t, ctx.Init())
	return ctx
}

func buildVisual(ctx *task.Context, laneID int32) *render.LaneVisual {
	l := ctx.LaneManager().Get(laneID)
	return render.BuildLaneVisual(l, ctx.RoadManager().Get(l.ParentRoadID()), ctx)
}

func colorKeys(v *render.LaneVisual) []string {
	return lo.Map(v.Markings, func(m render.Marking, _ int) string {
		return m.ColorKey
	})
}

func findMarking(v *render.LaneVisual, key string) (render.Marking, bool) {
	return lo.Find(v.Markings, func(m render.Marking) bool {
		return m.ColorKey == key
	})
}
