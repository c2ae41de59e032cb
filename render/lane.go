package render

import (
	"github.com/paulmach/orb"
	"github.com/tsinghua-fib-lab/lanemarking/entity"
	"github.com/tsinghua-fib-lab/lanemarking/utils/colors"
	"github.com/tsinghua-fib-lab/lanemarking/utils/geometry"
)

const (
	BigArrowThickness = 0.5 // 道路中心线线宽

	sidewalkLineThickness = 0.25

	parkingLineThickness = 0.25
	parkingLegLength     = 1.0 // 车位括号每条边的长度
	parkingInset         = 0.4 // 括号锚点相对中心线的偏移（车道宽度的比例）

	dashThickness  = 0.25
	dashLength     = 1.0
	dashSeparation = 1.5

	stopLineThickness = 0.45
	stopLineFromEnd   = 1.0 // 停止线距车道终点的距离

	turnMarkingMinLength = 7.0 // 低于该长度的车道不绘制转向箭头
	turnBaseFromEnd      = 7.0 // 箭头底座起点距车道终点的距离
	turnBaseToEnd        = 5.0 // 箭头底座终点距车道终点的距离
	turnBaseThickness    = 0.1
	turnArrowThickness   = 0.05
)

// 标线语义配色键
const (
	KeyRoadCenterLine   = "road center line"
	KeySidewalkLines    = "sidewalk lines"
	KeyParkingLine      = "parking line"
	KeyDashedLaneLine   = "dashed lane line"
	KeyStopLine         = "stop line for lane"
	KeyTurnRestrictions = "turn restrictions on lane"
)

// 车道面的语义配色键与默认颜色
var laneBodyColors = map[entity.LaneType]struct {
	key string
	def colors.Color
}{
	entity.LaneTypeDriving:  {"driving lane", colors.Black},
	entity.LaneTypeBus:      {"bus lane", colors.RGB(190, 74, 76)},
	entity.LaneTypeParking:  {"parking lane", colors.Grey(0.2)},
	entity.LaneTypeSidewalk: {"sidewalk", colors.Grey(0.8)},
	entity.LaneTypeBiking:   {"bike lane", colors.RGB(15, 125, 75)},
}

// LaneVisual 车道的静态绘制数据
// 功能：车道面多边形、按绘制顺序排列的标线与绘制层级
// 说明：由车道与道路的快照一次性生成，此后不可修改；几何变化时需整体重建
type LaneVisual struct {
	ID       int32
	Type     entity.LaneType
	Polygon  geometry.Polygon // 车道面
	Markings []Marking        // 标线，按绘制顺序
	ZOrder   int              // 绘制层级，等于所在道路的层级
}

// BodyColor 根据配色方案解析车道面颜色
func (v *LaneVisual) BodyColor(scheme *colors.Scheme) colors.Color {
	c := laneBodyColors[v.Type]
	return scheme.Get(c.key, c.def)
}

// BodyColorKey 车道面的语义配色键
func (v *LaneVisual) BodyColorKey() string {
	return laneBodyColors[v.Type].key
}

// Bound 车道面的外接矩形
func (v *LaneVisual) Bound() orb.Bound {
	return v.Polygon.Bound()
}

// BuildLaneVisual 生成车道的全部静态标线
// 功能：计算车道面多边形，并按车道类型与拓扑关系生成各类标线
// 参数：lane-车道，road-车道所在道路，m-地图查询能力（路口、转向、同侧最近车道）
// 返回：LaneVisual；无法生成的标线直接省略，不产生错误
// 算法说明：
// 1. 车道面：中心线挤出为车道宽度的多边形
// 2. 承载中心线的车道：沿道路（而非车道）中心线绘制粗线
// 3. 按车道类型：人行道-盲道砖纹，停车道-车位括号，行车道/公交车道-车道分隔虚线与转向箭头，自行车道-无
// 4. 行车道终点为停车让行路口时：停止线
func BuildLaneVisual(lane entity.ILane, road entity.IRoad, m entity.IMarkingMap) *LaneVisual {
	if lane.ParentRoadID() != road.ID() {
		log.Panicf("%v is not in %v", lane, road)
	}
	markings := make([]Marking, 0)
	if road.IsCanonicalLane(lane.ID()) {
		centerLine := newLineGroupMarking(KeyRoadCenterLine, colors.Yellow, BigArrowThickness, road.CenterLine().Lines())
		centerLine.RoundCap = true
		markings = append(markings, centerLine)
	}
	switch lane.Type() {
	case entity.LaneTypeSidewalk:
		if lines := sidewalkLines(lane); len(lines) > 0 {
			markings = append(markings, newLineGroupMarking(KeySidewalkLines, colors.Grey(0.7), sidewalkLineThickness, lines))
		}
	case entity.LaneTypeParking:
		if lines := parkingLines(lane); len(lines) > 0 {
			markings = append(markings, newLineGroupMarking(KeyParkingLine, colors.White, parkingLineThickness, lines))
		}
	case entity.LaneTypeDriving, entity.LaneTypeBus:
		if divider, ok := drivingLines(lane, road); ok {
			markings = append(markings, divider)
		}
		markings = append(markings, turnMarkings(lane, m)...)
	case entity.LaneTypeBiking:
	}
	if lane.IsDriving() {
		if j, ok := m.Junction(lane.DstJunctionID()); ok && j.Type() == entity.JunctionTypeStopSign {
			if stopLine, ok := stopSignLine(lane, road, j); ok {
				markings = append(markings, stopLine)
			}
		}
	}
	return &LaneVisual{
		ID:       lane.ID(),
		Type:     lane.Type(),
		Polygon:  lane.CenterLine().MakePolygons(entity.LaneThickness),
		Markings: markings,
		ZOrder:   road.ZOrder(),
	}
}

// sidewalkLines 人行道盲道砖纹
// 每隔一个车道宽度放置一条垂直短线，首尾各留出一个间隔以远离路口
func sidewalkLines(lane entity.ILane) []geometry.Line {
	tileEvery := entity.LaneThickness
	length := lane.Length()

	lines := make([]geometry.Line, 0)
	for distAlong := tileEvery; distAlong < length-tileEvery; distAlong += tileEvery {
		pt, angle := lane.DistAlong(distAlong)
		// 向前投影任意距离得到方向线段
		pt2 := pt.ProjectAway(1, angle)
		lines = append(lines, geometry.PerpLine(geometry.NewLine(pt, pt2), entity.LaneThickness))
	}
	return lines
}

// parkingLines 停车位括号
// 功能：在每个车位分界处画"T"形括号：一条沿垂线的竖边与沿车道方向前后各一条横边
// 返回：车位数为n>0时共3*(n+1)条线段，n=0时为空
func parkingLines(lane entity.ILane) []geometry.Line {
	numSpots := lane.NumberParkingSpots()
	if numSpots == 0 {
		return nil
	}
	lines := make([]geometry.Line, 0, 3*(numSpots+1))
	for idx := 0; idx <= numSpots; idx++ {
		pt, laneAngle := lane.DistAlong(entity.ParkingSpotLength * (1 + float64(idx)))
		perpAngle := laneAngle.RotateDegs(270)
		// 移到车道外侧；略向内收，避免与相邻车道的线重叠
		tPt := pt.ProjectAway(entity.LaneThickness*parkingInset, perpAngle)
		// 竖边
		p1 := tPt.ProjectAway(parkingLegLength, perpAngle.Opposite())
		lines = append(lines, geometry.NewLine(tPt, p1))
		// 前横边
		p2 := tPt.ProjectAway(parkingLegLength, laneAngle)
		lines = append(lines, geometry.NewLine(tPt, p2))
		// 后横边
		p3 := tPt.ProjectAway(parkingLegLength, laneAngle.Opposite())
		lines = append(lines, geometry.NewLine(tPt, p3))
	}
	return lines
}

// drivingLines 车道左侧的白色分隔虚线
// 每个方向最左侧的车道不绘制（左侧为道路中心线）；左边线不足两个虚线间隔时不绘制
func drivingLines(lane entity.ILane, road entity.IRoad) (Marking, bool) {
	if _, offset := road.DirAndOffset(lane.ID()); offset == 0 {
		return Marking{}, false
	}
	laneEdge := lane.CenterLine().ShiftLeft(entity.LaneThickness / 2)
	if laneEdge.Length() < 2*dashSeparation {
		log.Debugf("%v: too short for dashed line", lane)
		return Marking{}, false
	}
	// 虚线不要太靠近两端
	trimmed, ok := laneEdge.TrySlice(dashSeparation, laneEdge.Length()-dashSeparation)
	if !ok {
		return Marking{}, false
	}
	polygons := make([]geometry.Polygon, 0)
	for p := range trimmed.DashedPolygons(dashThickness, dashLength, dashSeparation) {
		polygons = append(polygons, p)
	}
	if len(polygons) == 0 {
		return Marking{}, false
	}
	return newPolygonGroupMarking(KeyDashedLaneLine, colors.White, polygons), true
}

// stopSignLine 停车让行路口前的停止线
// 优先车道不绘制；承载中心线的车道向右让出半个中心线宽度，避免压住黄线
func stopSignLine(lane entity.ILane, road entity.IRoad, j entity.IJunction) (Marking, bool) {
	if j.IsPriorityLane(lane.ID()) {
		return Marking{}, false
	}
	pt1, angle, ok := lane.SafeDistAlong(lane.Length() - stopLineFromEnd)
	if !ok {
		log.Debugf("%v: too short for stop line", lane)
		return Marking{}, false
	}
	pt2 := pt1.ProjectAway(1, angle)
	var line geometry.Line
	if road.IsCanonicalLane(lane.ID()) {
		line = geometry.PerpLine(
			geometry.NewLine(pt1, pt2).ShiftRight(BigArrowThickness/2),
			entity.LaneThickness-BigArrowThickness,
		)
	} else {
		line = geometry.PerpLine(geometry.NewLine(pt1, pt2), entity.LaneThickness)
	}
	return newLineMarking(KeyStopLine, colors.Red, stopLineThickness, line), true
}

// turnMarkings 车道末端的转向箭头
// 同方向没有其他行车道时不需要区分转向，不绘制
func turnMarkings(lane entity.ILane, m entity.IMarkingMap) []Marking {
	results := make([]Marking, 0)
	if _, ok := m.FindClosestLane(lane.ID(), []entity.LaneType{entity.LaneTypeDriving}); !ok {
		return results
	}
	for _, turn := range m.TurnsFromLane(lane.ID()) {
		if marking, ok := turnMarking(lane, turn); ok {
			results = append(results, marking)
		}
	}
	return results
}

func turnMarking(lane entity.ILane, turn entity.ITurn) (Marking, bool) {
	length := lane.Length()
	if length < turnMarkingMinLength {
		return Marking{}, false
	}
	commonBase := lane.CenterLine().Slice(length-turnBaseFromEnd, length-turnBaseToEnd)
	basePolygon := commonBase.MakePolygons(turnBaseThickness)
	turnLine := geometry.NewLine(
		commonBase.LastPt(),
		commonBase.LastPt().ProjectAway(entity.LaneThickness/2, turn.Angle()),
	)
	return newArrowMarking(KeyTurnRestrictions, colors.White, turnArrowThickness, basePolygon, turnLine), true
}
