package entity

import (
	"fmt"

	"github.com/tsinghua-fib-lab/lanemarking/utils/geometry"
)

// 地图模型常量
const (
	LaneThickness     = 2.5 // 车道宽度（绘制用的统一值）
	ParkingSpotLength = 6.4 // 单个停车位长度
)

// 方位常量
const (
	FORWARD  = 0 // 与道路中心线同向
	BACKWARD = 1 // 与道路中心线反向
)

// LaneType 车道类型
type LaneType int32

const (
	LaneTypeDriving LaneType = iota
	LaneTypeBus
	LaneTypeParking
	LaneTypeSidewalk
	LaneTypeBiking
)

var laneTypeNames = map[LaneType]string{
	LaneTypeDriving:  "driving",
	LaneTypeBus:      "bus",
	LaneTypeParking:  "parking",
	LaneTypeSidewalk: "sidewalk",
	LaneTypeBiking:   "biking",
}

func (t LaneType) String() string {
	if name, ok := laneTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("LaneType(%d)", int32(t))
}

// ParseLaneType 将输入数据中的名称解析为车道类型
func ParseLaneType(name string) (LaneType, error) {
	for t, n := range laneTypeNames {
		if n == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown lane type %q", name)
}

// JunctionType 路口控制类型
type JunctionType int32

const (
	JunctionTypeStopSign JunctionType = iota
	JunctionTypeTrafficSignal
	JunctionTypeBorder
)

var junctionTypeNames = map[JunctionType]string{
	JunctionTypeStopSign:      "stop_sign",
	JunctionTypeTrafficSignal: "traffic_signal",
	JunctionTypeBorder:        "border",
}

func (t JunctionType) String() string {
	if name, ok := junctionTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("JunctionType(%d)", int32(t))
}

// ParseJunctionType 将输入数据中的名称解析为路口控制类型
func ParseJunctionType(name string) (JunctionType, error) {
	for t, n := range junctionTypeNames {
		if n == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown junction type %q", name)
}

// entity/lane/lane.go的依赖倒置
type ILane interface {
	// 初始化

	SetParentRoadWhenInit(parent IRoad) // 设置lane所在road的指针

	// Print

	String() string

	// getter

	ID() int32                      // 获取Lane ID
	Type() LaneType                 // 获取Lane类型
	CenterLine() *geometry.Polyline // 获取Lane的中心线
	Length() float64                // 获取Lane长度
	ParentRoadID() int32            // 获取Lane所在Road的ID
	ParentRoad() IRoad              // 获取Lane所在的Road
	DstJunctionID() int32           // 获取Lane终点所在Junction的ID
	IsDriving() bool                // 检查是否是行车道
	NumberParkingSpots() int        // 停车道可容纳的车位数，非停车道为0

	// 根据s坐标计算位置与切向角度，越界panic
	DistAlong(s float64) (geometry.Point, geometry.Angle)
	// 根据s坐标计算位置与切向角度，越界返回false
	SafeDistAlong(s float64) (geometry.Point, geometry.Angle, bool)
}

// entity/road/road.go的依赖倒置
type IRoad interface {
	String() string

	ID() int32                      // 获取Road ID
	CenterLine() *geometry.Polyline // 获取Road的中心线
	ZOrder() int                    // 绘制层级
	Lanes() map[int32]ILane         // 获取Road的所有Lane(ID -> Lane)

	// Lane在Road中的方向与偏移量，每个方向上最左侧为0，往右侧递增
	DirAndOffset(laneID int32) (forward bool, offset int)
	// 检查Lane是否为承载道路中心线的唯一车道
	IsCanonicalLane(laneID int32) bool
	// 在同方向的车道中找到类型匹配且最近的另一条车道
	FindClosestLane(laneID int32, types []LaneType) (ILane, bool)
}

// entity/junction/junction.go的依赖倒置
type IJunction interface {
	ID() int32                        // 获取Junction ID
	Type() JunctionType               // 获取路口控制类型
	IsPriorityLane(laneID int32) bool // 停车让行路口中该车道是否享有优先权（无需停车）
}

// entity/turn/turn.go的依赖倒置
type ITurn interface {
	String() string

	Src() int32            // 来源Lane ID
	Dst() int32            // 目标Lane ID
	Angle() geometry.Angle // 转向角度
}
