package entity

import (
	"github.com/tsinghua-fib-lab/lanemarking/utils/config"
)

// 标线生成对地图的只读查询能力，任何满足这些接口的地图实现都可以作为输入

// 路口查询
type IJunctionGetter interface {
	Junction(id int32) (IJunction, bool)
}

// 转向查询
type ITurnGetter interface {
	TurnsFromLane(laneID int32) []ITurn
}

// 同侧最近车道查询
type IClosestLaneFinder interface {
	FindClosestLane(laneID int32, types []LaneType) (ILane, bool)
}

// 标线生成所需的全部查询能力
type IMarkingMap interface {
	IJunctionGetter
	ITurnGetter
	IClosestLaneFinder
}

type ITaskContext interface {
	IMarkingMap

	LaneManager() ILaneManager
	RoadManager() IRoadManager
	JunctionManager() IJunctionManager
	TurnManager() ITurnManager
	RuntimeConfig() *config.RuntimeConfig
}
