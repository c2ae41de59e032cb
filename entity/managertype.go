package entity

import (
	"github.com/tsinghua-fib-lab/lanemarking/utils/input"
)

// Manager依赖倒置

// entity/lane/manager.go的依赖倒置
type ILaneManager interface {
	Init(pbs []input.Lane) error // 初始化

	// 输入Lane ID，查找Lane，如果不存在则panic
	Get(id int32) ILane
	// 输入Lane ID，查找Lane，如果不存在则返回error
	GetOrError(id int32) (ILane, error)
	// 按ID升序返回所有Lane
	Lanes() []ILane
}

// entity/road/manager.go的依赖倒置
type IRoadManager interface {
	Init(pbs []input.Road, laneManager ILaneManager) error // 初始化

	// 输入Road ID，查找Road，如果不存在则panic
	Get(id int32) IRoad
	// 输入Road ID，查找Road，如果不存在则返回error
	GetOrError(id int32) (IRoad, error)
}

// entity/junction/manager.go的依赖倒置
type IJunctionManager interface {
	Init(pbs []input.Junction, laneManager ILaneManager) error // 初始化

	// 输入Junction ID，查找Junction，如果不存在则panic
	Get(id int32) IJunction
	// 输入Junction ID，查找Junction，如果不存在则返回error
	GetOrError(id int32) (IJunction, error)
}

// entity/turn/manager.go的依赖倒置
type ITurnManager interface {
	Init(pbs []input.Turn, laneManager ILaneManager) error // 初始化

	// 从指定Lane出发的所有Turn，按目标Lane ID升序
	TurnsFromLane(laneID int32) []ITurn
}
