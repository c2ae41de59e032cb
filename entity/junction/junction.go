package junction

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/lanemarking/entity"
	"github.com/tsinghua-fib-lab/lanemarking/utils/input"
)

// Junction 路口实体
// 功能：记录路口控制类型；停车让行路口额外记录无需停车的优先车道
type Junction struct {
	id            int32
	typ           entity.JunctionType
	priorityLanes map[int32]struct{} // 优先车道集合，仅对停车让行路口有意义
}

// newJunction 创建并初始化一个新的Junction实例
// 参数：base-基础Junction数据，laneManager-车道管理器（用于检查优先车道存在）
// 返回：初始化完成的Junction实例，控制类型未知或优先车道不存在时返回error
func newJunction(base input.Junction, laneManager entity.ILaneManager) (*Junction, error) {
	typ, err := entity.ParseJunctionType(base.Type)
	if err != nil {
		return nil, errors.Wrapf(err, "junction %d", base.ID)
	}
	j := &Junction{
		id:            base.ID,
		typ:           typ,
		priorityLanes: make(map[int32]struct{}, len(base.PriorityLanes)),
	}
	for _, laneID := range base.PriorityLanes {
		if _, err := laneManager.GetOrError(laneID); err != nil {
			return nil, errors.Wrapf(err, "junction %d priority lane", base.ID)
		}
		j.priorityLanes[laneID] = struct{}{}
	}
	if typ != entity.JunctionTypeStopSign && len(j.priorityLanes) > 0 {
		log.Warnf("Junction %d: priority lanes %v ignored for %v", j.id, lo.Keys(j.priorityLanes), typ)
	}
	return j, nil
}

func (j *Junction) String() string {
	return fmt.Sprintf("Junction %d", j.id)
}

// ID 获取Junction ID
func (j *Junction) ID() int32 {
	if j == nil {
		return -1
	}
	return j.id
}

// Type 获取路口控制类型
func (j *Junction) Type() entity.JunctionType {
	return j.typ
}

// IsPriorityLane 停车让行路口中该车道是否享有优先权
func (j *Junction) IsPriorityLane(laneID int32) bool {
	if j.typ != entity.JunctionTypeStopSign {
		return false
	}
	_, ok := j.priorityLanes[laneID]
	return ok
}
