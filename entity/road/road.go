package road

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/lanemarking/entity"
	"github.com/tsinghua-fib-lab/lanemarking/utils/geometry"
	"github.com/tsinghua-fib-lab/lanemarking/utils/input"
)

// lane在道路横截面上的位置
type laneSlot struct {
	dir    int // entity.FORWARD/entity.BACKWARD
	offset int // 同方向中从左到右的索引
}

// Road 道路实体
// 功能：表示地图中的道路，包含中心线、两个方向的车道集合与绘制层级
type Road struct {
	id     int32
	line   *geometry.Polyline // 道路中心线
	zOrder int                // 绘制层级

	children [2][]entity.ILane     // [FORWARD/BACKWARD]车道，按从左到右排序
	lanes    map[int32]entity.ILane // 车道id->车道指针映射表
	slots    map[int32]laneSlot     // 车道id->横截面位置
}

// newRoad 创建并初始化一个新的Road实例
// 功能：根据基础数据创建Road对象，建立双向车道列表并回填车道的所在道路
// 参数：base-基础Road数据，laneManager-车道管理器
// 返回：初始化完成的Road实例，中心线退化时返回error
func newRoad(base input.Road, laneManager entity.ILaneManager) (*Road, error) {
	line, err := geometry.NewPolyline(lo.Map(base.CenterLine, func(xy []float64, _ int) geometry.Point {
		return geometry.Point{X: xy[0], Y: xy[1]}
	}))
	if err != nil {
		return nil, errors.Wrapf(err, "road %d center line", base.ID)
	}
	r := &Road{
		id:     base.ID,
		line:   line,
		zOrder: base.ZOrder,
		lanes:  make(map[int32]entity.ILane),
		slots:  make(map[int32]laneSlot),
	}
	for dir, laneIDs := range [2][]int32{base.ForwardLanes, base.BackwardLanes} {
		for offset, laneID := range laneIDs {
			lane, err := laneManager.GetOrError(laneID)
			if err != nil {
				return nil, errors.Wrapf(err, "road %d", base.ID)
			}
			lane.SetParentRoadWhenInit(r)
			r.children[dir] = append(r.children[dir], lane)
			r.lanes[laneID] = lane
			r.slots[laneID] = laneSlot{dir: dir, offset: offset}
		}
	}
	return r, nil
}

// ID 获取Road的唯一标识符
// 返回：Road的ID，如果Road为nil则返回-1
func (r *Road) ID() int32 {
	if r == nil {
		return -1
	}
	return r.id
}

// String 获取Road的字符串表示
func (r *Road) String() string {
	return fmt.Sprintf("Road %d", r.id)
}

// CenterLine 获取Road中心线
func (r *Road) CenterLine() *geometry.Polyline {
	return r.line
}

// ZOrder 获取Road的绘制层级，值越大越靠上（如立交桥）
func (r *Road) ZOrder() int {
	return r.zOrder
}

// Lanes 获取Road的所有车道映射
func (r *Road) Lanes() map[int32]entity.ILane {
	return r.lanes
}

// DirAndOffset 获取车道的方向与在该方向上的偏移量
// 功能：offset=0为该方向最左侧车道（紧邻道路中心线）
// 说明：车道不属于本道路时panic
func (r *Road) DirAndOffset(laneID int32) (forward bool, offset int) {
	slot, ok := r.slots[laneID]
	if !ok {
		log.Panicf("Road %d does not contain Lane %d", r.id, laneID)
	}
	return slot.dir == entity.FORWARD, slot.offset
}

// IsCanonicalLane 检查车道是否为承载道路中心线的车道
// 功能：每条道路恰有一条车道承载中心线，保证中心线只绘制一次
// 说明：取正向第一条车道，没有正向车道时取反向第一条车道
func (r *Road) IsCanonicalLane(laneID int32) bool {
	children := r.children[entity.FORWARD]
	if len(children) == 0 {
		children = r.children[entity.BACKWARD]
	}
	return len(children) > 0 && children[0].ID() == laneID
}

// FindClosestLane 在同方向车道中找到最近的另一条指定类型车道
// 功能：用于判断同侧是否存在其他行车道
// 参数：laneID-起始车道，types-候选车道类型
// 返回：偏移量差值最小的车道（相同时取靠左者），不存在则返回false
func (r *Road) FindClosestLane(laneID int32, types []entity.LaneType) (entity.ILane, bool) {
	slot, ok := r.slots[laneID]
	if !ok {
		log.Panicf("Road %d does not contain Lane %d", r.id, laneID)
	}
	var closest entity.ILane
	minDist := len(r.children[slot.dir])
	for offset, lane := range r.children[slot.dir] {
		if offset == slot.offset || !lo.Contains(types, lane.Type()) {
			continue
		}
		dist := offset - slot.offset
		if dist < 0 {
			dist = -dist
		}
		if dist < minDist {
			minDist = dist
			closest = lane
		}
	}
	return closest, closest != nil
}
