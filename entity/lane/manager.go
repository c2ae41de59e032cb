package lane

import (
	"fmt"
	"sort"

	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/lanemarking/entity"
	"github.com/tsinghua-fib-lab/lanemarking/utils/input"
)

// LaneManager Lane管理器
// 功能：管理所有Lane实体，提供创建、查找等功能
type LaneManager struct {
	data  map[int32]*Lane
	lanes []*Lane
}

// NewManager 创建Lane管理器实例
func NewManager() *LaneManager {
	return &LaneManager{
		data:  make(map[int32]*Lane),
		lanes: make([]*Lane, 0),
	}
}

// Init 初始化所有Lane
// 功能：根据输入数据创建所有Lane对象并建立ID映射，按ID升序保存
// 参数：pbs-Lane的输入数据列表
// 返回：任一Lane创建失败时返回error
func (m *LaneManager) Init(pbs []input.Lane) error {
	lanes := make([]*Lane, 0, len(pbs))
	for _, pb := range pbs {
		l, err := newLane(pb)
		if err != nil {
			return err
		}
		lanes = append(lanes, l)
	}
	sort.Slice(lanes, func(i, j int) bool { return lanes[i].id < lanes[j].id })
	m.lanes = lanes
	m.data = lo.SliceToMap(m.lanes, func(l *Lane) (int32, *Lane) {
		return l.id, l
	})
	return nil
}

// Get 根据ID获取Lane实例，如果不存在则panic
func (m *LaneManager) Get(id int32) entity.ILane {
	if lane, ok := m.data[id]; !ok {
		log.Panicf("no id %d in lane data", id)
		return nil
	} else {
		return lane
	}
}

// GetOrError 根据ID获取Lane实例，如果不存在则返回错误
func (m *LaneManager) GetOrError(id int32) (entity.ILane, error) {
	if lane, ok := m.data[id]; !ok {
		return nil, fmt.Errorf("no id %d in lane data", id)
	} else {
		return lane, nil
	}
}

// Lanes 按ID升序返回所有Lane
func (m *LaneManager) Lanes() []entity.ILane {
	return lo.Map(m.lanes, func(l *Lane, _ int) entity.ILane {
		return l
	})
}
