package road

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/lanemarking/entity"
	"github.com/tsinghua-fib-lab/lanemarking/utils/input"
)

// RoadManager Road管理器
// 功能：管理所有Road实体，提供创建、查找等功能
type RoadManager struct {
	data  map[int32]*Road
	roads []*Road
}

// NewManager 创建Road管理器实例
func NewManager() *RoadManager {
	return &RoadManager{
		data:  make(map[int32]*Road),
		roads: make([]*Road, 0),
	}
}

// Init 初始化所有Road
// 功能：根据输入数据创建所有Road对象，建立ID映射关系，并设置车道的所在道路
// 参数：pbs-Road的输入数据列表，laneManager-车道管理器
func (m *RoadManager) Init(pbs []input.Road, laneManager entity.ILaneManager) error {
	roads := make([]*Road, 0, len(pbs))
	for _, pb := range pbs {
		r, err := newRoad(pb, laneManager)
		if err != nil {
			return err
		}
		roads = append(roads, r)
	}
	m.roads = roads
	m.data = lo.SliceToMap(m.roads, func(r *Road) (int32, *Road) {
		return r.id, r
	})
	return nil
}

// Get 根据ID获取Road实例，如果不存在则panic
func (m *RoadManager) Get(id int32) entity.IRoad {
	if road, ok := m.data[id]; !ok {
		log.Panicf("no id %d in road data", id)
		return nil
	} else {
		return road
	}
}

// GetOrError 根据ID获取Road实例，如果不存在则返回错误
func (m *RoadManager) GetOrError(id int32) (entity.IRoad, error) {
	if road, ok := m.data[id]; !ok {
		return nil, fmt.Errorf("no id %d in road data", id)
	} else {
		return road, nil
	}
}
