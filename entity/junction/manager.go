package junction

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/lanemarking/entity"
	"github.com/tsinghua-fib-lab/lanemarking/utils/input"
)

// JunctionManager Junction管理器
// 功能：管理所有Junction实体，提供创建、查找等功能
type JunctionManager struct {
	data      map[int32]*Junction
	junctions []*Junction
}

// NewManager 创建Junction管理器实例
func NewManager() *JunctionManager {
	return &JunctionManager{
		data:      make(map[int32]*Junction),
		junctions: make([]*Junction, 0),
	}
}

// Init 初始化所有Junction
func (m *JunctionManager) Init(pbs []input.Junction, laneManager entity.ILaneManager) error {
	junctions := make([]*Junction, 0, len(pbs))
	for _, pb := range pbs {
		j, err := newJunction(pb, laneManager)
		if err != nil {
			return err
		}
		junctions = append(junctions, j)
	}
	m.junctions = junctions
	m.data = lo.SliceToMap(m.junctions, func(j *Junction) (int32, *Junction) {
		return j.id, j
	})
	return nil
}

// Get 根据ID获取Junction实例，如果不存在则panic
func (m *JunctionManager) Get(id int32) entity.IJunction {
	if j, ok := m.data[id]; !ok {
		log.Panicf("no id %d in junction data", id)
		return nil
	} else {
		return j
	}
}

// GetOrError 根据ID获取Junction实例，如果不存在则返回错误
func (m *JunctionManager) GetOrError(id int32) (entity.IJunction, error) {
	if j, ok := m.data[id]; !ok {
		return nil, fmt.Errorf("no id %d in junction data", id)
	} else {
		return j, nil
	}
}
