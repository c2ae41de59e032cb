package turn

import (
	"sort"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/lanemarking/entity"
	"github.com/tsinghua-fib-lab/lanemarking/utils/input"
)

// TurnManager Turn管理器
// 功能：按来源车道索引所有转向
type TurnManager struct {
	fromLane map[int32][]*Turn // 来源Lane ID -> 转向（按目标Lane ID升序）
}

// NewManager 创建Turn管理器实例
func NewManager() *TurnManager {
	return &TurnManager{
		fromLane: make(map[int32][]*Turn),
	}
}

// Init 初始化所有Turn
// 功能：根据输入数据创建Turn，重复的(src, dst)只保留一个
func (m *TurnManager) Init(pbs []input.Turn, laneManager entity.ILaneManager) error {
	pbs = lo.UniqBy(pbs, func(pb input.Turn) [2]int32 {
		return [2]int32{pb.Src, pb.Dst}
	})
	for _, pb := range pbs {
		src, err := laneManager.GetOrError(pb.Src)
		if err != nil {
			return errors.Wrapf(err, "turn %d->%d", pb.Src, pb.Dst)
		}
		dst, err := laneManager.GetOrError(pb.Dst)
		if err != nil {
			return errors.Wrapf(err, "turn %d->%d", pb.Src, pb.Dst)
		}
		m.fromLane[pb.Src] = append(m.fromLane[pb.Src], newTurn(src, dst))
	}
	for src, turns := range m.fromLane {
		sort.Slice(turns, func(i, j int) bool { return turns[i].dst < turns[j].dst })
		log.Debugf("Lane %d: %d turns", src, len(turns))
	}
	return nil
}

// TurnsFromLane 从指定Lane出发的所有Turn
func (m *TurnManager) TurnsFromLane(laneID int32) []entity.ITurn {
	return lo.Map(m.fromLane[laneID], func(t *Turn, _ int) entity.ITurn {
		return t
	})
}
