package input

import (
	"github.com/pkg/errors"
)

// mapIDs 地图ID集合
// 功能：存储各种地图元素的ID集合，用于引用检查
type mapIDs struct {
	laneIDs     map[int32]struct{}
	roadIDs     map[int32]struct{}
	junctionIDs map[int32]struct{}
}

func collect[T any](data []T, id func(T) int32, kind string) (map[int32]struct{}, error) {
	ids := make(map[int32]struct{}, len(data))
	for _, d := range data {
		i := id(d)
		if _, ok := ids[i]; ok {
			return nil, errors.Errorf("duplicate %s id %d", kind, i)
		}
		ids[i] = struct{}{}
	}
	return ids, nil
}

// Validate 检查地图快照的引用完整性
// 功能：ID唯一、车道与道路互相引用一致、路口与转向引用的车道存在、折点为二维坐标
// 说明：几何退化（去重后不足两个点）由实体初始化时检查
func Validate(m *Map) error {
	var ids mapIDs
	var err error
	if ids.laneIDs, err = collect(m.Lanes, func(l Lane) int32 { return l.ID }, "lane"); err != nil {
		return err
	}
	if ids.roadIDs, err = collect(m.Roads, func(r Road) int32 { return r.ID }, "road"); err != nil {
		return err
	}
	if ids.junctionIDs, err = collect(m.Junctions, func(j Junction) int32 { return j.ID }, "junction"); err != nil {
		return err
	}

	laneRoad := make(map[int32]int32, len(m.Lanes))
	for _, l := range m.Lanes {
		if _, ok := ids.roadIDs[l.Road]; !ok {
			return errors.Errorf("lane %d: no road %d", l.ID, l.Road)
		}
		if _, ok := ids.junctionIDs[l.DstJunction]; !ok {
			return errors.Errorf("lane %d: no dst junction %d", l.ID, l.DstJunction)
		}
		if err := checkLine(l.CenterLine); err != nil {
			return errors.Wrapf(err, "lane %d", l.ID)
		}
		laneRoad[l.ID] = l.Road
	}
	owned := make(map[int32]int32, len(m.Lanes))
	for _, r := range m.Roads {
		if err := checkLine(r.CenterLine); err != nil {
			return errors.Wrapf(err, "road %d", r.ID)
		}
		for _, laneIDs := range [][]int32{r.ForwardLanes, r.BackwardLanes} {
			for _, id := range laneIDs {
				if _, ok := ids.laneIDs[id]; !ok {
					return errors.Errorf("road %d: no lane %d", r.ID, id)
				}
				if laneRoad[id] != r.ID {
					return errors.Errorf("road %d: lane %d belongs to road %d", r.ID, id, laneRoad[id])
				}
				if prev, ok := owned[id]; ok {
					return errors.Errorf("lane %d listed twice (roads %d and %d)", id, prev, r.ID)
				}
				owned[id] = r.ID
			}
		}
	}
	for _, l := range m.Lanes {
		if _, ok := owned[l.ID]; !ok {
			return errors.Errorf("lane %d is not listed by road %d", l.ID, l.Road)
		}
	}
	for _, j := range m.Junctions {
		for _, id := range j.PriorityLanes {
			if _, ok := ids.laneIDs[id]; !ok {
				return errors.Errorf("junction %d: no priority lane %d", j.ID, id)
			}
		}
	}
	for _, t := range m.Turns {
		if _, ok := ids.laneIDs[t.Src]; !ok {
			return errors.Errorf("turn %d->%d: no src lane", t.Src, t.Dst)
		}
		if _, ok := ids.laneIDs[t.Dst]; !ok {
			return errors.Errorf("turn %d->%d: no dst lane", t.Src, t.Dst)
		}
	}
	return nil
}

func checkLine(line [][]float64) error {
	if len(line) < 2 {
		return errors.Errorf("center line needs at least 2 points, got %d", len(line))
	}
	for i, pt := range line {
		if len(pt) != 2 {
			return errors.Errorf("center line point %d has %d coordinates", i, len(pt))
		}
	}
	return nil
}
