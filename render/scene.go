package render

import (
	"context"
	"sort"
	"sync"

	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/lanemarking/entity"
	"github.com/tsinghua-fib-lab/lanemarking/utils"
	"golang.org/x/sync/errgroup"
)

// ISceneSource 构建场景所需的地图数据
type ISceneSource interface {
	entity.IMarkingMap

	LaneManager() entity.ILaneManager
	RoadManager() entity.IRoadManager
}

// Scene 全部车道的静态绘制数据缓存
// 功能：加载时一次性生成，渲染时反复读取；车道几何变化时通过Rebuild显式重建
type Scene struct {
	src ISceneSource

	mtx     sync.RWMutex
	data    map[int32]*LaneVisual
	visuals []*LaneVisual // 按(ZOrder, ID)排序
}

// BuildScene 并行生成所有车道的绘制数据
// 功能：各车道互相独立、只读访问地图，按workers限制并发数
// 参数：ctx-用于取消，src-地图数据，workers-并发数（<=0表示不限制）
// 返回：构建完成的场景；ctx被取消时返回其错误
func BuildScene(ctx context.Context, src ISceneSource, workers int) (*Scene, error) {
	lanes := src.LaneManager().Lanes()
	results := make([]*LaneVisual, len(lanes))

	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, lane := range lanes {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			road := src.RoadManager().Get(lane.ParentRoadID())
			results[i] = BuildLaneVisual(lane, road, src)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s := &Scene{src: src}
	s.data, s.visuals = index(results)
	log.Infof("scene built: %d lanes, %d markings", len(results),
		lo.SumBy(results, func(v *LaneVisual) int { return len(v.Markings) }))
	return s, nil
}

// index 建立ID映射并按绘制顺序排序
func index(visuals []*LaneVisual) (map[int32]*LaneVisual, []*LaneVisual) {
	data := lo.SliceToMap(visuals, func(v *LaneVisual) (int32, *LaneVisual) {
		return v.ID, v
	})
	sorted := lo.Values(data)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].ZOrder != sorted[j].ZOrder {
			return sorted[i].ZOrder < sorted[j].ZOrder
		}
		return sorted[i].ID < sorted[j].ID
	})
	return data, sorted
}

// Len 车道数量
func (s *Scene) Len() int {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	return len(s.visuals)
}

// Get 获取车道的绘制数据
func (s *Scene) Get(laneID int32) (*LaneVisual, bool) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	v, ok := s.data[laneID]
	return v, ok
}

// Find 获取多个车道的绘制数据（ids为空时返回全部，按绘制顺序），不存在的ID记录在failedIDs中
func (s *Scene) Find(ids []int32) (visuals []*LaneVisual, failedIDs []int32) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	return utils.Find(s.data, s.visuals, ids)
}

// Sorted 按绘制顺序（ZOrder升序，相同时按ID）返回全部车道的绘制数据
func (s *Scene) Sorted() []*LaneVisual {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	return append([]*LaneVisual(nil), s.visuals...)
}

// Rebuild 车道几何变化后重新生成其绘制数据
// 说明：只替换该车道自身的结果，旧的LaneVisual不被修改
func (s *Scene) Rebuild(laneID int32) (*LaneVisual, error) {
	lane, err := s.src.LaneManager().GetOrError(laneID)
	if err != nil {
		return nil, err
	}
	road, err := s.src.RoadManager().GetOrError(lane.ParentRoadID())
	if err != nil {
		return nil, err
	}
	v := BuildLaneVisual(lane, road, s.src)

	s.mtx.Lock()
	defer s.mtx.Unlock()
	visuals := lo.Filter(s.visuals, func(old *LaneVisual, _ int) bool {
		return old.ID != laneID
	})
	s.data, s.visuals = index(append(visuals, v))
	return v, nil
}
