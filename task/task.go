package task

import (
	"context"

	"github.com/pkg/errors"
	"github.com/tsinghua-fib-lab/lanemarking/entity"
	"github.com/tsinghua-fib-lab/lanemarking/entity/junction"
	"github.com/tsinghua-fib-lab/lanemarking/entity/lane"
	"github.com/tsinghua-fib-lab/lanemarking/entity/road"
	"github.com/tsinghua-fib-lab/lanemarking/entity/turn"
	"github.com/tsinghua-fib-lab/lanemarking/output"
	"github.com/tsinghua-fib-lab/lanemarking/render"
	"github.com/tsinghua-fib-lab/lanemarking/utils/colors"
	"github.com/tsinghua-fib-lab/lanemarking/utils/config"
	"github.com/tsinghua-fib-lab/lanemarking/utils/input"
)

var _ entity.ITaskContext = (*Context)(nil)

// Context 标线生成任务上下文
// 功能：包含一次任务的所有变量和状态，替代全局变量
// 说明：持有地图各管理器，并实现标线生成所需的地图查询接口
type Context struct {
	// Lane管理器
	laneManager entity.ILaneManager
	// Road管理器
	roadManager entity.IRoadManager
	// Junction管理器
	junctionManager entity.IJunctionManager
	// Turn管理器
	turnManager entity.ITurnManager

	// 运行时配置
	runtimeConfig *config.RuntimeConfig
	// 配色方案
	scheme *colors.Scheme

	// 用于初始化的输入
	initRes *input.Input
}

// NewContext 创建新的任务上下文
// 功能：加载并校验地图快照，解析配色方案
// 参数：c-配置对象
// 返回：创建完成的Context（尚未Init），地图或配色有误时返回error
func NewContext(c config.Config) (*Context, error) {
	initRes, err := input.Init(c)
	if err != nil {
		return nil, err
	}
	return NewContextFromMap(initRes.Map, c)
}

// NewContextFromMap 使用已加载的地图快照创建任务上下文
// 说明：不读取配置中的地图文件，便于嵌入其他程序或测试
func NewContextFromMap(m *input.Map, c config.Config) (*Context, error) {
	scheme, err := colors.NewScheme(c.Colors)
	if err != nil {
		return nil, err
	}
	return &Context{
		laneManager:     lane.NewManager(),
		roadManager:     road.NewManager(),
		junctionManager: junction.NewManager(),
		turnManager:     turn.NewManager(),
		runtimeConfig:   config.NewRuntimeConfig(c),
		scheme:          scheme,
		initRes:         &input.Input{Map: m},
	}, nil
}

func (ctx *Context) GetInput() *input.Input {
	return ctx.initRes
}

func (ctx *Context) LaneManager() entity.ILaneManager {
	return ctx.laneManager
}

func (ctx *Context) RoadManager() entity.IRoadManager {
	return ctx.roadManager
}

func (ctx *Context) JunctionManager() entity.IJunctionManager {
	return ctx.junctionManager
}

func (ctx *Context) TurnManager() entity.ITurnManager {
	return ctx.turnManager
}

func (ctx *Context) RuntimeConfig() *config.RuntimeConfig {
	return ctx.runtimeConfig
}

func (ctx *Context) Scheme() *colors.Scheme {
	return ctx.scheme
}

// Junction 查询路口，不存在时返回false
func (ctx *Context) Junction(id int32) (entity.IJunction, bool) {
	j, err := ctx.junctionManager.GetOrError(id)
	if err != nil {
		return nil, false
	}
	return j, true
}

// TurnsFromLane 从指定车道出发的所有转向
func (ctx *Context) TurnsFromLane(laneID int32) []entity.ITurn {
	return ctx.turnManager.TurnsFromLane(laneID)
}

// FindClosestLane 在车道所在道路的同方向中查找最近的指定类型车道
func (ctx *Context) FindClosestLane(laneID int32, types []entity.LaneType) (entity.ILane, bool) {
	l, err := ctx.laneManager.GetOrError(laneID)
	if err != nil {
		return nil, false
	}
	return l.ParentRoad().FindClosestLane(laneID, types)
}

// Init 构建地图实体
// 算法说明：
// 1. 先完成lane的所有初始化
// 2. road初始化，并回填lane的所在道路
// 3. junction、turn初始化（依赖lane）
func (ctx *Context) Init() error {
	mapData := ctx.initRes.Map

	log.Infof("Lane: %v", len(mapData.Lanes))
	log.Infof("Road: %v", len(mapData.Roads))
	log.Infof("Junction: %v", len(mapData.Junctions))
	log.Infof("Turn: %v", len(mapData.Turns))

	if err := ctx.laneManager.Init(mapData.Lanes); err != nil {
		return errors.Wrap(err, "init lanes")
	}
	if err := ctx.roadManager.Init(mapData.Roads, ctx.laneManager); err != nil {
		return errors.Wrap(err, "init roads")
	}
	for _, l := range ctx.laneManager.Lanes() {
		if l.ParentRoad() == nil {
			return errors.Errorf("init roads: %v is not listed by any road", l)
		}
	}
	if err := ctx.junctionManager.Init(mapData.Junctions, ctx.laneManager); err != nil {
		return errors.Wrap(err, "init junctions")
	}
	if err := ctx.turnManager.Init(mapData.Turns, ctx.laneManager); err != nil {
		return errors.Wrap(err, "init turns")
	}
	return nil
}

// Run 执行标线生成任务
// 功能：构建地图实体，并行生成全部车道的标线，按配置写出结果
// 参数：goCtx-用于取消
// 返回：生成的场景；任一步骤失败时返回error
func (ctx *Context) Run(goCtx context.Context) (*render.Scene, error) {
	if err := ctx.Init(); err != nil {
		return nil, err
	}
	rc := ctx.runtimeConfig
	scene, err := render.BuildScene(goCtx, ctx, rc.C.Workers)
	if err != nil {
		return nil, errors.Wrap(err, "build scene")
	}
	visuals := scene.Sorted()
	if rc.O.GeoJSON != "" {
		if err := output.WriteGeoJSON(rc.O.GeoJSON, visuals, ctx.scheme); err != nil {
			return nil, err
		}
	}
	if rc.O.PNG != "" {
		opts := output.PreviewOptions{
			Scale:        rc.O.Scale,
			Margin:       *rc.O.Margin,
			ShowMarkings: !rc.C.HideMarkings,
		}
		if err := output.RenderPNG(rc.O.PNG, visuals, ctx.scheme, opts); err != nil {
			return nil, err
		}
	}
	log.Debugf("color keys: %v", ctx.scheme.Keys())
	return scene, nil
}
