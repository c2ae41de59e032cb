package lane

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/lanemarking/entity"
	"github.com/tsinghua-fib-lab/lanemarking/utils/geometry"
	"github.com/tsinghua-fib-lab/lanemarking/utils/input"
)

// 停车道首尾各留出的车位数（靠近路口的位置不可停车）
const parkingSpotsReserved = 2

// Lane 车道实体
// 功能：表示地图中的车道，提供几何采样与车位容量等只读查询
type Lane struct {
	id int32

	typ           entity.LaneType    // 车道类型
	parentID      int32              // 所在道路ID
	parentRoad    entity.IRoad       // 所在道路
	dstJunctionID int32              // 终点所在路口ID
	line          *geometry.Polyline // 中心线
}

// newLane 创建并初始化一个新的Lane实例
// 功能：根据基础数据创建Lane对象，解析车道类型并构建中心线
// 参数：base-基础Lane数据
// 返回：初始化完成的Lane实例，类型未知或中心线退化时返回error
func newLane(base input.Lane) (*Lane, error) {
	typ, err := entity.ParseLaneType(base.Type)
	if err != nil {
		return nil, errors.Wrapf(err, "lane %d", base.ID)
	}
	line, err := geometry.NewPolyline(lo.Map(base.CenterLine, func(xy []float64, _ int) geometry.Point {
		return geometry.Point{X: xy[0], Y: xy[1]}
	}))
	if err != nil {
		return nil, errors.Wrapf(err, "lane %d center line", base.ID)
	}
	return &Lane{
		id:            base.ID,
		typ:           typ,
		parentID:      base.Road,
		dstJunctionID: base.DstJunction,
		line:          line,
	}, nil
}

// 数据初始化

// SetParentRoadWhenInit 设置lane所在road
func (l *Lane) SetParentRoadWhenInit(parent entity.IRoad) {
	if parent.ID() != l.parentID {
		log.Panicf("Lane %d: parent road %d mismatch with %d", l.id, parent.ID(), l.parentID)
	}
	l.parentRoad = parent
}

// 静态数据

func (l *Lane) String() string {
	return fmt.Sprintf("Lane %d", l.id)
}

// 获取Lane ID
func (l *Lane) ID() int32 {
	if l == nil {
		return -1
	}
	return l.id
}

// 获取Lane类型
func (l *Lane) Type() entity.LaneType {
	return l.typ
}

// 获取Lane的中心线
func (l *Lane) CenterLine() *geometry.Polyline {
	return l.line
}

// 获取Lane长度
func (l *Lane) Length() float64 {
	return l.line.Length()
}

// 获取Lane所在Road的ID
func (l *Lane) ParentRoadID() int32 {
	return l.parentID
}

// 获取Lane所在的Road
func (l *Lane) ParentRoad() entity.IRoad {
	return l.parentRoad
}

// 获取Lane终点所在Junction的ID
func (l *Lane) DstJunctionID() int32 {
	return l.dstJunctionID
}

// 检查是否是行车道（公交车道不计入）
func (l *Lane) IsDriving() bool {
	return l.typ == entity.LaneTypeDriving
}

// NumberParkingSpots 停车道可容纳的车位数
// 功能：按车位长度切分车道，首尾预留的位置不计入
// 返回：非停车道或长度不足时为0
func (l *Lane) NumberParkingSpots() int {
	if l.typ != entity.LaneTypeParking {
		return 0
	}
	spots := math.Floor(l.Length()/entity.ParkingSpotLength) - parkingSpotsReserved
	if spots < 1 {
		return 0
	}
	return int(spots)
}

// 将当前车道s坐标转换为xy坐标与切向角度，越界panic
func (l *Lane) DistAlong(s float64) (geometry.Point, geometry.Angle) {
	return l.line.DistAlong(s)
}

// 将当前车道s坐标转换为xy坐标与切向角度，越界返回false
func (l *Lane) SafeDistAlong(s float64) (geometry.Point, geometry.Angle, bool) {
	return l.line.SafeDistAlong(s)
}
