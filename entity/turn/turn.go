package turn

import (
	"fmt"

	"github.com/tsinghua-fib-lab/lanemarking/entity"
	"github.com/tsinghua-fib-lab/lanemarking/utils/geometry"
)

// Turn 转向：从来源车道终点驶入目标车道起点
type Turn struct {
	src   int32
	dst   int32
	angle geometry.Angle // 来源车道终点指向目标车道起点的方向
}

// newTurn 创建Turn并计算转向角度
// 两端点重合时（车道首尾直接相接）取目标车道起点的切向方向
func newTurn(src, dst entity.ILane) *Turn {
	from := src.CenterLine().LastPt()
	to := dst.CenterLine().FirstPt()
	var angle geometry.Angle
	if from.ApproxEq(to) {
		_, angle = dst.DistAlong(0)
	} else {
		angle = geometry.AngleBetween(from, to)
	}
	return &Turn{src: src.ID(), dst: dst.ID(), angle: angle}
}

func (t *Turn) String() string {
	return fmt.Sprintf("Turn %d->%d", t.src, t.dst)
}

// 来源Lane ID
func (t *Turn) Src() int32 {
	return t.src
}

// 目标Lane ID
func (t *Turn) Dst() int32 {
	return t.dst
}

// 转向角度
func (t *Turn) Angle() geometry.Angle {
	return t.angle
}
