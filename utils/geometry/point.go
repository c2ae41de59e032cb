// 二维几何工具：点、角度、线段、折线、多边形
// 坐标系与地图编辑器屏幕一致（y轴向下），因此航向角+90°指向右侧
package geometry

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

// 判断浮点数相等的容差
const epsilon = 1e-9

// Point 二维点
type Point struct {
	X float64
	Y float64
}

func (p Point) String() string {
	return fmt.Sprintf("(%.4f, %.4f)", p.X, p.Y)
}

// ProjectAway 沿angle方向移动dist后的点
func (p Point) ProjectAway(dist float64, angle Angle) Point {
	rad := float64(angle)
	return Point{
		X: p.X + dist*math.Cos(rad),
		Y: p.Y + dist*math.Sin(rad),
	}
}

// DistTo 两点间欧氏距离
func (p Point) DistTo(q Point) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

// ApproxEq 在容差范围内判断两点是否重合
func (p Point) ApproxEq(q Point) bool {
	return p.DistTo(q) < epsilon
}

// ToOrb 转换为orb.Point
func (p Point) ToOrb() orb.Point {
	return orb.Point{p.X, p.Y}
}

// Blend 线性插值：k=0返回a，k=1返回b
func Blend(a, b Point, k float64) Point {
	return Point{
		X: a.X + (b.X-a.X)*k,
		Y: a.Y + (b.Y-a.Y)*k,
	}
}
