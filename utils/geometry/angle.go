package geometry

import "math"

// Angle 方向角（弧度），0指向x轴正方向，顺时针（屏幕坐标系）为正
type Angle float64

// AngleBetween 从a指向b的方向角
func AngleBetween(a, b Point) Angle {
	return Angle(math.Atan2(b.Y-a.Y, b.X-a.X))
}

// RotateDegs 旋转指定角度（度）
func (a Angle) RotateDegs(degrees float64) Angle {
	return Angle(float64(a) + degrees*math.Pi/180).Normalized()
}

// Opposite 反方向
func (a Angle) Opposite() Angle {
	return Angle(float64(a) + math.Pi).Normalized()
}

// Normalized 归一化到[0, 2π)
func (a Angle) Normalized() Angle {
	rad := math.Mod(float64(a), 2*math.Pi)
	if rad < 0 {
		rad += 2 * math.Pi
	}
	return Angle(rad)
}

// Degrees 转换为角度制，范围[0, 360)
func (a Angle) Degrees() float64 {
	return float64(a.Normalized()) * 180 / math.Pi
}

// ApproxEq 在容差范围内判断两个方向是否相同
func (a Angle) ApproxEq(b Angle) bool {
	d := math.Abs(float64(a.Normalized() - b.Normalized()))
	return d < 1e-6 || math.Abs(d-2*math.Pi) < 1e-6
}
