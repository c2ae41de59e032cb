// 随机数引擎，包装了golang.org/x/exp/rand，用于生成可复现的随机几何数据
package randengine

import (
	"flag"
	"log"

	"github.com/tsinghua-fib-lab/lanemarking/utils/geometry"
	"golang.org/x/exp/rand"
)

var (
	seedOffset = flag.Uint64("rand.seed_offset", 0, "seed offset") // 种子偏移量，用于调整随机数生成
)

// Engine 随机数引擎（非线程安全）
type Engine struct {
	*rand.Rand // 底层随机数生成器
}

// New 创建随机数引擎
// 参数：seed-随机数种子
// 说明：种子偏移量允许在不修改代码的情况下调整随机数序列
func New(seed uint64) *Engine {
	return &Engine{Rand: rand.New(rand.NewSource(seed + *seedOffset))}
}

// Uniform 在[lo, hi)范围内均匀生成浮点数
func (e *Engine) Uniform(lo, hi float64) float64 {
	return lo + (hi-lo)*e.Float64()
}

// PTrue 以指定概率返回true
func (e *Engine) PTrue(p float64) bool {
	return e.Float64() < p
}

// DiscreteDistribution 按给定概率分布生成随机数
// 参数：weight-权重数组，每个元素表示对应索引的概率权重
// 返回：随机生成的索引值（0到len(weight)-1）
func (e *Engine) DiscreteDistribution(weight []float64) int32 {
	random := .0
	for _, w := range weight {
		random += w
	}
	random *= e.Float64()
	sum := 0.
	for i, w := range weight {
		sum += w
		if sum > random {
			return int32(i)
		}
	}
	log.Panicf("randengine: DiscreteDistribution: sum: %f random: %f", sum, random)
	return -1
}

// Walk 随机游走生成折线的折点
// 功能：从start出发沿heading前进n段，每段长度在[minStep, maxStep)内，每次转向不超过maxTurnDegs度
// 说明：用于生成平滑、不自交（maxTurnDegs较小时）的车道中心线
func (e *Engine) Walk(start geometry.Point, heading geometry.Angle, n int, minStep, maxStep, maxTurnDegs float64) []geometry.Point {
	pts := make([]geometry.Point, 0, n+1)
	pts = append(pts, start)
	pt := start
	for range n {
		pt = pt.ProjectAway(e.Uniform(minStep, maxStep), heading)
		pts = append(pts, pt)
		heading = heading.RotateDegs(e.Uniform(-maxTurnDegs, maxTurnDegs))
	}
	return pts
}
