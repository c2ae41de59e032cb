package turn_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/lanemarking/entity/lane"
	"github.com/tsinghua-fib-lab/lanemarking/entity/turn"
	"github.com/tsinghua-fib-lab/lanemarking/utils/geometry"
	"github.com/tsinghua-fib-lab/lanemarking/utils/input"
)

func newLanes(t *testing.T) *lane.LaneManager {
	t.Helper()
	m := lane.NewManager()
	require.NoError(t, m.Init([]input.Lane{
		// 来源车道，终点(10, 0)
		{ID: 1, Type: "driving", CenterLine: [][]float64{{0, 0}, {10, 0}}},
		// 右转（y轴向下）
		{ID: 2, Type: "driving", CenterLine: [][]float64{{12, 2}, {12, 20}}},
		// 首尾相接，取目标车道起点方向
		{ID: 3, Type: "driving", CenterLine: [][]float64{{10, 0}, {10, -10}}},
		{ID: 4, Type: "driving", CenterLine: [][]float64{{14, 0}, {30, 0}}},
	}))
	return m
}

func TestTurnsFromLane(t *testing.T) {
	m := turn.NewManager()
	require.NoError(t, m.Init([]input.Turn{
		{Src: 1, Dst: 4},
		{Src: 1, Dst: 2},
		{Src: 1, Dst: 4},
		{Src: 1, Dst: 3},
		{Src: 2, Dst: 4},
	}, newLanes(t)))

	turns := m.TurnsFromLane(1)
	require.Len(t, turns, 3)
	assert.Equal(t, []int32{2, 3, 4}, []int32{turns[0].Dst(), turns[1].Dst(), turns[2].Dst()})
	for _, tr := range turns {
		assert.Equal(t, int32(1), tr.Src())
	}
	assert.True(t, turns[0].Angle().ApproxEq(geometry.Angle(math.Pi/4)))
	assert.True(t, turns[1].Angle().ApproxEq(geometry.Angle(-math.Pi/2)))
	assert.True(t, turns[2].Angle().ApproxEq(0))
	assert.Equal(t, "Turn 1->2", turns[0].String())

	assert.Empty(t, m.TurnsFromLane(4))
}

func TestTurnMissingLane(t *testing.T) {
	m := turn.NewManager()
	assert.Error(t, m.Init([]input.Turn{{Src: 1, Dst: 9}}, newLanes(t)))
}
