package input

// Map 地图快照
// 功能：车道标线生成所需的全部地图数据（车道、道路、路口、转向）
type Map struct {
	Lanes     []Lane     `yaml:"lanes"`
	Roads     []Road     `yaml:"roads"`
	Junctions []Junction `yaml:"junctions"`
	Turns     []Turn     `yaml:"turns,omitempty"`
}

// Lane 车道
type Lane struct {
	ID          int32       `yaml:"id"`
	Type        string      `yaml:"type"`         // driving|bus|parking|sidewalk|biking
	CenterLine  [][]float64 `yaml:"center_line"`  // 中心线折点[[x, y], ...]
	Road        int32       `yaml:"road"`         // 所在道路
	DstJunction int32       `yaml:"dst_junction"` // 终点所在路口
}

// Road 道路
type Road struct {
	ID            int32       `yaml:"id"`
	CenterLine    [][]float64 `yaml:"center_line"`
	ForwardLanes  []int32     `yaml:"forward_lanes"`            // 与中心线同向的车道，从左到右
	BackwardLanes []int32     `yaml:"backward_lanes,omitempty"` // 与中心线反向的车道，从左到右
	ZOrder        int         `yaml:"z_order,omitempty"`        // 绘制层级
}

// Junction 路口
type Junction struct {
	ID            int32   `yaml:"id"`
	Type          string  `yaml:"type"`                     // stop_sign|traffic_signal|border
	PriorityLanes []int32 `yaml:"priority_lanes,omitempty"` // 停车让行路口中无需停车的车道
}

// Turn 转向：从Src车道驶入Dst车道
type Turn struct {
	Src int32 `yaml:"src"`
	Dst int32 `yaml:"dst"`
}
