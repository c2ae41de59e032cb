package config

// InputPath 指定输入数据来源的配置（文件系统）
type InputPath struct {
	File  string   `yaml:"file,omitempty"`  // 文件路径
	Files []string `yaml:"files,omitempty"` // 文件路径列表，与File同时存在时File在前
}

// Input 指定所有输入数据的配置项
type Input struct {
	Map InputPath `yaml:"map"` // 地图
}

// Output 输出配置
// 功能：定义标线生成结果的输出方式，为空表示不输出
type Output struct {
	GeoJSON string   `yaml:"geojson,omitempty"`    // GeoJSON文件路径
	PNG     string   `yaml:"png,omitempty"`        // 预览图路径
	Scale   float64  `yaml:"png_scale,omitempty"`  // 预览图每米像素数
	Margin  *float64 `yaml:"png_margin,omitempty"` // 预览图边距（像素），未指定时使用默认值
}

// Control 控制配置
type Control struct {
	Workers      int  `yaml:"workers,omitempty"`       // 并行生成车道标线的协程数，<=0表示CPU核数
	HideMarkings bool `yaml:"hide_markings,omitempty"` // 预览图中只绘制车道面，不绘制标线
}

// Config YAML配置文件的根结构
type Config struct {
	Input   Input             `yaml:"input"`            // 输入
	Output  Output            `yaml:"output"`           // 输出
	Control Control           `yaml:"control"`          // 过程控制
	Colors  map[string]string `yaml:"colors,omitempty"` // 配色覆盖：语义键 -> 十六进制颜色
}
