package config

import (
	"runtime"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"gopkg.in/yaml.v2"
)

const (
	defaultScale  = 10 // 预览图默认每米10像素
	defaultMargin = 20 // 预览图默认边距（像素）
)

// RuntimeConfig 运行时配置
// 功能：在原始配置上补全默认值
type RuntimeConfig struct {
	All Config  // 全部配置
	C   Control // 过程控制配置
	O   Output  // 输出配置
}

// NewRuntimeConfig 根据配置初始化运行时配置
// 功能：创建运行时配置对象并设置默认值
// 说明：未指定协程数时使用CPU核数，未指定预览图比例时使用默认值，边距未指定或为负时使用默认值
func NewRuntimeConfig(config Config) *RuntimeConfig {
	rc := &RuntimeConfig{
		All: config,
		C:   config.Control,
		O:   config.Output,
	}
	if rc.C.Workers <= 0 {
		rc.C.Workers = runtime.NumCPU()
	}
	if rc.O.Scale <= 0 {
		rc.O.Scale = defaultScale
	}
	// 显式指定的0边距保留
	if rc.O.Margin == nil || *rc.O.Margin < 0 {
		rc.O.Margin = lo.ToPtr(float64(defaultMargin))
	}
	return rc
}

// Parse 严格解析YAML配置，出现未知字段时报错
func Parse(data []byte) (Config, error) {
	var c Config
	if err := yaml.UnmarshalStrict(data, &c); err != nil {
		return Config{}, errors.Wrap(err, "config file load err")
	}
	return c, nil
}
