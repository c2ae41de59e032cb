package input

import (
	"os"

	"github.com/pkg/errors"
	"github.com/tsinghua-fib-lab/lanemarking/utils/config"
	"gopkg.in/yaml.v2"
)

// Input 输入数据
type Input struct {
	Map *Map
}

// Init 加载数据
// 功能：根据配置加载地图快照并做引用完整性检查
// 参数：config-配置对象
// 返回：加载完成的输入数据，文件缺失、格式错误或引用不存在时返回error
// 说明：配置了多个文件时按顺序合并，适用于按区域切分保存的地图
func Init(c config.Config) (*Input, error) {
	files := c.Input.Map.Files
	if c.Input.Map.File != "" {
		files = append([]string{c.Input.Map.File}, files...)
	}
	if len(files) == 0 {
		return nil, errors.New("no map file specified")
	}
	res := &Input{Map: &Map{}}
	for _, file := range files {
		m, err := LoadMap(file)
		if err != nil {
			return nil, err
		}
		res.Map.Lanes = append(res.Map.Lanes, m.Lanes...)
		res.Map.Roads = append(res.Map.Roads, m.Roads...)
		res.Map.Junctions = append(res.Map.Junctions, m.Junctions...)
		res.Map.Turns = append(res.Map.Turns, m.Turns...)
	}
	if err := Validate(res.Map); err != nil {
		return nil, err
	}
	log.Infof("map loaded: %d lanes, %d roads, %d junctions, %d turns",
		len(res.Map.Lanes), len(res.Map.Roads), len(res.Map.Junctions), len(res.Map.Turns))
	return res, nil
}

// LoadMap 从YAML文件读取单个地图快照（不做校验）
func LoadMap(path string) (*Map, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read map file %s", path)
	}
	return ParseMap(file)
}

// ParseMap 解析YAML格式的地图快照（不做校验）
func ParseMap(data []byte) (*Map, error) {
	var m Map
	if err := yaml.UnmarshalStrict(data, &m); err != nil {
		return nil, errors.Wrap(err, "parse map")
	}
	return &m, nil
}
