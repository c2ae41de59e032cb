// 语义配色：标线只携带语义键与默认颜色，实际颜色由配色方案决定
package colors

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/gogpu/gg"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// Color RGBA颜色，各分量范围[0, 1]
type Color = gg.RGBA

var (
	Black  = gg.Black
	White  = gg.White
	Red    = gg.Red
	Yellow = gg.Yellow
)

// Grey 灰度颜色，v范围[0, 1]
func Grey(v float64) Color {
	return gg.RGB(v, v, v)
}

// RGB 由0-255整数分量创建颜色
func RGB(r, g, b uint8) Color {
	return gg.RGB(float64(r)/255, float64(g)/255, float64(b)/255)
}

// Hex 颜色的#rrggbb表示（忽略透明度）
func Hex(c Color) string {
	to255 := func(v float64) int {
		return int(lo.Clamp(v, 0, 1)*255 + 0.5)
	}
	return fmt.Sprintf("#%02x%02x%02x", to255(c.R), to255(c.G), to255(c.B))
}

// Scheme 配色方案
// 功能：语义键到颜色的映射；未配置的键使用调用方给出的默认颜色，并记录下来供导出
type Scheme struct {
	mtx       sync.RWMutex
	overrides map[string]Color
	used      map[string]Color
}

// NewScheme 创建配色方案
// 参数：overrides-语义键到十六进制颜色（#rgb、#rrggbb、#rrggbbaa）的映射
// 返回：颜色格式错误时返回error
func NewScheme(overrides map[string]string) (*Scheme, error) {
	s := &Scheme{
		overrides: make(map[string]Color, len(overrides)),
		used:      make(map[string]Color),
	}
	for key, hex := range overrides {
		digits := strings.TrimPrefix(hex, "#")
		switch len(digits) {
		case 3, 4, 6, 8:
		default:
			return nil, errors.Errorf("color %q: bad hex %q", key, hex)
		}
		if strings.Trim(strings.ToLower(digits), "0123456789abcdef") != "" {
			return nil, errors.Errorf("color %q: bad hex %q", key, hex)
		}
		s.overrides[key] = gg.Hex(hex)
	}
	return s, nil
}

// Get 获取语义键对应的颜色，未配置时返回def
func (s *Scheme) Get(key string, def Color) Color {
	s.mtx.RLock()
	c, ok := s.overrides[key]
	_, seen := s.used[key]
	s.mtx.RUnlock()
	if !ok {
		c = def
	}
	if !seen {
		s.mtx.Lock()
		s.used[key] = c
		s.mtx.Unlock()
	}
	return c
}

// Keys 已查询过的语义键（升序）
func (s *Scheme) Keys() []string {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	keys := lo.Keys(s.used)
	sort.Strings(keys)
	return keys
}
