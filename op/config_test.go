package op

import (
	"testing"

	"vcid/types"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(3); err != nil {
		t.Fatalf("默认配置应当有效: %v", err)
	}
	if cfg.AlphaMax != types.AlphaMax || cfg.AlphaMin != types.AlphaMin {
		t.Errorf("默认阻尼范围不正确: [%g, %g]", cfg.AlphaMin, cfg.AlphaMax)
	}
	if got := cfg.limit(); got != types.MaxIterations {
		t.Errorf("默认迭代上限不正确: %d", got)
	}
	cfg.MaxIterations = 7
	if got := cfg.limit(); got != 7 {
		t.Errorf("迭代上限不正确: %d", got)
	}
	cfg.MaxIterations = -1
	if got := cfg.limit(); got != types.MaxIterations {
		t.Errorf("负数迭代上限应使用默认值: %d", got)
	}
}
