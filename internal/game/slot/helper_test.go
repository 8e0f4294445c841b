package slot

import (
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// newTestService 构造直连测试用的spinService（固定种子）
func newTestService(t *testing.T, seed int64) *spinService {
	t.Helper()
	cfg, err := parseGameConfig(_gameJsonConfigsRaw)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	catalog, err := NewCatalog(defaultSymbols())
	if err != nil {
		t.Fatalf("build catalog: %v", err)
	}
	return &spinService{
		req:        &SpinRequest{Mode: ModeExpanded, Bet: decimal.NewFromInt(1), PlayerSpinCount: 1000},
		scene:      &SpinSceneData{Stage: _spinTypeBase},
		session:    NewSessionState(),
		catalog:    catalog,
		gameConfig: cfg,
		rng:        newSeededRng(seed),
		log:        zap.NewNop(),
	}
}

func newTestEngine(t *testing.T, seed int64) *Engine {
	t.Helper()
	e, err := New(nil, WithSeed(seed))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return e
}

// buildGrid 手工盘面，直接冻结
func buildGrid(mode Mode, cells ...int64) *Grid {
	g := newGrid(mode)
	copy(g.Cells, cells)
	g.freeze()
	return g
}
