package slot

import (
	"github.com/shopspring/decimal"
)

// Grid 盘面。生成期间可写，返回评估前冻结
type Grid struct {
	Mode   Mode    `json:"mode"`
	Rows   int     `json:"rows"`
	Cols   int     `json:"cols"`
	Cells  []int64 `json:"cells"` // 行优先，一维索引 = r*Cols + c
	frozen bool
}

func newGrid(mode Mode) *Grid {
	rows, cols := gridDims(mode)
	return &Grid{Mode: mode, Rows: rows, Cols: cols, Cells: make([]int64, rows*cols)}
}

func gridDims(mode Mode) (rows, cols int) {
	switch mode {
	case ModeClassic:
		return _classicRows, _classicCols
	case ModeExpanded:
		return _expandedRows, _expandedCols
	case ModeLarge:
		return _largeRows, _largeCols
	default:
		return _classicRows, _classicCols
	}
}

func (g *Grid) At(r, c int) int64 { return g.Cells[r*g.Cols+c] }

func (g *Grid) set(idx int, v int64) {
	if g.frozen {
		panic("slot: write to frozen grid")
	}
	g.Cells[idx] = v
}

func (g *Grid) freeze() { g.frozen = true }

// SpinDecision 每次spin的输出决策，抽取盘面后即丢弃
type SpinDecision struct {
	ShouldWin     bool
	Band          Band
	AllowNearMiss bool
	WinChance     float64 // 诊断用，最终命中概率
}

// PatternMatch 单个中奖形状
type PatternMatch struct {
	Kind      MatchKind `json:"kind"`
	ShapeID   string    `json:"shape"` // 形状标识：row_0 / col_2 / diag_main / corners / cluster ...
	Positions []int     `json:"pos"`   // 盘面一维索引
	Symbol    int64     `json:"symbol"`
	Size      int       `json:"size"`            // 簇大小或连线长度
	Broken    bool      `json:"broken,omitempty"` // 破形图案（1百搭+2同符号）
}

// EvalResult 盘面评估结果
type EvalResult struct {
	Lines      []PatternMatch
	Clusters   []PatternMatch
	Pairs      []PatternMatch
	Advanced   []PatternMatch
	NearMisses []PatternMatch // 仅展示用，被真实中奖压制
}

// HasWin 是否存在真实中奖（连线/簇/图案，不含对子）
func (e *EvalResult) HasWin() bool {
	return len(e.Lines) > 0 || len(e.Clusters) > 0 || len(e.Advanced) > 0
}

// TierDrop 收藏品掉落。Source 区分直掉与碎片兑换，两者经济意义不同
type TierDrop struct {
	Tier     Tier   `json:"tier"`
	Count    int64  `json:"count"`
	Source   string `json:"source"` // direct / shard
	SymbolID int64  `json:"symbolId,omitempty"`
}

// ShardAward 进度碎片奖励
type ShardAward struct {
	Tier   Tier   `json:"tier"`
	Count  int64  `json:"count"`
	Source string `json:"source"` // 来源形状标识
}

// PayoutBreakdown 按奖励来源的诊断拆解
type PayoutBreakdown struct {
	LineWin     decimal.Decimal `json:"lineWin"`
	ClusterWin  decimal.Decimal `json:"clusterWin"`
	AdvancedWin decimal.Decimal `json:"advancedWin"`
	PairWin     decimal.Decimal `json:"pairWin"`
	TierBonus   decimal.Decimal `json:"tierBonus"`
	Multiplier  float64         `json:"multiplier"` // 本次spin生效的总倍数
	Capped      bool            `json:"capped"`
}

// Diagnostics 离线审计用诊断数据，不参与玩法逻辑
type Diagnostics struct {
	SessionRTP  float64 `json:"sessionRtp"`
	WinChance   float64 `json:"winChance"`
	TheoryEV    float64 `json:"theoryEv"` // 建议仅作参考（见 DESIGN.md）
	ForcedShape string  `json:"forcedShape,omitempty"`
}

// SpinResult 单次spin最终结果，构造后不可变
type SpinResult struct {
	Payout        decimal.Decimal `json:"payout"`
	Multiplier    float64         `json:"multiplier"`
	IsWin         bool            `json:"isWin"`
	NearMiss      bool            `json:"nearMiss"`
	Grid          *Grid           `json:"grid"`
	Matches       EvalResult      `json:"matches"`
	BonusTrigger  bool            `json:"bonusTrigger"`
	BonusAwarded  int64           `json:"bonusAwarded"` // 本次新增免费次数
	TierDrops     []TierDrop      `json:"tierDrops"`
	ShardAwards   []ShardAward    `json:"shardAwards"`
	Breakdown     PayoutBreakdown `json:"breakdown"`
	Diag          Diagnostics     `json:"diag"`
}

// SpinSceneData 免费链路的跨spin场景数据（redis持久化）
type SpinSceneData struct {
	Stage                int8    `json:"stage"`  // 运行阶段
	FreeNum              int64   `json:"freeNum"` // 剩余免费次数
	TotalBonusSpins      int64   `json:"totalBonus"` // 本链累计授予的免费次数（硬上限用）
	Triggered            bool    `json:"triggered"`  // 是否已触发过（区分首触发/re-trigger）
	PersistentMultiplier float64 `json:"pMul"`       // 免费链路持续倍数
	StickyWilds          []int   `json:"sticky"`     // 粘滞百搭位置
}

func (sc *SpinSceneData) isBonus() bool { return sc != nil && sc.Stage == _spinTypeFree }

// InBonus 是否处于免费链路（调用方据此决定是否扣款）
func (sc *SpinSceneData) InBonus() bool { return sc.isBonus() }

// Reset 回到基础模式
func (sc *SpinSceneData) Reset() {
	sc.Stage = _spinTypeBase
	sc.FreeNum = 0
	sc.TotalBonusSpins = 0
	sc.Triggered = false
	sc.PersistentMultiplier = 0
	sc.StickyWilds = nil
}

// SpinRequest 封闭的请求结构：不允许隐式补默认值（缺字段即零值，语义明确）
type SpinRequest struct {
	Mode            Mode
	Bet             decimal.Decimal
	PlayerSpinCount int64 // 玩家历史spin数，用于新手扶持
}
