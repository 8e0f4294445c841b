package slot

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestPayoutCapExact(t *testing.T) {
	s := newTestService(t, 101)
	s.req.Bet = decimal.NewFromInt(1)
	s.scene.Stage = _spinTypeFree
	s.scene.FreeNum = 10
	s.scene.PersistentMultiplier = 1 << 20 // 链内复利推到天文数字

	grid := buildGrid(ModeExpanded,
		symA, symA, symA,
		symA, symA, symA,
		symA, symA, symA,
	)
	eval := s.evaluate(grid)
	meta := &samplerMeta{Protected: map[int]bool{}, CarrierCount: 2}
	result := s.compose(grid, meta, eval, SpinDecision{ShouldWin: true, Band: BandMega})

	want := decimal.NewFromInt(s.gameConfig.PayoutCapMultiple) // bet=1
	if !result.Payout.Equal(want) {
		t.Fatalf("capped payout = %s, want %s", result.Payout, want)
	}
	if !result.Breakdown.Capped {
		t.Fatalf("capped flag not set")
	}
}

func TestPersistentMultiplierCompounds(t *testing.T) {
	s := newTestService(t, 103)
	s.scene.Stage = _spinTypeFree
	s.scene.FreeNum = 10
	s.scene.PersistentMultiplier = 1

	grid := buildGrid(ModeExpanded,
		symA, symA, symA,
		symB, symC, symB,
		symC, symB, symC,
	)
	eval := s.evaluate(grid)
	carrier := s.gameConfig.Multiplier.CarrierValue // 2.0

	// 免费spin 1与2各带一个倍数符号
	meta := &samplerMeta{Protected: map[int]bool{}, CarrierCount: 1}
	r1 := s.compose(grid, meta, eval, SpinDecision{ShouldWin: true})
	if r1.Multiplier != carrier {
		t.Fatalf("spin1 multiplier = %v, want %v", r1.Multiplier, carrier)
	}
	r2 := s.compose(grid, meta, eval, SpinDecision{ShouldWin: true})
	if r2.Multiplier != carrier*carrier {
		t.Fatalf("spin2 multiplier = %v, want %v", r2.Multiplier, carrier*carrier)
	}

	// spin 3无新倍数符号：生效倍数 = 已累积的4x
	meta3 := &samplerMeta{Protected: map[int]bool{}}
	r3 := s.compose(grid, meta3, eval, SpinDecision{ShouldWin: true})
	if r3.Multiplier != carrier*carrier {
		t.Fatalf("spin3 multiplier = %v, want accumulated %v", r3.Multiplier, carrier*carrier)
	}
}

func TestBaseModeIgnoresPersistentMultiplier(t *testing.T) {
	s := newTestService(t, 105)
	s.scene.PersistentMultiplier = 8 // 残留值不得影响普通模式

	grid := buildGrid(ModeExpanded,
		symA, symA, symA,
		symB, symC, symB,
		symC, symB, symC,
	)
	eval := s.evaluate(grid)
	meta := &samplerMeta{Protected: map[int]bool{}, CarrierCount: 1}
	r := s.compose(grid, meta, eval, SpinDecision{ShouldWin: true})
	if r.Multiplier != s.gameConfig.Multiplier.CarrierValue {
		t.Fatalf("base mode multiplier = %v, want %v", r.Multiplier, s.gameConfig.Multiplier.CarrierValue)
	}
}

func TestPairChannelOnlyOnWins(t *testing.T) {
	s := newTestService(t, 107)

	// 有对子但无真实中奖：对子通道不出钱
	grid := buildGrid(ModeExpanded,
		symA, symA, symB,
		symC, symC, symA,
		symB, symA, symC,
	)
	eval := s.evaluate(grid)
	if eval.HasWin() {
		t.Fatalf("fixture unexpectedly wins: %+v", eval)
	}
	if len(eval.Pairs) == 0 {
		t.Fatalf("fixture has no pairs")
	}
	meta := &samplerMeta{Protected: map[int]bool{}}
	r := s.compose(grid, meta, eval, SpinDecision{})
	if !r.Breakdown.PairWin.IsZero() {
		t.Fatalf("pair payout on losing spin: %s", r.Breakdown.PairWin)
	}
	if !r.Payout.IsZero() {
		t.Fatalf("losing spin paid %s", r.Payout)
	}
}

func TestNearMissFlagNeedsGridEvidence(t *testing.T) {
	s := newTestService(t, 111)

	// 盘面既无中奖也无差一个的形态
	grid := buildGrid(ModeExpanded,
		1, 2, 3,
		4, 5, 6,
		7, 8, 9,
	)
	eval := s.evaluate(grid)
	if eval.HasWin() || len(eval.NearMisses) > 0 {
		t.Fatalf("fixture not neutral: %+v", eval)
	}

	// 决策允许near-miss但抽取器没摆出来：不得上报
	meta := &samplerMeta{Protected: map[int]bool{}}
	if r := s.compose(grid, meta, eval, SpinDecision{AllowNearMiss: true}); r.NearMiss {
		t.Fatalf("near-miss flag without grid evidence")
	}

	// respin炸胡展示独立于盘面形态
	meta2 := &samplerMeta{Protected: map[int]bool{}, RespinNearMiss: true}
	if r := s.compose(grid, meta2, eval, SpinDecision{}); !r.NearMiss {
		t.Fatalf("respin tease lost")
	}
}

func TestPairPayoutRange(t *testing.T) {
	s := newTestService(t, 109)
	bet := decimal.NewFromInt(100)
	lo := bet.Mul(decimal.NewFromFloat(s.gameConfig.PairPayoutMin))
	hi := bet.Mul(decimal.NewFromFloat(s.gameConfig.PairPayoutMax))
	pairs := []PatternMatch{{Kind: KindPair, Symbol: symA, Size: 2}}
	for i := 0; i < 1000; i++ {
		got := s.pricePairs(bet, pairs)
		if got.LessThan(lo) || got.GreaterThan(hi) {
			t.Fatalf("pair payout %s outside [%s, %s]", got, lo, hi)
		}
	}
}

func TestClusterTierMapping(t *testing.T) {
	cases := []struct {
		rarity Rarity
		size   int
		want   Tier
	}{
		{RarityCommon, 5, TierC},
		{RarityRare, 5, TierB},
		{RarityLegendary, 5, TierA},
		{RarityLegendary, 9, TierS}, // 超大簇上调一档
		{RarityRare, 9, TierA},
		{0, 7, TierNone}, // 未映射稀有度降级
	}
	for _, c := range cases {
		if got := clusterTier(c.rarity, c.size); got != c.want {
			t.Fatalf("clusterTier(%v, %d) = %v, want %v", c.rarity, c.size, got, c.want)
		}
	}
}

func TestDrawTierDistribution(t *testing.T) {
	s := newTestService(t, 111)
	counts := map[Tier]int{}
	for i := 0; i < 100000; i++ {
		tier, _ := s.drawTier(s.gameConfig.TierDrop.Tiers)
		counts[tier]++
	}
	// C(0.50) > B(0.30) > A(0.15) > S(0.05)
	if !(counts[TierC] > counts[TierB] && counts[TierB] > counts[TierA] && counts[TierA] > counts[TierS]) {
		t.Fatalf("tier distribution out of order: %v", counts)
	}
	if counts[TierS] == 0 {
		t.Fatalf("S tier never drawn")
	}
}

func TestBonusSpinAwards(t *testing.T) {
	s := newTestService(t, 113)
	cfg := s.gameConfig.Bonus
	meta := &samplerMeta{WildPositions: []int{0, 4, 8}, BonusTriggered: true}
	winEval := EvalResult{Lines: []PatternMatch{{Kind: KindLine, Symbol: symA, Size: 3}}}

	// 首触发：基数8 + 3百搭×1 + 全百搭中奖+2
	if got := s.awardBonusSpins(meta, winEval); got != cfg.FirstTriggerSpins+3*cfg.PerWildBonus+cfg.AllWildWinBonus {
		t.Fatalf("first trigger award = %d", got)
	}

	// re-trigger：基数5
	s.scene.Triggered = true
	noWin := EvalResult{}
	if got := s.awardBonusSpins(meta, noWin); got != cfg.RetriggerSpins+3*cfg.PerWildBonus {
		t.Fatalf("retrigger award = %d", got)
	}

	// 硬上限：链内累计不超过ceiling
	s.scene.TotalBonusSpins = cfg.Ceiling - 2
	if got := s.awardBonusSpins(meta, noWin); got != 2 {
		t.Fatalf("ceiling clamp award = %d, want 2", got)
	}
	s.scene.TotalBonusSpins = cfg.Ceiling
	if got := s.awardBonusSpins(meta, noWin); got != 0 {
		t.Fatalf("at ceiling award = %d, want 0", got)
	}
}

func TestShardRollUnmappedShapeDegrades(t *testing.T) {
	s := newTestService(t, 115)
	// 只配置部分形状表；advanced命中不在碎片表内，必须静默跳过
	eval := EvalResult{Advanced: []PatternMatch{{Kind: KindAdvanced, ShapeID: "corners", Symbol: symA, Size: 4}}}
	if got := s.rollShards(eval); len(got) != 0 {
		t.Fatalf("unmapped shape produced shards: %+v", got)
	}
}
