package slot

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// reward.go 奖励合成器：给所有命中形状计价，叠加倍数与独立奖励通道，
// 执行经济上限，并roll收藏品掉落与碎片。最终赔付回写会话账本

// compose 合成单次spin的最终结果
func (s *spinService) compose(grid *Grid, meta *samplerMeta, eval EvalResult, d SpinDecision) *SpinResult {
	cfg := s.gameConfig
	bet := s.req.Bet
	isBonus := s.scene.isBonus()

	bd := PayoutBreakdown{}
	bd.LineWin = s.priceLines(bet, eval.Lines)
	bd.ClusterWin = s.priceClusters(bet, eval.Clusters)
	bd.AdvancedWin = s.priceAdvanced(bet, eval.Advanced)

	base := bd.LineWin.Add(bd.ClusterWin).Add(bd.AdvancedWin)

	// 倍数符号乘法叠加；免费链路的持续倍数先于本次倍数生效
	spinMult := math.Pow(cfg.Multiplier.CarrierValue, float64(meta.CarrierCount))
	applied := spinMult
	if isBonus {
		if s.scene.PersistentMultiplier <= 0 {
			s.scene.PersistentMultiplier = 1
		}
		applied = s.scene.PersistentMultiplier * spinMult
		s.scene.PersistentMultiplier = applied // 持续倍数在链内复利
	}
	bd.Multiplier = applied
	total := base.Mul(decimal.NewFromFloat(applied))

	// 独立奖励通道：加法叠加，不吃倍数
	if eval.HasWin() {
		bd.PairWin = s.pricePairs(bet, eval.Pairs)
		total = total.Add(bd.PairWin)
	}

	// 收藏品直掉roll：仅在存在最小规模的连线/簇命中时发起
	var drops []TierDrop
	if tb, drop := s.rollTierDrop(eval); drop != nil {
		bd.TierBonus = tb
		total = total.Add(tb)
		drops = append(drops, *drop)
	}

	// 经济上限：钳制并记录，不视为错误
	capAmount := bet.Mul(decimal.NewFromInt(cfg.PayoutCapMultiple))
	if total.GreaterThan(capAmount) {
		s.log.Info("payout capped",
			zap.String("payout", total.String()),
			zap.String("cap", capAmount.String()),
			zap.Int64("gameId", _gameID))
		total = capAmount
		bd.Capped = true
	}

	// 碎片roll与兑换（不计入金币赔付）
	shards := s.rollShards(eval)
	drops = append(drops, s.session.addShards(shards, cfg.Shards.RedeemThreshold)...)

	// 免费次数授予
	var awarded int64
	if meta.BonusTriggered {
		awarded = s.awardBonusSpins(meta, eval)
	}

	// near-miss展示以盘面实际形态为准：决策允许但抽取器未摆出来的不算
	isWin := eval.HasWin()
	result := &SpinResult{
		Payout:       total.Round(2),
		Multiplier:   applied,
		IsWin:        isWin,
		NearMiss:     !isWin && (meta.RespinNearMiss || len(eval.NearMisses) > 0),
		Grid:         grid,
		Matches:      eval,
		BonusTrigger: meta.BonusTriggered,
		BonusAwarded: awarded,
		TierDrops:    drops,
		ShardAwards:  shards,
		Breakdown:    bd,
	}

	// 真实中奖压制near-miss展示
	if isWin {
		result.NearMiss = false
		result.Matches.NearMisses = nil
	}

	// 结算回写，闭合下一次spin的RTP反馈环
	isBigWin := !bet.IsZero() &&
		total.GreaterThanOrEqual(bet.Mul(decimal.NewFromFloat(cfg.BigWinMultiple)))
	s.session.settle(bet, result.Payout, isWin, isBigWin, !isBonus)

	result.Diag = Diagnostics{
		SessionRTP:  s.session.CurrentRTP(),
		WinChance:   d.WinChance,
		TheoryEV:    s.theoryEV(d),
		ForcedShape: meta.ForcedShape,
	}
	return result
}

// priceLines 连线计价：bet × 稀有度赔率 × 连线长度系数 × 价差因子 × 稀有度加成
func (s *spinService) priceLines(bet decimal.Decimal, lines []PatternMatch) decimal.Decimal {
	total := decimal.Zero
	for _, m := range lines {
		total = total.Add(bet.Mul(decimal.NewFromFloat(s.lineMultiple(m))))
	}
	return total
}

func (s *spinService) lineMultiple(m PatternMatch) float64 {
	odds := s.oddsForSymbol(m.Symbol)
	lenScale := 1.0
	if m.Size > 3 && s.gameConfig.LineLenScale > 0 {
		lenScale = 1.0 + s.gameConfig.LineLenScale*float64(m.Size-3)
	}
	return float64(odds) / 100 * lenScale * s.symbolFactors(m.Symbol)
}

// oddsForSymbol 按稀有度查基础赔率；全百搭按最高稀有度计
func (s *spinService) oddsForSymbol(symbol int64) int64 {
	if symbol == _wild {
		return s.gameConfig.RarityOdds["legendary"]
	}
	key := rarityKey(s.catalog.rarityOf(symbol))
	return s.gameConfig.RarityOdds[key]
}

// symbolFactors 价差归一化因子 × 稀有度加成
func (s *spinService) symbolFactors(symbol int64) float64 {
	if symbol == _wild {
		return 1.25 * s.rarityBonus(RarityLegendary)
	}
	return s.catalog.valueFactor(symbol) * s.rarityBonus(s.catalog.rarityOf(symbol))
}

func (s *spinService) rarityBonus(r Rarity) float64 {
	if b, ok := s.gameConfig.RarityBonus[rarityKey(r)]; ok && b > 0 {
		return b
	}
	return 1.0
}

// priceClusters 簇计价：按簇大小分档
func (s *spinService) priceClusters(bet decimal.Decimal, clusters []PatternMatch) decimal.Decimal {
	total := decimal.Zero
	for _, m := range clusters {
		odds := int64(0)
		for _, bucket := range s.gameConfig.ClusterOdds {
			if m.Size >= bucket.MinSize {
				odds = bucket.Odds
			}
		}
		mult := float64(odds) / 100 * s.symbolFactors(m.Symbol)
		total = total.Add(bet.Mul(decimal.NewFromFloat(mult)))
	}
	return total
}

// priceAdvanced 图案计价；破形打折
func (s *spinService) priceAdvanced(bet decimal.Decimal, advanced []PatternMatch) decimal.Decimal {
	total := decimal.Zero
	for _, m := range advanced {
		odds, ok := s.gameConfig.AdvancedOdds[m.ShapeID]
		if !ok {
			continue
		}
		mult := float64(odds) / 100 * s.symbolFactors(m.Symbol)
		if m.Broken {
			mult *= s.gameConfig.BrokenScale
		}
		total = total.Add(bet.Mul(decimal.NewFromFloat(mult)))
	}
	return total
}

// pricePairs 对子通道：每对随机10%~20%的bet；两对及以上追加双对奖励
func (s *spinService) pricePairs(bet decimal.Decimal, pairs []PatternMatch) decimal.Decimal {
	cfg := s.gameConfig
	lo, hi := cfg.PairPayoutMin, cfg.PairPayoutMax
	if hi <= lo {
		hi = lo
	}
	total := decimal.Zero
	for range pairs {
		total = total.Add(bet.Mul(decimal.NewFromFloat(s.rng.rangeFloat(lo, hi))))
	}
	if len(pairs) >= 2 {
		total = total.Add(bet.Mul(decimal.NewFromFloat(s.rng.rangeFloat(lo, hi))))
	}
	return total
}

// rollTierDrop 收藏品直掉：先roll是否发起，再roll是否成功，
// 成功后按累积概率抽等级，中奖符号参考价乘等级加成计入赔付
func (s *spinService) rollTierDrop(eval EvalResult) (decimal.Decimal, *TierDrop) {
	cfg := s.gameConfig.TierDrop
	match := firstQualifyingMatch(eval)
	if match == nil {
		return decimal.Zero, nil
	}

	attempt := cfg.AttemptProb
	if sym, ok := s.catalog.Symbol(match.Symbol); ok && sym.Role == RoleCollectible && cfg.CollectBoost > 0 {
		attempt *= cfg.CollectBoost
	}
	if !s.rng.chance(attempt) || !s.rng.chance(cfg.SuccessProb) {
		return decimal.Zero, nil
	}

	tier, bonus := s.drawTier(cfg.Tiers)
	if tier == TierNone {
		return decimal.Zero, nil // 未映射等级：降级为不掉落
	}
	sym, ok := s.catalog.Symbol(match.Symbol)
	if !ok {
		return decimal.Zero, nil
	}
	tierBonus := sym.RefValue.Mul(decimal.NewFromFloat(bonus))
	return tierBonus, &TierDrop{Tier: tier, Count: 1, Source: "direct", SymbolID: sym.ID}
}

func firstQualifyingMatch(eval EvalResult) *PatternMatch {
	if len(eval.Lines) > 0 {
		return &eval.Lines[0]
	}
	if len(eval.Clusters) > 0 {
		return &eval.Clusters[0]
	}
	return nil
}

// drawTier 累积概率抽取收藏品等级
func (s *spinService) drawTier(tiers []tierRollConf) (Tier, float64) {
	total := 0.0
	for _, t := range tiers {
		total += t.Prob
	}
	if total <= 0 {
		return TierNone, 0
	}
	n := s.rng.Float64() * total
	for _, t := range tiers {
		if n < t.Prob {
			return tierFromString(t.Tier), t.Bonus
		}
		n -= t.Prob
	}
	return TierNone, 0
}

// rollShards 按命中形状类型逐个roll碎片
func (s *spinService) rollShards(eval EvalResult) []ShardAward {
	tables := s.gameConfig.Shards.Tables
	var awards []ShardAward

	roll := func(key, source string) {
		t, ok := tables[key]
		if !ok {
			return // 未配置的形状：降级为不发碎片
		}
		if s.rng.chance(t.Prob) {
			awards = append(awards, ShardAward{Tier: tierFromString(t.Tier), Count: 1, Source: source})
		}
	}

	for _, m := range eval.Lines {
		switch {
		case strings.HasPrefix(m.ShapeID, "col_"):
			roll("side_combo", m.ShapeID)
		case strings.HasPrefix(m.ShapeID, "row_"):
			roll("edge_combo", m.ShapeID)
		case strings.HasPrefix(m.ShapeID, "diag_"):
			roll("diag_pair", m.ShapeID)
		}
	}
	for _, m := range eval.Clusters {
		tier := clusterTier(s.catalog.rarityOf(m.Symbol), m.Size)
		switch tier {
		case TierS:
			roll("cluster_s", m.ShapeID)
		case TierA:
			roll("cluster_a", m.ShapeID)
		case TierB:
			roll("cluster_b", m.ShapeID)
		case TierC:
			roll("cluster_c", m.ShapeID)
		}
	}
	return awards
}

// clusterTier 簇奖励等级：由符号稀有度定基准，超大簇上调一档
func clusterTier(r Rarity, size int) Tier {
	var tier Tier
	switch r {
	case RarityCommon:
		tier = TierC
	case RarityRare:
		tier = TierB
	case RarityLegendary:
		tier = TierA
	default:
		return TierNone // 未映射稀有度
	}
	if size >= 9 && tier > TierS {
		tier--
	}
	return tier
}

// awardBonusSpins 免费次数授予：首触发/re-trigger基数 + 全百搭中奖加成 +
// 每百搭加成，受免费链硬上限约束
func (s *spinService) awardBonusSpins(meta *samplerMeta, eval EvalResult) int64 {
	cfg := s.gameConfig.Bonus
	base := cfg.FirstTriggerSpins
	if s.scene.Triggered {
		base = cfg.RetriggerSpins
	}
	awarded := base + cfg.PerWildBonus*int64(len(meta.WildPositions))
	if len(meta.WildPositions) >= _bonusTriggerWilds && eval.HasWin() {
		awarded += cfg.AllWildWinBonus
	}

	ceiling := cfg.Ceiling
	if ceiling <= 0 {
		ceiling = _bonusSpinCeiling
	}
	if remain := ceiling - s.scene.TotalBonusSpins; awarded > remain {
		awarded = remain
	}
	if awarded < 0 {
		awarded = 0
	}
	return awarded
}

// theoryEV 理论EV拆解，仅供离线审计参考（掉落表与EV模型一致性见DESIGN.md）
func (s *spinService) theoryEV(d SpinDecision) float64 {
	cfg := s.gameConfig
	weights := cfg.BandWeights
	total := 0
	for _, w := range weights {
		total += w
	}
	if total == 0 {
		return 0
	}
	bandMean := [4]float64{
		float64(cfg.RarityOdds["common"]) / 100,
		float64(cfg.RarityOdds["rare"]) / 100,
		float64(cfg.RarityOdds["legendary"]) / 100,
		float64(cfg.RarityOdds["legendary"]) / 100 * cfg.Multiplier.CarrierValue,
	}
	mean := 0.0
	for i, w := range weights {
		mean += float64(w) / float64(total) * bandMean[i]
	}
	return d.WinChance * mean
}
