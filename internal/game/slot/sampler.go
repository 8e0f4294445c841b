package slot

// sampler.go 盘面抽取器：按权重填充盘面，并保证盘面与决策一致
// （赢局先注入中奖形状，再放装饰性特殊符号；输局打破一切意外命中）

// samplerMeta 抽取过程的附带元数据
type samplerMeta struct {
	WildPositions  []int        // 百搭位置
	Protected      map[int]bool // 不允许后续覆盖的位置
	CarrierCount   int          // 倍数符号个数
	ForcedShape    string       // 注入的中奖形状
	BonusTriggered bool         // 本次盘面触发免费游戏（3百搭）
	RespinNearMiss bool         // respin仪式的炸胡展示
}

// sample 生成与决策一致的盘面
func (s *spinService) sample(d SpinDecision) (*Grid, *samplerMeta) {
	grid := newGrid(s.req.Mode)
	meta := &samplerMeta{Protected: make(map[int]bool)}
	isBonus := s.scene.isBonus()

	// 基础填充：逐格按类别权重抽取
	weights := s.categoryWeights(isBonus)
	for i := range grid.Cells {
		grid.set(i, s.drawSymbol(weights))
	}

	// 免费链路的粘滞百搭优先落位
	for _, p := range s.scene.StickyWilds {
		if p >= 0 && p < len(grid.Cells) {
			grid.set(p, _wild)
			meta.Protected[p] = true
		}
	}

	// 赢局：先注入中奖形状，之后才放装饰符号。
	// 输局：基础填充的意外命中先打破，百搭落位才有干净的参照盘面
	if d.ShouldWin {
		s.forceWinShape(grid, meta, d.Band)
	} else {
		s.enforceLoss(grid, meta)
	}

	// 百搭个数独立抽取（0~3），向目标数对齐。
	// 经典模式输局封顶1个：1x3盘面上两个百搭必然成线，无法既留百搭又不中
	maxWilds := _bonusTriggerWilds
	if s.req.Mode == ModeClassic && !d.ShouldWin {
		maxWilds = 1
	}
	s.placeWilds(grid, meta, maxWilds, !d.ShouldWin)

	// 输局强制：near-miss展示落位后再整体校验一次。
	// 决策即权威，输局盘面不得有任何真实命中，否则闭环修正
	// 只能调节决策命中率，对实际赔付流失去控制
	if !d.ShouldWin {
		if d.AllowNearMiss {
			s.forceNearMiss(grid, meta)
		}
		s.enforceLoss(grid, meta)
	}

	switch len(meta.WildPositions) {
	case _bonusTriggerWilds:
		meta.BonusTriggered = true
	case _bonusTriggerWilds - 1:
		// respin仪式：锁定两个百搭，追加尝试补足第三个
		if !isBonus {
			s.respinRitual(grid, meta, !d.ShouldWin)
		}
	}

	// 倍数符号仅出现在赢局，且不覆盖受保护/百搭格
	if d.ShouldWin {
		s.placeCarriers(grid, meta, d.Band, isBonus)
	}

	grid.freeze()
	return grid, meta
}

// categoryWeights 取模式权重并施加百搭/低价符号的场景倍率
func (s *spinService) categoryWeights(isBonus bool) []int {
	w := s.gameConfig.modeConf(s.req.Mode).CategoryWeights
	wildBoost := s.gameConfig.WildBaseBoost
	commonBoost := 1.0
	if isBonus {
		wildBoost = s.gameConfig.WildBonusBoost
		commonBoost = s.gameConfig.SmallWinBonusBoost
	}
	if wildBoost <= 0 {
		wildBoost = 1.0
	}
	if commonBoost <= 0 {
		commonBoost = 1.0
	}
	return []int{
		int(float64(w.Common) * commonBoost),
		w.Rare,
		w.Epic,
		int(float64(w.Wild) * wildBoost),
		w.Collect,
	}
}

// drawSymbol 按类别抽一个符号ID
func (s *spinService) drawSymbol(weights []int) int64 {
	switch s.rng.pickWeighted(weights) {
	case 0:
		return s.pickByRarity(RarityCommon)
	case 1:
		return s.pickByRarity(RarityRare)
	case 2:
		return s.pickByRarity(RarityLegendary)
	case 3:
		return _wild
	default:
		if ids := s.catalog.CollectibleIDs(); len(ids) > 0 {
			return pickOne(s.rng, ids)
		}
		return s.pickByRarity(RarityCommon)
	}
}

func (s *spinService) pickByRarity(r Rarity) int64 {
	if ids := s.catalog.IDsByRarity(r); len(ids) > 0 {
		return pickOne(s.rng, ids)
	}
	return pickOne(s.rng, s.catalog.RegularIDs())
}

// bandSymbol 按奖级档位选中奖符号：小奖低价符号，大奖高价符号
func (s *spinService) bandSymbol(band Band) int64 {
	switch band {
	case BandSmall:
		return s.pickByRarity(RarityCommon)
	case BandMedium:
		return s.pickByRarity(RarityRare)
	default:
		return s.pickByRarity(RarityLegendary)
	}
}

// forceWinShape 在盘面上写入一条完整中奖线并保护其格子。
// 受保护格此时只可能是粘滞百搭，百搭本就替代任意符号，跳过不重写
func (s *spinService) forceWinShape(grid *Grid, meta *samplerMeta, band Band) {
	lines := winLines(grid.Mode)
	line := pickOne(s.rng, lines)
	symbol := s.bandSymbol(band)
	for _, p := range line.cells {
		if meta.Protected[p] {
			continue
		}
		grid.set(p, symbol)
		meta.Protected[p] = true
	}
	meta.ForcedShape = line.id
}

// placeWilds 百搭个数独立抽取并对齐到目标数。
// mustLose时每个落位单独校验：放入百搭不得形成真实命中，放不下就少放
func (s *spinService) placeWilds(grid *Grid, meta *samplerMeta, maxWilds int, mustLose bool) {
	target := s.rng.pickWeighted(s.gameConfig.WildCountWeights)
	if target > maxWilds {
		target = maxWilds
	}

	// 当前盘面已有的百搭（基础填充或粘滞产生）
	var current []int
	for i, v := range grid.Cells {
		if v == _wild {
			current = append(current, i)
		}
	}

	switch {
	case len(current) > target:
		// 多出的百搭降级为普通符号（粘滞位除外）
		for _, p := range current[target:] {
			if meta.Protected[p] {
				continue
			}
			grid.set(p, s.pickByRarity(RarityCommon))
		}
	case len(current) < target:
		free := s.freeCells(grid, meta, true)
		for len(current) < target && len(free) > 0 {
			i := s.rng.IntN(len(free))
			p := free[i]
			free = append(free[:i], free[i+1:]...)
			if mustLose && s.wildCreatesWin(grid, p) {
				continue
			}
			grid.set(p, _wild)
			current = append(current, p)
		}
	}

	meta.WildPositions = collectWilds(grid)
}

func collectWilds(grid *Grid) []int {
	var wilds []int
	for i, v := range grid.Cells {
		if v == _wild {
			wilds = append(wilds, i)
		}
	}
	return wilds
}

// wildCreatesWin 试放百搭后评估再回退，判断该格是否安全
func (s *spinService) wildCreatesWin(grid *Grid, p int) bool {
	old := grid.Cells[p]
	grid.set(p, _wild)
	eval := s.evaluate(grid)
	grid.set(p, old)
	return eval.HasWin()
}

// respinRitual 两个百搭的respin仪式：锁定已有百搭，至多两次追加尝试，
// 每次以小概率补足第三个百搭（触发免费），并独立roll炸胡展示。
// mustLose时补位同样要求不形成命中
func (s *spinService) respinRitual(grid *Grid, meta *samplerMeta, mustLose bool) {
	for _, p := range meta.WildPositions {
		meta.Protected[p] = true
	}
	cfg := s.gameConfig.Respin
	attempts := cfg.Attempts
	if attempts <= 0 || attempts > _respinMaxAttempts {
		attempts = _respinMaxAttempts
	}
	for i := 0; i < attempts && len(meta.WildPositions) < _bonusTriggerWilds; i++ {
		if s.rng.chance(cfg.CompleteProb) {
			free := s.freeCells(grid, meta, true)
			if mustLose {
				var safe []int
				for _, p := range free {
					if !s.wildCreatesWin(grid, p) {
						safe = append(safe, p)
					}
				}
				free = safe
			}
			if len(free) > 0 {
				p := pickOne(s.rng, free)
				grid.set(p, _wild)
				meta.Protected[p] = true
				meta.WildPositions = append(meta.WildPositions, p)
			}
		}
		// 炸胡展示与补百搭互不排斥
		if s.rng.chance(cfg.NearMissProb) {
			meta.RespinNearMiss = true
		}
	}
	if len(meta.WildPositions) >= _bonusTriggerWilds {
		meta.BonusTriggered = true
	}
}

// placeCarriers 放置倍数符号：赢局限定，不覆盖受保护/百搭格
func (s *spinService) placeCarriers(grid *Grid, meta *samplerMeta, band Band, isBonus bool) {
	mc := s.gameConfig.modeConf(s.req.Mode)
	prob := mc.MultiSpawnProb
	if isBonus && s.gameConfig.Multiplier.BonusScale > 0 {
		prob *= s.gameConfig.Multiplier.BonusScale
	}
	// mega档位保底一个倍数符号
	if band == BandMega || s.rng.chance(prob) {
		if s.spawnCarrier(grid, meta) && isBonus {
			// 免费模式下第二个倍数符号可独立叠加
			if s.rng.chance(s.gameConfig.Multiplier.StackProbBonus) {
				s.spawnCarrier(grid, meta)
			}
		}
	}
}

func (s *spinService) spawnCarrier(grid *Grid, meta *samplerMeta) bool {
	free := s.freeCells(grid, meta, true)
	if len(free) == 0 {
		return false
	}
	p := pickOne(s.rng, free)
	grid.set(p, _multiCarr)
	meta.Protected[p] = true
	meta.CarrierCount++
	return true
}

// freeCells 列出可覆盖格（excludeWild时同时跳过百搭格）
func (s *spinService) freeCells(grid *Grid, meta *samplerMeta, excludeWild bool) []int {
	var free []int
	for i, v := range grid.Cells {
		if meta.Protected[i] || v == _multiCarr {
			continue
		}
		if excludeWild && v == _wild {
			continue
		}
		free = append(free, i)
	}
	return free
}

// enforceLoss 输局强制：反复评估并打破意外命中，直到盘面不再中奖。
// 完全由受保护格与百搭构成的命中无法打破（如粘滞百搭恰好对齐成线），
// 放弃并由闭环修正吸收残余
func (s *spinService) enforceLoss(grid *Grid, meta *samplerMeta) {
	for round := 0; round < _enforceLossRounds; round++ {
		eval := s.evaluate(grid)
		if !eval.HasWin() {
			return
		}
		if !s.breakMatch(grid, meta, firstWin(eval)) {
			return
		}
	}
}

func firstWin(eval EvalResult) *PatternMatch {
	if len(eval.Lines) > 0 {
		return &eval.Lines[0]
	}
	if len(eval.Clusters) > 0 {
		return &eval.Clusters[0]
	}
	return &eval.Advanced[0]
}

// breakMatch 打破单个命中：优先重写普通格；
// 百搭足以独立撑起命中时（如 W,W,X 线），只能降级一个非保护百搭
func (s *spinService) breakMatch(grid *Grid, meta *samplerMeta, m *PatternMatch) bool {
	var plain, wilds []int
	for _, p := range m.Positions {
		if meta.Protected[p] {
			continue
		}
		switch grid.Cells[p] {
		case _wild:
			wilds = append(wilds, p)
		case _multiCarr:
		default:
			plain = append(plain, p)
		}
	}
	if len(plain) > 0 && !wildsCarryMatch(grid, m) {
		p := pickOne(s.rng, plain)
		if next, ok := s.differentSymbol(m.Symbol, grid.Cells[p]); ok {
			grid.set(p, next)
			return true
		}
	}
	if len(wilds) > 0 {
		p := pickOne(s.rng, wilds)
		if next, ok := s.differentSymbol(m.Symbol, _wild); ok {
			grid.set(p, next)
			meta.WildPositions = collectWilds(grid)
			return true
		}
	}
	return false
}

// wildsCarryMatch 命中格中百搭数≥规模-1时，重写唯一的普通格
// 只会换一个符号继续成形，打不破
func wildsCarryMatch(grid *Grid, m *PatternMatch) bool {
	wilds := 0
	for _, p := range m.Positions {
		if grid.Cells[p] == _wild {
			wilds++
		}
	}
	return wilds >= len(m.Positions)-1
}

// differentSymbol 抽一个与给定两个符号都不同的普通符号；
// 随机若干次未中改顺序扫描，目录只剩冲突符号时才失败
func (s *spinService) differentSymbol(a, b int64) (int64, bool) {
	ids := s.catalog.RegularIDs()
	for try := 0; try < 8; try++ {
		id := pickOne(s.rng, ids)
		if id != a && id != b {
			return id, true
		}
	}
	for _, id := range ids {
		if id != a && id != b {
			return id, true
		}
	}
	return 0, false
}

// forceNearMiss 构造差一个的near-miss展示（不产生真实中奖）
func (s *spinService) forceNearMiss(grid *Grid, meta *samplerMeta) {
	lines := winLines(grid.Mode)
	line := pickOne(s.rng, lines)
	symbol := s.pickByRarity(RarityCommon)
	for i, p := range line.cells {
		if meta.Protected[p] || grid.Cells[p] == _wild || grid.Cells[p] == _multiCarr {
			return // 与已有布置冲突时放弃，near-miss只是展示
		}
		if i < len(line.cells)-1 {
			grid.set(p, symbol)
		} else {
			// 末位放不同的非百搭符号
			for try := 0; try < 8; try++ {
				other := s.pickByRarity(RarityRare)
				if other != symbol {
					grid.set(p, other)
					break
				}
			}
		}
	}
}
