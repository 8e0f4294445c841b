package slot

// outcome.go 结果控制器：决定本次spin输赢与奖级档位。
// 核心是闭环RTP修正；新手扶持/连败保护/干旱保底都只调节命中率，
// 概率一律钳制到[0,1]，配置异常时退化为基础命中率而不报错

// decide 生成本次spin决策
func (s *spinService) decide() SpinDecision {
	cfg := s.gameConfig
	chance := cfg.BaseHitFrequency

	chance *= s.newPlayerRamp()
	chance *= s.rtpCorrection()
	chance *= s.streakDamper()
	chance *= s.droughtGuard()

	chance = clampProb(chance, cfg.WinChanceFloor, cfg.WinChanceCeiling)

	d := SpinDecision{WinChance: chance}
	d.ShouldWin = s.rng.chance(chance)

	// 装饰性宽恕roll：与控制环解耦，默认关闭（见DESIGN.md）
	if !d.ShouldWin && s.rng.chance(cfg.Forgiveness.ForceWinProb) {
		d.ShouldWin = true
	}
	if !d.ShouldWin && s.session.ConsecutiveLosses >= cfg.LossStreakSoft &&
		s.rng.chance(cfg.Forgiveness.LateForceProb) {
		d.ShouldWin = true
	}

	if d.ShouldWin {
		d.Band = s.pickBand()
	} else {
		d.AllowNearMiss = s.rng.chance(cfg.NearMissProb)
	}
	return d
}

// newPlayerRamp 新手扶持：前N次spin从起始倍率线性衰减到1
func (s *spinService) newPlayerRamp() float64 {
	cfg := s.gameConfig
	n := cfg.NewPlayerRampSpins
	if n <= 0 || s.req.PlayerSpinCount >= n {
		return 1.0
	}
	boost := cfg.NewPlayerRampBoost
	if boost < 1.0 {
		return 1.0
	}
	progress := float64(s.req.PlayerSpinCount) / float64(n)
	return boost - (boost-1.0)*progress
}

// rtpCorrection 闭环修正：会话RTP低于目标上调命中率，高于目标对称下调。
// 两档梯度（内带/外带）
func (s *spinService) rtpCorrection() float64 {
	cfg := s.gameConfig
	if s.session.TotalWagered.IsZero() {
		return 1.0
	}
	dev := cfg.TargetRTP - s.session.CurrentRTP()

	inner, outer := cfg.RTPInnerThreshold, cfg.RTPOuterThreshold
	innerScale, outerScale := cfg.RTPInnerScale, cfg.RTPOuterScale
	if innerScale <= 0 {
		innerScale = 1.0
	}
	if outerScale <= 0 {
		outerScale = 1.0
	}

	switch {
	case dev > outer:
		return outerScale
	case dev > inner:
		return innerScale
	case dev < -outer:
		return 1.0 / outerScale
	case dev < -inner:
		return 1.0 / innerScale
	default:
		return 1.0
	}
}

// streakDamper 连败保护与连胜抑制
func (s *spinService) streakDamper() float64 {
	cfg := s.gameConfig
	switch {
	case cfg.LossStreakHard > 0 && s.session.ConsecutiveLosses >= cfg.LossStreakHard:
		return cfg.LossStreakHardMult
	case cfg.LossStreakSoft > 0 && s.session.ConsecutiveLosses >= cfg.LossStreakSoft:
		return cfg.LossStreakSoftMult
	case cfg.WinStreakLimit > 0 && s.session.ConsecutiveWins >= cfg.WinStreakLimit:
		return cfg.WinStreakMult
	}
	return 1.0
}

// droughtGuard 距上次大奖太久则轻微上调
func (s *spinService) droughtGuard() float64 {
	cfg := s.gameConfig
	if cfg.DroughtSpins > 0 && s.session.SpinsSinceBigWin >= cfg.DroughtSpins {
		return cfg.DroughtMult
	}
	return 1.0
}

// pickBand 按波动配置抽取奖级档位；会话严重落后目标时切换追赶权重
func (s *spinService) pickBand() Band {
	cfg := s.gameConfig
	weights := cfg.BandWeights
	if !s.session.TotalWagered.IsZero() &&
		cfg.TargetRTP-s.session.CurrentRTP() > cfg.RTPOuterThreshold &&
		len(cfg.CatchupBandWeights) == 4 {
		weights = cfg.CatchupBandWeights
	}
	return Band(s.rng.pickWeighted(weights))
}

func clampProb(p, floor, ceiling float64) float64 {
	if floor < 0 {
		floor = 0
	}
	if ceiling <= 0 || ceiling > 1 {
		ceiling = 1
	}
	if p < floor {
		return floor
	}
	if p > ceiling {
		return ceiling
	}
	return p
}
