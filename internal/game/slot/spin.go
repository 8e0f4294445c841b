package slot

import (
	"go.uber.org/zap"
)

// spinService 单次spin的执行上下文：请求、场景、会话账本与本局临时数据。
// 一次spin一个实例，不跨spin复用
type spinService struct {
	req        *SpinRequest
	scene      *SpinSceneData
	session    *SessionState
	catalog    *Catalog
	gameConfig *gameConfigJson
	rng        *rng
	log        *zap.Logger
}

// baseSpin 主流程：决策 → 抽盘 → 评估 → 合成结算 → 场景推进
func (s *spinService) baseSpin() *SpinResult {
	wasBonus := s.scene.isBonus()

	d := s.decide()
	grid, meta := s.sample(d)
	eval := s.evaluate(grid)
	result := s.compose(grid, meta, eval, d)

	s.advanceScene(meta, result, wasBonus)

	s.log.Debug("spin done",
		zap.Int64("gameId", _gameID),
		zap.Bool("win", result.IsWin),
		zap.String("payout", result.Payout.String()),
		zap.Float64("sessionRtp", result.Diag.SessionRTP),
		zap.Bool("bonus", wasBonus))
	return result
}

// advanceScene 免费链路状态机推进。
// 触发判定（首触发/re-trigger基数）已在合成阶段完成，这里只做状态迁移
func (s *spinService) advanceScene(meta *samplerMeta, result *SpinResult, wasBonus bool) {
	// 粘滞百搭只延续一次：respin仪式未补足第三个百搭时，
	// 锁定的两个百搭带入下一spin再给一次机会
	hadSticky := len(s.scene.StickyWilds) > 0
	s.scene.StickyWilds = nil
	// 经典1x3盘面不做粘滞：两个粘滞百搭会让下一spin必中
	ritualIncomplete := !wasBonus && !meta.BonusTriggered &&
		s.req.Mode != ModeClassic &&
		len(meta.WildPositions) == _bonusTriggerWilds-1
	if ritualIncomplete && !hadSticky {
		s.scene.StickyWilds = append([]int(nil), meta.WildPositions...)
	}

	if wasBonus {
		s.scene.FreeNum--
	}
	if result.BonusTrigger && result.BonusAwarded > 0 {
		if !wasBonus {
			// 首次进入免费链路：持续倍数从1起步
			s.scene.Stage = _spinTypeFree
			s.scene.PersistentMultiplier = 1
			s.scene.StickyWilds = nil
		}
		s.scene.FreeNum += result.BonusAwarded
		s.scene.TotalBonusSpins += result.BonusAwarded
		s.scene.Triggered = true
	}

	// 免费次数耗尽，链路终结，持续倍数随链清零
	if wasBonus && s.scene.FreeNum <= 0 {
		s.scene.Reset()
	}
}

// checkSpinReq 请求参数校验。封闭请求结构，缺省即零值，不隐式补默认
func checkSpinReq(req *SpinRequest) error {
	if req == nil {
		return InvalidRequestParams
	}
	switch req.Mode {
	case ModeClassic, ModeExpanded, ModeLarge:
	default:
		return InvalidRequestParams
	}
	if !req.Bet.IsPositive() {
		return InvalidRequestParams
	}
	if req.PlayerSpinCount < 0 {
		return InvalidRequestParams
	}
	return nil
}
