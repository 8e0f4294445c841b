package slot

import (
	"github.com/shopspring/decimal"
)

// SessionState 会话账本。仅归属单一会话，spin结束时由账本写入，
// 控制器只读。调用方负责同一会话内spin串行
type SessionState struct {
	TotalSpins        int64           `json:"totalSpins"`
	TotalWagered      decimal.Decimal `json:"totalWagered"`
	TotalPaid         decimal.Decimal `json:"totalPaid"`
	ConsecutiveWins   int64           `json:"winStreak"`
	ConsecutiveLosses int64           `json:"lossStreak"`
	SpinsSinceBigWin  int64           `json:"sinceBigWin"`
	ShardBalances     map[Tier]int64  `json:"shards"` // 按等级累计的碎片余额
}

func NewSessionState() *SessionState {
	return &SessionState{ShardBalances: make(map[Tier]int64)}
}

// CurrentRTP 当前会话回报率，未投注时为0
func (s *SessionState) CurrentRTP() float64 {
	if s.TotalWagered.IsZero() {
		return 0
	}
	rtp, _ := s.TotalPaid.Div(s.TotalWagered).Float64()
	return rtp
}

// settle spin结算回写，闭合RTP反馈环。
// wagered=false表示免费spin（不计投注只计赔付）
func (s *SessionState) settle(bet, payout decimal.Decimal, isWin, isBigWin, wagered bool) {
	s.TotalSpins++
	if wagered {
		s.TotalWagered = s.TotalWagered.Add(bet)
	}
	s.TotalPaid = s.TotalPaid.Add(payout)

	if isWin {
		s.ConsecutiveWins++
		s.ConsecutiveLosses = 0
	} else {
		s.ConsecutiveLosses++
		s.ConsecutiveWins = 0
	}

	if isBigWin {
		s.SpinsSinceBigWin = 0
	} else {
		s.SpinsSinceBigWin++
	}
}

// addShards 累计碎片，达到阈值自动兑换为收藏品掉落（不计入金币赔付）
func (s *SessionState) addShards(awards []ShardAward, threshold int64) []TierDrop {
	if len(awards) == 0 {
		return nil
	}
	if s.ShardBalances == nil {
		s.ShardBalances = make(map[Tier]int64)
	}
	var redeemed []TierDrop
	for _, a := range awards {
		if a.Tier == TierNone {
			continue // 未映射稀有度：降级为不发碎片
		}
		s.ShardBalances[a.Tier] += a.Count
		for s.ShardBalances[a.Tier] >= threshold {
			s.ShardBalances[a.Tier] -= threshold
			redeemed = append(redeemed, TierDrop{Tier: a.Tier, Count: 1, Source: "shard"})
		}
	}
	return redeemed
}
