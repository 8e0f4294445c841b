package slot

import (
	"fmt"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

const (
	_benchmarkRounds           int64 = 1e6
	_benchmarkProgressInterval int64 = 1e5
	_convergenceTolerance            = 0.01
)

// TestRtp 长跑仿真：固定种子跑1e6次spin，校验会话RTP收敛到目标±1%
func TestRtp(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping rtp simulation in short mode")
	}

	e := newTestEngine(t, 20117)
	session := NewSessionState()
	scene := &SpinSceneData{}
	bet := decimal.NewFromInt(1)
	start := time.Now()
	buf := &strings.Builder{}

	var (
		baseRounds, freeRounds                 int64
		baseWin, freeWin, totalBet             float64
		baseWinTimes, freeTriggerCount         int64
		nearMissCount, capCount, tierDropCount int64
		shardRedeemCount                       int64
	)

	for baseRounds < _benchmarkRounds {
		isFree := scene.isBonus()
		result, err := e.Spin(session, scene, &SpinRequest{Mode: ModeExpanded, Bet: bet, PlayerSpinCount: baseRounds})
		if err != nil {
			t.Fatalf("spin %d: %v", baseRounds, err)
		}

		win := result.Payout.InexactFloat64()
		if isFree {
			freeRounds++
			freeWin += win
		} else {
			baseRounds++
			totalBet += 1
			baseWin += win
			if result.IsWin {
				baseWinTimes++
			}
			if result.BonusTrigger && result.BonusAwarded > 0 {
				freeTriggerCount++
			}
		}
		if result.NearMiss {
			nearMissCount++
		}
		if result.Breakdown.Capped {
			capCount++
		}
		for _, d := range result.TierDrops {
			tierDropCount++
			if d.Source == "shard" {
				shardRedeemCount++
			}
		}

		if baseRounds%_benchmarkProgressInterval == 0 && !isFree {
			buf.Reset()
			fmt.Fprintf(buf, "\rRuntime=%d baseRtp=%.4f%% freeRtp=%.4f%% Rtp=%.4f%% baseWinRate=%.4f%% freeTriggerRate=%.4f%% elapsed=%v\n",
				baseRounds,
				baseWin*100/totalBet,
				freeWin*100/totalBet,
				(baseWin+freeWin)*100/totalBet,
				float64(baseWinTimes)*100/float64(baseRounds),
				float64(freeTriggerCount)*100/float64(baseRounds),
				time.Since(start).Round(time.Millisecond),
			)
			fmt.Print(buf.String())
		}
	}

	rtp := (baseWin + freeWin) / totalBet
	fmt.Printf("总投注=%.0f 总赢=%.2f 基础赢=%.2f 免费赢=%.2f 最终RTP=%.4f 触发数=%d 免费局=%d nearMiss=%d 封顶=%d 掉落=%d 碎片兑换=%d\n",
		totalBet, baseWin+freeWin, baseWin, freeWin, rtp,
		freeTriggerCount, freeRounds, nearMissCount, capCount, tierDropCount, shardRedeemCount)

	target := 0.95
	if math.Abs(rtp-target) > _convergenceTolerance {
		t.Fatalf("rtp %.4f not within %.2f of target %.2f", rtp, _convergenceTolerance, target)
	}

	// 会话账本与仿真口径一致
	if got := session.CurrentRTP(); math.Abs(got-rtp) > 1e-6 {
		t.Fatalf("session rtp %.6f != simulated %.6f", got, rtp)
	}
}

// TestRtpNewPlayerWindow 新手窗口命中率应明显高于稳态
func TestRtpNewPlayerWindow(t *testing.T) {
	winRate := func(rampActive bool) float64 {
		wins := 0
		const rounds = 50000
		for i := 0; i < rounds; i++ {
			// 每spin独立新会话，排除RTP闭环影响，只看首spin命中率
			e := newTestEngine(t, int64(i)+1)
			spinCount := int64(1000)
			if rampActive {
				spinCount = 0
			}
			result, err := e.Spin(NewSessionState(), &SpinSceneData{}, &SpinRequest{
				Mode: ModeClassic, Bet: decimal.NewFromInt(1), PlayerSpinCount: spinCount,
			})
			if err != nil {
				t.Fatalf("spin: %v", err)
			}
			if result.IsWin {
				wins++
			}
		}
		return float64(wins) / rounds
	}

	fresh := winRate(true)
	steady := winRate(false)
	if fresh <= steady*1.5 {
		t.Fatalf("new player win rate %.4f not boosted over steady %.4f", fresh, steady)
	}
}
