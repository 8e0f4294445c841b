package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"nftspin/internal/game/slot"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	_ "go.uber.org/automaxprocs"
)

// 离线RTP仿真器：固定种子跑大样本，输出RTP与各奖励通道统计。
// 用法: simulator -spins 1000000 -seed 20117 -mode 2 -bet 1
var (
	flagSpins = flag.Int64("spins", 1_000_000, "base spin rounds")
	flagSeed  = flag.Int64("seed", 20117, "rng seed")
	flagMode  = flag.Int("mode", 2, "grid mode: 1 classic, 2 expanded, 3 large")
	flagBet   = flag.Float64("bet", 1, "bet per spin")
)

func main() {
	flag.Parse()

	logger, err := zap.NewDevelopment(zap.IncreaseLevel(zap.ErrorLevel))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	engine, err := slot.New(nil, slot.WithSeed(*flagSeed), slot.WithLogger(logger))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	session := slot.NewSessionState()
	scene := &slot.SpinSceneData{}
	bet := decimal.NewFromFloat(*flagBet)
	mode := slot.Mode(*flagMode)
	start := time.Now()

	var (
		baseRounds, freeRounds, baseWinTimes   int64
		freeTriggerCount, nearMissCount        int64
		capCount, tierDropCount, shardRedeemed int64
		baseWin, freeWin, totalBet             float64
	)

	for baseRounds < *flagSpins {
		isFree := scene.InBonus()
		result, err := engine.Spin(session, scene, &slot.SpinRequest{
			Mode: mode, Bet: bet, PlayerSpinCount: baseRounds,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "spin %d: %v\n", baseRounds, err)
			os.Exit(1)
		}

		win := result.Payout.InexactFloat64()
		if isFree {
			freeRounds++
			freeWin += win
		} else {
			baseRounds++
			totalBet += *flagBet
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
				shardRedeemed++
			}
		}

		if baseRounds%100_000 == 0 && !isFree {
			fmt.Printf("\rRuntime=%d baseRtp=%.4f%% freeRtp=%.4f%% Rtp=%.4f%% baseWinRate=%.4f%% freeTriggerRate=%.4f%% elapsed=%v",
				baseRounds,
				baseWin*100/totalBet,
				freeWin*100/totalBet,
				(baseWin+freeWin)*100/totalBet,
				float64(baseWinTimes)*100/float64(baseRounds),
				float64(freeTriggerCount)*100/float64(baseRounds),
				time.Since(start).Round(time.Millisecond))
		}
	}

	fmt.Printf("\n总投注=%.0f 总赢=%.2f 基础赢=%.2f 免费赢=%.2f 最终RTP=%.4f\n",
		totalBet, baseWin+freeWin, baseWin, freeWin, (baseWin+freeWin)/totalBet)
	fmt.Printf("触发数=%d 免费局=%d nearMiss=%d 封顶=%d 掉落=%d 碎片兑换=%d 碎片余额=%v\n",
		freeTriggerCount, freeRounds, nearMissCount, capCount, tierDropCount, shardRedeemed, session.ShardBalances)
}
