package slot

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

// gameConfigJson 游戏数学配置，来自内嵌JSON（主题侧可整体替换）
type gameConfigJson struct {
	TargetRTP float64 `json:"target_rtp"` // 长期回报率目标

	// 结果控制
	BaseHitFrequency   float64 `json:"base_hit_frequency"`     // 基础命中率
	NewPlayerRampSpins int64   `json:"new_player_ramp_spins"`  // 新手扶持spin数
	NewPlayerRampBoost float64 `json:"new_player_ramp_boost"`  // 新手扶持起始倍率（线性衰减到1）
	RTPInnerThreshold  float64 `json:"rtp_inner_threshold"`    // RTP修正内阈值
	RTPOuterThreshold  float64 `json:"rtp_outer_threshold"`    // RTP修正外阈值
	RTPInnerScale      float64 `json:"rtp_inner_scale"`        // 内带修正倍率（对称使用）
	RTPOuterScale      float64 `json:"rtp_outer_scale"`        // 外带修正倍率
	LossStreakSoft     int64   `json:"loss_streak_soft"`       // 连败软阈值
	LossStreakSoftMult float64 `json:"loss_streak_soft_mult"`
	LossStreakHard     int64   `json:"loss_streak_hard"`       // 连败硬阈值
	LossStreakHardMult float64 `json:"loss_streak_hard_mult"`
	WinStreakLimit     int64   `json:"win_streak_limit"` // 连胜抑制阈值
	WinStreakMult      float64 `json:"win_streak_mult"`
	DroughtSpins       int64   `json:"drought_spins"` // 大奖干旱阈值
	DroughtMult        float64 `json:"drought_mult"`
	WinChanceFloor     float64 `json:"win_chance_floor"`
	WinChanceCeiling   float64 `json:"win_chance_ceiling"`
	NearMissProb       float64 `json:"near_miss_prob"` // 输局标记near-miss的概率
	BigWinMultiple     float64 `json:"big_win_multiple"` // 达到此倍数计为大奖

	// 波动档位权重 small/medium/big/mega
	BandWeights        []int `json:"band_weights"`
	CatchupBandWeights []int `json:"catchup_band_weights"` // 严重落后目标时的追赶权重

	// 装饰性宽恕参数，独立于控制环（默认关闭，见 DESIGN.md）
	Forgiveness forgivenessConf `json:"forgiveness"`

	// 盘面抽取
	Modes            map[string]modeConf `json:"modes"`
	WildCountWeights []int               `json:"wild_count_weights"` // 0~3个百搭的权重
	WildBaseBoost    float64             `json:"wild_base_boost"`    // 普通模式百搭权重倍率
	WildBonusBoost   float64             `json:"wild_bonus_boost"`   // 免费模式百搭权重倍率
	SmallWinBonusBoost float64           `json:"small_win_bonus_boost"` // 免费模式低价符号权重倍率
	Respin           respinConf          `json:"respin"`

	// 倍数符号
	Multiplier multiplierConf `json:"multiplier"`

	// 免费游戏
	Bonus bonusConf `json:"bonus"`

	// 计价
	RarityOdds    map[string]int64 `json:"rarity_odds"`     // 按稀有度的基础赔率（百分比整数，300=3倍）
	LineLenScale  float64          `json:"line_len_scale"`  // 每超出3连的额外系数
	RarityBonus   map[string]float64 `json:"rarity_bonus"`
	ClusterOdds   []clusterOddsConf  `json:"cluster_odds"` // 按簇大小的赔率
	MinClusterSize int               `json:"min_cluster_size"`
	AdvancedOdds  map[string]int64 `json:"advanced_odds"` // 图案赔率（百分比整数）
	BrokenScale   float64          `json:"broken_scale"`  // 破形图案折扣
	PairPayoutMin float64          `json:"pair_payout_min"` // 对子赔付下限（相对bet）
	PairPayoutMax float64          `json:"pair_payout_max"`
	PayoutCapMultiple int64        `json:"payout_cap_multiple"` // 总赔付上限（相对bet）

	// 收藏品与碎片
	TierDrop TierDropConf         `json:"tier_drop"`
	Shards   shardConf            `json:"shards"`
}

type modeConf struct {
	CategoryWeights categoryWeights `json:"category_weights"`
	MultiSpawnProb  float64         `json:"multi_spawn_prob"` // 赢局倍数符号出现概率
}

// categoryWeights 抽取类别权重：普通/稀有/史诗/百搭/收藏
type categoryWeights struct {
	Common  int `json:"common"`
	Rare    int `json:"rare"`
	Epic    int `json:"epic"`
	Wild    int `json:"wild"`
	Collect int `json:"collect"`
}

type respinConf struct {
	Attempts     int     `json:"attempts"`      // 追加尝试次数
	CompleteProb float64 `json:"complete_prob"` // 每次尝试补足第三个百搭的概率
	NearMissProb float64 `json:"near_miss_prob"`
}

type multiplierConf struct {
	CarrierValue   float64 `json:"carrier_value"`    // 单个倍数符号的倍率
	BonusScale     float64 `json:"bonus_scale"`      // 免费模式出现概率放大
	StackProbBonus float64 `json:"stack_prob_bonus"` // 免费模式第二个倍数符号概率
}

type bonusConf struct {
	FirstTriggerSpins int64 `json:"first_trigger_spins"`
	RetriggerSpins    int64 `json:"retrigger_spins"`
	AllWildWinBonus   int64 `json:"all_wild_win_bonus"` // 全百搭且中奖的追加次数
	PerWildBonus      int64 `json:"per_wild_bonus"`     // 每个百搭追加次数
	Ceiling           int64 `json:"ceiling"`            // 免费链硬上限
}

type clusterOddsConf struct {
	MinSize int   `json:"min_size"`
	Odds    int64 `json:"odds"`
}

type TierDropConf struct {
	AttemptProb   float64        `json:"attempt_prob"` // 是否发起roll
	SuccessProb   float64        `json:"success_prob"` // roll成功概率
	CollectBoost  float64        `json:"collect_boost"` // 中奖符号为收藏符号时attempt放大
	Tiers         []tierRollConf `json:"tiers"`          // 累积概率表 S/A/B/C
}

type tierRollConf struct {
	Tier  string  `json:"tier"`
	Prob  float64 `json:"prob"`  // 累积抽取用权重
	Bonus float64 `json:"bonus"` // 参考价加成倍率
}

type shardConf struct {
	RedeemThreshold int64                    `json:"redeem_threshold"`
	Tables          map[string]shardRollConf `json:"tables"` // side_combo/edge_combo/diag_pair/cluster_c..s
}

type shardRollConf struct {
	Tier string  `json:"tier"`
	Prob float64 `json:"prob"`
}

type forgivenessConf struct {
	ForceWinProb float64 `json:"force_win_prob"` // 输局强制改赢（装饰性，默认0）
	LateForceProb float64 `json:"late_force_prob"`
}

func parseGameConfig(raw string) (*gameConfigJson, error) {
	cfg := &gameConfigJson{}
	if err := jsoniter.UnmarshalFromString(raw, cfg); err != nil {
		return nil, fmt.Errorf("parse game config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *gameConfigJson) validate() error {
	if c.TargetRTP <= 0 || c.TargetRTP >= 2 {
		return fmt.Errorf("invalid target_rtp: %v", c.TargetRTP)
	}
	if c.BaseHitFrequency <= 0 || c.BaseHitFrequency >= 1 {
		return fmt.Errorf("invalid base_hit_frequency: %v", c.BaseHitFrequency)
	}
	if len(c.BandWeights) != 4 {
		return fmt.Errorf("band_weights must have 4 entries, got %d", len(c.BandWeights))
	}
	if sumWeights(c.BandWeights) <= 0 {
		return fmt.Errorf("band_weights sum <= 0")
	}
	if len(c.WildCountWeights) != 4 {
		return fmt.Errorf("wild_count_weights must have 4 entries, got %d", len(c.WildCountWeights))
	}
	for _, name := range []string{"classic", "expanded", "large"} {
		mc, ok := c.Modes[name]
		if !ok {
			return fmt.Errorf("mode %q missing", name)
		}
		w := mc.CategoryWeights
		if w.Common+w.Rare+w.Epic+w.Wild+w.Collect <= 0 {
			return fmt.Errorf("mode %q: category weight sum <= 0", name)
		}
	}
	if len(c.RarityOdds) == 0 {
		return fmt.Errorf("rarity_odds is empty")
	}
	if c.PayoutCapMultiple <= 0 {
		return fmt.Errorf("invalid payout_cap_multiple: %d", c.PayoutCapMultiple)
	}
	if c.Bonus.Ceiling <= 0 {
		c.Bonus.Ceiling = _bonusSpinCeiling
	}
	if c.Shards.RedeemThreshold <= 0 {
		c.Shards.RedeemThreshold = _shardRedeemDefault
	}
	if c.MinClusterSize <= 0 {
		c.MinClusterSize = 5
	}
	return nil
}

func sumWeights(ws []int) int {
	total := 0
	for _, w := range ws {
		total += w
	}
	return total
}

func (c *gameConfigJson) modeConf(mode Mode) modeConf {
	switch mode {
	case ModeExpanded:
		return c.Modes["expanded"]
	case ModeLarge:
		return c.Modes["large"]
	default:
		return c.Modes["classic"]
	}
}

func tierFromString(s string) Tier {
	switch s {
	case "S":
		return TierS
	case "A":
		return TierA
	case "B":
		return TierB
	case "C":
		return TierC
	}
	return TierNone
}

func rarityKey(r Rarity) string {
	switch r {
	case RarityCommon:
		return "common"
	case RarityRare:
		return "rare"
	case RarityLegendary:
		return "legendary"
	}
	return ""
}
