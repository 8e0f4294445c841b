package slot

import "errors"

const _gameID = 20117
const GameID = 20117

// 特殊符号ID（目录符号从1开始，特殊符号从101开始）
const (
	_blank     int64 = 0   // 空白
	_wild      int64 = 101 // 百搭符号
	_multiCarr int64 = 102 // 倍数符号
)

// 玩法模式
type Mode int8

const (
	ModeClassic  Mode = 1 // 经典 1x3
	ModeExpanded Mode = 2 // 扩展 3x3
	ModeLarge    Mode = 3 // 大盘 5x5
)

// 盘面尺寸
const (
	_classicRows, _classicCols   = 1, 3
	_expandedRows, _expandedCols = 3, 3
	_largeRows, _largeCols       = 5, 5
)

// 奖励档位
type Band int8

const (
	BandSmall Band = iota // 小奖
	BandMedium
	BandBig
	BandMega
)

// 收藏品等级
type Tier int8

const (
	TierNone Tier = iota
	TierS
	TierA
	TierB
	TierC
)

func (t Tier) String() string {
	switch t {
	case TierS:
		return "S"
	case TierA:
		return "A"
	case TierB:
		return "B"
	case TierC:
		return "C"
	}
	return ""
}

// 稀有度
type Rarity int8

const (
	RarityCommon Rarity = iota + 1
	RarityRare
	RarityLegendary
)

// 符号角色
type Role int8

const (
	RoleRegular Role = iota
	RoleWild
	RoleMultiplier
	RoleCollectible
)

// 中奖形状类别
type MatchKind int8

const (
	KindLine MatchKind = iota + 1
	KindCluster
	KindPair
	KindAdvanced
)

// 免费游戏
const (
	_bonusTriggerWilds  = 3  // 触发免费游戏所需百搭数
	_bonusSpinCeiling   = 50 // 免费次数硬上限（含re-trigger）
	_respinMaxAttempts  = 2  // respin补百搭的最大尝试次数
	_shardRedeemDefault = 10 // 碎片兑换阈值默认值
	_enforceLossRounds  = 32 // 输局强制的最大修正轮数
)

// 运行阶段
const (
	_spinTypeBase int8 = 1 // 普通
	_spinTypeFree int8 = 2 // 免费
)

var (
	InternalServerError  = errors.New("internal server error")
	InvalidRequestParams = errors.New("invalid request params")
	ErrEmptyCatalog      = errors.New("symbol catalog is empty")
	ErrNilConfig         = errors.New("game config is nil")
)
