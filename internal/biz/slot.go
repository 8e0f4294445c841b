package biz

import (
	"context"
	"time"

	"nftspin/internal/conf"
	"nftspin/internal/game/slot"

	"github.com/google/uuid"
	"github.com/google/wire"
	"github.com/shopspring/decimal"
	"github.com/yola1107/kratos/v2/log"
	"go.uber.org/zap"
)

// ProviderSet is biz providers.
var ProviderSet = wire.NewSet(NewSlotUsecase)

// SpinOrder 单次spin的下注订单
type SpinOrder struct {
	SN        string
	PlayerID  string
	GameID    int64
	Mode      int8
	Bet       decimal.Decimal
	Payout    decimal.Decimal
	IsWin     bool
	FreeSpin  bool
	CreatedAt time.Time
}

// SettlementEvent 结算事件，发往下游对账
type SettlementEvent struct {
	SN        string  `json:"sn"`
	PlayerID  string  `json:"playerId"`
	GameID    int64   `json:"gameId"`
	Bet       string  `json:"bet"`
	Payout    string  `json:"payout"`
	IsWin     bool    `json:"isWin"`
	FreeSpin  bool    `json:"freeSpin"`
	Rtp       float64 `json:"rtp"`
	Timestamp int64   `json:"ts"`
}

// SlotRepo 持久化与事件出口
type SlotRepo interface {
	LoadSession(ctx context.Context, playerID string) (*slot.SessionState, error)
	SaveSession(ctx context.Context, playerID string, s *slot.SessionState) error
	LoadScene(ctx context.Context, playerID string) (*slot.SpinSceneData, error)
	SaveScene(ctx context.Context, playerID string, sc *slot.SpinSceneData) error
	SaveOrder(ctx context.Context, order *SpinOrder) error
	LoadCatalog(ctx context.Context) ([]slot.Symbol, error)
	PublishSettlement(ctx context.Context, ev *SettlementEvent) error
}

// SlotUsecase 玩法用例：会话装载、引擎调用、落库与事件分发
type SlotUsecase struct {
	conf   *conf.Game
	repo   SlotRepo
	engine *slot.Engine
	log    *log.Helper
}

// NewSlotUsecase 构造用例。目录按配置从库加载，失败时回退内置目录
func NewSlotUsecase(c *conf.Game, repo SlotRepo, logger log.Logger) (*SlotUsecase, error) {
	helper := log.NewHelper(logger)

	var catalog *slot.Catalog
	if c != nil && c.CatalogFromDB {
		symbols, err := repo.LoadCatalog(context.Background())
		if err != nil {
			helper.Warnf("load catalog from db: %v, falling back to builtin", err)
		} else if cat, err := slot.NewCatalog(symbols); err != nil {
			helper.Warnf("build catalog: %v, falling back to builtin", err)
		} else {
			catalog = cat
		}
	}

	opts := []slot.Option{}
	if c != nil && c.ConfigOverride != "" {
		opts = append(opts, slot.WithConfigRaw(c.ConfigOverride))
	}
	zl, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	opts = append(opts, slot.WithLogger(zl.Named("slot")))

	engine, err := slot.New(catalog, opts...)
	if err != nil {
		return nil, err
	}
	return &SlotUsecase{conf: c, repo: repo, engine: engine, log: helper}, nil
}

// Spin 执行一次spin：装载会话与场景、调用引擎、持久化并分发结算事件。
// 订单与事件失败不回滚spin结果，只记日志（对账侧补偿）
func (uc *SlotUsecase) Spin(ctx context.Context, playerID string, req *slot.SpinRequest) (*slot.SpinResult, error) {
	if playerID == "" {
		return nil, slot.InvalidRequestParams
	}
	if err := uc.checkBet(req); err != nil {
		return nil, err
	}

	session, err := uc.repo.LoadSession(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		session = slot.NewSessionState()
	}
	scene, err := uc.repo.LoadScene(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if scene == nil {
		scene = &slot.SpinSceneData{}
	}
	freeSpin := scene.InBonus()

	result, err := uc.engine.Spin(session, scene, req)
	if err != nil {
		return nil, err
	}

	if err = uc.repo.SaveScene(ctx, playerID, scene); err != nil {
		return nil, err
	}
	if err = uc.repo.SaveSession(ctx, playerID, session); err != nil {
		return nil, err
	}

	order := &SpinOrder{
		SN:        uuid.NewString(),
		PlayerID:  playerID,
		GameID:    slot.GameID,
		Mode:      int8(req.Mode),
		Bet:       req.Bet,
		Payout:    result.Payout,
		IsWin:     result.IsWin,
		FreeSpin:  freeSpin,
		CreatedAt: time.Now(),
	}
	if err = uc.repo.SaveOrder(ctx, order); err != nil {
		uc.log.WithContext(ctx).Errorf("save order %s: %v", order.SN, err)
	}
	if err = uc.repo.PublishSettlement(ctx, &SettlementEvent{
		SN:        order.SN,
		PlayerID:  playerID,
		GameID:    slot.GameID,
		Bet:       req.Bet.String(),
		Payout:    result.Payout.String(),
		IsWin:     result.IsWin,
		FreeSpin:  freeSpin,
		Rtp:       session.CurrentRTP(),
		Timestamp: order.CreatedAt.Unix(),
	}); err != nil {
		uc.log.WithContext(ctx).Errorf("publish settlement %s: %v", order.SN, err)
	}
	return result, nil
}

// Catalog 当前生效的符号目录
func (uc *SlotUsecase) Catalog(ctx context.Context) []slot.Symbol {
	return uc.engine.Catalog().Symbols()
}

// Session 查询会话账本
func (uc *SlotUsecase) Session(ctx context.Context, playerID string) (*slot.SessionState, error) {
	if playerID == "" {
		return nil, slot.InvalidRequestParams
	}
	session, err := uc.repo.LoadSession(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		session = slot.NewSessionState()
	}
	return session, nil
}

func (uc *SlotUsecase) checkBet(req *slot.SpinRequest) error {
	if req == nil {
		return slot.InvalidRequestParams
	}
	if uc.conf == nil {
		return nil
	}
	if uc.conf.MinBet > 0 && req.Bet.LessThan(decimal.NewFromFloat(uc.conf.MinBet)) {
		return slot.InvalidRequestParams
	}
	if uc.conf.MaxBet > 0 && req.Bet.GreaterThan(decimal.NewFromFloat(uc.conf.MaxBet)) {
		return slot.InvalidRequestParams
	}
	return nil
}
