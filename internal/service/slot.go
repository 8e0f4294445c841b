package service

import (
	"nftspin/internal/biz"
	"nftspin/internal/game/slot"

	"github.com/google/wire"
	"github.com/shopspring/decimal"
	khttp "github.com/yola1107/kratos/v2/transport/http"
)

// ProviderSet is service providers.
var ProviderSet = wire.NewSet(NewSlotService)

// SlotService is a slot game service.
type SlotService struct {
	uc *biz.SlotUsecase
}

// NewSlotService new a slot service.
func NewSlotService(uc *biz.SlotUsecase) *SlotService {
	return &SlotService{uc: uc}
}

// RegisterRoutes 挂载HTTP路由
func (s *SlotService) RegisterRoutes(srv *khttp.Server) {
	r := srv.Route("/v1/slot")
	r.POST("/spin", s.Spin)
	r.GET("/catalog", s.Catalog)
	r.GET("/session/{playerId}", s.Session)
}

// SpinRequest spin接口入参
type SpinRequest struct {
	PlayerID  string `json:"playerId"`
	Mode      int8   `json:"mode"` // 1经典 2扩展 3大盘
	Bet       string `json:"bet"`
	SpinCount int64  `json:"spinCount"` // 玩家历史spin数
}

func (s *SlotService) Spin(ctx khttp.Context) error {
	var in SpinRequest
	if err := ctx.Bind(&in); err != nil {
		return err
	}
	bet, err := decimal.NewFromString(in.Bet)
	if err != nil {
		return slot.InvalidRequestParams
	}
	result, err := s.uc.Spin(ctx, in.PlayerID, &slot.SpinRequest{
		Mode:            slot.Mode(in.Mode),
		Bet:             bet,
		PlayerSpinCount: in.SpinCount,
	})
	if err != nil {
		return err
	}
	return ctx.Result(200, result)
}

func (s *SlotService) Catalog(ctx khttp.Context) error {
	return ctx.Result(200, s.uc.Catalog(ctx))
}

func (s *SlotService) Session(ctx khttp.Context) error {
	playerID := ctx.Vars().Get("playerId")
	session, err := s.uc.Session(ctx, playerID)
	if err != nil {
		return err
	}
	return ctx.Result(200, session)
}
