package data

import (
	"context"
	"fmt"
	"time"

	"nftspin/internal/biz"
	"nftspin/internal/game/slot"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/streadway/amqp"
	"github.com/yola1107/kratos/v2/log"
)

const (
	_sceneTTL   = 7 * 24 * time.Hour
	_routingKey = "slot.settlement"
)

func sceneKey(playerID string) string   { return fmt.Sprintf("scene-%d:%s", slot.GameID, playerID) }
func sessionKey(playerID string) string { return fmt.Sprintf("session-%d:%s", slot.GameID, playerID) }

type slotRepo struct {
	data *Data
	log  *log.Helper
}

// NewSlotRepo .
func NewSlotRepo(data *Data, logger log.Logger) biz.SlotRepo {
	return &slotRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

func (r *slotRepo) LoadScene(ctx context.Context, playerID string) (*slot.SpinSceneData, error) {
	raw, err := r.data.rdb.Get(ctx, sceneKey(playerID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	sc := &slot.SpinSceneData{}
	if err = jsoniter.UnmarshalFromString(raw, sc); err != nil {
		// 场景损坏按新场景处理，不阻断spin
		r.log.WithContext(ctx).Errorf("corrupt scene for %s: %v", playerID, err)
		return nil, nil
	}
	return sc, nil
}

func (r *slotRepo) SaveScene(ctx context.Context, playerID string, sc *slot.SpinSceneData) error {
	raw, err := jsoniter.MarshalToString(sc)
	if err != nil {
		return err
	}
	return r.data.rdb.Set(ctx, sceneKey(playerID), raw, _sceneTTL).Err()
}

func (r *slotRepo) LoadSession(ctx context.Context, playerID string) (*slot.SessionState, error) {
	raw, err := r.data.rdb.Get(ctx, sessionKey(playerID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	s := slot.NewSessionState()
	if err = jsoniter.UnmarshalFromString(raw, s); err != nil {
		r.log.WithContext(ctx).Errorf("corrupt session for %s: %v", playerID, err)
		return nil, nil
	}
	return s, nil
}

func (r *slotRepo) SaveSession(ctx context.Context, playerID string, s *slot.SessionState) error {
	raw, err := jsoniter.MarshalToString(s)
	if err != nil {
		return err
	}
	return r.data.rdb.Set(ctx, sessionKey(playerID), raw, _sceneTTL).Err()
}

func (r *slotRepo) SaveOrder(ctx context.Context, order *biz.SpinOrder) error {
	po := &spinOrderPO{
		Sn:        order.SN,
		PlayerId:  order.PlayerID,
		GameId:    order.GameID,
		Mode:      order.Mode,
		Bet:       order.Bet.String(),
		Payout:    order.Payout.String(),
		IsWin:     order.IsWin,
		FreeSpin:  order.FreeSpin,
		CreatedAt: order.CreatedAt,
	}
	_, err := r.data.db.Context(ctx).Insert(po)
	return err
}

// LoadCatalog 从collection_item表装载符号目录。
// 单条脏数据跳过并告警，整表为空交由上层回退内置目录
func (r *slotRepo) LoadCatalog(ctx context.Context) ([]slot.Symbol, error) {
	var items []collectionItemPO
	if err := r.data.db.Context(ctx).Where("enabled = ?", true).Asc("id").Find(&items); err != nil {
		return nil, err
	}
	symbols := make([]slot.Symbol, 0, len(items))
	for _, it := range items {
		price, err := decimal.NewFromString(it.Price)
		if err != nil {
			r.log.WithContext(ctx).Warnf("collection_item %d: bad price %q", it.Id, it.Price)
			continue
		}
		symbols = append(symbols, slot.Symbol{
			ID:       it.Id,
			Name:     it.Name,
			ImageKey: it.ImageKey,
			RefValue: price,
			Rarity:   rarityFromString(it.Rarity),
			Role:     roleFromString(it.Role),
		})
	}
	return symbols, nil
}

func (r *slotRepo) PublishSettlement(ctx context.Context, ev *biz.SettlementEvent) error {
	body, err := jsoniter.Marshal(ev)
	if err != nil {
		return err
	}
	return r.data.mq.Publish(r.data.exchange, _routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
}

func rarityFromString(s string) slot.Rarity {
	switch s {
	case "common":
		return slot.RarityCommon
	case "rare":
		return slot.RarityRare
	case "legendary":
		return slot.RarityLegendary
	}
	return 0
}

func roleFromString(s string) slot.Role {
	if s == "collectible" {
		return slot.RoleCollectible
	}
	return slot.RoleRegular
}
