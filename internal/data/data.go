package data

import (
	"fmt"
	"net/url"

	"nftspin/internal/conf"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
	"github.com/streadway/amqp"
	kredis "github.com/yola1107/kratos/v2/library/db/redis"
	kxorm "github.com/yola1107/kratos/v2/library/db/xorm"
	"github.com/yola1107/kratos/v2/log"
	"xorm.io/xorm"
)

// ProviderSet is data providers.
var ProviderSet = wire.NewSet(NewData, NewRedis, NewMysql, NewRabbitMQ, NewSlotRepo)

// Data .
type Data struct {
	db       *xorm.Engine
	rdb      redis.UniversalClient
	mq       *amqp.Channel
	exchange string
}

// NewData .
func NewData(c *conf.Data, logger log.Logger, db *xorm.Engine, rdb redis.UniversalClient, mq *amqp.Channel) (*Data, func(), error) {
	if err := db.Sync2(new(spinOrderPO), new(collectionItemPO)); err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		log.NewHelper(logger).Info("closing the data resources")
	}
	exchange := ""
	if c.Rabbitmq != nil {
		exchange = c.Rabbitmq.Exchange
	}
	return &Data{
		db:       db,
		rdb:      rdb,
		mq:       mq,
		exchange: exchange,
	}, cleanup, nil
}

func NewRedis(c *conf.Data, logger log.Logger) redis.UniversalClient {
	return kredis.NewClient(kredis.WithAddress(c.Redis.Addr))
}

func NewMysql(c *conf.Data, logger log.Logger) (*xorm.Engine, func(), error) {
	engine, err := kxorm.NewEngine(
		kxorm.WithDriver(c.Database.Driver),
		kxorm.WithDataSource(c.Database.Source),
	)
	if err != nil {
		return nil, nil, err
	}
	return engine, func() { engine.Close() }, nil
}

func NewRabbitMQ(c *conf.Data, logger log.Logger) (*amqp.Channel, func(), error) {
	mc := c.Rabbitmq
	// URL编码用户名和密码
	addr := fmt.Sprintf("amqp://%s:%s@%s:%d/%s",
		url.QueryEscape(mc.Username), url.QueryEscape(mc.Password),
		mc.Host, mc.Port, url.PathEscape(mc.Vhost))
	conn, err := amqp.Dial(addr)
	if err != nil {
		return nil, nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, err
	}
	if err = ch.ExchangeDeclare(mc.Exchange, "direct", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, nil, err
	}
	cleanup := func() {
		ch.Close()
		conn.Close()
	}
	return ch, cleanup, nil
}
