package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"time"

	"github.com/streadway/amqp"
)

// 结算事件消费联调工具：绑定settlement交换机，打印收到的结算事件。
// 服务端每次spin会向exchange发一条slot.settlement路由的JSON消息
const (
	rabbitMQHost     = "127.0.0.1"
	rabbitMQPort     = "5672"
	rabbitMQUser     = "guest"
	rabbitMQPassword = "guest"
	exchangeName     = "nftspin-settlement"
	queueName        = "nftspin-settlement-debug"
	routingKey       = "slot.settlement"
)

// buildRabbitMQURL 构建RabbitMQ连接URL（自动编码特殊字符）
func buildRabbitMQURL() string {
	encodedUser := url.QueryEscape(rabbitMQUser)
	encodedPassword := url.QueryEscape(rabbitMQPassword)
	return fmt.Sprintf("amqp://%s:%s@%s:%s/", encodedUser, encodedPassword, rabbitMQHost, rabbitMQPort)
}

type settlementEvent struct {
	SN       string  `json:"sn"`
	PlayerID string  `json:"playerId"`
	GameID   int64   `json:"gameId"`
	Bet      string  `json:"bet"`
	Payout   string  `json:"payout"`
	IsWin    bool    `json:"isWin"`
	FreeSpin bool    `json:"freeSpin"`
	Rtp      float64 `json:"rtp"`
}

// Consumer 消费者
func Consumer(ctx context.Context) error {
	conn, err := amqp.Dial(buildRabbitMQURL())
	if err != nil {
		return fmt.Errorf("连接RabbitMQ失败: %w", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("创建通道失败: %w", err)
	}
	defer ch.Close()

	// 声明交换机（与服务端一致）
	err = ch.ExchangeDeclare(
		exchangeName, // 交换机名称
		"direct",     // 类型
		true,         // 持久化
		false,        // 自动删除
		false,        // 内部
		false,        // 无等待
		nil,          // 参数
	)
	if err != nil {
		return fmt.Errorf("声明交换机失败: %w", err)
	}

	// 调试队列
	_, err = ch.QueueDeclare(queueName, true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("声明队列失败: %w", err)
	}
	if err = ch.QueueBind(queueName, routingKey, exchangeName, false, nil); err != nil {
		return fmt.Errorf("绑定队列失败: %w", err)
	}

	// 设置QoS（每次只处理一条消息）
	if err = ch.Qos(1, 0, false); err != nil {
		return fmt.Errorf("设置QoS失败: %w", err)
	}

	msgs, err := ch.Consume(queueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("注册消费者失败: %w", err)
	}

	log.Println("[消费者] 已启动，等待结算事件...")

	for {
		select {
		case <-ctx.Done():
			log.Println("[消费者] 已停止")
			return nil
		case msg, ok := <-msgs:
			if !ok {
				log.Println("[消费者] 消息通道已关闭")
				return nil
			}

			var ev settlementEvent
			if err := json.Unmarshal(msg.Body, &ev); err != nil {
				log.Printf("[消费者] 解析失败: %v, body=%s", err, string(msg.Body))
			} else {
				log.Printf("[消费者] ✓ sn=%s player=%s bet=%s payout=%s win=%v free=%v rtp=%.4f",
					ev.SN, ev.PlayerID, ev.Bet, ev.Payout, ev.IsWin, ev.FreeSpin, ev.Rtp)
			}

			if err = msg.Ack(false); err != nil {
				log.Printf("[消费者] 确认消息失败: %v", err)
			}
		}
	}
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := Consumer(ctx); err != nil {
			log.Fatalf("[消费者] 错误: %v", err)
		}
	}()

	// 运行5分钟后停止
	log.Println("==========================================")
	log.Println("结算事件监听中，5分钟后自动停止...")
	log.Println("==========================================")
	time.Sleep(5 * time.Minute)

	cancel()
	time.Sleep(1 * time.Second)
	log.Println("程序已停止")
}
