package main

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
)

// spin接口联调工具：循环调用 /v1/slot/spin 并打印结果摘要
const (
	baseURL  = "http://0.0.0.0:8000"
	playerID = "debug-player-1"
)

type spinRequest struct {
	PlayerID  string `json:"playerId"`
	Mode      int8   `json:"mode"`
	Bet       string `json:"bet"`
	SpinCount int64  `json:"spinCount"`
}

func main() {
	log.Println("start http client")
	defer log.Println("close http client")

	client := &http.Client{Timeout: 5 * time.Second}
	var seed int64

	for {
		seed++
		callSpin(client, seed)
		time.Sleep(time.Second)
	}
}

func callSpin(client *http.Client, seed int64) {
	body, _ := jsoniter.Marshal(&spinRequest{
		PlayerID:  playerID,
		Mode:      2,
		Bet:       "1",
		SpinCount: seed,
	})
	resp, err := client.Post(baseURL+"/v1/slot/spin", "application/json", bytes.NewReader(body))
	if err != nil {
		log.Printf("spin %d: %v", seed, err)
		return
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("spin %d: read body: %v", seed, err)
		return
	}
	if resp.StatusCode != http.StatusOK {
		log.Printf("spin %d: code=%d body=%s", seed, resp.StatusCode, string(raw))
		return
	}

	var result struct {
		Payout       string  `json:"payout"`
		IsWin        bool    `json:"isWin"`
		NearMiss     bool    `json:"nearMiss"`
		Multiplier   float64 `json:"multiplier"`
		BonusTrigger bool    `json:"bonusTrigger"`
	}
	if err = jsoniter.Unmarshal(raw, &result); err != nil {
		log.Printf("spin %d: parse: %v", seed, err)
		return
	}
	log.Println(fmt.Sprintf("spin %d: win=%v payout=%s mult=%.2f nearMiss=%v bonus=%v",
		seed, result.IsWin, result.Payout, result.Multiplier, result.NearMiss, result.BonusTrigger))
}
