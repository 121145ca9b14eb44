package main

// Одноразовый пробник бриджа MT5: логин, срез ордеров и позиций,
// размер пункта. Удобно проверять доступы до запуска вотчера.
// Конфиг — только env (MT5_*), без yaml.

import (
	"context"
	"fmt"
	"log"
	"time"

	"trade_watch/internal/modules/config"
	"trade_watch/internal/modules/mt5/service"

	"github.com/spf13/viper"
)

func main() {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("MT5_BRIDGE_ADDR", "127.0.0.1:5001")
	v.SetDefault("WATCH_SYMBOL", "XAUUSD")

	cfg := &config.Config{}
	cfg.MT5.Addr = v.GetString("MT5_BRIDGE_ADDR")
	cfg.MT5.Login = v.GetInt64("MT5_LOGIN")
	cfg.MT5.Password = v.GetString("MT5_PASSWORD")
	cfg.MT5.Server = v.GetString("MT5_SERVER")
	symbol := v.GetString("WATCH_SYMBOL")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	c := service.NewClient(cfg)
	if err := c.Connect(ctx); err != nil {
		log.Fatalf("connect: %v", err)
	}
	fmt.Printf("connected: login=%d server=%s\n", cfg.MT5.Login, cfg.MT5.Server)

	point, err := c.Point(ctx, symbol)
	if err != nil {
		log.Fatalf("point: %v", err)
	}
	fmt.Printf("%s point=%v\n", symbol, point)

	orders, err := c.Orders(ctx)
	if err != nil {
		log.Fatalf("orders: %v", err)
	}
	fmt.Printf("orders: %d\n", len(orders))
	for _, o := range orders {
		fmt.Printf("  #%d %s %s @ %v sl=%v tp=%v\n", o.Ticket, o.Symbol, o.Kind, o.OpenPrice, o.SL, o.TP)
	}

	positions, err := c.Positions(ctx)
	if err != nil {
		log.Fatalf("positions: %v", err)
	}
	fmt.Printf("positions: %d\n", len(positions))
	for _, p := range positions {
		fmt.Printf("  #%d %s %s vol=%v @ %v now=%v\n", p.Ticket, p.Symbol, p.Side, p.Volume, p.OpenPrice, p.CurrentPrice)
	}
}
