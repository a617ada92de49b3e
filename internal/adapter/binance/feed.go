package binance

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/investhub/backend/internal/domain"
)

const reconnectDelay = 5 * time.Second

// subscribeMessage is the Binance stream subscription request.
type subscribeMessage struct {
	Method string   `json:"method"`
	Params []string `json:"params"`
	ID     int      `json:"id"`
}

// tickerEvent is the subset of the 24hrTicker payload we consume: the
// symbol and the last price.
type tickerEvent struct {
	EventType string `json:"e"`
	Symbol    string `json:"s"`
	LastPrice string `json:"c"`
}

// Feed maintains a lock-free map of the latest quote per symbol from the
// Binance ticker websocket. It implements domain.PriceSource: reads never
// block on the connection, and a symbol with no quote yet simply reports
// ok=false.
type Feed struct {
	url     string
	symbols []string
	logger  *zap.Logger
	prices  sync.Map // symbol -> decimal.Decimal
}

var _ domain.PriceSource = (*Feed)(nil)

// NewFeed creates a feed for the given upper-case symbols.
func NewFeed(url string, symbols []string, logger *zap.Logger) *Feed {
	return &Feed{
		url:     url,
		symbols: symbols,
		logger:  logger,
	}
}

// Run connects to the websocket and keeps reading ticker events until ctx
// is cancelled, reconnecting on any connection error. Prices observed so
// far stay readable across reconnects.
func (f *Feed) Run(ctx context.Context) error {
	for {
		if err := f.connectAndRead(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			f.logger.Warn("price feed disconnected", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(reconnectDelay):
		}
	}
}

func (f *Feed) connectAndRead(ctx context.Context) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, f.url, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	if err := conn.WriteJSON(f.subscription()); err != nil {
		return err
	}
	f.logger.Info("subscribed to ticker streams", zap.Strings("symbols", f.symbols))

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		f.handleMessage(message)
	}
}

func (f *Feed) subscription() subscribeMessage {
	streams := make([]string, 0, len(f.symbols))
	for _, s := range f.symbols {
		streams = append(streams, strings.ToLower(s)+"@ticker")
	}
	return subscribeMessage{Method: "SUBSCRIBE", Params: streams, ID: 1}
}

func (f *Feed) handleMessage(message []byte) {
	var event tickerEvent
	if err := json.Unmarshal(message, &event); err != nil {
		f.logger.Warn("bad feed message", zap.Error(err))
		return
	}
	if event.EventType != "24hrTicker" || event.Symbol == "" {
		return
	}

	price, err := decimal.NewFromString(event.LastPrice)
	if err != nil {
		f.logger.Warn("unparseable price",
			zap.String("symbol", event.Symbol),
			zap.String("price", event.LastPrice),
		)
		return
	}

	f.prices.Store(event.Symbol, price)
	f.logger.Debug("price updated",
		zap.String("symbol", event.Symbol),
		zap.String("price", price.String()),
	)
}

// CurrentPrice returns the latest quote for a symbol.
func (f *Feed) CurrentPrice(symbol string) (decimal.Decimal, bool) {
	v, ok := f.prices.Load(symbol)
	if !ok {
		return decimal.Zero, false
	}
	return v.(decimal.Decimal), true
}

// Snapshot returns a copy of all known quotes.
func (f *Feed) Snapshot() map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal)
	f.prices.Range(func(k, v any) bool {
		out[k.(string)] = v.(decimal.Decimal)
		return true
	})
	return out
}
