package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"TradePulse/internal/domain/models"
	"TradePulse/internal/domain/repository"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// Stream implements repository.MarketStream over a Binance-compatible
// trade WebSocket feed.
type Stream struct {
	url            string
	symbols        []string
	reconnectDelay time.Duration
	pingInterval   time.Duration

	mu        sync.Mutex
	conn      *websocket.Conn
	connected bool
	nextID    int
}

// NewStream creates a live tick stream for the given symbols.
func NewStream(wsURL string, symbols []string, reconnectDelay, pingInterval time.Duration) repository.MarketStream {
	return &Stream{
		url:            wsURL,
		symbols:        symbols,
		reconnectDelay: reconnectDelay,
		pingInterval:   pingInterval,
		nextID:         1,
	}
}

// Connect dials the WebSocket endpoint.
func (s *Stream) Connect(ctx context.Context) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, s.url, nil)
	if err != nil {
		return fmt.Errorf("exchange connect: %w", err)
	}

	s.mu.Lock()
	s.conn = conn
	s.connected = true
	s.mu.Unlock()

	log.Info().Str("url", s.url).Msg("exchange stream connected")
	return nil
}

// Subscribe sends one trade-stream subscription covering all symbols.
func (s *Stream) Subscribe(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == nil || !s.connected {
		return fmt.Errorf("exchange stream not connected")
	}

	params := make([]string, 0, len(s.symbols))
	for _, sym := range s.symbols {
		params = append(params, strings.ToLower(sym)+"@trade")
	}

	msg := map[string]interface{}{
		"method": "SUBSCRIBE",
		"params": params,
		"id":     s.nextID,
	}
	s.nextID++

	if err := s.conn.WriteJSON(msg); err != nil {
		return fmt.Errorf("subscribe: %w", err)
	}
	log.Info().Strs("streams", params).Msg("exchange stream subscribed")
	return nil
}

// tradeEvent is one @trade frame. Prices and quantities arrive as strings.
type tradeEvent struct {
	EventType string `json:"e"`
	Symbol    string `json:"s"`
	Price     string `json:"p"`
	Quantity  string `json:"q"`
	TradeTime int64  `json:"T"`
}

// Read streams ticks and a terminal error. Both channels close when the
// read loop exits; callers reconnect and call Read again.
func (s *Stream) Read(ctx context.Context) (<-chan *models.Tick, <-chan error) {
	ticks := make(chan *models.Tick, 1024)
	errs := make(chan error, 1)

	go s.pingLoop(ctx)

	go func() {
		defer close(ticks)
		defer close(errs)

		for {
			select {
			case <-ctx.Done():
				return
			default:
			}

			s.mu.Lock()
			conn := s.conn
			s.mu.Unlock()
			if conn == nil {
				errs <- fmt.Errorf("exchange stream: connection lost")
				return
			}

			_, data, err := conn.ReadMessage()
			if err != nil {
				errs <- fmt.Errorf("exchange read: %w", err)
				return
			}

			var ev tradeEvent
			if err := json.Unmarshal(data, &ev); err != nil || ev.EventType != "trade" {
				// control frames and subscribe acks are not trades
				continue
			}

			price, err := strconv.ParseFloat(ev.Price, 64)
			if err != nil {
				continue
			}
			qty, _ := strconv.ParseFloat(ev.Quantity, 64)

			tick := &models.Tick{
				Symbol: ev.Symbol,
				Price:  price,
				Volume: qty,
				At:     time.UnixMilli(ev.TradeTime).UTC(),
			}

			select {
			case ticks <- tick:
			default:
				// drop under backpressure; live feed, staleness beats blocking
			}
		}
	}()

	return ticks, errs
}

func (s *Stream) pingLoop(ctx context.Context) {
	ticker := time.NewTicker(s.pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.mu.Lock()
			conn := s.conn
			s.mu.Unlock()
			if conn != nil {
				_ = conn.WriteMessage(websocket.PingMessage, nil)
			}
		}
	}
}

// Reconnect closes the current connection, waits, then dials and resubscribes.
func (s *Stream) Reconnect(ctx context.Context) error {
	_ = s.Close()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(s.reconnectDelay):
	}

	if err := s.Connect(ctx); err != nil {
		return err
	}
	return s.Subscribe(ctx)
}

// Close closes the WebSocket connection.
func (s *Stream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.connected = false
	if s.conn != nil {
		err := s.conn.Close()
		s.conn = nil
		return err
	}
	return nil
}

// IsConnected reports connection state.
func (s *Stream) IsConnected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connected
}
