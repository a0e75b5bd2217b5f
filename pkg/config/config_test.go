package config

import (
	"os"
	"path/filepath"
	"testing"
)

const sample = `
environment: test
server:
  port: 8080
log:
  level: info
exchange:
  rest_base_url: https://api.example.com
  websocket_url: wss://stream.example.com/ws
  symbols: [BTCUSDT, ETHUSDT]
scan:
  timeframe: 15m
  candle_count: 200
  workers: 4
kafka:
  brokers: [localhost:9092]
  signals_topic: signals
clickhouse:
  host: localhost
  port: 9000
  database: test
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, sample))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Environment != "test" {
		t.Fatalf("unexpected environment %q", cfg.Environment)
	}
	if len(cfg.Exchange.Symbols) != 2 {
		t.Fatalf("unexpected symbols %v", cfg.Exchange.Symbols)
	}
	if cfg.Scan.CandleCount != 200 {
		t.Fatalf("unexpected candle count %d", cfg.Scan.CandleCount)
	}
}

func TestLoadRejectsMissingSymbols(t *testing.T) {
	body := `
environment: test
exchange:
  rest_base_url: https://api.example.com
scan:
  candle_count: 100
`
	if _, err := Load(writeConfig(t, body)); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	t.Setenv("SYMBOLS", "SOLUSDT,ADAUSDT")
	t.Setenv("KAFKA_BROKERS", "kafka1:9092,kafka2:9092")
	t.Setenv("REDIS_ADDR", "redis:6379")

	cfg, err := LoadWithEnv(writeConfig(t, sample))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cfg.Exchange.Symbols) != 2 || cfg.Exchange.Symbols[0] != "SOLUSDT" {
		t.Fatalf("symbols override failed: %v", cfg.Exchange.Symbols)
	}
	if len(cfg.Kafka.Brokers) != 2 {
		t.Fatalf("brokers override failed: %v", cfg.Kafka.Brokers)
	}
	if !cfg.Redis.Enabled || cfg.Redis.Addr != "redis:6379" {
		t.Fatalf("redis override failed: %+v", cfg.Redis)
	}
}
