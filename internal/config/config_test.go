package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.HTTP.Port)
	assert.True(t, cfg.Quote.FallbackEnabled)
	assert.Equal(t, 45.0, cfg.Quote.FallbackPerCBM)
	assert.Equal(t, 35.0, cfg.Quote.FallbackPerTon)
	assert.Equal(t, "static", cfg.Quote.RatesSource)
	assert.Equal(t, "xlsx", cfg.Leads.Store)
	assert.Equal(t, "Quote Leads", cfg.Leads.Sheet)
	assert.Equal(t, 3*time.Second, cfg.IPLookup.Timeout)
	assert.Equal(t, "quotes@neubox-consol.com", cfg.Mail.OpsMailbox)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.False(t, cfg.UsesPostgres())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("LEADS_STORE", "postgres")
	t.Setenv("QUOTE_FALLBACK_ENABLED", "false")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")
	t.Setenv("PORTS_WARMUP", "jebel,hamburg")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Leads.Store)
	assert.False(t, cfg.Quote.FallbackEnabled)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, []string{"jebel", "hamburg"}, cfg.Ports.WarmUp)
	assert.True(t, cfg.UsesPostgres())
}

func TestLoad_RejectsUnknownModes(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"источник ставок", "QUOTE_RATES_SOURCE", "csv"},
		{"хранилище заявок", "LEADS_STORE", "sqlite"},
		{"режим уведомлений", "MAIL_NOTIFY_MODE", "sms"},
		{"размер кэша", "CACHE_SIZE", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
