package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{
		"ADDR", "ENVIRONMENT", "LOG_LEVEL", "DATABASE_URL", "USER_SERVICE_URL", "PRODUCT_SERVICE_URL",
		"EXISTENCE_CHECK_TIMEOUT", "EXISTENCE_CHECK_CONCURRENT", "KAFKA_BROKERS", "INTERACTION_TOPIC",
		"REQUEST_TIMEOUT", "SHUTDOWN_TIMEOUT", "DB_MAX_OPEN_CONNS", "DB_MAX_IDLE_CONNS",
	} {
		t.Setenv(key, "")
	}

	cfg := FromEnv()

	assert.Equal(t, DefaultAddr, cfg.Addr)
	assert.Equal(t, "dev", cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.Database.URL)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, 3*time.Second, cfg.Existence.Timeout)
	assert.True(t, cfg.Existence.Concurrent)
	assert.Empty(t, cfg.Kafka.Brokers)
	assert.Equal(t, "interactions.recorded", cfg.Kafka.Topic)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Empty(t, cfg.Upstreams.UserServiceURL)
	assert.Empty(t, cfg.Upstreams.ProductServiceURL)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("ADDR", ":9090")
	t.Setenv("USER_SERVICE_URL", "http://users:8080/users")
	t.Setenv("PRODUCT_SERVICE_URL", "http://products:8080/products")
	t.Setenv("EXISTENCE_CHECK_TIMEOUT", "750ms")
	t.Setenv("EXISTENCE_CHECK_CONCURRENT", "false")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("DB_MAX_OPEN_CONNS", "7")

	cfg := FromEnv()

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "http://users:8080/users", cfg.Upstreams.UserServiceURL)
	assert.Equal(t, "http://products:8080/products", cfg.Upstreams.ProductServiceURL)
	assert.Equal(t, 750*time.Millisecond, cfg.Existence.Timeout)
	assert.False(t, cfg.Existence.Concurrent)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 7, cfg.Database.MaxOpenConns)
}

func TestFromEnvIgnoresMalformedValues(t *testing.T) {
	t.Setenv("EXISTENCE_CHECK_TIMEOUT", "soon")
	t.Setenv("EXISTENCE_CHECK_CONCURRENT", "maybe")
	t.Setenv("DB_MAX_IDLE_CONNS", "-1")

	cfg := FromEnv()

	assert.Equal(t, DefaultExistenceTimeout, cfg.Existence.Timeout)
	assert.True(t, cfg.Existence.Concurrent)
	assert.Equal(t, 5, cfg.Database.MaxIdleConns)
}

func TestResolveUpstreams(t *testing.T) {
	t.Run("separate processes use the local defaults", func(t *testing.T) {
		cfg := Server{Addr: ":8080"}
		require.NoError(t, cfg.ResolveUpstreams(false))
		assert.Equal(t, "http://localhost:8081/users", cfg.Upstreams.UserServiceURL)
		assert.Equal(t, "http://localhost:8082/products", cfg.Upstreams.ProductServiceURL)
	})

	t.Run("colocated services call their own listener", func(t *testing.T) {
		for addr, want := range map[string]string{
			":8080":           "http://127.0.0.1:8080",
			"0.0.0.0:9000":    "http://127.0.0.1:9000",
			"[::]:9000":       "http://127.0.0.1:9000",
			"127.0.0.1:18080": "http://127.0.0.1:18080",
			"10.1.2.3:80":     "http://10.1.2.3:80",
		} {
			cfg := Server{Addr: addr}
			require.NoError(t, cfg.ResolveUpstreams(true), addr)
			assert.Equal(t, want+"/users", cfg.Upstreams.UserServiceURL, addr)
			assert.Equal(t, want+"/products", cfg.Upstreams.ProductServiceURL, addr)
		}
	})

	t.Run("explicit URLs win", func(t *testing.T) {
		cfg := Server{Addr: ":8080", Upstreams: Upstreams{UserServiceURL: "http://users:8080/users"}}
		require.NoError(t, cfg.ResolveUpstreams(true))
		assert.Equal(t, "http://users:8080/users", cfg.Upstreams.UserServiceURL)
		assert.Equal(t, "http://127.0.0.1:8080/products", cfg.Upstreams.ProductServiceURL)
	})

	t.Run("malformed listen address", func(t *testing.T) {
		cfg := Server{Addr: "8080"}
		assert.Error(t, cfg.ResolveUpstreams(true))
	})
}
