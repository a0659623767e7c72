package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures process level configuration shared by every service.
type Server struct {
	Addr            string
	Environment     string
	LogLevel        string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration

	Database  Database
	Upstreams Upstreams
	Existence Existence
	Kafka     Kafka
}

// Database configures the relational store. An empty URL selects in-memory stores.
type Database struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
}

// Upstreams are base addresses including the resource path, e.g. http://users:8080/users.
type Upstreams struct {
	UserServiceURL    string
	ProductServiceURL string
}

// Existence tunes the remote existence checks performed when recording interactions.
type Existence struct {
	Timeout    time.Duration
	Concurrent bool
}

// Kafka configures the interaction event producer. No brokers disables publishing.
type Kafka struct {
	Brokers []string
	Topic   string
}

const (
	DefaultAddr              = ":8080"
	DefaultExistenceTimeout  = 3 * time.Second
	DefaultRequestTimeout    = 30 * time.Second
	DefaultShutdownTimeout   = 10 * time.Second
	DefaultInteractionTopic  = "interactions.recorded"
	defaultUserServiceURL    = "http://localhost:8081/users"
	defaultProductServiceURL = "http://localhost:8082/products"
)

// FromEnv builds a Server config from environment variables so main stays lean.
// Malformed values fall back to their defaults.
func FromEnv() Server {
	return Server{
		Addr:            envString("ADDR", DefaultAddr),
		Environment:     envString("ENVIRONMENT", "dev"),
		LogLevel:        envString("LOG_LEVEL", "info"),
		RequestTimeout:  envDuration("REQUEST_TIMEOUT", DefaultRequestTimeout),
		ShutdownTimeout: envDuration("SHUTDOWN_TIMEOUT", DefaultShutdownTimeout),
		Database: Database{
			URL:          os.Getenv("DATABASE_URL"),
			MaxOpenConns: envInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: envInt("DB_MAX_IDLE_CONNS", 5),
		},
		Upstreams: Upstreams{
			UserServiceURL:    envString("USER_SERVICE_URL", ""),
			ProductServiceURL: envString("PRODUCT_SERVICE_URL", ""),
		},
		Existence: Existence{
			Timeout:    envDuration("EXISTENCE_CHECK_TIMEOUT", DefaultExistenceTimeout),
			Concurrent: envBool("EXISTENCE_CHECK_CONCURRENT", true),
		},
		Kafka: Kafka{
			Brokers: envList("KAFKA_BROKERS"),
			Topic:   envString("INTERACTION_TOPIC", DefaultInteractionTopic),
		},
	}
}

// ResolveUpstreams fills upstream URLs left unset by the environment. When the
// process serves the user and product routes itself they point back at its
// own listener; otherwise the conventional local ports are used.
func (s *Server) ResolveUpstreams(colocated bool) error {
	userURL, productURL := defaultUserServiceURL, defaultProductServiceURL
	if colocated {
		base, err := selfURL(s.Addr)
		if err != nil {
			return err
		}
		userURL, productURL = base+"/users", base+"/products"
	}
	if s.Upstreams.UserServiceURL == "" {
		s.Upstreams.UserServiceURL = userURL
	}
	if s.Upstreams.ProductServiceURL == "" {
		s.Upstreams.ProductServiceURL = productURL
	}
	return nil
}

// selfURL turns a listen address into a URL reachable from the same host.
// Wildcard hosts (":8080", "0.0.0.0:8080", "[::]:8080") become loopback.
func selfURL(addr string) (string, error) {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "", fmt.Errorf("listen address %q: %w", addr, err)
	}
	if ip := net.ParseIP(host); host == "" || (ip != nil && ip.IsUnspecified()) {
		host = "127.0.0.1"
	}
	return "http://" + net.JoinHostPort(host, port), nil
}

func envString(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
