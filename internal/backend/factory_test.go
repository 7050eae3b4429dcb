package backend

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"finmo/internal/config"
	"finmo/internal/store"
)

func TestCreateBackend(t *testing.T) {
	ctx := context.Background()
	factory := NewFactory(nil)

	tests := []struct {
		name string
		cfg  Config
	}{
		{"memory", Config{Type: MemoryBackend, Seed: map[string]string{store.KeyPayday: "5"}}},
		{"sqlite", Config{Type: SQLiteBackend, SQLiteDBPath: filepath.Join(t.TempDir(), "nested", "finmo.db")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := factory.CreateBackend(ctx, tt.cfg)
			if err != nil {
				t.Fatalf("create: %v", err)
			}
			if res.Cleanup != nil {
				defer res.Cleanup()
			}
			if res.Publisher != nil {
				t.Fatalf("publisher set without AMQP_URL")
			}

			if err := res.Store.Put(ctx, store.KeyIncome, []byte("100")); err != nil {
				t.Fatalf("put: %v", err)
			}
			got, ok, err := res.Store.Get(ctx, store.KeyIncome)
			if err != nil || !ok || string(got) != "100" {
				t.Fatalf("get = %q, %v, %v", got, ok, err)
			}
		})
	}
}

func TestCreateBackendRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"unknown type", Config{Type: "sheets"}},
		{"sqlite without path", Config{Type: SQLiteBackend}},
		{"amqp without queue", Config{Type: MemoryBackend, AMQPURL: "amqp://localhost", AMQPExchange: "finmo"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewFactory(nil).CreateBackend(context.Background(), tt.cfg); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestFromAppConfig(t *testing.T) {
	if _, err := FromAppConfig(nil); err == nil {
		t.Fatalf("expected error for nil config")
	}

	cfg, err := FromAppConfig(&config.Config{Store: "memory", AMQPURL: "amqp://x", AMQPExchange: "e", AMQPQueue: "q"})
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if cfg.Type != MemoryBackend || cfg.AMQPQueue != "q" {
		t.Fatalf("config = %+v", cfg)
	}

	_, err = FromAppConfig(&config.Config{Store: "postgres"})
	if err == nil {
		t.Fatalf("expected error for unknown store")
	}
	for _, name := range GetBackendTypeStrings() {
		if !strings.Contains(err.Error(), name) {
			t.Fatalf("error %q does not list %q", err, name)
		}
	}
}

func TestBackendTypeStrings(t *testing.T) {
	types := GetBackendTypes()
	names := GetBackendTypeStrings()
	if len(names) != len(types) {
		t.Fatalf("got %d names for %d types", len(names), len(types))
	}
	for i, bt := range types {
		t.Run(names[i], func(t *testing.T) {
			if !bt.IsValid() {
				t.Fatalf("%s is listed but not valid", bt)
			}
			if BackendType(names[i]) != bt {
				t.Fatalf("name %q does not round-trip to %s", names[i], bt)
			}
		})
	}
}
