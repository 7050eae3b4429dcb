package memory

import (
	"context"
	"errors"
	"testing"

	"finmo/internal/store"
)

var _ store.KV = (*Store)(nil)

func TestMemoryStorePutGetDelete(t *testing.T) {
	ctx := context.Background()
	s := New()

	if _, ok, err := s.Get(ctx, store.KeyIncome); ok || err != nil {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}

	if err := s.Put(ctx, store.KeyIncome, []byte("300")); err != nil {
		t.Fatalf("put: %v", err)
	}
	v, ok, err := s.Get(ctx, store.KeyIncome)
	if err != nil || !ok || string(v) != "300" {
		t.Fatalf("unexpected get: %q %v %v", v, ok, err)
	}

	// returned slices are copies
	v[0] = '9'
	v2, _, _ := s.Get(ctx, store.KeyIncome)
	if string(v2) != "300" {
		t.Fatalf("stored value mutated through returned slice: %q", v2)
	}

	if err := s.Delete(ctx, store.KeyIncome); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if s.Len() != 0 {
		t.Fatalf("len = %d", s.Len())
	}
}

func TestMemoryStoreRejectsEmptyKey(t *testing.T) {
	s := NewWithSeed(map[string]string{store.KeyPayday: "5"})
	if err := s.Put(context.Background(), "", nil); !errors.Is(err, store.ErrEmptyKey) {
		t.Fatalf("expected ErrEmptyKey, got %v", err)
	}
	if _, _, err := s.Get(context.Background(), ""); !errors.Is(err, store.ErrEmptyKey) {
		t.Fatalf("expected ErrEmptyKey, got %v", err)
	}
	if s.Len() != 1 {
		t.Fatalf("seed not applied")
	}
}
