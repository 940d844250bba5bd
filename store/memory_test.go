package store

import (
	"context"
	"testing"
	"time"

	"github.com/ludokit/ludokit/core"
)

func TestMemoryStoreGetSet(t *testing.T) {
	ctx := context.Background()
	ms := NewMemoryStore()
	defer ms.Close()

	if err := ms.Set(ctx, "k1", []byte("v1")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, err := ms.Get(ctx, "k1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(got) != "v1" {
		t.Errorf("Get() = %q, want v1", got)
	}

	_, err = ms.Get(ctx, "missing")
	if !core.IsStoreNotFound(err) {
		t.Errorf("Get(missing) error = %v, want not-found", err)
	}
}

func TestMemoryStoreTTL(t *testing.T) {
	ctx := context.Background()
	ms := NewMemoryStore()
	defer ms.Close()

	if err := ms.Set(ctx, "short", []byte("v"), 1); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if _, err := ms.Get(ctx, "short"); err != nil {
		t.Fatalf("Get() before expiry error = %v", err)
	}

	// 过期检查在读路径上，不依赖后台清理
	ms.mu.Lock()
	past := time.Now().Add(-time.Second)
	ms.data["short"].ttl = &past
	ms.mu.Unlock()

	if _, err := ms.Get(ctx, "short"); !core.IsStoreNotFound(err) {
		t.Errorf("Get() after expiry error = %v, want not-found", err)
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	ctx := context.Background()
	ms := NewMemoryStore()
	defer ms.Close()

	ms.Set(ctx, "k", []byte("v"))
	if err := ms.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := ms.Get(ctx, "k"); !core.IsStoreNotFound(err) {
		t.Errorf("Get() after delete error = %v, want not-found", err)
	}
}

func TestMemoryStoreBatch(t *testing.T) {
	ctx := context.Background()
	ms := NewMemoryStore()
	defer ms.Close()

	kvs := map[string][]byte{"a": []byte("1"), "b": []byte("2")}
	if err := ms.BatchSet(ctx, kvs); err != nil {
		t.Fatalf("BatchSet() error = %v", err)
	}

	got, err := ms.BatchGet(ctx, []string{"a", "b", "missing"})
	if err != nil {
		t.Fatalf("BatchGet() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len(BatchGet()) = %d, want 2 (missing key skipped)", len(got))
	}
	if string(got["a"]) != "1" || string(got["b"]) != "2" {
		t.Errorf("BatchGet() = %v", got)
	}
}

func TestMemoryStoreZSet(t *testing.T) {
	ctx := context.Background()
	ms := NewMemoryStore()
	defer ms.Close()

	// score = 查询时间戳，按时间倒序取历史
	ms.ZAdd(ctx, "history", 100, "Portal")
	ms.ZAdd(ctx, "history", 300, "Braid")
	ms.ZAdd(ctx, "history", 200, "Portal 2")

	got, err := ms.ZRange(ctx, "history", 0, -1)
	if err != nil {
		t.Fatalf("ZRange() error = %v", err)
	}
	want := []string{"Braid", "Portal 2", "Portal"}
	if len(got) != len(want) {
		t.Fatalf("ZRange() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ZRange()[%d] = %s, want %s", i, got[i], want[i])
		}
	}

	// 截取前 2
	got, _ = ms.ZRange(ctx, "history", 0, 1)
	if len(got) != 2 || got[0] != "Braid" || got[1] != "Portal 2" {
		t.Errorf("ZRange(0,1) = %v, want [Braid, Portal 2]", got)
	}

	score, err := ms.ZScore(ctx, "history", "Portal")
	if err != nil || score != 100 {
		t.Errorf("ZScore() = (%v, %v), want (100, nil)", score, err)
	}
	if _, err := ms.ZScore(ctx, "history", "missing"); !core.IsStoreNotFound(err) {
		t.Errorf("ZScore(missing) error = %v, want not-found", err)
	}
}

func TestMemoryStoreZRangeTieBreak(t *testing.T) {
	ctx := context.Background()
	ms := NewMemoryStore()
	defer ms.Close()

	ms.ZAdd(ctx, "z", 1, "beta")
	ms.ZAdd(ctx, "z", 1, "alpha")

	got, err := ms.ZRange(ctx, "z", 0, -1)
	if err != nil {
		t.Fatalf("ZRange() error = %v", err)
	}
	if len(got) != 2 || got[0] != "alpha" || got[1] != "beta" {
		t.Errorf("ZRange() = %v, want deterministic [alpha, beta]", got)
	}
}

func TestMemoryStoreZSetMissingKey(t *testing.T) {
	ctx := context.Background()
	ms := NewMemoryStore()
	defer ms.Close()

	got, err := ms.ZRange(ctx, "nope", 0, -1)
	if err != nil {
		t.Fatalf("ZRange() error = %v", err)
	}
	if got != nil {
		t.Errorf("ZRange(missing) = %v, want nil", got)
	}
}
