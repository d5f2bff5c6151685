package embedding

import (
	"context"
	"errors"
	"testing"
	"time"
)

// fakeKV is an in-memory KV with function-field overrides.
type fakeKV struct {
	data  map[string][]byte
	getFn func(ctx context.Context, key string) ([]byte, error)
	setFn func(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: map[string][]byte{}}
}

func (f *fakeKV) Get(ctx context.Context, key string) ([]byte, error) {
	if f.getFn != nil {
		return f.getFn(ctx, key)
	}
	v, ok := f.data[key]
	if !ok {
		return nil, ErrCacheMiss
	}
	return v, nil
}

func (f *fakeKV) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if f.setFn != nil {
		return f.setFn(ctx, key, value, ttl)
	}
	f.data[key] = value
	return nil
}

// fakeEmbedder counts calls and returns a fixed vector.
type fakeEmbedder struct {
	calls  int
	vector []float32
	err    error
}

func (f *fakeEmbedder) Embed(_ context.Context, _ string) (Result, error) {
	f.calls++
	if f.err != nil {
		return Result{}, f.err
	}
	return Result{Vector: f.vector, PromptTokens: 3, TotalTokens: 3}, nil
}

func TestCached_MissThenHit(t *testing.T) {
	kv := newFakeKV()
	inner := &fakeEmbedder{vector: []float32{0.1, 0.2, 0.3}}
	cached := NewCached(inner, kv, time.Hour, nil)
	ctx := context.Background()

	first, err := cached.Embed(ctx, "winter months")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.calls != 1 {
		t.Fatalf("expected 1 provider call, got %d", inner.calls)
	}
	if first.TotalTokens != 3 {
		t.Errorf("expected token usage on miss, got %d", first.TotalTokens)
	}

	second, err := cached.Embed(ctx, "winter months")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.calls != 1 {
		t.Fatalf("expected cache hit, provider called %d times", inner.calls)
	}
	if second.TotalTokens != 0 {
		t.Errorf("cache hit must report zero token usage, got %d", second.TotalTokens)
	}
	if len(second.Vector) != 3 || second.Vector[1] != 0.2 {
		t.Errorf("unexpected cached vector: %v", second.Vector)
	}
}

func TestCached_DistinctTextsDistinctKeys(t *testing.T) {
	kv := newFakeKV()
	inner := &fakeEmbedder{vector: []float32{1}}
	cached := NewCached(inner, kv, time.Hour, nil)
	ctx := context.Background()

	if _, err := cached.Embed(ctx, "a"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := cached.Embed(ctx, "b"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.calls != 2 {
		t.Errorf("expected 2 provider calls for distinct texts, got %d", inner.calls)
	}
	if len(kv.data) != 2 {
		t.Errorf("expected 2 cache entries, got %d", len(kv.data))
	}
}

func TestCached_StoreFailureFallsThrough(t *testing.T) {
	kv := newFakeKV()
	kv.getFn = func(_ context.Context, _ string) ([]byte, error) {
		return nil, errors.New("connection refused")
	}
	kv.setFn = func(_ context.Context, _ string, _ []byte, _ time.Duration) error {
		return errors.New("connection refused")
	}

	inner := &fakeEmbedder{vector: []float32{0.5}}
	cached := NewCached(inner, kv, time.Hour, nil)

	result, err := cached.Embed(context.Background(), "q")
	if err != nil {
		t.Fatalf("cache failure must not fail the embed call: %v", err)
	}
	if inner.calls != 1 {
		t.Errorf("expected provider call, got %d", inner.calls)
	}
	if result.Vector[0] != 0.5 {
		t.Errorf("unexpected vector: %v", result.Vector)
	}
}

func TestCached_InnerError(t *testing.T) {
	wantErr := errors.New("provider down")
	cached := NewCached(&fakeEmbedder{err: wantErr}, newFakeKV(), time.Hour, nil)

	if _, err := cached.Embed(context.Background(), "q"); !errors.Is(err, wantErr) {
		t.Fatalf("expected wrapped provider error, got %v", err)
	}
}

func TestVectorRoundTrip(t *testing.T) {
	in := []float32{0.1, -2.5, 3.75, 0}

	out, err := bytesToVector(vectorToBytes(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("length mismatch: %d vs %d", len(out), len(in))
	}
	for i := range in {
		if out[i] != in[i] {
			t.Errorf("element %d: got %f, want %f", i, out[i], in[i])
		}
	}
}

func TestBytesToVector_InvalidLength(t *testing.T) {
	if _, err := bytesToVector([]byte{1, 2, 3}); err == nil {
		t.Fatal("expected error for non-multiple-of-4 blob")
	}
}
