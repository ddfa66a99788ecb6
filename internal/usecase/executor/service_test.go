package executor

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"

	"github.com/kailas-cloud/cyync-lookup/internal/domain"
	"github.com/kailas-cloud/cyync-lookup/internal/domain/query"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// --- Mocks ---

type mockRequester struct {
	mu       sync.Mutex
	bodies   map[string]any
	errs     map[string]error
	calls    []string
	delay    time.Duration
	inFlight atomic.Int32
	peak     atomic.Int32
}

func (m *mockRequester) Execute(ctx context.Context, d query.Descriptor) (query.Envelope, error) {
	n := m.inFlight.Add(1)
	defer m.inFlight.Add(-1)
	for {
		p := m.peak.Load()
		if n <= p || m.peak.CompareAndSwap(p, n) {
			break
		}
	}

	m.mu.Lock()
	m.calls = append(m.calls, d.ResultKey)
	m.mu.Unlock()

	if m.delay > 0 {
		select {
		case <-time.After(m.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err := m.errs[d.ResultKey]; err != nil {
		return nil, err
	}
	return query.Envelope{"status": 200, "body": m.bodies[d.ResultKey]}, nil
}

func desc(key string) query.Descriptor {
	return query.Descriptor{
		ResultKey:      key,
		WorkspaceID:    "ws1",
		Scope:          "assets",
		ExtractionPath: query.DefaultExtractionPath,
	}
}

func results(items ...any) map[string]any {
	return map[string]any{"results": items}
}

// --- Tests ---

func TestRun_PreservesDescriptorOrder(t *testing.T) {
	req := &mockRequester{
		bodies: map[string]any{
			"a": results(map[string]any{"id": "1"}),
			"b": results(map[string]any{"id": "2"}),
			"c": results(map[string]any{"id": "3"}),
		},
		delay: 5 * time.Millisecond,
	}
	svc := New(req, nil).WithConcurrency(3)

	slots, err := svc.Run(context.Background(), []query.Descriptor{desc("a"), desc("b"), desc("c")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var keys []string
	for _, s := range slots {
		keys = append(keys, s.Descriptor.ResultKey)
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, keys); diff != "" {
		t.Errorf("slot order mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_OnlyReturnPopulatedDropsEmpty(t *testing.T) {
	req := &mockRequester{
		bodies: map[string]any{
			"full":   results(map[string]any{"id": "1"}),
			"empty":  results(),
			"scalar": map[string]any{"results": "nope"},
			"absent": map[string]any{},
		},
	}
	descs := []query.Descriptor{desc("full"), desc("empty"), desc("scalar"), desc("absent")}

	slots, err := New(req, nil).Run(context.Background(), descs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 1 {
		t.Fatalf("expected 1 populated slot, got %d", len(slots))
	}
	if slots[0].Descriptor.ResultKey != "full" {
		t.Errorf("expected slot for 'full', got %q", slots[0].Descriptor.ResultKey)
	}
}

func TestRun_KeepAllSlots(t *testing.T) {
	req := &mockRequester{
		bodies: map[string]any{
			"full":  results(map[string]any{"id": "1"}),
			"empty": results(),
		},
	}
	descs := []query.Descriptor{desc("full"), desc("empty"), desc("absent")}

	slots, err := New(req, nil).WithOnlyReturnPopulated(false).Run(context.Background(), descs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 3 {
		t.Fatalf("expected one slot per descriptor, got %d", len(slots))
	}
	if !slots[0].Populated() {
		t.Error("slot 0 should be populated")
	}
	if slots[1].Populated() || !slots[1].Found {
		t.Errorf("slot 1 should be found but empty: %+v", slots[1])
	}
	if slots[2].Found {
		t.Errorf("slot 2 should be absent: %+v", slots[2])
	}
	if slots[2].Descriptor.ResultKey != "absent" {
		t.Errorf("slot 2 descriptor = %q", slots[2].Descriptor.ResultKey)
	}
}

func TestRun_FailFast(t *testing.T) {
	boom := domain.NewTransportError(502, "Request failed", `{"message":"upstream down"}`)
	req := &mockRequester{
		bodies: map[string]any{
			"one":   results(map[string]any{"id": "1"}),
			"three": results(map[string]any{"id": "3"}),
		},
		errs: map[string]error{"two": boom},
	}
	descs := []query.Descriptor{desc("one"), desc("two"), desc("three")}

	slots, err := New(req, nil).WithConcurrency(1).Run(context.Background(), descs)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, boom) {
		t.Errorf("expected request #2 error, got %v", err)
	}
	if err.Error() != "Request failed - (502)| upstream down" {
		t.Errorf("unexpected error text %q", err.Error())
	}
	if slots != nil {
		t.Errorf("expected no results on failure, got %v", slots)
	}
	for _, c := range req.calls {
		if c == "three" {
			t.Error("request #3 should not run after #2 failed with limit 1")
		}
	}
}

func TestRun_ConcurrencyCap(t *testing.T) {
	bodies := make(map[string]any)
	var descs []query.Descriptor
	for _, k := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		bodies[k] = results(map[string]any{"id": k})
		descs = append(descs, desc(k))
	}
	req := &mockRequester{bodies: bodies, delay: 10 * time.Millisecond}

	slots, err := New(req, nil).WithConcurrency(2).Run(context.Background(), descs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != len(descs) {
		t.Fatalf("expected %d slots, got %d", len(descs), len(slots))
	}
	if peak := req.peak.Load(); peak > 2 {
		t.Errorf("in-flight peak %d exceeds limit 2", peak)
	}
}

func TestRun_Empty(t *testing.T) {
	slots, err := New(&mockRequester{}, nil).Run(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if slots != nil {
		t.Errorf("expected nil slots, got %v", slots)
	}
}

func TestWithConcurrency_IgnoresNonPositive(t *testing.T) {
	svc := New(&mockRequester{}, nil).WithConcurrency(0).WithConcurrency(-3)
	if svc.Concurrency() != DefaultConcurrency {
		t.Errorf("expected default concurrency %d, got %d", DefaultConcurrency, svc.Concurrency())
	}
}

func TestRequesterFunc(t *testing.T) {
	var got string
	f := RequesterFunc(func(_ context.Context, d query.Descriptor) (query.Envelope, error) {
		got = d.Endpoint
		return query.Envelope{}, nil
	})
	if _, err := f.Execute(context.Background(), query.Descriptor{Endpoint: "workspaces/w/assets/"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "workspaces/w/assets/" {
		t.Errorf("endpoint = %q", got)
	}
}
