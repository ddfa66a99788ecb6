package health

import (
	"context"
	"errors"
	"testing"
	"time"
)

// --- Mocks ---

type mockPinger struct {
	err      error
	deadline bool
}

func (m *mockPinger) Ping(ctx context.Context) error {
	_, m.deadline = ctx.Deadline()
	return m.err
}

// --- Tests ---

func TestCheck_NoDependencies(t *testing.T) {
	r := New(nil).Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if len(r.Checks) != 0 {
		t.Errorf("expected no checks, got %v", r.Checks)
	}
}

func TestCheck_AllHealthy(t *testing.T) {
	p := &mockPinger{}
	r := New(nil).WithDependency("cyync", p).Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if r.Checks["cyync"] != CheckOK {
		t.Errorf("expected cyync %q, got %q", CheckOK, r.Checks["cyync"])
	}
	if !p.deadline {
		t.Error("expected check to run under a deadline")
	}
}

func TestCheck_DependencyError(t *testing.T) {
	svc := New(nil).
		WithDependency("cyync", &mockPinger{err: errors.New("conn refused")}).
		WithDependency("other", &mockPinger{}).
		WithTimeout(time.Second)
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks["cyync"] != CheckError {
		t.Errorf("expected cyync %q, got %q", CheckError, r.Checks["cyync"])
	}
	if r.Checks["other"] != CheckOK {
		t.Errorf("expected other %q, got %q", CheckOK, r.Checks["other"])
	}
}

func TestWithDependency_NilIgnored(t *testing.T) {
	r := New(nil).WithDependency("cyync", nil).Check(context.Background())
	if len(r.Checks) != 0 {
		t.Errorf("nil pinger should not register, got %v", r.Checks)
	}
}
