package fn

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestResultOk(t *testing.T) {
	r := Ok(42)
	if !r.IsOk() || r.IsErr() {
		t.Fatal("expected ok result")
	}
	v, err := r.Unwrap()
	if v != 42 || err != nil {
		t.Fatalf("unwrap: got %d, %v", v, err)
	}
	if r.UnwrapOr(0) != 42 {
		t.Fatal("UnwrapOr should return value")
	}
}

func TestResultErr(t *testing.T) {
	sentinel := errors.New("boom")
	r := Err[string](sentinel)
	if r.IsOk() {
		t.Fatal("expected err result")
	}
	if !errors.Is(r.Error(), sentinel) {
		t.Fatalf("expected sentinel, got %v", r.Error())
	}
	if r.UnwrapOr("fallback") != "fallback" {
		t.Fatal("UnwrapOr should return fallback")
	}
}

func TestFromPair(t *testing.T) {
	if r := FromPair("x", nil); !r.IsOk() {
		t.Fatal("expected ok")
	}
	if r := FromPair("", errors.New("e")); !r.IsErr() {
		t.Fatal("expected err")
	}
}

func TestRetry_SucceedsAfterFailures(t *testing.T) {
	attempts := 0
	r := Retry(context.Background(), RetryOpts{MaxAttempts: 3, InitialWait: time.Millisecond}, func(context.Context) Result[int] {
		attempts++
		if attempts < 3 {
			return Errf[int]("attempt %d", attempts)
		}
		return Ok(attempts)
	})
	if v, err := r.Unwrap(); err != nil || v != 3 {
		t.Fatalf("got %d, %v", v, err)
	}
}

func TestRetry_Exhausted(t *testing.T) {
	r := Retry(context.Background(), RetryOpts{MaxAttempts: 2, InitialWait: time.Millisecond}, func(context.Context) Result[int] {
		return Errf[int]("always fails")
	})
	if r.IsOk() {
		t.Fatal("expected failure after exhausting attempts")
	}
}

func TestRetry_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := Retry(ctx, RetryOpts{MaxAttempts: 5, InitialWait: 10 * time.Millisecond}, func(context.Context) Result[int] {
		return Errf[int]("fail")
	})
	if _, err := r.Unwrap(); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
