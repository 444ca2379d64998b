package langmatch

import (
	"errors"
	"testing"
)

func TestMatchHookContextMetadata(t *testing.T) {
	ctx := &MatchHookContext{}

	if _, ok := ctx.MetadataValue("missing"); ok {
		t.Fatalf("expected no metadata on a fresh context")
	}

	ctx.SetMetadata("", "ignored")
	if ctx.Metadata != nil {
		t.Fatalf("empty key should not allocate metadata")
	}

	ctx.SetMetadata("request", "abc")
	value, ok := ctx.MetadataValue("request")
	if !ok || value != "abc" {
		t.Fatalf("MetadataValue(request) = %v, %v", value, ok)
	}

	var nilCtx *MatchHookContext
	nilCtx.SetMetadata("key", 1)
	if _, ok := nilCtx.MetadataValue("key"); ok {
		t.Fatalf("nil context should not report metadata")
	}
}

func TestMatchHookContextOutcome(t *testing.T) {
	tests := []struct {
		ctx  MatchHookContext
		want string
	}{
		{MatchHookContext{}, OutcomeNoMatch},
		{MatchHookContext{Matched: true}, OutcomeMatched},
		{MatchHookContext{Matched: true, Error: errors.New("boom")}, OutcomeError},
	}

	for _, tc := range tests {
		if got := tc.ctx.Outcome(); got != tc.want {
			t.Fatalf("Outcome(%+v) = %s want %s", tc.ctx, got, tc.want)
		}
	}
}

func TestMatchHookFuncs(t *testing.T) {
	var calls []string
	hooks := []MatchHook{
		MatchHookFuncs{},
		MatchHookFuncs{
			Before: func(*MatchHookContext) { calls = append(calls, "before") },
			After:  func(*MatchHookContext) { calls = append(calls, "after") },
		},
	}

	ctx := &MatchHookContext{}
	runBeforeHooks(hooks, ctx)
	runAfterHooks(hooks, ctx)

	if len(calls) != 2 || calls[0] != "before" || calls[1] != "after" {
		t.Fatalf("unexpected calls %v", calls)
	}
}
