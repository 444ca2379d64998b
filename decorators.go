package langmatch

// MatchHook observes best-match selections.
type MatchHook interface {
	BeforeMatch(ctx *MatchHookContext)
	AfterMatch(ctx *MatchHookContext)
}

type MatchHookContext struct {
	Desired    string
	Candidates []string
	Threshold  int
	Result     string
	Matched    bool
	Score      int
	Error      error
	Metadata   map[string]any
}

func (ctx *MatchHookContext) ensureMetadata() {
	if ctx.Metadata == nil {
		ctx.Metadata = make(map[string]any)
	}
}

func (ctx *MatchHookContext) SetMetadata(key string, value any) {
	if ctx == nil || key == "" {
		return
	}
	ctx.ensureMetadata()
	ctx.Metadata[key] = value
}

func (ctx *MatchHookContext) MetadataValue(key string) (any, bool) {
	if ctx == nil || ctx.Metadata == nil {
		return nil, false
	}
	val, ok := ctx.Metadata[key]
	return val, ok
}

// Outcome classifies the selection for reporting.
func (ctx *MatchHookContext) Outcome() string {
	switch {
	case ctx.Error != nil:
		return OutcomeError
	case ctx.Matched:
		return OutcomeMatched
	default:
		return OutcomeNoMatch
	}
}

const (
	OutcomeMatched = "matched"
	OutcomeNoMatch = "no_match"
	OutcomeError   = "error"
)

// MatchHookFuncs adapts plain functions to MatchHook. Nil fields are skipped.
type MatchHookFuncs struct {
	Before func(ctx *MatchHookContext)
	After  func(ctx *MatchHookContext)
}

func (h MatchHookFuncs) BeforeMatch(ctx *MatchHookContext) {
	if h.Before != nil {
		h.Before(ctx)
	}
}

func (h MatchHookFuncs) AfterMatch(ctx *MatchHookContext) {
	if h.After != nil {
		h.After(ctx)
	}
}

func runBeforeHooks(hooks []MatchHook, ctx *MatchHookContext) {
	for _, hook := range hooks {
		hook.BeforeMatch(ctx)
	}
}

func runAfterHooks(hooks []MatchHook, ctx *MatchHookContext) {
	for _, hook := range hooks {
		hook.AfterMatch(ctx)
	}
}
