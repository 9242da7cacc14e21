package domain

import "time"

type UsageOutcome string

const (
	OutcomeOK          UsageOutcome = "ok"
	OutcomeCacheHit    UsageOutcome = "cache_hit"
	OutcomeUpstreamErr UsageOutcome = "upstream_error"
	OutcomeFailed      UsageOutcome = "failed"
)

// UsageEvent records one gateway call. Subject is a keyed digest; no
// credential material is stored.
type UsageEvent struct {
	ID         string
	Subject    string
	District   string
	Method     string
	Outcome    UsageOutcome
	DurationMs int64
	At         time.Time
}
