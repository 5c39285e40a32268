package collector

import (
	"slices"
	"time"

	"github.com/wolfman30/leadform/internal/submission"
)

// TimestampLayout is ISO 8601 in UTC with exactly three fractional digits.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Payload is the JSON document posted to the collector: every submission
// field, the server timestamp and the qualification result.
type Payload struct {
	Timestamp string `json:"timestamp"`
	submission.Submission
	IsQualified bool `json:"isQualified"`
}

// NewPayload snapshots s at now. The qualification flag is recomputed so the
// transmitted value always matches the transmitted fields.
func NewPayload(s *submission.Submission, now time.Time) Payload {
	snapshot := *s
	snapshot.MarketingChannels = slices.Clone(s.MarketingChannels)
	if snapshot.MarketingChannels == nil {
		snapshot.MarketingChannels = []submission.Channel{}
	}
	qualified := snapshot.Requalify()
	return Payload{
		Timestamp:   now.UTC().Format(TimestampLayout),
		Submission:  snapshot,
		IsQualified: qualified,
	}
}
