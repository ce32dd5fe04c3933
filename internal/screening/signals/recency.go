package signals

import (
	"fmt"
	"time"

	"medialens/internal/screening/models"
	"medialens/internal/screening/policy"
)

// RecencyBucket is the coarse age classification of an article relative to
// the case's evaluation time.
type RecencyBucket string

const (
	RecencyWithin12m RecencyBucket = "within 12 months"
	Recency12to36m   RecencyBucket = "12-36 months"
	RecencyOver36m   RecencyBucket = "over 36 months"
	RecencyBeyond    RecencyBucket = "outside lookback"
	RecencyUnknown   RecencyBucket = "unknown"
)

// Bucketer buckets article age against the configured lookback horizon.
type Bucketer struct {
	policy *policy.Policy
}

func NewBucketer(p *policy.Policy) *Bucketer {
	return &Bucketer{policy: p}
}

// Bucket classifies the elapsed time between the article date and the
// evaluation time.
func (b *Bucketer) Bucket(articleDate string, now time.Time) RecencyBucket {
	published, ok := models.ParseDate(articleDate)
	if !ok {
		return RecencyUnknown
	}

	months := now.Sub(published).Hours() / 24 / 30.44
	switch {
	case months >= float64(b.policy.LookbackYears)*12:
		return RecencyBeyond
	case months < 12:
		return RecencyWithin12m
	case months < 36:
		return Recency12to36m
	default:
		return RecencyOver36m
	}
}

// Note renders the recency note carried on the article analysis.
func (b *Bucketer) Note(articleDate string, now time.Time) (RecencyBucket, string) {
	bucket := b.Bucket(articleDate, now)
	return bucket, fmt.Sprintf("Recency: %s (%s)", bucket, articleDate)
}

// Weight returns the recency multiplier for a bucket from the policy weight
// table. Unparsable dates weigh like old articles rather than dropping out.
func (b *Bucketer) Weight(bucket RecencyBucket) float64 {
	w := b.policy.Weights
	switch bucket {
	case RecencyWithin12m:
		return w.RecencyWithin12m
	case Recency12to36m:
		return w.Recency12to36m
	case RecencyBeyond:
		return w.RecencyBeyond
	default:
		return w.RecencyOver36m
	}
}
