package services

import (
	"math"
	"time"

	"github.com/anonto42/linkedin-clone/backend/internal/models"
)

const (
	MinWeightSum = 0.8
	MaxWeightSum = 1.2

	weightEpsilon = 1e-9
)

// ValidateWeights checks each weight lies in [0, 1] and that they add up to
// between MinWeightSum and MaxWeightSum.
func ValidateWeights(w models.FeedWeights) error {
	fields := map[string]string{}
	for name, v := range map[string]float64{
		"connection_weight": w.Connection,
		"engagement_weight": w.Engagement,
		"recency_weight":    w.Recency,
		"similarity_weight": w.Similarity,
		"trending_weight":   w.Trending,
	} {
		if v < 0 || v > 1 || math.IsNaN(v) {
			fields[name] = "must be between 0 and 1"
		}
	}
	if len(fields) > 0 {
		return &Error{Kind: KindValidation, Message: "Invalid feed weights", Fields: fields}
	}
	sum := w.Sum()
	if sum < MinWeightSum-weightEpsilon || sum > MaxWeightSum+weightEpsilon {
		return &Error{
			Kind:    KindValidation,
			Message: "Algorithm weights should sum to approximately 1.0",
			Fields:  map[string]string{"weights": "sum must be between 0.8 and 1.2"},
		}
	}
	return nil
}

// RecencyBucket is 1.0 for posts up to a day old, 0.7 up to a week and 0.3
// after that.
func RecencyBucket(age time.Duration) float64 {
	switch {
	case age <= 24*time.Hour:
		return 1.0
	case age <= 7*24*time.Hour:
		return 0.7
	default:
		return 0.3
	}
}

// Jaccard is |a ∩ b| / |a ∪ b| over two tag sets; 0 when both are empty.
func Jaccard(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	set := make(map[string]bool, len(a))
	for _, v := range a {
		set[v] = false
	}
	inter, union := 0, len(set)
	for _, v := range b {
		seen, ok := set[v]
		switch {
		case !ok:
			set[v] = true
			union++
		case !seen:
			set[v] = true
			inter++
		}
	}
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// Scorer ranks posts for one viewer.
type Scorer struct {
	Weights     models.FeedWeights
	Connections map[uint]bool
	Interests   []string
	Now         time.Time
}

// Score combines the connection, engagement, recency, similarity and
// trending signals, capped at 1.0.
func (s Scorer) Score(p *models.Post) float64 {
	score := 0.0
	if s.Connections[p.AuthorID] {
		score += s.Weights.Connection
	}
	score += p.EngagementRate() / 100 * s.Weights.Engagement
	score += RecencyBucket(s.Now.Sub(p.CreatedAt)) * s.Weights.Recency
	score += Jaccard(s.Interests, p.HashtagNames()) * s.Weights.Similarity
	if p.HasTrendingHashtag() {
		score += s.Weights.Trending
	}
	return math.Min(score, 1.0)
}
