package services

import (
	"context"
	"sort"
	"time"

	"github.com/anonto42/linkedin-clone/backend/internal/models"
	"github.com/anonto42/linkedin-clone/backend/internal/repositories"
	"github.com/anonto42/linkedin-clone/backend/pkg/metrics"
)

const (
	// RankCandidateLimit bounds how many recent posts the ranked feed scores.
	RankCandidateLimit = 200
	TrendingPostWindow = 24 * time.Hour
	TrendingPostLimit  = 20

	interestsPerSource = 5
)

// FeedService composes the main, ranked and trending feeds and owns the
// member's feed preferences.
type FeedService struct {
	stores Stores
	now    Clock
}

func NewFeedService(stores Stores) *FeedService {
	return &FeedService{stores: stores, now: time.Now}
}

func (s *FeedService) filterFor(pref *models.FeedPreference) *models.FeedFilter {
	return &models.FeedFilter{
		ExcludeTypes: pref.ExcludedPostTypes(),
		MutedUsers:   true,
		MutedTags:    true,
	}
}

// Feed is the chronological home feed with the viewer's preferences applied.
func (s *FeedService) Feed(ctx context.Context, viewer uint, query models.PostQuery, page repositories.Page) ([]models.Post, int64, error) {
	pref, err := s.stores.FeedPrefs.GetOrCreate(ctx, viewer)
	if err != nil {
		return nil, 0, err
	}
	posts, total, err := s.stores.Posts.ListPosts(ctx, repositories.PostListOptions{
		Viewer: &viewer,
		Query:  query,
		Feed:   s.filterFor(pref),
		Page:   page,
	})
	return annotatePage(ctx, s.stores, &viewer, posts, total, err)
}

// RankedFeed scores the newest RankCandidateLimit feed posts with the
// viewer's weights and pages through them by score.
func (s *FeedService) RankedFeed(ctx context.Context, viewer uint, page repositories.Page) ([]models.ScoredPost, int64, error) {
	pref, err := s.stores.FeedPrefs.GetOrCreate(ctx, viewer)
	if err != nil {
		return nil, 0, err
	}
	candidates, _, err := s.stores.Posts.ListPosts(ctx, repositories.PostListOptions{
		Viewer: &viewer,
		Feed:   s.filterFor(pref),
		Page:   repositories.Page{Number: 1, Limit: RankCandidateLimit},
	})
	if err != nil {
		return nil, 0, err
	}
	connected, err := s.stores.Connections.ConnectedUserIDs(ctx, viewer)
	if err != nil {
		return nil, 0, err
	}
	interests, err := s.Interests(ctx, viewer)
	if err != nil {
		return nil, 0, err
	}

	start := time.Now()
	scorer := Scorer{
		Weights:     pref.Weights,
		Connections: make(map[uint]bool, len(connected)),
		Interests:   interests,
		Now:         s.now(),
	}
	for _, id := range connected {
		scorer.Connections[id] = true
	}
	scored := make([]models.ScoredPost, len(candidates))
	for i := range candidates {
		scored[i] = models.ScoredPost{Post: candidates[i], Score: scorer.Score(&candidates[i])}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Post.CreatedAt.After(scored[j].Post.CreatedAt)
	})
	metrics.FeedRankDuration.Observe(time.Since(start).Seconds())

	total := int64(len(scored))
	from := page.Offset()
	if from < 0 || from > len(scored) {
		from = len(scored)
	}
	to := len(scored)
	if page.Limit > 0 && page.Limit < to-from {
		to = from + page.Limit
	}
	out := scored[from:to]
	refs := make([]*models.Post, len(out))
	for i := range out {
		refs[i] = &out[i].Post
	}
	if err := annotate(ctx, s.stores, &viewer, refs...); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// Interests are the hashtags the member posts with and reacts to most,
// up to five of each, without duplicates.
func (s *FeedService) Interests(ctx context.Context, userID uint) ([]string, error) {
	authored, err := s.stores.Posts.AuthoredHashtags(ctx, userID, interestsPerSource)
	if err != nil {
		return nil, err
	}
	reacted, err := s.stores.Posts.ReactedHashtags(ctx, userID, interestsPerSource)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(authored)+len(reacted))
	seen := make(map[string]struct{}, len(authored)+len(reacted))
	for _, tag := range append(authored, reacted...) {
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out, nil
}

// Trending returns visible posts of the last day by likes + 2*comments + 3*shares.
func (s *FeedService) Trending(ctx context.Context, viewer *uint) ([]models.Post, error) {
	posts, err := s.stores.Posts.TrendingPosts(ctx, viewer, s.now().Add(-TrendingPostWindow), TrendingPostLimit)
	if err != nil {
		return nil, err
	}
	if err := annotate(ctx, s.stores, viewer, postRefs(posts)...); err != nil {
		return nil, err
	}
	return nonNil(posts), nil
}

func (s *FeedService) Stats(ctx context.Context, userID uint) (*models.PostStats, error) {
	return s.stores.Posts.GetStats(ctx, userID, s.now())
}

func (s *FeedService) Saved(ctx context.Context, userID uint, page repositories.Page) ([]models.Post, int64, error) {
	posts, total, err := s.stores.SavedPosts.ListSavedPosts(ctx, userID, page)
	return annotatePage(ctx, s.stores, &userID, posts, total, err)
}

func (s *FeedService) Preferences(ctx context.Context, userID uint) (*models.FeedPreference, error) {
	return s.stores.FeedPrefs.GetOrCreate(ctx, userID)
}

// UpdatePreferences applies the present fields and validates the resulting
// weights before saving.
func (s *FeedService) UpdatePreferences(ctx context.Context, userID uint, req models.UpdateFeedPreferencesRequest) (*models.FeedPreference, error) {
	pref, err := s.stores.FeedPrefs.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	setFloat(&pref.Weights.Connection, req.ConnectionWeight)
	setFloat(&pref.Weights.Engagement, req.EngagementWeight)
	setFloat(&pref.Weights.Recency, req.RecencyWeight)
	setFloat(&pref.Weights.Similarity, req.SimilarityWeight)
	setFloat(&pref.Weights.Trending, req.TrendingWeight)
	setBool(&pref.ShowPromotedContent, req.ShowPromotedContent)
	setBool(&pref.ShowJobPosts, req.ShowJobPosts)
	setBool(&pref.ShowCompanyUpdates, req.ShowCompanyUpdates)
	setBool(&pref.ShowAchievementPosts, req.ShowAchievementPosts)

	if err := ValidateWeights(pref.Weights); err != nil {
		return nil, err
	}
	if err := s.stores.FeedPrefs.Save(ctx, pref); err != nil {
		return nil, err
	}
	return s.stores.FeedPrefs.GetOrCreate(ctx, userID)
}

func (s *FeedService) MuteUser(ctx context.Context, userID, mutedID uint) (bool, error) {
	if userID == mutedID {
		return false, validation("You cannot mute yourself")
	}
	if _, err := s.stores.Users.GetUserByID(ctx, mutedID); err != nil {
		return false, storeError(err, "User")
	}
	return s.stores.FeedPrefs.MuteUser(ctx, userID, mutedID)
}

func (s *FeedService) UnmuteUser(ctx context.Context, userID, mutedID uint) (bool, error) {
	return s.stores.FeedPrefs.UnmuteUser(ctx, userID, mutedID)
}

// MuteHashtag creates the hashtag if nobody has used it yet.
func (s *FeedService) MuteHashtag(ctx context.Context, userID uint, name string) (bool, error) {
	tag := NormalizeHashtag(name)
	if tag == "" {
		return false, fieldError("name", "Hashtag name is required")
	}
	h, err := s.stores.Hashtags.GetOrCreateHashtag(ctx, tag)
	if err != nil {
		return false, err
	}
	return s.stores.FeedPrefs.MuteHashtag(ctx, userID, h.ID)
}

func (s *FeedService) UnmuteHashtag(ctx context.Context, userID uint, name string) (bool, error) {
	h, err := s.stores.Hashtags.GetHashtagByName(ctx, NormalizeHashtag(name))
	if err != nil {
		return false, storeError(err, "Hashtag")
	}
	return s.stores.FeedPrefs.UnmuteHashtag(ctx, userID, h.ID)
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
