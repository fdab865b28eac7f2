package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix      = "user:%d"
	PostListKeyPrefix  = "posts:%s"
	ResourceListKey    = "resources:list"
	AnalyticsKeyPrefix = "analytics:%d:%s"
)

const (
	UserTTL         = 5 * time.Minute
	PostListTTL     = 1 * time.Minute
	ResourceListTTL = 10 * time.Minute
	AnalyticsTTL    = 5 * time.Minute
)

// analyticsPeriods mirrors the period tokens the analytics endpoint accepts.
var analyticsPeriods = []string{"7d", "30d", "90d"}

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

// PostListKey keys the post list cache by category filter ("all" when unfiltered).
func PostListKey(category string) string {
	if category == "" {
		category = "all"
	}
	return fmt.Sprintf(PostListKeyPrefix, category)
}

// AnalyticsKey keys the analytics summary cache by user and period.
func AnalyticsKey(userID uint, period string) string {
	return fmt.Sprintf(AnalyticsKeyPrefix, userID, period)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

// InvalidatePostLists drops every cached post list variant. Categories are a
// small fixed set so a scan is not needed.
func InvalidatePostLists(ctx context.Context, categories []string) {
	Invalidate(ctx, PostListKey(""))
	for _, c := range categories {
		Invalidate(ctx, PostListKey(c))
	}
}

func InvalidateResourceList(ctx context.Context) {
	Invalidate(ctx, ResourceListKey)
}

// InvalidateAnalytics drops the user's cached analytics for every period, so
// a freshly recorded entry shows up on the next analytics read.
func InvalidateAnalytics(ctx context.Context, userID uint) {
	for _, p := range analyticsPeriods {
		Invalidate(ctx, AnalyticsKey(userID, p))
	}
}
