package config

import (
    "github.com/patrickmn/go-cache"
    "time"
    "fmt"
)

var (
    // Cache instances for different data types
    RouteCache      *cache.Cache
    SuggestionCache *cache.Cache
    FeedbackCache   *cache.Cache
)

const (
    // Cache durations
    routeCacheDuration      = 10 * time.Minute
    suggestionCacheDuration = 15 * time.Minute
    feedbackCacheDuration   = 30 * time.Second

    // Cleanup intervals
    routeCleanupInterval      = 20 * time.Minute
    suggestionCleanupInterval = 30 * time.Minute
    feedbackCleanupInterval   = 5 * time.Minute
)

func InitCache() {
    // Initialize separate caches for different data types
    RouteCache = cache.New(routeCacheDuration, routeCleanupInterval)
    SuggestionCache = cache.New(suggestionCacheDuration, suggestionCleanupInterval)
    FeedbackCache = cache.New(feedbackCacheDuration, feedbackCleanupInterval)
}

func ClearAllCaches() {
    RouteCache.Flush()
    SuggestionCache.Flush()
    FeedbackCache.Flush()
}

func GetCacheKey(prefix string, params ...interface{}) string {
    key := prefix
    for _, param := range params {
        key += ":" + fmt.Sprintf("%v", param)
    }
    return key
}
