package config

import "fmt"

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if err := c.Content.validate(); err != nil {
		return fmt.Errorf("content: %w", err)
	}

	if err := c.Feed.validate(); err != nil {
		return fmt.Errorf("feed: %w", err)
	}

	if c.RateLimit.RequestsPerMinute <= 0 {
		return fmt.Errorf("ratelimit: requests_per_minute must be > 0 (got %d)", c.RateLimit.RequestsPerMinute)
	}

	return nil
}

func (c *ContentConfig) validate() error {
	if c.MinCommentLen < 1 {
		return fmt.Errorf("min_comment_len must be >= 1 (got %d)", c.MinCommentLen)
	}
	if c.MaxCommentLen < c.MinCommentLen {
		return fmt.Errorf("max_comment_len must be >= min_comment_len (got %d < %d)", c.MaxCommentLen, c.MinCommentLen)
	}
	if c.MaxConfessionLen < 1 {
		return fmt.Errorf("max_confession_len must be >= 1 (got %d)", c.MaxConfessionLen)
	}
	if c.MaxReasonLen < 1 {
		return fmt.Errorf("max_reason_len must be >= 1 (got %d)", c.MaxReasonLen)
	}
	return nil
}

func (f *FeedConfig) validate() error {
	if f.DefaultPageSize < 1 || f.DefaultPageSize > f.MaxPageSize {
		return fmt.Errorf("default_page_size must be in [1, max_page_size] (got %d)", f.DefaultPageSize)
	}
	if f.MaxPageSize < 1 {
		return fmt.Errorf("max_page_size must be >= 1 (got %d)", f.MaxPageSize)
	}
	// The window must cover at least one full page, otherwise trending
	// pagination runs out of candidates before the page does.
	if f.TrendingWindowSize < f.MaxPageSize {
		return fmt.Errorf("trending_window_size must be >= max_page_size (got %d < %d)", f.TrendingWindowSize, f.MaxPageSize)
	}
	if f.TrendingWindowTTL <= 0 {
		return fmt.Errorf("trending_window_ttl must be > 0 (got %v)", f.TrendingWindowTTL)
	}
	if f.DetailCommentLimit < 1 {
		return fmt.Errorf("detail_comment_limit must be >= 1 (got %d)", f.DetailCommentLimit)
	}
	return nil
}
