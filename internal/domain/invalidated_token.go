package domain

import "time"

// InvalidatedToken marks a user's currently issued credential as rejected
// going forward. At most one record exists per user; a newer invalidation
// overwrites the older one.
type InvalidatedToken struct {
	UserID        string    `json:"userId"`
	InvalidatedAt time.Time `json:"invalidatedAt"`
	Reason        string    `json:"reason,omitempty"`
}

// InvalidationResult reports the outcome of an invalidation attempt. Cache
// failures are never raised to the caller; they surface only here.
type InvalidationResult struct {
	Success bool `json:"success"`
}
