package github

import (
	"sync"
	"time"

	gh "github.com/google/go-github/v80/github"
)

// GitHubRateLimit is the authenticated rate limit (5000/hour).
const GitHubRateLimit = 5000

// quota tracks the rate limit GitHub reports on each response.
type quota struct {
	mu        sync.Mutex
	remaining int
	limit     int
	resetTime time.Time
}

func newQuota() *quota {
	return &quota{remaining: GitHubRateLimit, limit: GitHubRateLimit}
}

// update records the rate reported on resp. Responses without rate
// headers leave the previous values in place.
func (q *quota) update(resp *gh.Response) {
	if resp == nil || resp.Rate.Limit == 0 {
		return
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.remaining = resp.Rate.Remaining
	q.limit = resp.Rate.Limit
	q.resetTime = resp.Rate.Reset.Time
}

// Remaining returns the current remaining requests.
func (q *quota) Remaining() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.remaining
}

// Limit returns the rate limit.
func (q *quota) Limit() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.limit
}

// ResetTime returns the rate limit reset time.
func (q *quota) ResetTime() time.Time {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.resetTime
}
