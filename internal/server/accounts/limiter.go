package accounts

import (
	"time"

	"github.com/bluele/gcache"
)

// attemptLimiter counts failed sign-ins per email inside a sliding expiry
// window. A successful sign-in clears the count.
type attemptLimiter struct {
	cache gcache.Cache
	max   int
}

func newAttemptLimiter(max int, window time.Duration) *attemptLimiter {
	return &attemptLimiter{
		cache: gcache.New(10_000).LRU().Expiration(window).Build(),
		max:   max,
	}
}

func (l *attemptLimiter) count(email string) int {
	v, err := l.cache.Get(email)
	if err != nil {
		return 0
	}
	n, _ := v.(int)
	return n
}

func (l *attemptLimiter) blocked(email string) bool {
	return l.max > 0 && l.count(email) >= l.max
}

func (l *attemptLimiter) fail(email string) {
	_ = l.cache.Set(email, l.count(email)+1)
}

func (l *attemptLimiter) reset(email string) {
	l.cache.Remove(email)
}
