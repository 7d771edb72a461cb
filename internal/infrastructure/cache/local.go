package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Local is an in-process TTL cache for small lookups that are read on every
// request, such as skill name to id resolution.
type Local struct {
	c *gocache.Cache
}

func NewLocal(ttl time.Duration) *Local {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Local{c: gocache.New(ttl, 2*ttl)}
}

func (l *Local) Get(key string) (any, bool) {
	if l == nil {
		return nil, false
	}
	return l.c.Get(key)
}

func (l *Local) Set(key string, value any) {
	if l == nil {
		return
	}
	l.c.SetDefault(key, value)
}

func (l *Local) Delete(key string) {
	if l == nil {
		return
	}
	l.c.Delete(key)
}

func (l *Local) Flush() {
	if l == nil {
		return
	}
	l.c.Flush()
}
