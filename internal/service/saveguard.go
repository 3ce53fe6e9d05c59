package service

import "sync"

// saveGuard enforces at-most-one-concurrent-save per workflow key. It is
// process-local: two sessions on different instances can still race on the
// same record, matching the original per-session guard.
type saveGuard struct {
	keys sync.Map
}

func (g *saveGuard) acquire(key string) bool {
	_, loaded := g.keys.LoadOrStore(key, struct{}{})
	return !loaded
}

func (g *saveGuard) release(key string) {
	g.keys.Delete(key)
}
