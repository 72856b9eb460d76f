package main

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// cooldownLimiter refuses a connection from an address seen less than
// cooldown ago.
type cooldownLimiter struct {
	mu       sync.Mutex
	cooldown time.Duration
	seen     map[string]time.Time
}

func newCooldownLimiter(cooldown time.Duration) *cooldownLimiter {
	return &cooldownLimiter{cooldown: cooldown, seen: make(map[string]time.Time)}
}

// allow records the attempt at now and reports whether it may proceed.
func (l *cooldownLimiter) allow(addr string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if last, ok := l.seen[addr]; ok && now.Sub(last) < l.cooldown {
		return false
	}
	l.seen[addr] = now
	return true
}

// sweep forgets addresses whose cooldown has run out.
func (l *cooldownLimiter) sweep(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for addr, t := range l.seen {
		if now.Sub(t) >= l.cooldown {
			delete(l.seen, addr)
		}
	}
}

// clientIP prefers the first X-Forwarded-For hop so the limiter works behind
// a reverse proxy.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
