package session

import (
	"context"
	"time"

	"github.com/studyhub/studyhub-cli/internal/logging"
)

// renewLead is how far before the access token's expiry the background
// refresher tries to renew it.
const renewLead = time.Minute

// dueWait is the scheduling floor once the token is already inside the
// renew window or past expiry.
const dueWait = time.Second

// refreshTarget is the slice of Manager the background refresher drives.
type refreshTarget interface {
	IsAuthenticated() bool
	IsRefreshing() bool
	Refresh(ctx context.Context) error
}

// TokenExpiry optionally reports when the current access token expires,
// letting the refresher renew just ahead of it instead of waiting out the
// full interval. Implemented by api.HTTPClient.
type TokenExpiry interface {
	AccessTokenExpiry() (time.Time, bool)
}

// AutoRefresher periodically renews the session while a user exists. A
// trigger is skipped when a refresh is already in flight, so a 401-driven
// refresh is never compounded. Each attempt runs under a bounded timeout;
// repeated failures back off (doubling up to the base interval) instead of
// hammering the backend.
type AutoRefresher struct {
	target   refreshTarget
	expiry   TokenExpiry
	interval time.Duration
	timeout  time.Duration
	log      logging.Logger
}

// NewAutoRefresher builds a refresher for the given manager. expiry may be
// nil, in which case only the fixed interval drives scheduling.
func NewAutoRefresher(target refreshTarget, expiry TokenExpiry, interval, timeout time.Duration, log logging.Logger) *AutoRefresher {
	return &AutoRefresher{
		target:   target,
		expiry:   expiry,
		interval: interval,
		timeout:  timeout,
		log:      log,
	}
}

// Run loops until ctx is canceled. Call it on its own goroutine.
func (a *AutoRefresher) Run(ctx context.Context) {
	var backoff time.Duration

	for {
		wait := a.nextWait(backoff)
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		if !a.target.IsAuthenticated() || a.target.IsRefreshing() {
			backoff = 0
			continue
		}

		rctx, cancel := context.WithTimeout(ctx, a.timeout)
		err := a.target.Refresh(rctx)
		cancel()

		if err != nil {
			if backoff == 0 {
				backoff = a.timeout
			} else {
				backoff *= 2
			}
			if backoff > a.interval {
				backoff = a.interval
			}
			a.log.Warn(ctx, "background refresh failed", "error", err, "backoff", backoff)
			continue
		}
		backoff = 0
	}
}

// nextWait picks the sleep until the next attempt: the failure backoff if
// one is active, otherwise the base interval shortened to land renewLead
// before the known token expiry. A token already inside the renew window
// gets the dueWait floor instead of a full interval.
func (a *AutoRefresher) nextWait(backoff time.Duration) time.Duration {
	if backoff > 0 {
		return backoff
	}
	wait := a.interval
	if a.expiry == nil {
		return wait
	}
	if exp, ok := a.expiry.AccessTokenExpiry(); ok {
		switch lead := time.Until(exp) - renewLead; {
		case lead <= 0:
			wait = dueWait
		case lead < wait:
			wait = lead
		}
	}
	return wait
}
