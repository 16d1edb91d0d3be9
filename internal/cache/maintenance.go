package cache

import "time"

// sweepLoop periodically removes expired entries so that keys written once
// and never read again do not stay in memory indefinitely. Lazy expiration
// on Get alone cannot reclaim those.
//
// The loop is owned by the Store: Destroy cancels its context and waits for
// it to exit, so no tick runs after teardown.
func (s *Store) sweepLoop(interval time.Duration) {
	defer s.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}
