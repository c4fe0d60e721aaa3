package supersede

import "sync"

// Debouncer hands out tokens for pending timers. Only the newest token fires;
// taking a new token supersedes every earlier one, which is how a pending
// timer is cancelled when the timer itself cannot be stopped (tea.Tick).
type Debouncer struct {
	mu    sync.Mutex
	seq   uint64
	fired bool
}

// Next supersedes any pending token and returns a new one
func (d *Debouncer) Next() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	d.fired = false
	return d.seq
}

// Fire reports whether the timer carrying seq should act. It returns true
// at most once, and only for the newest token.
func (d *Debouncer) Fire(seq uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if seq != d.seq || d.fired {
		return false
	}
	d.fired = true
	return true
}

// Stop drops the pending token
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	d.fired = true
}
