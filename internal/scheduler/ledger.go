package scheduler

import "sync"

type ledgerKey struct {
	userID int64
	slot   string
}

// Ledger remembers the local calendar date on which each (user, slot) pair was
// last notified. It lives in process memory only.
type Ledger struct {
	mu   sync.Mutex
	sent map[ledgerKey]string
}

func NewLedger() *Ledger {
	return &Ledger{sent: make(map[ledgerKey]string)}
}

// SentOn returns the last date (YYYY-MM-DD) the slot fired, or "".
func (l *Ledger) SentOn(userID int64, slot string) string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sent[ledgerKey{userID, slot}]
}

// Mark records that slot fired on date.
func (l *Ledger) Mark(userID int64, slot, date string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sent[ledgerKey{userID, slot}] = date
}

// Len returns the number of tracked pairs.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.sent)
}
