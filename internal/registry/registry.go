// Package registry holds the in-memory source of truth for vendors that are
// currently broadcasting their location. State is process-local and lost on
// restart; the durable store keeps the authoritative persistent coordinates.
package registry

import (
	"context"
	"slices"
	"sync"
	"time"

	"kakilima/internal/domain/entity"
	"kakilima/internal/geo"

	"github.com/google/uuid"
)

// Record is one live vendor's latest accepted position.
type Record struct {
	VendorID     uuid.UUID           `json:"vendor_id"`
	OwnerUserID  uuid.UUID           `json:"owner_user_id"`
	ConnectionID string              `json:"-"` // Connection that produced the record; drives disconnect cleanup.
	StoreName    string              `json:"store_name"`
	Status       entity.VendorStatus `json:"status"`
	Latitude     float64             `json:"latitude"`
	Longitude    float64             `json:"longitude"`
	UpdatedAt    time.Time           `json:"timestamp"`
}

// Position implements geo.Positioned.
func (r Record) Position() geo.Point {
	return geo.Point{Lat: r.Latitude, Lon: r.Longitude}
}

// Registry is safe for concurrent use; all mutation goes through its methods.
// Conflicting updates for the same vendor (multiple devices) resolve by
// last-write-wins on UpdatedAt.
type Registry struct {
	mu         sync.RWMutex
	records    map[uuid.UUID]Record
	order      []uuid.UUID // insertion order, for deterministic snapshots
	byConn     map[string]map[uuid.UUID]struct{}
	staleAfter time.Duration

	now func() time.Time
}

// New creates a registry. Records older than staleAfter are invisible to
// reads and evicted by Sweep; staleAfter <= 0 disables staleness entirely.
func New(staleAfter time.Duration) *Registry {
	return &Registry{
		records:    make(map[uuid.UUID]Record),
		byConn:     make(map[string]map[uuid.UUID]struct{}),
		staleAfter: staleAfter,
		now:        time.Now,
	}
}

// Upsert inserts or overwrites the record for rec.VendorID and reports
// whether the write was applied. A zero rec.UpdatedAt is stamped with the
// current time. Writes carrying a timestamp at or before the stored one are
// dropped, which keeps per-vendor broadcast order causal even when devices
// race.
func (r *Registry) Upsert(rec Record) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = r.now()
	}

	current, exists := r.records[rec.VendorID]
	if exists && !rec.UpdatedAt.After(current.UpdatedAt) {
		return false
	}

	if !exists {
		r.order = append(r.order, rec.VendorID)
	} else if current.ConnectionID != rec.ConnectionID {
		r.unindexConnLocked(current.ConnectionID, rec.VendorID)
	}

	r.records[rec.VendorID] = rec
	if rec.ConnectionID != "" {
		if r.byConn[rec.ConnectionID] == nil {
			r.byConn[rec.ConnectionID] = make(map[uuid.UUID]struct{})
		}
		r.byConn[rec.ConnectionID][rec.VendorID] = struct{}{}
	}

	return true
}

// Get returns the live record for a vendor. Stale records read as absent.
func (r *Registry) Get(vendorID uuid.UUID) (Record, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[vendorID]
	if !ok || r.isStaleLocked(rec) {
		return Record{}, false
	}

	return rec, true
}

// Remove deletes a vendor's record. Idempotent; absent keys are a no-op.
func (r *Registry) Remove(vendorID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.removeLocked(vendorID)
}

// RemoveAllForConnection deletes every record owned by the given connection
// and returns the evicted vendor IDs. Records pushed by other connections
// are untouched.
func (r *Registry) RemoveAllForConnection(connectionID string) []uuid.UUID {
	r.mu.Lock()
	defer r.mu.Unlock()

	owned := r.byConn[connectionID]
	if len(owned) == 0 {
		return nil
	}

	removed := make([]uuid.UUID, 0, len(owned))
	for vendorID := range owned {
		removed = append(removed, vendorID)
		r.removeLocked(vendorID)
	}

	return removed
}

// Snapshot returns all live records in insertion order, skipping stale ones.
func (r *Registry) Snapshot() []Record {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Record, 0, len(r.order))
	for _, vendorID := range r.order {
		rec, ok := r.records[vendorID]
		if !ok || r.isStaleLocked(rec) {
			continue
		}
		result = append(result, rec)
	}

	return result
}

// Sweep evicts stale records and returns how many were removed.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	evicted := 0
	for _, vendorID := range slices.Clone(r.order) {
		rec, ok := r.records[vendorID]
		if ok && r.isStaleLocked(rec) {
			r.removeLocked(vendorID)
			evicted++
		}
	}

	return evicted
}

// Run sweeps on the given interval until the context is canceled.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}

func (r *Registry) isStaleLocked(rec Record) bool {
	if r.staleAfter <= 0 {
		return false
	}

	return r.now().Sub(rec.UpdatedAt) > r.staleAfter
}

func (r *Registry) removeLocked(vendorID uuid.UUID) {
	rec, ok := r.records[vendorID]
	if !ok {
		return
	}

	delete(r.records, vendorID)
	r.unindexConnLocked(rec.ConnectionID, vendorID)

	if i := slices.Index(r.order, vendorID); i >= 0 {
		r.order = slices.Delete(r.order, i, i+1)
	}
}

func (r *Registry) unindexConnLocked(connectionID string, vendorID uuid.UUID) {
	owned, ok := r.byConn[connectionID]
	if !ok {
		return
	}

	delete(owned, vendorID)
	if len(owned) == 0 {
		delete(r.byConn, connectionID)
	}
}
