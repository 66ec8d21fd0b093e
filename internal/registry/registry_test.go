package registry

import (
	"testing"
	"time"

	"kakilima/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_UpsertThenGet(t *testing.T) {
	t.Parallel()

	reg := New(0)
	vendorID := uuid.New()

	applied := reg.Upsert(Record{
		VendorID:     vendorID,
		ConnectionID: "conn-1",
		StoreName:    "Sate Ayam Bu Rini",
		Status:       entity.VendorStatusActive,
		Latitude:     -6.2,
		Longitude:    106.81,
	})
	require.True(t, applied)

	rec, ok := reg.Get(vendorID)
	require.True(t, ok)
	assert.Equal(t, "Sate Ayam Bu Rini", rec.StoreName)
	assert.Equal(t, -6.2, rec.Latitude)
	assert.Equal(t, 106.81, rec.Longitude)
	assert.False(t, rec.UpdatedAt.IsZero())
}

func TestRegistry_UpsertOlderTimestampIsNoOp(t *testing.T) {
	t.Parallel()

	reg := New(0)
	vendorID := uuid.New()
	base := time.Now()

	require.True(t, reg.Upsert(Record{
		VendorID:     vendorID,
		ConnectionID: "conn-1",
		Latitude:     -6.2,
		Longitude:    106.81,
		UpdatedAt:    base,
	}))

	applied := reg.Upsert(Record{
		VendorID:     vendorID,
		ConnectionID: "conn-2",
		Latitude:     -6.3,
		Longitude:    106.9,
		UpdatedAt:    base.Add(-30 * time.Second),
	})
	assert.False(t, applied)

	rec, ok := reg.Get(vendorID)
	require.True(t, ok)
	assert.Equal(t, -6.2, rec.Latitude)
	assert.Equal(t, "conn-1", rec.ConnectionID)
}

func TestRegistry_UpsertNewerTimestampWins(t *testing.T) {
	t.Parallel()

	reg := New(0)
	vendorID := uuid.New()
	base := time.Now()

	require.True(t, reg.Upsert(Record{
		VendorID:  vendorID,
		Latitude:  -6.2,
		Longitude: 106.81,
		UpdatedAt: base,
	}))
	require.True(t, reg.Upsert(Record{
		VendorID:  vendorID,
		Latitude:  -6.25,
		Longitude: 106.85,
		UpdatedAt: base.Add(time.Second),
	}))

	rec, ok := reg.Get(vendorID)
	require.True(t, ok)
	assert.Equal(t, -6.25, rec.Latitude)
}

func TestRegistry_RemoveAllForConnection(t *testing.T) {
	t.Parallel()

	reg := New(0)
	mine := uuid.New()
	theirs := uuid.New()

	require.True(t, reg.Upsert(Record{VendorID: mine, ConnectionID: "conn-a"}))
	require.True(t, reg.Upsert(Record{VendorID: theirs, ConnectionID: "conn-b"}))

	removed := reg.RemoveAllForConnection("conn-a")
	require.Len(t, removed, 1)
	assert.Equal(t, mine, removed[0])

	_, ok := reg.Get(mine)
	assert.False(t, ok)

	_, ok = reg.Get(theirs)
	assert.True(t, ok, "other connections' records must survive a disconnect")

	assert.Nil(t, reg.RemoveAllForConnection("conn-a"))
}

func TestRegistry_UpsertMovesConnectionOwnership(t *testing.T) {
	t.Parallel()

	reg := New(0)
	vendorID := uuid.New()
	base := time.Now()

	require.True(t, reg.Upsert(Record{VendorID: vendorID, ConnectionID: "conn-old", UpdatedAt: base}))
	require.True(t, reg.Upsert(Record{VendorID: vendorID, ConnectionID: "conn-new", UpdatedAt: base.Add(time.Second)}))

	assert.Nil(t, reg.RemoveAllForConnection("conn-old"))

	_, ok := reg.Get(vendorID)
	require.True(t, ok)

	removed := reg.RemoveAllForConnection("conn-new")
	assert.Len(t, removed, 1)
}

func TestRegistry_SnapshotInsertionOrder(t *testing.T) {
	t.Parallel()

	reg := New(0)
	first := uuid.New()
	second := uuid.New()
	third := uuid.New()
	base := time.Now()

	require.True(t, reg.Upsert(Record{VendorID: first, UpdatedAt: base}))
	require.True(t, reg.Upsert(Record{VendorID: second, UpdatedAt: base}))
	require.True(t, reg.Upsert(Record{VendorID: third, UpdatedAt: base}))

	// Re-upserting an existing vendor must not move it to the back.
	require.True(t, reg.Upsert(Record{VendorID: first, UpdatedAt: base.Add(time.Second)}))

	snapshot := reg.Snapshot()
	require.Len(t, snapshot, 3)
	assert.Equal(t, first, snapshot[0].VendorID)
	assert.Equal(t, second, snapshot[1].VendorID)
	assert.Equal(t, third, snapshot[2].VendorID)
}

func TestRegistry_StaleRecordsHiddenAndSwept(t *testing.T) {
	t.Parallel()

	reg := New(2 * time.Minute)

	current := time.Now()
	reg.now = func() time.Time { return current }

	fresh := uuid.New()
	stale := uuid.New()
	require.True(t, reg.Upsert(Record{VendorID: stale, UpdatedAt: current}))

	current = current.Add(3 * time.Minute)
	require.True(t, reg.Upsert(Record{VendorID: fresh, UpdatedAt: current}))

	_, ok := reg.Get(stale)
	assert.False(t, ok)

	snapshot := reg.Snapshot()
	require.Len(t, snapshot, 1)
	assert.Equal(t, fresh, snapshot[0].VendorID)

	assert.Equal(t, 1, reg.Sweep())
	assert.Equal(t, 0, reg.Sweep())
}
