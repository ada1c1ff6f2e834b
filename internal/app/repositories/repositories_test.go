package repositories

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/hostelsphere/internal/app/models"
	"github.com/yigit/hostelsphere/internal/domain"
)

func sampleSnapshot(t *testing.T) models.Snapshot {
	t.Helper()
	s := models.EmptySnapshot()
	var err error
	s.Rooms, err = domain.AddRoom(s.Rooms, domain.Room{ID: "room-1", RoomNumber: "101", Floor: 1, Type: domain.RoomDouble, Capacity: 2})
	require.NoError(t, err)
	s.Students, err = domain.AddStudent(s.Students, domain.Student{ID: "student-1", SID: "SID0001", FirstName: "Asha"})
	require.NoError(t, err)
	st, err := domain.NewEngine(domain.MaintenanceSticky).AssignStudentToRoom(s.State(), "student-1", "room-1")
	require.NoError(t, err)
	s = s.WithState(st)
	s.Complaints = append(s.Complaints, models.Complaint{
		ID: "complaint-1", StudentID: "student-1", Subject: "Fan", Status: models.ComplaintPending,
		Date: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
	})
	s.Payments = append(s.Payments, models.Payment{ID: "pay-1", StudentID: "student-1", Amount: 20000,
		Date: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)})
	return s
}

func TestMemoryRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryStateRepository()

	empty, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.True(t, empty.IsEmpty())
	assert.NotNil(t, empty.Notices)

	want := sampleSnapshot(t)
	require.NoError(t, repo.Save(ctx, want))
	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, 1, repo.Saves())
}

func TestMemoryRepositoryHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	repo := NewMemoryStateRepository()
	require.ErrorIs(t, repo.Save(ctx, models.EmptySnapshot()), context.Canceled)
	_, err := repo.Load(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestSQLiteRepositoryPersistAndReload(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.db")
	repo, err := NewSQLiteStateRepository(path)
	if err != nil {
		t.Skipf("sqlite unavailable: %v", err)
	}

	empty, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.True(t, empty.IsEmpty())

	want := sampleSnapshot(t)
	require.NoError(t, repo.Save(ctx, want))
	// second save exercises the upsert path
	require.NoError(t, repo.Save(ctx, want))
	require.NoError(t, repo.Close())

	reloaded, err := NewSQLiteStateRepository(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reloaded.Close() })
	got, err := reloaded.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	var n int
	require.NoError(t, reloaded.DB().QueryRow(`SELECT COUNT(*) FROM state`).Scan(&n))
	assert.Equal(t, len(models.Buckets), n)
}

func TestDecodeIgnoresUnknownBuckets(t *testing.T) {
	s, err := decodeBuckets(map[string][]byte{"legacy": []byte("not json")})
	require.NoError(t, err)
	assert.True(t, s.IsEmpty())

	_, err = decodeBuckets(map[string][]byte{models.BucketRooms: []byte("{")})
	require.Error(t, err)
}

func TestPostgresQueries(t *testing.T) {
	r := &PostgresStateRepository{sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)}

	sql, args, err := r.loadQuery()
	require.NoError(t, err)
	assert.Equal(t, "SELECT bucket, payload FROM hostel_state ORDER BY bucket", sql)
	assert.Empty(t, args)

	sql, args, err = r.upsertQuery("rooms", []byte("[]"), time.Unix(0, 0))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(sql, "INSERT INTO hostel_state (bucket,payload,updated_at) VALUES ($1,$2,$3)"), sql)
	assert.Contains(t, sql, "ON CONFLICT (bucket) DO UPDATE")
	assert.Equal(t, "rooms", args[0])
	assert.Equal(t, "[]", args[1])
}
