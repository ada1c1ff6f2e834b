package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/yigit/hostelsphere/internal/app/models"
)

// ErrStorageUnavailable is returned when the backing store cannot be reached
var ErrStorageUnavailable = errors.New("state storage unavailable")

// StateRepository persists the whole hostel snapshot.
// Load on empty storage returns an empty snapshot, not an error.
type StateRepository interface {
	Load(ctx context.Context) (models.Snapshot, error)
	Save(ctx context.Context, snapshot models.Snapshot) error
	Close() error
}

// encodeBuckets serialises every collection of the snapshot to its own JSON payload
func encodeBuckets(s models.Snapshot) (map[string][]byte, error) {
	s = s.Normalized()
	values := map[string]any{
		models.BucketStudents:   s.Students,
		models.BucketRooms:      s.Rooms,
		models.BucketComplaints: s.Complaints,
		models.BucketNotices:    s.Notices,
		models.BucketGatePasses: s.GatePasses,
		models.BucketAttendance: s.Attendance,
		models.BucketPayments:   s.Payments,
	}
	out := make(map[string][]byte, len(values))
	for _, bucket := range models.Buckets {
		data, err := json.Marshal(values[bucket])
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", bucket, err)
		}
		out[bucket] = data
	}
	return out, nil
}

// decodeBuckets rebuilds a snapshot from stored payloads. Unknown buckets are ignored.
func decodeBuckets(payloads map[string][]byte) (models.Snapshot, error) {
	s := models.EmptySnapshot()
	targets := map[string]any{
		models.BucketStudents:   &s.Students,
		models.BucketRooms:      &s.Rooms,
		models.BucketComplaints: &s.Complaints,
		models.BucketNotices:    &s.Notices,
		models.BucketGatePasses: &s.GatePasses,
		models.BucketAttendance: &s.Attendance,
		models.BucketPayments:   &s.Payments,
	}
	for bucket, data := range payloads {
		target, ok := targets[bucket]
		if !ok {
			continue
		}
		if err := json.Unmarshal(data, target); err != nil {
			return models.Snapshot{}, fmt.Errorf("decode %s: %w", bucket, err)
		}
	}
	return s.Normalized(), nil
}
