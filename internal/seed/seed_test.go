package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/hostelsphere/internal/app/repositories"
	"github.com/yigit/hostelsphere/internal/app/services"
	"github.com/yigit/hostelsphere/internal/domain"
	"github.com/yigit/hostelsphere/internal/pkg/logger"
)

func TestGenerate(t *testing.T) {
	st, err := Generate(DefaultOptions)
	require.NoError(t, err)
	require.Len(t, st.Rooms, 200)
	require.Len(t, st.Students, 30)

	assert.Equal(t, 1, st.Rooms[0].Floor)
	assert.Equal(t, "101", st.Rooms[0].RoomNumber)
	assert.Equal(t, 10, st.Rooms[199].Floor)
	assert.Equal(t, "1020", st.Rooms[199].RoomNumber)

	for i, r := range st.Rooms[:4] {
		assert.Equal(t, i+1, r.Capacity, r.ID)
	}
	for _, r := range st.Rooms {
		assert.Equal(t, domain.StatusAvailable, r.Status)
		assert.Empty(t, r.Students)
		assert.NotEmpty(t, r.Amenities)
	}
	for _, s := range st.Students {
		assert.False(t, s.HasRoom())
	}
	assert.Empty(t, domain.Validate(st))
}

func TestRunSeedsOnlyEmptyHostel(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewMemoryStateRepository()
	state, err := services.NewStateManager(ctx, repo, domain.NewEngine(domain.MaintenanceSticky), nil, logger.Nop())
	require.NoError(t, err)

	opts := Options{Rooms: 8, RoomsPerFloor: 4, Students: 3}
	seeded, err := Run(ctx, state, opts, logger.Nop())
	require.NoError(t, err)
	assert.True(t, seeded)
	assert.Len(t, state.Snapshot().Rooms, 8)
	assert.Equal(t, 1, repo.Saves())

	seeded, err = Run(ctx, state, opts, logger.Nop())
	require.NoError(t, err)
	assert.False(t, seeded)
	assert.Equal(t, 1, repo.Saves())
}
