// Package seed fills an empty hostel with demo rooms and students
package seed

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/hostelsphere/internal/app/models"
	"github.com/yigit/hostelsphere/internal/app/services"
	"github.com/yigit/hostelsphere/internal/domain"
	"github.com/yigit/hostelsphere/internal/pkg/websocket"
)

// Options sizes the generated hostel
type Options struct {
	Rooms         int
	RoomsPerFloor int
	Students      int
}

// DefaultOptions matches the demo hostel: 200 rooms on 10 floors and 30 students
var DefaultOptions = Options{Rooms: 200, RoomsPerFloor: 20, Students: 30}

var (
	roomTypes   = []domain.RoomType{domain.RoomSingle, domain.RoomDouble, domain.RoomTriple, domain.RoomQuad}
	amenityList = []string{"WiFi", "Fan", "Table", "Chair", "Light", "Charging Point"}
	courses     = []string{"B.Tech", "B.Sc", "MBA", "M.Tech"}
	bloodGroups = []string{"A+", "B+", "O+", "AB+"}
)

// Generate builds the demo rooms and students. Every room is empty and
// Available and every student is unassigned.
func Generate(opts Options) (domain.State, error) {
	if opts.RoomsPerFloor < 1 {
		opts.RoomsPerFloor = DefaultOptions.RoomsPerFloor
	}

	st := domain.State{
		Rooms:    make([]domain.Room, 0, opts.Rooms),
		Students: make([]domain.Student, 0, opts.Students),
	}

	for i := 0; i < opts.Rooms; i++ {
		floor := i/opts.RoomsPerFloor + 1
		roomType := roomTypes[i%len(roomTypes)]
		room, err := domain.NewRoom(domain.Room{
			ID:         fmt.Sprintf("room-%03d", i+1),
			RoomNumber: fmt.Sprintf("%d%02d", floor, i%opts.RoomsPerFloor+1),
			Floor:      floor,
			Type:       roomType,
			Capacity:   roomType.Beds(),
			Amenities:  amenityList[:i%len(amenityList)+1],
		})
		if err != nil {
			return domain.State{}, err
		}
		st.Rooms = append(st.Rooms, room)
	}

	for i := 0; i < opts.Students; i++ {
		student, err := domain.NewStudent(domain.Student{
			ID:            fmt.Sprintf("student-%03d", i+1),
			FirstName:     "Student",
			LastName:      fmt.Sprint(i + 1),
			Email:         fmt.Sprintf("student%d@example.com", i+1),
			Phone:         "9876543210",
			DateOfBirth:   "2004-01-01",
			Gender:        domain.GenderMale,
			Address:       "Hostel Road, City",
			Course:        courses[i%len(courses)],
			Year:          fmt.Sprint(i%4 + 1),
			RollNumber:    fmt.Sprintf("RN%d", 1000+i),
			AdmissionDate: "2023-01-01",
			BloodGroup:    bloodGroups[i%len(bloodGroups)],
		})
		if err != nil {
			return domain.State{}, err
		}
		st.Students = append(st.Students, student)
	}

	return st, domain.CheckInvariants(st)
}

// Run seeds the hostel when it holds no students and no rooms.
// It reports whether anything was written.
func Run(ctx context.Context, state *services.StateManager, opts Options, lgr zerolog.Logger) (bool, error) {
	if !state.Snapshot().IsEmpty() {
		lgr.Info().Msg("Hostel already has data, skipping seed")
		return false, nil
	}

	generated, err := Generate(opts)
	if err != nil {
		return false, fmt.Errorf("failed to generate seed data: %w", err)
	}

	err = state.Update(ctx, "seed", func(draft *models.Snapshot) ([]websocket.Event, error) {
		*draft = draft.WithState(generated)
		return nil, nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to store seed data: %w", err)
	}

	lgr.Info().Int("rooms", len(generated.Rooms)).Int("students", len(generated.Students)).Msg("Seeded demo hostel")
	return true, nil
}
