package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCustomErrorUnwraps(t *testing.T) {
	err := fmt.Errorf("%w: %q", ErrRoomNotFound, "room-404")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, errors.Is(err, ErrRoomNotFound))
	assert.False(t, errors.Is(err, ErrStudentNotFound))
	assert.Equal(t, `room not found: "room-404"`, err.Error())

	assert.True(t, errors.Is(ErrDuplicateSID, ErrDuplicateID))
	assert.True(t, errors.Is(NewConflictError("already decided"), ErrConflict))
	assert.True(t, errors.Is(NewValidationError("bad date"), ErrValidationFailed))
	assert.Equal(t, "bad date", NewValidationError("bad date").Error())
	assert.Equal(t, "conflict", (&CustomError{Err: ErrConflict}).Error())
}
