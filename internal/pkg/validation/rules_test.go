package validation

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatterns(t *testing.T) {
	assert.True(t, IsValidSID("HS-2024-001"))
	assert.False(t, IsValidSID("ab"))
	assert.False(t, IsValidSID("-abc"))

	assert.True(t, IsValidPhone("+91 98765 43210"))
	assert.True(t, IsValidPhone("9876543210"))
	assert.False(t, IsValidPhone("12345"))

	assert.True(t, IsValidEmail("asha.rao@example.edu"))
	assert.False(t, IsValidEmail("asha@"))

	assert.True(t, IsValidDate("2024-02-29"))
	assert.False(t, IsValidDate("2023-02-29"))
	assert.False(t, IsValidDate("01/02/2024"))
}

type sample struct {
	SID   string `json:"sid" validate:"required,sid"`
	Phone string `json:"phone" validate:"omitempty,phone"`
	Date  string `json:"startDate" validate:"isodate"`
}

func TestRegister(t *testing.T) {
	v := validator.New()
	require.NoError(t, Register(v))

	require.NoError(t, v.Struct(sample{SID: "SID001", Date: "2024-06-01"}))

	err := v.Struct(sample{SID: "x", Phone: "12", Date: "tomorrow"})
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	fields := map[string]string{}
	for _, fe := range verrs {
		fields[fe.Field()] = fe.Tag()
	}
	assert.Equal(t, map[string]string{"sid": "sid", "phone": "phone", "startDate": "isodate"}, fields)
}
