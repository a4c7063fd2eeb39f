package validator

import (
	"testing"

	"carrental/internal/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Email string `json:"email" validate:"required,email"`
	Seats int    `json:"seats" validate:"gte=1"`
}

func TestValidate_ReportsJSONNames(t *testing.T) {
	errs := Validate(sample{Email: "nope", Seats: 0})

	assert.Equal(t, "email", errs["email"])
	assert.Equal(t, "gte", errs["seats"])
}

func TestValidate_OK(t *testing.T) {
	assert.Nil(t, Validate(sample{Email: "a@b.co", Seats: 4}))
	assert.True(t, Var("a@b.co", "required,email"))
	assert.False(t, Var("", "required"))
}

func TestCheck_FoldsIntoValidationError(t *testing.T) {
	require.NoError(t, Check(sample{Email: "a@b.co", Seats: 2}))

	err := Check(sample{Email: "", Seats: 0})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
	assert.Equal(t, "invalid fields: email (required), seats (gte)", err.Error())

	e, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, map[string]string{"email": "required", "seats": "gte"}, e.Details)
}

type named struct {
	Name  string  `json:"name" validate:"required,notblank"`
	Alias *string `json:"alias" validate:"omitempty,notblank"`
}

func TestValidate_NotBlank(t *testing.T) {
	blank := " \t "
	ok := "Ana"

	assert.Nil(t, Validate(named{Name: "Ana"}))
	assert.Nil(t, Validate(named{Name: "Ana", Alias: &ok}))
	assert.Equal(t, "notblank", Validate(named{Name: "   "})["name"])
	assert.Equal(t, "notblank", Validate(named{Name: "Ana", Alias: &blank})["alias"])
}
