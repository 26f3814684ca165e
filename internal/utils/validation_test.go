package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string `json:"name" validate:"required,max=5"`
	Email string `json:"email" validate:"omitempty,email"`
	Day   string `json:"day" validate:"omitempty,calendar_date"`
	At    string `json:"at" validate:"omitempty,clock"`
	Count int    `json:"count" validate:"gte=1"`
	Plain string `validate:"omitempty,url"`
}

func TestValidateStruct(t *testing.T) {
	require.NoError(t, ValidateStruct(sample{Name: "Ana", Day: "2024-06-10", At: "09:30:00", Count: 1}))

	cases := []struct {
		in   sample
		want string
	}{
		{sample{Count: 1}, "name is required"},
		{sample{Name: "Ana María", Count: 1}, "name must be at most 5 characters"},
		{sample{Name: "Ana", Email: "nope", Count: 1}, "email must be a valid email address"},
		{sample{Name: "Ana", Day: "10/06/2024", Count: 1}, "day must be a date in YYYY-MM-DD format"},
		{sample{Name: "Ana", Day: "2024-02-30", Count: 1}, "day must be a date in YYYY-MM-DD format"},
		{sample{Name: "Ana", At: "nine", Count: 1}, "at must be a time in HH:MM format"},
		{sample{Name: "Ana"}, "count must be at least 1"},
		{sample{Name: "Ana", Count: 1, Plain: "::"}, "Plain must be a valid URL"},
	}
	for _, tc := range cases {
		err := ValidateStruct(tc.in)
		require.Error(t, err, tc.want)
		assert.Equal(t, tc.want, ValidationMessage(err))
	}
}

func TestValidateStruct_Clock(t *testing.T) {
	for _, at := range []string{"9:30", "09:30", "00:00", "23:59", "23:59:59", "24:00", "24:00:00"} {
		assert.NoError(t, ValidateStruct(sample{Name: "Ana", At: at, Count: 1}), at)
	}
	for _, at := range []string{"10:-30", "10:60", "10:5", "24:30", "25:00", "-1:00", "09:xx", "09:15:zz", "09:15:60", "1:2:3:4", "0930"} {
		err := ValidateStruct(sample{Name: "Ana", At: at, Count: 1})
		if assert.Error(t, err, at) {
			assert.Equal(t, "at must be a time in HH:MM format", ValidationMessage(err))
		}
	}
}

func TestValidationMessage_PassesThroughOtherErrors(t *testing.T) {
	assert.Equal(t, "boom", ValidationMessage(errors.New("boom")))
}
