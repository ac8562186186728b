package router

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"workspace/internal/errors"
)

type sample struct {
	Name   string  `json:"name" validate:"required"`
	Status string  `json:"status" validate:"omitempty,oneof=Pending Completed"`
	Header *string `json:"header" validate:"omitnil,min=1"`
}

func TestCustomValidator(t *testing.T) {
	empty := ""
	ok := "Intro"

	tests := []struct {
		name    string
		input   sample
		message string
	}{
		{name: "valid", input: sample{Name: "x", Header: &ok}},
		{name: "absent optional pointer", input: sample{Name: "x"}},
		{name: "missing required", input: sample{}, message: "name is required"},
		{name: "bad enum", input: sample{Name: "x", Status: "Done"}, message: "status must be one of: Pending Completed"},
		{name: "present but empty", input: sample{Name: "x", Header: &empty}, message: "header must be at least 1 characters"},
	}

	v := NewValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&tt.input)
			if tt.message == "" {
				assert.NoError(t, err)
				return
			}
			var validationErr *errors.ValidationError
			if assert.ErrorAs(t, err, &validationErr) {
				assert.Equal(t, tt.message, validationErr.Message)
			}
		})
	}
}
