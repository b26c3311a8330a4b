package val_test

import (
	"strings"
	"testing"

	"github.com/code19m/errx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rise-and-shine/agenda/val"
)

type eventInput struct {
	ID    string `params:"id" validate:"required,uuid"`
	Title string `json:"title" validate:"required,not_blank,max=10"`
	Kind  string `json:"kind,omitempty" validate:"omitempty,oneof=meeting reminder"`
}

func TestValidateSchema(t *testing.T) {
	const okID = "9b2a4c3e-6f1d-4b7a-8c55-0e1f2a3b4c5d"

	tests := []struct {
		name   string
		input  eventInput
		fields errx.M
	}{
		{
			name:  "valid",
			input: eventInput{ID: okID, Title: "Standup"},
		},
		{
			name:  "missing everything",
			input: eventInput{},
			fields: errx.M{
				"id":    "This field is required",
				"title": "This field is required",
			},
		},
		{
			name:   "blank title",
			input:  eventInput{ID: okID, Title: "   "},
			fields: errx.M{"title": "Must not be blank"},
		},
		{
			name:  "too long and bad enum",
			input: eventInput{ID: "nope", Title: strings.Repeat("x", 11), Kind: "party"},
			fields: errx.M{
				"id":    "Must be a valid UUID",
				"title": "Must be at most 10 characters",
				"kind":  "Must be one of: meeting, reminder",
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := val.ValidateSchema(tc.input)
			if tc.fields == nil {
				require.NoError(t, err)
				return
			}

			require.Error(t, err)
			e := errx.AsErrorX(err)
			assert.Equal(t, val.CodeValidationFailed, e.Code())
			assert.Equal(t, errx.T_Validation, e.Type())
			assert.Equal(t, tc.fields, e.Fields())
		})
	}
}
