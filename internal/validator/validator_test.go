package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type monthPayload struct {
	Month string `json:"month" validate:"required,yyyymm"`
}

func TestMonthRule(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&monthPayload{Month: "2026-09"}))
	assert.NoError(t, v.Validate(&monthPayload{Month: "2026-12"}))

	for _, bad := range []string{"2026-13", "2026-00", "2026-9", "202609", "sept 2026", ""} {
		err := v.Validate(&monthPayload{Month: bad})
		assert.Error(t, err, "month %q should fail", bad)
	}
}

func TestValidationErrorUsesJSONFieldNames(t *testing.T) {
	v := New()

	err := v.Validate(&monthPayload{Month: "bad"})
	require.Error(t, err)

	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Contains(t, vErr.Errors, "month")
}
