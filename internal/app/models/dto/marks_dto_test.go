package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkValue_TriState(t *testing.T) {
	var req SetMarksRequest
	require.NoError(t, json.Unmarshal([]byte(`{"fyp1Marks": 85.5, "fyp2Marks": null}`), &req))

	// Present with a number.
	assert.True(t, req.FYP1.Set())
	assert.False(t, req.FYP1.Clear())
	require.NotNil(t, req.FYP1.Value)
	assert.Equal(t, 85.5, *req.FYP1.Value)

	// Present as explicit null.
	assert.True(t, req.FYP2.Defined)
	assert.True(t, req.FYP2.Clear())
	assert.False(t, req.FYP2.Set())

	// Absent from the body.
	assert.False(t, req.LI.Defined)
	assert.False(t, req.LI.Set())
	assert.False(t, req.LI.Clear())
}

func TestMarkValue_RejectsNonNumeric(t *testing.T) {
	var req SetMarksRequest
	err := json.Unmarshal([]byte(`{"fyp1Marks": "eighty"}`), &req)
	assert.Error(t, err)
}
