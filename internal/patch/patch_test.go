package patch

import (
	"encoding/json"
	"testing"

	"cityinfo-api/internal/models"
	"cityinfo-api/internal/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, raw string) []models.PatchOperation {
	t.Helper()
	var doc []models.PatchOperation
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	return doc
}

func TestParseAndApply(t *testing.T) {
	original := models.PointOfInterestForUpdate{Name: "Old", Description: "D"}

	tests := []struct {
		name     string
		document string
		want     models.PointOfInterestForUpdate
	}{
		{
			name:     "replace name",
			document: `[{"op":"replace","path":"/name","value":"New"}]`,
			want:     models.PointOfInterestForUpdate{Name: "New", Description: "D"},
		},
		{
			name:     "add behaves like replace",
			document: `[{"op":"add","path":"/description","value":"More"}]`,
			want:     models.PointOfInterestForUpdate{Name: "Old", Description: "More"},
		},
		{
			name:     "remove clears field",
			document: `[{"op":"remove","path":"/description"}]`,
			want:     models.PointOfInterestForUpdate{Name: "Old", Description: ""},
		},
		{
			name:     "null value clears field",
			document: `[{"op":"replace","path":"/description","value":null}]`,
			want:     models.PointOfInterestForUpdate{Name: "Old", Description: ""},
		},
		{
			name:     "paths are case insensitive",
			document: `[{"op":"Replace","path":"/Name","value":"Cased"}]`,
			want:     models.PointOfInterestForUpdate{Name: "Cased", Description: "D"},
		},
		{
			name:     "operations apply in order",
			document: `[{"op":"replace","path":"/name","value":"A"},{"op":"replace","path":"/name","value":"B"}]`,
			want:     models.PointOfInterestForUpdate{Name: "B", Description: "D"},
		},
		{
			name:     "copy",
			document: `[{"op":"copy","from":"/name","path":"/description"}]`,
			want:     models.PointOfInterestForUpdate{Name: "Old", Description: "Old"},
		},
		{
			name:     "move",
			document: `[{"op":"move","from":"/description","path":"/name"}]`,
			want:     models.PointOfInterestForUpdate{Name: "D", Description: ""},
		},
		{
			name:     "passing test",
			document: `[{"op":"test","path":"/name","value":"Old"},{"op":"replace","path":"/name","value":"New"}]`,
			want:     models.PointOfInterestForUpdate{Name: "New", Description: "D"},
		},
		{
			name:     "empty document",
			document: `[]`,
			want:     original,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ops, err := Parse(decode(t, tt.document))
			require.NoError(t, err)

			got, err := Apply(original, ops)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRejectsInvalidOperations(t *testing.T) {
	tests := []struct {
		name     string
		document string
		key      string
	}{
		{"unknown path", `[{"op":"replace","path":"/id","value":"5"}]`, "operations[0]"},
		{"missing path", `[{"op":"replace","value":"5"}]`, "operations[0]"},
		{"unknown op", `[{"op":"increment","path":"/name","value":"x"}]`, "operations[0]"},
		{"missing op", `[{"path":"/name","value":"x"}]`, "operations[0]"},
		{"missing value", `[{"op":"replace","path":"/name"}]`, "operations[0]"},
		{"non string value", `[{"op":"replace","path":"/name","value":42}]`, "operations[0]"},
		{"bad from", `[{"op":"copy","from":"/nope","path":"/name"}]`, "operations[0]"},
		{"second operation", `[{"op":"replace","path":"/name","value":"ok"},{"op":"replace","path":"/city","value":"x"}]`, "operations[1]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ops, err := Parse(decode(t, tt.document))
			assert.Nil(t, ops)
			require.ErrorIs(t, err, errors.ErrValidation)

			var verr *errors.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tt.key)
		})
	}
}

func TestApplyFailedTestLeavesDocumentUnchanged(t *testing.T) {
	original := models.PointOfInterestForUpdate{Name: "Old", Description: "D"}

	ops, err := Parse(decode(t, `[{"op":"replace","path":"/description","value":"Changed"},{"op":"test","path":"/name","value":"Other"}]`))
	require.NoError(t, err)

	got, err := Apply(original, ops)
	require.ErrorIs(t, err, errors.ErrValidation)
	assert.Equal(t, original, got)

	var verr *errors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "/name")
}

func TestParseBuildsTypedOperations(t *testing.T) {
	ops, err := Parse(decode(t, `[
		{"op":"replace","path":"/name","value":"N"},
		{"op":"remove","path":"/description"},
		{"op":"move","from":"/name","path":"/description"}
	]`))
	require.NoError(t, err)

	assert.Equal(t, []Operation{
		SetField{Field: FieldName, Value: "N"},
		RemoveField{Field: FieldDescription},
		CopyField{From: FieldName, To: FieldDescription},
		RemoveField{Field: FieldName},
	}, ops)
}
