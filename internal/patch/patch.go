// Package patch turns JSON Patch documents aimed at a point of interest into
// a list of typed field operations and applies them to a copy of the record.
package patch

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"cityinfo-api/internal/models"
	"cityinfo-api/internal/pkg/errors"
)

type Field string

const (
	FieldName        Field = "name"
	FieldDescription Field = "description"
)

// Operation is one of SetField, RemoveField, TestField or CopyField.
type Operation interface {
	apply(doc *models.PointOfInterestForUpdate) error
	target() Field
}

// SetField covers both "add" and "replace": the targets are plain properties,
// so the two behave the same.
type SetField struct {
	Field Field
	Value string
}

// RemoveField resets the field to its zero value.
type RemoveField struct {
	Field Field
}

// TestField fails the whole document when the field does not hold Value.
type TestField struct {
	Field Field
	Value string
}

// CopyField copies From into To. A "move" is a CopyField followed by a
// RemoveField of the source.
type CopyField struct {
	From Field
	To   Field
}

func (op SetField) apply(doc *models.PointOfInterestForUpdate) error {
	*field(doc, op.Field) = op.Value
	return nil
}

func (op RemoveField) apply(doc *models.PointOfInterestForUpdate) error {
	*field(doc, op.Field) = ""
	return nil
}

func (op TestField) apply(doc *models.PointOfInterestForUpdate) error {
	if current := *field(doc, op.Field); current != op.Value {
		return fmt.Errorf("the current value %q at path '/%s' is not equal to the test value %q", current, op.Field, op.Value)
	}
	return nil
}

func (op CopyField) apply(doc *models.PointOfInterestForUpdate) error {
	*field(doc, op.To) = *field(doc, op.From)
	return nil
}

func (op SetField) target() Field    { return op.Field }
func (op RemoveField) target() Field { return op.Field }
func (op TestField) target() Field   { return op.Field }
func (op CopyField) target() Field   { return op.To }

func field(doc *models.PointOfInterestForUpdate, f Field) *string {
	if f == FieldName {
		return &doc.Name
	}
	return &doc.Description
}

// Parse validates a wire patch document and converts it to typed operations.
// All problems are reported at once in a *errors.ValidationError keyed by
// operation index.
func Parse(document []models.PatchOperation) ([]Operation, error) {
	verr := errors.NewValidationError()
	var ops []Operation

	for i, raw := range document {
		key := fmt.Sprintf("operations[%d]", i)
		parsed, err := parseOperation(raw)
		if err != nil {
			verr.Add(key, err.Error())
			continue
		}
		ops = append(ops, parsed...)
	}

	if verr.HasErrors() {
		return nil, verr
	}
	return ops, nil
}

func parseOperation(raw models.PatchOperation) ([]Operation, error) {
	target, err := parsePath(raw.Path)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(raw.Op) {
	case "add", "replace":
		value, err := parseValue(raw.Value)
		if err != nil {
			return nil, err
		}
		return []Operation{SetField{Field: target, Value: value}}, nil
	case "remove":
		return []Operation{RemoveField{Field: target}}, nil
	case "test":
		value, err := parseValue(raw.Value)
		if err != nil {
			return nil, err
		}
		return []Operation{TestField{Field: target, Value: value}}, nil
	case "copy", "move":
		source, err := parsePath(raw.From)
		if err != nil {
			return nil, fmt.Errorf("from: %w", err)
		}
		ops := []Operation{CopyField{From: source, To: target}}
		if strings.EqualFold(raw.Op, "move") && source != target {
			ops = append(ops, RemoveField{Field: source})
		}
		return ops, nil
	case "":
		return nil, fmt.Errorf("op is required")
	default:
		return nil, fmt.Errorf("unsupported op %q", raw.Op)
	}
}

func parsePath(path string) (Field, error) {
	if path == "" {
		return "", fmt.Errorf("path is required")
	}
	segment := strings.ToLower(strings.TrimPrefix(path, "/"))
	switch Field(segment) {
	case FieldName, FieldDescription:
		return Field(segment), nil
	default:
		return "", fmt.Errorf("the target location specified by path segment %q was not found", strings.TrimPrefix(path, "/"))
	}
}

// parseValue accepts a JSON string or null. Null clears the field.
func parseValue(raw json.RawMessage) (string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return "", fmt.Errorf("value is required")
	}
	if bytes.Equal(trimmed, []byte("null")) {
		return "", nil
	}
	var value string
	if err := json.Unmarshal(trimmed, &value); err != nil {
		return "", fmt.Errorf("value must be a string")
	}
	return value, nil
}

// Apply runs ops in order against a copy of doc. The input is never modified;
// on error the partially patched copy is discarded.
func Apply(doc models.PointOfInterestForUpdate, ops []Operation) (models.PointOfInterestForUpdate, error) {
	patched := doc
	for _, op := range ops {
		if err := op.apply(&patched); err != nil {
			verr := errors.NewValidationError()
			verr.Add("/"+string(op.target()), err.Error())
			return doc, verr
		}
	}
	return patched, nil
}
