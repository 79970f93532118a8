package brief

import (
	"errors"
	"strings"
)

// ErrMissingRequiredFields is matched by every *ValidationError.
var ErrMissingRequiredFields = errors.New("missing required fields")

// FieldError is a single field-level validation message, shown next to the
// offending form control.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every field that blocked submission, in form order.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	names := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		names[i] = f.Field
	}
	return ErrMissingRequiredFields.Error() + ": " + strings.Join(names, ", ")
}

// Is makes errors.Is(err, ErrMissingRequiredFields) hold.
func (e *ValidationError) Is(target error) bool {
	return target == ErrMissingRequiredFields
}

// Messages returns the field errors keyed by field name.
func (e *ValidationError) Messages() map[string]string {
	m := make(map[string]string, len(e.Fields))
	for _, f := range e.Fields {
		m[f.Field] = f.Message
	}
	return m
}

type requiredField struct {
	name    string
	message string
	value   func(Request) string
}

// requiredFields follows the order the form shows them in.
var requiredFields = []requiredField{
	{"title", "タイトルは必須です", func(r Request) string { return r.Title }},
	{"deliverable_type", "成果物は必須です", func(r Request) string { return r.DeliverableType }},
	{"background", "背景は必須です", func(r Request) string { return r.Background }},
	{"problem", "課題は必須です", func(r Request) string { return r.Problem }},
	{"goal", "ゴールは必須です", func(r Request) string { return r.Goal }},
	{"elements", "必須要素は必須です", func(r Request) string { return r.Elements }},
}

// Validate checks presence of the required fields and the conditional
// deliverable_type_other rule. Values are not checked beyond presence,
// except that priority must be one of the known values when set.
func (r Request) Validate() error {
	var fields []FieldError
	for _, f := range requiredFields {
		if isBlank(f.value(r)) {
			fields = append(fields, FieldError{Field: f.name, Message: f.message})
		}
	}
	if r.DeliverableType == OtherDeliverable && isBlank(r.DeliverableTypeOther) {
		fields = append(fields, FieldError{Field: "deliverable_type_other", Message: "成果物を入力してください"})
	}
	if !r.Priority.Valid() {
		fields = append(fields, FieldError{Field: "priority", Message: "優先度は high / medium / low のいずれかを指定してください"})
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
