package validate

// FieldsError carries a translated message per invalid request field.
type FieldsError struct {
	Fields map[string]string
}

func NewFieldsError(fields map[string]string) *FieldsError {
	return &FieldsError{
		Fields: fields,
	}
}

func (f *FieldsError) Error() string {
	return "Fields error"
}
