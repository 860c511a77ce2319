package validator

// Validator validates structs by their `validate` tags and single values by an
// inline tag.
type Validator interface {
	Validate(data any) error
	Var(field any, tag string) error
}
