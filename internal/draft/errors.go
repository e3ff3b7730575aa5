package draft

import "fmt"

// Issue is a single failed field rule.
type Issue struct {
	Field   string
	Message string
}

// ValidationError is returned when a draft fails its schema rules. Message is
// the summary shown above the form; Issues are shown next to the fields.
type ValidationError struct {
	Entity  string
	Message string
	Issues  []Issue
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Issue returns the message for the named field, if it failed.
func (e *ValidationError) Issue(field string) (string, bool) {
	for _, i := range e.Issues {
		if i.Field == field {
			return i.Message, true
		}
	}
	return "", false
}

// UnknownFieldError is returned when setting a field the schema does not declare.
type UnknownFieldError struct {
	Entity string
	Field  string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("%s has no editable field %q", e.Entity, e.Field)
}
