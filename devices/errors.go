package devices

import "strings"

// ErrorSet collects the errors of several devices and is itself an error.
type ErrorSet []error

// Len returns the number of errors in the set.
func (e ErrorSet) Len() int {
	return len(e)
}

// Append adds the non-nil errors in args to the set.
func (e *ErrorSet) Append(args ...error) {
	for _, err := range args {
		if err != nil {
			*e = append(*e, err)
		}
	}
}

// Unwrap exposes the members to errors.Is and errors.As.
func (e ErrorSet) Unwrap() []error {
	return e
}

func (e ErrorSet) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}
