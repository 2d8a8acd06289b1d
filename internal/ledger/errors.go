package ledger

import "fmt"

// StoreReadError reports a ledger that is missing, unreadable or malformed.
type StoreReadError struct {
	Path string
	Err  error
}

func (e *StoreReadError) Error() string {
	return fmt.Sprintf("reading ledger %s: %v", e.Path, e.Err)
}

func (e *StoreReadError) Unwrap() error { return e.Err }

// StoreWriteError reports a failed overwrite of the ledger document.
type StoreWriteError struct {
	Path string
	Err  error
}

func (e *StoreWriteError) Error() string {
	return fmt.Sprintf("writing ledger %s: %v", e.Path, e.Err)
}

func (e *StoreWriteError) Unwrap() error { return e.Err }

// InvalidInputError reports a bad field while building a record.
type InvalidInputError struct {
	Field  string
	Value  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}
