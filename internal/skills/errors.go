package skills

import "fmt"

// CompileError is returned when a synonym is not a valid regular expression fragment.
type CompileError struct {
	Key     string
	Synonym string
	Cause   error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("compile error: skill %q synonym %q: %v", e.Key, e.Synonym, e.Cause)
}

func (e *CompileError) Unwrap() error {
	return e.Cause
}

// TableError describes a structurally invalid skill table.
type TableError struct {
	Key     string
	Message string
}

func (e *TableError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("skill table error for %q: %s", e.Key, e.Message)
	}
	return fmt.Sprintf("skill table error: %s", e.Message)
}
