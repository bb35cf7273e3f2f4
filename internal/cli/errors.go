package cli

import "fmt"

type notFoundError struct {
	ref string
}

func (e notFoundError) Error() string {
	return fmt.Sprintf("task not found: %s", e.ref)
}

type ambiguousIDError struct {
	ref     string
	matches []string
}

func (e ambiguousIDError) Error() string {
	return fmt.Sprintf("task id %q is ambiguous: matches %d tasks", e.ref, len(e.matches))
}
