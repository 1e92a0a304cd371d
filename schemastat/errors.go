package schemastat

import "fmt"

// TypeMismatchError reports a field whose kind flipped between container and
// scalar across documents. The record keeps its last-known-good state; the
// conflicting observation is not folded in.
type TypeMismatchError struct {
	Path     string
	Declared string
	Observed string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("field %q declared %s, observed %s", e.Path, e.Declared, e.Observed)
}
