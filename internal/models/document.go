package models

// Document is a parsed source export. Value holds the decoded JSON tree
// (objects as map[string]any, arrays as []any, numbers as json.Number).
// A nil *Document stands for a source file that does not exist.
type Document struct {
	Account string
	Source  Source
	Value   any
}
