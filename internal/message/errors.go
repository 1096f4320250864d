package message

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedDocument      = errors.New("malformed document")
	ErrSchemaMismatch         = errors.New("schema mismatch")
	ErrInvalidBooleanEncoding = errors.New("invalid boolean encoding")
)

// ErrorKind classifies a ParseError.
type ErrorKind int

const (
	MalformedDocument ErrorKind = iota + 1
	SchemaMismatch
	InvalidBooleanEncoding
)

func (k ErrorKind) String() string {
	switch k {
	case MalformedDocument:
		return "malformed document"
	case SchemaMismatch:
		return "schema mismatch"
	case InvalidBooleanEncoding:
		return "invalid boolean encoding"
	}
	return fmt.Sprintf("error kind %d", int(k))
}

// ParseError reports why a document could not be parsed. Path is the dotted
// wire breadcrumb of the offending field, empty for the document itself.
type ParseError struct {
	Kind ErrorKind
	Path string
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	}
	return fmt.Sprintf("%s at %s: %s", e.Kind, e.Path, e.Msg)
}

// Unwrap returns the sentinel for the error kind, so errors.Is matches
// ErrMalformedDocument, ErrSchemaMismatch and ErrInvalidBooleanEncoding.
func (e *ParseError) Unwrap() error {
	switch e.Kind {
	case MalformedDocument:
		return ErrMalformedDocument
	case SchemaMismatch:
		return ErrSchemaMismatch
	case InvalidBooleanEncoding:
		return ErrInvalidBooleanEncoding
	}
	return nil
}

func missingField(path string) error {
	return &ParseError{Kind: SchemaMismatch, Path: path, Msg: "missing required field"}
}

func typeMismatch(path, want string, got string) error {
	return &ParseError{Kind: SchemaMismatch, Path: path, Msg: fmt.Sprintf("want %s, got %s", want, got)}
}
