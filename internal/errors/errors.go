package errors

import (
	stderrors "errors"
	"fmt"
)

type Kind string

const (
	InvalidConfig Kind = "invalid_config"
	NotFound      Kind = "not_found"
	InvalidName   Kind = "invalid_name"
	PartialWrite  Kind = "partial_write"
	Structural    Kind = "structural"
	DeleteFailure Kind = "delete_failure"
	Busy          Kind = "busy"
	IOFailure     Kind = "io_failure"
	Internal      Kind = "internal"
)

type AppError struct {
	Kind Kind
	Op   string
	Path string
	Err  error
}

func (e *AppError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func Wrap(kind Kind, op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &AppError{
		Kind: kind,
		Op:   op,
		Path: path,
		Err:  err,
	}
}

// KindOf returns the kind of the outermost AppError in the chain, or Internal.
func KindOf(err error) Kind {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Kind
	}
	return Internal
}

func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

func UserMessage(err error) string {
	var appErr *AppError
	if !stderrors.As(err, &appErr) {
		return err.Error()
	}
	switch appErr.Kind {
	case InvalidConfig:
		return fmt.Sprintf("Invalid configuration: %v", appErr.Err)
	case NotFound:
		if appErr.Op == "preview" {
			return "Image does not exist."
		}
		return fmt.Sprintf("Path not found: %s", appErr.Path)
	case InvalidName:
		return "Invalid folder name for image preview."
	case PartialWrite:
		return fmt.Sprintf("Could not write: %s", appErr.Path)
	case Structural:
		return fmt.Sprintf("Cannot prepare %s: %v", appErr.Path, appErr.Err)
	case DeleteFailure:
		return fmt.Sprintf("Delete stopped at %s: %v", appErr.Path, appErr.Err)
	case Busy:
		return fmt.Sprintf("Another operation is using %s", appErr.Path)
	case IOFailure:
		return fmt.Sprintf("I/O error: %s", appErr.Path)
	default:
		return fmt.Sprintf("Unexpected error: %v", appErr.Err)
	}
}
