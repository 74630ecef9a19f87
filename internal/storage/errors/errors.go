// Package errors provides custom errors for types implementing BlockStorage interface.
package errors

import (
	"fmt"
)

type (
	StorageAlreadyExistsError struct {
		Height int
	}
	ContextTimeoutExceededError struct {
	}
	StorageFileWriteError struct {
		Err error
	}
	StatementSQLError struct {
		Msg string
		Err error
	}
)

func (e StorageAlreadyExistsError) Error() string {
	return fmt.Sprintf("block at height %d already exists", e.Height)
}

func (e ContextTimeoutExceededError) Error() string {
	return "context timeout exceeded"
}

func (e StorageFileWriteError) Error() string {
	return fmt.Sprintf("file storage write error: %v", e.Err)
}

func (e StorageFileWriteError) Unwrap() error {
	return e.Err
}

func (e StatementSQLError) Error() string {
	return fmt.Sprintf("%s: %v", e.Msg, e.Err)
}

func (e StatementSQLError) Unwrap() error {
	return e.Err
}
