// Package errors provides custom errors for types implementing Processor interface.
package errors

import "fmt"

type (
	ServiceFoundNilStorage struct {
		Msg string
	}
	ServiceFoundNilBroadcaster struct {
		Msg string
	}
	ServiceFoundNilKey struct {
		Msg string
	}
	ServiceRestoreChainError struct {
		Err error
	}
	ServiceInvalidTransactionError struct {
		Err error
	}
	ServiceChainRejectedError struct {
		Err error
	}
	ServiceStorageError struct {
		Op  string
		Err error
	}
)

func (e *ServiceFoundNilStorage) Error() string {
	return e.Msg
}

func (e *ServiceFoundNilBroadcaster) Error() string {
	return e.Msg
}

func (e *ServiceFoundNilKey) Error() string {
	return e.Msg
}

func (e *ServiceRestoreChainError) Error() string {
	return fmt.Sprintf("stored chain could not be restored: %v", e.Err)
}

func (e *ServiceRestoreChainError) Unwrap() error {
	return e.Err
}

func (e *ServiceInvalidTransactionError) Error() string {
	return e.Err.Error()
}

func (e *ServiceInvalidTransactionError) Unwrap() error {
	return e.Err
}

func (e *ServiceChainRejectedError) Error() string {
	return fmt.Sprintf("incoming chain rejected: %v", e.Err)
}

func (e *ServiceChainRejectedError) Unwrap() error {
	return e.Err
}

func (e *ServiceStorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ServiceStorageError) Unwrap() error {
	return e.Err
}
