package errors

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors(t *testing.T) {
	assert.Equal(t, "block at height 3 already exists", StorageAlreadyExistsError{Height: 3}.Error())
	assert.Equal(t, "context timeout exceeded", ContextTimeoutExceededError{}.Error())

	var err error = StorageFileWriteError{Err: fs.ErrPermission}
	assert.True(t, errors.Is(err, fs.ErrPermission))

	err = StatementSQLError{Msg: "inserting block", Err: fs.ErrClosed}
	assert.Equal(t, "inserting block: file already closed", err.Error())
	assert.True(t, errors.Is(err, fs.ErrClosed))

	var target StatementSQLError
	assert.True(t, errors.As(err, &target))
	assert.Equal(t, "inserting block", target.Msg)
}
