package errors_test

import (
	"errors"
	"fmt"
	"testing"

	pkgerrors "github.com/mujaffa/commandcenter/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestNotFoundError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := &pkgerrors.NotFoundError{
			Resource: "trade log",
			ID:       "trades.json",
		}
		assert.Equal(t, "trade log trades.json not found", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrNotFound))
	})

	t.Run("wrapped error", func(t *testing.T) {
		base := pkgerrors.NewNotFoundError("probe history", "health.json")
		wrapped := fmt.Errorf("loading: %w", base)
		assert.True(t, pkgerrors.IsNotFound(wrapped))
	})
}

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{
			Field:   "starting_capital",
			Message: "must be positive",
		}
		assert.Equal(t, "validation failed for field starting_capital: must be positive", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrInvalidInput))
	})

	t.Run("without field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{Message: "invalid configuration"}
		assert.Equal(t, "validation failed: invalid configuration", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
	})
}

func TestConfigError(t *testing.T) {
	base := errors.New("no such key")
	err := pkgerrors.NewConfigError("publisher", "git_branch cannot be empty", base)
	assert.Contains(t, err.Error(), "publisher")
	assert.Contains(t, err.Error(), "git_branch")
	assert.Equal(t, base, err.Unwrap())

	bare := &pkgerrors.ConfigError{Message: "broken"}
	assert.Equal(t, "configuration error: broken", bare.Error())
}

func TestParseError(t *testing.T) {
	t.Run("with file", func(t *testing.T) {
		err := &pkgerrors.ParseError{
			Format:  "json",
			File:    "trades.json",
			Message: "unexpected end of JSON input",
		}
		assert.Equal(t, "parse error in json file trades.json: unexpected end of JSON input", err.Error())
	})

	t.Run("format only", func(t *testing.T) {
		err := &pkgerrors.ParseError{Format: "html", Message: "empty document"}
		assert.Equal(t, "html parse error: empty document", err.Error())
	})

	t.Run("wrap", func(t *testing.T) {
		base := errors.New("EOF")
		wrapped := pkgerrors.WrapParse("json", "health.json", base)
		parseErr, ok := wrapped.(*pkgerrors.ParseError)
		require.True(t, ok)
		assert.Equal(t, "json", parseErr.Format)
		assert.Equal(t, base, parseErr.Unwrap())
		assert.True(t, pkgerrors.IsParseError(fmt.Errorf("outer: %w", wrapped)))
		assert.Nil(t, pkgerrors.WrapParse("json", "x", nil))
	})
}

func TestIOError(t *testing.T) {
	base := errors.New("permission denied")
	err := pkgerrors.WrapIO("write", "/srv/dashboard/index.html", base)
	ioErr, ok := err.(*pkgerrors.IOError)
	require.True(t, ok)
	assert.Equal(t, "write", ioErr.Operation)
	assert.Contains(t, err.Error(), "/srv/dashboard/index.html")
	assert.Equal(t, base, ioErr.Unwrap())
	assert.Nil(t, pkgerrors.WrapIO("read", "file", nil))
}

func TestProcessError(t *testing.T) {
	t.Run("with output", func(t *testing.T) {
		err := &pkgerrors.ProcessError{
			Operation: "push",
			Command:   "git push origin master",
			Output:    "fatal: could not read from remote repository",
			ExitCode:  128,
			Err:       errors.New("exit status 128"),
		}
		assert.Contains(t, err.Error(), "git push origin master")
		assert.Contains(t, err.Error(), "could not read from remote")
	})

	t.Run("without output", func(t *testing.T) {
		err := pkgerrors.NewProcessError("commit", "git commit -m x", "", errors.New("signal: killed"))
		assert.Equal(t, -1, err.ExitCode)
		assert.NotContains(t, err.Error(), "Output:")
	})

	t.Run("as", func(t *testing.T) {
		err := fmt.Errorf("publish: %w", pkgerrors.NewProcessError("add", "git add .", "", errors.New("boom")))
		pe, ok := pkgerrors.AsProcessError(err)
		require.True(t, ok)
		assert.Equal(t, "add", pe.Operation)

		_, ok = pkgerrors.AsProcessError(errors.New("plain"))
		assert.False(t, ok)
	})
}

func TestWrapValidation(t *testing.T) {
	err := pkgerrors.WrapValidation("expected_sites", errors.New("must not be negative"))
	assert.Contains(t, err.Error(), "expected_sites")
	assert.True(t, pkgerrors.IsValidationError(err))
	assert.Nil(t, pkgerrors.WrapValidation("field", nil))
}

func TestIsCanceled(t *testing.T) {
	assert.True(t, pkgerrors.IsCanceled(fmt.Errorf("watch: %w", pkgerrors.ErrCanceled)))
	assert.False(t, pkgerrors.IsCanceled(pkgerrors.ErrNotFound))
}
