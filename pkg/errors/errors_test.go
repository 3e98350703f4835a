package errors_test

import (
	"errors"
	"fmt"
	"testing"

	pkgerrors "github.com/agentstation/factmap/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{
			Field:   "source_id",
			Message: "cannot be empty",
		}
		assert.Equal(t, "validation failed for field source_id: cannot be empty", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrInvalidInput))
		assert.False(t, errors.Is(err, pkgerrors.ErrMisconfigured))
	})

	t.Run("without field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{Message: "entity is nil"}
		assert.Equal(t, "validation failed: entity is nil", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
	})

	t.Run("wrapped", func(t *testing.T) {
		err := fmt.Errorf("merging: %w", pkgerrors.NewValidationError("snapshots", 2, "duplicate source"))
		assert.True(t, pkgerrors.IsValidationError(err))
	})
}

func TestConfigError(t *testing.T) {
	t.Run("with component", func(t *testing.T) {
		err := pkgerrors.NewConfigError("fields", "core field list is empty", nil)
		assert.Equal(t, "configuration error in fields: core field list is empty", err.Error())
		assert.True(t, pkgerrors.IsMisconfigured(err))
		assert.False(t, pkgerrors.IsValidationError(err))
	})

	t.Run("unwraps cause", func(t *testing.T) {
		cause := errors.New("boom")
		err := pkgerrors.NewConfigError("reliability", "load failed", cause)
		assert.ErrorIs(t, err, cause)
	})

	t.Run("wrap nil", func(t *testing.T) {
		assert.NoError(t, pkgerrors.WrapConfig("policy", nil))
	})
}

func TestNotFoundError(t *testing.T) {
	err := pkgerrors.NewNotFoundError("field", "location.zip")
	assert.Equal(t, "field with ID location.zip not found", err.Error())
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestWrapHelpers(t *testing.T) {
	base := errors.New("unexpected EOF")

	parseErr := pkgerrors.WrapParse("yaml", "entity.yaml", base)
	assert.Contains(t, parseErr.Error(), "entity.yaml")
	assert.ErrorIs(t, parseErr, base)

	ioErr := pkgerrors.WrapIO("read", "/tmp/x", base)
	assert.Contains(t, ioErr.Error(), "read")
	assert.ErrorIs(t, ioErr, base)

	assert.NoError(t, pkgerrors.WrapIO("read", "", nil))
	assert.NoError(t, pkgerrors.WrapParse("json", "", nil))
	assert.Error(t, pkgerrors.WrapValidation("x", base))
}
