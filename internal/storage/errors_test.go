package storage

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type driverError struct{ code int }

func (e *driverError) Error() string { return fmt.Sprintf("driver error %d", e.code) }

func TestKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, "ok"},
		{"validation", fmt.Errorf("%w: invalid price -1", ErrValidation), "validation"},
		{"duplicate", fmt.Errorf("%w: 'Manti'", ErrDuplicate), "duplicate"},
		{"not found", fmt.Errorf("%w: id 9", ErrNotFound), "not_found"},
		{"deleted", fmt.Errorf("%w: id 9", ErrDeleted), "deleted"},
		{"already deleted", fmt.Errorf("%w: id 9", ErrAlreadyDeleted), "already_deleted"},
		{"store", StoreError("query meal", errors.New("disk I/O error")), "store"},
		{"unclassified", errors.New("boom"), "store"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Kind(tt.err))
		})
	}
}

func TestAlreadyDeletedWrapsDeleted(t *testing.T) {
	err := fmt.Errorf("%w: meal with ID 1", ErrAlreadyDeleted)
	assert.ErrorIs(t, err, ErrAlreadyDeleted)
	assert.ErrorIs(t, err, ErrDeleted)
	assert.NotErrorIs(t, fmt.Errorf("%w: meal with ID 1", ErrDeleted), ErrAlreadyDeleted)
}

func TestStoreErrorKeepsDriverError(t *testing.T) {
	cause := &driverError{code: 10}
	err := StoreError("insert meal", cause)

	assert.ErrorIs(t, err, ErrStore)
	assert.Contains(t, err.Error(), "failed to insert meal")

	var target *driverError
	assert.ErrorAs(t, err, &target)
	assert.Equal(t, 10, target.code)
}
