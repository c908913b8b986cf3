package errors

import (
	"net/http"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
)

func TestBuilder_Mark(t *testing.T) {
	err := NewError("store not found").
		WithHint("Store is not configured").
		WithReportableDetails(map[string]any{"store_id": "store_1"}).
		Mark(ErrNotFound)

	assert.True(t, IsNotFound(err))
	assert.False(t, IsValidation(err))
	assert.Contains(t, errors.GetAllHints(err), "Store is not configured")
	assert.Equal(t, http.StatusNotFound, HTTPStatusFromErr(err))
}

func TestBuilder_WithErrorKeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := WithError(cause).WithMessage("calling tax service").Mark(ErrHTTPClient)

	assert.True(t, IsHTTPClient(err))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, http.StatusBadGateway, HTTPStatusFromErr(err))
}

func TestHTTPStatusFromErr_Unmarked(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, HTTPStatusFromErr(errors.New("boom")))
}

func TestInternalError_Is(t *testing.T) {
	err := New(ErrCodeValidation, "bad settings")
	assert.True(t, errors.Is(err, ErrValidation))
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "validation_error: bad settings", err.Error())
}
