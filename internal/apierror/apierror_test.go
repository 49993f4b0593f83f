package apierror

import (
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriteKnownKind(t *testing.T) {
	rec := httptest.NewRecorder()
	Write(rec, NotFound("Blog not found!"))

	assert.Equal(t, 404, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"success":false,"message":"Blog not found!"}`, rec.Body.String())
}

func TestWriteWrappedKind(t *testing.T) {
	rec := httptest.NewRecorder()
	wrapped := fmt.Errorf("handler: %w", Validation("Please fill full form!"))
	Write(rec, wrapped)

	assert.Equal(t, 400, rec.Code)
	assert.JSONEq(t, `{"success":false,"message":"Please fill full form!"}`, rec.Body.String())
}

func TestWriteUnknownError(t *testing.T) {
	rec := httptest.NewRecorder()
	Write(rec, errors.New("something internal and scary"))

	assert.Equal(t, 500, rec.Code)
	assert.JSONEq(t, `{"success":false,"message":"Internal server error"}`, rec.Body.String())
}

func TestUploadKeepsCause(t *testing.T) {
	cause := errors.New("timeout")
	err := Upload("Error occurred while uploading one or more images!", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, 500, err.Status)
	assert.Contains(t, err.Error(), "timeout")
}
