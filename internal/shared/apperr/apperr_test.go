package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(Validation("Name is required")))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(NotFound("Artist not found")))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("boom")))

	wrapped := fmt.Errorf("create artist: %w", Validation("Style is required"))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(wrapped))
	assert.Equal(t, "Style is required", Message(wrapped))
}

func TestIs_MatchesSentinelByKindAndMessage(t *testing.T) {
	sentinel := NotFound("Pet not found")
	err := fmt.Errorf("get pet: %w", NotFound("Pet not found"))

	assert.ErrorIs(t, err, sentinel)
	assert.NotErrorIs(t, err, Validation("Pet not found"))
}

func TestInternal_UnwrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Internal("load artists", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, KindInternal, KindOf(err))
	assert.Equal(t, "load artists: connection refused", err.Error())
}
