package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	assert.Equal(t, http.StatusConflict, StatusCode(ErrConflict("taken")))
	assert.Equal(t, http.StatusNotFound, StatusCode(fmt.Errorf("lookup: %w", ErrNotFound("missing"))))
	assert.Equal(t, http.StatusInternalServerError, StatusCode(fmt.Errorf("db down")))
}

func TestPublicMessage(t *testing.T) {
	assert.Equal(t, "Invalid credentials", PublicMessage(ErrUnauthorized("Invalid credentials")))
	assert.Equal(t, "Internal Server Error", PublicMessage(fmt.Errorf("pq: connection refused")))
}
