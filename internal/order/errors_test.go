package order

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeleteResult(t *testing.T) {
	ok := DeleteResult(nil)
	assert.Equal(t, http.StatusOK, ok.Status)
	assert.Equal(t, DeletedMessage, ok.Message)

	missing := DeleteResult(fmt.Errorf("lookup: %w", ErrOrderNotFound))
	assert.Equal(t, http.StatusInternalServerError, missing.Status)
	assert.Equal(t, "Order Not Found", missing.Message)

	other := DeleteResult(errors.New("connection reset"))
	assert.Equal(t, http.StatusInternalServerError, other.Status)
	assert.Equal(t, "connection reset", other.Message)
}
