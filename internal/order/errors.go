package order

import (
	"errors"
	"net/http"

	"github.com/fekuna/omnipos-backoffice-service/internal/order/dto"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrBackupFailed  = errors.New("cannot backup order data")
)

const DeletedMessage = "Order and related items deleted successfully"

// Message is the text shown to API callers for a lifecycle failure.
func Message(err error) string {
	switch {
	case errors.Is(err, ErrOrderNotFound):
		return "Order Not Found"
	case errors.Is(err, ErrBackupFailed):
		return "Cannot backup order data"
	default:
		return err.Error()
	}
}

// DeleteResult folds the outcome of a delete into the status/message pair the API reports.
// Every failure is a 500, including a missing order.
func DeleteResult(err error) dto.DeleteOrderResult {
	if err == nil {
		return dto.DeleteOrderResult{Status: http.StatusOK, Message: DeletedMessage}
	}
	return dto.DeleteOrderResult{Status: http.StatusInternalServerError, Message: Message(err)}
}
