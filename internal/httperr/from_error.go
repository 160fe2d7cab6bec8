package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
)

type ValidationHTTPError struct {
	HTTPError
	Fields []domain.FieldError `json:"fields"`
}

// Status maps a core error to its HTTP status.
func Status(err error) int {
	var (
		ve *domain.ValidationError
		nf *domain.NotFoundError
		ce *domain.ConflictError
		se *domain.StockError
		te *domain.InvalidTransitionError
		ne *domain.NotEditableError
		co *domain.CollaboratorError
		be BusinessError
	)

	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest
	case errors.As(err, &nf):
		return http.StatusNotFound
	case errors.As(err, &ce), errors.As(err, &se), errors.As(err, &te), errors.As(err, &ne):
		return http.StatusConflict
	case IsExclusionConflict(err):
		return http.StatusConflict
	case errors.As(err, &co):
		return http.StatusBadGateway
	case errors.As(err, &be):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// FromError writes err using the core taxonomy. Unknown errors never leak
// their text to the client.
func FromError(c *gin.Context, err error) {
	status := Status(err)

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		c.JSON(status, ValidationHTTPError{
			HTTPError: HTTPError{Code: ve.Code(), Message: ve.UserMessage()},
			Fields:    ve.Fields,
		})
		return
	}

	if IsExclusionConflict(err) {
		conflict := &domain.ConflictError{}
		Write(c, status, conflict.Code(), conflict.UserMessage())
		return
	}

	var ue domain.UserError
	if errors.As(err, &ue) {
		Write(c, status, ue.Code(), ue.UserMessage())
		return
	}

	var be BusinessError
	if errors.As(err, &be) {
		Write(c, status, be.Code, be.Code)
		return
	}

	Internal(c, "internal_error", "Erro interno.")
}
