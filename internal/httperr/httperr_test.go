package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
)

func TestStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", &domain.ValidationError{}, http.StatusBadRequest},
		{"not found", &domain.NotFoundError{Entity: "appointment", ID: 1}, http.StatusNotFound},
		{"conflict", &domain.ConflictError{}, http.StatusConflict},
		{"stock", &domain.StockError{ProductID: 2}, http.StatusConflict},
		{"transition", &domain.InvalidTransitionError{}, http.StatusConflict},
		{"not editable", &domain.NotEditableError{}, http.StatusConflict},
		{"collaborator", &domain.CollaboratorError{Op: "x", Err: errors.New("down")}, http.StatusBadGateway},
		{"pg exclusion", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23P01"}), http.StatusConflict},
		{"business", ErrBusiness("invalid_id"), http.StatusBadRequest},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Status(tc.err))
		})
	}
}

func TestIsExclusionConflict(t *testing.T) {
	assert.True(t, IsExclusionConflict(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsExclusionConflict(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsExclusionConflict(errors.New("23P01")))
}

func TestFromError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	write := func(err error) (*httptest.ResponseRecorder, map[string]any) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		FromError(c, err)

		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		return w, body
	}

	t.Run("stock message", func(t *testing.T) {
		w, body := write(&domain.StockError{ProductID: 2, ProductName: "Pomada"})
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "insufficient_stock", body["error_code"])
		assert.Contains(t, body["message"], "Pomada")
	})

	t.Run("validation fields", func(t *testing.T) {
		w, body := write(&domain.ValidationError{Fields: []domain.FieldError{
			{Field: "date", Code: "required", Message: "Data obrigatória."},
		}})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		fields, ok := body["fields"].([]any)
		require.True(t, ok)
		assert.Len(t, fields, 1)
	})

	t.Run("wrapped pg conflict", func(t *testing.T) {
		err := &domain.CollaboratorError{Op: "salvar agendamento", Err: &pgconn.PgError{Code: "23P01"}}
		w, body := write(err)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "time_conflict", body["error_code"])
	})

	t.Run("unknown hides details", func(t *testing.T) {
		w, body := write(errors.New("pq: password authentication failed"))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Erro interno.", body["message"])
	})
}
