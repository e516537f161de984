package controller

import (
	"biodiv_backend/pkg/logger"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type stubExporter struct {
	body string
	err  error
}

func (e stubExporter) ExportCSV(ctx context.Context, w io.Writer) error {
	if e.err != nil {
		return e.err
	}
	_, err := io.WriteString(w, e.body)
	return err
}

func exportRouter(exporter CSVExporter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	c := &AdminController{ExportService: exporter}
	router.GET("/api/admin/export-csv", c.ExportCSV)
	return router
}

func TestExportCSVSuccess(t *testing.T) {
	router := exportRouter(stubExporter{body: "id,user\n1,amina\n"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/export-csv", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "biodiversity_export.csv")
	assert.Equal(t, "id,user\n1,amina\n", w.Body.String())
}

func TestExportCSVFailureReturnsErrorStatus(t *testing.T) {
	logger.Log = zap.NewNop()
	router := exportRouter(stubExporter{err: errors.New("questions unavailable")})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/export-csv", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, w.Header().Get("Content-Disposition"))
	assert.Contains(t, w.Body.String(), "Internal server error")
	assert.NotContains(t, w.Body.String(), "id,user")
}
