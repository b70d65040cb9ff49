package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newAuditTestRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	r := gin.New()
	r.GET("/admin/audit-logs", NewAuditLogsHandler(db).List)
	return r, mock
}

func TestAuditLogsHandler_ListWithFilters(t *testing.T) {
	r, mock := newAuditTestRouter(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "audit_logs" WHERE action = $1`)).
		WithArgs("appointment_deleted").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "audit_logs" WHERE action = $1 ORDER BY created_at DESC`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_email", "action", "entity", "entity_id", "metadata", "created_at"}).
			AddRow(3, "admin@x.com", "appointment_deleted", "appointment", 1, "", time.Now()))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/audit-logs?action=appointment_deleted&limit=500", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Page  int `json:"page"`
		Limit int `json:"limit"`
		Total int `json:"total"`
		Logs  []struct {
			Action    string `json:"action"`
			UserEmail string `json:"user_email"`
		} `json:"logs"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Page)
	assert.Equal(t, 50, body.Limit)
	assert.Equal(t, 1, body.Total)
	require.Len(t, body.Logs, 1)
	assert.Equal(t, "admin@x.com", body.Logs[0].UserEmail)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditLogsHandler_CountFailure(t *testing.T) {
	r, mock := newAuditTestRouter(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "audit_logs"`)).
		WillReturnError(assert.AnError)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/audit-logs", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "audit_count_failed")
}
