package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-booking/internal/httperr"
	"github.com/BruksfildServices01/clinic-booking/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

// AuditLogsHandler lists the audit trail. Only mounted when audit events
// are stored in the database.
type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	action := c.Query("action")
	entity := c.Query("entity")
	email := c.Query("user_email")
	fromStr := c.Query("from")
	toStr := c.Query("to")

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	offset := (page - 1) * limit

	// --------------------------------------------------
	// Optional filters
	// --------------------------------------------------

	filters := func(q *gorm.DB) *gorm.DB {
		if action != "" {
			q = q.Where("action = ?", action)
		}
		if entity != "" {
			q = q.Where("entity = ?", entity)
		}
		if email != "" {
			q = q.Where("user_email = ?", email)
		}
		if fromStr != "" {
			if from, err := time.Parse("2006-01-02", fromStr); err == nil {
				q = q.Where("created_at >= ?", from)
			}
		}
		if toStr != "" {
			if to, err := time.Parse("2006-01-02", toStr); err == nil {
				q = q.Where("created_at < ?", to.Add(24*time.Hour))
			}
		}
		return q
	}

	ctx := c.Request.Context()

	var total int64
	if err := h.db.WithContext(ctx).
		Model(&models.AuditLog{}).
		Scopes(filters).
		Count(&total).Error; err != nil {
		httperr.Internal(c, "audit_count_failed", "Could not count audit logs.")
		return
	}

	var logs []models.AuditLog
	if err := h.db.WithContext(ctx).
		Scopes(filters).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error; err != nil {
		httperr.Internal(c, "audit_list_failed", "Could not list audit logs.")
		return
	}

	c.JSON(200, gin.H{
		"page":  page,
		"limit": limit,
		"total": total,
		"logs":  logs,
	})
}
