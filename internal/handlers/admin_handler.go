package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/clinic-booking/internal/auth"
	"github.com/BruksfildServices01/clinic-booking/internal/logger"
	ucAppointment "github.com/BruksfildServices01/clinic-booking/internal/usecase/appointment"
	"github.com/BruksfildServices01/clinic-booking/internal/web"
)

// AdminHandler serves /admin/appointments. Role checks happen in the
// authorization middleware before these run.
type AdminHandler struct {
	listUC        *ucAppointment.ListAppointments
	updateNotesUC *ucAppointment.UpdateNotes
	deleteUC      *ucAppointment.DeleteAppointment
	log           zerolog.Logger
}

func NewAdminHandler(
	listUC *ucAppointment.ListAppointments,
	updateNotesUC *ucAppointment.UpdateNotes,
	deleteUC *ucAppointment.DeleteAppointment,
) *AdminHandler {
	return &AdminHandler{
		listUC:        listUC,
		updateNotesUC: updateNotesUC,
		deleteUC:      deleteUC,
		log:           logger.With("admin"),
	}
}

func (h *AdminHandler) List(c *gin.Context) {
	items, err := h.listUC.Execute(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("could not list appointments")
		c.String(http.StatusInternalServerError, "Could not load appointments.")
		return
	}

	render(c, http.StatusOK, web.PageAdminAppointments, gin.H{
		"Appointments": items,
	})
}

func (h *AdminHandler) UpdateNotes(c *gin.Context) {
	id, ok := appointmentID(c)
	if !ok {
		return
	}

	if err := h.updateNotesUC.Execute(
		c.Request.Context(),
		actorEmail(c),
		id,
		c.PostForm("notes"),
	); err != nil {
		h.log.Error().Err(err).Uint("id", id).Msg("could not update notes")
		c.String(http.StatusInternalServerError, "Could not update notes.")
		return
	}

	c.Redirect(http.StatusFound, auth.AdminLandingPath)
}

func (h *AdminHandler) Delete(c *gin.Context) {
	id, ok := appointmentID(c)
	if !ok {
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), actorEmail(c), id); err != nil {
		h.log.Error().Err(err).Uint("id", id).Msg("could not delete appointment")
		c.String(http.StatusInternalServerError, "Could not delete appointment.")
		return
	}

	c.Redirect(http.StatusFound, auth.AdminLandingPath)
}

func appointmentID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid appointment id.")
		return 0, false
	}
	return uint(id), true
}
