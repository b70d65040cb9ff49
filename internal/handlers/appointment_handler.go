package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/clinic-booking/internal/logger"
	ucAppointment "github.com/BruksfildServices01/clinic-booking/internal/usecase/appointment"
	"github.com/BruksfildServices01/clinic-booking/internal/web"
)

// AppointmentHandler serves the booking pages for signed-in users.
type AppointmentHandler struct {
	createUC *ucAppointment.CreateAppointment
	listUC   *ucAppointment.ListAppointments
	log      zerolog.Logger
}

func NewAppointmentHandler(
	createUC *ucAppointment.CreateAppointment,
	listUC *ucAppointment.ListAppointments,
) *AppointmentHandler {
	return &AppointmentHandler{
		createUC: createUC,
		listUC:   listUC,
		log:      logger.With("appointments"),
	}
}

func (h *AppointmentHandler) List(c *gin.Context) {
	h.renderList(c, gin.H{})
}

func (h *AppointmentHandler) AddPage(c *gin.Context) {
	render(c, http.StatusOK, web.PageAddAppointment, nil)
}

// Add books whatever was submitted and shows the updated list.
func (h *AppointmentHandler) Add(c *gin.Context) {
	_, err := h.createUC.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		ActorEmail: actorEmail(c),
		Name:       c.PostForm("name"),
		Date:       c.PostForm("date"),
		Time:       c.PostForm("time"),
	})
	if err != nil {
		h.log.Error().Err(err).Msg("could not book appointment")
		render(c, http.StatusInternalServerError, web.PageAddAppointment, gin.H{
			"Error": "Could not book the appointment, please try again.",
		})
		return
	}

	h.renderList(c, gin.H{"Message": "Appointment booked successfully."})
}

func (h *AppointmentHandler) renderList(c *gin.Context, data gin.H) {
	items, err := h.listUC.Execute(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("could not list appointments")
		c.String(http.StatusInternalServerError, "Could not load appointments.")
		return
	}

	data["Appointments"] = items
	render(c, http.StatusOK, web.PageAppointments, data)
}
