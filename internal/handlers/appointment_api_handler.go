package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/clinic-booking/internal/dto"
	"github.com/BruksfildServices01/clinic-booking/internal/httperr"
	"github.com/BruksfildServices01/clinic-booking/internal/httpresp"
	"github.com/BruksfildServices01/clinic-booking/internal/logger"
	ucAppointment "github.com/BruksfildServices01/clinic-booking/internal/usecase/appointment"
)

type AppointmentAPIHandler struct {
	createUC *ucAppointment.CreateAppointment
	listUC   *ucAppointment.ListAppointments
	log      zerolog.Logger
}

func NewAppointmentAPIHandler(
	createUC *ucAppointment.CreateAppointment,
	listUC *ucAppointment.ListAppointments,
) *AppointmentAPIHandler {
	return &AppointmentAPIHandler{
		createUC: createUC,
		listUC:   listUC,
		log:      logger.With("api"),
	}
}

type CreateAppointmentRequest struct {
	Name  string  `json:"name"`
	Date  string  `json:"date"`
	Time  string  `json:"time"`
	Notes *string `json:"notes"`
}

func (h *AppointmentAPIHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "Invalid appointment payload.")
		return
	}

	ap, err := h.createUC.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		ActorEmail: actorEmail(c),
		Name:       req.Name,
		Date:       req.Date,
		Time:       req.Time,
		Notes:      req.Notes,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("could not create appointment")
		httperr.Internal(c, "create_appointment_failed", "Could not create appointment.")
		return
	}

	httpresp.Created(c, dto.FromAppointment(*ap))
}

func (h *AppointmentAPIHandler) List(c *gin.Context) {
	items, err := h.listUC.Execute(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("could not list appointments")
		httperr.Internal(c, "list_appointments_failed", "Could not list appointments.")
		return
	}

	httpresp.List(c, items)
}
