package schedule

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/clinidesk/scheduling-api/internal/model"
	"github.com/clinidesk/scheduling-api/internal/service/schedule"
	apperrors "github.com/clinidesk/scheduling-api/pkg/errors"
	"github.com/clinidesk/scheduling-api/pkg/httputil"
	"github.com/clinidesk/scheduling-api/pkg/metrics"
)

type Handler struct {
	service *schedule.Service
	metrics *metrics.Metrics
}

func NewHandler(service *schedule.Service, m *metrics.Metrics) *Handler {
	return &Handler{service: service, metrics: m}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	doctors := r.Group("/doctors/:id")
	{
		doctors.GET("/availability/conflicts", h.GetConflicts)
		doctors.PUT("/slot-duration", h.UpdateSlotDuration)

		clinics := doctors.Group("/clinics/:clinicId")
		{
			clinics.GET("/availability", h.GetSchedule)
			clinics.PUT("/availability", h.SaveAvailability)
			clinics.PUT("/off-days/weekly", h.SaveWeeklyOffDays)
			clinics.POST("/off-days", h.AddSpecificOffDays)
			clinics.DELETE("/off-days/:date", h.DeleteSpecificOffDay)
			clinics.GET("/slots", h.GetAvailableSlots)
		}
	}
}

func (h *Handler) SaveAvailability(c *gin.Context) {
	doctorID, clinicID, ok := pathIDs(c)
	if !ok {
		return
	}

	var req model.SaveAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.NewBadRequest(err.Error(), err))
		return
	}

	ranges, err := h.service.SaveAvailability(c.Request.Context(), doctorID, clinicID, req.Ranges)
	if err != nil {
		h.metrics.AvailabilityErrors.Inc()
		httputil.RespondWithError(c, err)
		return
	}

	h.metrics.AvailabilitySaves.Inc()
	httputil.RespondWithSuccess(c, ranges)
}

func (h *Handler) GetSchedule(c *gin.Context) {
	doctorID, clinicID, ok := pathIDs(c)
	if !ok {
		return
	}

	sched, err := h.service.GetSchedule(c.Request.Context(), doctorID, clinicID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, sched)
}

func (h *Handler) SaveWeeklyOffDays(c *gin.Context) {
	doctorID, clinicID, ok := pathIDs(c)
	if !ok {
		return
	}

	var req model.SaveWeeklyOffDaysRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.NewBadRequest(err.Error(), err))
		return
	}

	if err := h.service.SaveWeeklyOffDays(c.Request.Context(), doctorID, clinicID, req.Days); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, gin.H{"days": req.Days})
}

func (h *Handler) AddSpecificOffDays(c *gin.Context) {
	doctorID, clinicID, ok := pathIDs(c)
	if !ok {
		return
	}

	var req model.AddSpecificOffDaysRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.NewBadRequest(err.Error(), err))
		return
	}

	dates := make([]time.Time, 0, len(req.Dates))
	for _, d := range req.Dates {
		parsed, err := time.Parse("2006-01-02", d)
		if err != nil {
			httputil.RespondWithError(c, apperrors.NewBadRequest("invalid date: "+d, err))
			return
		}
		dates = append(dates, parsed)
	}

	if err := h.service.AddSpecificOffDays(c.Request.Context(), doctorID, clinicID, dates, req.Reason); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithCreated(c, gin.H{"dates": req.Dates})
}

func (h *Handler) DeleteSpecificOffDay(c *gin.Context) {
	doctorID, clinicID, ok := pathIDs(c)
	if !ok {
		return
	}

	date, err := time.Parse("2006-01-02", c.Param("date"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewBadRequest("invalid date, expected YYYY-MM-DD", err))
		return
	}

	if err := h.service.DeleteSpecificOffDay(c.Request.Context(), doctorID, clinicID, date); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, nil)
}

func (h *Handler) GetAvailableSlots(c *gin.Context) {
	doctorID, clinicID, ok := pathIDs(c)
	if !ok {
		return
	}

	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewBadRequest("invalid or missing date, expected YYYY-MM-DD", err))
		return
	}

	slots, err := h.service.GetAvailableSlots(c.Request.Context(), doctorID, clinicID, date)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	h.metrics.SlotQueries.Inc()
	httputil.RespondWithSuccess(c, slots)
}

func (h *Handler) GetConflicts(c *gin.Context) {
	doctorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewBadRequest("invalid doctor ID", err))
		return
	}

	clinicID, err := uuid.Parse(c.Query("clinic_id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewBadRequest("invalid or missing clinic_id", err))
		return
	}

	conflicts, err := h.service.GetAvailabilityConflicts(c.Request.Context(), doctorID, clinicID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, conflicts)
}

func (h *Handler) UpdateSlotDuration(c *gin.Context) {
	doctorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewBadRequest("invalid doctor ID", err))
		return
	}

	var req model.UpdateSlotDurationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.NewBadRequest(err.Error(), err))
		return
	}

	if err := h.service.UpdateSlotDuration(c.Request.Context(), doctorID, req.SlotDuration); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, gin.H{"slot_duration": req.SlotDuration})
}

func pathIDs(c *gin.Context) (doctorID, clinicID uuid.UUID, ok bool) {
	doctorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewBadRequest("invalid doctor ID", err))
		return uuid.Nil, uuid.Nil, false
	}

	clinicID, err = uuid.Parse(c.Param("clinicId"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewBadRequest("invalid clinic ID", err))
		return uuid.Nil, uuid.Nil, false
	}

	return doctorID, clinicID, true
}
