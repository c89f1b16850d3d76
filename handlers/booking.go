package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"consultly/middleware"
	"consultly/models"
	bookingsvc "consultly/services/booking"
	"consultly/services/payment"
	"consultly/utils"
)

type BookingHandler struct {
	engine   bookingsvc.Engine
	query    bookingsvc.QueryService
	payments payment.Service
}

func NewBookingHandler(engine bookingsvc.Engine, query bookingsvc.QueryService, payments payment.Service) *BookingHandler {
	return &BookingHandler{engine: engine, query: query, payments: payments}
}

type createBookingRequest struct {
	ConsultantID    string              `json:"consultant_id" binding:"required"`
	Start           models.CivilInstant `json:"start" binding:"required"`
	DurationMinutes int                 `json:"duration_minutes" binding:"required"`
	Price           float64             `json:"price"`
	Topic           string              `json:"topic"`
}

func (h *BookingHandler) Create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	booking, err := h.engine.RequestBooking(c.Request.Context(), models.BookingRequest{
		ConsultantID:    req.ConsultantID,
		RequesterID:     middleware.RequesterID(c),
		Start:           req.Start,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		Topic:           req.Topic,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	resp := gin.H{"booking": booking}
	if h.payments != nil && booking.Price > 0 {
		secret, payErr := h.payments.CreateIntent(*booking)
		if payErr != nil {
			// Payment setup failing leaves the booking pending; the sweeper
			// reclaims the slot if payment never arrives.
			utils.GetLogger().Error("payment intent failed",
				zap.String("bookingId", booking.ID), zap.Error(payErr))
		} else {
			resp["payment_client_secret"] = secret
		}
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *BookingHandler) Confirm(c *gin.Context) {
	booking, err := h.engine.Confirm(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": booking})
}

type cancelBookingRequest struct {
	Reason string `json:"reason"`
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	var req cancelBookingRequest
	_ = c.ShouldBindJSON(&req)

	booking, err := h.engine.Cancel(c.Request.Context(), c.Param("id"), req.Reason)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": booking})
}

func (h *BookingHandler) Complete(c *gin.Context) {
	booking, err := h.engine.Complete(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": booking})
}

// viewerTZ reads the display timezone from the query string, defaulting to
// UTC. Validation happens in the query service.
func viewerTZ(c *gin.Context) models.TimeZoneID {
	if tz := c.Query("tz"); tz != "" {
		return models.TimeZoneID(tz)
	}
	return "UTC"
}

func (h *BookingHandler) Get(c *gin.Context) {
	view, err := h.query.RenderForViewer(c.Request.Context(), c.Param("id"), viewerTZ(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": view})
}

func (h *BookingHandler) ListForRequester(c *gin.Context) {
	views, err := h.query.ListForRequester(c.Request.Context(), c.Param("id"), viewerTZ(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": views})
}

func (h *BookingHandler) ListForConsultant(c *gin.Context) {
	views, err := h.query.ListForConsultant(c.Request.Context(), c.Param("id"), viewerTZ(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": views})
}
