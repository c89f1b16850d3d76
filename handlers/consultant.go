package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"consultly/models"
	consultantsvc "consultly/services/consultant"
	"consultly/utils"
)

type ConsultantHandler struct {
	service consultantsvc.Service
}

func NewConsultantHandler(service consultantsvc.Service) *ConsultantHandler {
	return &ConsultantHandler{service: service}
}

func (h *ConsultantHandler) Onboard(c *gin.Context) {
	var input consultantsvc.OnboardInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	consultant, err := h.service.Onboard(c.Request.Context(), input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"consultant": consultant})
}

func (h *ConsultantHandler) Get(c *gin.Context) {
	consultant, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"consultant": consultant})
}

type replaceWindowsRequest struct {
	Windows []models.WeeklyWindow `json:"windows" binding:"required"`
}

func (h *ConsultantHandler) ReplaceWindows(c *gin.Context) {
	var req replaceWindowsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	if err := h.service.ReplaceWindows(c.Request.Context(), c.Param("id"), req.Windows); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

func (h *ConsultantHandler) Deactivate(c *gin.Context) {
	if err := h.service.Deactivate(c.Request.Context(), c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deactivated"})
}

func (h *ConsultantHandler) WeeklySchedule(c *gin.Context) {
	tz := models.TimeZoneID(c.DefaultQuery("tz", "UTC"))
	days, err := h.service.WeeklySchedule(c.Request.Context(), c.Param("id"), tz)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"schedule": days})
}
