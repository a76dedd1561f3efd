package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"rideboard/internal/models"
	"rideboard/internal/repositories/interfaces"
	"rideboard/internal/services"
	"rideboard/internal/utils"
	"rideboard/internal/validators"

	"github.com/gin-gonic/gin"
)

type RideHandler struct {
	rideService     services.RideService
	scheduleService services.ScheduleService
}

func NewRideHandler(rideService services.RideService, scheduleService services.ScheduleService) *RideHandler {
	return &RideHandler{
		rideService:     rideService,
		scheduleService: scheduleService,
	}
}

// CreateGroup registers a new group document for a chat.
func (h *RideHandler) CreateGroup(c *gin.Context) {
	var request validators.CreateGroupRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if details := validators.ValidateStruct(&request); details != nil {
		utils.ValidationErrorResponse(c, details)
		return
	}

	if err := h.rideService.CreateGroup(c.Request.Context(), request.ChatID); err != nil {
		if errors.Is(err, interfaces.ErrDuplicateGroup) {
			utils.ConflictResponse(c, "Group already exists")
			return
		}
		h.storeError(c, err)
		return
	}

	utils.CreatedResponse(c, "Group created successfully", gin.H{"chat_id": request.ChatID})
}

// AddRide posts a ride for a user, overwriting any previous ride the user
// had in the same direction.
func (h *RideHandler) AddRide(c *gin.Context) {
	chatID, ok := chatIDParam(c)
	if !ok {
		return
	}

	var request validators.AddRideRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if details := validators.ValidateStruct(&request); details != nil {
		utils.ValidationErrorResponse(c, details)
		return
	}

	user := models.UserRef{
		ID:        request.User.ID,
		FirstName: request.User.FirstName,
		LastName:  request.User.LastName,
	}

	modified, err := h.rideService.AddRide(c.Request.Context(), chatID, user, request.Time, request.Description, models.Direction(request.Direction))
	if err != nil {
		h.storeError(c, err)
		return
	}

	utils.SuccessResponse(c, "Ride added successfully", gin.H{"modified": modified})
}

// RemoveRide deletes a user's ride. Removing a ride that was never posted
// reports modified=false rather than an error.
func (h *RideHandler) RemoveRide(c *gin.Context) {
	chatID, ok := chatIDParam(c)
	if !ok {
		return
	}

	direction, userID, ok := rideKeyParams(c)
	if !ok {
		return
	}

	removed, err := h.rideService.RemoveRide(c.Request.Context(), chatID, userID, direction)
	if err != nil {
		h.storeError(c, err)
		return
	}

	utils.SuccessResponse(c, "Ride removed", gin.H{"modified": removed})
}

// SetRideFull marks a ride full (state=1) or reopens it (state=0).
func (h *RideHandler) SetRideFull(c *gin.Context) {
	chatID, ok := chatIDParam(c)
	if !ok {
		return
	}

	direction, userID, ok := rideKeyParams(c)
	if !ok {
		return
	}

	var request validators.SetRideFullRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if details := validators.ValidateStruct(&request); details != nil {
		utils.ValidationErrorResponse(c, details)
		return
	}

	modified, err := h.rideService.SetRideFull(c.Request.Context(), chatID, userID, direction, *request.State)
	if err != nil {
		h.storeError(c, err)
		return
	}

	utils.SuccessResponse(c, "Ride updated", gin.H{"modified": modified})
}

// Sweep triggers an on-demand expiry sweep for the group. The sweep is best
// effort; the response only acknowledges that it ran.
func (h *RideHandler) Sweep(c *gin.Context) {
	chatID, ok := chatIDParam(c)
	if !ok {
		return
	}

	var request validators.SweepRequest
	if err := c.ShouldBindJSON(&request); err != nil && !errors.Is(err, io.EOF) {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	now := time.Now()
	if request.Now != nil {
		now = *request.Now
	}

	h.rideService.CleanExpiredRides(c.Request.Context(), chatID, now)

	utils.AcceptedResponse(c, "Sweep completed")
}

// GetSchedule renders the group's aggregate schedule. An unknown or empty
// group yields an empty schedule, not an error.
func (h *RideHandler) GetSchedule(c *gin.Context) {
	chatID, ok := chatIDParam(c)
	if !ok {
		return
	}

	schedule, err := h.scheduleService.Render(c.Request.Context(), chatID)
	if err != nil {
		h.storeError(c, err)
		return
	}

	utils.SuccessResponse(c, "Schedule rendered", gin.H{"schedule": schedule})
}

func (h *RideHandler) storeError(c *gin.Context, err error) {
	if errors.Is(err, interfaces.ErrStoreUnavailable) {
		utils.ServiceUnavailableResponse(c, utils.ErrStoreDown)
		return
	}
	utils.ErrorResponse(c, http.StatusInternalServerError, "STORE_ERROR", err.Error())
}

func chatIDParam(c *gin.Context) (int64, bool) {
	chatID, err := strconv.ParseInt(c.Param("chat_id"), 10, 64)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid chat ID")
		return 0, false
	}
	return chatID, true
}

func rideKeyParams(c *gin.Context) (models.Direction, int64, bool) {
	direction := models.Direction(c.Param("direction"))
	if !direction.IsValid() {
		utils.BadRequestResponse(c, "Invalid direction")
		return "", 0, false
	}

	userID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid user ID")
		return "", 0, false
	}

	return direction, userID, true
}
