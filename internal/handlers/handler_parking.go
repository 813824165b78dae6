package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/car_parking_app/internal/core/domain"
	portssvc "github.com/SscSPs/car_parking_app/internal/core/ports/services"
	"github.com/SscSPs/car_parking_app/internal/dto"
	"github.com/SscSPs/car_parking_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// parkingHandler handles HTTP requests related to parkings.
type parkingHandler struct {
	parkingService portssvc.ParkingSvcFacade
}

func newParkingHandler(ps portssvc.ParkingSvcFacade) *parkingHandler {
	return &parkingHandler{parkingService: ps}
}

// registerParkingRoutes registers the parking registry. Reads are open to any
// authenticated user, writes need the ADMIN role.
func registerParkingRoutes(rg *gin.RouterGroup, parkingService portssvc.ParkingSvcFacade) {
	h := newParkingHandler(parkingService)
	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	parkings := rg.Group("/parking")
	{
		parkings.POST("", adminOnly, h.createParking)
		parkings.GET("", h.listParkings)
		parkings.GET("/:id", h.getParking)
		parkings.PUT("/:id", adminOnly, h.updateParking)
		parkings.DELETE("/:id", adminOnly, h.deleteParking)
	}
}

// createParking godoc
// @Summary Create a parking
// @Description Opens a new parking with every slot available. Admin only.
// @Tags parking
// @Accept json
// @Produce json
// @Param parking body dto.CreateParkingRequest true "Parking details"
// @Success 201 {object} dto.ParkingMutationResponse
// @Failure 400 {object} dto.MessageResponse "Invalid input or duplicate code"
// @Failure 401 {object} dto.MessageResponse
// @Failure 403 {object} dto.MessageResponse
// @Failure 500 {object} dto.MessageResponse
// @Security BearerAuth
// @Router /parking [post]
func (h *parkingHandler) createParking(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateParkingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateParking", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: bindErrorMessage(err)})
		return
	}
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	parking, err := h.parkingService.CreateParking(c.Request.Context(), principal, req)
	if err != nil {
		respondError(c, err, "Server error while creating parking")
		return
	}

	c.JSON(http.StatusCreated, dto.ParkingMutationResponse{
		Message: "Parking created successfully",
		Parking: dto.ToParkingResponse(parking),
	})
}

// listParkings godoc
// @Summary List parkings
// @Description Lists every parking ordered by code.
// @Tags parking
// @Produce json
// @Success 200 {array} dto.ParkingResponse
// @Failure 401 {object} dto.MessageResponse
// @Failure 500 {object} dto.MessageResponse
// @Security BearerAuth
// @Router /parking [get]
func (h *parkingHandler) listParkings(c *gin.Context) {
	parkings, err := h.parkingService.ListParkings(c.Request.Context())
	if err != nil {
		respondError(c, err, "Server error while fetching parkings")
		return
	}
	c.JSON(http.StatusOK, dto.ToListParkingResponse(parkings))
}

// getParking godoc
// @Summary Get a parking
// @Tags parking
// @Produce json
// @Param id path string true "Parking ID"
// @Success 200 {object} dto.ParkingResponse
// @Failure 401 {object} dto.MessageResponse
// @Failure 404 {object} dto.MessageResponse
// @Security BearerAuth
// @Router /parking/{id} [get]
func (h *parkingHandler) getParking(c *gin.Context) {
	parking, err := h.parkingService.GetParking(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Server error while fetching parking")
		return
	}
	c.JSON(http.StatusOK, dto.ToParkingResponse(parking))
}

// updateParking godoc
// @Summary Update a parking
// @Description Replaces name, location, capacity and rate. Used slots are preserved; a total below them is rejected. Admin only.
// @Tags parking
// @Accept json
// @Produce json
// @Param id path string true "Parking ID"
// @Param parking body dto.UpdateParkingRequest true "New attributes"
// @Success 200 {object} dto.ParkingMutationResponse
// @Failure 400 {object} dto.MessageResponse "Invalid input or capacity below usage"
// @Failure 401 {object} dto.MessageResponse
// @Failure 403 {object} dto.MessageResponse
// @Failure 404 {object} dto.MessageResponse
// @Security BearerAuth
// @Router /parking/{id} [put]
func (h *parkingHandler) updateParking(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	parkingID := c.Param("id")

	var req dto.UpdateParkingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateParking", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: bindErrorMessage(err)})
		return
	}
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	parking, err := h.parkingService.UpdateParking(c.Request.Context(), principal, parkingID, req)
	if err != nil {
		respondError(c, err, "Server error while updating parking")
		return
	}

	c.JSON(http.StatusOK, dto.ParkingMutationResponse{
		Message: "Parking updated successfully",
		Parking: dto.ToParkingResponse(parking),
	})
}

// deleteParking godoc
// @Summary Delete a parking
// @Description Removes a parking with no car inside. Admin only.
// @Tags parking
// @Produce json
// @Param id path string true "Parking ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.MessageResponse "Parking has active cars"
// @Failure 401 {object} dto.MessageResponse
// @Failure 403 {object} dto.MessageResponse
// @Failure 404 {object} dto.MessageResponse
// @Security BearerAuth
// @Router /parking/{id} [delete]
func (h *parkingHandler) deleteParking(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	if err := h.parkingService.DeleteParking(c.Request.Context(), principal, c.Param("id")); err != nil {
		respondError(c, err, "Server error while deleting parking")
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Parking deleted successfully"})
}
