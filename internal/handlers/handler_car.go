package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/car_parking_app/internal/core/ports/services"
	"github.com/SscSPs/car_parking_app/internal/dto"
	"github.com/SscSPs/car_parking_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// carHandler handles car entries, exits and session lookups.
type carHandler struct {
	carService portssvc.CarSvcFacade
}

func newCarHandler(cs portssvc.CarSvcFacade) *carHandler {
	return &carHandler{carService: cs}
}

func registerCarRoutes(rg *gin.RouterGroup, carService portssvc.CarSvcFacade) {
	h := newCarHandler(carService)

	cars := rg.Group("/cars")
	{
		cars.POST("/entry", h.recordEntry)
		cars.PUT("/exit/:id", h.recordExit)
		cars.GET("/active", h.listActive)
		cars.GET("/history/:plateNumber", h.history)
		cars.GET("/:id", h.getCar)
	}
}

// recordEntry godoc
// @Summary Record a car entry
// @Description Opens a parking session and takes one slot. Returns the entry ticket.
// @Tags cars
// @Accept json
// @Produce json
// @Param entry body dto.CarEntryRequest true "Plate number and parking code"
// @Success 201 {object} dto.CarEntryResponse
// @Failure 400 {object} dto.MessageResponse "No available slots or car already parked"
// @Failure 401 {object} dto.MessageResponse
// @Failure 404 {object} dto.MessageResponse "Parking not found"
// @Security BearerAuth
// @Router /cars/entry [post]
func (h *carHandler) recordEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CarEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CarEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: bindErrorMessage(err)})
		return
	}
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	ticket, err := h.carService.RecordEntry(c.Request.Context(), principal, req)
	if err != nil {
		respondError(c, err, "Server error while recording car entry")
		return
	}

	c.JSON(http.StatusCreated, dto.CarEntryResponse{
		Message: "Car entry recorded successfully",
		Ticket:  *ticket,
	})
}

// recordExit godoc
// @Summary Record a car exit
// @Description Closes a parking session, bills every started hour and releases the slot.
// @Tags cars
// @Produce json
// @Param id path string true "Car (ticket) ID"
// @Success 200 {object} dto.CarExitResponse
// @Failure 400 {object} dto.MessageResponse "Car has already exited"
// @Failure 401 {object} dto.MessageResponse
// @Failure 404 {object} dto.MessageResponse "Car not found"
// @Security BearerAuth
// @Router /cars/exit/{id} [put]
func (h *carHandler) recordExit(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	bill, err := h.carService.RecordExit(c.Request.Context(), principal, c.Param("id"))
	if err != nil {
		respondError(c, err, "Server error while recording car exit")
		return
	}

	c.JSON(http.StatusOK, dto.CarExitResponse{
		Message: "Car exit recorded successfully",
		Bill:    *bill,
	})
}

// listActive godoc
// @Summary List parked cars
// @Description Lists open sessions, newest entry first, optionally for one parking.
// @Tags cars
// @Produce json
// @Param parkingCode query string false "Parking code"
// @Success 200 {array} dto.CarResponse
// @Failure 401 {object} dto.MessageResponse
// @Security BearerAuth
// @Router /cars/active [get]
func (h *carHandler) listActive(c *gin.Context) {
	var params dto.ListActiveCarsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: bindErrorMessage(err)})
		return
	}

	cars, err := h.carService.ListActive(c.Request.Context(), params.ParkingCode)
	if err != nil {
		respondError(c, err, "Server error while fetching active cars")
		return
	}
	c.JSON(http.StatusOK, dto.ToListCarResponse(cars))
}

// history godoc
// @Summary Car history
// @Description Lists every session of a plate, newest entry first.
// @Tags cars
// @Produce json
// @Param plateNumber path string true "Plate number"
// @Success 200 {array} dto.CarResponse
// @Failure 401 {object} dto.MessageResponse
// @Security BearerAuth
// @Router /cars/history/{plateNumber} [get]
func (h *carHandler) history(c *gin.Context) {
	cars, err := h.carService.History(c.Request.Context(), c.Param("plateNumber"))
	if err != nil {
		respondError(c, err, "Server error while fetching car history")
		return
	}
	c.JSON(http.StatusOK, dto.ToListCarResponse(cars))
}

// getCar godoc
// @Summary Get a parking session
// @Tags cars
// @Produce json
// @Param id path string true "Car (ticket) ID"
// @Success 200 {object} dto.CarResponse
// @Failure 401 {object} dto.MessageResponse
// @Failure 404 {object} dto.MessageResponse
// @Security BearerAuth
// @Router /cars/{id} [get]
func (h *carHandler) getCar(c *gin.Context) {
	car, err := h.carService.GetCar(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Server error while fetching car")
		return
	}
	c.JSON(http.StatusOK, dto.ToCarResponse(car))
}
