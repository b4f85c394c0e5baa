package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/drivenow/car-rental-backend/internal/booking"
	"github.com/drivenow/car-rental-backend/internal/pkg/apperror"
	"github.com/drivenow/car-rental-backend/internal/pkg/request"
	"github.com/drivenow/car-rental-backend/internal/pkg/response"
)

type Handler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, apperror.Wrap(err, http.StatusBadRequest, apperror.CodeInvalidInput, "missing or malformed request fields"))
		return
	}

	start, end, err := body.Dates()
	if err != nil {
		response.Error(c, err)
		return
	}

	b, err := h.service.Create(c.Request.Context(), booking.CreateRequest{
		CarID:        body.CarID,
		StartDate:    start,
		EndDate:      end,
		CustomerName: body.CustomerName,
		Email:        body.Email,
		Phone:        body.Phone,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error(c, apperror.New(http.StatusBadRequest, apperror.CodeInvalidInput, "invalid booking id"))
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

// Availability lists the busy date ranges on a car's calendar that intersect
// the requested window, so the booking form can grey out taken days.
func (h *Handler) Availability(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error(c, apperror.New(http.StatusBadRequest, apperror.CodeInvalidInput, "invalid car id"))
		return
	}

	start, err := time.Parse(booking.DateLayout, c.Query("start"))
	if err != nil {
		response.Error(c, booking.ErrInvalidRange)
		return
	}
	end, err := time.Parse(booking.DateLayout, c.Query("end"))
	if err != nil {
		response.Error(c, booking.ErrInvalidRange)
		return
	}

	bookings, err := h.service.FindOverlapping(c.Request.Context(), uri.ID, start, end)
	if err != nil {
		response.Error(c, err)
		return
	}

	ranges := make([]BookedRange, len(bookings))
	for i, b := range bookings {
		ranges[i] = NewBookedRange(b)
	}

	c.JSON(http.StatusOK, gin.H{"carId": uri.ID, "booked": ranges})
}

func (h *Handler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	var carID int64
	if v := c.Query("car_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			response.Error(c, apperror.New(http.StatusBadRequest, apperror.CodeInvalidInput, "invalid car_id"))
			return
		}
		carID = id
	}

	bookings, total, err := h.service.List(c.Request.Context(), booking.Filter{
		CarID:    carID,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, page, pageSize, total))
}
