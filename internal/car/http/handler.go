package http

import (
	"fmt"
	"net/http"
	"path"

	"github.com/gin-gonic/gin"

	"github.com/drivenow/car-rental-backend/internal/car"
	"github.com/drivenow/car-rental-backend/internal/pkg/apperror"
	"github.com/drivenow/car-rental-backend/internal/pkg/request"
	"github.com/drivenow/car-rental-backend/internal/pkg/response"
	"github.com/drivenow/car-rental-backend/internal/pkg/storage"
)

// StaticImagePrefix is the URL prefix the router serves stored images under.
const StaticImagePrefix = "/static/images"

const maxImageSizeBytes = 10 << 20

type Handler struct {
	service   car.Service
	store     storage.Storage
	processor *storage.ImageProcessor
}

func NewHandler(service car.Service, store storage.Storage, processor *storage.ImageProcessor) *Handler {
	return &Handler{
		service:   service,
		store:     store,
		processor: processor,
	}
}

// List returns the rentable catalog: available cars, brand then model order.
func (h *Handler) List(c *gin.Context) {
	cars, err := h.service.ListAvailable(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, carResponses(cars))
}

// ListAll returns every car including unavailable ones (admin view).
func (h *Handler) ListAll(c *gin.Context) {
	cars, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, carResponses(cars))
}

func (h *Handler) Get(c *gin.Context) {
	uri, ok := bindID(c)
	if !ok {
		return
	}

	found, err := h.service.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewCarResponse(found))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateCarRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, apperror.Wrap(err, http.StatusBadRequest, apperror.CodeInvalidInput, "missing or malformed car fields"))
		return
	}

	created, err := h.service.Create(c.Request.Context(), car.CreateRequest{
		Brand:       body.Brand,
		Model:       body.Model,
		Category:    body.Category,
		Seats:       body.Seats,
		PricePerDay: body.PricePerDay,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewCarResponse(created))
}

func (h *Handler) Update(c *gin.Context) {
	uri, ok := bindID(c)
	if !ok {
		return
	}

	var body UpdateCarRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, apperror.Wrap(err, http.StatusBadRequest, apperror.CodeInvalidInput, "malformed car fields"))
		return
	}

	updated, err := h.service.Update(c.Request.Context(), uri.ID, car.UpdateRequest{
		Brand:       body.Brand,
		Model:       body.Model,
		Category:    body.Category,
		Seats:       body.Seats,
		PricePerDay: body.PricePerDay,
		Available:   body.Available,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewCarResponse(updated))
}

func (h *Handler) Delete(c *gin.Context) {
	uri, ok := bindID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), uri.ID); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UploadImage stores a normalized catalog photo for the car and points its
// image reference at the served location.
func (h *Handler) UploadImage(c *gin.Context) {
	uri, ok := bindID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		response.Error(c, apperror.New(http.StatusBadRequest, apperror.CodeInvalidInput, "image file is required"))
		return
	}
	if fileHeader.Size > maxImageSizeBytes {
		response.Error(c, apperror.New(http.StatusBadRequest, apperror.CodeInvalidInput, "image exceeds 10MB limit"))
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		response.Error(c, fmt.Errorf("open uploaded image failed: %w", err))
		return
	}
	defer src.Close()

	normalized, err := h.processor.Normalize(src)
	if err != nil {
		response.Error(c, apperror.Wrap(err, http.StatusBadRequest, apperror.CodeInvalidInput, "file is not a valid image"))
		return
	}

	name := storage.NewImageName()
	if err := h.store.Save(c.Request.Context(), name, normalized); err != nil {
		response.Error(c, err)
		return
	}

	updated, err := h.service.SetImage(c.Request.Context(), uri.ID, path.Join(StaticImagePrefix, name))
	if err != nil {
		// The car row was not updated; drop the orphaned file.
		_ = h.store.Delete(c.Request.Context(), name)
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewCarResponse(updated))
}

func bindID(c *gin.Context) (request.ByIDRequest, bool) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error(c, apperror.New(http.StatusBadRequest, apperror.CodeInvalidInput, "invalid car id"))
		return uri, false
	}
	return uri, true
}

func carResponses(cars []*car.Car) []CarResponse {
	items := make([]CarResponse, len(cars))
	for i, c := range cars {
		items[i] = NewCarResponse(c)
	}
	return items
}
