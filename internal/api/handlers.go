package api

import (
	"strconv"

	"github.com/AleXx313/shareit/internal/domain"
	"github.com/AleXx313/shareit/internal/export"
	"github.com/AleXx313/shareit/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Handlers binds the entity services to the HTTP surface. All
// identity-scoped endpoints read the caller from the X-Sharer-User-Id
// header.
type Handlers struct {
	users    domain.UserService
	items    domain.ItemService
	bookings domain.BookingService
	requests domain.RequestService
	exporter *export.BookingExporter
	logger   *zerolog.Logger
}

func NewHandlers(
	users domain.UserService,
	items domain.ItemService,
	bookings domain.BookingService,
	requests domain.RequestService,
	exporter *export.BookingExporter,
	logger *zerolog.Logger,
) *Handlers {
	return &Handlers{
		users:    users,
		items:    items,
		bookings: bookings,
		requests: requests,
		exporter: exporter,
		logger:   logger,
	}
}

// callerID extracts the acting user from the identity header. A
// missing or malformed header ends the request with 400.
func callerID(c *gin.Context) (int64, bool) {
	raw := c.GetHeader(headerUserID)
	if raw == "" {
		writeBadRequest(c, "X-Sharer-User-Id header is required")
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		writeBadRequest(c, "X-Sharer-User-Id header must be a positive integer")
		return 0, false
	}
	return id, true
}

// pathID parses the named numeric path parameter, ending the request
// with 400 on garbage.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		writeBadRequest(c, name+" must be a positive integer")
		return 0, false
	}
	return id, true
}

// pagingParams parses from/size with their defaults. Range checks are
// the service's job so the error message is uniform across transports.
func pagingParams(c *gin.Context) (int, int, bool) {
	from, err := strconv.Atoi(c.DefaultQuery("from", "0"))
	if err != nil {
		writeBadRequest(c, "from must be an integer")
		return 0, 0, false
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(models.DefaultPageSize)))
	if err != nil {
		writeBadRequest(c, "size must be an integer")
		return 0, 0, false
	}
	return from, size, true
}
