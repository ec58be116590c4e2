package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func (h *Handlers) createBooking(c *gin.Context) {
	bookerID, ok := callerID(c)
	if !ok {
		return
	}

	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, "invalid request body: "+err.Error())
		return
	}

	booking, err := h.bookings.Create(c.Request.Context(), bookerID, req.ItemID, req.Start, req.End)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

func (h *Handlers) decideBooking(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}
	bookingID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var approve bool
	switch c.Query("approved") {
	case "true":
		approve = true
	case "false":
		approve = false
	default:
		writeBadRequest(c, "approved query parameter must be true or false")
		return
	}

	booking, err := h.bookings.Decide(c.Request.Context(), bookingID, ownerID, approve)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

func (h *Handlers) getBooking(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	bookingID, ok := pathID(c, "id")
	if !ok {
		return
	}

	booking, err := h.bookings.GetByID(c.Request.Context(), bookingID, userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

func (h *Handlers) listBookerBookings(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	from, size, ok := pagingParams(c)
	if !ok {
		return
	}

	bookings, err := h.bookings.ListByBooker(c.Request.Context(), userID, c.Query("state"), from, size)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (h *Handlers) listOwnerBookings(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	from, size, ok := pagingParams(c)
	if !ok {
		return
	}

	bookings, err := h.bookings.ListByOwner(c.Request.Context(), userID, c.Query("state"), from, size)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// exportOwnerBookings streams the owner's bookings as an XLSX
// download. The state filter behaves as in the listing endpoint; the
// page is deliberately wide since an export wants the whole history.
func (h *Handlers) exportOwnerBookings(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	bookings, err := h.bookings.ListByOwner(c.Request.Context(), userID, c.Query("state"), 0, exportPageSize)
	if err != nil {
		writeError(c, err)
		return
	}

	fileName := fmt.Sprintf("bookings_%d_%s.xlsx", userID, time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := h.exporter.Write(c.Writer, fileName, userID, bookings); err != nil {
		h.logger.Error().Err(err).Int64("owner_id", userID).Msg("booking export failed")
		c.Status(http.StatusInternalServerError)
	}
}

const exportPageSize = 1000
