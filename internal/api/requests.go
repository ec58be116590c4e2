package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handlers) createRequest(c *gin.Context) {
	requesterID, ok := callerID(c)
	if !ok {
		return
	}

	var req createRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, "invalid request body: "+err.Error())
		return
	}

	request, err := h.requests.Create(c.Request.Context(), requesterID, req.Description)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, request)
}

func (h *Handlers) listOwnRequests(c *gin.Context) {
	requesterID, ok := callerID(c)
	if !ok {
		return
	}

	requests, err := h.requests.ListOwn(c.Request.Context(), requesterID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, requests)
}

func (h *Handlers) listOtherRequests(c *gin.Context) {
	viewerID, ok := callerID(c)
	if !ok {
		return
	}
	from, size, ok := pagingParams(c)
	if !ok {
		return
	}

	requests, err := h.requests.ListOthers(c.Request.Context(), viewerID, from, size)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, requests)
}

func (h *Handlers) getRequest(c *gin.Context) {
	viewerID, ok := callerID(c)
	if !ok {
		return
	}
	requestID, ok := pathID(c, "id")
	if !ok {
		return
	}

	request, err := h.requests.GetByID(c.Request.Context(), requestID, viewerID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, request)
}
