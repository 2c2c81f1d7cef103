package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/telaris/confetrack/internal/production/service"
)

type RemissionHandler struct {
	svc *service.RemissionService
}

func NewRemissionHandler(svc *service.RemissionService) *RemissionHandler {
	return &RemissionHandler{svc: svc}
}

func (h *RemissionHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)
	items, total, err := h.svc.List(c.Request.Context(), page, pageSize, QueryUint(c, "order_id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, ListResponse{Items: items, Pagination: NewPagination(page, pageSize, total)})
}

func (h *RemissionHandler) Create(c *gin.Context) {
	var req service.CreateRemissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	remission, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Created(c, remission)
}

func (h *RemissionHandler) Get(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}

	remission, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, remission)
}

// Dispatchable answers how many finished pieces an order can still ship.
func (h *RemissionHandler) Dispatchable(c *gin.Context) {
	orderID := QueryUint(c, "order_id")
	if orderID == 0 {
		BadRequest(c, "order_id is required")
		return
	}

	quantity, err := h.svc.Dispatchable(c.Request.Context(), orderID)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, gin.H{"order_id": orderID, "dispatchable": quantity})
}

func (h *RemissionHandler) Delete(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}
	Success(c, nil)
}
