package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/telaris/confetrack/internal/production/repository"
	"github.com/telaris/confetrack/internal/production/service"
)

type OrderHandler struct {
	svc      *service.OrderService
	progress *service.ProgressService
}

func NewOrderHandler(svc *service.OrderService, progress *service.ProgressService) *OrderHandler {
	return &OrderHandler{svc: svc, progress: progress}
}

func (h *OrderHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)
	items, total, err := h.svc.List(c.Request.Context(), repository.OrderListParams{
		GarmentID: QueryUint(c, "garment_id"),
		Keyword:   c.Query("keyword"),
		Page:      page,
		PageSize:  pageSize,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, ListResponse{Items: items, Pagination: NewPagination(page, pageSize, total)})
}

func (h *OrderHandler) Create(c *gin.Context) {
	var req service.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	order, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Created(c, order)
}

func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}

	order, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, order)
}

// Progress answers the per-operation completion breakdown and the order's
// bottleneck completed count.
func (h *OrderHandler) Progress(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}

	progress, err := h.progress.ForOrder(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, progress)
}

func (h *OrderHandler) Update(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}

	var req service.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	order, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, order)
}

func (h *OrderHandler) Delete(c *gin.Context) {
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
