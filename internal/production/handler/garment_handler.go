package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/telaris/confetrack/internal/production/service"
)

type GarmentHandler struct {
	svc *service.GarmentService
}

func NewGarmentHandler(svc *service.GarmentService) *GarmentHandler {
	return &GarmentHandler{svc: svc}
}

func (h *GarmentHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)
	items, total, err := h.svc.List(c.Request.Context(), page, pageSize, c.Query("keyword"))
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, ListResponse{Items: items, Pagination: NewPagination(page, pageSize, total)})
}

func (h *GarmentHandler) Create(c *gin.Context) {
	var req service.GarmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	garment, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Created(c, garment)
}

func (h *GarmentHandler) Get(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}

	garment, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, garment)
}

func (h *GarmentHandler) Update(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}

	var req service.GarmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	garment, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, garment)
}

func (h *GarmentHandler) Delete(c *gin.Context) {
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
