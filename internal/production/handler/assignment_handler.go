package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/telaris/confetrack/internal/production/repository"
	"github.com/telaris/confetrack/internal/production/service"
)

type AssignmentHandler struct {
	svc *service.AssignmentService
}

func NewAssignmentHandler(svc *service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{svc: svc}
}

func (h *AssignmentHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)

	params := repository.AssignmentListParams{
		EmployeeID:  QueryUint(c, "employee_id"),
		OrderID:     QueryUint(c, "order_id"),
		OperationID: QueryUint(c, "operation_id"),
		Page:        page,
		PageSize:    pageSize,
	}
	switch c.Query("completed") {
	case "true":
		t := true
		params.Completed = &t
	case "false":
		f := false
		params.Completed = &f
	}

	items, total, err := h.svc.List(c.Request.Context(), params)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, ListResponse{Items: items, Pagination: NewPagination(page, pageSize, total)})
}

func (h *AssignmentHandler) Create(c *gin.Context) {
	var req service.CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	assignment, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Created(c, assignment)
}

func (h *AssignmentHandler) Get(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}

	assignment, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, assignment)
}

type deliveryRequest struct {
	Quantity int `json:"quantity" binding:"required,gt=0"`
}

// Complete marks pieces delivered. Delivering less than the assigned
// quantity splits the assignment; the response is the completed part.
func (h *AssignmentHandler) Complete(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}

	var req deliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	assignment, err := h.svc.Complete(c.Request.Context(), id, req.Quantity)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, assignment)
}

func (h *AssignmentHandler) Revert(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}

	var req deliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	assignment, err := h.svc.Revert(c.Request.Context(), id, req.Quantity)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, assignment)
}

func (h *AssignmentHandler) Delete(c *gin.Context) {
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
