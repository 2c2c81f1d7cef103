package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/telaris/confetrack/internal/config"
	"github.com/telaris/confetrack/internal/production/repository"
	"github.com/telaris/confetrack/internal/production/service"
)

// Handlers bundles all HTTP handlers.
type Handlers struct {
	Auth       *AuthHandler
	Employee   *EmployeeHandler
	Garment    *GarmentHandler
	Operation  *OperationHandler
	Order      *OrderHandler
	Assignment *AssignmentHandler
	Remission  *RemissionHandler
	Payroll    *PayrollHandler
	Dashboard  *DashboardHandler
	SSE        *SSEHandler
}

func NewHandlers(svc *service.Services, cfg *config.Config) *Handlers {
	return &Handlers{
		Auth:       NewAuthHandler(svc.Auth),
		Employee:   NewEmployeeHandler(svc.Employee),
		Garment:    NewGarmentHandler(svc.Garment),
		Operation:  NewOperationHandler(svc.Operation),
		Order:      NewOrderHandler(svc.Order, svc.Progress),
		Assignment: NewAssignmentHandler(svc.Assignment),
		Remission:  NewRemissionHandler(svc.Remission),
		Payroll:    NewPayrollHandler(svc.Payroll),
		Dashboard:  NewDashboardHandler(svc.Dashboard),
		SSE:        NewSSEHandler(),
	}
}

// Response is the envelope every endpoint answers with.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type ListResponse struct {
	Items      interface{} `json:"items"`
	Pagination *Pagination `json:"pagination"`
}

type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

func NewPagination(page, pageSize int, total int64) *Pagination {
	totalPages := int(total) / pageSize
	if int(total)%pageSize != 0 {
		totalPages++
	}
	return &Pagination{
		Page:       page,
		PageSize:   pageSize,
		Total:      int(total),
		TotalPages: totalPages,
	}
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(200, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(201, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	statusCode := code / 100
	if statusCode < 100 || statusCode > 599 {
		statusCode = 500
	}
	c.JSON(statusCode, Response{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, 40000, message)
}

func Unauthorized(c *gin.Context, message string) {
	Error(c, 40100, message)
}

func Forbidden(c *gin.Context, message string) {
	Error(c, 40300, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, 40400, message)
}

func Conflict(c *gin.Context, message string) {
	Error(c, 40900, message)
}

func InternalError(c *gin.Context, message string) {
	Error(c, 50000, message)
}

// HandleError maps service errors onto the response envelope. Business-rule
// violations come back as 409 with the full message so the client can show
// the numbers; unknown errors stay opaque 500s.
func HandleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		NotFound(c, err.Error())
	case errors.Is(err, service.ErrCapacityExceeded),
		errors.Is(err, service.ErrInsufficientCompletedStock),
		errors.Is(err, service.ErrDuplicateReference):
		Conflict(c, err.Error())
	case errors.Is(err, service.ErrInvalidQuantity):
		BadRequest(c, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		Unauthorized(c, "Invalid username or password")
	default:
		InternalError(c, err.Error())
	}
}

// GetUserID reads the authenticated user's ID set by the JWT middleware.
func GetUserID(c *gin.Context) uint {
	userID, _ := c.Get("user_id")
	if id, ok := userID.(uint); ok {
		return id
	}
	return 0
}

func GetPagination(c *gin.Context) (page, pageSize int) {
	page = 1
	pageSize = 20

	if p := c.Query("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			page = v
		}
	}

	if ps := c.Query("page_size"); ps != "" {
		if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= 100 {
			pageSize = v
		}
	}

	return page, pageSize
}

// ParamID parses the :id path segment. A second return of false means the
// handler already wrote a 400.
func ParamID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		BadRequest(c, "Invalid ID")
		return 0, false
	}
	return uint(id), true
}

// QueryUint reads an optional numeric query filter, 0 when absent.
func QueryUint(c *gin.Context, name string) uint {
	v, _ := strconv.ParseUint(c.Query(name), 10, 64)
	return uint(v)
}
