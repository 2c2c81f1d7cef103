package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/telaris/confetrack/internal/production/service"
)

type PayrollHandler struct {
	svc *service.PayrollService
}

func NewPayrollHandler(svc *service.PayrollService) *PayrollHandler {
	return &PayrollHandler{svc: svc}
}

func parseDateRange(c *gin.Context) (from, to time.Time, ok bool) {
	from, err := time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		BadRequest(c, "from must be YYYY-MM-DD")
		return from, to, false
	}
	to, err = time.Parse("2006-01-02", c.Query("to"))
	if err != nil {
		BadRequest(c, "to must be YYYY-MM-DD")
		return from, to, false
	}
	return from, to, true
}

// Summary computes per-employee earnings over ?from=&to= (both inclusive).
func (h *PayrollHandler) Summary(c *gin.Context) {
	from, to, ok := parseDateRange(c)
	if !ok {
		return
	}

	summary, err := h.svc.Compute(c.Request.Context(), from, to)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, summary)
}

// EmployeeDetail lists the completed assignments behind one payroll line.
func (h *PayrollHandler) EmployeeDetail(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}
	from, to, ok := parseDateRange(c)
	if !ok {
		return
	}

	details, err := h.svc.ForEmployee(c.Request.Context(), id, from, to)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, details)
}
