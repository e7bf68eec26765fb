package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tourbook/internal/http/middleware"
	"tourbook/internal/services"
	"tourbook/internal/utils"
)

// parseWindow reads optional from/to query params as YYYY-MM-DD.
func parseWindow(c *gin.Context) (*time.Time, *time.Time, bool) {
	var from, to *time.Time
	if raw := c.Query("from"); raw != "" {
		t, err := utils.ParseDate(raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "from must be YYYY-MM-DD", err)
			return nil, nil, false
		}
		from = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := utils.ParseDate(raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "to must be YYYY-MM-DD", err)
			return nil, nil, false
		}
		to = &t
	}
	return from, to, true
}

func financeService(c *gin.Context) services.FinanceService {
	return services.FinanceService{RequestID: middleware.GetRequestID(c)}
}

// GET /api/finance/summary (admin)
func GetFinanceSummary(c *gin.Context) {
	from, to, ok := parseWindow(c)
	if !ok {
		return
	}
	out, err := financeService(c).Summary(from, to)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/finance/expenses (admin)
func GetFinanceExpenses(c *gin.Context) {
	from, to, ok := parseWindow(c)
	if !ok {
		return
	}
	out, err := financeService(c).Expenses(from, to)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"expenses": out})
}
