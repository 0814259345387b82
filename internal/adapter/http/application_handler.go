package http

import (
	"net/http"

	domain "microcredx-backend/internal/domain/application"
	"microcredx-backend/internal/infrastructure/metrics"
	"microcredx-backend/internal/usecase/application"

	"github.com/labstack/echo/v4"
)

type ApplicationHandler struct {
	uc      *application.Usecase
	metrics *metrics.Metrics
}

// NewApplicationHandler builds the handler; m may be nil.
func NewApplicationHandler(uc *application.Usecase, m *metrics.Metrics) *ApplicationHandler {
	return &ApplicationHandler{uc: uc, metrics: m}
}

type saveLoanReq struct {
	Email         string  `json:"email"         validate:"required,email"`
	LoanTitle     string  `json:"loanTitle"     validate:"required"`
	InterestRate  float64 `json:"interestRate"  validate:"gte=0"`
	FirstName     string  `json:"firstName"     validate:"required"`
	LastName      string  `json:"lastName"`
	ContactNumber string  `json:"contactNumber" validate:"required"`
	NationalID    string  `json:"nationalId"    validate:"required"`
	IncomeSource  string  `json:"incomeSource"`
	MonthlyIncome float64 `json:"monthlyIncome" validate:"gte=0"`
	LoanAmount    float64 `json:"loanAmount"    validate:"gt=0"`
	Reason        string  `json:"reason"`
	Address       string  `json:"address"`
	ExtraNotes    string  `json:"extraNotes"`
}

type loanStatusReq struct {
	Status string `json:"status" validate:"required,appstatus"`
}

func (h *ApplicationHandler) Submit(c echo.Context) error {
	var req saveLoanReq
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	if err := c.Validate(&req); err != nil {
		return invalid(c, err)
	}
	res, err := h.uc.Submit(c.Request().Context(), application.SubmitInput{
		Email: req.Email,
		Form: domain.Form{
			LoanTitle:     req.LoanTitle,
			InterestRate:  req.InterestRate,
			FirstName:     req.FirstName,
			LastName:      req.LastName,
			ContactNumber: req.ContactNumber,
			NationalID:    req.NationalID,
			IncomeSource:  req.IncomeSource,
			MonthlyIncome: req.MonthlyIncome,
			LoanAmount:    req.LoanAmount,
			Reason:        req.Reason,
			Address:       req.Address,
			ExtraNotes:    req.ExtraNotes,
		},
	})
	if err != nil {
		return writeError(c, err, "", "Failed to save loan")
	}

	code, result := http.StatusOK, "updated"
	if res.Created {
		code, result = http.StatusCreated, "created"
	}
	if h.metrics != nil {
		h.metrics.ApplicationsSubmitted.WithLabelValues(result).Inc()
	}
	return c.JSON(code, res.Application)
}

func (h *ApplicationHandler) ListByEmail(c echo.Context) error {
	items, err := h.uc.ListByEmail(c.Request().Context(), c.QueryParam("email"))
	if err != nil {
		return writeError(c, err, "", "")
	}
	return c.JSON(http.StatusOK, items)
}

func (h *ApplicationHandler) ListPending(c echo.Context) error {
	return h.listByStatus(c, domain.StatusPending)
}

func (h *ApplicationHandler) ListApproved(c echo.Context) error {
	return h.listByStatus(c, domain.StatusApproved)
}

func (h *ApplicationHandler) listByStatus(c echo.Context, s domain.Status) error {
	items, err := h.uc.ListByStatus(c.Request().Context(), s)
	if err != nil {
		return writeError(c, err, "", "")
	}
	return c.JSON(http.StatusOK, items)
}

func (h *ApplicationHandler) ListAll(c echo.Context) error {
	items, err := h.uc.ListAll(c.Request().Context())
	if err != nil {
		return writeError(c, err, "", "")
	}
	return c.JSON(http.StatusOK, items)
}

func (h *ApplicationHandler) Details(c echo.Context) error {
	a, err := h.uc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		code, msg := failure(c, err, "Application not found", "Server error")
		return c.JSON(code, detailResponse{Success: false, Message: msg})
	}
	return c.JSON(http.StatusOK, detailResponse{Success: true, Data: a})
}

func (h *ApplicationHandler) SetStatus(c echo.Context) error {
	var req loanStatusReq
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	if err := c.Validate(&req); err != nil {
		return invalid(c, err)
	}
	res, err := h.uc.SetStatus(c.Request().Context(), c.Param("id"), domain.Status(req.Status))
	if err != nil {
		return writeError(c, err, "Application not found", "Failed to update status")
	}
	if h.metrics != nil {
		h.metrics.ApplicationDecisions.WithLabelValues(req.Status).Inc()
	}
	return c.JSON(http.StatusOK, updateResult{Acknowledged: true, MatchedCount: res.MatchedCount, ModifiedCount: res.ModifiedCount})
}

func (h *ApplicationHandler) Delete(c echo.Context) error {
	n, err := h.uc.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err, "", "Failed to delete application")
	}
	return c.JSON(http.StatusOK, map[string]any{"acknowledged": true, "deletedCount": n})
}
