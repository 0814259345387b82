package http

import (
	"context"
	"net/http"
	"time"

	domain "microcredx-backend/internal/domain/catalog"
	"microcredx-backend/internal/usecase/catalog"

	"github.com/labstack/echo/v4"
)

type CatalogHandler struct{ uc *catalog.Usecase }

func NewCatalogHandler(uc *catalog.Usecase) *CatalogHandler { return &CatalogHandler{uc: uc} }

type emiPlanReq struct {
	Months int    `json:"months" validate:"gte=0"`
	Label  string `json:"label"`
}

type addLoanReq struct {
	Title        string       `json:"title"        validate:"required"`
	Image        string       `json:"image"        validate:"omitempty,url"`
	ShortDesc    string       `json:"shortDesc"`
	Description  string       `json:"description"`
	Category     string       `json:"category"`
	InterestRate float64      `json:"interestRate" validate:"gte=0"`
	MaxLimit     float64      `json:"maxLimit"     validate:"gte=0"`
	EMIPlans     []emiPlanReq `json:"emiPlans"     validate:"dive"`
	ShowOnHome   bool         `json:"showOnHome"`
	CreatedBy    string       `json:"createdBy"    validate:"omitempty,email"`
	CreatedAt    *time.Time   `json:"createdAt"`
	UpdatedAt    *time.Time   `json:"updatedAt"`
}

// updateLoanReq is the manager's subset update.
type updateLoanReq struct {
	Title        *string  `json:"title"`
	ShortDesc    *string  `json:"shortDesc"`
	InterestRate *float64 `json:"interestRate" validate:"omitempty,gte=0"`
	MaxLimit     *float64 `json:"maxLimit"     validate:"omitempty,gte=0"`
	Category     *string  `json:"category"`
	Image        *string  `json:"image"`
}

// adminUpdateLoanReq is the admin's full update.
type adminUpdateLoanReq struct {
	updateLoanReq
	Description *string       `json:"description"`
	EMIPlans    *[]emiPlanReq `json:"emiPlans"    validate:"omitempty,dive"`
	ShowOnHome  *bool         `json:"showOnHome"`
}

func toEMIPlans(in []emiPlanReq) domain.EMIPlans {
	out := make(domain.EMIPlans, 0, len(in))
	for _, p := range in {
		out = append(out, domain.EMIPlan{Months: p.Months, Label: p.Label})
	}
	return out
}

func (r updateLoanReq) toInput() catalog.UpdateProductInput {
	return catalog.UpdateProductInput{
		Title:        r.Title,
		ShortDesc:    r.ShortDesc,
		InterestRate: r.InterestRate,
		MaxLimit:     r.MaxLimit,
		Category:     r.Category,
		Image:        r.Image,
	}
}

type homeListing struct {
	Status string           `json:"status"`
	Count  int              `json:"count"`
	Data   []domain.Product `json:"data"`
}

type detailResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func (h *CatalogHandler) ListAll(c echo.Context) error {
	items, err := h.uc.ListAll(c.Request().Context())
	if err != nil {
		return writeError(c, err, "", "")
	}
	return c.JSON(http.StatusOK, items)
}

func (h *CatalogHandler) ListHome(c echo.Context) error {
	return h.listing(c, h.uc.ListHome)
}

func (h *CatalogHandler) ListHomeAll(c echo.Context) error {
	return h.listing(c, h.uc.ListAll)
}

func (h *CatalogHandler) listing(c echo.Context, list func(ctx context.Context) ([]domain.Product, error)) error {
	items, err := list(c.Request().Context())
	if err != nil {
		code, _ := failure(c, err, "", "")
		return c.JSON(code, map[string]string{"status": "error", "message": "Internal Server Error"})
	}
	return c.JSON(http.StatusOK, homeListing{Status: "success", Count: len(items), Data: items})
}

func (h *CatalogHandler) Details(c echo.Context) error {
	p, err := h.uc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		code, msg := failure(c, err, "Loan Not Found", "Server error")
		return c.JSON(code, detailResponse{Success: false, Message: msg})
	}
	return c.JSON(http.StatusOK, detailResponse{Success: true, Data: p})
}

func (h *CatalogHandler) ListByCreator(c echo.Context) error {
	items, err := h.uc.ListByCreator(c.Request().Context(), c.QueryParam("email"))
	if err != nil {
		return writeError(c, err, "", "")
	}
	return c.JSON(http.StatusOK, items)
}

func (h *CatalogHandler) Create(c echo.Context) error {
	var req addLoanReq
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	if err := c.Validate(&req); err != nil {
		return invalid(c, err)
	}
	p, err := h.uc.Create(c.Request().Context(), catalog.CreateProductInput{
		Title:        req.Title,
		Image:        req.Image,
		ShortDesc:    req.ShortDesc,
		Description:  req.Description,
		Category:     req.Category,
		InterestRate: req.InterestRate,
		MaxLimit:     req.MaxLimit,
		EMIPlans:     toEMIPlans(req.EMIPlans),
		ShowOnHome:   req.ShowOnHome,
		CreatedBy:    req.CreatedBy,
		CreatedAt:    req.CreatedAt,
		UpdatedAt:    req.UpdatedAt,
	})
	if err != nil {
		return writeError(c, err, "", "Failed to add loan")
	}
	return c.JSON(http.StatusCreated, map[string]any{"acknowledged": true, "insertedId": p.ID})
}

func (h *CatalogHandler) Update(c echo.Context) error {
	var req updateLoanReq
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	if err := c.Validate(&req); err != nil {
		return invalid(c, err)
	}
	n, err := h.uc.Update(c.Request().Context(), c.Param("id"), req.toInput())
	if err != nil {
		return writeError(c, err, "Loan not found", "Failed to update loan")
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "updatedCount": n})
}

func (h *CatalogHandler) AdminUpdate(c echo.Context) error {
	var req adminUpdateLoanReq
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	if err := c.Validate(&req); err != nil {
		return invalid(c, err)
	}
	in := req.toInput()
	in.Description = req.Description
	in.ShowOnHome = req.ShowOnHome
	if req.EMIPlans != nil {
		plans := toEMIPlans(*req.EMIPlans)
		in.EMIPlans = &plans
	}
	n, err := h.uc.Update(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		return writeError(c, err, "Loan not found", "Failed to update loan")
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "modifiedCount": n})
}

func (h *CatalogHandler) Delete(c echo.Context) error {
	n, err := h.uc.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err, "", "Failed to delete loan")
	}
	return c.JSON(http.StatusOK, map[string]any{"acknowledged": true, "deletedCount": n})
}
