package http

import (
	"net/http"
	"net/url"

	domain "microcredx-backend/internal/domain/user"
	"microcredx-backend/internal/usecase/user"

	"github.com/labstack/echo/v4"
)

type UserHandler struct{ uc *user.Usecase }

func NewUserHandler(uc *user.Usecase) *UserHandler { return &UserHandler{uc: uc} }

type saveUserReq struct {
	Name  string `json:"name"`
	Email string `json:"email" validate:"required,email"`
	// checked by the usecase, and only when the user is new
	Role string `json:"role"`
}

type updateRoleReq struct {
	Role string `json:"role" validate:"required,role"`
}

// updateResult mirrors the document store's update acknowledgement.
type updateResult struct {
	Acknowledged  bool  `json:"acknowledged"`
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

func (h *UserHandler) List(c echo.Context) error {
	users, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeError(c, err, "", "")
	}
	return c.JSON(http.StatusOK, users)
}

func (h *UserHandler) Save(c echo.Context) error {
	var req saveUserReq
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	if err := c.Validate(&req); err != nil {
		return invalid(c, err)
	}
	u, err := h.uc.RegisterOrFetch(c.Request().Context(), user.RegisterInput(req))
	if err != nil {
		return writeError(c, err, "", "")
	}
	return c.JSON(http.StatusOK, u)
}

func (h *UserHandler) Role(c echo.Context) error {
	// echo leaves path params percent-encoded
	email, err := url.PathUnescape(c.Param("email"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid email"})
	}
	role, err := h.uc.GetRole(c.Request().Context(), email)
	if err != nil {
		return writeError(c, err, "User not found", "")
	}
	return c.JSON(http.StatusOK, map[string]domain.Role{"role": role})
}

func (h *UserHandler) UpdateRole(c echo.Context) error {
	var req updateRoleReq
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	if err := c.Validate(&req); err != nil {
		return invalid(c, err)
	}
	res, err := h.uc.SetRole(c.Request().Context(), c.Param("id"), req.Role)
	if err != nil {
		return writeError(c, err, "User not found", "Failed to update role")
	}
	return c.JSON(http.StatusOK, updateResult{Acknowledged: true, MatchedCount: res.MatchedCount, ModifiedCount: res.ModifiedCount})
}

func (h *UserHandler) PendingCount(c echo.Context) error {
	n, err := h.uc.CountPending(c.Request().Context())
	if err != nil {
		return writeError(c, err, "", "Failed to get count")
	}
	return c.JSON(http.StatusOK, map[string]int64{"count": n})
}
