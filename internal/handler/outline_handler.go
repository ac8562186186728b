package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"workspace/internal/errors"
	"workspace/internal/model"
	"workspace/internal/service"
)

// OutlineHandler handles outline endpoints.
type OutlineHandler struct {
	outlineService service.OutlineService
	logger         *zap.Logger
}

// NewOutlineHandler creates a new outline handler.
func NewOutlineHandler(outlineService service.OutlineService, logger *zap.Logger) *OutlineHandler {
	return &OutlineHandler{
		outlineService: outlineService,
		logger:         logger,
	}
}

// CreateOutlineRequest represents an outline creation request. Target and
// limit accept numbers or numeric strings.
type CreateOutlineRequest struct {
	Header      string   `json:"header" validate:"required"`
	SectionType string   `json:"sectionType" validate:"required"`
	Status      string   `json:"status" validate:"required,oneof=Pending In-Progress Completed"`
	Target      *FlexInt `json:"target" validate:"required" swaggertype:"integer"`
	Limit       *FlexInt `json:"limit" validate:"required" swaggertype:"integer"`
	Reviewer    string   `json:"reviewer" validate:"required"`
}

// UpdateOutlineRequest represents a partial outline update. Absent fields are
// left untouched; present string fields may not be empty.
type UpdateOutlineRequest struct {
	Header      *string  `json:"header" validate:"omitnil,min=1"`
	SectionType *string  `json:"sectionType" validate:"omitnil,min=1"`
	Status      *string  `json:"status" validate:"omitnil,oneof=Pending In-Progress Completed"`
	Target      *FlexInt `json:"target" swaggertype:"integer"`
	Limit       *FlexInt `json:"limit" swaggertype:"integer"`
	Reviewer    *string  `json:"reviewer" validate:"omitnil,min=1"`
}

func (r UpdateOutlineRequest) toUpdate() model.OutlineUpdate {
	update := model.OutlineUpdate{
		Header:      r.Header,
		SectionType: r.SectionType,
		Target:      r.Target.IntPtr(),
		Limit:       r.Limit.IntPtr(),
		Reviewer:    r.Reviewer,
	}
	if r.Status != nil {
		status := model.OutlineStatus(*r.Status)
		update.Status = &status
	}
	return update
}

// ReorderRequest lists outline ids in their new order.
type ReorderRequest struct {
	IDs []string `json:"ids" validate:"required"`
}

// List godoc
// @Summary List outlines
// @Tags outlines
// @Produce json
// @Security BearerAuth
// @Param orgId path string true "Organization ID"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /organization/{orgId}/outline [get]
func (h *OutlineHandler) List(c echo.Context) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return fail(c, h.logger, err)
	}
	orgID, err := orgIDParam(c)
	if err != nil {
		return fail(c, h.logger, err)
	}

	outlines, err := h.outlineService.List(c.Request().Context(), identity.User.ID, orgID)
	if err != nil {
		return fail(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"outlines": outlines})
}

// Create godoc
// @Summary Create an outline
// @Description The outline is appended after the organization's last outline.
// @Tags outlines
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param orgId path string true "Organization ID"
// @Param request body CreateOutlineRequest true "Outline data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /organization/{orgId}/outline [post]
func (h *OutlineHandler) Create(c echo.Context) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return fail(c, h.logger, err)
	}
	orgID, err := orgIDParam(c)
	if err != nil {
		return fail(c, h.logger, err)
	}

	var req CreateOutlineRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody()
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, h.logger, err)
	}

	outline, err := h.outlineService.Create(c.Request().Context(), identity.User.ID, orgID, &model.Outline{
		Header:      req.Header,
		SectionType: req.SectionType,
		Status:      model.OutlineStatus(req.Status),
		Target:      int(*req.Target),
		Limit:       int(*req.Limit),
		Reviewer:    req.Reviewer,
	})
	if err != nil {
		return fail(c, h.logger, err)
	}

	return c.JSON(http.StatusCreated, echo.Map{"outline": outline})
}

// Update godoc
// @Summary Update an outline
// @Tags outlines
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param orgId path string true "Organization ID"
// @Param id path string true "Outline ID"
// @Param request body UpdateOutlineRequest true "Fields to change"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /organization/{orgId}/outline/{id} [patch]
func (h *OutlineHandler) Update(c echo.Context) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return fail(c, h.logger, err)
	}
	orgID, err := orgIDParam(c)
	if err != nil {
		return fail(c, h.logger, err)
	}
	outlineID, err := outlineIDParam(c)
	if err != nil {
		return fail(c, h.logger, err)
	}

	var req UpdateOutlineRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody()
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, h.logger, err)
	}

	outline, err := h.outlineService.Update(c.Request().Context(), identity.User.ID, orgID, outlineID, req.toUpdate())
	if err != nil {
		return fail(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"outline": outline})
}

// Delete godoc
// @Summary Delete an outline
// @Tags outlines
// @Produce json
// @Security BearerAuth
// @Param orgId path string true "Organization ID"
// @Param id path string true "Outline ID"
// @Success 200 {object} map[string]bool
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /organization/{orgId}/outline/{id} [delete]
func (h *OutlineHandler) Delete(c echo.Context) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return fail(c, h.logger, err)
	}
	orgID, err := orgIDParam(c)
	if err != nil {
		return fail(c, h.logger, err)
	}
	outlineID, err := outlineIDParam(c)
	if err != nil {
		return fail(c, h.logger, err)
	}

	if err := h.outlineService.Delete(c.Request().Context(), identity.User.ID, orgID, outlineID); err != nil {
		return fail(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// Reorder godoc
// @Summary Reorder outlines
// @Description Sets each listed outline's order to its position in ids. All or nothing.
// @Tags outlines
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param orgId path string true "Organization ID"
// @Param request body ReorderRequest true "Outline ids in display order"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /organization/{orgId}/outline/reorder [put]
func (h *OutlineHandler) Reorder(c echo.Context) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return fail(c, h.logger, err)
	}

	var req ReorderRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, h.logger, errors.NewValidationError("Invalid ids"))
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, h.logger, errors.NewValidationError("Invalid ids"))
	}
	ids := make([]uuid.UUID, 0, len(req.IDs))
	for _, raw := range req.IDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return fail(c, h.logger, errors.NewValidationError("Invalid ids"))
		}
		ids = append(ids, id)
	}

	orgID, err := orgIDParam(c)
	if err != nil {
		return fail(c, h.logger, err)
	}

	if err := h.outlineService.Reorder(c.Request().Context(), identity.User.ID, orgID, ids); err != nil {
		return fail(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

func outlineIDParam(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, errors.ErrOutlineNotFound
	}
	return id, nil
}
