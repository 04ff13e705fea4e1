package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	request "estimate_service/internal/adapter/http/dto/request"
	response "estimate_service/internal/adapter/http/dto/response"
	"estimate_service/internal/adapter/http/middleware"
	"estimate_service/internal/domain/calculation"
	"estimate_service/internal/domain/entities"
	"estimate_service/internal/domain/formula"
	"estimate_service/internal/usecase"
	"estimate_service/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidEstimatePayload = pkg.NewDomainErrorSimple("INVALID_ESTIMATE_INPUT", "Invalid estimate payload", http.StatusBadRequest)
	errInvalidQuery           = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid query parameter", http.StatusBadRequest)
)

// EstimateHandler exposes estimate documents, their revisions and the
// calculation preview.

type EstimateHandler struct {
	usecase usecase.IEstimateUseCase
}

func NewEstimateHandler(uc usecase.IEstimateUseCase) *EstimateHandler {
	return &EstimateHandler{usecase: uc}
}

// Ping godoc
// @Summary      Estimates module ping
// @Tags         estimates
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /estimates/ping [get]
func (h *EstimateHandler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}

// List godoc
// @Summary      List estimates
// @Tags         estimates
// @Produce      json
// @Param        year           query  int     false  "Effective year"
// @Param        department_id  query  int     false  "Project department"
// @Param        status         query  string  false  "Business state"  Enums(ONGOING, DONE, CANCELED)
// @Param        q              query  string  false  "Search title, project, number or receiver"
// @Success      200  {array}   response.EstimateSummaryResponse
// @Failure      400  {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /estimates [get]
func (h *EstimateHandler) List(c *gin.Context) {
	filter := usecase.ListFilter{
		BusinessState: entities.BusinessState(strings.ToUpper(strings.TrimSpace(c.Query("status")))),
		Query:         c.Query("q"),
	}
	if v := c.Query("year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(errInvalidQuery.HTTPStatus, errInvalidQuery.WithDetails(gin.H{"year": v}).ToHTTPError())
			return
		}
		filter.Year = &year
	}
	if v := c.Query("department_id"); v != "" {
		dept, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			c.JSON(errInvalidQuery.HTTPStatus, errInvalidQuery.WithDetails(gin.H{"department_id": v}).ToHTTPError())
			return
		}
		filter.DepartmentID = &dept
	}

	rows, err := h.usecase.List(c.Request.Context(), filter)
	if err != nil {
		h.fail(c, "list", err)
		return
	}
	c.JSON(http.StatusOK, response.FromSummaries(rows))
}

// Years godoc
// @Summary      Distinct effective years
// @Tags         estimates
// @Produce      json
// @Param        status  query  string  false  "Business state"  Enums(ONGOING, DONE, CANCELED)
// @Success      200  {object}  response.YearsResponse
// @Security     Bearer
// @Router       /estimates/years [get]
func (h *EstimateHandler) Years(c *gin.Context) {
	state := entities.BusinessState(strings.ToUpper(strings.TrimSpace(c.Query("status"))))
	years, err := h.usecase.DistinctYears(c.Request.Context(), state)
	if err != nil {
		h.fail(c, "years", err)
		return
	}
	c.JSON(http.StatusOK, response.YearsResponse{Years: years})
}

// Create godoc
// @Summary      Create an estimate with revision 1
// @Tags         estimates
// @Accept       json
// @Produce      json
// @Param        payload  body      request.EstimateCreateRequest  true  "Estimate"
// @Success      201      {object}  response.EstimateCreatedResponse
// @Failure      400      {object}  pkg.HTTPError
// @Failure      404      {object}  pkg.HTTPError
// @Failure      409      {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /estimates [post]
func (h *EstimateHandler) Create(c *gin.Context) {
	var payload request.EstimateCreateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		log.Printf("[estimate][handler] create invalid payload err=%v", err)
		c.JSON(errInvalidEstimatePayload.HTTPStatus, errInvalidEstimatePayload.ToHTTPError())
		return
	}

	created, err := h.usecase.Create(c.Request.Context(), middleware.PrincipalFromContext(c), payload.ToCommand())
	if err != nil {
		h.fail(c, "create", err)
		return
	}
	c.JSON(http.StatusCreated, response.FromCreateResult(created))
}

// Detail godoc
// @Summary      Current revision of an estimate
// @Tags         estimates
// @Produce      json
// @Param        id   path      int  true  "Estimate ID"
// @Success      200  {object}  response.EstimateDetailResponse
// @Failure      404  {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /estimates/{id} [get]
func (h *EstimateHandler) Detail(c *gin.Context) {
	id, ok := estimateIDParam(c)
	if !ok {
		return
	}
	d, err := h.usecase.Detail(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "detail", err)
		return
	}
	c.JSON(http.StatusOK, response.FromEstimateDetail(d))
}

// DetailByRevision godoc
// @Summary      A historical revision of an estimate
// @Tags         estimates
// @Produce      json
// @Param        id           path      int     true  "Estimate ID"
// @Param        revision_id  path      string  true  "Revision ID"
// @Success      200  {object}  response.EstimateDetailResponse
// @Failure      404  {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /estimates/{id}/revisions/{revision_id} [get]
func (h *EstimateHandler) DetailByRevision(c *gin.Context) {
	id, ok := estimateIDParam(c)
	if !ok {
		return
	}
	d, err := h.usecase.DetailByRevision(c.Request.Context(), id, c.Param("revision_id"))
	if err != nil {
		h.fail(c, "detail-by-revision", err)
		return
	}
	c.JSON(http.StatusOK, response.FromEstimateDetail(d))
}

// Update godoc
// @Summary      Submit a new revision
// @Description  Locks the current revision and stores the payload as the next one.
// @Tags         estimates
// @Accept       json
// @Produce      json
// @Param        id       path      int                            true  "Estimate ID"
// @Param        payload  body      request.EstimateUpdateRequest  true  "Revision"
// @Success      200      {object}  response.RevisionResponse
// @Failure      400      {object}  pkg.HTTPError
// @Failure      404      {object}  pkg.HTTPError
// @Failure      409      {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /estimates/{id} [put]
func (h *EstimateHandler) Update(c *gin.Context) {
	id, ok := estimateIDParam(c)
	if !ok {
		return
	}
	var payload request.EstimateUpdateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		log.Printf("[estimate][handler] update invalid payload estimate_id=%d err=%v", id, err)
		c.JSON(errInvalidEstimatePayload.HTTPStatus, errInvalidEstimatePayload.ToHTTPError())
		return
	}

	rev, err := h.usecase.Revise(c.Request.Context(), middleware.PrincipalFromContext(c), id, payload.ToCommand())
	if err != nil {
		h.fail(c, "update", err)
		return
	}
	c.JSON(http.StatusOK, response.FromRevision(rev, rev.ID))
}

// History godoc
// @Summary      Revision history, newest first
// @Tags         estimates
// @Produce      json
// @Param        id   path      int  true  "Estimate ID"
// @Success      200  {array}   response.RevisionResponse
// @Failure      404  {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /estimates/{id}/history [get]
func (h *EstimateHandler) History(c *gin.Context) {
	id, ok := estimateIDParam(c)
	if !ok {
		return
	}
	revs, err := h.usecase.History(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "history", err)
		return
	}
	c.JSON(http.StatusOK, response.FromRevisions(revs))
}

// HistoryDetails godoc
// @Summary      Full detail of previous revisions
// @Tags         estimates
// @Produce      json
// @Param        id     path      int  true   "Estimate ID"
// @Param        limit  query     int  false  "1..10, default 10"
// @Success      200    {array}   response.EstimateDetailResponse
// @Failure      400    {object}  pkg.HTTPError
// @Failure      404    {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /estimates/{id}/history-details [get]
func (h *EstimateHandler) HistoryDetails(c *gin.Context) {
	id, ok := estimateIDParam(c)
	if !ok {
		return
	}
	limit := usecase.MaxHistoryDetails
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > usecase.MaxHistoryDetails {
			c.JSON(errInvalidQuery.HTTPStatus, errInvalidQuery.WithDetails(gin.H{"limit": v}).ToHTTPError())
			return
		}
		limit = n
	}

	details, err := h.usecase.HistoryDetails(c.Request.Context(), id, limit)
	if err != nil {
		h.fail(c, "history-details", err)
		return
	}
	c.JSON(http.StatusOK, response.FromEstimateDetails(details))
}

// UpdateBusinessState godoc
// @Summary      Change the business state
// @Tags         estimates
// @Accept       json
// @Produce      json
// @Param        id       path      int                           true  "Estimate ID"
// @Param        payload  body      request.BusinessStateRequest  true  "State"
// @Success      200      {object}  response.EstimateStateResponse
// @Failure      400      {object}  pkg.HTTPError
// @Failure      404      {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /estimates/{id}/business-state [post]
func (h *EstimateHandler) UpdateBusinessState(c *gin.Context) {
	id, ok := estimateIDParam(c)
	if !ok {
		return
	}
	var payload request.BusinessStateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidEstimatePayload.HTTPStatus, errInvalidEstimatePayload.ToHTTPError())
		return
	}

	e, err := h.usecase.UpdateBusinessState(c.Request.Context(), middleware.PrincipalFromContext(c), id, entities.BusinessState(payload.BusinessState))
	if err != nil {
		h.fail(c, "business-state", err)
		return
	}
	c.JSON(http.StatusOK, response.FromEstimateState(e))
}

// Delete godoc
// @Summary      Soft-delete an estimate
// @Tags         estimates
// @Param        id   path  int  true  "Estimate ID"
// @Success      204
// @Failure      404  {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /estimates/{id} [delete]
func (h *EstimateHandler) Delete(c *gin.Context) {
	id, ok := estimateIDParam(c)
	if !ok {
		return
	}
	if err := h.usecase.Delete(c.Request.Context(), middleware.PrincipalFromContext(c), id); err != nil {
		h.fail(c, "delete", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Preview godoc
// @Summary      Calculate without saving
// @Tags         estimates
// @Accept       json
// @Produce      json
// @Param        payload  body      request.EstimatePreviewRequest  true  "Sections"
// @Success      200      {object}  response.PreviewResponse
// @Failure      400      {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /estimates/preview [post]
func (h *EstimateHandler) Preview(c *gin.Context) {
	var payload request.EstimatePreviewRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidEstimatePayload.HTTPStatus, errInvalidEstimatePayload.ToHTTPError())
		return
	}
	res, err := h.usecase.Preview(c.Request.Context(), request.ToSections(payload.Sections))
	if err != nil {
		h.fail(c, "preview", err)
		return
	}
	c.JSON(http.StatusOK, response.FromPreview(res))
}

func (h *EstimateHandler) fail(c *gin.Context, op string, err error) {
	appErr := mapEstimateError(err)
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		log.Printf("[estimate][handler] %s failed path=%s err=%v", op, c.Request.URL.Path, err)
	} else {
		log.Printf("[estimate][handler] %s rejected path=%s code=%s err=%v", op, c.Request.URL.Path, appErr.Code, err)
	}
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

func estimateIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		appErr := mapEstimateError(usecase.ErrInvalidEstimateID)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return 0, false
	}
	return id, true
}

func mapEstimateError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, formula.ErrInvalidFormula):
		return pkg.NewDomainError("INVALID_FORMULA", err.Error(), err, http.StatusBadRequest).WithDetails(lineErrorDetails(err))
	case errors.Is(err, calculation.ErrAmountOutOfRange):
		return pkg.NewDomainError("AMOUNT_OUT_OF_RANGE", "Amount is too large to calculate", err, http.StatusBadRequest).WithDetails(lineErrorDetails(err))
	case errors.Is(err, usecase.ErrInvalidEstimateID), errors.Is(err, usecase.ErrInvalidProjectID),
		errors.Is(err, usecase.ErrInvalidBusinessState), errors.Is(err, usecase.ErrInvalidSections):
		return pkg.NewDomainError("INVALID_REQUEST", "Invalid request", err, http.StatusBadRequest)
	case errors.Is(err, usecase.ErrRevisionTooLarge):
		return pkg.NewDomainError("TOO_MANY_SECTIONS", "Revision has too many sections", err, http.StatusBadRequest)
	case errors.Is(err, usecase.ErrUnauthorized):
		return pkg.NewDomainErrorSimple("UNAUTHORIZED", "Authentication required", http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrEstimateNotFound):
		return pkg.NewDomainErrorSimple("ESTIMATE_NOT_FOUND", "Estimate not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrRevisionNotFound):
		return pkg.NewDomainErrorSimple("REVISION_NOT_FOUND", "Estimate revision not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrProjectNotFound):
		return pkg.NewDomainErrorSimple("PROJECT_NOT_FOUND", "Project not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrDuplicateEstimate):
		return pkg.NewDomainErrorSimple("ESTIMATE_ALREADY_EXISTS", "Estimate already exists for this project", http.StatusConflict)
	case errors.Is(err, usecase.ErrConcurrentRevision):
		return pkg.NewDomainErrorSimple("REVISION_CONFLICT", "Estimate was revised by someone else; reload and retry", http.StatusConflict)
	case errors.Is(err, usecase.ErrCorruptState):
		return pkg.NewDomainError("ESTIMATE_CORRUPT_STATE", "Estimate has no current revision", err, http.StatusInternalServerError)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

func lineErrorDetails(err error) gin.H {
	details := gin.H{}
	var fe *formula.Error
	if errors.As(err, &fe) {
		details["kind"] = fe.Kind.String()
		if fe.Pos >= 0 {
			details["position"] = fe.Pos
		}
	}
	var le *calculation.LineError
	if errors.As(err, &le) {
		details["section_order"] = le.SectionOrder
		details["section_type"] = le.SectionType
		details["line_order"] = le.LineOrder
		if le.Name != "" {
			details["line_name"] = le.Name
		}
	}
	return details
}
