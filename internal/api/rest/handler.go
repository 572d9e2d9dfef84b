package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/porcinet/herdbook/internal/api/middleware"
	"github.com/porcinet/herdbook/internal/api/shared/dto"
	"github.com/porcinet/herdbook/internal/migration"
	"github.com/porcinet/herdbook/internal/weighing"
)

// Handler defines the interface for REST API handlers
type Handler interface {
	// RecordWeighing records one weighing session against a batch
	// POST /api/v1/batches/:batch_id/weighings
	RecordWeighing(c *gin.Context)

	// PreviewExplode reports what converting a batch into individual animals would create
	// POST /api/v1/migrations/batch-to-individual/preview
	PreviewExplode(c *gin.Context)

	// ExplodeBatch converts a batch into individual animals
	// POST /api/v1/migrations/batch-to-individual
	ExplodeBatch(c *gin.Context)

	// PreviewFold reports what grouping individual animals into batches would create
	// POST /api/v1/migrations/individual-to-batch/preview
	PreviewFold(c *gin.Context)

	// FoldIndividuals groups individual animals into batches
	// POST /api/v1/migrations/individual-to-batch
	FoldIndividuals(c *gin.Context)

	// ListMigrations returns the project's migration history, newest first
	// GET /api/v1/projects/:project_id/migrations
	ListMigrations(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	weighing  weighing.Service
	migration migration.Service
}

// NewHandler creates a new REST API handler
func NewHandler(weighingService weighing.Service, migrationService migration.Service) Handler {
	return &handler{
		weighing:  weighingService,
		migration: migrationService,
	}
}

// RecordWeighing records one weighing session against a batch
func (h *handler) RecordWeighing(c *gin.Context) {
	batchID := c.Param("batch_id")
	if batchID == "" {
		respondBadRequest(c, "Batch ID is required")
		return
	}

	var req dto.RecordWeighingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	measurements, err := req.Validate()
	if err != nil {
		respondValidationError(c, err)
		return
	}

	result, err := h.weighing.RecordWeighing(c.Request.Context(), weighing.Request{
		BatchID:      batchID,
		UserID:       middleware.UserID(c),
		Measurements: measurements,
		WeighingDate: req.WeighingDate,
		Notes:        req.Notes,
	})
	if err != nil {
		respondServiceError(c, err, zap.String("batch_id", batchID))
		return
	}

	c.JSON(http.StatusCreated, dto.MapWeighingResultToDTO(result))
}

// PreviewExplode reports what converting a batch into individual animals would create
func (h *handler) PreviewExplode(c *gin.Context) {
	req, ok := bindExplodeRequest(c)
	if !ok {
		return
	}

	preview, err := h.migration.PreviewExplode(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, zap.String("batch_id", req.BatchID))
		return
	}

	c.JSON(http.StatusOK, preview)
}

// ExplodeBatch converts a batch into individual animals
func (h *handler) ExplodeBatch(c *gin.Context) {
	req, ok := bindExplodeRequest(c)
	if !ok {
		return
	}

	result, err := h.migration.ExplodeBatch(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, zap.String("batch_id", req.BatchID))
		return
	}

	c.JSON(http.StatusCreated, dto.MapExplodeResultToDTO(result))
}

// PreviewFold reports what grouping individual animals into batches would create
func (h *handler) PreviewFold(c *gin.Context) {
	req, ok := bindFoldRequest(c)
	if !ok {
		return
	}

	preview, err := h.migration.PreviewFold(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, zap.Int("pig_count", len(req.AnimalIDs)))
		return
	}

	c.JSON(http.StatusOK, preview)
}

// FoldIndividuals groups individual animals into batches
func (h *handler) FoldIndividuals(c *gin.Context) {
	req, ok := bindFoldRequest(c)
	if !ok {
		return
	}

	result, err := h.migration.FoldIndividuals(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, zap.Int("pig_count", len(req.AnimalIDs)))
		return
	}

	c.JSON(http.StatusCreated, dto.MapFoldResultToDTO(result))
}

// ListMigrations returns the project's migration history, newest first
func (h *handler) ListMigrations(c *gin.Context) {
	projectID := c.Param("project_id")
	if projectID == "" {
		respondBadRequest(c, "Project ID is required")
		return
	}

	records, err := h.migration.History(c.Request.Context(), projectID, middleware.UserID(c))
	if err != nil {
		respondServiceError(c, err, zap.String("project_id", projectID))
		return
	}

	c.JSON(http.StatusOK, dto.MapMigrationRecordsToDTO(records))
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok"})
}

func bindExplodeRequest(c *gin.Context) (migration.ExplodeRequest, bool) {
	var body dto.ExplodeBatchRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return migration.ExplodeRequest{}, false
	}
	if err := body.Validate(); err != nil {
		respondValidationError(c, err)
		return migration.ExplodeRequest{}, false
	}

	return migration.ExplodeRequest{
		BatchID: body.BatchID,
		UserID:  middleware.UserID(c),
		Options: body.Options,
	}, true
}

func bindFoldRequest(c *gin.Context) (migration.FoldRequest, bool) {
	var body dto.FoldIndividualsRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return migration.FoldRequest{}, false
	}
	if err := body.Validate(); err != nil {
		respondValidationError(c, err)
		return migration.FoldRequest{}, false
	}

	return migration.FoldRequest{
		AnimalIDs: body.PigIDs,
		UserID:    middleware.UserID(c),
		Options:   body.Options,
	}, true
}
