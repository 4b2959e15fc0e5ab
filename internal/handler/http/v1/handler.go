package v1

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shenikar/safety_heatmap/internal/config"
	"github.com/shenikar/safety_heatmap/internal/models"
	"github.com/shenikar/safety_heatmap/internal/service"
	"github.com/sirupsen/logrus"
)

// maxGeoJSONBody ограничивает размер загружаемого файла границ
const maxGeoJSONBody = 32 << 20

// Services - сервисы, которые обслуживает HTTP слой
type Services struct {
	Incidents     service.IncidentService
	Heatmap       service.HeatmapService
	Neighborhoods service.NeighborhoodService
	Reconciler    service.Reconciler
	Maintenance   service.MaintenanceService
}

type Handler struct {
	incidentService     service.IncidentService
	heatmapService      service.HeatmapService
	neighborhoodService service.NeighborhoodService
	reconciler          service.Reconciler
	maintenance         service.MaintenanceService
	logger              *logrus.Logger
	validate            *validator.Validate
	cfg                 *config.Config
}

func NewHandler(services Services, logger *logrus.Logger, cfg *config.Config) *Handler {
	return &Handler{
		incidentService:     services.Incidents,
		heatmapService:      services.Heatmap,
		neighborhoodService: services.Neighborhoods,
		reconciler:          services.Reconciler,
		maintenance:         services.Maintenance,
		logger:              logger,
		validate:            validator.New(),
		cfg:                 cfg,
	}
}

// statusFor сопоставляет доменную ошибку с HTTP статусом и текстом ответа
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, models.ErrInvalidInput):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, models.ErrAlreadyVoted):
		return http.StatusConflict, "validator already voted on this incident"
	case errors.Is(err, models.ErrNotPending):
		return http.StatusConflict, "incident is not open for voting"
	case errors.Is(err, models.ErrSelfVote):
		return http.StatusConflict, "reporter cannot validate own incident"
	case errors.Is(err, models.ErrRebuildInProgress):
		return http.StatusConflict, "rebuild already in progress"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

func (h *Handler) respondError(c *gin.Context, log *logrus.Entry, err error) {
	code, msg := statusFor(err)
	if code >= http.StatusInternalServerError {
		log.WithError(err).Error("Service call failed")
	} else {
		log.WithError(err).Warn("Request rejected by service")
	}
	c.JSON(code, gin.H{"error": msg})
}

// bindJSON читает и проверяет тело запроса; при ошибке ответ уже отправлен
func (h *Handler) bindJSON(c *gin.Context, log *logrus.Entry, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

func parseIncidentID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid incident ID"})
		return uuid.Nil, false
	}
	return id, true
}

// @Summary Submit an incident report
// @Description Submit a crowd report. The incident is stored as pending until validators reach consensus. Requires API key.
// @Tags Incidents
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param incident body SubmitIncidentRequest true "Incident report"
// @Success 201 {object} SubmitIncidentResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents [post]
func (h *Handler) submitIncident(c *gin.Context) {
	var input SubmitIncidentRequest
	log := h.logger.WithField("method", "submitIncident")

	if !h.bindJSON(c, log, &input) {
		return
	}

	incident, err := h.incidentService.SubmitIncident(c.Request.Context(), DTOToIncidentModel(input))
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, SubmitIncidentResponse{ID: incident.ID, Status: string(incident.Status)})
}

// @Summary Get incident by ID
// @Description Get a single incident by its ID.
// @Tags Incidents
// @Produce json
// @Param id path string true "Incident ID"
// @Success 200 {object} IncidentResponse
// @Failure 400 {object} map[string]string "Invalid incident ID"
// @Failure 404 {object} map[string]string "Incident not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents/{id} [get]
func (h *Handler) getIncident(c *gin.Context) {
	id, ok := parseIncidentID(c)
	if !ok {
		return
	}
	log := h.logger.WithField("method", "getIncident").WithField("id", id)

	incident, err := h.incidentService.GetIncident(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToIncidentResponse(incident))
}

// @Summary Cast a validator vote
// @Description Cast a +1/-1 vote with confidence on a pending incident. Requires API key.
// @Tags Incidents
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Incident ID"
// @Param vote body VoteRequest true "Vote"
// @Success 200 {object} VoteResponse
// @Failure 400 {object} map[string]string "Invalid incident ID or request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Incident not found"
// @Failure 409 {object} map[string]string "Already voted, self vote or incident not pending"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents/{id}/votes [post]
func (h *Handler) castVote(c *gin.Context) {
	id, ok := parseIncidentID(c)
	if !ok {
		return
	}
	log := h.logger.WithField("method", "castVote").WithField("id", id)

	var input VoteRequest
	if !h.bindJSON(c, log, &input) {
		return
	}

	result, err := h.incidentService.CastVote(c.Request.Context(), id, input.ValidatorID, models.Vote(input.Vote), *input.Confidence)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToVoteResponse(result))
}

// @Summary Hide or unhide an incident
// @Description Moderation overlay. Hidden incidents are excluded from every aggregate. Requires API key.
// @Tags Incidents
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Incident ID"
// @Param hidden body HiddenRequest true "Hidden flag"
// @Success 200 {object} IncidentResponse
// @Failure 400 {object} map[string]string "Invalid incident ID or request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Incident not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents/{id}/hidden [put]
func (h *Handler) setHidden(c *gin.Context) {
	id, ok := parseIncidentID(c)
	if !ok {
		return
	}
	log := h.logger.WithField("method", "setHidden").WithField("id", id)

	var input HiddenRequest
	if !h.bindJSON(c, log, &input) {
		return
	}

	incident, err := h.incidentService.SetHidden(c.Request.Context(), id, *input.Hidden)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToIncidentResponse(incident))
}

// @Summary Query heat cells
// @Description Heat cells intersecting the bounding box, with their color band.
// @Tags Heatmap
// @Produce json
// @Param min_lat query number true "South edge"
// @Param min_lon query number true "West edge"
// @Param max_lat query number true "North edge"
// @Param max_lon query number true "East edge"
// @Success 200 {array} HeatCellResponse
// @Failure 400 {object} map[string]string "Invalid bounding box"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /heatmap/cells [get]
func (h *Handler) queryHeatCells(c *gin.Context) {
	log := h.logger.WithField("method", "queryHeatCells")

	var query BBoxQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		log.WithError(err).Warn("Failed to bind query")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid bounding box"})
		return
	}
	if err := h.validate.Struct(query); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cells, err := h.heatmapService.QueryHeatCells(c.Request.Context(), query.toModel())
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelsToHeatCellResponses(cells))
}

// @Summary List neighborhoods
// @Description Neighborhood rollups; with_incidents=true keeps only neighborhoods with countable incidents.
// @Tags Neighborhoods
// @Produce json
// @Param with_incidents query bool false "Only neighborhoods with incidents" default(false)
// @Success 200 {array} NeighborhoodResponse
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /neighborhoods [get]
func (h *Handler) queryNeighborhoods(c *gin.Context) {
	log := h.logger.WithField("method", "queryNeighborhoods")
	withIncidents, _ := strconv.ParseBool(c.DefaultQuery("with_incidents", "false"))

	hoods, err := h.neighborhoodService.QueryNeighborhoods(c.Request.Context(), withIncidents)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelsToNeighborhoodResponses(hoods))
}

// @Summary Neighborhoods as GeoJSON
// @Description Neighborhood boundaries with rollup properties as a FeatureCollection for the map layer.
// @Tags Neighborhoods
// @Produce json
// @Param with_incidents query bool false "Only neighborhoods with incidents" default(false)
// @Success 200 {object} map[string]interface{} "GeoJSON FeatureCollection"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /neighborhoods/geojson [get]
func (h *Handler) neighborhoodsGeoJSON(c *gin.Context) {
	log := h.logger.WithField("method", "neighborhoodsGeoJSON")
	withIncidents, _ := strconv.ParseBool(c.DefaultQuery("with_incidents", "false"))

	hoods, err := h.neighborhoodService.QueryNeighborhoods(c.Request.Context(), withIncidents)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, NeighborhoodsToFeatureCollection(hoods))
}

// @Summary Reconcile a news event
// @Description Corroborate a nearby incident of the same type or create an auto-verified one. Requires API key.
// @Tags News
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param event body NewsEventRequest true "Classified and geocoded news event"
// @Success 200 {object} ReconcileResponse "Existing incident corroborated"
// @Success 201 {object} ReconcileResponse "Incident created"
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /news/reconcile [post]
func (h *Handler) reconcileNews(c *gin.Context) {
	var input NewsEventRequest
	log := h.logger.WithField("method", "reconcileNews")

	if !h.bindJSON(c, log, &input) {
		return
	}

	result, err := h.reconciler.Reconcile(c.Request.Context(), DTOToNewsEvent(input))
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	code := http.StatusOK
	if result.Created {
		code = http.StatusCreated
	}
	c.JSON(code, ReconcileResponse{IncidentID: result.IncidentID, Created: result.Created})
}

// @Summary Rebuild all caches
// @Description Recompute every heat cell and neighborhood from source incidents, then rebalance colors. Requires API key.
// @Tags Admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} RebuildResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Rebuild already in progress"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /admin/rebuild [post]
func (h *Handler) rebuildAll(c *gin.Context) {
	log := h.logger.WithField("method", "rebuildAll")

	report, err := h.maintenance.RebuildAll(c.Request.Context())
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, RebuildResponse{
		Cells:                report.Cells,
		CellFailures:         report.CellFailures,
		Assigned:             report.Assigned,
		Neighborhoods:        report.Neighborhoods,
		NeighborhoodFailures: report.NeighborhoodFailures,
		Duration:             report.Duration.String(),
	})
}

// @Summary Rebalance heat cell colors
// @Description Recompute percentile color bands over all nonzero cells. Requires API key.
// @Tags Admin
// @Security ApiKeyAuth
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /admin/rebalance [post]
func (h *Handler) rebalanceColors(c *gin.Context) {
	log := h.logger.WithField("method", "rebalanceColors")

	if err := h.heatmapService.RebalanceColors(c.Request.Context()); err != nil {
		h.respondError(c, log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Import neighborhood boundaries
// @Description Upsert neighborhoods from a GeoJSON FeatureCollection of Polygon/MultiPolygon features. Requires API key.
// @Tags Admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param collection body object true "GeoJSON FeatureCollection"
// @Success 200 {object} ImportResponse
// @Failure 400 {object} map[string]string "Malformed GeoJSON"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /admin/neighborhoods [post]
func (h *Handler) importNeighborhoods(c *gin.Context) {
	log := h.logger.WithField("method", "importNeighborhoods")

	data, err := io.ReadAll(io.LimitReader(c.Request.Body, maxGeoJSONBody))
	if err != nil {
		log.WithError(err).Warn("Failed to read body")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	imported, err := h.neighborhoodService.ImportGeoJSON(c.Request.Context(), data)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ImportResponse{Imported: imported})
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
