package v1

import (
	"strings"

	"github.com/paulmach/orb/geojson"
	"github.com/shenikar/safety_heatmap/internal/models"
)

// DTOToIncidentModel преобразует DTO сообщения в доменную модель.
// Координаты и geohash выставляет сервис.
func DTOToIncidentModel(dto SubmitIncidentRequest) *models.Incident {
	return &models.Incident{
		Type:        models.IncidentType(dto.Type),
		Severity:    dto.Severity,
		Description: strings.TrimSpace(dto.Description),
		Latitude:    *dto.Latitude,
		Longitude:   *dto.Longitude,
		ReporterID:  dto.ReporterID,
	}
}

// DTOToNewsEvent преобразует DTO новости в доменную модель
func DTOToNewsEvent(dto NewsEventRequest) *models.NewsEvent {
	return &models.NewsEvent{
		ID:          dto.ID,
		Title:       dto.Title,
		URL:         dto.URL,
		Source:      dto.Source,
		Category:    models.IncidentType(dto.Category),
		Severity:    dto.Severity,
		Description: dto.Description,
		Latitude:    *dto.Latitude,
		Longitude:   *dto.Longitude,
		CountryCode: strings.ToUpper(dto.CountryCode),
		DedupKey:    dto.DedupKey,
		Date:        dto.Date,
	}
}

func (q BBoxQuery) toModel() models.BBox {
	return models.BBox{MinLat: *q.MinLat, MinLon: *q.MinLon, MaxLat: *q.MaxLat, MaxLon: *q.MaxLon}
}

// ModelToIncidentResponse преобразует доменную модель в DTO для ответа
func ModelToIncidentResponse(model *models.Incident) *IncidentResponse {
	sources := make([]SourceNewsResponse, len(model.SourceNews))
	for i, ref := range model.SourceNews {
		sources[i] = SourceNewsResponse(ref)
	}
	return &IncidentResponse{
		ID:              model.ID,
		Type:            string(model.Type),
		Severity:        model.Severity,
		Description:     model.Description,
		Latitude:        model.Latitude,
		Longitude:       model.Longitude,
		Geohash:         model.Geohash,
		NeighborhoodID:  model.NeighborhoodID,
		Status:          string(model.Status),
		Hidden:          model.Hidden,
		ReporterID:      model.ReporterID,
		ValidationScore: model.Score,
		ValidationCount: model.Count,
		SourceNews:      sources,
		CreatedAt:       model.CreatedAt,
		UpdatedAt:       model.UpdatedAt,
	}
}

func ModelToVoteResponse(result *models.VoteResult) *VoteResponse {
	return &VoteResponse{
		Status:          string(result.Status),
		ValidationScore: result.ValidationScore,
		ValidationCount: result.ValidationCount,
	}
}

// ModelsToHeatCellResponses преобразует слайс ячеек в слайс DTO
func ModelsToHeatCellResponses(cells []*models.HeatCell) []*HeatCellResponse {
	responses := make([]*HeatCellResponse, len(cells))
	for i, cell := range cells {
		responses[i] = &HeatCellResponse{
			Geohash:        cell.Geohash,
			Score:          cell.Score,
			IncidentCount:  cell.IncidentCount,
			LastIncidentAt: cell.LastIncidentAt,
			Color:          string(cell.Color),
			Percentile:     cell.Percentile,
			Latitude:       cell.Latitude,
			Longitude:      cell.Longitude,
		}
	}
	return responses
}

// ModelsToNeighborhoodResponses преобразует слайс районов в слайс DTO
func ModelsToNeighborhoodResponses(hoods []*models.Neighborhood) []*NeighborhoodResponse {
	responses := make([]*NeighborhoodResponse, len(hoods))
	for i, n := range hoods {
		responses[i] = &NeighborhoodResponse{
			ID:             n.ID,
			Name:           n.Name,
			IncidentCount:  n.IncidentCount,
			AverageColor:   n.AverageColor,
			LastIncidentAt: n.LastIncidentAt,
		}
	}
	return responses
}

// NeighborhoodsToFeatureCollection собирает районы с границами в GeoJSON для слоя карты
func NeighborhoodsToFeatureCollection(hoods []*models.Neighborhood) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, n := range hoods {
		if len(n.Boundary) == 0 {
			continue
		}
		f := geojson.NewFeature(n.Boundary)
		f.ID = n.ID.String()
		f.Properties["name"] = n.Name
		f.Properties["incident_count"] = n.IncidentCount
		f.Properties["average_color"] = n.AverageColor
		if n.LastIncidentAt != nil {
			f.Properties["last_incident_at"] = n.LastIncidentAt
		}
		fc.Append(f)
	}
	return fc
}
