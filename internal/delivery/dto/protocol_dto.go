package dto

import "sagra/internal/domain/entity"

type ProtocolResponse struct {
	Name    string   `json:"name"`
	Columns []string `json:"columns"`
	Rows    int      `json:"rows"`
}

type ProtocolListResponse struct {
	Protocols []ProtocolResponse     `json:"protocols"`
	Issues    []entity.ProtocolIssue `json:"issues,omitempty"`
}

type SeriesPointResponse struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

type SeriesSummaryResponse struct {
	Points           int      `json:"points"`
	Initial          float64  `json:"initial"`
	Current          float64  `json:"current"`
	VariationPercent *float64 `json:"variation_percent"`
	Mean             float64  `json:"mean"`
	Min              float64  `json:"min"`
	Max              float64  `json:"max"`
	Trend            float64  `json:"trend"`
	FirstDate        string   `json:"first_date"`
	LastDate         string   `json:"last_date"`
}

type SeriesResponse struct {
	Protocol      string                `json:"protocol"`
	ValueColumn   string                `json:"value_column"`
	ReferenceDate string                `json:"reference_date"`
	Points        []SeriesPointResponse `json:"points"`
	Summary       SeriesSummaryResponse `json:"summary"`
}
