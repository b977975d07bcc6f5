package domain

// Indicator is a named socio-economic metric, e.g. a literacy rate.
type Indicator struct {
	ID   string `json:"id" db:"id" validate:"required"`
	Name string `json:"name" db:"name" validate:"required"`
	Unit string `json:"unit,omitempty" db:"unit"`
}

// Geography is a country, state or district identified by a code. Parent
// points at the containing geography; a root geography has an empty parent.
type Geography struct {
	Code   string `json:"code" db:"code" validate:"required"`
	Name   string `json:"name" db:"name" validate:"required"`
	Parent string `json:"parent,omitempty" db:"parent"`
}

// SeriesKey identifies one indicator's observations for one geography.
type SeriesKey struct {
	IndicatorID string `json:"indicator" validate:"required,indicator"`
	GeoCode     string `json:"geo" validate:"required,geocode"`
}
