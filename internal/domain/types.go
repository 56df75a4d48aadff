package domain

import "time"

// Status is the inspection disposition of a single worksheet item.
type Status string

const (
	StatusInspected       Status = "Inspected"
	StatusNotInspected    Status = "Not Inspected"
	StatusNotPresent      Status = "Not Present"
	StatusRepairOrReplace Status = "Repair or Replace"
)

// Override reports whether the status is an explicit terminal override set by
// the inspector. Override statuses are never changed by auto-promotion.
func (s Status) Override() bool {
	return s == StatusNotPresent || s == StatusRepairOrReplace
}

// Valid reports whether s is one of the four known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusInspected, StatusNotInspected, StatusNotPresent, StatusRepairOrReplace:
		return true
	}
	return false
}

// Group selects one of the two checkbox vocabularies on an item.
type Group string

const (
	GroupMaterials  Group = "materials"
	GroupConditions Group = "conditions"
)

// ItemRecord is the persisted state of one worksheet item for one inspection.
type ItemRecord struct {
	InspectionID string
	ItemName     string
	Materials    map[string]bool
	Conditions   map[string]bool
	Comment      string
	Status       Status
}

// NewItemRecord returns a record with every field materialized to its default.
func NewItemRecord(inspectionID, itemName string) ItemRecord {
	return ItemRecord{
		InspectionID: inspectionID,
		ItemName:     itemName,
		Materials:    map[string]bool{},
		Conditions:   map[string]bool{},
		Comment:      "",
		Status:       StatusNotInspected,
	}
}

// Materialize fills in any zero-valued field so callers never see nil maps or
// an empty status on a record loaded from the wire.
func (r *ItemRecord) Materialize() {
	if r.Materials == nil {
		r.Materials = map[string]bool{}
	}
	if r.Conditions == nil {
		r.Conditions = map[string]bool{}
	}
	if r.Status == "" {
		r.Status = StatusNotInspected
	}
}

// HasSelection reports whether at least one material or condition flag is set.
func (r *ItemRecord) HasSelection() bool {
	for _, v := range r.Materials {
		if v {
			return true
		}
	}
	for _, v := range r.Conditions {
		if v {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers can hand records out without sharing maps.
func (r ItemRecord) Clone() ItemRecord {
	c := r
	c.Materials = make(map[string]bool, len(r.Materials))
	for k, v := range r.Materials {
		c.Materials[k] = v
	}
	c.Conditions = make(map[string]bool, len(r.Conditions))
	for k, v := range r.Conditions {
		c.Conditions[k] = v
	}
	return c
}

// Photo is one uploaded image associated with a worksheet item.
type Photo struct {
	ID           int64
	InspectionID string
	ItemName     string
	URL          string
}

// PropertyDetails are read-only property attributes shown on a report header.
type PropertyDetails struct {
	PropertyType  string `json:"property_type"`
	YearBuilt     int    `json:"year_built"`
	SquareFootage int    `json:"square_footage"`
	LotSize       string `json:"lot_size"`
	Bedrooms      int    `json:"bedrooms"`
	Bathrooms     int    `json:"bathrooms"`
}

// InspectionDetails are inspection-level attributes (date, weather, tests).
type InspectionDetails struct {
	InspectionDate    string `json:"inspection_date"`
	Temperature       int    `json:"temperature"`
	Weather           string `json:"weather"`
	GroundCondition   string `json:"ground_condition"`
	RainLastThreeDays bool   `json:"rain_last_three_days"`
	RadonTest         bool   `json:"radon_test"`
	MoldTest          bool   `json:"mold_test"`
}

// Address identifies the inspected property.
type Address struct {
	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state"`
	Zip    string `json:"zip"`
}

// AnalysisResult is one stored AI summary of an inspection report.
type AnalysisResult struct {
	ID           string
	InspectionID string
	Summary      string
	CreatedAt    time.Time
}
