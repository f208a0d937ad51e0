package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// IndividualRatingDimensions are the dimensions a review of an individual
// account may carry.
var IndividualRatingDimensions = []string{
	"sportiness", "kindness", "sociability", "punctuality",
	"teamwork", "communication", "reliability", "fairPlay",
}

// BusinessRatingDimensions are the dimensions a review of a business
// (facility) account may carry.
var BusinessRatingDimensions = []string{
	"cleanliness", "equipmentQuality", "staffFriendliness", "safety",
	"amenities", "accessibility", "valueForMoney",
}

// RatingDimensionsFor returns the dimension set for an account type. The
// set is selected from the reviewee's account type, never from whichever
// fields happen to be present on a request.
func RatingDimensionsFor(userType string) []string {
	if userType == AccountTypeBusiness {
		return BusinessRatingDimensions
	}
	return IndividualRatingDimensions
}

// RatingMap stores per-dimension decimal averages as a jsonb column.
type RatingMap map[string]float64

func (m RatingMap) Value() (driver.Value, error) {
	if m == nil {
		m = RatingMap{}
	}
	return json.Marshal(m)
}

func (m *RatingMap) Scan(value interface{}) error {
	if value == nil {
		*m = RatingMap{}
		return nil
	}
	data, ok := value.([]byte)
	if !ok {
		if s, ok := value.(string); ok {
			data = []byte(s)
		} else {
			return fmt.Errorf("unsupported rating map column type %T", value)
		}
	}
	return json.Unmarshal(data, m)
}

// ReviewRatings stores the integer 1-5 scores of a single review as jsonb.
type ReviewRatings map[string]int

func (m ReviewRatings) Value() (driver.Value, error) {
	if m == nil {
		m = ReviewRatings{}
	}
	return json.Marshal(m)
}

func (m *ReviewRatings) Scan(value interface{}) error {
	if value == nil {
		*m = ReviewRatings{}
		return nil
	}
	data, ok := value.([]byte)
	if !ok {
		if s, ok := value.(string); ok {
			data = []byte(s)
		} else {
			return fmt.Errorf("unsupported review ratings column type %T", value)
		}
	}
	return json.Unmarshal(data, m)
}
