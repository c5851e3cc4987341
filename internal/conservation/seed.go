/*
SPDX-License-Identifier: Apache-2.0
*/

package conservation

import "herbtrace-chaincode/internal/domain"

// SeedLimits are the conservation limits written by InitLedger.
var SeedLimits = []domain.ConservationLimit{
	{Species: "ASHWAGANDHA", DailyLimit: 100, Unit: "kg", SeasonStart: "10-01", SeasonEnd: "03-31"},
	{Species: "BRAHMI", DailyLimit: 30, Unit: "kg", SeasonStart: "07-01", SeasonEnd: "09-30"},
	{Species: "TULSI", DailyLimit: 50, Unit: "kg", SeasonStart: "01-01", SeasonEnd: "12-31"},
	{Species: "SHATAVARI", DailyLimit: 40, Unit: "kg", SeasonStart: "11-01", SeasonEnd: "02-28"},
}

// SeedAreas are the protected areas written by InitLedger.
var SeedAreas = []domain.ProtectedArea{
	{
		ID:   "PA_SILENT_VALLEY",
		Name: "Silent Valley National Park",
		Polygon: []domain.GeoPoint{
			{Latitude: 11.05, Longitude: 76.37},
			{Latitude: 11.05, Longitude: 76.52},
			{Latitude: 11.22, Longitude: 76.52},
			{Latitude: 11.22, Longitude: 76.37},
		},
		Restrictions: []string{"no collection"},
	},
	{
		ID:   "PA_NILGIRI_BUFFER",
		Name: "Nilgiri Biosphere Buffer",
		Polygon: []domain.GeoPoint{
			{Latitude: 11.30, Longitude: 76.40},
			{Latitude: 11.30, Longitude: 76.80},
			{Latitude: 11.60, Longitude: 76.80},
			{Latitude: 11.60, Longitude: 76.40},
		},
		Restrictions: []string{"no collection:SHATAVARI", "permit required"},
	},
}

// SeedProfiles are the species quality profiles written by InitLedger.
var SeedProfiles = []domain.QualityProfile{
	{Species: "ASHWAGANDHA", MaxMoisture: 12, MaxLead: 10, MaxMercury: 1, MaxArsenic: 3, MaxTotalPlateCount: 100000, MaxYeastMold: 1000},
	{Species: "BRAHMI", MaxMoisture: 10, MaxLead: 10, MaxMercury: 1, MaxArsenic: 3, MaxTotalPlateCount: 50000, MaxYeastMold: 500},
}

// Seed writes the seed limits, areas and profiles through r.
func Seed(r *Registry) error {
	for _, limit := range SeedLimits {
		if err := r.SetLimit(limit); err != nil {
			return err
		}
	}
	for _, area := range SeedAreas {
		if err := r.RegisterArea(area); err != nil {
			return err
		}
	}
	for _, profile := range SeedProfiles {
		if err := r.SetProfile(profile); err != nil {
			return err
		}
	}
	return nil
}
