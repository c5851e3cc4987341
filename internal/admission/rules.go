/*
SPDX-License-Identifier: Apache-2.0
*/

package admission

import (
	"herbtrace-chaincode/internal/conservation"
	"herbtrace-chaincode/internal/domain"
	"herbtrace-chaincode/internal/validation"
)

// InitLedger writes the seed conservation limits, protected areas and quality profiles.
func (e *Engine) InitLedger() error {
	if err := conservation.Seed(e.registry); err != nil {
		return e.fail(KindRule, err)
	}
	e.logger.Info("ledger initialised",
		"limits", len(conservation.SeedLimits),
		"areas", len(conservation.SeedAreas),
		"profiles", len(conservation.SeedProfiles))
	return nil
}

// SetConservationLimit creates or replaces the limit for a species.
func (e *Engine) SetConservationLimit(in domain.ConservationLimit) (*domain.ConservationLimit, error) {
	limit, err := e.validator.ConservationLimit(in)
	if err != nil {
		return nil, e.fail(KindRule, err)
	}
	if err := e.registry.SetLimit(limit); err != nil {
		return nil, e.fail(KindRule, err)
	}
	limit.DocType = domain.DocConservationLimit
	e.logger.Info("conservation limit set", "species", limit.Species, "daily_limit", limit.DailyLimit, "uncapped", limit.Uncapped,
		"season_start", limit.SeasonStart, "season_end", limit.SeasonEnd)
	return &limit, nil
}

// GetConservationLimit returns the effective limit, which is the default policy
// for species without one.
func (e *Engine) GetConservationLimit(species string) (*domain.ConservationLimit, error) {
	species = validation.NormalizeSpecies(species)
	if species == "" {
		return nil, domain.Malformed("invalid species: this field is required")
	}
	limit, err := e.registry.Limit(species)
	if err != nil {
		return nil, err
	}
	return &limit, nil
}

// RegisterProtectedArea creates or replaces a protected area.
func (e *Engine) RegisterProtectedArea(in domain.ProtectedArea) (*domain.ProtectedArea, error) {
	area, err := e.validator.ProtectedArea(in)
	if err != nil {
		return nil, e.fail(KindRule, err)
	}
	if err := e.registry.RegisterArea(area); err != nil {
		return nil, e.fail(KindRule, err)
	}
	area.DocType = domain.DocProtectedArea
	e.logger.Info("protected area registered", "area_id", area.ID, "restrictions", area.Restrictions)
	return &area, nil
}

func (e *Engine) ListProtectedAreas() ([]domain.ProtectedArea, error) {
	return e.registry.ProtectedAreas()
}

// SetQualityProfile creates or replaces the quality thresholds for a species.
func (e *Engine) SetQualityProfile(in domain.QualityProfile) (*domain.QualityProfile, error) {
	profile, err := e.validator.QualityProfile(in)
	if err != nil {
		return nil, e.fail(KindRule, err)
	}
	if err := e.registry.SetProfile(profile); err != nil {
		return nil, e.fail(KindRule, err)
	}
	profile.DocType = domain.DocQualityProfile
	e.logger.Info("quality profile set", "species", profile.Species)
	return &profile, nil
}
