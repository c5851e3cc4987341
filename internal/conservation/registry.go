/*
SPDX-License-Identifier: Apache-2.0
*/

// Package conservation holds the ledger-resident rules admission is checked
// against: per-species conservation limits, protected areas and quality profiles.
package conservation

import (
	"herbtrace-chaincode/internal/domain"
	"herbtrace-chaincode/internal/ledger"
	"herbtrace-chaincode/internal/quality"
	"herbtrace-chaincode/internal/season"
)

// DefaultLimit is the policy for species without a configured limit: no daily cap
// and collection allowed all year.
var DefaultLimit = domain.ConservationLimit{
	DocType:     domain.DocConservationLimit,
	Species:     "DEFAULT",
	Uncapped:    true,
	SeasonStart: season.YearRound.Start,
	SeasonEnd:   season.YearRound.End,
}

// Registry reads and writes conservation rules in the ledger.
type Registry struct {
	store ledger.Store
}

func NewRegistry(store ledger.Store) *Registry {
	return &Registry{store: store}
}

// Limit returns the configured limit for species, or DefaultLimit.
func (r *Registry) Limit(species string) (domain.ConservationLimit, error) {
	var limit domain.ConservationLimit
	found, err := ledger.GetJSON(r.store, ledger.Key(ledger.PrefixLimit, species), &limit)
	if err != nil {
		return domain.ConservationLimit{}, err
	}
	if !found {
		def := DefaultLimit
		def.Species = species
		return def, nil
	}
	return limit, nil
}

// Window returns the collection season of limit.
func Window(limit domain.ConservationLimit) season.Window {
	return season.Window{Start: limit.SeasonStart, End: limit.SeasonEnd}
}

func (r *Registry) SetLimit(limit domain.ConservationLimit) error {
	limit.DocType = domain.DocConservationLimit
	return ledger.PutJSON(r.store, ledger.Key(ledger.PrefixLimit, limit.Species), limit)
}

// ProtectedAreas lists every registered protected area.
func (r *Registry) ProtectedAreas() ([]domain.ProtectedArea, error) {
	return ledger.Collect[domain.ProtectedArea](r.store, ledger.Selector{DocType: domain.DocProtectedArea})
}

func (r *Registry) RegisterArea(area domain.ProtectedArea) error {
	area.DocType = domain.DocProtectedArea
	if area.Restrictions == nil {
		area.Restrictions = []string{}
	}
	return ledger.PutJSON(r.store, ledger.Key(ledger.PrefixArea, area.ID), area)
}

// Profile returns the quality profile for species, or quality.DefaultProfile.
func (r *Registry) Profile(species string) (domain.QualityProfile, error) {
	var profile domain.QualityProfile
	found, err := ledger.GetJSON(r.store, ledger.Key(ledger.PrefixProfile, species), &profile)
	if err != nil {
		return domain.QualityProfile{}, err
	}
	if !found {
		return quality.DefaultProfile, nil
	}
	return profile, nil
}

func (r *Registry) SetProfile(profile domain.QualityProfile) error {
	profile.DocType = domain.DocQualityProfile
	return ledger.PutJSON(r.store, ledger.Key(ledger.PrefixProfile, profile.Species), profile)
}
