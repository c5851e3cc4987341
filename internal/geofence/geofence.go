/*
SPDX-License-Identifier: Apache-2.0
*/

// Package geofence rejects collection inside protected areas.
package geofence

import (
	"strings"

	"herbtrace-chaincode/internal/domain"
)

// RestrictionNoCollection is the normalised tag that forbids collection in an area.
// A tag of the form NO_COLLECTION:<SPECIES> forbids it for that species only.
const RestrictionNoCollection = "NO_COLLECTION"

// Contains reports whether p lies inside polygon using ray casting: a horizontal
// ray from p crosses the polygon's edges an odd number of times iff p is inside.
// Longitude is the x axis and latitude the y axis.
func Contains(polygon []domain.GeoPoint, p domain.GeoPoint) bool {
	if len(polygon) < 3 {
		return false
	}
	inside := false
	j := len(polygon) - 1
	for i := range polygon {
		xi, yi := polygon[i].Longitude, polygon[i].Latitude
		xj, yj := polygon[j].Longitude, polygon[j].Latitude
		if (yi > p.Latitude) != (yj > p.Latitude) {
			crossX := (xj-xi)*(p.Latitude-yi)/(yj-yi) + xi
			if p.Longitude < crossX {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

// NormalizeTag upper-cases a restriction tag and folds spaces and hyphens into
// underscores, so "no collection" and "NO_COLLECTION" compare equal. Each side of
// a species scope is trimmed on its own: "no collection: shatavari" becomes
// "NO_COLLECTION:SHATAVARI".
func NormalizeTag(tag string) string {
	fold := strings.NewReplacer(" ", "_", "-", "_")
	restriction, scope, scoped := strings.Cut(tag, ":")
	restriction = fold.Replace(strings.ToUpper(strings.TrimSpace(restriction)))
	if !scoped {
		return restriction
	}
	return restriction + ":" + fold.Replace(strings.ToUpper(strings.TrimSpace(scope)))
}

// Blocks reports whether area forbids collecting species.
func Blocks(area domain.ProtectedArea, species string) bool {
	scoped := RestrictionNoCollection + ":" + strings.ToUpper(strings.TrimSpace(species))
	for _, tag := range area.Restrictions {
		switch NormalizeTag(tag) {
		case RestrictionNoCollection, NormalizeTag(scoped):
			return true
		}
	}
	return false
}

// Validate checks p against every area and rejects the first one that both
// contains p and forbids collecting species. No areas means no restriction.
func Validate(areas []domain.ProtectedArea, p domain.GeoPoint, species string) error {
	for _, area := range areas {
		if !Blocks(area, species) {
			continue
		}
		if Contains(area.Polygon, p) {
			return domain.Reject(domain.RuleGeofence,
				"location (%.6f, %.6f) is inside protected area %s (%s) where collection is not allowed",
				p.Latitude, p.Longitude, area.Name, area.ID)
		}
	}
	return nil
}
