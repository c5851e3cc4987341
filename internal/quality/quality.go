/*
SPDX-License-Identifier: Apache-2.0
*/

// Package quality applies species acceptance thresholds to laboratory results.
package quality

import "herbtrace-chaincode/internal/domain"

// DefaultProfile applies to every species without its own profile. Limits follow
// common pharmacopoeia values for dried herbal material: moisture in percent,
// metals in ppm, microbial counts in CFU/g.
var DefaultProfile = domain.QualityProfile{
	DocType:            domain.DocQualityProfile,
	Species:            "DEFAULT",
	MaxMoisture:        12,
	MaxLead:            10,
	MaxMercury:         1,
	MaxArsenic:         3,
	MaxTotalPlateCount: 100000,
	MaxYeastMold:       1000,
}

// DefaultCertificationLevel is used when a passing submission names no level.
const DefaultCertificationLevel = "STANDARD"

// Evaluation is the outcome of applying a profile to a set of measurements.
type Evaluation struct {
	Results            domain.QualityResults
	OverallPassed      bool
	CertificationLevel string
}

// Evaluate computes the five criteria independently; the test passes only when
// all of them do. A failed test always carries the FAILED certification level.
func Evaluate(m domain.QualityMeasurements, profile domain.QualityProfile, submittedLevel string) Evaluation {
	r := domain.QualityResults{
		MoisturePassed:   m.Moisture <= profile.MaxMoisture,
		PesticidesPassed: len(m.PesticideResidues) == 0,
		HeavyMetalsPassed: m.HeavyMetals.Lead <= profile.MaxLead &&
			m.HeavyMetals.Mercury <= profile.MaxMercury &&
			m.HeavyMetals.Arsenic <= profile.MaxArsenic,
		MicrobiologyPassed: m.Microbiology.TotalPlateCount <= profile.MaxTotalPlateCount &&
			m.Microbiology.YeastMold <= profile.MaxYeastMold,
		DNABarcodePassed: m.DNABarcode.SpeciesMatch,
	}
	overall := r.MoisturePassed && r.PesticidesPassed && r.HeavyMetalsPassed &&
		r.MicrobiologyPassed && r.DNABarcodePassed

	level := domain.CertificationFailed
	if overall {
		level = submittedLevel
		if level == "" {
			level = DefaultCertificationLevel
		}
	}
	return Evaluation{Results: r, OverallPassed: overall, CertificationLevel: level}
}

// Apply evaluates test against profile and fills in its derived fields.
func Apply(test domain.QualityTest, profile domain.QualityProfile) domain.QualityTest {
	ev := Evaluate(test.Measurements, profile, test.CertificationLevel)
	test.Results = ev.Results
	test.OverallPassed = ev.OverallPassed
	test.CertificationLevel = ev.CertificationLevel
	return test
}
