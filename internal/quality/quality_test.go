package quality

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"herbtrace-chaincode/internal/domain"
)

func passing() domain.QualityMeasurements {
	return domain.QualityMeasurements{
		Moisture:          8.5,
		PesticideResidues: []string{},
		HeavyMetals:       domain.HeavyMetals{Lead: 2, Mercury: 0.1, Arsenic: 0.5},
		Microbiology:      domain.Microbiology{TotalPlateCount: 5000, YeastMold: 100},
		DNABarcode:        domain.DNABarcode{SpeciesMatch: true, SequenceID: "ITS2-0042"},
	}
}

func TestAllCriteriaPass(t *testing.T) {
	ev := Evaluate(passing(), DefaultProfile, "PREMIUM")
	assert.True(t, ev.OverallPassed)
	assert.Equal(t, "PREMIUM", ev.CertificationLevel)
	assert.Equal(t, domain.QualityResults{
		MoisturePassed:     true,
		PesticidesPassed:   true,
		HeavyMetalsPassed:  true,
		MicrobiologyPassed: true,
		DNABarcodePassed:   true,
	}, ev.Results)
}

func TestDefaultCertificationLevel(t *testing.T) {
	assert.Equal(t, DefaultCertificationLevel, Evaluate(passing(), DefaultProfile, "").CertificationLevel)
}

func TestMoistureBoundary(t *testing.T) {
	m := passing()
	m.Moisture = DefaultProfile.MaxMoisture
	assert.True(t, Evaluate(m, DefaultProfile, "").Results.MoisturePassed)

	m.Moisture = DefaultProfile.MaxMoisture + 0.01
	ev := Evaluate(m, DefaultProfile, "PREMIUM")
	assert.False(t, ev.Results.MoisturePassed)
	assert.False(t, ev.OverallPassed)
	assert.Equal(t, domain.CertificationFailed, ev.CertificationLevel)
}

func TestSingleFailureFlipsOnlyItsFlag(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*domain.QualityMeasurements)
		flag   func(domain.QualityResults) bool
	}{
		{"moisture", func(m *domain.QualityMeasurements) { m.Moisture = 30 },
			func(r domain.QualityResults) bool { return r.MoisturePassed }},
		{"pesticides", func(m *domain.QualityMeasurements) { m.PesticideResidues = []string{"chlorpyrifos"} },
			func(r domain.QualityResults) bool { return r.PesticidesPassed }},
		{"lead", func(m *domain.QualityMeasurements) { m.HeavyMetals.Lead = 10.5 },
			func(r domain.QualityResults) bool { return r.HeavyMetalsPassed }},
		{"mercury", func(m *domain.QualityMeasurements) { m.HeavyMetals.Mercury = 1.2 },
			func(r domain.QualityResults) bool { return r.HeavyMetalsPassed }},
		{"arsenic", func(m *domain.QualityMeasurements) { m.HeavyMetals.Arsenic = 3.01 },
			func(r domain.QualityResults) bool { return r.HeavyMetalsPassed }},
		{"plate count", func(m *domain.QualityMeasurements) { m.Microbiology.TotalPlateCount = 100001 },
			func(r domain.QualityResults) bool { return r.MicrobiologyPassed }},
		{"yeast and mold", func(m *domain.QualityMeasurements) { m.Microbiology.YeastMold = 1001 },
			func(r domain.QualityResults) bool { return r.MicrobiologyPassed }},
		{"dna barcode", func(m *domain.QualityMeasurements) { m.DNABarcode.SpeciesMatch = false },
			func(r domain.QualityResults) bool { return r.DNABarcodePassed }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := passing()
			tc.mutate(&m)
			ev := Evaluate(m, DefaultProfile, "PREMIUM")

			assert.False(t, ev.OverallPassed)
			assert.False(t, tc.flag(ev.Results))

			passed := 0
			for _, ok := range []bool{
				ev.Results.MoisturePassed,
				ev.Results.PesticidesPassed,
				ev.Results.HeavyMetalsPassed,
				ev.Results.MicrobiologyPassed,
				ev.Results.DNABarcodePassed,
			} {
				if ok {
					passed++
				}
			}
			assert.Equal(t, 4, passed, "other criteria are unaffected")
		})
	}
}

func TestSpeciesProfileOverridesDefault(t *testing.T) {
	strict := DefaultProfile
	strict.Species = "BRAHMI"
	strict.MaxMoisture = 8

	m := passing()
	m.Moisture = 10
	assert.True(t, Evaluate(m, DefaultProfile, "").OverallPassed)
	assert.False(t, Evaluate(m, strict, "").OverallPassed)
}

func TestApplyFillsDerivedFields(t *testing.T) {
	test := domain.QualityTest{ID: "QT_1", Measurements: passing(), CertificationLevel: "ORGANIC"}
	got := Apply(test, DefaultProfile)
	assert.True(t, got.OverallPassed)
	assert.Equal(t, "ORGANIC", got.CertificationLevel)
	assert.True(t, got.Results.DNABarcodePassed)
}
