/*
SPDX-License-Identifier: Apache-2.0
*/

package domain

// Document types stored in the docType field of every ledger record.
const (
	DocCollectionEvent   = "collectionEvent"
	DocQualityTest       = "qualityTest"
	DocProcessingStep    = "processingStep"
	DocProductBatch      = "productBatch"
	DocQuotaCounter      = "quotaCounter"
	DocConservationLimit = "conservationLimit"
	DocProtectedArea     = "protectedArea"
	DocQualityProfile    = "qualityProfile"
	DocTokenIndex        = "tokenIndex"
)

// CollectorType distinguishes farm cultivation from wild harvesting.
type CollectorType string

const (
	CollectorCultivated CollectorType = "CULTIVATED"
	CollectorWild       CollectorType = "WILD"
)

// GeoPoint is a WGS84 coordinate.
type GeoPoint struct {
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
}

// CollectionEvent represents a single harvest of plant material by a collector
type CollectionEvent struct {
	DocType          string        `json:"docType"`
	ID               string        `json:"id"`
	CollectorID      string        `json:"collectorId" validate:"required"`
	CollectorType    CollectorType `json:"collectorType" validate:"required,oneof=CULTIVATED WILD"`
	Species          string        `json:"species" validate:"required"`
	Quantity         float64       `json:"quantity" validate:"gt=0"`
	Unit             string        `json:"unit" validate:"required"`
	CollectionDate   string        `json:"collectionDate" validate:"required,datetime=2006-01-02"`
	Location         GeoPoint      `json:"location"`
	Elevation        float64       `json:"elevation"`
	CollectionMethod string        `json:"collectionMethod,omitempty" metadata:",optional"`
	PlantPart        string        `json:"plantPart,omitempty" metadata:",optional"`
	MaturityStage    string        `json:"maturityStage,omitempty" metadata:",optional"`
	Status           EventStatus   `json:"status"`
	BatchID          string        `json:"batchId,omitempty" metadata:",optional"`
	RecordedAt       string        `json:"recordedAt"`
}

// HeavyMetals holds concentrations in ppm.
type HeavyMetals struct {
	Lead    float64 `json:"lead" validate:"gte=0"`
	Mercury float64 `json:"mercury" validate:"gte=0"`
	Arsenic float64 `json:"arsenic" validate:"gte=0"`
}

// Microbiology holds counts in CFU/g.
type Microbiology struct {
	TotalPlateCount float64 `json:"totalPlateCount" validate:"gte=0"`
	YeastMold       float64 `json:"yeastMold" validate:"gte=0"`
}

type DNABarcode struct {
	SpeciesMatch bool   `json:"speciesMatch"`
	SequenceID   string `json:"sequenceId,omitempty" metadata:",optional"`
}

// QualityMeasurements is the raw laboratory submission.
type QualityMeasurements struct {
	Moisture          float64      `json:"moisture" validate:"gte=0,lte=100"`
	PesticideResidues []string     `json:"pesticideResidues"`
	HeavyMetals       HeavyMetals  `json:"heavyMetals"`
	Microbiology      Microbiology `json:"microbiology"`
	DNABarcode        DNABarcode   `json:"dnaBarcode"`
}

// QualityResults holds the per-criterion outcome derived from thresholds.
type QualityResults struct {
	MoisturePassed     bool `json:"moisturePassed"`
	PesticidesPassed   bool `json:"pesticidesPassed"`
	HeavyMetalsPassed  bool `json:"heavyMetalsPassed"`
	MicrobiologyPassed bool `json:"microbiologyPassed"`
	DNABarcodePassed   bool `json:"dnaBarcodePassed"`
}

// QualityTest represents a laboratory test of a product batch
type QualityTest struct {
	DocType            string              `json:"docType"`
	ID                 string              `json:"id"`
	BatchID            string              `json:"batchId" validate:"required"`
	LabID              string              `json:"labId" validate:"required"`
	TestDate           string              `json:"testDate" validate:"required,datetime=2006-01-02"`
	Species            string              `json:"species" validate:"required"`
	Measurements       QualityMeasurements `json:"measurements"`
	Results            QualityResults      `json:"results"`
	OverallPassed      bool                `json:"overallPassed"`
	CertificationLevel string              `json:"certificationLevel"`
	RecordedAt         string              `json:"recordedAt"`
}

// ProcessParameter is one named setting of a processing step, e.g. drying temperature.
type ProcessParameter struct {
	Name  string `json:"name" validate:"required"`
	Value string `json:"value"`
}

// ProcessingStep represents a transformation applied to a batch
type ProcessingStep struct {
	DocType        string             `json:"docType"`
	ID             string             `json:"id"`
	BatchID        string             `json:"batchId" validate:"required"`
	ProcessorID    string             `json:"processorId" validate:"required"`
	ProcessType    string             `json:"processType" validate:"required"`
	InputQuantity  float64            `json:"inputQuantity" validate:"gte=0"`
	OutputQuantity float64            `json:"outputQuantity" validate:"gte=0"`
	Unit           string             `json:"unit,omitempty" metadata:",optional"`
	Parameters     []ProcessParameter `json:"parameters" validate:"dive"`
	Timestamp      string             `json:"timestamp"`
}

// ProductBatch represents a finished product tracked end to end
type ProductBatch struct {
	DocType                string      `json:"docType"`
	ID                     string      `json:"id"`
	ProductName            string      `json:"productName" validate:"required"`
	Species                string      `json:"species" validate:"required"`
	ManufacturerID         string      `json:"manufacturerId" validate:"required"`
	CreationDate           string      `json:"creationDate" validate:"required,datetime=2006-01-02"`
	ExpiryDate             string      `json:"expiryDate,omitempty" validate:"omitempty,datetime=2006-01-02" metadata:",optional"`
	Quantity               float64     `json:"quantity" validate:"gte=0"`
	Unit                   string      `json:"unit,omitempty" metadata:",optional"`
	SourceCollectionEvents []string    `json:"sourceCollectionEvents"`
	ProcessingSteps        []string    `json:"processingSteps"`
	QualityTests           []string    `json:"qualityTests"`
	VerificationToken      string      `json:"verificationToken"`
	Status                 BatchStatus `json:"status"`
}

// MonthDay is a calendar day without a year, encoded as "MM-DD".
type MonthDay string

// ConservationLimit caps how much of a species may be collected and when.
// DailyLimit is enforced unless Uncapped is set; a DailyLimit of 0 allows nothing.
type ConservationLimit struct {
	DocType     string   `json:"docType"`
	Species     string   `json:"species" validate:"required"`
	DailyLimit  float64  `json:"dailyLimit" validate:"gte=0"`
	Uncapped    bool     `json:"uncapped,omitempty" metadata:",optional"`
	Unit        string   `json:"unit,omitempty" metadata:",optional"`
	SeasonStart MonthDay `json:"seasonStart" validate:"required,monthday"`
	SeasonEnd   MonthDay `json:"seasonEnd" validate:"required,monthday"`
}

// ProtectedArea is a polygon where collection is restricted
type ProtectedArea struct {
	DocType      string     `json:"docType"`
	ID           string     `json:"id" validate:"required,keypart"`
	Name         string     `json:"name" validate:"required"`
	Polygon      []GeoPoint `json:"polygon" validate:"min=3,dive"`
	Restrictions []string   `json:"restrictions"`
}

// QualityProfile holds the acceptance thresholds for a species.
type QualityProfile struct {
	DocType            string  `json:"docType"`
	Species            string  `json:"species" validate:"required"`
	MaxMoisture        float64 `json:"maxMoisture" validate:"gte=0"`
	MaxLead            float64 `json:"maxLead" validate:"gte=0"`
	MaxMercury         float64 `json:"maxMercury" validate:"gte=0"`
	MaxArsenic         float64 `json:"maxArsenic" validate:"gte=0"`
	MaxTotalPlateCount float64 `json:"maxTotalPlateCount" validate:"gte=0"`
	MaxYeastMold       float64 `json:"maxYeastMold" validate:"gte=0"`
}

// DailyQuotaCounter is the running total a collector harvested of a species on a date.
type DailyQuotaCounter struct {
	DocType     string  `json:"docType"`
	CollectorID string  `json:"collectorId"`
	Species     string  `json:"species"`
	Date        string  `json:"date"`
	Total       float64 `json:"total"`
}

// TokenIndex resolves a verification token to its batch.
type TokenIndex struct {
	DocType string `json:"docType"`
	Token   string `json:"token"`
	BatchID string `json:"batchId"`
}

// Traceability is a point-in-time snapshot of a batch and every record linked to it.
type Traceability struct {
	Batch                  ProductBatch      `json:"batch"`
	SourceCollectionEvents []CollectionEvent `json:"sourceCollectionEvents"`
	ProcessingSteps        []ProcessingStep  `json:"processingSteps"`
	QualityTests           []QualityTest     `json:"qualityTests"`
	Warnings               []string          `json:"warnings"`
}
