package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"herbtrace-chaincode/internal/domain"
)

func validEvent() domain.CollectionEvent {
	return domain.CollectionEvent{
		CollectorID:    "FARMER_1",
		CollectorType:  "wild",
		Species:        " ashwagandha ",
		Quantity:       12.5,
		CollectionDate: "2025-01-15",
		Location:       domain.GeoPoint{Latitude: 26.9, Longitude: 75.8},
	}
}

func TestCollectionEventNormalises(t *testing.T) {
	got, err := New().CollectionEvent(validEvent())
	require.NoError(t, err)
	assert.Equal(t, "ASHWAGANDHA", got.Species)
	assert.Equal(t, domain.CollectorWild, got.CollectorType)
	assert.Equal(t, DefaultUnit, got.Unit)
}

func TestCollectionEventInvalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.CollectionEvent)
		want   string
	}{
		{"zero quantity", func(e *domain.CollectionEvent) { e.Quantity = 0 }, "invalid quantity: must be greater than 0"},
		{"negative quantity", func(e *domain.CollectionEvent) { e.Quantity = -3 }, "invalid quantity"},
		{"missing species", func(e *domain.CollectionEvent) { e.Species = "  " }, "invalid species: this field is required"},
		{"bad date", func(e *domain.CollectionEvent) { e.CollectionDate = "15/01/2025" }, "invalid collectionDate: must be a YYYY-MM-DD date"},
		{"latitude out of range", func(e *domain.CollectionEvent) { e.Location.Latitude = 91 }, "invalid location.latitude: must be at most 90"},
		{"unknown collector type", func(e *domain.CollectionEvent) { e.CollectorType = "HOBBY" }, "invalid collectorType: must be one of CULTIVATED WILD"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := validEvent()
			tt.mutate(&e)
			_, err := New().CollectionEvent(e)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrMalformed))
			assert.True(t, errors.Is(err, domain.ErrRejected))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestMultipleFieldErrorsJoined(t *testing.T) {
	_, err := New().CollectionEvent(domain.CollectionEvent{CollectorType: "WILD", CollectionDate: "2025-01-15", Species: "TULSI"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid collectorId: this field is required; invalid quantity")
}

func TestConservationLimitMonthDay(t *testing.T) {
	v := New()

	got, err := v.ConservationLimit(domain.ConservationLimit{Species: "brahmi", DailyLimit: 30, SeasonStart: "07-01", SeasonEnd: "09-30"})
	require.NoError(t, err)
	assert.Equal(t, "BRAHMI", got.Species)

	_, err = v.ConservationLimit(domain.ConservationLimit{Species: "BRAHMI", SeasonStart: "13-01", SeasonEnd: "09-30"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid seasonStart: must be a MM-DD calendar day")

	_, err = v.ConservationLimit(domain.ConservationLimit{Species: "BRAHMI", SeasonStart: "02-29", SeasonEnd: "02-31"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid seasonEnd")
	assert.NotContains(t, err.Error(), "seasonStart")
}

func TestProtectedAreaNeedsThreeVertices(t *testing.T) {
	_, err := New().ProtectedArea(domain.ProtectedArea{
		ID:      "PA_1",
		Name:    "Line",
		Polygon: []domain.GeoPoint{{Latitude: 1, Longitude: 1}, {Latitude: 2, Longitude: 2}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid polygon: must have at least 3 entries")
}

func TestProtectedAreaIDMustBeScannable(t *testing.T) {
	square := []domain.GeoPoint{{Latitude: 0, Longitude: 0}, {Latitude: 0, Longitude: 1}, {Latitude: 1, Longitude: 1}}

	for _, id := range []string{"~JAIPUR", "PA_ÉCRINS"} {
		_, err := New().ProtectedArea(domain.ProtectedArea{ID: id, Name: "Reserve", Polygon: square})
		assert.NoError(t, err, id)
	}

	_, err := New().ProtectedArea(domain.ProtectedArea{ID: "PA_\U0010FFFF", Name: "Reserve", Polygon: square})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid id: must not contain U+0000 or U+10FFFF")
}

func TestProductBatchExpiryOrder(t *testing.T) {
	b := domain.ProductBatch{ProductName: "Powder", Species: "tulsi", ManufacturerID: "MFG_1", CreationDate: "2025-02-01", ExpiryDate: "2025-01-01"}
	_, err := New().ProductBatch(b)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrMalformed))

	b.ExpiryDate = "2027-02-01"
	got, err := New().ProductBatch(b)
	require.NoError(t, err)
	assert.Equal(t, "TULSI", got.Species)
}

func TestProcessingStepDefaults(t *testing.T) {
	got, err := New().ProcessingStep(domain.ProcessingStep{BatchID: "BATCH_1", ProcessorID: "PROC_CO", ProcessType: "drying", InputQuantity: 10, OutputQuantity: 8})
	require.NoError(t, err)
	assert.Equal(t, "DRYING", got.ProcessType)
	assert.NotNil(t, got.Parameters)

	_, err = New().ProcessingStep(domain.ProcessingStep{BatchID: "BATCH_1", ProcessorID: "PROC_CO", ProcessType: "DRYING", InputQuantity: -1})
	assert.Error(t, err)
}

func TestDecode(t *testing.T) {
	var e domain.CollectionEvent
	require.NoError(t, Decode(`{"species":"TULSI","quantity":2}`, &e))
	assert.Equal(t, 2.0, e.Quantity)

	err := Decode(`{"species":"TULSI","colour":"green"}`, &e)
	assert.True(t, errors.Is(err, domain.ErrMalformed))

	err = Decode(`{"species":`, &e)
	assert.True(t, errors.Is(err, domain.ErrMalformed))

	err = Decode(`{} {}`, &e)
	assert.True(t, errors.Is(err, domain.ErrMalformed))
}

func TestDate(t *testing.T) {
	assert.NoError(t, Date("fromDate", ""))
	assert.NoError(t, Date("fromDate", "2025-03-01"))
	err := Date("toDate", "2025-3-1")
	require.Error(t, err)
	assert.Equal(t, "invalid toDate: must be a YYYY-MM-DD date", err.Error())
}
