/*
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"fmt"
	"log/slog"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"

	"herbtrace-chaincode/internal/admission"
	"herbtrace-chaincode/internal/domain"
	"herbtrace-chaincode/internal/ids"
	"herbtrace-chaincode/internal/ledger"
	"herbtrace-chaincode/internal/logger"
	"herbtrace-chaincode/internal/metrics"
	"herbtrace-chaincode/internal/validation"
)

// SmartContract provides functions for recording herb provenance
type SmartContract struct {
	contractapi.Contract

	logger      *slog.Logger
	metrics     *metrics.Metrics
	richQueries bool
}

// NewSmartContract wires the contract's logger and metrics. A zero SmartContract
// is also usable and logs through slog.Default.
func NewSmartContract(log *slog.Logger, m *metrics.Metrics, richQueries bool) *SmartContract {
	return &SmartContract{logger: log, metrics: m, richQueries: richQueries}
}

// engine binds an admission engine to the current transaction. Identifiers and
// timestamps derive from the transaction so all endorsers agree on them.
func (s *SmartContract) engine(ctx contractapi.TransactionContextInterface, function string) (*admission.Engine, error) {
	store := ledger.NewFabricStore(ctx.GetStub(), ledger.WithRichQueries(s.richQueries))
	txTime, err := store.TxTime()
	if err != nil {
		return nil, err
	}
	return admission.NewEngine(store, ids.NewTxGenerator(store.TxID(), txTime),
		admission.WithEventSink(store),
		admission.WithLogger(logger.WithTx(s.logger, store.TxID(), function)),
		admission.WithMetrics(s.metrics),
	), nil
}

// InitLedger seeds conservation limits, protected areas and quality profiles
func (s *SmartContract) InitLedger(ctx contractapi.TransactionContextInterface) error {
	e, err := s.engine(ctx, "InitLedger")
	if err != nil {
		return err
	}
	return e.InitLedger()
}

// RecordCollectionEvent admits a harvest after geofence, season and quota checks
func (s *SmartContract) RecordCollectionEvent(ctx contractapi.TransactionContextInterface, eventJSON string) (*domain.CollectionEvent, error) {
	var event domain.CollectionEvent
	if err := validation.Decode(eventJSON, &event); err != nil {
		return nil, err
	}
	e, err := s.engine(ctx, "RecordCollectionEvent")
	if err != nil {
		return nil, err
	}
	return e.RecordCollectionEvent(event)
}

// RecordQualityTest evaluates a lab result and links it to its batch
func (s *SmartContract) RecordQualityTest(ctx contractapi.TransactionContextInterface, testJSON string) (*domain.QualityTest, error) {
	var test domain.QualityTest
	if err := validation.Decode(testJSON, &test); err != nil {
		return nil, err
	}
	e, err := s.engine(ctx, "RecordQualityTest")
	if err != nil {
		return nil, err
	}
	return e.RecordQualityTest(test)
}

// RecordProcessingStep records a transformation applied to a batch
func (s *SmartContract) RecordProcessingStep(ctx contractapi.TransactionContextInterface, stepJSON string) (*domain.ProcessingStep, error) {
	var step domain.ProcessingStep
	if err := validation.Decode(stepJSON, &step); err != nil {
		return nil, err
	}
	e, err := s.engine(ctx, "RecordProcessingStep")
	if err != nil {
		return nil, err
	}
	return e.RecordProcessingStep(step)
}

// CreateProductBatch creates a new batch record with a verification token
func (s *SmartContract) CreateProductBatch(ctx contractapi.TransactionContextInterface, batchJSON string) (*domain.ProductBatch, error) {
	var batch domain.ProductBatch
	if err := validation.Decode(batchJSON, &batch); err != nil {
		return nil, err
	}
	e, err := s.engine(ctx, "CreateProductBatch")
	if err != nil {
		return nil, err
	}
	return e.CreateProductBatch(batch)
}

// LinkCollectionEventToBatch adds a collection event to a batch's sources
func (s *SmartContract) LinkCollectionEventToBatch(ctx contractapi.TransactionContextInterface, eventID, batchID string) (*domain.ProductBatch, error) {
	e, err := s.engine(ctx, "LinkCollectionEventToBatch")
	if err != nil {
		return nil, err
	}
	return e.LinkCollectionEventToBatch(eventID, batchID)
}

// GetProductBatch retrieves batch details
func (s *SmartContract) GetProductBatch(ctx contractapi.TransactionContextInterface, batchID string) (*domain.ProductBatch, error) {
	e, err := s.engine(ctx, "GetProductBatch")
	if err != nil {
		return nil, err
	}
	return e.GetProductBatch(batchID)
}

// GetBatchByToken resolves a verification token from a product QR code
func (s *SmartContract) GetBatchByToken(ctx contractapi.TransactionContextInterface, token string) (*domain.ProductBatch, error) {
	e, err := s.engine(ctx, "GetBatchByToken")
	if err != nil {
		return nil, err
	}
	return e.GetBatchByToken(token)
}

// GetFullTraceability returns a batch with every linked record
func (s *SmartContract) GetFullTraceability(ctx contractapi.TransactionContextInterface, batchID string) (*domain.Traceability, error) {
	e, err := s.engine(ctx, "GetFullTraceability")
	if err != nil {
		return nil, err
	}
	return e.GetFullTraceability(batchID)
}

func (s *SmartContract) GetCollectionEvent(ctx contractapi.TransactionContextInterface, eventID string) (*domain.CollectionEvent, error) {
	e, err := s.engine(ctx, "GetCollectionEvent")
	if err != nil {
		return nil, err
	}
	return e.GetCollectionEvent(eventID)
}

func (s *SmartContract) GetQualityTest(ctx contractapi.TransactionContextInterface, testID string) (*domain.QualityTest, error) {
	e, err := s.engine(ctx, "GetQualityTest")
	if err != nil {
		return nil, err
	}
	return e.GetQualityTest(testID)
}

func (s *SmartContract) GetProcessingStep(ctx contractapi.TransactionContextInterface, stepID string) (*domain.ProcessingStep, error) {
	e, err := s.engine(ctx, "GetProcessingStep")
	if err != nil {
		return nil, err
	}
	return e.GetProcessingStep(stepID)
}

// ListCollectionEvents lists collection events by species and date range; empty arguments match all
func (s *SmartContract) ListCollectionEvents(ctx contractapi.TransactionContextInterface, species, fromDate, toDate string) ([]domain.CollectionEvent, error) {
	e, err := s.engine(ctx, "ListCollectionEvents")
	if err != nil {
		return nil, err
	}
	return e.ListCollectionEvents(species, fromDate, toDate)
}

// ListQualityTests lists quality tests by species, lab and date range; empty arguments match all
func (s *SmartContract) ListQualityTests(ctx contractapi.TransactionContextInterface, species, labID, fromDate, toDate string) ([]domain.QualityTest, error) {
	e, err := s.engine(ctx, "ListQualityTests")
	if err != nil {
		return nil, err
	}
	return e.ListQualityTests(species, labID, fromDate, toDate)
}

// GetDailyQuota returns a collector's running total for a species on a date
func (s *SmartContract) GetDailyQuota(ctx contractapi.TransactionContextInterface, collectorID, species, date string) (*domain.DailyQuotaCounter, error) {
	e, err := s.engine(ctx, "GetDailyQuota")
	if err != nil {
		return nil, err
	}
	return e.GetDailyQuota(collectorID, species, date)
}

// SetConservationLimit creates or replaces a species' daily cap and season
func (s *SmartContract) SetConservationLimit(ctx contractapi.TransactionContextInterface, limitJSON string) (*domain.ConservationLimit, error) {
	var limit domain.ConservationLimit
	if err := validation.Decode(limitJSON, &limit); err != nil {
		return nil, err
	}
	e, err := s.engine(ctx, "SetConservationLimit")
	if err != nil {
		return nil, err
	}
	return e.SetConservationLimit(limit)
}

func (s *SmartContract) GetConservationLimit(ctx contractapi.TransactionContextInterface, species string) (*domain.ConservationLimit, error) {
	e, err := s.engine(ctx, "GetConservationLimit")
	if err != nil {
		return nil, err
	}
	return e.GetConservationLimit(species)
}

// RegisterProtectedArea creates or replaces a protected area polygon
func (s *SmartContract) RegisterProtectedArea(ctx contractapi.TransactionContextInterface, areaJSON string) (*domain.ProtectedArea, error) {
	var area domain.ProtectedArea
	if err := validation.Decode(areaJSON, &area); err != nil {
		return nil, err
	}
	e, err := s.engine(ctx, "RegisterProtectedArea")
	if err != nil {
		return nil, err
	}
	return e.RegisterProtectedArea(area)
}

func (s *SmartContract) ListProtectedAreas(ctx contractapi.TransactionContextInterface) ([]domain.ProtectedArea, error) {
	e, err := s.engine(ctx, "ListProtectedAreas")
	if err != nil {
		return nil, err
	}
	return e.ListProtectedAreas()
}

// SetQualityProfile creates or replaces a species' quality thresholds
func (s *SmartContract) SetQualityProfile(ctx contractapi.TransactionContextInterface, profileJSON string) (*domain.QualityProfile, error) {
	var profile domain.QualityProfile
	if err := validation.Decode(profileJSON, &profile); err != nil {
		return nil, err
	}
	e, err := s.engine(ctx, "SetQualityProfile")
	if err != nil {
		return nil, err
	}
	return e.SetQualityProfile(profile)
}

// newChaincode builds the contract chaincode and names it for peer metadata.
func newChaincode(contract *SmartContract) (*contractapi.ContractChaincode, error) {
	cc, err := contractapi.NewChaincode(contract)
	if err != nil {
		return nil, fmt.Errorf("failed to create chaincode: %w", err)
	}
	cc.Info.Title = "herbtrace"
	cc.Info.Version = "1.0.0"
	return cc, nil
}
