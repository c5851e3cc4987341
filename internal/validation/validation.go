/*
SPDX-License-Identifier: Apache-2.0
*/

// Package validation decodes and checks client-submitted records before any
// ledger access. Every failure is a domain.ErrMalformed rejection.
package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"herbtrace-chaincode/internal/domain"
	"herbtrace-chaincode/internal/ledger"
	"herbtrace-chaincode/internal/season"
)

// DefaultUnit applies to quantities submitted without a unit.
const DefaultUnit = "kg"

// toUpper builds a fresh Caser per call; a Caser must not be shared across goroutines.
func toUpper(s string) string {
	return cases.Upper(language.Und).String(strings.TrimSpace(s))
}

// Validator wraps the validator instance
type Validator struct {
	validate *validator.Validate
}

// New returns a validator that reports JSON field names and knows the
// "monthday" and "keypart" tags.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("monthday", validateMonthDay)
	_ = v.RegisterValidation("keypart", validateKeyPart)
	return &Validator{validate: v}
}

var (
	defaultOnce      sync.Once
	defaultValidator *Validator
)

// Default returns a shared validator. It is safe for concurrent use.
func Default() *Validator {
	defaultOnce.Do(func() {
		defaultValidator = New()
	})
	return defaultValidator
}

// Struct validates s using its tags.
func (v *Validator) Struct(s any) error {
	if err := v.validate.Struct(s); err != nil {
		return formatError(err)
	}
	return nil
}

// Decode unmarshals raw into out, rejecting unknown fields and trailing data.
func Decode(raw string, out any) error {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return domain.Malformed("invalid JSON input: %v", err)
	}
	if dec.More() {
		return domain.Malformed("invalid JSON input: unexpected data after object")
	}
	return nil
}

// NormalizeSpecies trims and upper-cases a species name so lookups match
// regardless of how the client spelled it.
func NormalizeSpecies(species string) string {
	return toUpper(species)
}

// CollectionEvent normalises and validates a submitted collection event.
func (v *Validator) CollectionEvent(e domain.CollectionEvent) (domain.CollectionEvent, error) {
	e.Species = NormalizeSpecies(e.Species)
	e.CollectorID = strings.TrimSpace(e.CollectorID)
	e.CollectorType = domain.CollectorType(toUpper(string(e.CollectorType)))
	if e.Unit == "" {
		e.Unit = DefaultUnit
	}
	return e, v.Struct(e)
}

// QualityTest normalises and validates a submitted quality test.
func (v *Validator) QualityTest(t domain.QualityTest) (domain.QualityTest, error) {
	t.Species = NormalizeSpecies(t.Species)
	t.CertificationLevel = toUpper(t.CertificationLevel)
	if t.Measurements.PesticideResidues == nil {
		t.Measurements.PesticideResidues = []string{}
	}
	return t, v.Struct(t)
}

// ProcessingStep normalises and validates a submitted processing step.
func (v *Validator) ProcessingStep(s domain.ProcessingStep) (domain.ProcessingStep, error) {
	s.ProcessType = toUpper(s.ProcessType)
	if s.Unit == "" {
		s.Unit = DefaultUnit
	}
	if s.Parameters == nil {
		s.Parameters = []domain.ProcessParameter{}
	}
	return s, v.Struct(s)
}

// ProductBatch normalises and validates a batch creation request.
func (v *Validator) ProductBatch(b domain.ProductBatch) (domain.ProductBatch, error) {
	b.Species = NormalizeSpecies(b.Species)
	if b.Unit == "" {
		b.Unit = DefaultUnit
	}
	if err := v.Struct(b); err != nil {
		return b, err
	}
	if b.ExpiryDate != "" && b.ExpiryDate < b.CreationDate {
		return b, domain.Malformed("invalid expiryDate: must not be before creationDate")
	}
	return b, nil
}

// ConservationLimit normalises and validates a limit.
func (v *Validator) ConservationLimit(l domain.ConservationLimit) (domain.ConservationLimit, error) {
	l.Species = NormalizeSpecies(l.Species)
	if l.Unit == "" {
		l.Unit = DefaultUnit
	}
	return l, v.Struct(l)
}

// ProtectedArea validates a protected area.
func (v *Validator) ProtectedArea(a domain.ProtectedArea) (domain.ProtectedArea, error) {
	if a.Restrictions == nil {
		a.Restrictions = []string{}
	}
	return a, v.Struct(a)
}

// QualityProfile normalises and validates a species profile.
func (v *Validator) QualityProfile(p domain.QualityProfile) (domain.QualityProfile, error) {
	p.Species = NormalizeSpecies(p.Species)
	return p, v.Struct(p)
}

// Date checks a YYYY-MM-DD query bound. Empty is allowed.
func Date(field, value string) error {
	if value == "" {
		return nil
	}
	if _, err := season.ParseDate(value); err != nil {
		return domain.Malformed("invalid %s: must be a YYYY-MM-DD date", field)
	}
	return nil
}

// formatError turns validator errors into one rejection listing every field.
func formatError(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return domain.Malformed("invalid input: %v", err)
	}

	var buf bytes.Buffer
	for i, e := range validationErrors {
		if i > 0 {
			buf.WriteString("; ")
		}
		fmt.Fprintf(&buf, "invalid %s: %s", fieldPath(e), describe(e))
	}
	return domain.Malformed("%s", buf.String())
}

// fieldPath drops the top-level struct name from the namespace.
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func describe(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "this field is required"
	case "gt":
		return fmt.Sprintf("must be greater than %s", e.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", e.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", e.Param())
	case "min":
		return fmt.Sprintf("must have at least %s entries", e.Param())
	case "oneof":
		return fmt.Sprintf("must be one of %s", e.Param())
	case "datetime":
		return "must be a YYYY-MM-DD date"
	case "monthday":
		return "must be a MM-DD calendar day"
	case "keypart":
		return "must not contain U+0000 or U+10FFFF"
	default:
		return "invalid value"
	}
}

func validateKeyPart(fl validator.FieldLevel) bool {
	return ledger.ValidKeyPart(fl.Field().String())
}

func validateMonthDay(fl validator.FieldLevel) bool {
	_, _, err := domain.MonthDay(fl.Field().String()).Parse()
	return err == nil
}
