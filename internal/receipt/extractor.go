// Package receipt extracts structured transaction candidates from the
// free-form text a vision model returns for a receipt image. The text is
// expected to contain one JSON array of transaction-shaped objects buried
// in surrounding prose.
package receipt

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"tally/internal/dates"
	apperrors "tally/internal/errors"
	"tally/internal/money"
)

// ParsedTransaction is one normalized transaction candidate. Candidates
// are presented to the user for review and edit; the extractor never
// writes to the ledger itself.
type ParsedTransaction struct {
	Item      string    `json:"item"`
	Tags      []string  `json:"tags"`
	Quantity  float64   `json:"quantity"`
	Amount    int64     `json:"amount"`
	Category  string    `json:"category"`
	StoreName string    `json:"store_name"`
	Date      time.Time `json:"date"`
}

// RecordError reports a single record that failed normalization. Sibling
// records in the same array are unaffected.
type RecordError struct {
	Index int    `json:"index"`
	Err   string `json:"error"`
}

// Result carries the surviving candidates plus any per-record failures.
type Result struct {
	Records  []ParsedTransaction `json:"records"`
	Rejected []RecordError       `json:"rejected,omitempty"`
}

// Extractor turns free-form model output into transaction candidates.
// It is an interface so the extraction strategy (regex scan vs. structured
// model output) can be swapped without touching callers.
type Extractor interface {
	Extract(text string) (*Result, error)
}

// arrayPattern matches a bracket-delimited array of objects, spanning
// newlines, stopping at the first closing bracket that completes the
// array.
var arrayPattern = regexp.MustCompile(`\[\s*\{[^\]]*\}\s*\]`)

// RegexExtractor scans text for candidate JSON arrays and strict-parses
// them in order of appearance, first parse wins.
type RegexExtractor struct{}

// NewRegexExtractor creates the default Extractor.
func NewRegexExtractor() *RegexExtractor { return &RegexExtractor{} }

// rawRecord mirrors the keys the vision prompt asks for. The legacy
// "Item Type" key and the newer "Tags" key are both accepted.
type rawRecord struct {
	Item      string `json:"Item"`
	ItemType  string `json:"Item Type"`
	Tags      string `json:"Tags"`
	Quantity  any    `json:"Quantity"`
	Amount    any    `json:"Amount"`
	Category  string `json:"Category"`
	StoreName string `json:"Store Name"`
	Date      string `json:"Date"`
}

// Extract finds the first substring that parses as a JSON array of
// objects and normalizes each record. Returns ErrExtractionFailed when no
// candidate parses; individual bad records land in Result.Rejected
// without discarding the batch.
func (e *RegexExtractor) Extract(text string) (*Result, error) {
	var records []rawRecord
	found := false
	for _, candidate := range arrayPattern.FindAllString(text, -1) {
		if err := json.Unmarshal([]byte(candidate), &records); err == nil {
			found = true
			break
		}
	}
	if !found {
		return nil, apperrors.ErrExtractionFailed
	}

	result := &Result{Records: []ParsedTransaction{}}
	for i, raw := range records {
		parsed, err := normalizeRecord(raw)
		if err != nil {
			result.Rejected = append(result.Rejected, RecordError{Index: i, Err: err.Error()})
			continue
		}
		result.Records = append(result.Records, parsed)
	}
	return result, nil
}

// normalizeRecord coerces one raw record. Receipt dates are strictly
// DD-MM-YYYY; an unparseable date fails the record, not the batch.
func normalizeRecord(raw rawRecord) (ParsedTransaction, error) {
	date, err := dates.ParseStrictDayFirst(raw.Date)
	if err != nil {
		return ParsedTransaction{}, apperrors.WithMessage(apperrors.ErrInvalidRecord,
			fmt.Sprintf("record %q: unparseable date %q", raw.Item, raw.Date))
	}

	tagField := raw.Tags
	if tagField == "" {
		tagField = raw.ItemType
	}

	return ParsedTransaction{
		Item:      raw.Item,
		Tags:      splitTags(tagField),
		Quantity:  numericPrefix(raw.Quantity, 1.0),
		Amount:    money.FromFloat(numericPrefix(raw.Amount, 0)),
		Category:  raw.Category,
		StoreName: raw.StoreName,
		Date:      date,
	}, nil
}

var numberPrefix = regexp.MustCompile(`\d+\.?\d*`)

// numericPrefix coerces a bare number or a string like "2 pcs" or
// "0.5 kg" to its leading numeric value, falling back to def when no
// digits are present.
func numericPrefix(v any, def float64) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case string:
		if m := numberPrefix.FindString(val); m != "" {
			if f, err := strconv.ParseFloat(m, 64); err == nil {
				return f
			}
		}
	}
	return def
}

// splitTags splits a comma-delimited tag field, trimming whitespace and
// dropping empty fragments.
func splitTags(field string) []string {
	if field == "" {
		return nil
	}
	var out []string
	for _, t := range strings.Split(field, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
