// Package domain contains core business entities and rules.
package domain

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

// ProverbEntity names proverb records in errors.
const ProverbEntity = "proverb"

// MaxListLimit caps how many proverbs one list page may hold.
const MaxListLimit = 100

// MoodCategory is the emotional register a proverb is filed under.
type MoodCategory string

// Mood categories.
const (
	MoodUplifting  MoodCategory = "uplifting"
	MoodComforting MoodCategory = "comforting"
	MoodMotivating MoodCategory = "motivating"
	MoodCalming    MoodCategory = "calming"
	MoodEmpowering MoodCategory = "empowering"
)

// Valid reports whether m is one of the known mood categories.
func (m MoodCategory) Valid() bool {
	switch m {
	case MoodUplifting, MoodComforting, MoodMotivating, MoodCalming, MoodEmpowering:
		return true
	default:
		return false
	}
}

// ProverbDetails holds the client-supplied content of a proverb.
// It is what create and replace operations accept.
type ProverbDetails struct {
	OriginalText        string
	EnglishTranslation  string
	Language            string
	Country             string
	LiteralMeaning      string
	MetaphoricalMeaning string
	UsageScenarios      string
	LifeLesson          string
	TherapeuticValue    string
	SuccessStories      string
	RelevantSituations  []string
	MoodCategory        MoodCategory
}

// Proverb is a stored proverb record.
// ID is assigned by the store and CreatedAt is set once at creation.
type Proverb struct {
	ID string
	ProverbDetails
	CreatedAt time.Time
}

// Validate checks the required fields and, when strictSituations is set,
// that every relevant situation belongs to the vocabulary.
// All problems are reported together, joined with errors.Join.
func (d *ProverbDetails) Validate(strictSituations bool) error {
	var errs []error

	required := []struct {
		field string
		value string
	}{
		{"originalText", d.OriginalText},
		{"language", d.Language},
		{"country", d.Country},
		{"moodCategory", string(d.MoodCategory)},
	}

	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			errs = append(errs, NewValidationError(r.field, "is required"))
		}
	}

	if d.MoodCategory != "" && !d.MoodCategory.Valid() {
		errs = append(errs, NewValidationErrorWithValue("moodCategory",
			"must be one of: uplifting, comforting, motivating, calming, empowering", d.MoodCategory))
	}

	if strictSituations {
		for _, tag := range d.RelevantSituations {
			if !IsKnownSituation(tag) {
				errs = append(errs, NewValidationErrorWithValue("relevantSituations",
					fmt.Sprintf("unknown situation %q", tag), tag))

				break
			}
		}
	}

	return errors.Join(errs...)
}

// Normalize replaces a nil situation list with an empty one so records
// always carry an array.
func (d *ProverbDetails) Normalize() {
	if d.RelevantSituations == nil {
		d.RelevantSituations = []string{}
	}
}

// ListCursor marks the last proverb of a page; the next page starts after it.
type ListCursor struct {
	CreatedAt time.Time
	ID        string
}

// ListOptions narrows a proverb listing.
// A zero Limit returns every record; Fields restricts which fields are loaded.
type ListOptions struct {
	Limit  int
	After  *ListCursor
	Fields []string
}

// IsZero reports whether the options request the full, unprojected listing.
func (o ListOptions) IsZero() bool {
	return o.Limit == 0 && o.After == nil && len(o.Fields) == 0
}

// ProverbPage is one page of a listing.
type ProverbPage struct {
	Items []Proverb
	Total int64
	Next  *ListCursor
}

// ProverbFields are the field names a listing may be projected to.
var ProverbFields = []string{
	"id",
	"originalText",
	"englishTranslation",
	"language",
	"country",
	"literalMeaning",
	"metaphoricalMeaning",
	"usageScenarios",
	"lifeLesson",
	"therapeuticValue",
	"successStories",
	"relevantSituations",
	"moodCategory",
	"createdAt",
}

// Validate checks limit bounds and projection field names.
func (o ListOptions) Validate() error {
	var errs []error

	if o.Limit < 0 || o.Limit > MaxListLimit {
		errs = append(errs, NewValidationErrorWithValue("limit",
			fmt.Sprintf("must be between 1 and %d", MaxListLimit), o.Limit))
	}

	if o.After != nil && o.Limit == 0 {
		errs = append(errs, NewValidationError("cursor", "requires limit"))
	}

	for _, f := range o.Fields {
		if !slices.Contains(ProverbFields, f) {
			errs = append(errs, NewValidationErrorWithValue("fields",
				fmt.Sprintf("unknown field %q", f), f))

			break
		}
	}

	return errors.Join(errs...)
}
