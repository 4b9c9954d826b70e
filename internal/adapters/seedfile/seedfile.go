// Package seedfile reads proverb seed files for bulk import.
//
// A seed file is a YAML sequence of records using the same field names as the
// HTTP API. JSON arrays are valid YAML and are accepted as well.
package seedfile

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jsamuelsen/proverb-service/internal/domain"
)

// ErrEmpty is returned for a seed file without records.
var ErrEmpty = errors.New("seed file contains no records")

// Record is one proverb as written in a seed file.
type Record struct {
	OriginalText        string   `yaml:"originalText"`
	EnglishTranslation  string   `yaml:"englishTranslation"`
	Language            string   `yaml:"language"`
	Country             string   `yaml:"country"`
	LiteralMeaning      string   `yaml:"literalMeaning"`
	MetaphoricalMeaning string   `yaml:"metaphoricalMeaning"`
	UsageScenarios      string   `yaml:"usageScenarios"`
	LifeLesson          string   `yaml:"lifeLesson"`
	TherapeuticValue    string   `yaml:"therapeuticValue"`
	SuccessStories      string   `yaml:"successStories"`
	RelevantSituations  []string `yaml:"relevantSituations"`
	MoodCategory        string   `yaml:"moodCategory"`
}

// Details converts the record to domain details.
func (r *Record) Details() domain.ProverbDetails {
	return domain.ProverbDetails{
		OriginalText:        r.OriginalText,
		EnglishTranslation:  r.EnglishTranslation,
		Language:            r.Language,
		Country:             r.Country,
		LiteralMeaning:      r.LiteralMeaning,
		MetaphoricalMeaning: r.MetaphoricalMeaning,
		UsageScenarios:      r.UsageScenarios,
		LifeLesson:          r.LifeLesson,
		TherapeuticValue:    r.TherapeuticValue,
		SuccessStories:      r.SuccessStories,
		RelevantSituations:  r.RelevantSituations,
		MoodCategory:        domain.MoodCategory(r.MoodCategory),
	}
}

// Read decodes every record from r. Unknown keys are rejected so typos in
// field names do not silently drop data.
func Read(r io.Reader) ([]domain.ProverbDetails, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var records []Record
	if err := dec.Decode(&records); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmpty
		}

		return nil, fmt.Errorf("decoding seed file: %w", err)
	}

	if len(records) == 0 {
		return nil, ErrEmpty
	}

	out := make([]domain.ProverbDetails, len(records))
	for i := range records {
		out[i] = records[i].Details()
	}

	return out, nil
}

// ReadFile opens path and reads its records.
func ReadFile(path string) ([]domain.ProverbDetails, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening seed file: %w", err)
	}
	defer f.Close()

	return Read(f)
}
