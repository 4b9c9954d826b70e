package dto

import (
	"time"

	"github.com/jsamuelsen/proverb-service/internal/domain"
)

// ProverbRequest is the body of POST and PUT /api/proverbs.
// PUT is a full replacement, so both use the same rules.
type ProverbRequest struct {
	OriginalText        string   `json:"originalText" validate:"required,notempty"`
	EnglishTranslation  string   `json:"englishTranslation"`
	Language            string   `json:"language" validate:"required,notempty"`
	Country             string   `json:"country" validate:"required,notempty"`
	LiteralMeaning      string   `json:"literalMeaning"`
	MetaphoricalMeaning string   `json:"metaphoricalMeaning"`
	UsageScenarios      string   `json:"usageScenarios"`
	LifeLesson          string   `json:"lifeLesson"`
	TherapeuticValue    string   `json:"therapeuticValue"`
	SuccessStories      string   `json:"successStories"`
	RelevantSituations  []string `json:"relevantSituations"`
	MoodCategory        string   `json:"moodCategory" validate:"required,mood"`
}

// ToDomain converts the request to domain details.
func (r *ProverbRequest) ToDomain() domain.ProverbDetails {
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

// ProverbResponse is a stored proverb as returned to clients.
type ProverbResponse struct {
	ID                  string   `json:"id"`
	OriginalText        string   `json:"originalText"`
	EnglishTranslation  string   `json:"englishTranslation"`
	Language            string   `json:"language"`
	Country             string   `json:"country"`
	LiteralMeaning      string   `json:"literalMeaning"`
	MetaphoricalMeaning string   `json:"metaphoricalMeaning"`
	UsageScenarios      string   `json:"usageScenarios"`
	LifeLesson          string   `json:"lifeLesson"`
	TherapeuticValue    string   `json:"therapeuticValue"`
	SuccessStories      string   `json:"successStories"`
	RelevantSituations  []string `json:"relevantSituations"`
	MoodCategory        string   `json:"moodCategory"`
	CreatedAt           string   `json:"createdAt"`
}

// NewProverbResponse converts a domain proverb.
func NewProverbResponse(p *domain.Proverb) *ProverbResponse {
	situations := p.RelevantSituations
	if situations == nil {
		situations = []string{}
	}

	return &ProverbResponse{
		ID:                  p.ID,
		OriginalText:        p.OriginalText,
		EnglishTranslation:  p.EnglishTranslation,
		Language:            p.Language,
		Country:             p.Country,
		LiteralMeaning:      p.LiteralMeaning,
		MetaphoricalMeaning: p.MetaphoricalMeaning,
		UsageScenarios:      p.UsageScenarios,
		LifeLesson:          p.LifeLesson,
		TherapeuticValue:    p.TherapeuticValue,
		SuccessStories:      p.SuccessStories,
		RelevantSituations:  situations,
		MoodCategory:        string(p.MoodCategory),
		CreatedAt:           p.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

// NewProverbListResponse converts a page of proverbs. With fields set, each
// item only carries the named fields.
func NewProverbListResponse(items []domain.Proverb, fields []string) []any {
	out := make([]any, 0, len(items))

	for i := range items {
		resp := NewProverbResponse(&items[i])
		if len(fields) == 0 {
			out = append(out, resp)
			continue
		}

		out = append(out, resp.project(fields))
	}

	return out
}

func (r *ProverbResponse) project(fields []string) map[string]any {
	all := map[string]any{
		"id":                  r.ID,
		"originalText":        r.OriginalText,
		"englishTranslation":  r.EnglishTranslation,
		"language":            r.Language,
		"country":             r.Country,
		"literalMeaning":      r.LiteralMeaning,
		"metaphoricalMeaning": r.MetaphoricalMeaning,
		"usageScenarios":      r.UsageScenarios,
		"lifeLesson":          r.LifeLesson,
		"therapeuticValue":    r.TherapeuticValue,
		"successStories":      r.SuccessStories,
		"relevantSituations":  r.RelevantSituations,
		"moodCategory":        r.MoodCategory,
		"createdAt":           r.CreatedAt,
	}

	out := make(map[string]any, len(fields))
	for _, f := range fields {
		if v, ok := all[f]; ok {
			out[f] = v
		}
	}

	return out
}

// VocabularyResponse lists the values a proverb form offers.
type VocabularyResponse struct {
	MoodCategories []VocabularyItem `json:"moodCategories"`
	Situations     []SituationGroup `json:"situationGroups"`
}

// VocabularyItem is one selectable value and its label.
type VocabularyItem struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// SituationGroup is a labelled set of situation tags.
type SituationGroup struct {
	Name  string           `json:"name"`
	Label string           `json:"label"`
	Tags  []VocabularyItem `json:"tags"`
}

// NewVocabularyResponse converts the domain vocabulary.
func NewVocabularyResponse(moods []domain.Mood, groups []domain.SituationGroup) *VocabularyResponse {
	resp := &VocabularyResponse{
		MoodCategories: make([]VocabularyItem, 0, len(moods)),
		Situations:     make([]SituationGroup, 0, len(groups)),
	}

	for _, m := range moods {
		resp.MoodCategories = append(resp.MoodCategories, VocabularyItem{Value: string(m.Category), Label: m.Label})
	}

	for _, g := range groups {
		group := SituationGroup{Name: g.Name, Label: g.Label, Tags: make([]VocabularyItem, 0, len(g.Situations))}
		for _, s := range g.Situations {
			group.Tags = append(group.Tags, VocabularyItem{Value: s.Tag, Label: s.Label})
		}

		resp.Situations = append(resp.Situations, group)
	}

	return resp
}
