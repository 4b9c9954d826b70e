package mongostore

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jsamuelsen/proverb-service/internal/domain"
)

// Stored field names. They match the JSON names clients see.
const (
	fieldID        = "_id"
	fieldCreatedAt = "createdAt"
)

// proverbFields are the client-supplied fields, written whole by $set on replace.
type proverbFields struct {
	OriginalText        string   `bson:"originalText"`
	EnglishTranslation  string   `bson:"englishTranslation"`
	Language            string   `bson:"language"`
	Country             string   `bson:"country"`
	LiteralMeaning      string   `bson:"literalMeaning"`
	MetaphoricalMeaning string   `bson:"metaphoricalMeaning"`
	UsageScenarios      string   `bson:"usageScenarios"`
	LifeLesson          string   `bson:"lifeLesson"`
	TherapeuticValue    string   `bson:"therapeuticValue"`
	SuccessStories      string   `bson:"successStories"`
	RelevantSituations  []string `bson:"relevantSituations"`
	MoodCategory        string   `bson:"moodCategory"`
}

type proverbDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Fields    proverbFields      `bson:",inline"`
	CreatedAt time.Time          `bson:"createdAt"`
}

func fieldsFromDomain(d *domain.ProverbDetails) proverbFields {
	situations := d.RelevantSituations
	if situations == nil {
		situations = []string{}
	}

	return proverbFields{
		OriginalText:        d.OriginalText,
		EnglishTranslation:  d.EnglishTranslation,
		Language:            d.Language,
		Country:             d.Country,
		LiteralMeaning:      d.LiteralMeaning,
		MetaphoricalMeaning: d.MetaphoricalMeaning,
		UsageScenarios:      d.UsageScenarios,
		LifeLesson:          d.LifeLesson,
		TherapeuticValue:    d.TherapeuticValue,
		SuccessStories:      d.SuccessStories,
		RelevantSituations:  situations,
		MoodCategory:        string(d.MoodCategory),
	}
}

func (doc *proverbDocument) toDomain() domain.Proverb {
	situations := doc.Fields.RelevantSituations
	if situations == nil {
		situations = []string{}
	}

	return domain.Proverb{
		ID: doc.ID.Hex(),
		ProverbDetails: domain.ProverbDetails{
			OriginalText:        doc.Fields.OriginalText,
			EnglishTranslation:  doc.Fields.EnglishTranslation,
			Language:            doc.Fields.Language,
			Country:             doc.Fields.Country,
			LiteralMeaning:      doc.Fields.LiteralMeaning,
			MetaphoricalMeaning: doc.Fields.MetaphoricalMeaning,
			UsageScenarios:      doc.Fields.UsageScenarios,
			LifeLesson:          doc.Fields.LifeLesson,
			TherapeuticValue:    doc.Fields.TherapeuticValue,
			SuccessStories:      doc.Fields.SuccessStories,
			RelevantSituations:  situations,
			MoodCategory:        domain.MoodCategory(doc.Fields.MoodCategory),
		},
		CreatedAt: doc.CreatedAt.UTC(),
	}
}

// storedTime rounds t up to the millisecond precision of a BSON date, so the
// stored value is never earlier than t.
func storedTime(t time.Time) time.Time {
	t = t.UTC()

	truncated := t.Truncate(time.Millisecond)
	if truncated.Before(t) {
		return truncated.Add(time.Millisecond)
	}

	return truncated
}

// projection maps client field names to a projection document. The sort
// keys are always loaded so the caller can build a continuation cursor.
func projection(fields []string) bson.D {
	proj := bson.D{{Key: fieldID, Value: 1}, {Key: fieldCreatedAt, Value: 1}}

	for _, f := range fields {
		if f == "id" || f == fieldCreatedAt {
			continue
		}

		proj = append(proj, bson.E{Key: f, Value: 1})
	}

	return proj
}

// afterCursor selects documents that sort strictly after c.
func afterCursor(c *domain.ListCursor, id primitive.ObjectID) bson.D {
	return bson.D{{Key: "$or", Value: bson.A{
		bson.D{{Key: fieldCreatedAt, Value: bson.D{{Key: "$gt", Value: c.CreatedAt}}}},
		bson.D{
			{Key: fieldCreatedAt, Value: c.CreatedAt},
			{Key: fieldID, Value: bson.D{{Key: "$gt", Value: id}}},
		},
	}}}
}
