package domain

// Situation is a tag describing a life circumstance a proverb speaks to.
type Situation struct {
	Tag   string
	Label string
}

// SituationGroup is a named set of related situations.
type SituationGroup struct {
	Name       string
	Label      string
	Situations []Situation
}

// Mood is a selectable mood category with its display label.
type Mood struct {
	Category MoodCategory
	Label    string
}

var situationGroups = []SituationGroup{
	{Name: "relationships", Label: "Relationship-Related", Situations: []Situation{
		{"breakups", "Breakups and Divorce"},
		{"friendship_loss", "Loss of Friendships"},
		{"family_conflicts", "Family Conflicts"},
		{"social_isolation", "Social Isolation"},
		{"toxic_relationships", "Toxic Relationships"},
		{"grief", "Loss of Loved Ones"},
	}},
	{Name: "career", Label: "Career/Professional", Situations: []Situation{
		{"job_loss", "Job Loss"},
		{"career_setbacks", "Career Setbacks"},
		{"workplace_issues", "Workplace Harassment"},
		{"burnout", "Professional Burnout"},
		{"unfulfilling_work", "Unfulfilling Work"},
		{"financial_stress", "Financial Stress"},
	}},
	{Name: "academic", Label: "Academic/Educational", Situations: []Situation{
		{"academic_failure", "Academic Failure"},
		{"poor_performance", "Poor Performance"},
		{"school_bullying", "School Bullying"},
		{"learning_difficulties", "Learning Difficulties"},
		{"academic_pressure", "Academic Pressure"},
	}},
	{Name: "health", Label: "Health-Related", Situations: []Situation{
		{"chronic_illness", "Chronic Illness"},
		{"physical_disability", "Physical Disability"},
		{"hormonal_changes", "Hormonal Changes"},
		{"chronic_pain", "Chronic Pain"},
		{"sleep_disorders", "Sleep Disorders"},
	}},
	{Name: "identity", Label: "Identity/Personal", Situations: []Situation{
		{"low_self_esteem", "Low Self-esteem"},
		{"identity_crisis", "Identity Crisis"},
		{"body_image", "Body Image Issues"},
		{"cultural_adjustment", "Cultural Adjustment"},
		{"life_transitions", "Life Transitions"},
	}},
	{Name: "circumstantial", Label: "Circumstantial", Situations: []Situation{
		{"relocation", "Moving to New Place"},
		{"life_changes", "Major Life Changes"},
		{"financial_hardship", "Financial Hardship"},
		{"legal_problems", "Legal Problems"},
		{"housing_issues", "Housing Insecurity"},
	}},
	{Name: "trauma", Label: "Trauma-Related", Situations: []Situation{
		{"physical_abuse", "Physical Abuse"},
		{"emotional_abuse", "Emotional Abuse"},
		{"childhood_trauma", "Childhood Trauma"},
		{"accident_trauma", "Accidents"},
		{"violence_trauma", "Witnessing Violence"},
	}},
	{Name: "environmental", Label: "Seasonal/Environmental", Situations: []Situation{
		{"seasonal_depression", "Seasonal Depression"},
		{"lack_of_sunlight", "Lack of Sunlight"},
		{"geographic_isolation", "Geographic Isolation"},
		{"environmental_stress", "Environmental Stress"},
	}},
}

var knownSituations = func() map[string]struct{} {
	known := make(map[string]struct{})
	for _, g := range situationGroups {
		for _, s := range g.Situations {
			known[s.Tag] = struct{}{}
		}
	}

	return known
}()

var moods = []Mood{
	{MoodUplifting, "Uplifting"},
	{MoodComforting, "Comforting"},
	{MoodMotivating, "Motivating"},
	{MoodCalming, "Calming"},
	{MoodEmpowering, "Empowering"},
}

// SituationGroups returns the grouped relevant-situation vocabulary.
// The returned slice is a copy and may be modified by the caller.
func SituationGroups() []SituationGroup {
	out := make([]SituationGroup, len(situationGroups))
	for i, g := range situationGroups {
		out[i] = SituationGroup{
			Name:       g.Name,
			Label:      g.Label,
			Situations: append([]Situation(nil), g.Situations...),
		}
	}

	return out
}

// Moods returns the mood categories in display order.
func Moods() []Mood {
	return append([]Mood(nil), moods...)
}

// IsKnownSituation reports whether tag belongs to the situation vocabulary.
func IsKnownSituation(tag string) bool {
	_, ok := knownSituations[tag]
	return ok
}
