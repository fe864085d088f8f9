package memory

import (
	"github.com/dcastillo/pageant-scoring/internal/domain/category"
	"github.com/dcastillo/pageant-scoring/internal/domain/contestant"
	"github.com/dcastillo/pageant-scoring/internal/domain/judge"
)

// SeedCategories is the default event rubric. Weights within a category sum
// to 1 so a category total stays on the raw 0..10 scale.
func SeedCategories() []category.Category {
	return []category.Category{
		{
			ID:    "cat-production",
			Label: "Production Number",
			Order: 1,
			Criteria: []category.Criterion{
				{ID: "crit-prod-energy", Label: "Energy and Projection", MaxScore: 10, Weight: 0.4, Order: 1},
				{ID: "crit-prod-choreo", Label: "Mastery of Choreography", MaxScore: 10, Weight: 0.35, Order: 2},
				{ID: "crit-prod-presence", Label: "Stage Presence", MaxScore: 10, Weight: 0.25, Order: 3},
			},
		},
		{
			ID:    "cat-sports",
			Label: "Sports Attire",
			Order: 2,
			Criteria: []category.Criterion{
				{ID: "crit-sports-bearing", Label: "Bearing and Poise", MaxScore: 10, Weight: 0.4, Order: 1},
				{ID: "crit-sports-fitness", Label: "Fitness and Form", MaxScore: 10, Weight: 0.35, Order: 2},
				{ID: "crit-sports-confidence", Label: "Confidence", MaxScore: 10, Weight: 0.25, Order: 3},
			},
		},
		{
			ID:    "cat-gown",
			Label: "Formal Wear",
			Order: 3,
			Criteria: []category.Criterion{
				{ID: "crit-gown-elegance", Label: "Elegance and Carriage", MaxScore: 10, Weight: 0.5, Order: 1},
				{ID: "crit-gown-poise", Label: "Poise", MaxScore: 10, Weight: 0.3, Order: 2},
				{ID: "crit-gown-impact", Label: "Overall Impact", MaxScore: 10, Weight: 0.2, Order: 3},
			},
		},
		{
			ID:    "cat-qa",
			Label: "Question and Answer",
			Order: 4,
			Criteria: []category.Criterion{
				{ID: "crit-qa-content", Label: "Substance of Answer", MaxScore: 10, Weight: 0.5, Order: 1},
				{ID: "crit-qa-delivery", Label: "Delivery and Composure", MaxScore: 10, Weight: 0.3, Order: 2},
				{ID: "crit-qa-wit", Label: "Spontaneity and Wit", MaxScore: 10, Weight: 0.2, Order: 3},
			},
		},
	}
}

// SeedContestants returns a small mirrored roster for local development.
func SeedContestants() []contestant.Contestant {
	return []contestant.Contestant{
		{ID: "cont-m-01", Number: 1, FullName: "Rafael Domingo", Division: contestant.DivisionMale},
		{ID: "cont-m-02", Number: 2, FullName: "Joshua Mercado", Division: contestant.DivisionMale},
		{ID: "cont-m-03", Number: 3, FullName: "Emmanuel Reyes", Division: contestant.DivisionMale},
		{ID: "cont-f-01", Number: 1, FullName: "Isabella Cruz", Division: contestant.DivisionFemale},
		{ID: "cont-f-02", Number: 2, FullName: "Sofia Ramirez", Division: contestant.DivisionFemale},
		{ID: "cont-f-03", Number: 3, FullName: "Camille Santos", Division: contestant.DivisionFemale},
	}
}

func SeedJudges() []judge.Judge {
	return []judge.Judge{
		{ID: "judge-m-01", DisplayName: "Antonio Villanueva", Division: contestant.DivisionMale, CredentialRef: "seed-judge-m-01"},
		{ID: "judge-m-02", DisplayName: "Gregorio Lim", Division: contestant.DivisionMale, CredentialRef: "seed-judge-m-02"},
		{ID: "judge-f-01", DisplayName: "Maricel Ocampo", Division: contestant.DivisionFemale, CredentialRef: "seed-judge-f-01"},
		{ID: "judge-f-02", DisplayName: "Lourdes Bautista", Division: contestant.DivisionFemale, CredentialRef: "seed-judge-f-02"},
	}
}
