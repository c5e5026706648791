// Package catalog selects interview questions from the embedded bank.
// Selection is deterministic for a given seed so session replays and tests
// can pin the outcome.
package catalog

import (
	_ "embed"
	"fmt"
	"math/rand"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mockstage/mockstage/pkg/models"
)

//go:embed bank.yaml
var bankYAML []byte

// bankEntry is one question as stored in the bank file
type bankEntry struct {
	Text       string              `yaml:"text"`
	Type       models.QuestionType `yaml:"type"`
	Difficulty models.Difficulty   `yaml:"difficulty"`
	Keywords   []string            `yaml:"keywords"`
}

// bankFile mirrors the layout of bank.yaml
type bankFile struct {
	General   map[models.Difficulty][]bankEntry `yaml:"general"`
	Technical struct {
		Programming  map[string][]bankEntry `yaml:"programming"`
		Algorithms   []bankEntry            `yaml:"algorithms"`
		Databases    []bankEntry            `yaml:"databases"`
		SystemDesign []bankEntry            `yaml:"system_design"`
	} `yaml:"technical"`
	HR   map[models.Difficulty][]bankEntry            `yaml:"hr"`
	UPSC map[string]map[models.Difficulty][]bankEntry `yaml:"upsc"`
}

// upscCategories fixes the sampling order of the civil-services
// sub-categories.
var upscCategories = []string{"current_affairs", "ethics_integrity", "personality", "administrative", "opinion"}

// Catalog holds the parsed question bank. It is read-only after New and
// safe for concurrent use.
type Catalog struct {
	bank bankFile
}

// New parses the embedded question bank
func New() (*Catalog, error) {
	var bank bankFile
	if err := yaml.Unmarshal(bankYAML, &bank); err != nil {
		return nil, fmt.Errorf("failed to parse question bank: %w", err)
	}
	return &Catalog{bank: bank}, nil
}

// Params are the inputs to question selection
type Params struct {
	Type        models.InterviewType
	Mode        models.InterviewMode
	Difficulty  models.Difficulty
	Skills      []string
	FocusAreas  []string
	AvoidTopics []string
	Seed        int64
}

// Generate selects and orders the question set for one session. The result
// is identical for identical Params.
func (c *Catalog) Generate(p Params) []models.Question {
	rng := rand.New(rand.NewSource(p.Seed))

	var questions []models.Question
	switch {
	case p.Mode == models.ModeUPSC:
		questions = c.generateUPSC(p.Difficulty, rng)
	case p.Type == models.InterviewTypeTechnical:
		questions = c.generateTechnical(p.Difficulty, p.Skills, rng)
	case p.Type == models.InterviewTypeHR:
		questions = c.generateHR(p.Difficulty, rng)
	default:
		questions = c.generateGeneral(p.Difficulty, rng)
	}

	questions = prioritizeFocusAreas(questions, p.FocusAreas)
	questions = dropAvoidTopics(questions, p.AvoidTopics)
	classifyDifficulty(questions)

	for i := range questions {
		questions[i].ID = i + 1
		questions[i].OrderNumber = i + 1
	}
	return questions
}

func (c *Catalog) generateGeneral(difficulty models.Difficulty, rng *rand.Rand) []models.Question {
	bank := c.bank.General
	var picked []bankEntry
	switch difficulty {
	case models.DifficultyEasy:
		picked = append(picked, sample(bank[models.DifficultyEasy], 3, rng)...)
		picked = append(picked, sample(bank[models.DifficultyMedium], 2, rng)...)
	case models.DifficultyHard:
		picked = append(picked, sample(bank[models.DifficultyMedium], 2, rng)...)
		picked = append(picked, sample(bank[models.DifficultyHard], 3, rng)...)
	default:
		picked = append(picked, sample(bank[models.DifficultyEasy], 1, rng)...)
		picked = append(picked, sample(bank[models.DifficultyMedium], 3, rng)...)
		picked = append(picked, sample(bank[models.DifficultyHard], 1, rng)...)
	}
	return toQuestions(picked, "general", difficulty)
}

func (c *Catalog) generateHR(difficulty models.Difficulty, rng *rand.Rand) []models.Question {
	bank := c.bank.HR
	var picked []bankEntry
	switch difficulty {
	case models.DifficultyEasy:
		picked = append(picked, sample(bank[models.DifficultyEasy], 3, rng)...)
		picked = append(picked, sample(bank[models.DifficultyMedium], 2, rng)...)
	case models.DifficultyHard:
		picked = append(picked, sample(bank[models.DifficultyMedium], 2, rng)...)
		picked = append(picked, sample(bank[models.DifficultyHard], 3, rng)...)
	default:
		picked = append(picked, sample(bank[models.DifficultyEasy], 2, rng)...)
		picked = append(picked, sample(bank[models.DifficultyMedium], 2, rng)...)
		picked = append(picked, sample(bank[models.DifficultyHard], 1, rng)...)
	}
	return toQuestions(picked, "hr", difficulty)
}

// maxTechnicalQuestions caps a technical session
const maxTechnicalQuestions = 8

// generateTechnical matches declared skills against the technical
// categories, takes up to two questions from each matched category, and
// backfills from algorithms and databases until the session is full.
func (c *Catalog) generateTechnical(difficulty models.Difficulty, skills []string, rng *rand.Rand) []models.Question {
	skillSet := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		skillSet[strings.ToLower(s)] = struct{}{}
	}
	hasAny := func(names ...string) bool {
		for _, n := range names {
			if _, ok := skillSet[n]; ok {
				return true
			}
		}
		return false
	}

	type category struct {
		name    string
		entries []bankEntry
	}
	var matched []category
	for _, lang := range []string{"python", "java", "javascript"} {
		if hasAny(lang) {
			matched = append(matched, category{lang, c.bank.Technical.Programming[lang]})
		}
	}
	if hasAny("algorithm", "algorithms", "data structure", "data structures", "dsa") {
		matched = append(matched, category{"algorithms", c.bank.Technical.Algorithms})
	}
	if hasAny("sql", "mongodb", "database", "databases", "postgresql", "mysql") {
		matched = append(matched, category{"databases", c.bank.Technical.Databases})
	}
	if hasAny("system design", "architecture", "scalability") {
		matched = append(matched, category{"system_design", c.bank.Technical.SystemDesign})
	}
	if len(matched) == 0 {
		matched = []category{
			{"algorithms", c.bank.Technical.Algorithms},
			{"databases", c.bank.Technical.Databases},
		}
	}
	if len(matched) > 3 {
		matched = matched[:3]
	}

	var questions []models.Question
	for _, cat := range matched {
		questions = append(questions, toQuestions(sample(cat.entries, 2, rng), cat.name, difficulty)...)
	}

	// Backfill avoids duplicates so short skill matches still fill the set.
	seen := make(map[string]struct{}, len(questions))
	for _, q := range questions {
		seen[q.Text] = struct{}{}
	}
	backfill := append(toQuestions(c.bank.Technical.Algorithms, "algorithms", difficulty),
		toQuestions(c.bank.Technical.Databases, "databases", difficulty)...)
	rng.Shuffle(len(backfill), func(i, j int) { backfill[i], backfill[j] = backfill[j], backfill[i] })
	for _, q := range backfill {
		if len(questions) >= maxTechnicalQuestions {
			break
		}
		if _, dup := seen[q.Text]; dup {
			continue
		}
		seen[q.Text] = struct{}{}
		questions = append(questions, q)
	}

	if len(questions) > maxTechnicalQuestions {
		questions = questions[:maxTechnicalQuestions]
	}
	return questions
}

// maxUPSCQuestions caps a civil-services board session
const maxUPSCQuestions = 10

func (c *Catalog) generateUPSC(difficulty models.Difficulty, rng *rand.Rand) []models.Question {
	var questions []models.Question
	for _, cat := range upscCategories {
		bank := c.bank.UPSC[cat]
		var picked []bankEntry
		switch difficulty {
		case models.DifficultyEasy:
			picked = append(picked, sample(bank[models.DifficultyEasy], 2, rng)...)
			picked = append(picked, sample(bank[models.DifficultyMedium], 1, rng)...)
		case models.DifficultyHard:
			picked = append(picked, sample(bank[models.DifficultyMedium], 1, rng)...)
			picked = append(picked, sample(bank[models.DifficultyHard], 2, rng)...)
		default:
			picked = append(picked, sample(bank[models.DifficultyEasy], 1, rng)...)
			picked = append(picked, sample(bank[models.DifficultyMedium], 2, rng)...)
			picked = append(picked, sample(bank[models.DifficultyHard], 1, rng)...)
		}
		questions = append(questions, toQuestions(picked, cat, difficulty)...)
	}

	rng.Shuffle(len(questions), func(i, j int) { questions[i], questions[j] = questions[j], questions[i] })
	if len(questions) > maxUPSCQuestions {
		questions = questions[:maxUPSCQuestions]
	}
	return questions
}

// prioritizeFocusAreas moves questions whose category or keywords match a
// focus area to the front. Relative order is preserved on both sides.
func prioritizeFocusAreas(questions []models.Question, focusAreas []string) []models.Question {
	if len(focusAreas) == 0 {
		return questions
	}
	front := make([]models.Question, 0, len(questions))
	rest := make([]models.Question, 0, len(questions))
	for _, q := range questions {
		if matchesAny(q, focusAreas) {
			front = append(front, q)
		} else {
			rest = append(rest, q)
		}
	}
	return append(front, rest...)
}

// dropAvoidTopics removes questions whose category or keywords match a
// topic the candidate has already mastered.
func dropAvoidTopics(questions []models.Question, avoidTopics []string) []models.Question {
	if len(avoidTopics) == 0 {
		return questions
	}
	kept := questions[:0]
	for _, q := range questions {
		if !matchesAny(q, avoidTopics) {
			kept = append(kept, q)
		}
	}
	return kept
}

// matchesAny reports whether any topic appears as a case-insensitive
// substring of the question's category or keywords.
func matchesAny(q models.Question, topics []string) bool {
	category := strings.ToLower(q.Category)
	for _, topic := range topics {
		t := strings.ToLower(topic)
		if t == "" {
			continue
		}
		if strings.Contains(category, t) {
			return true
		}
		for _, kw := range q.ExpectedKeywords {
			if strings.Contains(strings.ToLower(kw), t) {
				return true
			}
		}
	}
	return false
}

// sample draws up to n entries without replacement
func sample(entries []bankEntry, n int, rng *rand.Rand) []bankEntry {
	if n > len(entries) {
		n = len(entries)
	}
	idx := rng.Perm(len(entries))[:n]
	out := make([]bankEntry, n)
	for i, j := range idx {
		out[i] = entries[j]
	}
	return out
}

// toQuestions converts bank entries, filling in the category and the
// session difficulty for entries that do not carry their own.
func toQuestions(entries []bankEntry, category string, fallback models.Difficulty) []models.Question {
	questions := make([]models.Question, len(entries))
	for i, e := range entries {
		difficulty := e.Difficulty
		if difficulty == "" {
			difficulty = fallback
		}
		questions[i] = models.Question{
			Text:             e.Text,
			Type:             e.Type,
			Category:         category,
			Difficulty:       difficulty,
			ExpectedKeywords: append([]string(nil), e.Keywords...),
		}
	}
	return questions
}
