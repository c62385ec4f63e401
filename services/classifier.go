package services

import (
	"context"
	"database/sql"
	"log"
	"math"
	"regexp"
	"strings"

	"github.com/FinanzasVH/finanzas-api/models"
)

// fallbackThreshold separates "large" from "small" unmatched expenses,
// in statement currency units. At or above it an unmatched expense is
// assumed to be a fixed cost.
const fallbackThreshold = 500.0

// CompilePattern compiles a rule pattern as a case-insensitive regex.
// A bad pattern yields (nil, false) and is treated as "never matches":
// one broken user rule must not take down classification for everything
// else.
func CompilePattern(pattern string) (*regexp.Regexp, bool) {
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		log.Printf("⚠️ Invalid rule pattern %q: %v", pattern, err)
		return nil, false
	}
	return re, true
}

// Classify runs a description and amount through the custom rules, then
// the system rules, then the amount-based fallback. It is a pure
// function of its inputs.
//
// A matched rule's configured type is ignored when the amount is
// positive: the sign of money is ground truth for income, the pattern
// only disambiguates outflow categories.
func Classify(description string, amount float64, customRules []models.ClassificationRule) models.Classification {
	for _, collection := range [][]models.ClassificationRule{customRules, SystemRules} {
		for _, rule := range collection {
			re, ok := CompilePattern(rule.Pattern)
			if !ok || !re.MatchString(description) {
				continue
			}
			ruleType := rule.Type
			if amount > 0 {
				ruleType = models.TypeIncome
			}
			return models.Classification{
				Type:       ruleType,
				Category:   rule.Category,
				Confidence: models.ConfidenceRuleMatch,
				RuleLabel:  rule.Label,
				IsInternal: rule.IsInternal,
			}
		}
	}

	if amount > 0 {
		return models.Classification{Type: models.TypeIncome, Category: "Otro ingreso", Confidence: models.ConfidenceFallback}
	}
	if math.Abs(amount) >= fallbackThreshold {
		return models.Classification{Type: models.TypeFixedExpense, Category: "Otro fijo", Confidence: models.ConfidenceFallback}
	}
	return models.Classification{Type: models.TypeVariableExpense, Category: "Otro variable", Confidence: models.ConfidenceFallback}
}

// ClassifierService wraps the pure rule engine with the optional
// external classifier and its result cache. Entries that fail both rule
// collections may be deferred to the AI; a rule match on the cleaned
// description the AI returns still takes priority over its suggestion.
type ClassifierService struct {
	db *sql.DB
	ai *AIClassifier
}

func NewClassifierService(db *sql.DB) *ClassifierService {
	return &ClassifierService{
		db: db,
		ai: NewAIClassifier(),
	}
}

// ClassifyEntry classifies one parsed entry. Rules first; on fallback,
// the label-mapping cache, then the external classifier.
func (s *ClassifierService) ClassifyEntry(ctx context.Context, description string, amount float64, customRules []models.ClassificationRule) models.Classification {
	c := Classify(description, amount, customRules)
	if c.Confidence != models.ConfidenceFallback || !s.ai.Enabled() {
		return c
	}

	normalized := strings.ToLower(strings.TrimSpace(description))
	if normalized == "" {
		return c
	}

	if cached, ok := s.cachedMapping(ctx, normalized); ok {
		return applyIncomeOverride(cached, amount)
	}

	suggestion, err := s.ai.Suggest(description)
	if err != nil {
		log.Printf("[Classifier] external classifier error: %v", err)
		return c
	}

	// The AI often strips statement noise from the description; if a
	// rule matches the cleaned text, the rule wins over the suggestion.
	if suggestion.CleanDescription != "" && suggestion.CleanDescription != description {
		if rc := Classify(suggestion.CleanDescription, amount, customRules); rc.Confidence == models.ConfidenceRuleMatch {
			return rc
		}
	}

	if !models.IsValidType(suggestion.Type) {
		return c
	}

	result := models.Classification{
		Type:       suggestion.Type,
		Category:   suggestion.Category,
		Confidence: models.ConfidenceExternal,
	}

	// Write-behind cache so the same label never hits the AI twice.
	go func(label string, r models.Classification) {
		_, err := s.db.Exec(
			`INSERT INTO label_mappings (normalized_label, type, category, source)
			 VALUES ($1, $2, $3, 'AI') ON CONFLICT (normalized_label) DO NOTHING`,
			label, string(r.Type), r.Category,
		)
		if err != nil {
			log.Printf("[Classifier] failed to cache mapping: %v", err)
		}
	}(normalized, result)

	return applyIncomeOverride(result, amount)
}

func (s *ClassifierService) cachedMapping(ctx context.Context, normalized string) (models.Classification, bool) {
	var txType, category string
	err := s.db.QueryRowContext(ctx,
		`SELECT type, category FROM label_mappings WHERE normalized_label = $1`,
		normalized).Scan(&txType, &category)
	if err != nil {
		return models.Classification{}, false
	}
	if !models.IsValidType(models.TxType(txType)) {
		return models.Classification{}, false
	}
	return models.Classification{
		Type:       models.TxType(txType),
		Category:   category,
		Confidence: models.ConfidenceExternal,
	}, true
}

func applyIncomeOverride(c models.Classification, amount float64) models.Classification {
	if amount > 0 {
		c.Type = models.TypeIncome
	}
	return c
}
