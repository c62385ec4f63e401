package services

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/FinanzasVH/finanzas-api/models"

	"github.com/google/uuid"
)

type RuleService struct {
	db *sql.DB
}

func NewRuleService(db *sql.DB) *RuleService {
	return &RuleService{db: db}
}

// GetUserRules returns the user's custom rules in evaluation order.
// The classifier treats the returned slice as an ordered snapshot.
func (s *RuleService) GetUserRules(ctx context.Context, userID string) ([]models.ClassificationRule, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, label, pattern, type, category, is_internal, position, created_at
		FROM classification_rules
		WHERE user_id = $1
		ORDER BY position ASC, created_at ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []models.ClassificationRule
	for rows.Next() {
		var r models.ClassificationRule
		if err := rows.Scan(&r.ID, &r.UserID, &r.Label, &r.Pattern, &r.Type,
			&r.Category, &r.IsInternal, &r.Position, &r.CreatedAt); err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}
	return rules, rows.Err()
}

func (s *RuleService) Create(ctx context.Context, userID string, req models.CreateRuleRequest) (*models.ClassificationRule, error) {
	if !models.IsValidType(req.Type) {
		return nil, errors.New("invalid rule type")
	}
	// A rule with a broken pattern would silently never match; reject
	// it at save time instead.
	if _, ok := CompilePattern(req.Pattern); !ok {
		return nil, errors.New("invalid pattern: not a valid regular expression")
	}

	var maxPos sql.NullInt64
	if err := s.db.QueryRowContext(ctx,
		`SELECT MAX(position) FROM classification_rules WHERE user_id = $1`, userID).Scan(&maxPos); err != nil {
		return nil, err
	}

	rule := &models.ClassificationRule{
		ID:         uuid.New().String(),
		UserID:     userID,
		Label:      req.Label,
		Pattern:    req.Pattern,
		Type:       req.Type,
		Category:   req.Category,
		IsInternal: req.IsInternal,
		Position:   int(maxPos.Int64) + 1,
		CreatedAt:  time.Now(),
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO classification_rules (id, user_id, label, pattern, type, category, is_internal, position, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, rule.ID, rule.UserID, rule.Label, rule.Pattern, rule.Type, rule.Category,
		rule.IsInternal, rule.Position, rule.CreatedAt)
	if err != nil {
		return nil, err
	}
	return rule, nil
}

func (s *RuleService) Update(ctx context.Context, id, userID string, req models.UpdateRuleRequest) (*models.ClassificationRule, error) {
	var rule models.ClassificationRule
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, label, pattern, type, category, is_internal, position, created_at
		FROM classification_rules WHERE id = $1 AND user_id = $2
	`, id, userID).Scan(&rule.ID, &rule.UserID, &rule.Label, &rule.Pattern, &rule.Type,
		&rule.Category, &rule.IsInternal, &rule.Position, &rule.CreatedAt)
	if err != nil {
		return nil, err
	}

	if req.Label != "" {
		rule.Label = req.Label
	}
	if req.Pattern != "" {
		if _, ok := CompilePattern(req.Pattern); !ok {
			return nil, errors.New("invalid pattern: not a valid regular expression")
		}
		rule.Pattern = req.Pattern
	}
	if req.Type != "" {
		if !models.IsValidType(req.Type) {
			return nil, errors.New("invalid rule type")
		}
		rule.Type = req.Type
	}
	if req.Category != "" {
		rule.Category = req.Category
	}
	if req.IsInternal != nil {
		rule.IsInternal = *req.IsInternal
	}
	if req.Position != nil {
		rule.Position = *req.Position
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE classification_rules
		SET label = $1, pattern = $2, type = $3, category = $4, is_internal = $5, position = $6
		WHERE id = $7 AND user_id = $8
	`, rule.Label, rule.Pattern, rule.Type, rule.Category, rule.IsInternal, rule.Position, id, userID)
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

func (s *RuleService) Delete(ctx context.Context, id, userID string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM classification_rules WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

var wordRe = regexp.MustCompile(`\S+`)

// SuggestRule builds a rule draft from one statement description: the
// first three words, regex-escaped and joined loosely, make a pattern
// that survives the variable suffixes banks append to merchant names.
func SuggestRule(description string, txType models.TxType, category string) models.RuleSuggestion {
	words := wordRe.FindAllString(strings.TrimSpace(description), 3)
	escaped := make([]string, 0, len(words))
	for _, w := range words {
		escaped = append(escaped, regexp.QuoteMeta(w))
	}

	if txType == "" {
		txType = models.TypeVariableExpense
	}
	if category == "" {
		category = "Otro variable"
	}

	return models.RuleSuggestion{
		Label:    strings.TrimSpace(description),
		Pattern:  strings.Join(escaped, ".*"),
		Type:     txType,
		Category: category,
	}
}
