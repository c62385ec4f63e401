package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/FinanzasVH/finanzas-api/models"
	"github.com/FinanzasVH/finanzas-api/utils"

	"github.com/google/uuid"
)

var (
	ErrSessionNotFound = errors.New("review session not found")
	ErrItemNotFound    = errors.New("review item not found")
	ErrUnknownField    = errors.New("unknown editable field")
)

// BlockingValidationError refuses a commit until every included
// internal-transfer item has a destination account.
type BlockingValidationError struct {
	Indices []int
}

func (e *BlockingValidationError) Error() string {
	return fmt.Sprintf("%d internal transfer item(s) have no destination account; set one or exclude them", len(e.Indices))
}

// reviewSession is the in-memory staging area for one import. It is
// owned by a single client, mutated through the service methods, and
// discarded on commit or abandon — never persisted. mu serializes item
// access: even a single client races with itself (a toggle landing
// while a commit snapshot is read).
type reviewSession struct {
	mu              sync.Mutex
	ID              string
	UserID          string
	SourceAccountID string
	BankHint        string
	Mode            string
	Items           []models.ReviewItem
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// SessionManager guards the sessions map; HTTP handlers may race on the
// same session. Stale sessions are swept by a janitor so an abandoned
// browser tab does not leak memory.
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*reviewSession
	ttl      time.Duration
}

func NewSessionManager(ttl time.Duration) *SessionManager {
	m := &SessionManager{
		sessions: make(map[string]*reviewSession),
		ttl:      ttl,
	}
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			m.sweep()
		}
	}()
	return m
}

func (m *SessionManager) put(s *reviewSession) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
}

func (m *SessionManager) get(id, userID string) (*reviewSession, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok || s.UserID != userID {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

func (m *SessionManager) remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

func (m *SessionManager) sweep() {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	for id, s := range m.sessions {
		if now.Sub(s.UpdatedAt) > m.ttl {
			delete(m.sessions, id)
		}
	}
}

// ReviewService orchestrates the import pipeline: parse, classify,
// duplicate-mark, stage for review, and finally commit the confirmed
// set to the transaction store and the transfer service.
type ReviewService struct {
	db         *sql.DB
	sessions   *SessionManager
	classifier *ClassifierService
	rules      *RuleService
	accounts   *AccountService
	txs        *TransactionService
	transfers  *TransferService
}

func NewReviewService(db *sql.DB) *ReviewService {
	return &ReviewService{
		db:         db,
		sessions:   NewSessionManager(2 * time.Hour),
		classifier: NewClassifierService(db),
		rules:      NewRuleService(db),
		accounts:   NewAccountService(db),
		txs:        NewTransactionService(db),
		transfers:  NewTransferService(db),
	}
}

// Stage parses raw statement data and builds a review session. Zero
// parsed entries is a soft failure: the session view carries a hint
// message instead of an error.
func (s *ReviewService) Stage(ctx context.Context, userID string, req models.StageRequest) (*models.SessionView, error) {
	account, err := s.accounts.RequireActive(ctx, req.SourceAccountID, userID)
	if err != nil {
		return nil, err
	}

	bankHint := req.BankHint
	if bankHint == "" {
		bankHint = account.Bank
	}

	var entries []models.RawEntry
	switch req.Mode {
	case "table":
		entries = ParseTable(req.RawText, bankHint)
	default:
		entries = ParseText(req.RawText, bankHint)
	}

	if len(entries) == 0 {
		return &models.SessionView{
			Message: "No se detectaron transacciones. Verifica el formato o el banco seleccionado.",
		}, nil
	}

	customRules, err := s.rules.GetUserRules(ctx, userID)
	if err != nil {
		return nil, err
	}
	existing, err := s.txs.List(ctx, userID, "")
	if err != nil {
		return nil, err
	}

	items := make([]models.ReviewItem, 0, len(entries))
	for _, entry := range entries {
		items = append(items, models.ReviewItem{
			ClassifiedEntry: models.ClassifiedEntry{
				RawEntry:       entry,
				Classification: s.classifier.ClassifyEntry(ctx, entry.Description, entry.Amount, customRules),
			},
			SourceAccountID: account.ID,
		})
	}
	MarkDuplicates(items, existing)

	// Default inclusion: duplicates stay out until re-included, and
	// internal transfers stay out until a destination is chosen. Both
	// defaults exist to prevent silent double-counting.
	for i := range items {
		items[i].Included = !items[i].IsDuplicateSuspect && !items[i].IsInternal
	}

	session := &reviewSession{
		ID:              uuid.New().String(),
		UserID:          userID,
		SourceAccountID: account.ID,
		BankHint:        bankHint,
		Mode:            req.Mode,
		Items:           items,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
	s.sessions.put(session)

	utils.LogImportAction("staged", session.ID, userID, len(items))
	return s.view(session), nil
}

// Get returns the current state of a session.
func (s *ReviewService) Get(userID, sessionID string) (*models.SessionView, error) {
	session, err := s.sessions.get(sessionID, userID)
	if err != nil {
		return nil, err
	}
	session.mu.Lock()
	defer session.mu.Unlock()
	return s.view(session), nil
}

// ToggleInclude flips an item's inclusion. Pure local mutation, no I/O.
func (s *ReviewService) ToggleInclude(userID, sessionID string, index int) (*models.SessionView, error) {
	session, err := s.sessions.get(sessionID, userID)
	if err != nil {
		return nil, err
	}
	session.mu.Lock()
	defer session.mu.Unlock()
	if index < 0 || index >= len(session.Items) {
		return nil, ErrItemNotFound
	}
	session.Items[index].Included = !session.Items[index].Included
	session.UpdatedAt = time.Now()
	return s.view(session), nil
}

// EditField applies one user override to a staged item. Selecting the
// destination of an internal transfer also re-includes the item, since
// that is the user actively confirming it.
func (s *ReviewService) EditField(userID, sessionID string, index int, field, value string) (*models.SessionView, error) {
	session, err := s.sessions.get(sessionID, userID)
	if err != nil {
		return nil, err
	}
	session.mu.Lock()
	defer session.mu.Unlock()
	if index < 0 || index >= len(session.Items) {
		return nil, ErrItemNotFound
	}
	item := &session.Items[index]

	switch field {
	case models.FieldDescription:
		if len(value) < 3 {
			return nil, errors.New("description too short")
		}
		item.Description = value
	case models.FieldType:
		if !models.IsValidType(models.TxType(value)) {
			return nil, errors.New("invalid transaction type")
		}
		item.Type = models.TxType(value)
	case models.FieldCategory:
		item.Category = value
	case models.FieldDestinationAccount:
		if !item.IsInternal {
			return nil, errors.New("item is not an internal transfer")
		}
		// Equal accounts are rejected at selection time, not at commit.
		if value == item.SourceAccountID {
			return nil, ErrSameAccount
		}
		item.DestinationAccountID = value
		if value != "" {
			item.Included = true
		}
	default:
		return nil, ErrUnknownField
	}

	session.UpdatedAt = time.Now()
	return s.view(session), nil
}

// Abandon discards a session without committing anything.
func (s *ReviewService) Abandon(userID, sessionID string) error {
	if _, err := s.sessions.get(sessionID, userID); err != nil {
		return err
	}
	s.sessions.remove(sessionID)
	return nil
}

// Commit partitions the session into normal transactions and transfer
// pairs, then submits both: one atomic batch insert for the
// transactions, plus one independent submission per transfer pair,
// fanned out concurrently and awaited before responding. A pair that
// fails does not roll back the ones that succeeded; its error is
// reported in the per-item summary.
func (s *ReviewService) Commit(ctx context.Context, userID, sessionID string) (*models.CommitResult, error) {
	session, err := s.sessions.get(sessionID, userID)
	if err != nil {
		return nil, err
	}

	// The session is consumed on success; no edits may land in between.
	session.mu.Lock()
	defer session.mu.Unlock()

	// The client navigating away must not cancel writes already in
	// flight: an aborted pair would be lost with the session.
	ctx = context.WithoutCancel(ctx)

	source := models.SourceImportText
	if session.Mode == "table" {
		source = models.SourceImportTable
	}

	normal, pairs, err := PartitionItems(session.Items, source)
	if err != nil {
		return nil, err
	}

	imported, err := s.txs.ImportBatch(ctx, userID, normal)
	if err != nil {
		// Store failure: session stays intact so the user can retry.
		return nil, fmt.Errorf("failed to import transactions: %w", err)
	}

	outcomes := make([]models.TransferOutcome, len(pairs))
	var wg sync.WaitGroup
	for i, pair := range pairs {
		wg.Add(1)
		go func(i int, pair models.TransferPair) {
			defer wg.Done()
			transfer, err := s.transfers.CreateFromPair(ctx, userID, pair)
			if err != nil {
				outcomes[i] = models.TransferOutcome{Index: i, Success: false, Error: err.Error()}
				return
			}
			outcomes[i] = models.TransferOutcome{Index: i, Success: true, TransferID: transfer.ID}
		}(i, pair)
	}
	wg.Wait()

	created, failed := 0, 0
	for _, o := range outcomes {
		if o.Success {
			created++
		} else {
			failed++
		}
	}

	s.sessions.remove(sessionID)

	msg := fmt.Sprintf("%d transacciones importadas", imported)
	if len(pairs) > 0 {
		msg += fmt.Sprintf(", %d transferencias internas registradas", created)
		if failed > 0 {
			msg += fmt.Sprintf(" (%d fallaron)", failed)
		}
	}
	utils.LogImportAction("committed", sessionID, userID, imported)
	if len(pairs) > 0 {
		utils.SafeInfo("🔁 Session %s transfers: %d created, %d failed", utils.MaskID(sessionID), created, failed)
	}

	return &models.CommitResult{
		ImportedCount:    imported,
		TransfersCreated: created,
		TransfersFailed:  failed,
		TransferResults:  outcomes,
		Message:          msg,
	}, nil
}

// PartitionItems derives the commit sets from the staged items. The two
// outputs are disjoint: internal items can only become transfer pairs,
// never normal transactions, regardless of inclusion. An included
// internal item without a destination blocks the whole commit.
func PartitionItems(items []models.ReviewItem, source string) ([]models.Transaction, []models.TransferPair, error) {
	var blocked []int
	for i, item := range items {
		if item.IsInternal && item.Included && item.DestinationAccountID == "" {
			blocked = append(blocked, i)
		}
	}
	if len(blocked) > 0 {
		return nil, nil, &BlockingValidationError{Indices: blocked}
	}

	var normal []models.Transaction
	var pairs []models.TransferPair
	for _, item := range items {
		if !item.Included {
			continue
		}
		if item.IsInternal {
			if item.DestinationAccountID == item.SourceAccountID {
				// Guarded at selection time already; never emit a
				// self-transfer even if state was corrupted.
				continue
			}
			pairs = append(pairs, models.TransferPair{
				SourceAccountID:      item.SourceAccountID,
				DestinationAccountID: item.DestinationAccountID,
				Amount:               math.Abs(item.Amount),
				Date:                 item.Date,
				Note:                 item.Description,
			})
			continue
		}
		normal = append(normal, models.Transaction{
			Date:        item.Date,
			Period:      item.Period,
			Description: item.Description,
			Amount:      item.Amount,
			Type:        item.Type,
			Category:    item.Category,
			AccountID:   item.SourceAccountID,
			Source:      source,
		})
	}
	return normal, pairs, nil
}

func (s *ReviewService) view(session *reviewSession) *models.SessionView {
	view := &models.SessionView{
		ID:              session.ID,
		SourceAccountID: session.SourceAccountID,
		BankHint:        session.BankHint,
		Items:           session.Items,
		Detected:        len(session.Items),
	}
	for _, item := range session.Items {
		if item.IsDuplicateSuspect {
			view.Duplicates++
		}
		if item.IsInternal {
			view.Internal++
		}
		if item.Included && !item.IsInternal {
			view.ToImport++
		}
	}
	return view
}
