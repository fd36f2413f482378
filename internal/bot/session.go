package bot

import (
	"context"
	"sync"
	"time"

	"github.com/catatduitmu/backend/internal/models"
	"github.com/shopspring/decimal"
)

// Flow identifies the multi-step input flow a conversation is in.
type Flow string

const (
	FlowIncome    Flow = "income"
	FlowExpense   Flow = "expense"
	FlowAddWallet Flow = "add_wallet"
)

// Step is the position within a flow.
type Step string

const (
	StepCategory Step = "category"
	StepAmount   Step = "amount"
	StepWallet   Step = "wallet"
	StepType     Step = "type"
	StepName     Step = "name"
)

// Session is the per-conversation state of a flow. Exactly one of the
// variant fields is set, depending on the flow.
type Session struct {
	Flow Flow `json:"flow"`
	Step Step `json:"step"`

	Transaction *TransactionDraft `json:"transaction,omitempty"`
	Wallet      *WalletDraft      `json:"wallet,omitempty"`
}

// TransactionDraft collects the fields of a transaction entry flow.
type TransactionDraft struct {
	Type     models.TransactionType `json:"type"`
	Category string                 `json:"category"`
	Amount   decimal.Decimal        `json:"amount"`
}

// WalletDraft collects the fields of a wallet creation flow.
type WalletDraft struct {
	Type models.WalletType `json:"type"`
}

// Store keeps sessions keyed by conversation id. Sessions expire: a session
// that has not been written for the store's TTL is treated as absent.
type Store interface {
	Get(ctx context.Context, id string) (Session, bool, error)
	Set(ctx context.Context, id string, session Session) error
	Delete(ctx context.Context, id string) error
}

// DefaultSessionTTL is how long an untouched flow survives before the user
// has to start over.
const DefaultSessionTTL = 10 * time.Minute

type memoryEntry struct {
	session   Session
	expiresAt time.Time
}

// MemoryStore is the process-local session store. It does not survive a
// restart, which is acceptable for a single-process deployment; use the
// Redis store otherwise.
type MemoryStore struct {
	mu  sync.Mutex
	ttl time.Duration
	now func() time.Time

	sessions map[string]memoryEntry
}

// NewMemoryStore returns a MemoryStore with the given TTL. A TTL of 0 uses
// DefaultSessionTTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl == 0 {
		ttl = DefaultSessionTTL
	}

	return &MemoryStore{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]memoryEntry),
	}
}

func (s *MemoryStore) Get(_ context.Context, id string) (Session, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[id]
	if !ok {
		return Session{}, false, nil
	}

	if s.now().After(entry.expiresAt) {
		delete(s.sessions, id)
		return Session{}, false, nil
	}

	return entry.session, true, nil
}

func (s *MemoryStore) Set(_ context.Context, id string, session Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[id] = memoryEntry{
		session:   session,
		expiresAt: s.now().Add(s.ttl),
	}

	// Writing is a good moment to drop other conversations' expired
	// sessions, so that abandoned flows do not accumulate.
	for key, entry := range s.sessions {
		if s.now().After(entry.expiresAt) {
			delete(s.sessions, key)
		}
	}

	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	return nil
}
