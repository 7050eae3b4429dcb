// Package ledger owns the budget state: configuration, fixed expenses,
// transactions and the optional session. Every change is persisted to the
// key-value store and, when a publisher is configured, announced on the
// change feed. Neither side effect can fail an operation.
package ledger

import (
	"context"
	"encoding/json"
	"slices"
	"sync"
	"time"

	"finmo/internal/amqp"
	"finmo/internal/budget"
	"finmo/internal/core"
	"finmo/internal/log"
	"finmo/internal/store"

	"github.com/google/uuid"
)

const (
	DefaultPayday = 1
)

// Options configures a Ledger. Zero values select defaults.
type Options struct {
	Logger       *log.Logger
	Publisher    Publisher
	ForecastDays int
	Now          func() time.Time
	NewID        func() string
}

// Snapshot is a copy of the ledger state, safe to use without locking.
type Snapshot struct {
	BaseIncome    core.Money
	Payday        int
	FixedExpenses []core.FixedExpense
	Transactions  []core.Transaction // newest first
	User          core.User
}

type Ledger struct {
	mu sync.RWMutex

	kv           store.KV
	logger       *log.Logger
	structured   *log.StructuredLogger
	notify       *notifier
	forecastDays int
	now          func() time.Time
	newID        func() string

	baseIncome core.Money
	payday     int
	fixed      []core.FixedExpense
	txs        []core.Transaction
	user       core.User
}

// Load restores a ledger from kv. A key that is missing or cannot be decoded
// falls back to its default; the other keys still load.
func Load(ctx context.Context, kv store.KV, opts Options) *Ledger {
	logger := opts.Logger
	if logger == nil {
		logger = log.Discard()
	}
	logger = logger.WithComponent(log.ComponentLedger)

	l := &Ledger{
		kv:           kv,
		logger:       logger,
		structured:   log.NewStructuredLogger(logger),
		forecastDays: opts.ForecastDays,
		now:          opts.Now,
		newID:        opts.NewID,
		payday:       DefaultPayday,
	}
	if l.forecastDays <= 0 {
		l.forecastDays = budget.DefaultHorizonDays
	}
	if l.now == nil {
		l.now = time.Now
	}
	if l.newID == nil {
		l.newID = uuid.NewString
	}
	if opts.Publisher != nil {
		l.notify = newNotifier(opts.Publisher, logger)
	}

	var income core.Money
	if l.restore(ctx, store.KeyIncome, &income) {
		l.baseIncome = income
	}

	var payday int
	if l.restore(ctx, store.KeyPayday, &payday) {
		if err := core.ValidatePayday(payday); err != nil {
			logger.WarnContext(ctx, "Stored payday out of range, using default", log.FieldPayday, payday)
		} else {
			l.payday = payday
		}
	}

	var fixed []core.FixedExpense
	if l.restore(ctx, store.KeyFixed, &fixed) {
		l.fixed = fixed
	}

	var txs []core.Transaction
	if l.restore(ctx, store.KeyTransactions, &txs) {
		l.txs = txs
	}

	var user core.User
	if l.restore(ctx, store.KeyUser, &user) {
		l.user = user
	}

	logger.InfoContext(ctx, "Ledger loaded",
		"transactions", len(l.txs),
		"fixed_expenses", len(l.fixed),
		log.FieldPayday, l.payday,
		"signed_in", !l.user.IsZero())

	return l
}

// restore decodes key into dst and reports whether it succeeded.
func (l *Ledger) restore(ctx context.Context, key string, dst any) bool {
	raw, ok, err := l.kv.Get(ctx, key)
	if err != nil {
		l.logger.WarnContext(ctx, "Failed to read stored value, using default", log.FieldKey, key, log.FieldError, err)
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		l.logger.WarnContext(ctx, "Stored value is corrupt, using default", log.FieldKey, key, log.FieldError, err)
		return false
	}
	return true
}

// persist writes value under key. Failures are logged, never returned.
func (l *Ledger) persist(ctx context.Context, key string, value any) {
	raw, err := json.Marshal(value)
	if err == nil {
		err = l.kv.Put(ctx, key, raw)
	}
	if err != nil {
		l.structured.LogError(ctx, "Failed to persist ledger state", err, log.OpPersist, log.NewFields().WithComponent(log.ComponentLedger))
		l.logger.WarnContext(ctx, "State change kept in memory only", log.FieldKey, key)
	}
}

func (l *Ledger) publish(ev *amqp.TransactionEvent) {
	if l.notify != nil {
		l.notify.send(ev)
	}
}

// Close flushes pending change events. The ledger stays readable afterwards
// but no more events are published.
func (l *Ledger) Close() {
	l.mu.Lock()
	n := l.notify
	l.notify = nil
	l.mu.Unlock()
	if n != nil {
		n.close()
	}
}

// AddTransaction validates in and prepends the new transaction. On error
// nothing is created.
func (l *Ledger) AddTransaction(ctx context.Context, in TransactionInput) (core.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	t, err := in.build(l.newID(), l.now())
	if err != nil {
		return core.Transaction{}, err
	}

	l.txs = append([]core.Transaction{t}, l.txs...)
	l.persist(ctx, store.KeyTransactions, l.txs)
	l.publish(amqp.NewTransactionCreated(t))

	l.structured.LogTransactionAdded(ctx, t.ID, t.Description, t.Amount.Cents, string(t.Category), t.Subcategory)
	return t, nil
}

// DeleteTransaction removes the transaction with id and reports whether it
// existed.
func (l *Ledger) DeleteTransaction(ctx context.Context, id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := slices.IndexFunc(l.txs, func(t core.Transaction) bool { return t.ID == id })
	if i < 0 {
		return false
	}
	l.txs = slices.Delete(slices.Clone(l.txs), i, i+1)
	l.persist(ctx, store.KeyTransactions, l.txs)
	l.publish(amqp.NewTransactionDeleted(id))

	l.logger.InfoContext(ctx, "Transaction deleted", log.FieldTransactionID, id, log.FieldOperation, log.OpDelete)
	return true
}

// AddFixedExpense validates in and appends the new fixed expense.
func (l *Ledger) AddFixedExpense(ctx context.Context, in FixedExpenseInput) (core.FixedExpense, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fe, err := in.build(l.newID())
	if err != nil {
		return core.FixedExpense{}, err
	}

	l.fixed = append(slices.Clone(l.fixed), fe)
	l.persist(ctx, store.KeyFixed, l.fixed)

	l.logger.InfoContext(ctx, "Fixed expense added",
		log.FieldFixedExpenseID, fe.ID,
		log.FieldAmountCents, fe.Amount.Cents,
		log.FieldCategory, string(fe.Category))
	return fe, nil
}

// RemoveFixedExpense removes the fixed expense with id and reports whether
// it existed.
func (l *Ledger) RemoveFixedExpense(ctx context.Context, id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := slices.IndexFunc(l.fixed, func(fe core.FixedExpense) bool { return fe.ID == id })
	if i < 0 {
		return false
	}
	l.fixed = slices.Delete(slices.Clone(l.fixed), i, i+1)
	l.persist(ctx, store.KeyFixed, l.fixed)

	l.logger.InfoContext(ctx, "Fixed expense removed", log.FieldFixedExpenseID, id)
	return true
}

// SetBaseIncome replaces the monthly base income.
func (l *Ledger) SetBaseIncome(ctx context.Context, income core.Money) error {
	if err := income.Validate(); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	l.baseIncome = income
	l.persist(ctx, store.KeyIncome, income)
	return nil
}

// SetPayday replaces the day of month on which base income arrives.
func (l *Ledger) SetPayday(ctx context.Context, day int) error {
	if err := core.ValidatePayday(day); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	l.payday = day
	l.persist(ctx, store.KeyPayday, day)
	return nil
}

// Reset restores income 0, payday 1 and empty collections. The session is
// kept.
func (l *Ledger) Reset(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.baseIncome = core.Money{}
	l.payday = DefaultPayday
	l.fixed = nil
	l.txs = nil

	l.persist(ctx, store.KeyIncome, l.baseIncome)
	l.persist(ctx, store.KeyPayday, l.payday)
	l.persist(ctx, store.KeyFixed, []core.FixedExpense{})
	l.persist(ctx, store.KeyTransactions, []core.Transaction{})
	l.publish(amqp.NewLedgerReset())

	l.logger.InfoContext(ctx, "Ledger reset", log.FieldOperation, log.OpReset)
}

// SignIn stores the session user.
func (l *Ledger) SignIn(ctx context.Context, u core.User) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.user = u
	l.persist(ctx, store.KeyUser, u)
	l.logger.InfoContext(ctx, "User signed in", "email", u.Email)
}

// SignOut clears the session user.
func (l *Ledger) SignOut(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.user = core.User{}
	if err := l.kv.Delete(ctx, store.KeyUser); err != nil {
		l.logger.WarnContext(ctx, "Failed to remove stored session", log.FieldError, err)
	}
	l.logger.InfoContext(ctx, "User signed out")
}

// User returns the signed-in user, zero when signed out.
func (l *Ledger) User() core.User {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.user
}

// Snapshot copies the current state.
func (l *Ledger) Snapshot() Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return Snapshot{
		BaseIncome:    l.baseIncome,
		Payday:        l.payday,
		FixedExpenses: slices.Clone(l.fixed),
		Transactions:  slices.Clone(l.txs),
		User:          l.user,
	}
}

// RecentTransactions returns at most n transactions, newest first.
func (l *Ledger) RecentTransactions(n int) []core.Transaction {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if n < 0 || n > len(l.txs) {
		n = len(l.txs)
	}
	return slices.Clone(l.txs[:n])
}

// Stats aggregates the current state.
func (l *Ledger) Stats() core.BudgetStats {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return budget.Aggregate(l.baseIncome, l.fixed, l.txs)
}

// Forecast projects the balance from today over the configured horizon.
func (l *Ledger) Forecast(today time.Time) []core.ForecastPoint {
	l.mu.RLock()
	defer l.mu.RUnlock()
	stats := budget.Aggregate(l.baseIncome, l.fixed, l.txs)
	return budget.Project(stats, l.payday, l.baseIncome, l.forecastDays, today)
}

// Allocation returns the 50/30/20 buckets for the current state.
func (l *Ledger) Allocation() []budget.Bucket {
	return budget.Allocate(l.Stats())
}

// DaysUntilPayday counts the days from today to the next payday.
func (l *Ledger) DaysUntilPayday(today time.Time) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return budget.DaysUntilPayday(today, l.payday)
}

// SafeToSpendDaily spreads the current balance over the days to payday.
func (l *Ledger) SafeToSpendDaily(today time.Time) core.Money {
	return budget.SafeToSpendDaily(l.Stats(), l.DaysUntilPayday(today))
}
