// Package memory implementa los puertos del libro de caja en memoria (tests y desarrollo).
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/caisse-api/internal/domain"
	"github.com/jhoicas/caisse-api/internal/domain/entity"
	"github.com/jhoicas/caisse-api/internal/domain/filter"
	"github.com/jhoicas/caisse-api/internal/domain/repository"
)

var (
	_ repository.SaleRepository          = (*SaleRepo)(nil)
	_ repository.ExpenseRepository       = (*ExpenseRepo)(nil)
	_ repository.LedgerQueryRepository   = (*LedgerQueryRepo)(nil)
	_ repository.ReportHistoryRepository = (*ReportHistoryRepo)(nil)
	_ repository.CategoryRepository      = (*CategoryRepo)(nil)
)

// Store datos compartidos por los repositorios en memoria.
type Store struct {
	mu       sync.RWMutex
	clock    func() time.Time
	failWith error

	sales    map[int64]entity.Sale
	expenses map[int64]entity.Expense
	reports  []entity.ReportRecord
	nextID   int64
}

// NewStore crea un almacén vacío. clock fija created_at; nil usa time.Now.
func NewStore(clock func() time.Time) *Store {
	if clock == nil {
		clock = time.Now
	}
	return &Store{
		clock:    clock,
		sales:    make(map[int64]entity.Sale),
		expenses: make(map[int64]entity.Expense),
	}
}

// Fail hace que toda operación posterior falle con domain.ErrStoreUnavailable envolviendo err.
// Fail(nil) restablece el funcionamiento normal.
func (s *Store) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failWith = err
}

func (s *Store) check(op string) error {
	if s.failWith != nil {
		return fmt.Errorf("memory.%s: %w: %w", op, domain.ErrStoreUnavailable, s.failWith)
	}
	return nil
}

func (s *Store) newID() int64 {
	s.nextID++
	return s.nextID
}

// Sales repositorio de ventas sobre el almacén.
func (s *Store) Sales() *SaleRepo { return &SaleRepo{s: s} }

// Expenses repositorio de gastos sobre el almacén.
func (s *Store) Expenses() *ExpenseRepo { return &ExpenseRepo{s: s} }

// Ledger consultas de agregación sobre el almacén.
func (s *Store) Ledger() *LedgerQueryRepo { return &LedgerQueryRepo{s: s} }

// Categories categorías de gasto usadas sobre el almacén.
func (s *Store) Categories() *CategoryRepo { return &CategoryRepo{s: s} }

// Reports historial de reportes sobre el almacén.
func (s *Store) Reports() *ReportHistoryRepo { return &ReportHistoryRepo{s: s} }

// ── Ventas ───────────────────────────────────────────────────────────────────

// SaleRepo implementa repository.SaleRepository.
type SaleRepo struct{ s *Store }

func saleFields(v entity.Sale) func(filter.Column) any {
	return func(col filter.Column) any {
		switch col {
		case filter.ColDate:
			return v.Date
		case filter.ColChannel:
			return v.Channel
		case filter.ColPaymentMethod:
			return v.PaymentMethod
		}
		return nil
	}
}

func (r *SaleRepo) Create(_ context.Context, sale *entity.Sale) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.check("sales.create"); err != nil {
		return err
	}
	now := r.s.clock()
	sale.ID = r.s.newID()
	sale.CreatedAt = now
	sale.UpdatedAt = now
	r.s.sales[sale.ID] = *sale
	return nil
}

func (r *SaleRepo) GetByID(_ context.Context, id int64) (*entity.Sale, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if err := r.s.check("sales.get"); err != nil {
		return nil, err
	}
	v, ok := r.s.sales[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &v, nil
}

func (r *SaleRepo) Update(_ context.Context, sale *entity.Sale) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.check("sales.update"); err != nil {
		return err
	}
	cur, ok := r.s.sales[sale.ID]
	if !ok {
		return domain.ErrNotFound
	}
	sale.CreatedAt = cur.CreatedAt
	sale.UpdatedAt = r.s.clock()
	r.s.sales[sale.ID] = *sale
	return nil
}

func (r *SaleRepo) Delete(_ context.Context, id int64) (*entity.Sale, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.check("sales.delete"); err != nil {
		return nil, err
	}
	v, ok := r.s.sales[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	delete(r.s.sales, id)
	return &v, nil
}

func (r *SaleRepo) List(_ context.Context, f filter.Set) ([]*entity.Sale, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if err := r.s.check("sales.list"); err != nil {
		return nil, err
	}
	out := r.s.matchingSales(f)
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return newer(out[i].CreatedAt, out[i].ID, out[j].CreatedAt, out[j].ID)
	})
	return out, nil
}

func (s *Store) matchingSales(f filter.Set) []*entity.Sale {
	out := make([]*entity.Sale, 0)
	for _, v := range s.sales {
		if f.Match(saleFields(v)) {
			v := v
			out = append(out, &v)
		}
	}
	return out
}

// ── Gastos ───────────────────────────────────────────────────────────────────

// ExpenseRepo implementa repository.ExpenseRepository.
type ExpenseRepo struct{ s *Store }

func expenseFields(v entity.Expense) func(filter.Column) any {
	return func(col filter.Column) any {
		switch col {
		case filter.ColDate:
			return v.Date
		case filter.ColCategory:
			return v.Category
		case filter.ColPaymentMethod:
			return v.PaymentMethod
		case filter.ColUrgent:
			return v.Urgent
		}
		return nil
	}
}

func (r *ExpenseRepo) Create(_ context.Context, expense *entity.Expense) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.check("expenses.create"); err != nil {
		return err
	}
	now := r.s.clock()
	expense.ID = r.s.newID()
	expense.CreatedAt = now
	expense.UpdatedAt = now
	r.s.expenses[expense.ID] = *expense
	return nil
}

func (r *ExpenseRepo) GetByID(_ context.Context, id int64) (*entity.Expense, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if err := r.s.check("expenses.get"); err != nil {
		return nil, err
	}
	v, ok := r.s.expenses[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &v, nil
}

func (r *ExpenseRepo) Update(_ context.Context, expense *entity.Expense) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.check("expenses.update"); err != nil {
		return err
	}
	cur, ok := r.s.expenses[expense.ID]
	if !ok {
		return domain.ErrNotFound
	}
	expense.CreatedAt = cur.CreatedAt
	expense.UpdatedAt = r.s.clock()
	r.s.expenses[expense.ID] = *expense
	return nil
}

func (r *ExpenseRepo) Delete(_ context.Context, id int64) (*entity.Expense, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.check("expenses.delete"); err != nil {
		return nil, err
	}
	v, ok := r.s.expenses[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	delete(r.s.expenses, id)
	return &v, nil
}

func (r *ExpenseRepo) List(_ context.Context, f filter.Set) ([]*entity.Expense, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if err := r.s.check("expenses.list"); err != nil {
		return nil, err
	}
	out := r.s.matchingExpenses(f)
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return newer(out[i].CreatedAt, out[i].ID, out[j].CreatedAt, out[j].ID)
	})
	return out, nil
}

func (s *Store) matchingExpenses(f filter.Set) []*entity.Expense {
	out := make([]*entity.Expense, 0)
	for _, v := range s.expenses {
		if f.Match(expenseFields(v)) {
			v := v
			out = append(out, &v)
		}
	}
	return out
}

// CategoryRepo implementa repository.CategoryRepository.
type CategoryRepo struct{ s *Store }

func (r *CategoryRepo) ListUsed(_ context.Context) ([]entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if err := r.s.check("categories.list_used"); err != nil {
		return nil, err
	}
	uses := make(map[string]int)
	for _, v := range r.s.expenses {
		uses[v.Category]++
	}
	out := make([]entity.Category, 0, len(uses))
	for name, n := range uses {
		out = append(out, entity.Category{Name: name, Uses: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Uses != out[j].Uses {
			return out[i].Uses > out[j].Uses
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// ── Agregación ───────────────────────────────────────────────────────────────

// LedgerQueryRepo implementa repository.LedgerQueryRepository.
type LedgerQueryRepo struct{ s *Store }

func (r *LedgerQueryRepo) SumSales(_ context.Context, f filter.Set) (decimal.Decimal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if err := r.s.check("ledger.sum_sales"); err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, v := range r.s.matchingSales(f) {
		total = total.Add(v.Amount)
	}
	return total, nil
}

func (r *LedgerQueryRepo) SumExpenses(_ context.Context, f filter.Set) (decimal.Decimal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if err := r.s.check("ledger.sum_expenses"); err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, v := range r.s.matchingExpenses(f) {
		total = total.Add(v.Amount)
	}
	return total, nil
}

func (r *LedgerQueryRepo) SalesByChannel(_ context.Context, f filter.Set) ([]repository.GroupTotal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if err := r.s.check("ledger.sales_by_channel"); err != nil {
		return nil, err
	}
	groups := make(map[string]decimal.Decimal)
	for _, v := range r.s.matchingSales(f) {
		groups[string(v.Channel)] = groups[string(v.Channel)].Add(v.Amount)
	}
	return sortedGroups(groups), nil
}

func (r *LedgerQueryRepo) ExpensesByCategory(_ context.Context, f filter.Set) ([]repository.GroupTotal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if err := r.s.check("ledger.expenses_by_category"); err != nil {
		return nil, err
	}
	groups := make(map[string]decimal.Decimal)
	for _, v := range r.s.matchingExpenses(f) {
		groups[v.Category] = groups[v.Category].Add(v.Amount)
	}
	return sortedGroups(groups), nil
}

func (r *LedgerQueryRepo) RecentSales(_ context.Context, f filter.Set, limit int) ([]*entity.Sale, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if err := r.s.check("ledger.recent_sales"); err != nil {
		return nil, err
	}
	out := r.s.matchingSales(f)
	sort.Slice(out, func(i, j int) bool {
		return newer(out[i].CreatedAt, out[i].ID, out[j].CreatedAt, out[j].ID)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *LedgerQueryRepo) RecentExpenses(_ context.Context, f filter.Set, limit int) ([]*entity.Expense, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if err := r.s.check("ledger.recent_expenses"); err != nil {
		return nil, err
	}
	out := r.s.matchingExpenses(f)
	sort.Slice(out, func(i, j int) bool {
		return newer(out[i].CreatedAt, out[i].ID, out[j].CreatedAt, out[j].ID)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func sortedGroups(groups map[string]decimal.Decimal) []repository.GroupTotal {
	out := make([]repository.GroupTotal, 0, len(groups))
	for label, total := range groups {
		if total.IsPositive() {
			out = append(out, repository.GroupTotal{Label: label, Total: total})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Total.Cmp(out[j].Total); c != 0 {
			return c > 0
		}
		return out[i].Label < out[j].Label
	})
	return out
}

// newer ordena por created_at DESC y, a igualdad, por id DESC.
func newer(aAt time.Time, aID int64, bAt time.Time, bID int64) bool {
	if !aAt.Equal(bAt) {
		return aAt.After(bAt)
	}
	return aID > bID
}

// ── Historial de reportes ────────────────────────────────────────────────────

// ReportHistoryRepo implementa repository.ReportHistoryRepository.
type ReportHistoryRepo struct{ s *Store }

func (r *ReportHistoryRepo) Create(_ context.Context, rec *entity.ReportRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.check("reports.create"); err != nil {
		return err
	}
	rec.ID = r.s.newID()
	if rec.GeneratedAt.IsZero() {
		rec.GeneratedAt = r.s.clock()
	}
	r.s.reports = append(r.s.reports, *rec)
	return nil
}

// List devuelve los reportes más recientes primero.
func (r *ReportHistoryRepo) List(_ context.Context, limit int) ([]*entity.ReportRecord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if err := r.s.check("reports.list"); err != nil {
		return nil, err
	}
	out := make([]*entity.ReportRecord, 0, len(r.s.reports))
	for i := len(r.s.reports) - 1; i >= 0 && len(out) < limit; i-- {
		rec := r.s.reports[i]
		out = append(out, &rec)
	}
	return out, nil
}
