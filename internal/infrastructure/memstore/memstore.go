// Package memstore implementa los repositorios en memoria, con la misma semántica de
// filtros y orden que el adaptador PostgreSQL. Se usa en tests y en desarrollo local
// (DB_DRIVER=memory).
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tramitefacil-api/internal/domain/entity"
	"github.com/jhoicas/tramitefacil-api/internal/domain/repository"
)

var (
	_ repository.CompanyRepository    = (*CompanyRepo)(nil)
	_ repository.ObligationRepository = (*ObligationRepo)(nil)
)

// Operaciones que admiten inyección de errores vía FailOn.
const (
	OpCreateObligation = "obligation.create"
	OpUpdateObligation = "obligation.update"
	OpDeleteObligation = "obligation.delete"
	OpListObligations  = "obligation.list"
	OpSumObligations   = "obligation.sum"
	OpCreateCompany    = "company.create"
)

// Store tablas Empresa y Obligacion en memoria.
type Store struct {
	mu          sync.Mutex
	companies   map[int64]entity.Company
	obligations map[int64]entity.Obligation
	nextID      int64
	failures    map[string]error
	now         func() time.Time
}

// New crea un store vacío.
func New() *Store {
	return &Store{
		companies:   make(map[int64]entity.Company),
		obligations: make(map[int64]entity.Obligation),
		failures:    make(map[string]error),
		now:         time.Now,
	}
}

// FailOn hace que la operación op devuelva err hasta que se llame con err nil.
func (s *Store) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failures, op)
		return
	}
	s.failures[op] = err
}

func (s *Store) failure(op string) error {
	return s.failures[op]
}

// Companies adaptador CompanyRepository.
func (s *Store) Companies() *CompanyRepo { return &CompanyRepo{s: s} }

// Obligations adaptador ObligationRepository.
func (s *Store) Obligations() *ObligationRepo { return &ObligationRepo{s: s} }

// AllObligations copia de todas las filas ordenadas por id (para aserciones).
func (s *Store) AllObligations() []entity.Obligation {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.Obligation, 0, len(s.obligations))
	for _, o := range s.obligations {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// CompanyRepo vista CompanyRepository del store.
type CompanyRepo struct{ s *Store }

func (r *CompanyRepo) Create(_ context.Context, c *entity.Company) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure(OpCreateCompany); err != nil {
		return err
	}
	r.s.nextID++
	c.ID = r.s.nextID
	c.CreatedAt = r.s.now()
	r.s.companies[c.ID] = *c
	return nil
}

func (r *CompanyRepo) GetByID(_ context.Context, id int64, ownerID string) (*entity.Company, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.companies[id]
	if !ok || c.OwnerID != ownerID {
		return nil, nil
	}
	return &c, nil
}

func (r *CompanyRepo) ListByOwner(_ context.Context, ownerID string) ([]*entity.Company, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Company
	for _, c := range r.s.companies {
		if c.OwnerID == ownerID {
			list = append(list, &c)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

// ObligationRepo vista ObligationRepository del store.
type ObligationRepo struct{ s *Store }

func (r *ObligationRepo) Create(_ context.Context, o *entity.Obligation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure(OpCreateObligation); err != nil {
		return err
	}
	r.s.nextID++
	o.ID = r.s.nextID
	o.CreatedAt = r.s.now()
	if o.Frequency == "" {
		o.Frequency = entity.FrequencyUnique
	}
	r.s.obligations[o.ID] = *o
	return nil
}

func (r *ObligationRepo) GetByID(_ context.Context, id int64, ownerID string) (*entity.Obligation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.obligations[id]
	if !ok || o.OwnerID != ownerID {
		return nil, nil
	}
	return &o, nil
}

func (r *ObligationRepo) Update(_ context.Context, id int64, ownerID string, p entity.ObligationPatch) (*entity.Obligation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure(OpUpdateObligation); err != nil {
		return nil, err
	}
	o, ok := r.s.obligations[id]
	if !ok || o.OwnerID != ownerID {
		return nil, nil
	}
	if p.Title != nil {
		o.Title = *p.Title
	}
	if p.DueDate != nil {
		o.DueDate = *p.DueDate
	}
	if p.EstimatedAmount != nil {
		amount := *p.EstimatedAmount
		o.EstimatedAmount = &amount
	}
	if p.Frequency != nil {
		o.Frequency = *p.Frequency
	}
	if p.Completed != nil {
		o.Completed = *p.Completed
	}
	r.s.obligations[id] = o
	return &o, nil
}

func (r *ObligationRepo) Delete(_ context.Context, id int64, ownerID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure(OpDeleteObligation); err != nil {
		return false, err
	}
	o, ok := r.s.obligations[id]
	if !ok || o.OwnerID != ownerID {
		return false, nil
	}
	delete(r.s.obligations, id)
	return true, nil
}

func (r *ObligationRepo) List(_ context.Context, f entity.ObligationFilter) ([]entity.ObligationView, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure(OpListObligations); err != nil {
		return nil, err
	}
	var out []entity.ObligationView
	for _, o := range r.s.obligations {
		if !f.Matches(&o) {
			continue
		}
		out = append(out, entity.ObligationView{
			Obligation:         o,
			CompanyDisplayName: r.s.companyName(o.CompanyID),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].DueDate.Equal(out[j].DueDate) {
			return out[i].DueDate.Before(out[j].DueDate)
		}
		return out[i].ID < out[j].ID
	})
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *ObligationRepo) SumEstimated(_ context.Context, f entity.ObligationFilter) (decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure(OpSumObligations); err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, o := range r.s.obligations {
		if f.Matches(&o) {
			total = total.Add(o.AmountOrZero())
		}
	}
	return total, nil
}

func (s *Store) companyName(id int64) string {
	c, ok := s.companies[id]
	if !ok {
		return ""
	}
	return c.DisplayName()
}
