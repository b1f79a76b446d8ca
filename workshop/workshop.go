// Copyright 2025 Naren Yellavula
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package workshop

import (
	"errors"
	"fmt"
	"time"

	"github.com/cybrota/garage/index"
	"github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	ErrPartInUse  = errors.New("part is used by a service")
	ErrOutOfStock = errors.New("part out of stock")
)

// Config gathers the settings of every collaborator.
type Config struct {
	Catalog       CatalogConfig
	Ledger        LedgerConfig
	QuoteCacheTTL time.Duration
}

// Workshop ties the parts and services catalogs to the invoice ledger. It
// is driven by a single caller and is not safe for concurrent use.
type Workshop struct {
	Parts    *Catalog[*Part]
	Services *Catalog[*Service]
	Ledger   *Ledger

	quotes *cache.Cache
	logger *zap.Logger
	now    func() time.Time
}

func New(config Config, logger *zap.Logger) *Workshop {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Workshop{
		Parts:    NewCatalog[*Part]("parts", PartID, PartCode, config.Catalog, logger),
		Services: NewCatalog[*Service]("services", ServiceID, ServiceName, config.Catalog, logger),
		Ledger:   NewLedger(config.Ledger, logger),
		quotes:   NewQuoteCache(config.QuoteCacheTTL),
		logger:   logger,
		now:      time.Now,
	}
}

// AddPart stores a new part. It reports false when the id already exists.
func (w *Workshop) AddPart(p *Part) (bool, error) {
	return w.Parts.Add(p)
}

// SetPart stores p, replacing any part with the same id, and drops cached
// quotes that may include it. It reports whether a part was replaced.
func (w *Workshop) SetPart(p *Part) (bool, error) {
	replaced, err := w.Parts.Put(p)
	if err != nil {
		return false, err
	}
	w.quotes.Flush()
	return replaced, nil
}

// RemovePart deletes a part that no service references.
func (w *Workshop) RemovePart(id int) (bool, error) {
	for _, s := range w.Services.List() {
		for _, pid := range s.PartIDs {
			if pid == id {
				return false, fmt.Errorf("%w: part %d in service %d", ErrPartInUse, id, s.ID)
			}
		}
	}
	return w.Parts.Remove(id), nil
}

// AddService stores a new service after checking that its parts exist.
func (w *Workshop) AddService(s *Service) (bool, error) {
	if s != nil {
		if err := w.checkParts(s); err != nil {
			return false, err
		}
	}
	return w.Services.Add(s)
}

// UpdateService replaces a service and invalidates its quote.
func (w *Workshop) UpdateService(s *Service) error {
	if s != nil {
		if err := w.checkParts(s); err != nil {
			return err
		}
	}
	if err := w.Services.Update(s); err != nil {
		return err
	}
	w.quotes.Delete(quoteKey(s.ID))
	return nil
}

func (w *Workshop) RemoveService(id int) bool {
	w.quotes.Delete(quoteKey(id))
	return w.Services.Remove(id)
}

func (w *Workshop) checkParts(s *Service) error {
	for _, pid := range s.PartIDs {
		if !w.Parts.Contains(pid) {
			return fmt.Errorf("service %d: %w: part %d", s.ID, index.ErrKeyNotFound, pid)
		}
	}
	return nil
}

// Quote prices a service: labor plus one unit of each listed part.
func (w *Workshop) Quote(serviceID int) (decimal.Decimal, error) {
	if total, ok := cachedQuote(w.quotes, serviceID); ok {
		return total, nil
	}

	s, ok := w.Services.Get(serviceID)
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("%w: service %d", index.ErrKeyNotFound, serviceID)
	}
	total := s.Labor
	for _, pid := range s.PartIDs {
		p, ok := w.Parts.Get(pid)
		if !ok {
			return decimal.Decimal{}, fmt.Errorf("service %d: %w: part %d", serviceID, index.ErrKeyNotFound, pid)
		}
		total = total.Add(p.UnitPrice)
	}

	cacheQuote(w.quotes, serviceID, total)
	return total, nil
}

// IssueInvoice bills a service to a customer, takes one unit of each part
// from stock and records the invoice in the ledger.
func (w *Workshop) IssueInvoice(id, serviceID int, customer string) (*Invoice, error) {
	if w.Ledger.tree.ContainsKey(id) {
		return nil, fmt.Errorf("ledger: %w: id %d", index.ErrDuplicateKey, id)
	}
	total, err := w.Quote(serviceID)
	if err != nil {
		return nil, err
	}

	s, _ := w.Services.Get(serviceID)
	need := make(map[int]int, len(s.PartIDs))
	for _, pid := range s.PartIDs {
		need[pid]++
	}
	for pid, units := range need {
		if p, _ := w.Parts.Get(pid); p.Quantity < units {
			return nil, fmt.Errorf("%w: %s has %d, needs %d", ErrOutOfStock, p.Code, p.Quantity, units)
		}
	}

	inv := &Invoice{
		ID:        id,
		ServiceID: serviceID,
		Customer:  customer,
		Total:     total,
		IssuedAt:  w.now().UTC(),
	}
	if err := w.Ledger.Record(inv); err != nil {
		return nil, err
	}

	for pid, units := range need {
		p, _ := w.Parts.Get(pid)
		updated := *p
		updated.Quantity -= units
		if err := w.Parts.Update(&updated); err != nil {
			return nil, err
		}
	}

	w.logger.Info("invoice issued",
		zap.Int("invoice", id),
		zap.Int("service", serviceID),
		zap.String("total", total.StringFixed(2)),
	)
	return inv, nil
}
