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
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Part is a spare part kept in stock.
type Part struct {
	ID        int             `yaml:"id" validate:"required,gt=0"`
	Code      string          `yaml:"code" validate:"required,max=32"`
	Name      string          `yaml:"name" validate:"required"`
	Quantity  int             `yaml:"quantity" validate:"gte=0"`
	UnitPrice decimal.Decimal `yaml:"unit_price" validate:"gte=0"`
}

// PartID and PartCode are the key and label extractors of the parts catalog.
func PartID(p *Part) int      { return p.ID }
func PartCode(p *Part) string { return p.Code }

func (p *Part) String() string {
	return fmt.Sprintf("%s %q x%d @ %s", p.Code, p.Name, p.Quantity, p.UnitPrice.StringFixed(2))
}

// Service is a job offered by the workshop: labor plus the parts it consumes,
// one unit each.
type Service struct {
	ID      int             `yaml:"id" validate:"required,gt=0"`
	Name    string          `yaml:"name" validate:"required"`
	Labor   decimal.Decimal `yaml:"labor" validate:"gte=0"`
	PartIDs []int           `yaml:"part_ids,omitempty" validate:"dive,gt=0"`
}

func ServiceID(s *Service) int      { return s.ID }
func ServiceName(s *Service) string { return s.Name }

func (s *Service) String() string {
	return fmt.Sprintf("%q labor %s parts %v", s.Name, s.Labor.StringFixed(2), s.PartIDs)
}

// Invoice is a billed service. Invoices live in the ledger, which hashes
// them with EncodeInvoice.
type Invoice struct {
	ID        int             `yaml:"id" validate:"required,gt=0"`
	ServiceID int             `yaml:"service_id" validate:"required,gt=0"`
	Customer  string          `yaml:"customer" validate:"required"`
	Total     decimal.Decimal `yaml:"total" validate:"gte=0"`
	IssuedAt  time.Time       `yaml:"issued_at"`
}

func (i *Invoice) String() string {
	return fmt.Sprintf("service %d for %q total %s", i.ServiceID, i.Customer, i.Total.StringFixed(2))
}

// EncodeInvoice is the canonical form hashed by the ledger. Quoting keeps the
// customer field from bleeding into its neighbours.
func EncodeInvoice(i *Invoice) string {
	return fmt.Sprintf("%d %q %s %s",
		i.ServiceID,
		i.Customer,
		i.Total.StringFixed(2),
		i.IssuedAt.UTC().Format(time.RFC3339Nano),
	)
}
