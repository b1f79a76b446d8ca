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
	"strings"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"
)

// SeedOptions sizes the fake data produced by Seed.
type SeedOptions struct {
	Parts    int
	Services int
	Invoices int
	// Seed makes the generated data reproducible; 0 picks a random seed.
	Seed int64
}

// Seed fills w with fake parts, services and invoices. Ids are shuffled so
// the trees see an unordered insertion sequence. Parts are stocked so that
// every invoice can be issued.
func Seed(w *Workshop, opts SeedOptions) error {
	faker := gofakeit.New(opts.Seed)

	for _, id := range shuffledIDs(faker, opts.Parts) {
		p := &Part{
			ID:        id,
			Code:      fmt.Sprintf("%s-%03d", strings.ToUpper(faker.LetterN(3)), id),
			Name:      faker.CarMaker() + " " + faker.Noun(),
			Quantity:  faker.Number(3*opts.Invoices, 3*opts.Invoices+50),
			UnitPrice: decimal.NewFromFloat(faker.Price(2, 400)).Round(2),
		}
		if _, err := w.AddPart(p); err != nil {
			return fmt.Errorf("seed part %d: %w", id, err)
		}
	}

	for _, id := range shuffledIDs(faker, opts.Services) {
		s := &Service{
			ID:    id,
			Name:  faker.CarType() + " " + faker.Verb(),
			Labor: decimal.NewFromInt(int64(faker.Number(20, 300))),
		}
		for i := 0; i < min(opts.Parts, faker.Number(0, 3)); i++ {
			s.PartIDs = append(s.PartIDs, faker.Number(1, opts.Parts))
		}
		if _, err := w.AddService(s); err != nil {
			return fmt.Errorf("seed service %d: %w", id, err)
		}
	}

	if opts.Services == 0 {
		return nil
	}
	for _, id := range shuffledIDs(faker, opts.Invoices) {
		serviceID := faker.Number(1, opts.Services)
		if _, err := w.IssueInvoice(id, serviceID, faker.Name()); err != nil {
			return fmt.Errorf("seed invoice %d: %w", id, err)
		}
	}
	return nil
}

func shuffledIDs(faker *gofakeit.Faker, n int) []int {
	ids := make([]int, n)
	for i := range ids {
		ids[i] = i + 1
	}
	faker.ShuffleInts(ids)
	return ids
}
