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
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// entityValidate is shared by every catalog and the ledger.
var entityValidate *validator.Validate

func init() {
	entityValidate = validator.New()

	// Money fields are validated on their float value so that numeric tags
	// such as gte=0 apply to decimal.Decimal.
	entityValidate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})
}

// Validate checks the struct tags of a part, service or invoice.
func Validate(entity any) error {
	return entityValidate.Struct(entity)
}
