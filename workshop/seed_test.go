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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeed(t *testing.T) {
	opts := SeedOptions{Parts: 40, Services: 10, Invoices: 25, Seed: 42}

	a := New(Config{}, nil)
	require.NoError(t, Seed(a, opts))
	assert.Equal(t, 40, a.Parts.Len())
	assert.Equal(t, 10, a.Services.Len())
	assert.Equal(t, 25, a.Ledger.Len())
	require.NoError(t, a.Parts.Tree().CheckInvariants())
	require.NoError(t, a.Services.Tree().CheckInvariants())
	assert.True(t, a.Ledger.Audit().Clean())

	b := New(Config{}, nil)
	require.NoError(t, Seed(b, opts))
	assert.Equal(t, a.Parts.Tree().Keys(), b.Parts.Tree().Keys())
	for _, p := range a.Parts.List() {
		other, ok := b.Parts.Get(p.ID)
		require.True(t, ok)
		assert.Equal(t, p.Code, other.Code)
	}
}
