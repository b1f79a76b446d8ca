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
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
)

const (
	// Quotes are cached for 30 minutes unless a catalog change flushes them.
	defaultQuoteExpiration = 30 * time.Minute
	// Clean up expired entries every 5 minutes
	quoteCacheCleanup = 5 * time.Minute
)

// NewQuoteCache creates the cache that memoizes service quotes.
func NewQuoteCache(expiration time.Duration) *cache.Cache {
	if expiration <= 0 {
		expiration = defaultQuoteExpiration
	}
	return cache.New(expiration, quoteCacheCleanup)
}

func quoteKey(serviceID int) string {
	return "service:" + strconv.Itoa(serviceID)
}

func cacheQuote(c *cache.Cache, serviceID int, total decimal.Decimal) {
	c.SetDefault(quoteKey(serviceID), total)
}

func cachedQuote(c *cache.Cache, serviceID int) (decimal.Decimal, bool) {
	val, ok := c.Get(quoteKey(serviceID))
	if !ok {
		return decimal.Decimal{}, false
	}
	return val.(decimal.Decimal), true
}
