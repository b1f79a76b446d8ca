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
package main

import (
	"fmt"
	"runtime"

	markdown "github.com/MichaelMure/go-term-markdown"
)

func getHelpMessage() string {
	message := fmt.Sprintf(`

 **Garage %s**

Workshop records for spare parts, services and invoices, kept in in-memory ordered indexes.

Built with Go %s

# 1. Indexes
* Parts and services live in AVL trees keyed by id: ordered listing and range queries stay O(log n)
* Invoices live in a hash tree: every invoice is sealed with a SHA-256 digest and the root hash covers the whole ledger
* "invoice verify" and "ledger audit" detect invoices changed outside "invoice amend"

# 2. Commands
* **garage shell** opens the interactive shell (type "help" inside it)
* **garage shell --load backup.yaml** restores a snapshot before starting
* **garage seed** fills a workshop with fake data and prints the trees
* **garage seed --metrics** also prints the index counters in Prometheus text format; "metrics" does the same inside the shell
* **garage settings** shows (and creates) ~/.garage.yaml

# Please be aware
* Everything is kept in memory. Use "save <path>" in the shell to write a YAML snapshot
* "ledger copy" requires 'xclip' or 'xsel' on Linux

# License
Licensed under the Apache License, Version 2.0

`, version, runtime.Version())
	result := markdown.Render(message, 80, 3)
	return string(result)
}
