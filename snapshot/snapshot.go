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
// Package snapshot writes a workshop's indexes to a YAML backup and restores
// them by replaying inserts. Invoices are written in pre-order so that the
// replay rebuilds the same unbalanced tree and therefore the same root hash.
package snapshot

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/cybrota/garage/workshop"
	"github.com/schollz/progressbar/v3"
	"gopkg.in/yaml.v3"
)

const formatVersion = 1

var ErrRootHashMismatch = errors.New("restored ledger root hash does not match backup")

// Document is the on-disk backup layout.
type Document struct {
	Version  int                 `yaml:"version"`
	Taken    time.Time           `yaml:"taken"`
	RootHash string              `yaml:"root_hash"`
	Parts    []*workshop.Part    `yaml:"parts"`
	Services []*workshop.Service `yaml:"services"`
	Invoices []*workshop.Invoice `yaml:"invoices"`
}

// Capture builds a Document from the current state of w.
func Capture(w *workshop.Workshop) *Document {
	doc := &Document{
		Version:  formatVersion,
		Taken:    time.Now().UTC(),
		RootHash: w.Ledger.RootHash(),
		Parts:    w.Parts.List(),
		Services: w.Services.List(),
	}
	w.Ledger.Tree().PreOrder(func(_ int, inv *workshop.Invoice) {
		doc.Invoices = append(doc.Invoices, inv)
	})
	return doc
}

// Write encodes a capture of w as YAML.
func Write(out io.Writer, w *workshop.Workshop) error {
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(Capture(w)); err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return enc.Close()
}

// Read decodes a Document.
func Read(in io.Reader) (*Document, error) {
	var doc Document
	if err := yaml.NewDecoder(in).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	if doc.Version != formatVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d", doc.Version)
	}
	return &doc, nil
}

// RestoreOptions controls progress output during Restore.
type RestoreOptions struct {
	Progress io.Writer
}

// Restore replays every record of doc into w, which should be empty. Parts
// go first so that services can reference them. The ledger root hash is
// checked once all invoices are back.
func Restore(doc *Document, w *workshop.Workshop, opts RestoreOptions) error {
	total := len(doc.Parts) + len(doc.Services) + len(doc.Invoices)

	var bar *progressbar.ProgressBar
	if opts.Progress != nil {
		bar = progressbar.NewOptions(total,
			progressbar.OptionSetWriter(opts.Progress),
			progressbar.OptionSetDescription("Restoring snapshot..."),
			progressbar.OptionSetWidth(50),
			progressbar.OptionShowCount(),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "=",
				SaucerHead:    ">",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
			progressbar.OptionOnCompletion(func() {
				fmt.Fprintln(opts.Progress)
			}),
		)
	}
	step := func() {
		if bar != nil {
			_ = bar.Add(1)
		}
	}

	for _, p := range doc.Parts {
		if _, err := w.AddPart(p); err != nil {
			return fmt.Errorf("restore part: %w", err)
		}
		step()
	}
	for _, s := range doc.Services {
		if _, err := w.AddService(s); err != nil {
			return fmt.Errorf("restore service: %w", err)
		}
		step()
	}
	for _, inv := range doc.Invoices {
		if err := w.Ledger.Record(inv); err != nil {
			return fmt.Errorf("restore invoice: %w", err)
		}
		step()
	}
	if bar != nil {
		_ = bar.Finish()
	}

	if got := w.Ledger.RootHash(); got != doc.RootHash {
		return fmt.Errorf("%w: got %q, want %q", ErrRootHashMismatch, got, doc.RootHash)
	}
	return nil
}
