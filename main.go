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
	"log"
	"os"

	"github.com/cybrota/garage/handlers"
	"github.com/cybrota/garage/index"
	"github.com/cybrota/garage/snapshot"
	"github.com/cybrota/garage/workshop"
	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const version = "v0.3.0"

// app holds what every command needs after configuration is loaded.
type app struct {
	config *Config
	logger *zap.Logger
	styles Styles
}

func newApp() (*app, error) {
	config, err := LoadConfig()
	if err != nil {
		log.Printf("Failed to load configuration: %v. Using default settings.", err)
	}

	logger, err := newLogger(config.Log)
	if err != nil {
		return nil, err
	}

	styles := PlainStyles()
	if isatty.IsTerminal(os.Stdout.Fd()) {
		styles = NewStyles()
	}
	return &app{config: config, logger: logger, styles: styles}, nil
}

// restore loads a snapshot file into a fresh workshop.
func (a *app) restore(w *workshop.Workshop, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer file.Close()

	doc, err := snapshot.Read(file)
	if err != nil {
		return err
	}
	return snapshot.Restore(doc, w, snapshot.RestoreOptions{Progress: os.Stderr})
}

func main() {
	var cmdShell = &cobra.Command{
		Use:   "shell",
		Short: "Open the interactive workshop shell",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.logger.Sync()

			w := workshop.New(a.config.WorkshopConfig(), a.logger)
			if path, _ := cmd.Flags().GetString("load"); path != "" {
				if err := a.restore(w, path); err != nil {
					return err
				}
				a.logger.Info("snapshot restored", zap.String("path", path), zap.String("root", w.Ledger.RootHash()))
			}

			shell := NewShell(handlers.NewHandlerManager(w, nil), os.Stdin, os.Stdout, a.styles, a.logger)
			shell.prompt = isatty.IsTerminal(os.Stdin.Fd())
			failures, err := shell.Run()
			if err != nil {
				return err
			}
			if failures > 0 && !shell.prompt {
				return fmt.Errorf("%d commands failed", failures)
			}
			return nil
		},
	}
	cmdShell.Flags().String("load", "", "restore a YAML snapshot before starting")

	var cmdSeed = &cobra.Command{
		Use:   "seed",
		Short: "Fill a workshop with fake data and print its indexes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.logger.Sync()

			var opts workshop.SeedOptions
			opts.Parts, _ = cmd.Flags().GetInt("parts")
			opts.Services, _ = cmd.Flags().GetInt("services")
			opts.Invoices, _ = cmd.Flags().GetInt("invoices")
			opts.Seed, _ = cmd.Flags().GetInt64("seed")

			w := workshop.New(a.config.WorkshopConfig(), a.logger)
			if err := workshop.Seed(w, opts); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if showTree, _ := cmd.Flags().GetBool("tree"); showTree {
				fmt.Fprintln(out, index.RenderAVL(w.Parts.Tree(), nil))
				fmt.Fprintln(out, index.RenderAVL(w.Services.Tree(), nil))
				fmt.Fprintln(out, index.RenderMerkle(w.Ledger.Tree(), nil))
			}
			fmt.Fprintln(out, a.styles.Info.Render(fmt.Sprintf(
				"parts=%d (height %d) services=%d (height %d) invoices=%d (height %d)",
				w.Parts.Len(), w.Parts.Tree().Height(),
				w.Services.Len(), w.Services.Tree().Height(),
				w.Ledger.Len(), w.Ledger.Tree().Height(),
			)))
			fmt.Fprintln(out, a.styles.Success.Render("ledger root: "+w.Ledger.RootHash()))

			if path, _ := cmd.Flags().GetString("out"); path != "" {
				file, err := os.Create(path)
				if err != nil {
					return fmt.Errorf("failed to create snapshot file: %w", err)
				}
				defer file.Close()
				if err := snapshot.Write(file, w); err != nil {
					return err
				}
				fmt.Fprintln(out, "snapshot written to "+path)
			}

			if showMetrics, _ := cmd.Flags().GetBool("metrics"); showMetrics {
				if err := index.WriteMetrics(out, prometheus.DefaultGatherer); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmdSeed.Flags().Int("parts", 25, "number of fake parts")
	cmdSeed.Flags().Int("services", 8, "number of fake services")
	cmdSeed.Flags().Int("invoices", 15, "number of fake invoices")
	cmdSeed.Flags().Int64("seed", 0, "random seed, 0 for a random one")
	cmdSeed.Flags().Bool("tree", false, "print the index trees")
	cmdSeed.Flags().String("out", "", "write a YAML snapshot to this path")
	cmdSeed.Flags().Bool("metrics", false, "print index metrics in Prometheus text format")

	var cmdSettings = &cobra.Command{
		Use:   "settings",
		Short: "Show the configuration, creating ~/.garage.yaml if needed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			styles := PlainStyles()
			if isatty.IsTerminal(os.Stdout.Fd()) {
				styles = NewStyles()
			}
			return displaySettings(os.Stdout, styles)
		},
	}

	var cmdUsage = &cobra.Command{
		Use:   "usage",
		Short: "Print Garage usage guide",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(getHelpMessage())
		},
	}

	var cmdVersion = &cobra.Command{
		Use:   "version",
		Short: "Print Garage version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version)
		},
	}

	var rootCmd = &cobra.Command{
		Use:           "garage",
		Version:       version,
		Short:         "Workshop parts, services and invoices in in-memory indexes",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.AddCommand(cmdShell, cmdSeed, cmdSettings, cmdUsage, cmdVersion)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
