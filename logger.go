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

	"go.uber.org/zap"
)

// newLogger builds the process logger from the log settings. Logs go to
// stderr so that command output on stdout stays clean.
func newLogger(config LogConfig) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if config.Development {
		zcfg = zap.NewDevelopmentConfig()
	}
	if config.Level != "" {
		level, err := zap.ParseAtomicLevel(config.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", config.Level, err)
		}
		zcfg.Level = level
	}
	zcfg.OutputPaths = []string{"stderr"}
	return zcfg.Build()
}
