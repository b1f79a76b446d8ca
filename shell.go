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
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/cybrota/garage/handlers"
	"github.com/cybrota/garage/index"
	"github.com/mattn/go-shellwords"
	"go.uber.org/zap"
)

const shellPrompt = "garage> "

// Shell reads commands line by line and dispatches them to the handlers.
type Shell struct {
	manager *handlers.HandlerManager
	in      io.Reader
	out     io.Writer
	styles  Styles
	logger  *zap.Logger
	prompt  bool
}

func NewShell(manager *handlers.HandlerManager, in io.Reader, out io.Writer, styles Styles, logger *zap.Logger) *Shell {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Shell{
		manager: manager,
		in:      in,
		out:     out,
		styles:  styles,
		logger:  logger.Named("shell"),
		prompt:  true,
	}
}

// splitLine splits a shell line into words, honouring quotes.
func splitLine(line string) ([]string, error) {
	args, err := shellwords.Parse(line)
	if err != nil {
		return nil, fmt.Errorf("failed to parse command %q: %v", line, err)
	}
	return args, nil
}

// Run processes input until EOF or "quit". It returns the number of commands
// that failed.
func (s *Shell) Run() (int, error) {
	failures := 0
	scanner := bufio.NewScanner(s.in)
	for {
		if s.prompt {
			fmt.Fprint(s.out, s.styles.Prompt.Render(shellPrompt))
		}
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		args, err := splitLine(line)
		if err != nil {
			failures++
			s.printError(err)
			continue
		}

		switch args[0] {
		case "quit", "exit":
			return failures, nil
		case "help":
			s.printHelp()
			continue
		}

		out, err := s.manager.Dispatch(args)
		if err != nil {
			failures++
			s.logger.Debug("command failed", zap.String("line", line), zap.Error(err))
			s.printError(err)
			continue
		}
		if out != "" {
			fmt.Fprintln(s.out, s.styles.Success.Render(out))
		}
	}
	if s.prompt {
		fmt.Fprintln(s.out)
	}
	return failures, scanner.Err()
}

// printError shows integrity violations as warnings: the data is still there
// and the user decides how to remediate it.
func (s *Shell) printError(err error) {
	if errors.Is(err, index.ErrIntegrityViolation) {
		fmt.Fprintln(s.out, s.styles.Warning.Render("warning: "+err.Error()))
		return
	}
	fmt.Fprintln(s.out, s.styles.Error.Render("error: "+err.Error()))
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.out, s.styles.Title.Render("Commands"))
	for _, line := range s.manager.Usage() {
		fmt.Fprintln(s.out, "  "+line)
	}
	fmt.Fprintln(s.out, s.styles.Muted.Render("  help | quit"))
}
