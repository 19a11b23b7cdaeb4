// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-slip39.
//
// go-slip39 is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jeremyhahn/go-slip39/pkg/crypto/secretsharing"
	"github.com/jeremyhahn/go-slip39/pkg/metrics"
	"github.com/jeremyhahn/go-slip39/pkg/slip39"
)

// track runs fn, records its outcome under operation and, when configured,
// dumps the metrics textfile whether or not fn succeeded.
func (a *app) track(operation string, fn func() error) error {
	start := time.Now()
	err := fn()

	status := metrics.StatusSuccess
	if err != nil {
		status = metrics.StatusError
		metrics.RecordError(operation, errorType(err))
		a.logger.Debug("operation failed", "operation", operation, "error_type", errorType(err))
	}
	metrics.RecordOperation(operation, status, time.Since(start).Seconds())

	if path := a.cfg.Metrics.Textfile; path != "" && metrics.IsEnabled() {
		if werr := metrics.WriteTextfile(path); werr != nil {
			a.logger.Warn("failed to write metrics textfile", "path", path, "error", werr)
		}
	}
	return err
}

// errorType maps an error to a low-cardinality metrics label
func errorType(err error) string {
	switch {
	case errors.Is(err, slip39.ErrInvalidChecksum):
		return "checksum"
	case errors.Is(err, slip39.ErrInvalidWord):
		return "invalid_word"
	case errors.Is(err, slip39.ErrInvalidMnemonic):
		return "invalid_mnemonic"
	case errors.Is(err, slip39.ErrIncompatibleShares):
		return "incompatible_shares"
	case errors.Is(err, slip39.ErrInsufficientShares):
		return "insufficient_shares"
	case errors.Is(err, slip39.ErrInvalidConfig):
		return "invalid_config"
	case errors.Is(err, secretsharing.ErrInvalidPoints):
		return "invalid_points"
	default:
		return "other"
	}
}

// readMnemonics collects one mnemonic per non-empty line from each file, or
// from stdin when no files are given. Lines starting with '#' are comments.
func (a *app) readMnemonics(files []string, stdin io.Reader) ([]string, error) {
	if len(files) == 0 {
		return scanMnemonics(stdin)
	}

	var out []string
	for _, path := range files {
		f, err := a.fs.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open share file: %w", err)
		}
		lines, err := scanMnemonics(f)
		_ = f.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		out = append(out, lines...)
	}
	return out, nil
}

func scanMnemonics(r io.Reader) ([]string, error) {
	var out []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read mnemonics: %w", err)
	}
	return out, nil
}
