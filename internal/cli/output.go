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
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// OutputFormat defines the output format type
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
)

// Printer handles formatted output
type Printer struct {
	format OutputFormat
	writer io.Writer
}

// NewPrinter creates a new Printer
func NewPrinter(format string, writer io.Writer) *Printer {
	return &Printer{
		format: OutputFormat(strings.ToLower(format)),
		writer: writer,
	}
}

// GenerateResult describes a completed split
type GenerateResult struct {
	Identifier        uint16        `json:"identifier" yaml:"identifier"`
	Extendable        bool          `json:"extendable" yaml:"extendable"`
	IterationExponent int           `json:"iteration_exponent" yaml:"iteration_exponent"`
	GroupThreshold    int           `json:"group_threshold" yaml:"group_threshold"`
	Groups            []GroupResult `json:"groups" yaml:"groups"`
}

// GroupResult lists one group's mnemonics, or the files they were written to
type GroupResult struct {
	Index     int      `json:"index" yaml:"index"`
	Threshold int      `json:"threshold" yaml:"threshold"`
	Count     int      `json:"count" yaml:"count"`
	Mnemonics []string `json:"mnemonics,omitempty" yaml:"mnemonics,omitempty"`
	Files     []string `json:"files,omitempty" yaml:"files,omitempty"`
}

// ShareInfo is the decoded metadata of one mnemonic. Indexes are 1-based.
type ShareInfo struct {
	Identifier        uint16 `json:"identifier" yaml:"identifier"`
	Extendable        bool   `json:"extendable" yaml:"extendable"`
	IterationExponent int    `json:"iteration_exponent" yaml:"iteration_exponent"`
	GroupIndex        int    `json:"group_index" yaml:"group_index"`
	GroupThreshold    int    `json:"group_threshold" yaml:"group_threshold"`
	GroupCount        int    `json:"group_count" yaml:"group_count"`
	MemberIndex       int    `json:"member_index" yaml:"member_index"`
	MemberThreshold   int    `json:"member_threshold" yaml:"member_threshold"`
	Words             int    `json:"words" yaml:"words"`
	ValueLength       int    `json:"value_length" yaml:"value_length"`
	Value             string `json:"value,omitempty" yaml:"value,omitempty"`
}

// ValidationResult is the outcome of validating one mnemonic
type ValidationResult struct {
	Line  int    `json:"line" yaml:"line"`
	Valid bool   `json:"valid" yaml:"valid"`
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// PrintGenerateResult prints the shares of a split
func (p *Printer) PrintGenerateResult(r *GenerateResult) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(r)
	case OutputFormatYAML:
		return p.printYAML(r)
	case OutputFormatText:
		fmt.Fprintf(p.writer, "Identifier:         %d\n", r.Identifier)
		fmt.Fprintf(p.writer, "Extendable:         %t\n", r.Extendable)
		fmt.Fprintf(p.writer, "Iteration exponent: %d\n", r.IterationExponent)
		fmt.Fprintf(p.writer, "Group threshold:    %d of %d\n", r.GroupThreshold, len(r.Groups))
		for _, g := range r.Groups {
			fmt.Fprintf(p.writer, "\nGroup %d (%d of %d):\n", g.Index, g.Threshold, g.Count)
			for _, m := range g.Mnemonics {
				fmt.Fprintln(p.writer, m)
			}
			for _, f := range g.Files {
				fmt.Fprintf(p.writer, "  wrote %s\n", f)
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// PrintSecret prints a recovered master secret as hex
func (p *Printer) PrintSecret(secretHex string) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(map[string]interface{}{
			"secret": secretHex,
		})
	case OutputFormatYAML:
		return p.printYAML(map[string]interface{}{
			"secret": secretHex,
		})
	case OutputFormatText:
		fmt.Fprintln(p.writer, secretHex)
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// PrintShareInfo prints decoded share metadata
func (p *Printer) PrintShareInfo(info *ShareInfo) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(info)
	case OutputFormatYAML:
		return p.printYAML(info)
	case OutputFormatText:
		fmt.Fprintf(p.writer, "Share Information:\n")
		fmt.Fprintf(p.writer, "  Identifier:         %d\n", info.Identifier)
		fmt.Fprintf(p.writer, "  Extendable:         %t\n", info.Extendable)
		fmt.Fprintf(p.writer, "  Iteration exponent: %d\n", info.IterationExponent)
		fmt.Fprintf(p.writer, "  Group:              %d of %d (threshold %d)\n",
			info.GroupIndex, info.GroupCount, info.GroupThreshold)
		fmt.Fprintf(p.writer, "  Member:             %d (threshold %d)\n", info.MemberIndex, info.MemberThreshold)
		fmt.Fprintf(p.writer, "  Words:              %d\n", info.Words)
		fmt.Fprintf(p.writer, "  Value length:       %d bytes\n", info.ValueLength)
		if info.Value != "" {
			fmt.Fprintf(p.writer, "  Value:              %s\n", info.Value)
		}
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// PrintValidation prints per-mnemonic validation results
func (p *Printer) PrintValidation(results []ValidationResult) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(map[string]interface{}{
			"results": results,
		})
	case OutputFormatYAML:
		return p.printYAML(map[string]interface{}{
			"results": results,
		})
	case OutputFormatText:
		for _, r := range results {
			if r.Valid {
				fmt.Fprintf(p.writer, "line %d: ok\n", r.Line)
			} else {
				fmt.Fprintf(p.writer, "line %d: %s\n", r.Line, r.Error)
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// PrintVersion prints build information
func (p *Printer) PrintVersion() error {
	info := map[string]interface{}{
		"version":    Version,
		"commit":     GitCommit,
		"build_date": BuildDate,
		"go_version": runtime.Version(),
		"os":         runtime.GOOS,
		"arch":       runtime.GOARCH,
	}
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(info)
	case OutputFormatYAML:
		return p.printYAML(info)
	case OutputFormatText:
		fmt.Fprintf(p.writer, "slip39 version %s\n", Version)
		fmt.Fprintf(p.writer, "Git commit: %s\n", GitCommit)
		fmt.Fprintf(p.writer, "Build date: %s\n", BuildDate)
		fmt.Fprintf(p.writer, "Go version: %s\n", runtime.Version())
		fmt.Fprintf(p.writer, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// PrintError prints an error message
func (p *Printer) PrintError(err error) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(map[string]interface{}{
			"status": "error",
			"error":  err.Error(),
		})
	case OutputFormatYAML:
		return p.printYAML(map[string]interface{}{
			"status": "error",
			"error":  err.Error(),
		})
	case OutputFormatText:
		fmt.Fprintf(p.writer, "Error: %v\n", err)
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// printJSON prints data as indented JSON
func (p *Printer) printJSON(data interface{}) error {
	encoder := json.NewEncoder(p.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// printYAML prints data as a YAML document
func (p *Printer) printYAML(data interface{}) error {
	encoder := yaml.NewEncoder(p.writer)
	encoder.SetIndent(2)
	if err := encoder.Encode(data); err != nil {
		return err
	}
	return encoder.Close()
}
