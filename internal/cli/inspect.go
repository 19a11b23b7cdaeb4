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
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jeremyhahn/go-slip39/pkg/metrics"
	"github.com/jeremyhahn/go-slip39/pkg/slip39"
)

func newInspectCommand(a *app) *cobra.Command {
	var (
		file      string
		showValue bool
	)

	cmd := &cobra.Command{
		Use:   "inspect [mnemonic words...]",
		Short: "Decode a mnemonic share and print its metadata",
		Long: `Decode one mnemonic share, verify its checksum and print its metadata.

The mnemonic is taken from the arguments, the first line of --file, or the
first line of stdin. The share value is printed only with --show-value.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.track(metrics.OpInspect, func() error {
				mnemonic := strings.Join(args, " ")
				if mnemonic == "" {
					var files []string
					if file != "" {
						files = []string{file}
					}
					lines, err := a.readMnemonics(files, cmd.InOrStdin())
					if err != nil {
						return err
					}
					if len(lines) == 0 {
						return fmt.Errorf("no mnemonic provided")
					}
					mnemonic = lines[0]
				}

				share, err := slip39.ParseMnemonic(mnemonic)
				if err != nil {
					return err
				}

				info := &ShareInfo{
					Identifier:        share.Identifier,
					Extendable:        share.Extendable,
					IterationExponent: share.IterationExponent,
					GroupIndex:        share.GroupIndex + 1,
					GroupThreshold:    share.GroupThreshold,
					GroupCount:        share.GroupCount,
					MemberIndex:       share.MemberIndex + 1,
					MemberThreshold:   share.MemberThreshold,
					Words:             len(strings.Fields(mnemonic)),
					ValueLength:       len(share.Value),
				}
				if showValue {
					info.Value = hex.EncodeToString(share.Value)
				}
				return a.printer(cmd.OutOrStdout()).PrintShareInfo(info)
			})
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "file whose first line is the mnemonic")
	cmd.Flags().BoolVar(&showValue, "show-value", false, "print the share value as hex")
	return cmd
}

func newValidateCommand(a *app) *cobra.Command {
	var files []string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check mnemonics for valid words and checksums",
		Long: `Check each mnemonic (one per line, from --file or stdin) for unknown
words, malformed length or padding, and checksum errors. Exits non-zero if
any mnemonic is invalid.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.track(metrics.OpValidate, func() error {
				mnemonics, err := a.readMnemonics(files, cmd.InOrStdin())
				if err != nil {
					return err
				}
				if len(mnemonics) == 0 {
					return fmt.Errorf("no mnemonics provided")
				}

				results := make([]ValidationResult, len(mnemonics))
				var firstErr error
				for i, m := range mnemonics {
					results[i] = ValidationResult{Line: i + 1, Valid: true}
					if err := slip39.ValidateMnemonic(m); err != nil {
						results[i].Valid = false
						results[i].Error = err.Error()
						if firstErr == nil {
							firstErr = fmt.Errorf("mnemonic %d: %w", i+1, err)
						}
					}
				}
				if err := a.printer(cmd.OutOrStdout()).PrintValidation(results); err != nil {
					return err
				}
				return firstErr
			})
		},
	}

	cmd.Flags().StringArrayVarP(&files, "file", "f", nil, "file containing mnemonics, one per line (repeatable)")
	return cmd
}
