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

	"github.com/spf13/cobra"

	"github.com/jeremyhahn/go-slip39/pkg/metrics"
	"github.com/jeremyhahn/go-slip39/pkg/slip39"
)

func newRecoverCommand(a *app) *cobra.Command {
	var files []string

	cmd := &cobra.Command{
		Use:   "recover",
		Short: "Recover the master secret from mnemonic shares",
		Long: `Recover the master secret from mnemonic shares, one mnemonic per line.

Mnemonics are read from every --file, or from stdin when no file is given.
Shares may be supplied in any order; surplus shares are ignored.`,
		Example: `  slip39 recover --file share-1.txt --file share-3.txt
  cat shares.txt | slip39 recover -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.track(metrics.OpRecover, func() error {
				mnemonics, err := a.readMnemonics(files, cmd.InOrStdin())
				if err != nil {
					return err
				}
				if len(mnemonics) == 0 {
					return fmt.Errorf("no mnemonics provided")
				}

				secret, err := slip39.CombineMnemonics(mnemonics, slip39.WithLogger(a.logger))
				if err != nil {
					return err
				}
				defer clear(secret)

				metrics.RecordShares(metrics.OpRecover, string(slip39.TierMember), len(mnemonics))
				a.logger.Info("recovered master secret", "shares", len(mnemonics), "length", len(secret))
				return a.printer(cmd.OutOrStdout()).PrintSecret(hex.EncodeToString(secret))
			})
		},
	}

	cmd.Flags().StringArrayVarP(&files, "file", "f", nil, "file containing mnemonics, one per line (repeatable)")
	return cmd
}
