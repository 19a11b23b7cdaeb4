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
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/jeremyhahn/go-slip39/pkg/crypto/rand"
	"github.com/jeremyhahn/go-slip39/pkg/metrics"
	"github.com/jeremyhahn/go-slip39/pkg/slip39"
)

type generateOptions struct {
	secretHex         string
	randomLength      int
	groupThreshold    int
	groups            []string
	iterationExponent int
	extendable        bool
	outDir            string
}

func newGenerateCommand(a *app) *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Split a master secret into mnemonic shares",
		Long: `Split a master secret into groups of mnemonic shares.

The secret is given as hex with --secret, or generated from the configured
random source with --random-length (default 16 bytes). Groups are given as
threshold/count pairs; without --group the config file layout is used.`,
		Example: `  slip39 generate --random-length 32
  slip39 generate --secret 000102030405060708090a0b0c0d0e0f --group 2/3
  slip39 generate --group-threshold 2 --group 1/1 --group 2/3 --group 3/5 --out-dir ./shares`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.track(metrics.OpGenerate, func() error {
				return a.runGenerate(cmd, opts)
			})
		},
	}

	cmd.Flags().StringVar(&opts.secretHex, "secret", "", "master secret as hex (16-32 bytes, even length)")
	cmd.Flags().IntVar(&opts.randomLength, "random-length", 0, "generate a random master secret of this many bytes")
	cmd.Flags().IntVar(&opts.groupThreshold, "group-threshold", 0, "number of groups required to recover")
	cmd.Flags().StringArrayVar(&opts.groups, "group", nil, "group as threshold/count, e.g. 2/3 (repeatable)")
	cmd.Flags().IntVar(&opts.iterationExponent, "iteration-exponent", slip39.DefaultIterationExponent, "iteration exponent recorded in each share (0-15)")
	cmd.Flags().BoolVar(&opts.extendable, "extendable", true, "mark the share set as extendable")
	cmd.Flags().StringVar(&opts.outDir, "out-dir", "", "write one file per share into this directory")
	cmd.MarkFlagsMutuallyExclusive("secret", "random-length")

	return cmd
}

func (a *app) runGenerate(cmd *cobra.Command, opts *generateOptions) error {
	cfg, err := a.splitConfig(cmd, opts)
	if err != nil {
		return err
	}

	rc, err := a.cfg.ResolverConfig()
	if err != nil {
		return err
	}
	resolver, err := rand.NewResolver(rc)
	if err != nil {
		return fmt.Errorf("failed to initialize random source: %w", err)
	}
	defer func() { _ = resolver.Close() }()

	secret, err := masterSecret(opts, resolver)
	if err != nil {
		return err
	}
	defer clear(secret)

	composer := slip39.NewComposer(slip39.WithRandom(resolver), slip39.WithLogger(a.logger))
	groups, err := composer.Split(cfg, secret)
	if err != nil {
		return err
	}

	result := &GenerateResult{
		Identifier:        groups[0][0].Identifier,
		Extendable:        cfg.Extendable,
		IterationExponent: cfg.IterationExponent,
		GroupThreshold:    cfg.GroupThreshold,
		Groups:            make([]GroupResult, len(groups)),
	}

	outDir := opts.outDir
	if outDir == "" {
		outDir = a.cfg.Output.Directory
	}
	if outDir != "" {
		if err := a.fs.MkdirAll(outDir, 0700); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	for gi, members := range groups {
		gr := GroupResult{
			Index:     gi + 1,
			Threshold: cfg.Groups[gi].Threshold,
			Count:     cfg.Groups[gi].Count,
		}
		for _, share := range members {
			mnemonic, err := share.Mnemonic()
			if err != nil {
				return err
			}
			if outDir == "" {
				gr.Mnemonics = append(gr.Mnemonics, mnemonic)
				continue
			}
			path := filepath.Join(outDir, shareFileName(share))
			if err := afero.WriteFile(a.fs, path, []byte(mnemonic+"\n"), 0600); err != nil {
				return fmt.Errorf("failed to write share file: %w", err)
			}
			gr.Files = append(gr.Files, path)
		}
		result.Groups[gi] = gr
	}

	metrics.RecordShares(metrics.OpGenerate, string(slip39.TierGroup), len(groups))
	metrics.RecordShares(metrics.OpGenerate, string(slip39.TierMember), cfg.ShareCount())
	a.logger.Info("generated shares",
		"identifier", result.Identifier,
		"groups", len(groups),
		"shares", cfg.ShareCount())

	return a.printer(cmd.OutOrStdout()).PrintGenerateResult(result)
}

// splitConfig starts from the config file layout and applies the flags
// that were set.
func (a *app) splitConfig(cmd *cobra.Command, opts *generateOptions) (*slip39.Config, error) {
	cfg := a.cfg.SlipConfig()

	if len(opts.groups) > 0 {
		groups := make([]slip39.GroupSpec, len(opts.groups))
		for i, g := range opts.groups {
			spec, err := parseGroup(g)
			if err != nil {
				return nil, err
			}
			groups[i] = spec
		}
		cfg.Groups = groups
		if !cmd.Flags().Changed("group-threshold") && cfg.GroupThreshold > len(groups) {
			cfg.GroupThreshold = len(groups)
		}
	}
	if cmd.Flags().Changed("group-threshold") {
		cfg.GroupThreshold = opts.groupThreshold
	}
	if cmd.Flags().Changed("iteration-exponent") {
		cfg.IterationExponent = opts.iterationExponent
	}
	if cmd.Flags().Changed("extendable") {
		cfg.Extendable = opts.extendable
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// parseGroup parses "T/N" or "TofN".
func parseGroup(s string) (slip39.GroupSpec, error) {
	sep := "/"
	if !strings.Contains(s, sep) {
		sep = "of"
	}
	parts := strings.SplitN(strings.ToLower(strings.TrimSpace(s)), sep, 2)
	if len(parts) != 2 {
		return slip39.GroupSpec{}, fmt.Errorf("invalid group %q: expected threshold/count", s)
	}
	threshold, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return slip39.GroupSpec{}, fmt.Errorf("invalid group %q: %w", s, err)
	}
	count, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return slip39.GroupSpec{}, fmt.Errorf("invalid group %q: %w", s, err)
	}
	return slip39.GroupSpec{Threshold: threshold, Count: count}, nil
}

func masterSecret(opts *generateOptions, resolver rand.Resolver) ([]byte, error) {
	if opts.secretHex != "" {
		secret, err := hex.DecodeString(strings.TrimPrefix(opts.secretHex, "0x"))
		if err != nil {
			return nil, fmt.Errorf("invalid --secret: %w", err)
		}
		return secret, nil
	}

	n := opts.randomLength
	if n == 0 {
		n = slip39.MinSecretLength
	}
	if n < slip39.MinSecretLength || n > slip39.MaxSecretLength || n%2 != 0 {
		return nil, &slip39.ConfigError{
			Field:   "random_length",
			Message: fmt.Sprintf("must be an even number in [%d, %d], got %d", slip39.MinSecretLength, slip39.MaxSecretLength, n),
		}
	}
	secret, err := resolver.Rand(n)
	if err != nil {
		return nil, fmt.Errorf("failed to generate master secret: %w", err)
	}
	return secret, nil
}

func shareFileName(s *slip39.Share) string {
	return fmt.Sprintf("share-%05d-g%02d-m%02d.txt", s.Identifier, s.GroupIndex+1, s.MemberIndex+1)
}
