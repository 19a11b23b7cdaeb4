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

package slip39

import (
	"bytes"
	"cmp"
	"fmt"
	"slices"

	"github.com/jeremyhahn/go-slip39/pkg/crypto/rand"
	"github.com/jeremyhahn/go-slip39/pkg/crypto/secretsharing"
	"github.com/jeremyhahn/go-slip39/pkg/gf256"
	"github.com/jeremyhahn/go-slip39/pkg/logging"
)

// Composer splits a master secret into groups of member shares and
// recombines them.
type Composer struct {
	rng    secretsharing.RandomSource
	logger *logging.Logger
	field  *gf256.Field
}

// Option configures a Composer.
type Option func(*Composer)

// WithRandom sets the source of identifiers and polynomial coefficients.
func WithRandom(rng secretsharing.RandomSource) Option {
	return func(c *Composer) {
		if rng != nil {
			c.rng = rng
		}
	}
}

// WithLogger sets the logger. Secrets and share values are never logged.
func WithLogger(logger *logging.Logger) Option {
	return func(c *Composer) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithField overrides the shared GF(256) tables.
func WithField(f *gf256.Field) Option {
	return func(c *Composer) {
		if f != nil {
			c.field = f
		}
	}
}

// NewComposer returns a Composer backed by the system CSPRNG unless
// WithRandom says otherwise.
func NewComposer(opts ...Option) *Composer {
	c := &Composer{
		rng:    &rand.SoftwareResolver{},
		logger: logging.Discard(),
		field:  gf256.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Split divides secret per cfg. The result holds one slice of member
// shares per group, in group order.
func (c *Composer) Split(cfg *Config, secret []byte) ([][]*Share, error) {
	if cfg == nil {
		return nil, &ConfigError{Field: "config", Message: "cannot be nil"}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := validateSecretLength(len(secret)); err != nil {
		return nil, err
	}

	identifier, err := c.newIdentifier()
	if err != nil {
		return nil, err
	}

	groupShares, err := c.splitLevel(cfg.GroupThreshold, len(cfg.Groups), secret)
	if err != nil {
		return nil, fmt.Errorf("group split: %w", err)
	}
	defer func() {
		for _, gs := range groupShares {
			clear(gs.Value)
		}
	}()

	out := make([][]*Share, len(cfg.Groups))
	for i, group := range cfg.Groups {
		memberShares, err := c.splitLevel(group.Threshold, group.Count, groupShares[i].Value)
		if err != nil {
			return nil, fmt.Errorf("member split for group %d: %w", i+1, err)
		}
		out[i] = make([]*Share, len(memberShares))
		for j, ms := range memberShares {
			out[i][j] = &Share{
				Identifier:        identifier,
				Extendable:        cfg.Extendable,
				IterationExponent: cfg.IterationExponent,
				GroupIndex:        i,
				GroupThreshold:    cfg.GroupThreshold,
				GroupCount:        len(cfg.Groups),
				MemberIndex:       j,
				MemberThreshold:   group.Threshold,
				Value:             ms.Value,
			}
		}
	}

	c.logger.Debug("split master secret",
		"identifier", identifier,
		"group_threshold", cfg.GroupThreshold,
		"groups", len(cfg.Groups),
		"shares", cfg.ShareCount())
	return out, nil
}

// splitLevel runs one Shamir split and checks that the first threshold
// shares reproduce the input.
func (c *Composer) splitLevel(threshold, count int, secret []byte) ([]secretsharing.Share, error) {
	shamir, err := secretsharing.NewShamir(&secretsharing.ShareConfig{
		Threshold:   threshold,
		TotalShares: count,
	}, c.rng, secretsharing.WithField(c.field))
	if err != nil {
		return nil, err
	}
	shares, err := shamir.Split(secret)
	if err != nil {
		return nil, err
	}
	ok, err := shamir.Verify(secret, shares)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("self-verification failed for %d-of-%d split", threshold, count)
	}
	return shares, nil
}

func (c *Composer) newIdentifier() (uint16, error) {
	b, err := c.rng.Rand(2)
	if err != nil {
		return 0, fmt.Errorf("failed to generate identifier: %w", err)
	}
	if len(b) != 2 {
		return 0, fmt.Errorf("random source returned %d bytes, want 2", len(b))
	}
	return (uint16(b[0])<<8 | uint16(b[1])) & MaxIdentifier, nil
}

type memberSet struct {
	threshold int
	members   []*Share
}

// Combine recovers the master secret. Shares may be given in any order;
// when more than a threshold is available the lowest indexes are used.
func (c *Composer) Combine(shares []*Share) ([]byte, error) {
	if len(shares) == 0 {
		return nil, &InsufficientSharesError{Tier: TierGroup, Required: 1, Available: 0}
	}
	if err := checkConsistency(shares); err != nil {
		return nil, err
	}
	first := shares[0]

	groups := make(map[int]*memberSet)
	for _, s := range shares {
		set, ok := groups[s.GroupIndex]
		if !ok {
			set = &memberSet{threshold: s.MemberThreshold}
			groups[s.GroupIndex] = set
		}
		if s.MemberThreshold != set.threshold {
			return nil, &IncompatibleSharesError{Field: "member_threshold", Want: set.threshold, Got: s.MemberThreshold}
		}
		dup := false
		for _, m := range set.members {
			if m.MemberIndex != s.MemberIndex {
				continue
			}
			if !bytes.Equal(m.Value, s.Value) {
				return nil, &IncompatibleSharesError{Field: "member_index", Want: m.MemberIndex, Got: s.MemberIndex}
			}
			dup = true
			break
		}
		if !dup {
			set.members = append(set.members, s)
		}
	}

	indexes := make([]int, 0, len(groups))
	for idx := range groups {
		indexes = append(indexes, idx)
	}
	slices.Sort(indexes)

	complete := make([]int, 0, len(indexes))
	for _, idx := range indexes {
		if len(groups[idx].members) >= groups[idx].threshold {
			complete = append(complete, idx)
		}
	}

	if len(indexes) < first.GroupThreshold {
		return nil, &InsufficientSharesError{
			Tier:      TierGroup,
			Required:  first.GroupThreshold,
			Available: len(complete),
		}
	}
	if len(complete) < first.GroupThreshold {
		for _, idx := range indexes {
			set := groups[idx]
			if len(set.members) < set.threshold {
				return nil, &InsufficientSharesError{
					Tier:       TierMember,
					GroupIndex: idx,
					Required:   set.threshold,
					Available:  len(set.members),
				}
			}
		}
	}

	groupPoints := make([]secretsharing.Share, 0, first.GroupThreshold)
	defer func() {
		for _, p := range groupPoints {
			clear(p.Value)
		}
	}()
	for _, idx := range complete[:first.GroupThreshold] {
		set := groups[idx]
		slices.SortFunc(set.members, func(a, b *Share) int {
			return cmp.Compare(a.MemberIndex, b.MemberIndex)
		})
		points := make([]secretsharing.Share, set.threshold)
		for i, m := range set.members[:set.threshold] {
			points[i] = secretsharing.Share{Index: byte(m.MemberIndex + 1), Value: m.Value}
		}
		groupSecret, err := secretsharing.CombineWithField(c.field, points)
		if err != nil {
			return nil, fmt.Errorf("group %d: %w", idx+1, err)
		}
		groupPoints = append(groupPoints, secretsharing.Share{Index: byte(idx + 1), Value: groupSecret})
	}

	secret, err := secretsharing.CombineWithField(c.field, groupPoints)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("combined shares",
		"identifier", first.Identifier,
		"groups_used", len(groupPoints),
		"shares_supplied", len(shares))
	return secret, nil
}

// checkConsistency compares every share against the first in a fixed field
// order and reports the first mismatch.
func checkConsistency(shares []*Share) error {
	for _, s := range shares {
		if s == nil {
			return &MnemonicError{Reason: "nil share"}
		}
		if err := s.validate(); err != nil {
			return err
		}
		if s.GroupIndex >= s.GroupCount {
			return &MnemonicError{
				Reason: fmt.Sprintf("group index %d exceeds group count %d", s.GroupIndex+1, s.GroupCount),
			}
		}
	}

	first := shares[0]
	for _, s := range shares[1:] {
		switch {
		case s.Identifier != first.Identifier:
			return &IncompatibleSharesError{Field: "identifier", Want: int(first.Identifier), Got: int(s.Identifier)}
		case s.Extendable != first.Extendable:
			return &IncompatibleSharesError{Field: "extendable", Want: boolInt(first.Extendable), Got: boolInt(s.Extendable)}
		case s.IterationExponent != first.IterationExponent:
			return &IncompatibleSharesError{Field: "iteration_exponent", Want: first.IterationExponent, Got: s.IterationExponent}
		case s.GroupThreshold != first.GroupThreshold:
			return &IncompatibleSharesError{Field: "group_threshold", Want: first.GroupThreshold, Got: s.GroupThreshold}
		case s.GroupCount != first.GroupCount:
			return &IncompatibleSharesError{Field: "group_count", Want: first.GroupCount, Got: s.GroupCount}
		case len(s.Value) != len(first.Value):
			return &IncompatibleSharesError{Field: "value_length", Want: len(first.Value), Got: len(s.Value)}
		}
	}
	return nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// GenerateMnemonics splits secret and encodes every share. The result holds
// one slice of mnemonics per group.
func GenerateMnemonics(cfg *Config, secret []byte, opts ...Option) ([][]string, error) {
	groups, err := NewComposer(opts...).Split(cfg, secret)
	if err != nil {
		return nil, err
	}
	out := make([][]string, len(groups))
	for i, members := range groups {
		out[i] = make([]string, len(members))
		for j, s := range members {
			if out[i][j], err = s.Mnemonic(); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

// CombineMnemonics decodes mnemonics and recovers the master secret.
func CombineMnemonics(mnemonics []string, opts ...Option) ([]byte, error) {
	shares := make([]*Share, len(mnemonics))
	for i, m := range mnemonics {
		s, err := ParseMnemonic(m)
		if err != nil {
			return nil, fmt.Errorf("mnemonic %d: %w", i+1, err)
		}
		shares[i] = s
	}
	return NewComposer(opts...).Combine(shares)
}
