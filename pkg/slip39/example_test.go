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

package slip39_test

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/jeremyhahn/go-slip39/pkg/slip39"
)

func Example() {
	secret, _ := hex.DecodeString("000102030405060708090a0b0c0d0e0f")
	cfg := slip39.NewConfig(1, slip39.GroupSpec{Threshold: 2, Count: 3})

	mnemonics, err := slip39.GenerateMnemonics(cfg, secret)
	if err != nil {
		fmt.Println(err)
		return
	}

	recovered, err := slip39.CombineMnemonics([]string{mnemonics[0][2], mnemonics[0][0]})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(hex.EncodeToString(recovered))

	_, err = slip39.CombineMnemonics(mnemonics[0][:1])
	var insufficient *slip39.InsufficientSharesError
	if errors.As(err, &insufficient) {
		fmt.Printf("%s tier: need %d, have %d\n", insufficient.Tier, insufficient.Required, insufficient.Available)
	}
	// Output:
	// 000102030405060708090a0b0c0d0e0f
	// member tier: need 2, have 1
}

func ExampleParseMnemonic() {
	share, err := slip39.ParseMnemonic("duckling enlarge academic academic agency result length solution " +
		"fridge kidney coal piece deal husband erode duke ajar critical decision keyboard")
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(share)
	// Output:
	// share id=7945 group=1/1 (threshold 1) member=1 (threshold 1)
}
