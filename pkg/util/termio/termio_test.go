// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package termio

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Escape_01(t *testing.T) {
	assert.Equal(t, "\033[0m", ResetAnsiEscape().Build())
	assert.Equal(t, "\033[1;31m", BoldAnsiEscape().FgColour(TERM_RED).Build())
	assert.Equal(t, "\033[32;44m", NewAnsiEscape().FgColour(TERM_GREEN).BgColour(TERM_BLUE).Build())
}

func Test_Escape_02(t *testing.T) {
	red := NewAnsiEscape().FgColour(TERM_RED)
	//
	assert.Equal(t, "x", red.Wrap("x", false))
	assert.Equal(t, "x", NewAnsiEscape().Wrap("x", true))
	assert.Equal(t, "\033[31mx\033[0m", red.Wrap("x", true))
}

func Test_Table_01(t *testing.T) {
	var (
		buf bytes.Buffer
		tbl = NewTablePrinter(3, 2)
	)
	//
	tbl.SetRow(0, "name", "kind", "tier")
	tbl.SetRow(1, "number-type", "NumberExpression", "resolution")
	tbl.SetEscape(0, 0, BoldAnsiEscape())
	tbl.AnsiEscapes(false)
	require.NoError(t, tbl.Print(&buf))
	//
	expected := "name        kind             tier\n" +
		"number-type NumberExpression resolution\n"
	assert.Equal(t, expected, buf.String())
	assert.Equal(t, uint(2), tbl.Height())
	assert.Equal(t, "kind", tbl.Get(1, 0))
}

func Test_Table_02(t *testing.T) {
	var (
		buf bytes.Buffer
		tbl = NewTablePrinter(2, 1)
	)
	//
	tbl.SetRow(0, "abcdefgh", "x")
	tbl.SetMaxWidth(0, 5)
	require.NoError(t, tbl.Print(&buf))
	assert.Equal(t, "abc.. x\n", buf.String())
}
