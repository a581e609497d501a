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
package slot

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Once_01(t *testing.T) {
	s := NewOnce[int]("value")
	//
	assert.False(t, s.IsReady())
	assert.Equal(t, WriteOnce, s.Discipline())
	_, err := s.Get()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnassigned))
	assert.True(t, errors.Is(err, ErrStructural))
	//
	require.NoError(t, s.Set(5))
	assert.True(t, s.IsReady())
	assert.Equal(t, 5, s.Value())
}

func Test_Once_02(t *testing.T) {
	s := NewOnce[string]("name")
	require.NoError(t, s.Set("a"))
	// Second assignment is a violation, and leaves the first value in place.
	err := s.Set("b")
	assert.True(t, errors.Is(err, ErrAlreadyAssigned))
	assert.Equal(t, "a", s.Value())
}

func Test_Once_03(t *testing.T) {
	s := NewOnce[int]("value")
	//
	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(*Error)
		require.True(t, ok)
		assert.Equal(t, "value", err.Slot)
		assert.True(t, errors.Is(err, ErrUnassigned))
	}()
	//
	s.Value()
}

func Test_Optional_01(t *testing.T) {
	s := NewOptional[int]("else", false)
	// Absent slots are immediately ready.
	assert.True(t, s.IsReady())
	assert.False(t, s.IsPresent())
	v, err := s.Get()
	require.NoError(t, err)
	assert.True(t, v.IsEmpty())
	assert.True(t, errors.Is(s.Set(1), ErrAbsent))
}

func Test_Optional_02(t *testing.T) {
	s := NewOptional[int]("else", true)
	//
	assert.False(t, s.IsReady())
	_, err := s.Get()
	assert.True(t, errors.Is(err, ErrUnassigned))
	require.NoError(t, s.Set(3))
	assert.True(t, s.IsReady())
	assert.Equal(t, 3, s.Value().Unwrap())
	assert.True(t, errors.Is(s.Set(4), ErrAlreadyAssigned))
}

func Test_List_01(t *testing.T) {
	s := NewList[string]("exceptions")
	//
	require.NoError(t, s.Append("A", "B"))
	assert.False(t, s.IsReady())
	assert.Equal(t, []string{"A", "B"}, s.Items())
	require.NoError(t, s.Seal())
	assert.True(t, s.IsReady())
	assert.True(t, errors.Is(s.Append("C"), ErrSealed))
	assert.True(t, errors.Is(s.Seal(), ErrSealed))
	assert.Equal(t, 2, s.Len())
}

func Test_List_02(t *testing.T) {
	s := NewList[int]("items")
	require.NoError(t, s.SealWith())
	// Empty but sealed is still ready.
	assert.True(t, s.IsReady())
	assert.Equal(t, 0, s.Len())
}

func Test_Table_01(t *testing.T) {
	s := NewTable[string, int]("table")
	//
	require.NoError(t, s.Put("z", 1))
	require.NoError(t, s.Put("a", 2))
	assert.True(t, errors.Is(s.Put("z", 3), ErrDuplicateKey))
	assert.Equal(t, []string{"z", "a"}, s.Keys())
	//
	v, ok := s.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 2, v)
	assert.False(t, s.IsReady())
	require.NoError(t, s.Seal())
	assert.True(t, s.IsReady())
	assert.True(t, errors.Is(s.Put("b", 4), ErrSealed))
}

func Test_Table_02(t *testing.T) {
	var s Table[string, int]
	// Zero tables are usable.
	require.NoError(t, s.Put("x", 1))
	assert.True(t, s.Has("x"))
	assert.False(t, s.Has("y"))
}
