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
package rules

import (
	"github.com/dlebansais/Easly-Compiler-sub002/pkg/easly/rule"
)

// All returns every rule of the standard catalog, in registration order.
func All() []rule.Rule {
	var rules []rule.Rule
	//
	rules = append(rules, declarationRules()...)
	rules = append(rules, featureRules()...)
	rules = append(rules, instructionRules()...)
	//
	return append(rules, expressionRules()...)
}

// Catalog constructs the standard catalog.  This panics if the catalog is
// inconsistent, which can only arise from a bug in this package.
func Catalog() *rule.Catalog {
	catalog, err := rule.NewCatalog(All()...)
	if err != nil {
		panic(err.Error())
	}
	//
	return catalog
}
