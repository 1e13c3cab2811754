// Copyright 2026 Oliver Eikemeier. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package analyzer

import (
	"flag"
	"strings"

	"fillmore-labs.com/closeguard/internal/config"
	"fillmore-labs.com/closeguard/internal/rules"
	"fillmore-labs.com/closeguard/internal/run"
)

// registerFlags binds the [run.Options] values to command line flag values.
// A nil flag set value defaults to the program's command line.
func registerFlags(flags *flag.FlagSet, o *run.Options) {
	if flags == nil {
		flags = flag.CommandLine
	}

	flags.Var(newBoolValue(&o.Behavior, config.IncludeGenerated), "generated", "check generated files")
	flags.Var(severityValue{&o.MinSeverity}, "min-severity", "minimum severity of reported rules (info, warning)")
	flags.Var(factoriesValue{&o.Factories}, "factory", "additional factory `function`, like \"example.com/pkg.Open\" (repeatable)")
	flags.DurationVar(&o.Timeout, "timeout", o.Timeout, "analysis time limit per package, 0 for none")

	for _, d := range rules.All() {
		flags.Var(newBoolValue(&o.Rules, d.Flag), flagName(d), "enable "+d.ID+": "+d.Title)
	}
}

type severityValue struct{ s *rules.Severity }

// Set implements [flag.Value].
func (v severityValue) Set(s string) error {
	sev, err := rules.ParseSeverity(s)
	if err != nil {
		return err
	}

	*v.s = sev

	return nil
}

// String implements [flag.Value].
func (v severityValue) String() string {
	if v.s == nil {
		return rules.Info.String()
	}

	return v.s.String()
}

type factoriesValue struct{ f *[]string }

// Set implements [flag.Value].
func (v factoriesValue) Set(s string) error {
	*v.f = append(*v.f, s)
	return nil
}

// String implements [flag.Value].
func (v factoriesValue) String() string {
	if v.f == nil || len(*v.f) == 0 {
		return ""
	}

	return (*v.f)[len(*v.f)-1]
}

// flagName returns the command line flag of a rule, like "idisp001".
func flagName(d rules.Descriptor) string {
	return strings.ToLower(d.ID)
}
