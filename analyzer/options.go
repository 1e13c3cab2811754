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
	"log/slog"
	"strings"
	"time"

	"fillmore-labs.com/closeguard/internal/config"
	"fillmore-labs.com/closeguard/internal/rules"
	"fillmore-labs.com/closeguard/internal/run"
)

// Option configures specific behavior of a [New] closeguard analyzer.
type Option interface {
	apply(r *run.Options)
	LogAttr() slog.Attr
}

// Options is a list of [Option] values that itself satisfies the [Option] interface.
type Options []Option

// LogValue implements [slog.LogValuer].
func (o Options) LogValue() slog.Value {
	as := make([]slog.Attr, 0, len(o))
	as = appendOptions(as, o)

	return slog.GroupValue(as...)
}

func appendOptions(as []slog.Attr, o Options) []slog.Attr {
	for _, opt := range o {
		switch opt := opt.(type) {
		case nil:
			as = append(as, slog.String("nil", "<nil>"))

		case Options:
			as = appendOptions(as, opt)

		default:
			as = append(as, opt.LogAttr())
		}
	}

	return as
}

func (o Options) apply(r *run.Options) {
	for _, opt := range o {
		if opt == nil {
			continue
		}

		opt.apply(r)
	}
}

// LogAttr is for logging with [slog.Logger.LogAttrs].
func (o Options) LogAttr() slog.Attr {
	return slog.Any("options", o)
}

// WithGenerated is an [Option] to configure diagnostics in generated files.
func WithGenerated(generated bool) Option { return generatedOption{generated: generated} }

type generatedOption struct{ generated bool }

func (o generatedOption) apply(r *run.Options) {
	r.Behavior.Set(config.IncludeGenerated, o.generated)
}

func (o generatedOption) LogAttr() slog.Attr {
	return slog.Bool("generated", o.generated)
}

// WithRule is an [Option] to enable or disable a rule by its identifier, like "IDISP001".
// Unknown identifiers are ignored.
func WithRule(id string, enabled bool) Option { return ruleOption{id: id, enabled: enabled} }

type ruleOption struct {
	id      string
	enabled bool
}

func (o ruleOption) apply(r *run.Options) {
	d, err := rules.ByID(o.id)
	if err != nil {
		return
	}

	r.Rules.Set(d.Flag, o.enabled)
}

func (o ruleOption) LogAttr() slog.Attr {
	return slog.Bool(strings.ToLower(o.id), o.enabled)
}

// WithMinSeverity is an [Option] to suppress rules below a severity, "info" or "warning".
// Unknown severities are ignored.
func WithMinSeverity(severity string) Option { return minSeverityOption{severity: severity} }

type minSeverityOption struct{ severity string }

func (o minSeverityOption) apply(r *run.Options) {
	if sev, err := rules.ParseSeverity(o.severity); err == nil {
		r.MinSeverity = sev
	}
}

func (o minSeverityOption) LogAttr() slog.Attr {
	return slog.String("min-severity", o.severity)
}

// WithFactories is an [Option] to add functions returning resources owned by the caller,
// as "path.Func" or "(path.Type).Method".
func WithFactories(factories ...string) Option { return factoriesOption{factories: factories} }

type factoriesOption struct{ factories []string }

func (o factoriesOption) apply(r *run.Options) {
	r.Factories = append(r.Factories, o.factories...)
}

func (o factoriesOption) LogAttr() slog.Attr {
	return slog.Any("factories", o.factories)
}

// WithTimeout is an [Option] to limit the analysis time of a single package.
func WithTimeout(timeout time.Duration) Option { return timeoutOption{timeout: timeout} }

type timeoutOption struct{ timeout time.Duration }

func (o timeoutOption) apply(r *run.Options) {
	r.Timeout = o.timeout
}

func (o timeoutOption) LogAttr() slog.Attr {
	return slog.Duration("timeout", o.timeout)
}
