// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package hwinfo

import (
	"errors"
	"fmt"
)

// Outcome classifies a single adapter attempt.
type Outcome uint8

const (
	OutcomeSuccess Outcome = iota
	OutcomeNotFound
	OutcomeUnavailable
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeNotFound:
		return "not-found"
	case OutcomeUnavailable:
		return "unavailable"
	default:
		return fmt.Sprintf("outcome(%d)", uint8(o))
	}
}

// MarshalText renders the outcome name for JSON, YAML, and CBOR reports.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Attempt records one adapter's result during resolution.
type Attempt struct {
	Kind    Kind    `json:"adapter" yaml:"adapter"`
	Outcome Outcome `json:"outcome" yaml:"outcome"`

	// Err is the adapter's error for failed attempts, nil on success.
	Err error `json:"-" yaml:"-"`
}

// Classify maps an adapter error to an outcome. Errors that match
// neither ErrNotFound nor ErrSourceUnavailable count as unavailable:
// the adapter could not say whether a device exists.
func Classify(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, ErrNotFound):
		return OutcomeNotFound
	default:
		return OutcomeUnavailable
	}
}

// Resolver tries an ordered list of adapters and returns the first
// session one of them produces. The list is fixed at construction.
//
// Resolution is first-success-wins: there is no scoring, no preference
// for discrete over integrated devices, and no multi-GPU awareness.
type Resolver struct {
	adapters []Adapter
}

// NewResolver returns a resolver over adapters in priority order. Nil
// entries are skipped.
func NewResolver(adapters ...Adapter) *Resolver {
	resolver := &Resolver{}
	for _, adapter := range adapters {
		if adapter != nil {
			resolver.adapters = append(resolver.adapters, adapter)
		}
	}
	return resolver
}

// Adapters returns the resolver's chain in priority order.
func (r *Resolver) Adapters() []Adapter {
	return append([]Adapter(nil), r.adapters...)
}

// Resolve probes each adapter once, in order, stopping at the first
// success. The returned attempts list every adapter that was probed.
// When every adapter fails the error matches ErrNoGPUFound; the
// per-adapter errors are available through the attempts, not the
// returned error.
func (r *Resolver) Resolve() (Session, []Attempt, error) {
	attempts := make([]Attempt, 0, len(r.adapters))
	for _, adapter := range r.adapters {
		session, err := adapter.Probe()
		if err == nil && session == nil {
			err = fmt.Errorf("%s: probe returned no session: %w", adapter.Kind(), ErrSourceUnavailable)
		}
		attempt := Attempt{Kind: adapter.Kind(), Outcome: Classify(err), Err: err}
		attempts = append(attempts, attempt)
		if err == nil {
			return session, attempts, nil
		}
	}
	return nil, attempts, ErrNoGPUFound
}
