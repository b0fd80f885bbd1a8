// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"

	"github.com/bureau-foundation/gfxinfo/lib/codec"
	"github.com/bureau-foundation/gfxinfo/lib/hwinfo"
)

// Source is the subset of a resolved GPU a report reads.
// *gfxinfo.GPU implements it.
type Source interface {
	Kind() hwinfo.Kind
	Descriptor() hwinfo.Descriptor
	Snapshot() hwinfo.Snapshot
}

// Report is the CLI's serializable view of one resolution.
type Report struct {
	Adapter     hwinfo.Kind       `json:"adapter" yaml:"adapter"`
	GPU         hwinfo.Descriptor `json:"gpu" yaml:"gpu"`
	Telemetry   hwinfo.Snapshot   `json:"telemetry" yaml:"telemetry"`
	Fingerprint string            `json:"fingerprint" yaml:"fingerprint"`
	Host        *Host             `json:"host,omitempty" yaml:"host,omitempty"`
	Attempts    []Attempt         `json:"attempts,omitempty" yaml:"attempts,omitempty"`
}

// Attempt is a resolver attempt with its error flattened to text.
type Attempt struct {
	Adapter hwinfo.Kind    `json:"adapter" yaml:"adapter"`
	Outcome hwinfo.Outcome `json:"outcome" yaml:"outcome"`
	Error   string         `json:"error,omitempty" yaml:"error,omitempty"`
}

// Attempts converts a resolver trace for reporting.
func Attempts(trace []hwinfo.Attempt) []Attempt {
	if len(trace) == 0 {
		return nil
	}
	attempts := make([]Attempt, len(trace))
	for index, attempt := range trace {
		attempts[index] = Attempt{Adapter: attempt.Kind, Outcome: attempt.Outcome}
		if attempt.Err != nil {
			attempts[index].Error = attempt.Err.Error()
		}
	}
	return attempts
}

// collectHost is replaced in tests.
var collectHost = CollectHost

// Build reads one snapshot from source and assembles a report. Host
// facts that cannot be read are omitted rather than failing the
// report.
func Build(source Source, trace []hwinfo.Attempt) (Report, error) {
	descriptor := source.Descriptor()
	fingerprint, err := Fingerprint(descriptor)
	if err != nil {
		return Report{}, err
	}
	report := Report{
		Adapter:     source.Kind(),
		GPU:         descriptor,
		Telemetry:   source.Snapshot(),
		Fingerprint: fingerprint,
		Attempts:    Attempts(trace),
	}
	if host, err := collectHost(); err == nil {
		report.Host = host
	}
	return report, nil
}

// fingerprintDomainKey separates descriptor fingerprints from any
// other BLAKE3 use of the same bytes. The key is the ASCII domain name
// zero-padded to 32 bytes.
var fingerprintDomainKey = [32]byte{
	'g', 'f', 'x', 'i', 'n', 'f', 'o', '.', 'd', 'e', 's', 'c', 'r', 'i', 'p', 't',
	'o', 'r', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

// Fingerprint returns the hex BLAKE3 keyed hash of the descriptor's
// deterministic CBOR encoding. Equal descriptors always produce equal
// fingerprints.
func Fingerprint(descriptor hwinfo.Descriptor) (string, error) {
	canonical, err := codec.Marshal(descriptor)
	if err != nil {
		return "", fmt.Errorf("encoding descriptor: %w", err)
	}
	hasher, err := blake3.NewKeyed(fingerprintDomainKey[:])
	if err != nil {
		panic("report: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write(canonical)
	return hex.EncodeToString(hasher.Sum(nil)), nil
}
