// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package intel

import (
	"errors"
	"testing"

	"github.com/bureau-foundation/gfxinfo/lib/hwinfo"
)

func TestProbeIsUnavailable(t *testing.T) {
	adapter := NewAdapter()
	if adapter.Kind() != hwinfo.KindIntel {
		t.Errorf("Kind = %v, want intel", adapter.Kind())
	}
	session, err := adapter.Probe()
	if session != nil {
		t.Fatal("expected nil session")
	}
	if !errors.Is(err, hwinfo.ErrSourceUnavailable) {
		t.Errorf("Probe error = %v, want ErrSourceUnavailable", err)
	}
	if hwinfo.Classify(err) != hwinfo.OutcomeUnavailable {
		t.Errorf("Classify = %v, want unavailable", hwinfo.Classify(err))
	}
}
