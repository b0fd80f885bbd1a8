// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package amdgpu

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// DefaultIDsPath is where libdrm installs its marketing-name table.
const DefaultIDsPath = "/usr/share/libdrm/amdgpu.ids"

// DefaultModelName is reported when the name table has no entry for a
// device, matching what libdrm consumers show for unlisted parts.
const DefaultModelName = "AMD Radeon Graphics"

type nameKey struct {
	deviceID uint32
	revision uint32
}

// NameTable maps (device id, PCI revision) to marketing names. It is
// parsed from libdrm's amdgpu.ids, whose rows look like:
//
//	744C,	C8,	AMD Radeon RX 7900 XTX
//
// Lines starting with '#' are comments. The first non-comment line is
// the file's version number and carries no commas.
type NameTable struct {
	Version string

	exact map[nameKey]string

	// byDevice holds the first name seen for each device id, used when
	// no row matches the revision.
	byDevice map[uint32]string
}

// LoadNameTable parses the table at path.
func LoadNameTable(path string) (*NameTable, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ParseNameTable(file)
}

// ParseNameTable parses amdgpu.ids content. Malformed rows are
// skipped; only read errors are returned.
func ParseNameTable(reader io.Reader) (*NameTable, error) {
	table := &NameTable{
		exact:    make(map[nameKey]string),
		byDevice: make(map[uint32]string),
	}

	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.SplitN(line, ",", 3)
		if len(fields) != 3 {
			if table.Version == "" {
				table.Version = line
			}
			continue
		}

		deviceID, err := strconv.ParseUint(strings.TrimSpace(fields[0]), 16, 32)
		if err != nil {
			continue
		}
		revision, err := strconv.ParseUint(strings.TrimSpace(fields[1]), 16, 32)
		if err != nil {
			continue
		}
		name := strings.TrimSpace(fields[2])
		if name == "" {
			continue
		}

		key := nameKey{deviceID: uint32(deviceID), revision: uint32(revision)}
		if _, exists := table.exact[key]; !exists {
			table.exact[key] = name
		}
		if _, exists := table.byDevice[key.deviceID]; !exists {
			table.byDevice[key.deviceID] = name
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading amdgpu.ids: %w", err)
	}
	return table, nil
}

// Len returns the number of (device, revision) rows.
func (n *NameTable) Len() int {
	if n == nil {
		return 0
	}
	return len(n.exact)
}

// Lookup returns the marketing name for a device and revision. A row
// with the same device id but a different revision is used when there
// is no exact match. A nil table finds nothing.
func (n *NameTable) Lookup(deviceID, revision uint32) (string, bool) {
	if n == nil {
		return "", false
	}
	if name, ok := n.exact[nameKey{deviceID: deviceID, revision: revision}]; ok {
		return name, true
	}
	name, ok := n.byDevice[deviceID]
	return name, ok
}

// ModelName is Lookup with the DefaultModelName fallback.
func (n *NameTable) ModelName(deviceID, revision uint32) string {
	if name, ok := n.Lookup(deviceID, revision); ok {
		return name
	}
	return DefaultModelName
}
