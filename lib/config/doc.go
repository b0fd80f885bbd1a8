// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for gfxinfo.
//
// Configuration is read from a single file named by either the
// GFXINFO_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). There is no automatic file search. When neither is
// given, [Discover] returns [Default]: every setting has a working
// default, so a config file is only needed to override paths or
// disable adapters.
//
// Files are YAML. Files ending in .json or .jsonc are accepted too;
// comments and trailing commas are stripped before decoding.
//
// Variable expansion is performed on path fields after loading:
// ${HOME} and ${VAR:-default} patterns are expanded.
//
// Key exports:
//
//   - [Config] -- master struct with Log, Adapters, AMDGPU, Nvidia,
//     IORegistry, Serve, and Watch sections
//   - [Default] -- returns a Config with built-in defaults
//   - [Load], [LoadFile], and [Discover] -- the entry points for loading
package config
