// Package config loads the optional project configuration for
// frameforge-setup.
//
// # Overview
//
// A project may ship a setup.lua next to its package.json to override the
// runtime being bootstrapped, the pinned installer release, the dependency
// marker directory, the npm scripts used for the dev server and the build,
// and how downloaded installers are verified. Every field is optional; a
// missing file means the defaults returned by Default.
//
// # Schema
//
//	setup = {
//	  runtime = {
//	    name = "node",            -- executable probed with --version
//	    label = "Node.js",        -- name shown in messages
//	    package_tool = "npm",     -- companion dependency tool
//	    min_major = 18,           -- required major version
//	    release = "20.10.0",      -- pinned installer release (semver)
//	    dist = "https://nodejs.org/dist",
//	  },
//	  deps = { marker = "node_modules" },
//	  scripts = { dev = "dev", build = "build", output = "dist" },
//	  verify = "checksum",        -- "none", "checksum" or "signature"
//	  keyring = "keys/nodejs.asc" -- armored OpenPGP keys, for "signature"
//	}
//
// # Sandboxing
//
// The file is evaluated with gopher-lua in a restricted VM: the os, io and
// debug libraries and every code-loading function are removed. A read-only
// platform table (see the platform package) is injected first, so configs
// can branch on the host:
//
//	setup = {
//	  verify = platform.is_windows and "none" or "checksum",
//	}
package config
