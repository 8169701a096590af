// Package download fetches runtime installer artifacts and verifies them.
//
// # Transfer
//
// Downloader performs a single blocking GET per artifact with no retries and
// no client timeout. The body is streamed to "<dest>.tmp" and renamed into
// place, so a failed transfer never leaves a partial artifact at dest.
//
// # Progress
//
// Progress rendering is advisory. Downloader hands the response body and the
// server's Content-Length to a Reporter; BarReporter draws a pb progress bar
// and skips rendering entirely when the size is unknown. Tests use
// NopReporter.
//
// # Verification
//
// Node.js publishes SHASUMS256.txt (and a clearsigned SHASUMS256.txt.asc)
// next to every artifact. Verifier supports:
//
//  1. checksum: fetch SHASUMS256.txt and compare the artifact's SHA-256
//  2. signature: fetch SHASUMS256.txt.asc, authenticate it against an
//     armored OpenPGP keyring, then compare the SHA-256
//
// Verification failures are fatal to the install step.
package download
