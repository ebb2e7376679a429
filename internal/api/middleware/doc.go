// Package middleware holds the gin middleware in front of the HTTP API.
//
// CORS admits loopback origins unless the config names others, because the
// API reads and writes files on this machine. RateLimit keeps one token
// bucket per client IP and evicts idle ones. GlobalRateLimit shares a single
// bucket across all clients.
package middleware
