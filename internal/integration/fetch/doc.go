// Package fetch loads images for slides from URLs or local paths.
//
// Remote downloads go through resty on top of a retryablehttp transport,
// wait on a token-bucket limiter and pass through a circuit breaker.
// Content type is sniffed with mimetype rather than trusted from headers.
package fetch
