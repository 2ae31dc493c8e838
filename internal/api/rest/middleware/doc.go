// Package middleware holds the gin middleware shared by every service: bearer
// authentication, request ids, access logging, panic recovery, tracing, rate
// limiting and CORS.
package middleware
