// Package app implements the domain services of every hub service on top of the
// repository, event publisher and broadcaster contracts.
//
// Services never fail a request because an event could not be published; the
// failure is logged and the stored state stays authoritative.
package app
