// Package api handles incoming HTTP requests for the scoring service.
//
// The Dispatcher validates the method request envelope, checks the caller's
// token and routes the call to the online_score or clients_interests
// handler. MethodHandler adapts the Dispatcher to HTTP and wraps every answer
// in the {"response"|"error", "code"} envelope.
package api
