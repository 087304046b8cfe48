// Package logctx carries correlation and request identifiers on a
// context.Context.
//
// Each inbound request gets its own context, so a value set while handling
// one request is never observable from a concurrently handled sibling
// request, and any goroutine spawned with the request's context inherits
// the value for as long as the request lives. This is the context-scoped
// slot that the enrichers in the logging package and the middleware package
// read and write; nothing in this package is a process global.
package logctx
