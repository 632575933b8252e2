// Package errs defines the error types returned to API clients.
//
// Every failure that reaches the HTTP layer is, or is converted into, an
// *HTTPError so clients always receive the same JSON shape. Domain
// failures of the athlete API (missing references, duplicate CPF,
// integrity violations, unknown ids) have named constructors in
// domain.go.
package errs
