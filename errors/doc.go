// Package errors provides the shared error value for sitekit.
//
// Every boundary (fetch, providers, theme store, form submission) reports
// failures as an *AppError carrying a machine-readable code, a human message
// and an HTTP status hint. Errors are returned, never panicked, with the one
// exception of ContextMisuse raised by component.MustUse.
package errors
