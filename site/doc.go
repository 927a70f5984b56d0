// Package site binds the fetch wrapper and providers to the marketing site
// API: its endpoints, models, form submissions and configuration.
package site
