// Package storage provides small key-value slots for client-local settings
// such as the selected theme.
//
// Backends register a factory under a provider name. The memory backend is
// built in; import the local backend for it to be available:
//
//	import _ "github.com/kbukum/sitekit/storage/local"
//
//	store, err := storage.New(storage.Config{Provider: storage.ProviderLocal}, log)
package storage
