// Package provider holds collection providers: components that own one
// remotely fetched collection and share it with the subtree they are mounted
// in.
//
// A Collection fetches once per mount. Refresh always fetches again. Every
// load takes a sequence number and only the latest-issued load may update
// state, so overlapping refreshes settle on the most recent call no matter
// which response arrives last.
//
//	faq := provider.NewCollection("FaqProvider", loader)
//	_ = faq.Start(ctx)
//	snap := faq.Snapshot()
//	if snap.Status.Err != nil { ... }
package provider
