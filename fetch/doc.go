// Package fetch is a generic JSON fetch wrapper that never panics and never
// returns a separate Go error. Every outcome, including transport failures,
// non-2xx answers and malformed bodies, is folded into a Result envelope.
//
//	f := fetch.NewFetcher(adapter)
//	res := fetch.Fetch[[]site.FAQ](ctx, f, "/api/faq",
//		fetch.WithSimulatedLoading(2*time.Second))
//	if res.Err != nil {
//		// res.Message == fetch.MessageFailure
//	}
//
// Fetch does not retry. Callers decide whether and when to fetch again.
package fetch
