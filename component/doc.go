// Package component defines lifecycle-managed units and the tree they are
// mounted into.
//
// A Tree plays the role of a render tree: components are added, mounted in
// order and unmounted in reverse. Consumers resolve a mounted component by
// name with Use, walking from their own subtree up to the root so the nearest
// one wins. MustUse is the only API in sitekit that panics: it reports a
// consumer wired outside of its provider, which is a programming error.
//
//	tree := component.NewTree()
//	_ = tree.Add(faqProvider)
//	_ = tree.Mount(ctx)
//	defer tree.Unmount(ctx)
//
//	faq := component.MustUse[*provider.Collection[site.FAQ]](tree, "useFaq", "FaqProvider")
package component
