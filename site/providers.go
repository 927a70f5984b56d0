package site

import (
	"github.com/kbukum/sitekit/component"
	"github.com/kbukum/sitekit/provider"
)

// Provider and hook names.
const (
	FAQProviderName          = "FaqProvider"
	FAQHook                  = "useFaq"
	TestimonialsProviderName = "TestimonialsProvider"
	TestimonialsHook         = "useTestimonials"
)

// NewFAQProvider creates the FAQ collection provider.
func NewFAQProvider(c *Client, opts ...provider.Option) *provider.Collection[FAQ] {
	return provider.NewCollection[FAQ](FAQProviderName, c.FAQs, opts...)
}

// NewTestimonialsProvider creates the testimonials collection provider.
func NewTestimonialsProvider(c *Client, opts ...provider.Option) *provider.Collection[Testimonial] {
	return provider.NewCollection[Testimonial](TestimonialsProviderName, c.Testimonials, opts...)
}

// UseFAQ resolves the nearest mounted FAQ provider. It panics with a
// CONTEXT_MISUSE error when none is mounted.
func UseFAQ(tree *component.Tree) *provider.Collection[FAQ] {
	return component.MustUse[*provider.Collection[FAQ]](tree, FAQHook, FAQProviderName)
}

// UseTestimonials resolves the nearest mounted testimonials provider.
func UseTestimonials(tree *component.Tree) *provider.Collection[Testimonial] {
	return component.MustUse[*provider.Collection[Testimonial]](tree, TestimonialsHook, TestimonialsProviderName)
}
