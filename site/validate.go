package site

import "github.com/kbukum/sitekit/validation"

// ValidateFAQs rejects entries without an id or with an id already used by
// an earlier entry.
func ValidateFAQs(items []FAQ) error {
	v := validation.New()
	seen := make(map[string]bool, len(items))
	for i, item := range items {
		v.Required(validation.Indexed(i, "id"), item.ID).
			Custom(item.ID == "" || !seen[item.ID], validation.Indexed(i, "id"), "must be unique")
		seen[item.ID] = true
	}
	return v.Validate()
}

// ValidateTestimonials rejects entries without a unique id or with a rating
// outside 0..5.
func ValidateTestimonials(items []Testimonial) error {
	v := validation.New()
	seen := make(map[string]bool, len(items))
	for i, item := range items {
		v.Required(validation.Indexed(i, "id"), item.ID).
			Custom(item.ID == "" || !seen[item.ID], validation.Indexed(i, "id"), "must be unique").
			Range(validation.Indexed(i, "starRating"), item.StarRating, 0, 5)
		seen[item.ID] = true
	}
	return v.Validate()
}
