package site

// API paths, relative to APIConfig.BaseURL.
const (
	PathFAQ          = "/api/faq"
	PathTestimonials = "/api/testimonials"
	PathContact      = "/api/forms/contact"
	PathSubscribe    = "/api/forms/subscribe"
)

// FAQ is one accordion entry.
type FAQ struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Testimonial is one customer quote.
type Testimonial struct {
	ID         string  `json:"id"`
	Author     string  `json:"author"`
	JobRole    string  `json:"jobRole"`
	StarRating float64 `json:"starRating"`
	AvatarURL  string  `json:"avatarUrl"`
	Comment    string  `json:"comment"`
}

// Specialists a contact request can be routed to.
var Specialists = []string{"starcraft", "warhammer", "billing", "other"}

// ContactRequest is the contact form body.
type ContactRequest struct {
	FullName   string `json:"fullName" validate:"required"`
	Email      string `json:"email" validate:"required,max=125,email"`
	Specialist string `json:"specialist" validate:"required,oneof=starcraft warhammer billing other"`
}

// ValidationMessages returns the form's user-facing messages.
func (ContactRequest) ValidationMessages() map[string]string {
	return emailMessages
}

// SubscribeRequest is the newsletter form body.
type SubscribeRequest struct {
	Email string `json:"email" validate:"required,max=125,email"`
}

// ValidationMessages returns the form's user-facing messages.
func (SubscribeRequest) ValidationMessages() map[string]string {
	return emailMessages
}

var emailMessages = map[string]string{
	"email.required": "Email address is required :)",
	"email.email":    "Invalid email address",
	"email.max":      "Your Email is too long, shorten it :D",
}

// SubmitResponse is whatever JSON object a form endpoint answers with.
type SubmitResponse map[string]any

// Form notices shown after a submission.
const (
	ContactSent     = "Thank you for contacting us! Our Starcraft Master will contact you shortly to discuss your Pylon needs."
	ContactFailed   = "Not enough minerals! Please try again later."
	SubscribeSent   = "Successfully subscribed!"
	SubscribeFailed = "Failed to subscribe to newsletter"
)
