package mockapi

import "github.com/kbukum/sitekit/site"

// DefaultFAQs is the FAQ list served when none is set.
func DefaultFAQs() []site.FAQ {
	return []site.FAQ{
		{ID: "1", Title: "Is any of my personal information stored in the App?", Content: "No. The app keeps only what it needs to show your balance and never shares it."},
		{ID: "2", Title: "What formats can I download my transaction history in?", Content: "Statements can be downloaded as PDF or CSV from the history page."},
		{ID: "3", Title: "Can I schedule future transfers?", Content: "Yes, pick a date when creating the transfer and it will be sent on that day."},
		{ID: "4", Title: "When can I use Banking App services?", Content: "Every day, around the clock. Some transfers settle on the next business day."},
		{ID: "5", Title: "Can I create my own password that is easy for me to remember?", Content: "You can, as long as it meets the minimum length and complexity rules."},
	}
}

// DefaultTestimonials is the testimonial list served when none is set.
func DefaultTestimonials() []site.Testimonial {
	return []site.Testimonial{
		{ID: "1", Author: "Fannie Summers", JobRole: "Designer", StarRating: 4, AvatarURL: "/images/avatars/fannie.png", Comment: "Easy to use and the budgeting view finally keeps me on track."},
		{ID: "2", Author: "Albert Flores", JobRole: "Developer", StarRating: 5, AvatarURL: "/images/avatars/albert.png", Comment: "Transfers are instant and the notifications are exactly as detailed as I want."},
	}
}
