// Package validation checks form input and decoded API payloads.
//
// Struct tag validation (go-playground/validator) is used for forms:
//
//	type SubscribeRequest struct {
//	    Email string `json:"email" validate:"required,max=125,email"`
//	}
//	err := validation.Validate(req)
//
// A type can replace the default messages by implementing Messager.
//
// Programmatic validation collects errors for payload checks:
//
//	v := validation.New()
//	v.Required("[0].id", item.ID).Range("[0].starRating", item.StarRating, 0, 5)
//	err := v.Validate()
//
// Both return an INVALID_INPUT *errors.AppError listing every failed field.
package validation
