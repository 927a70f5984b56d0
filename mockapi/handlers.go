package mockapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/sitekit/errors"
	"github.com/kbukum/sitekit/site"
	"github.com/kbukum/sitekit/validation"
)

func (s *Server) registerRoutes() {
	s.engine.GET(site.PathFAQ, s.listFAQs)
	s.engine.GET(site.PathTestimonials, s.listTestimonials)
	s.engine.POST(site.PathContact, s.submitContact)
	s.engine.POST(site.PathSubscribe, s.submitSubscribe)
	s.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "up"})
	})
}

func (s *Server) listFAQs(c *gin.Context) {
	s.mu.Lock()
	items := append([]site.FAQ{}, s.faqs...)
	s.mu.Unlock()
	c.JSON(http.StatusOK, items)
}

func (s *Server) listTestimonials(c *gin.Context) {
	s.mu.Lock()
	items := append([]site.Testimonial{}, s.testimonials...)
	s.mu.Unlock()
	c.JSON(http.StatusOK, items)
}

func (s *Server) submitContact(c *gin.Context) {
	var req site.ContactRequest
	if !bindForm(c, &req) {
		return
	}
	s.mu.Lock()
	s.contacts = append(s.contacts, req)
	s.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"message": "Contact request received"})
}

func (s *Server) submitSubscribe(c *gin.Context) {
	var req site.SubscribeRequest
	if !bindForm(c, &req) {
		return
	}
	s.mu.Lock()
	s.subscriptions = append(s.subscriptions, req)
	s.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"message": "Subscribed"})
}

// bindForm decodes and validates a JSON form body, answering 400 on failure.
func bindForm(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		resp := apperrors.InvalidInput("body", "request body must be a JSON object").ToResponse()
		c.AbortWithStatusJSON(http.StatusBadRequest, resp)
		return false
	}
	if err := validation.Validate(req); err != nil {
		appErr, _ := apperrors.AsAppError(err)
		c.AbortWithStatusJSON(http.StatusBadRequest, appErr.ToResponse())
		return false
	}
	return true
}
