// internal/models/template.go
package models

import "time"

// AdTemplate is a reusable creative starting point surfaced in the template
// gallery.
type AdTemplate struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Platform  string          `json:"platform"` // facebook, instagram, both
	Thumbnail string          `json:"thumbnail,omitempty"`
	Content   TemplateContent `json:"content"`
	IsActive  bool            `json:"is_active"`
	CreatedAt time.Time       `json:"created_at"`
}

type TemplateContent struct {
	Headline     string `json:"headline"`
	Description  string `json:"description"`
	CallToAction string `json:"cta"`
}
