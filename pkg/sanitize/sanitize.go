// Package sanitize strips embedded null characters from user-supplied
// text before it reaches a storage backend. PostgreSQL rejects null
// bytes in text columns and the REST-fronted backend cannot enforce
// this itself, so sanitization runs once at the facade boundary and
// behaves identically on both paths.
package sanitize

import (
	"strings"

	"github.com/openhunt/openhunt/pkg/model"
)

// String removes every null character (code point 0) from s, leaving
// all other content untouched.
func String(s string) string {
	return strings.ReplaceAll(s, "\x00", "")
}

// StringPtr sanitizes the pointed-to string in place. Nil is a no-op.
func StringPtr(p *string) {
	if p != nil {
		*p = String(*p)
	}
}

// Strings sanitizes every element of the slice in place.
func Strings(ss []string) {
	for i := range ss {
		ss[i] = String(ss[i])
	}
}

// CreateProductRequest sanitizes all text fields of a submission.
func CreateProductRequest(r *model.CreateProductRequest) {
	r.Name = String(r.Name)
	r.Slogan = String(r.Slogan)
	r.Description = String(r.Description)
	r.Website = String(r.Website)
	StringPtr(r.LogoURL)
	r.Category = String(r.Category)
	Strings(r.Tags)
	r.MakerName = String(r.MakerName)
	r.MakerEmail = String(r.MakerEmail)
	StringPtr(r.MakerWebsite)
	r.Language = String(r.Language)
}

// UpdateProductRequest sanitizes only the fields present in the
// partial update.
func UpdateProductRequest(r *model.UpdateProductRequest) {
	StringPtr(r.Name)
	StringPtr(r.Slogan)
	StringPtr(r.Description)
	StringPtr(r.Website)
	StringPtr(r.LogoURL)
	StringPtr(r.Category)
	if r.Tags != nil {
		Strings(*r.Tags)
	}
	StringPtr(r.Language)
	StringPtr(r.Status)
}

// Categories sanitizes all fields of a category upsert batch.
func Categories(batch []model.CategoryInput) {
	for i := range batch {
		batch[i].ID = String(batch[i].ID)
		batch[i].NameEN = String(batch[i].NameEN)
		StringPtr(batch[i].NameZH)
		batch[i].Icon = String(batch[i].Icon)
		batch[i].Color = String(batch[i].Color)
	}
}
