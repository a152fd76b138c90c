package domain

import "time"

// Project represents a single portfolio entry stored in the projects collection.
// It is intentionally storage-agnostic and used across repository and HTTP layers.
type Project struct {
	ID               string    `json:"_id"`
	Title            string    `json:"title"`
	ShortDescription string    `json:"short_des"`
	Description      string    `json:"description"`
	Image            string    `json:"image"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// CreateInput carries the fields accepted when a project is created.
// All four are required and must be non-empty.
type CreateInput struct {
	Title            string `json:"title" form:"title" validate:"required"`
	ShortDescription string `json:"short_des" form:"short_des" validate:"required"`
	Description      string `json:"description" form:"description" validate:"required"`
	Image            string `json:"image" form:"image" validate:"required"`
}

// Patch is a partial update. Nil fields are left untouched; non-nil fields are
// written verbatim, empty strings included.
type Patch struct {
	Title            *string `json:"title" form:"title"`
	ShortDescription *string `json:"short_des" form:"short_des"`
	Description      *string `json:"description" form:"description"`
	Image            *string `json:"image" form:"image"`
}

// NewProject builds a freshly created project; both timestamps are set to at.
func NewProject(id string, in CreateInput, at time.Time) *Project {
	return &Project{
		ID:               id,
		Title:            in.Title,
		ShortDescription: in.ShortDescription,
		Description:      in.Description,
		Image:            in.Image,
		CreatedAt:        at,
		UpdatedAt:        at,
	}
}

// Fields returns the supplied patch values keyed by their stored field names.
func (p Patch) Fields() map[string]string {
	out := make(map[string]string, 4)
	if p.Title != nil {
		out["title"] = *p.Title
	}
	if p.ShortDescription != nil {
		out["short_des"] = *p.ShortDescription
	}
	if p.Description != nil {
		out["description"] = *p.Description
	}
	if p.Image != nil {
		out["image"] = *p.Image
	}
	return out
}

// ApplyTo merges the patch into pr and stamps UpdatedAt.
func (p Patch) ApplyTo(pr *Project, at time.Time) {
	if p.Title != nil {
		pr.Title = *p.Title
	}
	if p.ShortDescription != nil {
		pr.ShortDescription = *p.ShortDescription
	}
	if p.Description != nil {
		pr.Description = *p.Description
	}
	if p.Image != nil {
		pr.Image = *p.Image
	}
	pr.UpdatedAt = NextUpdate(pr.UpdatedAt, at)
}

// Now returns the current time at the precision the document stores keep.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// NextUpdate returns at, or prev+1ms when at does not move past prev.
func NextUpdate(prev, at time.Time) time.Time {
	if at.After(prev) {
		return at
	}
	return prev.Add(time.Millisecond)
}
