package shared

import "time"

// Publication is the field group shared by everything an editor can hide:
// a visibility flag plus the creation timestamp. Embedded by Post, Category
// and Location; no behavior varies per entity, so there is no interface.
type Publication struct {
	IsPublished bool      `json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`
}
