package entity

import "time"

type Author struct {
	Name  *string `json:"name"`
	Email string  `json:"email"`
}

type BlogPost struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Content   string    `json:"content"`
	Excerpt   *string   `json:"excerpt"`
	Published bool      `json:"published"`
	AuthorID  string    `json:"authorId"`
	Author    *Author   `json:"author,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BlogPatch lists the fields of a partial update; nil means unchanged.
type BlogPatch struct {
	Title     *string
	Slug      *string
	Content   *string
	Excerpt   *string
	Published *bool
}

func (p BlogPatch) Empty() bool {
	return p.Title == nil && p.Slug == nil && p.Content == nil && p.Excerpt == nil && p.Published == nil
}
