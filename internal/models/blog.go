package models

import "time"

// AssetRef identifies a media object held in remote storage. Both fields are
// always present; an upload either yields a complete reference or fails.
type AssetRef struct {
	PublicID string `json:"public_id"`
	URL      string `json:"url"`
}

// Blog represents a published or draft article. The author's name and avatar
// are denormalized at creation time and are not kept in sync with later
// profile edits.
type Blog struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Intro     string   `json:"intro"`
	Category  string   `json:"category"`
	MainImage AssetRef `json:"mainImage"`

	ParaOneImage       *AssetRef `json:"paraOneImage,omitempty"`
	ParaOneTitle       string    `json:"paraOneTitle,omitempty"`
	ParaOneDescription string    `json:"paraOneDescription,omitempty"`

	ParaTwoImage       *AssetRef `json:"paraTwoImage,omitempty"`
	ParaTwoTitle       string    `json:"paraTwoTitle,omitempty"`
	ParaTwoDescription string    `json:"paraTwoDescription,omitempty"`

	CreatedBy    string    `json:"createdBy"`
	AuthorName   string    `json:"authorName"`
	AuthorAvatar string    `json:"authorAvatar"`
	Published    bool      `json:"published"`
	CreatedAt    time.Time `json:"createdAt"`
}
