// Package domain contains the core entity types for the Animes2u catalog.
package domain

import (
	"slices"
	"time"
)

// Language represents the audio/subtitle availability of a title.
type Language string

const (
	// LanguageSub indicates the title is available subtitled only.
	LanguageSub Language = "sub"
	// LanguageDub indicates the title is available dubbed only.
	LanguageDub Language = "dub"
	// LanguageBoth indicates the title is available both subbed and dubbed.
	LanguageBoth Language = "both"
)

// Valid reports whether l is one of the known language values.
func (l Language) Valid() bool {
	return l == LanguageSub || l == LanguageDub || l == LanguageBoth
}

// Status represents the airing state of a title.
type Status string

const (
	// StatusOngoing indicates the title is still airing.
	StatusOngoing Status = "ongoing"
	// StatusCompleted indicates the title has finished airing.
	StatusCompleted Status = "completed"
)

// Valid reports whether s is one of the known status values.
func (s Status) Valid() bool {
	return s == StatusOngoing || s == StatusCompleted
}

// Anime is a single catalog entry.
//
// ID is assigned by the store from a monotonic per-collection sequence and is
// never reused after deletion. Views and CreatedAt are server-managed: views
// only change through the view-increment operation and CreatedAt is set once
// at creation.
type Anime struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	PosterURL     string    `json:"poster_url"`
	Genres        []string  `json:"genres"`
	Episodes      int       `json:"episodes"`
	Language      Language  `json:"language"`
	Status        Status    `json:"status"`
	TelegramURL   string    `json:"telegram_url"`
	IsRecommended bool      `json:"is_recommended"`
	Views         int64     `json:"views"`
	CreatedAt     time.Time `json:"created_at"`
}

// HasGenre reports whether the entry carries the given genre.
// Matching is case-sensitive and exact, mirroring the catalog's filter
// contract.
func (a *Anime) HasGenre(genre string) bool {
	return slices.Contains(a.Genres, genre)
}

// AnimeDraft carries the client-settable fields of a catalog entry.
// The store fills in ID, Views and CreatedAt on creation.
type AnimeDraft struct {
	Title         string   `json:"title" validate:"required,min=2"`
	Description   string   `json:"description" validate:"required,min=10"`
	PosterURL     string   `json:"poster_url" validate:"required,url"`
	Genres        []string `json:"genres" validate:"required,min=1"`
	Episodes      int      `json:"episodes" validate:"required,gte=1"`
	Language      Language `json:"language" validate:"required,oneof=sub dub both"`
	Status        Status   `json:"status" validate:"required,oneof=ongoing completed"`
	TelegramURL   string   `json:"telegram_url" validate:"required,url"`
	IsRecommended bool     `json:"is_recommended"`
}

// AnimePatch carries a partial update for a catalog entry. Nil fields keep
// the existing value; supplied fields overwrite it. The admin update path
// intentionally performs no field validation.
type AnimePatch struct {
	Title         *string   `json:"title,omitempty"`
	Description   *string   `json:"description,omitempty"`
	PosterURL     *string   `json:"poster_url,omitempty"`
	Genres        *[]string `json:"genres,omitempty"`
	Episodes      *int      `json:"episodes,omitempty"`
	Language      *Language `json:"language,omitempty"`
	Status        *Status   `json:"status,omitempty"`
	TelegramURL   *string   `json:"telegram_url,omitempty"`
	IsRecommended *bool     `json:"is_recommended,omitempty"`
}

// Apply merges the patch over the entry in place. Supplied fields override,
// omitted fields retain their prior value. Server-managed fields (ID, Views,
// CreatedAt) are never touched.
func (p *AnimePatch) Apply(a *Anime) {
	if p.Title != nil {
		a.Title = *p.Title
	}
	if p.Description != nil {
		a.Description = *p.Description
	}
	if p.PosterURL != nil {
		a.PosterURL = *p.PosterURL
	}
	if p.Genres != nil {
		a.Genres = *p.Genres
	}
	if p.Episodes != nil {
		a.Episodes = *p.Episodes
	}
	if p.Language != nil {
		a.Language = *p.Language
	}
	if p.Status != nil {
		a.Status = *p.Status
	}
	if p.TelegramURL != nil {
		a.TelegramURL = *p.TelegramURL
	}
	if p.IsRecommended != nil {
		a.IsRecommended = *p.IsRecommended
	}
}
