// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the cardgrabber pipeline:
// the raw annotation read from a note, the canonical Card record written to
// the card database, and the per-stage configuration.
package types

// RawAnnotation is the frontmatter of one note, decoded as-is. Keys are not
// guaranteed present and a key may hold a scalar in one note and a list in
// another.
type RawAnnotation map[string]any

// Orientation is the print orientation of a card face.
type Orientation string

const (
	Portrait  Orientation = "portrait"
	Landscape Orientation = "landscape"
)

// Category selects the field-population policy for a card. Every card
// belongs to exactly one category, chosen from its type tags.
type Category string

const (
	CategoryLeader     Category = "leader"
	CategoryCitadel    Category = "citadel"
	CategoryTerritory  Category = "territory"
	CategoryProduction Category = "production"
	CategoryUnit       Category = "unit"
	CategoryOther      Category = "other"
)

// Categories lists every category in classification priority order.
var Categories = []Category{
	CategoryLeader,
	CategoryCitadel,
	CategoryTerritory,
	CategoryProduction,
	CategoryUnit,
	CategoryOther,
}

// Card is the canonical record for one card. The JSON keys are the contract
// with the rendering templates and must stay stable.
//
// Fields that only apply to some categories are nil when not applicable and
// serialize as null, so every record has the same shape.
type Card struct {
	// Name is the card title; it defaults to the note's file stem.
	Name string `json:"name" yaml:"name"`

	Aspect string `json:"aspect" yaml:"aspect"`
	Rarity string `json:"rarity" yaml:"rarity"`

	// Type holds the category tags in source order (e.g. "Unit", "Leader").
	Type []string `json:"type" yaml:"type"`

	Image       string      `json:"image" yaml:"image"`
	Orientation Orientation `json:"orientation" yaml:"orientation"`

	// HasBack is true only for double-sided (leader) cards.
	HasBack bool `json:"has_back" yaml:"has_back"`

	// Text is the oracle text of the front face.
	Text string `json:"text" yaml:"text"`

	// Cost is the encoded cost string. For leaders it is the back face cost.
	Cost string `json:"cost" yaml:"cost"`

	// Unit fields.
	Power     any `json:"power" yaml:"power"`
	Toughness any `json:"toughness" yaml:"toughness"`

	// Citadel fields.
	Health        any `json:"health" yaml:"health"`
	Shield        any `json:"shield" yaml:"shield"`
	CounterAttack any `json:"ca" yaml:"ca"`

	// ImprovementSlots is the territory improvement slot count.
	ImprovementSlots any `json:"is" yaml:"is"`

	// Production fields.
	Material []any `json:"mat" yaml:"mat"`
	Exhaust  any   `json:"exhaust" yaml:"exhaust"`
	Expend   any   `json:"expend" yaml:"expend"`

	// Leader back face.
	BackName *string `json:"bName" yaml:"bName"`
	BackText *string `json:"btext" yaml:"btext"`

	// IsPlaceholder marks blank records used to pad a sheet.
	IsPlaceholder bool `json:"is_placeholder" yaml:"is_placeholder"`
}
