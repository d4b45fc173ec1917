// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize turns the raw frontmatter of a card note into a
// canonical types.Card. A card is classified once into a types.Category and
// each category has its own field policy.
package normalize

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pdiddy/cardgrabber/internal/cost"
	"github.com/pdiddy/cardgrabber/pkg/types"
)

// Annotation keys written by the authoring tool. Renaming any of them
// breaks existing vaults.
const (
	KeyCardName         = "CardName"
	KeyAspect           = "Aspect"
	KeyRarity           = "Rarity"
	KeyType             = "Type"
	KeyOracle           = "Oracle"
	KeyProductionCost   = "ProductionCost"
	KeyFrontOracle      = "Front-Side_Oracle"
	KeyBackName         = "Back-Side_Name"
	KeyBackOracle       = "Back-Side_Oracle"
	KeyBackCost         = "Back-Side_Prod_Cost"
	KeyHealth           = "Health"
	KeyShield           = "Shield"
	KeyCounterAttack    = "Counter-Attack"
	KeyImprovementSlots = "ImprovementSlots"
	KeyMaterial         = "Material"
	KeyExhaust          = "Exhaust"
	KeyExpend           = "Expend"
	KeyPower            = "Power"
	KeyToughness        = "Toughness"
)

// ErrMalformedType reports a Type value that is not a string or a list of
// strings. It is a warning: the card is still produced, with no type tags.
var ErrMalformedType = errors.New("malformed type discriminator")

// Normalizer converts raw annotations into cards. It is immutable once
// built and safe for concurrent use.
type Normalizer struct {
	costs        *cost.Encoder
	defaultImage string
}

// New returns a Normalizer using the given cost encoder and default image.
// A nil encoder uses the built-in abbreviations and an empty image uses
// types.DefaultImage.
func New(costs *cost.Encoder, defaultImage string) *Normalizer {
	if costs == nil {
		costs = cost.NewEncoder(nil)
	}
	if defaultImage == "" {
		defaultImage = types.DefaultImage
	}
	return &Normalizer{costs: costs, defaultImage: defaultImage}
}

// FromConfig builds a Normalizer from the extraction settings.
func FromConfig(cfg types.ExtractConfig) *Normalizer {
	return New(cost.NewEncoder(cfg.Resources), cfg.DefaultImage)
}

// Normalize builds the card for one note. fallbackName is used when the note
// has no CardName, usually the file stem.
//
// Normalize never fails on missing fields. The only error it returns wraps
// ErrMalformedType, and the returned card is valid even then.
func (n *Normalizer) Normalize(raw types.RawAnnotation, fallbackName string) (types.Card, error) {
	tags, typeErr := CoerceTypes(raw[KeyType])

	card := types.Card{
		Name:   stringOr(raw, KeyCardName, fallbackName),
		Aspect: stringOr(raw, KeyAspect, ""),
		Rarity: stringOr(raw, KeyRarity, ""),
		Type:   tags,
		Image:  n.defaultImage,
	}

	category := Classify(tags)
	card.Orientation = OrientationOf(category)

	switch category {
	case types.CategoryLeader:
		n.leader(raw, &card)
	case types.CategoryCitadel:
		citadel(raw, &card)
	case types.CategoryTerritory:
		territory(raw, &card)
	case types.CategoryProduction:
		n.production(raw, &card)
	case types.CategoryUnit:
		n.unit(raw, &card)
	case types.CategoryOther:
		n.other(raw, &card)
	default:
		panic(fmt.Sprintf("normalize: unhandled category %q", category))
	}

	if category != types.CategoryLeader && isEmptyMarker(card.Text) {
		card.Text = ""
	}

	if typeErr != nil {
		return card, fmt.Errorf("%s: %w", KeyType, typeErr)
	}
	return card, nil
}

// Normalize converts raw with the default Normalizer.
func Normalize(raw types.RawAnnotation, fallbackName string) (types.Card, error) {
	return defaultNormalizer.Normalize(raw, fallbackName)
}

var defaultNormalizer = New(nil, "")

// leader cards are double-sided; the cost is printed on the back only.
func (n *Normalizer) leader(raw types.RawAnnotation, card *types.Card) {
	card.Text = stringOr(raw, KeyFrontOracle, "")
	backName := stringOr(raw, KeyBackName, "")
	backText := stringOr(raw, KeyBackOracle, "")
	card.BackName = &backName
	card.BackText = &backText
	card.Cost = n.costs.Encode(stringOr(raw, KeyBackCost, ""))
	card.HasBack = true
}

// citadel and territory cards carry no cost.
func citadel(raw types.RawAnnotation, card *types.Card) {
	card.Text = stringOr(raw, KeyOracle, "")
	card.Health = raw[KeyHealth]
	card.Shield = raw[KeyShield]
	card.CounterAttack = raw[KeyCounterAttack]
}

func territory(raw types.RawAnnotation, card *types.Card) {
	card.Text = stringOr(raw, KeyOracle, "")
	card.ImprovementSlots = raw[KeyImprovementSlots]
}

func (n *Normalizer) production(raw types.RawAnnotation, card *types.Card) {
	card.Text = stringOr(raw, KeyOracle, "")
	card.Cost = n.costs.Encode(stringOr(raw, KeyProductionCost, ""))
	card.Material = materialList(raw[KeyMaterial])
	card.Exhaust = raw[KeyExhaust]
	card.Expend = raw[KeyExpend]
}

func (n *Normalizer) unit(raw types.RawAnnotation, card *types.Card) {
	card.Text = stringOr(raw, KeyOracle, "")
	card.Cost = n.costs.Encode(stringOr(raw, KeyProductionCost, ""))
	card.Power = raw[KeyPower]
	card.Toughness = raw[KeyToughness]
}

// other covers every card without a recognized category tag, including
// territory improvements, which keep their cost.
func (n *Normalizer) other(raw types.RawAnnotation, card *types.Card) {
	card.Text = stringOr(raw, KeyOracle, "")
	card.Cost = n.costs.Encode(stringOr(raw, KeyProductionCost, ""))
}

// Classify picks the category for a list of type tags. Tags are compared
// case-insensitively and the first category in types.Categories that any tag
// names wins.
func Classify(tags []string) types.Category {
	present := make(map[types.Category]bool, len(tags))
	for _, t := range tags {
		present[types.Category(strings.ToLower(strings.TrimSpace(t)))] = true
	}
	for _, c := range types.Categories {
		if c != types.CategoryOther && present[c] {
			return c
		}
	}
	return types.CategoryOther
}

// OrientationOf returns the print orientation for a category.
func OrientationOf(c types.Category) types.Orientation {
	switch c {
	case types.CategoryCitadel, types.CategoryTerritory:
		return types.Landscape
	default:
		return types.Portrait
	}
}

// CoerceTypes converts a raw Type value into a tag list. A list is kept in
// order, a scalar becomes a one-element list, and a missing value an empty
// list. Anything else yields an empty list and ErrMalformedType.
func CoerceTypes(v any) ([]string, error) {
	switch t := v.(type) {
	case nil:
		return []string{}, nil
	case []string:
		return append([]string{}, t...), nil
	case []any:
		tags := make([]string, 0, len(t))
		for i, item := range t {
			s, ok := scalarString(item)
			if !ok {
				return []string{}, fmt.Errorf("element %d is %T: %w", i, item, ErrMalformedType)
			}
			tags = append(tags, s)
		}
		return tags, nil
	default:
		s, ok := scalarString(t)
		if !ok {
			return []string{}, fmt.Errorf("value is %T: %w", t, ErrMalformedType)
		}
		if s == "" {
			return []string{}, nil
		}
		return []string{s}, nil
	}
}

// materialList wraps a scalar material in a list and maps absent or empty
// values to nil.
func materialList(v any) []any {
	switch t := v.(type) {
	case nil:
		return nil
	case []any:
		return t
	case string:
		if t == "" {
			return nil
		}
		return []any{t}
	default:
		return []any{t}
	}
}

func isEmptyMarker(text string) bool {
	return strings.EqualFold(strings.TrimSpace(text), "empty")
}

// stringOr returns the value of key as a string, or fallback when the key
// is absent or null. Non-string scalars are formatted.
func stringOr(raw types.RawAnnotation, key, fallback string) string {
	v, ok := raw[key]
	if !ok || v == nil {
		return fallback
	}
	if s, ok := scalarString(v); ok {
		return s
	}
	return fmt.Sprint(v)
}

func scalarString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case bool, int, int64, uint64, float64:
		return fmt.Sprint(t), true
	default:
		return "", false
	}
}
