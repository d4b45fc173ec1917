// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/cardgrabber/internal/cost"
	"github.com/pdiddy/cardgrabber/pkg/types"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		tags []string
		want types.Category
	}{
		{name: "no tags", tags: nil, want: types.CategoryOther},
		{name: "unit", tags: []string{"Unit"}, want: types.CategoryUnit},
		{name: "leader beats citadel", tags: []string{"Citadel", "Leader"}, want: types.CategoryLeader},
		{name: "citadel beats territory", tags: []string{"territory", "CITADEL"}, want: types.CategoryCitadel},
		{name: "territory beats production", tags: []string{"Production", "Territory"}, want: types.CategoryTerritory},
		{name: "production beats unit", tags: []string{"Unit", "Production"}, want: types.CategoryProduction},
		{name: "unknown tag", tags: []string{"Spell"}, want: types.CategoryOther},
		{name: "literal other tag is not a category", tags: []string{"other", "Unit"}, want: types.CategoryUnit},
		{name: "surrounding whitespace", tags: []string{" Leader "}, want: types.CategoryLeader},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.tags))
		})
	}
}

func TestCoerceTypes(t *testing.T) {
	tests := []struct {
		name    string
		in      any
		want    []string
		wantErr bool
	}{
		{name: "absent", in: nil, want: []string{}},
		{name: "scalar", in: "Unit", want: []string{"Unit"}},
		{name: "empty scalar", in: "", want: []string{}},
		{name: "list", in: []any{"Leader", "Unit"}, want: []string{"Leader", "Unit"}},
		{name: "string slice", in: []string{"Citadel"}, want: []string{"Citadel"}},
		{name: "numeric scalar", in: 7, want: []string{"7"}},
		{name: "map", in: map[string]any{"a": 1}, want: []string{}, wantErr: true},
		{name: "nested list", in: []any{"Unit", []any{"x"}}, want: []string{}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CoerceTypes(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformedType)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeLeader(t *testing.T) {
	raw := types.RawAnnotation{
		KeyCardName:    "Queen of Ash",
		KeyType:        []any{"Leader"},
		KeyFrontOracle: "Empty",
		KeyBackName:    "Ash Ascendant",
		KeyBackOracle:  "Draw a card.",
		KeyBackCost:    "(1) 2 Mana",
		KeyOracle:      "ignored",
		KeyPower:       4,
		KeyToughness:   4,
	}

	card, err := Normalize(raw, "queen")
	require.NoError(t, err)

	assert.Equal(t, "Queen of Ash", card.Name)
	assert.Equal(t, types.Portrait, card.Orientation)
	assert.True(t, card.HasBack)
	assert.Equal(t, "(1)MaMa", card.Cost)
	// Leader text is not subject to the "Empty" cleanup.
	assert.Equal(t, "Empty", card.Text)
	require.NotNil(t, card.BackName)
	assert.Equal(t, "Ash Ascendant", *card.BackName)
	require.NotNil(t, card.BackText)
	assert.Equal(t, "Draw a card.", *card.BackText)
	assert.Nil(t, card.Power)
	assert.Nil(t, card.Toughness)
}

func TestNormalizeLeaderMissingBack(t *testing.T) {
	card, err := Normalize(types.RawAnnotation{KeyType: "leader"}, "l")
	require.NoError(t, err)

	assert.True(t, card.HasBack)
	assert.Equal(t, "", card.Cost)
	require.NotNil(t, card.BackName)
	assert.Equal(t, "", *card.BackName)
}

func TestNormalizeCitadel(t *testing.T) {
	raw := types.RawAnnotation{
		KeyType:          "Citadel",
		KeyHealth:        5,
		KeyShield:        2,
		KeyCounterAttack: 1,
		KeyOracle:        " empty ",
	}

	card, err := Normalize(raw, "keep")
	require.NoError(t, err)

	assert.Equal(t, "keep", card.Name)
	assert.Equal(t, "", card.Cost)
	assert.Equal(t, 5, card.Health)
	assert.Equal(t, 2, card.Shield)
	assert.Equal(t, 1, card.CounterAttack)
	assert.Equal(t, types.Landscape, card.Orientation)
	assert.Equal(t, "", card.Text)
	assert.False(t, card.HasBack)
	assert.Nil(t, card.BackName)
}

func TestNormalizeCitadelIgnoresCost(t *testing.T) {
	card, err := Normalize(types.RawAnnotation{
		KeyType:           []any{"Citadel"},
		KeyProductionCost: "3 Mana",
	}, "c")
	require.NoError(t, err)

	assert.Equal(t, "", card.Cost)
	assert.Nil(t, card.Health)
}

func TestNormalizeTerritory(t *testing.T) {
	card, err := Normalize(types.RawAnnotation{
		KeyType:             []any{"Territory"},
		KeyImprovementSlots: 3,
		KeyProductionCost:   "2 Stone",
		KeyOracle:           "Fertile plains.",
	}, "plains")
	require.NoError(t, err)

	assert.Equal(t, types.Landscape, card.Orientation)
	assert.Equal(t, 3, card.ImprovementSlots)
	assert.Equal(t, "", card.Cost)
	assert.Equal(t, "Fertile plains.", card.Text)
}

func TestNormalizeProduction(t *testing.T) {
	tests := []struct {
		name     string
		material any
		want     []any
	}{
		{name: "scalar material", material: "Iron", want: []any{"Iron"}},
		{name: "list material", material: []any{"Iron", "Wood"}, want: []any{"Iron", "Wood"}},
		{name: "absent material", material: nil, want: nil},
		{name: "empty material", material: "", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := types.RawAnnotation{
				KeyType:           []any{"Production"},
				KeyProductionCost: "2 Metals",
				KeyExhaust:        true,
				KeyExpend:         "Food",
			}
			if tt.material != nil {
				raw[KeyMaterial] = tt.material
			}

			card, err := Normalize(raw, "forge")
			require.NoError(t, err)

			assert.Equal(t, "MeMe", card.Cost)
			assert.Equal(t, tt.want, card.Material)
			assert.Equal(t, true, card.Exhaust)
			assert.Equal(t, "Food", card.Expend)
			assert.Equal(t, types.Portrait, card.Orientation)
		})
	}
}

func TestNormalizeUnit(t *testing.T) {
	card, err := Normalize(types.RawAnnotation{
		KeyCardName:       "Pikeman",
		KeyType:           []any{"Unit"},
		KeyProductionCost: "3 Food",
		KeyPower:          2,
		KeyToughness:      3,
		KeyOracle:         "First strike.",
	}, "pikeman")
	require.NoError(t, err)

	assert.Equal(t, "FoFoFo", card.Cost)
	assert.Equal(t, 2, card.Power)
	assert.Equal(t, 3, card.Toughness)
	assert.Equal(t, "First strike.", card.Text)
	assert.False(t, card.HasBack)
}

func TestNormalizeUnitMissingStats(t *testing.T) {
	card, err := Normalize(types.RawAnnotation{KeyType: "Unit"}, "u")
	require.NoError(t, err)

	assert.Nil(t, card.Power)
	assert.Nil(t, card.Toughness)
	assert.Equal(t, "", card.Cost)
}

func TestNormalizeUnrecognizedType(t *testing.T) {
	card, err := Normalize(types.RawAnnotation{
		KeyProductionCost: "(2) 1 Gems",
		KeyPower:          9,
	}, "mystery")
	require.NoError(t, err)

	assert.Equal(t, "mystery", card.Name)
	assert.Equal(t, []string{}, card.Type)
	assert.Equal(t, types.Portrait, card.Orientation)
	assert.Equal(t, "(2)Ge", card.Cost)
	assert.Nil(t, card.Power)
	assert.Nil(t, card.Toughness)
	assert.Equal(t, types.DefaultImage, card.Image)
}

func TestNormalizeMalformedType(t *testing.T) {
	card, err := Normalize(types.RawAnnotation{
		KeyType:   map[string]any{"kind": "Unit"},
		KeyOracle: "EMPTY",
	}, "broken")

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedType))
	assert.Equal(t, []string{}, card.Type)
	assert.Equal(t, types.CategoryOther, Classify(card.Type))
	assert.Equal(t, "", card.Text)
	assert.Equal(t, "broken", card.Name)
}

func TestNormalizeScalarFields(t *testing.T) {
	card, err := Normalize(types.RawAnnotation{
		KeyCardName: 1984,
		KeyAspect:   "Fire",
		KeyRarity:   nil,
	}, "fallback")
	require.NoError(t, err)

	assert.Equal(t, "1984", card.Name)
	assert.Equal(t, "Fire", card.Aspect)
	assert.Equal(t, "", card.Rarity)
}

func TestNormalizeInvariants(t *testing.T) {
	notes := []types.RawAnnotation{
		{KeyType: []any{"Leader", "Citadel"}},
		{KeyType: []any{"Citadel"}},
		{KeyType: []any{"territory"}},
		{KeyType: []any{"Production", "Unit"}},
		{KeyType: "unit"},
		{KeyType: "Spell"},
		{},
	}

	for _, raw := range notes {
		card, err := Normalize(raw, "n")
		require.NoError(t, err)

		category := Classify(card.Type)
		isLeader := category == types.CategoryLeader
		assert.Equal(t, isLeader, card.HasBack, "has_back for %v", card.Type)
		assert.Equal(t, isLeader, card.BackName != nil, "back face for %v", card.Type)

		landscape := category == types.CategoryCitadel || category == types.CategoryTerritory
		if landscape {
			assert.Equal(t, types.Landscape, card.Orientation, "orientation for %v", card.Type)
		} else {
			assert.Equal(t, types.Portrait, card.Orientation, "orientation for %v", card.Type)
		}
	}
}

func TestNormalizerCustomConfig(t *testing.T) {
	n := FromConfig(types.ExtractConfig{
		DefaultImage: "assets/alt.png",
		Resources:    map[string]string{"crystal": "Cr"},
	})

	card, err := n.Normalize(types.RawAnnotation{
		KeyType:           "Unit",
		KeyProductionCost: "2 Crystal",
	}, "c")
	require.NoError(t, err)

	assert.Equal(t, "assets/alt.png", card.Image)
	assert.Equal(t, "CrCr", card.Cost)
}

func TestNewDefaults(t *testing.T) {
	n := New(nil, "")
	assert.Equal(t, types.DefaultImage, n.defaultImage)
	assert.Equal(t, cost.NewEncoder(nil), n.costs)
}

func TestCardJSONShape(t *testing.T) {
	card, err := Normalize(types.RawAnnotation{KeyType: "Unit"}, "u")
	require.NoError(t, err)

	data, err := json.Marshal(card)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))

	for _, key := range []string{
		"name", "aspect", "rarity", "type", "image", "orientation", "has_back",
		"text", "cost", "power", "toughness", "health", "shield", "ca", "is",
		"mat", "exhaust", "expend", "bName", "btext", "is_placeholder",
	} {
		assert.Contains(t, fields, key)
	}
	assert.Equal(t, []any{"Unit"}, fields["type"])
	assert.Nil(t, fields["bName"])
}
