package domain

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Rarity is the canonical magic item rarity key, e.g. "Very_rare".
type Rarity string

const (
	RarityCommon    Rarity = "Common"
	RarityUncommon  Rarity = "Uncommon"
	RarityRare      Rarity = "Rare"
	RarityVeryRare  Rarity = "Very_rare"
	RarityLegendary Rarity = "Legendary"
)

// rarityCosts is the fixed shop price per rarity. Rarities outside this
// table (Artifact, Varies) cannot be bought or sold.
var rarityCosts = map[Rarity]int64{
	RarityCommon:    50,
	RarityUncommon:  75,
	RarityRare:      100,
	RarityVeryRare:  200,
	RarityLegendary: 300,
}

// rarityByKey maps a case-folded, underscore-joined rarity name to its constant.
var rarityByKey = func() map[string]Rarity {
	fold := cases.Fold()
	m := make(map[string]Rarity, len(rarityCosts))
	for r := range rarityCosts {
		m[fold.String(string(r))] = r
	}
	return m
}()

// ParseRarity normalises a catalog rarity name ("Very Rare", "very-rare",
// "VERY_RARE") to its canonical key. Unknown names are returned unchanged
// and will fail pricing.
func ParseRarity(name string) Rarity {
	key := strings.NewReplacer("-", " ", "_", " ").Replace(name)
	key = strings.Join(strings.Fields(cases.Fold().String(key)), "_")
	if r, ok := rarityByKey[key]; ok {
		return r
	}
	return Rarity(strings.TrimSpace(name))
}

// DisplayName renders the rarity for people, e.g. "Very Rare".
func (r Rarity) DisplayName() string {
	return cases.Title(language.English).String(strings.ReplaceAll(string(r), "_", " "))
}

// Priced reports whether the rarity has a shop price.
func (r Rarity) Priced() bool {
	_, ok := rarityCosts[r]
	return ok
}

// PriceOf returns the shop price of a catalog item. Equipment uses its flat
// cost; magic items use the rarity table regardless of any raw price.
func PriceOf(item Item) (int64, error) {
	switch it := item.(type) {
	case Equipment:
		if it.Cost <= 0 {
			return 0, fmt.Errorf("%s: %s: %w", ErrMsgItemUnpriced, it.Index, ErrItemNotFound)
		}
		return it.Cost, nil
	case MagicItem:
		cost, ok := rarityCosts[it.Rarity]
		if !ok {
			return 0, fmt.Errorf("%s: %s (rarity %q): %w", ErrMsgItemUnpriced, it.Index, it.Rarity, ErrItemNotFound)
		}
		return cost, nil
	default:
		return 0, fmt.Errorf("%s %T: %w", ErrMsgInvalidItemVariant, item, ErrInvalidInput)
	}
}
