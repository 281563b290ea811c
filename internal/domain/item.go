package domain

// ItemKind identifies which catalog collection an item came from.
type ItemKind string

const (
	ItemKindEquipment ItemKind = "equipment"
	ItemKindMagicItem ItemKind = "magic-item"
)

// Item is a catalog entry. It is either Equipment or MagicItem; the set is
// closed by the unexported isItem method.
type Item interface {
	ItemIndex() string
	ItemName() string
	Kind() ItemKind
	isItem()
}

// Equipment carries a flat catalog cost.
type Equipment struct {
	Index string `json:"index"`
	Name  string `json:"name"`
	Cost  int64  `json:"cost"`
}

func (e Equipment) ItemIndex() string { return e.Index }
func (e Equipment) ItemName() string  { return e.Name }
func (e Equipment) Kind() ItemKind    { return ItemKindEquipment }
func (Equipment) isItem()             {}

// MagicItem is priced by rarity, never by any raw price the catalog reports.
type MagicItem struct {
	Index  string `json:"index"`
	Name   string `json:"name"`
	Rarity Rarity `json:"rarity"`
}

func (m MagicItem) ItemIndex() string { return m.Index }
func (m MagicItem) ItemName() string  { return m.Name }
func (m MagicItem) Kind() ItemKind    { return ItemKindMagicItem }
func (MagicItem) isItem()             {}
