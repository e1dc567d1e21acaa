package model

// Item is a stack of an item template (uid is the persistent id, 0 for
// items not yet stored).
type Item struct {
	UID    int64
	ItemID int32
	Amount int32
	Rarity int16
}

// NewItem creates an item stack.
func NewItem(uid int64, itemID, amount int32) *Item {
	if amount <= 0 {
		amount = 1
	}
	return &Item{UID: uid, ItemID: itemID, Amount: amount, Rarity: 1}
}
