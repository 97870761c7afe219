package domain

import "time"

// Store is the tenant (brand) that owns campaigns and products. A user owns
// at most one store.
type Store struct {
	ID        string
	OwnerID   string
	Name      string
	Logo      string
	CreatedAt time.Time
}

// Brand returns the public summary of the store.
func (s *Store) Brand() Brand {
	return Brand{ID: s.ID, Name: s.Name, Logo: s.Logo}
}

// Product is an item sold by a store. PRODUCT campaigns reference one.
type Product struct {
	ID      string
	StoreID string
	Name    string
	Price   float64
}
