package catalog

import "errors"

// Absence of a catalog record is a valid result callers branch on, not a
// failure. These sentinels exist so the transport layer can render an empty
// state instead of a 500.
var ErrStoreNotFound = errors.New("store not found")
var ErrProductNotFound = errors.New("product not found")

// Catalog is the read-only collection of store profiles. It is immutable
// after load and therefore safe for concurrent use without locking.
type Catalog struct {
	stores []StoreProfile
}

// New creates a Catalog from the given store profiles.
func New(stores []StoreProfile) *Catalog {
	return &Catalog{stores: stores}
}

// ByID retrieves a single store profile by its unique identifier.
// Returns ErrStoreNotFound if no store exists with the given ID.
func (c *Catalog) ByID(id int64) (*StoreProfile, error) {
	for i := range c.stores {
		if c.stores[i].ID == id {
			return &c.stores[i], nil
		}
	}
	return nil, ErrStoreNotFound
}

// ByRegion returns the stores tagged for the given region, in catalog order.
// An unrecognized region falls back to the full catalog; that is the default
// policy, not an error.
func (c *Catalog) ByRegion(region Region) []StoreProfile {
	switch region {
	case RegionCapeTown, RegionJohannesburg:
		list := make([]StoreProfile, 0, len(c.stores))
		for _, s := range c.stores {
			if s.Region == region {
				list = append(list, s)
			}
		}
		return list
	default:
		return c.All()
	}
}

// All returns every store in the catalog, in catalog order.
func (c *Catalog) All() []StoreProfile {
	list := make([]StoreProfile, len(c.stores))
	copy(list, c.stores)
	return list
}

// ProductByID retrieves a product from a specific store.
// Returns ErrStoreNotFound or ErrProductNotFound on a miss.
func (c *Catalog) ProductByID(storeID, productID int64) (*Product, error) {
	store, err := c.ByID(storeID)
	if err != nil {
		return nil, err
	}
	for i := range store.Products {
		if store.Products[i].ID == productID {
			return &store.Products[i], nil
		}
	}
	return nil, ErrProductNotFound
}
