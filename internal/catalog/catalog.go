// Package catalog provides read-only access to the fixed store and product catalog.
package catalog

import "github.com/shopspring/decimal"

// Region identifies a delivery region stores are grouped by.
type Region string

const (
	RegionCapeTown     Region = "cape-town"
	RegionJohannesburg Region = "johannesburg"
)

// ImageKind discriminates the two ways the catalog references an image.
type ImageKind string

const (
	ImageRemote  ImageKind = "remote"
	ImageBundled ImageKind = "bundled"
)

// ImageRef is a tagged reference to an image: either a remote URL or a
// handle to an asset bundled with the application. Resolution is the
// rendering layer's job.
type ImageRef struct {
	Kind  ImageKind `json:"kind" bson:"kind"`
	URL   string    `json:"url,omitempty" bson:"url,omitempty"`
	Asset string    `json:"asset,omitempty" bson:"asset,omitempty"`
}

// RemoteImage returns an ImageRef pointing at a URL.
func RemoteImage(url string) ImageRef {
	return ImageRef{Kind: ImageRemote, URL: url}
}

// BundledImage returns an ImageRef pointing at a bundled asset handle.
func BundledImage(asset string) ImageRef {
	return ImageRef{Kind: ImageBundled, Asset: asset}
}

// Product is a single catalog entry. IDs are unique within a store.
type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Image       ImageRef        `json:"image"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	InStock     bool            `json:"in_stock"`
}

// Coordinates holds a geographic point for map rendering.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// WeekHours lists opening hours per weekday, e.g. "08:00-17:00" or "Closed".
type WeekHours struct {
	Monday    string `json:"monday"`
	Tuesday   string `json:"tuesday"`
	Wednesday string `json:"wednesday"`
	Thursday  string `json:"thursday"`
	Friday    string `json:"friday"`
	Saturday  string `json:"saturday"`
	Sunday    string `json:"sunday"`
}

// ContactInfo holds the ways to reach a store.
type ContactInfo struct {
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Website  string `json:"website,omitempty"`
	WhatsApp string `json:"whatsapp,omitempty"`
}

// DeliveryPolicy describes whether and how a store delivers.
type DeliveryPolicy struct {
	Available     bool            `json:"available"`
	Fee           decimal.Decimal `json:"fee"`
	MinOrder      decimal.Decimal `json:"min_order"`
	Areas         []string        `json:"areas"`
	EstimatedTime string          `json:"estimated_time"`
}

// StoreProfile is one florist in the catalog. IDs are globally unique.
type StoreProfile struct {
	ID             int64          `json:"id"`
	Name           string         `json:"name"`
	Region         Region         `json:"region"`
	Rating         float64        `json:"rating"`
	Reviews        int            `json:"reviews"`
	Image          ImageRef       `json:"image"`
	CoverImages    []ImageRef     `json:"cover_images,omitempty"`
	Address        string         `json:"address"`
	Coordinates    Coordinates    `json:"coordinates"`
	Description    string         `json:"description"`
	Hours          WeekHours      `json:"hours"`
	Contact        ContactInfo    `json:"contact"`
	Services       []string       `json:"services,omitempty"`
	Specialties    []string       `json:"specialties,omitempty"`
	PriceRange     string         `json:"price_range"`
	PaymentMethods []string       `json:"payment_methods,omitempty"`
	Delivery       DeliveryPolicy `json:"delivery"`
	Featured       bool           `json:"featured,omitempty"`
	Products       []Product      `json:"products"`
}
