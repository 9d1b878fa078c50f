package catalog

import "github.com/shopspring/decimal"

// Seed returns the static catalog the storefront ships with. The data is
// versioned with the application; there is no external catalog source.
func Seed() *Catalog {
	return New([]StoreProfile{
		{
			ID:      1,
			Name:    "Bloom & Wild Gardens",
			Region:  RegionCapeTown,
			Rating:  4.8,
			Reviews: 156,
			Image:   BundledImage("stores/bloom-and-wild/store"),
			CoverImages: []ImageRef{
				BundledImage("stores/bloom-and-wild/cover-1"),
				BundledImage("stores/bloom-and-wild/cover-2"),
			},
			Address:     "Shop 4, Gardens Shopping Centre, Mill St, Gardens, Cape Town",
			Coordinates: Coordinates{Latitude: -33.9271, Longitude: 18.4173},
			Description: "Premium florist offering bespoke arrangements and wedding services",
			Hours: WeekHours{
				Monday:    "08:00-17:00",
				Tuesday:   "08:00-17:00",
				Wednesday: "08:00-17:00",
				Thursday:  "08:00-17:00",
				Friday:    "08:00-17:00",
				Saturday:  "09:00-14:00",
				Sunday:    "Closed",
			},
			Contact: ContactInfo{
				Phone:    "+27 21 424 7365",
				Email:    "hello@bloomandwild.co.za",
				Website:  "https://bloomandwild.co.za",
				WhatsApp: "+27 82 123 4567",
			},
			Services:       []string{"Wedding Bouquets", "Corporate Events", "Gift Arrangements"},
			Specialties:    []string{"Wedding Flowers", "Exotic Arrangements", "Corporate Services"},
			PriceRange:     "$$",
			PaymentMethods: []string{"Credit Card", "Debit Card", "Cash", "EFT"},
			Delivery: DeliveryPolicy{
				Available:     true,
				Fee:           decimal.Zero,
				MinOrder:      decimal.NewFromInt(1000),
				Areas:         []string{"City Bowl", "Camps Bay", "Sea Point", "Green Point", "Atlantic Seaboard", "Southern Suburbs"},
				EstimatedTime: "45-60 minutes",
			},
			Featured: true,
			Products: []Product{
				{
					ID:          1,
					Name:        "Red Rose Bouquet",
					Price:       decimal.RequireFromString("49.99"),
					Image:       BundledImage("stores/bloom-and-wild/products/product-1"),
					Description: "Luxurious arrangement of fresh red roses",
					Category:    "Bouquets",
					InStock:     true,
				},
				{
					ID:          2,
					Name:        "Spring Medley",
					Price:       decimal.RequireFromString("35.50"),
					Image:       BundledImage("stores/bloom-and-wild/products/product-2"),
					Description: "Colorful mix of seasonal spring flowers",
					Category:    "Bouquets",
					InStock:     true,
				},
				{
					ID:          3,
					Name:        "Elegant White Orchids",
					Price:       decimal.RequireFromString("65.00"),
					Image:       BundledImage("stores/bloom-and-wild/products/product-3"),
					Description: "Pure white orchids in a ceramic pot",
					Category:    "Plants",
					InStock:     true,
				},
				{
					ID:          4,
					Name:        "Birds of Paradise",
					Price:       decimal.RequireFromString("58.99"),
					Image:       BundledImage("stores/bloom-and-wild/products/product-4"),
					Description: "Exotic arrangement with birds of paradise",
					Category:    "Bouquets",
					InStock:     true,
				},
				{
					ID:          5,
					Name:        "Succulent Garden",
					Price:       decimal.RequireFromString("29.99"),
					Image:       BundledImage("stores/bloom-and-wild/products/product-5"),
					Description: "Mixed succulent arrangement in a terrarium",
					Category:    "Plants",
					InStock:     true,
				},
				{
					ID:          6,
					Name:        "Birthday Celebration",
					Price:       decimal.RequireFromString("44.99"),
					Image:       BundledImage("stores/bloom-and-wild/products/product-6"),
					Description: "Festive arrangement perfect for birthdays",
					Category:    "Bouquets",
					InStock:     true,
				},
				{
					ID:          7,
					Name:        "Peace Lily",
					Price:       decimal.RequireFromString("39.50"),
					Image:       BundledImage("stores/bloom-and-wild/products/product-7"),
					Description: "Air-purifying peace lily in a decorative pot",
					Category:    "Plants",
					InStock:     true,
				},
				{
					ID:          8,
					Name:        "Luxury Valentine's Special",
					Price:       decimal.RequireFromString("99.99"),
					Image:       BundledImage("stores/bloom-and-wild/products/product-8"),
					Description: "Premium roses with chocolates and wine",
					Category:    "Special",
					InStock:     false,
				},
			},
		},
		{
			ID:          2,
			Name:        "Sea Point Stems",
			Region:      RegionCapeTown,
			Rating:      4.5,
			Reviews:     89,
			Image:       RemoteImage("https://images.example.com/stores/sea-point-stems/store.jpg"),
			Address:     "112 Main Rd, Sea Point, Cape Town",
			Coordinates: Coordinates{Latitude: -33.9158, Longitude: 18.3880},
			Description: "Neighbourhood florist with same-day delivery along the Atlantic Seaboard",
			Hours: WeekHours{
				Monday:    "09:00-18:00",
				Tuesday:   "09:00-18:00",
				Wednesday: "09:00-18:00",
				Thursday:  "09:00-18:00",
				Friday:    "09:00-18:00",
				Saturday:  "09:00-15:00",
				Sunday:    "10:00-13:00",
			},
			Contact: ContactInfo{
				Phone: "+27 21 439 8812",
				Email: "orders@seapointstems.co.za",
			},
			Services:       []string{"Same-day Delivery", "Subscriptions"},
			Specialties:    []string{"Proteas", "Fynbos Arrangements"},
			PriceRange:     "$",
			PaymentMethods: []string{"Credit Card", "Cash"},
			Delivery: DeliveryPolicy{
				Available:     true,
				Fee:           decimal.RequireFromString("45.00"),
				MinOrder:      decimal.RequireFromString("250.00"),
				Areas:         []string{"Sea Point", "Green Point", "Mouille Point", "Bantry Bay"},
				EstimatedTime: "30-45 minutes",
			},
			Products: []Product{
				{
					ID:          1,
					Name:        "King Protea Bunch",
					Price:       decimal.RequireFromString("75.00"),
					Image:       RemoteImage("https://images.example.com/stores/sea-point-stems/protea.jpg"),
					Description: "Statement bunch built around a single king protea",
					Category:    "Bouquets",
					InStock:     true,
				},
				{
					ID:          2,
					Name:        "Sunflower Bundle",
					Price:       decimal.RequireFromString("29.99"),
					Image:       RemoteImage("https://images.example.com/stores/sea-point-stems/sunflower.jpg"),
					Description: "A dozen bright sunflowers wrapped in kraft paper",
					Category:    "Bouquets",
					InStock:     true,
				},
			},
		},
		{
			ID:          3,
			Name:        "Rosebank Petals",
			Region:      RegionJohannesburg,
			Rating:      4.6,
			Reviews:     204,
			Image:       RemoteImage("https://images.example.com/stores/rosebank-petals/store.jpg"),
			Address:     "The Zone @ Rosebank, Oxford Rd, Rosebank, Johannesburg",
			Coordinates: Coordinates{Latitude: -26.1438, Longitude: 28.0406},
			Description: "City florist specialising in corporate and event arrangements",
			Hours: WeekHours{
				Monday:    "08:00-17:30",
				Tuesday:   "08:00-17:30",
				Wednesday: "08:00-17:30",
				Thursday:  "08:00-17:30",
				Friday:    "08:00-17:30",
				Saturday:  "08:30-14:00",
				Sunday:    "Closed",
			},
			Contact: ContactInfo{
				Phone:   "+27 11 788 5102",
				Email:   "info@rosebankpetals.co.za",
				Website: "https://rosebankpetals.co.za",
			},
			Services:       []string{"Corporate Events", "Weekly Office Flowers"},
			Specialties:    []string{"Event Styling", "Orchids"},
			PriceRange:     "$$$",
			PaymentMethods: []string{"Credit Card", "EFT"},
			Delivery: DeliveryPolicy{
				Available:     true,
				Fee:           decimal.RequireFromString("60.00"),
				MinOrder:      decimal.RequireFromString("400.00"),
				Areas:         []string{"Rosebank", "Sandton", "Parktown", "Melrose"},
				EstimatedTime: "60-90 minutes",
			},
			Products: []Product{
				{
					ID:          1,
					Name:        "Boardroom Orchid Duo",
					Price:       decimal.RequireFromString("120.00"),
					Image:       RemoteImage("https://images.example.com/stores/rosebank-petals/orchid-duo.jpg"),
					Description: "Two phalaenopsis orchids in matte ceramic pots",
					Category:    "Plants",
					InStock:     true,
				},
				{
					ID:          2,
					Name:        "Seasonal Event Urn",
					Price:       decimal.RequireFromString("350.00"),
					Image:       RemoteImage("https://images.example.com/stores/rosebank-petals/event-urn.jpg"),
					Description: "Large-format urn arrangement for functions",
					Category:    "Special",
					InStock:     true,
				},
			},
		},
	})
}
