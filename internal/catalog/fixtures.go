package catalog

func price(v int64) *int64 { return &v }

var fixtureVehicles = []Vehicle{
	{ID: 1, Name: "Triumph Speed 400"},
	{ID: 2, Name: "Royal Enfield Hunter 350"},
	{ID: 3, Name: "Royal Enfield Classic 350"},
	{ID: 4, Name: "Bajaj Dominar 400"},
	{ID: 5, Name: "KTM Duke 390"},
	{ID: 6, Name: "Honda CB300F"},
}

var fixtureCategories = []Category{
	{ID: 1, Name: "Helmets", Icon: "helmet", Subcategories: []Subcategory{
		{ID: 101, Name: "Axor"}, {ID: 102, Name: "SMK"}, {ID: 103, Name: "Bilmola"}, {ID: 104, Name: "MT Helmets"},
	}},
	{ID: 2, Name: "Riding Gears", Icon: "shirt", Subcategories: []Subcategory{
		{ID: 201, Name: "Boots"}, {ID: 202, Name: "Gloves"}, {ID: 203, Name: "Jackets"}, {ID: 204, Name: "Pants"},
	}},
	{ID: 3, Name: "Luggage and Touring", Icon: "luggage", Subcategories: []Subcategory{
		{ID: 301, Name: "Saddlebags"}, {ID: 302, Name: "Tank Bags"}, {ID: 303, Name: "Tail Bags"}, {ID: 304, Name: "Panniers"},
	}},
	{ID: 4, Name: "Motorcycle Accessories", Icon: "wrench", Subcategories: []Subcategory{
		{ID: 401, Name: "Bike Protection"}, {ID: 402, Name: "Lighting"}, {ID: 403, Name: "GPS Devices"}, {ID: 404, Name: "Phone Mounts"},
	}},
	{ID: 5, Name: "Offer Sale", Icon: "tag", Subcategories: []Subcategory{
		{ID: 501, Name: "Clearance"}, {ID: 502, Name: "End of Season"}, {ID: 503, Name: "Bundle Deals"},
	}},
	{ID: 6, Name: "Others", Icon: "list", Subcategories: []Subcategory{
		{ID: 601, Name: "Maintenance"}, {ID: 602, Name: "Tools"}, {ID: 603, Name: "Gifts"},
	}},
}

var fixtureProducts = []Product{
	{
		ID:            1,
		Name:          "Axor Apex Hunter Helmet",
		Price:         8990,
		OriginalPrice: price(10990),
		Image:         "https://images.unsplash.com/photo-1599408883328-e6d0ed516204?q=80&w=800&auto=format&fit=crop",
		Category:      "Helmets",
		IsOnSale:      true,
		IsFeatured:    true,
		Sizes:         []string{"S", "M", "L", "XL"},
		Description:   "Premium quality full-face helmet with advanced ventilation and aerodynamic design.",
	},
	{
		ID:          2,
		Name:        "Riding Leather Gloves",
		Price:       2499,
		Image:       "https://images.unsplash.com/photo-1551488831-00ddcb6c6bd3?q=80&w=800&auto=format&fit=crop",
		Category:    "Riding Gears",
		IsNew:       true,
		Sizes:       []string{"M", "L", "XL"},
		Description: "Genuine leather riding gloves with knuckle protection and touchscreen compatibility.",
	},
	{
		ID:            3,
		Name:          "N-Gage Performance Air Filter",
		Price:         1450,
		OriginalPrice: price(1850),
		Image:         "https://images.unsplash.com/photo-1635073908681-b4dfb0be83e3?q=80&w=800&auto=format&fit=crop",
		Category:      "Motorcycle Accessories",
		IsNew:         true,
		IsOnSale:      true,
		Description:   "High-flow air filter for improved performance and throttle response.",
	},
	{
		ID:          4,
		Name:        "Touring Saddle Bags",
		Price:       5499,
		Image:       "https://images.unsplash.com/photo-1577476384366-5f4d6c1ab943?q=80&w=800&auto=format&fit=crop",
		Category:    "Luggage and Touring",
		IsFeatured:  true,
		Description: "Waterproof saddle bags with easy mounting system and expandable storage.",
	},
	{
		ID:            5,
		Name:          "SMK Carbon Fiber Helmet",
		Price:         12999,
		OriginalPrice: price(15999),
		Image:         "https://images.unsplash.com/photo-1627831784610-04a4b6352162?q=80&w=800&auto=format&fit=crop",
		Category:      "Helmets",
		IsOnSale:      true,
		Sizes:         []string{"M", "L", "XL"},
		Description:   "Lightweight carbon fiber helmet with premium interior and superior noise reduction.",
	},
	{
		ID:          6,
		Name:        "Riding Jacket All Season",
		Price:       8999,
		Image:       "https://images.unsplash.com/photo-1626264146571-1b3412b869b6?q=80&w=800&auto=format&fit=crop",
		Category:    "Riding Gears",
		IsFeatured:  true,
		Sizes:       []string{"M", "L", "XL", "XXL"},
		Description: "All-weather riding jacket with removable thermal liner and CE level 2 armor.",
	},
	{
		ID:            7,
		Name:          "LED Auxiliary Lights",
		Price:         3999,
		OriginalPrice: price(4999),
		Image:         "https://images.unsplash.com/photo-1590332926606-8b0f797b6edc?q=80&w=800&auto=format&fit=crop",
		Category:      "Motorcycle Accessories",
		IsOnSale:      true,
		IsNew:         true,
		Description:   "Bright LED auxiliary lights with aluminum housing and universal mounting brackets.",
	},
	{
		ID:          8,
		Name:        "Interceptor 650 Luggage Carrier",
		Price:       2499,
		Image:       "https://images.unsplash.com/photo-1558981333-5b404e84db1b?q=80&w=800&auto=format&fit=crop",
		Category:    "Luggage and Touring",
		IsNew:       true,
		Description: "Custom-fit luggage carrier for Royal Enfield Interceptor 650 with high load capacity.",
	},
}

var fixtureCollections = []Collection{
	{
		ID:          1,
		Title:       "N-Gage Products on Sale",
		Description: "Premium performance parts at special prices",
		Image:       "https://images.unsplash.com/photo-1635073908681-b4dfb0be83e3?q=80&w=800&auto=format&fit=crop",
	},
	{
		ID:          2,
		Title:       "Built for Speed",
		Description: "High-performance accessories for sport bikes",
		Image:       "https://images.unsplash.com/photo-1568772585407-9361f9bf3a87?q=80&w=800&auto=format&fit=crop",
	},
	{
		ID:          3,
		Title:       "Accessories for Triumph Speed 400",
		Description: "Custom-fit parts for your Triumph",
		Image:       "https://images.unsplash.com/photo-1558979159-2b18a4070a87?q=80&w=800&auto=format&fit=crop",
	},
}
