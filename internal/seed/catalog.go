package seed

import (
	"time"

	"github.com/shopspring/decimal"

	"storefront/internal/models"
)

type productSeed struct {
	category string
	product  models.Product
}

type reviewSeed struct {
	productSlug string
	review      models.Review
}

func price(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func nullAmount(value string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(value))
}

var categories = []models.Category{
	{Name: "Electronics", Slug: "electronics", Description: "Latest electronic devices and gadgets", Image: "https://images.unsplash.com/photo-1498049794561-7780e7231661?w=400"},
	{Name: "Clothing", Slug: "clothing", Description: "Fashion and apparel for all occasions", Image: "https://images.unsplash.com/photo-1441986300917-64674bd600d8?w=400"},
	{Name: "Home & Garden", Slug: "home-garden", Description: "Everything for your home and garden", Image: "https://images.unsplash.com/photo-1586023492125-27b2c045efd7?w=400"},
	{Name: "Sports", Slug: "sports", Description: "Sports equipment and accessories", Image: "https://images.unsplash.com/photo-1571019613454-1cb2f99b2d8b?w=400"},
	{Name: "Books", Slug: "books", Description: "Books and educational materials", Image: "https://images.unsplash.com/photo-1481627834876-b7833e8f5570?w=400"},
}

var products = []productSeed{
	{"electronics", models.Product{
		Name: "iPhone 15 Pro", Slug: "iphone-15-pro",
		Description: "The latest iPhone with titanium design and advanced camera system",
		Price:       price("999.00"), OriginalPrice: nullAmount("1099.00"), SKU: "IPHONE15PRO-128",
		Stock: 50, IsActive: true, IsFeatured: true,
		Images: []string{"https://images.unsplash.com/photo-1592750475338-74b7b21085ab?w=500"},
		Tags:   []string{"smartphone", "apple", "premium"},
	}},
	{"electronics", models.Product{
		Name: "Samsung Galaxy S24", Slug: "samsung-galaxy-s24",
		Description: "Powerful Android smartphone with AI features",
		Price:       price("849.00"), OriginalPrice: nullAmount("899.00"), SKU: "GALAXY-S24-256",
		Stock: 35, IsActive: true, IsFeatured: true,
		Images: []string{"https://images.unsplash.com/photo-1610945265064-0e34e5519bbf?w=500"},
		Tags:   []string{"smartphone", "samsung", "android"},
	}},
	{"electronics", models.Product{
		Name: `MacBook Pro 14"`, Slug: "macbook-pro-14",
		Description: "Professional laptop with M3 chip for demanding workflows",
		Price:       price("1999.00"), OriginalPrice: nullAmount("2199.00"), SKU: "MBP14-M3-512",
		Stock: 25, IsActive: true, IsFeatured: true,
		Images: []string{"https://images.unsplash.com/photo-1517336714731-489689fd1ca8?w=500"},
		Tags:   []string{"laptop", "apple", "professional"},
	}},
	{"electronics", models.Product{
		Name: "Sony WH-1000XM5", Slug: "sony-wh-1000xm5",
		Description: "Industry-leading noise canceling wireless headphones",
		Price:       price("329.00"), OriginalPrice: nullAmount("399.00"), SKU: "SONY-WH1000XM5",
		Stock: 40, IsActive: true,
		Images: []string{"https://images.unsplash.com/photo-1583394838336-acd977736f90?w=500"},
		Tags:   []string{"headphones", "sony", "wireless"},
	}},
	{"clothing", models.Product{
		Name: "Classic Denim Jacket", Slug: "classic-denim-jacket",
		Description: "Timeless denim jacket perfect for any casual outfit",
		Price:       price("89.00"), OriginalPrice: nullAmount("120.00"), SKU: "DENIM-JACKET-M",
		Stock: 60, IsActive: true, IsFeatured: true,
		Images: []string{"https://images.unsplash.com/photo-1544966503-7cc5ac882d5f?w=500"},
		Tags:   []string{"jacket", "denim", "casual"},
	}},
	{"clothing", models.Product{
		Name: "Premium Cotton T-Shirt", Slug: "premium-cotton-tshirt",
		Description: "Soft, comfortable cotton t-shirt in various colors",
		Price:       price("29.00"), OriginalPrice: nullAmount("39.00"), SKU: "COTTON-TEE-L",
		Stock: 100, IsActive: true,
		Images: []string{"https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?w=500"},
		Tags:   []string{"t-shirt", "cotton", "basic"},
	}},
	{"clothing", models.Product{
		Name: "Running Sneakers", Slug: "running-sneakers",
		Description: "Lightweight running shoes for optimal performance",
		Price:       price("129.00"), OriginalPrice: nullAmount("159.00"), SKU: "RUN-SNEAKER-42",
		Stock: 45, IsActive: true, IsFeatured: true,
		Images: []string{"https://images.unsplash.com/photo-1542291026-7eec264c27ff?w=500"},
		Tags:   []string{"shoes", "running", "athletic"},
	}},
	{"home-garden", models.Product{
		Name: "Smart LED Bulb Set", Slug: "smart-led-bulb-set",
		Description: "WiFi-enabled smart bulbs with color changing capabilities",
		Price:       price("49.00"), OriginalPrice: nullAmount("69.00"), SKU: "SMART-LED-4PACK",
		Stock: 80, IsActive: true,
		Images: []string{"https://images.unsplash.com/photo-1558618047-3c8c76ca7d13?w=500"},
		Tags:   []string{"smart home", "lighting", "wifi"},
	}},
	{"home-garden", models.Product{
		Name: "Ceramic Plant Pot", Slug: "ceramic-plant-pot",
		Description: "Beautiful ceramic pot perfect for indoor plants",
		Price:       price("24.00"), OriginalPrice: nullAmount("32.00"), SKU: "CERAMIC-POT-MED",
		Stock: 120, IsActive: true,
		Images: []string{"https://images.unsplash.com/photo-1485955900006-10f4d324d411?w=500"},
		Tags:   []string{"pot", "ceramic", "plants"},
	}},
	{"sports", models.Product{
		Name: "Yoga Mat Pro", Slug: "yoga-mat-pro",
		Description: "Professional-grade yoga mat with superior grip",
		Price:       price("79.00"), OriginalPrice: nullAmount("99.00"), SKU: "YOGA-MAT-PRO",
		Stock: 55, IsActive: true, IsFeatured: true,
		Images: []string{"https://images.unsplash.com/photo-1544367567-0f2fcb009e0b?w=500"},
		Tags:   []string{"yoga", "mat", "fitness"},
	}},
	{"sports", models.Product{
		Name: "Resistance Band Set", Slug: "resistance-band-set",
		Description: "Complete set of resistance bands for home workouts",
		Price:       price("39.00"), OriginalPrice: nullAmount("55.00"), SKU: "RESIST-BAND-SET",
		Stock: 70, IsActive: true,
		Images: []string{"https://images.unsplash.com/photo-1598300042247-d088f8ab3a91?w=500"},
		Tags:   []string{"resistance", "bands", "workout"},
	}},
	{"books", models.Product{
		Name: "JavaScript: The Definitive Guide", Slug: "javascript-definitive-guide",
		Description: "Comprehensive guide to JavaScript programming",
		Price:       price("59.00"), OriginalPrice: nullAmount("69.00"), SKU: "JS-GUIDE-7ED",
		Stock: 30, IsActive: true,
		Images: []string{"https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=500"},
		Tags:   []string{"programming", "javascript", "guide"},
	}},
	{"books", models.Product{
		Name: "The Art of Clean Code", Slug: "art-of-clean-code",
		Description: "Best practices for writing maintainable code",
		Price:       price("45.00"), OriginalPrice: nullAmount("52.00"), SKU: "CLEAN-CODE-2ED",
		Stock: 25, IsActive: true, IsFeatured: true,
		Images: []string{"https://images.unsplash.com/photo-1532012197267-da84d127e765?w=500"},
		Tags:   []string{"programming", "clean code", "best practices"},
	}},
}

// Reviews reference these placeholder accounts.
var sampleUsers = []models.User{
	{ID: "sample-user-1", FirstName: "Sample", LastName: "One"},
	{ID: "sample-user-2", FirstName: "Sample", LastName: "Two"},
	{ID: "sample-user-3", FirstName: "Sample", LastName: "Three"},
	{ID: "sample-user-4", FirstName: "Sample", LastName: "Four"},
}

var reviews = []reviewSeed{
	{"iphone-15-pro", models.Review{UserID: "sample-user-1", Rating: 5, Title: "Amazing phone!", Comment: "The camera quality is incredible and the titanium build feels premium.", IsVerified: true}},
	{"iphone-15-pro", models.Review{UserID: "sample-user-2", Rating: 4, Title: "Great upgrade", Comment: "Noticeable improvement from my old phone. Battery life is excellent.", IsVerified: true}},
	{"macbook-pro-14", models.Review{UserID: "sample-user-3", Rating: 5, Title: "Perfect for development", Comment: "Blazing fast performance for coding and design work. Highly recommended!", IsVerified: true}},
	{"classic-denim-jacket", models.Review{UserID: "sample-user-4", Rating: 4, Title: "Great quality", Comment: "Fits well and looks stylish. Good value for the price."}},
}

func coupons(now time.Time) []models.Coupon {
	days := func(n int) *time.Time {
		t := now.AddDate(0, 0, n)
		return &t
	}
	maxUses := func(n int) *int { return &n }

	return []models.Coupon{
		{
			Code: "WELCOME10", Description: "10% off for new customers",
			DiscountType: models.DiscountPercentage, DiscountValue: price("10.00"),
			MinOrderAmount: nullAmount("50.00"), MaxUses: maxUses(100),
			IsActive: true, ExpiresAt: days(30),
		},
		{
			Code: "SAVE20", Description: "$20 off orders over $100",
			DiscountType: models.DiscountFixed, DiscountValue: price("20.00"),
			MinOrderAmount: nullAmount("100.00"), MaxUses: maxUses(50),
			IsActive: true, ExpiresAt: days(15),
		},
		{
			Code: "FREESHIP", Description: "Free shipping on any order",
			DiscountType: models.DiscountShipping, DiscountValue: decimal.Zero,
			MinOrderAmount: nullAmount("0.00"),
			IsActive:       true, ExpiresAt: days(60),
		},
	}
}
