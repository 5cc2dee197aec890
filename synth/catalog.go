package synth

import (
	"fmt"
	"math/rand"

	"github.com/etnz/shopsight"
)

// Product is one sellable item of the synthetic catalog, with a fixed
// unit cost and selling price.
type Product struct {
	Name     string
	Category string
	Cost     shopsight.Money
	Price    shopsight.Money
}

// Customer is one buyer of the synthetic customer pool.
type Customer struct {
	ID   string
	Name string
}

// Coupon is a discount code with an order minimum. FreeShipping coupons
// waive the shipping cost instead of applying a percentage.
type Coupon struct {
	Code         string
	Percent      int
	MinOrder     shopsight.Money
	FreeShipping bool
}

// category groups item families; the generated product name is the item
// followed by a random tier suffix.
type category struct {
	name  string
	items []string
}

var catalog = []category{
	{"Electronics", []string{"Smartphone", "Laptop", "Tablet", "Headphones", "Smartwatch", "Camera"}},
	{"Clothing", []string{"T-Shirt", "Jeans", "Dress", "Jacket", "Shoes", "Accessories"}},
	{"Home", []string{"Furniture", "Kitchenware", "Decor", "Bedding", "Lighting"}},
	{"Books", []string{"Fiction", "Non-Fiction", "Educational", "Children", "Cookbook"}},
	{"Sports", []string{"Equipment", "Apparel", "Footwear", "Accessories"}},
}

var suffixes = []string{"Pro", "Elite", "Basic", "Premium", "Standard"}

var firstNames = []string{
	"James", "Mary", "John", "Patricia", "Robert", "Jennifer", "Michael", "Linda",
	"William", "Elizabeth", "David", "Barbara", "Richard", "Susan", "Joseph", "Jessica",
	"Thomas", "Sarah", "Charles", "Karen", "Christopher", "Nancy", "Daniel", "Lisa",
	"Matthew", "Margaret", "Anthony", "Betty", "Mark", "Sandra",
}

var lastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis",
	"Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez", "Wilson", "Anderson",
	"Thomas", "Taylor", "Moore", "Jackson", "Martin", "Lee", "Perez", "Thompson",
	"White", "Harris", "Sanchez", "Clark", "Ramirez", "Lewis", "Robinson",
}

// coupons are the six live codes. FREESHIP discounts the shipping cost,
// capped at $15.
var coupons = []Coupon{
	{Code: "WELCOME10", Percent: 10, MinOrder: shopsight.USD(0)},
	{Code: "SAVE15", Percent: 15, MinOrder: shopsight.USD(50)},
	{Code: "SUMMER20", Percent: 20, MinOrder: shopsight.USD(100)},
	{Code: "VIP25", Percent: 25, MinOrder: shopsight.USD(200)},
	{Code: "FREESHIP", Percent: 0, MinOrder: shopsight.USD(75), FreeShipping: true},
	{Code: "FLASH30", Percent: 30, MinOrder: shopsight.USD(150)},
}

var paymentMethods = []string{"Credit Card", "PayPal", "Debit Card", "Apple Pay"}

// countries is sampled uniformly, so the repetition weights the mix
// toward domestic orders.
var countries = []string{"USA", "USA", "USA", "Canada", "UK", "Australia"}

var citiesByCountry = map[string][]string{
	"USA":       {"New York", "Los Angeles", "Chicago", "Houston", "Portland", "Denver"},
	"Canada":    {"Toronto", "Vancouver", "Montreal"},
	"UK":        {"London", "Manchester", "Birmingham"},
	"Australia": {"Sydney", "Melbourne", "Brisbane"},
}

// newProducts rolls the catalog: one product per item family, with a
// random tier suffix, a unit cost uniform in 10..500 and a 1.2x..2.5x
// markup.
func newProducts(rng *rand.Rand) []Product {
	var products []Product
	for _, cat := range catalog {
		for _, item := range cat.items {
			cost := roundCents(10 + rng.Float64()*490)
			price := roundCents(cost * (1.2 + rng.Float64()*1.3))
			products = append(products, Product{
				Name:     fmt.Sprintf("%s %s", item, suffixes[rng.Intn(len(suffixes))]),
				Category: cat.name,
				Cost:     shopsight.USD(cost),
				Price:    shopsight.USD(price),
			})
		}
	}
	return products
}

// newCustomers rolls the pool of 500 buyers with stable sequential IDs.
func newCustomers(rng *rand.Rand) []Customer {
	customers := make([]Customer, 0, customerPoolSize)
	for i := range customerPoolSize {
		first := firstNames[rng.Intn(len(firstNames))]
		last := lastNames[rng.Intn(len(lastNames))]
		customers = append(customers, Customer{
			ID:   fmt.Sprintf("C%03d", i+1),
			Name: first + " " + last,
		})
	}
	return customers
}
