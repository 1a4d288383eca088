// Command seed wipes and repopulates the products and users collections
// with sample grocery data, including a demo customer and a demo admin.
package main

import (
	"context"
	"log"
	"time"

	"github.com/DivyaDarni/ShopSmart/config"
	"github.com/DivyaDarni/ShopSmart/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

var groceryProducts = []models.Product{
	{
		Name:        "Fresh Bananas",
		Description: "Fresh yellow bananas, perfect for breakfast and snacks",
		Price:       60,
		Category:    models.CategoryFruits,
		Image:       "https://images.unsplash.com/photo-1571771894821-ce9b6c11b08e?w=500",
		Stock:       50,
		Unit:        models.UnitKg,
	},
	{
		Name:        "Red Apples",
		Description: "Crispy and sweet red apples, rich in vitamins",
		Price:       150,
		Category:    models.CategoryFruits,
		Image:       "https://images.unsplash.com/photo-1560806887-1e4cd0b6cbd6?w=500",
		Stock:       30,
		Unit:        models.UnitKg,
	},
	{
		Name:        "Fresh Tomatoes",
		Description: "Juicy red tomatoes, perfect for cooking and salads",
		Price:       40,
		Category:    models.CategoryVegetables,
		Image:       "https://images.unsplash.com/photo-1546470427-e5e5d5d5b4b8?w=500",
		Stock:       25,
		Unit:        models.UnitKg,
	},
	{
		Name:        "Green Spinach",
		Description: "Fresh green spinach leaves, packed with iron and vitamins",
		Price:       30,
		Category:    models.CategoryVegetables,
		Image:       "https://images.unsplash.com/photo-1576045057995-568f588f82fb?w=500",
		Stock:       20,
		Unit:        models.UnitKg,
	},
	{
		Name:        "Whole Milk",
		Description: "Fresh whole milk, rich in calcium and protein",
		Price:       60,
		Category:    models.CategoryDairy,
		Image:       "https://images.unsplash.com/photo-1550583724-b2692b85b150?w=500",
		Stock:       40,
		Unit:        models.UnitLiters,
	},
	{
		Name:        "Fresh Eggs",
		Description: "Farm fresh eggs, perfect for breakfast and baking",
		Price:       120,
		Category:    models.CategoryDairy,
		Image:       "https://images.unsplash.com/photo-1518569656558-1f25e69d93d7?w=500",
		Stock:       100,
		Unit:        models.UnitPieces,
	},
	{
		Name:        "Chicken Breast",
		Description: "Fresh boneless chicken breast, high in protein",
		Price:       250,
		Category:    models.CategoryMeat,
		Image:       "https://images.unsplash.com/photo-1604503468506-a8da13d82791?w=500",
		Stock:       15,
		Unit:        models.UnitKg,
	},
	{
		Name:        "Basmati Rice",
		Description: "Premium quality basmati rice, aromatic and fluffy",
		Price:       80,
		Category:    models.CategoryGrains,
		Image:       "https://images.unsplash.com/photo-1586201375761-83865001e31c?w=500",
		Stock:       60,
		Unit:        models.UnitKg,
	},
	{
		Name:        "Orange Juice",
		Description: "Fresh orange juice, 100% natural with no added sugar",
		Price:       80,
		Category:    models.CategoryBeverages,
		Image:       "https://images.unsplash.com/photo-1621506289937-a8e4df240d0b?w=500",
		Stock:       35,
		Unit:        models.UnitLiters,
	},
	{
		Name:        "Potato Chips",
		Description: "Crispy potato chips, perfect snack for any time",
		Price:       40,
		Category:    models.CategorySnacks,
		Image:       "https://images.unsplash.com/photo-1566478989037-eec170784d0b?w=500",
		Stock:       80,
		Unit:        models.UnitPackets,
	},
	{
		Name:        "Green Broccoli",
		Description: "Fresh green broccoli, rich in vitamins and minerals",
		Price:       90,
		Category:    models.CategoryVegetables,
		Image:       "https://images.unsplash.com/photo-1459411621453-7b03977f4bfc?w=500",
		Stock:       18,
		Unit:        models.UnitKg,
	},
	{
		Name:        "Greek Yogurt",
		Description: "Creamy Greek yogurt, high in protein and probiotics",
		Price:       120,
		Category:    models.CategoryDairy,
		Image:       "https://images.unsplash.com/photo-1488477181946-6428a0291777?w=500",
		Stock:       25,
		Unit:        models.UnitPackets,
	},
}

var sampleUsers = []struct {
	Name     string
	Email    string
	Password string
	Role     models.Role
}{
	{Name: "Demo Customer", Email: "customer@demo.com", Password: "password123", Role: models.RoleCustomer},
	{Name: "Demo Admin", Email: "admin@demo.com", Password: "password123", Role: models.RoleAdmin},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(context.Background())

	db := client.Database(cfg.MongoDB)
	products := db.Collection("products")
	users := db.Collection("users")

	// Clear existing data
	if _, err := products.DeleteMany(ctx, bson.M{}); err != nil {
		log.Fatalf("Failed to clear products: %v", err)
	}
	if _, err := users.DeleteMany(ctx, bson.M{}); err != nil {
		log.Fatalf("Failed to clear users: %v", err)
	}

	now := time.Now().UTC()
	productDocs := make([]interface{}, 0, len(groceryProducts))
	for _, p := range groceryProducts {
		p.Availability = models.AvailabilityForStock(p.Stock)
		p.CreatedAt = now
		p.UpdatedAt = now
		productDocs = append(productDocs, p)
	}
	if _, err := products.InsertMany(ctx, productDocs); err != nil {
		log.Fatalf("Failed to insert products: %v", err)
	}
	log.Printf("Inserted %d grocery products", len(productDocs))

	userDocs := make([]interface{}, 0, len(sampleUsers))
	for _, u := range sampleUsers {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("Failed to hash password for %s: %v", u.Email, err)
		}
		userDocs = append(userDocs, models.User{
			ID:        uuid.NewString(),
			Name:      u.Name,
			Email:     u.Email,
			Password:  string(hash),
			Role:      u.Role,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	if _, err := users.InsertMany(ctx, userDocs); err != nil {
		log.Fatalf("Failed to insert users: %v", err)
	}
	log.Printf("Inserted %d sample users", len(userDocs))

	log.Println("Database seeded successfully")
}
