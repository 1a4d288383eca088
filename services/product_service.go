package services

import (
	"context"

	"github.com/DivyaDarni/ShopSmart/apperrors"
	"github.com/DivyaDarni/ShopSmart/models"
	"github.com/DivyaDarni/ShopSmart/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ListProductsParams are the catalog listing filters.
type ListProductsParams struct {
	Category     string
	Availability string
	Search       string
	Sort         string
}

// ProductCreateRequest is the admin product creation payload.
type ProductCreateRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description" binding:"required"`
	Price       float64         `json:"price" binding:"min=0"`
	Category    models.Category `json:"category" binding:"required"`
	Image       string          `json:"image" binding:"required"`
	Stock       int             `json:"stock" binding:"min=0"`
	Unit        models.Unit     `json:"unit"`
}

// ProductUpdateRequest is the admin product update payload; nil fields are
// left unchanged.
type ProductUpdateRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *float64         `json:"price"`
	Category    *models.Category `json:"category"`
	Image       *string          `json:"image"`
	Stock       *int             `json:"stock"`
	Unit        *models.Unit     `json:"unit"`
}

// ProductService provides catalog reads and admin catalog mutations.
type ProductService struct {
	products repository.ProductRepository
}

func NewProductService(products repository.ProductRepository) *ProductService {
	return &ProductService{products: products}
}

func (s *ProductService) Get(ctx context.Context, idHex string) (*models.Product, *apperrors.Error) {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return nil, apperrors.New(400, "Invalid product ID format", err)
	}

	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.FromStorage(err, "Product")
	}
	return product, nil
}

// List returns products matching the storefront filters.
func (s *ProductService) List(ctx context.Context, params ListProductsParams) ([]*models.Product, *apperrors.Error) {
	filter := listFilter(params.Category, params.Availability)

	if params.Search != "" {
		pattern := primitive.Regex{Pattern: params.Search, Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"name": pattern},
			bson.M{"description": pattern},
		}
	}

	var sort bson.D
	switch params.Sort {
	case "price-low":
		sort = bson.D{{Key: "price", Value: 1}}
	case "price-high":
		sort = bson.D{{Key: "price", Value: -1}}
	case "name":
		sort = bson.D{{Key: "name", Value: 1}}
	default:
		sort = bson.D{{Key: "created_at", Value: -1}}
	}

	products, err := s.products.Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		return nil, apperrors.FromStorage(err, "Product")
	}
	return products, nil
}

func (s *ProductService) Categories(ctx context.Context) ([]string, *apperrors.Error) {
	categories, err := s.products.Categories(ctx)
	if err != nil {
		return nil, apperrors.FromStorage(err, "Product")
	}
	return categories, nil
}

// ProductListResult is a paginated admin product listing.
type ProductListResult struct {
	Products    []*models.Product `json:"products"`
	Total       int64             `json:"total"`
	TotalPages  int64             `json:"total_pages"`
	CurrentPage int64             `json:"current_page"`
}

// AdminList returns paginated products for the admin panel.
func (s *ProductService) AdminList(ctx context.Context, page, limit int64, category, availability string) (*ProductListResult, *apperrors.Error) {
	filter := listFilter(category, availability)

	total, err := s.products.Count(ctx, filter)
	if err != nil {
		return nil, apperrors.FromStorage(err, "Product")
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	products, err := s.products.Find(ctx, filter, opts)
	if err != nil {
		return nil, apperrors.FromStorage(err, "Product")
	}

	return &ProductListResult{
		Products:    products,
		Total:       total,
		TotalPages:  (total + limit - 1) / limit,
		CurrentPage: page,
	}, nil
}

func (s *ProductService) Create(ctx context.Context, req ProductCreateRequest) (*models.Product, *apperrors.Error) {
	if !req.Category.Valid() {
		return nil, apperrors.New(400, "Invalid product category", nil)
	}
	if req.Unit == "" {
		req.Unit = models.UnitKg
	}
	if !req.Unit.Valid() {
		return nil, apperrors.New(400, "Invalid product unit", nil)
	}

	product := &models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Image:       req.Image,
		Stock:       req.Stock,
		Unit:        req.Unit,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, apperrors.FromStorage(err, "Product")
	}
	return product, nil
}

func (s *ProductService) Update(ctx context.Context, idHex string, req ProductUpdateRequest) (*models.Product, *apperrors.Error) {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return nil, apperrors.New(400, "Invalid product ID format", err)
	}

	updates := bson.M{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, apperrors.New(400, "Price cannot be negative", nil)
		}
		updates["price"] = *req.Price
	}
	if req.Category != nil {
		if !req.Category.Valid() {
			return nil, apperrors.New(400, "Invalid product category", nil)
		}
		updates["category"] = *req.Category
	}
	if req.Image != nil {
		updates["image"] = *req.Image
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			return nil, apperrors.New(400, "Stock cannot be negative", nil)
		}
		updates["stock"] = *req.Stock
	}
	if req.Unit != nil {
		if !req.Unit.Valid() {
			return nil, apperrors.New(400, "Invalid product unit", nil)
		}
		updates["unit"] = *req.Unit
	}
	if len(updates) == 0 {
		return nil, apperrors.New(400, "No fields to update", nil)
	}

	matched, err := s.products.Update(ctx, id, updates)
	if err != nil {
		return nil, apperrors.FromStorage(err, "Product")
	}
	if matched == 0 {
		return nil, apperrors.NotFound("Product")
	}

	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.FromStorage(err, "Product")
	}
	return product, nil
}

func (s *ProductService) Delete(ctx context.Context, idHex string) *apperrors.Error {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return apperrors.New(400, "Invalid product ID format", err)
	}

	deleted, err := s.products.Delete(ctx, id)
	if err != nil {
		return apperrors.FromStorage(err, "Product")
	}
	if deleted == 0 {
		return apperrors.NotFound("Product")
	}
	return nil
}

func listFilter(category, availability string) bson.M {
	filter := bson.M{}
	if category != "" && category != "All" {
		filter["category"] = category
	}
	if availability != "" && availability != "All" {
		filter["availability"] = availability
	}
	return filter
}
