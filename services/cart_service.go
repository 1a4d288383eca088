package services

import (
	"context"
	"errors"

	"github.com/DivyaDarni/ShopSmart/apperrors"
	"github.com/DivyaDarni/ShopSmart/models"
	"github.com/DivyaDarni/ShopSmart/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// CartService manages per-user carts. Every mutation validates quantities
// against current catalog stock and returns the refreshed cart with its
// total recomputed from current prices.
type CartService struct {
	carts    repository.CartRepository
	products repository.ProductRepository
}

func NewCartService(carts repository.CartRepository, products repository.ProductRepository) *CartService {
	return &CartService{carts: carts, products: products}
}

// Get returns the user's cart, creating an empty one on first access.
func (s *CartService) Get(ctx context.Context, userID string) (*models.PopulatedCart, *apperrors.Error) {
	cart, err := s.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, apperrors.FromStorage(err, "Cart")
	}
	return s.populate(ctx, cart)
}

// AddItem adds quantity of a product to the cart. If the product already
// has a line the quantities merge; the merged quantity must not exceed
// current stock, in which case the cart is left unmodified.
func (s *CartService) AddItem(ctx context.Context, userID string, productID primitive.ObjectID, quantity int) (*models.PopulatedCart, *apperrors.Error) {
	if quantity < 1 {
		return nil, apperrors.New(400, "Quantity must be at least 1", nil)
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("Product")
		}
		return nil, apperrors.FromStorage(err, "Product")
	}

	cart, err := s.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, apperrors.FromStorage(err, "Cart")
	}

	found := false
	for i, line := range cart.Items {
		if line.ProductID == productID {
			newQuantity := line.Quantity + quantity
			if product.Stock < newQuantity {
				return nil, apperrors.InsufficientStock(product.Name)
			}
			cart.Items[i].Quantity = newQuantity
			found = true
			break
		}
	}
	if !found {
		if product.Stock < quantity {
			return nil, apperrors.InsufficientStock(product.Name)
		}
		cart.Items = append(cart.Items, models.CartItem{
			ID:        primitive.NewObjectID(),
			ProductID: productID,
			Quantity:  quantity,
		})
	}

	if err := s.carts.SaveItems(ctx, userID, cart.Items); err != nil {
		return nil, apperrors.FromStorage(err, "Cart")
	}
	return s.populate(ctx, cart)
}

// UpdateItem sets a line's quantity, validating it against current stock.
func (s *CartService) UpdateItem(ctx context.Context, userID string, itemID primitive.ObjectID, quantity int) (*models.PopulatedCart, *apperrors.Error) {
	if quantity < 1 {
		return nil, apperrors.New(400, "Quantity must be at least 1", nil)
	}

	cart, err := s.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, apperrors.FromStorage(err, "Cart")
	}

	idx := -1
	for i, line := range cart.Items {
		if line.ID == itemID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, apperrors.NotFound("Cart item")
	}

	product, err := s.products.FindByID(ctx, cart.Items[idx].ProductID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("Product")
		}
		return nil, apperrors.FromStorage(err, "Product")
	}
	if product.Stock < quantity {
		return nil, apperrors.InsufficientStock(product.Name)
	}

	cart.Items[idx].Quantity = quantity
	if err := s.carts.SaveItems(ctx, userID, cart.Items); err != nil {
		return nil, apperrors.FromStorage(err, "Cart")
	}
	return s.populate(ctx, cart)
}

// RemoveItem deletes a line from the cart.
func (s *CartService) RemoveItem(ctx context.Context, userID string, itemID primitive.ObjectID) (*models.PopulatedCart, *apperrors.Error) {
	cart, err := s.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, apperrors.FromStorage(err, "Cart")
	}

	items := make([]models.CartItem, 0, len(cart.Items))
	for _, line := range cart.Items {
		if line.ID != itemID {
			items = append(items, line)
		}
	}
	if len(items) == len(cart.Items) {
		return nil, apperrors.NotFound("Cart item")
	}
	cart.Items = items

	if err := s.carts.SaveItems(ctx, userID, cart.Items); err != nil {
		return nil, apperrors.FromStorage(err, "Cart")
	}
	return s.populate(ctx, cart)
}

// Clear empties the cart. The cart document itself survives.
func (s *CartService) Clear(ctx context.Context, userID string) (*models.PopulatedCart, *apperrors.Error) {
	cart, err := s.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, apperrors.FromStorage(err, "Cart")
	}

	cart.Items = []models.CartItem{}
	if err := s.carts.SaveItems(ctx, userID, cart.Items); err != nil {
		return nil, apperrors.FromStorage(err, "Cart")
	}
	return s.populate(ctx, cart)
}

// populate joins cart lines with their current product documents and
// computes the derived total from current prices. Lines whose product has
// been removed from the catalog are dropped from the view.
func (s *CartService) populate(ctx context.Context, cart *models.Cart) (*models.PopulatedCart, *apperrors.Error) {
	populated := &models.PopulatedCart{
		UserID:    cart.UserID,
		Items:     []models.PopulatedCartItem{},
		UpdatedAt: cart.UpdatedAt,
	}

	for _, line := range cart.Items {
		product, err := s.products.FindByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				continue
			}
			return nil, apperrors.FromStorage(err, "Product")
		}
		subtotal := product.Price * float64(line.Quantity)
		populated.Items = append(populated.Items, models.PopulatedCartItem{
			ID:       line.ID,
			Product:  *product,
			Quantity: line.Quantity,
			Subtotal: subtotal,
		})
		populated.TotalAmount += subtotal
	}

	return populated, nil
}
