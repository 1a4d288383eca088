package services

import (
	"context"
	"errors"
	"sort"

	"github.com/DivyaDarni/ShopSmart/models"
	"github.com/DivyaDarni/ShopSmart/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// In-memory fakes for the repository interfaces, mirroring the storage
// semantics the services rely on (conditional stock guard, conditional
// status transition, lazy cart creation).

type fakeProductRepo struct {
	products     map[primitive.ObjectID]*models.Product
	failAdjustOn primitive.ObjectID
	adjustCalls  int
}

func newFakeProductRepo(products ...*models.Product) *fakeProductRepo {
	repo := &fakeProductRepo{products: map[primitive.ObjectID]*models.Product{}}
	for _, p := range products {
		if p.ID.IsZero() {
			p.ID = primitive.NewObjectID()
		}
		p.Availability = models.AvailabilityForStock(p.Stock)
		repo.products[p.ID] = p
	}
	return repo
}

func (f *fakeProductRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *p
	return &copied, nil
}

func (f *fakeProductRepo) Find(ctx context.Context, filter bson.M, findOptions *options.FindOptions) ([]*models.Product, error) {
	out := []*models.Product{}
	for _, p := range f.products {
		copied := *p
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeProductRepo) Count(ctx context.Context, filter bson.M) (int64, error) {
	return int64(len(f.products)), nil
}

func (f *fakeProductRepo) Create(ctx context.Context, product *models.Product) error {
	if product.ID.IsZero() {
		product.ID = primitive.NewObjectID()
	}
	product.Availability = models.AvailabilityForStock(product.Stock)
	copied := *product
	f.products[product.ID] = &copied
	return nil
}

func (f *fakeProductRepo) Update(ctx context.Context, id primitive.ObjectID, updates bson.M) (int64, error) {
	p, ok := f.products[id]
	if !ok {
		return 0, nil
	}
	if name, ok := updates["name"].(string); ok {
		p.Name = name
	}
	if price, ok := updates["price"].(float64); ok {
		p.Price = price
	}
	if stock, ok := updates["stock"].(int); ok {
		p.Stock = stock
		p.Availability = models.AvailabilityForStock(stock)
	}
	return 1, nil
}

func (f *fakeProductRepo) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	if _, ok := f.products[id]; !ok {
		return 0, nil
	}
	delete(f.products, id)
	return 1, nil
}

func (f *fakeProductRepo) Categories(ctx context.Context) ([]string, error) {
	seen := map[string]bool{}
	out := []string{}
	for _, p := range f.products {
		if !seen[string(p.Category)] {
			seen[string(p.Category)] = true
			out = append(out, string(p.Category))
		}
	}
	sort.Strings(out)
	return out, nil
}

func (f *fakeProductRepo) AdjustStock(ctx context.Context, id primitive.ObjectID, delta int) error {
	f.adjustCalls++
	if id == f.failAdjustOn {
		return errors.New("connection reset by peer")
	}
	p, ok := f.products[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	if delta < 0 && p.Stock < -delta {
		return repository.ErrInsufficientStock
	}
	p.Stock += delta
	p.Availability = models.AvailabilityForStock(p.Stock)
	return nil
}

func (f *fakeProductRepo) FindLowStock(ctx context.Context, threshold int, limit int64) ([]*models.Product, error) {
	out := []*models.Product{}
	for _, p := range f.products {
		if p.Stock <= threshold {
			copied := *p
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) stockOf(id primitive.ObjectID) int {
	return f.products[id].Stock
}

type fakeCartRepo struct {
	carts map[string][]models.CartItem
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: map[string][]models.CartItem{}}
}

func (f *fakeCartRepo) GetOrCreate(ctx context.Context, userID string) (*models.Cart, error) {
	items, ok := f.carts[userID]
	if !ok {
		items = []models.CartItem{}
		f.carts[userID] = items
	}
	return &models.Cart{
		UserID: userID,
		Items:  append([]models.CartItem{}, items...),
	}, nil
}

func (f *fakeCartRepo) SaveItems(ctx context.Context, userID string, items []models.CartItem) error {
	f.carts[userID] = append([]models.CartItem{}, items...)
	return nil
}

type fakeOrderRepo struct {
	orders    []*models.Order
	insertErr error
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{}
}

func (f *fakeOrderRepo) find(orderID string) *models.Order {
	for _, o := range f.orders {
		if o.OrderID == orderID {
			return o
		}
	}
	return nil
}

func (f *fakeOrderRepo) Insert(ctx context.Context, order *models.Order) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	copied := *order
	f.orders = append(f.orders, &copied)
	return nil
}

func (f *fakeOrderRepo) FindByOrderID(ctx context.Context, orderID string) (*models.Order, error) {
	o := f.find(orderID)
	if o == nil {
		return nil, mongo.ErrNoDocuments
	}
	copied := *o
	return &copied, nil
}

func (f *fakeOrderRepo) FindByUser(ctx context.Context, userID string) ([]models.Order, error) {
	out := []models.Order{}
	for i := len(f.orders) - 1; i >= 0; i-- {
		if f.orders[i].UserID == userID {
			out = append(out, *f.orders[i])
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) Find(ctx context.Context, filter bson.M, page, limit int64) ([]models.Order, int64, error) {
	status, _ := filter["order_status"].(string)
	out := []models.Order{}
	for i := len(f.orders) - 1; i >= 0; i-- {
		if status == "" || string(f.orders[i].OrderStatus) == status {
			out = append(out, *f.orders[i])
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeOrderRepo) UpdateStatus(ctx context.Context, orderID string, from []models.OrderStatus, status models.OrderStatus, update models.TrackingUpdate) (*models.Order, error) {
	o := f.find(orderID)
	if o == nil {
		return nil, mongo.ErrNoDocuments
	}
	if len(from) > 0 {
		allowed := false
		for _, s := range from {
			if o.OrderStatus == s {
				allowed = true
				break
			}
		}
		if !allowed {
			return nil, mongo.ErrNoDocuments
		}
	}
	o.OrderStatus = status
	o.TrackingInfo.Status = string(status)
	o.TrackingInfo.Updates = append(o.TrackingInfo.Updates, update)
	copied := *o
	return &copied, nil
}

func (f *fakeOrderRepo) Count(ctx context.Context, filter bson.M) (int64, error) {
	return int64(len(f.orders)), nil
}

func (f *fakeOrderRepo) TotalRevenue(ctx context.Context) (float64, error) {
	total := 0.0
	for _, o := range f.orders {
		if o.OrderStatus != models.StatusCancelled {
			total += o.TotalAmount
		}
	}
	return total, nil
}

func (f *fakeOrderRepo) FindRecent(ctx context.Context, limit int64) ([]models.Order, error) {
	out := []models.Order{}
	for i := len(f.orders) - 1; i >= 0 && int64(len(out)) < limit; i-- {
		out = append(out, *f.orders[i])
	}
	return out, nil
}
