package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DivyaDarni/ShopSmart/middleware"
	"github.com/DivyaDarni/ShopSmart/models"
	"github.com/DivyaDarni/ShopSmart/repository"
	"github.com/DivyaDarni/ShopSmart/services"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const testSecret = "test-secret"

// Minimal in-memory repositories backing the HTTP-level tests.

type memProductRepo struct {
	products map[primitive.ObjectID]*models.Product
}

func (m *memProductRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *p
	return &copied, nil
}

func (m *memProductRepo) Find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*models.Product, error) {
	out := []*models.Product{}
	for _, p := range m.products {
		copied := *p
		out = append(out, &copied)
	}
	return out, nil
}

func (m *memProductRepo) Count(ctx context.Context, filter bson.M) (int64, error) {
	return int64(len(m.products)), nil
}

func (m *memProductRepo) Create(ctx context.Context, product *models.Product) error {
	if product.ID.IsZero() {
		product.ID = primitive.NewObjectID()
	}
	copied := *product
	m.products[product.ID] = &copied
	return nil
}

func (m *memProductRepo) Update(ctx context.Context, id primitive.ObjectID, updates bson.M) (int64, error) {
	if _, ok := m.products[id]; !ok {
		return 0, nil
	}
	return 1, nil
}

func (m *memProductRepo) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	if _, ok := m.products[id]; !ok {
		return 0, nil
	}
	delete(m.products, id)
	return 1, nil
}

func (m *memProductRepo) Categories(ctx context.Context) ([]string, error) {
	return []string{}, nil
}

func (m *memProductRepo) AdjustStock(ctx context.Context, id primitive.ObjectID, delta int) error {
	p, ok := m.products[id]
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

func (m *memProductRepo) FindLowStock(ctx context.Context, threshold int, limit int64) ([]*models.Product, error) {
	return []*models.Product{}, nil
}

type memCartRepo struct {
	carts map[string][]models.CartItem
}

func (m *memCartRepo) GetOrCreate(ctx context.Context, userID string) (*models.Cart, error) {
	items, ok := m.carts[userID]
	if !ok {
		items = []models.CartItem{}
		m.carts[userID] = items
	}
	return &models.Cart{UserID: userID, Items: append([]models.CartItem{}, items...)}, nil
}

func (m *memCartRepo) SaveItems(ctx context.Context, userID string, items []models.CartItem) error {
	m.carts[userID] = append([]models.CartItem{}, items...)
	return nil
}

type memOrderRepo struct {
	orders []*models.Order
}

func (m *memOrderRepo) byID(orderID string) *models.Order {
	for _, o := range m.orders {
		if o.OrderID == orderID {
			return o
		}
	}
	return nil
}

func (m *memOrderRepo) Insert(ctx context.Context, order *models.Order) error {
	copied := *order
	m.orders = append(m.orders, &copied)
	return nil
}

func (m *memOrderRepo) FindByOrderID(ctx context.Context, orderID string) (*models.Order, error) {
	o := m.byID(orderID)
	if o == nil {
		return nil, mongo.ErrNoDocuments
	}
	copied := *o
	return &copied, nil
}

func (m *memOrderRepo) FindByUser(ctx context.Context, userID string) ([]models.Order, error) {
	out := []models.Order{}
	for i := len(m.orders) - 1; i >= 0; i-- {
		if m.orders[i].UserID == userID {
			out = append(out, *m.orders[i])
		}
	}
	return out, nil
}

func (m *memOrderRepo) Find(ctx context.Context, filter bson.M, page, limit int64) ([]models.Order, int64, error) {
	out := []models.Order{}
	for i := len(m.orders) - 1; i >= 0; i-- {
		out = append(out, *m.orders[i])
	}
	return out, int64(len(out)), nil
}

func (m *memOrderRepo) UpdateStatus(ctx context.Context, orderID string, from []models.OrderStatus, status models.OrderStatus, update models.TrackingUpdate) (*models.Order, error) {
	o := m.byID(orderID)
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

func (m *memOrderRepo) Count(ctx context.Context, filter bson.M) (int64, error) {
	return int64(len(m.orders)), nil
}

func (m *memOrderRepo) TotalRevenue(ctx context.Context) (float64, error) {
	total := 0.0
	for _, o := range m.orders {
		if o.OrderStatus != models.StatusCancelled {
			total += o.TotalAmount
		}
	}
	return total, nil
}

func (m *memOrderRepo) FindRecent(ctx context.Context, limit int64) ([]models.Order, error) {
	out := []models.Order{}
	for i := len(m.orders) - 1; i >= 0 && int64(len(out)) < limit; i-- {
		out = append(out, *m.orders[i])
	}
	return out, nil
}

type orderTestEnv struct {
	router   *gin.Engine
	products *memProductRepo
	carts    *memCartRepo
	orders   *memOrderRepo
}

func newOrderTestEnv(products ...*models.Product) *orderTestEnv {
	gin.SetMode(gin.TestMode)

	productRepo := &memProductRepo{products: map[primitive.ObjectID]*models.Product{}}
	for _, p := range products {
		if p.ID.IsZero() {
			p.ID = primitive.NewObjectID()
		}
		p.Availability = models.AvailabilityForStock(p.Stock)
		productRepo.products[p.ID] = p
	}
	cartRepo := &memCartRepo{carts: map[string][]models.CartItem{}}
	orderRepo := &memOrderRepo{}

	orderService := services.NewOrderService(orderRepo, cartRepo, productRepo)
	oc := NewOrderController(orderService, NewCacheManager(nil, time.Minute))

	r := gin.New()
	group := r.Group("/api/orders", middleware.Auth(testSecret))
	group.POST("", oc.CreateOrder)
	group.GET("/mine", oc.GetMyOrders)
	group.GET("/:orderId", oc.GetOrderByID)
	group.PUT("/:orderId/cancel", oc.CancelOrder)

	return &orderTestEnv{router: r, products: productRepo, carts: cartRepo, orders: orderRepo}
}

func tokenFor(t *testing.T, userID string, role models.Role) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    string(role),
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func (env *orderTestEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

var orderBody = map[string]interface{}{
	"shipping_address": map[string]string{
		"street":  "12 Market Street",
		"city":    "Chennai",
		"state":   "TN",
		"pincode": "600001",
		"phone":   "9876543210",
	},
	"payment_method": "COD",
}

func TestCreateOrderEndpoint(t *testing.T) {
	bananas := &models.Product{Name: "Fresh Bananas", Price: 60, Stock: 10}
	env := newOrderTestEnv(bananas)
	env.carts.carts["u1"] = []models.CartItem{{ID: primitive.NewObjectID(), ProductID: bananas.ID, Quantity: 2}}

	w := env.do(t, http.MethodPost, "/api/orders", tokenFor(t, "u1", models.RoleCustomer), orderBody)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		OrderID string       `json:"order_id"`
		Order   models.Order `json:"order"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.OrderID)
	assert.Equal(t, models.StatusPending, resp.Order.OrderStatus)
	assert.Equal(t, 120.0, resp.Order.TotalAmount)
	assert.Equal(t, 8, env.products.products[bananas.ID].Stock)
	assert.Empty(t, env.carts.carts["u1"])
}

func TestCreateOrderRequiresAuth(t *testing.T) {
	env := newOrderTestEnv()

	w := env.do(t, http.MethodPost, "/api/orders", "", orderBody)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateOrderEmptyCart(t *testing.T) {
	env := newOrderTestEnv()

	w := env.do(t, http.MethodPost, "/api/orders", tokenFor(t, "u1", models.RoleCustomer), orderBody)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Cart is empty")
}

func TestCreateOrderMissingAddress(t *testing.T) {
	bananas := &models.Product{Name: "Fresh Bananas", Price: 60, Stock: 10}
	env := newOrderTestEnv(bananas)
	env.carts.carts["u1"] = []models.CartItem{{ID: primitive.NewObjectID(), ProductID: bananas.ID, Quantity: 1}}

	w := env.do(t, http.MethodPost, "/api/orders", tokenFor(t, "u1", models.RoleCustomer),
		map[string]interface{}{"payment_method": "COD"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateOrderInsufficientStock(t *testing.T) {
	bananas := &models.Product{Name: "Fresh Bananas", Price: 60, Stock: 1}
	env := newOrderTestEnv(bananas)
	env.carts.carts["u1"] = []models.CartItem{{ID: primitive.NewObjectID(), ProductID: bananas.ID, Quantity: 5}}

	w := env.do(t, http.MethodPost, "/api/orders", tokenFor(t, "u1", models.RoleCustomer), orderBody)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Insufficient stock for Fresh Bananas")
	assert.Empty(t, env.orders.orders)
}

func TestGetMyOrdersEndpoint(t *testing.T) {
	bananas := &models.Product{Name: "Fresh Bananas", Price: 60, Stock: 10}
	env := newOrderTestEnv(bananas)
	env.carts.carts["u1"] = []models.CartItem{{ID: primitive.NewObjectID(), ProductID: bananas.ID, Quantity: 1}}

	w := env.do(t, http.MethodPost, "/api/orders", tokenFor(t, "u1", models.RoleCustomer), orderBody)
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do(t, http.MethodGet, "/api/orders/mine", tokenFor(t, "u1", models.RoleCustomer), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var orders []models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &orders))
	assert.Len(t, orders, 1)

	// Another customer sees nothing.
	w = env.do(t, http.MethodGet, "/api/orders/mine", tokenFor(t, "u2", models.RoleCustomer), nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &orders))
	assert.Empty(t, orders)
}

func TestCancelOrderEndpoint(t *testing.T) {
	bananas := &models.Product{Name: "Fresh Bananas", Price: 60, Stock: 10}
	env := newOrderTestEnv(bananas)
	env.carts.carts["u1"] = []models.CartItem{{ID: primitive.NewObjectID(), ProductID: bananas.ID, Quantity: 3}}

	w := env.do(t, http.MethodPost, "/api/orders", tokenFor(t, "u1", models.RoleCustomer), orderBody)
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		OrderID string `json:"order_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, 7, env.products.products[bananas.ID].Stock)

	// A stranger cannot cancel it, and cannot tell it exists.
	w = env.do(t, http.MethodPut, "/api/orders/"+created.OrderID+"/cancel", tokenFor(t, "u2", models.RoleCustomer), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodPut, "/api/orders/"+created.OrderID+"/cancel", tokenFor(t, "u1", models.RoleCustomer), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 10, env.products.products[bananas.ID].Stock)

	// Already cancelled.
	w = env.do(t, http.MethodPut, "/api/orders/"+created.OrderID+"/cancel", tokenFor(t, "u1", models.RoleCustomer), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetOrderByIDVisibility(t *testing.T) {
	bananas := &models.Product{Name: "Fresh Bananas", Price: 60, Stock: 10}
	env := newOrderTestEnv(bananas)
	env.carts.carts["u1"] = []models.CartItem{{ID: primitive.NewObjectID(), ProductID: bananas.ID, Quantity: 1}}

	w := env.do(t, http.MethodPost, "/api/orders", tokenFor(t, "u1", models.RoleCustomer), orderBody)
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		OrderID string `json:"order_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = env.do(t, http.MethodGet, "/api/orders/"+created.OrderID, tokenFor(t, "u1", models.RoleCustomer), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/orders/"+created.OrderID, tokenFor(t, "admin", models.RoleAdmin), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/orders/"+created.OrderID, tokenFor(t, "u2", models.RoleCustomer), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
