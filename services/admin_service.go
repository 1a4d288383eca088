package services

import (
	"context"

	"github.com/DivyaDarni/ShopSmart/apperrors"
	"github.com/DivyaDarni/ShopSmart/models"
	"github.com/DivyaDarni/ShopSmart/repository"

	"go.mongodb.org/mongo-driver/bson"
)

// DashboardStats is the admin dashboard summary.
type DashboardStats struct {
	TotalProducts int64   `json:"total_products"`
	TotalOrders   int64   `json:"total_orders"`
	TotalUsers    int64   `json:"total_users"`
	TotalRevenue  float64 `json:"total_revenue"`
}

// Dashboard is the full admin dashboard payload.
type Dashboard struct {
	Stats            DashboardStats    `json:"stats"`
	RecentOrders     []models.Order    `json:"recent_orders"`
	LowStockProducts []*models.Product `json:"low_stock_products"`
}

// AdminService aggregates cross-collection statistics for the admin panel.
type AdminService struct {
	products repository.ProductRepository
	orders   repository.OrderRepository
	users    repository.UserRepository
}

func NewAdminService(products repository.ProductRepository, orders repository.OrderRepository, users repository.UserRepository) *AdminService {
	return &AdminService{products: products, orders: orders, users: users}
}

// GetDashboard collects counts, revenue over non-cancelled orders, the five
// most recent orders and low-stock products.
func (s *AdminService) GetDashboard(ctx context.Context) (*Dashboard, *apperrors.Error) {
	totalProducts, err := s.products.Count(ctx, bson.M{})
	if err != nil {
		return nil, apperrors.FromStorage(err, "Product")
	}
	totalOrders, err := s.orders.Count(ctx, bson.M{})
	if err != nil {
		return nil, apperrors.FromStorage(err, "Order")
	}
	totalUsers, err := s.users.CountByRole(ctx, models.RoleCustomer)
	if err != nil {
		return nil, apperrors.FromStorage(err, "User")
	}
	revenue, err := s.orders.TotalRevenue(ctx)
	if err != nil {
		return nil, apperrors.FromStorage(err, "Order")
	}
	recent, err := s.orders.FindRecent(ctx, 5)
	if err != nil {
		return nil, apperrors.FromStorage(err, "Order")
	}
	lowStock, err := s.products.FindLowStock(ctx, models.LimitedStockThreshold, 5)
	if err != nil {
		return nil, apperrors.FromStorage(err, "Product")
	}

	return &Dashboard{
		Stats: DashboardStats{
			TotalProducts: totalProducts,
			TotalOrders:   totalOrders,
			TotalUsers:    totalUsers,
			TotalRevenue:  revenue,
		},
		RecentOrders:     recent,
		LowStockProducts: lowStock,
	}, nil
}

// ListCustomers returns all customer accounts without password hashes.
func (s *AdminService) ListCustomers(ctx context.Context) ([]models.User, *apperrors.Error) {
	users, err := s.users.FindByRole(ctx, models.RoleCustomer)
	if err != nil {
		return nil, apperrors.FromStorage(err, "User")
	}
	return users, nil
}
