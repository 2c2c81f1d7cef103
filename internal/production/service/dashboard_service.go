package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/telaris/confetrack/internal/production/repository"
	"gorm.io/gorm"
)

const dashboardCacheKey = "dashboard:summary"
const dashboardCacheTTL = 30 * time.Second

// DashboardService produces the landing-page summary. The numbers come from
// aggregate queries over the whole dataset, so they are cached briefly in
// Redis rather than recomputed per request.
type DashboardService struct {
	db        *gorm.DB
	rdb       *redis.Client
	progress  *ProgressService
	orderRepo *repository.OrderRepository
}

func NewDashboardService(db *gorm.DB, rdb *redis.Client, progress *ProgressService, orderRepo *repository.OrderRepository) *DashboardService {
	return &DashboardService{db: db, rdb: rdb, progress: progress, orderRepo: orderRepo}
}

type DashboardSummary struct {
	ActiveEmployees  int64         `json:"active_employees"`
	ActiveGarments   int64         `json:"active_garments"`
	ActiveOrders     int64         `json:"active_orders"`
	PendingPieces    int64         `json:"pending_pieces"`
	CompletedToday   int64         `json:"completed_today"`
	DispatchedTotal  int64         `json:"dispatched_total"`
	OrdersInProgress []OrderStatus `json:"orders_in_progress"`
	GeneratedAt      time.Time     `json:"generated_at"`
}

type OrderStatus struct {
	OrderID     uint   `json:"order_id"`
	OrderNumber string `json:"order_number"`
	Total       int    `json:"total"`
	Completed   int    `json:"completed"`
	Percentage  int    `json:"percentage"`
}

func (s *DashboardService) Summary(ctx context.Context) (*DashboardSummary, error) {
	if cached, err := s.rdb.Get(ctx, dashboardCacheKey).Result(); err == nil {
		var summary DashboardSummary
		if json.Unmarshal([]byte(cached), &summary) == nil {
			return &summary, nil
		}
	}

	summary, err := s.build(ctx)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(summary); err == nil {
		s.rdb.Set(ctx, dashboardCacheKey, raw, dashboardCacheTTL)
	}
	return summary, nil
}

func (s *DashboardService) build(ctx context.Context) (*DashboardSummary, error) {
	summary := &DashboardSummary{GeneratedAt: time.Now()}

	counts := []struct {
		table string
		dst   *int64
	}{
		{"employees", &summary.ActiveEmployees},
		{"garments", &summary.ActiveGarments},
		{"production_orders", &summary.ActiveOrders},
	}
	for _, c := range counts {
		err := s.db.WithContext(ctx).Table(c.table).Where("active = ?", true).Count(c.dst).Error
		if err != nil {
			return nil, err
		}
	}

	err := s.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(quantity), 0) FROM assignments WHERE completed = false
	`).Scan(&summary.PendingPieces).Error
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(quantity), 0) FROM assignments
		WHERE completed = true AND completed_date = ?
	`, time.Now().Format("2006-01-02")).Scan(&summary.CompletedToday).Error
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(dispatched_quantity), 0) FROM remissions WHERE active = true
	`).Scan(&summary.DispatchedTotal).Error
	if err != nil {
		return nil, err
	}

	orders, _, err := s.orderRepo.FindAll(ctx, repository.OrderListParams{Page: 1, PageSize: 20})
	if err != nil {
		return nil, err
	}
	for i := range orders {
		progress, err := s.progress.compute(s.db.WithContext(ctx), &orders[i])
		if err != nil {
			return nil, err
		}
		if progress.Completed >= orders[i].TotalQuantity && orders[i].TotalQuantity > 0 {
			continue
		}
		summary.OrdersInProgress = append(summary.OrdersInProgress, OrderStatus{
			OrderID:     orders[i].ID,
			OrderNumber: orders[i].OrderNumber,
			Total:       orders[i].TotalQuantity,
			Completed:   progress.Completed,
			Percentage:  progress.Percentage,
		})
	}

	return summary, nil
}
