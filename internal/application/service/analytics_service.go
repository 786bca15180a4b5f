package service

import (
	"context"

	"github.com/skbavi/supermarket-pos-api/internal/domain/repository"
	"github.com/skbavi/supermarket-pos-api/pkg/apperror"
)

// ChartSeries is a labeled data series for the dashboard charts
type ChartSeries struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// DashboardOutput is the sales-analysis dashboard payload. The chart series
// are fixed illustrative figures; the counters are live.
type DashboardOutput struct {
	MonthlySales     ChartSeries `json:"monthly_sales"`
	CategoryShare    ChartSeries `json:"category_share"`
	ProductCount     int64       `json:"product_count"`
	UserCount        int64       `json:"user_count"`
	TransactionCount int64       `json:"transaction_count"`
}

// AnalyticsService serves the sales-analysis dashboard
type AnalyticsService struct {
	productRepo     repository.ProductRepository
	userRepo        repository.UserRepository
	transactionRepo repository.TransactionRepository
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	transactionRepo repository.TransactionRepository,
) *AnalyticsService {
	return &AnalyticsService{
		productRepo:     productRepo,
		userRepo:        userRepo,
		transactionRepo: transactionRepo,
	}
}

// Dashboard returns the dashboard payload. The monthly and category series
// are static demo figures carried over from the storefront dashboard; they
// are intentionally not derived from the ledger.
func (s *AnalyticsService) Dashboard(ctx context.Context) (*DashboardOutput, error) {
	productCount, err := s.productRepo.Count(ctx)
	if err != nil {
		return nil, apperror.NewPersistenceError("load dashboard")
	}
	userCount, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, apperror.NewPersistenceError("load dashboard")
	}
	transactionCount, err := s.transactionRepo.Count(ctx)
	if err != nil {
		return nil, apperror.NewPersistenceError("load dashboard")
	}

	return &DashboardOutput{
		MonthlySales: ChartSeries{
			Labels: []string{"January", "February", "March", "April", "May", "June"},
			Values: []float64{5000, 7000, 8000, 6000, 9000, 11000},
		},
		CategoryShare: ChartSeries{
			Labels: []string{"Bread", "Anchor", "Milk", "Snacks"},
			Values: []float64{40, 25, 20, 15},
		},
		ProductCount:     productCount,
		UserCount:        userCount,
		TransactionCount: transactionCount,
	}, nil
}
