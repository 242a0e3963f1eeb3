package postgres

import (
	"context"
	"log/slog"

	"salespulse/internal/domain/entity"
	"salespulse/internal/domain/repository"
	"salespulse/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type snapshotRepository struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewSnapshotRepository creates a PostgreSQL-backed snapshot source.
func NewSnapshotRepository(db *gorm.DB, logger *slog.Logger) repository.SnapshotRepository {
	return &snapshotRepository{
		db:     db,
		logger: logger,
	}
}

// LoadSnapshot reads the full star schema into memory in one pass per table.
func (r *snapshotRepository) LoadSnapshot(ctx context.Context) (*entity.Snapshot, error) {
	var orderModels []model.OrderModel
	if err := r.db.WithContext(ctx).Find(&orderModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to load orders")
	}

	var itemModels []model.OrderItemModel
	if err := r.db.WithContext(ctx).Find(&itemModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to load order items")
	}

	var productModels []model.ProductModel
	if err := r.db.WithContext(ctx).Find(&productModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to load products")
	}

	var customerModels []model.CustomerModel
	if err := r.db.WithContext(ctx).Find(&customerModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to load customers")
	}

	var regionModels []model.RegionModel
	if err := r.db.WithContext(ctx).Find(&regionModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to load regions")
	}

	var shipmentModels []model.ShipmentModel
	if err := r.db.WithContext(ctx).Find(&shipmentModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to load shipments")
	}

	snapshot := &entity.Snapshot{
		Orders:    make([]entity.Order, 0, len(orderModels)),
		Items:     make([]entity.OrderItem, 0, len(itemModels)),
		Products:  make([]entity.Product, 0, len(productModels)),
		Customers: make([]entity.Customer, 0, len(customerModels)),
		Regions:   make([]entity.Region, 0, len(regionModels)),
		Shipments: make([]entity.ShipmentRecord, 0, len(shipmentModels)),
	}

	for _, m := range orderModels {
		snapshot.Orders = append(snapshot.Orders, entity.Order{
			ID:            m.ID,
			CustomerID:    m.CustomerID,
			RegionID:      m.RegionID,
			OrderDate:     m.OrderDate,
			Status:        entity.OrderStatus(m.Status),
			PaymentMethod: m.PaymentMethod,
			RevenueLocal:  m.RevenueLocal,
			RevenueUSD:    m.RevenueUSD,
			Profit:        m.Profit,
			Tax:           m.Tax,
			Fees:          m.Fees,
		})
	}

	for _, m := range itemModels {
		snapshot.Items = append(snapshot.Items, entity.OrderItem{
			OrderID:      m.OrderID,
			ProductID:    m.ProductID,
			UnitsSold:    m.UnitsSold,
			UnitPrice:    m.UnitPrice,
			DiscountRate: m.DiscountRate,
			LineSubtotal: m.LineSubtotal,
		})
	}

	for _, m := range productModels {
		snapshot.Products = append(snapshot.Products, entity.Product{
			ID:        m.ID,
			Name:      m.Name,
			Category:  m.Category,
			Brand:     m.Brand,
			SKU:       m.SKU,
			UnitPrice: m.UnitPrice,
		})
	}

	for _, m := range customerModels {
		snapshot.Customers = append(snapshot.Customers, entity.Customer{
			ID:          m.ID,
			Name:        m.Name,
			Email:       m.Email,
			PrimeMember: m.PrimeMember,
			Country:     m.Country,
		})
	}

	for _, m := range regionModels {
		snapshot.Regions = append(snapshot.Regions, entity.Region{
			ID:        m.ID,
			Name:      m.Name,
			Country:   m.Country,
			Channel:   m.Channel,
			Currency:  m.Currency,
			FXRateUSD: m.FXRateUSD,
		})
	}

	for _, m := range shipmentModels {
		snapshot.Shipments = append(snapshot.Shipments, entity.ShipmentRecord{
			OrderID:        m.OrderID,
			Courier:        m.Courier,
			ShippingMethod: m.ShippingMethod,
			Status:         entity.DeliveryStatus(m.Status),
			IsLate:         m.IsLate,
			DaysToDeliver:  m.DaysToDeliver,
		})
	}

	if len(snapshot.Orders) == 0 {
		return nil, repository.ErrEmptySnapshot
	}

	r.logger.Info("snapshot loaded from postgres",
		slog.Int("orders", len(snapshot.Orders)),
		slog.Int("items", len(snapshot.Items)),
		slog.Int("products", len(snapshot.Products)),
		slog.Int("customers", len(snapshot.Customers)),
		slog.Int("regions", len(snapshot.Regions)),
		slog.Int("shipments", len(snapshot.Shipments)),
	)

	return snapshot, nil
}
