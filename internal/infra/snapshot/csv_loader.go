// Package snapshot contains file-based snapshot sources.
package snapshot

import (
	"context"
	"encoding/csv"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"salespulse/internal/domain/entity"
	"salespulse/internal/domain/repository"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

const orderDateLayout = "2006-01-02"

// CSVLoader loads a full snapshot from a directory of CSV exports.
// Expected files: orders.csv, order_items.csv, products.csv, customers.csv,
// regions.csv and shipments.csv (shipments.csv is optional).
type CSVLoader struct {
	dataDir  string
	logger   *slog.Logger
	validate *validator.Validate
}

// NewCSVLoader creates a new CSV loader for the given data directory.
func NewCSVLoader(dataDir string, logger *slog.Logger) *CSVLoader {
	return &CSVLoader{
		dataDir:  dataDir,
		logger:   logger,
		validate: validator.New(),
	}
}

// LoadSnapshot loads all fact and dimension tables from CSV files.
func (l *CSVLoader) LoadSnapshot(_ context.Context) (*entity.Snapshot, error) {
	orders, err := l.LoadOrders()
	if err != nil {
		return nil, errors.WithStack(err)
	}

	items, err := l.LoadOrderItems()
	if err != nil {
		return nil, errors.WithStack(err)
	}

	products, err := l.LoadProducts()
	if err != nil {
		return nil, errors.WithStack(err)
	}

	customers, err := l.LoadCustomers()
	if err != nil {
		return nil, errors.WithStack(err)
	}

	regions, err := l.LoadRegions()
	if err != nil {
		return nil, errors.WithStack(err)
	}

	shipments, err := l.LoadShipments()
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if len(orders) == 0 {
		return nil, repository.ErrEmptySnapshot
	}

	l.logger.Info("snapshot loaded from csv",
		slog.String("dataDir", l.dataDir),
		slog.Int("orders", len(orders)),
		slog.Int("items", len(items)),
		slog.Int("products", len(products)),
		slog.Int("customers", len(customers)),
		slog.Int("regions", len(regions)),
		slog.Int("shipments", len(shipments)),
	)

	return &entity.Snapshot{
		Orders:    orders,
		Items:     items,
		Products:  products,
		Customers: customers,
		Regions:   regions,
		Shipments: shipments,
	}, nil
}

// LoadOrders loads the orders fact table from orders.csv
// Expected CSV format: id,customer_id,region_id,order_date,status,payment_method,revenue_local,revenue_usd,profit,tax,fees
func (l *CSVLoader) LoadOrders() ([]entity.Order, error) {
	var orders []entity.Order

	err := l.readFile("orders.csv", 11, false, func(record []string, lineNum int) error {
		order, parseErr := parseOrder(record)
		if parseErr != nil {
			return errors.Wrapf(parseErr, "orders.csv line %d", lineNum)
		}

		if !order.Status.IsValid() {
			return errors.Errorf("orders.csv line %d: unknown status %q", lineNum, record[4])
		}

		orders = append(orders, order)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return orders, nil
}

// LoadOrderItems loads the line-item fact table from order_items.csv
// Expected CSV format: order_id,product_id,units_sold,unit_price,discount_rate,line_subtotal
func (l *CSVLoader) LoadOrderItems() ([]entity.OrderItem, error) {
	var items []entity.OrderItem

	err := l.readFile("order_items.csv", 6, false, func(record []string, lineNum int) error {
		item, parseErr := parseOrderItem(record)
		if parseErr != nil {
			return errors.Wrapf(parseErr, "order_items.csv line %d", lineNum)
		}

		if validateErr := l.validate.Struct(item); validateErr != nil {
			return errors.Wrapf(validateErr, "order_items.csv line %d", lineNum)
		}

		items = append(items, item)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return items, nil
}

// LoadProducts loads the product dimension from products.csv
// Expected CSV format: id,name,category,brand,sku,unit_price
func (l *CSVLoader) LoadProducts() ([]entity.Product, error) {
	var products []entity.Product

	err := l.readFile("products.csv", 6, false, func(record []string, lineNum int) error {
		unitPrice, parseErr := strconv.ParseFloat(record[5], 64)
		if parseErr != nil {
			return errors.Wrapf(parseErr, "products.csv line %d", lineNum)
		}

		product := entity.Product{
			ID:        record[0],
			Name:      record[1],
			Category:  record[2],
			Brand:     record[3],
			SKU:       record[4],
			UnitPrice: unitPrice,
		}

		if validateErr := l.validate.Struct(product); validateErr != nil {
			return errors.Wrapf(validateErr, "products.csv line %d", lineNum)
		}

		products = append(products, product)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return products, nil
}

// LoadCustomers loads the customer dimension from customers.csv
// Expected CSV format: id,name,email,prime_member,country
func (l *CSVLoader) LoadCustomers() ([]entity.Customer, error) {
	var customers []entity.Customer

	err := l.readFile("customers.csv", 5, false, func(record []string, lineNum int) error {
		prime, parseErr := strconv.ParseBool(record[3])
		if parseErr != nil {
			return errors.Wrapf(parseErr, "customers.csv line %d", lineNum)
		}

		customers = append(customers, entity.Customer{
			ID:          record[0],
			Name:        record[1],
			Email:       record[2],
			PrimeMember: prime,
			Country:     record[4],
		})

		return nil
	})
	if err != nil {
		return nil, err
	}

	return customers, nil
}

// LoadRegions loads the region dimension from regions.csv
// Expected CSV format: id,name,country,channel,currency,fx_rate_usd
func (l *CSVLoader) LoadRegions() ([]entity.Region, error) {
	var regions []entity.Region

	err := l.readFile("regions.csv", 6, false, func(record []string, lineNum int) error {
		fxRate, parseErr := strconv.ParseFloat(record[5], 64)
		if parseErr != nil {
			return errors.Wrapf(parseErr, "regions.csv line %d", lineNum)
		}

		region := entity.Region{
			ID:        record[0],
			Name:      record[1],
			Country:   record[2],
			Channel:   record[3],
			Currency:  record[4],
			FXRateUSD: fxRate,
		}

		if validateErr := l.validate.Struct(region); validateErr != nil {
			return errors.Wrapf(validateErr, "regions.csv line %d", lineNum)
		}

		regions = append(regions, region)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return regions, nil
}

// LoadShipments loads the shipping fact table from shipments.csv
// Expected CSV format: order_id,courier,shipping_method,status,is_late,days_to_deliver
func (l *CSVLoader) LoadShipments() ([]entity.ShipmentRecord, error) {
	var shipments []entity.ShipmentRecord

	err := l.readFile("shipments.csv", 6, true, func(record []string, lineNum int) error {
		shipment, parseErr := parseShipment(record)
		if parseErr != nil {
			return errors.Wrapf(parseErr, "shipments.csv line %d", lineNum)
		}

		if !shipment.Status.IsValid() {
			return errors.Errorf("shipments.csv line %d: unknown status %q", lineNum, record[3])
		}

		shipments = append(shipments, shipment)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return shipments, nil
}

// readFile walks one CSV file, skipping the header row and handing each data
// row to handle with its 1-based line number. Optional files yield zero rows
// when absent.
func (l *CSVLoader) readFile(name string, minColumns int, optional bool, handle func(record []string, lineNum int) error) error {
	path := filepath.Join(l.dataDir, name)
	file, err := os.Open(path)
	if err != nil {
		if optional && os.IsNotExist(err) {
			return nil
		}

		return errors.WithStack(err)
	}
	defer file.Close()

	reader := csv.NewReader(file)

	// Skip header row
	if _, err := reader.Read(); err != nil {
		return errors.WithStack(err)
	}

	lineNum := 1 // Start at 1 because we skipped header

	for {
		record, readErr := reader.Read()
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			return errors.WithStack(readErr)
		}
		lineNum++

		if len(record) < minColumns {
			return errors.Errorf("invalid %s format at line %d: expected %d columns, got %d", name, lineNum, minColumns, len(record))
		}

		if handleErr := handle(record, lineNum); handleErr != nil {
			return handleErr
		}
	}

	return nil
}

func parseOrder(record []string) (entity.Order, error) {
	orderDate, err := time.Parse(orderDateLayout, record[3])
	if err != nil {
		return entity.Order{}, errors.WithStack(err)
	}

	amounts := make([]float64, 5)
	for i, field := range record[6:11] {
		amount, parseErr := strconv.ParseFloat(field, 64)
		if parseErr != nil {
			return entity.Order{}, errors.WithStack(parseErr)
		}
		amounts[i] = amount
	}

	return entity.Order{
		ID:            record[0],
		CustomerID:    record[1],
		RegionID:      record[2],
		OrderDate:     orderDate,
		Status:        entity.OrderStatus(record[4]),
		PaymentMethod: record[5],
		RevenueLocal:  amounts[0],
		RevenueUSD:    amounts[1],
		Profit:        amounts[2],
		Tax:           amounts[3],
		Fees:          amounts[4],
	}, nil
}

func parseOrderItem(record []string) (entity.OrderItem, error) {
	unitsSold, err := strconv.Atoi(record[2])
	if err != nil {
		return entity.OrderItem{}, errors.WithStack(err)
	}

	unitPrice, err := strconv.ParseFloat(record[3], 64)
	if err != nil {
		return entity.OrderItem{}, errors.WithStack(err)
	}

	discountRate, err := strconv.ParseFloat(record[4], 64)
	if err != nil {
		return entity.OrderItem{}, errors.WithStack(err)
	}

	lineSubtotal, err := strconv.ParseFloat(record[5], 64)
	if err != nil {
		return entity.OrderItem{}, errors.WithStack(err)
	}

	return entity.OrderItem{
		OrderID:      record[0],
		ProductID:    record[1],
		UnitsSold:    unitsSold,
		UnitPrice:    unitPrice,
		DiscountRate: discountRate,
		LineSubtotal: lineSubtotal,
	}, nil
}

func parseShipment(record []string) (entity.ShipmentRecord, error) {
	isLate, err := strconv.ParseBool(record[4])
	if err != nil {
		return entity.ShipmentRecord{}, errors.WithStack(err)
	}

	daysToDeliver, err := strconv.ParseFloat(record[5], 64)
	if err != nil {
		return entity.ShipmentRecord{}, errors.WithStack(err)
	}

	return entity.ShipmentRecord{
		OrderID:        record[0],
		Courier:        record[1],
		ShippingMethod: record[2],
		Status:         entity.DeliveryStatus(record[3]),
		IsLate:         isLate,
		DaysToDeliver:  daysToDeliver,
	}, nil
}
