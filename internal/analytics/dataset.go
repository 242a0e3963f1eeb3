package analytics

import (
	"fmt"
	"math"
	"time"

	"salespulse/internal/domain/entity"
)

// subtotal tolerance: a cent of absolute slack plus 0.1% of the expected
// amount, covering FX and per-line rounding in the source data.
const (
	subtotalAbsTolerance = 0.01
	subtotalRelTolerance = 0.001
)

// OrderFact is an order with its dimension rows resolved.
type OrderFact struct {
	Order    entity.Order
	Customer *entity.Customer
	Region   *entity.Region
}

// LineFact is a completed-order line item with its product resolved and its
// amounts converted to USD. ProfitUSD is the order's profit allocated to the
// line proportional to its subtotal share of the order.
type LineFact struct {
	Item        entity.OrderItem
	Order       *OrderFact
	Product     *entity.Product
	SubtotalUSD float64
	ProfitUSD   float64
}

// ShipmentFact is a shipment record with its order resolved.
type ShipmentFact struct {
	Record entity.ShipmentRecord
	Order  *OrderFact
}

// Dataset is the joined, validated view of a snapshot that every report
// builder reads. It is immutable once built.
type Dataset struct {
	Orders    []*OrderFact    // every order that resolved, any status
	Completed []*OrderFact    // the Completed subset, order preserved
	Lines     []*LineFact     // completed-order lines only
	Shipments []*ShipmentFact // shipments whose order resolved

	// ReferenceDate anchors recency arithmetic.
	ReferenceDate time.Time

	// Warnings collects every row skipped during the join.
	Warnings []Warning
}

// NewDataset joins the snapshot's facts against its dimensions. Fact rows
// referencing absent dimension keys and line items whose subtotal breaks the
// structural invariant are excluded, each with a warning; nothing here is
// fatal.
func NewDataset(snap *entity.Snapshot, opts Options) *Dataset {
	ds := &Dataset{}

	customers := make(map[string]*entity.Customer, len(snap.Customers))
	for i := range snap.Customers {
		customers[snap.Customers[i].ID] = &snap.Customers[i]
	}
	regions := make(map[string]*entity.Region, len(snap.Regions))
	for i := range snap.Regions {
		regions[snap.Regions[i].ID] = &snap.Regions[i]
	}
	products := make(map[string]*entity.Product, len(snap.Products))
	for i := range snap.Products {
		products[snap.Products[i].ID] = &snap.Products[i]
	}

	ordersByID := make(map[string]*OrderFact, len(snap.Orders))
	for i := range snap.Orders {
		order := snap.Orders[i]

		customer, ok := customers[order.CustomerID]
		if !ok {
			ds.warnf(WarnMissingReference, "order %s references unknown customer %s", order.ID, order.CustomerID)

			continue
		}
		region, ok := regions[order.RegionID]
		if !ok {
			ds.warnf(WarnMissingReference, "order %s references unknown region %s", order.ID, order.RegionID)

			continue
		}

		fact := &OrderFact{Order: order, Customer: customer, Region: region}
		ordersByID[order.ID] = fact
		ds.Orders = append(ds.Orders, fact)
		if order.Status == entity.OrderStatusCompleted {
			ds.Completed = append(ds.Completed, fact)
		}
	}

	ds.joinLines(snap.Items, ordersByID, products)

	for i := range snap.Shipments {
		record := snap.Shipments[i]
		order, ok := ordersByID[record.OrderID]
		if !ok {
			ds.warnf(WarnMissingReference, "shipment references unknown order %s", record.OrderID)

			continue
		}
		ds.Shipments = append(ds.Shipments, &ShipmentFact{Record: record, Order: order})
	}

	ds.ReferenceDate = opts.ReferenceDate
	if ds.ReferenceDate.IsZero() {
		for _, fact := range ds.Orders {
			if fact.Order.OrderDate.After(ds.ReferenceDate) {
				ds.ReferenceDate = fact.Order.OrderDate
			}
		}
	}

	return ds
}

// joinLines resolves line items for completed orders, checks the subtotal
// invariant and allocates order profit across surviving lines.
func (ds *Dataset) joinLines(items []entity.OrderItem, ordersByID map[string]*OrderFact, products map[string]*entity.Product) {
	linesByOrder := make(map[string][]*LineFact)

	for i := range items {
		item := items[i]

		order, ok := ordersByID[item.OrderID]
		if !ok {
			ds.warnf(WarnMissingReference, "line item references unknown order %s", item.OrderID)

			continue
		}
		product, ok := products[item.ProductID]
		if !ok {
			ds.warnf(WarnMissingReference, "line item of order %s references unknown product %s", item.OrderID, item.ProductID)

			continue
		}

		expected := item.ExpectedSubtotal()
		tolerance := subtotalAbsTolerance + subtotalRelTolerance*math.Abs(expected)
		if math.Abs(item.LineSubtotal-expected) > tolerance {
			ds.warnf(WarnSnapshotInconsistency,
				"line item of order %s product %s: subtotal %.2f does not match %.2f", item.OrderID, item.ProductID, item.LineSubtotal, expected)

			continue
		}

		if order.Order.Status != entity.OrderStatusCompleted {
			// Only completed orders feed the line-level reports.
			continue
		}

		line := &LineFact{
			Item:        item,
			Order:       order,
			Product:     product,
			SubtotalUSD: item.LineSubtotal * order.Region.FXRateUSD,
		}
		linesByOrder[item.OrderID] = append(linesByOrder[item.OrderID], line)
		ds.Lines = append(ds.Lines, line)
	}

	// Allocate each order's profit across its lines by subtotal share. An
	// order whose lines all have zero subtotal contributes no line profit.
	for _, lines := range linesByOrder {
		var sum float64
		for _, line := range lines {
			sum += line.Item.LineSubtotal
		}
		if sum == 0 {
			continue
		}
		for _, line := range lines {
			line.ProfitUSD = lines[0].Order.Order.Profit * line.Item.LineSubtotal / sum
		}
	}
}

func (ds *Dataset) warnf(code, format string, args ...any) {
	ds.Warnings = append(ds.Warnings, Warning{Code: code, Detail: fmt.Sprintf(format, args...)})
}
