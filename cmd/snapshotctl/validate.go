package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"

	"salespulse/internal/domain/entity"
	"salespulse/internal/infra/snapshot"

	"github.com/pkg/errors"
)

const (
	subtotalAbsTolerance = 0.01
	subtotalRelTolerance = 0.001
)

// runValidate loads the snapshot and reports referential and arithmetic
// problems without failing on the first one.
func runValidate(ctx context.Context, dir string) error {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	loader := snapshot.NewCSVLoader(dir, logger)

	snap, err := loader.LoadSnapshot(ctx)
	if err != nil {
		return errors.Wrap(err, "load snapshot")
	}

	orderIDs := make(map[string]struct{}, len(snap.Orders))
	customerIDs := make(map[string]struct{}, len(snap.Customers))
	regionIDs := make(map[string]struct{}, len(snap.Regions))
	productIDs := make(map[string]struct{}, len(snap.Products))
	for _, o := range snap.Orders {
		orderIDs[o.ID] = struct{}{}
	}
	for _, c := range snap.Customers {
		customerIDs[c.ID] = struct{}{}
	}
	for _, r := range snap.Regions {
		regionIDs[r.ID] = struct{}{}
	}
	for _, p := range snap.Products {
		productIDs[p.ID] = struct{}{}
	}

	var problems []string

	for _, o := range snap.Orders {
		if _, ok := customerIDs[o.CustomerID]; !ok {
			problems = append(problems, fmt.Sprintf("order %s references unknown customer %s", o.ID, o.CustomerID))
		}
		if _, ok := regionIDs[o.RegionID]; !ok {
			problems = append(problems, fmt.Sprintf("order %s references unknown region %s", o.ID, o.RegionID))
		}
	}

	for _, item := range snap.Items {
		if _, ok := orderIDs[item.OrderID]; !ok {
			problems = append(problems, fmt.Sprintf("order item references unknown order %s", item.OrderID))
		}
		if _, ok := productIDs[item.ProductID]; !ok {
			problems = append(problems, fmt.Sprintf("order item on %s references unknown product %s", item.OrderID, item.ProductID))
		}
		if !subtotalConsistent(item) {
			problems = append(problems, fmt.Sprintf("order item on %s: subtotal %.2f does not match %.2f",
				item.OrderID, item.LineSubtotal, item.ExpectedSubtotal()))
		}
	}

	seenShipments := make(map[string]struct{}, len(snap.Shipments))
	for _, s := range snap.Shipments {
		if _, ok := orderIDs[s.OrderID]; !ok {
			problems = append(problems, fmt.Sprintf("shipment references unknown order %s", s.OrderID))
		}
		if _, dup := seenShipments[s.OrderID]; dup {
			problems = append(problems, fmt.Sprintf("duplicate shipment for order %s", s.OrderID))
		}
		seenShipments[s.OrderID] = struct{}{}
	}

	fmt.Printf("orders=%d items=%d products=%d customers=%d regions=%d shipments=%d\n",
		len(snap.Orders), len(snap.Items), len(snap.Products),
		len(snap.Customers), len(snap.Regions), len(snap.Shipments))

	if len(problems) == 0 {
		fmt.Println("snapshot OK")

		return nil
	}

	for _, problem := range problems {
		fmt.Println(problem)
	}

	return errors.Errorf("snapshot has %d problem(s)", len(problems))
}

func subtotalConsistent(item entity.OrderItem) bool {
	expected := item.ExpectedSubtotal()
	diff := math.Abs(item.LineSubtotal - expected)

	return diff <= subtotalAbsTolerance || diff <= math.Abs(expected)*subtotalRelTolerance
}
