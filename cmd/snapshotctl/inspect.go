package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"salespulse/internal/domain/entity"
	"salespulse/internal/infra/snapshot"
	"salespulse/internal/util"

	"github.com/pkg/errors"
)

type snapshotSummary struct {
	Orders          int     `json:"orders"`
	CompletedOrders int     `json:"completed_orders"`
	Items           int     `json:"items"`
	Products        int     `json:"products"`
	Customers       int     `json:"customers"`
	Regions         int     `json:"regions"`
	Shipments       int     `json:"shipments"`
	FirstOrderDate  string  `json:"first_order_date"`
	LastOrderDate   string  `json:"last_order_date"`
	RevenueUSD      float64 `json:"completed_revenue_usd"`
	ProfitUSD       float64 `json:"completed_profit_usd"`
}

// runInspect prints a JSON summary of the snapshot to stdout.
func runInspect(ctx context.Context, dir string, pretty bool) error {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	loader := snapshot.NewCSVLoader(dir, logger)

	snap, err := loader.LoadSnapshot(ctx)
	if err != nil {
		return errors.Wrap(err, "load snapshot")
	}

	summary := snapshotSummary{
		Orders:    len(snap.Orders),
		Items:     len(snap.Items),
		Products:  len(snap.Products),
		Customers: len(snap.Customers),
		Regions:   len(snap.Regions),
		Shipments: len(snap.Shipments),
	}

	first := snap.Orders[0].OrderDate
	last := snap.Orders[0].OrderDate
	for _, o := range snap.Orders {
		if o.OrderDate.Before(first) {
			first = o.OrderDate
		}
		if o.OrderDate.After(last) {
			last = o.OrderDate
		}
		if o.Status == entity.OrderStatusCompleted {
			summary.CompletedOrders++
			summary.RevenueUSD += o.RevenueUSD
			summary.ProfitUSD += o.Profit
		}
	}
	summary.FirstOrderDate = first.Format("2006-01-02")
	summary.LastOrderDate = last.Format("2006-01-02")
	summary.RevenueUSD = util.Round2(summary.RevenueUSD)
	summary.ProfitUSD = util.Round2(summary.ProfitUSD)

	var payload []byte
	if pretty {
		payload, err = json.MarshalIndent(summary, "", "  ")
	} else {
		payload, err = json.Marshal(summary)
	}
	if err != nil {
		return errors.WithStack(err)
	}

	fmt.Println(string(payload))

	return nil
}
