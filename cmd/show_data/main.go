package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Sguobi-git/Orders-App/internal/checklist"
	"github.com/Sguobi-git/Orders-App/internal/config"
	"github.com/Sguobi-git/Orders-App/internal/dashboard"
	"github.com/Sguobi-git/Orders-App/internal/demo"
	"github.com/Sguobi-git/Orders-App/internal/inventory"
	"github.com/Sguobi-git/Orders-App/internal/orders"
	"github.com/Sguobi-git/Orders-App/internal/reconcile"
	"github.com/Sguobi-git/Orders-App/internal/sheets"
)

const rule = "──────────────────────────────────────────────────────────"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("❌ Failed to load config: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	client, err := sheets.Open(ctx, cfg.Sheets)
	if err != nil {
		fmt.Printf("❌ Failed to open spreadsheets: %v\n", err)
		os.Exit(1)
	}
	if mem, ok := client.(*sheets.MemoryClient); ok {
		cfg.Sheets.OrdersSheetID = demo.OrdersSheetID
		cfg.Sheets.ChecklistSheetID = demo.ChecklistSheetID
		demo.Seed(mem, demo.OrdersSheetID, demo.ChecklistSheetID)
	}

	book := sheets.NewBook(client, cfg.Sheets.OrdersSheetID)
	ordersSvc := orders.NewService(book, reconcile.NewSheetStore(book))
	inventorySvc := inventory.NewService(book)

	fmt.Println("╔═══════════════════════════════════════════════════════════╗")
	fmt.Println("║          📊 Trade Show Orders Report                     ║")
	fmt.Println("╚═══════════════════════════════════════════════════════════╝")
	fmt.Println()

	sum, err := dashboard.NewService(ordersSvc, inventorySvc).Summary(ctx, cfg.DefaultShow())
	if err != nil {
		fmt.Printf("❌ Failed to read orders: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("🎪 SHOW: %s\n", sum.Show)
	fmt.Println(rule)
	fmt.Printf("  Orders:        %3d\n", sum.Metrics.Total)
	fmt.Printf("  Delivered:     %3d\n", sum.Metrics.Delivered)
	fmt.Printf("  Pending:       %3d\n", sum.Metrics.Pending)
	fmt.Printf("  Cancelled:     %3d\n", sum.Metrics.Cancelled)
	fmt.Printf("  Delivery rate: %3d%%\n", sum.Metrics.DeliveryRate)
	fmt.Println()

	if len(sum.Statuses) > 0 {
		fmt.Println("📈 BY STATUS")
		fmt.Println(rule)
		for _, s := range sum.Statuses {
			fmt.Printf("  %-26s %3d  %5.1f%%\n", s.Status, s.Count, s.Percent)
		}
		fmt.Println()
	}

	tbl, err := ordersSvc.Table(ctx)
	if err == nil {
		stats := orders.ComputeStats(tbl)
		if len(stats.TopItems) > 0 {
			fmt.Println("📦 MOST ORDERED ITEMS")
			fmt.Println(rule)
			for _, c := range stats.TopItems {
				fmt.Printf("  %-32s %3d\n", c.Name, c.Count)
			}
			fmt.Println()
		}
	}

	fmt.Println("📉 LOW STOCK")
	fmt.Println(rule)
	if len(sum.LowStock) == 0 {
		fmt.Println("  (none)")
	}
	for _, it := range sum.LowStock {
		fmt.Printf("  %-32s %3d left\n", it.Name, *it.AvailableQuantity)
	}
	for _, w := range sum.Warnings {
		fmt.Printf("  ⚠️  %s\n", w)
	}
	fmt.Println()

	if cfg.Sheets.ChecklistSheetID == "" {
		return
	}
	items, err := checklist.NewService(sheets.NewBook(client, cfg.Sheets.ChecklistSheetID)).Items(ctx, checklist.AllSections)
	if err != nil {
		fmt.Printf("❌ Failed to read checklists: %v\n", err)
		os.Exit(1)
	}
	p := checklist.ComputeProgress(items)
	fmt.Printf("✅ CHECKLISTS (%d of %d items, %d%%)\n", p.Checked, p.Total, p.Percent)
	fmt.Println(rule)
	for _, b := range checklist.GroupByBooth(items) {
		bar := strings.Repeat("█", b.Progress.Percent/10) + strings.Repeat("░", 10-b.Progress.Percent/10)
		fmt.Printf("  Booth %-6s %s %3d%%  %s\n", b.Booth, bar, b.Progress.Percent, b.Exhibitor)
	}
}
