package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Sguobi-git/Orders-App/internal/accounts"
	"github.com/Sguobi-git/Orders-App/internal/config"
	"github.com/Sguobi-git/Orders-App/internal/database"
	"github.com/Sguobi-git/Orders-App/internal/demo"
	"github.com/Sguobi-git/Orders-App/internal/feedback"
	"github.com/Sguobi-git/Orders-App/internal/models"
	"github.com/Sguobi-git/Orders-App/internal/session"
	"github.com/Sguobi-git/Orders-App/internal/sheets"
)

var demoUsers = []struct {
	local string
	admin bool
}{
	{"admin", true},
	{"jane.doe", false},
	{"kevin", false},
}

func main() {
	withOrders := flag.Bool("orders", false, "append the demo orders to the Orders worksheet")
	flag.Parse()

	fmt.Println("🌱 Orders Demo Data Seeder")
	fmt.Println(strings.Repeat("=", 60))

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	// 1. Accounts
	fmt.Println("👤 Creating demo accounts...")
	store, err := accounts.OpenFileStore(cfg.Accounts.UsersFile)
	if err != nil {
		log.Fatalf("❌ Failed to open user store: %v", err)
	}
	svc := accounts.NewService(store, session.NewMemoryStore(), cfg.CorporateDomain)
	for _, u := range demoUsers {
		email := u.local + "@" + cfg.CorporateDomain
		a, password, err := svc.CreateUser(email, u.admin)
		if errors.Is(err, accounts.ErrExists) {
			fmt.Printf("   ⏭️  %s already exists\n", email)
			continue
		}
		if err != nil {
			log.Fatalf("❌ Failed to create %s: %v", email, err)
		}
		fmt.Printf("   ✅ %-32s %-3s password: %s\n", a.Email, a.Initials, password)
	}
	fmt.Println()

	// 2. Feedback
	fmt.Println("📝 Adding demo feedback...")
	var fbStore feedback.Store = feedback.NewFileStore(cfg.Feedback.File)
	if cfg.Database.Enabled() {
		db, err := database.Connect(cfg.Database)
		if err != nil {
			log.Fatalf("❌ Failed to connect to database: %v", err)
		}
		defer db.Close()
		dbStore, err := feedback.NewDBStore(db)
		if err != nil {
			log.Fatalf("❌ Failed to prepare feedback table: %v", err)
		}
		fbStore = dbStore
	}
	fb := feedback.NewService(fbStore)
	msg, err := fb.Submit(ctx, "Jane Doe", "jane.doe@"+cfg.CorporateDomain, "Could the checklist remember my last section?")
	if err != nil {
		log.Fatalf("❌ Failed to add feedback: %v", err)
	}
	if _, err := fb.Reply(ctx, msg.ID, "Noted, thanks!", "AD"); err != nil {
		log.Fatalf("❌ Failed to reply to feedback: %v", err)
	}
	fmt.Println("   ✅ 1 message with reply")
	fmt.Println()

	if !*withOrders {
		fmt.Println("✅ Done. Run with -orders to also append demo orders.")
		return
	}

	// 3. Orders
	if cfg.Sheets.Backend != "google" {
		fmt.Println("ℹ️  The memory backend seeds itself on startup, skipping orders.")
		return
	}
	client, err := sheets.Open(ctx, cfg.Sheets)
	if err != nil {
		log.Fatalf("❌ Failed to open spreadsheets: %v", err)
	}
	book := sheets.NewBook(client, cfg.Sheets.OrdersSheetID)
	fmt.Printf("📦 Appending %d demo orders...\n", len(demo.Orders))
	for _, row := range demo.Orders {
		record := make(map[string]string, len(row))
		for i, col := range models.OrderColumns {
			record[col] = row[i]
		}
		if err := book.Append(ctx, models.OrdersWorksheet, record); err != nil {
			log.Fatalf("❌ Failed to append order for booth %s: %v", row[0], err)
		}
	}
	fmt.Println("✅ Done.")
}
