package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"venuehub/internal/config"
	"venuehub/internal/database"
	"venuehub/internal/domain"
	"venuehub/internal/domain/auth"
	"venuehub/internal/pkg/logger"
)

var cities = []string{"Mumbai", "Pune", "Bengaluru", "Jaipur"}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("config")
	}
	log := logger.New(cfg.AppEnv, cfg.LogLevel)
	if cfg.IsProdLike() {
		log.Fatal("refusing to seed a prod-like environment")
	}

	db, err := database.Connect(cfg.DatabaseURL, log)
	if err != nil {
		log.WithError(err).Fatal("DB connection failed")
	}
	log.Info("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.WithError(err).Fatal("AutoMigrate failed")
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	// ================== USERS ==================
	log.Info("Creating users...")
	admin := upsertUser(db, log, "admin@venuehub.local", "admin123", "Admin", domain.RoleAdmin)
	manager := upsertUser(db, log, "planner@venuehub.local", "planner123", "Event Planner", domain.RoleEventManager)

	guests := make([]domain.User, 0, 3)
	for i := 1; i <= 3; i++ {
		guests = append(guests, upsertUser(db, log, fmt.Sprintf("guest%d@venuehub.local", i), "guest123", fmt.Sprintf("Guest %d", i), domain.RoleUser))
	}
	owners := make([]domain.User, 0, 2)
	for i := 1; i <= 2; i++ {
		owners = append(owners, upsertUser(db, log, fmt.Sprintf("owner%d@venuehub.local", i), "owner123", fmt.Sprintf("Owner %d", i), domain.RoleOwner))
	}
	provider := upsertUser(db, log, "provider@venuehub.local", "provider123", "Sharma Caterers", domain.RoleProvider)

	// ================== HALLS ==================
	log.Info("Creating halls...")
	var halls []domain.Hall
	for i, owner := range owners {
		for j := 0; j < 2; j++ {
			h := domain.Hall{
				OwnerID:            owner.ID,
				Name:               fmt.Sprintf("%s Banquet %d", cities[(i*2+j)%len(cities)], j+1),
				Description:        "Air-conditioned banquet hall with stage and parking",
				Price:              float64(20000 + rng.Intn(30)*1000),
				Capacity:           100 + rng.Intn(400),
				City:               cities[(i*2+j)%len(cities)],
				Amenities:          []string{"parking", "stage", "ac"},
				Status:             domain.HallActive,
				Verified:           true,
				PlatformFeePercent: 5,
				RatingDistribution: map[string]int{"1": 0, "2": 0, "3": 0, "4": 0, "5": 0},
			}
			if err := db.Create(&h).Error; err != nil {
				log.WithError(err).Fatal("create hall")
			}
			halls = append(halls, h)
		}
	}

	// a blocked day and a festival price on the first hall
	today := domain.DateOnly(time.Now())
	festival := halls[0].Price * 1.5
	db.Clauses(clause.OnConflict{DoNothing: true}).Create(&[]domain.HallAvailability{
		{HallID: halls[0].ID, Date: today.AddDate(0, 0, 10), Blocked: true, Note: "maintenance"},
		{HallID: halls[0].ID, Date: today.AddDate(0, 0, 20), SpecialPrice: &festival, Note: "festival"},
	})

	// ================== SERVICES ==================
	log.Info("Creating vendor services...")
	for _, s := range []struct {
		name, category string
		price          float64
	}{
		{"Veg buffet (per 100 plates)", "catering", 45000},
		{"Floral stage decor", "decor", 25000},
		{"Candid photography", "photography", 30000},
	} {
		db.Create(&domain.VendorService{
			ProviderID: provider.ID,
			Name:       s.name,
			Category:   s.category,
			City:       cities[0],
			Price:      s.price,
			Status:     domain.ServiceActive,
			Approved:   true,
		})
	}

	// ================== BOOKINGS ==================
	log.Info("Creating bookings...")
	for i, g := range guests {
		h := halls[rng.Intn(len(halls))]
		start := today.AddDate(0, 0, 30+i*7)
		b := domain.Booking{
			UserID:          g.ID,
			HallID:          h.ID,
			OwnerID:         h.OwnerID,
			StartDate:       start,
			EndDate:         start,
			Guests:          h.Capacity / 2,
			TotalPrice:      h.Price,
			Status:          domain.BookingPendingAdvance,
			PaymentStatus:   domain.PaymentPending,
			RemainingAmount: h.Price,
		}
		db.Create(&b)
	}

	// one completed booking with a review so ratings are non-empty
	past := today.AddDate(0, 0, -14)
	done := domain.Booking{
		UserID:             guests[0].ID,
		HallID:             halls[0].ID,
		OwnerID:            halls[0].OwnerID,
		StartDate:          past,
		EndDate:            past,
		Guests:             80,
		TotalPrice:         halls[0].Price,
		Status:             domain.BookingCompleted,
		PaymentStatus:      domain.PaymentPaid,
		AdvancePaid:        true,
		AdvanceAmountPaid:  halls[0].Price / 2,
		FinalPaymentMethod: "online",
		FinalPaymentStatus: "paid",
	}
	db.Create(&done)
	db.Create(&domain.Review{
		HallID:    halls[0].ID,
		UserID:    guests[0].ID,
		BookingID: done.ID,
		Rating:    5,
		Comment:   "Great food and friendly staff",
		Status:    domain.ReviewApproved,
	})
	db.Model(&domain.Hall{}).Where("id = ?", halls[0].ID).Updates(&domain.Hall{
		AverageRating:      5,
		TotalReviews:       1,
		RatingDistribution: map[string]int{"1": 0, "2": 0, "3": 0, "4": 0, "5": 1},
	})

	// ================== PLANNING ==================
	log.Info("Creating plan events...")
	managerID := manager.ID
	db.Create(&domain.PlanEvent{
		UserID:    guests[1].ID,
		ManagerID: &managerID,
		Title:     "Sangeet night",
		EventType: "wedding",
		EventDate: today.AddDate(0, 2, 0),
		Guests:    200,
		Budget:    400000,
		City:      cities[1],
		Status:    domain.PlanEventAssigned,
	})

	log.WithField("admin_id", admin.ID).Info("Seed completed")
	log.Info("Admin: admin@venuehub.local / admin123")
	log.Info("Guests: guest1..3@venuehub.local / guest123")
	log.Info("Owners: owner1..2@venuehub.local / owner123")
	log.Info("Provider: provider@venuehub.local / provider123; Planner: planner@venuehub.local / planner123")
}

// upsertUser keeps reruns idempotent by email.
func upsertUser(db *gorm.DB, log logrus.FieldLogger, email, password, name string, role domain.UserRole) domain.User {
	hash, err := auth.HashPassword(password)
	if err != nil {
		log.WithError(err).Fatal("hash password")
	}
	u := domain.User{
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		Role:         role,
		Status:       domain.UserActive,
		Verified:     role == domain.RoleOwner || role == domain.RoleProvider,
	}
	err = db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"password_hash", "name", "role", "status", "verified", "updated_at"}),
	}).Create(&u).Error
	if err != nil {
		log.WithError(err).Fatal("upsert user")
	}
	if err := db.Where("email = ?", email).First(&u).Error; err != nil {
		log.WithError(err).Fatal("reload user")
	}
	return u
}
