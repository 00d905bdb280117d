package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/aurawear/aurawear-backend/internal/data/catalog"
	"github.com/aurawear/aurawear-backend/internal/domain"
	"github.com/aurawear/aurawear-backend/internal/platform/envutil"
	"github.com/aurawear/aurawear-backend/internal/platform/logger"
)

type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
	serviceLog := log.With("service", "PostgresService")

	host := envutil.String("POSTGRES_HOST", "localhost")
	port := envutil.String("POSTGRES_PORT", "5432")
	user := envutil.String("POSTGRES_USER", "postgres")
	password := envutil.String("POSTGRES_PASSWORD", "")
	name := envutil.String("POSTGRES_NAME", "aurawear")

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, name)

	serviceLog.Info("Connecting to Postgres...", "host", host, "db", name)
	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		serviceLog.Error("Failed to connect to Postgres", "error", err)
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	return &PostgresService{db: gormDB, log: serviceLog}, nil
}

func (s *PostgresService) DB() *gorm.DB {
	return s.db
}

// AutoMigrateAll creates the schema and then applies the ownership-tree
// foreign keys. Cascades exist at the database level as a backstop; the
// repositories still perform cascade deletes explicitly so rollback behavior
// stays testable on any storage engine.
func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	if err := s.db.AutoMigrate(
		&domain.Sex{},
		&domain.StyleOption{},
		&domain.SeasonPalette{},
		&domain.Category{},
		&domain.ImageAction{},
		&domain.Color{},
		&domain.User{},
		&domain.Session{},
		&domain.Round{},
		&domain.RoundRecommendedResult{},
		&domain.CartItem{},
	); err != nil {
		s.log.Error("Auto migration failed for postgres tables", "error", err)
		return err
	}

	s.log.Info("Configuring foreign key relationships for postgres tables...")
	constraints := []struct {
		name string
		stmt string
	}{
		{"fk_session_user_id", `ALTER TABLE "session" ADD CONSTRAINT "fk_session_user_id" FOREIGN KEY ("user_id") REFERENCES "users"("id") ON DELETE CASCADE`},
		{"fk_round_session_id", `ALTER TABLE "round" ADD CONSTRAINT "fk_round_session_id" FOREIGN KEY ("session_id") REFERENCES "session"("id") ON DELETE CASCADE`},
		{"fk_result_round_id", `ALTER TABLE "round_recommended_result" ADD CONSTRAINT "fk_result_round_id" FOREIGN KEY ("round_id") REFERENCES "round"("id") ON DELETE CASCADE`},
		{"fk_cart_user_id", `ALTER TABLE "cart" ADD CONSTRAINT "fk_cart_user_id" FOREIGN KEY ("user_id") REFERENCES "users"("id") ON DELETE CASCADE`},
		{"fk_session_gender_id", `ALTER TABLE "session" ADD CONSTRAINT "fk_session_gender_id" FOREIGN KEY ("gender_id") REFERENCES "sex"("id")`},
		{"fk_session_style_id", `ALTER TABLE "session" ADD CONSTRAINT "fk_session_style_id" FOREIGN KEY ("style_id") REFERENCES "style_option"("id")`},
		{"fk_session_detected_season", `ALTER TABLE "session" ADD CONSTRAINT "fk_session_detected_season" FOREIGN KEY ("detected_season_palette_id") REFERENCES "season_palette"("id")`},
		{"fk_result_action_type_id", `ALTER TABLE "round_recommended_result" ADD CONSTRAINT "fk_result_action_type_id" FOREIGN KEY ("action_type_id") REFERENCES "image_action"("id")`},
		{"fk_color_season_palette_id", `ALTER TABLE "color" ADD CONSTRAINT "fk_color_season_palette_id" FOREIGN KEY ("season_palette_id") REFERENCES "season_palette"("id")`},
	}
	for _, c := range constraints {
		var exists bool
		if err := s.db.Raw(
			`SELECT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = ?)`, c.name,
		).Scan(&exists).Error; err != nil {
			return fmt.Errorf("check constraint %s: %w", c.name, err)
		}
		if exists {
			continue
		}
		if err := s.db.Exec(c.stmt).Error; err != nil {
			return fmt.Errorf("add constraint %s: %w", c.name, err)
		}
	}
	return nil
}

// SeedLookups populates the static reference tables. It is idempotent:
// existing rows are left untouched.
func (s *PostgresService) SeedLookups() error {
	return SeedLookups(s.db, s.log)
}

// SeedLookups is separate from PostgresService so the test database can
// reuse it against other drivers.
func SeedLookups(gormDB *gorm.DB, log *logger.Logger) error {
	seedLog := log.With("service", "SeedLookups")

	sexes := []domain.Sex{{ID: 1, Name: "male"}, {ID: 2, Name: "female"}, {ID: 3, Name: "unisex"}}
	styles := []domain.StyleOption{
		{ID: 1, Name: "casual"}, {ID: 2, Name: "formal"}, {ID: 3, Name: "street"},
		{ID: 4, Name: "minimalist"}, {ID: 5, Name: "athleisure"}, {ID: 6, Name: "vintage"},
	}
	categories := []domain.Category{
		{ID: 1, Name: "top"}, {ID: 2, Name: "bottom"}, {ID: 3, Name: "dress"},
		{ID: 4, Name: "outerwear"}, {ID: 5, Name: "shoes"}, {ID: 6, Name: "accessory"},
	}
	actions := []domain.ImageAction{
		{ID: domain.ImageActionLike, Name: "like"},
		{ID: domain.ImageActionDislike, Name: "dislike"},
	}

	var palettes []domain.SeasonPalette
	for i, name := range catalog.SeasonOrder {
		palettes = append(palettes, domain.SeasonPalette{ID: i + 1, Name: name})
	}

	entries, err := catalog.Load()
	if err != nil {
		return fmt.Errorf("load color catalog: %w", err)
	}
	var colors []domain.Color
	for i, e := range entries {
		colors = append(colors, domain.Color{
			ID:              i + 1,
			SeasonPaletteID: catalog.SeasonPaletteID(e.Season),
			ColorCode:       e.ID,
			Name:            e.Name,
			ColorHex:        e.Hex,
		})
	}

	return gormDB.Transaction(func(tx *gorm.DB) error {
		// Per-row insert-if-missing keeps seeding portable across drivers.
		for _, row := range sexes {
			if err := firstOrCreateByID(tx, &domain.Sex{}, row.ID, &row); err != nil {
				return err
			}
		}
		for _, row := range styles {
			if err := firstOrCreateByID(tx, &domain.StyleOption{}, row.ID, &row); err != nil {
				return err
			}
		}
		for _, row := range palettes {
			if err := firstOrCreateByID(tx, &domain.SeasonPalette{}, row.ID, &row); err != nil {
				return err
			}
		}
		for _, row := range categories {
			if err := firstOrCreateByID(tx, &domain.Category{}, row.ID, &row); err != nil {
				return err
			}
		}
		for _, row := range actions {
			if err := firstOrCreateByID(tx, &domain.ImageAction{}, row.ID, &row); err != nil {
				return err
			}
		}
		for _, row := range colors {
			if err := firstOrCreateByID(tx, &domain.Color{}, row.ID, &row); err != nil {
				return err
			}
		}
		seedLog.Info("Lookup tables seeded", "palettes", len(palettes), "colors", len(colors))
		return nil
	})
}

func firstOrCreateByID(tx *gorm.DB, model interface{}, id int, row interface{}) error {
	var count int64
	if err := tx.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return tx.Create(row).Error
}
