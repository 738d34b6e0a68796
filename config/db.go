package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"classroom-backend/models"
)

var DB *gorm.DB

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "Local")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := envOrDefault("DB_USER", "root")
	pass := envOrDefault("DB_PASS", "")
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	dbName := envOrDefault("DB_NAME", "classroom_db")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, dbName,
	), nil
}

// ConnectDatabase opens the MySQL connection, migrates the schema and
// seeds the initial data.
func ConnectDatabase() error {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return err
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return err
	}
	DB = db

	if err := Migrate(DB); err != nil {
		return err
	}
	SeedDatabase(DB)
	return nil
}

// Migrate applies the schema in parent-to-child order.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Room{},
		&models.Booking{},
		&models.Review{},
		&models.Favorite{},
		&models.RoomIssue{},
	)
}

// SeedDatabase inserts the default users and room catalog into an empty
// database. Already-populated tables are left alone.
func SeedDatabase(db *gorm.DB) {
	seedUsers(db)
	seedRooms(db)
}

func seedUsers(db *gorm.DB) {
	var count int64
	db.Model(&models.User{}).Count(&count)
	if count > 0 {
		return
	}

	type seedUser struct {
		email    string
		password string
		first    string
		last     string
		role     models.UserRole
	}
	defaults := []seedUser{
		{"admin@university.edu", "admin123", "System", "Administrator", models.RoleAdmin},
		{"dispatcher@university.edu", "dispatcher123", "Dana", "Mitchell", models.RoleDispatcher},
		{"ivanov@university.edu", "teacher123", "Igor", "Ivanov", models.RoleTeacher},
		{"petrova@university.edu", "teacher123", "Elena", "Petrova", models.RoleTeacher},
	}

	for _, u := range defaults {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			log.Warn().Err(err).Str("email", u.email).Msg("seed user skipped, hash failed")
			continue
		}
		user := models.User{
			Email:        u.email,
			PasswordHash: string(hash),
			FirstName:    u.first,
			LastName:     u.last,
			Role:         u.role,
			IsActive:     true,
		}
		if err := db.Create(&user).Error; err != nil {
			log.Warn().Err(err).Str("email", u.email).Msg("seed user failed")
		}
	}
	log.Info().Msg("default users seeded")
}

func seedRooms(db *gorm.DB) {
	var count int64
	db.Model(&models.Room{}).Count(&count)
	if count > 0 {
		return
	}

	rooms := []models.Room{
		{Number: "1101", RoomType: models.RoomTypeLecture, Capacity: 120, HasProjector: true, HasWhiteboard: true, Description: "Main lecture hall"},
		{Number: "1102", RoomType: models.RoomTypeLecture, Capacity: 100, HasProjector: true, HasWhiteboard: true},
		{Number: "1201", RoomType: models.RoomTypeSeminar, Capacity: 30, HasWhiteboard: true},
		{Number: "1202", RoomType: models.RoomTypeSeminar, Capacity: 25, HasProjector: true, HasWhiteboard: true},
		{Number: "1301", RoomType: models.RoomTypeConference, Capacity: 20, HasProjector: true},
		{Number: "2101", RoomType: models.RoomTypeComputer, Capacity: 25, HasComputers: true, HasProjector: true, Description: "Computer lab, 25 workstations"},
		{Number: "2102", RoomType: models.RoomTypeComputer, Capacity: 20, HasComputers: true, HasProjector: true},
		{Number: "2201", RoomType: models.RoomTypeComputer, Capacity: 30, HasComputers: true, HasProjector: true, HasWhiteboard: true},
		{Number: "2202", RoomType: models.RoomTypeSeminar, Capacity: 28, HasWhiteboard: true},
		{Number: "3101", RoomType: models.RoomTypeLab, Capacity: 16, HasWhiteboard: true, Description: "Physics laboratory"},
		{Number: "3102", RoomType: models.RoomTypeLab, Capacity: 16, HasWhiteboard: true, Description: "Chemistry laboratory"},
		{Number: "3201", RoomType: models.RoomTypeLecture, Capacity: 80, HasProjector: true, HasWhiteboard: true},
		{Number: "3202", RoomType: models.RoomTypeSeminar, Capacity: 24, HasProjector: true},
		{Number: "4101", RoomType: models.RoomTypeLecture, Capacity: 60, HasProjector: true, HasWhiteboard: true},
		{Number: "4102", RoomType: models.RoomTypeSeminar, Capacity: 20, HasWhiteboard: true},
		{Number: "4201", RoomType: models.RoomTypeConference, Capacity: 15, HasProjector: true},
		{Number: "4202", RoomType: models.RoomTypeComputer, Capacity: 18, HasComputers: true},
	}
	for i := range rooms {
		rooms[i].IsActive = true
	}

	if err := db.Create(&rooms).Error; err != nil {
		log.Warn().Err(err).Msg("seed rooms failed")
		return
	}
	log.Info().Int("count", len(rooms)).Msg("room catalog seeded")
}
