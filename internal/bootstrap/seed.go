package bootstrap

import (
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/gsualumni/alumninet/internal/entity"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.User{},
		&entity.Alumni{},
		&entity.Job{},
		&entity.Accomplishment{},
		&entity.Event{},
		&entity.EventRSVP{},
		&entity.Notification{},
		&entity.AppSetting{},
	)
}

type seedAccount struct {
	name    string
	email   string
	role    string
	profile *entity.Alumni
}

// SeedUsers creates the three demo accounts when they are missing. The
// admin account deliberately has no alumni profile; the directory row is
// provisioned lazily on their first submission.
func SeedUsers(db *gorm.DB) error {
	accounts := []seedAccount{
		{
			name:  "Site Administrator",
			email: "admin@gsu-alumni.local",
			role:  entity.RoleAdmin,
		},
		{
			name:  "Maya Moderator",
			email: "moderator@gsu-alumni.local",
			role:  entity.RoleModerator,
			profile: &entity.Alumni{
				MatricNo:       "GSU/MOD/2017/0001",
				Department:     "Mass Communication",
				GraduationYear: 2017,
				Status:         entity.AlumniStatusActive,
			},
		},
		{
			name:  "Mark Member",
			email: "member@gsu-alumni.local",
			role:  entity.RoleMember,
			profile: &entity.Alumni{
				MatricNo:       "GSU/MEM/2019/0001",
				Department:     "Computer Science",
				GraduationYear: 2019,
				Status:         entity.AlumniStatusActive,
			},
		},
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("Password@123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	for _, account := range accounts {
		var count int64
		if err := db.Model(&entity.User{}).
			Where("email = ?", account.email).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		user := &entity.User{
			Name:         account.name,
			Email:        account.email,
			PasswordHash: string(hash),
			Role:         account.role,
			IsVerified:   true,
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(user).Error; err != nil {
				return err
			}
			if account.profile != nil {
				account.profile.UserID = user.ID
				return tx.Create(account.profile).Error
			}
			return nil
		})
		if err != nil {
			return err
		}

		log.Printf("seeded %s account %s", account.role, account.email)
	}

	return nil
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

// SeedEvents plants a few upcoming demo events, only when the table is
// completely empty.
func SeedEvents(db *gorm.DB) error {
	var count int64
	if err := db.Model(&entity.Event{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := time.Now()
	at := func(days int, hour, minute int) time.Time {
		day := now.AddDate(0, 0, days)
		return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location())
	}

	events := []entity.Event{
		{
			Title:    "Alumni Career Mixer",
			Location: strPtr("Innovation Hall"),
			City:     strPtr("Atlanta"),
			StartAt:  at(7, 11, 0),
			Capacity: intPtr(120),
			Status:   entity.EventStatusOpen,
		},
		{
			Title:    "Founder Stories Panel",
			Location: strPtr("Auditorium A"),
			City:     strPtr("Savannah"),
			StartAt:  at(16, 15, 0),
			Capacity: intPtr(80),
			Status:   entity.EventStatusOpen,
		},
		{
			Title:    "Tech Leadership Workshop",
			Location: strPtr("Business Center"),
			City:     strPtr("Atlanta"),
			StartAt:  at(25, 9, 30),
			Capacity: intPtr(60),
			Status:   entity.EventStatusOpen,
		},
	}

	for i := range events {
		if err := db.Create(&events[i]).Error; err != nil {
			return err
		}
	}

	log.Printf("seeded %d demo events", len(events))
	return nil
}
