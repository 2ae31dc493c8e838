package persistence

import (
	"fmt"

	"github.com/hubverse/hub-services/internal/infrastructure/persistence/models"
	"github.com/hubverse/hub-services/internal/pkg/config"

	"gorm.io/gorm"
)

// ModelsFor returns the GORM models owned by service.
func ModelsFor(service string) ([]interface{}, error) {
	switch service {
	case config.ServiceCommunity:
		return []interface{}{
			&models.UserModel{},
			&models.ProfileModel{},
			&models.PostModel{},
			&models.ChatModel{},
			&models.ChatMemberModel{},
			&models.MessageModel{},
		}, nil
	case config.ServiceMarketplace:
		return []interface{}{&models.ListingModel{}, &models.OrderModel{}}, nil
	case config.ServiceAcademy:
		return []interface{}{&models.CourseModel{}, &models.LessonModel{}, &models.EnrollmentModel{}}, nil
	case config.ServiceBusiness:
		return []interface{}{&models.BusinessModel{}, &models.ActivityModel{}}, nil
	default:
		return nil, fmt.Errorf("service %q owns no tables", service)
	}
}

// Migrate runs AutoMigrate for the models of service.
func Migrate(db *gorm.DB, service string) error {
	ms, err := ModelsFor(service)
	if err != nil {
		return err
	}
	if err := db.AutoMigrate(ms...); err != nil {
		return fmt.Errorf("failed to migrate %s schema: %w", service, err)
	}
	return nil
}
