package database

import (
	"fmt"
	"strings"

	"karigar/config"
	"karigar/database/repository"
	bookingRepo "karigar/database/repository/booking"
	"karigar/database/repository/memory"
	notificationRepo "karigar/database/repository/notification"
	reportRepo "karigar/database/repository/report"
	reviewRepo "karigar/database/repository/review"
	serviceRepo "karigar/database/repository/service"
	userRepo "karigar/database/repository/user"
)

// OpenStore builds the repositories for the configured STORE_DRIVER.
func OpenStore() (*repository.Store, error) {
	switch strings.ToLower(config.AppConfig.StoreDriver) {
	case "memory":
		return memory.NewStore(), nil
	case "", "mongo", "mongodb":
		if MongoClient == nil {
			if err := InitDB(); err != nil {
				return nil, err
			}
		}
		db := MongoClient.Database(config.AppConfig.DatabaseName)
		return &repository.Store{
			Bookings:      bookingRepo.NewMongoBookingRepo(db),
			Services:      serviceRepo.NewMongoServiceRepo(db),
			Reviews:       reviewRepo.NewMongoReviewRepo(db),
			Notifications: notificationRepo.NewMongoNotificationRepo(db),
			Users:         userRepo.NewMongoUserRepo(db),
			Reports:       reportRepo.NewMongoReportRepo(db),
		}, nil
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", config.AppConfig.StoreDriver)
	}
}
