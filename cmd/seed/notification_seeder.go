package main

import (
	"log"

	"studytrack-be/internal/model"

	"gorm.io/gorm"
)

// SeedNotificationTypes populates the database with default notification types.
func SeedNotificationTypes(db *gorm.DB) {
	types := []model.NotificationType{
		{
			Code:        "TASK_CREATED",
			DisplayName: "Task Created",
			Template:    "New task added: \"{title}\"",
			TargetType:  "SELF",
			IsActive:    true,
		},
		{
			Code:        "TASK_COMPLETED",
			DisplayName: "Task Completed",
			Template:    "You completed: \"{title}\"",
			TargetType:  "SELF",
			IsActive:    true,
		},
		{
			Code:        "SUBJECT_CREATED",
			DisplayName: "Subject Created",
			Template:    "New subject added: \"{title}\"",
			TargetType:  "SELF",
			IsActive:    true,
		},
	}

	for _, t := range types {
		err := db.Where("code = ?", t.Code).FirstOrCreate(&t).Error
		if err != nil {
			log.Printf("Error seeding notification type %s: %v", t.Code, err)
		}
	}
	log.Println("Notification types seeded successfully.")
}
