package cli

import (
	"time"

	"training-hub-service/internal/domain"
	"training-hub-service/internal/infra/memory"
)

// demoSnapshot provides the startup dataset; swap this for a real import
// pipeline if the service ever grows durable storage.
func demoSnapshot() memory.Snapshot {
	date := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	return memory.Snapshot{
		Users: []domain.User{
			{
				ID:       "admin-1",
				Name:     "Anita Desai",
				Email:    "admin@traininghub.io",
				Role:     domain.RoleAdmin,
				Password: "admin123",
			},
			{
				ID:         "trainer-1",
				Name:       "Rahul Mehta",
				Email:      "rahul@traininghub.io",
				Role:       domain.RoleTrainer,
				Password:   "trainer123",
				Expertise:  "Go, Distributed Systems",
				Experience: 8,
				Phone:      "98450-11223",
			},
			{
				ID:         "trainer-2",
				Name:       "Sara Iqbal",
				Email:      "sara@traininghub.io",
				Role:       domain.RoleTrainer,
				Password:   "trainer123",
				Expertise:  "React, TypeScript",
				Experience: 5,
				Phone:      "98450-44556",
			},
			{
				ID:                    "student-1",
				Name:                  "Vikram Rao",
				Email:                 "vikram@student.io",
				Role:                  domain.RoleStudent,
				Password:              "student123",
				Course:                "Go Fundamentals",
				College:               "Springfield Institute of Technology",
				AssignedMaterialIDs:   []string{"mat-1"},
				AssignedAssessmentIDs: []string{},
			},
			{
				ID:                    "student-2",
				Name:                  "Meera Nair",
				Email:                 "meera@student.io",
				Role:                  domain.RoleStudent,
				Password:              "student123",
				Course:                "Go Fundamentals",
				College:               "Riverdale College of Engineering",
				AssignedMaterialIDs:   []string{},
				AssignedAssessmentIDs: []string{},
			},
			{
				ID:                    "student-3",
				Name:                  "Arjun Pillai",
				Email:                 "arjun@student.io",
				Role:                  domain.RoleStudent,
				Password:              "student123",
				Course:                "React Basics",
				College:               "Springfield Institute of Technology",
				AssignedMaterialIDs:   []string{},
				AssignedAssessmentIDs: []string{},
			},
		},
		Materials: []domain.Material{
			{
				ID:      "mat-1",
				Title:   "Go Concurrency Patterns",
				Course:  "Go Fundamentals",
				Type:    domain.MaterialDOC,
				Content: "Goroutines are lightweight threads managed by the Go runtime. Channels provide typed conduits for communication between goroutines. The select statement lets a goroutine wait on multiple channel operations.",
			},
			{
				ID:      "mat-2",
				Title:   "Intro to React Hooks",
				Course:  "React Basics",
				Type:    domain.MaterialPDF,
				Content: "Hooks let function components use state and lifecycle features. useState returns a stateful value and a setter. useEffect runs side effects after render and cleans up on unmount.",
			},
			{
				ID:      "mat-3",
				Title:   "Channels Deep Dive",
				Course:  "Go Fundamentals",
				Type:    domain.MaterialVideo,
				Content: "https://videos.traininghub.io/channels-deep-dive",
			},
		},
		Schedules: []domain.Schedule{
			{
				ID:          "sch-1",
				TrainerID:   "trainer-1",
				College:     "Springfield Institute of Technology",
				Course:      "Go Fundamentals",
				StartDate:   date(2024, time.July, 1),
				EndDate:     date(2024, time.July, 26),
				MaterialIDs: []string{"mat-1", "mat-3"},
			},
		},
		Applications: []domain.TrainerApplication{
			{
				ID:         "app-1",
				Name:       "Dinesh Kumar",
				Email:      "dinesh@example.com",
				Phone:      "98450-77889",
				Expertise:  "Python, Data Engineering",
				Experience: 6,
				IDProof:    "dinesh-id.pdf",
				Status:     domain.ApplicationPending,
			},
		},
		Attempts: []domain.StudentAttempt{
			{StudentName: "Vikram Rao", Course: "Go Fundamentals", Score: 80, Timestamp: date(2024, time.July, 8)},
			{StudentName: "Meera Nair", Course: "Go Fundamentals", Score: 90, Timestamp: date(2024, time.July, 8)},
			{StudentName: "Vikram Rao", Course: "Go Fundamentals", Score: 20, Timestamp: date(2024, time.July, 15)},
		},
		Bills: []domain.TrainerBill{
			{
				ID:        "bill-1",
				TrainerID: "trainer-1",
				Amount:    4500,
				Expenses: []domain.Expense{
					{Type: domain.ExpenseTravel, Description: "Train to Springfield", Amount: 3000},
					{Type: domain.ExpenseFood, Description: "Meals during delivery week", Amount: 1500},
				},
				Date:          date(2024, time.July, 26),
				Status:        domain.BillPending,
				InvoiceNumber: "INV-2024-001",
			},
		},
		Colleges: []domain.College{
			{
				ID:            "col-1",
				Name:          "Springfield Institute of Technology",
				Address:       "12 College Road, Springfield",
				ContactPerson: "Prof. Lata Krishnan",
				ContactEmail:  "lata@sit.edu",
				ContactPhone:  "080-2244-5566",
			},
			{
				ID:            "col-2",
				Name:          "Riverdale College of Engineering",
				Address:       "45 Lake View, Riverdale",
				ContactPerson: "Dr. Thomas George",
				ContactEmail:  "thomas@rce.edu",
				ContactPhone:  "080-9988-7766",
			},
		},
	}
}
