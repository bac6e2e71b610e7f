package domain

import "time"

// Role identifies the access level of a user.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleTrainer Role = "TRAINER"
	RoleStudent Role = "STUDENT"
)

// User represents any account in the system. Trainer and student fields
// are populated only for the matching role.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
	Password string `json:"-"`

	// Trainer fields
	Expertise  string `json:"expertise,omitempty"`
	Experience int    `json:"experience,omitempty"`
	Phone      string `json:"phone,omitempty"`

	// Student fields
	Course                string   `json:"course,omitempty"`
	College               string   `json:"college,omitempty"`
	AssignedMaterialIDs   []string `json:"assignedMaterialIds,omitempty"`
	AssignedAssessmentIDs []string `json:"assignedAssessmentIds,omitempty"`
}

// MaterialType distinguishes document-like content from video references.
type MaterialType string

const (
	MaterialPDF   MaterialType = "PDF"
	MaterialPPT   MaterialType = "PPT"
	MaterialDOC   MaterialType = "DOC"
	MaterialVideo MaterialType = "VIDEO"
)

// Material is a unit of training content tied to a course. Content holds
// free text for document types and a URL for videos.
type Material struct {
	ID      string       `json:"id"`
	Title   string       `json:"title"`
	Course  string       `json:"course"`
	Type    MaterialType `json:"type"`
	Content string       `json:"content"`
}

// Schedule assigns a trainer to teach a course at a college over a date range.
type Schedule struct {
	ID          string    `json:"id"`
	TrainerID   string    `json:"trainerId"`
	College     string    `json:"college"`
	Course      string    `json:"course"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	MaterialIDs []string  `json:"materialIds"`
}

// ApplicationStatus tracks the review state of a trainer application.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "PENDING"
	ApplicationApproved ApplicationStatus = "APPROVED"
	ApplicationRejected ApplicationStatus = "REJECTED"
)

// TrainerApplication is a request to join the platform as a trainer.
type TrainerApplication struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Email      string            `json:"email"`
	Phone      string            `json:"phone"`
	Expertise  string            `json:"expertise"`
	Experience int               `json:"experience"`
	IDProof    string            `json:"idProof"`
	Status     ApplicationStatus `json:"status"`
}

// AssessmentType distinguishes multiple-choice tests from open-ended assignments.
type AssessmentType string

const (
	AssessmentTest       AssessmentType = "TEST"
	AssessmentAssignment AssessmentType = "ASSIGNMENT"
)

// AssessmentQuestion is a single question. Options and CorrectAnswer are
// present only for TEST assessments.
type AssessmentQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer string   `json:"correctAnswer,omitempty"`
}

// Assessment is a generated test or assignment tied to a material and course.
type Assessment struct {
	ID         string               `json:"id"`
	MaterialID string               `json:"materialId"`
	Course     string               `json:"course"`
	Title      string               `json:"title"`
	Type       AssessmentType       `json:"type"`
	Questions  []AssessmentQuestion `json:"questions"`
}

// GeneratedAssignment is the raw output of assignment generation before it
// is shaped into an Assessment by the caller.
type GeneratedAssignment struct {
	Title     string               `json:"title"`
	Questions []AssessmentQuestion `json:"questions"`
}

// StudentAttempt is an append-only record of a scored assessment attempt.
type StudentAttempt struct {
	StudentName string    `json:"studentName"`
	Course      string    `json:"course"`
	Score       int       `json:"score"`
	Timestamp   time.Time `json:"timestamp"`
}

// LeaderboardEntry is a derived ranking row; it is never stored.
type LeaderboardEntry struct {
	StudentName string `json:"studentName"`
	TotalScore  int    `json:"totalScore"`
}

// BillStatus tracks payment state of a trainer bill.
type BillStatus string

const (
	BillPending BillStatus = "PENDING"
	BillPaid    BillStatus = "PAID"
)

// ExpenseType categorizes a bill line item.
type ExpenseType string

const (
	ExpenseTravel        ExpenseType = "Travel"
	ExpenseAccommodation ExpenseType = "Accommodation"
	ExpenseFood          ExpenseType = "Food"
	ExpenseMaterials     ExpenseType = "Materials"
	ExpenseOther         ExpenseType = "Other"
)

// Expense is a single line item on a trainer bill.
type Expense struct {
	Type        ExpenseType `json:"type"`
	Description string      `json:"description"`
	Amount      int         `json:"amount"`
}

// TrainerBill is an expense claim submitted by a trainer. Amount is derived
// from the expense line items at creation time.
type TrainerBill struct {
	ID            string     `json:"id"`
	TrainerID     string     `json:"trainerId"`
	Amount        int        `json:"amount"`
	Expenses      []Expense  `json:"expenses"`
	Date          time.Time  `json:"date"`
	Status        BillStatus `json:"status"`
	InvoiceNumber string     `json:"invoiceNumber"`
}

// College is a client institution. Names are unique case-insensitively.
type College struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Address       string `json:"address"`
	ContactPerson string `json:"contactPerson"`
	ContactEmail  string `json:"contactEmail"`
	ContactPhone  string `json:"contactPhone"`
}
