package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"training-hub-service/internal/domain"
	"github.com/google/uuid"
)

// defaultTrainerPassword is assigned to trainers created from approved applications.
const defaultTrainerPassword = "password"

// applicationDelay simulates the network round-trip of an application submission.
const applicationDelay = 500 * time.Millisecond

// Store is the in-memory authority for all domain entities. Mutations are
// serialized behind a RWMutex; derived views (Trainers, Students, Leaderboard)
// are recomputed on every read rather than cached.
type Store struct {
	mu    sync.RWMutex
	clock func() time.Time
	newID func(prefix string) string
	delay time.Duration

	materials    []domain.Material
	schedules    []domain.Schedule
	applications []domain.TrainerApplication
	users        []domain.User
	attempts     []domain.StudentAttempt
	assessments  []domain.Assessment
	bills        []domain.TrainerBill
	colleges     []domain.College

	subscribers map[chan []domain.LeaderboardEntry]struct{}
}

func NewStore() *Store {
	return NewStoreWithClock(time.Now)
}

// NewStoreWithClock allows deterministic timestamps in tests.
func NewStoreWithClock(now func() time.Time) *Store {
	return &Store{
		clock:       now,
		newID:       mintID,
		delay:       applicationDelay,
		subscribers: make(map[chan []domain.LeaderboardEntry]struct{}),
	}
}

func mintID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

// Snapshot is a full set of entity collections used to seed the store at
// startup. Seed data carries its own ids; everything created afterwards gets
// minted ones.
type Snapshot struct {
	Materials    []domain.Material
	Schedules    []domain.Schedule
	Applications []domain.TrainerApplication
	Users        []domain.User
	Attempts     []domain.StudentAttempt
	Assessments  []domain.Assessment
	Bills        []domain.TrainerBill
	Colleges     []domain.College
}

// Load replaces the store contents with the snapshot.
func (s *Store) Load(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.materials = append([]domain.Material(nil), snap.Materials...)
	s.schedules = append([]domain.Schedule(nil), snap.Schedules...)
	s.applications = append([]domain.TrainerApplication(nil), snap.Applications...)
	s.users = append([]domain.User(nil), snap.Users...)
	s.attempts = append([]domain.StudentAttempt(nil), snap.Attempts...)
	s.assessments = append([]domain.Assessment(nil), snap.Assessments...)
	s.bills = append([]domain.TrainerBill(nil), snap.Bills...)
	s.colleges = append([]domain.College(nil), snap.Colleges...)
}

// AddMaterial mints an id and appends the material.
func (s *Store) AddMaterial(m domain.Material) domain.Material {
	s.mu.Lock()
	defer s.mu.Unlock()

	m.ID = s.newID("mat")
	s.materials = append(s.materials, m)
	return m
}

// AddSchedule appends the schedule and registers its college if the name has
// not been seen before (case-insensitive, trimmed).
func (s *Store) AddSchedule(sch domain.Schedule) domain.Schedule {
	s.mu.Lock()
	defer s.mu.Unlock()

	sch.ID = s.newID("sch")
	s.schedules = append(s.schedules, sch)
	if sch.College != "" {
		s.ensureCollegeLocked(sch.College)
	}
	return sch
}

// ApproveApplication converts a pending application into a trainer user and
// removes it from the pending list. Unknown ids are a silent no-op.
func (s *Store) ApproveApplication(applicationID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, app := range s.applications {
		if app.ID != applicationID {
			continue
		}
		trainer := domain.User{
			ID:         s.newID("trainer"),
			Name:       app.Name,
			Email:      app.Email,
			Password:   defaultTrainerPassword,
			Role:       domain.RoleTrainer,
			Expertise:  app.Expertise,
			Experience: app.Experience,
			Phone:      app.Phone,
		}
		s.users = append(s.users, trainer)
		s.applications = append(s.applications[:i], s.applications[i+1:]...)
		return
	}
}

// AddStudentAttempt appends the attempt with a server-assigned timestamp and
// notifies leaderboard subscribers. It never rejects.
func (s *Store) AddStudentAttempt(a domain.StudentAttempt) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a.Timestamp = s.clock()
	s.attempts = append(s.attempts, a)
	s.broadcastLocked()
}

// AddApplication models a network submission: it waits out a simulated delay
// (honoring ctx cancellation) before appending the application as PENDING.
func (s *Store) AddApplication(ctx context.Context, app domain.TrainerApplication) error {
	timer := time.NewTimer(s.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	app.ID = s.newID("app")
	app.Status = domain.ApplicationPending
	s.applications = append(s.applications, app)
	return nil
}

// AddUser mints an id prefixed by the lowercased role. Students get empty
// assignment lists and may register a previously-unseen college.
func (s *Store) AddUser(u domain.User) domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	u.ID = s.newID(strings.ToLower(string(u.Role)))
	if u.Role == domain.RoleStudent {
		u.AssignedMaterialIDs = []string{}
		u.AssignedAssessmentIDs = []string{}
	} else {
		u.AssignedMaterialIDs = nil
		u.AssignedAssessmentIDs = nil
	}
	s.users = append(s.users, u)
	if u.Role == domain.RoleStudent && u.College != "" {
		s.ensureCollegeLocked(u.College)
	}
	return u
}

// AssignMaterialsToStudent unions materialIDs into the student's assigned
// set. No-op if the user is missing or not a student.
func (s *Store) AssignMaterialsToStudent(studentID string, materialIDs []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].ID == studentID && s.users[i].Role == domain.RoleStudent {
			s.users[i].AssignedMaterialIDs = union(s.users[i].AssignedMaterialIDs, materialIDs)
			return
		}
	}
}

// AddAssessment appends the assessment and returns its minted id so the
// caller can immediately fan it out to a course.
func (s *Store) AddAssessment(a domain.Assessment) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	a.ID = s.newID("asm")
	s.assessments = append(s.assessments, a)
	return a.ID
}

// AssignAssessmentToCourse unions the assessment id into the assigned set of
// every student enrolled in the course.
func (s *Store) AssignAssessmentToCourse(assessmentID, course string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].Role == domain.RoleStudent && s.users[i].Course == course {
			s.users[i].AssignedAssessmentIDs = union(s.users[i].AssignedAssessmentIDs, []string{assessmentID})
		}
	}
}

// AddCollege creates the college unless one with the same name already
// exists (case-insensitive, trimmed).
func (s *Store) AddCollege(c domain.College) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.collegeExistsLocked(c.Name) {
		return
	}
	c.ID = s.newID("col")
	c.Name = strings.TrimSpace(c.Name)
	s.colleges = append(s.colleges, c)
}

// AddBill derives the amount from its expenses, assigns the next sequential
// invoice number and prepends the bill (newest first).
func (s *Store) AddBill(b domain.TrainerBill) domain.TrainerBill {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, e := range b.Expenses {
		total += e.Amount
	}
	b.ID = s.newID("bill")
	b.Amount = total
	b.Status = domain.BillPending
	b.InvoiceNumber = fmt.Sprintf("INV-2024-%03d", len(s.bills)+1)
	s.bills = append([]domain.TrainerBill{b}, s.bills...)
	return b
}

// UpdateBillStatus replaces the status of the matching bill; no-op if absent.
func (s *Store) UpdateBillStatus(billID string, status domain.BillStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.bills {
		if s.bills[i].ID == billID {
			s.bills[i].Status = status
			return
		}
	}
}

func (s *Store) ensureCollegeLocked(name string) {
	if s.collegeExistsLocked(name) {
		return
	}
	s.colleges = append(s.colleges, domain.College{
		ID:   s.newID("col"),
		Name: strings.TrimSpace(name),
	})
}

func (s *Store) collegeExistsLocked(name string) bool {
	trimmed := strings.TrimSpace(name)
	for _, c := range s.colleges {
		if strings.EqualFold(c.Name, trimmed) {
			return true
		}
	}
	return false
}

// union merges ids into existing, dropping duplicates while keeping the
// first-seen order.
func union(existing, ids []string) []string {
	seen := make(map[string]struct{}, len(existing)+len(ids))
	merged := make([]string, 0, len(existing)+len(ids))
	for _, id := range existing {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			merged = append(merged, id)
		}
	}
	for _, id := range ids {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			merged = append(merged, id)
		}
	}
	return merged
}
