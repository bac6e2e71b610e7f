package app

import (
	"context"
	"time"

	"training-hub-service/internal/domain"
)

// loginDelay mimics the latency of a remote credential check.
const loginDelay = 500 * time.Millisecond

// Store is the slice of the domain store the use cases need.
type Store interface {
	MaterialByID(id string) (domain.Material, bool)
	AddAssessment(a domain.Assessment) string
	AssignAssessmentToCourse(assessmentID, course string)
	AddApplication(ctx context.Context, app domain.TrainerApplication) error
	UserByEmail(email string) (domain.User, bool)
}

// Generator produces structured assessments from raw material text.
type Generator interface {
	GenerateTest(ctx context.Context, content string) ([]domain.AssessmentQuestion, error)
	GenerateAssignment(ctx context.Context, content string) (domain.GeneratedAssignment, error)
}

// TrainingService contains the use cases that span the store and the
// generation gateway. The store never calls the gateway and vice versa;
// their sequencing lives here.
type TrainingService struct {
	store     Store
	generator Generator
	delay     time.Duration
}

func NewTrainingService(store Store, generator Generator) *TrainingService {
	return &TrainingService{store: store, generator: generator, delay: loginDelay}
}

// NewTrainingServiceWithDelay is test-only for skipping the login delay.
func NewTrainingServiceWithDelay(store Store, generator Generator, delay time.Duration) *TrainingService {
	return &TrainingService{store: store, generator: generator, delay: delay}
}

// GenerateTestForMaterial synthesizes a multiple-choice test from the
// material's content, persists it and fans it out to every student enrolled
// in the material's course. Returns the new assessment id.
func (s *TrainingService) GenerateTestForMaterial(ctx context.Context, materialID string) (string, error) {
	material, ok := s.store.MaterialByID(materialID)
	if !ok {
		return "", domain.ErrMaterialNotFound
	}

	questions, err := s.generator.GenerateTest(ctx, material.Content)
	if err != nil {
		return "", err
	}

	id := s.store.AddAssessment(domain.Assessment{
		MaterialID: material.ID,
		Course:     material.Course,
		Title:      material.Title + " Test",
		Type:       domain.AssessmentTest,
		Questions:  questions,
	})
	s.store.AssignAssessmentToCourse(id, material.Course)
	return id, nil
}

// GenerateAssignmentForMaterial synthesizes an open-ended assignment from
// the material's content, persists it under the generated title and fans it
// out to the material's course.
func (s *TrainingService) GenerateAssignmentForMaterial(ctx context.Context, materialID string) (string, error) {
	material, ok := s.store.MaterialByID(materialID)
	if !ok {
		return "", domain.ErrMaterialNotFound
	}

	assignment, err := s.generator.GenerateAssignment(ctx, material.Content)
	if err != nil {
		return "", err
	}

	id := s.store.AddAssessment(domain.Assessment{
		MaterialID: material.ID,
		Course:     material.Course,
		Title:      assignment.Title,
		Type:       domain.AssessmentAssignment,
		Questions:  assignment.Questions,
	})
	s.store.AssignAssessmentToCourse(id, material.Course)
	return id, nil
}

// SubmitApplication forwards a trainer application to the store, which
// models the submission round-trip.
func (s *TrainingService) SubmitApplication(ctx context.Context, app domain.TrainerApplication) error {
	return s.store.AddApplication(ctx, app)
}

// Login checks credentials after a simulated network delay. Plaintext
// comparison is intentional; the source system never hashed passwords.
func (s *TrainingService) Login(ctx context.Context, email, password string) (domain.User, error) {
	timer := time.NewTimer(s.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return domain.User{}, ctx.Err()
	case <-timer.C:
	}

	user, ok := s.store.UserByEmail(email)
	if !ok || user.Password == "" || user.Password != password {
		return domain.User{}, domain.ErrInvalidCredentials
	}
	return user, nil
}
