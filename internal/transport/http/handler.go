// Package http exposes the JSON API consumed by the training-hub UI.
package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"training-hub-service/internal/app"
	"training-hub-service/internal/domain"
	"training-hub-service/internal/infra/gemini"
	"training-hub-service/internal/infra/memory"
	"github.com/go-playground/validator/v10"
)

// Handler serves the REST surface over the domain store and training service.
type Handler struct {
	store    *memory.Store
	service  *app.TrainingService
	validate *validator.Validate
	logger   *slog.Logger
}

func NewHandler(store *memory.Store, service *app.TrainingService, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		store:    store,
		service:  service,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
	}
}

// Register wires every route onto the mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/materials", h.listMaterials)
	mux.HandleFunc("POST /api/materials", h.createMaterial)
	mux.HandleFunc("POST /api/materials/{id}/generate-test", h.generateTest)
	mux.HandleFunc("POST /api/materials/{id}/generate-assignment", h.generateAssignment)

	mux.HandleFunc("GET /api/schedules", h.listSchedules)
	mux.HandleFunc("POST /api/schedules", h.createSchedule)

	mux.HandleFunc("GET /api/users", h.listUsers)
	mux.HandleFunc("POST /api/users", h.createUser)
	mux.HandleFunc("GET /api/trainers", h.listTrainers)
	mux.HandleFunc("GET /api/students", h.listStudents)
	mux.HandleFunc("POST /api/students/{id}/materials", h.assignMaterials)

	mux.HandleFunc("GET /api/applications", h.listApplications)
	mux.HandleFunc("POST /api/applications", h.submitApplication)
	mux.HandleFunc("POST /api/applications/{id}/approve", h.approveApplication)

	mux.HandleFunc("GET /api/assessments", h.listAssessments)
	mux.HandleFunc("POST /api/attempts", h.recordAttempt)
	mux.HandleFunc("GET /api/leaderboard", h.leaderboard)

	mux.HandleFunc("GET /api/bills", h.listBills)
	mux.HandleFunc("POST /api/bills", h.createBill)
	mux.HandleFunc("POST /api/bills/{id}/status", h.updateBillStatus)

	mux.HandleFunc("GET /api/colleges", h.listColleges)
	mux.HandleFunc("POST /api/colleges", h.createCollege)

	mux.HandleFunc("POST /api/login", h.login)
}

func (h *Handler) listMaterials(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Materials())
}

type createMaterialRequest struct {
	Title   string `json:"title" validate:"required"`
	Course  string `json:"course" validate:"required"`
	Type    string `json:"type" validate:"required,oneof=PDF PPT DOC VIDEO"`
	Content string `json:"content" validate:"required"`
}

func (h *Handler) createMaterial(w http.ResponseWriter, r *http.Request) {
	var req createMaterialRequest
	if !h.decode(w, r, &req) {
		return
	}
	material := h.store.AddMaterial(domain.Material{
		Title:   req.Title,
		Course:  req.Course,
		Type:    domain.MaterialType(req.Type),
		Content: req.Content,
	})
	writeJSON(w, http.StatusCreated, material)
}

func (h *Handler) generateTest(w http.ResponseWriter, r *http.Request) {
	id, err := h.service.GenerateTestForMaterial(r.Context(), r.PathValue("id"))
	if err != nil {
		h.generationError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"assessmentId": id})
}

func (h *Handler) generateAssignment(w http.ResponseWriter, r *http.Request) {
	id, err := h.service.GenerateAssignmentForMaterial(r.Context(), r.PathValue("id"))
	if err != nil {
		h.generationError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"assessmentId": id})
}

func (h *Handler) generationError(w http.ResponseWriter, err error) {
	var genErr *gemini.GenerationError
	switch {
	case errors.Is(err, domain.ErrMaterialNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, gemini.ErrAPIKeyNotConfigured):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	case errors.As(err, &genErr):
		writeError(w, http.StatusBadGateway, genErr.Error())
	default:
		writeError(w, http.StatusBadGateway, err.Error())
	}
}

func (h *Handler) listSchedules(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Schedules())
}

type createScheduleRequest struct {
	TrainerID   string    `json:"trainerId" validate:"required"`
	College     string    `json:"college"`
	Course      string    `json:"course" validate:"required"`
	StartDate   time.Time `json:"startDate" validate:"required"`
	EndDate     time.Time `json:"endDate" validate:"required"`
	MaterialIDs []string  `json:"materialIds"`
}

func (h *Handler) createSchedule(w http.ResponseWriter, r *http.Request) {
	var req createScheduleRequest
	if !h.decode(w, r, &req) {
		return
	}
	schedule := h.store.AddSchedule(domain.Schedule{
		TrainerID:   req.TrainerID,
		College:     req.College,
		Course:      req.Course,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		MaterialIDs: req.MaterialIDs,
	})
	writeJSON(w, http.StatusCreated, schedule)
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Users())
}

type createUserRequest struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Role       string `json:"role" validate:"required,oneof=ADMIN TRAINER STUDENT"`
	Password   string `json:"password"`
	Expertise  string `json:"expertise"`
	Experience int    `json:"experience" validate:"gte=0"`
	Phone      string `json:"phone"`
	Course     string `json:"course"`
	College    string `json:"college"`
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if !h.decode(w, r, &req) {
		return
	}
	user := h.store.AddUser(domain.User{
		Name:       req.Name,
		Email:      req.Email,
		Role:       domain.Role(req.Role),
		Password:   req.Password,
		Expertise:  req.Expertise,
		Experience: req.Experience,
		Phone:      req.Phone,
		Course:     req.Course,
		College:    req.College,
	})
	writeJSON(w, http.StatusCreated, user)
}

func (h *Handler) listTrainers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Trainers())
}

func (h *Handler) listStudents(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Students())
}

type assignMaterialsRequest struct {
	MaterialIDs []string `json:"materialIds" validate:"required,min=1"`
}

func (h *Handler) assignMaterials(w http.ResponseWriter, r *http.Request) {
	var req assignMaterialsRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.store.AssignMaterialsToStudent(r.PathValue("id"), req.MaterialIDs)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listApplications(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Applications())
}

type applicationRequest struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone" validate:"required"`
	Expertise  string `json:"expertise" validate:"required"`
	Experience int    `json:"experience" validate:"gte=0"`
	IDProof    string `json:"idProof" validate:"required"`
}

func (h *Handler) submitApplication(w http.ResponseWriter, r *http.Request) {
	var req applicationRequest
	if !h.decode(w, r, &req) {
		return
	}
	err := h.service.SubmitApplication(r.Context(), domain.TrainerApplication{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Expertise:  req.Expertise,
		Experience: req.Experience,
		IDProof:    req.IDProof,
	})
	if err != nil {
		writeError(w, http.StatusRequestTimeout, err.Error())
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (h *Handler) approveApplication(w http.ResponseWriter, r *http.Request) {
	h.store.ApproveApplication(r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listAssessments(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Assessments())
}

type attemptRequest struct {
	StudentName string `json:"studentName" validate:"required"`
	Course      string `json:"course" validate:"required"`
	Score       int    `json:"score" validate:"gte=0"`
}

func (h *Handler) recordAttempt(w http.ResponseWriter, r *http.Request) {
	var req attemptRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.store.AddStudentAttempt(domain.StudentAttempt{
		StudentName: req.StudentName,
		Course:      req.Course,
		Score:       req.Score,
	})
	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) leaderboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Leaderboard())
}

func (h *Handler) listBills(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Bills())
}

type expenseRequest struct {
	Type        string `json:"type" validate:"required,oneof=Travel Accommodation Food Materials Other"`
	Description string `json:"description"`
	Amount      int    `json:"amount" validate:"gte=0"`
}

type createBillRequest struct {
	TrainerID string           `json:"trainerId" validate:"required"`
	Date      time.Time        `json:"date" validate:"required"`
	Expenses  []expenseRequest `json:"expenses" validate:"required,min=1,dive"`
}

func (h *Handler) createBill(w http.ResponseWriter, r *http.Request) {
	var req createBillRequest
	if !h.decode(w, r, &req) {
		return
	}
	expenses := make([]domain.Expense, 0, len(req.Expenses))
	for _, e := range req.Expenses {
		expenses = append(expenses, domain.Expense{
			Type:        domain.ExpenseType(e.Type),
			Description: e.Description,
			Amount:      e.Amount,
		})
	}
	bill := h.store.AddBill(domain.TrainerBill{
		TrainerID: req.TrainerID,
		Date:      req.Date,
		Expenses:  expenses,
	})
	writeJSON(w, http.StatusCreated, bill)
}

type updateBillStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING PAID"`
}

func (h *Handler) updateBillStatus(w http.ResponseWriter, r *http.Request) {
	var req updateBillStatusRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.store.UpdateBillStatus(r.PathValue("id"), domain.BillStatus(req.Status))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listColleges(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Colleges())
}

type createCollegeRequest struct {
	Name          string `json:"name" validate:"required"`
	Address       string `json:"address"`
	ContactPerson string `json:"contactPerson"`
	ContactEmail  string `json:"contactEmail" validate:"omitempty,email"`
	ContactPhone  string `json:"contactPhone"`
}

func (h *Handler) createCollege(w http.ResponseWriter, r *http.Request) {
	var req createCollegeRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.store.AddCollege(domain.College{
		Name:          req.Name,
		Address:       req.Address,
		ContactPerson: req.ContactPerson,
		ContactEmail:  req.ContactEmail,
		ContactPhone:  req.ContactPhone,
	})
	w.WriteHeader(http.StatusCreated)
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !h.decode(w, r, &req) {
		return
	}
	user, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// decode unmarshals and validates the request body; it writes the 400
// response itself and reports whether the handler should proceed.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
