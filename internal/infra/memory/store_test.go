package memory

import (
	"context"
	"testing"
	"time"

	"training-hub-service/internal/domain"
)

func TestAddMaterialMintsDistinctIDs(t *testing.T) {
	store := NewStore()

	first := store.AddMaterial(domain.Material{Title: "Go Basics", Course: "Go", Type: domain.MaterialDOC, Content: "goroutines"})
	second := store.AddMaterial(domain.Material{Title: "Go Advanced", Course: "Go", Type: domain.MaterialDOC, Content: "channels"})

	if first.ID == "" || second.ID == "" {
		t.Fatalf("expected minted ids, got %q and %q", first.ID, second.ID)
	}
	if first.ID == second.ID {
		t.Fatalf("expected distinct ids, both %q", first.ID)
	}

	materials := store.Materials()
	if len(materials) != 2 {
		t.Fatalf("expected 2 materials, got %d", len(materials))
	}
	if materials[0].Title != "Go Basics" || materials[1].Title != "Go Advanced" {
		t.Fatalf("insertion order not preserved: %+v", materials)
	}
}

func TestAddScheduleCreatesCollegeOnce(t *testing.T) {
	store := NewStore()

	store.AddSchedule(domain.Schedule{TrainerID: "trainer-1", College: "Springfield Tech", Course: "Go"})
	if got := len(store.Colleges()); got != 1 {
		t.Fatalf("expected 1 college after first schedule, got %d", got)
	}
	if name := store.Colleges()[0].Name; name != "Springfield Tech" {
		t.Fatalf("expected trimmed college name, got %q", name)
	}

	// Case and whitespace variants must not create another college.
	store.AddSchedule(domain.Schedule{TrainerID: "trainer-1", College: "  springfield tech ", Course: "Go"})
	if got := len(store.Colleges()); got != 1 {
		t.Fatalf("expected college de-dup, got %d colleges", got)
	}

	if got := len(store.Schedules()); got != 2 {
		t.Fatalf("expected both schedules kept, got %d", got)
	}
}

func TestAddScheduleEmptyCollegeCreatesNothing(t *testing.T) {
	store := NewStore()
	store.AddSchedule(domain.Schedule{TrainerID: "trainer-1", Course: "Go"})
	if got := len(store.Colleges()); got != 0 {
		t.Fatalf("expected no colleges, got %d", got)
	}
}

func TestAssignMaterialsToStudentUnions(t *testing.T) {
	store := NewStore()
	student := store.AddUser(domain.User{Name: "Vikram", Email: "v@s.io", Role: domain.RoleStudent, Course: "Go"})

	store.AssignMaterialsToStudent(student.ID, []string{"m1", "m2"})
	store.AssignMaterialsToStudent(student.ID, []string{"m2", "m3"})

	got, _ := store.UserByID(student.ID)
	want := map[string]bool{"m1": true, "m2": true, "m3": true}
	if len(got.AssignedMaterialIDs) != len(want) {
		t.Fatalf("expected exactly {m1,m2,m3}, got %v", got.AssignedMaterialIDs)
	}
	for _, id := range got.AssignedMaterialIDs {
		if !want[id] {
			t.Fatalf("unexpected material id %q in %v", id, got.AssignedMaterialIDs)
		}
	}
}

func TestAssignMaterialsIgnoresNonStudents(t *testing.T) {
	store := NewStore()
	trainer := store.AddUser(domain.User{Name: "Rahul", Email: "r@t.io", Role: domain.RoleTrainer})

	store.AssignMaterialsToStudent(trainer.ID, []string{"m1"})
	store.AssignMaterialsToStudent("missing", []string{"m1"})

	got, _ := store.UserByID(trainer.ID)
	if len(got.AssignedMaterialIDs) != 0 {
		t.Fatalf("expected trainer untouched, got %v", got.AssignedMaterialIDs)
	}
}

func TestAddUserStudentInitAndCollege(t *testing.T) {
	store := NewStore()

	student := store.AddUser(domain.User{Name: "Meera", Email: "m@s.io", Role: domain.RoleStudent, College: "Riverdale"})
	if student.AssignedMaterialIDs == nil || student.AssignedAssessmentIDs == nil {
		t.Fatalf("expected empty assignment lists for student, got %+v", student)
	}
	if len(store.Colleges()) != 1 {
		t.Fatalf("expected student college registered, got %d", len(store.Colleges()))
	}

	admin := store.AddUser(domain.User{Name: "Anita", Email: "a@a.io", Role: domain.RoleAdmin})
	if admin.AssignedMaterialIDs != nil {
		t.Fatalf("expected no assignment lists for admin")
	}
}

func TestAssignAssessmentToCourseFansOut(t *testing.T) {
	store := NewStore()
	s1 := store.AddUser(domain.User{Name: "A", Email: "a@s.io", Role: domain.RoleStudent, Course: "Go"})
	s2 := store.AddUser(domain.User{Name: "B", Email: "b@s.io", Role: domain.RoleStudent, Course: "Go"})
	other := store.AddUser(domain.User{Name: "C", Email: "c@s.io", Role: domain.RoleStudent, Course: "React"})

	id := store.AddAssessment(domain.Assessment{MaterialID: "mat-1", Course: "Go", Title: "Go Test", Type: domain.AssessmentTest})
	store.AssignAssessmentToCourse(id, "Go")
	store.AssignAssessmentToCourse(id, "Go") // repeat must not duplicate

	for _, studentID := range []string{s1.ID, s2.ID} {
		got, _ := store.UserByID(studentID)
		if len(got.AssignedAssessmentIDs) != 1 || got.AssignedAssessmentIDs[0] != id {
			t.Fatalf("expected exactly [%s] for %s, got %v", id, got.Name, got.AssignedAssessmentIDs)
		}
	}
	got, _ := store.UserByID(other.ID)
	if len(got.AssignedAssessmentIDs) != 0 {
		t.Fatalf("expected other course untouched, got %v", got.AssignedAssessmentIDs)
	}
}

func TestAddBillDerivesAmountAndInvoiceSequence(t *testing.T) {
	store := NewStore()

	first := store.AddBill(domain.TrainerBill{
		TrainerID: "trainer-1",
		Expenses: []domain.Expense{
			{Type: domain.ExpenseTravel, Amount: 100},
			{Type: domain.ExpenseFood, Amount: 50},
		},
	})
	if first.Amount != 150 {
		t.Fatalf("expected amount 150, got %d", first.Amount)
	}
	if first.InvoiceNumber != "INV-2024-001" {
		t.Fatalf("expected INV-2024-001, got %s", first.InvoiceNumber)
	}
	if first.Status != domain.BillPending {
		t.Fatalf("expected PENDING, got %s", first.Status)
	}

	second := store.AddBill(domain.TrainerBill{TrainerID: "trainer-1", Expenses: []domain.Expense{{Type: domain.ExpenseOther, Amount: 10}}})
	if second.InvoiceNumber != "INV-2024-002" {
		t.Fatalf("expected sequential invoice, got %s", second.InvoiceNumber)
	}

	bills := store.Bills()
	if bills[0].ID != second.ID {
		t.Fatalf("expected newest-first bill order, got %+v", bills)
	}
}

func TestUpdateBillStatus(t *testing.T) {
	store := NewStore()
	bill := store.AddBill(domain.TrainerBill{TrainerID: "trainer-1", Expenses: []domain.Expense{{Amount: 10}}})

	store.UpdateBillStatus(bill.ID, domain.BillPaid)
	if got := store.Bills()[0].Status; got != domain.BillPaid {
		t.Fatalf("expected PAID, got %s", got)
	}

	store.UpdateBillStatus("missing", domain.BillPending)
	if got := store.Bills()[0].Status; got != domain.BillPaid {
		t.Fatalf("expected unknown id to be a no-op, got %s", got)
	}
}

func TestLeaderboardSumsAndSorts(t *testing.T) {
	store := NewStore()
	store.AddStudentAttempt(domain.StudentAttempt{StudentName: "A", Course: "Go", Score: 80})
	store.AddStudentAttempt(domain.StudentAttempt{StudentName: "B", Course: "Go", Score: 90})
	store.AddStudentAttempt(domain.StudentAttempt{StudentName: "A", Course: "Go", Score: 20})

	lb := store.Leaderboard()
	if len(lb) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(lb))
	}
	if lb[0].StudentName != "A" || lb[0].TotalScore != 100 {
		t.Fatalf("expected A with 100 first, got %+v", lb[0])
	}
	if lb[1].StudentName != "B" || lb[1].TotalScore != 90 {
		t.Fatalf("expected B with 90 second, got %+v", lb[1])
	}
}

func TestLeaderboardTiesKeepInsertionOrder(t *testing.T) {
	store := NewStore()
	store.AddStudentAttempt(domain.StudentAttempt{StudentName: "First", Score: 50})
	store.AddStudentAttempt(domain.StudentAttempt{StudentName: "Second", Score: 50})

	lb := store.Leaderboard()
	if lb[0].StudentName != "First" || lb[1].StudentName != "Second" {
		t.Fatalf("expected stable tie order, got %+v", lb)
	}
}

func TestStudentAttemptTimestamp(t *testing.T) {
	now := time.Date(2024, time.July, 8, 10, 0, 0, 0, time.UTC)
	store := NewStoreWithClock(func() time.Time { return now })

	store.AddStudentAttempt(domain.StudentAttempt{StudentName: "A", Score: 10})
	if got := store.StudentAttempts()[0].Timestamp; !got.Equal(now) {
		t.Fatalf("expected server-assigned timestamp %v, got %v", now, got)
	}
}

func TestApproveApplicationIdempotent(t *testing.T) {
	store := NewStore()
	store.Load(Snapshot{Applications: []domain.TrainerApplication{{
		ID: "app-1", Name: "Dinesh", Email: "d@e.com", Phone: "123",
		Expertise: "Python", Experience: 6, Status: domain.ApplicationPending,
	}}})

	store.ApproveApplication("unknown")
	if len(store.Applications()) != 1 || len(store.Users()) != 0 {
		t.Fatalf("expected unknown id to be a no-op")
	}

	store.ApproveApplication("app-1")
	store.ApproveApplication("app-1")

	if got := len(store.Applications()); got != 0 {
		t.Fatalf("expected application removed, got %d", got)
	}
	trainers := store.Trainers()
	if len(trainers) != 1 {
		t.Fatalf("expected exactly one trainer created, got %d", len(trainers))
	}
	trainer := trainers[0]
	if trainer.Name != "Dinesh" || trainer.Expertise != "Python" || trainer.Experience != 6 {
		t.Fatalf("application fields not carried over: %+v", trainer)
	}
	if trainer.Password != defaultTrainerPassword {
		t.Fatalf("expected default password for approved trainer")
	}
}

func TestAddApplicationWaitsAndAppends(t *testing.T) {
	store := NewStore()
	store.delay = time.Millisecond

	err := store.AddApplication(context.Background(), domain.TrainerApplication{Name: "Dinesh", Email: "d@e.com"})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	apps := store.Applications()
	if len(apps) != 1 {
		t.Fatalf("expected 1 application, got %d", len(apps))
	}
	if apps[0].Status != domain.ApplicationPending {
		t.Fatalf("expected PENDING, got %s", apps[0].Status)
	}
	if apps[0].ID == "" {
		t.Fatalf("expected minted id")
	}
}

func TestAddApplicationHonorsContext(t *testing.T) {
	store := NewStore()
	store.delay = time.Minute

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := store.AddApplication(ctx, domain.TrainerApplication{Name: "Late"}); err == nil {
		t.Fatalf("expected context error")
	}
	if got := len(store.Applications()); got != 0 {
		t.Fatalf("expected nothing appended on cancellation, got %d", got)
	}
}

func TestAddCollegeDeduplicates(t *testing.T) {
	store := NewStore()
	store.AddCollege(domain.College{Name: "Springfield Tech", Address: "12 College Road"})
	store.AddCollege(domain.College{Name: " SPRINGFIELD TECH "})

	colleges := store.Colleges()
	if len(colleges) != 1 {
		t.Fatalf("expected 1 college, got %d", len(colleges))
	}
	if colleges[0].Address != "12 College Road" {
		t.Fatalf("expected first college kept, got %+v", colleges[0])
	}
}

func TestTrainersAndStudentsViews(t *testing.T) {
	store := NewStore()
	store.AddUser(domain.User{Name: "T", Email: "t@t.io", Role: domain.RoleTrainer})
	store.AddUser(domain.User{Name: "S", Email: "s@s.io", Role: domain.RoleStudent})
	store.AddUser(domain.User{Name: "A", Email: "a@a.io", Role: domain.RoleAdmin})

	if got := len(store.Trainers()); got != 1 {
		t.Fatalf("expected 1 trainer, got %d", got)
	}
	if got := len(store.Students()); got != 1 {
		t.Fatalf("expected 1 student, got %d", got)
	}
	if got := len(store.Users()); got != 3 {
		t.Fatalf("expected 3 users, got %d", got)
	}
}

func TestSubscribeLeaderboardReceivesUpdates(t *testing.T) {
	store := NewStore()
	ch, cancel := store.SubscribeLeaderboard()
	defer cancel()

	<-ch // initial snapshot

	store.AddStudentAttempt(domain.StudentAttempt{StudentName: "A", Score: 42})

	update := <-ch
	if len(update) != 1 || update[0].TotalScore != 42 {
		t.Fatalf("expected updated leaderboard, got %+v", update)
	}
}
