package models

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate failed: %v", err)
	}
	return db
}

func uintPtr(v uint) *uint { return &v }

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestAutoMigrate(t *testing.T) {
	db := setupTestDB(t)

	tables := []string{
		"contracts", "departments", "users", "user_settings", "law_firms", "visa_types",
		"beneficiaries", "dependents", "case_groups", "petitions", "milestones", "rfes",
		"todos", "notifications", "audit_logs", "email_logs", "api_keys",
	}
	for _, table := range tables {
		if !db.Migrator().HasTable(table) {
			t.Errorf("Expected table %s to exist", table)
		}
	}
}

func TestUserEmailUnique(t *testing.T) {
	db := setupTestDB(t)

	user := User{Email: "a@example.com", PasswordHash: "x", FullName: "A", Role: RoleHR, IsActive: true}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	dup := User{Email: "a@example.com", PasswordHash: "y", FullName: "B", Role: RolePM}
	if err := db.Create(&dup).Error; err == nil {
		t.Error("Expected error when creating user with duplicate email")
	}
}

func TestRoleValid(t *testing.T) {
	for _, r := range []Role{RoleAdmin, RoleHR, RolePM, RoleManager, RoleBeneficiary} {
		if !r.Valid() {
			t.Errorf("Expected %s to be valid", r)
		}
	}
	if Role("OWNER").Valid() {
		t.Error("Expected OWNER to be invalid")
	}
}

func seedCase(t *testing.T, db *gorm.DB) (Beneficiary, CaseGroup, Petition) {
	b := Beneficiary{FirstName: "Ana", LastName: "Silva", IsActive: true}
	if err := db.Create(&b).Error; err != nil {
		t.Fatalf("Failed to create beneficiary: %v", err)
	}
	cg := CaseGroup{
		BeneficiaryID:  b.ID,
		PathwayType:    PathwayEB2PERM,
		Status:         CaseStatusPlanning,
		Priority:       PriorityMedium,
		ApprovalStatus: ApprovalDraft,
		CreatedByID:    1,
	}
	if err := db.Create(&cg).Error; err != nil {
		t.Fatalf("Failed to create case group: %v", err)
	}
	p := Petition{
		BeneficiaryID: b.ID,
		CaseGroupID:   &cg.ID,
		PetitionType:  PetitionI140,
		Status:        PetitionStatusDraft,
		Priority:      PriorityMedium,
	}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("Failed to create petition: %v", err)
	}
	return b, cg, p
}

func TestTodoAncestryFromPetition(t *testing.T) {
	db := setupTestDB(t)
	b, cg, p := seedCase(t, db)

	todo := Todo{
		Title:       "Collect pay stubs",
		Status:      TodoStatusTodo,
		Priority:    PriorityHigh,
		CreatedByID: 1,
		PetitionID:  &p.ID,
	}
	if err := db.Create(&todo).Error; err != nil {
		t.Fatalf("Failed to create todo: %v", err)
	}

	var loaded Todo
	db.First(&loaded, todo.ID)
	if loaded.CaseGroupID == nil || *loaded.CaseGroupID != cg.ID {
		t.Errorf("Expected case_group_id %d, got %v", cg.ID, loaded.CaseGroupID)
	}
	if loaded.BeneficiaryID == nil || *loaded.BeneficiaryID != b.ID {
		t.Errorf("Expected beneficiary_id %d, got %v", b.ID, loaded.BeneficiaryID)
	}
}

func TestTodoAncestryFromCaseGroup(t *testing.T) {
	db := setupTestDB(t)
	b, cg, _ := seedCase(t, db)

	todo := Todo{Title: "Kickoff", Status: TodoStatusTodo, Priority: PriorityLow, CreatedByID: 1, CaseGroupID: &cg.ID}
	if err := db.Create(&todo).Error; err != nil {
		t.Fatalf("Failed to create todo: %v", err)
	}
	if todo.PetitionID != nil {
		t.Errorf("Expected no petition, got %v", *todo.PetitionID)
	}
	if todo.BeneficiaryID == nil || *todo.BeneficiaryID != b.ID {
		t.Errorf("Expected beneficiary_id %d, got %v", b.ID, todo.BeneficiaryID)
	}
}

func TestTodoAncestryMissingParent(t *testing.T) {
	db := setupTestDB(t)

	todo := Todo{Title: "Ghost", Status: TodoStatusTodo, Priority: PriorityLow, CreatedByID: 1, PetitionID: uintPtr(999)}
	if err := db.Create(&todo).Error; err == nil {
		t.Error("Expected error when petition does not exist")
	}

	todo = Todo{Title: "Ghost", Status: TodoStatusTodo, Priority: PriorityLow, CreatedByID: 1, BeneficiaryID: uintPtr(999)}
	if err := db.Create(&todo).Error; err == nil {
		t.Error("Expected error when beneficiary does not exist")
	}
}

func TestTodoMetrics(t *testing.T) {
	now := time.Date(2025, time.March, 10, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		todo        Todo
		overdue     bool
		daysOverdue int
		daysToDone  *int
		onTime      *bool
	}{
		{
			name:        "past due and open",
			todo:        Todo{Status: TodoStatusInProgress, DueDate: date(2025, time.March, 7)},
			overdue:     true,
			daysOverdue: 3,
		},
		{
			name: "due today is not overdue",
			todo: Todo{Status: TodoStatusTodo, DueDate: date(2025, time.March, 10)},
		},
		{
			name: "cancelled is never overdue",
			todo: Todo{Status: TodoStatusCancelled, DueDate: date(2025, time.January, 1)},
		},
		{
			name: "no due date",
			todo: Todo{Status: TodoStatusTodo},
		},
		{
			name: "completed late",
			todo: Todo{
				Status:      TodoStatusCompleted,
				CreatedAt:   time.Date(2025, time.March, 1, 9, 0, 0, 0, time.UTC),
				DueDate:     date(2025, time.March, 3),
				CompletedAt: date(2025, time.March, 5),
			},
			daysToDone: intPtr(4),
			onTime:     boolPtr(false),
		},
		{
			name: "completed on due date",
			todo: Todo{
				Status:      TodoStatusCompleted,
				CreatedAt:   time.Date(2025, time.March, 1, 9, 0, 0, 0, time.UTC),
				DueDate:     date(2025, time.March, 3),
				CompletedAt: date(2025, time.March, 3),
			},
			daysToDone: intPtr(2),
			onTime:     boolPtr(true),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := tt.todo.Metrics(now)
			if m.IsOverdue != tt.overdue {
				t.Errorf("IsOverdue = %v, want %v", m.IsOverdue, tt.overdue)
			}
			if m.DaysOverdue != tt.daysOverdue {
				t.Errorf("DaysOverdue = %d, want %d", m.DaysOverdue, tt.daysOverdue)
			}
			if !equalIntPtr(m.DaysToComplete, tt.daysToDone) {
				t.Errorf("DaysToComplete = %v, want %v", m.DaysToComplete, tt.daysToDone)
			}
			if !equalBoolPtr(m.CompletedOnTime, tt.onTime) {
				t.Errorf("CompletedOnTime = %v, want %v", m.CompletedOnTime, tt.onTime)
			}
		})
	}
}

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }

func equalIntPtr(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func equalBoolPtr(a, b *bool) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
