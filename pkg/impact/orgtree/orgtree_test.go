package orgtree

import (
	"testing"

	"github.com/ama-impact/ama-impact/pkg/impact/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, models.AutoMigrate(db))
	return db
}

// engineering
// ├── platform
// │   └── sre
// └── data
// sales
func seedDepartments(t *testing.T, db *gorm.DB) map[string]models.Department {
	contract := models.Contract{Name: "NASA", Code: "ASSESS", Status: models.ContractStatusActive}
	require.NoError(t, db.Create(&contract).Error)

	depts := map[string]models.Department{}
	create := func(name string, parent string) {
		d := models.Department{ContractID: contract.ID, Name: name, Code: name}
		if parent != "" {
			p := depts[parent]
			d.ParentID = &p.ID
		}
		require.NoError(t, db.Create(&d).Error)
		depts[name] = d
	}
	create("engineering", "")
	create("platform", "engineering")
	create("sre", "platform")
	create("data", "engineering")
	create("sales", "")
	return depts
}

func TestDepartmentSubtree(t *testing.T) {
	db := setupTestDB(t)
	d := seedDepartments(t, db)

	ids, err := DepartmentSubtree(db, d["engineering"].ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{d["engineering"].ID, d["platform"].ID, d["sre"].ID, d["data"].ID}, ids)
	assert.Equal(t, d["engineering"].ID, ids[0])

	ids, err = DepartmentSubtree(db, d["sre"].ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{d["sre"].ID}, ids)
}

func TestReports(t *testing.T) {
	db := setupTestDB(t)

	mk := func(email string, managerID *uint) models.User {
		u := models.User{Email: email, PasswordHash: "x", FullName: email, Role: models.RoleManager, ReportsToID: managerID, IsActive: true}
		require.NoError(t, db.Create(&u).Error)
		return u
	}
	boss := mk("boss@example.com", nil)
	lead := mk("lead@example.com", &boss.ID)
	dev := mk("dev@example.com", &lead.ID)
	peer := mk("peer@example.com", nil)

	ids, err := Reports(db, boss.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{lead.ID, dev.ID}, ids)

	ids, err = Reports(db, peer.ID)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestReportsStopsOnCycle(t *testing.T) {
	db := setupTestDB(t)
	a := models.User{Email: "a@example.com", PasswordHash: "x", FullName: "A", Role: models.RoleManager}
	b := models.User{Email: "b@example.com", PasswordHash: "x", FullName: "B", Role: models.RoleManager}
	require.NoError(t, db.Create(&a).Error)
	require.NoError(t, db.Create(&b).Error)
	db.Model(&a).Update("reports_to_id", b.ID)
	db.Model(&b).Update("reports_to_id", a.ID)

	ids, err := Reports(db, a.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{b.ID}, ids)
}

func TestCheckParent(t *testing.T) {
	db := setupTestDB(t)
	d := seedDepartments(t, db)
	contractID := d["engineering"].ContractID

	assert.NoError(t, CheckParent(db, 0, contractID, d["platform"].ID))
	assert.NoError(t, CheckParent(db, d["data"].ID, contractID, d["platform"].ID))
	assert.ErrorIs(t, CheckParent(db, d["platform"].ID, contractID, d["platform"].ID), ErrCycle)
	assert.ErrorIs(t, CheckParent(db, d["engineering"].ID, contractID, d["sre"].ID), ErrCycle)

	other := models.Contract{Name: "Other", Code: "OTHER", Status: models.ContractStatusActive}
	require.NoError(t, db.Create(&other).Error)
	assert.ErrorIs(t, CheckParent(db, 0, other.ID, d["sales"].ID), ErrOtherContract)

	assert.ErrorIs(t, CheckParent(db, 0, contractID, 9999), gorm.ErrRecordNotFound)
}

func TestBuildTree(t *testing.T) {
	db := setupTestDB(t)
	d := seedDepartments(t, db)

	var all []models.Department
	require.NoError(t, db.Order("id").Find(&all).Error)

	roots := BuildTree(all)
	require.Len(t, roots, 2)
	assert.Equal(t, "engineering", roots[0].Name)
	require.Len(t, roots[0].Children, 2)
	assert.Equal(t, "platform", roots[0].Children[0].Name)
	require.Len(t, roots[0].Children[0].Children, 1)
	assert.Equal(t, d["sre"].ID, roots[0].Children[0].Children[0].ID)
	assert.Empty(t, roots[1].Children)

	// a subtree listed on its own starts at its top node
	var sub []models.Department
	require.NoError(t, db.Where("id IN ?", []uint{d["platform"].ID, d["sre"].ID}).Order("id").Find(&sub).Error)
	roots = BuildTree(sub)
	require.Len(t, roots, 1)
	assert.Equal(t, "platform", roots[0].Name)
}
