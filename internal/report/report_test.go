package report_test

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/lojf/kindernet/internal/dashboard"
	"github.com/lojf/kindernet/internal/db"
	"github.com/lojf/kindernet/internal/events"
	"github.com/lojf/kindernet/internal/models"
	"github.com/lojf/kindernet/internal/report"
)

// openTestDB returns an isolated in-file SQLite database in a temp directory.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "test.db")
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gdb
}

var now = time.Date(2026, time.September, 15, 9, 0, 0, 0, time.UTC)

func testEnv(start int) dashboard.Env {
	n := start
	return dashboard.Env{
		Clock: dashboard.ClockFunc(func() time.Time { return now }),
		IDs: dashboard.IDFunc(func() string {
			n++
			return fmt.Sprintf("id-%02d", n)
		}),
		Codes: dashboard.CodeFunc(func() int { return 1000 + n }),
	}
}

func apply(t *testing.T, st models.State, env dashboard.Env, actions ...dashboard.Action) models.State {
	t.Helper()
	for _, a := range actions {
		var err error
		st, err = dashboard.Apply(st, a, env)
		if err != nil {
			t.Fatalf("apply %s: %v", a.Kind(), err)
		}
	}
	return st
}

// buildState: kindergarten id-01 with branch id-03 holding groups id-04
// (teacher id-06, two students) and id-05 (empty).
func buildState(t *testing.T) models.State {
	t.Helper()
	env := testEnv(0)
	st := apply(t, models.NewState(), env,
		dashboard.CreateKindergarten{Name: "Sunny Hill", DirectorName: "Dina", DirectorEmail: "dina@example.com"},
		dashboard.AddBranch{KindergartenID: "id-01", Name: "North"},
		dashboard.AddGroup{KindergartenID: "id-01", BranchID: "id-03", Name: "Ducklings"},
		dashboard.AddGroup{KindergartenID: "id-01", BranchID: "id-03", Name: "Owls"},
		dashboard.AddTeacher{KindergartenID: "id-01", BranchID: "id-03", Name: "Amina"},
		dashboard.AssignTeacher{GroupID: "id-04", TeacherID: "id-06"},
		dashboard.AddStudent{KindergartenID: "id-01", BranchID: "id-03", GroupID: "id-04",
			Name: "Raka", Age: 4, ParentName: "Budi", ParentPhone: "0812111", BaseMonthlyFee: 600000},
		dashboard.AddStudent{KindergartenID: "id-01", BranchID: "id-03", GroupID: "id-04",
			Name: "Sari", Age: 5, ParentName: "Wati", ParentPhone: "0812222", BaseMonthlyFee: 600000},
	)
	// students id-07 (parent id-08) and id-09 (parent id-10)
	return apply(t, st, env,
		dashboard.RecordAttendance{StudentID: "id-07", Date: "2026-09-01", Status: models.AttendancePresent, TeacherID: "id-06"},
		dashboard.RecordAttendance{StudentID: "id-07", Date: "2026-09-02", Status: models.AttendanceAbsent, TeacherID: "id-06"},
		dashboard.RecordAttendance{StudentID: "id-09", Date: "2026-09-02", Status: models.AttendanceExcused, TeacherID: "id-06"},
		dashboard.RecordAttendance{StudentID: "id-09", Date: "2026-08-31", Status: models.AttendancePresent, TeacherID: "id-06"},
		dashboard.RecordPayment{StudentID: "id-07", Amount: 250000, Method: models.PaymentCash, RecordedBy: "id-02"},
		dashboard.RecordPayment{StudentID: "id-07", Amount: 100000, Method: models.PaymentTransfer, RecordedBy: "id-02"},
	)
}

func TestGroupLoad(t *testing.T) {
	p := report.NewProjector(openTestDB(t))
	if err := p.Sync(buildState(t)); err != nil {
		t.Fatalf("sync: %v", err)
	}

	rows, err := p.GroupLoad("id-01")
	if err != nil {
		t.Fatalf("GroupLoad: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 groups, got %d: %+v", len(rows), rows)
	}
	if rows[0].GroupName != "Ducklings" || rows[0].Students != 2 || rows[0].TeacherName != "Amina" {
		t.Errorf("ducklings row: %+v", rows[0])
	}
	if rows[1].GroupName != "Owls" || rows[1].Students != 0 || rows[1].TeacherName != "" {
		t.Errorf("owls row: %+v", rows[1])
	}
	if rows[0].BranchName != "North" {
		t.Errorf("branch: got %q", rows[0].BranchName)
	}
}

// TestAttendanceTotals checks the SUM(CASE ...) aggregation and the month filter.
func TestAttendanceTotals(t *testing.T) {
	p := report.NewProjector(openTestDB(t))
	if err := p.Sync(buildState(t)); err != nil {
		t.Fatalf("sync: %v", err)
	}

	rows, err := p.AttendanceTotals("id-01", "2026-09")
	if err != nil {
		t.Fatalf("AttendanceTotals: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d: %+v", len(rows), rows)
	}
	got := rows[0]
	if got.GroupID != "id-04" || got.Present != 1 || got.Absent != 1 || got.Excused != 1 {
		t.Errorf("september totals: %+v", got)
	}

	aug, err := p.AttendanceTotals("id-01", "2026-08")
	if err != nil {
		t.Fatalf("AttendanceTotals: %v", err)
	}
	if len(aug) != 1 || aug[0].Present != 1 {
		t.Errorf("august totals: %+v", aug)
	}

	if _, err := p.AttendanceTotals("id-01", "September"); err == nil {
		t.Error("expected error for malformed month")
	}
}

func TestRosterAndCSV(t *testing.T) {
	p := report.NewProjector(openTestDB(t))
	if err := p.Sync(buildState(t)); err != nil {
		t.Fatalf("sync: %v", err)
	}

	rows, err := p.Roster("id-01")
	if err != nil {
		t.Fatalf("Roster: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 students, got %d", len(rows))
	}
	if rows[0].StudentName != "Raka" || rows[0].TotalPaid != 350000 || rows[0].GroupName != "Ducklings" {
		t.Errorf("raka: %+v", rows[0])
	}
	if rows[1].StudentName != "Sari" || rows[1].TotalPaid != 0 || rows[1].Age != 5 {
		t.Errorf("sari: %+v", rows[1])
	}

	var buf bytes.Buffer
	if err := report.WriteRosterCSV(&buf, rows); err != nil {
		t.Fatalf("WriteRosterCSV: %v", err)
	}
	recs, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(recs))
	}
	if recs[1][1] != "Raka" || recs[1][8] != "350000" {
		t.Errorf("csv row: %v", recs[1])
	}
}

func TestSyncSkipsStaleVersions(t *testing.T) {
	p := report.NewProjector(openTestDB(t))
	st := buildState(t)
	if err := p.Sync(st); err != nil {
		t.Fatalf("sync: %v", err)
	}

	// An older snapshot must not overwrite newer tables.
	if err := p.Sync(models.NewState()); err != nil {
		t.Fatalf("sync stale: %v", err)
	}
	rows, _ := p.Roster("id-01")
	if len(rows) != 2 {
		t.Errorf("stale snapshot replaced the tables: %d students", len(rows))
	}
	if v, ok := p.Version(); !ok || v != st.Version {
		t.Errorf("version: got %d,%v want %d", v, ok, st.Version)
	}
}

func TestAttachFollowsStore(t *testing.T) {
	p := report.NewProjector(openTestDB(t))
	p.Attach()
	t.Cleanup(func() { events.OnApplied = nil })

	s := dashboard.NewStore(buildState(t), testEnv(50), time.UTC)
	if _, err := s.Dispatch(dashboard.AddGroup{KindergartenID: "id-01", BranchID: "id-03", Name: "Bees"}); err != nil {
		t.Fatalf("dispatch: %v", err)
	}

	rows, err := p.GroupLoad("id-01")
	if err != nil {
		t.Fatalf("GroupLoad: %v", err)
	}
	if len(rows) != 3 || rows[0].GroupName != "Bees" {
		t.Errorf("expected the new group in the projection, got %+v", rows)
	}
}
