package dashboard

import (
	"fmt"
	"testing"
	"time"

	"github.com/lojf/kindernet/internal/models"
)

var testNow = time.Date(2026, time.September, 15, 9, 30, 0, 0, time.UTC)

// testEnv issues ids "id-1", "id-2", ... and cycles through codes.
func testEnv(codes ...int) Env {
	n := 0
	c := 0
	if len(codes) == 0 {
		codes = []int{1234}
	}
	return Env{
		Clock: ClockFunc(func() time.Time { return testNow }),
		IDs: IDFunc(func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		}),
		Codes: CodeFunc(func() int {
			v := codes[c%len(codes)]
			c++
			return v
		}),
	}
}

func mustApply(t *testing.T, st models.State, a Action, env Env) models.State {
	t.Helper()
	next, err := Apply(st, a, env)
	if err != nil {
		t.Fatalf("apply %s: %v", a.Kind(), err)
	}
	return next
}

// fixture is a kindergarten with one branch, one group, one teacher
// assigned to it and one student.
type fixture struct {
	st                                       models.State
	env                                      Env
	kgID, branchID, groupID, teacherID, stID string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	f := fixture{env: testEnv(1234, 5678, 4321)}
	st := models.NewState()

	st = mustApply(t, st, CreateKindergarten{Name: "Sunny Hill", DirectorName: "Dina Putri", DirectorEmail: "Dina@Example.com"}, f.env)
	f.kgID = "id-1"
	st = mustApply(t, st, AddBranch{KindergartenID: f.kgID, Name: "North", Address: "Jl. Merdeka 1"}, f.env)
	f.branchID = "id-3"
	st = mustApply(t, st, AddGroup{KindergartenID: f.kgID, BranchID: f.branchID, Name: "Ducklings", AgeRange: "3-4"}, f.env)
	f.groupID = "id-4"
	st = mustApply(t, st, AddTeacher{KindergartenID: f.kgID, BranchID: f.branchID, Name: "Amina Sari", Phone: "0811000111"}, f.env)
	f.teacherID = "id-5"
	st = mustApply(t, st, AssignTeacher{GroupID: f.groupID, TeacherID: f.teacherID}, f.env)
	st = mustApply(t, st, AddStudent{
		KindergartenID: f.kgID, BranchID: f.branchID, GroupID: f.groupID,
		Name: "Raka", Age: 4, ParentName: "Budi", ParentPhone: "0812 3456 789", BaseMonthlyFee: 700000,
	}, f.env)
	f.stID = "id-6"
	f.st = st
	return f
}
