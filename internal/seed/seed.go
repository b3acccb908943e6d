// Package seed builds the demo state a fresh server starts with.
package seed

import (
	"fmt"
	"time"

	"github.com/lojf/kindernet/internal/dashboard"
	"github.com/lojf/kindernet/internal/models"
)

type builder struct {
	store *dashboard.Store
	err   error
}

// do dispatches a and returns the ids it issued. After the first failure
// every call is a no-op.
func (b *builder) do(a dashboard.Action) string {
	if b.err != nil {
		return ""
	}
	res, err := b.store.Dispatch(a)
	if err != nil {
		b.err = fmt.Errorf("seed %s: %w", a.Kind(), err)
		return ""
	}
	if len(res.IDs) == 0 {
		return ""
	}
	return res.IDs[0]
}

// Build returns a state with a super admin, two kindergartens with staff
// and students, some attendance for the current month in loc, and one
// pending application. Every entity except the super admin is created
// through the reducer.
func Build(env dashboard.Env, loc *time.Location) (models.State, error) {
	env = env.WithDefaults()
	if loc == nil {
		loc = time.UTC
	}
	st := models.NewState()
	adminID := env.IDs.NewID()
	st.Users[adminID] = models.User{
		ID:    adminID,
		Role:  models.RoleSuperAdmin,
		Name:  "Platform Admin",
		Email: "admin@kindernet.id",
	}

	b := &builder{store: dashboard.NewStore(st, env, loc)}

	pelangi := b.do(dashboard.CreateKindergarten{Name: "Pelangi Kindergarten", DirectorName: "Sri Wahyuni", DirectorEmail: "sri@pelangi.sch.id"})
	menteng := b.do(dashboard.AddBranch{KindergartenID: pelangi, Name: "Menteng", Address: "Jl. HOS Cokroaminoto 12, Jakarta Pusat"})
	kemang := b.do(dashboard.AddBranch{KindergartenID: pelangi, Name: "Kemang", Address: "Jl. Kemang Raya 45, Jakarta Selatan"})
	kupu := b.do(dashboard.AddGroup{KindergartenID: pelangi, BranchID: menteng, Name: "Kupu-kupu", AgeRange: "3-4"})
	bintang := b.do(dashboard.AddGroup{KindergartenID: pelangi, BranchID: menteng, Name: "Bintang", AgeRange: "4-5"})
	matahari := b.do(dashboard.AddGroup{KindergartenID: pelangi, BranchID: kemang, Name: "Matahari", AgeRange: "5-6"})
	amina := b.do(dashboard.AddTeacher{KindergartenID: pelangi, BranchID: menteng, Name: "Amina Sari", Phone: "0811 2233 445"})
	rudi := b.do(dashboard.AddTeacher{KindergartenID: pelangi, BranchID: kemang, Name: "Rudi Hartono", Phone: "0813 9988 776"})
	b.do(dashboard.AssignTeacher{GroupID: kupu, TeacherID: amina})
	b.do(dashboard.AssignTeacher{GroupID: bintang, TeacherID: amina})
	b.do(dashboard.AssignTeacher{GroupID: matahari, TeacherID: rudi})

	raka := b.do(dashboard.AddStudent{KindergartenID: pelangi, BranchID: menteng, GroupID: kupu,
		Name: "Raka Pratama", Age: 3, ParentName: "Budi Pratama", ParentPhone: "0812 3456 7890", BaseMonthlyFee: 750000})
	nadia := b.do(dashboard.AddStudent{KindergartenID: pelangi, BranchID: menteng, GroupID: bintang,
		Name: "Nadia Putri", Age: 4, ParentName: "Wati Susanti", ParentPhone: "0857 1122 3344", BaseMonthlyFee: 750000})
	dimas := b.do(dashboard.AddStudent{KindergartenID: pelangi, BranchID: kemang, GroupID: matahari,
		Name: "Dimas Saputra", Age: 5, ParentName: "Agus Saputra", ParentPhone: "0821 5566 7788", BaseMonthlyFee: 900000})

	tunas := b.do(dashboard.CreateKindergarten{Name: "Tunas Ceria", DirectorName: "Hendra Gunawan", DirectorEmail: "hendra@tunasceria.id"})
	bandung := b.do(dashboard.AddBranch{KindergartenID: tunas, Name: "Dago", Address: "Jl. Ir. H. Juanda 88, Bandung"})
	melati := b.do(dashboard.AddGroup{KindergartenID: tunas, BranchID: bandung, Name: "Melati", AgeRange: "4-6"})
	yuni := b.do(dashboard.AddTeacher{KindergartenID: tunas, BranchID: bandung, Name: "Yuni Kartika", Phone: "0822 1010 2020"})
	b.do(dashboard.AssignTeacher{GroupID: melati, TeacherID: yuni})
	b.do(dashboard.AddStudent{KindergartenID: tunas, BranchID: bandung, GroupID: melati,
		Name: "Citra Lestari", Age: 5, ParentName: "Rina Lestari", ParentPhone: "+62 838 4455 6677", BaseMonthlyFee: 650000})

	// First days of the current month.
	now := env.Clock.Now().In(loc)
	for day := 1; day < now.Day() && day <= 3; day++ {
		date := time.Date(now.Year(), now.Month(), day, 0, 0, 0, 0, loc).Format("2006-01-02")
		b.do(dashboard.RecordAttendance{StudentID: raka, TeacherID: amina, Date: date, Status: models.AttendancePresent})
		status := models.AttendancePresent
		if day == 2 {
			status = models.AttendanceAbsent
		}
		b.do(dashboard.RecordAttendance{StudentID: nadia, TeacherID: amina, Date: date, Status: status})
		b.do(dashboard.RecordAttendance{StudentID: dimas, TeacherID: rudi, Date: date, Status: models.AttendancePresent})
	}

	directorID := ""
	if kg, ok := b.store.State().Kindergartens[pelangi]; ok {
		directorID = kg.DirectorID
	}
	b.do(dashboard.RecordPayment{StudentID: raka, Amount: 750000, Method: models.PaymentTransfer, RecordedBy: directorID, Memo: "Monthly tuition"})
	b.do(dashboard.RecordPayment{StudentID: dimas, Amount: 450000, Method: models.PaymentCash, RecordedBy: directorID})
	b.do(dashboard.SendNotification{Audience: models.AudienceParents, SenderID: directorID, SenderRole: models.RoleDirector,
		Message: "Welcome to the new term! Classes start at 08:00."})
	b.do(dashboard.SendNotification{Audience: models.AudienceTeachers, SenderID: directorID, SenderRole: models.RoleDirector,
		Message: "Staff meeting on Friday after pickup."})

	b.do(dashboard.SubmitApplication{Name: "Bintang Kecil", DirectorName: "Maya Lestari", DirectorEmail: "maya@bintangkecil.id"})

	if b.err != nil {
		return models.State{}, b.err
	}
	return b.store.State(), nil
}
