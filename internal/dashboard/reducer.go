package dashboard

import (
	"fmt"
	"maps"
	"strings"

	"github.com/lojf/kindernet/internal/models"
	"github.com/lojf/kindernet/internal/services"
)

// maxCodeDraws bounds the retries when a telegram code is already taken.
const maxCodeDraws = 10

// Apply returns the state that results from applying a to st. st itself is
// never modified: every map and slice that changes is copied first, so
// earlier snapshots stay valid. On error the input state is returned as is.
func Apply(st models.State, a Action, env Env) (models.State, error) {
	env = env.WithDefaults()
	if a == nil {
		return st, ErrUnknownAction
	}
	if _, known := decoders[a.Kind()]; known {
		if err := Validate(a); err != nil {
			return st, err
		}
	}

	var (
		next models.State
		err  error
	)
	switch a := a.(type) {
	case CreateKindergarten:
		next = createKindergarten(st, a, env)
	case SubmitApplication:
		next = submitApplication(st, a, env)
	case ReviewApplication:
		next, err = reviewApplication(st, a, env)
	case AddBranch:
		next, err = addBranch(st, a, env)
	case AddGroup:
		next, err = addGroup(st, a, env)
	case AddTeacher:
		next, err = addTeacher(st, a, env)
	case AssignTeacher:
		next, err = assignTeacher(st, a)
	case AddStudent:
		next, err = addStudent(st, a, env)
	case RecordPayment:
		next, err = recordPayment(st, a, env)
	case SendNotification:
		next = sendNotification(st, a, env)
	case UpdateSettings:
		next = updateSettings(st, a)
	case RecordAttendance:
		next, err = recordAttendance(st, a, env)
	default:
		return st, fmt.Errorf("%w: %T", ErrUnknownAction, a)
	}
	if err != nil {
		return st, err
	}
	next.Version = st.Version + 1
	return next, nil
}

// Reduce is Apply with the legacy contract: any failure is a silent no-op.
func Reduce(st models.State, a Action, env Env) models.State {
	next, _ := Apply(st, a, env)
	return next
}

func createKindergarten(st models.State, a CreateKindergarten, env Env) models.State {
	email, _ := services.NormEmail(a.DirectorEmail)
	return withKindergarten(st, services.NormName(a.Name), services.NormName(a.DirectorName), email, "", env)
}

// withKindergarten adds an active kindergarten and its director user.
func withKindergarten(st models.State, name, directorName, directorEmail, applicationID string, env Env) models.State {
	kgID := env.IDs.NewID()
	directorID := env.IDs.NewID()

	st.Kindergartens = cloneMap(st.Kindergartens)
	st.Kindergartens[kgID] = models.Kindergarten{
		ID:            kgID,
		Name:          name,
		Status:        models.KindergartenActive,
		DirectorID:    directorID,
		ApplicationID: applicationID,
		BranchIDs:     []string{},
	}
	st.Users = cloneMap(st.Users)
	st.Users[directorID] = models.User{
		ID:                    directorID,
		Role:                  models.RoleDirector,
		Name:                  directorName,
		Email:                 directorEmail,
		RelatedKindergartenID: kgID,
	}
	return st
}

func submitApplication(st models.State, a SubmitApplication, env Env) models.State {
	email, _ := services.NormEmail(a.DirectorEmail)
	id := env.IDs.NewID()
	st.Applications = cloneMap(st.Applications)
	st.Applications[id] = models.KindergartenApplication{
		ID:            id,
		Name:          services.NormName(a.Name),
		DirectorName:  services.NormName(a.DirectorName),
		DirectorEmail: email,
		Status:        models.ApplicationPending,
		SubmittedAt:   env.Clock.Now(),
	}
	return st
}

// reviewApplication records the decision. Only the first approval of a
// pending application opens a kindergarten; reviewing an application that
// was already approved or rejected just overwrites the review fields.
func reviewApplication(st models.State, a ReviewApplication, env Env) (models.State, error) {
	app, ok := st.Applications[a.ApplicationID]
	if !ok {
		return st, notFound("application", a.ApplicationID)
	}
	firstReview := !app.Status.Terminal()

	now := env.Clock.Now()
	app.Status = a.Status
	app.ReviewerID = a.ReviewerID
	app.ReviewedAt = &now
	app.Notes = strings.TrimSpace(a.Notes)

	st.Applications = cloneMap(st.Applications)
	st.Applications[app.ID] = app

	if firstReview && a.Status == models.ApplicationApproved {
		st = withKindergarten(st, app.Name, app.DirectorName, app.DirectorEmail, app.ID, env)
	}
	return st, nil
}

func addBranch(st models.State, a AddBranch, env Env) (models.State, error) {
	kg, ok := st.Kindergartens[a.KindergartenID]
	if !ok {
		return st, notFound("kindergarten", a.KindergartenID)
	}
	id := env.IDs.NewID()

	st.Branches = cloneMap(st.Branches)
	st.Branches[id] = models.Branch{
		ID:             id,
		KindergartenID: kg.ID,
		Name:           services.NormName(a.Name),
		Address:        strings.TrimSpace(a.Address),
		GroupIDs:       []string{},
	}
	kg.BranchIDs = appended(kg.BranchIDs, id)
	st.Kindergartens = cloneMap(st.Kindergartens)
	st.Kindergartens[kg.ID] = kg
	return st, nil
}

// branchOf resolves a branch and checks it belongs to kindergartenID.
func branchOf(st models.State, kindergartenID, branchID string) (models.Branch, error) {
	if _, ok := st.Kindergartens[kindergartenID]; !ok {
		return models.Branch{}, notFound("kindergarten", kindergartenID)
	}
	br, ok := st.Branches[branchID]
	if !ok {
		return models.Branch{}, notFound("branch", branchID)
	}
	if br.KindergartenID != kindergartenID {
		return models.Branch{}, &MismatchError{Kind: "branch", ID: br.ID, Want: kindergartenID, Got: br.KindergartenID}
	}
	return br, nil
}

func addGroup(st models.State, a AddGroup, env Env) (models.State, error) {
	br, err := branchOf(st, a.KindergartenID, a.BranchID)
	if err != nil {
		return st, err
	}
	id := env.IDs.NewID()

	st.Groups = cloneMap(st.Groups)
	st.Groups[id] = models.Group{
		ID:             id,
		KindergartenID: br.KindergartenID,
		BranchID:       br.ID,
		Name:           services.NormName(a.Name),
		AgeRange:       strings.TrimSpace(a.AgeRange),
		StudentIDs:     []string{},
	}
	br.GroupIDs = appended(br.GroupIDs, id)
	st.Branches = cloneMap(st.Branches)
	st.Branches[br.ID] = br
	return st, nil
}

func addTeacher(st models.State, a AddTeacher, env Env) (models.State, error) {
	br, err := branchOf(st, a.KindergartenID, a.BranchID)
	if err != nil {
		return st, err
	}
	name := services.NormName(a.Name)
	code, err := drawTelegramCode(st, name, env)
	if err != nil {
		return st, err
	}
	phone := strings.TrimSpace(a.Phone)

	// the teacher and its login user share one id
	id := env.IDs.NewID()
	st.Teachers = cloneMap(st.Teachers)
	st.Teachers[id] = models.Teacher{
		ID:             id,
		KindergartenID: br.KindergartenID,
		BranchID:       br.ID,
		GroupIDs:       []string{},
		Name:           name,
		Phone:          phone,
		TelegramCode:   code,
	}
	st.Users = cloneMap(st.Users)
	st.Users[id] = models.User{
		ID:                    id,
		Role:                  models.RoleTeacher,
		Name:                  name,
		Phone:                 phone,
		RelatedKindergartenID: br.KindergartenID,
		RelatedTeacherID:      id,
	}
	return st, nil
}

func drawTelegramCode(st models.State, name string, env Env) (string, error) {
	taken := make(map[string]bool, len(st.Teachers))
	for _, t := range st.Teachers {
		taken[strings.ToUpper(t.TelegramCode)] = true
	}
	for i := 0; i < maxCodeDraws; i++ {
		n := env.Codes.Draw()
		if n < models.TelegramCodeMin || n > models.TelegramCodeMax {
			continue
		}
		code := models.TelegramCode(name, n)
		if !taken[code] {
			return code, nil
		}
	}
	return "", ErrCodeExhausted
}

func assignTeacher(st models.State, a AssignTeacher) (models.State, error) {
	g, ok := st.Groups[a.GroupID]
	if !ok {
		return st, notFound("group", a.GroupID)
	}
	if a.TeacherID != "" {
		t, ok := st.Teachers[a.TeacherID]
		if !ok {
			return st, notFound("teacher", a.TeacherID)
		}
		if t.KindergartenID != g.KindergartenID {
			return st, &MismatchError{Kind: "teacher", ID: t.ID, Want: g.KindergartenID, Got: t.KindergartenID}
		}
	}

	st.Teachers = cloneMap(st.Teachers)
	if prev := g.TeacherID; prev != "" && prev != a.TeacherID {
		if pt, ok := st.Teachers[prev]; ok {
			pt.GroupIDs = without(pt.GroupIDs, g.ID)
			st.Teachers[prev] = pt
		}
	}
	if a.TeacherID != "" {
		nt := st.Teachers[a.TeacherID]
		if !nt.HasGroup(g.ID) {
			nt.GroupIDs = appended(nt.GroupIDs, g.ID)
			st.Teachers[nt.ID] = nt
		}
	}

	g.TeacherID = a.TeacherID
	st.Groups = cloneMap(st.Groups)
	st.Groups[g.ID] = g
	return st, nil
}

func addStudent(st models.State, a AddStudent, env Env) (models.State, error) {
	if _, err := branchOf(st, a.KindergartenID, a.BranchID); err != nil {
		return st, err
	}
	g, ok := st.Groups[a.GroupID]
	if !ok {
		return st, notFound("group", a.GroupID)
	}
	if g.BranchID != a.BranchID {
		return st, &MismatchError{Kind: "group", ID: g.ID, Want: a.BranchID, Got: g.BranchID}
	}

	id := env.IDs.NewID()
	parentUserID := env.IDs.NewID()
	parentName := services.NormName(a.ParentName)
	parentPhone := strings.TrimSpace(a.ParentPhone)

	st.Students = cloneMap(st.Students)
	st.Students[id] = models.Student{
		ID:             id,
		KindergartenID: g.KindergartenID,
		BranchID:       g.BranchID,
		GroupID:        g.ID,
		Name:           services.NormName(a.Name),
		Age:            a.Age,
		ParentName:     parentName,
		ParentPhone:    parentPhone,
		ParentUserID:   parentUserID,
		BaseMonthlyFee: a.BaseMonthlyFee,
		Attendance:     []models.AttendanceRecord{},
		Payments:       []models.PaymentRecord{},
	}
	g.StudentIDs = appended(g.StudentIDs, id)
	st.Groups = cloneMap(st.Groups)
	st.Groups[g.ID] = g

	st.Users = cloneMap(st.Users)
	st.Users[parentUserID] = models.User{
		ID:                     parentUserID,
		Role:                   models.RoleParent,
		Name:                   parentName,
		Phone:                  parentPhone,
		RelatedParentStudentID: id,
	}
	return st, nil
}

func recordPayment(st models.State, a RecordPayment, env Env) (models.State, error) {
	s, ok := st.Students[a.StudentID]
	if !ok {
		return st, notFound("student", a.StudentID)
	}
	p := models.PaymentRecord{
		ID:         env.IDs.NewID(),
		StudentID:  s.ID,
		Amount:     a.Amount,
		Date:       env.Clock.Now(),
		Method:     a.Method,
		RecordedBy: a.RecordedBy,
		Memo:       strings.TrimSpace(a.Memo),
	}
	s.Payments = prepended(s.Payments, p)
	st.Students = cloneMap(st.Students)
	st.Students[s.ID] = s
	return st, nil
}

func sendNotification(st models.State, a SendNotification, env Env) models.State {
	n := models.NotificationEntry{
		ID:         env.IDs.NewID(),
		Audience:   a.Audience,
		SenderRole: a.SenderRole,
		SenderID:   a.SenderID,
		Message:    strings.TrimSpace(a.Message),
		CreatedAt:  env.Clock.Now(),
	}
	st.Notifications = prepended(st.Notifications, n)
	return st
}

func updateSettings(st models.State, a UpdateSettings) models.State {
	s := st.Settings
	if a.LogoURL != nil {
		s.Branding.LogoURL = *a.LogoURL
	}
	if a.PrimaryColor != nil {
		s.Branding.PrimaryColor = *a.PrimaryColor
	}
	if a.AccentColor != nil {
		s.Branding.AccentColor = *a.AccentColor
	}
	if a.Language != nil {
		s.Localization.Language = *a.Language
	}
	if a.Currency != nil {
		s.Localization.Currency = *a.Currency
	}
	st.Settings = s
	return st
}

// recordAttendance keeps one record per student and date: an existing record
// is updated where it stands, a new one goes to the front.
func recordAttendance(st models.State, a RecordAttendance, env Env) (models.State, error) {
	s, ok := st.Students[a.StudentID]
	if !ok {
		return st, notFound("student", a.StudentID)
	}
	note := strings.TrimSpace(a.Note)

	idx := -1
	for i, rec := range s.Attendance {
		if rec.Date == a.Date {
			idx = i
			break
		}
	}
	if idx >= 0 {
		recs := make([]models.AttendanceRecord, len(s.Attendance))
		copy(recs, s.Attendance)
		recs[idx].Status = a.Status
		recs[idx].Note = note
		s.Attendance = recs
	} else {
		s.Attendance = prepended(s.Attendance, models.AttendanceRecord{
			ID:         env.IDs.NewID(),
			StudentID:  s.ID,
			Date:       a.Date,
			Status:     a.Status,
			RecordedBy: a.TeacherID,
			Note:       note,
		})
	}
	st.Students = cloneMap(st.Students)
	st.Students[s.ID] = s
	return st, nil
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	if m == nil {
		return make(map[K]V)
	}
	return maps.Clone(m)
}

// appended never writes into the backing array of s.
func appended[T any](s []T, v T) []T {
	out := make([]T, len(s), len(s)+1)
	copy(out, s)
	return append(out, v)
}

func prepended[T any](s []T, v T) []T {
	out := make([]T, 0, len(s)+1)
	out = append(out, v)
	return append(out, s...)
}

func without(s []string, v string) []string {
	out := make([]string, 0, len(s))
	for _, x := range s {
		if x != v {
			out = append(out, x)
		}
	}
	return out
}
