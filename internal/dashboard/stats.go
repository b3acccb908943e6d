package dashboard

import (
	"sort"

	"github.com/lojf/kindernet/internal/models"
)

// Overview is the super admin's platform-wide counters.
type Overview struct {
	ActiveKindergartens int                 `json:"activeKindergartens"`
	TotalBranches       int                 `json:"totalBranches"`
	TotalGroups         int                 `json:"totalGroups"`
	UserCountByRole     map[models.Role]int `json:"userCountByRole"`
	PendingApplications int                 `json:"pendingApplications"`
}

func PlatformOverview(st models.State) Overview {
	o := Overview{
		TotalBranches:   len(st.Branches),
		TotalGroups:     len(st.Groups),
		UserCountByRole: make(map[models.Role]int, len(models.Roles)),
	}
	for _, r := range models.Roles {
		o.UserCountByRole[r] = 0
	}
	for _, kg := range st.Kindergartens {
		if kg.Status == models.KindergartenActive {
			o.ActiveKindergartens++
		}
	}
	for _, u := range st.Users {
		o.UserCountByRole[u.Role]++
	}
	for _, app := range st.Applications {
		if app.Status == models.ApplicationPending {
			o.PendingApplications++
		}
	}
	return o
}

type BranchOverview struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	Groups   int    `json:"groups"`
	Teachers int    `json:"teachers"`
	Students int    `json:"students"`
}

// KindergartenOverview is what a director sees for their kindergarten.
type KindergartenOverview struct {
	ID        string                    `json:"id"`
	Name      string                    `json:"name"`
	Status    models.KindergartenStatus `json:"status"`
	Branches  []BranchOverview          `json:"branches"`
	Groups    int                       `json:"groups"`
	Teachers  int                       `json:"teachers"`
	Students  int                       `json:"students"`
	TotalPaid int64                     `json:"totalPaid"`
}

func KindergartenStats(st models.State, kindergartenID string) (KindergartenOverview, error) {
	kg, ok := st.Kindergartens[kindergartenID]
	if !ok {
		return KindergartenOverview{}, notFound("kindergarten", kindergartenID)
	}
	out := KindergartenOverview{ID: kg.ID, Name: kg.Name, Status: kg.Status, Branches: []BranchOverview{}}

	teachersPerBranch := map[string]int{}
	for _, t := range st.Teachers {
		if t.KindergartenID == kg.ID {
			out.Teachers++
			teachersPerBranch[t.BranchID]++
		}
	}
	studentsPerBranch := map[string]int{}
	for _, s := range st.Students {
		if s.KindergartenID == kg.ID {
			out.Students++
			studentsPerBranch[s.BranchID]++
			out.TotalPaid += s.TotalPaid()
		}
	}
	for _, id := range kg.BranchIDs {
		br, ok := st.Branches[id]
		if !ok {
			continue
		}
		out.Groups += len(br.GroupIDs)
		out.Branches = append(out.Branches, BranchOverview{
			ID:       br.ID,
			Name:     br.Name,
			Address:  br.Address,
			Groups:   len(br.GroupIDs),
			Teachers: teachersPerBranch[br.ID],
			Students: studentsPerBranch[br.ID],
		})
	}
	return out, nil
}

type AttendanceCounts struct {
	Present int `json:"present"`
	Absent  int `json:"absent"`
	Excused int `json:"excused"`
}

// StudentProfile is the parent's view of their child.
type StudentProfile struct {
	Student          models.Student             `json:"student"`
	KindergartenName string                     `json:"kindergartenName"`
	BranchName       string                     `json:"branchName"`
	GroupName        string                     `json:"groupName"`
	TeacherName      string                     `json:"teacherName,omitempty"`
	Attendance       AttendanceCounts           `json:"attendance"`
	TotalPaid        int64                      `json:"totalPaid"`
	Announcements    []models.NotificationEntry `json:"announcements"`
}

// parentFeedSize is how many announcements the parent view shows.
const parentFeedSize = 5

func StudentStats(st models.State, studentID string) (StudentProfile, error) {
	s, ok := st.Students[studentID]
	if !ok {
		return StudentProfile{}, notFound("student", studentID)
	}
	p := StudentProfile{
		Student:          s,
		KindergartenName: st.Kindergartens[s.KindergartenID].Name,
		BranchName:       st.Branches[s.BranchID].Name,
		TotalPaid:        s.TotalPaid(),
	}
	if g, ok := st.Groups[s.GroupID]; ok {
		p.GroupName = g.Name
		if t, ok := st.Teachers[g.TeacherID]; ok {
			p.TeacherName = t.Name
		}
	}
	for _, rec := range s.Attendance {
		switch rec.Status {
		case models.AttendancePresent:
			p.Attendance.Present++
		case models.AttendanceAbsent:
			p.Attendance.Absent++
		case models.AttendanceExcused:
			p.Attendance.Excused++
		}
	}
	p.Announcements = Notifications(st, NotificationFilter{Audience: models.AudienceParents, Limit: parentFeedSize})
	return p, nil
}

type NotificationFilter struct {
	Audience models.Audience // empty matches all
	SenderID string          // empty matches all
	Limit    int             // <= 0 means no limit
}

// Notifications returns matching entries, newest first.
func Notifications(st models.State, f NotificationFilter) []models.NotificationEntry {
	out := []models.NotificationEntry{}
	for _, n := range st.Notifications {
		if f.Audience != "" && n.Audience != f.Audience {
			continue
		}
		if f.SenderID != "" && n.SenderID != f.SenderID {
			continue
		}
		out = append(out, n)
		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
	}
	return out
}

// UsersByRole lists users of one role ordered by name, then id.
func UsersByRole(st models.State, role models.Role) []models.User {
	out := []models.User{}
	for _, u := range st.Users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}
