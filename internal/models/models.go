package models

import "time"

type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleDirector   Role = "director"
	RoleTeacher    Role = "teacher"
	RoleParent     Role = "parent"
)

// Roles lists every role in display order.
var Roles = []Role{RoleSuperAdmin, RoleDirector, RoleTeacher, RoleParent}

type KindergartenStatus string

const (
	KindergartenActive   KindergartenStatus = "active"
	KindergartenInactive KindergartenStatus = "inactive"
	KindergartenDraft    KindergartenStatus = "draft"
)

type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationApproved ApplicationStatus = "approved"
	ApplicationRejected ApplicationStatus = "rejected"
)

// Terminal reports whether the application has already been reviewed.
func (s ApplicationStatus) Terminal() bool {
	return s == ApplicationApproved || s == ApplicationRejected
}

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceExcused AttendanceStatus = "excused"
)

type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentCard     PaymentMethod = "card"
	PaymentTransfer PaymentMethod = "transfer"
)

type Audience string

const (
	AudienceTeachers Audience = "teachers"
	AudienceParents  Audience = "parents"
)

type Kindergarten struct {
	ID            string             `json:"id"`
	Name          string             `json:"name"`
	Status        KindergartenStatus `json:"status"`
	DirectorID    string             `json:"directorId"`
	ApplicationID string             `json:"applicationId,omitempty"`
	BranchIDs     []string           `json:"branchIds"`
}

type Branch struct {
	ID             string   `json:"id"`
	KindergartenID string   `json:"kindergartenId"`
	Name           string   `json:"name"`
	Address        string   `json:"address"`
	GroupIDs       []string `json:"groupIds"`
}

type Group struct {
	ID             string   `json:"id"`
	KindergartenID string   `json:"kindergartenId"`
	BranchID       string   `json:"branchId"`
	Name           string   `json:"name"`
	AgeRange       string   `json:"ageRange"`
	TeacherID      string   `json:"teacherId,omitempty"` // empty when unassigned
	StudentIDs     []string `json:"studentIds"`
}

type Teacher struct {
	ID             string   `json:"id"`
	KindergartenID string   `json:"kindergartenId"`
	BranchID       string   `json:"branchId"`
	GroupIDs       []string `json:"groupIds"` // set, order not meaningful
	Name           string   `json:"name"`
	Phone          string   `json:"phone"`
	TelegramCode   string   `json:"telegramCode"`
}

// HasGroup reports whether groupID is among the teacher's groups.
func (t Teacher) HasGroup(groupID string) bool {
	for _, id := range t.GroupIDs {
		if id == groupID {
			return true
		}
	}
	return false
}

type Student struct {
	ID             string             `json:"id"`
	KindergartenID string             `json:"kindergartenId"`
	BranchID       string             `json:"branchId"`
	GroupID        string             `json:"groupId"`
	Name           string             `json:"name"`
	Age            int                `json:"age"`
	ParentName     string             `json:"parentName"`
	ParentPhone    string             `json:"parentPhone"`
	ParentUserID   string             `json:"parentUserId"`
	BaseMonthlyFee int64              `json:"baseMonthlyFee"` // minor units
	Attendance     []AttendanceRecord `json:"attendance"`     // newest first
	Payments       []PaymentRecord    `json:"payments"`       // newest first
}

// TotalPaid sums every recorded payment.
func (s Student) TotalPaid() int64 {
	var sum int64
	for _, p := range s.Payments {
		sum += p.Amount
	}
	return sum
}

type AttendanceRecord struct {
	ID         string           `json:"id"`
	StudentID  string           `json:"studentId"`
	Date       string           `json:"date"` // YYYY-MM-DD
	Status     AttendanceStatus `json:"status"`
	RecordedBy string           `json:"recordedBy"`
	Note       string           `json:"note,omitempty"`
}

type PaymentRecord struct {
	ID         string        `json:"id"`
	StudentID  string        `json:"studentId"`
	Amount     int64         `json:"amount"`
	Date       time.Time     `json:"date"`
	Method     PaymentMethod `json:"method"`
	RecordedBy string        `json:"recordedBy"`
	Memo       string        `json:"memo,omitempty"`
}

type User struct {
	ID                     string `json:"id"`
	Role                   Role   `json:"role"`
	Name                   string `json:"name"`
	Email                  string `json:"email,omitempty"`
	Phone                  string `json:"phone,omitempty"`
	RelatedKindergartenID  string `json:"relatedKindergartenId,omitempty"`
	RelatedTeacherID       string `json:"relatedTeacherId,omitempty"`
	RelatedParentStudentID string `json:"relatedParentStudentId,omitempty"`
}

type KindergartenApplication struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	DirectorName  string            `json:"directorName"`
	DirectorEmail string            `json:"directorEmail"`
	Status        ApplicationStatus `json:"status"`
	SubmittedAt   time.Time         `json:"submittedAt"`
	ReviewedAt    *time.Time        `json:"reviewedAt,omitempty"` // nil until reviewed
	ReviewerID    string            `json:"reviewerId,omitempty"`
	Notes         string            `json:"notes,omitempty"`
}

type NotificationEntry struct {
	ID         string    `json:"id"`
	Audience   Audience  `json:"audience"`
	SenderRole Role      `json:"senderRole"`
	SenderID   string    `json:"senderId"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"createdAt"`
}

type Branding struct {
	LogoURL      string `json:"logoUrl"`
	PrimaryColor string `json:"primaryColor"`
	AccentColor  string `json:"accentColor"`
}

type Localization struct {
	Language string `json:"language"`
	Currency string `json:"currency"`
}

type SystemSettings struct {
	Branding     Branding     `json:"branding"`
	Localization Localization `json:"localization"`
}

// TeacherAttendanceSummary is one student's month-to-date attendance and
// the tuition adjusted for absences.
type TeacherAttendanceSummary struct {
	StudentID    string `json:"studentId"`
	StudentName  string `json:"studentName"`
	GroupID      string `json:"groupId"`
	PresentDays  int    `json:"presentDays"`
	AbsentDays   int    `json:"absentDays"`
	ExcusedDays  int    `json:"excusedDays"`
	ExpectedDays int    `json:"expectedDays"`
	BaseFee      int64  `json:"baseFee"`
	RatePerDay   string `json:"ratePerDay"` // decimal, two places
	AdjustedFee  int64  `json:"adjustedFee"`
}
