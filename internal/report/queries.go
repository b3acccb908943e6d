package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"
)

type GroupLoad struct {
	GroupID     string `json:"groupId"`
	GroupName   string `json:"groupName"`
	BranchName  string `json:"branchName"`
	TeacherName string `json:"teacherName"`
	Students    int64  `json:"students"`
}

// GroupLoad counts students per group of a kindergarten, ordered by branch
// position then group name. Groups without students are included.
func (p *Projector) GroupLoad(kindergartenID string) ([]GroupLoad, error) {
	rows := []GroupLoad{}
	err := p.db.Table("class_groups g").
		Select(`g.id AS group_id, g.name AS group_name, b.name AS branch_name,
			COALESCE(t.name, '') AS teacher_name, COUNT(s.id) AS students`).
		Joins("JOIN branches b ON b.id = g.branch_id").
		Joins("LEFT JOIN teachers t ON t.id = g.teacher_id").
		Joins("LEFT JOIN students s ON s.group_id = g.id").
		Where("g.kindergarten_id = ?", kindergartenID).
		Group("g.id, g.name, b.name, b.position, t.name").
		Order("b.position, g.name, g.id").
		Scan(&rows).Error
	return rows, err
}

type AttendanceTotals struct {
	GroupID   string `json:"groupId"`
	GroupName string `json:"groupName"`
	Present   int64  `json:"present"`
	Absent    int64  `json:"absent"`
	Excused   int64  `json:"excused"`
}

// AttendanceTotals aggregates one calendar month ("2006-01") of attendance
// per group in a single query.
func (p *Projector) AttendanceTotals(kindergartenID, month string) ([]AttendanceTotals, error) {
	if _, err := time.Parse("2006-01", month); err != nil {
		return nil, fmt.Errorf("month %q: want YYYY-MM", month)
	}
	rows := []AttendanceTotals{}
	err := p.db.Table("attendance_records a").
		Select(`g.id AS group_id, g.name AS group_name,
			SUM(CASE WHEN a.status = 'present' THEN 1 ELSE 0 END) AS present,
			SUM(CASE WHEN a.status = 'absent'  THEN 1 ELSE 0 END) AS absent,
			SUM(CASE WHEN a.status = 'excused' THEN 1 ELSE 0 END) AS excused`).
		Joins("JOIN students s ON s.id = a.student_id").
		Joins("JOIN class_groups g ON g.id = s.group_id").
		Where("s.kindergarten_id = ? AND a.date LIKE ?", kindergartenID, month+"-%").
		Group("g.id, g.name").
		Order("g.name, g.id").
		Scan(&rows).Error
	return rows, err
}

type RosterEntry struct {
	StudentID      string `json:"studentId"`
	StudentName    string `json:"studentName"`
	Age            int    `json:"age"`
	BranchName     string `json:"branchName"`
	GroupName      string `json:"groupName"`
	ParentName     string `json:"parentName"`
	ParentPhone    string `json:"parentPhone"`
	BaseMonthlyFee int64  `json:"baseMonthlyFee"`
	TotalPaid      int64  `json:"totalPaid"`
}

// Roster lists a kindergarten's students with their payment totals.
func (p *Projector) Roster(kindergartenID string) ([]RosterEntry, error) {
	rows := []RosterEntry{}
	err := p.db.Table("students s").
		Select(`s.id AS student_id, s.name AS student_name, s.age,
			b.name AS branch_name, g.name AS group_name,
			s.parent_name, s.parent_phone, s.base_monthly_fee,
			COALESCE(pay.total, 0) AS total_paid`).
		Joins("JOIN branches b ON b.id = s.branch_id").
		Joins("JOIN class_groups g ON g.id = s.group_id").
		Joins("LEFT JOIN (SELECT student_id, SUM(amount) AS total FROM payment_records GROUP BY student_id) pay ON pay.student_id = s.id").
		Where("s.kindergarten_id = ?", kindergartenID).
		Order("b.position, g.name, s.name, s.id").
		Scan(&rows).Error
	return rows, err
}

// WriteRosterCSV writes entries with a header row.
func WriteRosterCSV(w io.Writer, entries []RosterEntry) error {
	cw := csv.NewWriter(w)
	_ = cw.Write([]string{
		"Student ID", "Student", "Age", "Branch", "Group",
		"Parent", "Parent Phone", "Monthly Fee", "Total Paid",
	})
	for _, e := range entries {
		_ = cw.Write([]string{
			e.StudentID,
			e.StudentName,
			strconv.Itoa(e.Age),
			e.BranchName,
			e.GroupName,
			e.ParentName,
			e.ParentPhone,
			strconv.FormatInt(e.BaseMonthlyFee, 10),
			strconv.FormatInt(e.TotalPaid, 10),
		})
	}
	cw.Flush()
	return cw.Error()
}
