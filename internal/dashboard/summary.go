package dashboard

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/lojf/kindernet/internal/models"
)

// DaysInMonth returns the number of days in t's calendar month.
func DaysInMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}

// AdjustFee deducts a per-day rate for every absent day. The deduction is
// computed exactly and the result rounded half-up to a whole minor unit;
// the fee never goes below zero.
func AdjustFee(base int64, absentDays, expectedDays int) (ratePerDay decimal.Decimal, adjusted int64) {
	if expectedDays <= 0 {
		return decimal.Zero, base
	}
	fee := decimal.NewFromInt(base)
	days := decimal.NewFromInt(int64(expectedDays))

	ratePerDay = fee.Div(days)
	deduction := fee.Mul(decimal.NewFromInt(int64(absentDays))).Div(days)
	left := fee.Sub(deduction)
	if left.IsNegative() {
		left = decimal.Zero
	}
	return ratePerDay, left.Round(0).IntPart()
}

// Summarize computes month-to-date attendance and adjusted tuition for
// every student the teacher teaches. The month is the one now falls in,
// in now's location.
func Summarize(st models.State, teacherID string, now time.Time) []models.TeacherAttendanceSummary {
	t, ok := st.Teachers[teacherID]
	if !ok {
		return []models.TeacherAttendanceSummary{}
	}
	month := now.Format("2006-01")
	expected := DaysInMonth(now)

	out := []models.TeacherAttendanceSummary{}
	for _, groupID := range t.GroupIDs {
		g, ok := st.Groups[groupID]
		if !ok {
			continue
		}
		for _, studentID := range g.StudentIDs {
			s, ok := st.Students[studentID]
			if !ok {
				continue
			}
			row := models.TeacherAttendanceSummary{
				StudentID:    s.ID,
				StudentName:  s.Name,
				GroupID:      g.ID,
				ExpectedDays: expected,
				BaseFee:      s.BaseMonthlyFee,
			}
			for _, rec := range s.Attendance {
				if len(rec.Date) < len(month) || rec.Date[:len(month)] != month {
					continue
				}
				switch rec.Status {
				case models.AttendancePresent:
					row.PresentDays++
				case models.AttendanceAbsent:
					row.AbsentDays++
				case models.AttendanceExcused:
					row.ExcusedDays++
				}
			}
			rate, adjusted := AdjustFee(s.BaseMonthlyFee, row.AbsentDays, expected)
			row.RatePerDay = rate.StringFixed(2)
			row.AdjustedFee = adjusted
			out = append(out, row)
		}
	}
	return out
}
