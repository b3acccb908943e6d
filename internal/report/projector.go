// Package report mirrors dashboard snapshots into SQLite so kindergarten
// reports can be answered with SQL aggregations.
package report

import (
	"fmt"
	"log"
	"sort"
	"sync"

	"gorm.io/gorm"

	"github.com/lojf/kindernet/internal/events"
	"github.com/lojf/kindernet/internal/models"
)

const batchSize = 200

// Projector rewrites the report tables from a state snapshot. Snapshots
// older than the last one written are ignored.
type Projector struct {
	db *gorm.DB

	mu      sync.Mutex
	synced  bool
	version uint64
}

func NewProjector(gdb *gorm.DB) *Projector {
	return &Projector{db: gdb}
}

// Attach subscribes the projector to applied dashboard actions.
func (p *Projector) Attach() {
	events.OnApplied = func(kind string, st models.State) {
		if err := p.Sync(st); err != nil {
			log.Printf("report: sync after %s (v%d) failed: %v", kind, st.Version, err)
		}
	}
}

// Version is the state version last written, and whether anything was.
func (p *Projector) Version() (uint64, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.version, p.synced
}

// Sync replaces the report tables with st in one transaction.
func (p *Projector) Sync(st models.State) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.synced && st.Version <= p.version {
		return nil
	}

	err := p.db.Transaction(func(tx *gorm.DB) error {
		for _, table := range []string{
			"kindergartens", "branches", "class_groups", "teachers",
			"students", "attendance_records", "payment_records",
		} {
			if err := tx.Exec("DELETE FROM " + table).Error; err != nil {
				return fmt.Errorf("clear %s: %w", table, err)
			}
		}
		return insertRows(tx, rowsOf(st))
	})
	if err != nil {
		return err
	}
	p.synced = true
	p.version = st.Version
	return nil
}

type snapshotRows struct {
	kindergartens []models.KindergartenRow
	branches      []models.BranchRow
	groups        []models.GroupRow
	teachers      []models.TeacherRow
	students      []models.StudentRow
	attendance    []models.AttendanceRow
	payments      []models.PaymentRow
}

func rowsOf(st models.State) snapshotRows {
	var out snapshotRows
	for _, id := range sortedKeys(st.Kindergartens) {
		kg := st.Kindergartens[id]
		out.kindergartens = append(out.kindergartens, models.KindergartenRow{
			ID: kg.ID, Name: kg.Name, Status: string(kg.Status), DirectorID: kg.DirectorID,
		})
		for i, bid := range kg.BranchIDs {
			br, ok := st.Branches[bid]
			if !ok {
				continue
			}
			out.branches = append(out.branches, models.BranchRow{
				ID: br.ID, KindergartenID: kg.ID, Name: br.Name, Address: br.Address, Position: i,
			})
		}
	}
	for _, id := range sortedKeys(st.Groups) {
		g := st.Groups[id]
		out.groups = append(out.groups, models.GroupRow{
			ID: g.ID, KindergartenID: g.KindergartenID, BranchID: g.BranchID,
			Name: g.Name, AgeRange: g.AgeRange, TeacherID: g.TeacherID,
		})
	}
	for _, id := range sortedKeys(st.Teachers) {
		t := st.Teachers[id]
		out.teachers = append(out.teachers, models.TeacherRow{
			ID: t.ID, KindergartenID: t.KindergartenID, BranchID: t.BranchID,
			Name: t.Name, Phone: t.Phone, TelegramCode: t.TelegramCode,
		})
	}
	for _, id := range sortedKeys(st.Students) {
		s := st.Students[id]
		out.students = append(out.students, models.StudentRow{
			ID: s.ID, KindergartenID: s.KindergartenID, BranchID: s.BranchID, GroupID: s.GroupID,
			Name: s.Name, Age: s.Age, ParentName: s.ParentName, ParentPhone: s.ParentPhone,
			BaseMonthlyFee: s.BaseMonthlyFee,
		})
		for _, a := range s.Attendance {
			out.attendance = append(out.attendance, models.AttendanceRow{
				ID: a.ID, StudentID: s.ID, Date: a.Date, Status: string(a.Status),
				RecordedBy: a.RecordedBy, Note: a.Note,
			})
		}
		for _, pay := range s.Payments {
			out.payments = append(out.payments, models.PaymentRow{
				ID: pay.ID, StudentID: s.ID, Amount: pay.Amount, PaidAt: pay.Date,
				Method: string(pay.Method), RecordedBy: pay.RecordedBy, Memo: pay.Memo,
			})
		}
	}
	return out
}

func insertRows(tx *gorm.DB, r snapshotRows) error {
	// GORM rejects empty slices, so each table is guarded.
	if len(r.kindergartens) > 0 {
		if err := tx.CreateInBatches(&r.kindergartens, batchSize).Error; err != nil {
			return fmt.Errorf("insert kindergartens: %w", err)
		}
	}
	if len(r.branches) > 0 {
		if err := tx.CreateInBatches(&r.branches, batchSize).Error; err != nil {
			return fmt.Errorf("insert branches: %w", err)
		}
	}
	if len(r.groups) > 0 {
		if err := tx.CreateInBatches(&r.groups, batchSize).Error; err != nil {
			return fmt.Errorf("insert groups: %w", err)
		}
	}
	if len(r.teachers) > 0 {
		if err := tx.CreateInBatches(&r.teachers, batchSize).Error; err != nil {
			return fmt.Errorf("insert teachers: %w", err)
		}
	}
	if len(r.students) > 0 {
		if err := tx.CreateInBatches(&r.students, batchSize).Error; err != nil {
			return fmt.Errorf("insert students: %w", err)
		}
	}
	if len(r.attendance) > 0 {
		if err := tx.CreateInBatches(&r.attendance, batchSize).Error; err != nil {
			return fmt.Errorf("insert attendance: %w", err)
		}
	}
	if len(r.payments) > 0 {
		if err := tx.CreateInBatches(&r.payments, batchSize).Error; err != nil {
			return fmt.Errorf("insert payments: %w", err)
		}
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
