package models

import "time"

// Row types mirror the state tree into SQL tables for reporting.

type KindergartenRow struct {
	ID         string `gorm:"primaryKey"`
	Name       string
	Status     string
	DirectorID string
}

func (KindergartenRow) TableName() string { return "kindergartens" }

type BranchRow struct {
	ID             string `gorm:"primaryKey"`
	KindergartenID string `gorm:"index"`
	Name           string
	Address        string
	Position       int // index in the kindergarten's branch list
}

func (BranchRow) TableName() string { return "branches" }

type GroupRow struct {
	ID             string `gorm:"primaryKey"`
	KindergartenID string `gorm:"index"`
	BranchID       string `gorm:"index"`
	Name           string
	AgeRange       string
	TeacherID      string
}

// "groups" is a keyword in newer SQLite versions
func (GroupRow) TableName() string { return "class_groups" }

type TeacherRow struct {
	ID             string `gorm:"primaryKey"`
	KindergartenID string `gorm:"index"`
	BranchID       string
	Name           string
	Phone          string
	TelegramCode   string
}

func (TeacherRow) TableName() string { return "teachers" }

type StudentRow struct {
	ID             string `gorm:"primaryKey"`
	KindergartenID string `gorm:"index"`
	BranchID       string
	GroupID        string `gorm:"index"`
	Name           string
	Age            int
	ParentName     string
	ParentPhone    string
	BaseMonthlyFee int64
}

func (StudentRow) TableName() string { return "students" }

type AttendanceRow struct {
	ID         string `gorm:"primaryKey"`
	StudentID  string
	Date       string
	Status     string
	RecordedBy string
	Note       string
}

func (AttendanceRow) TableName() string { return "attendance_records" }

type PaymentRow struct {
	ID         string `gorm:"primaryKey"`
	StudentID  string `gorm:"index"`
	Amount     int64
	PaidAt     time.Time
	Method     string
	RecordedBy string
	Memo       string
}

func (PaymentRow) TableName() string { return "payment_records" }
