package dashboard

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/lojf/kindernet/internal/models"
)

type Kind string

const (
	KindCreateKindergarten Kind = "CREATE_KINDERGARTEN"
	KindReviewApplication  Kind = "REVIEW_APPLICATION"
	KindAddBranch          Kind = "ADD_BRANCH"
	KindAddTeacher         Kind = "ADD_TEACHER"
	KindAddGroup           Kind = "ADD_GROUP"
	KindAssignTeacher      Kind = "ASSIGN_TEACHER"
	KindAddStudent         Kind = "ADD_STUDENT"
	KindRecordPayment      Kind = "RECORD_PAYMENT"
	KindSendNotification   Kind = "SEND_NOTIFICATION"
	KindUpdateSettings     Kind = "UPDATE_SETTINGS"
	KindRecordAttendance   Kind = "RECORD_ATTENDANCE"
	KindSubmitApplication  Kind = "SUBMIT_APPLICATION"
)

// Action is a single state transition request.
type Action interface {
	Kind() Kind
}

type CreateKindergarten struct {
	Name          string `json:"name" validate:"required,max=200"`
	DirectorName  string `json:"directorName" validate:"required,max=200"`
	DirectorEmail string `json:"directorEmail" validate:"required,email"`
}

type SubmitApplication struct {
	Name          string `json:"name" validate:"required,max=200"`
	DirectorName  string `json:"directorName" validate:"required,max=200"`
	DirectorEmail string `json:"directorEmail" validate:"required,email"`
}

type ReviewApplication struct {
	ApplicationID string                   `json:"applicationId" validate:"required"`
	Status        models.ApplicationStatus `json:"status" validate:"required,oneof=approved rejected"`
	ReviewerID    string                   `json:"reviewerId" validate:"required"`
	Notes         string                   `json:"notes,omitempty" validate:"max=2000"`
}

type AddBranch struct {
	KindergartenID string `json:"kindergartenId" validate:"required"`
	Name           string `json:"name" validate:"required,max=200"`
	Address        string `json:"address" validate:"max=500"`
}

type AddGroup struct {
	KindergartenID string `json:"kindergartenId" validate:"required"`
	BranchID       string `json:"branchId" validate:"required"`
	Name           string `json:"name" validate:"required,max=200"`
	AgeRange       string `json:"ageRange" validate:"max=50"`
}

type AddTeacher struct {
	KindergartenID string `json:"kindergartenId" validate:"required"`
	BranchID       string `json:"branchId" validate:"required"`
	Name           string `json:"name" validate:"required,max=200"`
	Phone          string `json:"phone" validate:"max=32"`
}

// AssignTeacher with an empty TeacherID unassigns the group.
type AssignTeacher struct {
	GroupID   string `json:"groupId" validate:"required"`
	TeacherID string `json:"teacherId"`
}

type AddStudent struct {
	KindergartenID string `json:"kindergartenId" validate:"required"`
	BranchID       string `json:"branchId" validate:"required"`
	GroupID        string `json:"groupId" validate:"required"`
	Name           string `json:"name" validate:"required,max=200"`
	Age            int    `json:"age" validate:"gte=0,lte=18"`
	ParentName     string `json:"parentName" validate:"required,max=200"`
	ParentPhone    string `json:"parentPhone" validate:"required,max=32"`
	BaseMonthlyFee int64  `json:"baseMonthlyFee" validate:"gte=0"`
}

type RecordPayment struct {
	StudentID  string               `json:"studentId" validate:"required"`
	Amount     int64                `json:"amount" validate:"gt=0"`
	Method     models.PaymentMethod `json:"method" validate:"required,oneof=cash card transfer"`
	RecordedBy string               `json:"recordedBy" validate:"required"`
	Memo       string               `json:"memo,omitempty" validate:"max=500"`
}

type SendNotification struct {
	Audience   models.Audience `json:"audience" validate:"required,oneof=teachers parents"`
	SenderID   string          `json:"senderId" validate:"required"`
	SenderRole models.Role     `json:"senderRole" validate:"required,oneof=super_admin director teacher parent"`
	Message    string          `json:"message" validate:"required,max=2000"`
}

// UpdateSettings merges only the fields that are set.
type UpdateSettings struct {
	LogoURL      *string `json:"logoUrl,omitempty" validate:"omitempty,max=2048"`
	PrimaryColor *string `json:"primaryColor,omitempty" validate:"omitempty,hexcolor"`
	AccentColor  *string `json:"accentColor,omitempty" validate:"omitempty,hexcolor"`
	Language     *string `json:"language,omitempty" validate:"omitempty,min=2,max=10"`
	Currency     *string `json:"currency,omitempty" validate:"omitempty,iso4217"`
}

type RecordAttendance struct {
	StudentID string                  `json:"studentId" validate:"required"`
	TeacherID string                  `json:"teacherId" validate:"required"`
	Date      string                  `json:"date" validate:"required,datetime=2006-01-02"`
	Status    models.AttendanceStatus `json:"status" validate:"required,oneof=present absent excused"`
	Note      string                  `json:"note,omitempty" validate:"max=500"`
}

func (CreateKindergarten) Kind() Kind { return KindCreateKindergarten }
func (SubmitApplication) Kind() Kind  { return KindSubmitApplication }
func (ReviewApplication) Kind() Kind  { return KindReviewApplication }
func (AddBranch) Kind() Kind          { return KindAddBranch }
func (AddGroup) Kind() Kind           { return KindAddGroup }
func (AddTeacher) Kind() Kind         { return KindAddTeacher }
func (AssignTeacher) Kind() Kind      { return KindAssignTeacher }
func (AddStudent) Kind() Kind         { return KindAddStudent }
func (RecordPayment) Kind() Kind      { return KindRecordPayment }
func (SendNotification) Kind() Kind   { return KindSendNotification }
func (UpdateSettings) Kind() Kind     { return KindUpdateSettings }
func (RecordAttendance) Kind() Kind   { return KindRecordAttendance }

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report json field names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// Validate checks the payload tags of a known action.
func Validate(a Action) error {
	if err := validate.Struct(a); err != nil {
		var fields validator.ValidationErrors
		if ve, ok := err.(validator.ValidationErrors); ok {
			fields = ve
		} else {
			return fmt.Errorf("%s: %w", a.Kind(), err)
		}
		return &ValidationError{Action: a.Kind(), Fields: fields}
	}
	return nil
}

// Envelope is the wire form of an action: {"type": "...", "payload": {...}}.
type Envelope struct {
	Type    Kind            `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

func decodeAs[T Action](raw json.RawMessage) (Action, error) {
	var a T
	if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return a, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&a); err != nil {
		return nil, err
	}
	return a, nil
}

var decoders = map[Kind]func(json.RawMessage) (Action, error){
	KindCreateKindergarten: decodeAs[CreateKindergarten],
	KindSubmitApplication:  decodeAs[SubmitApplication],
	KindReviewApplication:  decodeAs[ReviewApplication],
	KindAddBranch:          decodeAs[AddBranch],
	KindAddGroup:           decodeAs[AddGroup],
	KindAddTeacher:         decodeAs[AddTeacher],
	KindAssignTeacher:      decodeAs[AssignTeacher],
	KindAddStudent:         decodeAs[AddStudent],
	KindRecordPayment:      decodeAs[RecordPayment],
	KindSendNotification:   decodeAs[SendNotification],
	KindUpdateSettings:     decodeAs[UpdateSettings],
	KindRecordAttendance:   decodeAs[RecordAttendance],
}

// DecodeAction parses an envelope into its typed action.
func DecodeAction(data []byte) (Action, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}
	return env.Decode()
}

func (e Envelope) Decode() (Action, error) {
	dec, ok := decoders[e.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, e.Type)
	}
	a, err := dec(e.Payload)
	if err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", e.Type, err)
	}
	return a, nil
}
