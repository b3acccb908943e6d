package dashboard

import (
	"crypto/rand"
	"math/big"
	"time"

	"github.com/google/uuid"

	"github.com/lojf/kindernet/internal/models"
)

type Clock interface {
	Now() time.Time
}

type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

type IDGenerator interface {
	NewID() string
}

type IDFunc func() string

func (f IDFunc) NewID() string { return f() }

// CodeSource draws the numeric part of a telegram code, in
// [models.TelegramCodeMin, models.TelegramCodeMax].
type CodeSource interface {
	Draw() int
}

type CodeFunc func() int

func (f CodeFunc) Draw() int { return f() }

// Env carries everything non-deterministic the reducer needs.
// Nil fields fall back to the system clock, uuids and crypto/rand.
type Env struct {
	Clock Clock
	IDs   IDGenerator
	Codes CodeSource
}

func DefaultEnv() Env {
	return Env{
		Clock: ClockFunc(time.Now),
		IDs:   IDFunc(uuid.NewString),
		Codes: CodeFunc(cryptoCode),
	}
}

// WithDefaults fills unset fields from DefaultEnv.
func (e Env) WithDefaults() Env {
	d := DefaultEnv()
	if e.Clock == nil {
		e.Clock = d.Clock
	}
	if e.IDs == nil {
		e.IDs = d.IDs
	}
	if e.Codes == nil {
		e.Codes = d.Codes
	}
	return e
}

func cryptoCode() int {
	span := int64(models.TelegramCodeMax - models.TelegramCodeMin + 1)
	n, err := rand.Int(rand.Reader, big.NewInt(span))
	if err != nil {
		// crypto/rand only fails when the OS source is unavailable
		return models.TelegramCodeMin + int(time.Now().UnixNano()%span)
	}
	return models.TelegramCodeMin + int(n.Int64())
}

// recordingIDs remembers every id handed out during one Apply.
type recordingIDs struct {
	next IDGenerator
	ids  []string
}

func (r *recordingIDs) NewID() string {
	id := r.next.NewID()
	r.ids = append(r.ids, id)
	return id
}
