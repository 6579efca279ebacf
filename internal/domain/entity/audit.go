package entity

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

type AuditStatus int

const (
	AuditSuccess AuditStatus = iota
	AuditFailed
	AuditDenied
	AuditWarning
)

func (s AuditStatus) String() string {
	switch s {
	case AuditSuccess:
		return "Success"
	case AuditFailed:
		return "Failed"
	case AuditDenied:
		return "Denied"
	case AuditWarning:
		return "Warning"
	default:
		return strconv.Itoa(int(s))
	}
}

// AuditEntry is the full, write-once description of one action.
type AuditEntry struct {
	OccurredAt     time.Time
	ActorUserID    *int64
	ActorRole      string
	Action         string
	TargetType     string
	TargetID       *int64
	CorrelationID  uuid.UUID
	ClientIP       string
	UserAgent      string
	Status         AuditStatus
	Reason         string
	BeforeSnapshot any
	AfterSnapshot  any
}

// AuditRecord is the compact persisted row. Only Signed and Signature change
// after the record has been written.
type AuditRecord struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
	Details   string    `json:"details"`
	Signed    bool      `json:"signed"`
	Signature string    `json:"signature,omitempty"`
}

// AuditQuery fields are optional and combined with AND. Limit 0 means no
// limit.
type AuditQuery struct {
	From        *time.Time
	To          *time.Time
	ActorUserID *int64
	Action      string
	TargetType  string
	TargetID    *int64
	Status      *AuditStatus
	Signed      *bool
	Limit       int
}

const SignatureMarker = " | signature=appended"

// Normalize returns a copy with a UTC timestamp (now when unset) and a
// correlation id (generated when empty).
func (e AuditEntry) Normalize(now time.Time) AuditEntry {
	if e.OccurredAt.IsZero() {
		e.OccurredAt = now
	}
	e.OccurredAt = e.OccurredAt.UTC()
	if e.CorrelationID == uuid.Nil {
		e.CorrelationID = uuid.New()
	}
	return e
}

// Details flattens the entry in a fixed field order.
func (e AuditEntry) Details() string {
	return fmt.Sprintf("action=%s; target=%s/%s; status=%s; reason=%s; actor=%s(%s); corr=%s; ip=%s",
		e.Action,
		e.TargetType, optionalID(e.TargetID),
		e.Status,
		e.Reason,
		optionalID(e.ActorUserID), e.ActorRole,
		e.CorrelationID,
		e.ClientIP,
	)
}

func (e AuditEntry) UserID() int64 {
	if e.ActorUserID == nil {
		return 0
	}
	return *e.ActorUserID
}

func optionalID(id *int64) string {
	if id == nil {
		return ""
	}
	return strconv.FormatInt(*id, 10)
}

// ParseAuditStatus accepts the names produced by String, case-insensitively.
func ParseAuditStatus(s string) (AuditStatus, bool) {
	for _, st := range []AuditStatus{AuditSuccess, AuditFailed, AuditDenied, AuditWarning} {
		if strings.EqualFold(s, st.String()) {
			return st, true
		}
	}
	return 0, false
}
