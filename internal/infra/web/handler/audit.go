package handler

import (
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/DioGolang/GoBank/internal/application/port/outbound"
	"github.com/DioGolang/GoBank/internal/domain/entity"
	"github.com/DioGolang/GoBank/pkg/logger"
)

const maxAuditPage = 500

type Audit struct {
	repo outbound.AuditRepository
	log  logger.Logger
}

func NewAuditHandler(repo outbound.AuditRepository, log logger.Logger) *Audit {
	return &Audit{repo: repo, log: log}
}

// Query serves GET /audit. Every filter is optional and filters combine
// with AND.
func (h *Audit) Query(w http.ResponseWriter, r *http.Request) {
	q, errs := parseAuditQuery(r.URL.Query())
	if len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, Response{Message: "invalid audit query", Errors: errs})
		return
	}

	records, err := h.repo.Query(r.Context(), q)
	if err != nil {
		h.log.Error(r.Context(), "audit query failed", logger.WithError(err))
		writeJSON(w, http.StatusInternalServerError, Response{Message: http.StatusText(http.StatusInternalServerError)})
		return
	}
	if records == nil {
		records = []entity.AuditRecord{}
	}
	writeJSON(w, http.StatusOK, Response{Success: true, Data: records})
}

func parseAuditQuery(v url.Values) (entity.AuditQuery, []FieldError) {
	var (
		q    = entity.AuditQuery{Limit: 100}
		errs []FieldError
	)
	bad := func(field, msg, kind string) {
		errs = append(errs, FieldError{Field: field, Message: msg, Type: kind})
	}

	parseTime := func(field string) *time.Time {
		raw := v.Get(field)
		if raw == "" {
			return nil
		}
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			bad(field, "Value must be an RFC3339 timestamp", "datetime")
			return nil
		}
		return &t
	}
	parseID := func(field string) *int64 {
		raw := v.Get(field)
		if raw == "" {
			return nil
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			bad(field, "Value must be an integer", "numeric")
			return nil
		}
		return &id
	}

	q.From = parseTime("from")
	q.To = parseTime("to")
	q.ActorUserID = parseID("actor")
	q.TargetID = parseID("target_id")
	q.Action = v.Get("action")
	q.TargetType = v.Get("target_type")

	if raw := v.Get("status"); raw != "" {
		st, ok := entity.ParseAuditStatus(raw)
		if !ok {
			bad("status", "Value must be one of Success Failed Denied Warning", "oneof")
		} else {
			q.Status = &st
		}
	}
	if raw := v.Get("signed"); raw != "" {
		signed, err := strconv.ParseBool(raw)
		if err != nil {
			bad("signed", "Value must be true or false", "boolean")
		} else {
			q.Signed = &signed
		}
	}
	if raw := v.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxAuditPage {
			bad("limit", "Value must be between 1 and "+strconv.Itoa(maxAuditPage), "range")
		} else {
			q.Limit = n
		}
	}
	if q.From != nil && q.To != nil && q.To.Before(*q.From) {
		bad("to", "Value must not precede from", "gtefield")
	}
	return q, errs
}
