package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/KirkDiggler/closest/internal/common/errs"
	answerService "github.com/KirkDiggler/closest/internal/services/answer"
)

// maxBodyBytes bounds request bodies; a full batch fits comfortably
const maxBodyBytes = 1 << 20

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Index   *int   `json:"index,omitempty"`
}

// rawValue accepts an answer sent either as a JSON number or a JSON string
// and keeps it as typed so the answer service parses both the same way.
type rawValue string

func (v *rawValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*v = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = rawValue(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return errors.New("answer must be a number or a string")
	}
	*v = rawValue(integralNumber(n))
	return nil
}

// integralNumber spells whole JSON numbers such as 50.0 or 5e1 as plain
// integers. Anything else is returned untouched.
func integralNumber(n json.Number) string {
	raw := n.String()
	if _, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return raw
	}

	f, err := n.Float64()
	if err != nil || f != math.Trunc(f) || math.Abs(f) > 1<<53 {
		return raw
	}
	return strconv.FormatInt(int64(f), 10)
}

func statusFor(kind errs.Kind) int {
	switch kind {
	case errs.KindNotFound:
		return http.StatusNotFound
	case errs.KindInvalidInput:
		return http.StatusBadRequest
	case errs.KindRoundClosed, errs.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(body)
}

// writeError reports err with the status of its kind. Internal failures are
// logged and never leak their cause.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	kind := errs.KindOf(err)
	body := &errorBody{
		Error:   string(kind),
		Message: errs.MessageOf(err),
	}

	var batchErr *answerService.BatchError
	if errors.As(err, &batchErr) {
		index := batchErr.Index
		body.Index = &index
	}

	if kind == errs.KindInternal {
		h.logger.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", w.Header().Get(RequestIDHeader),
			"error", err,
		)
	}

	writeJSON(w, statusFor(kind), body)
}

// decode reads a JSON body into dst, rejecting unknown fields
func decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errs.Wrap(errs.KindInvalidInput, err, fmt.Sprintf("invalid request body: %v", err))
	}
	return nil
}

func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errs.Newf(errs.KindInvalidInput, "invalid %s %q", name, raw)
	}
	return id, nil
}

// queryInt parses an optional non-negative integer query parameter
func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, errs.Newf(errs.KindInvalidInput, "invalid %s %q", name, raw)
	}
	return v, nil
}

func page(r *http.Request) (limit, offset int, err error) {
	if limit, err = queryInt(r, "limit"); err != nil {
		return 0, 0, err
	}
	if offset, err = queryInt(r, "offset"); err != nil {
		return 0, 0, err
	}
	return limit, offset, nil
}
