package api

import (
	"net/http"

	"github.com/KirkDiggler/closest/internal/common/errs"
	"github.com/KirkDiggler/closest/internal/models"
	answerService "github.com/KirkDiggler/closest/internal/services/answer"
)

type submitAnswerRequest struct {
	UserName string   `json:"userName"`
	Answer   rawValue `json:"answer"`
}

type submitAnswersRequest struct {
	Items []*submitAnswerRequest `json:"items"`
}

type updateAnswerRequest struct {
	UserName *string   `json:"userName"`
	Answer   *rawValue `json:"answer"`
}

type answersResponse struct {
	Answers []*models.Answer `json:"answers"`
}

func (h *Handler) submitAnswer(w http.ResponseWriter, r *http.Request) {
	roundID, err := pathID(r, "roundID")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req submitAnswerRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	out, err := h.answers.SubmitAnswer(r.Context(), &answerService.SubmitAnswerInput{
		RoundID:  roundID,
		UserName: req.UserName,
		RawValue: string(req.Answer),
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, out.Answer)
}

func (h *Handler) submitAnswers(w http.ResponseWriter, r *http.Request) {
	roundID, err := pathID(r, "roundID")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req submitAnswersRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	items := make([]*answerService.SubmissionItem, len(req.Items))
	for i, item := range req.Items {
		if item == nil {
			h.writeError(w, r, &answerService.BatchError{
				Index: i,
				Err:   errs.New(errs.KindInvalidInput, "item must not be null"),
			})
			return
		}
		items[i] = &answerService.SubmissionItem{
			UserName: item.UserName,
			RawValue: string(item.Answer),
		}
	}

	out, err := h.answers.SubmitAnswers(r.Context(), &answerService.SubmitAnswersInput{
		RoundID: roundID,
		Items:   items,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, &answersResponse{Answers: out.Answers})
}

func (h *Handler) listAnswers(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := page(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	input := &answerService.ListAnswersInput{Limit: limit, Offset: offset}
	if r.URL.Query().Get("roundId") != "" {
		roundID, err := queryInt(r, "roundId")
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		id := int64(roundID)
		input.RoundID = &id
	}

	out, err := h.answers.ListAnswers(r.Context(), input)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, &answersResponse{Answers: out.Answers})
}

func (h *Handler) getAnswer(w http.ResponseWriter, r *http.Request) {
	answerID, err := pathID(r, "answerID")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	out, err := h.answers.GetAnswer(r.Context(), &answerService.GetAnswerInput{AnswerID: answerID})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, out.Answer)
}

func (h *Handler) updateAnswer(w http.ResponseWriter, r *http.Request) {
	answerID, err := pathID(r, "answerID")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req updateAnswerRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	input := &answerService.UpdateAnswerInput{
		AnswerID: answerID,
		UserName: req.UserName,
	}
	if req.Answer != nil {
		raw := string(*req.Answer)
		input.RawValue = &raw
	}

	out, err := h.answers.UpdateAnswer(r.Context(), input)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, out.Answer)
}

func (h *Handler) deleteAnswer(w http.ResponseWriter, r *http.Request) {
	answerID, err := pathID(r, "answerID")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	out, err := h.answers.DeleteAnswer(r.Context(), &answerService.DeleteAnswerInput{AnswerID: answerID})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if !out.Deleted {
		h.writeError(w, r, errs.Newf(errs.KindNotFound, "answer %d not found", answerID))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
