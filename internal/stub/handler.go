// Package stub is a development stand-in for the answering service. It
// implements the same two routes (GET /ping, POST /chat) with canned
// gear-advice answers so the chat client can be exercised without the real
// backend running.
package stub

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
)

// ChatRequest is the body the client sends to POST /chat.
type ChatRequest struct {
	Question string `json:"question" validate:"required"`
}

// ChatResponse mirrors the real service's success body.
type ChatResponse struct {
	Answer string `json:"answer"`
}

// Handler serves canned answers keyed on words in the question.
type Handler struct {
	fallback string
	answers  map[string]string
}

func NewHandler() *Handler {
	return &Handler{
		fallback: "That's a great question for your course director. In the meantime, pack light and stay dry.",
		answers: map[string]string{
			"layer":    "Bring wool or synthetic layers.",
			"boots":    "Broken-in hiking boots with ankle support. Never bring brand-new boots on course.",
			"sleeping": "A sleeping bag rated to at least 20F, synthetic fill if you expect rain.",
			"water":    "Two one-liter bottles. Hydration bladders freeze and are hard to refill on trail.",
			"rain":     "A waterproof shell jacket and rain pants. Ponchos snag on brush.",
			"food":     "Rations are provided on course; bring any personal snacks in crush-proof containers.",
			"phone":    "Phones stay with the instructors for the duration of the course.",
		},
	}
}

func (h *Handler) HandleChat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validateRequest(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	slog.Info("Stub answering question", "question", req.Question)
	respondWithJSON(w, http.StatusOK, ChatResponse{Answer: h.answer(req.Question)})
}

func (h *Handler) answer(question string) string {
	q := strings.ToLower(question)
	for keyword, answer := range h.answers {
		if strings.Contains(q, keyword) {
			return answer
		}
	}
	return h.fallback
}
