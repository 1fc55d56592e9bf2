package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Abhyam-Mathur/nagar-team/internal/utils"
)

// Phone must be +91 followed by exactly 10 digits.
var phonePattern = regexp.MustCompile(`^\+91\d{10}$`)

type smsSender interface {
	Configured() bool
	Send(ctx context.Context, to, body string) error
}

// NotifyHTTP delivers worker credentials over SMS. Without provider
// credentials it logs the message instead of sending; the 200 response in
// that case means "submission path completed", not "message delivered".
type NotifyHTTP struct {
	sender smsSender
	log    zerolog.Logger
}

func NewNotifyHTTP(sender smsSender, log zerolog.Logger) *NotifyHTTP {
	return &NotifyHTTP{sender: sender, log: log}
}

func corsHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
}

// OPTIONS /api/notify — preflight answered unconditionally.
func (h *NotifyHTTP) Preflight() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		corsHeaders(w)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}

// POST /api/notify
func (h *NotifyHTTP) Send() http.HandlerFunc {
	type inDTO struct {
		Phone    string `json:"phone"`
		Username string `json:"username"`
		Password string `json:"password"`
	}
	fail := func(w http.ResponseWriter, msg string) {
		utils.JSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": msg})
	}
	return func(w http.ResponseWriter, r *http.Request) {
		corsHeaders(w)

		var in inDTO
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			fail(w, "invalid json")
			return
		}
		in.Phone = strings.TrimSpace(in.Phone)
		if in.Phone == "" || in.Username == "" || in.Password == "" {
			fail(w, "phone, username and password are required")
			return
		}
		if !phonePattern.MatchString(in.Phone) {
			fail(w, "phone must be +91 followed by exactly 10 digits")
			return
		}

		body := fmt.Sprintf(
			"Welcome to NagarTeam! Your worker account is ready. Username: %s Password: %s. Please log in and change your password.",
			in.Username, in.Password,
		)

		if !h.sender.Configured() {
			// Fallback: diagnostic log instead of dispatch. Never a silent
			// drop; the caller is told submission completed.
			h.log.Warn().
				Str("phone", in.Phone).
				Str("username", in.Username).
				Str("password", in.Password).
				Msg("sms provider not configured, credentials logged instead of sent")
			utils.JSON(w, http.StatusOK, map[string]any{
				"success": true,
				"message": "sms provider not configured; message logged",
			})
			return
		}

		if err := h.sender.Send(r.Context(), in.Phone, body); err != nil {
			h.log.Error().Err(err).Str("phone", in.Phone).Msg("sms dispatch failed")
			fail(w, err.Error())
			return
		}
		utils.JSON(w, http.StatusOK, map[string]any{
			"success": true,
			"message": "sms sent",
		})
	}
}
