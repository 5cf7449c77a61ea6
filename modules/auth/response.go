package auth

import (
	"encoding/json"
	"net/http"

	"github.com/wendisay28/buscartpro/pkg/auth"
	"github.com/wendisay28/buscartpro/pkg/validator"
)

type sessionResponse struct {
	Success bool       `json:"success"`
	Token   string     `json:"token,omitempty"`
	User    *auth.User `json:"user"`
}

type errorResponse struct {
	Success bool     `json:"success"`
	Error   string   `json:"error"`
	Code    string   `json:"code"`
	Fields  []string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func respondSession(w http.ResponseWriter, status int, token string, user *auth.User) {
	writeJSON(w, status, sessionResponse{Success: true, Token: token, User: user})
}

// respondError translates domain failures into the module's error
// envelope. Validation failures get a 422 with the offending field names;
// everything else goes through the shared status mapping.
func respondError(w http.ResponseWriter, err error) {
	if ve := validator.ExtractValidationErrors(err); len(ve) > 0 {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error:  ve.Error(),
			Code:   "validation_failed",
			Fields: ve.Fields(),
		})
		return
	}

	status, code := auth.StatusForError(err)
	auth.WriteError(w, status, code, err)
}
