package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	apiContext "github.com/brunolandim/back-jurix/internal/api/context"
	"github.com/brunolandim/back-jurix/internal/platform/auth"
)

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func param(r *http.Request, name string) string {
	params, ok := r.Context().Value(apiContext.Params).(httprouter.Params)
	if !ok {
		return ""
	}
	return params.ByName(name)
}

func authContext(r *http.Request) auth.Context {
	claims := r.Context().Value(apiContext.Claims).(*auth.Claims)
	return claims.Context()
}
