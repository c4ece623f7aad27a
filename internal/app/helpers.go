package app

import (
	"errors"
	"net/http"
	"reflect"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/metinatakli/movie-match-api/api"
	"github.com/metinatakli/movie-match-api/internal/jsonutil"
)

var errInvalidID = errors.New("invalid id parameter")

func (app *Application) writeJSON(w http.ResponseWriter, status int, data any, headers http.Header) error {
	return jsonutil.WriteJSON(w, status, data, headers)
}

func (app *Application) readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	return jsonutil.ReadJSON(w, r, dst)
}

func (app *Application) readIDParam(r *http.Request, name string) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil {
		return 0, errInvalidID
	}

	return id, nil
}

// writeSuccess wraps data in the success envelope. count is the length of
// data when it is a slice, and 1 otherwise.
func (app *Application) writeSuccess(w http.ResponseWriter, r *http.Request, status int, data any) {
	app.writeEnvelope(w, r, status, api.SuccessResponse{
		Success: true,
		Count:   envelopeCount(data),
		Data:    data,
	})
}

func (app *Application) writeEnvelope(w http.ResponseWriter, r *http.Request, status int, resp api.SuccessResponse) {
	err := app.writeJSON(w, status, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func envelopeCount(data any) int {
	v := reflect.ValueOf(data)
	if v.Kind() == reflect.Slice || v.Kind() == reflect.Array {
		return v.Len()
	}

	return 1
}
