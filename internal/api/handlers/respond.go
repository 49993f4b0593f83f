package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/chronicleberg/chronicle-be/internal/apierror"
	"github.com/chronicleberg/chronicle-be/internal/assets"
)

// writeJSON renders a success response body.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError is the single translation point from an error to the shared
// {success:false, message} envelope.
func writeError(w http.ResponseWriter, err error) {
	apierror.Write(w, err)
}

// maxUploadMemory bounds the in-memory portion of multipart parsing.
const maxUploadMemory = 32 << 20

// formUpload pulls one optional file out of a parsed multipart form. A
// missing field returns nil without error.
func formUpload(r *http.Request, field string) (*assets.Upload, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if err == http.ErrMissingFile {
			return nil, nil
		}
		return nil, err
	}
	return &assets.Upload{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Data:        file,
	}, nil
}
