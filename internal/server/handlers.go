package server

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strconv"

	"github.com/gogpu/textfx"
	intImage "github.com/gogpu/textfx/internal/image"
)

// DownloadName is the file name offered by /download.
const DownloadName = "bangla_typography.png"

type renderResponse struct {
	Image string `json:"image"`
}

type downloadRequest struct {
	Image string `json:"image"`
}

type errorBody struct {
	Error string `json:"error"`
	Trace string `json:"trace,omitempty"`
}

func (s *Server) handleFonts(w http.ResponseWriter, _ *http.Request) {
	names := s.renderer.Fonts().List()
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, names)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := textfx.DecodeRequest(r.Body)
	if err != nil {
		s.fail(w, err, true)
		return
	}

	url, err := s.renderer.RenderDataURL(r.Context(), req)
	if err != nil {
		s.fail(w, err, true)
		return
	}
	writeJSON(w, http.StatusOK, renderResponse{Image: url})
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	var req downloadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.fail(w, err, false)
		return
	}
	data, err := intImage.DecodeDataURL(req.Image)
	if err != nil {
		s.fail(w, err, false)
		return
	}

	h := w.Header()
	h.Set("Content-Type", "image/png")
	h.Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": DownloadName}))
	h.Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// fail answers err as JSON. Oversized bodies get 413, everything else 500.
// With trace set the body carries the render stack trace, or the error
// text when there is none.
func (s *Server) fail(w http.ResponseWriter, err error, trace bool) {
	status := http.StatusInternalServerError
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		status = http.StatusRequestEntityTooLarge
	}

	body := errorBody{Error: err.Error()}
	if trace {
		body.Trace = err.Error()
		var re *textfx.RenderError
		if errors.As(err, &re) {
			body.Trace = re.Trace
		}
	}
	s.log.Warn("server: request failed", "status", status, "err", err)
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
