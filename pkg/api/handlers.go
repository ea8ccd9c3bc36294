package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/sketchify/sketchify/pkg/buildinfo"
	serrors "github.com/sketchify/sketchify/pkg/errors"
	pkgio "github.com/sketchify/sketchify/pkg/io"
	"github.com/sketchify/sketchify/pkg/params"
	"github.com/sketchify/sketchify/pkg/pipeline"
	"github.com/sketchify/sketchify/pkg/remote"
)

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Version: buildinfo.Version})
}

type styleEntry struct {
	ID          string `json:"id"`
	Family      string `json:"family"`
	Description string `json:"description"`
}

type stylesResponse struct {
	Styles   []styleEntry `json:"styles"`
	Media    []string     `json:"media"`
	Brushes  []string     `json:"brushes"`
	Textures []string     `json:"textures"`
}

func (s *Server) handleStyles(w http.ResponseWriter, r *http.Request) {
	resp := stylesResponse{
		Media:    stringsOf(params.Media),
		Brushes:  stringsOf(params.Brushes),
		Textures: stringsOf(params.Textures),
	}
	for _, st := range params.Styles {
		resp.Styles = append(resp.Styles, styleEntry{
			ID:          string(st.ID),
			Family:      string(st.Family),
			Description: st.Description,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUpload)
	if err := r.ParseMultipartForm(s.cfg.MaxUpload); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			writeError(w, r, http.StatusRequestEntityTooLarge, string(serrors.ErrCodeInvalidInput),
				"upload exceeds "+strconv.FormatInt(s.cfg.MaxUpload, 10)+" bytes")
			return
		}
		s.fail(w, r, serrors.Wrap(serrors.ErrCodeInvalidInput, err, "parse multipart form"))
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile(remote.FieldFile)
	if err != nil {
		s.fail(w, r, serrors.New(serrors.ErrCodeInvalidInput, "no file provided"))
		return
	}
	defer file.Close()
	if err := serrors.ValidateUploadName(header.Filename); err != nil {
		s.fail(w, r, err)
		return
	}
	src, err := io.ReadAll(file)
	if err != nil {
		s.fail(w, r, serrors.Wrap(serrors.ErrCodeInvalidInput, err, "read upload"))
		return
	}

	p, sizing, err := remote.ParseFields(r.FormValue)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.RenderTimeout)
	defer cancel()
	res, err := s.runner.Execute(ctx, src, pipeline.Options{
		Params:       p,
		Resolution:   sizing.Resolution,
		Aspect:       sizing.Aspect,
		MaxDimension: s.cfg.MaxDimension,
		Format:       pkgio.FormatPNG,
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			err = serrors.Wrap(serrors.ErrCodeTimeout, err, "render timed out")
		}
		s.fail(w, r, err)
		return
	}

	cacheState := "MISS"
	if res.CacheInfo.Hit {
		cacheState = "HIT"
	}
	h := w.Header()
	h.Set("Content-Type", res.Format.ContentType())
	h.Set("Content-Length", strconv.Itoa(len(res.Data)))
	h.Set("X-Cache", cacheState)
	h.Set("X-Seed", strconv.FormatUint(uint64(res.Stats.Seed), 10))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Data)
}

type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

// fail writes err as a JSON error with the status derived from its code.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := serrors.HTTPStatus(err)
	code := string(serrors.GetCode(err))
	if code == "" {
		code = string(serrors.ErrCodeInternal)
	}
	if status >= 500 {
		s.logger.Error("render failed", "err", err, "id", RequestID(r.Context()))
	}
	writeError(w, r, status, code, serrors.UserMessage(err))
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, msg string) {
	writeJSON(w, status, errorResponse{Error: msg, Code: code, RequestID: RequestID(r.Context())})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func stringsOf[T ~string](vs []T) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = string(v)
	}
	return out
}
