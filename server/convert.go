package server

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/zistal/zistal/auth"
	"github.com/zistal/zistal/convert"
	"github.com/zistal/zistal/kit"
)

// memoryThreshold is how much of a multipart upload is buffered in
// memory before spilling to temp files. The overall request size is
// already capped by shield.MaxRequestBody.
const memoryThreshold = 32 << 20

// handleConvert runs the upload-split-archive pipeline for one request.
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	if auth.GetClaims(r.Context()) == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
		return
	}
	user := kit.GetUser(r.Context())

	if err := r.ParseMultipartForm(memoryThreshold); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Both PDF and Excel files are required."})
		return
	}
	defer r.MultipartForm.RemoveAll()

	pdfFile, pdfHeader, pdfErr := r.FormFile("pdf")
	sheetFile, sheetHeader, sheetErr := r.FormFile("excel")
	if pdfErr != nil || sheetErr != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Both PDF and Excel files are required."})
		return
	}
	defer pdfFile.Close()
	defer sheetFile.Close()

	if !strings.EqualFold(filepath.Ext(pdfHeader.Filename), ".pdf") {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Uploaded file is not a PDF."})
		return
	}
	sheetExt := strings.ToLower(filepath.Ext(sheetHeader.Filename))
	if sheetExt != ".xlsx" && sheetExt != ".xls" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Uploaded file is not an Excel (.xlsx/.xls)."})
		return
	}

	res, err := s.cfg.Converter.Run(r.Context(), convert.Request{
		User:      user,
		PDFName:   pdfHeader.Filename,
		PDF:       pdfFile,
		SheetName: sheetHeader.Filename,
		Sheet:     sheetFile,
	})
	if err != nil {
		s.writeConvertError(w, r, user, err)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", OutputFilename))
	w.Header().Set("Content-Length", strconv.Itoa(len(res.Zip)))
	w.Header().Set("X-Tokens-Remaining", strconv.Itoa(res.Remaining))
	w.WriteHeader(http.StatusOK)
	w.Write(res.Zip)
}

// writeConvertError translates pipeline sentinels into the response
// taxonomy: 403 with a reason code for credit failures, 400 for input
// problems, 500 otherwise.
func (s *Server) writeConvertError(w http.ResponseWriter, r *http.Request, user string, err error) {
	switch {
	case errors.Is(err, convert.ErrNoCredit):
		writeJSON(w, http.StatusForbidden, map[string]string{
			"error":   "no_tokens",
			"message": userMessage(err, convert.ErrNoCredit),
		})
	case errors.Is(err, convert.ErrInsufficientCredit):
		writeJSON(w, http.StatusForbidden, map[string]string{
			"error":   "not_enough_tokens",
			"message": userMessage(err, convert.ErrInsufficientCredit),
		})
	case errors.Is(err, convert.ErrBadInput):
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": userMessage(err, convert.ErrBadInput),
		})
	default:
		s.logger.Error("conversion failed", "user", user, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

// userMessage strips the sentinel prefix from a wrapped pipeline error,
// leaving the human-facing text.
func userMessage(err, sentinel error) string {
	msg := strings.TrimPrefix(err.Error(), sentinel.Error()+": ")
	if msg == sentinel.Error() || msg == "" {
		return strings.TrimPrefix(sentinel.Error(), "convert: ")
	}
	return msg
}
