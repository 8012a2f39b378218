package controllers

import (
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mymenu/mymenu/app/services"
	"github.com/mymenu/mymenu/pkg/bind"
	"github.com/mymenu/mymenu/pkg/logger"
	"github.com/mymenu/mymenu/pkg/response"
	"github.com/mymenu/mymenu/pkg/storage"
)

// UploadController stores dish and restaurant images on the default storage
// disk and returns their public URL.
type UploadController struct {
	sessions *services.SessionService
}

func NewUploadController(sessions *services.SessionService) *UploadController {
	return &UploadController{sessions: sessions}
}

// Store handles POST /api/uploads. Accepts either multipart form data with a
// "file" field or a JSON body {"filename": ..., "data": ...} where data is
// base64, optionally a data URI.
func (c *UploadController) Store(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r, c.sessions)
	if !ok {
		return
	}

	var (
		filename string
		content  []byte
	)

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(8 << 20); err != nil {
			response.BadRequest(w, "Invalid multipart form")
			return
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			response.BadRequest(w, "Missing file field")
			return
		}
		defer file.Close()

		buf, err := io.ReadAll(file)
		if err != nil {
			response.BadRequest(w, "Failed to read file")
			return
		}
		filename = header.Filename
		content = buf
	} else {
		var body struct {
			Filename string `json:"filename" validate:"required,max=255"`
			Data     string `json:"data" validate:"required"`
		}
		if err := bind.JSON(r, &body); err != nil {
			response.BadRequest(w, err.Error())
			return
		}

		data := body.Data
		// Strip a data-URI prefix like "data:image/png;base64,".
		if idx := strings.Index(data, ","); strings.HasPrefix(data, "data:") && idx >= 0 {
			data = data[idx+1:]
		}
		decoded, err := base64.StdEncoding.DecodeString(data)
		if err != nil {
			response.BadRequest(w, "Invalid base64 data")
			return
		}
		filename = body.Filename
		content = decoded
	}

	if len(content) == 0 {
		response.BadRequest(w, "Empty file")
		return
	}

	path := fmt.Sprintf("uploads/%s/%d-%s-%s",
		user.ID, time.Now().Unix(), uuid.NewString()[:8], sanitizeFilename(filename))
	if err := storage.Put(path, content); err != nil {
		logger.WithCtx(r.Context()).Error("upload failed", "error", err)
		response.Internal(w, "Failed to store file")
		return
	}
	response.OK(w, map[string]string{"url": storage.URL(path)})
}

// sanitizeFilename reduces a client-supplied name to a safe basename.
// Traversal sequences and path separators cannot survive.
func sanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '-' || r == '_':
			return r
		default:
			return '_'
		}
	}, name)
	name = strings.Trim(name, ".")
	if name == "" {
		name = "file"
	}
	return name
}
