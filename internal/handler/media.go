// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/wedsite-go/internal/model"
	"github.com/olegiv/wedsite-go/internal/service"
)

// MediaHandler handles media upload and deletion over the JSON API.
type MediaHandler struct {
	media *service.MediaService
}

// NewMediaHandler creates a new media handler.
func NewMediaHandler(media *service.MediaService) *MediaHandler {
	return &MediaHandler{media: media}
}

// Upload handles POST /api/media requests. Expects a multipart form with a
// "file" field and optional "alt_en"/"alt_vi" fields.
func (h *MediaHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(service.MaxUploadSize); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Missing file field")
		return
	}
	defer func() { _ = file.Close() }()

	alt := model.LocalizedText{
		EN: strings.TrimSpace(r.FormValue("alt_en")),
		VI: strings.TrimSpace(r.FormValue("alt_vi")),
	}

	result, err := h.media.Upload(r.Context(), file, header, alt)
	if err != nil {
		slog.Warn("media upload rejected", "filename", header.Filename, "error", err, "category", "media")
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	slog.Info("media uploaded", "uuid", result.Media.UUID,
		"filename", result.Media.Filename, "category", "media")

	variants := make(map[string]string, len(result.Variants))
	for _, v := range result.Variants {
		variants[v.Type] = h.media.URL(result.Media, v.Type)
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"media": map[string]any{
			"uuid":     result.Media.UUID,
			"filename": result.Media.Filename,
			"mime":     result.Media.MimeType,
			"width":    result.Media.Width.Int64,
			"height":   result.Media.Height.Int64,
			"alt":      result.Media.Alt,
			"url":      h.media.URL(result.Media, ""),
		},
		"variants": variants,
	})
}

// Delete handles DELETE /api/media/{uuid} requests.
func (h *MediaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	mediaUUID := chi.URLParam(r, "uuid")
	if mediaUUID == "" {
		respondError(w, http.StatusBadRequest, "Missing media UUID")
		return
	}

	if err := h.media.Delete(r.Context(), mediaUUID); err != nil {
		if err == service.ErrNotFound {
			respondError(w, http.StatusNotFound, "Media not found")
			return
		}
		slog.Error("media delete failed", "uuid", mediaUUID, "error", err, "category", "media")
		respondError(w, http.StatusInternalServerError, "Failed to delete media")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"deleted": mediaUUID})
}
