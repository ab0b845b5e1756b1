package handlers

import (
	"crypto/sha256"
	"embed"
	"encoding/hex"
	"fmt"
	"io/fs"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/rs/zerolog"

	"github.com/belphemur/jalaali-picker/internal/logging"
)

// StylesheetAsset is the picker stylesheet, relative to /static/.
const StylesheetAsset = "css/picker.css"

const (
	revalidateCacheControl = "public, max-age=43200, must-revalidate"
	immutableCacheControl  = "public, max-age=31536000, immutable"
)

//go:embed assets
var assetsFS embed.FS

type staticAsset struct {
	content     []byte
	contentType string
	version     string // first 16 hex digits of the SHA-256
	etag        string // quoted full SHA-256
}

// StaticHandler serves the embedded assets under /static/. Every asset is
// hashed once at startup; pages link to it with ?v=<version>, and such
// versioned requests are cached as immutable.
type StaticHandler struct {
	logger zerolog.Logger
	assets map[string]staticAsset
}

// NewStaticHandler loads and hashes every embedded asset
func NewStaticHandler() (*StaticHandler, error) {
	logger := logging.GetLogger("static-handler")
	assets := make(map[string]staticAsset)

	err := fs.WalkDir(assetsFS, "assets", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		content, err := assetsFS.ReadFile(p)
		if err != nil {
			return err
		}

		sum := sha256.Sum256(content)
		digest := hex.EncodeToString(sum[:])
		contentType := mime.TypeByExtension(path.Ext(p))
		if contentType == "" {
			contentType = "application/octet-stream"
		}

		name := strings.TrimPrefix(p, "assets/")
		assets[name] = staticAsset{
			content:     content,
			contentType: contentType,
			version:     digest[:16],
			etag:        `"` + digest + `"`,
		}
		logger.Debug().Str("asset", name).Int("content_size", len(content)).Msg("Cached static asset")
		return nil
	})
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load embedded assets")
		return nil, fmt.Errorf("failed to load static assets: %w", err)
	}
	if _, ok := assets[StylesheetAsset]; !ok {
		return nil, fmt.Errorf("static asset %s is missing", StylesheetAsset)
	}

	return &StaticHandler{logger: logger, assets: assets}, nil
}

// RegisterRoutes registers static asset routes
func (h *StaticHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /static/{path...}", h.serveAsset)
}

// AssetVersion returns the cache-busting version of an asset, or "" when unknown
func (h *StaticHandler) AssetVersion(name string) string {
	return h.assets[name].version
}

func (h *StaticHandler) serveAsset(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("path")
	asset, ok := h.assets[name]
	if !ok {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("ETag", asset.etag)
	if r.URL.Query().Get("v") == asset.version {
		w.Header().Set("Cache-Control", immutableCacheControl)
	} else {
		w.Header().Set("Cache-Control", revalidateCacheControl)
	}

	if ifNoneMatch := r.Header.Get("If-None-Match"); ifNoneMatch != "" && etagMatches(ifNoneMatch, asset.etag) {
		h.logger.Debug().Str("asset", name).Msg("ETag matches, returning 304 Not Modified")
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", asset.contentType)
	if _, err := w.Write(asset.content); err != nil {
		h.logger.Error().Err(err).Str("asset", name).Msg("Failed to write response")
	}
}

// etagMatches applies the weak comparison of If-None-Match (RFC 7232 3.2)
func etagMatches(header, etag string) bool {
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}
