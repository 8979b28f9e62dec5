package server

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	"CastleWardrobe/internal/catalog"
	. "CastleWardrobe/internal/game"
	"CastleWardrobe/internal/story"

	"go.opentelemetry.io/otel"
)

//go:generate go run ./cmd/webbuild

var tracer = otel.Tracer("CastleWardrobe/internal/server")

const shutdownTimeout = 5 * time.Second

/* ------------------------------ Embeds ------------------------------ */

//go:embed web/index.html
var htmlIndex []byte

//go:embed web/client.js
var jsClient []byte

/* ------------------------------- HTTP ------------------------------- */

// App is the HTTP surface around a Hub.
type App struct {
	Hub          *Hub
	Presentation Presentation
	AssetsDir    string
}

// Handler builds the request router.
func (a *App) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(htmlIndex)
	})
	mux.HandleFunc("GET /client.js", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
		_, _ = w.Write(jsClient)
	})
	if a.AssetsDir != "" {
		mux.Handle("GET /assets/", http.StripPrefix("/assets/", http.FileServer(http.Dir(a.AssetsDir))))
	}
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "sessions": a.Hub.Len()})
	})
	mux.HandleFunc("GET /api/config", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, a.Presentation)
	})
	mux.HandleFunc("GET /api/scenes", a.handleScenes)
	mux.HandleFunc("GET /api/sessions/{id}", a.handleSession)
	mux.HandleFunc("GET /api/characters/{id}/outfits", a.handleOutfits)
	mux.HandleFunc("GET /api/characters/{id}/categories", a.handleCategories)
	mux.HandleFunc("GET /api/dialogue", a.handleDialogue)
	mux.HandleFunc("GET /ws", a.serveWS)
	return mux
}

func (a *App) store() *catalog.Store { return a.Hub.Content.Store }

func (a *App) handleScenes(w http.ResponseWriter, r *http.Request) {
	scenes := []sceneDTO{}
	for _, s := range a.store().UnlockedScenes() {
		scenes = append(scenes, toSceneDTO(s))
	}
	writeJSON(w, http.StatusOK, scenes)
}

// handleSession returns the state of an existing session without creating one.
func (a *App) handleSession(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	sess := a.Hub.Lookup(id)
	if sess == nil {
		writeError(w, http.StatusNotFound, "unknown session: "+id)
		return
	}
	writeJSON(w, http.StatusOK, toStateDTO(sess.View()))
}

func (a *App) handleOutfits(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if a.store().CharacterByID(id) == nil {
		writeError(w, http.StatusNotFound, "unknown character: "+id)
		return
	}
	category := r.URL.Query().Get("category")
	if category == "" {
		category = story.CategoryAll
	}
	outfits := a.Hub.Content.Wardrobe.OutfitsByCategory(id, category)
	writeJSON(w, http.StatusOK, toOutfitDTOs(outfits))
}

func (a *App) handleCategories(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if a.store().CharacterByID(id) == nil {
		writeError(w, http.StatusNotFound, "unknown character: "+id)
		return
	}
	writeJSON(w, http.StatusOK, toCategoryDTOs(a.Hub.Content.Wardrobe.CategoriesForCharacter(id)))
}

func (a *App) handleDialogue(w http.ResponseWriter, r *http.Request) {
	_, span := tracer.Start(r.Context(), "http.dialogue")
	defer span.End()

	q := r.URL.Query()
	scene, character := q.Get("scene"), q.Get("character")
	if scene == "" || character == "" {
		writeError(w, http.StatusBadRequest, "scene and character are required")
		return
	}
	if a.store().SceneByID(scene) == nil {
		writeError(w, http.StatusNotFound, "unknown scene: "+scene)
		return
	}
	lines := a.Hub.Content.Dialogue.Lines(scene, character, func(id string) string {
		return a.store().CharacterName(id, SpeakerFallbackName)
	})
	writeJSON(w, http.StatusOK, lines)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[http] encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorDTO{Message: msg})
}

// startServer listens on addr until ctx is done, then shuts down gracefully.
func startServer(ctx context.Context, a *App, addr string) error {
	if a.AssetsDir != "" {
		if _, err := os.Stat(a.AssetsDir); err != nil {
			log.Printf("[http] assets dir %s unavailable: %v", a.AssetsDir, err)
		}
	}
	srv := &http.Server{Addr: addr, Handler: a.Handler()}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	log.Printf("[http] shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
