package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/radieske/casino-platform-poc/internal/live-feed-service/cache"
	"github.com/radieske/casino-platform-poc/internal/live-feed-service/dto"
	"github.com/radieske/casino-platform-poc/internal/live-feed-service/repo"
)

// API expõe os endpoints REST de consulta do feed de liquidações
// Utiliza um repositório de leitura (Postgres) e cache (Redis)
type API struct {
	ReadRepo *repo.ReadRepo // acesso ao banco de dados
	Cache    *cache.Cache   // cache do feed recente
}

// Router retorna o roteador HTTP com os endpoints REST
func (a *API) Router() http.Handler {
	r := chi.NewRouter()
	r.Get("/v1/feed/recent", a.listRecent)              // Últimas liquidações (todos os jogos)
	r.Get("/v1/feed/recent/{game}", a.listRecentByGame) // Últimas liquidações de um jogo
	return r
}

// writeJSON serializa a resposta em JSON e define o status HTTP
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func limitParam(r *http.Request) int {
	n, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if n <= 0 || n > 100 {
		return 20
	}
	return n
}

// listRecent retorna as últimas liquidações, preferencialmente do cache
func (a *API) listRecent(w http.ResponseWriter, r *http.Request) {
	var fromCache []dto.Settlement
	if ok, _ := a.Cache.GetRecent(r.Context(), "", &fromCache); ok {
		writeJSON(w, http.StatusOK, fromCache)
		return
	}

	out, err := a.ReadRepo.ListRecent(r.Context(), limitParam(r))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	_ = a.Cache.SetRecent(r.Context(), "", out, 5*time.Second) // feed muda rápido, TTL curto
	writeJSON(w, http.StatusOK, out)
}

// listRecentByGame retorna as últimas liquidações de um jogo
func (a *API) listRecentByGame(w http.ResponseWriter, r *http.Request) {
	game := chi.URLParam(r, "game")

	var fromCache []dto.Settlement
	if ok, _ := a.Cache.GetRecent(r.Context(), game, &fromCache); ok {
		writeJSON(w, http.StatusOK, fromCache)
		return
	}

	out, err := a.ReadRepo.ListRecentByGame(r.Context(), game, limitParam(r))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	_ = a.Cache.SetRecent(r.Context(), game, out, 5*time.Second)
	writeJSON(w, http.StatusOK, out)
}
