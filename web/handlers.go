/* handlers.go
 * Request handlers for the tournament and admin routes. Api sentinel errors map
 * onto status codes: NotFound and NotApplicable are 404, Invalid is 400,
 * UpstreamUnavailable is 502, anything else is 500
 */

package web

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/unrolled/render"

	"tak-standings/api/api"
	"tak-standings/api/shared"
)

type handlers struct {
	api    *api.API
	render *render.Render
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, shared.ErrNotFound), errors.Is(err, shared.ErrNotApplicable):
		return http.StatusNotFound
	case errors.Is(err, shared.ErrInvalid):
		return http.StatusBadRequest
	case errors.Is(err, shared.ErrUpstreamUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (h *handlers) renderError(w http.ResponseWriter, err error) {
	log.Println("request failed:", err)
	h.render.JSON(w, statusFor(err), errorResponse{Error: err.Error()})
}

func (h *handlers) listTournaments(w http.ResponseWriter, r *http.Request) {
	ids, err := h.api.ListTournamentIDs(r.Context())
	if err != nil {
		h.renderError(w, err)
		return
	}
	h.render.JSON(w, http.StatusOK, tournamentListResponse{Tournaments: ids})
}

func (h *handlers) getTournament(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	data, err := h.api.GetTournamentData(r.Context(), id)
	if err != nil {
		h.renderError(w, err)
		return
	}

	resp := tournamentResponse{
		ID:      data.ID,
		Name:    data.Info.Name,
		InfoURL: data.Info.InfoURL,
	}
	if data.Status.IsGroupStage() {
		for _, g := range data.Status.Groups {
			resp.Groups = append(resp.Groups, g.Name)
		}
	}
	h.render.JSON(w, http.StatusOK, resp)
}

func (h *handlers) getGroup(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	groupIndex, err := strconv.Atoi(chi.URLParam(r, "groupIndex"))
	if err != nil {
		h.renderError(w, shared.ErrInvalid)
		return
	}

	standings, err := h.api.GetGroupStandings(r.Context(), id, groupIndex)
	if err != nil {
		h.renderError(w, err)
		return
	}

	resp := groupResponse{
		TournamentID: id,
		Index:        groupIndex,
		Name:         standings.Group.Name,
		WinnerMethod: standings.Group.WinnerMethod,
	}
	if len(standings.Group.Winner) == 1 {
		resp.Winner = standings.Group.Winner[0]
	} else if len(standings.Group.Winner) > 1 {
		resp.TiedWinners = standings.Group.Winner
	}
	for _, p := range standings.Players {
		resp.Players = append(resp.Players, rankedPlayer{
			StatusPlayer: p,
			Rank:         standings.Ranks[p.Username],
		})
	}
	h.render.JSON(w, http.StatusOK, resp)
}

func (h *handlers) getGroupPlayer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	username := chi.URLParam(r, "username")
	groupIndex, err := strconv.Atoi(chi.URLParam(r, "groupIndex"))
	if err != nil {
		h.renderError(w, shared.ErrInvalid)
		return
	}

	matchups, err := h.api.GetPlayerMatchups(r.Context(), id, groupIndex, username)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			// Suggest close usernames on a miss.
			suggestions, serr := h.api.SearchPlayers(r.Context(), id, username)
			if serr == nil && len(suggestions) > 0 {
				h.render.JSON(w, http.StatusNotFound, errorResponse{
					Error:       err.Error(),
					Suggestions: suggestions,
				})
				return
			}
		}
		h.renderError(w, err)
		return
	}

	h.render.JSON(w, http.StatusOK, playerResponse{
		TournamentID: id,
		GroupIndex:   groupIndex,
		Player:       matchups.Player,
		Rank:         matchups.Rank,
		Games:        matchups.Games,
		Matchups:     matchups.Matchups,
	})
}

// region admin handlers

func (h *handlers) adminListTournaments(w http.ResponseWriter, r *http.Request) {
	ids, err := h.api.ListTournamentIDs(r.Context())
	if err != nil {
		h.renderError(w, err)
		return
	}
	h.render.JSON(w, http.StatusOK, tournamentListResponse{Tournaments: ids})
}

func (h *handlers) adminSaveTournament(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		h.renderError(w, shared.ErrInvalid)
		return
	}

	if err := h.api.SaveTournamentInfo(r.Context(), id, body); err != nil {
		h.renderError(w, err)
		return
	}
	h.render.JSON(w, http.StatusOK, saveResponse{ID: id, Saved: true})
}

func (h *handlers) adminCopyTournament(w http.ResponseWriter, r *http.Request) {
	src := chi.URLParam(r, "id")
	dst := chi.URLParam(r, "newID")

	if err := h.api.CopyTournament(r.Context(), src, dst); err != nil {
		h.renderError(w, err)
		return
	}
	h.render.JSON(w, http.StatusOK, copyResponse{Source: src, Destination: dst, Copied: true})
}

// endregion
