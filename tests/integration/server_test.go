package integration

import (
	"encoding/json"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/linkdecklabs/linkdeck/pkg/types"
)

// fakeServer is an in-memory stand-in for the linkdeck API, close enough
// for end-to-end client tests: JWT bearer auth, per-user link collections
// kept in display order, and click tracking.
type fakeServer struct {
	mu        sync.Mutex
	secret    []byte
	users     map[string]types.User // keyed by email
	passwords map[string]string     // keyed by email
	links     []types.Link          // display order
	events    []types.Analytics

	// listCalls counts GET /links hits so tests can assert on cache
	// behavior.
	listCalls int
}

func newFakeServer() *fakeServer {
	return &fakeServer{
		secret:    []byte("integration-secret"),
		users:     make(map[string]types.User),
		passwords: make(map[string]string),
	}
}

func (f *fakeServer) ListCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls
}

func (f *fakeServer) mintToken(userID string, ttl time.Duration) string {
	claims := jwt.MapClaims{
		"sub": userID,
		"exp": time.Now().Add(ttl).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(f.secret)
	if err != nil {
		panic(err)
	}
	return signed
}

// authedUser resolves the bearer token to a user. Second return is false
// when the token is missing, invalid or expired.
func (f *fakeServer) authedUser(r *http.Request) (types.User, bool) {
	header := r.Header.Get("Authorization")
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return types.User{}, false
	}
	parsed, err := jwt.Parse(raw, func(*jwt.Token) (any, error) { return f.secret, nil },
		jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !parsed.Valid {
		return types.User{}, false
	}
	sub, err := parsed.Claims.GetSubject()
	if err != nil {
		return types.User{}, false
	}
	for _, u := range f.users {
		if u.ID == sub {
			return u, true
		}
	}
	return types.User{}, false
}

func (f *fakeServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	path, method := r.URL.Path, r.Method
	switch {
	case method == http.MethodPost && path == "/auth/register":
		f.handleRegister(w, r)
	case method == http.MethodPost && path == "/auth/login":
		f.handleLogin(w, r)
	case method == http.MethodGet && path == "/links":
		f.handleListLinks(w, r)
	case method == http.MethodPost && path == "/links":
		f.handleCreateLink(w, r)
	case method == http.MethodPatch && path == "/links/reorder":
		f.handleReorder(w, r)
	case method == http.MethodPatch && strings.HasPrefix(path, "/links/"):
		f.handleUpdateLink(w, r, strings.TrimPrefix(path, "/links/"))
	case method == http.MethodDelete && strings.HasPrefix(path, "/links/"):
		f.handleDeleteLink(w, r, strings.TrimPrefix(path, "/links/"))
	case method == http.MethodGet && path == "/users/me":
		f.handleMe(w, r)
	case method == http.MethodPatch && path == "/users/me":
		f.handleUpdateMe(w, r)
	case method == http.MethodGet && path == "/dashboard/stats":
		f.handleStats(w, r)
	case method == http.MethodGet && path == "/dashboard/activity":
		f.handleActivity(w, r)
	case method == http.MethodGet && strings.HasPrefix(path, "/public/profile/"):
		f.handleProfile(w, strings.TrimPrefix(path, "/public/profile/"))
	case method == http.MethodPost && strings.HasPrefix(path, "/public/link/") && strings.HasSuffix(path, "/click"):
		id := strings.TrimSuffix(strings.TrimPrefix(path, "/public/link/"), "/click")
		f.handleClick(w, id)
	case method == http.MethodGet && path == "/public/search":
		f.handleSearch(w, r)
	default:
		writeError(w, http.StatusNotFound, "Not found")
	}
}

func (f *fakeServer) handleRegister(w http.ResponseWriter, r *http.Request) {
	var form struct {
		Email    string `json:"email"`
		Username string `json:"username"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		writeError(w, http.StatusBadRequest, "Malformed body")
		return
	}
	if _, exists := f.users[form.Email]; exists {
		writeError(w, http.StatusConflict, "Email already registered")
		return
	}
	for _, u := range f.users {
		if u.Username == form.Username {
			writeError(w, http.StatusConflict, "Username taken")
			return
		}
	}
	user := types.User{
		ID:        uuid.NewString(),
		Email:     form.Email,
		Username:  form.Username,
		Name:      form.Name,
		CreatedAt: time.Now(),
	}
	f.users[form.Email] = user
	f.passwords[form.Email] = form.Password
	writeJSON(w, http.StatusCreated, types.AuthResponse{
		AccessToken: f.mintToken(user.ID, time.Hour),
		User:        user,
	})
}

func (f *fakeServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	var form struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		writeError(w, http.StatusBadRequest, "Malformed body")
		return
	}
	user, ok := f.users[form.Email]
	if !ok || f.passwords[form.Email] != form.Password {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	writeJSON(w, http.StatusOK, types.AuthResponse{
		AccessToken: f.mintToken(user.ID, time.Hour),
		User:        user,
	})
}

func (f *fakeServer) handleListLinks(w http.ResponseWriter, r *http.Request) {
	user, ok := f.authedUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	f.listCalls++
	includeInactive := r.URL.Query().Get("includeInactive") == "true"
	out := make([]types.Link, 0)
	for _, l := range f.links {
		if l.UserID != user.ID {
			continue
		}
		if !includeInactive && !l.IsActive {
			continue
		}
		out = append(out, l)
	}
	writeJSON(w, http.StatusOK, out)
}

func (f *fakeServer) handleCreateLink(w http.ResponseWriter, r *http.Request) {
	user, ok := f.authedUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var draft types.LinkDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeError(w, http.StatusBadRequest, "Malformed body")
		return
	}
	if draft.Title == "" || draft.URL == "" {
		writeError(w, http.StatusBadRequest, "Title and URL are required")
		return
	}
	now := time.Now()
	link := types.Link{
		ID:          uuid.NewString(),
		Title:       draft.Title,
		URL:         draft.URL,
		Description: draft.Description,
		Icon:        draft.Icon,
		Color:       draft.Color,
		Position:    len(f.links),
		IsActive:    true,
		UserID:      user.ID,
		CreatedAt:   now,
		UpdatedAt:   &now,
	}
	f.links = append(f.links, link)
	writeJSON(w, http.StatusCreated, link)
}

func (f *fakeServer) handleUpdateLink(w http.ResponseWriter, r *http.Request, id string) {
	user, ok := f.authedUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var patch types.LinkPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "Malformed body")
		return
	}
	for i := range f.links {
		if f.links[i].ID != id || f.links[i].UserID != user.ID {
			continue
		}
		l := &f.links[i]
		if patch.Title != nil {
			l.Title = *patch.Title
		}
		if patch.URL != nil {
			l.URL = *patch.URL
		}
		if patch.Description != nil {
			l.Description = *patch.Description
		}
		if patch.Icon != nil {
			l.Icon = *patch.Icon
		}
		if patch.Color != nil {
			l.Color = *patch.Color
		}
		if patch.IsActive != nil {
			l.IsActive = *patch.IsActive
		}
		touched := time.Now()
		l.UpdatedAt = &touched
		writeJSON(w, http.StatusOK, *l)
		return
	}
	writeError(w, http.StatusNotFound, "Link not found")
}

func (f *fakeServer) handleDeleteLink(w http.ResponseWriter, r *http.Request, id string) {
	user, ok := f.authedUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	for i := range f.links {
		if f.links[i].ID == id && f.links[i].UserID == user.ID {
			f.links = append(f.links[:i], f.links[i+1:]...)
			f.renumber()
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeError(w, http.StatusNotFound, "Link not found")
}

// handleReorder re-splices the submitted subset: the named links take the
// positions the subset occupied, in the submitted order, while everything
// else keeps its slot.
func (f *fakeServer) handleReorder(w http.ResponseWriter, r *http.Request) {
	user, ok := f.authedUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var body struct {
		LinkIDs []string `json:"linkIds"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Malformed body")
		return
	}

	indexByID := make(map[string]int, len(f.links))
	for i, l := range f.links {
		indexByID[l.ID] = i
	}
	slots := make([]int, 0, len(body.LinkIDs))
	for _, id := range body.LinkIDs {
		i, ok := indexByID[id]
		if !ok || f.links[i].UserID != user.ID {
			writeError(w, http.StatusBadRequest, "Unknown link in order")
			return
		}
		slots = append(slots, i)
	}
	sort.Ints(slots)

	reordered := make([]types.Link, len(f.links))
	copy(reordered, f.links)
	for n, id := range body.LinkIDs {
		reordered[slots[n]] = f.links[indexByID[id]]
	}
	f.links = reordered
	f.renumber()
	w.WriteHeader(http.StatusNoContent)
}

func (f *fakeServer) renumber() {
	for i := range f.links {
		f.links[i].Position = i
	}
}

func (f *fakeServer) handleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := f.authedUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (f *fakeServer) handleUpdateMe(w http.ResponseWriter, r *http.Request) {
	user, ok := f.authedUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var patch types.UserPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "Malformed body")
		return
	}
	if patch.Name != nil {
		user.Name = *patch.Name
	}
	if patch.Bio != nil {
		user.Bio = *patch.Bio
	}
	if patch.Avatar != nil {
		user.Avatar = *patch.Avatar
	}
	if patch.Theme != nil {
		user.Theme = *patch.Theme
	}
	f.users[user.Email] = user
	writeJSON(w, http.StatusOK, user)
}

func (f *fakeServer) handleStats(w http.ResponseWriter, r *http.Request) {
	user, ok := f.authedUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var stats types.DashboardStats
	for _, l := range f.links {
		if l.UserID != user.ID {
			continue
		}
		stats.TotalLinks++
		if l.IsActive {
			stats.ActiveLinks++
		}
		stats.TotalClicks += l.Clicks
		if l.Clicks > 0 {
			stats.TopLinks = append(stats.TopLinks, types.TopLink{
				ID: l.ID, Title: l.Title, Clicks: l.Clicks, Icon: l.Icon, Color: l.Color,
			})
		}
	}
	sort.Slice(stats.TopLinks, func(i, j int) bool {
		return stats.TopLinks[i].Clicks > stats.TopLinks[j].Clicks
	})
	writeJSON(w, http.StatusOK, stats)
}

func (f *fakeServer) handleActivity(w http.ResponseWriter, r *http.Request) {
	if _, ok := f.authedUser(r); !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	events := f.events
	if limit > 0 && limit < len(events) {
		events = events[len(events)-limit:]
	}
	writeJSON(w, http.StatusOK, events)
}

func (f *fakeServer) handleProfile(w http.ResponseWriter, username string) {
	for _, u := range f.users {
		if u.Username != username {
			continue
		}
		profile := types.PublicProfile{
			ID:       u.ID,
			Username: u.Username,
			Name:     u.Name,
			Bio:      u.Bio,
			Avatar:   u.Avatar,
			Theme:    u.Theme,
			Links:    make([]types.Link, 0),
		}
		for _, l := range f.links {
			if l.UserID == u.ID && l.IsActive {
				profile.Links = append(profile.Links, l)
			}
		}
		writeJSON(w, http.StatusOK, profile)
		return
	}
	writeError(w, http.StatusNotFound, "Profile not found")
}

func (f *fakeServer) handleClick(w http.ResponseWriter, id string) {
	for i := range f.links {
		if f.links[i].ID != id {
			continue
		}
		f.links[i].Clicks++
		f.events = append(f.events, types.Analytics{
			ID:        uuid.NewString(),
			Event:     types.EventClick,
			LinkID:    id,
			CreatedAt: time.Now(),
		})
		writeJSON(w, http.StatusOK, types.ClickResult{URL: f.links[i].URL, Title: f.links[i].Title})
		return
	}
	writeError(w, http.StatusNotFound, "Link not found")
}

func (f *fakeServer) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := strings.ToLower(r.URL.Query().Get("q"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	hits := make([]types.ProfileHit, 0)
	for _, u := range f.users {
		if !strings.Contains(strings.ToLower(u.Username), q) &&
			!strings.Contains(strings.ToLower(u.Name), q) {
			continue
		}
		hit := types.ProfileHit{ID: u.ID, Username: u.Username, Name: u.Name, Bio: u.Bio}
		for _, l := range f.links {
			if l.UserID == u.ID && l.IsActive {
				hit.Count.Links++
			}
		}
		hits = append(hits, hit)
		if limit > 0 && len(hits) >= limit {
			break
		}
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].Username < hits[j].Username })
	writeJSON(w, http.StatusOK, hits)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"statusCode": status, "message": message})
}
