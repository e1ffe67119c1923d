package web

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	accountModel "unispattes/internal/domains/account/model"
	accountService "unispattes/internal/domains/account/service"
	adoptionModel "unispattes/internal/domains/adoption/model"
	adoptionService "unispattes/internal/domains/adoption/service"
	animalModel "unispattes/internal/domains/animal/model"
	animalService "unispattes/internal/domains/animal/service"
	"unispattes/internal/shared/middleware"
	"unispattes/internal/shared/session"
	"unispattes/pkg/cache"
	"unispattes/pkg/jwt"
)

// Fakes embed the service interfaces and override only what the pages call.

type fakeAnimals struct {
	animalService.ServiceInterface
	byID map[int64]*animalModel.Animal
}

func (f *fakeAnimals) ListRecent(_ context.Context, n int) ([]*animalModel.Animal, error) {
	var out []*animalModel.Animal
	for id := int64(100); id > 0 && len(out) < n; id-- {
		if a, ok := f.byID[id]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAnimals) List(_ context.Context, _ animalModel.ListFilter) ([]*animalModel.Animal, int, error) {
	out := make([]*animalModel.Animal, 0, len(f.byID))
	for _, a := range f.byID {
		out = append(out, a)
	}
	return out, len(out), nil
}

func (f *fakeAnimals) Get(_ context.Context, id int64) (*animalModel.Animal, error) {
	a, ok := f.byID[id]
	if !ok {
		return nil, animalModel.NewAnimalNotFoundError()
	}
	return a, nil
}

func (f *fakeAnimals) PhotoURL(*animalModel.Animal) string { return "" }

type fakeAdoptions struct {
	adoptionService.ServiceInterface
	animals *fakeAnimals
	created []*adoptionModel.AdoptionRequest
}

func (f *fakeAdoptions) Submit(ctx context.Context, animalID int64, accountID *int64, req adoptionModel.SubmitRequest) (*adoptionModel.AdoptionRequest, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	animal, err := f.animals.Get(ctx, animalID)
	if err != nil {
		return nil, err
	}
	for _, r := range f.created {
		if r.AnimalID == animalID && r.Email == req.Email {
			return nil, adoptionModel.NewAlreadyRequestedError()
		}
	}
	r := req.ToAdoptionRequest(animalID, accountID)
	r.ID = int64(len(f.created) + 1)
	r.AnimalName = animal.Name
	r.Status = adoptionModel.StatusPending
	r.RequestedAt = time.Now()
	f.created = append(f.created, r)
	return r, nil
}

func (f *fakeAdoptions) ListByAccount(_ context.Context, accountID int64) ([]*adoptionModel.AdoptionRequest, error) {
	var out []*adoptionModel.AdoptionRequest
	for _, r := range f.created {
		if r.AccountID != nil && *r.AccountID == accountID {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeAccounts struct {
	accountService.ServiceInterface
	emails map[string]bool
}

func (f *fakeAccounts) Register(_ context.Context, req accountModel.RegisterRequest) (*accountModel.Account, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if f.emails[req.Email] {
		return nil, validation.Errors{"email": errors.New(accountModel.MsgEmailExists)}
	}
	f.emails[req.Email] = true
	return &accountModel.Account{ID: 1, Email: req.Email, FirstName: req.FirstName}, nil
}

func (f *fakeAccounts) Login(_ context.Context, req accountModel.LoginRequest, _ string) (*accountModel.Account, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.Email == "alice@example.com" && req.Password == "motdepasse" {
		return &accountModel.Account{ID: 1, Email: req.Email}, nil
	}
	if req.Email == "locked@example.com" && req.Password == "motdepasse" {
		return nil, accountModel.NewAccountLockedError()
	}
	return nil, accountModel.NewInvalidCredentialsError()
}

func (f *fakeAccounts) Get(_ context.Context, id int64) (*accountModel.Account, error) {
	if id != 1 {
		return nil, accountModel.NewAccountNotFoundError()
	}
	return &accountModel.Account{ID: 1, Email: "alice@example.com", FirstName: "Alice", LastName: "Martin"}, nil
}

type testSite struct {
	router    *gin.Engine
	adoptions *fakeAdoptions
}

func newTestSite(t *testing.T) *testSite {
	t.Helper()
	gin.SetMode(gin.TestMode)

	animals := &fakeAnimals{byID: map[int64]*animalModel.Animal{}}
	for i, name := range []string{"Mina", "Felix", "Bella", "Oscar", "Luna", "Nala", "Rex"} {
		id := int64(i + 1)
		animals.byID[id] = &animalModel.Animal{
			ID: id, Name: name, Species: animalModel.SpeciesDog, Sex: animalModel.SexMale,
			AgeCategory: animalModel.AgeAdult, AgeYears: 3, Available: true,
			ArrivedAt: time.Date(2024, 1, i+1, 0, 0, 0, 0, time.UTC),
		}
	}
	adoptions := &fakeAdoptions{animals: animals}
	accounts := &fakeAccounts{emails: map[string]bool{"alice@example.com": true}}

	sessions := session.NewManager(
		session.NewCacheStore(cache.NewMemoryCache()),
		jwt.NewManager("test-secret", "unispattes"),
		session.Options{TTL: time.Hour},
	)
	loader := func(ctx context.Context, id int64) (*session.Principal, error) {
		a, err := accounts.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		return &session.Principal{AccountID: a.ID, Email: a.Email, FirstName: a.FirstName, LastName: a.LastName}, nil
	}

	renderer, err := NewRenderer("")
	require.NoError(t, err)

	h := NewHandler(animals, adoptions, accounts, sessions)
	r := gin.New()
	r.HTMLRender = renderer
	r.Use(middleware.RequestID(), middleware.Recovery(h.RenderError), middleware.LoadSession(sessions, loader))
	r.GET("/login-as/1", func(c *gin.Context) {
		require.NoError(t, sessions.Start(c, 1))
		c.Status(http.StatusOK)
	})
	h.RegisterRoutes(r)
	r.NoRoute(h.NotFound)

	return &testSite{router: r, adoptions: adoptions}
}

func (s *testSite) do(method, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for _, ck := range cookies {
		if ck != nil {
			req.AddCookie(ck)
		}
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testSite) signIn(t *testing.T) *http.Cookie {
	t.Helper()
	ck := cookieNamed(s.do(http.MethodGet, "/login-as/1", nil), "unispattes_session")
	require.NotNil(t, ck)
	return ck
}

func cookieNamed(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, ck := range w.Result().Cookies() {
		if ck.Name == name {
			return ck
		}
	}
	return nil
}

func validIntake() url.Values {
	return url.Values{
		"nom_complet":     {"Alice Martin"},
		"email":           {"alice@example.com"},
		"telephone":       {"0601020304"},
		"type_logement":   {"maison_jardin"},
		"statut_logement": {"proprietaire"},
		"superficie":      {"95,5"},
		"a_jardin":        {"true"},
		"motivation":      {"Grand jardin et beaucoup de temps."},
	}
}

func TestHome_ShowsThreeNewestAnimals(t *testing.T) {
	site := newTestSite(t)

	w := site.do(http.MethodGet, "/", nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `/animal/7/`)
	assert.Contains(t, body, `/animal/6/`)
	assert.Contains(t, body, `/animal/5/`)
	assert.NotContains(t, body, `/animal/4/`)
}

func TestAnimals_ListsEveryAnimal(t *testing.T) {
	site := newTestSite(t)

	w := site.do(http.MethodGet, "/nos-animaux/?espece=LAPIN", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "7 animal(aux)")
}

func TestAnimalDetail(t *testing.T) {
	site := newTestSite(t)

	t.Run("anonymous visitor is invited to sign in", func(t *testing.T) {
		w := site.do(http.MethodGet, "/animal/7/", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "/compte/connexion/?next=/animal/7/")
		assert.NotContains(t, w.Body.String(), `name="motivation"`)
	})

	t.Run("signed-in visitor gets name and email pre-filled", func(t *testing.T) {
		w := site.do(http.MethodGet, "/animal/7/", nil, site.signIn(t))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `value="Alice Martin"`)
		assert.Contains(t, w.Body.String(), `value="alice@example.com"`)
	})

	t.Run("unknown or malformed id is a 404 page", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, site.do(http.MethodGet, "/animal/999/", nil).Code)
		assert.Equal(t, http.StatusNotFound, site.do(http.MethodGet, "/animal/abc/", nil).Code)
	})
}

func TestSubmit_AnonymousIsRedirectedToLogin(t *testing.T) {
	site := newTestSite(t)

	w := site.do(http.MethodPost, "/animal/7/", validIntake())

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/compte/connexion/?next=/animal/7/", w.Header().Get("Location"))
	assert.Empty(t, site.adoptions.created)
}

func TestSubmit_CreatesRequestAndFlashes(t *testing.T) {
	site := newTestSite(t)
	sess := site.signIn(t)

	w := site.do(http.MethodPost, "/animal/7/", validIntake(), sess)

	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/animal/7/", w.Header().Get("Location"))
	require.Len(t, site.adoptions.created, 1)
	created := site.adoptions.created[0]
	require.NotNil(t, created.AccountID)
	assert.Equal(t, int64(1), *created.AccountID)
	assert.Equal(t, "95.5", created.Surface.Decimal.String())

	flash := cookieNamed(w, "unispattes_flash")
	require.NotNil(t, flash)
	w = site.do(http.MethodGet, "/animal/7/", nil, sess, flash)
	assert.Contains(t, w.Body.String(), "bien été envoyée")
}

func TestSubmit_DuplicateIsConflict(t *testing.T) {
	site := newTestSite(t)
	sess := site.signIn(t)

	require.Equal(t, http.StatusSeeOther, site.do(http.MethodPost, "/animal/7/", validIntake(), sess).Code)
	w := site.do(http.MethodPost, "/animal/7/", validIntake(), sess)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "déjà fait une demande pour cet animal")
	assert.Len(t, site.adoptions.created, 1)
}

func TestSubmit_ValidationErrorsRerenderForm(t *testing.T) {
	site := newTestSite(t)
	form := validIntake()
	form.Del("motivation")
	form.Set("type_logement", "chateau")

	w := site.do(http.MethodPost, "/animal/7/", form, site.signIn(t))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "La motivation est obligatoire.")
	assert.Contains(t, w.Body.String(), "Type de logement invalide.")
	assert.Empty(t, site.adoptions.created)
}

func TestSubmit_UnknownAnimal(t *testing.T) {
	site := newTestSite(t)

	w := site.do(http.MethodPost, "/animal/999/", validIntake(), site.signIn(t))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, site.adoptions.created)
}

func TestLogin(t *testing.T) {
	site := newTestSite(t)

	t.Run("success follows a safe next", func(t *testing.T) {
		w := site.do(http.MethodPost, "/compte/connexion/", url.Values{
			"email": {"alice@example.com"}, "password": {"motdepasse"}, "next": {"/animal/7/"},
		})
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/animal/7/", w.Header().Get("Location"))
		assert.NotNil(t, cookieNamed(w, "unispattes_session"))
	})

	t.Run("foreign next falls back to home", func(t *testing.T) {
		w := site.do(http.MethodPost, "/compte/connexion/", url.Values{
			"email": {"alice@example.com"}, "password": {"motdepasse"}, "next": {"//evil.example/"},
		})
		assert.Equal(t, "/", w.Header().Get("Location"))
	})

	t.Run("wrong password gets the generic message", func(t *testing.T) {
		w := site.do(http.MethodPost, "/compte/connexion/", url.Values{
			"email": {"alice@example.com"}, "password": {"nope"},
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), accountModel.MsgInvalidCredentials)
		assert.Nil(t, cookieNamed(w, "unispattes_session"))
	})

	t.Run("locked account", func(t *testing.T) {
		w := site.do(http.MethodPost, "/compte/connexion/", url.Values{
			"email": {"locked@example.com"}, "password": {"motdepasse"},
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "temporairement bloqué")
	})

	t.Run("locked account with a wrong password", func(t *testing.T) {
		w := site.do(http.MethodPost, "/compte/connexion/", url.Values{
			"email": {"locked@example.com"}, "password": {"whatever"},
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), accountModel.MsgInvalidCredentials)
		assert.NotContains(t, w.Body.String(), "temporairement bloqué")
	})

	t.Run("welcome flash on the next page", func(t *testing.T) {
		w := site.do(http.MethodPost, "/compte/connexion/", url.Values{
			"email": {"alice@example.com"}, "password": {"motdepasse"},
		})
		page := site.do(http.MethodGet, "/", nil, cookieNamed(w, "unispattes_session"), cookieNamed(w, "unispattes_flash"))
		assert.Contains(t, page.Body.String(), "Bienvenue Alice !")
	})
}

func TestRegister(t *testing.T) {
	site := newTestSite(t)
	form := url.Values{
		"first_name": {"Bob"}, "last_name": {"Durand"}, "email": {"Bob@Example.com"},
		"telephone": {"0611223344"}, "password1": {"motdepasse"}, "password2": {"motdepasse"},
	}

	w := site.do(http.MethodPost, "/compte/inscription/", form)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	assert.NotNil(t, cookieNamed(w, "unispattes_session"))

	w = site.do(http.MethodPost, "/compte/inscription/", form)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), accountModel.MsgEmailExists)
}

func TestLogout(t *testing.T) {
	site := newTestSite(t)

	w := site.do(http.MethodPost, "/compte/deconnexion/", nil)
	assert.Equal(t, http.StatusFound, w.Code)

	sess := site.signIn(t)
	w = site.do(http.MethodPost, "/compte/deconnexion/", nil, sess)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	// The old cookie no longer opens a session
	w = site.do(http.MethodGet, "/compte/profil/", nil, sess)
	assert.Equal(t, http.StatusFound, w.Code)
}

func TestProfile_ListsOwnRequests(t *testing.T) {
	site := newTestSite(t)
	sess := site.signIn(t)
	require.Equal(t, http.StatusSeeOther, site.do(http.MethodPost, "/animal/7/", validIntake(), sess).Code)

	w := site.do(http.MethodGet, "/compte/profil/", nil, sess)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Rex")
	assert.Contains(t, w.Body.String(), adoptionModel.StatusPending.Label())
}

func TestUnknownRoute_RendersNotFoundPage(t *testing.T) {
	site := newTestSite(t)

	w := site.do(http.MethodGet, "/nulle-part/", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Page introuvable")
}
