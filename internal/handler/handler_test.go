package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/workout-api/internal/config"
	"github.com/deppfellow/workout-api/internal/errs"
	"github.com/deppfellow/workout-api/internal/handler"
	"github.com/deppfellow/workout-api/internal/lib/health"
	"github.com/deppfellow/workout-api/internal/router"
	"github.com/deppfellow/workout-api/internal/server"
	"github.com/deppfellow/workout-api/internal/service"
	"github.com/deppfellow/workout-api/internal/testsupport"
)

type testAPI struct {
	echo  *echo.Echo
	store *testsupport.Store
}

type apiOptions struct {
	legacyDuplicateStatus bool
	dbPing                func(context.Context) error
}

func newTestAPI(t *testing.T, opts apiOptions) *testAPI {
	t.Helper()

	logger := zerolog.Nop()
	cfg := &config.Config{
		Primary: config.Primary{Env: "local"},
		Server: config.ServerConfig{
			Port:                  "0",
			LegacyDuplicateStatus: opts.legacyDuplicateStatus,
		},
	}

	dbPing := opts.dbPing
	if dbPing == nil {
		dbPing = func(context.Context) error { return nil }
	}

	s := &server.Server{
		Config: cfg,
		Logger: &logger,
		Health: health.NewChecker(cfg.Primary.Env, time.Second, &logger, nil,
			health.Check{Name: "database", Required: true, Pinger: health.PingerFunc(dbPing)},
		),
	}

	store := testsupport.NewStore()
	store.SeedCategory("Scale")
	store.SeedTrainingCenter("CT King")

	services := &service.Services{
		Auth: service.NewAuthService(s),
		Athletes: service.NewAthleteService(store, store.Athletes(), store.Categories(), store.TrainingCenters(),
			service.WithLegacyDuplicateStatus(opts.legacyDuplicateStatus)),
		Categories:      service.NewCategoryService(store, store.Categories()),
		TrainingCenters: service.NewTrainingCenterService(store, store.TrainingCenters()),
	}

	return &testAPI{
		echo:  router.NewRouter(s, handler.NewHandlers(s, services), services),
		store: store,
	}
}

func (a *testAPI) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	rec := httptest.NewRecorder()
	a.echo.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

type athleteBody struct {
	ID        string    `json:"id"`
	Nome      string    `json:"nome"`
	CPF       string    `json:"cpf"`
	Idade     int       `json:"idade"`
	Peso      float64   `json:"peso"`
	Altura    float64   `json:"altura"`
	Sexo      string    `json:"sexo"`
	CreatedAt time.Time `json:"created_at"`
	Categoria struct {
		Nome string `json:"nome"`
	} `json:"categoria"`
	CentroTreinamento struct {
		Nome string `json:"nome"`
	} `json:"centro_treinamento"`
}

type pageBody struct {
	Items  []map[string]any `json:"items"`
	Total  int              `json:"total"`
	Limit  int              `json:"limit"`
	Offset int              `json:"offset"`
}

const validAthlete = `{
	"nome": "Joao",
	"cpf": "12345678900",
	"idade": 25,
	"peso": 75.5,
	"altura": 1.70,
	"sexo": "M",
	"categoria": {"nome": "Scale"},
	"centro_treinamento": {"nome": "CT King"}
}`

func athleteJSON(nome, cpf string) string {
	r := strings.NewReplacer(`"Joao"`, `"`+nome+`"`, `"12345678900"`, `"`+cpf+`"`)
	return r.Replace(validAthlete)
}

func (a *testAPI) createAthlete(t *testing.T, nome, cpf string) athleteBody {
	t.Helper()
	rec := a.do(t, http.MethodPost, "/api/v1/atletas", athleteJSON(nome, cpf))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[athleteBody](t, rec)
}

func TestCreateAthlete(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		api := newTestAPI(t, apiOptions{})

		rec := api.do(t, http.MethodPost, "/api/v1/atletas", validAthlete)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		body := decode[athleteBody](t, rec)
		assert.NotEmpty(t, body.ID)
		assert.Equal(t, "Joao", body.Nome)
		assert.Equal(t, 75.5, body.Peso)
		assert.Equal(t, "Scale", body.Categoria.Nome)
		assert.Equal(t, "CT King", body.CentroTreinamento.Nome)
		assert.False(t, body.CreatedAt.IsZero())
		assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	})

	t.Run("trailing slash", func(t *testing.T) {
		api := newTestAPI(t, apiOptions{})
		rec := api.do(t, http.MethodPost, "/api/v1/atletas/", validAthlete)
		assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	})

	t.Run("unknown category", func(t *testing.T) {
		api := newTestAPI(t, apiOptions{})
		body := strings.Replace(validAthlete, `"Scale"`, `"Elite"`, 1)

		rec := api.do(t, http.MethodPost, "/api/v1/atletas", body)
		require.Equal(t, http.StatusBadRequest, rec.Code)

		e := decode[errs.HTTPError](t, rec)
		assert.Equal(t, errs.CodeCategoryNotFound, e.Code)
		assert.Contains(t, e.Message, "Elite")
		assert.Zero(t, api.store.AthleteCount())
	})

	t.Run("unknown training center", func(t *testing.T) {
		api := newTestAPI(t, apiOptions{})
		body := strings.Replace(validAthlete, `"CT King"`, `"CT Queen"`, 1)

		rec := api.do(t, http.MethodPost, "/api/v1/atletas", body)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, errs.CodeTrainingCenterNotFound, decode[errs.HTTPError](t, rec).Code)
	})

	t.Run("duplicate cpf", func(t *testing.T) {
		api := newTestAPI(t, apiOptions{})
		api.createAthlete(t, "Joao", "12345678900")

		rec := api.do(t, http.MethodPost, "/api/v1/atletas", athleteJSON("Maria", "12345678900"))
		require.Equal(t, http.StatusConflict, rec.Code)

		e := decode[errs.HTTPError](t, rec)
		assert.Equal(t, errs.CodeAthleteAlreadyExists, e.Code)
		assert.Contains(t, e.Message, "12345678900")
		assert.Equal(t, 1, api.store.AthleteCount())
	})

	t.Run("duplicate cpf with legacy status", func(t *testing.T) {
		api := newTestAPI(t, apiOptions{legacyDuplicateStatus: true})
		api.createAthlete(t, "Joao", "12345678900")

		rec := api.do(t, http.MethodPost, "/api/v1/atletas", athleteJSON("Maria", "12345678900"))
		require.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/api/v1/atletas?cpf=12345678900", rec.Header().Get(echo.HeaderLocation))

		e := decode[errs.HTTPError](t, rec)
		require.NotNil(t, e.Action)
		assert.Equal(t, errs.ActionTypeRedirect, e.Action.Type)
	})

	t.Run("validation errors name the field", func(t *testing.T) {
		api := newTestAPI(t, apiOptions{})
		tests := []struct {
			name  string
			body  string
			field string
		}{
			{"bad sexo", strings.Replace(validAthlete, `"M"`, `"X"`, 1), "sexo"},
			{"long cpf", athleteJSON("Joao", "123456789012"), "cpf"},
			{"zero weight", strings.Replace(validAthlete, `75.5`, `0`, 1), "peso"},
			{"missing nome", strings.Replace(validAthlete, `"nome": "Joao",`, ``, 1), "nome"},
			{"long category", strings.Replace(validAthlete, `"Scale"`, `"Intermediate"`, 1), "categoria.nome"},
			{"idade beyond integer column", strings.Replace(validAthlete, `25`, `3000000000`, 1), "idade"},
			{"peso beyond numeric column", strings.Replace(validAthlete, `75.5`, `100000000`, 1), "peso"},
			{"altura at numeric limit", strings.Replace(validAthlete, `1.70`, `10000000`, 1), "altura"},
			{"peso with four decimals", strings.Replace(validAthlete, `75.5`, `75.1234`, 1), "peso"},
			{"altura with four decimals", strings.Replace(validAthlete, `1.70`, `1.7055`, 1), "altura"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				rec := api.do(t, http.MethodPost, "/api/v1/atletas", tt.body)
				require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

				e := decode[errs.HTTPError](t, rec)
				var fields []string
				for _, fe := range e.Errors {
					fields = append(fields, fe.Field)
				}
				assert.Contains(t, fields, tt.field)
			})
		}
		assert.Zero(t, api.store.AthleteCount())
	})

	t.Run("unknown field", func(t *testing.T) {
		api := newTestAPI(t, apiOptions{})
		body := strings.Replace(validAthlete, `"sexo": "M",`, `"sexo": "M", "apelido": "J",`, 1)

		rec := api.do(t, http.MethodPost, "/api/v1/atletas", body)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decode[errs.HTTPError](t, rec).Message, "apelido")
	})

	t.Run("malformed json", func(t *testing.T) {
		api := newTestAPI(t, apiOptions{})
		rec := api.do(t, http.MethodPost, "/api/v1/atletas", `{"nome":`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestListAthletes(t *testing.T) {
	api := newTestAPI(t, apiOptions{})
	api.createAthlete(t, "Ana", "1")
	api.createAthlete(t, "Bruno", "2")
	api.createAthlete(t, "Ana", "3")

	t.Run("defaults", func(t *testing.T) {
		rec := api.do(t, http.MethodGet, "/api/v1/atletas/", "")
		require.Equal(t, http.StatusOK, rec.Code)

		page := decode[pageBody](t, rec)
		assert.Len(t, page.Items, 3)
		assert.Equal(t, 3, page.Total)
		assert.Equal(t, 50, page.Limit)
		assert.Equal(t, 0, page.Offset)

		item := page.Items[0]
		assert.Contains(t, item, "categoria")
		assert.Contains(t, item, "centro_treinamento")
		assert.NotContains(t, item, "cpf")
	})

	t.Run("filters", func(t *testing.T) {
		rec := api.do(t, http.MethodGet, "/api/v1/atletas?nome=Ana&limit=1", "")
		require.Equal(t, http.StatusOK, rec.Code)

		page := decode[pageBody](t, rec)
		assert.Len(t, page.Items, 1)
		assert.Equal(t, 2, page.Total)

		rec = api.do(t, http.MethodGet, "/api/v1/atletas?cpf=2", "")
		page = decode[pageBody](t, rec)
		require.Len(t, page.Items, 1)
		assert.Equal(t, "Bruno", page.Items[0]["nome"])
	})

	t.Run("empty result", func(t *testing.T) {
		rec := api.do(t, http.MethodGet, "/api/v1/atletas?nome=Nobody", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"items":[],"total":0,"limit":50,"offset":0}`, rec.Body.String())
	})

	t.Run("invalid paging", func(t *testing.T) {
		for _, q := range []string{"limit=0", "limit=101", "offset=-1", "limit=abc"} {
			rec := api.do(t, http.MethodGet, "/api/v1/atletas?"+q, "")
			assert.Equal(t, http.StatusBadRequest, rec.Code, q)
		}
	})
}

func TestGetAthlete(t *testing.T) {
	api := newTestAPI(t, apiOptions{})
	created := api.createAthlete(t, "Joao", "1")

	rec := api.do(t, http.MethodGet, "/api/v1/atletas/"+created.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1", decode[athleteBody](t, rec).CPF)

	rec = api.do(t, http.MethodGet, "/api/v1/atletas/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	missing := "0b8e3c2a-5f7d-4c1e-9a3b-2d6f8e1c4a7b"
	rec = api.do(t, http.MethodGet, "/api/v1/atletas/"+missing, "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	e := decode[errs.HTTPError](t, rec)
	assert.Equal(t, errs.CodeAthleteNotFound, e.Code)
	assert.Contains(t, e.Message, missing)
}

func TestUpdateAthlete(t *testing.T) {
	api := newTestAPI(t, apiOptions{})
	created := api.createAthlete(t, "Joao", "1")
	path := "/api/v1/atletas/" + created.ID

	t.Run("partial", func(t *testing.T) {
		rec := api.do(t, http.MethodPatch, path, `{"nome": "Joao Silva", "peso": 80}`)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		body := decode[athleteBody](t, rec)
		assert.Equal(t, "Joao Silva", body.Nome)
		assert.Equal(t, 80.0, body.Peso)
		assert.Equal(t, created.Idade, body.Idade)
		assert.Equal(t, created.CPF, body.CPF)
	})

	t.Run("empty patch", func(t *testing.T) {
		before := decode[athleteBody](t, api.do(t, http.MethodGet, path, ""))

		rec := api.do(t, http.MethodPatch, path, `{}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, before, decode[athleteBody](t, rec))
	})

	t.Run("cpf cannot be patched", func(t *testing.T) {
		rec := api.do(t, http.MethodPatch, path, `{"cpf": "999"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("invalid value", func(t *testing.T) {
		rec := api.do(t, http.MethodPatch, path, `{"sexo": "Z"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("values the columns cannot hold", func(t *testing.T) {
		for _, body := range []string{
			`{"idade": 3000000000}`,
			`{"peso": 10000000}`,
			`{"altura": 1.7777}`,
		} {
			rec := api.do(t, http.MethodPatch, path, body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		}
	})

	t.Run("three decimals round trip", func(t *testing.T) {
		rec := api.do(t, http.MethodPatch, path, `{"peso": 80.125}`)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, 80.125, decode[athleteBody](t, rec).Peso)

		rec = api.do(t, http.MethodGet, path, "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 80.125, decode[athleteBody](t, rec).Peso)
	})

	t.Run("unknown id", func(t *testing.T) {
		rec := api.do(t, http.MethodPatch, "/api/v1/atletas/0b8e3c2a-5f7d-4c1e-9a3b-2d6f8e1c4a7b", `{"nome": "x"}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestDeleteAthlete(t *testing.T) {
	api := newTestAPI(t, apiOptions{})
	created := api.createAthlete(t, "Joao", "1")
	path := "/api/v1/atletas/" + created.ID

	rec := api.do(t, http.MethodDelete, path, "")
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = api.do(t, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = api.do(t, http.MethodGet, path, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReferenceResources(t *testing.T) {
	api := newTestAPI(t, apiOptions{})

	rec := api.do(t, http.MethodPost, "/api/v1/categorias", `{"nome": "RX"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	category := decode[map[string]any](t, rec)

	rec = api.do(t, http.MethodGet, "/api/v1/categorias/"+category["id"].(string), "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = api.do(t, http.MethodPost, "/api/v1/categorias", `{"nome": "RX"}`)
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, errs.CodeCategoryAlreadyExists, decode[errs.HTTPError](t, rec).Code)

	rec = api.do(t, http.MethodGet, "/api/v1/categorias", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, decode[pageBody](t, rec).Total)

	rec = api.do(t, http.MethodPost, "/api/v1/centros_treinamento",
		`{"nome": "CT Rio", "endereco": "Av. Atlantica, 1", "proprietario": "Carla"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = api.do(t, http.MethodPost, "/api/v1/centros_treinamento", `{"nome": "CT Sul"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(t, http.MethodGet, "/api/v1/centros_treinamento/0b8e3c2a-5f7d-4c1e-9a3b-2d6f8e1c4a7b", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, errs.CodeTrainingCenterNotFound, decode[errs.HTTPError](t, rec).Code)
}

func TestUnknownRoute(t *testing.T) {
	api := newTestAPI(t, apiOptions{})

	rec := api.do(t, http.MethodGet, "/api/v1/unknown", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Route not found", decode[errs.HTTPError](t, rec).Message)
}

func TestCheckHealth(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		api := newTestAPI(t, apiOptions{})
		rec := api.do(t, http.MethodGet, "/status", "")
		require.Equal(t, http.StatusOK, rec.Code)

		report := decode[health.Report](t, rec)
		assert.Equal(t, health.StatusHealthy, report.Status)
		assert.Equal(t, "local", report.Environment)
		assert.Contains(t, report.Checks, "database")
	})

	t.Run("database down", func(t *testing.T) {
		api := newTestAPI(t, apiOptions{dbPing: func(context.Context) error {
			return errors.New("connection refused")
		}})
		rec := api.do(t, http.MethodGet, "/status", "")
		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Equal(t, health.StatusUnhealthy, decode[health.Report](t, rec).Status)
	})
}
