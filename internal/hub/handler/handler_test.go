package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrhub/internal/hub/cache"
	"hrhub/internal/hub/checklist"
	"hrhub/internal/hub/hrclient"
	"hrhub/internal/hub/models"
	"hrhub/internal/hub/service"
	"hrhub/internal/hub/validator"
	"hrhub/pkg/platform/sentinel"
)

type fakeSource struct {
	mu        sync.Mutex
	byCountry map[string][]models.Employee
	partial   map[string]bool
	fullCalls int
	pageCalls int
	oneCalls  int
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		byCountry: make(map[string][]models.Employee),
		partial:   make(map[string]bool),
	}
}

func (f *fakeSource) FetchByCountry(ctx context.Context, country string) ([]models.Employee, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fullCalls++
	return f.byCountry[country], !f.partial[country]
}

func (f *fakeSource) FetchPage(ctx context.Context, country string, page, perPage int) hrclient.Page {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pageCalls++

	all := f.byCountry[country]
	start := (page - 1) * perPage
	end := min(start+perPage, len(all))
	data := []models.Employee{}
	if start < end {
		data = all[start:end]
	}
	lastPage := (len(all) + perPage - 1) / perPage
	if lastPage < 1 {
		lastPage = 1
	}
	return hrclient.Page{
		Data: data,
		Meta: hrclient.Meta{CurrentPage: page, LastPage: lastPage, PerPage: perPage, Total: len(all)},
	}
}

func (f *fakeSource) FetchEmployee(ctx context.Context, id int64) (models.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.oneCalls++
	for _, employees := range f.byCountry {
		for _, e := range employees {
			if got, ok := e.ID(); ok && got == id {
				return e, nil
			}
		}
	}
	return nil, sentinel.ErrNotFound
}

type fixture struct {
	server *httptest.Server
	source *fakeSource
	store  *cache.InMemoryStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := cache.NewInMemoryStore()
	coordinator := cache.NewCoordinator(store, time.Minute, slog.Default())
	source := newFakeSource()
	engine := checklist.NewEngine(validator.NewRegistry(), slog.Default())
	svc := service.New(coordinator, source, engine, slog.Default())

	r := chi.NewRouter()
	New(svc).Register(r)

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)

	return &fixture{server: server, source: source, store: store}
}

func (f *fixture) get(t *testing.T, path string, out any) int {
	t.Helper()
	resp, err := http.Get(f.server.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil && resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func completeUSA(id int64) models.Employee {
	return models.Employee{
		"id": float64(id), "name": "John", "last_name": "Doe", "country": "USA",
		"salary": float64(75000), "ssn": "123-45-6789", "address": "123 Main St",
	}
}

func TestChecklistComputedOnMissThenCached(t *testing.T) {
	f := newFixture(t)
	f.source.byCountry["USA"] = []models.Employee{
		completeUSA(1),
		{"id": float64(2), "name": "Jane", "last_name": "Roe", "country": "USA", "salary": float64(50000)},
	}

	var report checklist.Report
	require.Equal(t, http.StatusOK, f.get(t, "/checklists/USA", &report))
	assert.Equal(t, 2, report.Summary.TotalEmployees)
	assert.Equal(t, 66.67, report.Summary.OverallCompletion)
	assert.Equal(t, 1, f.source.fullCalls)

	var again checklist.Report
	require.Equal(t, http.StatusOK, f.get(t, "/checklists/USA", &again))
	assert.Equal(t, report, again)
	assert.Equal(t, 1, f.source.fullCalls, "second read must be a cache hit")
}

func TestChecklistUnknownCountryIsServed(t *testing.T) {
	f := newFixture(t)

	var report checklist.Report
	require.Equal(t, http.StatusOK, f.get(t, "/checklists/Atlantis", &report))
	assert.Zero(t, report.Summary.TotalEmployees)
	assert.Zero(t, report.Summary.OverallCompletion)
}

// A degraded report from an incomplete fetch is served but never cached,
// so the next read retries the full fetch.
func TestChecklistPartialFetchNotCached(t *testing.T) {
	f := newFixture(t)
	f.source.byCountry["USA"] = []models.Employee{completeUSA(1)}
	f.source.partial["USA"] = true

	var degraded checklist.Report
	require.Equal(t, http.StatusOK, f.get(t, "/checklists/USA", &degraded))
	assert.Equal(t, 1, degraded.Summary.TotalEmployees)

	_, err := f.store.Get(context.Background(), cache.ChecklistKey("USA"))
	require.Error(t, err, "truncated report must not be cached")

	f.source.mu.Lock()
	f.source.partial["USA"] = false
	f.source.byCountry["USA"] = []models.Employee{completeUSA(1), completeUSA(2)}
	f.source.mu.Unlock()

	var fresh checklist.Report
	require.Equal(t, http.StatusOK, f.get(t, "/checklists/USA", &fresh))
	assert.Equal(t, 2, fresh.Summary.TotalEmployees)

	_, err = f.store.Get(context.Background(), cache.ChecklistKey("USA"))
	assert.NoError(t, err, "complete report is cached again")
}

func TestEmployeesRequiresCountry(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, http.StatusUnprocessableEntity, f.get(t, "/employees", nil))
}

func TestEmployeesPaginatedAndCachedPerPage(t *testing.T) {
	f := newFixture(t)
	for i := int64(1); i <= 5; i++ {
		f.source.byCountry["USA"] = append(f.source.byCountry["USA"], completeUSA(i))
	}

	var page hrclient.Page
	require.Equal(t, http.StatusOK, f.get(t, "/employees?country=USA&page=2&per_page=2", &page))
	assert.Len(t, page.Data, 2)
	assert.Equal(t, 2, page.Meta.CurrentPage)
	assert.Equal(t, 3, page.Meta.LastPage)
	assert.Equal(t, 5, page.Meta.Total)

	require.Equal(t, http.StatusOK, f.get(t, "/employees?country=USA&page=2&per_page=2", &page))
	assert.Equal(t, 1, f.source.pageCalls, "repeat read of the same page is a cache hit")

	require.Equal(t, http.StatusOK, f.get(t, "/employees?country=USA&page=3&per_page=2", &page))
	assert.Len(t, page.Data, 1)
	assert.Equal(t, 2, f.source.pageCalls, "a different page is its own cache entry")
}

func TestEmployeeByIDCachedPerID(t *testing.T) {
	f := newFixture(t)
	f.source.byCountry["USA"] = []models.Employee{completeUSA(3)}

	var body struct {
		Data models.Employee `json:"data"`
	}
	require.Equal(t, http.StatusOK, f.get(t, "/employees/3", &body))
	name, _ := body.Data["name"].(string)
	assert.Equal(t, "John", name)

	require.Equal(t, http.StatusOK, f.get(t, "/employees/3", &body))
	assert.Equal(t, 1, f.source.oneCalls, "repeat read is a cache hit")
}

func TestEmployeeByIDNotFound(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, http.StatusNotFound, f.get(t, "/employees/404", nil))
	assert.Equal(t, http.StatusUnprocessableEntity, f.get(t, "/employees/abc", nil))
}

func TestEmployeesClampsBadPagination(t *testing.T) {
	f := newFixture(t)
	f.source.byCountry["Germany"] = []models.Employee{
		{"id": float64(1), "name": "Anna", "last_name": "S", "country": "Germany", "salary": float64(1000)},
	}

	var page hrclient.Page
	require.Equal(t, http.StatusOK, f.get(t, "/employees?country=Germany&page=-3&per_page=9999", &page))
	assert.Equal(t, 1, page.Meta.CurrentPage)
	assert.Equal(t, 15, page.Meta.PerPage)
}
