package web_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/ecoleta/internal/assets/local"
	"github.com/vbonduro/ecoleta/internal/db"
	"github.com/vbonduro/ecoleta/internal/domain"
	"github.com/vbonduro/ecoleta/internal/service"
	"github.com/vbonduro/ecoleta/internal/store"
	"github.com/vbonduro/ecoleta/internal/web"
)

const placeholder = "https://example.com/placeholder.jpg"

type pointDetail struct {
	Point domain.Point `json:"point"`
	Items []struct {
		Title string `json:"title"`
	} `json:"items"`
}

type registration struct {
	Point domain.Point `json:"point"`
	Items []int64      `json:"items"`
}

type message struct {
	Message string `json:"message"`
}

// newTestServer wires a real web.Server over a temp SQLite database and a
// temp uploads directory. The server's public URL is its own address.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	database := db.OpenForTesting(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	uploads, err := local.NewLocalAssetStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, uploads.Put(context.Background(), "lampadas.svg", strings.NewReader("<svg/>")))

	srv := httptest.NewUnstartedServer(nil)
	publicURL := "http://" + srv.Listener.Addr().String()

	discovery := service.NewDiscoveryService(store.NewItemStore(database), store.NewPointStore(database), publicURL, logger)
	writer := service.NewRegistrationWriter(store.NewTxManager(database), placeholder, logger)
	srv.Config.Handler = web.NewServer(discovery, writer, uploads, database, logger)
	srv.Start()
	t.Cleanup(srv.Close)
	return srv
}

func getJSON(t *testing.T, url string, wantStatus int, target any) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, wantStatus, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	require.NoError(t, json.NewDecoder(resp.Body).Decode(target))
}

func postPoint(t *testing.T, srv *httptest.Server, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(srv.URL+"/points", "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func createPoint(t *testing.T, srv *httptest.Server, name, city, uf string, items ...int64) int64 {
	t.Helper()
	payload, err := json.Marshal(map[string]any{
		"name":      name,
		"email":     "contato@example.com",
		"whatsapp":  "21999999999",
		"latitude":  -22.9,
		"longitude": -43.2,
		"city":      city,
		"uf":        uf,
		"items":     items,
	})
	require.NoError(t, err)

	resp := postPoint(t, srv, string(payload))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var reg registration
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&reg))
	return reg.Point.ID
}

func listPointIDs(t *testing.T, srv *httptest.Server, query string) []int64 {
	t.Helper()
	var points []domain.Point
	getJSON(t, srv.URL+"/points"+query, http.StatusOK, &points)

	ids := make([]int64, 0, len(points))
	for _, p := range points {
		ids = append(ids, p.ID)
	}
	return ids
}

func TestIntegration_ListItems(t *testing.T) {
	srv := newTestServer(t)

	var items []service.ItemView
	getJSON(t, srv.URL+"/items", http.StatusOK, &items)

	require.Len(t, items, 6)
	assert.Equal(t, "Lâmpadas", items[0].Title)
	assert.Equal(t, "Pilhas e Baterias", items[1].Title)
	for _, item := range items {
		assert.True(t, strings.HasPrefix(item.Image, srv.URL+"/uploads/"), item.Image)
	}

	// The returned image URL resolves against the same server.
	resp, err := http.Get(items[0].Image)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/svg+xml", resp.Header.Get("Content-Type"))
}

func TestIntegration_GetItem(t *testing.T) {
	srv := newTestServer(t)

	var item service.ItemView
	getJSON(t, srv.URL+"/items/2", http.StatusOK, &item)
	assert.Equal(t, int64(2), item.ID)
	assert.Equal(t, "Pilhas e Baterias", item.Title)
	assert.Equal(t, srv.URL+"/uploads/baterias.svg", item.Image)
}

func TestIntegration_NotFound(t *testing.T) {
	srv := newTestServer(t)

	var msg message
	getJSON(t, srv.URL+"/items/999", http.StatusNotFound, &msg)
	assert.Equal(t, "Item not found!", msg.Message)

	getJSON(t, srv.URL+"/points/999", http.StatusNotFound, &msg)
	assert.Equal(t, "Point not found!", msg.Message)
}

func TestIntegration_InvalidID(t *testing.T) {
	srv := newTestServer(t)

	var msg message
	getJSON(t, srv.URL+"/points/abc", http.StatusBadRequest, &msg)
	assert.Equal(t, "Invalid id", msg.Message)
}

func TestIntegration_RegisterThenDetail(t *testing.T) {
	srv := newTestServer(t)
	id := createPoint(t, srv, "Mercado", "Rio de Janeiro", "RJ", 1, 3)

	var detail pointDetail
	getJSON(t, srv.URL+"/points/"+strconv.FormatInt(id, 10), http.StatusOK, &detail)

	assert.Equal(t, id, detail.Point.ID)
	assert.Equal(t, placeholder, detail.Point.Image)
	assert.Equal(t, "Rio de Janeiro", detail.Point.City)
	titles := []string{}
	for _, it := range detail.Items {
		titles = append(titles, it.Title)
	}
	assert.ElementsMatch(t, []string{"Lâmpadas", "Papéis e Papelão"}, titles)
}

func TestIntegration_RegisterWithoutItems(t *testing.T) {
	srv := newTestServer(t)
	resp := postPoint(t, srv, `{"name":"A","email":"a@b.c","whatsapp":"1","latitude":1,"longitude":2,"city":"Rio","uf":"RJ"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var reg registration
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&reg))
	assert.Equal(t, []int64{}, reg.Items)

	var detail pointDetail
	getJSON(t, srv.URL+"/points/"+strconv.FormatInt(reg.Point.ID, 10), http.StatusOK, &detail)
	assert.NotNil(t, detail.Items)
	assert.Empty(t, detail.Items)
}

func TestIntegration_RegisterEchoesSubmission(t *testing.T) {
	srv := newTestServer(t)
	resp := postPoint(t, srv, `{"name":"A","email":"a@b.c","whatsapp":"1","latitude":-22.5,"longitude":-43.1,"city":"Rio","uf":"RJ","items":[2]}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var reg registration
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&reg))
	assert.NotZero(t, reg.Point.ID)
	assert.Equal(t, placeholder, reg.Point.Image)
	assert.Equal(t, "A", reg.Point.Name)
	assert.Equal(t, "a@b.c", reg.Point.Email)
	assert.Equal(t, "1", reg.Point.WhatsApp)
	assert.Equal(t, -22.5, reg.Point.Latitude)
	assert.Equal(t, -43.1, reg.Point.Longitude)
	assert.Equal(t, []int64{2}, reg.Items)
}

func TestIntegration_FilterByRegion(t *testing.T) {
	srv := newTestServer(t)
	id := createPoint(t, srv, "A", "Rio", "RJ", 2)

	assert.Contains(t, listPointIDs(t, srv, "?uf=RJ"), id)
	assert.NotContains(t, listPointIDs(t, srv, "?uf=SP"), id)
}

func TestIntegration_FilterCombined(t *testing.T) {
	srv := newTestServer(t)
	rio := createPoint(t, srv, "A", "Rio de Janeiro", "RJ", 1, 2)
	niteroi := createPoint(t, srv, "B", "Niterói", "RJ", 4)
	sp := createPoint(t, srv, "C", "São Paulo", "SP", 2)

	assert.Equal(t, []int64{rio, niteroi, sp}, listPointIDs(t, srv, ""))
	assert.Equal(t, []int64{rio}, listPointIDs(t, srv, "?city=Rio"))
	assert.Equal(t, []int64{rio, sp}, listPointIDs(t, srv, "?items=2"))
	assert.Equal(t, []int64{rio, niteroi}, listPointIDs(t, srv, "?uf=RJ&items=1,4"))
	assert.Equal(t, []int64{rio}, listPointIDs(t, srv, "?city=Rio&uf=RJ&items=1,2"))

	// An items value with no usable ids filters everything out.
	assert.Empty(t, listPointIDs(t, srv, "?items=abc"))
	// An empty items value is the same as omitting it.
	assert.Len(t, listPointIDs(t, srv, "?items="), 3)
}

func TestIntegration_DanglingItemRollsBack(t *testing.T) {
	srv := newTestServer(t)
	resp := postPoint(t, srv, `{"name":"A","email":"a@b.c","whatsapp":"1","latitude":1,"longitude":2,"city":"Rio","uf":"RJ","items":[1,999]}`)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	assert.Empty(t, listPointIDs(t, srv, ""))
}

func TestIntegration_RegisterValidation(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name string
		body string
		want string
	}{
		{"malformed", `{"name":`, "Invalid request body"},
		{"wrong type", `{"name":1}`, "Invalid request body"},
		{"missing uf", `{"name":"A","email":"a@b.c","whatsapp":"1","latitude":1,"longitude":2,"city":"Rio"}`, "Missing required field: uf"},
		{"missing latitude", `{"name":"A","email":"a@b.c","whatsapp":"1","longitude":2,"city":"Rio","uf":"RJ"}`, "Missing required field: latitude"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postPoint(t, srv, tt.body)
			require.Equal(t, http.StatusBadRequest, resp.StatusCode)

			var msg message
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&msg))
			assert.Equal(t, tt.want, msg.Message)
		})
	}
}

func TestIntegration_UploadNotFound(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/uploads/missing.svg")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestIntegration_HealthAndMetrics(t *testing.T) {
	srv := newTestServer(t)

	var health map[string]string
	getJSON(t, srv.URL+"/healthz", http.StatusOK, &health)
	assert.Equal(t, "ok", health["status"])

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), `ecoleta_http_requests_total{method="GET",route="GET /healthz",status="200"} 1`)
}

func TestIntegration_ResponseHeaders(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/items")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
