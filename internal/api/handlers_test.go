package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"comanda/internal/config"
	"comanda/internal/database"
	"comanda/internal/dialogue"
	"comanda/internal/faq"
	"comanda/internal/llm"
	"comanda/internal/menu"
	"comanda/internal/monitoring"
	"comanda/internal/orders"
	"comanda/internal/pending"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, replies ...string) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Open("sqlite3", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Seed(db, "USD"))

	cfg := config.Default()
	catalog := menu.NewCatalog(db)
	ledger := pending.NewLedger(db)
	queue := orders.NewQueue(db, cfg.SLAMinutes)
	monitor := monitoring.NewMonitor()
	orch := dialogue.NewOrchestrator(cfg, catalog, faq.NewMatcher(db),
		ledger, queue, &llm.Scripted{Replies: replies}, monitor)
	return NewServer(cfg, catalog, orch, ledger, queue, monitor)
}

func doJSON(t *testing.T, s *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode(t, rec)["status"])
}

func TestPostMessage(t *testing.T) {
	s := newTestServer(t, "¡Claro!")

	rec := doJSON(t, s, http.MethodPost, "/api/v1/conversations/c1/messages",
		gin.H{"message": "quiero 2 aguas"})

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "awaiting_more_confirmation", body["phase"])
	assert.Len(t, body["replies"], 2)
	assert.Len(t, body["items"], 1)
	assert.NotEmpty(t, body["missing"])
	assert.Equal(t, false, body["has_pending"])
}

func TestPostMessage_RequiresBody(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/v1/conversations/c1/messages", gin.H{})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetAndDeleteConversation(t *testing.T) {
	s := newTestServer(t, "¡Claro!")

	rec := doJSON(t, s, http.MethodGet, "/api/v1/conversations/c1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	doJSON(t, s, http.MethodPost, "/api/v1/conversations/c1/messages", gin.H{"message": "hola, un agua"})

	rec = doJSON(t, s, http.MethodGet, "/api/v1/conversations/c1", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, s, http.MethodDelete, "/api/v1/conversations/c1", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, s, http.MethodGet, "/api/v1/conversations/c1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestConfirm_IncompleteOrder(t *testing.T) {
	s := newTestServer(t, "¡Claro!")

	doJSON(t, s, http.MethodPost, "/api/v1/conversations/c1/messages", gin.H{"message": "quiero un agua"})

	rec := doJSON(t, s, http.MethodPost, "/api/v1/conversations/c1/confirm", nil)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode(t, rec)
	assert.NotEmpty(t, body["missing"])
	assert.Equal(t, false, body["no_items"])
}

func TestConfirm_FullFlowCreatesOrder(t *testing.T) {
	s := newTestServer(t, "¡Claro!")
	post := func(msg string) {
		rec := doJSON(t, s, http.MethodPost, "/api/v1/conversations/c1/messages", gin.H{"message": msg})
		require.Equal(t, http.StatusOK, rec.Code)
	}

	post("quiero 2 aguas y una hamburguesa")
	post("eso sería todo")
	post("Juan")
	post("0991234567")
	post("pickup")
	post("efectivo")

	rec := doJSON(t, s, http.MethodPost, "/api/v1/conversations/c1/confirm", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	body := decode(t, rec)
	order := body["order"].(map[string]interface{})
	assert.Equal(t, 7.50, order["total"])
	assert.Equal(t, "confirmed", order["status"])

	rec = doJSON(t, s, http.MethodGet, "/api/v1/orders", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), decode(t, rec)["count"])
}

func TestConfirm_UnknownConversation(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/v1/conversations/nope/confirm", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateOrderStatus(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPut, "/api/v1/orders/ord_x/status", gin.H{"status": "cancelled"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, s, http.MethodPut, "/api/v1/orders/ord_x/status", gin.H{"status": "preparing"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPendingsResolveFlow(t *testing.T) {
	s := newTestServer(t)

	// An escalating message creates a pending question.
	rec := doJSON(t, s, http.MethodPost, "/api/v1/conversations/c1/messages",
		gin.H{"message": "¿se puede con almíbar?"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decode(t, rec)["has_pending"])

	rec = doJSON(t, s, http.MethodGet, "/api/v1/pendings", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	require.Equal(t, float64(1), body["count"])
	id := body["pendings"].([]interface{})[0].(map[string]interface{})["id"].(string)

	rec = doJSON(t, s, http.MethodPost, "/api/v1/pendings/"+id+"/resolve",
		gin.H{"status": "pending"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, s, http.MethodPost, "/api/v1/pendings/"+id+"/resolve",
		gin.H{"status": "approved", "answer": "sí, con gusto"})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, s, http.MethodGet, "/api/v1/pendings", nil)
	assert.Equal(t, float64(0), decode(t, rec)["count"])

	rec = doJSON(t, s, http.MethodPost, "/api/v1/pendings/pend_missing/resolve",
		gin.H{"status": "denied"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMenuHandlers(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodGet, "/api/v1/menu", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(3), decode(t, rec)["count"])

	rec = doJSON(t, s, http.MethodPost, "/api/v1/menu",
		gin.H{"name": "Pizza", "description": "Margarita", "price": 8.00, "currency": "USD"})
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, s, http.MethodPost, "/api/v1/menu", gin.H{"name": "", "price": 1.0})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, s, http.MethodDelete, "/api/v1/menu/Pizza", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, s, http.MethodDelete, "/api/v1/menu/Pizza", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetStats(t *testing.T) {
	s := newTestServer(t, "¡Claro!")

	doJSON(t, s, http.MethodPost, "/api/v1/conversations/c1/messages", gin.H{"message": "hola, un agua"})

	rec := doJSON(t, s, http.MethodGet, "/api/v1/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, float64(1), body["conversation_turns"])
	assert.Contains(t, body, "uptime_seconds")
}
