package ws_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/designlint/designlint/internal/adapters/inbound/ws"
	"github.com/designlint/designlint/internal/adapters/outbound/document"
	"github.com/designlint/designlint/internal/adapters/outbound/storage"
	"github.com/designlint/designlint/internal/domain"
)

func newServer(t *testing.T) (*httptest.Server, *document.Document) {
	t.Helper()
	doc, err := document.Load(filepath.Join("../../../../testdata/documents", "card.json"))
	require.NoError(t, err)
	h := ws.NewHandler(doc, storage.New(t.TempDir()), domain.DefaultConfig())
	srv := httptest.NewServer(h.Routes())
	t.Cleanup(srv.Close)
	return srv, doc
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, cmd domain.Command) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(cmd))
}

func receive(t *testing.T, conn *websocket.Conn) domain.Response {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var resp domain.Response
	require.NoError(t, conn.ReadJSON(&resp))
	return resp
}

func receiveRaw(t *testing.T, conn *websocket.Conn) map[string]json.RawMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &fields))
	return fields
}

func TestHandler_WireKeys(t *testing.T) {
	srv, _ := newServer(t)
	conn := dial(t, srv)

	send(t, conn, domain.Command{Type: domain.CommandRunApp})
	complete := receiveRaw(t, conn)
	assert.JSONEq(t, `"complete"`, string(complete["type"]))
	require.Contains(t, complete, "message")
	require.Contains(t, complete, "errors")
	assert.NotContains(t, complete, "tree")
	var tree []domain.SerializedNode
	require.NoError(t, json.Unmarshal(complete["message"], &tree))
	require.Len(t, tree, 1)
	assert.Equal(t, "Card", tree[0].Name)
	receiveRaw(t, conn) // fetched storage

	send(t, conn, domain.Command{Type: domain.CommandFetchLayerData, ID: "1:3"})
	layer := receiveRaw(t, conn)
	assert.JSONEq(t, `"fetched layer"`, string(layer["type"]))
	require.Contains(t, layer, "message")
	assert.NotContains(t, layer, "layer")
	var data domain.LayerData
	require.NoError(t, json.Unmarshal(layer["message"], &data))
	assert.Equal(t, "1:3", data.ID)

	send(t, conn, domain.Command{Type: domain.CommandFetchLayerData, ID: "9:9"})
	failed := receiveRaw(t, conn)
	assert.JSONEq(t, `"error"`, string(failed["type"]))
	assert.NotContains(t, failed, "message")
	assert.Contains(t, string(failed["error"]), "node not found")
}

func TestHandler_RunApp(t *testing.T) {
	srv, _ := newServer(t)
	conn := dial(t, srv)

	send(t, conn, domain.Command{Type: domain.CommandRunApp})

	complete := receive(t, conn)
	assert.Equal(t, domain.ResponseComplete, complete.Type)
	require.Len(t, complete.Tree, 1)
	assert.Equal(t, "Card", complete.Tree[0].Name)
	assert.NotEmpty(t, complete.Errors)

	stored := receive(t, conn)
	assert.Equal(t, domain.ResponseFetchedStorage, stored.Type)
	assert.Nil(t, stored.Storage)
}

func TestHandler_StorageRoundTrip(t *testing.T) {
	srv, doc := newServer(t)
	conn := dial(t, srv)

	send(t, conn, domain.Command{Type: domain.CommandUpdateStorage, StorageArray: json.RawMessage(`["1:2:fill"]`)})
	send(t, conn, domain.Command{Type: domain.CommandRunApp})

	assert.Equal(t, domain.ResponseComplete, receive(t, conn).Type)
	stored := receive(t, conn)
	require.NotNil(t, stored.Storage)
	assert.Equal(t, `["1:2:fill"]`, *stored.Storage)

	send(t, conn, domain.Command{Type: domain.CommandUpdateStorageFromSettings, StorageArray: json.RawMessage(`[]`)})
	reset := receive(t, conn)
	assert.Equal(t, domain.ResponseResetStorage, reset.Type)
	require.NotNil(t, reset.Storage)
	assert.Equal(t, "[]", *reset.Storage)

	notes := doc.Notifications()
	require.NotEmpty(t, notes)
	assert.Equal(t, "Cleared ignored errors", notes[len(notes)-1].Message)
}

func TestHandler_FetchLayer(t *testing.T) {
	srv, doc := newServer(t)
	conn := dial(t, srv)

	send(t, conn, domain.Command{Type: domain.CommandFetchLayerData, ID: "2:1"})

	resp := receive(t, conn)
	assert.Equal(t, domain.ResponseFetchedLayer, resp.Type)
	require.NotNil(t, resp.Layer)
	assert.Equal(t, "Badge", resp.Layer.Name)
	require.NotNil(t, resp.Layer.Remote)
	assert.False(t, *resp.Layer.Remote)

	sel := doc.Selection()
	require.Len(t, sel, 1)
	assert.Equal(t, "2:1", sel[0].ID)
}

func TestHandler_ErrorsAreInBand(t *testing.T) {
	srv, _ := newServer(t)
	conn := dial(t, srv)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))
	assert.Equal(t, domain.ResponseError, receive(t, conn).Type)

	send(t, conn, domain.Command{Type: "explode"})
	resp := receive(t, conn)
	assert.Equal(t, domain.ResponseError, resp.Type)
	assert.Contains(t, resp.Error, "unknown command")

	send(t, conn, domain.Command{Type: domain.CommandFetchLayerData, ID: "nope"})
	resp = receive(t, conn)
	assert.Equal(t, domain.ResponseError, resp.Type)
	assert.Contains(t, resp.Error, "node not found")

	// The connection stays usable.
	send(t, conn, domain.Command{Type: domain.CommandUpdateErrors})
	assert.Equal(t, domain.ResponseUpdatedErrors, receive(t, conn).Type)
}

func TestHandler_Healthz(t *testing.T) {
	srv, _ := newServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
