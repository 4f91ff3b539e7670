package domain

import (
	"encoding/json"
	"errors"
)

// CommandType selects the behavior of an inbound command.
type CommandType string

const (
	CommandFetchLayerData            CommandType = "fetch-layer-data"
	CommandUpdateErrors              CommandType = "update-errors"
	CommandUpdateStorage             CommandType = "update-storage"
	CommandUpdateStorageFromSettings CommandType = "update-storage-from-settings"
	CommandSelectMultipleLayers      CommandType = "select-multiple-layers"
	CommandRunApp                    CommandType = "run-app"
)

// ResponseType tags an outbound response.
type ResponseType string

const (
	ResponseFetchedLayer   ResponseType = "fetched layer"
	ResponseUpdatedErrors  ResponseType = "updated errors"
	ResponseResetStorage   ResponseType = "reset storage"
	ResponseComplete       ResponseType = "complete"
	ResponseFetchedStorage ResponseType = "fetched storage"
	ResponseError          ResponseType = "error"
)

var (
	// ErrNodeNotFound is returned by hosts for identifiers that do not resolve.
	ErrNodeNotFound = errors.New("node not found")
	// ErrUnknownCommand is returned for an unrecognized command type.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrEmptySelection is returned when a lint run has nothing to lint.
	ErrEmptySelection = errors.New("nothing selected")
)

// Command is one inbound message from the presentation layer.
type Command struct {
	Type CommandType `json:"type"`
	ID   string      `json:"id,omitempty"`
	// StorageArray is persisted verbatim; its element shape belongs to the
	// presentation layer.
	StorageArray json.RawMessage `json:"storageArray,omitempty"`
	NodeArray    []string        `json:"nodeArray,omitempty"`
}

// Response is one outbound message to the presentation layer. Absent errors
// mean none were found. On the wire the payload of complete (Tree) and
// fetched layer (Layer) travels under "message"; failure text travels under
// "error".
type Response struct {
	Type    ResponseType
	Tree    []SerializedNode
	Layer   *LayerData
	Errors  []FlatRecord
	Storage *string
	Error   string
}

type responseWire struct {
	Type    ResponseType    `json:"type"`
	Message json.RawMessage `json:"message,omitempty"`
	Errors  []FlatRecord    `json:"errors,omitempty"`
	Storage *string         `json:"storage,omitempty"`
	Error   string          `json:"error,omitempty"`
}

func (r Response) MarshalJSON() ([]byte, error) {
	w := responseWire{Type: r.Type, Errors: r.Errors, Storage: r.Storage, Error: r.Error}

	var payload any
	switch {
	case r.Type == ResponseComplete && r.Tree != nil:
		payload = r.Tree
	case r.Type == ResponseFetchedLayer && r.Layer != nil:
		payload = r.Layer
	}
	if payload != nil {
		msg, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		w.Message = msg
	}
	return json.Marshal(w)
}

func (r *Response) UnmarshalJSON(data []byte) error {
	var w responseWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*r = Response{Type: w.Type, Errors: w.Errors, Storage: w.Storage, Error: w.Error}

	if len(w.Message) == 0 {
		return nil
	}
	switch w.Type {
	case ResponseComplete:
		return json.Unmarshal(w.Message, &r.Tree)
	case ResponseFetchedLayer:
		r.Layer = new(LayerData)
		return json.Unmarshal(w.Message, r.Layer)
	}
	return nil
}

// ErrorResponse wraps err for transports that report failures in-band.
func ErrorResponse(err error) Response {
	return Response{Type: ResponseError, Error: err.Error()}
}
