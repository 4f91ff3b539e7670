package lint_test

import (
	"encoding/json"
	"testing"

	"github.com/designlint/designlint/internal/domain"
	"github.com/designlint/designlint/internal/domain/lint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerialize_PreservesNesting(t *testing.T) {
	got := lint.Serialize(sampleForest())
	require.Len(t, got, 2)
	assert.Equal(t, "A", got[0].ID)
	assert.Equal(t, "Frame A", got[0].Name)
	assert.Equal(t, domain.NodeFrame, got[0].Type)
	require.Len(t, got[0].Children, 2)
	assert.Equal(t, "x", got[0].Children[1].Children[0].ID)
	assert.Nil(t, got[0].Children[0].Children)
}

func TestSerialize_JSONFieldSet(t *testing.T) {
	data, err := json.Marshal(lint.Serialize([]*domain.Node{rect("r")}))
	require.NoError(t, err)
	assert.JSONEq(t, `[{"name":"Rect r","type":"RECTANGLE","id":"r"}]`, string(data))
}

func TestSerialize_Empty(t *testing.T) {
	assert.Empty(t, lint.Serialize(nil))
}
