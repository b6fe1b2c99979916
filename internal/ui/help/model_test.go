package help

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nhle/gift-tracker/internal/keys"
)

func TestView_ListsBindingsAndCommands(t *testing.T) {
	m := New(keys.DefaultKeyMap(), 120, 60)
	out := m.View()

	assert.Contains(t, out, "import receipt")
	assert.Contains(t, out, ":year <yyyy|all>")
	assert.Contains(t, out, "filter gifts by status")
}
