package ideaform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/gift-tracker/internal/model"
)

func TestBuild_Defaults(t *testing.T) {
	fb := formBindings{}
	fb.reset()
	fb.name = "Puzzle"

	idea := build(fb)
	assert.Equal(t, "Puzzle", idea.Name)
	assert.Equal(t, model.NoneSentinel, idea.RecipientID)
	assert.Equal(t, model.NoneSentinel, idea.CategoryID)
	assert.Equal(t, model.DefaultPriority, idea.Priority)
	assert.Nil(t, idea.EstimatedPrice)
	assert.Equal(t, []string{}, idea.Tags)
}

func TestBuild_WithValues(t *testing.T) {
	idea := build(formBindings{
		name:        "Kite",
		recipientID: "rec_1",
		categoryID:  "cat_toys",
		price:       "24.50",
		priority:    5,
		tags:        "outdoor, summer",
	})

	assert.Equal(t, "rec_1", idea.RecipientID)
	require.NotNil(t, idea.EstimatedPrice)
	assert.Equal(t, 24.5, *idea.EstimatedPrice)
	assert.Equal(t, 5, idea.Priority)
	assert.Equal(t, []string{"outdoor", "summer"}, idea.Tags)
}

func TestStartCreate_ResetsBindings(t *testing.T) {
	m := New(80, 30)
	m.fb.name = "leftover"
	m.fb.priority = 1
	m.StartCreate()

	assert.Equal(t, "", m.fb.name)
	assert.Equal(t, model.DefaultPriority, m.fb.priority)
	assert.Contains(t, m.View(), "New Idea")
}
