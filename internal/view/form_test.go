package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForm(t *testing.T) {
	t.Run("given open new should start from a zero record in create mode", func(t *testing.T) {
		form := Form[row]{}

		form.OpenNew()

		assert.True(t, form.Open())
		assert.False(t, form.Editing())
		assert.Zero(t, form.Record())
	})

	t.Run("given open edit should carry the record in edit mode", func(t *testing.T) {
		form := Form[row]{}

		form.OpenEdit(row{name: "Bali Sunrise Trek"})

		assert.True(t, form.Open())
		assert.True(t, form.Editing())
		assert.Equal(t, "Bali Sunrise Trek", form.Record().name)
	})

	t.Run("given input changes should mutate the bound record", func(t *testing.T) {
		form := Form[row]{}
		form.OpenEdit(row{name: "old"})

		form.Set(func(r *row) { r.name = "new" })

		assert.Equal(t, "new", form.Record().name)
	})

	t.Run("given close should reset the record and both flags", func(t *testing.T) {
		form := Form[row]{}
		form.OpenEdit(row{name: "x"})

		form.Close()

		assert.False(t, form.Open())
		assert.False(t, form.Editing())
		assert.Zero(t, form.Record())
	})
}
