package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestCreateInput_Validate(t *testing.T) {
	t.Run("accepts all required fields", func(t *testing.T) {
		in := CreateInput{Title: "A", ShortDescription: "b", Description: "c", Image: "d.png"}
		assert.NoError(t, in.Validate())
	})

	t.Run("reports every missing field by wire name", func(t *testing.T) {
		in := CreateInput{Title: "A", Description: "c"}
		err := in.Validate()
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrValidation))

		var ve *ValidationError
		require.True(t, errors.As(err, &ve))
		assert.Equal(t, []string{"short_des", "image"}, ve.Fields)
		assert.Equal(t, "projects validation failed: short_des is required, image is required", err.Error())
	})

	t.Run("rejects empty strings", func(t *testing.T) {
		err := CreateInput{}.Validate()
		var ve *ValidationError
		require.True(t, errors.As(err, &ve))
		assert.Len(t, ve.Fields, 4)
	})
}

func TestNewProject(t *testing.T) {
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	p := NewProject("id-1", CreateInput{Title: "A", ShortDescription: "b", Description: "c", Image: "d.png"}, at)

	assert.Equal(t, "id-1", p.ID)
	assert.Equal(t, "A", p.Title)
	assert.Equal(t, "b", p.ShortDescription)
	assert.Equal(t, "c", p.Description)
	assert.Equal(t, "d.png", p.Image)
	assert.Equal(t, p.CreatedAt, p.UpdatedAt)
}

func TestPatch_ApplyTo(t *testing.T) {
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	base := func() *Project {
		return NewProject("id-1", CreateInput{Title: "A", ShortDescription: "b", Description: "c", Image: "d.png"}, created)
	}

	t.Run("touches only supplied fields", func(t *testing.T) {
		p := base()
		Patch{Description: strPtr("c2")}.ApplyTo(p, created.Add(time.Second))

		assert.Equal(t, "A", p.Title)
		assert.Equal(t, "c2", p.Description)
		assert.Equal(t, created, p.CreatedAt)
		assert.Equal(t, created.Add(time.Second), p.UpdatedAt)
	})

	t.Run("allows empty values", func(t *testing.T) {
		p := base()
		Patch{Title: strPtr("")}.ApplyTo(p, created.Add(time.Second))
		assert.Equal(t, "", p.Title)
	})

	t.Run("advances updatedAt even when the clock does not", func(t *testing.T) {
		p := base()
		Patch{}.ApplyTo(p, created)
		assert.True(t, p.UpdatedAt.After(created))
	})
}

func TestPatch_Fields(t *testing.T) {
	assert.Empty(t, Patch{}.Fields())
	assert.Equal(t,
		map[string]string{"title": "X", "image": ""},
		Patch{Title: strPtr("X"), Image: strPtr("")}.Fields(),
	)
}

func TestNextUpdate(t *testing.T) {
	prev := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, prev.Add(time.Minute), NextUpdate(prev, prev.Add(time.Minute)))
	assert.Equal(t, prev.Add(time.Millisecond), NextUpdate(prev, prev))
	assert.Equal(t, prev.Add(time.Millisecond), NextUpdate(prev, prev.Add(-time.Hour)))
}
