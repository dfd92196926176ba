package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeImages(t *testing.T) {
	assert.Equal(t, []string{}, NormalizeImages(nil))
	assert.Equal(t, []string{}, NormalizeImages("https://cdn/a.jpg"))
	assert.Equal(t, []string{}, NormalizeImages(map[string]any{"0": "a"}))

	in := []any{"b.jpg", "a.jpg", "b.jpg", 42, nil}
	assert.Equal(t, []string{"b.jpg", "a.jpg", "b.jpg"}, NormalizeImages(in),
		"order and duplicates are preserved")

	assert.Equal(t, []string{"x", "y"}, NormalizeImages([]string{"x", "y"}))
}

func TestRemoveImageAt(t *testing.T) {
	images := []string{"a", "b", "c", "d"}

	assert.Equal(t, []string{"a", "c", "d"}, RemoveImageAt(images, 1))
	assert.Equal(t, []string{"b", "c", "d"}, RemoveImageAt(images, 0))
	assert.Equal(t, []string{"a", "b", "c", "d"}, RemoveImageAt(images, 9))
	assert.Equal(t, []string{"a", "b", "c", "d"}, RemoveImageAt(images, -1))
	assert.Equal(t, []string{"a", "b", "c", "d"}, images)
}

func TestPrimaryImage(t *testing.T) {
	assert.Equal(t, "", PrimaryImage(nil))
	assert.Equal(t, "front.jpg", PrimaryImage([]string{"front.jpg", "side.jpg"}))
}
