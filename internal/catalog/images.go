package catalog

// NormalizeImages returns the string references held by v in their original
// order. Non-sequences yield an empty slice and non-string elements are skipped.
func NormalizeImages(v any) []string {
	out := []string{}

	elems, ok := sequence(v)
	if !ok {
		return out
	}
	for _, e := range elems {
		if s, ok := e.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// RemoveImageAt returns a copy of images without the element at index.
func RemoveImageAt(images []string, index int) []string {
	out := make([]string, 0, len(images))
	for i, img := range images {
		if i == index {
			continue
		}
		out = append(out, img)
	}
	return out
}

// PrimaryImage is the first image, or "" when there is none.
func PrimaryImage(images []string) string {
	if len(images) == 0 {
		return ""
	}
	return images[0]
}
