package utils

import "strings"

// SlugFromTitle derives the routing slug by replacing spaces with
// hyphens, and TitleFromSlug reverses it for the API lookup.
//
// The round trip is lossy for titles that legitimately contain hyphens;
// the external API is keyed by title, so this mirrors the marketplace's
// existing URLs rather than introducing a new key.
func SlugFromTitle(title string) string {
	return strings.ReplaceAll(title, " ", "-")
}

func TitleFromSlug(slug string) string {
	return strings.ReplaceAll(slug, "-", " ")
}
