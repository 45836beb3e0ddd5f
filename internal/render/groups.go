// Package render turns a block list into the display groups the
// templates lay out. It is a pure view-model build: the input list is
// never mutated and equal inputs yield equal outputs.
package render

import "roamcms/internal/models"

// GroupKind tags one display grouping.
type GroupKind string

const (
	GroupHeading1  GroupKind = "h1"
	GroupHeading2  GroupKind = "h2"
	GroupParagraph GroupKind = "p"
	GroupLink      GroupKind = "link"
	GroupCTA       GroupKind = "cta"
	GroupImage     GroupKind = "image"   // one full-width image
	GroupGallery   GroupKind = "gallery" // two or more adjacent images
)

// galleryColumns is the fixed column count for multi-image galleries.
const galleryColumns = 3

// Group is one display grouping. Text/URL are set for the single-block
// kinds; Images holds the image URLs of an image or gallery group.
type Group struct {
	Kind    GroupKind `json:"kind"`
	Text    string    `json:"text,omitempty"`
	URL     string    `json:"url,omitempty"`
	Images  []string  `json:"images,omitempty"`
	Columns int       `json:"columns,omitempty"`
}

// BuildGroups scans the blocks left to right, buffering runs of
// adjacent image blocks. A run of one becomes a single-image group, a
// run of two or more becomes one gallery group holding all its images
// in original order. Every other recognized block maps to exactly one
// group; unrecognized kinds are skipped. One linear pass, and the
// output never has more groups than there are blocks.
func BuildGroups(blocks models.BlockList) []Group {
	groups := make([]Group, 0, len(blocks))
	var imageRun []string

	flush := func() {
		switch len(imageRun) {
		case 0:
		case 1:
			groups = append(groups, Group{Kind: GroupImage, Images: imageRun})
		default:
			groups = append(groups, Group{Kind: GroupGallery, Images: imageRun, Columns: galleryColumns})
		}
		imageRun = nil
	}

	for _, b := range blocks {
		if b.Kind == models.BlockImage {
			imageRun = append(imageRun, b.URL)
			continue
		}
		flush()

		switch b.Kind {
		case models.BlockHeading1:
			groups = append(groups, Group{Kind: GroupHeading1, Text: b.Text})
		case models.BlockHeading2:
			groups = append(groups, Group{Kind: GroupHeading2, Text: b.Text})
		case models.BlockParagraph:
			groups = append(groups, Group{Kind: GroupParagraph, Text: b.Text})
		case models.BlockLink:
			groups = append(groups, Group{Kind: GroupLink, Text: b.Text, URL: b.URL})
		case models.BlockCTA:
			groups = append(groups, Group{Kind: GroupCTA, Text: b.Text, URL: b.URL})
		}
	}
	flush()

	return groups
}
