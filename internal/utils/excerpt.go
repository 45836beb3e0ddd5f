package utils

import "roamcms/internal/models"

// ExcerptLength is the maximum excerpt size in runes.
const ExcerptLength = 150

// ExcerptFromBlocks derives a listing excerpt from body content: the
// text of the first paragraph block, falling back to the first block's
// text when no paragraph exists. Truncation appends "...".
//
// Runes, not bytes, so multi-byte text is never cut mid-character.
func ExcerptFromBlocks(blocks models.BlockList) string {
	if len(blocks) == 0 {
		return ""
	}

	source := blocks[0].Text
	for _, b := range blocks {
		if b.Kind == models.BlockParagraph {
			source = b.Text
			break
		}
	}

	runes := []rune(source)
	if len(runes) > ExcerptLength {
		return string(runes[:ExcerptLength]) + "..."
	}
	return source
}
