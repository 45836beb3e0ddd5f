// Package editor holds the interactive state of one content-block
// editing session: which block kind the operator is authoring, the
// pending input fields, and whether a commit appends or replaces.
package editor

import (
	"context"
	"errors"
	"fmt"

	"roamcms/internal/models"
	"roamcms/internal/uploader"
	"roamcms/internal/utils"
)

// appendTarget marks append mode; any other editTarget value is the
// index of the block being replaced.
const appendTarget = -1

var (
	ErrNoActiveKind   = errors.New("请先选择内容类型")
	ErrKindNotAllowed = errors.New("该内容类型在此处不可用")
)

// Editor builds one block at a time against a BlockList it does not
// own exclusively: the surrounding session serializes all access.
type Editor struct {
	list    *models.BlockList
	allowed models.KindSet

	ActiveKind   models.BlockKind // "" 表示尚未选择
	PendingText  string
	PendingURL   string
	PendingImage *models.ImageFile

	editTarget int
	onChange   func()
}

// New wires an editor to a block list. onChange fires after every
// successful mutation (commit or remove) so the owner can recompute
// derived fields; it may be nil.
func New(list *models.BlockList, allowed models.KindSet, onChange func()) *Editor {
	return &Editor{
		list:       list,
		allowed:    allowed,
		editTarget: appendTarget,
		onChange:   onChange,
	}
}

// SelectKind starts authoring a fresh block of the given kind in append
// mode, discarding any pending input.
func (e *Editor) SelectKind(kind models.BlockKind) error {
	if !e.allowed.Allows(kind) {
		return ErrKindNotAllowed
	}
	e.ActiveKind = kind
	e.reset()
	return nil
}

// StartEdit preloads the pending fields from an existing block and arms
// the editor to replace it on the next commit.
func (e *Editor) StartEdit(i int) error {
	if i < 0 || i >= len(*e.list) {
		return fmt.Errorf("内容块索引越界: %d", i)
	}
	b := (*e.list)[i]
	e.ActiveKind = b.Kind
	e.PendingText = b.Text
	e.PendingURL = b.URL
	e.PendingImage = nil
	e.editTarget = i
	return nil
}

// SetPending records the operator's current input.
func (e *Editor) SetPending(text, url string) {
	e.PendingText = text
	e.PendingURL = url
}

// SetPendingImage records a freshly picked, not-yet-uploaded image.
func (e *Editor) SetPendingImage(f *models.ImageFile) {
	e.PendingImage = f
}

// Editing reports the index being replaced, or -1 in append mode.
func (e *Editor) Editing() int {
	return e.editTarget
}

// CanCommit is the commit button's enabled state: every field the
// active kind requires must be filled in.
func (e *Editor) CanCommit() bool {
	switch e.ActiveKind {
	case models.BlockHeading1, models.BlockHeading2, models.BlockParagraph:
		return e.PendingText != ""
	case models.BlockLink, models.BlockCTA:
		return e.PendingText != "" && e.PendingURL != ""
	case models.BlockImage:
		return e.PendingImage != nil || e.PendingURL != ""
	default:
		return false
	}
}

// Commit validates the pending input and applies it: append mode adds
// the new block to the end, edit mode replaces the target in place.
// For image blocks the pending file is uploaded first; an upload
// failure propagates and leaves the list untouched. Success resets the
// editor to its awaiting-input state.
func (e *Editor) Commit(ctx context.Context, up uploader.Uploader) error {
	if e.ActiveKind == "" {
		return ErrNoActiveKind
	}
	if !e.CanCommit() {
		return e.buildBlock("").Validate()
	}

	imageURL := e.PendingURL
	if e.ActiveKind == models.BlockImage && e.PendingImage != nil {
		f := e.PendingImage
		uploaded, err := up.Upload(ctx, f.Name, f.Data, f.ContentType)
		if err != nil {
			return err
		}
		imageURL = uploaded
	}

	block := e.buildBlock(imageURL)
	if err := block.Validate(); err != nil {
		return err
	}

	if e.editTarget == appendTarget {
		e.list.Append(block)
	} else if err := e.list.ReplaceAt(e.editTarget, block); err != nil {
		return err
	}

	e.ActiveKind = ""
	e.reset()
	if e.onChange != nil {
		e.onChange()
	}
	return nil
}

// Remove deletes the block at i; trailing blocks shift down one index.
func (e *Editor) Remove(i int) error {
	if err := e.list.RemoveAt(i); err != nil {
		return err
	}
	// Removing the block under edit would leave the target dangling.
	if e.editTarget != appendTarget && i <= e.editTarget {
		e.ActiveKind = ""
		e.reset()
	}
	if e.onChange != nil {
		e.onChange()
	}
	return nil
}

func (e *Editor) buildBlock(imageURL string) models.Block {
	switch e.ActiveKind {
	case models.BlockLink, models.BlockCTA:
		return models.Block{
			Kind: e.ActiveKind,
			Text: e.PendingText,
			URL:  utils.NormalizeURL(e.PendingURL),
		}
	case models.BlockImage:
		return models.Block{Kind: models.BlockImage, URL: imageURL}
	default:
		return models.Block{Kind: e.ActiveKind, Text: e.PendingText}
	}
}

func (e *Editor) reset() {
	e.PendingText = ""
	e.PendingURL = ""
	e.PendingImage = nil
	e.editTarget = appendTarget
}
