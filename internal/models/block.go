package models

import (
	"errors"
	"fmt"
)

// BlockKind tags one content block variant.
type BlockKind string

const (
	BlockHeading1  BlockKind = "h1"
	BlockHeading2  BlockKind = "h2"
	BlockParagraph BlockKind = "p"
	BlockLink      BlockKind = "link"
	BlockCTA       BlockKind = "cta"
	BlockImage     BlockKind = "img"
)

// Block is one atomic unit of body content. Text carries the visible
// text for every kind except img; URL is set for link, cta and img.
type Block struct {
	Kind BlockKind `json:"type" form:"type"`
	Text string    `json:"text,omitempty" form:"text"`
	URL  string    `json:"url,omitempty" form:"url"`
}

var (
	ErrEmptyText    = errors.New("内容不能为空")
	ErrEmptyURL     = errors.New("链接地址不能为空")
	ErrEmptyImage   = errors.New("请先选择图片")
	ErrUnknownBlock = errors.New("未知的内容类型")
)

// Validate checks the per-kind constraints a block must satisfy before
// it may enter a BlockList.
func (b Block) Validate() error {
	switch b.Kind {
	case BlockHeading1, BlockHeading2, BlockParagraph:
		if b.Text == "" {
			return ErrEmptyText
		}
	case BlockLink, BlockCTA:
		if b.Text == "" {
			return ErrEmptyText
		}
		if b.URL == "" {
			return ErrEmptyURL
		}
	case BlockImage:
		if b.URL == "" {
			return ErrEmptyImage
		}
	default:
		return ErrUnknownBlock
	}
	return nil
}

// BlockList is the ordered body of a listing or article. Order is
// display order. The only mutators are Append, ReplaceAt and RemoveAt.
type BlockList []Block

func (l *BlockList) Append(b Block) {
	*l = append(*l, b)
}

func (l *BlockList) ReplaceAt(i int, b Block) error {
	if i < 0 || i >= len(*l) {
		return fmt.Errorf("内容块索引越界: %d", i)
	}
	(*l)[i] = b
	return nil
}

func (l *BlockList) RemoveAt(i int) error {
	if i < 0 || i >= len(*l) {
		return fmt.Errorf("内容块索引越界: %d", i)
	}
	*l = append((*l)[:i], (*l)[i+1:]...)
	return nil
}

// KindSet lists the block kinds an entity type allows in its editor.
type KindSet []BlockKind

func (s KindSet) Allows(k BlockKind) bool {
	for _, kind := range s {
		if kind == k {
			return true
		}
	}
	return false
}

// Camper listings have no inline images; the travel magazine allows
// the full set.
var (
	CamperKinds  = KindSet{BlockHeading1, BlockHeading2, BlockParagraph, BlockLink, BlockCTA}
	ArticleKinds = KindSet{BlockHeading1, BlockHeading2, BlockParagraph, BlockLink, BlockCTA, BlockImage}
)
