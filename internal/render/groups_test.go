package render

import (
	"reflect"
	"testing"

	"roamcms/internal/models"
)

func img(url string) models.Block {
	return models.Block{Kind: models.BlockImage, URL: url}
}

func para(text string) models.Block {
	return models.Block{Kind: models.BlockParagraph, Text: text}
}

func TestBuildGroupsMapsSingleBlocks(t *testing.T) {
	blocks := models.BlockList{
		{Kind: models.BlockHeading1, Text: "Unterwegs"},
		para("Ein Absatz."),
		{Kind: models.BlockLink, Text: "mehr", URL: "https://x.com"},
		{Kind: models.BlockCTA, Text: "Jetzt buchen", URL: "https://x.com/book"},
	}

	groups := BuildGroups(blocks)
	if len(groups) != 4 {
		t.Fatalf("got %d groups, want 4", len(groups))
	}
	wantKinds := []GroupKind{GroupHeading1, GroupParagraph, GroupLink, GroupCTA}
	for i, k := range wantKinds {
		if groups[i].Kind != k {
			t.Errorf("group %d kind = %s, want %s", i, groups[i].Kind, k)
		}
	}
}

func TestBuildGroupsCoalescesImageRun(t *testing.T) {
	blocks := models.BlockList{
		para("davor"),
		img("https://cdn.example/1.jpg"),
		img("https://cdn.example/2.jpg"),
		img("https://cdn.example/3.jpg"),
		para("danach"),
	}

	groups := BuildGroups(blocks)
	if len(groups) != 3 {
		t.Fatalf("got %d groups, want 3", len(groups))
	}
	g := groups[1]
	if g.Kind != GroupGallery {
		t.Fatalf("middle group kind = %s, want gallery", g.Kind)
	}
	want := []string{"https://cdn.example/1.jpg", "https://cdn.example/2.jpg", "https://cdn.example/3.jpg"}
	if !reflect.DeepEqual(g.Images, want) {
		t.Errorf("gallery images out of order: %v", g.Images)
	}
	if g.Columns != 3 {
		t.Errorf("gallery columns = %d, want 3", g.Columns)
	}
}

func TestBuildGroupsLoneImage(t *testing.T) {
	blocks := models.BlockList{
		para("davor"),
		img("https://cdn.example/solo.jpg"),
		para("danach"),
	}

	groups := BuildGroups(blocks)
	if len(groups) != 3 {
		t.Fatalf("got %d groups, want 3", len(groups))
	}
	if groups[1].Kind != GroupImage {
		t.Errorf("lone image group kind = %s, want image", groups[1].Kind)
	}
	if len(groups[1].Images) != 1 {
		t.Errorf("lone image group holds %d images", len(groups[1].Images))
	}
}

func TestBuildGroupsTrailingImageRun(t *testing.T) {
	blocks := models.BlockList{
		para("text"),
		img("https://cdn.example/1.jpg"),
		img("https://cdn.example/2.jpg"),
	}

	groups := BuildGroups(blocks)
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
	if groups[1].Kind != GroupGallery || len(groups[1].Images) != 2 {
		t.Errorf("trailing run not flushed as gallery: %+v", groups[1])
	}
}

func TestBuildGroupsSkipsUnknownKinds(t *testing.T) {
	blocks := models.BlockList{
		{Kind: "video", Text: "weg damit"},
		para("bleibt"),
	}

	groups := BuildGroups(blocks)
	if len(groups) != 1 || groups[0].Kind != GroupParagraph {
		t.Errorf("unknown kind should emit nothing: %+v", groups)
	}
}

func TestBuildGroupsIdempotentAndPure(t *testing.T) {
	blocks := models.BlockList{
		{Kind: models.BlockHeading2, Text: "Galerie"},
		img("https://cdn.example/1.jpg"),
		img("https://cdn.example/2.jpg"),
	}
	snapshot := append(models.BlockList(nil), blocks...)

	first := BuildGroups(blocks)
	second := BuildGroups(blocks)

	if !reflect.DeepEqual(first, second) {
		t.Error("repeated renders of equal input differ")
	}
	if !reflect.DeepEqual(blocks, snapshot) {
		t.Error("BuildGroups mutated its input")
	}
	if len(first) > len(blocks) {
		t.Errorf("%d groups from %d blocks", len(first), len(blocks))
	}
}

func TestBuildGroupsEmpty(t *testing.T) {
	if groups := BuildGroups(nil); len(groups) != 0 {
		t.Errorf("empty content produced %d groups", len(groups))
	}
}
