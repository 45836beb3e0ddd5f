package editor

import (
	"context"
	"errors"
	"testing"
	"time"

	"roamcms/internal/models"
)

// fakeUploader counts calls and can be armed to fail.
type fakeUploader struct {
	calls int
	url   string
	err   error
}

func (f *fakeUploader) Upload(ctx context.Context, name string, data []byte, contentType string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

func newTestEditor(list *models.BlockList) *Editor {
	return New(list, models.ArticleKinds, nil)
}

func TestCommitAppendsParagraph(t *testing.T) {
	var list models.BlockList
	e := newTestEditor(&list)

	if err := e.SelectKind(models.BlockParagraph); err != nil {
		t.Fatal(err)
	}
	e.SetPending("Hallo Welt", "")

	if err := e.Commit(context.Background(), nil); err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].Text != "Hallo Welt" {
		t.Fatalf("list = %+v", list)
	}
	if e.ActiveKind != "" || e.PendingText != "" {
		t.Error("commit did not reset pending state")
	}
}

func TestCommitLinkWithoutURLIsNoOp(t *testing.T) {
	list := models.BlockList{{Kind: models.BlockParagraph, Text: "bestehend"}}
	e := newTestEditor(&list)

	e.SelectKind(models.BlockLink)
	e.SetPending("klick mich", "")

	err := e.Commit(context.Background(), nil)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if len(list) != 1 {
		t.Errorf("list mutated on invalid commit: %+v", list)
	}
	// Editor must stay in its awaiting-input state.
	if e.ActiveKind != models.BlockLink || e.PendingText != "klick mich" {
		t.Error("pending state was cleared by a failed commit")
	}
}

func TestCommitNormalizesLinkURL(t *testing.T) {
	var list models.BlockList
	e := newTestEditor(&list)

	e.SelectKind(models.BlockCTA)
	e.SetPending("Jetzt buchen", "example.com/book")

	if err := e.Commit(context.Background(), nil); err != nil {
		t.Fatal(err)
	}
	if list[0].URL != "https://example.com/book" {
		t.Errorf("url = %q, want https prefix", list[0].URL)
	}
}

func TestCommitImageUploadsFirst(t *testing.T) {
	var list models.BlockList
	e := newTestEditor(&list)
	up := &fakeUploader{url: "https://cdn.example/neu.jpg"}

	e.SelectKind(models.BlockImage)
	e.SetPendingImage(&models.ImageFile{Name: "neu.jpg", Data: []byte{1}, ContentType: "image/jpeg"})

	if err := e.Commit(context.Background(), up); err != nil {
		t.Fatal(err)
	}
	if up.calls != 1 {
		t.Errorf("upload called %d times, want 1", up.calls)
	}
	if len(list) != 1 || list[0].URL != "https://cdn.example/neu.jpg" {
		t.Fatalf("list = %+v", list)
	}
}

func TestCommitImageUploadFailureLeavesListUntouched(t *testing.T) {
	list := models.BlockList{{Kind: models.BlockParagraph, Text: "davor"}}
	e := newTestEditor(&list)
	up := &fakeUploader{err: errors.New("host unreachable")}

	e.SelectKind(models.BlockImage)
	e.SetPendingImage(&models.ImageFile{Name: "kaputt.jpg", Data: []byte{1}})

	err := e.Commit(context.Background(), up)
	if err == nil {
		t.Fatal("expected upload error to propagate")
	}
	if len(list) != 1 {
		t.Errorf("partial block inserted after failed upload: %+v", list)
	}
}

func TestCommitWithoutImageFileIsNoOp(t *testing.T) {
	var list models.BlockList
	e := newTestEditor(&list)
	up := &fakeUploader{url: "https://cdn.example/x.jpg"}

	e.SelectKind(models.BlockImage)

	if err := e.Commit(context.Background(), up); err == nil {
		t.Fatal("expected validation error")
	}
	if up.calls != 0 {
		t.Error("upload must not run without a pending file")
	}
	if len(list) != 0 {
		t.Errorf("list mutated: %+v", list)
	}
}

func TestStartEditReplacesInPlace(t *testing.T) {
	list := models.BlockList{
		{Kind: models.BlockHeading1, Text: "alt"},
		{Kind: models.BlockParagraph, Text: "bleibt"},
	}
	e := newTestEditor(&list)

	if err := e.StartEdit(0); err != nil {
		t.Fatal(err)
	}
	if e.PendingText != "alt" || e.Editing() != 0 {
		t.Fatalf("edit preload wrong: text=%q target=%d", e.PendingText, e.Editing())
	}

	e.SetPending("neu", "")
	if err := e.Commit(context.Background(), nil); err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 {
		t.Fatalf("replace changed length: %d", len(list))
	}
	if list[0].Text != "neu" || list[1].Text != "bleibt" {
		t.Errorf("list = %+v", list)
	}
	if e.Editing() != -1 {
		t.Error("commit did not return to append mode")
	}
}

func TestSelectKindRejectsDisallowed(t *testing.T) {
	var list models.BlockList
	e := New(&list, models.CamperKinds, nil)

	if err := e.SelectKind(models.BlockImage); !errors.Is(err, ErrKindNotAllowed) {
		t.Errorf("err = %v, want ErrKindNotAllowed", err)
	}
}

func TestRemoveShiftsTrailingBlocks(t *testing.T) {
	list := models.BlockList{
		{Kind: models.BlockParagraph, Text: "a"},
		{Kind: models.BlockParagraph, Text: "b"},
		{Kind: models.BlockParagraph, Text: "c"},
	}
	e := newTestEditor(&list)

	if err := e.Remove(1); err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 || list[0].Text != "a" || list[1].Text != "c" {
		t.Errorf("list = %+v", list)
	}
}

func TestSessionStoreLifecycle(t *testing.T) {
	store := NewStore()
	draft := &models.Draft{Kind: models.KindArticle}

	sess := store.Create(draft)
	if sess.ID == "" {
		t.Fatal("session id missing")
	}

	got, err := store.Get(sess.ID)
	if err != nil || got != sess {
		t.Fatalf("Get = %v, %v", got, err)
	}

	store.Delete(sess.ID)
	if _, err := store.Get(sess.ID); err == nil {
		t.Error("deleted session still retrievable")
	}
}

func TestSessionRecomputesExcerptOnChange(t *testing.T) {
	store := NewStore()
	draft := &models.Draft{Kind: models.KindArticle}
	sess := store.Create(draft)

	err := sess.Do(func(d *models.Draft, e *Editor) error {
		e.SelectKind(models.BlockParagraph)
		e.SetPending("hello", "")
		return e.Commit(context.Background(), nil)
	})
	if err != nil {
		t.Fatal(err)
	}
	if draft.Excerpt != "hello" {
		t.Errorf("excerpt = %q, want %q", draft.Excerpt, "hello")
	}

	err = sess.Do(func(d *models.Draft, e *Editor) error {
		return e.Remove(0)
	})
	if err != nil {
		t.Fatal(err)
	}
	if draft.Excerpt != "" {
		t.Errorf("excerpt not recomputed after remove: %q", draft.Excerpt)
	}
}

func TestSweepDropsIdleSessions(t *testing.T) {
	store := NewStore()
	sess := store.Create(&models.Draft{Kind: models.KindCamper})

	if removed := store.Sweep(time.Hour); removed != 0 {
		t.Errorf("fresh session swept: %d", removed)
	}
	if removed := store.Sweep(-time.Millisecond); removed != 1 {
		t.Errorf("idle session not swept: %d", removed)
	}
	if _, err := store.Get(sess.ID); err == nil {
		t.Error("swept session still retrievable")
	}
}
