package services

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func newNewsServiceForTest(t *testing.T, repo *fakeNewsRepo, uploader *recordingUploader) (NewsService, *fakeFeed) {
	t.Helper()
	feed := &fakeFeed{}
	svc := NewNewsService(repo, newTestUploadStore(uploader), feed, testLogger(t))
	return svc, feed
}

func TestPublishNewsStoresImagesAndBroadcasts(t *testing.T) {
	repo := newFakeNewsRepo()
	uploader := &recordingUploader{}
	svc, feed := newNewsServiceForTest(t, repo, uploader)

	item, err := svc.Publish(context.Background(), PublishNewsInput{
		Headline:        "Season opener announced",
		Description:     "Fixtures released for the under-19 league.",
		PublicationDate: "2026-08-28",
		Category:        "announcement",
		Image1: &UploadedFile{
			Field: "image1", Name: "banner.png", ContentType: "image/png",
			Size: 512, Reader: strings.NewReader("img"),
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if item.ID == 0 {
		t.Error("item not assigned an id")
	}
	if item.Image1 == nil || !strings.HasPrefix(*item.Image1, "/uploads/News/") {
		t.Errorf("image1 = %v", item.Image1)
	}
	if item.Image2 != nil || item.Image3 != nil {
		t.Errorf("absent images should stay nil: %v %v", item.Image2, item.Image3)
	}
	if len(feed.events) != 1 || feed.events[0] != "news_published" {
		t.Errorf("feed events = %v", feed.events)
	}
}

func TestPatchNewsHeadlineOnly(t *testing.T) {
	repo := newFakeNewsRepo()
	svc, feed := newNewsServiceForTest(t, repo, &recordingUploader{})

	if _, err := svc.Publish(context.Background(), PublishNewsInput{
		Headline:    "Old headline",
		Description: "Body",
		Category:    "match",
	}); err != nil {
		t.Fatalf("publish: %v", err)
	}

	item, err := svc.Patch(context.Background(), 1, PatchNewsInput{Headline: "New headline"})
	if err != nil {
		t.Fatalf("patch: %v", err)
	}

	if item.Headline != "New headline" {
		t.Errorf("headline = %q", item.Headline)
	}
	if item.Description != "Body" {
		t.Errorf("description changed: %q", item.Description)
	}
	if len(repo.patches) != 1 {
		t.Fatalf("patches applied = %d", len(repo.patches))
	}
	patch := repo.patches[0]
	if patch.Description != nil || patch.Category != nil || patch.Image1 != nil {
		t.Errorf("patch carries fields that were not supplied: %+v", patch)
	}
	if len(feed.events) != 2 || feed.events[1] != "news_updated" {
		t.Errorf("feed events = %v", feed.events)
	}
}

func TestPatchNewsReplacesImageSlot(t *testing.T) {
	repo := newFakeNewsRepo()
	svc, _ := newNewsServiceForTest(t, repo, &recordingUploader{})

	if _, err := svc.Publish(context.Background(), PublishNewsInput{
		Headline: "h", Description: "d", Category: "c",
		Image2: &UploadedFile{
			Field: "image2", Name: "old.png", ContentType: "image/png",
			Size: 10, Reader: strings.NewReader("old"),
		},
	}); err != nil {
		t.Fatalf("publish: %v", err)
	}

	item, err := svc.Patch(context.Background(), 1, PatchNewsInput{
		Image2: &UploadedFile{
			Field: "image2", Name: "new.png", ContentType: "image/png",
			Size: 10, Reader: strings.NewReader("new"),
		},
	})
	if err != nil {
		t.Fatalf("patch: %v", err)
	}
	if item.Image2 == nil || !strings.HasPrefix(*item.Image2, "/uploads/News/") {
		t.Errorf("image2 = %v", item.Image2)
	}
}

func TestPatchNewsEmptyPatchRejected(t *testing.T) {
	repo := newFakeNewsRepo()
	svc, _ := newNewsServiceForTest(t, repo, &recordingUploader{})

	if _, err := svc.Publish(context.Background(), PublishNewsInput{
		Headline: "h", Description: "d", Category: "c",
	}); err != nil {
		t.Fatalf("publish: %v", err)
	}

	_, err := svc.Patch(context.Background(), 1, PatchNewsInput{})
	if !errors.Is(err, ErrNoFieldsToUpdate) {
		t.Fatalf("got %v, want ErrNoFieldsToUpdate", err)
	}
	if len(repo.patches) != 0 {
		t.Error("empty patch reached the repository")
	}
}

func TestPatchNewsNotFound(t *testing.T) {
	svc, _ := newNewsServiceForTest(t, newFakeNewsRepo(), &recordingUploader{})

	_, err := svc.Patch(context.Background(), 42, PatchNewsInput{Headline: "x"})
	if !errors.Is(err, ErrNewsNotFound) {
		t.Fatalf("got %v, want ErrNewsNotFound", err)
	}
}

func TestDeleteNewsNotFound(t *testing.T) {
	svc, _ := newNewsServiceForTest(t, newFakeNewsRepo(), &recordingUploader{})

	if err := svc.Delete(context.Background(), 42); !errors.Is(err, ErrNewsNotFound) {
		t.Fatalf("got %v, want ErrNewsNotFound", err)
	}
}
