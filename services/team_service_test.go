package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ndcacricket/registration-system/credentials"
)

func newTeamServiceForTest(t *testing.T, repo *fakeTeamRepo, mailer *fakeMailer, uploader *recordingUploader) (TeamService, *fakeFeed) {
	t.Helper()
	feed := &fakeFeed{}
	svc := NewTeamService(repo, newTestUploadStore(uploader), mailer, credentials.PlaintextVerifier{}, feed, testLogger(t))
	return svc, feed
}

func validRegisterInput() RegisterTeamInput {
	return RegisterTeamInput{
		TeamName:        "Nagpur Strikers",
		ClubName:        "Nagpur CC",
		CaptainName:     "R. Deshmukh",
		ContactNumber:   "9000000001",
		Email:           "captain@example.com",
		AadhaarNumber:   "123412341234",
		Username:        "strikers",
		Password:        "Secret123",
		ConfirmPassword: "Secret123",
	}
}

func TestRegisterTeamPasswordMismatch(t *testing.T) {
	repo := newFakeTeamRepo()
	uploader := &recordingUploader{}
	svc, _ := newTeamServiceForTest(t, repo, &fakeMailer{}, uploader)

	input := validRegisterInput()
	input.ConfirmPassword = "Different"

	_, err := svc.Register(context.Background(), input)
	if !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("got %v, want ErrPasswordMismatch", err)
	}
	if len(repo.created) != 0 {
		t.Error("team persisted despite password mismatch")
	}
	if len(uploader.keys) != 0 {
		t.Error("files stored despite password mismatch")
	}
}

func TestRegisterTeamDuplicateUsername(t *testing.T) {
	repo := newFakeTeamRepo()
	repo.usernameCount = 1
	uploader := &recordingUploader{}
	svc, _ := newTeamServiceForTest(t, repo, &fakeMailer{}, uploader)

	input := validRegisterInput()
	input.TeamLogo = &UploadedFile{
		Field: "teamLogo", Name: "logo.png", ContentType: "image/png",
		Size: 128, Reader: strings.NewReader("logo"),
	}

	_, err := svc.Register(context.Background(), input)
	if !errors.Is(err, ErrDuplicateUsername) {
		t.Fatalf("got %v, want ErrDuplicateUsername", err)
	}
	if len(uploader.keys) != 0 {
		t.Error("upload stored before duplicate check rejected the request")
	}
}

func TestRegisterTeamSuccess(t *testing.T) {
	repo := newFakeTeamRepo()
	mailer := &fakeMailer{}
	uploader := &recordingUploader{}
	svc, feed := newTeamServiceForTest(t, repo, mailer, uploader)

	input := validRegisterInput()
	input.TeamLogo = &UploadedFile{
		Field: "teamLogo", Name: "logo.png", ContentType: "image/png",
		Size: 128, Reader: strings.NewReader("logo"),
	}
	input.Receipt = &UploadedFile{
		Field: "receipt", Name: "receipt.pdf", ContentType: "application/pdf",
		Size: 256, Reader: strings.NewReader("receipt"),
	}

	team, err := svc.Register(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(team.TeamID) != 8 {
		t.Errorf("team token %q, want 8 hex chars", team.TeamID)
	}
	if team.Password != "Secret123" {
		t.Errorf("plaintext scheme should store the password verbatim, got %q", team.Password)
	}
	if team.LogoPath == nil || !strings.HasPrefix(*team.LogoPath, "/uploads/team_logo/") {
		t.Errorf("logo path = %v", team.LogoPath)
	}
	if team.ReceiptPath == nil || !strings.HasPrefix(*team.ReceiptPath, "/uploads/receipts/") {
		t.Errorf("receipt path = %v", team.ReceiptPath)
	}
	if len(mailer.registered) != 1 || mailer.registered[0] != "captain@example.com" {
		t.Errorf("registration email sends = %v", mailer.registered)
	}
	if len(feed.events) != 1 || feed.events[0] != "team_registered" {
		t.Errorf("feed events = %v", feed.events)
	}
}

func TestRegisterTeamEmailFailureAfterPersist(t *testing.T) {
	repo := newFakeTeamRepo()
	mailer := &fakeMailer{registerErr: errors.New("smtp down")}
	svc, feed := newTeamServiceForTest(t, repo, mailer, &recordingUploader{})

	_, err := svc.Register(context.Background(), validRegisterInput())
	if !errors.Is(err, ErrEmailDeliveryFailed) {
		t.Fatalf("got %v, want ErrEmailDeliveryFailed", err)
	}
	// The row stays: registration already committed before the send.
	if len(repo.created) != 1 {
		t.Errorf("created rows = %d, want 1", len(repo.created))
	}
	if len(feed.events) != 0 {
		t.Errorf("feed should not announce a registration that returned an error")
	}
}

func TestUpdateTeamKeepsLogoWithoutNewUpload(t *testing.T) {
	repo := newFakeTeamRepo()
	mailer := &fakeMailer{}
	svc, _ := newTeamServiceForTest(t, repo, mailer, &recordingUploader{})

	if _, err := svc.Register(context.Background(), func() RegisterTeamInput {
		in := validRegisterInput()
		in.TeamLogo = &UploadedFile{
			Field: "teamLogo", Name: "logo.png", ContentType: "image/png",
			Size: 64, Reader: strings.NewReader("logo"),
		}
		return in
	}()); err != nil {
		t.Fatalf("register: %v", err)
	}
	original, _ := repo.GetByID(context.Background(), 1)

	mailer.wg.Add(1)
	updated, err := svc.Update(context.Background(), 1, UpdateTeamInput{
		TeamName:        "Nagpur Strikers B",
		CaptainName:     original.CaptainName,
		ContactNumber:   original.ContactNumber,
		Email:           original.Email,
		AadhaarNumber:   original.AadhaarNumber,
		Username:        original.Username,
		Password:        "Secret123",
		ConfirmPassword: "Secret123",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	mailer.wg.Wait()

	if updated.LogoPath == nil || *updated.LogoPath != *original.LogoPath {
		t.Errorf("logo path changed without a new upload: %v vs %v", updated.LogoPath, original.LogoPath)
	}
	if updated.TeamID != original.TeamID {
		t.Errorf("team token changed on update")
	}
	if updated.ReceiptPath == nil && original.ReceiptPath != nil {
		t.Errorf("receipt path dropped on update")
	}
	if len(mailer.updated) != 1 {
		t.Errorf("update email sends = %v", mailer.updated)
	}
}

func TestUpdateTeamReplacesLogoWithNewUpload(t *testing.T) {
	repo := newFakeTeamRepo()
	mailer := &fakeMailer{}
	svc, _ := newTeamServiceForTest(t, repo, mailer, &recordingUploader{})

	if _, err := svc.Register(context.Background(), validRegisterInput()); err != nil {
		t.Fatalf("register: %v", err)
	}

	mailer.wg.Add(1)
	updated, err := svc.Update(context.Background(), 1, UpdateTeamInput{
		TeamName:        "Nagpur Strikers",
		CaptainName:     "R. Deshmukh",
		ContactNumber:   "9000000001",
		Email:           "captain@example.com",
		AadhaarNumber:   "123412341234",
		Username:        "strikers",
		Password:        "Secret123",
		ConfirmPassword: "Secret123",
		TeamLogo: &UploadedFile{
			Field: "teamLogo", Name: "new.png", ContentType: "image/png",
			Size: 64, Reader: strings.NewReader("new"),
		},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	mailer.wg.Wait()

	if updated.LogoPath == nil || !strings.HasPrefix(*updated.LogoPath, "/uploads/team_logo/") {
		t.Errorf("logo path = %v", updated.LogoPath)
	}
}

func TestUpdateTeamEmailFailureDoesNotGateResponse(t *testing.T) {
	repo := newFakeTeamRepo()
	mailer := &fakeMailer{updateErr: errors.New("smtp down")}
	svc, _ := newTeamServiceForTest(t, repo, mailer, &recordingUploader{})

	if _, err := svc.Register(context.Background(), validRegisterInput()); err != nil {
		t.Fatalf("register: %v", err)
	}

	mailer.wg.Add(1)
	_, err := svc.Update(context.Background(), 1, UpdateTeamInput{
		TeamName:        "Renamed",
		CaptainName:     "R. Deshmukh",
		ContactNumber:   "9000000001",
		Email:           "captain@example.com",
		AadhaarNumber:   "123412341234",
		Username:        "strikers",
		Password:        "Secret123",
		ConfirmPassword: "Secret123",
	})
	if err != nil {
		t.Fatalf("update should succeed despite email failure, got %v", err)
	}
	mailer.wg.Wait()
}

func TestUpdateTeamNotFound(t *testing.T) {
	svc, _ := newTeamServiceForTest(t, newFakeTeamRepo(), &fakeMailer{}, &recordingUploader{})

	_, err := svc.Update(context.Background(), 99, UpdateTeamInput{
		Password:        "p",
		ConfirmPassword: "p",
	})
	if !errors.Is(err, ErrTeamNotFound) {
		t.Fatalf("got %v, want ErrTeamNotFound", err)
	}
}
