package app_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"dnl-site-backend-go/internal/app"
	mock_app "dnl-site-backend-go/internal/app/mocks"
	"dnl-site-backend-go/internal/gateway"
	"dnl-site-backend-go/internal/models"
	"dnl-site-backend-go/internal/notify"
	"dnl-site-backend-go/internal/settings"

	"go.uber.org/mock/gomock"
)

const (
	adminEmail    = "admin@dnl.pt"
	adminPassword = "segredo123"
)

type fixture struct {
	state     *app.State
	tables    *gateway.MemoryTables
	auth      *gateway.PasswordAuth
	settings  *settings.Store
	local     *settings.MemoryLocal
	notifier  *mock_app.MockNotifier
	generator *mock_app.MockDescriptionGenerator
	hook      *mock_app.MockHook
}

func newFixture(t *testing.T, ctrl *gomock.Controller) *fixture {
	t.Helper()
	tables := gateway.NewMemoryTables()
	storage, err := gateway.NewLocalStorage(t.TempDir(), "siteDNL", "/media")
	if err != nil {
		t.Fatalf("storage: %v", err)
	}
	auth := gateway.NewPasswordAuth(tables, gateway.Tokens{Secret: []byte("test"), Issuer: "dnl-site", TTL: time.Hour})
	if _, err := auth.CreateUser(context.Background(), adminEmail, adminPassword); err != nil {
		t.Fatalf("create admin: %v", err)
	}
	local := &settings.MemoryLocal{}
	store := settings.NewStore(tables, local)
	f := &fixture{
		tables:    tables,
		auth:      auth,
		settings:  store,
		local:     local,
		notifier:  mock_app.NewMockNotifier(ctrl),
		generator: mock_app.NewMockDescriptionGenerator(ctrl),
		hook:      mock_app.NewMockHook(ctrl),
	}
	f.state = app.New(app.Deps{
		Tables:    tables,
		Storage:   storage,
		Auth:      auth,
		Settings:  store,
		Notifier:  f.notifier,
		Generator: f.generator,
		Hooks:     []app.Hook{f.hook},
	})
	f.state.Start(context.Background())
	t.Cleanup(f.state.Close)
	return f
}

func (f *fixture) login(t *testing.T) string {
	t.Helper()
	result := f.state.Login(context.Background(), adminEmail, adminPassword)
	if !result.Success {
		t.Fatalf("login failed: %s", result.Error)
	}
	return result.Session.Token
}

func image(name string) app.Upload {
	return app.BytesUpload(name, "image/png", []byte("png-bytes"))
}

func brokenUpload(name string) app.Upload {
	return app.Upload{Filename: name, Open: func() (io.ReadCloser, error) { return nil, errors.New("unreadable") }}
}

func TestState_Reviews(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFixture(t, ctrl)

	f.hook.EXPECT().Handle(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e app.Event) error {
		if e.Type != app.ReviewSubmitted || e.Review == nil || e.Review.Approved {
			t.Errorf("unexpected event %+v", e)
		}
		return errors.New("email down")
	})

	created, err := f.state.AddReview(ctx, models.Review{ClientName: "Ana", Rating: 5, Comment: "Excelente", Approved: true})
	if err != nil {
		t.Fatalf("expected hook failure to be ignored, got %v", err)
	}
	if created.Approved {
		t.Fatalf("expected approval forced false")
	}
	if created.Date == "" {
		t.Fatalf("expected date defaulted")
	}

	t.Run("public read excludes unapproved", func(t *testing.T) {
		if got := f.state.Reviews(false); len(got) != 0 {
			t.Fatalf("expected no public reviews, got %v", got)
		}
	})

	f.login(t)
	if got := f.state.Reviews(true); len(got) != 1 {
		t.Fatalf("expected authenticated read to include the pending review, got %v", got)
	}

	t.Run("toggle twice", func(t *testing.T) {
		approved, err := f.state.ToggleReviewApproval(ctx, created.ID)
		if err != nil || !approved {
			t.Fatalf("expected approved, got %v (%v)", approved, err)
		}
		if got := f.state.Reviews(false); len(got) != 1 {
			t.Fatalf("expected review visible publicly, got %v", got)
		}
		approved, err = f.state.ToggleReviewApproval(ctx, created.ID)
		if err != nil || approved {
			t.Fatalf("expected unapproved, got %v (%v)", approved, err)
		}
		if got := f.state.Reviews(false); len(got) != 0 {
			t.Fatalf("expected review hidden again, got %v", got)
		}
		if got := f.state.Reviews(true); len(got) != 1 || got[0].Approved {
			t.Fatalf("expected original value restored, got %v", got)
		}
	})

	t.Run("validation", func(t *testing.T) {
		_, err := f.state.AddReview(ctx, models.Review{ClientName: "Rui", Rating: 7, Comment: "x"})
		var appErr *app.Error
		if !errors.As(err, &appErr) || appErr.Status != 400 {
			t.Fatalf("expected bad request, got %v", err)
		}
	})

	if err := f.state.DeleteReview(ctx, created.ID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got := f.state.Reviews(true); len(got) != 0 {
		t.Fatalf("expected review removed, got %v", got)
	}
}

func TestState_BudgetRequestScenario(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFixture(t, ctrl)
	f.login(t)

	var events []app.Event
	f.hook.EXPECT().Handle(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e app.Event) error {
		events = append(events, e)
		return nil
	}).AnyTimes()

	if _, err := f.state.CreateBudgetRequest(ctx, models.BudgetRequest{Name: "João", Email: "joao@example.com", Type: "Pintura"}, nil); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	created, err := f.state.CreateBudgetRequest(ctx, models.BudgetRequest{
		Name:        "Maria Silva",
		Email:       "maria@example.com",
		Phone:       "912345678",
		Type:        "Residencial",
		Description: "Renovar cozinha",
		Status:      models.BudgetContacted,
	}, []app.Upload{image("cozinha 1.png"), image("cozinha-2.png")})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if created.Status != models.BudgetPending {
		t.Fatalf("expected pending status, got %q", created.Status)
	}
	if len(created.Attachments) != 2 {
		t.Fatalf("expected two attachment links, got %v", created.Attachments)
	}

	list := f.state.BudgetRequests()
	if len(list) != 2 || list[0].ID != created.ID {
		t.Fatalf("expected Maria at the head of the list, got %+v", list)
	}

	last := events[len(events)-1]
	if last.Type != app.BudgetRequested || last.BudgetRequest == nil {
		t.Fatalf("unexpected event %+v", last)
	}
	msg := app.BudgetRequestMessage(*last.BudgetRequest)
	for _, link := range created.Attachments {
		if !strings.Contains(msg.Body, link) {
			t.Fatalf("expected notification body to contain %s, got %q", link, msg.Body)
		}
	}

	t.Run("status change only touches one row", func(t *testing.T) {
		if err := f.state.UpdateBudgetStatus(ctx, created.ID, models.BudgetContacted); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		for _, b := range f.state.BudgetRequests() {
			want := models.BudgetPending
			if b.ID == created.ID {
				want = models.BudgetContacted
			}
			if b.Status != want {
				t.Fatalf("expected %s for %s, got %s", want, b.Name, b.Status)
			}
		}
		err := f.state.UpdateBudgetStatus(ctx, created.ID, models.BudgetPending)
		var appErr *app.Error
		if !errors.As(err, &appErr) || appErr.Status != 400 {
			t.Fatalf("expected reverse transition rejected, got %v", err)
		}
	})

	t.Run("delete all", func(t *testing.T) {
		n, err := f.state.DeleteAllBudgetRequests(ctx)
		if err != nil || n != 2 {
			t.Fatalf("expected 2 deleted, got %d (%v)", n, err)
		}
		if got := f.state.BudgetRequests(); len(got) != 0 {
			t.Fatalf("expected empty collection, got %v", got)
		}
		if f.tables.Len(models.TableBudgetRequests) != 0 {
			t.Fatalf("expected empty table")
		}
	})
}

func TestState_BudgetRequestAnonymous(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFixture(t, ctrl)
	f.hook.EXPECT().Handle(gomock.Any(), gomock.Any()).Return(nil)

	created, err := f.state.CreateBudgetRequest(ctx, models.BudgetRequest{Name: "Rita", Email: "rita@example.com"},
		[]app.Upload{image("a.png"), brokenUpload("b.png")})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(created.Attachments) != 1 {
		t.Fatalf("expected failed attachment omitted, got %v", created.Attachments)
	}
	if got := f.state.BudgetRequests(); len(got) != 0 {
		t.Fatalf("expected public submitter to see no list, got %v", got)
	}

	_, err = f.state.CreateBudgetRequest(ctx, models.BudgetRequest{Name: "Rita", Email: "not-an-email"}, nil)
	var appErr *app.Error
	if !errors.As(err, &appErr) || appErr.Status != 400 {
		t.Fatalf("expected bad request, got %v", err)
	}
}

func TestState_BudgetAttachmentsWithSameName(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	dir := t.TempDir()
	storage, err := gateway.NewLocalStorage(dir, "siteDNL", "/media")
	if err != nil {
		t.Fatalf("storage: %v", err)
	}
	tables := gateway.NewMemoryTables()
	hook := mock_app.NewMockHook(ctrl)
	hook.EXPECT().Handle(gomock.Any(), gomock.Any()).Return(nil)
	state := app.New(app.Deps{
		Tables:   tables,
		Storage:  storage,
		Auth:     gateway.NewPasswordAuth(tables, gateway.Tokens{Secret: []byte("test"), Issuer: "dnl-site", TTL: time.Hour}),
		Settings: settings.NewStore(tables, &settings.MemoryLocal{}),
		Hooks:    []app.Hook{hook},
		Now:      func() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) },
	})
	defer state.Close()

	created, err := state.CreateBudgetRequest(ctx, models.BudgetRequest{Name: "Rita", Email: "rita@example.com"}, []app.Upload{
		app.BytesUpload("image.jpg", "image/jpeg", []byte("FIRST-PHOTO")),
		app.BytesUpload("image.jpg", "image/jpeg", []byte("SECOND-PHOTO")),
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(created.Attachments) != 2 || created.Attachments[0] == created.Attachments[1] {
		t.Fatalf("expected two distinct links, got %v", created.Attachments)
	}

	var contents []string
	for _, link := range created.Attachments {
		data, err := os.ReadFile(filepath.Join(dir, "siteDNL", filepath.Base(link)))
		if err != nil {
			t.Fatalf("read %s: %v", link, err)
		}
		contents = append(contents, string(data))
	}
	sort.Strings(contents)
	if contents[0] != "FIRST-PHOTO" || contents[1] != "SECOND-PHOTO" {
		t.Fatalf("expected both photos stored, got %v", contents)
	}
}

func TestState_AuthTransitions(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFixture(t, ctrl)
	f.hook.EXPECT().Handle(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	if _, err := f.state.CreateBudgetRequest(ctx, models.BudgetRequest{Name: "Rui", Email: "rui@example.com"}, nil); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if f.state.IsAuthenticated() {
		t.Fatalf("expected anonymous at start")
	}

	if result := f.state.Login(ctx, adminEmail, "errada"); result.Success || result.Error == "" {
		t.Fatalf("expected inline error, got %+v", result)
	}

	token := f.login(t)
	if !f.state.IsAuthenticated() {
		t.Fatalf("expected authenticated after login")
	}
	if got := f.state.BudgetRequests(); len(got) != 1 {
		t.Fatalf("expected requests loaded on sign in, got %v", got)
	}

	f.state.Logout(ctx, token)
	if f.state.IsAuthenticated() {
		t.Fatalf("expected anonymous after logout")
	}
	if got := f.state.BudgetRequests(); len(got) != 0 {
		t.Fatalf("expected requests cleared on sign out, got %v", got)
	}
	if f.state.Session(ctx, token) != nil {
		t.Fatalf("expected no session after logout")
	}
}

func TestState_Projects(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFixture(t, ctrl)

	created, err := f.state.AddProject(ctx, models.Project{
		Title:    "Moradia em Braga",
		Type:     "Residencial",
		Status:   models.StatusInProgress,
		Progress: 40,
	}, ptr(image("capa.png")), []app.Upload{image("g1.png"), brokenUpload("g2.png"), image("g3.png")})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.HasPrefix(created.ImageURL, "/media/siteDNL/") {
		t.Fatalf("expected uploaded main image, got %q", created.ImageURL)
	}
	if len(created.Gallery) != 2 || !strings.HasSuffix(created.Gallery[0].URL, "g1.png") || !strings.HasSuffix(created.Gallery[1].URL, "g3.png") {
		t.Fatalf("expected ordered gallery without the failed file, got %+v", created.Gallery)
	}

	t.Run("progress edit keeps image", func(t *testing.T) {
		edit := created
		edit.ImageURL = ""
		edit.Progress = 75
		updated, err := f.state.UpdateProject(ctx, edit, nil, nil)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if updated.ImageURL != created.ImageURL || updated.Progress != 75 {
			t.Fatalf("unexpected update %+v", updated)
		}
		rows, _ := f.tables.Select(ctx, models.TableProjects, gateway.Where(gateway.Eq("id", created.ID)))
		if rows[0]["image_url"] != created.ImageURL {
			t.Fatalf("expected stored image kept, got %v", rows[0]["image_url"])
		}
	})

	t.Run("write failure is reported", func(t *testing.T) {
		f.tables.FailWrites(models.TableProjects, errors.New("permission denied"))
		defer f.tables.FailWrites(models.TableProjects, nil)
		_, err := f.state.AddProject(ctx, models.Project{Title: "X", Status: models.StatusCompleted}, nil, nil)
		var appErr *app.Error
		if !errors.As(err, &appErr) || appErr.Message != "Erro ao criar projeto." {
			t.Fatalf("expected create error, got %v", err)
		}
	})

	t.Run("delete", func(t *testing.T) {
		if err := f.state.DeleteProject(ctx, created.ID); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		for _, p := range f.state.Projects() {
			if p.ID == created.ID {
				t.Fatalf("expected project removed")
			}
		}
	})

	t.Run("invalid status", func(t *testing.T) {
		_, err := f.state.AddProject(ctx, models.Project{Title: "Y", Status: "planeado"}, nil, nil)
		var appErr *app.Error
		if !errors.As(err, &appErr) || appErr.Status != 400 {
			t.Fatalf("expected bad request, got %v", err)
		}
	})
}

func TestState_Settings(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFixture(t, ctrl)

	if got := f.state.Settings().NotificationEmail; got != models.DefaultNotificationEmail {
		t.Fatalf("expected default email, got %q", got)
	}
	if _, err := f.state.UpdateSettings(ctx, "geral@dnl.pt", "https://logo.png", "key"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	f.tables.FailWrites(models.TableAppSettings, errors.New("column email_api_key does not exist"))
	saved, err := f.state.UpdateSettings(ctx, "novo@dnl.pt", "", "")
	if err != nil {
		t.Fatalf("expected success despite remote failure, got %v", err)
	}
	if saved.LogoURL != "https://logo.png" || saved.EmailAPIKey != "key" {
		t.Fatalf("expected logo and key preserved, got %+v", saved)
	}
	if got := f.state.Settings().NotificationEmail; got != "novo@dnl.pt" {
		t.Fatalf("expected in-memory value updated, got %q", got)
	}
	if err := f.state.FetchSettings(ctx); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	values, _ := f.local.Read()
	if values.NotificationEmail != "novo@dnl.pt" || f.state.Settings().NotificationEmail != "novo@dnl.pt" {
		t.Fatalf("expected local copy to win after reload, got %+v / %+v", values, f.state.Settings())
	}

	if _, err := f.state.UpdateSettings(ctx, "", "", ""); err == nil {
		t.Fatalf("expected invalid email rejected")
	}
}

func TestState_TestEmailAndDescription(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFixture(t, ctrl)

	f.notifier.EXPECT().Send(gomock.Any(), notify.Message{
		Subject: "DNL - Teste de Sistema",
		Body:    "Se você recebeu isto, seu sistema de e-mail está funcionando!",
		ReplyTo: "geral@dnl.pt",
		To:      "geral@dnl.pt",
	}).Return(true)
	if !f.state.SendTestEmail(ctx, "geral@dnl.pt") {
		t.Fatalf("expected test email sent")
	}

	f.generator.EXPECT().Generate(gomock.Any(), "Cozinha", "Residencial").Return("Texto")
	if got := f.state.GenerateDescription(ctx, "Cozinha", "Residencial"); got != "Texto" {
		t.Fatalf("unexpected description %q", got)
	}
}

func ptr[T any](v T) *T { return &v }
