package service

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stemsi/eduverse-backend/internal/model"
	"github.com/stemsi/eduverse-backend/internal/repository"
)

type fakeMaterialStore struct {
	items     map[int]*model.Material
	createErr error
	nextID    int
}

func newFakeMaterialStore() *fakeMaterialStore {
	return &fakeMaterialStore{items: map[int]*model.Material{}, nextID: 1}
}

func (f *fakeMaterialStore) GetByID(_ context.Context, id int) (*model.Material, error) {
	m, ok := f.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *m
	return &cp, nil
}

func (f *fakeMaterialStore) List(context.Context, model.MaterialFilter) ([]model.Material, error) {
	return nil, nil
}

func (f *fakeMaterialStore) Create(_ context.Context, m *model.Material) error {
	if f.createErr != nil {
		return f.createErr
	}
	m.ID = f.nextID
	f.nextID++
	cp := *m
	f.items[m.ID] = &cp
	return nil
}

func (f *fakeMaterialStore) IncrementViews(_ context.Context, id int) error {
	f.items[id].ViewCount++
	return nil
}

func (f *fakeMaterialStore) IncrementDownloads(_ context.Context, id int) error {
	f.items[id].DownloadCount++
	return nil
}

func (f *fakeMaterialStore) Delete(_ context.Context, id int) error {
	delete(f.items, id)
	return nil
}

type fakeCourseLookup struct{}

func (fakeCourseLookup) GetByID(_ context.Context, id int) (*model.Course, error) {
	if id != 1 {
		return nil, repository.ErrNotFound
	}
	return &model.Course{ID: 1, Name: "Physics - Class 10", Code: "PHY10"}, nil
}

// multipartFile builds a parsed multipart upload for field "material".
func multipartFile(t *testing.T, name, contentType string, body []byte) (multipart.File, *multipart.FileHeader) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="material"; filename="`+name+`"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	if err != nil {
		t.Fatal(err)
	}
	part.Write(body)
	w.Close()

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	file, header, err := req.FormFile("material")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { file.Close() })
	return file, header
}

func TestMaterialService_UploadInfersTypeAndSplitsTags(t *testing.T) {
	dir := t.TempDir()
	store := newFakeMaterialStore()
	svc := NewMaterialService(store, fakeCourseLookup{}, dir, zerolog.Nop())

	file, header := multipartFile(t, "notes.pdf", "application/pdf", []byte("%PDF-1.4 fake"))
	m, err := svc.Upload(context.Background(), 7, model.UploadMaterialRequest{
		Title:    "Optics notes",
		CourseID: 1,
		Tags:     "optics, light,, lenses ",
	}, file, header)
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}

	if m.Type != model.MaterialPDF {
		t.Errorf("Type = %q, want pdf", m.Type)
	}
	if want := []string{"optics", "light", "lenses"}; !reflect.DeepEqual(m.Tags, want) {
		t.Errorf("Tags = %v, want %v", m.Tags, want)
	}
	if !m.IsPublic {
		t.Error("IsPublic should default to true")
	}
	if filepath.Dir(m.FilePath) != filepath.Join(dir, "materials") {
		t.Errorf("FilePath = %q, want under %q", m.FilePath, dir)
	}
	if _, err := os.Stat(m.FilePath); err != nil {
		t.Errorf("uploaded file missing: %v", err)
	}
}

func TestMaterialService_UploadRejectsType(t *testing.T) {
	svc := NewMaterialService(newFakeMaterialStore(), fakeCourseLookup{}, t.TempDir(), zerolog.Nop())

	file, header := multipartFile(t, "pic.png", "image/png", []byte("png"))
	_, err := svc.Upload(context.Background(), 7, model.UploadMaterialRequest{Title: "x", CourseID: 1}, file, header)
	if !errors.Is(err, ErrUnsupportedFileType) {
		t.Fatalf("err = %v, want ErrUnsupportedFileType", err)
	}
}

func TestMaterialService_UploadUnknownCourse(t *testing.T) {
	dir := t.TempDir()
	svc := NewMaterialService(newFakeMaterialStore(), fakeCourseLookup{}, dir, zerolog.Nop())

	file, header := multipartFile(t, "a.pdf", "application/pdf", []byte("%PDF-"))
	_, err := svc.Upload(context.Background(), 7, model.UploadMaterialRequest{Title: "x", CourseID: 99}, file, header)
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if entries, _ := os.ReadDir(filepath.Join(dir, "materials")); len(entries) != 0 {
		t.Fatalf("no file should be written, found %d", len(entries))
	}
}

func TestMaterialService_UploadRemovesFileOnInsertFailure(t *testing.T) {
	dir := t.TempDir()
	store := newFakeMaterialStore()
	store.createErr = errors.New("db down")
	svc := NewMaterialService(store, fakeCourseLookup{}, dir, zerolog.Nop())

	file, header := multipartFile(t, "a.pdf", "application/pdf", []byte("%PDF-"))
	if _, err := svc.Upload(context.Background(), 7, model.UploadMaterialRequest{Title: "x", CourseID: 1}, file, header); err == nil {
		t.Fatal("Upload() should fail")
	}
	if entries, _ := os.ReadDir(filepath.Join(dir, "materials")); len(entries) != 0 {
		t.Fatalf("orphaned upload left behind: %d files", len(entries))
	}
}

func TestMaterialService_DeleteOwnerOnly(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.pdf")
	os.WriteFile(path, []byte("x"), 0o644)

	store := newFakeMaterialStore()
	store.items[1] = &model.Material{ID: 1, UploadedBy: 7, FilePath: path}
	svc := NewMaterialService(store, fakeCourseLookup{}, dir, zerolog.Nop())

	if err := svc.Delete(context.Background(), 8, 1); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("err = %v, want ErrNotOwner", err)
	}
	if _, ok := store.items[1]; !ok {
		t.Fatal("material removed by non-owner")
	}

	if err := svc.Delete(context.Background(), 7, 1); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("file should be removed")
	}
	if _, ok := store.items[1]; ok {
		t.Fatal("row should be removed")
	}
}

func TestMaterialService_DownloadMissingFile(t *testing.T) {
	store := newFakeMaterialStore()
	store.items[1] = &model.Material{ID: 1, FilePath: filepath.Join(t.TempDir(), "gone.pdf")}
	svc := NewMaterialService(store, fakeCourseLookup{}, t.TempDir(), zerolog.Nop())

	if _, err := svc.Download(context.Background(), 1); !errors.Is(err, ErrFileMissing) {
		t.Fatalf("err = %v, want ErrFileMissing", err)
	}
	if store.items[1].DownloadCount != 0 {
		t.Fatal("download counted for a missing file")
	}
}

func TestMaterialService_GetCountsView(t *testing.T) {
	store := newFakeMaterialStore()
	store.items[1] = &model.Material{ID: 1}
	svc := NewMaterialService(store, fakeCourseLookup{}, t.TempDir(), zerolog.Nop())

	m, err := svc.Get(context.Background(), 1)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if m.ViewCount != 1 || store.items[1].ViewCount != 1 {
		t.Fatalf("ViewCount = %d/%d, want 1", m.ViewCount, store.items[1].ViewCount)
	}
}
