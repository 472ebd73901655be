package storage

import (
	"context"
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lavtracker/backend/config"
)

func newTestStore(t *testing.T) *LocalPhotoStore {
	t.Helper()
	return NewLocalPhotoStore(&config.StorageConfig{
		InspectionDir: t.TempDir(),
		PublicPath:    "/inspections/",
	})
}

func TestSave_DataURIKeepsSubtype(t *testing.T) {
	s := newTestStore(t)
	raw := []byte("fake-jpeg-bytes")
	uri := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(raw)

	p, err := s.Save(context.Background(), uri)
	if err != nil {
		t.Fatalf("Save 应成功: %v", err)
	}
	if !strings.HasPrefix(p, "/inspections/") || !strings.HasSuffix(p, ".jpeg") {
		t.Errorf("公开路径不符: %s", p)
	}

	got, err := os.ReadFile(filepath.Join(s.Dir(), filepath.Base(p)))
	if err != nil {
		t.Fatalf("读取落盘文件失败: %v", err)
	}
	if string(got) != string(raw) {
		t.Error("落盘内容与原图不一致")
	}
}

func TestSave_RawBase64DefaultsToPNG(t *testing.T) {
	s := newTestStore(t)
	p, err := s.Save(context.Background(), base64.StdEncoding.EncodeToString([]byte("png")))
	if err != nil {
		t.Fatalf("Save 应成功: %v", err)
	}
	if !strings.HasSuffix(p, ".png") {
		t.Errorf("期望 .png 扩展名，实际 %s", p)
	}
}

func TestSave_InvalidBase64(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Save(context.Background(), "data:image/png;base64,***")
	if !errors.Is(err, ErrInvalidImage) {
		t.Errorf("期望 ErrInvalidImage，实际: %v", err)
	}
}

func TestRemove(t *testing.T) {
	s := newTestStore(t)
	p, err := s.Save(context.Background(), base64.StdEncoding.EncodeToString([]byte("x")))
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Remove(context.Background(), p); err != nil {
		t.Fatalf("Remove 应成功: %v", err)
	}
	if _, err := os.Stat(filepath.Join(s.Dir(), filepath.Base(p))); !os.IsNotExist(err) {
		t.Error("文件应已删除")
	}
	if err := s.Remove(context.Background(), p); err != nil {
		t.Errorf("重复删除不应报错: %v", err)
	}
}
