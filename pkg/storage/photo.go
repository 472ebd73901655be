package storage

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"lavtracker/backend/config"
)

// ErrInvalidImage 图片不是合法的 base64 / data URI
var ErrInvalidImage = errors.New("invalid image data")

const defaultExtension = "png"

var dataURIPattern = regexp.MustCompile(`^data:image/(\w+);base64,`)

// PhotoStore 巡检照片存储接口
type PhotoStore interface {
	// Save 持久化图片并返回公开访问路径
	Save(ctx context.Context, image string) (string, error)
	// Remove 删除 Save 返回的公开路径对应的文件
	Remove(ctx context.Context, publicPath string) error
}

// LocalPhotoStore 基于本地磁盘的照片存储
type LocalPhotoStore struct {
	dir        string
	publicPath string
}

// NewLocalPhotoStore 创建本地照片存储
func NewLocalPhotoStore(cfg *config.StorageConfig) *LocalPhotoStore {
	return &LocalPhotoStore{
		dir:        cfg.InspectionDir,
		publicPath: strings.TrimRight(cfg.PublicPath, "/"),
	}
}

// Dir 返回落盘目录，用于静态文件挂载
func (s *LocalPhotoStore) Dir() string { return s.dir }

// Save 解码 data URI（或裸 base64）并以随机文件名写盘
// 文件扩展名取自声明的图片子类型，缺省为 png
func (s *LocalPhotoStore) Save(_ context.Context, image string) (string, error) {
	payload, ext := splitDataURI(image)

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil || len(data) == 0 {
		return "", ErrInvalidImage
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("创建照片目录失败: %w", err)
	}

	name := fmt.Sprintf("%s.%s", uuid.NewString(), ext)
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("写入照片失败: %w", err)
	}

	return path.Join(s.publicPath, name), nil
}

// Remove 删除已保存的照片；文件不存在视为成功
func (s *LocalPhotoStore) Remove(_ context.Context, publicPath string) error {
	name := path.Base(publicPath)
	if name == "." || name == "/" {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func splitDataURI(image string) (payload, ext string) {
	m := dataURIPattern.FindStringSubmatch(image)
	if m == nil {
		return image, defaultExtension
	}
	return image[len(m[0]):], strings.ToLower(m[1])
}
