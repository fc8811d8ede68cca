package imagestore

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Store 活动图片对象存储边界。
// 核心逻辑只持有已解析的图片URL，真正的存储实现在边界之外。
type Store interface {
	// Save 保存一张图片，返回可供展示的URL
	Save(name string, r io.Reader) (string, error)
	// Delete 按URL删除图片，图片不存在不算错误
	Delete(url string) error
}

// LocalStore 本地磁盘实现
type LocalStore struct {
	dir     string
	baseURL string
}

// NewLocalStore 创建本地图片存储
func NewLocalStore(dir, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create image dir: %w", err)
	}
	return &LocalStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (s *LocalStore) Save(name string, r io.Reader) (string, error) {
	name = filepath.Base(name)
	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create image file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("failed to write image file: %w", err)
	}
	return s.baseURL + "/" + name, nil
}

func (s *LocalStore) Delete(url string) error {
	if url == "" {
		return nil
	}
	name := filepath.Base(url)
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete image file: %w", err)
	}
	return nil
}
