package service

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"lessonwiki-backend/pkg/utils"
)

// UploadService stores lesson media (step photos, hero images, short clips)
// on local disk and serves them back under /uploads.
type UploadService struct {
	uploadDir         string
	maxSize           int64
	allowedTypes      []string
	videoMaxSize      int64
	videoAllowedTypes []string
}

type UploadInfo struct {
	URL      string    `json:"url"`
	Filename string    `json:"filename"`
	Size     int64     `json:"size"`
	ModTime  time.Time `json:"mod_time"`
}

var ErrUploadNotFound = errors.New("upload not found")

func NewUploadService(uploadDir string, maxSizeMB int) *UploadService {
	if _, err := os.Stat(uploadDir); os.IsNotExist(err) {
		os.MkdirAll(uploadDir, 0755)
	}

	if maxSizeMB <= 0 {
		maxSizeMB = 10
	}

	return &UploadService{
		uploadDir:         uploadDir,
		maxSize:           int64(maxSizeMB) * 1024 * 1024,
		allowedTypes:      []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".svg"},
		videoMaxSize:      512 * 1024 * 1024,
		videoAllowedTypes: []string{".mp4", ".m4v", ".mov", ".webm"},
	}
}

func (s *UploadService) UploadImage(file *multipart.FileHeader, preferredName string) (string, string, error) {
	if file.Size > s.maxSize {
		return "", "", errors.New("file size exceeds maximum allowed size")
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !s.isAllowedType(ext, s.allowedTypes) {
		return "", "", errors.New("file type not allowed")
	}

	return s.store(file, preferredName, ext)
}

func (s *UploadService) UploadVideo(file *multipart.FileHeader, preferredName string) (string, string, error) {
	if file == nil {
		return "", "", errors.New("video file is required")
	}
	if file.Size > s.videoMaxSize {
		return "", "", errors.New("file size exceeds maximum allowed size")
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !s.isAllowedType(ext, s.videoAllowedTypes) {
		return "", "", errors.New("file type not allowed")
	}

	return s.store(file, preferredName, ext)
}

func (s *UploadService) store(file *multipart.FileHeader, preferredName, ext string) (string, string, error) {
	filename := s.generateFilename(file.Filename, preferredName, ext)
	filePath := filepath.Join(s.uploadDir, filename)

	src, err := file.Open()
	if err != nil {
		return "", "", err
	}
	defer src.Close()

	dst, err := os.Create(filePath)
	if err != nil {
		return "", "", err
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(filePath)
		return "", "", err
	}
	if err := dst.Close(); err != nil {
		os.Remove(filePath)
		return "", "", err
	}

	return "/uploads/" + filename, filename, nil
}

func (s *UploadService) Delete(url string) error {
	filename := filepath.Base(url)
	filePath := filepath.Join(s.uploadDir, filename)

	uploadDirAbs, err := filepath.Abs(s.uploadDir)
	if err != nil {
		return err
	}
	filePathAbs, err := filepath.Abs(filePath)
	if err != nil {
		return err
	}
	if !strings.HasPrefix(filePathAbs, uploadDirAbs) {
		return errors.New("invalid file path")
	}

	if err := os.Remove(filePathAbs); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrUploadNotFound
		}
		return err
	}
	return nil
}

// List enumerates uploaded files, newest first.
func (s *UploadService) List() ([]UploadInfo, error) {
	entries, err := os.ReadDir(s.uploadDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []UploadInfo{}, nil
		}
		return nil, err
	}

	uploads := make([]UploadInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		uploads = append(uploads, UploadInfo{
			URL:      "/uploads/" + entry.Name(),
			Filename: entry.Name(),
			Size:     info.Size(),
			ModTime:  info.ModTime(),
		})
	}

	sort.Slice(uploads, func(i, j int) bool {
		return uploads[i].ModTime.After(uploads[j].ModTime)
	})
	return uploads, nil
}

func (s *UploadService) isAllowedType(ext string, allowed []string) bool {
	for _, allowedExt := range allowed {
		if ext == allowedExt {
			return true
		}
	}
	return false
}

func (s *UploadService) generateFilename(originalName, preferredName, ext string) string {
	baseName := strings.TrimSpace(preferredName)
	if baseName == "" {
		baseName = strings.TrimSuffix(filepath.Base(originalName), filepath.Ext(originalName))
	}

	cleaned := utils.GenerateSlug(baseName)
	if cleaned == "" {
		cleaned = uuid.New().String()
	}

	candidate := fmt.Sprintf("%s%s", cleaned, ext)
	if !s.fileExists(candidate) {
		return candidate
	}

	for i := 1; i < 1000; i++ {
		candidate = fmt.Sprintf("%s-%d%s", cleaned, i, ext)
		if !s.fileExists(candidate) {
			return candidate
		}
	}

	return fmt.Sprintf("%s%s", uuid.New().String(), ext)
}

func (s *UploadService) fileExists(name string) bool {
	_, err := os.Stat(filepath.Join(s.uploadDir, name))
	return err == nil
}
