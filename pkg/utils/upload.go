package utils

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

var (
	ErrFileTooLarge = errors.New("file too large")
	ErrFileType     = errors.New("file type not allowed")
)

type UploadConfig struct {
	MaxSizeBytes     int64
	AllowedMimeTypes []string
	BasePath         string
}

var DefaultImageMimeTypes = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"image/webp",
}

// SaveUpload stores the file under BasePath/dir as <prefix>-<uuid><ext> and
// returns the path relative to BasePath using forward slashes.
func SaveUpload(file multipart.File, header *multipart.FileHeader, dir, prefix string, config UploadConfig) (string, error) {
	if config.MaxSizeBytes > 0 && header.Size > config.MaxSizeBytes {
		return "", fmt.Errorf("%w: maximum is %d MB", ErrFileTooLarge, config.MaxSizeBytes/(1024*1024))
	}

	mtype, err := mimetype.DetectReader(file)
	if err != nil {
		return "", fmt.Errorf("detect mime type: %w", err)
	}
	if len(config.AllowedMimeTypes) == 0 {
		config.AllowedMimeTypes = DefaultImageMimeTypes
	}
	if !allowedMime(mtype, config.AllowedMimeTypes) {
		return "", fmt.Errorf("%w: %s, allowed: %s", ErrFileType, mtype.String(), strings.Join(config.AllowedMimeTypes, ", "))
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind upload: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext == "" {
		ext = mtype.Extension()
	}

	name := uuid.New().String() + ext
	if prefix != "" {
		name = prefix + "-" + name
	}

	uploadPath := filepath.Join(config.BasePath, dir)
	if err := os.MkdirAll(uploadPath, os.ModePerm); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	dst, err := os.Create(filepath.Join(uploadPath, name))
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", fmt.Errorf("write upload file: %w", err)
	}

	return filepath.ToSlash(filepath.Join(dir, name)), nil
}

// DeleteUpload removes a file previously returned by SaveUpload. Missing files are ignored.
func DeleteUpload(basePath, relPath string) error {
	if relPath == "" {
		return nil
	}
	err := os.Remove(filepath.Join(basePath, filepath.FromSlash(relPath)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func allowedMime(mtype *mimetype.MIME, allowed []string) bool {
	for _, a := range allowed {
		if mtype.Is(a) {
			return true
		}
	}
	return false
}
