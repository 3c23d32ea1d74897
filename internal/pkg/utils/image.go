package utils

import (
	"doctor-appointment-service/internal/pkg/constvars"
	"doctor-appointment-service/internal/pkg/dto/requests"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrImageTooLarge      = errors.New("file size exceeds the maximum limit")
	ErrImageInvalidFormat = errors.New("invalid file format")
)

// ReadImageFromForm returns nil when the form carries no file under fieldName.
func ReadImageFromForm(r *http.Request, fieldName string) (*requests.ImageUpload, error) {
	file, fileHeader, err := r.FormFile(fieldName)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	return readImage(file, fileHeader)
}

func readImage(file multipart.File, fileHeader *multipart.FileHeader) (*requests.ImageUpload, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	contentType := fileHeader.Header.Get(constvars.HeaderContentType)
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	return &requests.ImageUpload{
		FileName:    fileHeader.Filename,
		ContentType: contentType,
		Size:        int64(len(data)),
		Data:        data,
	}, nil
}

// ValidateImage accepts an image when either its extension or its content
// type is one of the allowed image formats.
func ValidateImage(image *requests.ImageUpload, maxSizeInMegabytes int64) error {
	if image == nil {
		return nil
	}

	if image.Size > maxSizeInMegabytes*1024*1024 {
		return ErrImageTooLarge
	}

	ext := strings.ToLower(filepath.Ext(image.FileName))
	if ValidateImageFormat(ext, constvars.ImageAllowedFormats) == nil {
		return nil
	}
	contentType := strings.ToLower(image.ContentType)
	for _, allowed := range constvars.ImageAllowedMIMETypes {
		if contentType == allowed {
			return nil
		}
	}
	return ErrImageInvalidFormat
}

func ValidateImageFormat(ext string, allowedFormats []string) error {
	for _, format := range allowedFormats {
		if ext == format {
			return nil
		}
	}
	return fmt.Errorf("invalid image format. Allowed formats are: %s", strings.Join(allowedFormats, ", "))
}

// GenerateObjectName builds "<folder>/<uuid><ext>" for a media upload.
func GenerateObjectName(folder, fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	return path.Join(folder, uuid.NewString()+ext)
}

func BuildObjectURL(publicBaseURL, bucketName, objectName string) string {
	return fmt.Sprintf("%s/%s/%s", strings.TrimRight(publicBaseURL, "/"), bucketName, objectName)
}

// ObjectNameFromURL reverses BuildObjectURL. It returns an error for URLs
// that do not point into bucketName.
func ObjectNameFromURL(imageURL, bucketName string) (string, error) {
	parsed, err := url.Parse(imageURL)
	if err != nil {
		return "", err
	}

	prefix := "/" + bucketName + "/"
	index := strings.Index(parsed.Path, prefix)
	if index < 0 {
		return "", fmt.Errorf("url %s is not inside bucket %s", imageURL, bucketName)
	}

	objectName := parsed.Path[index+len(prefix):]
	if objectName == "" {
		return "", fmt.Errorf("url %s has no object name", imageURL)
	}
	return objectName, nil
}
