package services

import (
	"context"
	"io"
	"time"

	config "github.com/ardiansyahnr/edu_platform/configs"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

const (
	FolderModulePhotos   = "edu_platform_module_photos"
	FolderModulePDFs     = "edu_platform_module_pdfs"
	FolderQuizThumbnails = "edu_platform_quiz_thumbnails"
	FolderCertificates   = "edu_platform_certificates"
)

type UploadedFile struct {
	URL      string
	PublicID string
}

func newCloudinary() (*cloudinary.Cloudinary, error) {
	return cloudinary.NewFromURL(config.Config("CLOUDINARY_URL"))
}

// UploadFile stores the file in Cloudinary under the given folder and returns
// the delivery URL together with the public ID needed to destroy it later.
func UploadFile(file io.Reader, folder string) (*UploadedFile, error) {
	cld, err := newCloudinary()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result, err := cld.Upload.Upload(ctx, file, uploader.UploadParams{Folder: folder})
	if err != nil {
		return nil, err
	}

	return &UploadedFile{URL: result.SecureURL, PublicID: result.PublicID}, nil
}

// DeleteFile removes a previously uploaded asset. A missing asset is not an
// error; Cloudinary reports "not found" in the response body, not the status.
func DeleteFile(publicID string) error {
	cld, err := newCloudinary()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err = cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	return err
}
