package product

import (
	"context"
	"io"

	"catalog/pkg/assets"
	"catalog/pkg/httperror"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ImageNamespace is the blob namespace product images live under.
const ImageNamespace = "images"

const maxImageSize = 5 * 1024 * 1024

var allowedImageTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/jpg":  true,
}

// ImageUpload is a decoded image payload.
type ImageUpload struct {
	FileName    string
	ContentType string
	Data        []byte
}

// imageFromContext pulls the optional multipart "image" file off the
// transport context. Returns nil when no file was sent or the request
// did not come through the HTTP surface.
func imageFromContext(ctx context.Context, op string) (*ImageUpload, error) {
	fiberCtx := ctx.Value("fiber")
	if fiberCtx == nil {
		return nil, nil
	}
	c, ok := fiberCtx.(*fiber.Ctx)
	if !ok {
		return nil, nil
	}

	file, err := c.FormFile("image")
	if err != nil {
		return nil, nil
	}

	if file.Size > maxImageSize {
		return nil, httperror.BadRequest(op+".image_too_large", "Image must not exceed 5MB",
			fiber.Map{
				"size_mb": float64(file.Size) / 1024 / 1024,
				"max_mb":  5,
			})
	}

	contentType := file.Header.Get("Content-Type")
	if !allowedImageTypes[contentType] {
		return nil, httperror.BadRequest(op+".invalid_image_type", "Only PNG, JPEG/JPG images are allowed",
			fiber.Map{
				"received": contentType,
				"allowed":  []string{"image/png", "image/jpeg", "image/jpg"},
			})
	}

	fileReader, err := file.Open()
	if err != nil {
		return nil, httperror.InternalServerError(op+".image_open_failed", "Failed to open uploaded image", err.Error())
	}
	defer fileReader.Close()

	data, err := io.ReadAll(fileReader)
	if err != nil {
		return nil, httperror.InternalServerError(op+".image_read_failed", "Failed to read uploaded image", err.Error())
	}

	return &ImageUpload{
		FileName:    file.Filename,
		ContentType: contentType,
		Data:        data,
	}, nil
}

// storeImage writes the upload under a collision-free name (random uuid
// prefixed to the original file name) and returns the logical path.
func storeImage(store assets.Store, image *ImageUpload, op string) (string, error) {
	if err := store.EnsureNamespace(ImageNamespace); err != nil {
		return "", httperror.InternalServerError(op+".image_upload_failed", "Failed to prepare image storage", err.Error())
	}

	fileName := uuid.New().String() + "_" + image.FileName
	path, err := store.Write(ImageNamespace, fileName, image.Data)
	if err != nil {
		return "", httperror.InternalServerError(op+".image_upload_failed", "Failed to store image", err.Error())
	}

	return path, nil
}
