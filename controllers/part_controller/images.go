package part_controller

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/anuntech/racaforte-backend-sub000/services"
	"github.com/rs/zerolog/log"
)

const (
	maxImages      = 10
	maxImageBytes  = 10 << 20
	imageFormField = "images"
	cleanupTimeout = 60 * time.Second
)

// readImages loads the uploaded files, rejecting anything that is not an image.
func readImages(files []*multipart.FileHeader) ([][]byte, error) {
	if len(files) > maxImages {
		return nil, fmt.Errorf("at most %d images are allowed", maxImages)
	}
	out := make([][]byte, 0, len(files))
	for _, fh := range files {
		if fh.Size > maxImageBytes {
			return nil, fmt.Errorf("image %s exceeds %d MB", fh.Filename, maxImageBytes>>20)
		}
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", fh.Filename, err)
		}
		data, err := io.ReadAll(io.LimitReader(f, maxImageBytes+1))
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", fh.Filename, err)
		}
		if !strings.HasPrefix(http.DetectContentType(data), "image/") {
			return nil, fmt.Errorf("%s is not an image", fh.Filename)
		}
		out = append(out, data)
	}
	return out, nil
}

// storeImages removes backgrounds and uploads every image concurrently,
// returning URLs in upload order. Keys are keyPrefix_<index>. A failed
// background removal falls back to the original image.
func storeImages(ctx context.Context, images [][]byte, folder, keyPrefix string) ([]string, error) {
	urls := make([]string, len(images))
	errs := make([]error, len(images))

	var wg sync.WaitGroup
	for i, data := range images {
		wg.Add(1)
		go func(i int, data []byte) {
			defer wg.Done()
			if deps.Remover != nil {
				clean, err := deps.Remover.RemoveBackground(ctx, data)
				if err != nil {
					log.Warn().Err(err).Int("image", i).Msg("[part.images] background removal failed, keeping original")
				} else {
					data = clean
				}
			}
			urls[i], errs[i] = deps.Images.UploadImage(ctx, data, fmt.Sprintf("%s_%d", keyPrefix, i), folder)
		}(i, data)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return urls, nil
}

// cleanupFolder deletes uploaded images in the background.
func cleanupFolder(folder string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), cleanupTimeout)
		defer cancel()
		if err := deps.Images.DeleteFolder(ctx, folder); err != nil {
			log.Warn().Err(err).Str("folder", folder).Msg("[part.images] cleanup failed")
			return
		}
		log.Info().Str("folder", folder).Msg("[part.images] folder deleted")
	}()
}

// deleteImages removes individual images by URL in the background.
func deleteImages(urls []string) {
	if len(urls) == 0 {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), cleanupTimeout)
		defer cancel()
		for _, u := range urls {
			publicID, err := services.PublicIDFromURL(u)
			if err != nil {
				log.Warn().Err(err).Str("url", u).Msg("[part.images] skipping unknown url")
				continue
			}
			if err := deps.Images.DeleteImage(ctx, publicID); err != nil {
				log.Warn().Err(err).Str("public_id", publicID).Msg("[part.images] delete failed")
			}
		}
	}()
}
