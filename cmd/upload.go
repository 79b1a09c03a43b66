package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

func (sf *storefront) uploadImage(c context.Context, path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed opening image with error=%w", err)
	}
	defer file.Close()
	return sf.client.UploadImage(c, "/upload-image", filepath.Base(path), file)
}
