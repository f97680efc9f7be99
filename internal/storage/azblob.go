package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"

	"ragdocs/internal/config"
)

// azureBlobStorage implements Storage on top of one Azure Blob Storage container.
type azureBlobStorage struct {
	client    *azblob.Client
	container string
}

// NewAzureBlob connects with a storage account connection string and ensures
// the container exists.
func NewAzureBlob(cfg config.AzureBlobConfig) (Storage, error) {
	if cfg.ConnectionString == "" {
		return nil, fmt.Errorf("azure blob connection string is required")
	}
	if cfg.Container == "" {
		return nil, fmt.Errorf("azure blob container is required")
	}

	cli, err := azblob.NewClientFromConnectionString(cfg.ConnectionString, nil)
	if err != nil {
		return nil, fmt.Errorf("create azure blob client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := cli.CreateContainer(ctx, cfg.Container, nil); err != nil && !bloberror.HasCode(err, bloberror.ContainerAlreadyExists) {
		return nil, fmt.Errorf("create container: %w", err)
	}

	return &azureBlobStorage{client: cli, container: cfg.Container}, nil
}

// Put uploads r as a block blob. Uploads overwrite by default.
func (a *azureBlobStorage) Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error) {
	var uploadOpts *azblob.UploadStreamOptions
	if opt.ContentType != "" {
		uploadOpts = &azblob.UploadStreamOptions{
			HTTPHeaders: &blob.HTTPHeaders{BlobContentType: to.Ptr(opt.ContentType)},
		}
	}
	if _, err := a.client.UploadStream(ctx, a.container, key, r, uploadOpts); err != nil {
		return ObjectInfo{}, err
	}
	return ObjectInfo{Key: key, Size: opt.Size}, nil
}

func (a *azureBlobStorage) List(ctx context.Context) ([]ObjectInfo, error) {
	out := make([]ObjectInfo, 0)
	pager := a.client.NewListBlobsFlatPager(a.container, nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		if page.Segment == nil {
			continue
		}
		for _, item := range page.Segment.BlobItems {
			if item.Name == nil {
				continue
			}
			info := ObjectInfo{Key: *item.Name}
			if item.Properties != nil && item.Properties.ContentLength != nil {
				info.Size = *item.Properties.ContentLength
			}
			out = append(out, info)
		}
	}
	return out, nil
}

func (a *azureBlobStorage) Delete(ctx context.Context, key string) error {
	_, err := a.client.DeleteBlob(ctx, a.container, key, nil)
	return err
}
