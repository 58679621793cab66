// Package storage implements the ports.ObjectStorage blob store on MongoDB
// GridFS, keeping document blobs next to their metadata without a separate
// object-storage service.
package storage

import (
	"context"
	"fmt"
	"io"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lexfirma/case-management/internal/core/domain"
)

const bucketName = "documentos"

type GridFSStorage struct {
	bucket *gridfs.Bucket
}

func NewGridFSStorage(db *mongo.Database) (*GridFSStorage, error) {
	bucket, err := gridfs.NewBucket(db, options.GridFSBucket().SetName(bucketName))
	if err != nil {
		return nil, fmt.Errorf("gridfs bucket: %w", err)
	}
	return &GridFSStorage{bucket: bucket}, nil
}

func (s *GridFSStorage) Upload(ctx context.Context, path, contentType string, r io.Reader) error {
	s.applyDeadline(ctx)

	opts := options.GridFSUpload()
	if contentType != "" {
		opts.SetMetadata(bson.M{"content_type": contentType})
	}
	if _, err := s.bucket.UploadFromStream(path, r, opts); err != nil {
		return fmt.Errorf("gridfs upload %s: %w", path, err)
	}
	return nil
}

func (s *GridFSStorage) Download(ctx context.Context, path string, w io.Writer) error {
	s.applyDeadline(ctx)

	if _, err := s.bucket.DownloadToStreamByName(path, w); err != nil {
		if err == gridfs.ErrFileNotFound {
			return domain.ErrDocumentoNoEncontrado
		}
		return fmt.Errorf("gridfs download %s: %w", path, err)
	}
	return nil
}

func (s *GridFSStorage) Delete(ctx context.Context, path string) error {
	s.applyDeadline(ctx)

	var file struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	err := s.bucket.GetFilesCollection().FindOne(ctx, bson.M{"filename": path}).Decode(&file)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return domain.ErrDocumentoNoEncontrado
		}
		return fmt.Errorf("gridfs lookup %s: %w", path, err)
	}
	if err := s.bucket.Delete(file.ID); err != nil {
		return fmt.Errorf("gridfs delete %s: %w", path, err)
	}
	return nil
}

// applyDeadline forwards a context deadline to the bucket; gridfs streams do
// not take a context directly.
func (s *GridFSStorage) applyDeadline(ctx context.Context) {
	if deadline, ok := ctx.Deadline(); ok {
		_ = s.bucket.SetReadDeadline(deadline)
		_ = s.bucket.SetWriteDeadline(deadline)
	}
}
