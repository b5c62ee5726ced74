package config

import (
	"log"

	aws3 "github.com/aws/aws-sdk-go/service/s3"
	"github.com/casdoor/oss"
	"github.com/casdoor/oss/s3"

	"field-service.com/field-service/internal/storage"
)

// NewStorageClient selects the storage backend by provider name. The
// filesystem backend keeps uploads under a local folder; s3 and minio share
// the S3 wire protocol.
func NewStorageClient(cfg Config) oss.StorageInterface {
	switch cfg.StorageProvider {
	case "filesystem":
		return storage.NewFileSystem(cfg.StorageBucket)
	case "aws-s3":
		return s3.New(&s3.Config{
			AccessID:   cfg.StorageID,
			AccessKey:  cfg.StorageSecret,
			Region:     cfg.StorageRegion,
			Bucket:     cfg.StorageBucket,
			Endpoint:   cfg.StorageEndpoint,
			S3Endpoint: cfg.StorageEndpoint,
			ACL:        aws3.BucketCannedACLPrivate,
		})
	case "minio":
		if cfg.StorageEndpoint == "" {
			log.Fatal("STORAGE_ENDPOINT is required for minio")
		}
		region := cfg.StorageRegion
		if region == "" {
			region = "us-east-1"
		}
		return s3.New(&s3.Config{
			AccessID:         cfg.StorageID,
			AccessKey:        cfg.StorageSecret,
			Region:           region,
			Bucket:           cfg.StorageBucket,
			Endpoint:         cfg.StorageEndpoint,
			S3Endpoint:       cfg.StorageEndpoint,
			ACL:              aws3.BucketCannedACLPrivate,
			S3ForcePathStyle: true,
		})
	default:
		log.Fatalf("unsupported storage provider: %s", cfg.StorageProvider)
		return nil
	}
}
