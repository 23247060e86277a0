package media

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/wanderke/wanderke-api/config"
)

var _ MediaService = (*MediaServiceImpl)(nil)

// MediaService hands out presigned upload URLs so clients push profile
// images straight to the object store instead of through this API.
type MediaService interface {
	GetUploadURL(ctx context.Context, userID string) (*UploadTicket, error)
}

// UploadTicket is a one-shot presigned PUT target.
type UploadTicket struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type MediaServiceImpl struct {
	logger  *slog.Logger
	cfg     config.S3Config
	presign *s3.PresignClient
}

func NewMediaService(ctx context.Context, cfg config.S3Config, logger *slog.Logger) (*MediaServiceImpl, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("failed to load object store config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	return &MediaServiceImpl{
		logger:  logger,
		cfg:     cfg,
		presign: s3.NewPresignClient(client),
	}, nil
}

func (s *MediaServiceImpl) GetUploadURL(ctx context.Context, userID string) (*UploadTicket, error) {
	l := s.logger.With(slog.String("method", "GetUploadURL"), slog.String("userID", userID))

	key := storageKey(userID)
	req, err := s.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(s.cfg.UploadTTL))
	if err != nil {
		l.ErrorContext(ctx, "Failed to presign upload", slog.Any("error", err))
		return nil, fmt.Errorf("failed to presign upload: %w", err)
	}

	l.DebugContext(ctx, "Issued upload URL", slog.String("key", key))
	return &UploadTicket{
		Key:       key,
		URL:       req.URL,
		ExpiresAt: time.Now().Add(s.cfg.UploadTTL),
	}, nil
}

// storageKey shards uploads by day so bucket listings stay manageable.
func storageKey(userID string) string {
	d := time.Now()
	return fmt.Sprintf("uploads/%d/%02d/%02d/%s/%s", d.Year(), d.Month(), d.Day(), userID, uuid.New())
}
