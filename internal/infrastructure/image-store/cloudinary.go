package imagestore

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/alimikegami/marketplace-service/config"
	"github.com/alimikegami/marketplace-service/pkg/httpclient"
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker/v2"
)

// ImageStore removes uploaded media when the record that owns it is
// deleted. Uploads happen client-side, so only deletion lives here.
type ImageStore interface {
	DeleteImage(ctx context.Context, publicID string) error
}

type CloudinaryImageStore struct {
	config *config.Config
	cb     *gobreaker.CircuitBreaker[[]byte]
}

func CreateCloudinaryImageStore(config *config.Config, cb *gobreaker.CircuitBreaker[[]byte]) ImageStore {
	return &CloudinaryImageStore{
		config: config,
		cb:     cb,
	}
}

func (s *CloudinaryImageStore) DeleteImage(ctx context.Context, publicID string) error {
	endpoint := fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/resources/image/upload?public_ids[]=%s",
		s.config.CloudinaryConfig.CloudName, url.QueryEscape(publicID))

	_, err := s.cb.Execute(func() ([]byte, error) {
		statusCode, body, err := httpclient.SendRequest(ctx, httpclient.HttpRequest{
			URL:      endpoint,
			Method:   http.MethodDelete,
			Username: s.config.CloudinaryConfig.APIKey,
			Password: s.config.CloudinaryConfig.APISecret,
		})
		if err != nil {
			return nil, fmt.Errorf("error calling image store: %v", err)
		}

		if statusCode != http.StatusOK {
			return nil, fmt.Errorf("image store returned non-OK status: %d", statusCode)
		}

		return body, nil
	})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "DeleteImage").Msg("")
		return err
	}

	return nil
}
