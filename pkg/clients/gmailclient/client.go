package gmailclient

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/jakechorley/clinic-roster/internal/config"
	"github.com/jakechorley/clinic-roster/pkg/utils"
)

// Client wraps the Gmail API client
type Client struct {
	service *gmail.Service
	userID  string
	sender  string

	sendMutex    sync.Mutex
	lastSendTime time.Time
}

// NewClient creates a Gmail client from an existing OAuth token, normally the one obtained by the
// sheets client. userID defaults to "me"; sender, when set, becomes the From header.
func NewClient(ctx context.Context, oauthCfg *config.OAuthClientConfig, token *oauth2.Token, userID, sender string) (*Client, error) {
	oauthConfig, err := utils.GetOAuthConfig(oauthCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to get oauth config: %w", err)
	}

	service, err := gmail.NewService(ctx, option.WithHTTPClient(oauthConfig.Client(ctx, token)))
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail service: %w", err)
	}

	if userID == "" {
		userID = "me"
	}

	return &Client{
		service: service,
		userID:  userID,
		sender:  sender,
	}, nil
}
