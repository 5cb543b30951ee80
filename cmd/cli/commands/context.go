package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/clinic-roster/internal/config"
	"github.com/jakechorley/clinic-roster/pkg/clients/gmailclient"
	"github.com/jakechorley/clinic-roster/pkg/clients/sheetsclient"
	"github.com/jakechorley/clinic-roster/pkg/core/model"
	"github.com/jakechorley/clinic-roster/pkg/core/services"
	"github.com/jakechorley/clinic-roster/pkg/db"
)

// errRosterInvalid makes the process exit non-zero after a roster was rejected
var errRosterInvalid = errors.New("roster is not valid")

// AppContext holds the application dependencies shared across all commands.
// Google clients are created on first use so commands that never touch Sheets or Gmail
// never start an OAuth flow.
type AppContext struct {
	Env      string
	Cfg      *config.Config
	Database db.Database
	Logger   *zap.Logger
	Ctx      context.Context
	Now      func() time.Time

	oauthCfg     *config.OAuthClientConfig
	sheetsClient *sheetsclient.Client
	gmailClient  *gmailclient.Client
	directory    db.DirectoryStore
}

// SheetsClient returns the Google Sheets client, authenticating on first use
func (a *AppContext) SheetsClient() (*sheetsclient.Client, error) {
	if a.sheetsClient != nil {
		return a.sheetsClient, nil
	}

	oauthCfg, err := a.oauthClient()
	if err != nil {
		return nil, err
	}

	a.Logger.Info("Initializing sheets client")
	client, err := sheetsclient.NewClient(a.Ctx, oauthCfg, a.Env, a.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}
	a.sheetsClient = client
	return client, nil
}

// GmailClient returns the Gmail client. It shares the sheets client's token.
func (a *AppContext) GmailClient() (*gmailclient.Client, error) {
	if a.gmailClient != nil {
		return a.gmailClient, nil
	}

	sheets, err := a.SheetsClient()
	if err != nil {
		return nil, err
	}

	a.Logger.Info("Initializing gmail client")
	client, err := gmailclient.NewClient(a.Ctx, a.oauthCfg, sheets.Token(), a.Cfg.GmailUserID, a.Cfg.GmailSender)
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail client: %w", err)
	}
	a.gmailClient = client
	return client, nil
}

// DirectoryStore returns the configured directory source
func (a *AppContext) DirectoryStore() (db.DirectoryStore, error) {
	if a.directory != nil {
		return a.directory, nil
	}

	switch a.Cfg.ResolvedDirectorySource() {
	case config.SourceSheets:
		client, err := a.SheetsClient()
		if err != nil {
			return nil, err
		}
		a.directory = sheetsclient.NewDirectory(client, a.Cfg.DirectorySheetID, sheetsclient.DirectoryTabs{
			Doctors:     a.Cfg.DoctorsTab,
			Departments: a.Cfg.DepartmentsTab,
			Clinics:     a.Cfg.ClinicsTab,
		})
	default:
		a.directory = a.Database
	}
	return a.directory, nil
}

// LoadDirectory reads a fresh directory snapshot
func (a *AppContext) LoadDirectory() (*model.Directory, error) {
	store, err := a.DirectoryStore()
	if err != nil {
		return nil, err
	}
	return services.LoadDirectory(a.Ctx, store, a.Logger)
}

func (a *AppContext) oauthClient() (*config.OAuthClientConfig, error) {
	if a.oauthCfg != nil {
		return a.oauthCfg, nil
	}

	a.Logger.Debug("Loading OAuth client configuration")
	oauthCfg, err := config.LoadOAuthClientWithEnv(a.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to load OAuth client config: %w", err)
	}
	a.oauthCfg = oauthCfg
	return oauthCfg, nil
}
