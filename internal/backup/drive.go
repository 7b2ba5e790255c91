/*
Package backup uploads the workbook to a Google Drive folder, keyed by
filename: an existing file with the same name in the folder is updated in
place, otherwise a new file is created. Backup is best-effort from the
caller's point of view; an unconfigured uploader is a no-op.
*/
package backup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// DriveConfig carries the OAuth refresh-token credentials and target folder.
type DriveConfig struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
	FolderID     string
}

func (c DriveConfig) configured() bool {
	return c.ClientID != "" && c.ClientSecret != "" && c.RefreshToken != "" && c.FolderID != ""
}

// Drive uploads a local file into the configured folder.
type Drive struct {
	cfg DriveConfig
}

func NewDrive(cfg DriveConfig) *Drive {
	return &Drive{cfg: cfg}
}

// Upload sends path to the folder, updating an existing file of the same
// name. Returns nil without side effects when credentials are missing.
func (d *Drive) Upload(ctx context.Context, path string) error {
	if !d.cfg.configured() {
		return nil
	}

	conf := &oauth2.Config{
		ClientID:     d.cfg.ClientID,
		ClientSecret: d.cfg.ClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{drive.DriveFileScope},
	}
	source := conf.TokenSource(ctx, &oauth2.Token{RefreshToken: d.cfg.RefreshToken})

	svc, err := drive.NewService(ctx, option.WithTokenSource(source))
	if err != nil {
		return fmt.Errorf("failed to create drive service: %w", err)
	}

	name := filepath.Base(path)
	query := fmt.Sprintf("name = '%s' and '%s' in parents and trashed = false",
		strings.ReplaceAll(name, "'", `\'`), d.cfg.FolderID)
	found, err := svc.Files.List().Q(query).PageSize(1).Fields("files(id, name)").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("drive file lookup failed: %w", err)
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s for upload: %w", path, err)
	}
	defer file.Close()

	if len(found.Files) > 0 {
		if _, err := svc.Files.Update(found.Files[0].Id, &drive.File{}).Media(file).Context(ctx).Do(); err != nil {
			return fmt.Errorf("drive update failed: %w", err)
		}
		return nil
	}

	meta := &drive.File{Name: name, Parents: []string{d.cfg.FolderID}}
	if _, err := svc.Files.Create(meta).Media(file).Context(ctx).Do(); err != nil {
		return fmt.Errorf("drive upload failed: %w", err)
	}
	return nil
}
