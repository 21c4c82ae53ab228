// Package backup uploads the SQLite database file to Google Drive on a
// fixed interval.
package backup

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

type Uploader struct {
	svc      *drive.Service
	dbPath   string
	folderID string
	interval time.Duration
	log      *slog.Logger
}

// NewUploader builds a Drive client from a service-account credentials file.
// folderID is optional; when set, backups land inside that folder.
func NewUploader(ctx context.Context, credentialsFile, dbPath, folderID string, interval time.Duration, log *slog.Logger) (*Uploader, error) {
	svc, err := drive.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(drive.DriveFileScope))
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}
	return &Uploader{
		svc:      svc,
		dbPath:   dbPath,
		folderID: folderID,
		interval: interval,
		log:      log,
	}, nil
}

// Run uploads once per interval until the context is canceled. Upload errors
// are logged and the loop keeps going; a missed backup must not take the bot
// down.
func (u *Uploader) Run(ctx context.Context) error {
	ticker := time.NewTicker(u.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := u.UploadOnce(ctx); err != nil {
				u.log.Error("database backup failed", "error", err)
			} else {
				u.log.Info("database backup uploaded")
			}
		}
	}
}

// UploadOnce pushes the current database file as a new timestamped Drive
// file.
func (u *Uploader) UploadOnce(ctx context.Context) error {
	f, err := os.Open(u.dbPath)
	if err != nil {
		return fmt.Errorf("open database file: %w", err)
	}
	defer f.Close()

	meta := &drive.File{
		Name: fmt.Sprintf("countbook-db-%s.sqlite3", time.Now().UTC().Format("2006-01-02T15-04-05")),
	}
	if u.folderID != "" {
		meta.Parents = []string{u.folderID}
	}
	if _, err := u.svc.Files.Create(meta).Media(f).Context(ctx).Do(); err != nil {
		return fmt.Errorf("upload database file: %w", err)
	}
	return nil
}
