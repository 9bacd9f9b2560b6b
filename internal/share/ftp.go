// Package share publishes the merged artifact to an FTP drop for downstream
// consumers.
package share

import (
	"context"
	"io"
	"net"
	"os"
	"path"
	"time"

	"github.com/jlaffaye/ftp"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Options configures the FTP uploader.
type Options struct {
	Host     string // host or host:port, port 21 assumed
	User     string
	Password string
	Dir      string // remote directory, created if missing
	Timeout  time.Duration
}

// Uploader stores files on an FTP server.
type Uploader struct {
	opts Options
}

// NewUploader creates a new Uploader with the given options.
func NewUploader(opts Options) *Uploader {
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.User == "" {
		opts.User = "anonymous"
		opts.Password = "anonymous@"
	}
	return &Uploader{opts: opts}
}

// Upload stores the contents of r on the server under name, inside the
// configured remote directory.
func (u *Uploader) Upload(ctx context.Context, name string, r io.Reader) error {
	host := u.opts.Host
	if _, _, err := net.SplitHostPort(host); err != nil {
		host = net.JoinHostPort(host, "21")
	}

	zap.L().Debug("share: connecting", zap.String("host", host))

	conn, err := ftp.Dial(host, ftp.DialWithTimeout(u.opts.Timeout), ftp.DialWithContext(ctx))
	if err != nil {
		return eris.Wrap(err, "share: ftp dial")
	}
	defer func() { _ = conn.Quit() }()

	if err := conn.Login(u.opts.User, u.opts.Password); err != nil {
		return eris.Wrap(err, "share: ftp login")
	}

	remote := name
	if u.opts.Dir != "" {
		// MakeDir fails when the directory exists; that is fine.
		_ = conn.MakeDir(u.opts.Dir)
		remote = path.Join(u.opts.Dir, name)
	}

	if err := conn.Stor(remote, r); err != nil {
		return eris.Wrapf(err, "share: ftp store %s", remote)
	}

	zap.L().Info("share: artifact uploaded", zap.String("remote", remote))
	return nil
}

// UploadFile stores a local file on the server under its base name.
func (u *Uploader) UploadFile(ctx context.Context, localPath string) error {
	f, err := os.Open(localPath)
	if err != nil {
		return eris.Wrapf(err, "share: open %s", localPath)
	}
	defer func() { _ = f.Close() }()

	return u.Upload(ctx, path.Base(localPath), f)
}
