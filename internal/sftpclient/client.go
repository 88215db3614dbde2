package sftpclient

import (
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"sync"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"

	"casefiles/config"
	"casefiles/internal/models"
	"casefiles/internal/transfer"
)

var (
	// ErrAuthentication marks rejected credentials.
	ErrAuthentication = errors.New("authentication failed")
	// ErrTransport marks connectivity or protocol failures.
	ErrTransport = errors.New("connection failed")
)

const fetchChunkSize = 32 * 1024

// Client is an authenticated SFTP session against the case file server.
type Client struct {
	conn *ssh.Client
	sftp *sftp.Client

	closeOnce sync.Once
	closeErr  error
}

// Connect authenticates against the configured server with the given
// credentials. Failures are classified as ErrAuthentication or ErrTransport.
func Connect(cfg *config.Config, username, password string) (*Client, error) {
	sshConfig := &ssh.ClientConfig{
		User: username,
		Auth: []ssh.AuthMethod{ssh.Password(password)},
		// The case file server's host key is not pre-distributed; accept
		// whatever it presents.
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
	}

	addr := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	conn, err := ssh.Dial("tcp", addr, sshConfig)
	if err != nil {
		return nil, classifyDialError(err)
	}

	sftpClient, err := sftp.NewClient(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}

	return &Client{conn: conn, sftp: sftpClient}, nil
}

// classifyDialError separates bad credentials from connectivity problems.
// The ssh package reports both through plain errors, so the auth case is
// matched on the handshake message.
func classifyDialError(err error) error {
	if strings.Contains(err.Error(), "unable to authenticate") {
		return fmt.Errorf("%w: %v", ErrAuthentication, err)
	}
	return fmt.Errorf("%w: %v", ErrTransport, err)
}

// List returns the entries under dir.
func (c *Client) List(dir string) ([]models.Entry, error) {
	infos, err := c.sftp.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	entries := make([]models.Entry, 0, len(infos))
	for _, info := range infos {
		entries = append(entries, models.Entry{
			Name:  info.Name(),
			Size:  info.Size(),
			IsDir: info.IsDir(),
		})
	}
	return entries, nil
}

// Stat probes a single remote path. A missing path satisfies
// errors.Is(err, fs.ErrNotExist).
func (c *Client) Stat(path string) (models.Entry, error) {
	info, err := c.sftp.Stat(path)
	if err != nil {
		return models.Entry{}, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	return models.Entry{
		Name:  info.Name(),
		Size:  info.Size(),
		IsDir: info.IsDir(),
	}, nil
}

// Fetch streams a remote file into dst, invoking fn after every chunk with
// the cumulative transferred byte count and the file's total size.
func (c *Client) Fetch(remotePath string, dst io.Writer, fn transfer.ProgressFunc) (int64, error) {
	remote, err := c.sftp.Open(remotePath)
	if err != nil {
		return 0, fmt.Errorf("failed to open %s: %w", remotePath, err)
	}
	defer remote.Close()

	info, err := remote.Stat()
	if err != nil {
		return 0, fmt.Errorf("failed to stat %s: %w", remotePath, err)
	}
	total := info.Size()

	buf := make([]byte, fetchChunkSize)
	var transferred int64
	for {
		n, readErr := remote.Read(buf)
		if n > 0 {
			if _, writeErr := dst.Write(buf[:n]); writeErr != nil {
				return transferred, fmt.Errorf("failed to write local copy of %s: %w", remotePath, writeErr)
			}
			transferred += int64(n)
			if fn != nil {
				fn(transferred, total)
			}
		}
		if readErr == io.EOF {
			return transferred, nil
		}
		if readErr != nil {
			return transferred, fmt.Errorf("failed to read %s: %w", remotePath, readErr)
		}
	}
}

// Close tears the session down. Safe to call more than once; the connection
// is closed exactly once.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		if c.sftp != nil {
			c.closeErr = c.sftp.Close()
		}
		if err := c.conn.Close(); err != nil && c.closeErr == nil {
			c.closeErr = err
		}
	})
	return c.closeErr
}
