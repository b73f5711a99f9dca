package service

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
	"golang.org/x/term"
)

// PassphraseFunc returns the passphrase of an encrypted private key.
type PassphraseFunc func() ([]byte, error)

// TerminalPassphrase prompts for the passphrase on the controlling terminal.
func TerminalPassphrase(prompt string) PassphraseFunc {
	return func() ([]byte, error) {
		fmt.Fprint(os.Stderr, prompt)
		defer fmt.Fprintln(os.Stderr)
		return term.ReadPassword(int(os.Stdin.Fd()))
	}
}

// Publisher uploads rendered pipeline documents to a host over SFTP.
type Publisher struct {
	host       string
	username   string
	privateKey []byte
	passphrase PassphraseFunc

	client *ssh.Client
	mu     sync.Mutex
}

func NewPublisher(
	host, username string,
	privateKey []byte,
	passphrase PassphraseFunc,
) *Publisher {
	if _, _, err := net.SplitHostPort(host); err != nil {
		host = net.JoinHostPort(strings.Trim(host, "[]"), "22")
	}
	return &Publisher{
		host:       host,
		username:   username,
		privateKey: privateKey,
		passphrase: passphrase,
	}
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.client == nil {
		return nil
	}
	err := p.client.Close()
	p.client = nil
	return err
}

// Publish writes document to remotePath, creating parent directories.
func (p *Publisher) Publish(remotePath string, document []byte) error {
	if err := p.connect(); err != nil {
		return err
	}

	sftpClient, err := sftp.NewClient(p.client)
	if err != nil {
		return fmt.Errorf("err creating sftp client: %+w", err)
	}
	defer sftpClient.Close()

	return uploadFile(sftpClient, remotePath, document)
}

func uploadFile(sftpClient *sftp.Client, remotePath string, document []byte) (err error) {
	if dir := path.Dir(remotePath); dir != "." && dir != "/" {
		if err := sftpClient.MkdirAll(dir); err != nil {
			return err
		}
	}

	remoteFile, err := sftpClient.Create(remotePath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := remoteFile.Close(); err == nil {
			err = closeErr
		}
	}()

	_, err = remoteFile.Write(document)
	return err
}

func (p *Publisher) connect() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.client != nil {
		return nil
	}

	auth, err := p.getAuth()
	if err != nil {
		return err
	}
	config := &ssh.ClientConfig{
		User:            p.username,
		Auth:            []ssh.AuthMethod{auth},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         10 * time.Second,
	}

	client, err := ssh.Dial("tcp", p.host, config)
	if err != nil {
		return err
	}

	p.client = client
	return nil
}

func (p *Publisher) getAuth() (ssh.AuthMethod, error) {
	signer, err := ssh.ParsePrivateKey(p.privateKey)
	var missing *ssh.PassphraseMissingError
	if errors.As(err, &missing) {
		if p.passphrase == nil {
			return nil, fmt.Errorf("private key is encrypted and no passphrase is available")
		}
		passphrase, perr := p.passphrase()
		if perr != nil {
			return nil, perr
		}
		signer, err = ssh.ParsePrivateKeyWithPassphrase(p.privateKey, passphrase)
	}
	if err != nil {
		return nil, err
	}
	return ssh.PublicKeys(signer), nil
}
