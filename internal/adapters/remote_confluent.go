package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"alert-packet/internal/ports"
	"alert-packet/internal/shared"
)

var _ ports.RemoteRegistryPort = ConfluentRegistryAdapter{}

const registryContentType = "application/vnd.schemaregistry.v1+json"

// ConfluentRegistryAdapter uploads schemas to a Confluent-compatible
// schema registry over HTTP. Uploading historical versions with explicit
// version numbers requires the subject to be in IMPORT mode, so a full
// sync brackets its uploads with PrepareSubject and CloseSubject.
type ConfluentRegistryAdapter struct {
	Endpoint string
	Username string
	Password string
	Timeout  time.Duration
}

const defaultRegistryTimeout = 30 * time.Second

func NewConfluentRegistryAdapter(endpoint string, username string, password string, timeoutSec int) ConfluentRegistryAdapter {
	timeout := defaultRegistryTimeout
	if timeoutSec > 0 {
		timeout = time.Duration(timeoutSec) * time.Second
	}
	return ConfluentRegistryAdapter{
		Endpoint: strings.TrimRight(endpoint, "/"),
		Username: username,
		Password: password,
		Timeout:  timeout,
	}
}

// PrepareSubject deletes any existing subject and switches it to IMPORT
// mode so historical versions can be registered under their original
// numbers.
func (a ConfluentRegistryAdapter) PrepareSubject(ctx context.Context, subject string) error {
	if err := a.checkConfig(subject); err != nil {
		return err
	}

	// Only delete when the subject already has versions; deleting a
	// missing subject is a 404 we would rather not trip over.
	status, _, err := a.do(ctx, http.MethodGet, fmt.Sprintf("/subjects/%s/versions", subject), nil)
	if err != nil {
		return err
	}
	if status == http.StatusOK {
		if _, err := a.expect2xx(ctx, http.MethodDelete, "/subjects/"+subject, nil); err != nil {
			return err
		}
		log.Ctx(ctx).Debug().Str("subject", subject).Msg("existing subject deleted")
	}

	return a.setMode(ctx, subject, "IMPORT")
}

// UploadSchema registers one canonical schema under the subject with an
// explicit remote version number (also used as the remote id).
func (a ConfluentRegistryAdapter) UploadSchema(ctx context.Context, subject string, remoteVersion int, canonical []byte) error {
	if err := a.checkConfig(subject); err != nil {
		return err
	}
	payload, err := json.Marshal(map[string]any{
		"version": remoteVersion,
		"id":      remoteVersion,
		"schema":  string(canonical),
	})
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to marshal registry payload").
			WithCause(err)
	}
	if _, err := a.expect2xx(ctx, http.MethodPost, fmt.Sprintf("/subjects/%s/versions", subject), payload); err != nil {
		return err
	}
	log.Ctx(ctx).Debug().Str("subject", subject).Int("version", remoteVersion).Msg("schema uploaded")
	return nil
}

// CloseSubject returns the subject to normal READWRITE operation.
func (a ConfluentRegistryAdapter) CloseSubject(ctx context.Context, subject string) error {
	if err := a.checkConfig(subject); err != nil {
		return err
	}
	return a.setMode(ctx, subject, "READWRITE")
}

func (a ConfluentRegistryAdapter) setMode(ctx context.Context, subject string, mode string) error {
	payload, err := json.Marshal(map[string]string{"mode": mode})
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to marshal mode payload").
			WithCause(err)
	}
	_, err = a.expect2xx(ctx, http.MethodPut, "/mode/"+subject, payload)
	return err
}

func (a ConfluentRegistryAdapter) checkConfig(subject string) error {
	if strings.TrimSpace(a.Endpoint) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("registry endpoint is empty")
	}
	if strings.TrimSpace(subject) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("registry subject is empty")
	}
	return nil
}

func (a ConfluentRegistryAdapter) expect2xx(ctx context.Context, method string, path string, body []byte) (int, error) {
	status, respBody, err := a.do(ctx, method, path, body)
	if err != nil {
		return 0, err
	}
	if status < 200 || status >= 300 {
		return status, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("registry request failed").
			WithCause(shared.HTTPStatusErrorWithBody(status, a.Endpoint+path, respBody))
	}
	return status, nil
}

func (a ConfluentRegistryAdapter) do(ctx context.Context, method string, path string, body []byte) (int, string, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, a.Endpoint+path, reader)
	if err != nil {
		return 0, "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to build registry request").
			WithCause(err)
	}
	req.Header.Set("Content-Type", registryContentType)
	req.Header.Set("Accept", registryContentType)
	if a.Username != "" {
		req.SetBasicAuth(a.Username, a.Password)
	}

	client := &http.Client{Timeout: a.Timeout}
	resp, err := client.Do(req)
	if err != nil {
		return 0, "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("registry request failed").
			WithCause(err)
	}
	defer resp.Body.Close()
	respBody, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(respBody), nil
}
