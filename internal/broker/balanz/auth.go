package balanz

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
)

const authSource = "WebV2"

// Fixed device-identity fields sent with the login payload. The broker
// expects a browser-shaped device record.
const (
	deviceName      = "Firefox 121.0"
	deviceID        = "c54662d6-b273-48d2-9a94-1a85a9adb69f"
	deviceOS        = "Windows"
	deviceOSVersion = "10"
	deviceType      = "Web"
	appVersion      = "2.10.0"
)

// Login transitions the client into the authenticated state. A valid
// cached token is reused without any network calls; otherwise the
// two-step handshake runs and the fresh token is persisted. Once
// authenticated, the token is held for the lifetime of the client.
func (c *Client) Login() error {
	if c.token != nil {
		return nil
	}
	return c.login(true)
}

// Relogin discards the in-memory token and performs a fresh handshake,
// ignoring the cache.
func (c *Client) Relogin() error {
	c.token = nil
	return c.login(false)
}

func (c *Client) login(useCache bool) error {
	if useCache && c.cache != nil {
		if tok, ok := c.cache.Load(); ok && tok.ValidAt(c.now()) {
			log.Printf("[Balanz] Reusing cached token from %s", c.cache.Path())
			c.token = &tok
			return nil
		}
	}

	log.Printf("[Balanz] Requesting a new authentication token")

	tok, err := c.handshake()
	if err != nil {
		return err
	}

	if c.cache != nil {
		if err := c.cache.Save(tok); err != nil {
			// The in-memory token is still usable; the next run will
			// simply log in again.
			log.Printf("[Balanz] Could not persist token to %s: %v", c.cache.Path(), err)
		}
	}

	c.token = &tok
	return nil
}

// handshake performs the two-step login: fetch a nonce from auth/init,
// then exchange the credentials and nonce for an access token.
func (c *Client) handshake() (Token, error) {
	nonce, err := c.authInit()
	if err != nil {
		return Token{}, err
	}
	return c.authLogin(nonce)
}

func (c *Client) authInit() (string, error) {
	payload := initRequest{
		User:   c.creds.Username,
		Source: authSource,
	}

	status, body, err := c.postAuth("auth/init", payload)
	if err != nil {
		return "", fmt.Errorf("auth init: %w", err)
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("%w: status %d: %s", ErrAuthInit, status, body)
	}

	var ir initResponse
	if err := json.Unmarshal(body, &ir); err != nil {
		return "", fmt.Errorf("%w: decoding init response: %v", ErrAuthInit, err)
	}
	if ir.Nonce == "" {
		return "", fmt.Errorf("%w: no nonce in response", ErrAuthInit)
	}

	return ir.Nonce, nil
}

func (c *Client) authLogin(nonce string) (Token, error) {
	payload := loginRequest{
		User:            c.creds.Username,
		Pass:            c.creds.Password,
		Nonce:           nonce,
		DeviceName:      deviceName,
		DeviceID:        deviceID,
		OperatingSystem: deviceOS,
		OSVersion:       deviceOSVersion,
		Source:          authSource,
		DeviceType:      deviceType,
		AppVersion:      appVersion,
	}

	status, body, err := c.postAuth("auth/login", payload)
	if err != nil {
		return Token{}, fmt.Errorf("auth login: %w", err)
	}
	if status != http.StatusOK {
		return Token{}, fmt.Errorf("%w: status %d: %s", ErrAuthLogin, status, body)
	}

	var lr loginResponse
	if err := json.Unmarshal(body, &lr); err != nil {
		return Token{}, fmt.Errorf("%w: decoding login response: %v", ErrAuthLogin, err)
	}
	if lr.AccessToken == "" {
		return Token{}, fmt.Errorf("%w: no access token in response", ErrAuthLogin)
	}

	return Token{Value: lr.AccessToken, IssuedAt: c.now()}, nil
}

// postAuth posts a JSON payload to an auth endpoint. The avoidAuthRedirect
// flag keeps the broker from answering failures with a redirect page.
func (c *Client) postAuth(path string, payload any) (int, []byte, error) {
	if err := c.limiter.Wait(context.Background()); err != nil {
		return 0, nil, err
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, err
	}

	url := c.baseURL + "/" + path + "?avoidAuthRedirect=true"
	req, err := http.NewRequest("POST", url, bytes.NewReader(data))
	if err != nil {
		return 0, nil, err
	}
	req.Header = c.baseHeaders()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("reading response: %w", err)
	}

	return resp.StatusCode, body, nil
}
