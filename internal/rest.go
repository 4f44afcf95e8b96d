package internal

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/BeaconTeam/Beacon-Gateway/beaconjson"
	"github.com/BeaconTeam/Beacon-Gateway/discord"
)

// Client is the minimal REST client used for gateway discovery.
type Client struct {
	Token string

	HTTP *http.Client

	APIVersion string
	URLHost    string
	URLScheme  string
	UserAgent  string
}

// NewClient makes a new rest client.
func NewClient(token string) *Client {
	return &Client{
		Token:      token,
		HTTP:       http.DefaultClient,
		APIVersion: "6",
		URLHost:    "discord.com",
		URLScheme:  "https",
		UserAgent:  "Beacon (" + VERSION + ")",
	}
}

// FetchJSON performs a request and decodes the response body into the
// passed structure.
func (c *Client) FetchJSON(ctx context.Context, method string, endpoint string, structure interface{}) error {
	url := c.URLScheme + "://" + c.URLHost + "/api/v" + c.APIVersion + endpoint

	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return err
	}

	req.Header.Set("User-Agent", c.UserAgent)

	if c.Token != "" {
		req.Header.Set("Authorization", "Bot "+c.Token)
	}

	res, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}

	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, res.Body)

		return fmt.Errorf("%v: status %d", ErrGatewayDiscovery, res.StatusCode)
	}

	err = beaconjson.UnmarshalReader(res.Body, structure)
	if err != nil {
		return err
	}

	return nil
}

// GetGateway returns the websocket URL to connect to.
func (c *Client) GetGateway(ctx context.Context) (discord.Gateway, error) {
	var gateway discord.Gateway

	err := c.FetchJSON(ctx, http.MethodGet, "/gateway", &gateway)
	if err != nil {
		return gateway, err
	}

	if gateway.URL == "" {
		return gateway, fmt.Errorf("%v: response missing url", ErrGatewayDiscovery)
	}

	return gateway, nil
}
