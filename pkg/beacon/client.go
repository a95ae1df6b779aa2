package beacon

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/prysm/v5/api/server/structs"
	"github.com/prysmaticlabs/prysm/v5/consensus-types/validator"
	"github.com/sirupsen/logrus"
)

// Client handles interactions with the beacon node REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new Client instance
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{},
	}
}

// GetValidator fetches a single validator by index or pubkey at the given state
func (c *Client) GetValidator(ctx context.Context, stateID, validatorID string) (*Validator, error) {
	endpoint := "/eth/v1/beacon/states/" + stateID + "/validators/" + validatorID

	var result structs.GetValidatorResponse

	if err := c.getJSON(ctx, endpoint, nil, &result); err != nil {
		return nil, errors.Wrapf(err, "failed to fetch validator %s", validatorID)
	}

	v, err := validatorFromContainer(result.Data)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode validator %s", validatorID)
	}

	log.WithFields(logrus.Fields{
		"index":  v.Index,
		"status": v.Status,
	}).Debug("Validator fetched")

	return v, nil
}

// GetValidators fetches all validators at the given state whose status is in statuses
func (c *Client) GetValidators(ctx context.Context, stateID string, statuses []validator.Status) ([]*Validator, error) {
	endpoint := "/eth/v1/beacon/states/" + stateID + "/validators"

	query := url.Values{}

	if len(statuses) > 0 {
		names := make([]string, len(statuses))
		for i, s := range statuses {
			names[i] = s.String()
		}

		query.Set("status", strings.Join(names, ","))
	}

	var result structs.GetValidatorsResponse

	if err := c.getJSON(ctx, endpoint, query, &result); err != nil {
		return nil, errors.Wrap(err, "failed to fetch validators")
	}

	validators := make([]*Validator, 0, len(result.Data))

	for _, container := range result.Data {
		v, err := validatorFromContainer(container)
		if err != nil {
			return nil, errors.Wrap(err, "failed to decode validators")
		}

		validators = append(validators, v)
	}

	log.WithFields(logrus.Fields{
		"statuses": query.Get("status"),
		"count":    len(validators),
	}).Debug("Validators fetched")

	return validators, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, query url.Values, out interface{}) error {
	requestURL, err := url.Parse(c.baseURL)
	if err != nil {
		return errors.Wrap(err, "failed to parse base URL")
	}

	requestURL.Path += endpoint

	if len(query) > 0 {
		requestURL.RawQuery = query.Encode()
	}

	urlStr := requestURL.String()

	log.WithField("url", urlStr).Debug("Fetching beacon API")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, http.NoBody)
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "request failed")
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)

		return errors.Errorf("unexpected response: %s - %s", resp.Status, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "failed to decode response")
	}

	return nil
}
