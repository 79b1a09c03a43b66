package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/tourin/storefront/internal/config"
	inErrors "github.com/tourin/storefront/internal/errors"
	"github.com/tourin/storefront/internal/log"
	"github.com/tourin/storefront/internal/session"
)

func init() {
	// promo_discount_price and minimum_claim_price must cross the wire as JSON
	// numbers, never strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Client is the single outbound boundary to the travel API. Every request
// carries the static apiKey header; authenticated requests add a bearer token
// from the session store.
type Client struct {
	baseUrl  string
	apiKey   string
	http     *http.Client
	tokens   *session.Store
	requests metric.Int64Counter
}

func NewClient(cfg config.Api, tokens *session.Store) *Client {
	meter := otel.Meter("storefront")
	requests, err := meter.Int64Counter("api.client.requests")
	if err != nil {
		requests = nil
	}
	return &Client{
		baseUrl: cfg.BaseUrl,
		apiKey:  cfg.Key,
		http: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		tokens:   tokens,
		requests: requests,
	}
}

// Get issues an unauthenticated GET; list endpoints like /categories and
// /promos only require the apiKey header.
func (a *Client) Get(c context.Context, path string, out any) error {
	return a.do(c, http.MethodGet, path, "", nil, false, out)
}

// GetAuth issues a GET with the bearer token attached, for endpoints like
// /carts and /payment-methods.
func (a *Client) GetAuth(c context.Context, path string, out any) error {
	return a.do(c, http.MethodGet, path, "", nil, true, out)
}

func (a *Client) PostJSON(c context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed marshaling request body with error=%w", err)
	}
	return a.do(c, http.MethodPost, path, "application/json", bytes.NewReader(payload), true, out)
}

// PostAnon posts JSON without a bearer token; login and register run before a
// token exists.
func (a *Client) PostAnon(c context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed marshaling request body with error=%w", err)
	}
	return a.do(c, http.MethodPost, path, "application/json", bytes.NewReader(payload), false, out)
}

func (a *Client) Delete(c context.Context, path string, out any) error {
	return a.do(c, http.MethodDelete, path, "", nil, true, out)
}

// UploadImage posts the file as multipart form data to the image upload
// endpoint and returns the hosted URL.
func (a *Client) UploadImage(
	c context.Context,
	path string,
	filename string,
	file io.Reader,
) (string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		return "", fmt.Errorf("failed creating multipart field with error=%w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("failed copying image into multipart body with error=%w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed closing multipart writer with error=%w", err)
	}

	uploaded := uploadEnvelope{}
	err = a.do(c, http.MethodPost, path, writer.FormDataContentType(), body, true, &uploaded)
	if err != nil {
		return "", err
	}
	return uploaded.Url, nil
}

func (a *Client) do(
	c context.Context,
	method string,
	path string,
	contentType string,
	body io.Reader,
	authed bool,
	out any,
) error {
	url := a.baseUrl + path

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "Client do").
		Str(log.KeyRequestMethod, method).
		Str(log.KeyRequestURL, url).
		Logger()

	req, err := http.NewRequestWithContext(c, method, url, body)
	if err != nil {
		err = fmt.Errorf("failed creating request with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	req.Header.Set("apiKey", a.apiKey)
	req.Header.Set(log.KeyRequestID, uuid.NewString())
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if authed {
		token, err := a.tokens.Token(c)
		if err != nil {
			logger.Error().Err(err).Msg(err.Error())
			return err
		}
		expired, err := a.tokens.Expired(c)
		if err != nil {
			logger.Error().Err(err).Msg(err.Error())
			return err
		}
		if expired {
			logger.Error().
				Err(inErrors.ErrTokenExpired).
				Msg(inErrors.ErrTokenExpired.Error())
			return inErrors.ErrTokenExpired
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := a.http.Do(req)
	if err != nil {
		err = fmt.Errorf("failed requesting %s %s with error=%w", method, path, err)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	defer resp.Body.Close()

	a.count(c, method, path, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		err = fmt.Errorf("failed reading response body with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}

	if resp.StatusCode != http.StatusOK {
		statusErr := newStatusError(resp.StatusCode, raw)
		logger.Error().
			Err(statusErr).
			Int(log.KeyStatusCode, resp.StatusCode).
			Msg(statusErr.Error())
		return statusErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		err = fmt.Errorf("failed unmarshaling response body with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	return nil
}

func (a *Client) count(c context.Context, method string, path string, statusCode int) {
	if a.requests == nil {
		return
	}
	a.requests.Add(c, 1, metric.WithAttributes(
		attribute.String("http.request.method", method),
		attribute.String("url.path", path),
		attribute.Int("http.response.status_code", statusCode),
	))
}
