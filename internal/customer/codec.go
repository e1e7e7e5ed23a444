package customer

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrInvalidLink reports a customer link token that cannot be decoded.
var ErrInvalidLink = errors.New("invalid customer link")

// LinkParam is the query parameter carrying the encoded token.
const LinkParam = "cx"

// MaxLinkLength is the advisory URL length past which some transports may
// reject the link. It is a warning threshold, not a hard limit.
const MaxLinkLength = 2000

// linkPayload is the compact wire form of a customer link.
type linkPayload struct {
	Code     string   `json:"c"`
	Password string   `json:"p"`
	Catalog  string   `json:"cat"`
	Styles   []string `json:"s"`
}

// EncodeLink serializes a customer config into a URL-safe token: compact
// JSON, then base64.
func EncodeLink(cfg *Config) (string, error) {
	if cfg.Code == "" {
		return "", fmt.Errorf("customer code is required")
	}
	if cfg.Password == "" {
		return "", fmt.Errorf("password is required")
	}
	payload := linkPayload{
		Code:     cfg.Code,
		Password: cfg.Password,
		Catalog:  cfg.Catalog,
		Styles:   cfg.AllowedStyles,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode link payload: %w", err)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// DecodeLink reverses EncodeLink. Any failure (transform, parse, or a
// missing required field) is reported as ErrInvalidLink so the caller can
// surface one "invalid link" condition instead of crashing the session.
func DecodeLink(token string) (*Config, error) {
	data, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLink, err)
	}
	var payload linkPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLink, err)
	}
	if payload.Code == "" || payload.Password == "" || payload.Catalog == "" {
		return nil, fmt.Errorf("%w: missing required fields", ErrInvalidLink)
	}
	return &Config{
		Code:          payload.Code,
		Name:          payload.Code,
		Password:      payload.Password,
		Catalog:       payload.Catalog,
		AllowedStyles: payload.Styles,
		Settings:      DefaultSettings,
	}, nil
}

// BuildLinkURL appends the token to the base URL as the cx parameter and
// reports whether the result exceeds the advisory length threshold.
func BuildLinkURL(base, token string) (link string, tooLong bool) {
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	link = base + sep + LinkParam + "=" + url.QueryEscape(token)
	return link, len(link) > MaxLinkLength
}

// ExtractToken accepts either a bare token or a full link URL and returns
// the token.
func ExtractToken(s string) (string, error) {
	if !strings.Contains(s, LinkParam+"=") {
		return s, nil
	}
	u, err := url.Parse(s)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidLink, err)
	}
	token := u.Query().Get(LinkParam)
	if token == "" {
		return "", fmt.Errorf("%w: no %s parameter", ErrInvalidLink, LinkParam)
	}
	return token, nil
}
