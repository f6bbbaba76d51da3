// Package auth handles login and the operator identity carried by the
// access token. The terminal never verifies the token signature (that is
// the backend's job); it only reads the claims to know who is operating.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/miromero13/spos-terminal/internal/api"
)

var ErrNoToken = errors.New("no access token")

// Claims are the custom claims embedded in every SPOS access token.
type Claims struct {
	UserID string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Operator is the authenticated identity shown on tickets and reports.
type Operator struct {
	ID   string
	Name string
	Role string
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResult struct {
	AccessToken string `json:"accessToken"`
}

// Service performs the login-time calls through the resource client.
type Service struct {
	api *api.Client
	log zerolog.Logger
}

func NewService(client *api.Client, logger zerolog.Logger) *Service {
	return &Service{api: client, log: logger.With().Str("component", "auth").Logger()}
}

// Login exchanges credentials for an access token, attaches it to the
// resource client and returns the operator decoded from the claims.
func (s *Service) Login(ctx context.Context, email, password string) (Operator, error) {
	var result loginResult
	err := s.api.Create(ctx, api.EndpointLogin, loginRequest{Email: email, Password: password}, &result, nil)
	if err != nil {
		return Operator{}, err
	}
	if result.AccessToken == "" {
		return Operator{}, ErrNoToken
	}
	s.api.SetToken(result.AccessToken)

	op, err := OperatorFromToken(result.AccessToken)
	if err != nil {
		return Operator{}, err
	}
	s.log.Info().Str("operator", op.Name).Str("role", op.Role).Msg("logged in")
	return op, nil
}

// CheckToken asks the backend whether the current token is still valid.
// The token travels as a query parameter, which is what the endpoint reads.
func (s *Service) CheckToken(ctx context.Context) error {
	token := s.api.Token()
	if token == "" {
		return ErrNoToken
	}
	return s.api.Get(ctx, api.EndpointCheckToken+"?token="+url.QueryEscape(token), nil)
}

// OperatorFromToken decodes the identity claims without verifying the
// signature; the backend rejects tampered tokens on every call anyway.
func OperatorFromToken(token string) (Operator, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return Operator{}, fmt.Errorf("parse token: %w", err)
	}
	return Operator{ID: claims.UserID, Name: claims.Name, Role: claims.Role}, nil
}
